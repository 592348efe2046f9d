package knowledge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-chatbot-be/internal/pkg/logger"
	"ai-chatbot-be/pkg/embedding"
)

type fixedEmbedder struct {
	vector []float32
}

func (f fixedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, embedding.ErrUnembeddable
	}
	return f.vector, nil
}

type qdrantFixture struct {
	exists       bool
	created      bool
	upserted     []map[string]interface{}
	searchResult []map[string]interface{}
	pointsCount  int64
}

func (f *qdrantFixture) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /collections/knowledge_base/exists", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": map[string]interface{}{"exists": f.exists},
		})
	})
	mux.HandleFunc("PUT /collections/knowledge_base", func(w http.ResponseWriter, r *http.Request) {
		f.created = true
		f.exists = true
		json.NewEncoder(w).Encode(map[string]interface{}{"result": true})
	})
	mux.HandleFunc("GET /collections/knowledge_base", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": map[string]interface{}{"points_count": f.pointsCount},
		})
	})
	mux.HandleFunc("PUT /collections/knowledge_base/points", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Points []map[string]interface{} `json:"points"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.upserted = append(f.upserted, body.Points...)
		json.NewEncoder(w).Encode(map[string]interface{}{"result": map[string]interface{}{"status": "completed"}})
	})
	mux.HandleFunc("POST /collections/knowledge_base/points/search", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"result": f.searchResult})
	})

	return mux
}

func newQdrantTestStore(t *testing.T, fixture *qdrantFixture) *QdrantStore {
	t.Helper()
	srv := httptest.NewServer(fixture.handler(t))
	t.Cleanup(srv.Close)

	return NewQdrantStore(QdrantConfig{
		BaseURL:    srv.URL,
		Collection: "knowledge_base",
		VectorSize: 3,
	}, fixedEmbedder{vector: []float32{0.1, 0.2, 0.3}}, logger.NewNopLogger())
}

func TestQdrantEnsureCollectionCreatesOnce(t *testing.T) {
	fixture := &qdrantFixture{}
	store := newQdrantTestStore(t, fixture)
	ctx := context.Background()

	require.NoError(t, store.EnsureCollection(ctx))
	assert.True(t, fixture.created)

	fixture.created = false
	require.NoError(t, store.EnsureCollection(ctx))
	assert.False(t, fixture.created)
}

func TestQdrantAddDocumentsUpsertsPayload(t *testing.T) {
	fixture := &qdrantFixture{exists: true}
	store := newQdrantTestStore(t, fixture)

	added, err := store.AddDocuments(context.Background(), []Document{
		{Content: "Q: Hours?\nA: 9-5", Metadata: map[string]interface{}{"type": TypeFAQ}},
		{Content: "   "},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	require.Len(t, fixture.upserted, 1)
	payload := fixture.upserted[0]["payload"].(map[string]interface{})
	assert.Equal(t, "Q: Hours?\nA: 9-5", payload["content"])
	assert.Equal(t, TypeFAQ, payload["type"])
	assert.NotEmpty(t, fixture.upserted[0]["id"])
}

func TestQdrantSearchSimilarMapsResults(t *testing.T) {
	fixture := &qdrantFixture{
		exists: true,
		searchResult: []map[string]interface{}{
			{"score": 0.92, "payload": map[string]interface{}{"content": "Open 9-5.", "type": TypeFAQ}},
			{"score": 0.41, "payload": map[string]interface{}{"content": "Low match."}},
		},
	}
	store := newQdrantTestStore(t, fixture)

	results, err := store.SearchSimilar(context.Background(), "hours", 3)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Open 9-5.", results[0].Content)
	assert.InDelta(t, 0.92, results[0].Score, 0.001)
	assert.Equal(t, TypeFAQ, results[0].Metadata["type"])
}

func TestQdrantCount(t *testing.T) {
	fixture := &qdrantFixture{exists: true, pointsCount: 42}
	store := newQdrantTestStore(t, fixture)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestQdrantBackendFailureIsTyped(t *testing.T) {
	store := NewQdrantStore(QdrantConfig{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
	}, fixedEmbedder{vector: []float32{1}}, logger.NewNopLogger())

	_, err := store.SearchSimilar(context.Background(), "hours", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}
