package knowledge

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-chatbot-be/pkg/embedding"
)

// keywordEmbedder maps texts onto fixed axes so similarity is predictable.
type keywordEmbedder struct{}

func (keywordEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, embedding.ErrUnembeddable
	}
	vector := make([]float32, 3)
	lower := strings.ToLower(text)
	if strings.Contains(lower, "shipping") {
		vector[0] = 1
	}
	if strings.Contains(lower, "refund") {
		vector[1] = 1
	}
	if strings.Contains(lower, "hours") {
		vector[2] = 1
	}
	return vector, nil
}

func TestMemoryStoreAddAndSearch(t *testing.T) {
	store := NewMemoryStore(keywordEmbedder{})
	ctx := context.Background()

	require.NoError(t, store.EnsureCollection(ctx))

	added, err := store.AddDocuments(ctx, []Document{
		{Content: "Q: How long does shipping take?\nA: 3-5 business days.", Metadata: map[string]interface{}{"type": TypeFAQ}},
		{Content: "Q: What is your refund policy?\nA: 30 days.", Metadata: map[string]interface{}{"type": TypeFAQ}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	results, err := store.SearchSimilar(ctx, "shipping time", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Content, "shipping")
	assert.InDelta(t, 1.0, results[0].Score, 0.001)
	assert.Equal(t, TypeFAQ, results[0].Metadata["type"])
}

func TestMemoryStoreSkipsUnembeddable(t *testing.T) {
	store := NewMemoryStore(keywordEmbedder{})
	ctx := context.Background()

	added, err := store.AddDocuments(ctx, []Document{
		{Content: "   "},
		{Content: "refund policy details"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryStoreSearchLimit(t *testing.T) {
	store := NewMemoryStore(keywordEmbedder{})
	ctx := context.Background()

	_, err := store.AddDocuments(ctx, []Document{
		{Content: "shipping info one"},
		{Content: "shipping info two"},
		{Content: "shipping info three"},
	})
	require.NoError(t, err)

	results, err := store.SearchSimilar(ctx, "shipping", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
