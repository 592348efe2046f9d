package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-chatbot-be/internal/pkg/logger"
	"ai-chatbot-be/pkg/embedding"
)

// QdrantConfig configures the Qdrant-backed Store.
type QdrantConfig struct {
	BaseURL    string
	APIKey     string
	Collection string
	VectorSize int
	Timeout    time.Duration
}

// QdrantStore implements Store over Qdrant's REST API.
type QdrantStore struct {
	cfg      QdrantConfig
	client   *http.Client
	embedder embedding.Provider
	logger   logger.ILogger
}

func NewQdrantStore(cfg QdrantConfig, embedder embedding.Provider, log logger.ILogger) *QdrantStore {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:6333"
	}
	if cfg.Collection == "" {
		cfg.Collection = "knowledge_base"
	}
	if cfg.VectorSize == 0 {
		cfg.VectorSize = 768 // bge-base / text-embedding dimension
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &QdrantStore{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.Timeout},
		embedder: embedder,
		logger:   log,
	}
}

var _ Store = &QdrantStore{}

func (s *QdrantStore) applyHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("api-key", s.cfg.APIKey)
	}
}

func (s *QdrantStore) doJSON(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.cfg.BaseURL+path, body)
	if err != nil {
		return err
	}
	s.applyHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: qdrant %s %s: status=%d body=%s",
			ErrBackendUnavailable, method, path, resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: decode qdrant response: %v", ErrBackendUnavailable, err)
		}
	}
	return nil
}

func (s *QdrantStore) collectionPath(suffix string) string {
	return "/collections/" + url.PathEscape(s.cfg.Collection) + suffix
}

// EnsureCollection creates the collection when it does not exist yet.
// Qdrant answers 409 when it already does, which counts as success.
func (s *QdrantStore) EnsureCollection(ctx context.Context) error {
	var existsResp struct {
		Result struct {
			Exists bool `json:"exists"`
		} `json:"result"`
	}
	if err := s.doJSON(ctx, http.MethodGet, s.collectionPath("/exists"), nil, &existsResp); err != nil {
		return err
	}
	if existsResp.Result.Exists {
		return nil
	}

	s.logger.Info("qdrant_store", "Creating collection", map[string]interface{}{
		"collection": s.cfg.Collection,
		"dimension":  s.cfg.VectorSize,
	})

	body := map[string]any{
		"vectors": map[string]any{
			"size":     s.cfg.VectorSize,
			"distance": "Cosine",
		},
	}

	err := s.doJSON(ctx, http.MethodPut, s.collectionPath(""), body, nil)
	if err != nil && strings.Contains(err.Error(), "status=409") {
		// Lost a create race; the collection exists now.
		return nil
	}
	return err
}

type qdrantPoint struct {
	Id      string                 `json:"id"`
	Vector  []float32              `json:"vector"`
	Payload map[string]interface{} `json:"payload"`
}

func (s *QdrantStore) AddDocuments(ctx context.Context, docs []Document) (int, error) {
	if err := s.EnsureCollection(ctx); err != nil {
		return 0, err
	}

	points := make([]qdrantPoint, 0, len(docs))
	for _, doc := range docs {
		vector, err := s.embedder.Embed(ctx, doc.Content)
		if err != nil {
			if errors.Is(err, embedding.ErrUnembeddable) {
				s.logger.Warn("qdrant_store", "Skipping unembeddable document", map[string]interface{}{
					"error": err.Error(),
				})
				continue
			}
			return 0, fmt.Errorf("embed document: %w", err)
		}

		payload := CloneMetadata(doc.Metadata)
		payload["content"] = doc.Content

		points = append(points, qdrantPoint{
			Id:      uuid.NewString(),
			Vector:  vector,
			Payload: payload,
		})
	}

	if len(points) == 0 {
		return 0, nil
	}

	body := map[string]any{"points": points}
	if err := s.doJSON(ctx, http.MethodPut, s.collectionPath("/points?wait=true"), body, nil); err != nil {
		return 0, err
	}

	s.logger.Info("qdrant_store", "Documents added", map[string]interface{}{
		"collection": s.cfg.Collection,
		"count":      len(points),
		"skipped":    len(docs) - len(points),
	})
	return len(points), nil
}

func (s *QdrantStore) SearchSimilar(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	body := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}

	var searchResp struct {
		Result []struct {
			Score   float64                `json:"score"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"result"`
	}
	if err := s.doJSON(ctx, http.MethodPost, s.collectionPath("/points/search"), body, &searchResp); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(searchResp.Result))
	for _, hit := range searchResp.Result {
		content, _ := hit.Payload["content"].(string)
		results = append(results, SearchResult{
			Content:  content,
			Score:    hit.Score,
			Metadata: hit.Payload,
		})
	}
	return results, nil
}

func (s *QdrantStore) Count(ctx context.Context) (int64, error) {
	var infoResp struct {
		Result struct {
			PointsCount int64 `json:"points_count"`
		} `json:"result"`
	}
	if err := s.doJSON(ctx, http.MethodGet, s.collectionPath(""), nil, &infoResp); err != nil {
		return 0, err
	}
	return infoResp.Result.PointsCount, nil
}
