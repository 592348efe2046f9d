package knowledge

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"ai-chatbot-be/pkg/embedding"
)

// MemoryStore keeps documents and their vectors in process memory.
// Useful for tests and for running without a vector database.
type MemoryStore struct {
	mu       sync.RWMutex
	embedder embedding.Provider
	entries  []memoryEntry
}

type memoryEntry struct {
	content  string
	metadata map[string]interface{}
	vector   []float32
}

func NewMemoryStore(embedder embedding.Provider) *MemoryStore {
	return &MemoryStore{embedder: embedder}
}

var _ Store = &MemoryStore{}

func (s *MemoryStore) EnsureCollection(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) AddDocuments(ctx context.Context, docs []Document) (int, error) {
	added := 0
	for _, doc := range docs {
		vector, err := s.embedder.Embed(ctx, doc.Content)
		if err != nil {
			if errors.Is(err, embedding.ErrUnembeddable) {
				continue
			}
			return added, fmt.Errorf("embed document: %w", err)
		}

		s.mu.Lock()
		s.entries = append(s.entries, memoryEntry{
			content:  doc.Content,
			metadata: CloneMetadata(doc.Metadata),
			vector:   vector,
		})
		s.mu.Unlock()
		added++
	}
	return added, nil
}

func (s *MemoryStore) SearchSimilar(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	queryVector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	s.mu.RLock()
	results := make([]SearchResult, 0, len(s.entries))
	for _, entry := range s.entries {
		results = append(results, SearchResult{
			Content:  entry.content,
			Score:    cosineSimilarity(queryVector, entry.vector),
			Metadata: CloneMetadata(entry.metadata),
		})
	}
	s.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.entries)), nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
