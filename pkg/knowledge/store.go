package knowledge

import (
	"context"
	"errors"
)

// ErrBackendUnavailable wraps vector-backend failures so callers can tell
// "the backend is down" apart from "nothing matched". The chat-facing
// boundary converts it into a retryable user message; it never propagates
// to the transport layer.
var ErrBackendUnavailable = errors.New("knowledge backend unavailable")

// Store persists documents as vectors and retrieves nearest neighbors.
// Implementations wrap an embedding provider plus one vector backend.
type Store interface {
	// EnsureCollection is idempotent: it checks for the collection and
	// creates it (fixed dimensionality, cosine metric) when absent. Safe
	// to call before every write.
	EnsureCollection(ctx context.Context) error

	// AddDocuments embeds and upserts each document, returning how many
	// were stored. Documents the embedder rejects are skipped, not fatal.
	// A non-nil error means the backend failed mid-batch; upserts already
	// performed are not rolled back, but retrying is safe.
	AddDocuments(ctx context.Context, docs []Document) (int, error)

	// SearchSimilar embeds the query and returns up to limit results
	// ranked by descending similarity. An empty slice with a nil error
	// means nothing matched.
	SearchSimilar(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// Count reports how many documents the collection holds.
	Count(ctx context.Context) (int64, error)
}
