package embedding

import (
	"context"
	"errors"
	"math"
)

// ErrUnembeddable marks input the embedding model cannot process
// (empty or over the model's input limit). Callers should skip the
// offending document instead of failing the whole batch.
var ErrUnembeddable = errors.New("text cannot be embedded")

// Provider defines the interface for generating text embeddings
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// normalizeVector normalizes a vector to unit length (magnitude = 1).
// Cosine distance backends expect normalized vectors for accurate scores.
func normalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	// Avoid division by zero
	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
