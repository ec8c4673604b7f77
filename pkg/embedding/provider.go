package embedding

import "context"

// EmbeddingProvider turns text into a fixed-length vector. The dimension
// must match the vector column in the content index; a mismatch is a
// configuration error, not something handled at runtime.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
