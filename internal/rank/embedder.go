// Package rank scores content sections by semantic relevance to a stated
// persona and task, using an external embedding collaborator and cosine
// similarity.
package rank

import "context"

// Embedder maps each input string to one fixed-length numeric vector. It
// must be deterministic for identical input text.
type Embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}
