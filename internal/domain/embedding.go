package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult carries the embedding vector and usage through the decorator chain.
type EmbeddingResult struct {
	Vector       []float32
	Provider     string
	Model        string
	Dimensions   int
	PromptTokens int
	TotalTokens  int
	Cost         float64
}
