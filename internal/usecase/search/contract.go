package search

import (
	"context"

	"github.com/groundctx/ragcore/internal/domain"
	"github.com/groundctx/ragcore/internal/domain/search/result"
	"github.com/groundctx/ragcore/internal/domain/search/scope"
)

// Repository defines the storage contract for retrieval queries.
type Repository interface {
	// SearchKNN returns chunks by vector similarity, scoped and ordered by
	// descending similarity in [0,1].
	SearchKNN(ctx context.Context, sc scope.Filter, vector []float32, topK int) ([]result.Result, error)

	// SearchBM25 returns chunks by lexical relevance, scoped and ordered by
	// descending rank score.
	SearchBM25(ctx context.Context, sc scope.Filter, query string, topK int) ([]result.Result, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Reranker is the post-fusion reordering extension point.
type Reranker interface {
	Rerank(ctx context.Context, query string, results []result.Result) ([]result.Result, error)
}
