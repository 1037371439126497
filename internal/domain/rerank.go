package domain

import (
	"context"

	"github.com/groundctx/ragcore/internal/domain/search/result"
)

// Reranker reorders search results after fusion. Implementations may call
// out to a cross-encoder or scoring model; the default keeps the input order.
type Reranker interface {
	Rerank(ctx context.Context, query string, results []result.Result) ([]result.Result, error)
}

// NopReranker is the default pass-through implementation. Callers must not
// assume any reordering occurs.
type NopReranker struct{}

// Rerank returns results unchanged.
func (NopReranker) Rerank(_ context.Context, _ string, results []result.Result) ([]result.Result, error) {
	return results, nil
}
