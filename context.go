package ragcore

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domsearch "github.com/groundctx/ragcore/internal/domain/search"
	"github.com/groundctx/ragcore/internal/usecase/rag"
)

// NoContextFound is the sentinel returned by RelevantContext when retrieval
// came back empty. Callers must not inject it into a prompt.
const NoContextFound = rag.NoContextFound

// IsNoContext reports whether a retrieved context block is the empty-result
// sentinel.
func IsNoContext(contextBlock string) bool {
	return rag.IsNoContext(contextBlock)
}

// RelevantContext retrieves and renders a context block for a query.
// Returns the rendered block (NoContextFound when retrieval came back
// empty), the number of sources, and the retrieval metrics.
func (c *Client) RelevantContext(
	ctx context.Context, query string, sc Scope, opts RAGOptions,
) (string, int, *SearchMetrics, error) {
	filter, err := scopeToFilter(sc)
	if err != nil {
		return "", 0, nil, err
	}

	block, sources, metrics, err := c.ragSvc.RelevantContext(ctx, query, filter, ragOptionsToInternal(opts, c.search))
	if err != nil {
		return "", 0, nil, fmt.Errorf("relevant context: %w", err)
	}
	return block, sources, metricsPtrToPublic(metrics), nil
}

// InjectRAGContext enriches a question's context with retrieved documents.
// It never fails: disabled retrieval, a malformed scope, empty retrieval,
// and retrieval errors all degrade to the caller's context unmodified with
// RAGUsed=false.
func (c *Client) InjectRAGContext(
	ctx context.Context, question, existingContext string, sc Scope, opts RAGOptions,
) RAGInjectionResult {
	filter, err := scopeToFilter(sc)
	if err != nil {
		c.log.Warn("context injection skipped", zap.Error(err))
		return RAGInjectionResult{Question: question, EnrichedContext: existingContext}
	}

	res := c.ragSvc.InjectContext(ctx, question, existingContext, filter, ragOptionsToInternal(opts, c.search))
	return RAGInjectionResult{
		Question:        res.Question,
		EnrichedContext: res.EnrichedContext,
		RAGContext:      res.RAGContext,
		RAGUsed:         res.RAGUsed,
		SourcesCount:    res.SourcesCount,
		Metrics:         metricsPtrToPublic(res.Metrics),
	}
}

// QualityScore rates an injection outcome on a 0-100 scale from average
// source similarity, source coverage, and context volume.
func QualityScore(res RAGInjectionResult) int {
	return rag.QualityScore(rag.InjectionResult{
		Question:        res.Question,
		EnrichedContext: res.EnrichedContext,
		RAGContext:      res.RAGContext,
		RAGUsed:         res.RAGUsed,
		SourcesCount:    res.SourcesCount,
	})
}

func ragOptionsToInternal(opts RAGOptions, defaults SearchOptions) rag.Options {
	return rag.Options{
		Enabled:    opts.Enabled,
		HybridMode: opts.HybridMode,
		Search:     searchOptionsToInternal(opts.Search, defaults),
	}
}

func metricsPtrToPublic(m *domsearch.Metrics) *SearchMetrics {
	if m == nil {
		return nil
	}
	pub := metricsToPublic(*m)
	return &pub
}
