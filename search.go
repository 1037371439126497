package ragcore

import (
	"context"
	"fmt"

	"github.com/groundctx/ragcore/internal/domain"
)

// Search runs one retrieval query. The mode, topK, limit, and similarity
// floor come from opts, falling back to the client defaults for zero values.
func (c *Client) Search(
	ctx context.Context, query string, sc Scope, opts SearchOptions,
) (SearchResponse, error) {
	filter, err := scopeToFilter(sc)
	if err != nil {
		return SearchResponse{}, err
	}

	m := modeToInternal(opts.Mode)
	resp, err := c.searchSvc.Search(ctx, m, query, filter, searchOptionsToInternal(opts, c.search))
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}

	out := SearchResponse{
		Results: resultsToPublic(resp.Results),
		Metrics: metricsToPublic(resp.Metrics),
	}
	c.trackSearch(ctx, query, sc, out)
	return out, nil
}

// SemanticSearch runs vector retrieval regardless of opts.Mode.
func (c *Client) SemanticSearch(
	ctx context.Context, query string, sc Scope, opts SearchOptions,
) (SearchResponse, error) {
	opts.Mode = SearchModeSemantic
	return c.Search(ctx, query, sc, opts)
}

// KeywordSearch runs lexical retrieval regardless of opts.Mode.
func (c *Client) KeywordSearch(
	ctx context.Context, query string, sc Scope, opts SearchOptions,
) (SearchResponse, error) {
	opts.Mode = SearchModeKeyword
	return c.Search(ctx, query, sc, opts)
}

// HybridSearch runs fused vector+lexical retrieval regardless of opts.Mode.
func (c *Client) HybridSearch(
	ctx context.Context, query string, sc Scope, opts SearchOptions,
) (SearchResponse, error) {
	opts.Mode = SearchModeHybrid
	return c.Search(ctx, query, sc, opts)
}

func (c *Client) trackSearch(ctx context.Context, query string, sc Scope, resp SearchResponse) {
	var avg float64
	for _, r := range resp.Results {
		avg += r.Similarity
	}
	if len(resp.Results) > 0 {
		avg /= float64(len(resp.Results))
	}
	c.tracker.Track(ctx, domain.Event{
		UserID:           sc.UserID,
		CompanyID:        sc.CompanyID,
		Type:             domain.EventSearch,
		DebateID:         sc.DebateID,
		QueryText:        query,
		ResultsCount:     len(resp.Results),
		AvgSimilarity:    avg,
		SearchDurationMs: resp.Metrics.Duration.Milliseconds(),
		EstimatedCost:    resp.Metrics.Cost,
	})
}
