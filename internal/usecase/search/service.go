package search

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/groundctx/ragcore/internal/domain"
	"github.com/groundctx/ragcore/internal/domain/search"
	"github.com/groundctx/ragcore/internal/domain/search/mode"
	"github.com/groundctx/ragcore/internal/domain/search/result"
	"github.com/groundctx/ragcore/internal/domain/search/scope"
	"github.com/groundctx/ragcore/internal/metrics"
)

// Defaults applied when Options fields are zero.
const (
	DefaultTopK          = 10
	DefaultLimit         = 5
	DefaultMinSimilarity = 0.3
)

// Options tune a single search call.
type Options struct {
	// TopK is the candidate count fetched from each underlying query.
	TopK int
	// Limit caps the final result list.
	Limit int
	// MinSimilarity drops semantic matches below this cosine similarity.
	// It does not apply to keyword rank scores or fused hybrid scores.
	MinSimilarity float64
}

func (o Options) withDefaults() Options {
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.MinSimilarity <= 0 {
		o.MinSimilarity = DefaultMinSimilarity
	}
	return o
}

// Response carries ranked results plus per-call performance metrics.
type Response struct {
	Results []result.Result
	Metrics search.Metrics
}

// Service handles chunk retrieval across semantic, keyword, and hybrid modes.
type Service struct {
	repo   Repository
	embed  Embedder
	rerank Reranker
	log    *zap.Logger
}

// New creates a search service. The reranker may be nil, in which case
// fused order is returned as-is.
func New(repo Repository, embed Embedder, rerank Reranker, log *zap.Logger) *Service {
	if rerank == nil {
		rerank = domain.NopReranker{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, embed: embed, rerank: rerank, log: log}
}

// Search dispatches to the requested mode and records metrics.
func (s *Service) Search(
	ctx context.Context, m mode.Mode, query string, sc scope.Filter, opts Options,
) (Response, error) {
	if !m.Valid() {
		return Response{}, fmt.Errorf("%w: unsupported search mode %q", domain.ErrSearchFailed, m)
	}
	opts = opts.withDefaults()

	start := time.Now()

	var (
		resp Response
		err  error
	)
	switch m {
	case mode.Semantic:
		resp, err = s.semantic(ctx, query, sc, opts)
	case mode.Keyword:
		resp, err = s.keyword(ctx, query, sc, opts)
	case mode.Hybrid:
		resp, err = s.hybrid(ctx, query, sc, opts)
	}
	if err != nil {
		metrics.SearchRequestsTotal.With(prometheus.Labels{"mode": string(m), "status": "error"}).Inc()
		s.log.Error("search failed",
			zap.String("mode", string(m)),
			zap.String("user_id", sc.UserID()),
			zap.Error(err))
		return Response{}, err
	}

	resp.Results, err = s.rerank.Rerank(ctx, query, resp.Results)
	if err != nil {
		metrics.SearchRequestsTotal.With(prometheus.Labels{"mode": string(m), "status": "error"}).Inc()
		return Response{}, fmt.Errorf("%w: rerank: %w", domain.ErrSearchFailed, err)
	}
	if len(resp.Results) > opts.Limit {
		resp.Results = resp.Results[:opts.Limit]
	}

	resp.Metrics.Duration = time.Since(start)
	resp.Metrics.ResultsCount = len(resp.Results)

	metrics.SearchRequestsTotal.With(prometheus.Labels{"mode": string(m), "status": "ok"}).Inc()
	metrics.SearchDuration.With(prometheus.Labels{"mode": string(m)}).
		Observe(resp.Metrics.Duration.Seconds())
	metrics.SearchResultsCount.With(prometheus.Labels{"mode": string(m)}).
		Observe(float64(len(resp.Results)))

	s.log.Debug("search complete",
		zap.String("mode", string(m)),
		zap.String("user_id", sc.UserID()),
		zap.Int("results", len(resp.Results)),
		zap.Duration("duration", resp.Metrics.Duration))

	return resp, nil
}

// semantic embeds the query and runs scoped KNN retrieval, constrained to
// chunks stored with the same vector dimensionality.
func (s *Service) semantic(
	ctx context.Context, query string, sc scope.Filter, opts Options,
) (Response, error) {
	embStart := time.Now()
	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		return Response{}, fmt.Errorf("%w: vectorize query: %w", domain.ErrSearchFailed, err)
	}
	embTime := time.Since(embStart)

	knnStart := time.Now()
	results, err := s.repo.SearchKNN(ctx, sc.WithDims(emb.Dimensions), emb.Vector, opts.TopK)
	if err != nil {
		return Response{}, fmt.Errorf("%w: search knn: %w", domain.ErrSearchFailed, err)
	}

	filtered := results[:0]
	for _, r := range results {
		if r.Similarity() >= opts.MinSimilarity {
			filtered = append(filtered, r)
		}
	}

	return Response{
		Results: filtered,
		Metrics: search.Metrics{
			EmbeddingTime: embTime,
			SearchTime:    time.Since(knnStart),
			Provider:      emb.Provider,
			Dimensions:    emb.Dimensions,
			Cost:          emb.Cost,
		},
	}, nil
}

// keyword runs scoped BM25 retrieval. No dimension predicate: lexical
// matches are valid regardless of which model embedded the chunk.
func (s *Service) keyword(
	ctx context.Context, query string, sc scope.Filter, opts Options,
) (Response, error) {
	bmStart := time.Now()
	results, err := s.repo.SearchBM25(ctx, sc.WithoutDims(), query, opts.TopK)
	if err != nil {
		return Response{}, fmt.Errorf("%w: search bm25: %w", domain.ErrSearchFailed, err)
	}
	return Response{
		Results: results,
		Metrics: search.Metrics{SearchTime: time.Since(bmStart)},
	}, nil
}

// hybrid embeds once, runs KNN and BM25 concurrently, and fuses the two
// ranked lists with RRF.
func (s *Service) hybrid(
	ctx context.Context, query string, sc scope.Filter, opts Options,
) (Response, error) {
	embStart := time.Now()
	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		return Response{}, fmt.Errorf("%w: vectorize query: %w", domain.ErrSearchFailed, err)
	}
	embTime := time.Since(embStart)

	var (
		knnResults, bm25Results []result.Result
		bm25Time                time.Duration
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var kerr error
		knnResults, kerr = s.repo.SearchKNN(gctx, sc.WithDims(emb.Dimensions), emb.Vector, opts.TopK)
		if kerr != nil {
			return fmt.Errorf("search knn: %w", kerr)
		}
		filtered := knnResults[:0]
		for _, r := range knnResults {
			if r.Similarity() >= opts.MinSimilarity {
				filtered = append(filtered, r)
			}
		}
		knnResults = filtered
		return nil
	})
	g.Go(func() error {
		bmStart := time.Now()
		var berr error
		bm25Results, berr = s.repo.SearchBM25(gctx, sc.WithoutDims(), query, opts.TopK)
		bm25Time = time.Since(bmStart)
		if berr != nil {
			return fmt.Errorf("search bm25: %w", berr)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Response{}, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}

	return Response{
		Results: fuseRRF(knnResults, bm25Results, opts.TopK),
		Metrics: search.Metrics{
			EmbeddingTime: embTime,
			SearchTime:    embTime + bm25Time,
			Provider:      emb.Provider,
			Dimensions:    emb.Dimensions,
			Cost:          emb.Cost,
		},
	}, nil
}
