package rag

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/groundctx/ragcore/internal/domain"
	domsearch "github.com/groundctx/ragcore/internal/domain/search"
	"github.com/groundctx/ragcore/internal/domain/search/mode"
	"github.com/groundctx/ragcore/internal/domain/search/scope"
	"github.com/groundctx/ragcore/internal/usecase/analytics"
	"github.com/groundctx/ragcore/internal/usecase/search"
)

// Searcher is the retrieval contract the assembler builds on.
type Searcher interface {
	Search(ctx context.Context, m mode.Mode, query string, sc scope.Filter, opts search.Options) (search.Response, error)
}

// Options control one context injection.
type Options struct {
	// Enabled gates retrieval entirely. When false the caller's context
	// passes through untouched and no search runs.
	Enabled bool
	// HybridMode switches retrieval from semantic-only to hybrid fusion.
	HybridMode bool
	// Search tunes the underlying retrieval call.
	Search search.Options
}

// InjectionResult is the outcome of one context injection. EnrichedContext
// is always usable, even when retrieval failed or was disabled.
type InjectionResult struct {
	Question        string
	EnrichedContext string
	RAGContext      string
	RAGUsed         bool
	SourcesCount    int
	Metrics         *domsearch.Metrics
}

// Service assembles retrieval output into generation-ready context.
type Service struct {
	search  Searcher
	tracker *analytics.Tracker
	log     *zap.Logger
}

// New creates a context assembly service. tracker may be nil.
func New(search Searcher, tracker *analytics.Tracker, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{search: search, tracker: tracker, log: log}
}

// RelevantContext retrieves and renders context for a query. Returns the
// rendered block (the NoContextFound sentinel when retrieval came back
// empty), the source count, and the retrieval metrics.
func (s *Service) RelevantContext(
	ctx context.Context, query string, sc scope.Filter, opts Options,
) (string, int, *domsearch.Metrics, error) {
	m := mode.Semantic
	if opts.HybridMode {
		m = mode.Hybrid
	}

	resp, err := s.search.Search(ctx, m, query, sc, opts.Search)
	if err != nil {
		return "", 0, nil, fmt.Errorf("retrieve context: %w", err)
	}

	return Render(resp.Results), len(resp.Results), &resp.Metrics, nil
}

// InjectContext enriches a question's context with retrieved documents.
// It never returns an error: disabled retrieval, empty retrieval, and
// retrieval failures all degrade to the caller's context unmodified with
// RAGUsed=false.
func (s *Service) InjectContext(
	ctx context.Context, question, existingContext string, sc scope.Filter, opts Options,
) InjectionResult {
	res := InjectionResult{
		Question:        question,
		EnrichedContext: existingContext,
	}

	if !opts.Enabled {
		return res
	}

	ragContext, sources, metrics, err := s.RelevantContext(ctx, question, sc, opts)
	if err != nil {
		s.log.Warn("context retrieval degraded",
			zap.String("user_id", sc.UserID()),
			zap.Error(err))
		return res
	}
	if IsNoContext(ragContext) {
		res.Metrics = metrics
		return res
	}

	res.RAGContext = ragContext
	res.RAGUsed = true
	res.SourcesCount = sources
	res.Metrics = metrics
	res.EnrichedContext = combineContexts(existingContext, ragContext)

	s.track(ctx, question, sc, res)

	return res
}

func combineContexts(existing, retrieved string) string {
	if existing == "" {
		return "Use the following retrieved documents to answer:\n\n" + retrieved
	}
	return "=== User-Supplied Context ===\n" + existing +
		"\n\n=== Retrieved Documents ===\n" + retrieved
}

func (s *Service) track(ctx context.Context, question string, sc scope.Filter, res InjectionResult) {
	ev := domain.Event{
		UserID:       sc.UserID(),
		CompanyID:    sc.CompanyID(),
		Type:         domain.EventDebateInjection,
		DebateID:     sc.DebateID(),
		QueryText:    question,
		ResultsCount: res.SourcesCount,
	}
	if res.Metrics != nil {
		ev.SearchDurationMs = res.Metrics.Duration.Milliseconds()
		ev.EstimatedCost = res.Metrics.Cost
	}
	s.tracker.Track(ctx, ev)
}
