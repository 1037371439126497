package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	domsearch "github.com/groundctx/ragcore/internal/domain/search"
	"github.com/groundctx/ragcore/internal/domain/search/mode"
	"github.com/groundctx/ragcore/internal/domain/search/result"
	"github.com/groundctx/ragcore/internal/domain/search/scope"
	"github.com/groundctx/ragcore/internal/usecase/search"
)

type mockSearcher struct {
	results []result.Result
	err     error
	mode    mode.Mode
	calls   int
}

func (m *mockSearcher) Search(
	_ context.Context, md mode.Mode, _ string, _ scope.Filter, _ search.Options,
) (search.Response, error) {
	m.calls++
	m.mode = md
	if m.err != nil {
		return search.Response{}, m.err
	}
	return search.Response{
		Results: m.results,
		Metrics: domsearch.Metrics{ResultsCount: len(m.results)},
	}, nil
}

func mustScope(t *testing.T) scope.Filter {
	t.Helper()
	sc, err := scope.New("user-1")
	if err != nil {
		t.Fatalf("scope.New: %v", err)
	}
	return sc
}

func TestInjectDisabledPassesThrough(t *testing.T) {
	searcher := &mockSearcher{results: []result.Result{hit("a.md", "alpha", 0.9)}}
	svc := New(searcher, nil, zap.NewNop())

	res := svc.InjectContext(context.Background(), "Q", "Some context", mustScope(t),
		Options{Enabled: false})

	if res.RAGUsed {
		t.Error("RAGUsed = true, want false")
	}
	if res.SourcesCount != 0 {
		t.Errorf("SourcesCount = %d, want 0", res.SourcesCount)
	}
	if res.EnrichedContext != "Some context" {
		t.Errorf("EnrichedContext = %q, want unmodified", res.EnrichedContext)
	}
	if searcher.calls != 0 {
		t.Errorf("search performed %d times, want 0", searcher.calls)
	}
}

func TestInjectSearchErrorDegrades(t *testing.T) {
	searcher := &mockSearcher{err: errors.New("store down")}
	svc := New(searcher, nil, zap.NewNop())

	res := svc.InjectContext(context.Background(), "Q", "original", mustScope(t),
		Options{Enabled: true})

	if res.RAGUsed {
		t.Error("RAGUsed = true after failed retrieval")
	}
	if res.EnrichedContext != "original" {
		t.Errorf("EnrichedContext = %q, want original", res.EnrichedContext)
	}
}

func TestInjectEmptyRetrievalDegrades(t *testing.T) {
	searcher := &mockSearcher{}
	svc := New(searcher, nil, zap.NewNop())

	res := svc.InjectContext(context.Background(), "Q", "original", mustScope(t),
		Options{Enabled: true})

	if res.RAGUsed {
		t.Error("RAGUsed = true with zero results")
	}
	if res.EnrichedContext != "original" {
		t.Errorf("EnrichedContext = %q, want original", res.EnrichedContext)
	}
	if res.RAGContext != "" {
		t.Errorf("RAGContext = %q, want empty", res.RAGContext)
	}
}

func TestInjectBothContextsLabeled(t *testing.T) {
	searcher := &mockSearcher{results: []result.Result{hit("a.md", "alpha", 0.9)}}
	svc := New(searcher, nil, zap.NewNop())

	res := svc.InjectContext(context.Background(), "Q", "my notes", mustScope(t),
		Options{Enabled: true})

	if !res.RAGUsed || res.SourcesCount != 1 {
		t.Fatalf("RAGUsed=%v SourcesCount=%d", res.RAGUsed, res.SourcesCount)
	}
	if !strings.Contains(res.EnrichedContext, "=== User-Supplied Context ===\nmy notes") {
		t.Errorf("missing user section: %q", res.EnrichedContext)
	}
	if !strings.Contains(res.EnrichedContext, "=== Retrieved Documents ===\n[1] a.md") {
		t.Errorf("missing retrieved section: %q", res.EnrichedContext)
	}
	userIdx := strings.Index(res.EnrichedContext, "User-Supplied")
	ragIdx := strings.Index(res.EnrichedContext, "Retrieved Documents")
	if userIdx > ragIdx {
		t.Error("user section must precede retrieved section")
	}
}

func TestInjectRetrievedOnlyWrapped(t *testing.T) {
	searcher := &mockSearcher{results: []result.Result{hit("a.md", "alpha", 0.9)}}
	svc := New(searcher, nil, zap.NewNop())

	res := svc.InjectContext(context.Background(), "Q", "", mustScope(t),
		Options{Enabled: true})

	if !strings.HasPrefix(res.EnrichedContext, "Use the following retrieved documents") {
		t.Errorf("missing instruction wrapper: %q", res.EnrichedContext)
	}
	if !strings.Contains(res.EnrichedContext, "[1] a.md") {
		t.Errorf("missing rendered context: %q", res.EnrichedContext)
	}
}

func TestInjectHybridModeSelectsHybrid(t *testing.T) {
	searcher := &mockSearcher{results: []result.Result{hit("a.md", "alpha", 0.9)}}
	svc := New(searcher, nil, zap.NewNop())

	svc.InjectContext(context.Background(), "Q", "", mustScope(t),
		Options{Enabled: true, HybridMode: true})
	if searcher.mode != mode.Hybrid {
		t.Errorf("mode = %q, want hybrid", searcher.mode)
	}

	svc.InjectContext(context.Background(), "Q", "", mustScope(t),
		Options{Enabled: true})
	if searcher.mode != mode.Semantic {
		t.Errorf("mode = %q, want semantic", searcher.mode)
	}
}

func TestRelevantContextSentinelOnEmpty(t *testing.T) {
	svc := New(&mockSearcher{}, nil, zap.NewNop())

	got, sources, _, err := svc.RelevantContext(context.Background(), "q", mustScope(t), Options{})
	if err != nil {
		t.Fatalf("RelevantContext: %v", err)
	}
	if !IsNoContext(got) {
		t.Errorf("context = %q, want sentinel", got)
	}
	if sources != 0 {
		t.Errorf("sources = %d, want 0", sources)
	}
}
