package ragcore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/groundctx/ragcore/internal/chunker"
	"github.com/groundctx/ragcore/internal/domain"
	"github.com/groundctx/ragcore/internal/domain/search/mode"
	"github.com/groundctx/ragcore/internal/domain/search/result"
)

func TestScopeToFilter(t *testing.T) {
	f, err := scopeToFilter(Scope{
		UserID:      "u-1",
		CompanyID:   "c-1",
		DebateID:    "d-1",
		DocumentIDs: []string{"doc-a", "doc-b"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.UserID() != "u-1" {
		t.Errorf("UserID = %q, want u-1", f.UserID())
	}
	if f.CompanyID() != "c-1" {
		t.Errorf("CompanyID = %q, want c-1", f.CompanyID())
	}
	if f.DebateID() != "d-1" {
		t.Errorf("DebateID = %q, want d-1", f.DebateID())
	}
	if len(f.DocumentIDs()) != 2 {
		t.Errorf("len(DocumentIDs) = %d, want 2", len(f.DocumentIDs()))
	}
}

func TestScopeToFilter_MissingUserID(t *testing.T) {
	_, err := scopeToFilter(Scope{CompanyID: "c-1"})
	if !errors.Is(err, domain.ErrInvalidScope) {
		t.Fatalf("err = %v, want ErrInvalidScope", err)
	}
}

func TestModeToInternal(t *testing.T) {
	cases := []struct {
		in   SearchMode
		want mode.Mode
	}{
		{SearchModeSemantic, mode.Semantic},
		{SearchModeKeyword, mode.Keyword},
		{SearchModeHybrid, mode.Hybrid},
		{"", mode.Semantic},
	}
	for _, c := range cases {
		if got := modeToInternal(c.in); got != c.want {
			t.Errorf("modeToInternal(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSearchOptionsToInternal_Defaults(t *testing.T) {
	defaults := SearchOptions{TopK: 20, Limit: 7, MinSimilarity: 0.4}

	got := searchOptionsToInternal(SearchOptions{}, defaults)
	if got.TopK != 20 || got.Limit != 7 || got.MinSimilarity != 0.4 {
		t.Errorf("got %+v, want defaults applied", got)
	}

	got = searchOptionsToInternal(SearchOptions{TopK: 5, Limit: 2, MinSimilarity: 0.1}, defaults)
	if got.TopK != 5 || got.Limit != 2 || got.MinSimilarity != 0.1 {
		t.Errorf("got %+v, want explicit values kept", got)
	}
}

func TestResultRoundTrip(t *testing.T) {
	uploaded := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	internal := result.New("doc-1:2", "doc-1", "alpha", 0.91,
		result.ChunkInfo{
			Index:         2,
			StartPos:      100,
			EndPos:        200,
			TokenEstimate: 25,
			PageNumber:    3,
			SectionTitle:  "Intro",
		},
		result.DocumentInfo{
			FileName:   "a.md",
			FileType:   "md",
			UploadedAt: uploaded,
			Tags:       []string{"x", "y"},
		}).WithRerankScore(0.77)

	pub := resultToPublic(internal)
	if pub.ChunkID != "doc-1:2" || pub.DocumentID != "doc-1" {
		t.Errorf("ids = %q/%q, want doc-1:2/doc-1", pub.ChunkID, pub.DocumentID)
	}
	if pub.Content != "alpha" || pub.Similarity != 0.91 {
		t.Errorf("content/similarity = %q/%v", pub.Content, pub.Similarity)
	}
	if pub.ChunkIndex != 2 || pub.StartPos != 100 || pub.EndPos != 200 {
		t.Errorf("positions = %d/%d/%d", pub.ChunkIndex, pub.StartPos, pub.EndPos)
	}
	if pub.PageNumber != 3 || pub.SectionTitle != "Intro" {
		t.Errorf("page/section = %d/%q", pub.PageNumber, pub.SectionTitle)
	}
	if pub.FileName != "a.md" || !pub.UploadedAt.Equal(uploaded) {
		t.Errorf("document info not converted: %q %v", pub.FileName, pub.UploadedAt)
	}
	if pub.RerankScore == nil || *pub.RerankScore != 0.77 {
		t.Error("rerank score not converted")
	}

	back := resultToInternal(pub)
	if back.ChunkID() != internal.ChunkID() || back.Content() != internal.Content() {
		t.Error("round trip lost identity fields")
	}
	if back.Chunk() != internal.Chunk() {
		t.Errorf("chunk info = %+v, want %+v", back.Chunk(), internal.Chunk())
	}
	if back.RerankScore() == nil || *back.RerankScore() != 0.77 {
		t.Error("round trip lost rerank score")
	}
}

func TestChunkOptionsToInternal(t *testing.T) {
	got := chunkOptionsToInternal(ChunkOptions{
		Strategy:     "semantic",
		ChunkSize:    800,
		ChunkOverlap: 100,
		Separators:   []string{"\n"},
		MinChunkSize: 50,
	})
	if got.Strategy != chunker.StrategySemantic {
		t.Errorf("strategy = %q, want semantic", got.Strategy)
	}
	if got.ChunkSize != 800 || got.ChunkOverlap != 100 || got.MinChunkSize != 50 {
		t.Errorf("sizes = %d/%d/%d", got.ChunkSize, got.ChunkOverlap, got.MinChunkSize)
	}
	if len(got.Separators) != 1 || got.Separators[0] != "\n" {
		t.Errorf("separators = %v", got.Separators)
	}
}

func TestRerankerAdapter(t *testing.T) {
	inner := rerankFunc(func(_ context.Context, _ string, results []SearchResult) ([]SearchResult, error) {
		for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
			results[i], results[j] = results[j], results[i]
		}
		return results, nil
	})

	adapter := &rerankerAdapter{inner: inner}
	in := []result.Result{
		result.New("a", "d", "first", 0.9, result.ChunkInfo{}, result.DocumentInfo{}),
		result.New("b", "d", "second", 0.8, result.ChunkInfo{}, result.DocumentInfo{}),
	}

	out, err := adapter.Rerank(context.Background(), "q", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].ChunkID() != "b" || out[1].ChunkID() != "a" {
		t.Errorf("order = %q,%q, want b,a", out[0].ChunkID(), out[1].ChunkID())
	}
}

func TestRerankerAdapter_Error(t *testing.T) {
	inner := rerankFunc(func(_ context.Context, _ string, _ []SearchResult) ([]SearchResult, error) {
		return nil, errors.New("model unavailable")
	})

	adapter := &rerankerAdapter{inner: inner}
	_, err := adapter.Rerank(context.Background(), "q", nil)
	if err == nil {
		t.Fatal("expected error from adapter")
	}
}

type rerankFunc func(ctx context.Context, query string, results []SearchResult) ([]SearchResult, error)

func (f rerankFunc) Rerank(ctx context.Context, query string, results []SearchResult) ([]SearchResult, error) {
	return f(ctx, query, results)
}
