package rag

import (
	"strings"
	"testing"

	"github.com/groundctx/ragcore/internal/domain/search/result"
)

func hit(fileName, content string, similarity float64) result.Result {
	return result.New("c-"+fileName, "d-1", content, similarity,
		result.ChunkInfo{}, result.DocumentInfo{FileName: fileName})
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(nil); got != NoContextFound {
		t.Errorf("Render(nil) = %q, want sentinel", got)
	}
	if !IsNoContext(Render(nil)) {
		t.Error("IsNoContext(Render(nil)) = false")
	}
}

func TestRenderFormat(t *testing.T) {
	results := []result.Result{
		hit("a.md", "alpha", 0.9),
		hit("b.md", "beta", 0.7),
	}

	got := Render(results)
	want := "[1] a.md (similarity: 90.0%)\nalpha\n---\n[2] b.md (similarity: 70.0%)\nbeta"
	if got != want {
		t.Errorf("Render:\n got %q\nwant %q", got, want)
	}
}

func TestRenderRanksAreOneBased(t *testing.T) {
	got := Render([]result.Result{hit("x.txt", "body", 0.5)})
	if !strings.HasPrefix(got, "[1] ") {
		t.Errorf("first rank should be [1], got %q", got)
	}
}

func TestRenderSimilarityRounding(t *testing.T) {
	got := Render([]result.Result{hit("x.txt", "body", 0.8765)})
	if !strings.Contains(got, "(similarity: 87.7%)") {
		t.Errorf("expected one-decimal percentage, got %q", got)
	}
}

func TestIsNoContext(t *testing.T) {
	if IsNoContext("some context") {
		t.Error("IsNoContext(non-sentinel) = true")
	}
	if !IsNoContext("No relevant context found.") {
		t.Error("IsNoContext(sentinel literal) = false")
	}
}
