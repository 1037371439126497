// Package rag assembles retrieved chunks into a context block for a
// downstream generation step, and scores the assembled context.
package rag

import (
	"fmt"
	"strings"

	"github.com/groundctx/ragcore/internal/domain/search/result"
)

// NoContextFound is returned when retrieval produced zero results. Kept as
// an exported literal because existing consumers pattern-match on it; new
// callers should use IsNoContext instead.
const NoContextFound = "No relevant context found."

// IsNoContext reports whether an assembled context is the empty sentinel.
func IsNoContext(context string) bool {
	return context == NoContextFound
}

const sourceSeparator = "\n---\n"

// Render formats ranked results into a single context block: each hit as
// "[rank] fileName (similarity: NN.N%)" followed by its content, separated
// by a divider line. QualityScore re-parses this exact layout; changes here
// must keep it parseable.
func Render(results []result.Result) string {
	if len(results) == 0 {
		return NoContextFound
	}

	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = fmt.Sprintf("[%d] %s (similarity: %.1f%%)\n%s",
			i+1, r.Document().FileName, r.Similarity()*100, r.Content())
	}
	return strings.Join(blocks, sourceSeparator)
}
