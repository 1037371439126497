package db

import "github.com/groundctx/ragcore/internal/domain/search/scope"

// KNNQuery is the input for vector similarity search. Scope is translated
// into a pre-filter by the adapter; chunks embedded at a different
// dimensionality than Scope.Dimensions() never enter the comparison.
type KNNQuery struct {
	IndexName    string
	Scope        scope.Filter
	Vector       []float32
	K            int
	ReturnFields []string
}

// TextQuery is the input for BM25 lexical search over chunk content.
type TextQuery struct {
	IndexName    string
	Query        string
	Scope        scope.Filter
	TopK         int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
