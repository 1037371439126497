// Package search implements chunk retrieval against the store's FT indexes.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/groundctx/ragcore/internal/db"
	"github.com/groundctx/ragcore/internal/domain/search/result"
	"github.com/groundctx/ragcore/internal/domain/search/scope"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// returnFields lists the hash fields a hit needs to be rendered without a
// follow-up HGETALL. The vector itself is never returned.
var returnFields = []string{
	"__content", "__vector_score",
	"document_id", "chunk_index", "start_pos", "end_pos", "token_estimate",
	"page_number", "section_title",
	"file_name", "file_type", "uploaded_at", "tags",
}

// Repo implements usecase/search.Repository over an FT-capable store.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a search repository. keyPrefix namespaces all keys and index
// names, e.g. "ragcore:".
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

func (r *Repo) indexName() string {
	return r.keyPrefix + "chunks:idx"
}

func (r *Repo) chunkKeyPrefix() string {
	return r.keyPrefix + "chunk:"
}

// SearchKNN performs scoped vector similarity search.
func (r *Repo) SearchKNN(
	ctx context.Context, sc scope.Filter, vector []float32, topK int,
) ([]result.Result, error) {
	q := &db.KNNQuery{
		IndexName:    r.indexName(),
		Scope:        sc,
		Vector:       vector,
		K:            topK,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	return r.parseResults(sr), nil
}

// SearchBM25 performs scoped lexical search over chunk content.
func (r *Repo) SearchBM25(
	ctx context.Context, sc scope.Filter, query string, topK int,
) ([]result.Result, error) {
	q := &db.TextQuery{
		IndexName:    r.indexName(),
		Query:        query,
		Scope:        sc,
		TopK:         topK,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchBM25(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search bm25: %w", err)
	}

	return r.parseResults(sr), nil
}

// parseResults converts db.SearchResult entries into domain hits. Entries
// with missing or malformed fields degrade to zero values rather than
// failing the whole result set.
func (r *Repo) parseResults(sr *db.SearchResult) []result.Result {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	prefix := r.chunkKeyPrefix()
	results := make([]result.Result, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		chunkID := strings.TrimPrefix(entry.Key, prefix)
		results = append(results, parseEntry(chunkID, entry))
	}
	return results
}

func parseEntry(chunkID string, entry db.SearchEntry) result.Result {
	f := entry.Fields

	chunk := result.ChunkInfo{
		Index:         parseInt(f["chunk_index"]),
		StartPos:      parseInt(f["start_pos"]),
		EndPos:        parseInt(f["end_pos"]),
		TokenEstimate: parseInt(f["token_estimate"]),
		PageNumber:    parseInt(f["page_number"]),
		SectionTitle:  f["section_title"],
	}

	doc := result.DocumentInfo{
		FileName: f["file_name"],
		FileType: f["file_type"],
		Tags:     parseTags(f["tags"]),
	}
	if ts := parseInt64(f["uploaded_at"]); ts > 0 {
		doc.UploadedAt = time.UnixMilli(ts).UTC()
	}

	return result.New(chunkID, f["document_id"], f["__content"], entry.Score, chunk, doc)
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
