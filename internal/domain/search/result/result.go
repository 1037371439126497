// Package result defines the search hit model shared by all retrieval modes.
package result

import "time"

// DocumentInfo carries owning-document metadata alongside a hit.
type DocumentInfo struct {
	FileName   string
	FileType   string
	UploadedAt time.Time
	Tags       []string
}

// ChunkInfo carries chunk metadata alongside a hit.
type ChunkInfo struct {
	Index         int
	StartPos      int
	EndPos        int
	TokenEstimate int
	PageNumber    int
	SectionTitle  string
}

// Result is a single search hit. Similarity is in [0,1] for semantic and
// keyword hits; for fused hits it is the RRF score, an ordering signal
// rather than a probability.
type Result struct {
	chunkID     string
	documentID  string
	content     string
	similarity  float64
	chunk       ChunkInfo
	document    DocumentInfo
	rerankScore *float64
}

// New creates a search result.
func New(
	chunkID, documentID, content string, similarity float64,
	chunk ChunkInfo, document DocumentInfo,
) Result {
	return Result{
		chunkID: chunkID, documentID: documentID,
		content: content, similarity: similarity,
		chunk: chunk, document: document,
	}
}

// ChunkID returns the chunk identifier.
func (r *Result) ChunkID() string { return r.chunkID }

// DocumentID returns the owning document identifier.
func (r *Result) DocumentID() string { return r.documentID }

// Content returns the chunk content.
func (r *Result) Content() string { return r.content }

// Similarity returns the relevance score.
func (r *Result) Similarity() float64 { return r.similarity }

// Chunk returns the chunk metadata.
func (r *Result) Chunk() ChunkInfo { return r.chunk }

// Document returns the owning-document metadata.
func (r *Result) Document() DocumentInfo { return r.document }

// RerankScore returns the reranker score, nil when no reranking happened.
func (r *Result) RerankScore() *float64 { return r.rerankScore }

// WithSimilarity returns a copy with the similarity replaced. Fusion uses
// this to overwrite the native score with the RRF score.
func (r Result) WithSimilarity(s float64) Result {
	r.similarity = s
	return r
}

// WithRerankScore returns a copy carrying a reranker score.
func (r Result) WithRerankScore(s float64) Result {
	r.rerankScore = &s
	return r
}
