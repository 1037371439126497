// Package chunk defines the chunk model: the unit of embedding and retrieval.
package chunk

// Metadata holds per-chunk positional and sizing information.
// StartPos/EndPos are document-relative character offsets, EndPos exclusive.
type Metadata struct {
	StartPos      int
	EndPos        int
	TokenEstimate int
	CharCount     int
	HasOverlap    bool
	SentenceCount int
	Custom        map[string]string
}

// Chunk is a bounded contiguous (or overlap-stitched) substring of a document.
// Chunks are produced in one batch per document and are immutable; re-chunking
// supersedes them rather than mutating in place.
type Chunk struct {
	Content  string
	Index    int
	Metadata Metadata
}

// EstimateTokens approximates token count as ceil(chars/4). This heuristic is
// relied on for cost comparability across the system and must not change.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}
