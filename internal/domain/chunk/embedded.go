package chunk

import (
	"strconv"
	"time"
)

// EmbeddedChunk is a chunk ready for persistence: content plus its vector
// and the tenant/document attributes retrieval filters on. Document fields
// are denormalized so a search hit renders without a second lookup.
type EmbeddedChunk struct {
	DocumentID string
	Chunk      Chunk
	Vector     []float32

	UserID    string
	CompanyID string
	DebateID  string

	PageNumber   int
	SectionTitle string

	FileName   string
	FileType   string
	UploadedAt time.Time
	Tags       []string
}

// ID is the stable chunk identifier, deterministic per document and index
// so re-ingesting a document supersedes its chunks in place.
func (e *EmbeddedChunk) ID() string {
	return e.DocumentID + ":" + strconv.Itoa(e.Chunk.Index)
}

// Dimensions returns the vector dimensionality.
func (e *EmbeddedChunk) Dimensions() int {
	return len(e.Vector)
}
