// Package chunker splits canonical document content into bounded,
// overlapping segments ready for embedding. Three interchangeable strategies
// are provided; all of them share the same option validation, metadata
// shape, and edge-case behavior.
package chunker

import (
	"fmt"

	"github.com/groundctx/ragcore/internal/domain"
	"github.com/groundctx/ragcore/internal/domain/chunk"
)

// Strategy selects the splitting algorithm.
type Strategy string

// Supported chunking strategies.
const (
	StrategyFixed     Strategy = "fixed"
	StrategyRecursive Strategy = "recursive"
	StrategySemantic  Strategy = "semantic"
)

// DefaultSeparators is the recursive strategy's separator descent:
// sections, paragraphs, lines, sentence-ending punctuation, clauses, words.
var DefaultSeparators = []string{"\n\n\n", "\n\n", "\n", ". ", "! ", "? ", "; ", ", ", " "}

// Options configures a chunking run.
type Options struct {
	Strategy     Strategy
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
	MinChunkSize int
}

// Validate fails fast on inconsistent sizing before any splitting occurs.
func (o Options) Validate() error {
	if o.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d",
			domain.ErrInvalidChunkOptions, o.ChunkSize)
	}
	if o.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap must be non-negative, got %d",
			domain.ErrInvalidChunkOptions, o.ChunkOverlap)
	}
	if o.ChunkOverlap >= o.ChunkSize {
		return fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidChunkOptions, o.ChunkOverlap, o.ChunkSize)
	}
	switch o.Strategy {
	case StrategyFixed, StrategyRecursive, StrategySemantic, "":
	default:
		return fmt.Errorf("%w: unknown strategy %q", domain.ErrInvalidChunkOptions, o.Strategy)
	}
	return nil
}

// Chunk splits content per the configured strategy. The produced chunks are
// indexed contiguously from zero and are immutable: re-chunking a document
// supersedes the previous batch.
func Chunk(content string, opts Options) ([]chunk.Chunk, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Strategy == "" {
		opts.Strategy = StrategyRecursive
	}

	// Empty input yields exactly one empty chunk; input that already fits
	// yields exactly one chunk equal to the input, regardless of strategy.
	if len(content) <= opts.ChunkSize {
		return []chunk.Chunk{newChunk(content, 0, 0, false, 0)}, nil
	}

	var chunks []chunk.Chunk
	switch opts.Strategy {
	case StrategyFixed:
		chunks = chunkFixed(content, 0, opts)
	case StrategyRecursive:
		seps := opts.Separators
		if len(seps) == 0 {
			seps = DefaultSeparators
		}
		b := &builder{opts: opts}
		b.splitRecursive(content, 0, seps)
		chunks = b.chunks
	case StrategySemantic:
		chunks = chunkSemantic(content, opts)
	}

	if opts.MinChunkSize > 0 {
		chunks = Filter(chunks, opts.MinChunkSize)
	}

	reindex(chunks)
	return chunks, nil
}

// newChunk builds a chunk with derived metadata. startPos is the
// document-relative offset of the chunk's first character.
func newChunk(content string, index, startPos int, hasOverlap bool, sentences int) chunk.Chunk {
	return chunk.Chunk{
		Content: content,
		Index:   index,
		Metadata: chunk.Metadata{
			StartPos:      startPos,
			EndPos:        startPos + len(content),
			TokenEstimate: chunk.EstimateTokens(content),
			CharCount:     len(content),
			HasOverlap:    hasOverlap,
			SentenceCount: sentences,
		},
	}
}

func reindex(chunks []chunk.Chunk) {
	for i := range chunks {
		chunks[i].Index = i
	}
}
