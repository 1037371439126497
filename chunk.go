package ragcore

import (
	"fmt"

	"github.com/groundctx/ragcore/internal/chunker"
)

// ChunkDocument splits content into bounded, overlapping chunks without
// touching the store. Pure and deterministic; useful for previewing how a
// document would be ingested.
func ChunkDocument(content string, opts ChunkOptions) ([]Chunk, error) {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 1000
	}
	chunks, err := chunker.Chunk(content, chunkOptionsToInternal(opts))
	if err != nil {
		return nil, fmt.Errorf("chunk document: %w", err)
	}

	out := make([]Chunk, len(chunks))
	for i, ch := range chunks {
		out[i] = chunkToPublic(ch)
	}
	return out, nil
}
