package chunker

import "github.com/groundctx/ragcore/internal/domain/chunk"

// chunkFixed slices content by stride: chunk i starts at i*(size-overlap).
// Every chunk except possibly the last is exactly ChunkSize characters.
// base is the document-relative offset of content, so the fallback paths
// from the other strategies keep absolute positions.
func chunkFixed(content string, base int, opts Options) []chunk.Chunk {
	stride := opts.ChunkSize - opts.ChunkOverlap

	var chunks []chunk.Chunk
	for start := 0; start < len(content); start += stride {
		end := start + opts.ChunkSize
		if end > len(content) {
			end = len(content)
		}
		hasOverlap := opts.ChunkOverlap > 0 && start > 0
		chunks = append(chunks, newChunk(content[start:end], len(chunks), base+start, hasOverlap, 0))
		if end == len(content) {
			break
		}
	}
	return chunks
}
