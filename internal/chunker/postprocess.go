package chunker

import "github.com/groundctx/ragcore/internal/domain/chunk"

// Filter drops chunks whose content is shorter than minSize and reindexes
// the survivors contiguously.
func Filter(chunks []chunk.Chunk, minSize int) []chunk.Chunk {
	if minSize <= 0 {
		return chunks
	}
	kept := make([]chunk.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if len(c.Content) >= minSize {
			kept = append(kept, c)
		}
	}
	reindex(kept)
	return kept
}

// MergeSmall coalesces adjacent undersized chunks as long as the merged
// content stays within maxSize, recomputing offsets and counts on merge.
func MergeSmall(chunks []chunk.Chunk, minSize, maxSize int) []chunk.Chunk {
	if minSize <= 0 || len(chunks) == 0 {
		return chunks
	}

	merged := make([]chunk.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if len(merged) == 0 {
			merged = append(merged, c)
			continue
		}
		last := &merged[len(merged)-1]
		undersized := len(last.Content) < minSize || len(c.Content) < minSize
		if undersized && len(last.Content)+len(c.Content) <= maxSize {
			*last = mergeChunks(*last, c)
			continue
		}
		merged = append(merged, c)
	}

	reindex(merged)
	return merged
}

func mergeChunks(a, b chunk.Chunk) chunk.Chunk {
	content := a.Content + b.Content
	sentences := a.Metadata.SentenceCount + b.Metadata.SentenceCount

	return chunk.Chunk{
		Content: content,
		Index:   a.Index,
		Metadata: chunk.Metadata{
			StartPos:      a.Metadata.StartPos,
			EndPos:        b.Metadata.EndPos,
			TokenEstimate: chunk.EstimateTokens(content),
			CharCount:     len(content),
			HasOverlap:    a.Metadata.HasOverlap,
			SentenceCount: sentences,
		},
	}
}
