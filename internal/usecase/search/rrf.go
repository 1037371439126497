package search

import (
	"sort"

	"github.com/groundctx/ragcore/internal/domain/search/result"
)

// rrfK dampens the contribution of lower-ranked entries. 60 is the value
// from the original RRF paper and works well without tuning.
const rrfK = 60

// fuseRRF merges two ranked lists with Reciprocal Rank Fusion. Each entry
// contributes 1/(k+rank) per list it appears in, ranks starting at 1.
// The fused score replaces the entry's similarity. Ties break on chunk ID
// so the output order is deterministic for identical inputs.
func fuseRRF(semantic, keyword []result.Result, topK int) []result.Result {
	type scored struct {
		res   result.Result
		score float64
	}

	fused := make(map[string]*scored, len(semantic)+len(keyword))

	for rank, r := range semantic {
		fused[r.ChunkID()] = &scored{res: r, score: 1.0 / float64(rrfK+rank+1)}
	}
	for rank, r := range keyword {
		if s, ok := fused[r.ChunkID()]; ok {
			s.score += 1.0 / float64(rrfK+rank+1)
			continue
		}
		fused[r.ChunkID()] = &scored{res: r, score: 1.0 / float64(rrfK+rank+1)}
	}

	merged := make([]scored, 0, len(fused))
	for _, s := range fused {
		merged = append(merged, *s)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].score != merged[j].score {
			return merged[i].score > merged[j].score
		}
		return merged[i].res.ChunkID() < merged[j].res.ChunkID()
	})

	if topK > 0 && len(merged) > topK {
		merged = merged[:topK]
	}

	out := make([]result.Result, len(merged))
	for i, s := range merged {
		out[i] = s.res.WithSimilarity(s.score)
	}
	return out
}
