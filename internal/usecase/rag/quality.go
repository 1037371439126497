package rag

import (
	"math"
	"regexp"
	"strconv"
)

// sourcePattern matches the header Render emits for each source. The scorer
// works from the rendered text, not the ranked result list, so consumers
// holding only the assembled string can score it. Keep in sync with Render.
var sourcePattern = regexp.MustCompile(`\[\d+\] .+ \(similarity: ([0-9.]+)%\)`)

// Score weights: similarity quality, source coverage, context volume.
const (
	similarityWeight = 0.5
	coverageWeight   = 0.3
	volumeWeight     = 0.2

	fullCoverageSources = 5
	fullVolumeChars     = 2000
)

// QualityScore rates an injection outcome 0..100. Zero when retrieval was
// unused or found nothing; otherwise a weighted blend of average source
// similarity, source count, and context length.
func QualityScore(res InjectionResult) int {
	if !res.RAGUsed || res.SourcesCount == 0 {
		return 0
	}

	matches := sourcePattern.FindAllStringSubmatch(res.RAGContext, -1)
	if len(matches) == 0 {
		return 0
	}

	var totalSimilarity float64
	for _, m := range matches {
		pct, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		totalSimilarity += pct
	}
	avgSimilarity := totalSimilarity / float64(len(matches))

	coverage := math.Min(float64(len(matches))/fullCoverageSources, 1)
	volume := math.Min(float64(len(res.RAGContext))/fullVolumeChars, 1)

	score := avgSimilarity*similarityWeight +
		coverage*100*coverageWeight +
		volume*100*volumeWeight

	return int(math.Round(score))
}
