// Package search holds cross-mode retrieval types that do not belong to a
// single sub-package.
package search

import "time"

// Metrics is the per-query observability record. Ephemeral: produced for
// logging and analytics, never persisted as domain state.
type Metrics struct {
	Duration      time.Duration
	EmbeddingTime time.Duration
	SearchTime    time.Duration
	ResultsCount  int
	Provider      string
	Dimensions    int
	Cost          float64
}
