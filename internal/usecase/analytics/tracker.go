// Package analytics provides best-effort usage tracking. A failing sink
// must never fail or slow the operation being tracked.
package analytics

import (
	"context"

	"go.uber.org/zap"

	"github.com/groundctx/ragcore/internal/domain"
)

// Tracker fans events into a sink, swallowing sink failures.
type Tracker struct {
	sink domain.AnalyticsSink
	log  *zap.Logger
}

// New creates a tracker. A nil sink disables tracking entirely.
func New(sink domain.AnalyticsSink, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{sink: sink, log: log}
}

// Track records an event. Errors are logged and dropped.
func (t *Tracker) Track(ctx context.Context, ev domain.Event) {
	if t == nil || t.sink == nil {
		return
	}
	if err := t.sink.Record(ctx, ev); err != nil {
		t.log.Warn("analytics event dropped",
			zap.String("type", string(ev.Type)),
			zap.String("user_id", ev.UserID),
			zap.Error(err))
	}
}
