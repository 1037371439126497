// Package analytics persists usage events as expiring records in the store.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/groundctx/ragcore/internal/domain"
)

// DefaultTTL keeps events around long enough for reporting jobs to drain
// them without growing the keyspace unbounded.
const DefaultTTL = 30 * 24 * time.Hour

// store is the consumer interface for event persistence (ISP).
type store interface {
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type record struct {
	ID               string            `json:"id"`
	UserID           string            `json:"user_id"`
	CompanyID        string            `json:"company_id,omitempty"`
	Type             string            `json:"type"`
	DebateID         string            `json:"debate_id,omitempty"`
	DocumentID       string            `json:"document_id,omitempty"`
	QueryText        string            `json:"query_text,omitempty"`
	ResultsCount     int               `json:"results_count"`
	AvgSimilarity    float64           `json:"avg_similarity,omitempty"`
	SearchDurationMs int64             `json:"search_duration_ms,omitempty"`
	TokensUsed       int               `json:"tokens_used,omitempty"`
	EstimatedCost    float64           `json:"estimated_cost,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	CreatedAt        int64             `json:"created_at"` // unix millis
}

// Sink implements domain.AnalyticsSink over a TTL'd key-value store.
type Sink struct {
	store     store
	keyPrefix string
	ttl       time.Duration
	now       func() time.Time
}

// New creates a store-backed analytics sink. A non-positive ttl falls back
// to DefaultTTL.
func New(s store, keyPrefix string, ttl time.Duration) *Sink {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Sink{store: s, keyPrefix: keyPrefix + "analytics:", ttl: ttl, now: time.Now}
}

// Record persists one event under a fresh UUID key.
func (s *Sink) Record(ctx context.Context, ev domain.Event) error {
	id := uuid.NewString()
	rec := record{
		ID:               id,
		UserID:           ev.UserID,
		CompanyID:        ev.CompanyID,
		Type:             string(ev.Type),
		DebateID:         ev.DebateID,
		DocumentID:       ev.DocumentID,
		QueryText:        ev.QueryText,
		ResultsCount:     ev.ResultsCount,
		AvgSimilarity:    ev.AvgSimilarity,
		SearchDurationMs: ev.SearchDurationMs,
		TokensUsed:       ev.TokensUsed,
		EstimatedCost:    ev.EstimatedCost,
		Metadata:         ev.Metadata,
		CreatedAt:        s.now().UnixMilli(),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := s.store.SetWithTTL(ctx, s.keyPrefix+id, data, s.ttl); err != nil {
		return fmt.Errorf("store event: %w", err)
	}
	return nil
}
