package domain

import "context"

// EventType classifies a usage event.
type EventType string

// Usage event types.
const (
	EventDocumentUpload  EventType = "document_upload"
	EventSearch          EventType = "search"
	EventDebateInjection EventType = "debate_injection"
	EventManualSearch    EventType = "manual_search"
)

// Event is a usage record sent to the analytics sink. Best-effort only:
// sinks must never fail the caller's retrieval.
type Event struct {
	UserID           string
	CompanyID        string
	Type             EventType
	DebateID         string
	DocumentID       string
	QueryText        string
	ResultsCount     int
	AvgSimilarity    float64
	SearchDurationMs int64
	TokensUsed       int
	EstimatedCost    float64
	Metadata         map[string]string
}

// AnalyticsSink receives usage events.
type AnalyticsSink interface {
	Record(ctx context.Context, ev Event) error
}
