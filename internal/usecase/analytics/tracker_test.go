package analytics

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/groundctx/ragcore/internal/domain"
)

type mockSink struct {
	events []domain.Event
	err    error
}

func (m *mockSink) Record(_ context.Context, ev domain.Event) error {
	m.events = append(m.events, ev)
	return m.err
}

func TestTrackRecords(t *testing.T) {
	sink := &mockSink{}
	tr := New(sink, zap.NewNop())

	tr.Track(context.Background(), domain.Event{UserID: "u", Type: domain.EventSearch})

	if len(sink.events) != 1 {
		t.Fatalf("got %d events, want 1", len(sink.events))
	}
	if sink.events[0].Type != domain.EventSearch {
		t.Errorf("type = %q", sink.events[0].Type)
	}
}

func TestTrackSwallowsSinkError(t *testing.T) {
	sink := &mockSink{err: errors.New("down")}
	tr := New(sink, zap.NewNop())

	// must not panic or propagate
	tr.Track(context.Background(), domain.Event{UserID: "u"})
}

func TestTrackNilSink(t *testing.T) {
	tr := New(nil, nil)
	tr.Track(context.Background(), domain.Event{UserID: "u"})

	var nilTracker *Tracker
	nilTracker.Track(context.Background(), domain.Event{UserID: "u"})
}
