package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/groundctx/ragcore/internal/domain"
)

type mockStore struct {
	key   string
	value []byte
	ttl   time.Duration
	err   error
}

func (m *mockStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.key, m.value, m.ttl = key, value, ttl
	return m.err
}

func TestRecordPersistsEvent(t *testing.T) {
	store := &mockStore{}
	sink := New(store, "ragcore:", time.Hour)
	sink.now = func() time.Time { return time.UnixMilli(1740830400000) }

	ev := domain.Event{
		UserID:       "user-1",
		Type:         domain.EventSearch,
		QueryText:    "climate",
		ResultsCount: 3,
	}
	if err := sink.Record(context.Background(), ev); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if !strings.HasPrefix(store.key, "ragcore:analytics:") {
		t.Errorf("key = %q, want ragcore:analytics: prefix", store.key)
	}
	if store.ttl != time.Hour {
		t.Errorf("ttl = %v, want 1h", store.ttl)
	}

	var rec record
	if err := json.Unmarshal(store.value, &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.UserID != "user-1" || rec.Type != "search" || rec.ResultsCount != 3 {
		t.Errorf("record = %+v", rec)
	}
	if rec.CreatedAt != 1740830400000 {
		t.Errorf("created at = %d", rec.CreatedAt)
	}
	if rec.ID == "" || !strings.HasSuffix(store.key, rec.ID) {
		t.Errorf("key %q does not end with event id %q", store.key, rec.ID)
	}
}

func TestRecordDefaultTTL(t *testing.T) {
	store := &mockStore{}
	sink := New(store, "ragcore:", 0)

	if err := sink.Record(context.Background(), domain.Event{UserID: "u"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if store.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", store.ttl, DefaultTTL)
	}
}

func TestRecordStoreError(t *testing.T) {
	storeErr := errors.New("down")
	sink := New(&mockStore{err: storeErr}, "ragcore:", time.Hour)

	if err := sink.Record(context.Background(), domain.Event{UserID: "u"}); !errors.Is(err, storeErr) {
		t.Errorf("error = %v, want wrapped %v", err, storeErr)
	}
}
