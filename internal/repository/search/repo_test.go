package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/groundctx/ragcore/internal/db"
	"github.com/groundctx/ragcore/internal/domain/search/scope"
)

type mockStore struct {
	knnQuery  *db.KNNQuery
	textQuery *db.TextQuery
	result    *db.SearchResult
	err       error
}

func (m *mockStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.knnQuery = q
	return m.result, m.err
}

func (m *mockStore) SearchBM25(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	m.textQuery = q
	return m.result, m.err
}

func mustScope(t *testing.T) scope.Filter {
	t.Helper()
	sc, err := scope.New("user-1")
	if err != nil {
		t.Fatalf("scope.New: %v", err)
	}
	return sc
}

func TestSearchKNNBuildsQuery(t *testing.T) {
	store := &mockStore{result: &db.SearchResult{}}
	repo := New(store, "ragcore:")

	_, err := repo.SearchKNN(context.Background(), mustScope(t), []float32{0.1, 0.2}, 7)
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}

	q := store.knnQuery
	if q == nil {
		t.Fatal("store was not called")
	}
	if q.IndexName != "ragcore:chunks:idx" {
		t.Errorf("index name = %q, want %q", q.IndexName, "ragcore:chunks:idx")
	}
	if q.K != 7 {
		t.Errorf("K = %d, want 7", q.K)
	}
	if len(q.ReturnFields) == 0 {
		t.Error("expected return fields")
	}
}

func TestSearchKNNParsesEntries(t *testing.T) {
	uploaded := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &mockStore{result: &db.SearchResult{
		Total: 1,
		Entries: []db.SearchEntry{{
			Key:   "ragcore:chunk:c-1",
			Score: 0.87,
			Fields: map[string]string{
				"__content":      "the content",
				"document_id":    "d-1",
				"chunk_index":    "3",
				"start_pos":      "120",
				"end_pos":        "240",
				"token_estimate": "30",
				"page_number":    "2",
				"section_title":  "Intro",
				"file_name":      "report.pdf",
				"file_type":      "pdf",
				"uploaded_at":    "1740830400000",
				"tags":           "a,b",
			},
		}},
	}}
	repo := New(store, "ragcore:")

	results, err := repo.SearchKNN(context.Background(), mustScope(t), []float32{0.1}, 5)
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	r := results[0]
	if r.ChunkID() != "c-1" {
		t.Errorf("chunk id = %q, want %q", r.ChunkID(), "c-1")
	}
	if r.DocumentID() != "d-1" {
		t.Errorf("document id = %q, want %q", r.DocumentID(), "d-1")
	}
	if r.Content() != "the content" {
		t.Errorf("content = %q", r.Content())
	}
	if r.Similarity() != 0.87 {
		t.Errorf("similarity = %v, want 0.87", r.Similarity())
	}
	if r.Chunk().Index != 3 || r.Chunk().StartPos != 120 || r.Chunk().EndPos != 240 {
		t.Errorf("chunk info = %+v", r.Chunk())
	}
	if r.Chunk().PageNumber != 2 || r.Chunk().SectionTitle != "Intro" {
		t.Errorf("chunk info = %+v", r.Chunk())
	}
	if r.Document().FileName != "report.pdf" || r.Document().FileType != "pdf" {
		t.Errorf("document info = %+v", r.Document())
	}
	if len(r.Document().Tags) != 2 || r.Document().Tags[0] != "a" {
		t.Errorf("tags = %v", r.Document().Tags)
	}
	if got := r.Document().UploadedAt; !got.Equal(uploaded) {
		t.Errorf("uploaded at = %v, want %v", got, uploaded)
	}
}

func TestSearchKNNMalformedFieldsDegrade(t *testing.T) {
	store := &mockStore{result: &db.SearchResult{
		Total: 1,
		Entries: []db.SearchEntry{{
			Key:    "ragcore:chunk:c-2",
			Score:  0.5,
			Fields: map[string]string{"chunk_index": "not-a-number"},
		}},
	}}
	repo := New(store, "ragcore:")

	results, err := repo.SearchKNN(context.Background(), mustScope(t), []float32{0.1}, 5)
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Chunk().Index != 0 {
		t.Errorf("chunk index = %d, want 0", results[0].Chunk().Index)
	}
	if !results[0].Document().UploadedAt.IsZero() {
		t.Errorf("uploaded at = %v, want zero", results[0].Document().UploadedAt)
	}
}

func TestSearchBM25BuildsQuery(t *testing.T) {
	store := &mockStore{result: &db.SearchResult{}}
	repo := New(store, "ragcore:")

	_, err := repo.SearchBM25(context.Background(), mustScope(t), "climate policy", 4)
	if err != nil {
		t.Fatalf("SearchBM25: %v", err)
	}

	q := store.textQuery
	if q == nil {
		t.Fatal("store was not called")
	}
	if q.IndexName != "ragcore:chunks:idx" {
		t.Errorf("index name = %q", q.IndexName)
	}
	if q.Query != "climate policy" {
		t.Errorf("query = %q", q.Query)
	}
	if q.TopK != 4 {
		t.Errorf("topK = %d, want 4", q.TopK)
	}
}

func TestSearchPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("boom")
	store := &mockStore{err: storeErr}
	repo := New(store, "ragcore:")

	if _, err := repo.SearchKNN(context.Background(), mustScope(t), []float32{0.1}, 5); !errors.Is(err, storeErr) {
		t.Errorf("SearchKNN error = %v, want wrapped %v", err, storeErr)
	}
	if _, err := repo.SearchBM25(context.Background(), mustScope(t), "q", 5); !errors.Is(err, storeErr) {
		t.Errorf("SearchBM25 error = %v, want wrapped %v", err, storeErr)
	}
}

func TestParseResultsEmpty(t *testing.T) {
	repo := New(&mockStore{}, "ragcore:")
	if got := repo.parseResults(nil); got != nil {
		t.Errorf("parseResults(nil) = %v, want nil", got)
	}
	if got := repo.parseResults(&db.SearchResult{}); got != nil {
		t.Errorf("parseResults(empty) = %v, want nil", got)
	}
}
