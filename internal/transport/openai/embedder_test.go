package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/groundctx/ragcore/internal/domain"
	"github.com/groundctx/ragcore/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterEmbeddingMetrics()
	os.Exit(m.Run())
}

// embeddingResponse mirrors the OpenAI-compatible API embedding response.
type embeddingResponse struct {
	Object string `json:"object"`
	Data   []struct {
		Object    string    `json:"object"`
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Model string `json:"model"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

func newTestServer(t *testing.T, vec []float32, tokens int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var resp embeddingResponse
		resp.Object = "list"
		resp.Data = make([]struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}, 1)
		resp.Data[0].Object = "embedding"
		resp.Data[0].Embedding = vec
		resp.Model = "test-model"
		resp.Usage.PromptTokens = tokens
		resp.Usage.TotalTokens = tokens
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestEmbedder_Embed(t *testing.T) {
	vec := []float32{0.1, 0.2, 0.3, 0.4}
	srv := newTestServer(t, vec, 7)
	defer srv.Close()

	e := NewEmbedder(&Config{
		APIKey:               "test-key",
		BaseURL:              srv.URL + "/v1",
		Model:                "test-model",
		Provider:             "test",
		CostPerMillionTokens: 20,
	})

	res, err := e.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Vector) != 4 {
		t.Fatalf("expected 4-dim vector, got %d", len(res.Vector))
	}
	if res.Dimensions != 4 {
		t.Errorf("dimensions = %d, want 4", res.Dimensions)
	}
	if res.Provider != "test" {
		t.Errorf("provider = %q, want %q", res.Provider, "test")
	}
	if res.TotalTokens != 7 {
		t.Errorf("totalTokens = %d, want 7", res.TotalTokens)
	}
	wantCost := 7.0 / 1e6 * 20
	if res.Cost != wantCost {
		t.Errorf("cost = %g, want %g", res.Cost, wantCost)
	}
}

func TestEmbedder_Embed_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"detail":"upstream exploded"}`))
	}))
	defer srv.Close()

	e := NewEmbedder(&Config{APIKey: "k", BaseURL: srv.URL + "/v1", Model: "m", Provider: "test"})

	_, err := e.Embed(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrEmbeddingProvider) {
		t.Errorf("expected ErrEmbeddingProvider, got %v", err)
	}
}

func TestEmbedder_Embed_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[],"usage":{"prompt_tokens":0,"total_tokens":0}}`))
	}))
	defer srv.Close()

	e := NewEmbedder(&Config{APIKey: "k", BaseURL: srv.URL + "/v1", Model: "m", Provider: "test"})

	_, err := e.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrEmbeddingProvider) {
		t.Errorf("expected ErrEmbeddingProvider, got %v", err)
	}
}
