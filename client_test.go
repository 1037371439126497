package ragcore

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}

func TestNew_NoAddress(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestNoopEmbedder(t *testing.T) {
	noop := &noopEmbedder{}
	_, err := noop.Embed(context.Background(), "test")
	if err == nil {
		t.Fatal("expected error from noopEmbedder")
	}
}

func TestEmbedderAdapter(t *testing.T) {
	called := false
	mock := &mockEmbedder{
		fn: func(_ context.Context, _ string) (EmbeddingResult, error) {
			called = true
			return EmbeddingResult{
				Vector:       []float32{1, 2, 3},
				Provider:     "openai",
				Model:        "text-embedding-3-small",
				Dimensions:   3,
				PromptTokens: 5,
				TotalTokens:  10,
				Cost:         0.0002,
			}, nil
		},
	}

	adapter := &embedderAdapter{inner: mock}
	result, err := adapter.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("inner embedder was not called")
	}
	if len(result.Vector) != 3 {
		t.Errorf("vector len = %d, want 3", len(result.Vector))
	}
	if result.Provider != "openai" {
		t.Errorf("provider = %q, want openai", result.Provider)
	}
	if result.TotalTokens != 10 {
		t.Errorf("total tokens = %d, want 10", result.TotalTokens)
	}
}

func TestEmbedderAdapter_Error(t *testing.T) {
	mock := &mockEmbedder{
		fn: func(_ context.Context, _ string) (EmbeddingResult, error) {
			return EmbeddingResult{}, errors.New("provider down")
		},
	}

	adapter := &embedderAdapter{inner: mock}
	_, err := adapter.Embed(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error from adapter")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithRedis("localhost:6379", "secret")(cfg)
	if cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addr = %q, want localhost:6379", cfg.addrs[0])
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}

	WithKeyPrefix("app:")(cfg)
	if cfg.keyPrefix != "app:" {
		t.Errorf("keyPrefix = %q, want app:", cfg.keyPrefix)
	}

	WithOpenAIEmbedder(OpenAIConfig{APIKey: "sk-test", Dimensions: 512})(cfg)
	if cfg.openAI == nil || cfg.openAI.APIKey != "sk-test" {
		t.Error("openAI config not applied")
	}

	WithVectorDimensions(512)(cfg)
	if cfg.dimensions != 512 {
		t.Errorf("dimensions = %d, want 512", cfg.dimensions)
	}

	WithEmbeddingCache(time.Hour)(cfg)
	if cfg.cacheTTL != time.Hour {
		t.Errorf("cacheTTL = %v, want 1h", cfg.cacheTTL)
	}

	WithAnalytics(24 * time.Hour)(cfg)
	if !cfg.analyticsEnabled || cfg.analyticsTTL != 24*time.Hour {
		t.Error("analytics options not applied")
	}

	WithChunking(ChunkOptions{Strategy: "semantic", ChunkSize: 800})(cfg)
	if cfg.chunking.Strategy != "semantic" || cfg.chunking.ChunkSize != 800 {
		t.Error("chunking options not applied")
	}

	WithSearchDefaults(SearchOptions{TopK: 20, Limit: 3})(cfg)
	if cfg.search.TopK != 20 || cfg.search.Limit != 3 {
		t.Error("search defaults not applied")
	}

	WithLogger(zap.NewNop())(cfg)
	if cfg.logger == nil {
		t.Error("logger not applied")
	}

	emb := &mockEmbedder{}
	WithEmbedder(emb)(cfg)
	if cfg.embedder != emb {
		t.Error("embedder not applied")
	}
}
