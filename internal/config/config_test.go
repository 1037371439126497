package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/groundctx/ragcore/internal/chunker"
)

func validConfig() Config {
	cfg := Config{
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.Storage.KeyPrefix != "ragcore:" {
		t.Errorf("expected KeyPrefix='ragcore:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Chunking.Strategy != "recursive" {
		t.Errorf("expected recursive strategy, got %q", cfg.Chunking.Strategy)
	}
	if cfg.Chunking.ChunkSize != 1000 {
		t.Errorf("expected chunk size 1000, got %d", cfg.Chunking.ChunkSize)
	}
	if cfg.Search.TopK != 10 || cfg.Search.Limit != 5 {
		t.Errorf("search defaults = %+v", cfg.Search)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" || cfg.Embedding.Dimensions != 1536 {
		t.Errorf("embedding defaults = %+v", cfg.Embedding)
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_BadStrategy(t *testing.T) {
	cfg := validConfig()
	cfg.Chunking.Strategy = "magic"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestValidate_OverlapTooLarge(t *testing.T) {
	cfg := validConfig()
	cfg.Chunking.ChunkSize = 100
	cfg.Chunking.ChunkOverlap = 100

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for overlap >= size")
	}
}

func TestValidate_MinSimilarityRange(t *testing.T) {
	cfg := validConfig()
	cfg.Search.MinSimilarity = 1.5

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for min_similarity > 1")
	}
}

func TestChunkerOptions(t *testing.T) {
	cfg := validConfig()
	cfg.Chunking = ChunkingConfig{Strategy: "semantic", ChunkSize: 500, ChunkOverlap: 50, MinChunkSize: 20}

	opts := cfg.ChunkerOptions()
	if opts.Strategy != chunker.StrategySemantic || opts.ChunkSize != 500 ||
		opts.ChunkOverlap != 50 || opts.MinChunkSize != 20 {
		t.Errorf("options = %+v", opts)
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
database:
  addrs: ["${RAGCORE_TEST_ADDR}"]
embedding:
  api_key: "${RAGCORE_TEST_KEY:-fallback-key}"
storage:
  key_prefix: "test:"
`)
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), content, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("RAGCORE_TEST_ADDR", "redis-1:6379")
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatal(err)
		}
	})

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Database.Addrs) != 1 || cfg.Database.Addrs[0] != "redis-1:6379" {
		t.Errorf("addrs = %v", cfg.Database.Addrs)
	}
	if cfg.Embedding.APIKey != "fallback-key" {
		t.Errorf("api key = %q, want default expansion", cfg.Embedding.APIKey)
	}
	if cfg.Storage.KeyPrefix != "test:" {
		t.Errorf("key prefix = %q", cfg.Storage.KeyPrefix)
	}
}
