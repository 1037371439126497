package ragcore

import (
	"testing"
	"time"

	"github.com/groundctx/ragcore/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	fileCfg := config.Config{}
	fileCfg.Database.Addrs = []string{"redis-1:6379", "redis-2:6379"}
	fileCfg.Database.Password = "secret"
	fileCfg.Database.ReadinessTimeout = 5
	fileCfg.Storage.KeyPrefix = "app:"
	fileCfg.Embedding.APIKey = "sk-test"
	fileCfg.Embedding.Model = "text-embedding-3-large"
	fileCfg.Embedding.Dimensions = 3072
	fileCfg.Cache.Enabled = true
	fileCfg.Cache.TTLSec = 600
	fileCfg.Analytics.Enabled = true
	fileCfg.Analytics.TTLDays = 7
	fileCfg.Chunking.Strategy = "fixed"
	fileCfg.Chunking.ChunkSize = 500
	fileCfg.Search.TopK = 15

	cfg := &clientConfig{}
	for _, o := range optionsFromConfig(fileCfg) {
		o(cfg)
	}

	if len(cfg.addrs) != 2 || cfg.addrs[1] != "redis-2:6379" {
		t.Errorf("addrs = %v, want both redis addrs", cfg.addrs)
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}
	if cfg.readinessTimeout != 5*time.Second {
		t.Errorf("readinessTimeout = %v, want 5s", cfg.readinessTimeout)
	}
	if cfg.keyPrefix != "app:" {
		t.Errorf("keyPrefix = %q, want app:", cfg.keyPrefix)
	}
	if cfg.openAI == nil || cfg.openAI.Model != "text-embedding-3-large" || cfg.openAI.Dimensions != 3072 {
		t.Error("embedding config not mapped")
	}
	if cfg.cacheTTL != 10*time.Minute {
		t.Errorf("cacheTTL = %v, want 10m", cfg.cacheTTL)
	}
	if !cfg.analyticsEnabled || cfg.analyticsTTL != 7*24*time.Hour {
		t.Error("analytics config not mapped")
	}
	if cfg.chunking.Strategy != "fixed" || cfg.chunking.ChunkSize != 500 {
		t.Error("chunking config not mapped")
	}
	if cfg.search.TopK != 15 {
		t.Errorf("search.TopK = %d, want 15", cfg.search.TopK)
	}
}

func TestOptionsFromConfig_DisabledFeatures(t *testing.T) {
	fileCfg := config.Config{}
	fileCfg.Database.Addrs = []string{"localhost:6379"}

	cfg := &clientConfig{}
	for _, o := range optionsFromConfig(fileCfg) {
		o(cfg)
	}

	if cfg.cacheTTL != 0 {
		t.Errorf("cacheTTL = %v, want 0 when cache disabled", cfg.cacheTTL)
	}
	if cfg.analyticsEnabled {
		t.Error("analytics should stay disabled")
	}
}
