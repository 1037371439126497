package ragcore

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/groundctx/ragcore/internal/config"
	"github.com/groundctx/ragcore/internal/logger"
	"github.com/groundctx/ragcore/internal/version"
)

// NewFromConfig creates a Client from the YAML configuration for the given
// environment (local, dev, prod). Environment variables referenced as
// ${VAR} in the file are expanded before parsing. Extra options are applied
// on top of the file and win on conflict.
func NewFromConfig(env string, extra ...Option) (*Client, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("ragcore: load config: %w", err)
	}

	log, err := logger.New(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("ragcore: build logger: %w", err)
	}

	log.Info("ragcore client starting",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	opts := optionsFromConfig(cfg)
	opts = append(opts, WithLogger(log))
	opts = append(opts, extra...)
	return New(opts...)
}

func optionsFromConfig(cfg config.Config) []Option {
	opts := []Option{
		withAddrs(cfg.Database.Addrs, cfg.Database.Password),
		withReadinessTimeout(time.Duration(cfg.Database.ReadinessTimeout) * time.Second),
		WithKeyPrefix(cfg.Storage.KeyPrefix),
		WithOpenAIEmbedder(OpenAIConfig{
			APIKey:               cfg.Embedding.APIKey,
			BaseURL:              cfg.Embedding.BaseURL,
			Model:                cfg.Embedding.Model,
			Dimensions:           cfg.Embedding.Dimensions,
			CostPerMillionTokens: cfg.Embedding.CostPerMillionTokens,
		}),
		WithChunking(ChunkOptions{
			Strategy:     cfg.Chunking.Strategy,
			ChunkSize:    cfg.Chunking.ChunkSize,
			ChunkOverlap: cfg.Chunking.ChunkOverlap,
			MinChunkSize: cfg.Chunking.MinChunkSize,
		}),
		WithSearchDefaults(SearchOptions{
			TopK:          cfg.Search.TopK,
			Limit:         cfg.Search.Limit,
			MinSimilarity: cfg.Search.MinSimilarity,
		}),
	}
	if cfg.Cache.Enabled {
		opts = append(opts, WithEmbeddingCache(time.Duration(cfg.Cache.TTLSec)*time.Second))
	}
	if cfg.Analytics.Enabled {
		opts = append(opts, WithAnalytics(time.Duration(cfg.Analytics.TTLDays)*24*time.Hour))
	}
	return opts
}

func withAddrs(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
		c.password = password
	}
}

func withReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.readinessTimeout = d
	}
}
