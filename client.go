package ragcore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/groundctx/ragcore/internal/db"
	dbRedis "github.com/groundctx/ragcore/internal/db/redis"
	"github.com/groundctx/ragcore/internal/domain"
	"github.com/groundctx/ragcore/internal/metrics"
	analyticsrepo "github.com/groundctx/ragcore/internal/repository/analytics"
	chunksrepo "github.com/groundctx/ragcore/internal/repository/chunks"
	"github.com/groundctx/ragcore/internal/repository/embcache"
	searchrepo "github.com/groundctx/ragcore/internal/repository/search"
	openaitransport "github.com/groundctx/ragcore/internal/transport/openai"
	analyticsuc "github.com/groundctx/ragcore/internal/usecase/analytics"
	"github.com/groundctx/ragcore/internal/usecase/embedding"
	ingestuc "github.com/groundctx/ragcore/internal/usecase/ingest"
	raguc "github.com/groundctx/ragcore/internal/usecase/rag"
	searchuc "github.com/groundctx/ragcore/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "ragcore:"
	defaultModel            = "text-embedding-3-small"
	defaultDimensions       = 1536
)

// Client is the ragcore SDK entry point.
type Client struct {
	store      db.Store
	chunkRepo  *chunksrepo.Repo
	searchSvc  *searchuc.Service
	ragSvc     *raguc.Service
	ingestSvc  *ingestuc.Service
	tracker    *analyticsuc.Tracker
	dimensions int
	chunking   ChunkOptions
	search     SearchOptions
	log        *zap.Logger
}

// New creates a ragcore Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix: defaultKeyPrefix,
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("ragcore: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("ragcore: create redis store: %w", err)
	}

	timeout := cfg.readinessTimeout
	if timeout <= 0 {
		timeout = defaultReadinessTimeout
	}
	ctx := context.Background()
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("ragcore: database not ready: %w", err)
	}

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	return wireClient(store, cfg)
}

func wireClient(store db.Store, cfg *clientConfig) (*Client, error) {
	provider, model := "custom", ""
	var domEmb domain.Embedder = &noopEmbedder{}
	switch {
	case cfg.embedder != nil:
		domEmb = &embedderAdapter{inner: cfg.embedder}
	case cfg.openAI != nil:
		oaCfg := *cfg.openAI
		if oaCfg.Model == "" {
			oaCfg.Model = defaultModel
		}
		if oaCfg.Dimensions <= 0 {
			oaCfg.Dimensions = defaultDimensions
		}
		provider, model = "openai", oaCfg.Model
		domEmb = openaitransport.NewEmbedder(&openaitransport.Config{
			APIKey:               oaCfg.APIKey,
			BaseURL:              oaCfg.BaseURL,
			Model:                oaCfg.Model,
			Dimensions:           oaCfg.Dimensions,
			Provider:             provider,
			CostPerMillionTokens: oaCfg.CostPerMillionTokens,
			Logger:               cfg.logger,
		})
	}

	if cfg.cacheTTL > 0 {
		domEmb = embcache.New(domEmb, store, embcache.Config{
			KeyPrefix:  cfg.keyPrefix,
			Provider:   provider,
			Model:      model,
			TTL:        cfg.cacheTTL,
			CacheTotal: metrics.EmbeddingCacheTotal,
			Logger:     cfg.logger,
		})
	}
	domEmb = embedding.NewInstrumentedEmbedder(domEmb, provider, model, cfg.logger)

	dimensions := cfg.dimensions
	if dimensions <= 0 {
		if cfg.openAI != nil && cfg.openAI.Dimensions > 0 {
			dimensions = cfg.openAI.Dimensions
		} else {
			dimensions = defaultDimensions
		}
	}

	var tracker *analyticsuc.Tracker
	if cfg.analyticsEnabled {
		ttl := cfg.analyticsTTL
		if ttl <= 0 {
			ttl = analyticsrepo.DefaultTTL
		}
		sink := analyticsrepo.New(store, cfg.keyPrefix, ttl)
		tracker = analyticsuc.New(sink, cfg.logger)
	}

	var rerank searchuc.Reranker
	if cfg.reranker != nil {
		rerank = &rerankerAdapter{inner: cfg.reranker}
	}

	searchSvc := searchuc.New(searchrepo.New(store, cfg.keyPrefix), domEmb, rerank, cfg.logger)
	ragSvc := raguc.New(searchSvc, tracker, cfg.logger)
	chunkRepo := chunksrepo.New(store, cfg.keyPrefix)
	ingestSvc := ingestuc.New(chunkRepo, domEmb, tracker, cfg.logger)

	return &Client{
		store:      store,
		chunkRepo:  chunkRepo,
		searchSvc:  searchSvc,
		ragSvc:     ragSvc,
		ingestSvc:  ingestSvc,
		tracker:    tracker,
		dimensions: dimensions,
		chunking:   cfg.chunking,
		search:     cfg.search,
		log:        cfg.logger,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// EnsureIndex creates the chunk search index if it does not exist yet.
// Idempotent; call once before the first ingestion.
func (c *Client) EnsureIndex(ctx context.Context) error {
	return c.chunkRepo.EnsureIndex(ctx, c.dimensions)
}

// noopEmbedder fails on use. Installed when no embedder is configured so
// keyword-only retrieval still works.
type noopEmbedder struct{}

func (noopEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{}, errors.New(
		"ragcore: embedder not configured (use WithOpenAIEmbedder or WithEmbedder)",
	)
}
