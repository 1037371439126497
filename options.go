package ragcore

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs            []string
	password         string
	readinessTimeout time.Duration

	keyPrefix string

	embedder   Embedder
	openAI     *OpenAIConfig
	dimensions int

	cacheTTL time.Duration

	analyticsEnabled bool
	analyticsTTL     time.Duration

	reranker Reranker

	chunking ChunkOptions
	search   SearchOptions

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithKeyPrefix namespaces every key and index the client writes.
// Default: "ragcore:".
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// OpenAIConfig configures the built-in OpenAI-compatible embedding client.
type OpenAIConfig struct {
	APIKey               string
	BaseURL              string // empty for api.openai.com
	Model                string // default text-embedding-3-small
	Dimensions           int    // default 1536
	CostPerMillionTokens float64
}

// WithOpenAIEmbedder uses the built-in OpenAI-compatible embedding client.
func WithOpenAIEmbedder(cfg OpenAIConfig) Option {
	return func(c *clientConfig) {
		c.openAI = &cfg
	}
}

// WithEmbedder sets a custom embedding provider. Takes precedence over
// WithOpenAIEmbedder.
func WithEmbedder(e Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithVectorDimensions sets the dimensionality the chunk index is built
// with. Defaults to the embedder's reported dimensionality, or 1536.
func WithVectorDimensions(dim int) Option {
	return func(c *clientConfig) {
		c.dimensions = dim
	}
}

// WithEmbeddingCache caches embeddings in the store for the given TTL,
// deduplicating repeat embedding calls for identical text.
func WithEmbeddingCache(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheTTL = ttl
	}
}

// WithAnalytics enables best-effort usage event recording. Events expire
// after ttl; pass 0 for the default retention.
func WithAnalytics(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.analyticsEnabled = true
		c.analyticsTTL = ttl
	}
}

// WithReranker sets a post-fusion reordering hook. Default: results keep
// their fused order.
func WithReranker(r Reranker) Option {
	return func(c *clientConfig) {
		c.reranker = r
	}
}

// WithChunking sets the default chunking parameters used by Ingest when a
// request does not override them.
func WithChunking(opts ChunkOptions) Option {
	return func(c *clientConfig) {
		c.chunking = opts
	}
}

// WithSearchDefaults sets the default retrieval parameters used when a
// search call does not override them.
func WithSearchDefaults(opts SearchOptions) Option {
	return func(c *clientConfig) {
		c.search = opts
	}
}

// WithLogger enables structured logging for client operations.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
