package ragcore

import (
	"context"
	"time"
)

// Embedder vectorizes text. Implementations must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult carries a vector and its usage accounting.
type EmbeddingResult struct {
	Vector       []float32
	Provider     string
	Model        string
	Dimensions   int
	PromptTokens int
	TotalTokens  int
	Cost         float64
}

// SearchMode selects the retrieval strategy.
type SearchMode string

// Supported search modes.
const (
	SearchModeSemantic SearchMode = "semantic"
	SearchModeKeyword  SearchMode = "keyword"
	SearchModeHybrid   SearchMode = "hybrid"
)

// Scope restricts retrieval to a tenant and optional narrower slices.
// UserID is mandatory on every call.
type Scope struct {
	UserID      string
	CompanyID   string
	DebateID    string
	DocumentIDs []string
}

// SearchOptions tune a retrieval call. Zero values fall back to the
// client's defaults.
type SearchOptions struct {
	Mode          SearchMode // default semantic
	TopK          int
	Limit         int
	MinSimilarity float64
}

// SearchResult is one retrieval hit. Similarity is cosine similarity for
// semantic hits, a lexical rank score for keyword hits, and the RRF fusion
// score for hybrid hits.
type SearchResult struct {
	ChunkID       string
	DocumentID    string
	Content       string
	Similarity    float64
	ChunkIndex    int
	StartPos      int
	EndPos        int
	TokenEstimate int
	PageNumber    int
	SectionTitle  string
	FileName      string
	FileType      string
	UploadedAt    time.Time
	Tags          []string
	RerankScore   *float64
}

// SearchMetrics reports per-query timing and cost.
type SearchMetrics struct {
	Duration      time.Duration
	EmbeddingTime time.Duration
	SearchTime    time.Duration
	ResultsCount  int
	Provider      string
	Dimensions    int
	Cost          float64
}

// SearchResponse is the result of one retrieval call.
type SearchResponse struct {
	Results []SearchResult
	Metrics SearchMetrics
}

// Reranker reorders retrieval hits after fusion, e.g. via a cross-encoder.
type Reranker interface {
	Rerank(ctx context.Context, query string, results []SearchResult) ([]SearchResult, error)
}

// ChunkOptions configure document splitting.
type ChunkOptions struct {
	Strategy     string // fixed, recursive (default), semantic
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
	MinChunkSize int
}

// Chunk is one produced document fragment.
type Chunk struct {
	Content       string
	Index         int
	StartPos      int
	EndPos        int
	TokenEstimate int
	CharCount     int
	HasOverlap    bool
	SentenceCount int
}

// FileInfo describes an uploaded source document.
type FileInfo struct {
	FileName string
	FileType string // "pdf", "csv", "tsv", "md", "txt", ...
	FileSize int64
}

// IngestRequest describes one document upload. DocumentID is optional:
// pass the ID from a previous ingestion to replace that document's chunks
// instead of creating a new document.
type IngestRequest struct {
	DocumentID string
	Content    string
	File       FileInfo
	Scope      Scope
	Tags       []string
	Chunking   *ChunkOptions // nil uses the client default
}

// ChunkOutcome reports what happened to a single chunk during ingestion.
type ChunkOutcome struct {
	Index  int
	Status string // "ok" or "embed_failed"
	Err    error
}

// IngestReport summarizes one ingestion run.
type IngestReport struct {
	DocumentID   string
	ChunksTotal  int
	ChunksStored int
	ChunksFailed int
	TokensUsed   int
	Cost         float64
	Outcomes     []ChunkOutcome
}

// Document is the normalized form of an uploaded source, as produced by
// PrepareDocument and by ingestion.
type Document struct {
	ID             string
	Content        string
	CharCount      int
	TokenEstimate  int
	LineCount      int
	ParagraphCount int
	// Structure holds file-type specific hints (page estimates, row and
	// column counts, heading counts).
	Structure map[string]string
}

// RAGOptions control context injection.
type RAGOptions struct {
	Enabled    bool
	HybridMode bool
	Search     SearchOptions
}

// RAGInjectionResult is the outcome of one context injection.
// EnrichedContext is always usable, even when retrieval was skipped or
// failed.
type RAGInjectionResult struct {
	Question        string
	EnrichedContext string
	RAGContext      string
	RAGUsed         bool
	SourcesCount    int
	Metrics         *SearchMetrics
}
