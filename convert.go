package ragcore

import (
	"context"
	"fmt"

	"github.com/groundctx/ragcore/internal/chunker"
	"github.com/groundctx/ragcore/internal/domain"
	domchunk "github.com/groundctx/ragcore/internal/domain/chunk"
	domsearch "github.com/groundctx/ragcore/internal/domain/search"
	"github.com/groundctx/ragcore/internal/domain/search/mode"
	"github.com/groundctx/ragcore/internal/domain/search/result"
	"github.com/groundctx/ragcore/internal/domain/search/scope"
	searchuc "github.com/groundctx/ragcore/internal/usecase/search"
)

func scopeToFilter(sc Scope) (scope.Filter, error) {
	var opts []scope.Option
	if sc.CompanyID != "" {
		opts = append(opts, scope.WithCompany(sc.CompanyID))
	}
	if sc.DebateID != "" {
		opts = append(opts, scope.WithDebate(sc.DebateID))
	}
	if len(sc.DocumentIDs) > 0 {
		opts = append(opts, scope.WithDocuments(sc.DocumentIDs...))
	}

	f, err := scope.New(sc.UserID, opts...)
	if err != nil {
		return scope.Filter{}, fmt.Errorf("%w: %w", domain.ErrInvalidScope, err)
	}
	return f, nil
}

func modeToInternal(m SearchMode) mode.Mode {
	switch m {
	case SearchModeKeyword:
		return mode.Keyword
	case SearchModeHybrid:
		return mode.Hybrid
	default:
		return mode.Semantic
	}
}

func searchOptionsToInternal(opts, defaults SearchOptions) searchuc.Options {
	merged := opts
	if merged.TopK <= 0 {
		merged.TopK = defaults.TopK
	}
	if merged.Limit <= 0 {
		merged.Limit = defaults.Limit
	}
	if merged.MinSimilarity <= 0 {
		merged.MinSimilarity = defaults.MinSimilarity
	}
	return searchuc.Options{
		TopK:          merged.TopK,
		Limit:         merged.Limit,
		MinSimilarity: merged.MinSimilarity,
	}
}

func resultToPublic(r result.Result) SearchResult {
	return SearchResult{
		ChunkID:       r.ChunkID(),
		DocumentID:    r.DocumentID(),
		Content:       r.Content(),
		Similarity:    r.Similarity(),
		ChunkIndex:    r.Chunk().Index,
		StartPos:      r.Chunk().StartPos,
		EndPos:        r.Chunk().EndPos,
		TokenEstimate: r.Chunk().TokenEstimate,
		PageNumber:    r.Chunk().PageNumber,
		SectionTitle:  r.Chunk().SectionTitle,
		FileName:      r.Document().FileName,
		FileType:      r.Document().FileType,
		UploadedAt:    r.Document().UploadedAt,
		Tags:          r.Document().Tags,
		RerankScore:   r.RerankScore(),
	}
}

func resultToInternal(r SearchResult) result.Result {
	res := result.New(r.ChunkID, r.DocumentID, r.Content, r.Similarity,
		result.ChunkInfo{
			Index:         r.ChunkIndex,
			StartPos:      r.StartPos,
			EndPos:        r.EndPos,
			TokenEstimate: r.TokenEstimate,
			PageNumber:    r.PageNumber,
			SectionTitle:  r.SectionTitle,
		},
		result.DocumentInfo{
			FileName:   r.FileName,
			FileType:   r.FileType,
			UploadedAt: r.UploadedAt,
			Tags:       r.Tags,
		})
	if r.RerankScore != nil {
		res = res.WithRerankScore(*r.RerankScore)
	}
	return res
}

func resultsToPublic(rs []result.Result) []SearchResult {
	out := make([]SearchResult, len(rs))
	for i, r := range rs {
		out[i] = resultToPublic(r)
	}
	return out
}

func metricsToPublic(m domsearch.Metrics) SearchMetrics {
	return SearchMetrics{
		Duration:      m.Duration,
		EmbeddingTime: m.EmbeddingTime,
		SearchTime:    m.SearchTime,
		ResultsCount:  m.ResultsCount,
		Provider:      m.Provider,
		Dimensions:    m.Dimensions,
		Cost:          m.Cost,
	}
}

func chunkOptionsToInternal(opts ChunkOptions) chunker.Options {
	return chunker.Options{
		Strategy:     chunker.Strategy(opts.Strategy),
		ChunkSize:    opts.ChunkSize,
		ChunkOverlap: opts.ChunkOverlap,
		Separators:   opts.Separators,
		MinChunkSize: opts.MinChunkSize,
	}
}

func chunkToPublic(c domchunk.Chunk) Chunk {
	return Chunk{
		Content:       c.Content,
		Index:         c.Index,
		StartPos:      c.Metadata.StartPos,
		EndPos:        c.Metadata.EndPos,
		TokenEstimate: c.Metadata.TokenEstimate,
		CharCount:     c.Metadata.CharCount,
		HasOverlap:    c.Metadata.HasOverlap,
		SentenceCount: c.Metadata.SentenceCount,
	}
}

// embedderAdapter wraps the public Embedder to satisfy domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Vector:       r.Vector,
		Provider:     r.Provider,
		Model:        r.Model,
		Dimensions:   r.Dimensions,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
		Cost:         r.Cost,
	}, nil
}

// rerankerAdapter wraps the public Reranker to satisfy the internal
// reranking contract.
type rerankerAdapter struct {
	inner Reranker
}

func (a *rerankerAdapter) Rerank(
	ctx context.Context, query string, results []result.Result,
) ([]result.Result, error) {
	pub := resultsToPublic(results)
	reranked, err := a.inner.Rerank(ctx, query, pub)
	if err != nil {
		return nil, err
	}
	out := make([]result.Result, len(reranked))
	for i, r := range reranked {
		out[i] = resultToInternal(r)
	}
	return out, nil
}
