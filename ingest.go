package ragcore

import (
	"context"
	"fmt"

	"github.com/groundctx/ragcore/internal/chunker"
	"github.com/groundctx/ragcore/internal/preprocess"
	ingestuc "github.com/groundctx/ragcore/internal/usecase/ingest"
)

// Ingest preprocesses, chunks, embeds, and persists one document under the
// request's scope. Chunks whose embedding fails are skipped and counted in
// the report; validation and store failures fail the whole run.
func (c *Client) Ingest(ctx context.Context, req IngestRequest) (IngestReport, error) {
	report, err := c.ingestSvc.Ingest(ctx, ingestuc.Request{
		DocumentID: req.DocumentID,
		RawContent: req.Content,
		File: preprocess.FileInfo{
			FileName: req.File.FileName,
			FileType: req.File.FileType,
			FileSize: req.File.FileSize,
		},
		UserID:    req.Scope.UserID,
		CompanyID: req.Scope.CompanyID,
		DebateID:  req.Scope.DebateID,
		Tags:      req.Tags,
		Chunking:  c.effectiveChunking(req.Chunking),
	})
	if err != nil {
		return IngestReport{}, fmt.Errorf("ingest: %w", err)
	}

	outcomes := make([]ChunkOutcome, len(report.Outcomes))
	for i, o := range report.Outcomes {
		outcomes[i] = ChunkOutcome{Index: o.Index, Status: string(o.Status), Err: o.Err}
	}

	return IngestReport{
		DocumentID:   report.DocumentID,
		ChunksTotal:  report.ChunksTotal,
		ChunksStored: report.ChunksStored,
		ChunksFailed: report.ChunksFailed,
		TokensUsed:   report.TokensUsed,
		Cost:         report.Cost,
		Outcomes:     outcomes,
	}, nil
}

// PrepareDocument normalizes raw text into its canonical ingestion form
// without storing anything. Pure; the same input yields the same content
// and metadata (the assigned ID is fresh each call).
func PrepareDocument(raw string, info FileInfo) Document {
	doc := preprocess.Prepare(raw, preprocess.FileInfo{
		FileName: info.FileName,
		FileType: info.FileType,
		FileSize: info.FileSize,
	})
	return Document{
		ID:             doc.ID,
		Content:        doc.Content,
		CharCount:      doc.Metadata.CharCount,
		TokenEstimate:  doc.Metadata.TokenEstimate,
		LineCount:      doc.Metadata.LineCount,
		ParagraphCount: doc.Metadata.ParagraphCount,
		Structure:      doc.Metadata.Custom,
	}
}

// DeleteDocument removes every stored chunk of a document. Returns the
// number of chunks removed.
func (c *Client) DeleteDocument(ctx context.Context, documentID string) (int, error) {
	return c.ingestSvc.DeleteDocument(ctx, documentID)
}

// effectiveChunking resolves the chunking parameters for one request:
// request overrides beat the client defaults, and unset sizes fall back to
// the library defaults.
func (c *Client) effectiveChunking(override *ChunkOptions) chunker.Options {
	opts := c.chunking
	if override != nil {
		opts = *override
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 1000
	}
	return chunkOptionsToInternal(opts)
}
