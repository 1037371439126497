// Package ingest runs the document pipeline: preprocess, chunk, embed,
// persist. Embedding failures are isolated per chunk so one bad chunk does
// not lose the rest of the document.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/groundctx/ragcore/internal/chunker"
	"github.com/groundctx/ragcore/internal/domain"
	domchunk "github.com/groundctx/ragcore/internal/domain/chunk"
	"github.com/groundctx/ragcore/internal/domain/document"
	"github.com/groundctx/ragcore/internal/preprocess"
	"github.com/groundctx/ragcore/internal/usecase/analytics"
)

// Request describes one document upload. DocumentID is optional: when set,
// the ingestion replaces that document's chunks instead of minting a new
// document identity.
type Request struct {
	DocumentID string
	RawContent string
	File       preprocess.FileInfo

	UserID    string
	CompanyID string
	DebateID  string
	Tags      []string

	Chunking chunker.Options
}

// ChunkStatus is the processing outcome of one chunk.
type ChunkStatus string

// Chunk outcome values.
const (
	ChunkOK          ChunkStatus = "ok"
	ChunkEmbedFailed ChunkStatus = "embed_failed"
)

// ChunkOutcome reports what happened to a single chunk.
type ChunkOutcome struct {
	Index  int
	Status ChunkStatus
	Err    error
}

// Report summarizes one ingestion run.
type Report struct {
	DocumentID   string
	Document     document.CanonicalDocument
	ChunksTotal  int
	ChunksStored int
	ChunksFailed int
	TokensUsed   int
	Cost         float64
	Outcomes     []ChunkOutcome
}

// Service is the ingestion pipeline.
type Service struct {
	repo    ChunkRepository
	embed   domain.Embedder
	tracker *analytics.Tracker
	log     *zap.Logger
	now     func() time.Time
}

// New creates an ingestion service. tracker may be nil.
func New(repo ChunkRepository, embed domain.Embedder, tracker *analytics.Tracker, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, embed: embed, tracker: tracker, log: log, now: time.Now}
}

// Ingest preprocesses, chunks, embeds, and persists one document. Chunks
// whose embedding fails are reported in the outcome list and skipped;
// validation and store failures fail the whole run.
func (s *Service) Ingest(ctx context.Context, req Request) (Report, error) {
	if req.UserID == "" {
		return Report{}, errors.New("user id is required")
	}

	doc := preprocess.Prepare(req.RawContent, req.File)
	if req.DocumentID != "" {
		doc.ID = req.DocumentID
	}

	pieces, err := chunker.Chunk(doc.Content, req.Chunking)
	if err != nil {
		return Report{}, fmt.Errorf("chunk document: %w", err)
	}

	report := Report{
		DocumentID:  doc.ID,
		Document:    doc,
		ChunksTotal: len(pieces),
		Outcomes:    make([]ChunkOutcome, 0, len(pieces)),
	}

	uploadedAt := s.now().UTC()
	embedded := make([]*domchunk.EmbeddedChunk, 0, len(pieces))
	for _, piece := range pieces {
		emb, embErr := s.embed.Embed(ctx, piece.Content)
		if embErr != nil {
			report.ChunksFailed++
			report.Outcomes = append(report.Outcomes, ChunkOutcome{
				Index:  piece.Index,
				Status: ChunkEmbedFailed,
				Err:    embErr,
			})
			s.log.Warn("chunk embedding failed",
				zap.String("document_id", doc.ID),
				zap.Int("chunk_index", piece.Index),
				zap.Error(embErr))
			continue
		}

		report.TokensUsed += emb.TotalTokens
		report.Cost += emb.Cost
		report.Outcomes = append(report.Outcomes, ChunkOutcome{Index: piece.Index, Status: ChunkOK})

		embedded = append(embedded, &domchunk.EmbeddedChunk{
			DocumentID: doc.ID,
			Chunk:      piece,
			Vector:     emb.Vector,
			UserID:     req.UserID,
			CompanyID:  req.CompanyID,
			DebateID:   req.DebateID,
			FileName:   req.File.FileName,
			FileType:   req.File.FileType,
			UploadedAt: uploadedAt,
			Tags:       req.Tags,
		})
	}

	// A re-ingestion under an existing document ID clears the old batch
	// first; index-keyed upserts alone would leave stragglers when the
	// new version has fewer chunks.
	if req.DocumentID != "" {
		if _, err := s.repo.DeleteByDocument(ctx, req.DocumentID); err != nil {
			return report, fmt.Errorf("supersede document %s: %w", req.DocumentID, err)
		}
	}

	if err := s.repo.BatchUpsert(ctx, embedded); err != nil {
		return report, fmt.Errorf("store chunks: %w", err)
	}
	report.ChunksStored = len(embedded)

	s.trackUpload(ctx, req, &report)

	s.log.Info("document ingested",
		zap.String("document_id", doc.ID),
		zap.String("file_name", req.File.FileName),
		zap.Int("chunks_total", report.ChunksTotal),
		zap.Int("chunks_stored", report.ChunksStored),
		zap.Int("chunks_failed", report.ChunksFailed))

	return report, nil
}

// DeleteDocument removes all chunks for a document. Returns the number of
// chunks deleted.
func (s *Service) DeleteDocument(ctx context.Context, documentID string) (int, error) {
	n, err := s.repo.DeleteByDocument(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("delete document %s: %w", documentID, err)
	}

	s.log.Info("document deleted",
		zap.String("document_id", documentID),
		zap.Int("chunks_deleted", n))
	return n, nil
}

func (s *Service) trackUpload(ctx context.Context, req Request, report *Report) {
	s.tracker.Track(ctx, domain.Event{
		UserID:        req.UserID,
		CompanyID:     req.CompanyID,
		Type:          domain.EventDocumentUpload,
		DebateID:      req.DebateID,
		DocumentID:    report.DocumentID,
		ResultsCount:  report.ChunksStored,
		TokensUsed:    report.TokensUsed,
		EstimatedCost: report.Cost,
	})
}
