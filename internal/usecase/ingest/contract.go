package ingest

import (
	"context"

	domchunk "github.com/groundctx/ragcore/internal/domain/chunk"
)

// ChunkRepository is the persistence contract for embedded chunks.
type ChunkRepository interface {
	BatchUpsert(ctx context.Context, ecs []*domchunk.EmbeddedChunk) error
	DeleteByDocument(ctx context.Context, documentID string) (int, error)
}
