// Package chunks persists embedded chunks and manages their FT index.
package chunks

import (
	"context"
	"fmt"

	"github.com/groundctx/ragcore/internal/db"
	"github.com/groundctx/ragcore/internal/domain"
	domchunk "github.com/groundctx/ragcore/internal/domain/chunk"
)

// store is the consumer interface for chunk persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	DelMulti(ctx context.Context, keys []string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// HNSW build parameters for the chunk vector index.
const (
	hnswM           = 32
	hnswEFConstruct = 400
)

// Repo implements chunk persistence over a hash store with FT indexing.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a chunks repository. keyPrefix namespaces all keys, e.g.
// "ragcore:".
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

func (r *Repo) indexName() string {
	return r.keyPrefix + "chunks:idx"
}

func (r *Repo) chunkKey(chunkID string) string {
	return r.keyPrefix + "chunk:" + chunkID
}

// EnsureIndex creates the chunk FT index if it does not exist yet. dims is
// the vector dimensionality the HNSW field is built with; chunks embedded at
// other dimensionalities are still stored but excluded from KNN by the
// dimensions predicate.
func (r *Repo) EnsureIndex(ctx context.Context, dims int) error {
	name := r.indexName()

	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check index %s: %w", name, err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:     name,
		Prefixes: []string{r.keyPrefix + "chunk:"},
		Fields: []db.IndexField{
			{Name: "user_id", Type: db.IndexFieldTag},
			{Name: "company_id", Type: db.IndexFieldTag},
			{Name: "debate_id", Type: db.IndexFieldTag},
			{Name: "document_id", Type: db.IndexFieldTag},
			{Name: "dimensions", Type: db.IndexFieldNumeric},
			{Name: "__content", Type: db.IndexFieldText},
			{
				Name:              "__vector",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         dims,
				VectorDistance:    db.DistanceCosine,
				VectorM:           hnswM,
				VectorEFConstruct: hnswEFConstruct,
			},
		},
	}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

// Upsert writes a single embedded chunk.
func (r *Repo) Upsert(ctx context.Context, ec *domchunk.EmbeddedChunk) error {
	if err := r.store.HSet(ctx, r.chunkKey(ec.ID()), chunkToHash(ec)); err != nil {
		return fmt.Errorf("hset chunk %s: %w", ec.ID(), err)
	}
	return nil
}

// BatchUpsert writes all chunks in one pipelined round trip.
func (r *Repo) BatchUpsert(ctx context.Context, ecs []*domchunk.EmbeddedChunk) error {
	if len(ecs) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(ecs))
	for i, ec := range ecs {
		items[i] = db.HashSetItem{
			Key:    r.chunkKey(ec.ID()),
			Fields: chunkToHash(ec),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset multi %d chunks: %w", len(ecs), err)
	}
	return nil
}

// DeleteByDocument removes every chunk belonging to a document and returns
// the number deleted. Returns domain.ErrDocumentNotFound when the document
// has no chunks.
func (r *Repo) DeleteByDocument(ctx context.Context, documentID string) (int, error) {
	pattern := r.chunkKey(documentID + ":*")

	keys, err := r.store.Scan(ctx, pattern)
	if err != nil {
		return 0, fmt.Errorf("scan chunks %s: %w", documentID, err)
	}
	if len(keys) == 0 {
		return 0, domain.ErrDocumentNotFound
	}

	if err := r.store.DelMulti(ctx, keys); err != nil {
		return 0, fmt.Errorf("del %d chunks: %w", len(keys), err)
	}
	return len(keys), nil
}
