package vectorstore

import (
	"context"

	"github.com/SaiNageswarS/web-mind/db"
)

// Result is the read projection of an index entry plus its similarity
// score against a query vector.
type Result struct {
	ID    string
	Score float64
	Text  string
}

// Store persists (id, vector, metadata) entries partitioned by namespace
// and answers top-k similarity queries. Upserting an existing id
// overwrites that entry.
type Store interface {
	Upsert(ctx context.Context, namespace string, entries []db.ChunkModel) error
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]Result, error)
}
