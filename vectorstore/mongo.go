package vectorstore

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/go-collection-boot/ds"
	"github.com/SaiNageswarS/web-mind/db"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultTopK = 3

// MongoStore keeps chunk entries in per-namespace tenant databases and
// queries them through the Atlas vector search index.
type MongoStore struct {
	mongo *odm.MongoClient
}

var _ Store = (*MongoStore)(nil)

func NewMongoStore(mongo odm.MongoClient) *MongoStore {
	return &MongoStore{mongo: &mongo}
}

func (s *MongoStore) Upsert(ctx context.Context, namespace string, entries []db.ChunkModel) error {
	if len(entries) == 0 {
		return nil
	}

	collection := odm.CollectionOf[db.ChunkModel](*s.mongo, namespace)
	for _, entry := range entries {
		if _, err := async.Await(collection.Save(ctx, entry)); err != nil {
			return status.Errorf(codes.Internal, "save chunk %s: %v", entry.ChunkID, err)
		}
	}
	return nil
}

func (s *MongoStore) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]Result, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	collection := odm.CollectionOf[db.ChunkModel](*s.mongo, namespace)
	hits, err := async.Await(collection.VectorSearch(ctx, vector, odm.VectorSearchParams{
		IndexName:     db.VectorIndexName,
		Path:          db.VectorPath,
		K:             topK,
		NumCandidates: topK * 10,
	}))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "vector search: %v", err)
	}

	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		results = append(results, Result{
			ID:    hit.Doc.Id(),
			Score: hit.Score,
			Text:  hit.Doc.Text,
		})
	}
	return rankResults(results, topK), nil
}

// rankResults keeps the topK highest-scoring results with a capped
// min-heap, dropping duplicate ids, and returns them ordered by
// descending score regardless of the order the store produced them in.
func rankResults(results []Result, topK int) []Result {
	seen := ds.NewSet[string]()
	h := ds.NewMinHeap(func(a, b Result) bool { return a.Score < b.Score })

	for _, r := range results {
		if seen.Contains(r.ID) {
			continue
		}
		seen.Add(r.ID)

		h.Push(r)
		if h.Len() > topK {
			h.Pop()
		}
	}

	ascending := h.ToSortedSlice()
	ordered := make([]Result, 0, len(ascending))
	for i := len(ascending) - 1; i >= 0; i-- {
		ordered = append(ordered, ascending[i])
	}
	return ordered
}
