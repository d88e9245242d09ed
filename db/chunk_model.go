package db

// Atlas search index configuration for the chunk collection.
const (
	VectorIndexName = "chunk_embedding_index"
	VectorPath      = "embedding"
)

// ChunkModel is one indexed chunk of crawled text. The namespace a chunk
// belongs to is the odm tenant of the collection it is stored in, so the
// document itself only carries the source URI and its position within it.
type ChunkModel struct {
	ChunkID    string    `bson:"_id"`
	SourceURI  string    `bson:"sourceUri"`
	ChunkIndex int       `bson:"chunkIndex"`
	Text       string    `bson:"text"`
	Embedding  []float32 `bson:"embedding"`
}

func (m ChunkModel) Id() string {
	return m.ChunkID
}

func (m ChunkModel) CollectionName() string {
	return "chunks"
}
