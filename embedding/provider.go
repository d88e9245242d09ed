package embedding

import (
	"context"
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/embed"
	"github.com/SaiNageswarS/go-collection-boot/async"
)

// Provider maps text to fixed-dimension vectors. Both paths must use the
// same underlying model so document and query vectors are comparable
// under cosine similarity.
type Provider interface {
	// EmbedDocuments returns one vector per input text, in input order.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// EmbedClient is the slice of embed.Embedder consumed here.
type EmbedClient interface {
	GetEmbedding(ctx context.Context, text string, opts ...embed.EmbedOption) <-chan async.Result[[]float32]
}

// JinaProvider adapts the Jina embedding client to the Provider contract,
// tagging documents and queries with the matching retrieval task.
type JinaProvider struct {
	client EmbedClient
}

var _ Provider = (*JinaProvider)(nil)

func NewJinaProvider(client EmbedClient) *JinaProvider {
	return &JinaProvider{client: client}
}

func (p *JinaProvider) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		vector, err := async.Await(p.client.GetEmbedding(ctx, text, embed.WithTask("retrieval.passage")))
		if err != nil {
			return nil, fmt.Errorf("embed document %d: %w", i, err)
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}

func (p *JinaProvider) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vector, err := async.Await(p.client.GetEmbedding(ctx, text, embed.WithTask("retrieval.query")))
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return vector, nil
}
