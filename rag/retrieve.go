package rag

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/web-mind/embedding"
	"github.com/SaiNageswarS/web-mind/vectorstore"
	"go.uber.org/zap"
)

// Retriever answers a query with the topK most similar indexed chunks.
type Retriever struct {
	embedder embedding.Provider
	store    vectorstore.Store
	topK     int
}

func NewRetriever(embedder embedding.Provider, store vectorstore.Store, topK int) *Retriever {
	return &Retriever{embedder: embedder, store: store, topK: topK}
}

// RetrieveContext embeds the query and runs a similarity search. Any
// fault is logged and degrades to an empty result list; the caller still
// proceeds with an empty-context prompt.
func (r *Retriever) RetrieveContext(ctx context.Context, namespace, query string) []vectorstore.Result {
	logger.Info("Retrieving context", zap.String("query", query), zap.String("namespace", namespace))

	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		logger.Error("Query embedding failed", zap.Error(err))
		return nil
	}

	results, err := r.store.Query(ctx, namespace, vector, r.topK)
	if err != nil {
		logger.Error("Vector query failed", zap.Error(err))
		return nil
	}

	logger.Info("Retrieved results", zap.Int("count", len(results)))
	return results
}
