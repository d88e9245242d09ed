package rag

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/SaiNageswarS/web-mind/chunk"
	"github.com/SaiNageswarS/web-mind/crawl"
	"github.com/SaiNageswarS/web-mind/db"
	"github.com/SaiNageswarS/web-mind/embedding"
	"github.com/SaiNageswarS/web-mind/vectorstore"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoDocuments marks an ingestion call whose crawl produced nothing
// usable. It is a client-facing condition, not a server fault.
var ErrNoDocuments = errors.New("no documents fetched for url")

// Crawler is the slice of the crawl client consumed by ingestion.
type Crawler interface {
	Fetch(ctx context.Context, url string, params crawl.Params) (*crawl.Result, error)
}

type IngestorConfig struct {
	Namespace        string
	PageLimit        int
	PollInterval     time.Duration
	DeterministicIds bool
}

// Ingestor populates the vector index for a URL: crawl, split, embed,
// upsert. Steps run strictly in sequence; either the whole batch is
// upserted or nothing is persisted for the call.
type Ingestor struct {
	crawler  Crawler
	splitter *chunk.Splitter
	embedder embedding.Provider
	store    vectorstore.Store
	cfg      IngestorConfig
}

func NewIngestor(crawler Crawler, splitter *chunk.Splitter, embedder embedding.Provider, store vectorstore.Store, cfg IngestorConfig) *Ingestor {
	return &Ingestor{
		crawler:  crawler,
		splitter: splitter,
		embedder: embedder,
		store:    store,
		cfg:      cfg,
	}
}

// Ingest returns nil on success, ErrNoDocuments when the crawl yielded
// nothing usable, and a wrapped fault when embedding or storage failed.
func (p *Ingestor) Ingest(ctx context.Context, url string) error {
	logger.Info("Fetching crawl data", zap.String("url", url))

	result, err := p.crawler.Fetch(ctx, url, crawl.Params{
		Limit:        p.cfg.PageLimit,
		PollInterval: p.cfg.PollInterval,
	})
	if err != nil {
		logger.Error("Crawl failed", zap.String("url", url), zap.Error(err))
		return ErrNoDocuments
	}
	if result.Status != crawl.StatusCompleted {
		logger.Error("Crawl did not complete", zap.String("url", url), zap.String("status", result.Status))
		return ErrNoDocuments
	}

	texts, err := linq.Pipe3(
		linq.FromSlice(ctx, result.Documents),
		linq.Where(func(d crawl.Document) bool { return d.Markdown != "" }),
		linq.Select(func(d crawl.Document) string { return d.Markdown }),
		linq.ToSlice[string](),
	)
	if err != nil {
		logger.Error("Failed to extract documents", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("extract documents: %w", err)
	}
	if len(texts) == 0 {
		logger.Error("Crawl returned no markdown documents", zap.String("url", url))
		return ErrNoDocuments
	}
	logger.Info("Extracted documents", zap.String("url", url), zap.Int("count", len(texts)))

	var chunkTexts []string
	for _, text := range texts {
		chunkTexts = append(chunkTexts, p.splitter.Split(text)...)
	}
	if len(chunkTexts) == 0 {
		return ErrNoDocuments
	}

	vectors, err := p.embedder.EmbedDocuments(ctx, chunkTexts)
	if err != nil {
		logger.Error("Embedding generation failed", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("embed documents: %w", err)
	}
	if len(vectors) != len(chunkTexts) {
		return fmt.Errorf("embedding count %d does not match chunk count %d", len(vectors), len(chunkTexts))
	}

	entries := make([]db.ChunkModel, len(chunkTexts))
	for i, text := range chunkTexts {
		entries[i] = db.ChunkModel{
			ChunkID:    p.entryID(url, i),
			SourceURI:  url,
			ChunkIndex: i,
			Text:       text,
			Embedding:  vectors[i],
		}
	}

	if err := p.store.Upsert(ctx, p.cfg.Namespace, entries); err != nil {
		logger.Error("Vector upsert failed", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("upsert entries: %w", err)
	}

	logger.Info("Inserted vectors", zap.Int("count", len(entries)), zap.String("namespace", p.cfg.Namespace))
	return nil
}

// entryID derives the index entry id. Deterministic ids are keyed on
// (namespace, source url, chunk position) so re-ingesting a URL
// overwrites its entries instead of accumulating duplicates.
func (p *Ingestor) entryID(url string, position int) string {
	if p.cfg.DeterministicIds {
		name := fmt.Sprintf("%s/%s#%d", p.cfg.Namespace, url, position)
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
	}
	return uuid.NewString()
}
