package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/SaiNageswarS/go-api-boot/embed"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/SaiNageswarS/web-mind/appconfig"
	"github.com/SaiNageswarS/web-mind/chunk"
	"github.com/SaiNageswarS/web-mind/crawl"
	"github.com/SaiNageswarS/web-mind/db"
	"github.com/SaiNageswarS/web-mind/embedding"
	"github.com/SaiNageswarS/web-mind/middleware"
	"github.com/SaiNageswarS/web-mind/model"
	"github.com/SaiNageswarS/web-mind/rag"
	"github.com/SaiNageswarS/web-mind/vectorstore"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// Ingestor is the slice of the ingestion pipeline consumed here.
type Ingestor interface {
	Ingest(ctx context.Context, url string) error
}

// CrawlController handles ingestion requests and the sources listing.
type CrawlController struct {
	ingestor  Ingestor
	mongo     *odm.MongoClient
	namespace string
}

// ProvideCrawlController wires the ingestion pipeline from the
// process-scoped Mongo client and embedding client.
func ProvideCrawlController(mongo odm.MongoClient, embedder embed.Embedder) *CrawlController {
	cfg, err := appconfig.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	splitter, err := chunk.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		logger.Fatal("Invalid chunker configuration", zap.Error(err))
	}

	crawler := crawl.NewClient(crawl.Config{
		BaseURL:  cfg.CrawlBaseURL,
		APIKey:   os.Getenv("FIRECRAWL_API_KEY"),
		MaxPolls: cfg.CrawlMaxPolls,
	})

	ingestor := rag.NewIngestor(
		crawler,
		splitter,
		embedding.NewJinaProvider(embedder),
		vectorstore.NewMongoStore(mongo),
		rag.IngestorConfig{
			Namespace:        cfg.IndexNamespace,
			PageLimit:        cfg.CrawlPageLimit,
			PollInterval:     cfg.CrawlPollInterval,
			DeterministicIds: cfg.DeterministicIds,
		})

	return &CrawlController{
		ingestor:  ingestor,
		mongo:     &mongo,
		namespace: cfg.IndexNamespace,
	}
}

// HandleCrawl handles POST requests to crawl a URL and index its pages.
func (c *CrawlController) HandleCrawl(w http.ResponseWriter, r *http.Request) {
	var req model.CrawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode request", zap.Error(err))
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if req.URL == "" {
		http.Error(w, "Url is required", http.StatusBadRequest)
		return
	}

	logger.Info("Received crawl request", zap.String("url", req.URL))

	ctx := r.Context()
	if err := c.ingestor.Ingest(ctx, req.URL); err != nil {
		if errors.Is(err, rag.ErrNoDocuments) {
			http.Error(w, "Failed to fetch data from URL", http.StatusBadRequest)
			return
		}
		logger.Error("Ingestion failed", zap.String("url", req.URL), zap.Error(err))
		http.Error(w, "Embedding generation failed", http.StatusInternalServerError)
		return
	}

	response := model.CrawlResponse{
		Message: "Data successfully crawled and stored",
		URL:     req.URL,
		Status:  "200",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
		return
	}
}

// ListSources returns the distinct source URIs indexed in the configured
// namespace.
func (c *CrawlController) ListSources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var sources []string
	filter := bson.D{{Key: "sourceUri", Value: bson.D{{Key: "$ne", Value: ""}}}}
	err := odm.CollectionOf[db.ChunkModel](*c.mongo, c.namespace).DistinctInto(ctx, "sourceUri", filter, &sources)
	if err != nil {
		logger.Error("Failed to fetch sources", zap.Error(err))
		http.Error(w, "Failed to fetch sources", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(model.SourcesResponse{Sources: sources}); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (c *CrawlController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/api/crawl",
			Method:  http.MethodPost,
			Handler: middleware.APIKeyAuthMiddleware(c.HandleCrawl),
		},
		{
			Pattern: "/api/sources",
			Method:  http.MethodGet,
			Handler: middleware.APIKeyAuthMiddleware(c.ListSources),
		},
	}
}
