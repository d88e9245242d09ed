package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/SaiNageswarS/go-api-boot/embed"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/SaiNageswarS/web-mind/appconfig"
	"github.com/SaiNageswarS/web-mind/embedding"
	"github.com/SaiNageswarS/web-mind/llm"
	"github.com/SaiNageswarS/web-mind/model"
	"github.com/SaiNageswarS/web-mind/rag"
	"github.com/SaiNageswarS/web-mind/vectorstore"
	"go.uber.org/zap"
)

// Answerer is the slice of the answer engine consumed here.
type Answerer interface {
	Answer(ctx context.Context, query, chatHistory string) string
}

// InferenceController serves query answering and the echo connectivity
// check.
type InferenceController struct {
	engine Answerer
}

// ProvideInferenceController wires the retrieval pipeline and completion
// client from the process-scoped Mongo client and embedding client.
func ProvideInferenceController(mongo odm.MongoClient, embedder embed.Embedder) *InferenceController {
	cfg, err := appconfig.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	retriever := rag.NewRetriever(
		embedding.NewJinaProvider(embedder),
		vectorstore.NewMongoStore(mongo),
		cfg.TopK)

	completer := llm.NewClient(llm.Config{
		BaseURL: cfg.CompletionBaseURL,
		APIKey:  os.Getenv("OPENROUTER_API_KEY"),
	})

	engine := rag.NewEngine(retriever, completer, cfg.IndexNamespace, cfg.PrimaryModel, cfg.FallbackModels)

	return &InferenceController{engine: engine}
}

// HandleInference validates the shared secret carried in the request
// body, then answers the query over the retrieved context.
func (c *InferenceController) HandleInference(w http.ResponseWriter, r *http.Request) {
	var req model.InferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode request", zap.Error(err))
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if req.Query == "" {
		http.Error(w, "Query is required", http.StatusBadRequest)
		return
	}

	apiKey := os.Getenv("WEBMIND_API_KEY")
	if apiKey == "" {
		logger.Error("WEBMIND_API_KEY environment variable is not set")
		http.Error(w, "Server configuration error", http.StatusInternalServerError)
		return
	}
	if req.APIKey != apiKey {
		logger.Error("Invalid API key on inference request")
		http.Error(w, "Invalid API Key", http.StatusUnauthorized)
		return
	}

	logger.Info("Received inference request", zap.String("query", req.Query))

	answer := c.engine.Answer(r.Context(), req.Query, req.ChatHistory)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(answer); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
		return
	}
}

// HandleEcho returns a deterministic acknowledgement string. Used for
// connectivity testing only.
func (c *InferenceController) HandleEcho(w http.ResponseWriter, r *http.Request) {
	var req model.InferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	logger.Info("Received echo request", zap.String("query", req.Query))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode("You said " + req.Query); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
		return
	}
}

func (c *InferenceController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/api/inference",
			Method:  http.MethodPost,
			Handler: c.HandleInference,
		},
		{
			Pattern: "/api/echo",
			Method:  http.MethodPost,
			Handler: c.HandleEcho,
		},
	}
}
