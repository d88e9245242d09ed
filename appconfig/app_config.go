package appconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig holds all tunables for the ingestion and inference pipelines.
// Values are read from environment variables after dotenv loading; secrets
// (WEBMIND_API_KEY, FIRECRAWL_API_KEY, OPENROUTER_API_KEY) stay in the
// environment and are read where they are used.
type AppConfig struct {
	// Vector index settings
	IndexNamespace   string
	TopK             int
	DeterministicIds bool

	// Chunker settings
	ChunkSize    int
	ChunkOverlap int

	// Crawl settings
	CrawlBaseURL      string
	CrawlPageLimit    int
	CrawlPollInterval time.Duration
	CrawlMaxPolls     int

	// Completion settings
	CompletionBaseURL string
	PrimaryModel      string
	FallbackModels    []string
}

// Load reads configuration from environment variables with defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		IndexNamespace:   getEnv("INDEX_NAMESPACE", "zain"),
		TopK:             getEnvInt("RETRIEVAL_TOP_K", 3),
		DeterministicIds: getEnvBool("DETERMINISTIC_IDS", true),

		ChunkSize:    getEnvInt("CHUNK_SIZE", 100),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 20),

		CrawlBaseURL:      getEnv("FIRECRAWL_BASE_URL", "https://api.firecrawl.dev"),
		CrawlPageLimit:    getEnvInt("CRAWL_PAGE_LIMIT", 50),
		CrawlPollInterval: getEnvDuration("CRAWL_POLL_INTERVAL", 30*time.Second),
		CrawlMaxPolls:     getEnvInt("CRAWL_MAX_POLLS", 20),

		CompletionBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		PrimaryModel:      getEnv("MODEL_NAME", "mistralai/mistral-small-3.1-24b-instruct:free"),
		FallbackModels: getEnvList("FALLBACK_MODELS", []string{
			"google/gemini-2.0-flash-thinking-exp:free",
			"deepseek/deepseek-r1:free",
			"meta-llama/llama-3.3-70b-instruct:free",
		}),
	}

	return cfg, cfg.Validate()
}

func (c *AppConfig) Validate() error {
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("RETRIEVAL_TOP_K must be positive, got %d", c.TopK)
	}
	if c.CrawlMaxPolls <= 0 {
		return fmt.Errorf("CRAWL_MAX_POLLS must be positive, got %d", c.CrawlMaxPolls)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
