package model

// CrawlRequest asks for a website to be crawled and indexed.
type CrawlRequest struct {
	URL string `json:"url" binding:"required"`
}

// CrawlResponse reports a successful ingestion.
type CrawlResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
	Status  string `json:"status"`
}

// InferenceRequest carries a user query, the shared secret, and optional
// prior conversation text.
type InferenceRequest struct {
	Query       string `json:"query" binding:"required"`
	APIKey      string `json:"api_key"`
	ChatHistory string `json:"chat_history,omitempty"`
}

// SourcesResponse lists the distinct source URIs indexed in a namespace.
type SourcesResponse struct {
	Sources []string `json:"sources"`
}
