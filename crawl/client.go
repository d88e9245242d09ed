package crawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// Terminal crawl job states. Anything else means the job is still running.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Document is one crawled page in the requested output format.
type Document struct {
	Markdown string `json:"markdown"`
}

// Result is the terminal state of a crawl job. A non-completed status is
// a valid result; callers decide whether to degrade it to zero documents.
type Result struct {
	Status    string
	Documents []Document
}

// Params configures one crawl submission.
type Params struct {
	Limit        int           // max pages, default 50
	Formats      []string      // output formats, default ["markdown"]
	PollInterval time.Duration // wait between status checks, default 30s
}

func (p Params) withDefaults() Params {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if len(p.Formats) == 0 {
		p.Formats = []string{"markdown"}
	}
	if p.PollInterval <= 0 {
		p.PollInterval = 30 * time.Second
	}
	return p
}

type Config struct {
	BaseURL  string
	APIKey   string
	MaxPolls int           // attempts before giving up on a job, default 20
	Timeout  time.Duration // per-request timeout, default 30s
}

// Client submits crawl jobs to the external crawl service and polls the
// status endpoint until the job reaches a terminal state.
type Client struct {
	baseURL  string
	apiKey   string
	maxPolls int
	http     *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	maxPolls := cfg.MaxPolls
	if maxPolls <= 0 {
		maxPolls = 20
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		maxPolls: maxPolls,
		http:     &http.Client{Timeout: timeout},
	}
}

type submitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

type statusResponse struct {
	Status string     `json:"status"`
	Data   []Document `json:"data"`
}

// Fetch submits url for crawling and blocks until the job finishes. The
// wait is bounded by MaxPolls and by ctx, so a never-terminating remote
// job cannot hold the request forever.
func (c *Client) Fetch(ctx context.Context, url string, params Params) (*Result, error) {
	params = params.withDefaults()

	payload := map[string]any{
		"url":           url,
		"limit":         params.Limit,
		"scrapeOptions": map[string]any{"formats": params.Formats},
	}

	var submitted submitResponse
	if err := c.postJSON(ctx, c.baseURL+"/v1/crawl", payload, &submitted); err != nil {
		return nil, err
	}
	if submitted.ID == "" {
		return nil, fmt.Errorf("crawl submit for %s returned no job id", url)
	}

	statusURL := fmt.Sprintf("%s/v1/crawl/%s", c.baseURL, submitted.ID)
	for attempt := 1; attempt <= c.maxPolls; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(params.PollInterval):
		}

		var st statusResponse
		if err := c.getJSON(ctx, statusURL, &st); err != nil {
			logger.Error("Crawl status check failed", zap.String("jobId", submitted.ID), zap.Error(err))
			continue
		}

		switch st.Status {
		case StatusCompleted, StatusFailed, StatusCancelled:
			return &Result{Status: st.Status, Documents: st.Data}, nil
		}
		logger.Info("Crawl job still running", zap.String("jobId", submitted.ID), zap.String("status", st.Status))
	}

	return nil, fmt.Errorf("crawl job %s did not reach a terminal state within %d polls", submitted.ID, c.maxPolls)
}

func (c *Client) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("crawl service %s %s failed: %s", req.Method, req.URL.Path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
