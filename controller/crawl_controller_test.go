package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SaiNageswarS/web-mind/middleware"
	"github.com/SaiNageswarS/web-mind/model"
	"github.com/SaiNageswarS/web-mind/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIngestor struct {
	err     error
	calls   int
	lastURL string
}

func (f *fakeIngestor) Ingest(ctx context.Context, url string) error {
	f.calls++
	f.lastURL = url
	return f.err
}

func TestHandleCrawl_Success(t *testing.T) {
	ingestor := &fakeIngestor{}
	c := &CrawlController{ingestor: ingestor}

	w := postJSON(t, c.HandleCrawl, `{"url":"https://example.com"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.CrawlResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "https://example.com", resp.URL)
	assert.Equal(t, "200", resp.Status)
	assert.Equal(t, "Data successfully crawled and stored", resp.Message)
	assert.Equal(t, "https://example.com", ingestor.lastURL)
}

func TestHandleCrawl_NoDocumentsIsAClientError(t *testing.T) {
	c := &CrawlController{ingestor: &fakeIngestor{err: rag.ErrNoDocuments}}

	w := postJSON(t, c.HandleCrawl, `{"url":"https://example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch data from URL")
}

func TestHandleCrawl_UpstreamFaultIsAServerError(t *testing.T) {
	c := &CrawlController{ingestor: &fakeIngestor{err: fmt.Errorf("embed documents: model down")}}

	w := postJSON(t, c.HandleCrawl, `{"url":"https://example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleCrawl_MissingURL(t *testing.T) {
	ingestor := &fakeIngestor{}
	c := &CrawlController{ingestor: ingestor}

	w := postJSON(t, c.HandleCrawl, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, ingestor.calls)
}

func TestCrawlRoute_AuthGate(t *testing.T) {
	t.Setenv("WEBMIND_API_KEY", "secret")
	ingestor := &fakeIngestor{}
	c := &CrawlController{ingestor: ingestor}
	handler := middleware.APIKeyAuthMiddleware(c.HandleCrawl)

	t.Run("wrong key is rejected before ingestion", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/crawl", strings.NewReader(`{"url":"https://example.com"}`))
		req.Header.Set("X-API-Key", "wrong")
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, 0, ingestor.calls)
	})

	t.Run("valid key passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/crawl", strings.NewReader(`{"url":"https://example.com"}`))
		req.Header.Set("Authorization", "Bearer secret")
		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, ingestor.calls)
	})
}
