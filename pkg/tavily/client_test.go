package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/stream_radar/pkg/search"
)

func TestClient_Search(t *testing.T) {
	var got SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tvly-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(SearchResponse{Results: []SearchResult{
			{Title: "Widevine news", URL: "https://example.com/1", Content: "c", PublishedDate: "Thu, 15 Oct 2026 07:30:00 GMT"},
		}})
	}))
	defer srv.Close()

	c := NewClient("tvly-key", WithEndpoint(srv.URL))
	since := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	resp, err := c.Search(context.Background(), &search.Request{
		Query: "widevine",
		Since: since,
		Until: since.Add(24 * time.Hour),
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Widevine news", resp.Results[0].Title)
	assert.Equal(t, "widevine", got.Query)
	assert.Equal(t, "news", got.Topic)
	assert.Equal(t, 10, got.MaxResults)
	assert.Equal(t, "2026-10-14", got.StartDate)
	assert.Equal(t, "2026-10-15", got.EndDate)
}

func TestClient_SearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient("k", WithEndpoint(srv.URL)).Search(context.Background(), &search.Request{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
