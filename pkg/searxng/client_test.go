package searxng

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/stream_radar/pkg/search"
)

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "drm", q.Get("q"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "news", q.Get("categories"))
		assert.Equal(t, "day", q.Get("time_range"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"query":"drm","results":[
			{"title":"a","url":"https://example.com/a","content":"x","publishedDate":"2026-10-15T07:30:00"},
			{"title":"b","url":"https://example.com/b","content":"y"},
			{"title":"c","url":"https://example.com/c","content":"z"}
		]}`))
	}))
	defer srv.Close()

	now := time.Now()
	resp, err := NewClient(srv.URL, 5).Search(context.Background(), &search.Request{
		Query:      "drm",
		Topic:      "news",
		MaxResults: 2,
		Since:      now.Add(-24 * time.Hour),
		Until:      now,
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "2026-10-15T07:30:00", resp.Results[0].PublishedDate)
}

func TestTimeRange(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "", timeRange(time.Time{}, now))
	assert.Equal(t, "day", timeRange(now.Add(-24*time.Hour), now))
	assert.Equal(t, "week", timeRange(now.Add(-72*time.Hour), now))
	assert.Equal(t, "month", timeRange(now.Add(-20*24*time.Hour), now))
	assert.Equal(t, "year", timeRange(now.Add(-90*24*time.Hour), now))
}

func TestClient_SearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 1).Search(context.Background(), &search.Request{Query: "q"})
	assert.Error(t, err)
}
