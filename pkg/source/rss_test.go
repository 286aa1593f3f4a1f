package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/stream_radar/pkg/model"
)

func rssFeed(now time.Time) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>DRM Weekly</title>
  <item>
    <title>Widevine L3 patched</title>
    <link>https://example.com/fresh</link>
    <description><![CDATA[<p>Google <b>patched</b> the CDM.</p>]]></description>
    <pubDate>%s</pubDate>
  </item>
  <item>
    <title>Old news</title>
    <link>https://example.com/old</link>
    <description>stale</description>
    <pubDate>%s</pubDate>
  </item>
  <item>
    <title>No date</title>
    <link>https://example.com/nodate</link>
    <description>undated</description>
  </item>
</channel>
</rss>`, now.Add(-2*time.Hour).Format(time.RFC1123Z), now.Add(-72*time.Hour).Format(time.RFC1123Z))
}

func TestRSSFetcher_Fetch(t *testing.T) {
	now := time.Now()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFeed(now)))
	}))
	defer srv.Close()

	src := model.Source{
		Name:            "DRM Weekly",
		URL:             srv.URL,
		Kind:            model.KindRSS,
		DefaultCategory: model.CategoryTechnology,
		Tier:            model.TierA,
		Region:          "US",
	}

	items, err := NewRSSFetcher(5*time.Second).Fetch(context.Background(), src, now.Add(-24*time.Hour))

	require.NoError(t, err)
	require.Len(t, items, 1, "old and undated items are dropped")
	got := items[0]
	assert.Equal(t, "Widevine L3 patched", got.Title)
	assert.Equal(t, "https://example.com/fresh", got.Link)
	assert.Equal(t, "Google patched the CDM.", got.ContentSnippet)
	assert.Equal(t, "DRM Weekly", got.SourceName)
	assert.Equal(t, model.TierA, got.SourceTier)
	assert.Equal(t, model.CategoryTechnology, got.SourceDefaultCategory)
	assert.Equal(t, "US", got.SourceRegion)
}

func TestRSSFetcher_BadFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not a feed"))
	}))
	defer srv.Close()

	_, err := NewRSSFetcher(time.Second).Fetch(context.Background(), model.Source{Name: "x", URL: srv.URL}, time.Time{})
	assert.Error(t, err)
}
