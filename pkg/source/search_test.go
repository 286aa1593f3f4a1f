package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/stream_radar/pkg/model"
	"github.com/iWorld-y/stream_radar/pkg/search"
)

type fakeSearcher struct {
	req  *search.Request
	resp *search.Response
	err  error
}

func (f *fakeSearcher) Search(_ context.Context, req *search.Request) (*search.Response, error) {
	f.req = req
	return f.resp, f.err
}

func TestSearchFetcher_Fetch(t *testing.T) {
	since := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	fs := &fakeSearcher{resp: &search.Response{Results: []search.Result{
		{Title: " DMCA notice ", URL: "https://example.com/a", Content: "<b>takedown</b>", PublishedDate: "2026-10-15T08:00:00Z"},
		{Title: "stale", URL: "https://example.com/b", PublishedDate: "2026-10-10T08:00:00Z"},
		{Title: "undated", URL: "https://example.com/c"},
	}}}
	f := NewSearchFetcher(fs)
	f.now = func() time.Time { return since.Add(24 * time.Hour) }

	src := model.Source{Name: "Tavily", Kind: model.KindTavily, Query: "dmca streaming", DefaultCategory: model.CategoryIndustry, Tier: model.TierB}
	items, err := f.Fetch(context.Background(), src, since)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "DMCA notice", items[0].Title)
	assert.Equal(t, "takedown", items[0].ContentSnippet)
	assert.Equal(t, model.TierB, items[0].SourceTier)
	assert.Equal(t, "dmca streaming", fs.req.Query)
	assert.Equal(t, "news", fs.req.Topic)
	assert.Equal(t, since, fs.req.Since)
}

func TestSearchFetcher_Error(t *testing.T) {
	f := NewSearchFetcher(&fakeSearcher{err: errors.New("boom")})
	_, err := f.Fetch(context.Background(), model.Source{Query: "q"}, time.Time{})
	assert.Error(t, err)
}
