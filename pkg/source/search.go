package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iWorld-y/stream_radar/pkg/htmltext"
	"github.com/iWorld-y/stream_radar/pkg/model"
	"github.com/iWorld-y/stream_radar/pkg/search"
)

const defaultSearchResults = 10

// SearchFetcher 把搜索服务（Tavily / SearXNG）包装成信源
type SearchFetcher struct {
	searcher   search.Searcher
	maxResults int
	now        func() time.Time
}

var _ Fetcher = (*SearchFetcher)(nil)

// NewSearchFetcher 创建搜索类抓取器
func NewSearchFetcher(s search.Searcher) *SearchFetcher {
	return &SearchFetcher{searcher: s, maxResults: defaultSearchResults, now: time.Now}
}

// Fetch 以信源的 Query 搜索新闻，发布时间缺失或过旧的结果会被丢弃
func (f *SearchFetcher) Fetch(ctx context.Context, src model.Source, since time.Time) ([]model.RawItem, error) {
	resp, err := f.searcher.Search(ctx, &search.Request{
		Query:      src.Query,
		Topic:      "news",
		MaxResults: f.maxResults,
		Since:      since,
		Until:      f.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", src.Query, err)
	}

	items := make([]model.RawItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		published, ok := search.ParseDate(r.PublishedDate)
		if !ok || !published.After(since) {
			continue
		}
		items = append(items, newRawItem(
			src,
			strings.TrimSpace(r.Title),
			strings.TrimSpace(r.URL),
			published,
			htmltext.Text(r.Content),
		))
	}
	return items, nil
}
