package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/iWorld-y/stream_radar/pkg/htmltext"
	"github.com/iWorld-y/stream_radar/pkg/model"
)

const userAgent = "StreamRadar/1.0 (+https://github.com/iWorld-y/stream_radar)"

// RSSFetcher 基于 gofeed 的 RSS/Atom 抓取器
type RSSFetcher struct {
	timeout time.Duration
}

var _ Fetcher = (*RSSFetcher)(nil)

// NewRSSFetcher 创建抓取器，timeout 为单个信源的超时时间
func NewRSSFetcher(timeout time.Duration) *RSSFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RSSFetcher{timeout: timeout}
}

// Fetch 拉取并解析订阅，丢弃没有发布时间或早于 since 的条目
func (f *RSSFetcher) Fetch(ctx context.Context, src model.Source, since time.Time) ([]model.RawItem, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// gofeed.Parser 不是并发安全的，每次抓取单独创建
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	feed, err := fp.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", src.URL, err)
	}
	return feedItems(src, feed, since), nil
}

func feedItems(src model.Source, feed *gofeed.Feed, since time.Time) []model.RawItem {
	items := make([]model.RawItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		published := publishedAt(item)
		if published.IsZero() || !published.After(since) {
			continue
		}
		items = append(items, newRawItem(
			src,
			strings.TrimSpace(item.Title),
			strings.TrimSpace(item.Link),
			published,
			snippetOf(item),
		))
	}
	return items
}

func publishedAt(item *gofeed.Item) time.Time {
	switch {
	case item.PublishedParsed != nil:
		return *item.PublishedParsed
	case item.UpdatedParsed != nil:
		return *item.UpdatedParsed
	default:
		return time.Time{}
	}
}

// snippetOf 优先使用摘要，没有摘要时退回正文
func snippetOf(item *gofeed.Item) string {
	if s := htmltext.Text(item.Description); s != "" {
		return s
	}
	return htmltext.Text(item.Content)
}
