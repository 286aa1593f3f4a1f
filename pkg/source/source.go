package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iWorld-y/stream_radar/pkg/config"
	"github.com/iWorld-y/stream_radar/pkg/model"
	"github.com/iWorld-y/stream_radar/pkg/searxng"
	"github.com/iWorld-y/stream_radar/pkg/tavily"
)

// ErrUnsupportedKind 信源类型没有对应的抓取器（例如未配置搜索服务）
var ErrUnsupportedKind = errors.New("unsupported source kind")

// Fetcher 抓取单个信源在 since 之后发布的条目
type Fetcher interface {
	Fetch(ctx context.Context, src model.Source, since time.Time) ([]model.RawItem, error)
}

// Registry 按信源类型选择抓取器
type Registry struct {
	fetchers map[model.SourceKind]Fetcher
}

// NewRegistry 根据配置创建抓取器：RSS 总是可用，搜索类在配置了对应服务时才注册
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{fetchers: make(map[model.SourceKind]Fetcher)}
	r.Register(model.KindRSS, NewRSSFetcher(cfg.Pipeline.FetchTimeout))
	if cfg.Search.Tavily.APIKey != "" {
		r.Register(model.KindTavily, NewSearchFetcher(tavily.NewClient(cfg.Search.Tavily.APIKey)))
	}
	if cfg.Search.SearXNG.BaseURL != "" {
		r.Register(model.KindSearXNG, NewSearchFetcher(searxng.NewClient(cfg.Search.SearXNG.BaseURL, cfg.Search.SearXNG.Timeout)))
	}
	return r
}

// Register 注册或替换某类信源的抓取器
func (r *Registry) Register(kind model.SourceKind, f Fetcher) {
	r.fetchers[kind] = f
}

// Resolve 返回信源对应的抓取器
func (r *Registry) Resolve(src model.Source) (Fetcher, error) {
	kind := src.Kind
	if kind == "" {
		kind = model.KindRSS
	}
	f, ok := r.fetchers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
	return f, nil
}

func newRawItem(src model.Source, title, link string, published time.Time, snippet string) model.RawItem {
	return model.RawItem{
		Title:                 title,
		Link:                  link,
		PublishedAt:           published,
		ContentSnippet:        snippet,
		SourceName:            src.Name,
		SourceDefaultCategory: src.DefaultCategory,
		SourceTier:            src.Tier,
		SourceRegion:          src.Region,
	}
}
