package source

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/stream_radar/pkg/htmltext"
	"github.com/iWorld-y/stream_radar/pkg/model"
)

// CollectorOptions 采集参数
type CollectorOptions struct {
	Workers       int
	RecencyWindow time.Duration
	// 摘要短于 MinSnippet 时用 Extractor 补全正文，Extractor 为 nil 则不补全
	Extractor  Extractor
	MinSnippet int
	MaxSnippet int
	Logger     logrus.FieldLogger
}

// Collector 并发抓取所有信源，单个信源失败只记录日志
type Collector struct {
	registry *Registry
	opts     CollectorOptions
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewCollector 创建采集器
func NewCollector(registry *Registry, opts CollectorOptions) *Collector {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.RecencyWindow <= 0 {
		opts.RecencyWindow = 24 * time.Hour
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Collector{registry: registry, opts: opts, log: log, now: time.Now}
}

// Collect 返回所有信源的条目，顺序与信源配置顺序一致
func (c *Collector) Collect(ctx context.Context, sources []model.Source) []model.RawItem {
	since := c.now().Add(-c.opts.RecencyWindow)

	results := make([][]model.RawItem, len(sources))
	sem := make(chan struct{}, c.opts.Workers)
	var wg sync.WaitGroup

	for i, src := range sources {
		wg.Add(1)
		go func(i int, src model.Source) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			results[i] = c.collectOne(ctx, src, since)
		}(i, src)
	}
	wg.Wait()

	var all []model.RawItem
	for _, items := range results {
		all = append(all, items...)
	}
	c.log.Infof("采集完成: %d 个信源，共 %d 条", len(sources), len(all))
	return all
}

func (c *Collector) collectOne(ctx context.Context, src model.Source, since time.Time) []model.RawItem {
	log := c.log.WithField("source", src.Name)

	fetcher, err := c.registry.Resolve(src)
	if err != nil {
		log.Warnf("跳过信源: %v", err)
		return nil
	}

	items, err := fetcher.Fetch(ctx, src, since)
	if err != nil {
		log.Errorf("抓取失败: %v", err)
		return nil
	}

	for i := range items {
		items[i].ContentSnippet = c.completeSnippet(ctx, log, items[i])
	}
	log.Infof("抓取到 %d 条", len(items))
	return items
}

// completeSnippet 摘要过短时尝试抓取原文，失败则保留原摘要
func (c *Collector) completeSnippet(ctx context.Context, log logrus.FieldLogger, item model.RawItem) string {
	snippet := item.ContentSnippet
	if c.opts.Extractor != nil && item.Link != "" && len([]rune(snippet)) < c.opts.MinSnippet {
		text, err := c.opts.Extractor.Extract(ctx, item.Link)
		switch {
		case err != nil:
			log.Debugf("原文抓取失败，使用摘要 [%s]: %v", item.Title, err)
		case htmltext.Text(text) != "":
			snippet = htmltext.Text(text)
		}
	}
	return htmltext.Truncate(snippet, c.opts.MaxSnippet)
}
