package engine

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/stream_radar/pkg/enrich"
	"github.com/iWorld-y/stream_radar/pkg/model"
	"github.com/iWorld-y/stream_radar/pkg/taxonomy"
)

// Enricher 对排序后的候选条目做结构化分析，默认为未配置后端的 enrich.Enricher
type Enricher interface {
	Enrich(ctx context.Context, ranked map[model.Category][]model.ScoredItem) model.Digest
}

// Options 引擎参数
type Options struct {
	Taxonomy *taxonomy.Taxonomy
	Enricher Enricher
	Quota    int
	Logger   logrus.FieldLogger
}

// Engine 分类 -> 打分 -> 去重 -> 排序 -> 分析 的核心流水线
type Engine struct {
	tax      *taxonomy.Taxonomy
	enricher Enricher
	quota    int
	log      logrus.FieldLogger
}

// NewEngine 创建引擎实例
func NewEngine(opts Options) *Engine {
	quota := opts.Quota
	if quota <= 0 {
		quota = DefaultQuota
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	tax := opts.Taxonomy
	if tax == nil {
		def := taxonomy.Default().Normalize()
		tax = &def
	}
	enricher := opts.Enricher
	if enricher == nil {
		enricher = enrich.NewEnricher(enrich.Unconfigured(), log)
	}
	return &Engine{
		tax:      tax,
		enricher: enricher,
		quota:    quota,
		log:      log,
	}
}

// Preprocess 丢弃缺少标题或链接的条目，分类打分后过滤掉得分 <= 0 的噪音
func (e *Engine) Preprocess(items []model.RawItem) []model.ScoredItem {
	out := make([]model.ScoredItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Title) == "" || strings.TrimSpace(item.Link) == "" {
			e.log.Debugf("丢弃不完整条目: source=%s link=%q", item.SourceName, item.Link)
			continue
		}

		scored := e.ScoreItem(item)
		if scored.Score <= 0 {
			e.log.Debugf("噪音条目已过滤 [%s] score=%d", item.Title, scored.Score)
			continue
		}
		out = append(out, scored)
	}
	return out
}

// ScoreItem 对单条原始条目分类并打分
func (e *Engine) ScoreItem(item model.RawItem) model.ScoredItem {
	text := item.Text()
	category := Classify(text, item.SourceDefaultCategory, e.tax)
	return model.ScoredItem{
		RawItem:  item,
		Category: category,
		Score:    Score(text, category, item.SourceTier, e.tax),
		Region:   Region(item),
		Type:     Type(text, e.tax),
	}
}

// Select 去重并按分类截取 Top N
func (e *Engine) Select(scored []model.ScoredItem) map[model.Category][]model.ScoredItem {
	unique := Dedupe(scored)
	e.log.Infof("去重完成: %d -> %d", len(scored), len(unique))
	return Rank(unique, model.Categories, e.quota)
}

// Process 执行一次完整流水线，返回 Digest
func (e *Engine) Process(ctx context.Context, items []model.RawItem) model.Digest {
	scored := e.Preprocess(items)
	e.log.Infof("预处理完成: 原始 %d 条，有效 %d 条", len(items), len(scored))

	ranked := e.Select(scored)
	for _, c := range model.Categories {
		e.log.Infof("分类 [%s] 候选 %d 条", c, len(ranked[c]))
	}

	return e.enricher.Enrich(ctx, ranked)
}
