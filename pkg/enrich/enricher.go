package enrich

import (
	"context"

	"github.com/sirupsen/logrus"

	dm "github.com/iWorld-y/stream_radar/pkg/model"
)

// Enricher 为入选条目生成结构化分析，永远不会让流水线失败
type Enricher struct {
	backend Backend
	log     logrus.FieldLogger
}

// NewEnricher 创建 Enricher
func NewEnricher(backend Backend, log logrus.FieldLogger) *Enricher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Enricher{backend: backend, log: log}
}

// Backend 当前使用的后端
func (e *Enricher) Backend() Backend {
	return e.backend
}

// Enrich 按固定分类顺序逐条分析，调用次数不超过 quota * 分类数
func (e *Enricher) Enrich(ctx context.Context, ranked map[dm.Category][]dm.ScoredItem) dm.Digest {
	digest := dm.NewDigest()
	for _, c := range dm.Categories {
		items := ranked[c]
		if len(items) == 0 {
			continue
		}
		e.log.Infof("正在分析分类 [%s] 的 %d 条候选", c, len(items))
		enriched := make([]dm.EnrichedItem, 0, len(items))
		for _, item := range items {
			enriched = append(enriched, e.EnrichItem(ctx, item))
		}
		digest[c] = enriched
	}
	return digest
}

// EnrichItem Pending -> (Analyzing) -> Backend | Fallback
func (e *Enricher) EnrichItem(ctx context.Context, item dm.ScoredItem) dm.EnrichedItem {
	pending := dm.NewEnrichedItem(item)

	switch e.backend.Kind() {
	case BackendConfigured:
		analyzing := pending.Analyzing()
		e.log.WithField("state", analyzing.State).Debugf("开始 LLM 分析 [%s]", item.Title)

		res, err := e.backend.analyzer.Analyze(ctx, Request{
			Title:      item.Title,
			Excerpt:    item.ContentSnippet,
			SourceName: item.SourceName,
			Category:   item.Category,
		})
		if err == nil {
			err = res.Validate()
		}
		if err != nil {
			e.log.WithError(err).Warnf("LLM 分析失败，使用规则分析 [%s]", item.Title)
			return analyzing.WithAnalysis(Fallback(item), dm.StateFallback)
		}
		return analyzing.WithAnalysis(res.Analysis, dm.StateBackend).WithClassification(res.Region, res.Type)
	default:
		return pending.WithAnalysis(Fallback(item), dm.StateFallback)
	}
}
