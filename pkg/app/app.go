package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/stream_radar/pkg/model"
)

// Collector 抓取所有信源
type Collector interface {
	Collect(ctx context.Context, sources []model.Source) []model.RawItem
}

// Processor 把原始条目加工为 Digest
type Processor interface {
	Process(ctx context.Context, items []model.RawItem) model.Digest
}

// Sink 接收 Digest 的下游（飞书、HTML 报告、归档库）
type Sink interface {
	Name() string
	Deliver(ctx context.Context, digest model.Digest) error
}

// Runner 一次完整运行：采集 -> 加工 -> 推送
type Runner struct {
	sources   []model.Source
	collector Collector
	processor Processor
	sinks     []Sink
	log       logrus.FieldLogger
}

// NewRunner 创建 Runner
func NewRunner(sources []model.Source, collector Collector, processor Processor, sinks []Sink, log logrus.FieldLogger) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{
		sources:   sources,
		collector: collector,
		processor: processor,
		sinks:     sinks,
		log:       log,
	}
}

// Run 执行一次任务。单个 Sink 失败只记录日志，不影响其他 Sink
func (r *Runner) Run(ctx context.Context) model.Digest {
	start := time.Now()
	r.log.Info("开始执行每日资讯任务...")

	items := r.collector.Collect(ctx, r.sources)
	digest := r.processor.Process(ctx, items)

	for _, c := range model.Categories {
		r.log.Infof("%s: %d 条", c, len(digest[c]))
	}

	if digest.Total() == 0 {
		r.log.Info("今天没有相关资讯，不推送")
		return digest
	}

	for _, sink := range r.sinks {
		if err := sink.Deliver(ctx, digest); err != nil {
			r.log.WithError(err).Errorf("推送失败 [%s]", sink.Name())
			continue
		}
		r.log.Debugf("推送完成 [%s]", sink.Name())
	}

	r.log.Infof("任务完成，耗时 %s", time.Since(start).Round(time.Millisecond))
	return digest
}
