package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/stream_radar/pkg/app"
	"github.com/iWorld-y/stream_radar/pkg/config"
	"github.com/iWorld-y/stream_radar/pkg/engine"
	"github.com/iWorld-y/stream_radar/pkg/enrich"
	"github.com/iWorld-y/stream_radar/pkg/feishu"
	"github.com/iWorld-y/stream_radar/pkg/logger"
	"github.com/iWorld-y/stream_radar/pkg/report"
	"github.com/iWorld-y/stream_radar/pkg/scheduler"
	"github.com/iWorld-y/stream_radar/pkg/source"
	"github.com/iWorld-y/stream_radar/pkg/storage"
)

var (
	// flagconf is the config flag.
	flagconf string
	// runNow 立即执行一次后退出
	runNow bool
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.BoolVar(&runNow, "run-now", false, "run the task once and exit")
}

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	lg, err := logger.New(cfg.Log.Level, cfg.Log.File, logger.Rotation{
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	})
	if err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	lg.Info("启动流媒体情报雷达...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, cleanup := buildRunner(ctx, cfg, lg)
	defer cleanup()

	if runNow {
		runner.Run(ctx)
		return
	}

	cron := scheduler.New(cfg.Schedule.Cron, cfg.Schedule.Location(), lg)
	if err := cron.Run(ctx, func(ctx context.Context) { runner.Run(ctx) }); err != nil {
		lg.Fatalf("定时任务启动失败: %v", err)
	}
}

func buildRunner(ctx context.Context, cfg *config.Config, lg *logrus.Logger) (*app.Runner, func()) {
	// 3. 初始化 LLM，未配置 API Key 时全部走规则分析
	backend, err := enrich.NewBackend(ctx, cfg.LLM, cfg.Concurrency, lg)
	if err != nil {
		lg.Errorf("LLM 初始化失败，使用规则分析: %v", err)
	}
	lg.Infof("分析后端: %s", backend.Kind())

	eng := engine.NewEngine(engine.Options{
		Taxonomy: &cfg.Taxonomy,
		Enricher: enrich.NewEnricher(backend, lg),
		Quota:    cfg.Pipeline.Quota,
		Logger:   lg,
	})

	// 4. 信源采集
	opts := source.CollectorOptions{
		Workers:       cfg.Concurrency.FetchWorkers,
		RecencyWindow: cfg.Pipeline.RecencyWindow,
		MinSnippet:    cfg.Pipeline.MinSnippet,
		MaxSnippet:    cfg.Pipeline.MaxSnippet,
		Logger:        lg,
	}
	if cfg.Pipeline.FetchFullText {
		opts.Extractor = source.ReadabilityExtractor{Timeout: cfg.Pipeline.FetchTimeout}
	}
	collector := source.NewCollector(source.NewRegistry(cfg), opts)

	// 5. 推送渠道
	var sinks []app.Sink
	cleanup := func() {}
	if cfg.Feishu.WebhookURL != "" {
		sinks = append(sinks, feishu.NewClient(cfg.Feishu.WebhookURL, cfg.Feishu.Title, cfg.Feishu.Footer, lg))
	} else {
		lg.Warn("未配置飞书 Webhook，跳过飞书推送")
	}
	if cfg.Report.HTMLPath != "" {
		sinks = append(sinks, report.NewWriter(cfg.Report.HTMLPath, cfg.Feishu.Title, lg))
	}
	if cfg.DB.DSN != "" {
		archive, err := storage.Open(ctx, cfg.DB.DSN)
		if err != nil {
			lg.Errorf("无法连接数据库: %v. 将跳过归档。", err)
		} else {
			lg.Info("已成功连接到数据库")
			sinks = append(sinks, archive)
			cleanup = func() { archive.Close() }
		}
	} else {
		lg.Info("未配置数据库信息，跳过数据库连接")
	}

	return app.NewRunner(cfg.Sources, collector, eng, sinks, lg), cleanup
}
