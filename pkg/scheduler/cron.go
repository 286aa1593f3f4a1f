package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Cron 按 cron 表达式周期执行任务，上一次未结束时跳过本次触发
type Cron struct {
	spec string
	c    *cron.Cron
	log  logrus.FieldLogger
}

// New 创建调度器，spec 为标准五段式 cron 表达式
func New(spec string, loc *time.Location, log logrus.FieldLogger) *Cron {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	logger := cron.PrintfLogger(log)
	return &Cron{
		spec: spec,
		c: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		log: log,
	}
}

// Run 注册任务并阻塞到 ctx 结束，返回前等待正在执行的任务完成
func (s *Cron) Run(ctx context.Context, job func(context.Context)) error {
	id, err := s.c.AddFunc(s.spec, func() { job(ctx) })
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.spec, err)
	}

	s.c.Start()
	s.log.Infof("定时任务已启动: cron=%s 下次执行 %s", s.spec, s.c.Entry(id).Next.Format(time.RFC3339))

	<-ctx.Done()
	s.log.Info("正在停止定时任务...")
	<-s.c.Stop().Done()
	return nil
}
