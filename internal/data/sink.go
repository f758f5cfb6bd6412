package data

import (
	"context"
	"errors"

	"randkit/internal/biz"
	"randkit/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
)

// NewReportSink 根据配置组合可用的落地方式，都不可用时返回 noop 实现
func NewReportSink(d *Data, c *conf.Data, logger log.Logger) (biz.ReportSink, func(), error) {
	helper := log.NewHelper(log.With(logger, "module", "data/sink"))

	var sinks []biz.ReportSink
	if d != nil && d.redis != nil {
		sinks = append(sinks, newRedisSink(d.redis, c.GetRedis().GetHistory(), logger))
	}
	if d != nil && d.db != nil {
		repo, err := newRunRepo(d, logger)
		if err != nil {
			helper.Warnf("failed to migrate run tables: %v, postgres sink disabled", err)
		} else {
			sinks = append(sinks, repo)
		}
	}
	mq, cleanup := newMQSink(c, logger)
	if mq != nil {
		sinks = append(sinks, mq)
	}

	if len(sinks) == 0 {
		helper.Info("no report sink configured, results stay on stdout")
		return &noopSink{log: helper}, cleanup, nil
	}
	return multiSink(sinks), cleanup, nil
}

// multiSink 依次发布到每个 sink，错误合并返回
type multiSink []biz.ReportSink

func (m multiSink) Publish(ctx context.Context, run *biz.Run) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, run); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// noopSink 空实现（未配置任何落地方式时使用）
type noopSink struct {
	log *log.Helper
}

func (s *noopSink) Publish(ctx context.Context, run *biz.Run) error {
	if s.log != nil {
		s.log.Debugf("report sink not available, skipping run: id=%d", run.ID)
	}
	return nil
}
