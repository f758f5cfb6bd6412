package data

import (
	"context"
	"fmt"
	"time"

	"randkit/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix     = "randkit"
	redisLastReportKey = redisKeyPrefix + ":report:last"
	redisRunsKey       = redisKeyPrefix + ":runs"
)

func redisRunKey(id int64) string {
	return fmt.Sprintf("%s:run:%d", redisKeyPrefix, id)
}

type redisSink struct {
	rdb     *redis.Client
	history int64
	log     *log.Helper
}

func newRedisSink(rdb *redis.Client, history int64, logger log.Logger) *redisSink {
	return &redisSink{
		rdb:     rdb,
		history: history,
		log:     log.NewHelper(log.With(logger, "module", "data/redis")),
	}
}

// runFields 写入 run 哈希的字段
func runFields(run *biz.Run) map[string]any {
	failing := 0
	if run.Summary.Failing() {
		failing = 1
	}
	return map[string]any{
		"host":       run.Host,
		"started_at": run.StartedAt.UTC().Format(time.RFC3339Nano),
		"elapsed_ms": run.Elapsed.Milliseconds(),
		"modules":    len(run.Summary.Modules),
		"total":      run.Summary.Total(),
		"failed":     run.Summary.Failed(),
		"failing":    failing,
	}
}

// Publish 保存最近一次报告，并维护有上限的运行历史
func (s *redisSink) Publish(ctx context.Context, run *biz.Run) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, redisLastReportKey, run.Report, 0)
	pipe.HSet(ctx, redisRunKey(run.ID), runFields(run))
	pipe.LPush(ctx, redisRunsKey, run.ID)
	pipe.LTrim(ctx, redisRunsKey, 0, s.history-1)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Errorf("redis publish failed: run=%d err=%v", run.ID, err)
		return fmt.Errorf("redis sink: %w", err)
	}
	s.log.Infof("run %d stored in redis", run.ID)
	return nil
}
