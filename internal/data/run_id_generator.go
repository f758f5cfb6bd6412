package data

import (
	"context"
	"time"

	"randkit/internal/biz"

	"github.com/cespare/xxhash/v2"
	"github.com/go-kratos/kratos/v2/log"
)

// EpochMsStart 时间起点为 UTC 2025-01-01 00:00:00
const EpochMsStart = 1735689600000

type runIDGenerator struct {
	now func() time.Time
	log *log.Helper
}

// NewRunIDGenerator 创建运行 ID 生成器
func NewRunIDGenerator(logger log.Logger) biz.RunIDGenerator {
	return &runIDGenerator{
		now: time.Now,
		log: log.NewHelper(log.With(logger, "module", "data/run_id")),
	}
}

// Generate 生成运行 ID
// 结构：[0(1位)][timestamp(46位)][host_hash(15位)]
// - 最高位为0，保证为正数
// - 中间46位为从 EpochMsStart 开始的毫秒数，约 2200 年后回绕
// - 最后15位为主机名的哈希，区分同一毫秒内不同机器上的运行
func (g *runIDGenerator) Generate(ctx context.Context, host string) (int64, error) {
	relativeTime := (g.now().UnixMilli() - EpochMsStart) & 0x3FFFFFFFFFFF // 取低46位
	hostHash := int64(xxhash.Sum64String(host) & 0x7FFF)
	id := relativeTime<<15 | hostHash
	g.log.Debugf("run id generated: id=%d host=%s", id, host)
	return id, nil
}
