// Package suite 注册到 prngtest 的测试模块
package suite

import (
	"randkit/internal/biz"
	"randkit/internal/conf"
	"randkit/internal/stat"

	"github.com/google/wire"
)

// ProviderSet is suite providers.
var ProviderSet = wire.NewSet(NewModules)

// NewModules 按执行顺序返回全部模块
func NewModules(c *conf.Harness) biz.Modules {
	x := NewXoshiro(c.GetSampleSize())
	return biz.Modules{
		x.Module,
		x.DistributionModule,
		PropertiesModule,
	}
}

// Xoshiro xoshiro128+ 的统计检验，样本量可配置
type Xoshiro struct {
	n          int
	ksCritical float64
}

// NewXoshiro n <= 0 时使用 stat.SampleSize
func NewXoshiro(n int) *Xoshiro {
	if n <= 0 {
		n = stat.SampleSize
	}
	critical := stat.KSCritical
	if n != stat.SampleSize {
		critical = stat.KSCriticalFor(n)
	}
	return &Xoshiro{n: n, ksCritical: critical}
}
