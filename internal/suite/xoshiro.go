package suite

import (
	"math"

	"randkit/internal/biz"
	"randkit/internal/stat"
	"randkit/pkg/random"
)

// Module 公平性与均匀性检验，种子固定为 0
func (x *Xoshiro) Module(m *biz.M) {
	m.Declare("random.xoshiro128plus")

	m.Run(x.RandBoolTest)
	m.Run(x.RandIntTest)
}

// DistributionModule 浮点输出的 KS 检验
func (x *Xoshiro) DistributionModule(m *biz.M) {
	m.Declare("random.distribution")

	m.Run(x.RandFloatTest)
	m.Run(x.RandDoubleTest)
}

// RandBoolTest true 的比例与 0.5 的偏差不超过 stat.Epsilon
func (x *Xoshiro) RandBoolTest(t *biz.T) {
	rng := random.NewXoshiro128Plus(0)

	count := 0
	for i := 0; i < x.n; i++ {
		if rng.RandBool() {
			count++
		}
	}

	ratio := stat.Proportion(count, x.n)
	if delta := math.Abs(ratio - 0.5); delta > stat.Epsilon {
		t.Errorf("T/F ratio (%.3f) differs from 0.5 by more than %.2f.", ratio, stat.Epsilon)
	}
}

// RandIntTest 离散均匀分布 [0,10) 的卡方拟合优度检验
// H_0: RandInt 的输出服从均匀分布
// H_a: RandInt 的输出不服从均匀分布
func (x *Xoshiro) RandIntTest(t *biz.T) {
	rng := random.NewXoshiro128Plus(0)

	digits := make([]int, 10)
	for i := 0; i < x.n; i++ {
		v := rng.RandInt(0, 10)
		if v < 0 || v >= 10 {
			t.Errorf("Random integer %d out of bounds [0,10).", v)
			return
		}
		digits[v]++
	}

	if chi := stat.ChiSquareUniform(digits); chi > stat.ChiSquare9 {
		t.Errorf("Random integers are not uniformly distributed: %.3f > %.3f.", chi, stat.ChiSquare9)
	}
}

// RandFloatTest RandFloat 与 Uniform[0,1) 的 KS 检验
func (x *Xoshiro) RandFloatTest(t *biz.T) {
	rng := random.NewXoshiro128Plus(0)

	samples := make([]float64, x.n)
	for i := range samples {
		samples[i] = float64(rng.RandFloat())
	}

	if d := stat.KolmogorovSmirnovUniform(samples); d > x.ksCritical {
		t.Errorf("Random floats are not uniformly distributed: D = %.6f > %.6f.", d, x.ksCritical)
	}
}

// RandDoubleTest RandDouble 与 Uniform[0,1) 的 KS 检验
func (x *Xoshiro) RandDoubleTest(t *biz.T) {
	rng := random.NewXoshiro128Plus(0)

	samples := make([]float64, x.n)
	for i := range samples {
		samples[i] = rng.RandDouble()
	}

	if d := stat.KolmogorovSmirnovUniform(samples); d > x.ksCritical {
		t.Errorf("Random doubles are not uniformly distributed: D = %.6f > %.6f.", d, x.ksCritical)
	}
}
