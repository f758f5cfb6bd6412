package stat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChiSquareUniform(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   float64
	}{
		{"empty", nil, 0},
		{"all zero", []int{0, 0, 0}, 0},
		{"perfect", []int{100, 100, 100, 100}, 0},
		{"skewed", []int{10, 30}, 10},
		{"xoshiro seed 0", []int{957, 961, 1028, 980, 980, 1013, 1042, 1035, 1005, 999}, 8.138},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ChiSquareUniform(tt.counts), 1e-9)
		})
	}
}

func TestKolmogorovSmirnovUniform(t *testing.T) {
	assert.Equal(t, 0.0, KolmogorovSmirnovUniform(nil))

	// 单点 0.5：max(1 - 0.5, 0.5 - 0) = 0.5
	assert.InDelta(t, 0.5, KolmogorovSmirnovUniform([]float64{0.5}), 1e-12)

	// 全部为 0 的样本偏离最大
	assert.InDelta(t, 1.0, KolmogorovSmirnovUniform([]float64{0, 0, 0, 0}), 1e-12)

	// 等距中点是最优拟合，D = 1/(2n)
	n := 1000
	grid := make([]float64, n)
	for i := range grid {
		grid[n-1-i] = (float64(i) + 0.5) / float64(n)
	}
	assert.InDelta(t, 0.5/float64(n), KolmogorovSmirnovUniform(grid), 1e-12)
	// 输入不能被原地排序
	assert.Greater(t, grid[0], grid[n-1])
}

func TestKSCriticalFor(t *testing.T) {
	assert.InDelta(t, KSCritical, KSCriticalFor(SampleSize), 1e-9)
	assert.True(t, math.IsInf(KSCriticalFor(0), 1))
}

func TestProportion(t *testing.T) {
	assert.Equal(t, 0.25, Proportion(1, 4))
	assert.True(t, math.IsNaN(Proportion(1, 0)))
}
