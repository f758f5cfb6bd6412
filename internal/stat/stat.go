// Package stat 提供随机数生成器质量检验用的统计量
package stat

import (
	"math"
	"slices"
)

const (
	// SampleSize 分布检验的默认样本量
	SampleSize = 10000
	// Epsilon 比例检验的容差
	Epsilon = 0.01
	// ChiSquare9 自由度为 9、显著性水平 0.05 的卡方临界值
	ChiSquare9 = 16.919
	// KSCritical 样本量 10000、显著性水平 0.05 的 KS 临界值
	KSCritical = 0.013581
	// ksCoefficient 大样本下 alpha = 0.05 的 KS 系数
	ksCoefficient = 1.3581
)

// KSCriticalFor 返回样本量 n 在 alpha = 0.05 时的 KS 近似临界值
func KSCriticalFor(n int) float64 {
	if n <= 0 {
		return math.Inf(1)
	}
	return ksCoefficient / math.Sqrt(float64(n))
}

// Proportion 返回 hits/n，n 为 0 时返回 NaN
func Proportion(hits, n int) float64 {
	if n == 0 {
		return math.NaN()
	}
	return float64(hits) / float64(n)
}

// ChiSquareUniform 计算各桶计数相对离散均匀分布的卡方统计量
// sum((O - E)^2 / E)，E = total / len(counts)
func ChiSquareUniform(counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}
	expected := float64(total) / float64(len(counts))
	chi := 0.0
	for _, c := range counts {
		diff := float64(c) - expected
		chi += diff * diff / expected
	}
	return chi
}

// KolmogorovSmirnovUniform 计算样本经验分布与 Uniform[0,1) 之间的 KS 统计量
// 不会修改 samples
func KolmogorovSmirnovUniform(samples []float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	d := 0.0
	fn := float64(n)
	for i, x := range sorted {
		cdf := uniformCDF(x)
		// 经验分布在 x_i 处跳变，两侧都要比较
		if above := float64(i+1)/fn - cdf; above > d {
			d = above
		}
		if below := cdf - float64(i)/fn; below > d {
			d = below
		}
	}
	return d
}

func uniformCDF(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
