// Package scale 缩放后数值轴上下限的取整策略
package scale

import (
	"math"
)

const (
	// MinDelta 小于该跨度的范围视为退化范围
	MinDelta = 1e-14
	// CoarseDelta 大于该跨度的范围取整数边界
	CoarseDelta = 100.0
)

// Adjust 对缩放计算得到的上下限取整
// min >= max 时原样返回，调用方需保证 min < max
func Adjust(min, max float64) (float64, float64) {
	if !(min < max) {
		return min, max
	}

	delta := max - min
	if delta < MinDelta {
		return min, min + MinDelta
	}

	if delta > CoarseDelta {
		return math.Floor(min), math.Ceil(max)
	}

	precision := Precision(delta)
	lo, hi := roundTo(min, precision), roundTo(max, precision)
	if !(lo < hi) {
		// 取整后区间塌缩，保留原值
		return min, max
	}
	return lo, hi
}

// Precision 跨度对应的保留小数位数
func Precision(delta float64) int {
	p := int(math.Floor(math.Log10(delta))) - 2
	if p < 0 {
		p = -p
	}
	return p
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	r := math.Round(v*pow) / pow
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return v
	}
	return r
}
