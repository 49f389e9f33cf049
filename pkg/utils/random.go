package utils

import "math/rand/v2"

// RangeInt 返回 [min, max) 内的随机整数；max <= min 时返回 min
func RangeInt(r *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.IntN(max-min)
}

// RangeFloat 返回 [min, max] 内的随机浮点数
func RangeFloat(r *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.Float64()*(max-min)
}

// NewRand 基于种子创建确定性随机源
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
