package utils

import (
	"fmt"
	"math"
	"strings"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值。
// 大部分曲线输出 ∈ [0, 1]；Back / Elastic 类曲线允许越界（回弹）。
//
// 参考：https://easings.net/

// EaseType 缓动曲线类型
// 关卡配置中的 rotatingTypes 使用 String() 对应的名称
type EaseType int

const (
	EaseTypeLinear EaseType = iota
	EaseTypeInQuad
	EaseTypeOutQuad
	EaseTypeInOutQuad
	EaseTypeInCubic
	EaseTypeOutCubic
	EaseTypeInOutCubic
	EaseTypeInQuart
	EaseTypeOutQuart
	EaseTypeInOutQuart
	EaseTypeInSine
	EaseTypeOutSine
	EaseTypeInOutSine
	EaseTypeInExpo
	EaseTypeOutExpo
	EaseTypeInOutExpo
	EaseTypeInBack
	EaseTypeOutBack
	EaseTypeOutBounce
	EaseTypeOutElastic

	easeTypeCount
)

var easeTypeNames = [...]string{
	EaseTypeLinear:     "linear",
	EaseTypeInQuad:     "easeInQuad",
	EaseTypeOutQuad:    "easeOutQuad",
	EaseTypeInOutQuad:  "easeInOutQuad",
	EaseTypeInCubic:    "easeInCubic",
	EaseTypeOutCubic:   "easeOutCubic",
	EaseTypeInOutCubic: "easeInOutCubic",
	EaseTypeInQuart:    "easeInQuart",
	EaseTypeOutQuart:   "easeOutQuart",
	EaseTypeInOutQuart: "easeInOutQuart",
	EaseTypeInSine:     "easeInSine",
	EaseTypeOutSine:    "easeOutSine",
	EaseTypeInOutSine:  "easeInOutSine",
	EaseTypeInExpo:     "easeInExpo",
	EaseTypeOutExpo:    "easeOutExpo",
	EaseTypeInOutExpo:  "easeInOutExpo",
	EaseTypeInBack:     "easeInBack",
	EaseTypeOutBack:    "easeOutBack",
	EaseTypeOutBounce:  "easeOutBounce",
	EaseTypeOutElastic: "easeOutElastic",
}

// String 返回曲线在配置文件中的名称
func (e EaseType) String() string {
	if e < 0 || e >= easeTypeCount {
		return fmt.Sprintf("EaseType(%d)", int(e))
	}
	return easeTypeNames[e]
}

// Valid 曲线类型是否合法
func (e EaseType) Valid() bool {
	return e >= 0 && e < easeTypeCount
}

// ParseEaseType 根据名称解析曲线类型（不区分大小写）
func ParseEaseType(name string) (EaseType, error) {
	for i, n := range easeTypeNames {
		if strings.EqualFold(n, name) {
			return EaseType(i), nil
		}
	}
	return EaseTypeLinear, fmt.Errorf("unknown ease type %q", name)
}

// UnmarshalText 支持在 YAML 中直接写曲线名称
func (e *EaseType) UnmarshalText(text []byte) error {
	parsed, err := ParseEaseType(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// MarshalText 输出曲线名称
func (e EaseType) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("invalid ease type %d", int(e))
	}
	return []byte(e.String()), nil
}

// Ease 按曲线类型计算缓动值
// 纯函数；非法曲线类型属于调用方违约，直接 panic
func Ease(e EaseType, t float64) float64 {
	switch e {
	case EaseTypeLinear:
		return EaseLinear(t)
	case EaseTypeInQuad:
		return EaseInQuad(t)
	case EaseTypeOutQuad:
		return EaseOutQuad(t)
	case EaseTypeInOutQuad:
		return EaseInOutQuad(t)
	case EaseTypeInCubic:
		return EaseInCubic(t)
	case EaseTypeOutCubic:
		return EaseOutCubic(t)
	case EaseTypeInOutCubic:
		return EaseInOutCubic(t)
	case EaseTypeInQuart:
		return t * t * t * t
	case EaseTypeOutQuart:
		return 1 - math.Pow(1-t, 4)
	case EaseTypeInOutQuart:
		if t < 0.5 {
			return 8 * t * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 4)/2
	case EaseTypeInSine:
		return 1 - math.Cos(t*math.Pi/2)
	case EaseTypeOutSine:
		return math.Sin(t * math.Pi / 2)
	case EaseTypeInOutSine:
		return -(math.Cos(math.Pi*t) - 1) / 2
	case EaseTypeInExpo:
		if t <= 0 {
			return 0
		}
		return math.Pow(2, 10*t-10)
	case EaseTypeOutExpo:
		return EaseOutExpo(t)
	case EaseTypeInOutExpo:
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		case t < 0.5:
			return math.Pow(2, 20*t-10) / 2
		default:
			return (2 - math.Pow(2, -20*t+10)) / 2
		}
	case EaseTypeInBack:
		const c1 = 1.70158
		const c3 = c1 + 1
		return c3*t*t*t - c1*t*t
	case EaseTypeOutBack:
		const c1 = 1.70158
		const c3 = c1 + 1
		return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
	case EaseTypeOutBounce:
		return EaseOutBounce(t)
	case EaseTypeOutElastic:
		const c4 = 2 * math.Pi / 3
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		default:
			return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
		}
	}
	panic(fmt.Sprintf("utils.Ease: invalid ease type %d", int(e)))
}

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic 三次方缓入
// 特点：开始慢，结束快
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInOutCubic 三次方缓入缓出
// 特点：开始慢，中间快，结束慢
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢（转台落下弹跳使用此曲线）
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseInOutQuad 二次方缓入缓出
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// EaseOutExpo 指数缓出
// 公式：f(t) = 1 - 2^(-10t)
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseOutBounce 弹跳缓出
func EaseOutBounce(t float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
