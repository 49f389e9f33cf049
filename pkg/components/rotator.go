package components

import (
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/utils"
)

// RotatorState 转台状态
type RotatorState int

const (
	RotatorIdle     RotatorState = iota // 尚未开始旋转
	RotatorRotating                     // 持续旋转
	RotatorBouncing                     // 落环弹跳中（旋转冻结）
)

func (s RotatorState) String() string {
	switch s {
	case RotatorIdle:
		return "Idle"
	case RotatorRotating:
		return "Rotating"
	case RotatorBouncing:
		return "Bouncing"
	default:
		return "Unknown"
	}
}

// RotatorComponent 转台
//
// 旋转角保存在 TransformComponent.RotationY。
// 位置分两个通道：TransformComponent.Position 是基准位置（弹跳写入），
// ShakeOffset 是震动叠加偏移，两者互不覆盖。
type RotatorComponent struct {
	// Rings 已落下的环，栈顶为最新
	Rings []ecs.EntityID
	// IsRotated 旋转已启动（只启动一次）
	IsRotated bool
	// ActiveBounces 进行中的弹跳数；大于 0 时旋转冻结
	ActiveBounces int
	// Leg 当前旋转段的补间实体
	Leg ecs.EntityID
	// LegCount 已开始的旋转段数
	LegCount int
	// ShakeOffset 震动叠加偏移
	ShakeOffset utils.Vec3
}

// State 当前状态
func (r *RotatorComponent) State() RotatorState {
	switch {
	case r.ActiveBounces > 0:
		return RotatorBouncing
	case r.IsRotated:
		return RotatorRotating
	default:
		return RotatorIdle
	}
}

// Stopped 弹跳期间旋转停止
func (r *RotatorComponent) Stopped() bool {
	return r.ActiveBounces > 0
}

// Top 栈顶的环，空栈返回 ecs.NoEntity
func (r *RotatorComponent) Top() ecs.EntityID {
	if len(r.Rings) == 0 {
		return ecs.NoEntity
	}
	return r.Rings[len(r.Rings)-1]
}
