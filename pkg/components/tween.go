package components

import (
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/utils"
)

// TweenProperty 补间动画写入的目标属性
type TweenProperty int

const (
	TweenPosition    TweenProperty = iota // TransformComponent.Position
	TweenScale                            // TransformComponent.Scale
	TweenRotationY                        // TransformComponent.RotationY，取 X 分量
	TweenAlpha                            // RenderComponent.Alpha，取 X 分量
	TweenShakeOffset                      // RotatorComponent.ShakeOffset（叠加偏移通道）
)

// TweenTrack 单条属性轨道
type TweenTrack struct {
	Property TweenProperty
	From     utils.Vec3
	To       utils.Vec3
}

// Lerp 按进度插值
func (t TweenTrack) Lerp(factor float64) utils.Vec3 {
	return utils.LerpVec3(t.From, t.To, factor)
}

// TweenComponent 活动中的补间动画记录（纯数据）
//
// 每个补间是一个独立实体，由 TweenSystem 每帧推进一次：
//  1. Hold 返回 true 时本帧不累计时间（冻结，而非取消）
//  2. Elapsed += dt，各轨道写入 lerp(From, To, ease(min(Elapsed/Duration, 1)))
//  3. Elapsed >= Duration 时精确写入终值，OnComplete 恰好调用一次，补间实体销毁
//
// 同一记录上的多条轨道共享时间与曲线（如渐隐效果同时缩放和淡出）。
// 目标实体被销毁时补间静默丢弃，不会调用 OnComplete。
type TweenComponent struct {
	Target   ecs.EntityID
	Tracks   []TweenTrack
	Duration float64 // 秒
	Elapsed  float64 // 秒
	Ease     utils.EaseType

	// Hold 冻结条件（可为 nil）
	Hold func() bool
	// OnComplete 结束后的后续动作（可为 nil）
	OnComplete func()
	// Finished 已写入终值
	Finished bool
}
