package components

import "github.com/gonewx/paintrings/pkg/utils"

// BallState 彩球状态
type BallState int

const (
	BallQueued   BallState = iota // 在发射队列中等待
	BallFlying                    // 飞向命中点
	BallResolved                  // 已结算
	BallStuck                     // 发射时射线未命中，永久停住
)

func (s BallState) String() string {
	switch s {
	case BallQueued:
		return "Queued"
	case BallFlying:
		return "Flying"
	case BallResolved:
		return "Resolved"
	case BallStuck:
		return "Stuck"
	default:
		return "Unknown"
	}
}

// PaintedBallComponent 彩球
type PaintedBallComponent struct {
	State BallState
	// Speed 飞行速度（单位/秒）
	Speed float64
	// HitPoint 发射射线的命中点
	HitPoint utils.Vec3
}
