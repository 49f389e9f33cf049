package systems

import (
	"math/rand/v2"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/config"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/logger"
	"github.com/gonewx/paintrings/pkg/utils"
)

const (
	// bounceOvershoot 弹跳时超出一个环段高度的下沉量
	bounceOvershoot = 0.5
	// shakeDistance 震动前冲距离
	shakeDistance = 0.2
	// shakeLegTime 震动单程时长（秒）
	shakeLegTime = 0.05
	// minLegDuration 旋转段的最短时长，避免零时长段在同一帧内无限续接
	minLegDuration = 1e-6
)

// RotatorSystem 转台：持续旋转、落环弹跳与震动
//
// 旋转由一段接一段的补间实现：每段随机挑选角度、速度和曲线，
// 段结束时在回调里开始下一段。补间的 Hold 条件为"弹跳中或游戏不在 Playing"，
// 因此暂停与弹跳只会冻结当前段，恢复后从原处继续。
//
// 三个通道互不覆盖：旋转写 RotationY，弹跳写 Position，震动写 ShakeOffset。
type RotatorSystem struct {
	entityManager *ecs.EntityManager
	rotatorID     ecs.EntityID
	rng           *rand.Rand
	pieceHeight   float64
	playing       func() bool
	level         *config.LevelData
}

// NewRotatorSystem 创建转台系统
// playing 返回当前是否处于 Playing 状态
func NewRotatorSystem(em *ecs.EntityManager, rotatorID ecs.EntityID, rng *rand.Rand, pieceHeight float64, playing func() bool) *RotatorSystem {
	return &RotatorSystem{
		entityManager: em,
		rotatorID:     rotatorID,
		rng:           rng,
		pieceHeight:   pieceHeight,
		playing:       playing,
	}
}

// SetLevel 设置旋转参数来源
func (s *RotatorSystem) SetLevel(level *config.LevelData) {
	s.level = level
}

// Rotator 转台实体
func (s *RotatorSystem) Rotator() ecs.EntityID {
	return s.rotatorID
}

func (s *RotatorSystem) component() *components.RotatorComponent {
	rot, _ := ecs.GetComponent[*components.RotatorComponent](s.entityManager, s.rotatorID)
	return rot
}

func (s *RotatorSystem) transform() *components.TransformComponent {
	tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.rotatorID)
	return tr
}

// State 转台状态
func (s *RotatorSystem) State() components.RotatorState {
	if rot := s.component(); rot != nil {
		return rot.State()
	}
	return components.RotatorIdle
}

// Angle 当前旋转角（度，[0, 360)）
func (s *RotatorSystem) Angle() float64 {
	if tr := s.transform(); tr != nil {
		return utils.WrapDegrees(tr.RotationY)
	}
	return 0
}

// Rings 已落下的环（栈底在前）
func (s *RotatorSystem) Rings() []ecs.EntityID {
	if rot := s.component(); rot != nil {
		return rot.Rings
	}
	return nil
}

// StackTop 下一个环应落到的世界坐标（基准位置上方 栈深 x 环段高度）
func (s *RotatorSystem) StackTop() utils.Vec3 {
	rot, tr := s.component(), s.transform()
	if rot == nil || tr == nil {
		return utils.Vec3Zero
	}
	return tr.Position.Add(utils.Vec3Up.Scale(s.pieceHeight * float64(len(rot.Rings))))
}

// Attach 把已挂到转台下的环压栈并执行落环反应
func (s *RotatorSystem) Attach(ringID ecs.EntityID, bounceTime float64) {
	rot := s.component()
	if rot == nil {
		return
	}
	rot.Rings = append(rot.Rings, ringID)
	s.MoveDownAndBounce(bounceTime)
}

// MoveDownAndBounce 落环反应
// 栈中只有一个环时启动旋转（只启动一次），多于一个时弹跳
func (s *RotatorSystem) MoveDownAndBounce(bounceTime float64) {
	rot := s.component()
	if rot == nil {
		return
	}
	if len(rot.Rings) > 1 {
		s.bounce(bounceTime)
		return
	}
	if !rot.IsRotated {
		rot.IsRotated = true
		logger.Debug("[RotatorSystem] Rotation started")
		s.nextLeg()
	}
}

// bounce 整个栈下沉（环段高度 + 超出量），再回升超出量
func (s *RotatorSystem) bounce(bounceTime float64) {
	rot, tr := s.component(), s.transform()
	rot.ActiveBounces++

	half := bounceTime / 2
	start := tr.Position
	down := start.Add(utils.Vec3Down.Scale(s.pieceHeight + bounceOvershoot))
	StartTween(s.entityManager, components.TweenComponent{
		Target:   s.rotatorID,
		Tracks:   []components.TweenTrack{{Property: components.TweenPosition, From: start, To: down}},
		Duration: half,
		Ease:     utils.EaseTypeOutQuad,
		OnComplete: func() {
			StartTween(s.entityManager, components.TweenComponent{
				Target:   s.rotatorID,
				Tracks:   []components.TweenTrack{{Property: components.TweenPosition, From: down, To: down.Add(utils.Vec3Up.Scale(bounceOvershoot))}},
				Duration: half,
				Ease:     utils.EaseTypeOutQuad,
				OnComplete: func() {
					if rot.ActiveBounces > 0 {
						rot.ActiveBounces--
					}
				},
			})
		},
	})
}

// nextLeg 开始下一段旋转
func (s *RotatorSystem) nextLeg() {
	rot, tr := s.component(), s.transform()
	if rot == nil || tr == nil || s.level == nil {
		return
	}
	level := s.level

	angle := utils.RangeFloat(s.rng, level.MinRotatingDegrees, level.MaxRotatingDegrees)
	speed := utils.RangeFloat(s.rng, level.MinRotatingSpeed, level.MaxRotatingSpeed)
	duration := angle / speed
	if duration < minLegDuration {
		duration = minLegDuration
	}
	ease := level.RotatingTypes[utils.RangeInt(s.rng, 0, len(level.RotatingTypes))]

	from := tr.RotationY
	to := from - angle
	if s.rng.Float64() <= 0.5 {
		to = from + angle
	}

	rot.LegCount++
	rot.Leg = StartTween(s.entityManager, components.TweenComponent{
		Target:   s.rotatorID,
		Tracks:   []components.TweenTrack{{Property: components.TweenRotationY, From: utils.Vec3{X: from}, To: utils.Vec3{X: to}}},
		Duration: duration,
		Ease:     ease,
		Hold: func() bool {
			return rot.Stopped() || !s.playing()
		},
		OnComplete: func() {
			tr.RotationY = utils.WrapDegrees(tr.RotationY)
			s.nextLeg()
		},
	})
}

// Shake 向前冲出再退回的短促震动（叠加在 ShakeOffset 通道上）
func (s *RotatorSystem) Shake() {
	forward := utils.Vec3Forward.Scale(shakeDistance)
	StartTween(s.entityManager, components.TweenComponent{
		Target:   s.rotatorID,
		Tracks:   []components.TweenTrack{{Property: components.TweenShakeOffset, From: utils.Vec3Zero, To: forward}},
		Duration: shakeLegTime,
		Ease:     utils.EaseTypeLinear,
		OnComplete: func() {
			StartTween(s.entityManager, components.TweenComponent{
				Target:   s.rotatorID,
				Tracks:   []components.TweenTrack{{Property: components.TweenShakeOffset, From: forward, To: utils.Vec3Zero}},
				Duration: shakeLegTime,
				Ease:     utils.EaseTypeLinear,
			})
		},
	})
}
