package systems

import (
	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/utils"
)

// TweenSystem 推进所有补间动画
//
// 每个补间是一个独立实体，按创建顺序推进（先开始的先推进）。
// 本帧内新建的补间从下一帧开始推进。
type TweenSystem struct {
	entityManager *ecs.EntityManager
}

// NewTweenSystem 创建补间系统
func NewTweenSystem(em *ecs.EntityManager) *TweenSystem {
	return &TweenSystem{entityManager: em}
}

// Update 推进一帧
func (s *TweenSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TweenComponent](s.entityManager) {
		tw, ok := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
		if !ok || tw.Finished {
			continue
		}

		// 目标已销毁：静默丢弃
		if !s.entityManager.IsAlive(tw.Target) {
			s.entityManager.DestroyEntity(id)
			continue
		}

		if tw.Hold != nil && tw.Hold() {
			continue
		}

		tw.Elapsed += dt
		if tw.Elapsed < tw.Duration {
			factor := utils.Ease(tw.Ease, tw.Elapsed/tw.Duration)
			for _, track := range tw.Tracks {
				applyTrack(s.entityManager, tw.Target, track, track.Lerp(factor))
			}
			continue
		}

		finishTween(s.entityManager, id, tw)
	}
}

// finishTween 写入终值、销毁补间实体并调用后续动作
func finishTween(em *ecs.EntityManager, id ecs.EntityID, tw *components.TweenComponent) {
	for _, track := range tw.Tracks {
		applyTrack(em, tw.Target, track, track.To)
	}
	tw.Finished = true
	em.DestroyEntity(id)
	if tw.OnComplete != nil {
		tw.OnComplete()
	}
}

// StartTween 为 target 启动一个补间
//
// 返回补间实体ID。duration <= 0 时立即写入终值并同步调用 OnComplete，
// 不创建实体，返回 ecs.NoEntity。
func StartTween(em *ecs.EntityManager, tw components.TweenComponent) ecs.EntityID {
	if tw.Duration <= 0 {
		if !em.IsAlive(tw.Target) {
			return ecs.NoEntity
		}
		for _, track := range tw.Tracks {
			applyTrack(em, tw.Target, track, track.To)
		}
		tw.Finished = true
		if tw.OnComplete != nil {
			tw.OnComplete()
		}
		return ecs.NoEntity
	}

	id := em.CreateEntity()
	record := tw
	ecs.AddComponent(em, id, &record)
	return id
}

// MoveTo 位置补间（当前位置 -> to）
func MoveTo(em *ecs.EntityManager, target ecs.EntityID, to utils.Vec3, duration float64, ease utils.EaseType, onComplete func()) ecs.EntityID {
	from := utils.Vec3Zero
	if tr, ok := ecs.GetComponent[*components.TransformComponent](em, target); ok {
		from = tr.Position
	}
	return StartTween(em, components.TweenComponent{
		Target:     target,
		Tracks:     []components.TweenTrack{{Property: components.TweenPosition, From: from, To: to}},
		Duration:   duration,
		Ease:       ease,
		OnComplete: onComplete,
	})
}

// applyTrack 写入单条轨道的值
func applyTrack(em *ecs.EntityManager, target ecs.EntityID, track components.TweenTrack, v utils.Vec3) {
	switch track.Property {
	case components.TweenPosition, components.TweenScale, components.TweenRotationY:
		tr, ok := ecs.GetComponent[*components.TransformComponent](em, target)
		if !ok {
			return
		}
		switch track.Property {
		case components.TweenPosition:
			tr.Position = v
		case components.TweenScale:
			tr.Scale = v
		default:
			tr.RotationY = v.X
		}
	case components.TweenAlpha:
		if r, ok := ecs.GetComponent[*components.RenderComponent](em, target); ok {
			r.Alpha = v.X
		}
	case components.TweenShakeOffset:
		if rot, ok := ecs.GetComponent[*components.RotatorComponent](em, target); ok {
			rot.ShakeOffset = v
		}
	}
}
