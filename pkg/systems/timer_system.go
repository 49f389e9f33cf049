package systems

import (
	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
)

// TimerSystem 推进延时计时器
// 到时（再加上 ExtraFrames 帧）后调用 OnFire 并销毁计时器实体
type TimerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{entityManager: em}
}

// Update 推进所有计时器
func (s *TimerSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if !ok || timer.IsReady {
			continue
		}

		timer.CurrentTime += dt
		if timer.CurrentTime < timer.TargetTime {
			continue
		}
		if timer.ExtraFrames > 0 {
			timer.ExtraFrames--
			continue
		}

		timer.IsReady = true
		s.entityManager.DestroyEntity(id)
		if timer.OnFire != nil {
			timer.OnFire()
		}
	}
}

// StartTimer 创建延时计时器
// delay 秒后再等待 extraFrames 帧调用 onFire
func StartTimer(em *ecs.EntityManager, name string, delay float64, extraFrames int, onFire func()) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TimerComponent{
		Name:        name,
		TargetTime:  delay,
		ExtraFrames: extraFrames,
		OnFire:      onFire,
	})
	return id
}
