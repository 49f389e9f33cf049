package systems

import (
	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
)

// CountdownSystem 推进涂色倒计时
//
// gate 返回 false 时本帧不推进（先检查再累计，暂停期间不会积累进度）。
// 到时后调用 OnExpire 恰好一次并销毁倒计时实体。
type CountdownSystem struct {
	entityManager *ecs.EntityManager
	gate          func() bool
	current       ecs.EntityID
}

// NewCountdownSystem 创建倒计时系统
// gate 为 nil 时总是推进
func NewCountdownSystem(em *ecs.EntityManager, gate func() bool) *CountdownSystem {
	return &CountdownSystem{entityManager: em, gate: gate}
}

// Start 启动新的倒计时，先取消仍在运行的旧倒计时
func (s *CountdownSystem) Start(duration float64, onProgress func(float64), onExpire func()) ecs.EntityID {
	s.Stop()

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.CountdownComponent{
		Duration:   duration,
		OnProgress: onProgress,
		OnExpire:   onExpire,
	})
	s.current = id
	if onProgress != nil {
		onProgress(1)
	}
	return id
}

// Stop 取消当前倒计时（没有则忽略）
func (s *CountdownSystem) Stop() {
	if s.current == ecs.NoEntity {
		return
	}
	if cd, ok := ecs.GetComponent[*components.CountdownComponent](s.entityManager, s.current); ok && !cd.Expired {
		cd.Cancelled = true
	}
	s.entityManager.DestroyEntity(s.current)
	s.current = ecs.NoEntity
}

// Current 当前倒计时实体
func (s *CountdownSystem) Current() ecs.EntityID {
	return s.current
}

// ActiveCount 未取消、未到时的倒计时数量
func (s *CountdownSystem) ActiveCount() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.CountdownComponent](s.entityManager) {
		cd, _ := ecs.GetComponent[*components.CountdownComponent](s.entityManager, id)
		if !cd.Cancelled && !cd.Expired {
			n++
		}
	}
	return n
}

// Update 推进倒计时
func (s *CountdownSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CountdownComponent](s.entityManager) {
		cd, ok := ecs.GetComponent[*components.CountdownComponent](s.entityManager, id)
		if !ok || cd.Cancelled || cd.Expired {
			continue
		}
		if s.gate != nil && !s.gate() {
			continue
		}

		cd.Elapsed += dt
		if cd.OnProgress != nil {
			cd.OnProgress(cd.Remaining())
		}
		if cd.Elapsed < cd.Duration {
			continue
		}

		cd.Expired = true
		s.entityManager.DestroyEntity(id)
		if s.current == id {
			s.current = ecs.NoEntity
		}
		if cd.OnExpire != nil {
			cd.OnExpire()
		}
	}
}
