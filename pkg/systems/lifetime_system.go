package systems

import (
	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 对象池成员到期后失活回池，其余实体被销毁
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		// 失活的池成员不计时
		if pool, pooled := ecs.GetComponent[*components.PoolableComponent](s.entityManager, id); pooled && !pool.Active {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime < lifetime.MaxLifetime {
			continue
		}
		lifetime.IsExpired = true

		if pool, pooled := ecs.GetComponent[*components.PoolableComponent](s.entityManager, id); pooled {
			pool.Active = false
			if r, ok := ecs.GetComponent[*components.RenderComponent](s.entityManager, id); ok {
				r.Visible = false
			}
			continue
		}
		s.entityManager.DestroyEntity(id)
	}
}
