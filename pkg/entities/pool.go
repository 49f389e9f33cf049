package entities

import (
	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
)

// PoolFactory 创建一个池成员实体（必须带 PoolableComponent）
type PoolFactory func(em *ecs.EntityManager) ecs.EntityID

// Pool 只增不减的对象池
//
// Acquire 按加入顺序扫描，返回第一个失活成员；没有则新建、加入池并置为失活后返回。
// 成员由各自的效果流程在结束时失活，从而可以再次被取用。
type Pool struct {
	name          string
	entityManager *ecs.EntityManager
	factory       PoolFactory
	members       []ecs.EntityID
}

// NewPool 创建对象池
func NewPool(em *ecs.EntityManager, name string, factory PoolFactory) *Pool {
	return &Pool{
		name:          name,
		entityManager: em,
		factory:       factory,
	}
}

// Acquire 取得一个失活成员（调用方负责激活）
func (p *Pool) Acquire() ecs.EntityID {
	for _, id := range p.members {
		if !p.entityManager.IsAlive(id) {
			continue
		}
		if pc, ok := ecs.GetComponent[*components.PoolableComponent](p.entityManager, id); ok && !pc.Active {
			return id
		}
	}

	id := p.factory(p.entityManager)
	pc, ok := ecs.GetComponent[*components.PoolableComponent](p.entityManager, id)
	if !ok {
		pc = &components.PoolableComponent{}
		ecs.AddComponent(p.entityManager, id, pc)
	}
	pc.Pool = p.name
	pc.Active = false
	p.members = append(p.members, id)
	return id
}

// Size 池中成员数量
func (p *Pool) Size() int {
	return len(p.members)
}

// ActiveCount 激活中的成员数量
func (p *Pool) ActiveCount() int {
	n := 0
	for _, id := range p.members {
		if pc, ok := ecs.GetComponent[*components.PoolableComponent](p.entityManager, id); ok && pc.Active {
			n++
		}
	}
	return n
}

// Name 池名称
func (p *Pool) Name() string {
	return p.name
}
