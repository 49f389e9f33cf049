package entities

import (
	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/utils"
)

// NewRotator 创建转台（每个场景一个）
func NewRotator(em *ecs.EntityManager, pos utils.Vec3) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.RotatorComponent{})
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: pos,
		Scale:    utils.Vec3One,
	})
	return id
}
