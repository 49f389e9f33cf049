package entities

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/utils"
)

// 对象池名称
const (
	PoolFadingCircle = "fading_circle"
	PoolFadingRing   = "fading_ring"
	PoolExplosion    = "ball_explosion"
)

// FadingCircleColor 落环扩散圆的原始颜色
var FadingCircleColor = colorful.Color{R: 1, G: 1, B: 1}

// NewFadingCircle 创建落环扩散圆（失活状态，供对象池使用）
func NewFadingCircle(em *ecs.EntityManager) ecs.EntityID {
	return newFadingEffect(em, components.FadingCircle, components.ShapeFadingCircle, FadingCircleColor, 0.6)
}

// NewFadingRing 创建整环完成扩散环（失活状态，供对象池使用）
func NewFadingRing(em *ecs.EntityManager) ecs.EntityID {
	return newFadingEffect(em, components.FadingRing, components.ShapeFadingRing, colorful.Color{R: 1, G: 1, B: 1}, 1)
}

func newFadingEffect(em *ecs.EntityManager, kind components.FadingKind, shape components.ShapeKind, c colorful.Color, alpha float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.FadingEffectComponent{
		Kind:          kind,
		OriginalColor: c,
		OriginalAlpha: alpha,
	})
	ecs.AddComponent(em, id, &components.TransformComponent{Scale: utils.Vec3One})
	ecs.AddComponent(em, id, &components.RenderComponent{
		Shape:      shape,
		Color:      c,
		Alpha:      alpha,
		MaterialID: MaterialEffect,
	})
	ecs.AddComponent(em, id, &components.PoolableComponent{})
	return id
}

// NewExplosion 创建彩球爆裂粒子（失活状态，供对象池使用）
func NewExplosion(em *ecs.EntityManager) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{Scale: utils.Vec3One})
	ecs.AddComponent(em, id, &components.RenderComponent{
		Shape:      components.ShapeExplosion,
		Alpha:      1,
		MaterialID: MaterialEffect,
	})
	ecs.AddComponent(em, id, &components.LifetimeComponent{IsExpired: true})
	ecs.AddComponent(em, id, &components.PoolableComponent{})
	return id
}
