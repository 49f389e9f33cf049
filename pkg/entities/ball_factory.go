package entities

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/utils"
)

// NewPaintedBall 创建一个排队中的彩球
//
// 参数:
//   - em: 实体管理器
//   - pos: 世界坐标
//   - c: 彩球颜色（当前环的目标颜色）
//   - diameter: 彩球直径
func NewPaintedBall(em *ecs.EntityManager, pos utils.Vec3, c colorful.Color, diameter float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PaintedBallComponent{State: components.BallQueued})
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: pos,
		Scale:    utils.Vec3{X: diameter, Y: diameter, Z: diameter},
	})
	ecs.AddComponent(em, id, &components.RenderComponent{
		Shape:      components.ShapeBall,
		Color:      c,
		Alpha:      1,
		MaterialID: MaterialBall,
		Visible:    true,
	})
	return id
}
