package systems

import (
	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/utils"
)

// 父链最大深度（防止错误的环形父子关系导致死循环）
const maxParentDepth = 16

// WorldPosition 沿父链累加局部坐标得到世界坐标
//
// 场景中挂到父节点的实体（环、环上的扩散圆）局部 X/Z 均为 0，
// 因此父节点旋转不影响子节点位置，只需累加平移；
// 转台的震动偏移叠加在其自身位置上。
func WorldPosition(em *ecs.EntityManager, id ecs.EntityID) utils.Vec3 {
	pos := utils.Vec3Zero
	current := id
	for depth := 0; current != ecs.NoEntity && depth < maxParentDepth; depth++ {
		tr, ok := ecs.GetComponent[*components.TransformComponent](em, current)
		if !ok {
			break
		}
		pos = pos.Add(tr.Position)
		if rot, ok := ecs.GetComponent[*components.RotatorComponent](em, current); ok {
			pos = pos.Add(rot.ShakeOffset)
		}
		current = tr.Parent
	}
	return pos
}

// WorldRotationY 沿父链累加绕 Y 轴的旋转角（度，[0, 360)）
func WorldRotationY(em *ecs.EntityManager, id ecs.EntityID) float64 {
	angle := 0.0
	current := id
	for depth := 0; current != ecs.NoEntity && depth < maxParentDepth; depth++ {
		tr, ok := ecs.GetComponent[*components.TransformComponent](em, current)
		if !ok {
			break
		}
		angle += tr.RotationY
		current = tr.Parent
	}
	return utils.WrapDegrees(angle)
}

// SetParent 把实体挂到新的父节点下，保持世界坐标不变
// parent 为 ecs.NoEntity 时挂回场景根节点
func SetParent(em *ecs.EntityManager, id, parent ecs.EntityID) {
	tr, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		return
	}
	world := WorldPosition(em, id)
	if parent == ecs.NoEntity {
		tr.Position = world
	} else {
		tr.Position = world.Sub(WorldPosition(em, parent))
	}
	tr.Parent = parent
}
