package components

import (
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/utils"
)

// TransformComponent 实体的空间变换
//
// Parent 非零时 Position 为相对父实体的局部坐标，RotationY 为局部旋转角；
// 世界坐标由 systems.WorldPosition 沿父链累加得到。
type TransformComponent struct {
	Position  utils.Vec3   // 位置（局部或世界）
	Scale     utils.Vec3   // 缩放
	RotationY float64      // 绕 Y 轴旋转角（度）
	Parent    ecs.EntityID // 父实体，ecs.NoEntity 表示挂在场景根节点
}
