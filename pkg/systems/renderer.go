package systems

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
)

// Renderer 玩法逻辑修改外观的接口
type Renderer interface {
	SetColor(id ecs.EntityID, c colorful.Color, alpha float64)
	SetMaterial(id ecs.EntityID, materialID string)
}

// ComponentRenderer 通过 RenderComponent 实现 Renderer
// RenderSystem 每帧读取组件数据绘制
type ComponentRenderer struct {
	entityManager *ecs.EntityManager
}

// NewComponentRenderer 创建基于组件的 Renderer
func NewComponentRenderer(em *ecs.EntityManager) *ComponentRenderer {
	return &ComponentRenderer{entityManager: em}
}

// SetColor 设置颜色与透明度
func (r *ComponentRenderer) SetColor(id ecs.EntityID, c colorful.Color, alpha float64) {
	if rc, ok := ecs.GetComponent[*components.RenderComponent](r.entityManager, id); ok {
		rc.Color = c
		rc.Alpha = alpha
	}
}

// SetMaterial 设置材质标识
func (r *ComponentRenderer) SetMaterial(id ecs.EntityID, materialID string) {
	if rc, ok := ecs.GetComponent[*components.RenderComponent](r.entityManager, id); ok {
		rc.MaterialID = materialID
	}
}
