package components

import "github.com/lucasb-eyer/go-colorful"

// ShapeKind 渲染形状
type ShapeKind int

const (
	ShapeRingPiece    ShapeKind = iota // 环的一段
	ShapeBall                          // 彩球
	ShapeFadingCircle                  // 落环时的扩散圆
	ShapeFadingRing                    // 完成整环时的扩散环
	ShapeExplosion                     // 彩球爆裂粒子
	ShapeCrossMarker                   // 已涂色环段上的标记
)

// RenderComponent 渲染数据（纯数据）
// RenderSystem 读取该组件绘制；游戏逻辑只通过 Renderer 接口修改颜色与材质
type RenderComponent struct {
	Shape      ShapeKind
	Color      colorful.Color
	Alpha      float64 // 0.0 ~ 1.0
	MaterialID string  // 材质标识，如 "ring_base"、"ring_painted"
	Visible    bool
}
