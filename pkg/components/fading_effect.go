package components

import "github.com/lucasb-eyer/go-colorful"

// FadingKind 渐隐效果类型
type FadingKind int

const (
	FadingCircle FadingKind = iota // 落环扩散圆
	FadingRing                     // 整环完成扩散环
)

// FadingEffectComponent 放大并淡出的临时效果
// 结束后恢复原始缩放与颜色、脱离父节点并失活，回到对象池
type FadingEffectComponent struct {
	Kind          FadingKind
	OriginalColor colorful.Color
	OriginalAlpha float64
}
