package components

import "github.com/gonewx/paintrings/pkg/ecs"

// PieceTag 环段标签
type PieceTag int

const (
	// PieceTagUntagged 未涂色
	PieceTagUntagged PieceTag = iota
	// PieceTagFinish 已涂色；彩球击中此类环段即失败
	PieceTagFinish
)

// RingPieceComponent 环段
// Unpainted -> Painted 为单向转换，环被回收前不会重置
type RingPieceComponent struct {
	Ring   ecs.EntityID // 所属环
	Index  int          // 环内编号
	Tag    PieceTag
	Marker ecs.EntityID // 涂色标记实体，ecs.NoEntity 表示无标记
}

// IsPainted 是否已涂色
func (p *RingPieceComponent) IsPainted() bool {
	return p.Tag == PieceTagFinish
}

// MarkerComponent 涂色标记（挂在环段下）
type MarkerComponent struct {
	Piece ecs.EntityID
}
