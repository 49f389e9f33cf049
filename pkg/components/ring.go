package components

import "github.com/gonewx/paintrings/pkg/ecs"

// RingComponent 环（由若干环段组成）
type RingComponent struct {
	// Pieces 环段实体，顺序即环段编号（按角度均分）
	Pieces []ecs.EntityID
	// PaintTarget 生成时预涂色的环段数量
	PaintTarget int
	// PendingPaint 尚未涂色的预涂色环段（每帧涂一个，形成错开效果）
	PendingPaint []ecs.EntityID
	// ColorIndex 环颜色在关卡配色表中的下标
	ColorIndex int
	// Attached 已落到转台上
	Attached bool
	// Completed 已被整环涂满
	Completed bool
	// Retired 已被新环取代，不再是当前目标
	Retired bool
}
