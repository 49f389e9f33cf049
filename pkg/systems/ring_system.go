package systems

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/entities"
	"github.com/gonewx/paintrings/pkg/logger"
	"github.com/gonewx/paintrings/pkg/utils"
)

// RingSystem 管理环的涂色、入场与整环涂满
//
// 涂色颜色由控制器通过 SetPaintColor 设置（当前环的目标颜色），
// 已涂色的环段保留涂色时的颜色。
type RingSystem struct {
	entityManager *ecs.EntityManager
	renderer      Renderer
	rng           *rand.Rand
	rotator       *RotatorSystem
	effects       *EffectSystem
	pieceHeight   float64
	paintColor    colorful.Color
}

// NewRingSystem 创建环系统
func NewRingSystem(em *ecs.EntityManager, renderer Renderer, rng *rand.Rand, rotator *RotatorSystem, effects *EffectSystem, pieceHeight float64) *RingSystem {
	return &RingSystem{
		entityManager: em,
		renderer:      renderer,
		rng:           rng,
		rotator:       rotator,
		effects:       effects,
		pieceHeight:   pieceHeight,
		paintColor:    colorful.Color{R: 1, G: 1, B: 1},
	}
}

// SetPaintColor 设置当前涂色颜色
func (s *RingSystem) SetPaintColor(c colorful.Color) {
	s.paintColor = c
}

// PaintColor 当前涂色颜色
func (s *RingSystem) PaintColor() colorful.Color {
	return s.paintColor
}

// Paint 给环段涂色
//
// 幂等：已涂色的环段直接返回 false，标记数量与状态不变。
// 首次涂色时挂上标记、换成涂色材质并打上 Finish 标签。
func (s *RingSystem) Paint(pieceID ecs.EntityID) bool {
	piece, ok := ecs.GetComponent[*components.RingPieceComponent](s.entityManager, pieceID)
	if !ok || piece.IsPainted() {
		return false
	}

	piece.Marker = entities.NewCrossMarker(s.entityManager, pieceID)
	s.renderer.SetMaterial(pieceID, entities.MaterialRingPainted)
	s.renderer.SetColor(pieceID, s.paintColor, 1)
	piece.Tag = components.PieceTagFinish
	return true
}

// ClearMarker 移除环段上的标记（没有则忽略）
func (s *RingSystem) ClearMarker(pieceID ecs.EntityID) {
	piece, ok := ecs.GetComponent[*components.RingPieceComponent](s.entityManager, pieceID)
	if !ok || piece.Marker == ecs.NoEntity {
		return
	}
	s.entityManager.DestroyEntity(piece.Marker)
	piece.Marker = ecs.NoEntity
}

// PaintAll 同步涂满整个环并移除所有标记
func (s *RingSystem) PaintAll(ringID ecs.EntityID) {
	ring, ok := ecs.GetComponent[*components.RingComponent](s.entityManager, ringID)
	if !ok {
		return
	}
	ring.PendingPaint = nil
	for _, pieceID := range ring.Pieces {
		s.Paint(pieceID)
		s.ClearMarker(pieceID)
	}
	ring.Completed = true
}

// PaintedCount 环上已涂色的环段数
func (s *RingSystem) PaintedCount(ringID ecs.EntityID) int {
	ring, ok := ecs.GetComponent[*components.RingComponent](s.entityManager, ringID)
	if !ok {
		return 0
	}
	n := 0
	for _, pieceID := range ring.Pieces {
		if piece, ok := ecs.GetComponent[*components.RingPieceComponent](s.entityManager, pieceID); ok && piece.IsPainted() {
			n++
		}
	}
	return n
}

// MarkerCount 环上的标记数
func (s *RingSystem) MarkerCount(ringID ecs.EntityID) int {
	ring, ok := ecs.GetComponent[*components.RingComponent](s.entityManager, ringID)
	if !ok {
		return 0
	}
	n := 0
	for _, pieceID := range ring.Pieces {
		if piece, ok := ecs.GetComponent[*components.RingPieceComponent](s.entityManager, pieceID); ok && piece.Marker != ecs.NoEntity {
			n++
		}
	}
	return n
}

// Spawn 让新环入场
//
// 同时进行两件事：
//  1. 随机（不放回）挑选 paintedCount 个环段预涂色，第一个立即涂色，其余每帧涂一个
//  2. 在 entryDuration 内从当前位置直线移动到转台栈顶
//
// 到达时补齐尚未完成的预涂色，在环底部生成扩散圆，挂到转台上（局部 X/Z 与旋转清零），
// 然后由转台执行弹跳（时长为入场时长的一半）。
func (s *RingSystem) Spawn(ringID ecs.EntityID, entryDuration float64, paintedCount int) {
	ring, ok := ecs.GetComponent[*components.RingComponent](s.entityManager, ringID)
	if !ok {
		return
	}
	if paintedCount >= len(ring.Pieces) {
		logger.Warn("[RingSystem] Painted piece count %d reaches piece count %d, clamping", paintedCount, len(ring.Pieces))
		paintedCount = len(ring.Pieces) - 1
	}
	s.beginPrePaint(ring, paintedCount)

	target := s.rotator.StackTop()
	MoveTo(s.entityManager, ringID, target, entryDuration, utils.EaseTypeLinear, func() {
		s.arrive(ringID, entryDuration)
	})
}

// beginPrePaint 选出预涂色环段
func (s *RingSystem) beginPrePaint(ring *components.RingComponent, count int) {
	ring.PaintTarget = count
	if count <= 0 {
		return
	}
	candidates := make([]ecs.EntityID, len(ring.Pieces))
	copy(candidates, ring.Pieces)
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	s.Paint(candidates[0])
	ring.PendingPaint = candidates[1:count]
}

// arrive 环到达转台
func (s *RingSystem) arrive(ringID ecs.EntityID, entryDuration float64) {
	ring, ok := ecs.GetComponent[*components.RingComponent](s.entityManager, ringID)
	if !ok {
		return
	}
	s.flushPending(ring)

	base := WorldPosition(s.entityManager, ringID).Add(utils.Vec3Down.Scale(s.pieceHeight / 2))
	s.effects.CreateFadingCircle(base, ringID)

	SetParent(s.entityManager, ringID, s.rotator.Rotator())
	if tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, ringID); ok {
		tr.Position.X = 0
		tr.Position.Z = 0
		tr.RotationY = 0
	}
	ring.Attached = true

	s.rotator.Attach(ringID, entryDuration/2)
}

// flushPending 立即完成剩余的预涂色
func (s *RingSystem) flushPending(ring *components.RingComponent) {
	for _, pieceID := range ring.PendingPaint {
		s.Paint(pieceID)
	}
	ring.PendingPaint = nil
}

// Update 每帧为每个入场中的环涂一个预涂色环段
func (s *RingSystem) Update(dt float64) {
	for _, ringID := range ecs.GetEntitiesWith1[*components.RingComponent](s.entityManager) {
		ring, _ := ecs.GetComponent[*components.RingComponent](s.entityManager, ringID)
		if len(ring.PendingPaint) == 0 {
			continue
		}
		s.Paint(ring.PendingPaint[0])
		ring.PendingPaint = ring.PendingPaint[1:]
	}
}
