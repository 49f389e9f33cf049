package entities

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/utils"
)

// 材质标识
const (
	MaterialRingBase    = "ring_base"
	MaterialRingPainted = "ring_painted"
	MaterialBall        = "painted_ball"
	MaterialEffect      = "effect"
)

// RingBaseColor 未涂色环段的颜色
var RingBaseColor = colorful.Color{R: 0.85, G: 0.85, B: 0.85}

// NewRing 创建一个环及其环段
//
// 参数:
//   - em: 实体管理器
//   - pos: 环中心的世界坐标
//   - pieceCount: 环段数量（按角度均分）
//
// 返回:
//   - ecs.EntityID: 环实体ID
func NewRing(em *ecs.EntityManager, pos utils.Vec3, pieceCount int) ecs.EntityID {
	ringID := em.CreateEntity()
	ring := &components.RingComponent{
		Pieces: make([]ecs.EntityID, 0, pieceCount),
	}
	ecs.AddComponent(em, ringID, ring)
	ecs.AddComponent(em, ringID, &components.TransformComponent{
		Position: pos,
		Scale:    utils.Vec3One,
	})

	for i := 0; i < pieceCount; i++ {
		pieceID := em.CreateEntity()
		ecs.AddComponent(em, pieceID, &components.RingPieceComponent{
			Ring:  ringID,
			Index: i,
			Tag:   components.PieceTagUntagged,
		})
		ecs.AddComponent(em, pieceID, &components.TransformComponent{
			Scale:  utils.Vec3One,
			Parent: ringID,
		})
		ecs.AddComponent(em, pieceID, &components.RenderComponent{
			Shape:      components.ShapeRingPiece,
			Color:      RingBaseColor,
			Alpha:      1,
			MaterialID: MaterialRingBase,
			Visible:    true,
		})
		ring.Pieces = append(ring.Pieces, pieceID)
	}

	return ringID
}

// NewCrossMarker 创建挂在环段下的涂色标记
func NewCrossMarker(em *ecs.EntityManager, pieceID ecs.EntityID) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.MarkerComponent{Piece: pieceID})
	ecs.AddComponent(em, id, &components.TransformComponent{
		Scale:  utils.Vec3{X: 0.468, Y: 0.468, Z: 0.468},
		Parent: pieceID,
	})
	ecs.AddComponent(em, id, &components.RenderComponent{
		Shape:   components.ShapeCrossMarker,
		Color:   colorful.Color{R: 1, G: 1, B: 1},
		Alpha:   1,
		Visible: true,
	})
	return id
}

// DestroyRing 销毁环、环段及其标记
func DestroyRing(em *ecs.EntityManager, ringID ecs.EntityID) {
	if ring, ok := ecs.GetComponent[*components.RingComponent](em, ringID); ok {
		for _, pieceID := range ring.Pieces {
			if piece, ok := ecs.GetComponent[*components.RingPieceComponent](em, pieceID); ok && piece.Marker != ecs.NoEntity {
				em.DestroyEntity(piece.Marker)
			}
			em.DestroyEntity(pieceID)
		}
	}
	em.DestroyEntity(ringID)
}
