package entities

import (
	"testing"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/utils"
)

func TestNewRingCreatesPieces(t *testing.T) {
	em := ecs.NewEntityManager()
	pos := utils.Vec3{Y: 12}
	ringID := NewRing(em, pos, 16)

	ring, ok := ecs.GetComponent[*components.RingComponent](em, ringID)
	if !ok {
		t.Fatal("环实体缺少 RingComponent")
	}
	if len(ring.Pieces) != 16 {
		t.Fatalf("环段数 %d, 期望 16", len(ring.Pieces))
	}
	tf, _ := ecs.GetComponent[*components.TransformComponent](em, ringID)
	if tf.Position != pos {
		t.Errorf("环位置 %v, 期望 %v", tf.Position, pos)
	}

	for i, pieceID := range ring.Pieces {
		piece, ok := ecs.GetComponent[*components.RingPieceComponent](em, pieceID)
		if !ok {
			t.Fatalf("环段 %d 缺少 RingPieceComponent", i)
		}
		if piece.Index != i || piece.Ring != ringID || piece.Tag != components.PieceTagUntagged {
			t.Errorf("环段 %d: %+v", i, *piece)
		}
		ptf, _ := ecs.GetComponent[*components.TransformComponent](em, pieceID)
		if ptf.Parent != ringID {
			t.Errorf("环段 %d 的父实体 %d, 期望 %d", i, ptf.Parent, ringID)
		}
		render, _ := ecs.GetComponent[*components.RenderComponent](em, pieceID)
		if render.MaterialID != MaterialRingBase || !render.Visible {
			t.Errorf("环段 %d 渲染 %+v", i, *render)
		}
	}
}

func TestDestroyRingRemovesPiecesAndMarkers(t *testing.T) {
	em := ecs.NewEntityManager()
	ringID := NewRing(em, utils.Vec3Zero, 4)
	ring, _ := ecs.GetComponent[*components.RingComponent](em, ringID)

	painted := ring.Pieces[1]
	piece, _ := ecs.GetComponent[*components.RingPieceComponent](em, painted)
	piece.Marker = NewCrossMarker(em, painted)
	marker := piece.Marker

	before := em.EntityCount()
	if before != 6 {
		t.Fatalf("实体数 %d, 期望 6（环 + 4 环段 + 标记）", before)
	}

	DestroyRing(em, ringID)
	if em.IsAlive(ringID) || em.IsAlive(painted) || em.IsAlive(marker) {
		t.Error("销毁后环、环段和标记都应失效")
	}
	em.RemoveMarkedEntities()
	if em.EntityCount() != 0 {
		t.Errorf("清理后实体数 %d, 期望 0", em.EntityCount())
	}
}
