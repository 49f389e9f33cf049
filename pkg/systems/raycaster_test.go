package systems

import (
	"math"
	"testing"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/entities"
	"github.com/gonewx/paintrings/pkg/utils"
)

func vecAlmostEqual(a, b utils.Vec3) bool {
	return a.Distance(b) < 1e-6
}

func TestPieceIndex(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		rotation float64
		count    int
		want     int
	}{
		{"零度", 0, 0, 16, 0},
		{"正前方", 270, 0, 16, 12},
		{"旋转90度", 270, 90, 16, 8},
		{"负角度归一化", -90, 0, 16, 12},
		{"旋转超过一周", 270, 450, 16, 8},
		{"段边界归入下一段", 22.5, 0, 16, 1},
		{"接近360度", 359.999, 0, 16, 15},
		{"两段环", 270, 0, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PieceIndex(tt.angle, tt.rotation, tt.count); got != tt.want {
				t.Errorf("PieceIndex(%v, %v, %d) = %d, 期望 %d", tt.angle, tt.rotation, tt.count, got, tt.want)
			}
		})
	}
}

// TestRaycastHitsFrontOfRing 从彩球发射位沿 +Z 命中环的正面
func TestRaycastHitsFrontOfRing(t *testing.T) {
	em := ecs.NewEntityManager()
	ringID := entities.NewRing(em, utils.Vec3Zero, 16)
	rc := NewRingRaycaster(em, 3, 0.5)

	hit, ok := rc.Raycast(utils.Vec3{Z: -11}, utils.Vec3Forward, 100)
	if !ok {
		t.Fatal("应命中环")
	}
	if !vecAlmostEqual(hit.Point, utils.Vec3{Z: -3}) {
		t.Errorf("命中点 %+v, 期望 (0,0,-3)", hit.Point)
	}
	if math.Abs(hit.Distance-8) > 1e-9 {
		t.Errorf("距离 %v, 期望 8", hit.Distance)
	}
	ring, _ := ecs.GetComponent[*components.RingComponent](em, ringID)
	if hit.Ring != ringID || hit.Piece != ring.Pieces[12] {
		t.Errorf("命中 ring=%d piece=%d, 期望 ring=%d piece=%d", hit.Ring, hit.Piece, ringID, ring.Pieces[12])
	}
	if hit.Tag != components.PieceTagUntagged {
		t.Errorf("未涂色环段标签应为 Untagged, 实际 %v", hit.Tag)
	}
}

// TestRaycastFollowsRingRotation 环段随父节点旋转
func TestRaycastFollowsRingRotation(t *testing.T) {
	em := ecs.NewEntityManager()
	rotatorID := entities.NewRotator(em, utils.Vec3Zero)
	ringID := entities.NewRing(em, utils.Vec3Zero, 16)
	SetParent(em, ringID, rotatorID)

	rotTr, _ := ecs.GetComponent[*components.TransformComponent](em, rotatorID)
	rotTr.RotationY = 90

	ring, _ := ecs.GetComponent[*components.RingComponent](em, ringID)
	piece, _ := ecs.GetComponent[*components.RingPieceComponent](em, ring.Pieces[8])
	piece.Tag = components.PieceTagFinish

	hit, ok := NewRingRaycaster(em, 3, 0.5).Raycast(utils.Vec3{Z: -11}, utils.Vec3Forward, 100)
	if !ok {
		t.Fatal("应命中环")
	}
	if hit.Piece != ring.Pieces[8] {
		t.Errorf("旋转 90 度后应命中第 8 段")
	}
	if hit.Tag != components.PieceTagFinish {
		t.Errorf("应返回环段标签 Finish, 实际 %v", hit.Tag)
	}
}

func TestRaycastMisses(t *testing.T) {
	em := ecs.NewEntityManager()
	entities.NewRing(em, utils.Vec3Zero, 16)
	rc := NewRingRaycaster(em, 3, 0.5)

	tests := []struct {
		name   string
		origin utils.Vec3
		dir    utils.Vec3
		max    float64
	}{
		{"高度不在环内", utils.Vec3{Y: 5, Z: -11}, utils.Vec3Forward, 100},
		{"高度在上边界（开区间）", utils.Vec3{Y: 0.25, Z: -11}, utils.Vec3Forward, 100},
		{"距离不够", utils.Vec3{Z: -11}, utils.Vec3Forward, 5},
		{"背向环", utils.Vec3{Z: -11}, utils.Vec3Back, 100},
		{"竖直射线", utils.Vec3{Z: -11}, utils.Vec3Up, 100},
		{"零方向", utils.Vec3{Z: -11}, utils.Vec3Zero, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, ok := rc.Raycast(tt.origin, tt.dir, tt.max); ok {
				t.Errorf("不应命中, 实际命中 %+v", hit)
			}
		})
	}
}

// TestRaycastPicksRingByHeight 叠放的环按高度区分
func TestRaycastPicksRingByHeight(t *testing.T) {
	em := ecs.NewEntityManager()
	lower := entities.NewRing(em, utils.Vec3Zero, 16)
	upper := entities.NewRing(em, utils.Vec3{Y: 0.5}, 16)
	rc := NewRingRaycaster(em, 3, 0.5)

	if hit, ok := rc.Raycast(utils.Vec3{Z: -11}, utils.Vec3Forward, 100); !ok || hit.Ring != lower {
		t.Errorf("y=0 应命中下方的环")
	}
	if hit, ok := rc.Raycast(utils.Vec3{Y: 0.5, Z: -11}, utils.Vec3Forward, 100); !ok || hit.Ring != upper {
		t.Errorf("y=0.5 应命中上方的环")
	}
}

// TestRaycastShortResolveRay 结算射线从彩球后缘出发
func TestRaycastShortResolveRay(t *testing.T) {
	em := ecs.NewEntityManager()
	entities.NewRing(em, utils.Vec3Zero, 16)
	rc := NewRingRaycaster(em, 3, 0.5)

	hit, ok := rc.Raycast(utils.Vec3{Z: -3.25}, utils.Vec3Forward, 1)
	if !ok {
		t.Fatal("结算射线应命中")
	}
	if math.Abs(hit.Distance-0.25) > 1e-9 {
		t.Errorf("距离 %v, 期望 0.25", hit.Distance)
	}
}

// TestRaycastIncludesShakeOffset 转台震动偏移影响环的世界坐标
func TestRaycastIncludesShakeOffset(t *testing.T) {
	em := ecs.NewEntityManager()
	rotatorID := entities.NewRotator(em, utils.Vec3Zero)
	ringID := entities.NewRing(em, utils.Vec3Zero, 16)
	SetParent(em, ringID, rotatorID)

	rot, _ := ecs.GetComponent[*components.RotatorComponent](em, rotatorID)
	rot.ShakeOffset = utils.Vec3{Z: 0.2}

	hit, ok := NewRingRaycaster(em, 3, 0.5).Raycast(utils.Vec3{Z: -11}, utils.Vec3Forward, 100)
	if !ok {
		t.Fatal("应命中环")
	}
	if math.Abs(hit.Point.Z-(-2.8)) > 1e-9 {
		t.Errorf("命中点 Z = %v, 期望 -2.8", hit.Point.Z)
	}
}
