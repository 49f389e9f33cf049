package systems

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/config"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/entities"
	"github.com/gonewx/paintrings/pkg/utils"
)

type ringFixture struct {
	em      *ecs.EntityManager
	rotator *RotatorSystem
	effects *EffectSystem
	rings   *RingSystem
	tweens  *TweenSystem
}

func newRingFixture(seed uint64) *ringFixture {
	em := ecs.NewEntityManager()
	rng := utils.NewRand(seed)
	rotatorID := entities.NewRotator(em, utils.Vec3Zero)
	rotator := NewRotatorSystem(em, rotatorID, rng, 0.5, func() bool { return true })
	effects := NewEffectSystem(em, config.DefaultGameplayConfig())
	return &ringFixture{
		em:      em,
		rotator: rotator,
		effects: effects,
		rings:   NewRingSystem(em, NewComponentRenderer(em), rng, rotator, effects, 0.5),
		tweens:  NewTweenSystem(em),
	}
}

func (f *ringFixture) run(seconds float64) {
	runSystems(f.em, seconds, f.rings, f.tweens)
}

// TestPaintIdempotent 重复涂色不改变状态与标记数量
func TestPaintIdempotent(t *testing.T) {
	f := newRingFixture(1)
	ringID := entities.NewRing(f.em, utils.Vec3Zero, 16)
	ring, _ := ecs.GetComponent[*components.RingComponent](f.em, ringID)
	target := colorful.Color{R: 1, G: 0.2, B: 0.2}
	f.rings.SetPaintColor(target)

	if !f.rings.Paint(ring.Pieces[3]) {
		t.Fatal("首次涂色应返回 true")
	}
	piece, _ := ecs.GetComponent[*components.RingPieceComponent](f.em, ring.Pieces[3])
	marker := piece.Marker

	if f.rings.Paint(ring.Pieces[3]) {
		t.Error("重复涂色应返回 false")
	}
	if piece.Marker != marker {
		t.Error("重复涂色不应替换标记")
	}
	if got := f.rings.MarkerCount(ringID); got != 1 {
		t.Errorf("标记数 %d, 期望 1", got)
	}
	if got := f.rings.PaintedCount(ringID); got != 1 {
		t.Errorf("已涂色 %d, 期望 1", got)
	}

	render, _ := ecs.GetComponent[*components.RenderComponent](f.em, ring.Pieces[3])
	if render.MaterialID != entities.MaterialRingPainted || render.Color != target {
		t.Errorf("涂色后材质=%s 颜色=%v, 期望 %s / %v", render.MaterialID, render.Color, entities.MaterialRingPainted, target)
	}
}

// TestPaintAllClearsMarkers 整环涂满并移除所有标记
func TestPaintAllClearsMarkers(t *testing.T) {
	f := newRingFixture(1)
	ringID := entities.NewRing(f.em, utils.Vec3Zero, 16)
	ring, _ := ecs.GetComponent[*components.RingComponent](f.em, ringID)

	f.rings.Paint(ring.Pieces[0])
	f.rings.Paint(ring.Pieces[5])
	f.rings.PaintAll(ringID)
	f.em.RemoveMarkedEntities()

	if got := f.rings.PaintedCount(ringID); got != 16 {
		t.Errorf("已涂色 %d, 期望 16", got)
	}
	if got := f.rings.MarkerCount(ringID); got != 0 {
		t.Errorf("标记数 %d, 期望 0", got)
	}
	if n := len(ecs.GetEntitiesWith1[*components.MarkerComponent](f.em)); n != 0 {
		t.Errorf("仍有 %d 个标记实体", n)
	}
	if !ring.Completed {
		t.Error("环应标记为已完成")
	}
}

// TestSpawnStaggeredPrePaint 第一个环段立即涂色，其余每帧一个
func TestSpawnStaggeredPrePaint(t *testing.T) {
	f := newRingFixture(7)
	ringID := entities.NewRing(f.em, utils.Vec3{Y: 12}, 16)

	f.rings.Spawn(ringID, 0.25, 5)
	if got := f.rings.PaintedCount(ringID); got != 1 {
		t.Fatalf("Spawn 后立即涂色 %d 个, 期望 1", got)
	}

	f.rings.Update(testFrame)
	if got := f.rings.PaintedCount(ringID); got != 2 {
		t.Errorf("一帧后涂色 %d 个, 期望 2", got)
	}

	f.run(0.5)
	if got := f.rings.PaintedCount(ringID); got != 5 {
		t.Errorf("到达后涂色 %d 个, 期望 5", got)
	}
}

// TestSpawnPaintsExactlyN 任意种子下到达时恰好 N 个环段已涂色
func TestSpawnPaintsExactlyN(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		f := newRingFixture(seed)
		n := int(seed % 16)
		ringID := entities.NewRing(f.em, utils.Vec3{Y: 12}, 16)

		// 入场时长短于预涂色所需帧数，到达时补齐
		f.rings.Spawn(ringID, 0.05, n)
		f.run(0.5)

		if got := f.rings.PaintedCount(ringID); got != n {
			t.Errorf("seed=%d: 涂色 %d 个, 期望 %d", seed, got, n)
		}
		if got := f.rings.MarkerCount(ringID); got != n {
			t.Errorf("seed=%d: 标记 %d 个, 期望 %d", seed, got, n)
		}
	}
}

// TestSpawnClampsPaintedCount 预涂色数量不能达到环段总数
func TestSpawnClampsPaintedCount(t *testing.T) {
	f := newRingFixture(3)
	ringID := entities.NewRing(f.em, utils.Vec3{Y: 12}, 4)

	f.rings.Spawn(ringID, 0.1, 4)
	f.run(0.5)

	if got := f.rings.PaintedCount(ringID); got != 3 {
		t.Errorf("涂色 %d 个, 期望被限制为 3", got)
	}
}

// TestSpawnArrival 到达后挂到转台、局部坐标清零并压栈
func TestSpawnArrival(t *testing.T) {
	f := newRingFixture(2)
	ringID := entities.NewRing(f.em, utils.Vec3{X: 1, Y: 12, Z: 1}, 16)

	f.rings.Spawn(ringID, 0.25, 0)
	f.run(0.35)

	ring, _ := ecs.GetComponent[*components.RingComponent](f.em, ringID)
	tr, _ := ecs.GetComponent[*components.TransformComponent](f.em, ringID)
	if !ring.Attached {
		t.Fatal("环应已到达")
	}
	if tr.Parent != f.rotator.Rotator() {
		t.Errorf("父节点 %d, 期望转台 %d", tr.Parent, f.rotator.Rotator())
	}
	if tr.Position.X != 0 || tr.Position.Z != 0 || tr.RotationY != 0 {
		t.Errorf("局部坐标 %+v 旋转 %v, 期望 X/Z/旋转为 0", tr.Position, tr.RotationY)
	}
	if rings := f.rotator.Rings(); len(rings) != 1 || rings[0] != ringID {
		t.Errorf("转台栈 %v, 期望 [%d]", rings, ringID)
	}
	if f.effects.CirclePool().Size() != 1 {
		t.Errorf("应生成一个扩散圆, 实际池大小 %d", f.effects.CirclePool().Size())
	}
}

// TestSpawnSecondRingLandsOnStack 第二个环落在第一个环上方一个环段高度处
func TestSpawnSecondRingLandsOnStack(t *testing.T) {
	f := newRingFixture(4)
	first := entities.NewRing(f.em, utils.Vec3{Y: 12}, 16)
	f.rings.Spawn(first, 0.25, 0)
	f.run(0.35)

	second := entities.NewRing(f.em, utils.Vec3{Y: 12}, 16)
	f.rings.Spawn(second, 0.25, 0)
	f.run(0.6)

	// 转台弹跳后整体下沉一个环段高度，新环回到原高度
	if got := WorldPosition(f.em, second).Y; !almostEqual(got, 0) {
		t.Errorf("第二个环世界 Y = %v, 期望 0", got)
	}
	if got := WorldPosition(f.em, first).Y; !almostEqual(got, -0.5) {
		t.Errorf("第一个环世界 Y = %v, 期望 -0.5", got)
	}
}
