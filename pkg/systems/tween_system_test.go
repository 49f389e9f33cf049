package systems

import (
	"math"
	"testing"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/utils"
)

func newTweenTarget(em *ecs.EntityManager) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{Scale: utils.Vec3One})
	ecs.AddComponent(em, id, &components.RenderComponent{Alpha: 1, Visible: true})
	return id
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// TestTweenLinearProgress 线性补间按已过时间插值，结束时精确写入终值
func TestTweenLinearProgress(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewTweenSystem(em)
	id := newTweenTarget(em)

	completed := 0
	MoveTo(em, id, utils.Vec3{X: 10}, 1, utils.EaseTypeLinear, func() { completed++ })

	sys.Update(0.25)
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	if !almostEqual(tr.Position.X, 2.5) {
		t.Errorf("0.25s 后 X = %v, 期望 2.5", tr.Position.X)
	}

	sys.Update(0.5)
	if !almostEqual(tr.Position.X, 7.5) {
		t.Errorf("0.75s 后 X = %v, 期望 7.5", tr.Position.X)
	}

	sys.Update(0.4)
	if tr.Position.X != 10 {
		t.Errorf("结束后 X = %v, 期望精确为 10", tr.Position.X)
	}
	if completed != 1 {
		t.Errorf("OnComplete 调用 %d 次, 期望 1 次", completed)
	}

	em.RemoveMarkedEntities()
	sys.Update(1)
	if completed != 1 {
		t.Errorf("结束后继续推进不应再次回调, 实际 %d 次", completed)
	}
}

// TestTweenZeroDuration 时长 <= 0 时立即写入终值并同步回调
func TestTweenZeroDuration(t *testing.T) {
	em := ecs.NewEntityManager()
	id := newTweenTarget(em)

	completed := false
	tweenID := MoveTo(em, id, utils.Vec3{Y: -3}, 0, utils.EaseTypeOutQuad, func() { completed = true })

	if tweenID != ecs.NoEntity {
		t.Errorf("零时长补间不应创建实体, 实际 %d", tweenID)
	}
	if !completed {
		t.Error("零时长补间应同步调用 OnComplete")
	}
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	if tr.Position.Y != -3 {
		t.Errorf("Y = %v, 期望 -3", tr.Position.Y)
	}
}

// TestTweenHoldFreezes Hold 为 true 时不累计时间，恢复后从原处继续
func TestTweenHoldFreezes(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewTweenSystem(em)
	id := newTweenTarget(em)

	held := false
	StartTween(em, components.TweenComponent{
		Target:   id,
		Tracks:   []components.TweenTrack{{Property: components.TweenRotationY, From: utils.Vec3{}, To: utils.Vec3{X: 100}}},
		Duration: 1,
		Ease:     utils.EaseTypeLinear,
		Hold:     func() bool { return held },
	})

	sys.Update(0.5)
	held = true
	for i := 0; i < 10; i++ {
		sys.Update(0.5)
	}
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	if !almostEqual(tr.RotationY, 50) {
		t.Errorf("冻结期间 RotationY = %v, 期望保持 50", tr.RotationY)
	}

	held = false
	sys.Update(0.25)
	if !almostEqual(tr.RotationY, 75) {
		t.Errorf("恢复后 RotationY = %v, 期望 75", tr.RotationY)
	}
}

// TestTweenDroppedWhenTargetDestroyed 目标销毁后补间静默丢弃
func TestTweenDroppedWhenTargetDestroyed(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewTweenSystem(em)
	id := newTweenTarget(em)

	called := false
	tweenID := MoveTo(em, id, utils.Vec3{Z: 5}, 1, utils.EaseTypeLinear, func() { called = true })
	em.DestroyEntity(id)
	em.RemoveMarkedEntities()

	sys.Update(2)
	if called {
		t.Error("目标已销毁时不应调用 OnComplete")
	}
	if em.IsAlive(tweenID) {
		t.Error("补间实体应被销毁")
	}
}

// TestTweenCreatedDuringUpdateStartsNextTick 帧内新建的补间从下一帧开始推进
func TestTweenCreatedDuringUpdateStartsNextTick(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewTweenSystem(em)
	id := newTweenTarget(em)

	MoveTo(em, id, utils.Vec3{X: 1}, 0.1, utils.EaseTypeLinear, func() {
		MoveTo(em, id, utils.Vec3{X: 3}, 1, utils.EaseTypeLinear, nil)
	})

	sys.Update(0.2)
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	if tr.Position.X != 1 {
		t.Errorf("第一段结束帧 X = %v, 期望 1（第二段尚未推进）", tr.Position.X)
	}

	sys.Update(0.5)
	if !almostEqual(tr.Position.X, 2) {
		t.Errorf("第二段推进 0.5s 后 X = %v, 期望 2", tr.Position.X)
	}
}

// TestTweenMultipleTracks 同一补间的多条轨道共享时间
func TestTweenMultipleTracks(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewTweenSystem(em)
	id := newTweenTarget(em)

	StartTween(em, components.TweenComponent{
		Target: id,
		Tracks: []components.TweenTrack{
			{Property: components.TweenScale, From: utils.Vec3One, To: utils.Vec3One.Scale(3)},
			{Property: components.TweenAlpha, From: utils.Vec3{X: 1}, To: utils.Vec3Zero},
		},
		Duration: 2,
		Ease:     utils.EaseTypeLinear,
	})

	sys.Update(1)
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	r, _ := ecs.GetComponent[*components.RenderComponent](em, id)
	if !almostEqual(tr.Scale.X, 2) || !almostEqual(r.Alpha, 0.5) {
		t.Errorf("中点 Scale=%v Alpha=%v, 期望 2 与 0.5", tr.Scale.X, r.Alpha)
	}
}
