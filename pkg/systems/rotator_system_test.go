package systems

import (
	"testing"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/config"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/entities"
	"github.com/gonewx/paintrings/pkg/utils"
)

// newRotatorFixture 每段旋转 90 度、耗时 1 秒的转台
func newRotatorFixture(playing *bool) (*ecs.EntityManager, *RotatorSystem, *TweenSystem) {
	em := ecs.NewEntityManager()
	rotatorID := entities.NewRotator(em, utils.Vec3Zero)
	sys := NewRotatorSystem(em, rotatorID, utils.NewRand(11), 0.5, func() bool { return *playing })
	sys.SetLevel(&config.LevelData{
		MinRotatingDegrees: 90,
		MaxRotatingDegrees: 90,
		MinRotatingSpeed:   90,
		MaxRotatingSpeed:   90,
		RotatingTypes:      []utils.EaseType{utils.EaseTypeLinear},
	})
	return em, sys, NewTweenSystem(em)
}

// deviation 当前角度相对 0 度的偏移（取较小的一侧）
func deviation(angle float64) float64 {
	if angle > 180 {
		return 360 - angle
	}
	return angle
}

func TestRotatorStartsOnFirstRing(t *testing.T) {
	playing := true
	em, sys, _ := newRotatorFixture(&playing)

	if sys.State() != components.RotatorIdle {
		t.Fatalf("初始状态 %v, 期望 Idle", sys.State())
	}
	sys.Attach(em.CreateEntity(), 0.125)

	rot, _ := ecs.GetComponent[*components.RotatorComponent](em, sys.Rotator())
	if !rot.IsRotated || rot.LegCount != 1 {
		t.Errorf("第一个环落下后应开始旋转, IsRotated=%v LegCount=%d", rot.IsRotated, rot.LegCount)
	}
	if sys.State() != components.RotatorRotating {
		t.Errorf("状态 %v, 期望 Rotating", sys.State())
	}

	sys.Attach(em.CreateEntity(), 0.125)
	if rot.LegCount != 1 {
		t.Errorf("旋转只应启动一次, LegCount=%d", rot.LegCount)
	}
}

// TestRotatorBounce 弹跳期间冻结旋转，结束后整体下沉一个环段高度
func TestRotatorBounce(t *testing.T) {
	playing := true
	em, sys, tweens := newRotatorFixture(&playing)

	sys.Attach(em.CreateEntity(), 0.125)
	runSystems(em, 0.5, tweens)
	before := sys.Angle()
	if !almostEqual(deviation(before), 45) {
		t.Fatalf("0.5s 后偏移 %v 度, 期望 45", deviation(before))
	}

	sys.Attach(em.CreateEntity(), 1.0)
	if sys.State() != components.RotatorBouncing {
		t.Fatalf("状态 %v, 期望 Bouncing", sys.State())
	}

	runSystems(em, 0.4, tweens)
	if sys.Angle() != before {
		t.Errorf("弹跳期间角度从 %v 变为 %v", before, sys.Angle())
	}
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, sys.Rotator())
	if tr.Position.Y >= -0.5 {
		t.Errorf("下沉阶段 Y = %v, 应低于 -0.5", tr.Position.Y)
	}

	runSystems(em, 0.7, tweens)
	if sys.State() != components.RotatorRotating {
		t.Errorf("弹跳结束后状态 %v, 期望 Rotating", sys.State())
	}
	if !almostEqual(tr.Position.Y, -0.5) {
		t.Errorf("弹跳结束后 Y = %v, 期望 -0.5", tr.Position.Y)
	}
	if sys.Angle() == before {
		t.Error("弹跳结束后应继续旋转")
	}
}

// TestRotatorFreezesWhenNotPlaying 暂停冻结当前段，恢复后从原处继续
func TestRotatorFreezesWhenNotPlaying(t *testing.T) {
	playing := true
	em, sys, tweens := newRotatorFixture(&playing)
	rot, _ := ecs.GetComponent[*components.RotatorComponent](em, sys.Rotator())

	sys.Attach(em.CreateEntity(), 0.125)
	runSystems(em, 0.5, tweens)
	paused := sys.Angle()

	playing = false
	runSystems(em, 2, tweens)
	if sys.Angle() != paused {
		t.Errorf("暂停期间角度从 %v 变为 %v", paused, sys.Angle())
	}
	if rot.LegCount != 1 {
		t.Errorf("暂停不应结束当前段, LegCount=%d", rot.LegCount)
	}

	playing = true
	runSystems(em, 0.25, tweens)
	if !almostEqual(deviation(sys.Angle()), 67.5) {
		t.Errorf("恢复 0.25s 后偏移 %v 度, 期望 67.5", deviation(sys.Angle()))
	}
	if rot.LegCount != 1 {
		t.Errorf("当前段尚未结束, LegCount=%d", rot.LegCount)
	}

	runSystems(em, 0.5, tweens)
	if rot.LegCount != 2 {
		t.Errorf("当前段结束后应开始下一段, LegCount=%d", rot.LegCount)
	}
}

// TestRotatorShake 震动只写 ShakeOffset，不影响基准位置
func TestRotatorShake(t *testing.T) {
	playing := true
	em, sys, tweens := newRotatorFixture(&playing)
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, sys.Rotator())
	rot, _ := ecs.GetComponent[*components.RotatorComponent](em, sys.Rotator())
	tr.Position = utils.Vec3{Y: -1.5}

	sys.Shake()
	tweens.Update(shakeLegTime)
	if !vecAlmostEqual(rot.ShakeOffset, utils.Vec3{Z: shakeDistance}) {
		t.Errorf("前冲后偏移 %+v, 期望 (0,0,%v)", rot.ShakeOffset, shakeDistance)
	}
	em.RemoveMarkedEntities()

	tweens.Update(shakeLegTime)
	if rot.ShakeOffset != utils.Vec3Zero {
		t.Errorf("退回后偏移 %+v, 期望 0", rot.ShakeOffset)
	}
	if tr.Position != (utils.Vec3{Y: -1.5}) {
		t.Errorf("基准位置被修改为 %+v", tr.Position)
	}
}

// TestRotatorZeroDegreeLegs 零度旋转段不会在同一帧内无限续接
func TestRotatorZeroDegreeLegs(t *testing.T) {
	playing := true
	em, sys, tweens := newRotatorFixture(&playing)
	sys.SetLevel(&config.LevelData{
		MinRotatingSpeed: 10,
		MaxRotatingSpeed: 10,
		RotatingTypes:    []utils.EaseType{utils.EaseTypeOutQuad},
	})

	sys.Attach(em.CreateEntity(), 0.125)
	runSystems(em, 0.1, tweens)

	rot, _ := ecs.GetComponent[*components.RotatorComponent](em, sys.Rotator())
	if rot.LegCount < 2 || rot.LegCount > 8 {
		t.Errorf("6 帧内开始了 %d 段, 期望每帧最多一段", rot.LegCount)
	}
	if sys.Angle() != 0 {
		t.Errorf("零度旋转后角度 %v, 期望 0", sys.Angle())
	}
}
