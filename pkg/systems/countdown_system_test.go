package systems

import (
	"testing"

	"github.com/gonewx/paintrings/pkg/ecs"
)

// TestCountdownRestartCancelsPrevious 连续启动两次只保留第二个，只触发一次到时
func TestCountdownRestartCancelsPrevious(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewCountdownSystem(em, nil)

	first, second := 0, 0
	sys.Start(2, nil, func() { first++ })
	sys.Start(2, nil, func() { second++ })
	em.RemoveMarkedEntities()

	if got := sys.ActiveCount(); got != 1 {
		t.Fatalf("活动倒计时 %d 个, 期望 1", got)
	}

	runSystems(em, 5, sys)

	if first != 0 {
		t.Errorf("被取消的倒计时触发了 %d 次", first)
	}
	if second != 1 {
		t.Errorf("第二个倒计时触发 %d 次, 期望 1", second)
	}
}

// TestCountdownGate 门控关闭时不累计
func TestCountdownGate(t *testing.T) {
	em := ecs.NewEntityManager()
	open := true
	sys := NewCountdownSystem(em, func() bool { return open })

	expired := false
	id := sys.Start(1, nil, func() { expired = true })

	runSystems(em, 0.5, sys)
	open = false
	runSystems(em, 10, sys)
	if expired {
		t.Fatal("门控关闭期间不应到时")
	}

	open = true
	runSystems(em, 0.4, sys)
	if expired {
		t.Fatal("总推进 0.9s 时不应到时")
	}
	runSystems(em, 0.2, sys)
	if !expired {
		t.Error("总推进 1.1s 时应已到时")
	}
	if em.IsAlive(id) {
		t.Error("到时后倒计时实体应被销毁")
	}
}

// TestCountdownProgress 进度从 1 递减到 0
func TestCountdownProgress(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewCountdownSystem(em, nil)

	var values []float64
	sys.Start(1, func(f float64) { values = append(values, f) }, nil)

	if len(values) != 1 || values[0] != 1 {
		t.Fatalf("启动时应回调 1, 实际 %v", values)
	}

	sys.Update(0.25)
	if !almostEqual(values[len(values)-1], 0.75) {
		t.Errorf("0.25s 后剩余 %v, 期望 0.75", values[len(values)-1])
	}
	sys.Update(1)
	if values[len(values)-1] != 0 {
		t.Errorf("到时后剩余 %v, 期望 0", values[len(values)-1])
	}
}

// TestCountdownStop 停止后不再触发
func TestCountdownStop(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewCountdownSystem(em, nil)

	expired := false
	sys.Start(0.5, nil, func() { expired = true })
	sys.Stop()
	runSystems(em, 2, sys)

	if expired {
		t.Error("停止后的倒计时不应触发")
	}
	if sys.Current() != ecs.NoEntity {
		t.Error("停止后 Current 应为 NoEntity")
	}
}
