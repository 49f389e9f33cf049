package game

import "testing"

// TestStateMachineInitial 初始状态不触发通知
func TestStateMachineInitial(t *testing.T) {
	sm := NewStateMachine(StatePrepare)
	if sm.Current() != StatePrepare {
		t.Errorf("初始状态应为 Prepare, 实际 %v", sm.Current())
	}
	if !sm.Is(StatePrepare) {
		t.Error("Is(StatePrepare) 应为 true")
	}
}

// TestStateMachineTransition 每次状态变化恰好广播一次，相同状态不广播
func TestStateMachineTransition(t *testing.T) {
	sm := NewStateMachine(StatePrepare)
	var received []GameState
	sm.Subscribe(func(s GameState) { received = append(received, s) })

	tests := []struct {
		name    string
		next    GameState
		changed bool
	}{
		{"准备到进行中", StatePlaying, true},
		{"重复进行中", StatePlaying, false},
		{"暂停", StatePause, true},
		{"恢复", StatePlaying, true},
		{"失败", StateGameOver, true},
		{"重复失败", StateGameOver, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sm.Transition(tt.next); got != tt.changed {
				t.Errorf("Transition(%v) = %v, 期望 %v", tt.next, got, tt.changed)
			}
		})
	}

	want := []GameState{StatePlaying, StatePause, StatePlaying, StateGameOver}
	if len(received) != len(want) {
		t.Fatalf("收到 %d 次通知, 期望 %d 次: %v", len(received), len(want), received)
	}
	for i := range want {
		if received[i] != want[i] {
			t.Errorf("第 %d 次通知 = %v, 期望 %v", i, received[i], want[i])
		}
	}
}

// TestStateMachineSynchronousDelivery 监听器在 Transition 返回前已观察到新状态
func TestStateMachineSynchronousDelivery(t *testing.T) {
	sm := NewStateMachine(StatePrepare)
	observed := StatePrepare
	sm.Subscribe(func(s GameState) {
		if sm.Current() != s {
			t.Errorf("监听器内 Current() = %v, 期望 %v", sm.Current(), s)
		}
		observed = s
	})

	sm.Transition(StatePlaying)
	if observed != StatePlaying {
		t.Errorf("Transition 返回后监听器应已收到 Playing, 实际 %v", observed)
	}
}

// TestStateMachineUnsubscribe 取消订阅后不再收到通知
func TestStateMachineUnsubscribe(t *testing.T) {
	sm := NewStateMachine(StatePrepare)
	countA, countB := 0, 0
	unsubA := sm.Subscribe(func(GameState) { countA++ })
	sm.Subscribe(func(GameState) { countB++ })

	sm.Transition(StatePlaying)
	unsubA()
	sm.Transition(StatePause)

	if countA != 1 {
		t.Errorf("A 应收到 1 次通知, 实际 %d", countA)
	}
	if countB != 2 {
		t.Errorf("B 应收到 2 次通知, 实际 %d", countB)
	}
	if sm.ListenerCount() != 1 {
		t.Errorf("ListenerCount = %d, 期望 1", sm.ListenerCount())
	}
}

// TestStateMachineUnsubscribeDuringBroadcast 广播中取消订阅不影响本轮其他监听器
func TestStateMachineUnsubscribeDuringBroadcast(t *testing.T) {
	sm := NewStateMachine(StatePrepare)
	var unsub func()
	calls := 0
	unsub = sm.Subscribe(func(GameState) { unsub() })
	sm.Subscribe(func(GameState) { calls++ })

	sm.Transition(StatePlaying)
	if calls != 1 {
		t.Errorf("第二个监听器应被调用 1 次, 实际 %d", calls)
	}
}

// TestGameStateString 状态名称
func TestGameStateString(t *testing.T) {
	if StatePassLevel.String() != "PassLevel" {
		t.Errorf("StatePassLevel.String() = %q", StatePassLevel.String())
	}
	if GameState(42).String() != "GameState(42)" {
		t.Errorf("未知状态名称 = %q", GameState(42).String())
	}
}

// TestSessionReset 会话结束清空关卡进度，保留已保存关卡
func TestSessionReset(t *testing.T) {
	saved := []int{1, 2, 3}
	s := NewSession(saved)
	saved[0] = 99
	if !s.IsLevelSaved(1) {
		t.Error("NewSession 应复制关卡列表")
	}

	s.CurrentLevel = 5
	s.IsRestart = true
	s.TimedOut = true
	s.Reset()

	if s.CurrentLevel != 0 || s.IsRestart || s.TimedOut {
		t.Errorf("Reset 后状态未清空: %+v", s)
	}
	if len(s.SavedLevels) != 3 {
		t.Errorf("Reset 不应清空已保存关卡: %v", s.SavedLevels)
	}
}
