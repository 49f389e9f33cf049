package game

import "fmt"

// GameState 游戏玩法状态
// 任意时刻只有一个当前状态
type GameState int

const (
	StatePrepare   GameState = iota // 准备：选择关卡数据、颜色
	StatePlaying                    // 进行中：允许发射
	StatePause                      // 暂停：计时与旋转冻结
	StateRevive                     // 复活（保留状态，当前玩法未使用）
	StatePassLevel                  // 过关（本轮终态）
	StateGameOver                   // 失败（本轮终态）
)

func (s GameState) String() string {
	switch s {
	case StatePrepare:
		return "Prepare"
	case StatePlaying:
		return "Playing"
	case StatePause:
		return "Pause"
	case StateRevive:
		return "Revive"
	case StatePassLevel:
		return "PassLevel"
	case StateGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("GameState(%d)", int(s))
	}
}

// StateListener 状态变更监听器
type StateListener func(newState GameState)

type stateSubscription struct {
	id       int
	listener StateListener
}

// StateMachine 游戏状态持有者 + 观察者注册表
//
// 单写者（GameController），多读者。Transition 同步通知所有监听器，
// 调用返回时所有监听器都已观察到新状态。目标状态与当前相同则不通知。
type StateMachine struct {
	current   GameState
	listeners []stateSubscription
	nextID    int
}

// NewStateMachine 创建状态机
// initial 不会触发通知
func NewStateMachine(initial GameState) *StateMachine {
	return &StateMachine{current: initial}
}

// Current 当前状态
func (sm *StateMachine) Current() GameState {
	return sm.current
}

// Is 当前状态是否为 s
func (sm *StateMachine) Is(s GameState) bool {
	return sm.current == s
}

// Transition 切换状态
// 返回 true 表示状态发生变化并已广播
func (sm *StateMachine) Transition(next GameState) bool {
	if next == sm.current {
		return false
	}
	sm.current = next

	// 快照：监听器内取消订阅不影响本轮广播
	snapshot := make([]stateSubscription, len(sm.listeners))
	copy(snapshot, sm.listeners)
	for _, sub := range snapshot {
		sub.listener(next)
	}
	return true
}

// Subscribe 注册监听器，返回取消函数
// 监听器按注册顺序被调用
func (sm *StateMachine) Subscribe(listener StateListener) (unsubscribe func()) {
	sm.nextID++
	id := sm.nextID
	sm.listeners = append(sm.listeners, stateSubscription{id: id, listener: listener})
	return func() {
		for i, sub := range sm.listeners {
			if sub.id == id {
				sm.listeners = append(sm.listeners[:i], sm.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount 当前监听器数量
func (sm *StateMachine) ListenerCount() int {
	return len(sm.listeners)
}
