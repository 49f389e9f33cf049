package session

import "fmt"

// EventType 会话层事件类型
type EventType int

const (
	// EventGameStart 玩家在开始界面点击 Play
	EventGameStart EventType = iota + 1

	// EventGameRestart 失败后点击重新开始
	EventGameRestart

	// EventProceedToNextLevel 过关后点击下一关
	EventProceedToNextLevel

	// EventGameOver 会话计时耗尽（时间到动画播放完毕后）
	EventGameOver

	// EventGameSessionFinish 玩家结束本次会话
	EventGameSessionFinish

	// EventGamePauseStateChanged 暂停状态切换 | Payload: Event.Paused
	EventGamePauseStateChanged
)

var eventNames = map[EventType]string{
	EventGameStart:             "GameStart",
	EventGameRestart:           "GameRestart",
	EventProceedToNextLevel:    "ProceedToNextLevel",
	EventGameOver:              "GameOver",
	EventGameSessionFinish:     "GameSessionFinish",
	EventGamePauseStateChanged: "GamePauseStateChanged",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event 会话事件
type Event struct {
	Type   EventType
	Paused bool // 仅 EventGamePauseStateChanged 使用
}

// Handler 事件处理函数
type Handler func(Event)

type subscription struct {
	id      int
	handler Handler
}

// Bus 同步事件总线
//
// Publish 按订阅顺序同步调用所有处理函数，返回时全部处理完毕。
// 处理函数内可以安全地订阅或取消订阅，变更从下一次 Publish 起生效。
type Bus struct {
	handlers map[EventType][]subscription
	nextID   int
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventType][]subscription)}
}

// Subscribe 订阅事件，返回取消函数（可重复调用）
func (b *Bus) Subscribe(t EventType, h Handler) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], subscription{id: id, handler: h})
	return func() {
		subs := b.handlers[t]
		for i, s := range subs {
			if s.id == id {
				b.handlers[t] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish 发布事件
func (b *Bus) Publish(e Event) {
	subs := b.handlers[e.Type]
	if len(subs) == 0 {
		return
	}
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)
	for _, s := range snapshot {
		s.handler(e)
	}
}

// HandlerCount 指定事件的订阅数量
func (b *Bus) HandlerCount(t EventType) int {
	return len(b.handlers[t])
}
