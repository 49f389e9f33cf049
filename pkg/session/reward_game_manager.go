// Package session 奖励小游戏的会话外壳
//
// RewardGameManager 跨场景重载存活，负责：
//   - 开始/重开/过关/结束/暂停几个界面（Canvas）的切换
//   - 会话倒计时（剩余时间警告、超时后暂停并在动画结束后广播 GameOver）
//   - 时间缩放（结算界面弹出时冻结游戏世界）
//   - 通过事件总线把玩家操作广播给当前场景
package session

import (
	"github.com/gonewx/paintrings/pkg/game"
	"github.com/gonewx/paintrings/pkg/logger"
)

// Canvas 当前显示的会话界面
type Canvas int

const (
	CanvasStart        Canvas = iota // 开始界面（标题 + Play）
	CanvasPlaying                    // 游戏中（局内 HUD + 暂停按钮）
	CanvasRestart                    // 失败后重开界面
	CanvasLevelCleared               // 过关界面
	CanvasGameOver                   // 会话结束界面
)

func (c Canvas) String() string {
	switch c {
	case CanvasStart:
		return "Start"
	case CanvasPlaying:
		return "Playing"
	case CanvasRestart:
		return "Restart"
	case CanvasLevelCleared:
		return "LevelCleared"
	case CanvasGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// NoScore 界面不显示分数
const NoScore = -1

// Config 会话参数
type Config struct {
	GameName string
	Message  string

	// TimeLimit 会话总时长（秒）
	TimeLimit float64
	// WarningTime 剩余时间不足该值时开始警告（秒）
	WarningTime float64
	// TimeUpAnimLength 时间到动画时长，动画结束后广播 GameOver（秒）
	TimeUpAnimLength float64
}

// DefaultConfig 默认会话参数：3 分钟，剩余 30 秒警告
func DefaultConfig() Config {
	return Config{
		GameName:         "Paint the Rings",
		Message:          "Time To Play!",
		TimeLimit:        180,
		WarningTime:      30,
		TimeUpAnimLength: 1.5,
	}
}

// RewardGameManager 奖励小游戏会话管理器
type RewardGameManager struct {
	cfg   Config
	bus   *Bus
	audio game.AudioPlayer  // 可为 nil
	save  *game.SaveManager // 可为 nil

	canvas           Canvas
	pauseVisible     bool
	gameCanvasActive bool
	score            int

	timeLeft      float64
	didTimerStart bool
	timeRunning   bool
	warningSet    bool
	timedOut      bool
	timeUpPending float64 // >0 表示时间到动画播放中
	isPaused      bool
	timeScale     float64
	finished      bool
}

// NewRewardGameManager 创建会话管理器并显示开始界面
func NewRewardGameManager(cfg Config, audio game.AudioPlayer, save *game.SaveManager) *RewardGameManager {
	d := DefaultConfig()
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = d.TimeLimit
	}
	if cfg.WarningTime < 0 {
		cfg.WarningTime = 0
	}
	if cfg.TimeUpAnimLength < 0 {
		cfg.TimeUpAnimLength = 0
	}

	m := &RewardGameManager{
		cfg:       cfg,
		bus:       NewBus(),
		audio:     audio,
		save:      save,
		score:     NoScore,
		timeScale: 1,
	}
	m.resetCanvases()
	if m.audio != nil {
		m.audio.PlaySound(game.SoundSessionStart)
	}
	return m
}

func (m *RewardGameManager) resetCanvases() {
	m.canvas = CanvasStart
	m.pauseVisible = false
	m.gameCanvasActive = false
}

func (m *RewardGameManager) enableInGameCanvas() {
	m.canvas = CanvasPlaying
	m.pauseVisible = true
	m.gameCanvasActive = true
}

func (m *RewardGameManager) hideInGameCanvas() {
	m.pauseVisible = false
	m.gameCanvasActive = false
}

// Subscribe 订阅会话事件
func (m *RewardGameManager) Subscribe(t EventType, h Handler) (unsubscribe func()) {
	return m.bus.Subscribe(t, h)
}

// Bus 会话事件总线
func (m *RewardGameManager) Bus() *Bus { return m.bus }

// Update 推进会话计时
// dt 为未缩放的帧时长，会话倒计时按时间缩放累计
func (m *RewardGameManager) Update(dt float64) {
	// 时间到动画不受结算界面冻结影响
	if m.timeUpPending > 0 {
		m.timeUpPending -= dt
		if m.timeUpPending <= 0 {
			m.onTimeUpAnimationComplete()
		}
	}

	if !m.timeRunning || m.timeLeft <= 0 {
		return
	}

	m.timeLeft -= dt * m.timeScale
	if m.timeLeft <= 0 {
		m.timeLeft = 0
		m.timeRunning = false
		m.onTimeOut()
		return
	}
	if m.timeLeft <= m.cfg.WarningTime && !m.warningSet {
		m.warningSet = true
		logger.Info("[RewardGameManager] %.0fs left", m.timeLeft)
		if m.audio != nil {
			m.audio.PlaySound(game.SoundTimerWarning)
		}
	}
}

func (m *RewardGameManager) onTimeOut() {
	logger.Info("[RewardGameManager] Session time is up")
	m.warningSet = false
	m.timedOut = true
	m.hideInGameCanvas()

	m.isPaused = true
	m.bus.Publish(Event{Type: EventGamePauseStateChanged, Paused: true})

	if m.cfg.TimeUpAnimLength <= 0 {
		m.onTimeUpAnimationComplete()
		return
	}
	m.timeUpPending = m.cfg.TimeUpAnimLength
}

func (m *RewardGameManager) onTimeUpAnimationComplete() {
	m.timeUpPending = 0
	m.timeScale = 0
	m.bus.Publish(Event{Type: EventGameOver})
}

// OnPlay 开始界面点击 Play
func (m *RewardGameManager) OnPlay() {
	if m.canvas != CanvasStart {
		return
	}
	m.timeScale = 1
	m.bus.Publish(Event{Type: EventGameStart})
	m.enableInGameCanvas()
}

// StartTimer 启动会话计时（每个会话只启动一次，重复调用忽略）
func (m *RewardGameManager) StartTimer() {
	if m.didTimerStart {
		return
	}
	m.timeLeft = m.cfg.TimeLimit
	m.didTimerStart = true
	m.timeRunning = true
	logger.Debug("[RewardGameManager] Session timer started: %.0fs", m.timeLeft)
}

// OnRestart 重开界面点击重新开始
func (m *RewardGameManager) OnRestart() {
	if m.canvas != CanvasRestart {
		return
	}
	m.timeScale = 1
	m.bus.Publish(Event{Type: EventGameRestart})
	m.enableInGameCanvas()
}

// Pause 切换暂停状态
func (m *RewardGameManager) Pause() {
	if m.timedOut {
		return
	}
	m.isPaused = !m.isPaused
	m.bus.Publish(Event{Type: EventGamePauseStateChanged, Paused: m.isPaused})
}

// HandleIfGameIsAlreadyPlayed 场景重载后直接进入游戏界面
func (m *RewardGameManager) HandleIfGameIsAlreadyPlayed() {
	m.enableInGameCanvas()
}

// RestartGame 显示失败重开界面
// score 为 NoScore 时不显示分数
func (m *RewardGameManager) RestartGame(score int) {
	m.hideInGameCanvas()
	m.score = score
	m.canvas = CanvasRestart
	m.timeScale = 0
}

// LevelCleared 显示过关界面
func (m *RewardGameManager) LevelCleared(levelsCleared int) {
	m.hideInGameCanvas()
	m.score = levelsCleared
	m.canvas = CanvasLevelCleared
	m.timeScale = 0
	m.recordScore(levelsCleared)
}

// ShowGameOverCanvas 会话结束后显示成绩
func (m *RewardGameManager) ShowGameOverCanvas(score int) {
	m.hideInGameCanvas()
	m.score = score
	m.canvas = CanvasGameOver
	m.recordScore(score)
}

func (m *RewardGameManager) recordScore(score int) {
	if m.save == nil || score == NoScore {
		return
	}
	if m.save.RecordSessionScore(score) {
		logger.Info("[RewardGameManager] New best: %d levels cleared", score)
	}
	if err := m.save.Save(); err != nil {
		logger.Warn("[RewardGameManager] Failed to save progress: %v", err)
	}
}

// OnPlayNextLevel 过关界面点击下一关
func (m *RewardGameManager) OnPlayNextLevel() {
	if m.canvas != CanvasLevelCleared {
		return
	}
	m.timeScale = 1
	m.enableInGameCanvas()
	m.bus.Publish(Event{Type: EventProceedToNextLevel})
}

// OnFinish 结束本次会话
func (m *RewardGameManager) OnFinish() {
	if m.finished {
		return
	}
	m.bus.Publish(Event{Type: EventGameSessionFinish})
	m.timeScale = 1
	m.isPaused = false
	m.timeRunning = false
	m.finished = true
	if m.audio != nil {
		m.audio.StopMusic()
	}
	logger.Info("[RewardGameManager] Session finished")
}

// Canvas 当前界面
func (m *RewardGameManager) Canvas() Canvas { return m.canvas }

// PauseButtonVisible 是否显示暂停按钮
func (m *RewardGameManager) PauseButtonVisible() bool { return m.pauseVisible }

// GameCanvasActive 局内界面是否显示
func (m *RewardGameManager) GameCanvasActive() bool { return m.gameCanvasActive }

// Score 当前界面显示的分数（NoScore 表示不显示）
func (m *RewardGameManager) Score() int { return m.score }

// TimeLeft 会话剩余时间（秒）
func (m *RewardGameManager) TimeLeft() float64 { return m.timeLeft }

// TimerFraction 会话剩余时间比例（计时未开始时为 1）
func (m *RewardGameManager) TimerFraction() float64 {
	if !m.didTimerStart {
		return 1
	}
	return m.timeLeft / m.cfg.TimeLimit
}

// IsTimerRunning 会话计时是否在走
func (m *RewardGameManager) IsTimerRunning() bool { return m.timeRunning }

// IsWarning 是否处于剩余时间警告阶段
func (m *RewardGameManager) IsWarning() bool { return m.warningSet }

// IsTimedOut 会话时间是否已耗尽
func (m *RewardGameManager) IsTimedOut() bool { return m.timedOut }

// IsPaused 是否暂停
func (m *RewardGameManager) IsPaused() bool { return m.isPaused }

// TimeScale 游戏世界的时间缩放（0 表示冻结）
func (m *RewardGameManager) TimeScale() float64 { return m.timeScale }

// Finished 会话是否已结束
func (m *RewardGameManager) Finished() bool { return m.finished }

// Config 会话参数
func (m *RewardGameManager) Config() Config { return m.cfg }
