package scenes

import (
	"github.com/gonewx/paintrings/pkg/config"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/game"
	"github.com/gonewx/paintrings/pkg/logger"
	"github.com/gonewx/paintrings/pkg/session"
	"github.com/gonewx/paintrings/pkg/systems"
)

// UIManager 把会话事件与玩法状态变更互相转发
//
//   - 会话开始/重开/下一关/暂停/超时/结束 → GameController 与场景重载
//   - 玩法 GameOver / PassLevel → 延迟后弹出重开/过关界面
//
// 每个场景实例持有一个 UIManager，场景销毁时 Dispose 取消全部订阅。
type UIManager struct {
	entityManager *ecs.EntityManager
	controller    *systems.GameController
	reward        *session.RewardGameManager
	session       *game.Session
	hud           *HUD
	loader        game.SceneLoader
	save          *game.SaveManager // 可为 nil
	gameplay      config.GameplayConfig
	sceneName     string

	unsubscribers []func()
}

// NewUIManager 创建并订阅会话事件与玩法状态
func NewUIManager(em *ecs.EntityManager, controller *systems.GameController, reward *session.RewardGameManager,
	sess *game.Session, hud *HUD, loader game.SceneLoader, save *game.SaveManager,
	gameplay config.GameplayConfig, sceneName string) *UIManager {
	m := &UIManager{
		entityManager: em,
		controller:    controller,
		reward:        reward,
		session:       sess,
		hud:           hud,
		loader:        loader,
		save:          save,
		gameplay:      gameplay,
		sceneName:     sceneName,
	}

	m.unsubscribers = append(m.unsubscribers,
		reward.Subscribe(session.EventGameStart, func(session.Event) { m.onGameStart() }),
		reward.Subscribe(session.EventGameRestart, func(session.Event) { m.reloadScene() }),
		reward.Subscribe(session.EventProceedToNextLevel, func(session.Event) { m.onProceedToNextLevel() }),
		reward.Subscribe(session.EventGamePauseStateChanged, m.onPauseStateChanged),
		reward.Subscribe(session.EventGameOver, func(session.Event) { m.onSessionTimeout() }),
		reward.Subscribe(session.EventGameSessionFinish, func(session.Event) { m.controller.OnSessionFinish() }),
		controller.State().Subscribe(m.onStateChanged),
	)
	return m
}

// Start 场景开始时调用（需在 GameController.Start 之前）
// 重开/下一关直接进入游戏界面，否则等待开始界面的 Play
func (m *UIManager) Start() {
	if m.session.IsRestart {
		m.reward.HandleIfGameIsAlreadyPlayed()
		return
	}
	m.hud.SetVisible(false)
}

func (m *UIManager) onGameStart() {
	m.reward.StartTimer()
	m.controller.PlayingGame()
}

func (m *UIManager) onProceedToNextLevel() {
	m.controller.IncreaseCurrentLevel()
	m.reloadScene()
}

// PreviousLevel 回到上一关并重载场景
func (m *UIManager) PreviousLevel() {
	before := m.session.CurrentLevel
	m.controller.DecreaseCurrentLevel()
	if m.session.CurrentLevel == before {
		return
	}
	m.session.IsRestart = true
	m.reloadScene()
}

func (m *UIManager) reloadScene() {
	m.loader.LoadScene(m.sceneName, m.gameplay.SceneReloadDelay)
}

func (m *UIManager) onPauseStateChanged(e session.Event) {
	if e.Paused {
		m.controller.PauseGame()
	} else {
		m.controller.UnPauseGame()
	}
}

// onSessionTimeout 会话时间耗尽：显示最终成绩并清空关卡进度
func (m *UIManager) onSessionTimeout() {
	m.session.TimedOut = true
	m.hud.SetVisible(false)
	m.reward.ShowGameOverCanvas(m.session.CurrentLevel - 1)
	m.session.CurrentLevel = 0
}

func (m *UIManager) onStateChanged(state game.GameState) {
	switch state {
	case game.StatePlaying:
		m.hud.SetVisible(true)
	case game.StateGameOver:
		systems.StartTimer(m.entityManager, "show_restart", m.gameplay.ResultUIDelay, 0, m.showRestart)
	case game.StatePassLevel:
		systems.StartTimer(m.entityManager, "show_level_cleared", m.gameplay.ResultUIDelay, 0, m.showLevelCleared)
	}
}

func (m *UIManager) showRestart() {
	if m.session.TimedOut {
		return
	}
	m.reward.RestartGame(m.session.CurrentLevel - 1)
}

func (m *UIManager) showLevelCleared() {
	if m.session.TimedOut {
		return
	}
	level := m.session.CurrentLevel
	m.hud.SetClearedCount(level)
	if m.save != nil {
		m.save.RecordLevelPassed(level)
		if err := m.save.Save(); err != nil {
			logger.Warn("[UIManager] Failed to save progress: %v", err)
		}
	}
	m.reward.LevelCleared(level)
}

// Dispose 取消全部订阅
func (m *UIManager) Dispose() {
	for _, unsubscribe := range m.unsubscribers {
		unsubscribe()
	}
	m.unsubscribers = nil
}
