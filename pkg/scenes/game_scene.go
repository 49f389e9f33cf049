package scenes

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/paintrings/pkg/config"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/game"
	"github.com/gonewx/paintrings/pkg/logger"
	"github.com/gonewx/paintrings/pkg/session"
	"github.com/gonewx/paintrings/pkg/systems"
	"github.com/gonewx/paintrings/pkg/utils"
)

// backgroundBase 背景底色，与当前环颜色混合
var backgroundBase = colorful.Color{R: 0.08, G: 0.09, B: 0.13}

// backgroundTint 环颜色在背景中的占比
const backgroundTint = 0.12

// GameSceneDeps 构建玩法场景所需的长生命周期服务
type GameSceneDeps struct {
	Name    string
	Levels  *config.LevelTable
	Session *game.Session
	Reward  *session.RewardGameManager
	Audio   game.AudioPlayer
	Save    *game.SaveManager // 可为 nil
	Loader  game.SceneLoader
	Rand    *rand.Rand // 为 nil 时随机取种子

	// Headless 不读取窗口输入（无头模拟）
	Headless bool
}

// GameScene 一局游戏的场景
//
// 每次重开/下一关都会重建场景，跨场景的状态保存在 Session 与 RewardGameManager 中。
// 每帧系统执行顺序：计时器 → 补间 → 控制器（预涂色、倒计时、清场）→ 生命周期 → 清理销毁的实体。
type GameScene struct {
	name          string
	headless      bool
	entityManager *ecs.EntityManager
	session       *game.Session
	reward        *session.RewardGameManager

	timerSystem    *systems.TimerSystem
	tweenSystem    *systems.TweenSystem
	lifetimeSystem *systems.LifetimeSystem
	renderSystem   *systems.RenderSystem
	controller     *systems.GameController

	hud     *HUD
	overlay *Overlay
	ui      *UIManager
}

// NewGameScene 创建玩法场景并完成准备阶段
func NewGameScene(deps GameSceneDeps) (*GameScene, error) {
	if deps.Levels == nil || deps.Session == nil || deps.Reward == nil || deps.Loader == nil {
		return nil, errors.New("game scene requires levels, session, reward manager and scene loader")
	}
	if deps.Name == "" {
		deps.Name = GameSceneName
	}

	em := ecs.NewEntityManager()
	hud := NewHUD()
	gameplay := deps.Levels.Gameplay

	controller, err := systems.NewGameController(em, systems.ControllerConfig{
		Session: deps.Session,
		Levels:  deps.Levels,
		Audio:   deps.Audio,
		HUD:     hud,
		Rand:    deps.Rand,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game controller: %w", err)
	}

	s := &GameScene{
		name:           deps.Name,
		headless:       deps.Headless,
		entityManager:  em,
		session:        deps.Session,
		reward:         deps.Reward,
		timerSystem:    systems.NewTimerSystem(em),
		tweenSystem:    systems.NewTweenSystem(em),
		lifetimeSystem: systems.NewLifetimeSystem(em),
		renderSystem:   systems.NewRenderSystem(em, systems.DefaultCamera(), gameplay.RingRadius, gameplay.RingPieceHeight),
		controller:     controller,
		hud:            hud,
		overlay:        NewOverlay(deps.Reward, deps.Audio, deps.Save),
	}
	s.ui = NewUIManager(em, controller, deps.Reward, deps.Session, hud, deps.Loader, deps.Save, gameplay, deps.Name)
	s.ui.Start()

	if err := controller.Start(); err != nil {
		s.ui.Dispose()
		return nil, err
	}
	logger.Debug("[GameScene] Scene %s ready at level %d", s.name, deps.Session.CurrentLevel)
	return s, nil
}

// Update 读取输入并推进一帧
func (s *GameScene) Update(deltaTime float64) {
	if s.headless {
		s.Step(deltaTime)
		return
	}
	if in := utils.ReadPointerInput(); in.JustPressed {
		s.HandlePointer(float64(in.X), float64(in.Y))
	}
	if utils.IsPauseKeyJustPressed() && s.reward.PauseButtonVisible() {
		s.overlay.Press(ButtonPause)
	}
	if utils.IsFireKeyJustPressed() {
		s.controller.HandlePrimaryInput(s.overlay.Blocking())
	}
	s.Step(deltaTime)
}

// HandlePointer 处理一次点击/触摸
// 点中会话界面按钮时不发射
func (s *GameScene) HandlePointer(x, y float64) {
	if s.overlay.Click(x, y) {
		return
	}
	s.controller.HandlePrimaryInput(s.overlay.Blocking())
}

// Step 按固定顺序推进各系统（不读取输入，供测试与无窗口模拟使用）
func (s *GameScene) Step(dt float64) {
	s.timerSystem.Update(dt)
	s.tweenSystem.Update(dt)
	s.controller.Update(dt)
	s.lifetimeSystem.Update(dt)
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制背景、环与彩球、局内界面和会话界面
func (s *GameScene) Draw(screen *ebiten.Image) {
	bg := backgroundBase.BlendLab(s.controller.RingColor(), backgroundTint).Clamped()
	screen.Fill(bg)

	s.renderSystem.Draw(screen)
	s.hud.Draw(screen)
	s.overlay.Draw(screen)
}

// Dispose 场景被替换时取消事件订阅
func (s *GameScene) Dispose() {
	s.ui.Dispose()
}

// Controller 玩法总控
func (s *GameScene) Controller() *systems.GameController { return s.controller }

// HUD 局内界面
func (s *GameScene) HUD() *HUD { return s.hud }

// Overlay 会话界面
func (s *GameScene) Overlay() *Overlay { return s.overlay }

// UI 事件转发
func (s *GameScene) UI() *UIManager { return s.ui }

// EntityManager 场景的实体管理器
func (s *GameScene) EntityManager() *ecs.EntityManager { return s.entityManager }
