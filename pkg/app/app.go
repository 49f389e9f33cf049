// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/paintrings/pkg/config"
	"github.com/gonewx/paintrings/pkg/game"
	"github.com/gonewx/paintrings/pkg/logger"
	"github.com/gonewx/paintrings/pkg/scenes"
	"github.com/gonewx/paintrings/pkg/session"
	"github.com/gonewx/paintrings/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	App    *config.AppConfig
	Levels *config.LevelTable

	// Silent 不创建音频上下文
	Silent bool
	// Headless 场景不读取窗口输入
	Headless bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
//
// 持有所有跨场景存活的服务：设置、存档、音频、会话与场景管理器。
// 会话结束（点击 Finish）后丢弃会话状态，重新显示开始界面。
type App struct {
	appConfig *config.AppConfig
	levels    *config.LevelTable
	rng       *rand.Rand
	tickDelta float64
	headless  bool

	settings     *game.SettingsManager
	save         *game.SaveManager
	audio        *game.AudioManager
	sceneManager *game.SceneManager

	session *game.Session
	reward  *session.RewardGameManager

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	if cfg.App == nil || cfg.Levels == nil {
		return nil, errors.New("app requires app config and level table")
	}

	a := &App{
		appConfig: cfg.App,
		levels:    cfg.Levels,
		tickDelta: 1.0 / float64(max(cfg.App.TPS, 1)),
		headless:  cfg.Headless,
	}

	seed := cfg.App.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	a.rng = utils.NewRand(seed)
	logger.Debug("[App] Random seed: %d", seed)

	gdataManager := openStorage(cfg.App.Storage.AppName)
	a.settings = game.NewSettingsManager(gdataManager)
	a.save = game.NewSaveManager(gdataManager, cfg.Levels.SavedLevels)

	var audioContext *audio.Context
	if !cfg.Silent {
		audioContext = audio.NewContext(game.SampleRate)
	}
	a.audio = game.NewAudioManager(audioContext, a.settings)
	logger.Info("[App] AudioManager initialized (silent=%v)", audioContext == nil)

	a.sceneManager = game.NewSceneManager()
	a.sceneManager.SetSceneFactory(a.createScene)

	if err := a.startSession(); err != nil {
		return nil, err
	}
	return a, nil
}

// openStorage 打开 gdata 存储，失败时返回 nil（仅内存存档）
func openStorage(appName string) *gdata.Manager {
	if appName == "" {
		logger.Info("[App] Storage disabled, progress will not be saved")
		return nil
	}
	if err := utils.EnsureStorageDir(appName); err != nil {
		logger.Warn("[App] %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("[App] Failed to open storage %q: %v (progress will not be saved)", appName, err)
		return nil
	}
	if path := utils.StoragePath(appName); path != "" {
		logger.Debug("[App] Storage path: %s", path)
	}
	return manager
}

// sessionConfig 由应用配置生成会话参数
func (a *App) sessionConfig() session.Config {
	cfg := session.DefaultConfig()
	cfg.GameName = a.appConfig.Window.Title
	if limit := a.appConfig.SessionTimeLimit(); limit > 0 {
		cfg.TimeLimit = limit
	}
	cfg.WarningTime = a.appConfig.Session.WarningTime
	cfg.TimeUpAnimLength = a.appConfig.Session.TimeoutAnimSeconds
	return cfg
}

// startSession 开始新会话并切换到开始界面
func (a *App) startSession() error {
	a.session = game.NewSession(a.save.SavedLevels())
	a.reward = session.NewRewardGameManager(a.sessionConfig(), a.audio, a.save)

	scene, err := scenes.NewGameScene(a.sceneDeps(scenes.GameSceneName))
	if err != nil {
		return fmt.Errorf("failed to create game scene: %w", err)
	}
	a.sceneManager.SwitchTo(scenes.GameSceneName, scene)
	logger.Info("[App] New session started")
	return nil
}

func (a *App) sceneDeps(name string) scenes.GameSceneDeps {
	return scenes.GameSceneDeps{
		Name:    name,
		Levels:  a.levels,
		Session: a.session,
		Reward:  a.reward,
		Audio:   a.audio,
		Save:    a.save,
		Loader:  a.sceneManager,
		Rand:    a.rng,

		Headless: a.headless,
	}
}

// createScene 场景工厂（重开/下一关时重建场景）
func (a *App) createScene(name string) scenes.Scene {
	scene, err := scenes.NewGameScene(a.sceneDeps(name))
	if err != nil {
		logger.Error("[App] Failed to create scene %s: %v", name, err)
		return nil
	}
	return scene
}

// Update 更新游戏逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	a.handleWindowKeys()

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.settings.SetMuted(!a.settings.GetSettings().Muted)
	}

	a.Tick(a.tickDelta)
	return nil
}

// Tick 推进一帧（不读取窗口输入）
// 会话计时使用原始帧时长，场景使用按会话时间缩放后的帧时长
func (a *App) Tick(dt float64) {
	a.reward.Update(dt)
	a.audio.Update(dt)
	a.sceneManager.Update(dt * a.reward.TimeScale())

	if a.reward.Finished() {
		if err := a.startSession(); err != nil {
			logger.Error("[App] %v", err)
		}
	}
}

// handleWindowKeys F11 切换全屏
func (a *App) handleWindowKeys() {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.appConfig.Window.Width, a.appConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(ebiten.IsFullscreen())
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 退出前保存设置与存档
func (a *App) Close() {
	if err := a.settings.Save(); err != nil {
		logger.Warn("[App] Failed to save settings: %v", err)
	}
	if err := a.save.Save(); err != nil {
		logger.Warn("[App] Failed to save progress: %v", err)
	}
}

// SceneManager 返回场景管理器
func (a *App) SceneManager() *game.SceneManager { return a.sceneManager }

// Session 当前会话上下文
func (a *App) Session() *game.Session { return a.session }

// Reward 当前会话管理器
func (a *App) Reward() *session.RewardGameManager { return a.reward }

// FullscreenOnStart 设置中是否要求全屏启动
func (a *App) FullscreenOnStart() bool {
	return a.settings.GetSettings().Fullscreen
}
