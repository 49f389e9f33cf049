package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/paintrings/pkg/logger"
)

// SceneFactory 场景工厂函数类型
// 按名称创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(name string) Scene

// SceneManager manages which scene is active.
// Only one scene's Update and Draw methods are called at any given time.
//
// LoadScene 支持延迟加载：计时在 Update 中推进，到期后在下一次
// Update 开始时用工厂创建新场景并替换当前场景。
type SceneManager struct {
	currentScene Scene
	currentName  string
	sceneFactory SceneFactory

	pendingName  string
	pendingDelay float64
	hasPending   bool
}

// NewSceneManager creates a SceneManager with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene immediately.
// The previous scene is disposed if it implements Disposable.
func (sm *SceneManager) SwitchTo(name string, scene Scene) {
	if d, ok := sm.currentScene.(Disposable); ok && sm.currentScene != scene {
		d.Dispose()
	}
	sm.currentScene = scene
	sm.currentName = name
}

// GetCurrentScene 返回当前活动的场景（可能为 nil）
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 当前场景名
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// LoadScene 在 delay 秒后加载指定场景
// 后一次请求覆盖尚未执行的前一次请求
func (sm *SceneManager) LoadScene(name string, delay float64) {
	if delay < 0 {
		delay = 0
	}
	sm.pendingName = name
	sm.pendingDelay = delay
	sm.hasPending = true
	logger.Debug("[SceneManager] 加载场景 %s（延迟 %.2fs）", name, delay)
}

// HasPendingLoad 是否有待执行的加载
func (sm *SceneManager) HasPendingLoad() bool {
	return sm.hasPending
}

// Update updates the currently active scene.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.hasPending && sm.pendingDelay <= 0 {
		sm.performLoad()
	}

	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}

	if sm.hasPending {
		sm.pendingDelay -= deltaTime
	}
}

func (sm *SceneManager) performLoad() {
	name := sm.pendingName
	sm.hasPending = false
	sm.pendingName = ""

	if sm.sceneFactory == nil {
		logger.Error("[SceneManager] SceneFactory 未设置，无法加载 %s", name)
		return
	}

	newScene := sm.sceneFactory(name)
	if newScene == nil {
		logger.Error("[SceneManager] 无法创建场景: %s", name)
		return
	}
	sm.SwitchTo(name, newScene)
	logger.Info("[SceneManager] 已切换到场景: %s", name)
}

// Draw renders the currently active scene.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
