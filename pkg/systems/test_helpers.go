package systems

import (
	"fmt"
	"testing"

	"github.com/gonewx/paintrings/pkg/config"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/game"
	"github.com/gonewx/paintrings/pkg/utils"
)

// testFrame 测试用的固定帧时长
const testFrame = 1.0 / 60.0

// recordingAudio 记录调用的音频替身
type recordingAudio struct {
	sounds      []string
	music       []string
	pauseCount  int
	resumeCount int
	stopCount   int
	missing     map[string]bool
}

func (a *recordingAudio) PlaySound(id string)            { a.sounds = append(a.sounds, id) }
func (a *recordingAudio) PlayMusic(id string, loop bool) { a.music = append(a.music, id) }
func (a *recordingAudio) PauseMusic()                    { a.pauseCount++ }
func (a *recordingAudio) ResumeMusic()                   { a.resumeCount++ }
func (a *recordingAudio) StopMusic()                     { a.stopCount++ }
func (a *recordingAudio) HasClip(id string) bool         { return !a.missing[id] }

func (a *recordingAudio) count(id string) int {
	n := 0
	for _, s := range a.sounds {
		if s == id {
			n++
		}
	}
	return n
}

// recordingHUD 记录调用的界面替身
type recordingHUD struct {
	level      int
	ringText   string
	timebar    float64
	timebarSet int
}

func (h *recordingHUD) SetLevelText(level int) { h.level = level }
func (h *recordingHUD) SetRingCountText(current, max int) {
	h.ringText = fmt.Sprintf("%d / %d", current, max)
}
func (h *recordingHUD) SetTimebarFraction(f float64) {
	h.timebar = f
	h.timebarSet++
}

// testLevel 测试关卡参数
type testLevel struct {
	rings, painted, balls [2]int
	degrees, speed, time  [2]float64
	colors                []string
}

// defaultTestLevel 不旋转（0 度）、不预涂色的单环关卡
func defaultTestLevel() testLevel {
	return testLevel{
		rings:   [2]int{1, 1},
		painted: [2]int{0, 0},
		balls:   [2]int{3, 3},
		degrees: [2]float64{0, 0},
		speed:   [2]float64{90, 90},
		time:    [2]float64{10, 10},
		colors:  []string{"#ff0000", "#00ff00", "#0000ff"},
	}
}

// yaml 生成覆盖 [1, 100) 的关卡表
func (l testLevel) yaml() string {
	colors := ""
	for _, c := range l.colors {
		colors += fmt.Sprintf("      - %q\n", c)
	}
	return fmt.Sprintf(`levels:
  - minLevel: 1
    maxLevel: 100
    minRingNumber: %d
    maxRingNumber: %d
    minPaintedPiece: %d
    maxPaintedPiece: %d
    minPaintedBall: %d
    maxPaintedBall: %d
    minRotatingDegrees: %v
    maxRotatingDegrees: %v
    minRotatingSpeed: %v
    maxRotatingSpeed: %v
    minTimeToPaintOneRing: %v
    maxTimeToPaintOneRing: %v
    rotatingTypes: [linear]
    ringColors:
%s`,
		l.rings[0], l.rings[1], l.painted[0], l.painted[1], l.balls[0], l.balls[1],
		l.degrees[0], l.degrees[1], l.speed[0], l.speed[1], l.time[0], l.time[1], colors)
}

// testWorld 无窗口的一局游戏，按固定顺序推进各系统
type testWorld struct {
	em         *ecs.EntityManager
	tweens     *TweenSystem
	timers     *TimerSystem
	lifetime   *LifetimeSystem
	controller *GameController
	session    *game.Session
	audio      *recordingAudio
	hud        *recordingHUD
}

func newTestWorld(t *testing.T, level testLevel, seed uint64) *testWorld {
	t.Helper()
	table, err := config.ParseLevelTable([]byte(level.yaml()), "test")
	if err != nil {
		t.Fatalf("解析测试关卡失败: %v", err)
	}

	w := &testWorld{
		em:      ecs.NewEntityManager(),
		session: game.NewSession(nil),
		audio:   &recordingAudio{},
		hud:     &recordingHUD{},
	}
	w.tweens = NewTweenSystem(w.em)
	w.timers = NewTimerSystem(w.em)
	w.lifetime = NewLifetimeSystem(w.em)

	w.controller, err = NewGameController(w.em, ControllerConfig{
		Session: w.session,
		Levels:  table,
		Audio:   w.audio,
		HUD:     w.hud,
		Rand:    utils.NewRand(seed),
	})
	if err != nil {
		t.Fatalf("创建控制器失败: %v", err)
	}
	if err := w.controller.Start(); err != nil {
		t.Fatalf("Start 失败: %v", err)
	}
	return w
}

// step 推进一帧
func (w *testWorld) step(dt float64) {
	w.timers.Update(dt)
	w.tweens.Update(dt)
	w.controller.Update(dt)
	w.lifetime.Update(dt)
	w.em.RemoveMarkedEntities()
}

// run 以固定帧推进 seconds 秒
func (w *testWorld) run(seconds float64) {
	frames := int(seconds/testFrame + 0.5)
	for i := 0; i < frames; i++ {
		w.step(testFrame)
	}
}

// fire 点击一次并断言已发射
func (w *testWorld) fire(t *testing.T) {
	t.Helper()
	if !w.controller.HandlePrimaryInput(false) {
		t.Fatalf("发射失败: state=%v touch=%v queue=%d",
			w.controller.GameState(), w.controller.TouchEnabled(), len(w.controller.QueuedBalls()))
	}
}

// runSystems 推进补间与计时器（不含控制器）
func runSystems(em *ecs.EntityManager, seconds float64, systems ...interface{ Update(float64) }) {
	frames := int(seconds/testFrame + 0.5)
	for i := 0; i < frames; i++ {
		for _, s := range systems {
			s.Update(testFrame)
		}
		em.RemoveMarkedEntities()
	}
}
