package main

import (
	"fmt"
	"io"

	"github.com/gonewx/paintrings/pkg/config"
	"github.com/gonewx/paintrings/pkg/game"
	"github.com/gonewx/paintrings/pkg/logger"
	"github.com/gonewx/paintrings/pkg/scenes"
	"github.com/gonewx/paintrings/pkg/session"
	"github.com/gonewx/paintrings/pkg/utils"
)

// Options 模拟参数
type Options struct {
	Seed         uint64
	TPS          int
	FireInterval float64 // 自动发射间隔（秒）
	MaxSeconds   float64 // 最长模拟时间（秒）
	SessionTime  float64 // 会话时长（秒）
	RetryOnFail  bool    // 失败后自动重开
}

// Report 模拟结果
type Report struct {
	Ticks         int
	Elapsed       float64
	Shots         int
	LevelsCleared int
	Failures      int
	StuckBalls    int
	TimedOut      bool
	Transitions   []string
}

// Simulator 无窗口地驱动完整会话：会话管理器、场景管理器与场景重载
// 每 FireInterval 秒发射一次，界面出现时自动点击下一关/重开
type Simulator struct {
	opts   Options
	out    io.Writer
	levels *config.LevelTable

	sceneManager *game.SceneManager
	session      *game.Session
	reward       *session.RewardGameManager
	audio        *game.AudioManager

	report    Report
	sinceFire float64
}

// NewSimulator 创建模拟器并显示开始界面
func NewSimulator(levels *config.LevelTable, opts Options, out io.Writer) (*Simulator, error) {
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	if opts.FireInterval <= 0 {
		opts.FireInterval = 0.5
	}
	s := &Simulator{
		opts:         opts,
		out:          out,
		levels:       levels,
		sceneManager: game.NewSceneManager(),
		session:      game.NewSession(levels.SavedLevels),
		audio:        game.NewAudioManager(nil, nil),
	}

	cfg := session.DefaultConfig()
	if opts.SessionTime > 0 {
		cfg.TimeLimit = opts.SessionTime
	}
	s.reward = session.NewRewardGameManager(cfg, s.audio, nil)
	s.reward.Subscribe(session.EventGameOver, func(session.Event) {
		s.report.TimedOut = true
		s.logf("session time is up")
	})

	rng := utils.NewRand(opts.Seed)
	s.sceneManager.SetSceneFactory(func(name string) game.Scene {
		scene, err := scenes.NewGameScene(scenes.GameSceneDeps{
			Name:    name,
			Levels:  levels,
			Session: s.session,
			Reward:  s.reward,
			Audio:   s.audio,
			Loader:  s.sceneManager,
			Rand:    rng,

			Headless: true,
		})
		if err != nil {
			logger.Error("[Simulate] %v", err)
			return nil
		}
		s.watch(scene)
		return scene
	})
	s.sceneManager.LoadScene(scenes.GameSceneName, 0)
	s.sceneManager.Update(0)
	if s.currentScene() == nil {
		return nil, fmt.Errorf("failed to build the first scene")
	}
	return s, nil
}

// watch 记录玩法状态切换
func (s *Simulator) watch(scene *scenes.GameScene) {
	scene.Controller().State().Subscribe(func(state game.GameState) {
		s.logf("level %d: %s", s.session.CurrentLevel, state)
		switch state {
		case game.StatePassLevel:
			s.report.LevelsCleared++
		case game.StateGameOver:
			s.report.Failures++
		}
	})
}

func (s *Simulator) currentScene() *scenes.GameScene {
	scene, _ := s.sceneManager.GetCurrentScene().(*scenes.GameScene)
	return scene
}

func (s *Simulator) logf(format string, args ...any) {
	line := fmt.Sprintf("[%7.2fs] ", s.report.Elapsed) + fmt.Sprintf(format, args...)
	s.report.Transitions = append(s.report.Transitions, line)
	if s.out != nil {
		fmt.Fprintln(s.out, line)
	}
}

// Run 运行到会话结束、失败（未开启重开）或达到最长模拟时间
func (s *Simulator) Run() Report {
	dt := 1.0 / float64(s.opts.TPS)
	s.reward.OnPlay()

	for s.report.Elapsed < s.opts.MaxSeconds || s.opts.MaxSeconds <= 0 {
		if done := s.handleCanvas(); done {
			break
		}
		s.autoFire(dt)

		s.reward.Update(dt)
		s.audio.Update(dt)
		s.sceneManager.Update(dt * s.reward.TimeScale())

		s.report.Ticks++
		s.report.Elapsed += dt
	}

	if scene := s.currentScene(); scene != nil {
		s.report.StuckBalls = len(scene.Controller().StuckBalls())
	}
	return s.report
}

// handleCanvas 模拟玩家点击会话界面按钮，返回是否结束模拟
func (s *Simulator) handleCanvas() bool {
	switch s.reward.Canvas() {
	case session.CanvasLevelCleared:
		s.reward.OnPlayNextLevel()
	case session.CanvasRestart:
		if !s.opts.RetryOnFail {
			return true
		}
		s.reward.OnRestart()
	case session.CanvasGameOver:
		s.reward.OnFinish()
		return true
	}
	return false
}

func (s *Simulator) autoFire(dt float64) {
	s.sinceFire += dt
	if s.sinceFire < s.opts.FireInterval {
		return
	}
	scene := s.currentScene()
	if scene == nil {
		return
	}
	if scene.Controller().HandlePrimaryInput(scene.Overlay().Blocking()) {
		s.report.Shots++
		s.sinceFire = 0
	}
}
