package systems

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/paintrings/pkg/config"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/entities"
	"github.com/gonewx/paintrings/pkg/game"
	"github.com/gonewx/paintrings/pkg/logger"
	"github.com/gonewx/paintrings/pkg/utils"
)

// ControllerConfig GameController 的依赖
type ControllerConfig struct {
	Session *game.Session
	Levels  *config.LevelTable
	Audio   game.AudioPlayer
	HUD     game.HUD
	Rand    *rand.Rand

	// Renderer 为 nil 时使用 ComponentRenderer
	Renderer Renderer
	// Raycaster 为 nil 时使用 RingRaycaster
	Raycaster Raycaster
}

// GameController 一局游戏的总控
//
// 负责关卡数据选择、环与彩球的生成、涂色倒计时、输入门控以及胜负/暂停切换。
// 状态切换通过 StateMachine 同步广播给所有监听器。
//
// 所有方法都在游戏主循环中调用，不需要加锁。
type GameController struct {
	entityManager *ecs.EntityManager
	session       *game.Session
	levels        *config.LevelTable
	gameplay      config.GameplayConfig
	audio         game.AudioPlayer
	hud           game.HUD
	rng           *rand.Rand

	state     *game.StateMachine
	rotator   *RotatorSystem
	rings     *RingSystem
	effects   *EffectSystem
	countdown *CountdownSystem
	raycaster Raycaster

	levelData          *config.LevelData
	ringNumber         int
	ringCount          int
	previousColorIndex int
	ringColor          colorful.Color

	isOutOfPaintedBall bool
	disableTouch       bool
	queue              []ecs.EntityID
	activeRing         ecs.EntityID
	stuckBalls         []ecs.EntityID
	countdownTimer     ecs.EntityID
}

// NewGameController 创建控制器并在实体管理器中放置转台
// 返回的控制器处于 Prepare 状态，需调用 Start 完成准备
func NewGameController(em *ecs.EntityManager, cfg ControllerConfig) (*GameController, error) {
	if cfg.Session == nil {
		return nil, errors.New("game controller requires a session")
	}
	if cfg.Levels == nil {
		return nil, errors.New("game controller requires a level table")
	}
	if cfg.Audio == nil || cfg.HUD == nil {
		return nil, errors.New("game controller requires audio and HUD collaborators")
	}

	c := &GameController{
		entityManager:      em,
		session:            cfg.Session,
		levels:             cfg.Levels,
		gameplay:           cfg.Levels.Gameplay,
		audio:              cfg.Audio,
		hud:                cfg.HUD,
		rng:                cfg.Rand,
		state:              game.NewStateMachine(game.StatePrepare),
		ringCount:          1,
		previousColorIndex: -1,
	}
	if c.rng == nil {
		c.rng = utils.NewRand(rand.Uint64())
	}

	renderer := cfg.Renderer
	if renderer == nil {
		renderer = NewComponentRenderer(em)
	}
	c.raycaster = cfg.Raycaster
	if c.raycaster == nil {
		c.raycaster = NewRingRaycaster(em, c.gameplay.RingRadius, c.gameplay.RingPieceHeight)
	}

	rotatorID := entities.NewRotator(em, utils.Vec3Zero)
	c.rotator = NewRotatorSystem(em, rotatorID, c.rng, c.gameplay.RingPieceHeight, c.isPlaying)
	c.effects = NewEffectSystem(em, c.gameplay)
	c.rings = NewRingSystem(em, renderer, c.rng, c.rotator, c.effects, c.gameplay.RingPieceHeight)
	c.countdown = NewCountdownSystem(em, c.isPlaying)

	return c, nil
}

func (c *GameController) isPlaying() bool {
	return c.state.Is(game.StatePlaying)
}

func (c *GameController) isTerminal() bool {
	return c.state.Is(game.StateGameOver) || c.state.Is(game.StatePassLevel)
}

// Start 准备阶段
//
// 首次进入（非重开）时从第 1 关开始；testingLevel 非 0 时强制使用该关卡。
// 选择关卡数据、本关环数与环颜色并刷新 HUD。重开时直接进入 Playing。
func (c *GameController) Start() error {
	if !c.session.IsRestart {
		c.session.CurrentLevel = 1
	}
	if c.gameplay.TestingLevel != 0 {
		c.session.CurrentLevel = c.gameplay.TestingLevel
	}

	level, err := c.levels.FindLevel(c.session.CurrentLevel)
	if err != nil {
		return fmt.Errorf("failed to prepare level %d: %w", c.session.CurrentLevel, err)
	}
	c.levelData = level
	c.rotator.SetLevel(level)

	c.ringNumber = utils.RangeInt(c.rng, level.MinRingNumber, level.MaxRingNumber)
	c.pickRingColor()
	c.isOutOfPaintedBall = false

	c.hud.SetLevelText(c.session.CurrentLevel)
	c.hud.SetRingCountText(c.ringCount, c.ringNumber)

	logger.Info("[GameController] Prepared level %d: %d rings", c.session.CurrentLevel, c.ringNumber)

	if c.session.IsRestart {
		c.PlayingGame()
	}
	return nil
}

// PlayingGame 正式开始：生成第一个环、彩球与倒计时
// 只在 Prepare 状态下有效
func (c *GameController) PlayingGame() {
	if !c.state.Is(game.StatePrepare) || c.levelData == nil {
		logger.Warn("[GameController] PlayingGame ignored in state %s", c.state.Current())
		return
	}
	c.state.Transition(game.StatePlaying)

	StartTimer(c.entityManager, "play_music", c.gameplay.MusicDelay, 0, func() {
		if c.audio.HasClip(game.SoundBackground) {
			c.audio.PlayMusic(game.SoundBackground, true)
		}
	})

	c.createNextRing()
	c.createPaintedBalls()
	c.waitAndRunCountdown()
}

// GameOver 本轮失败（终态，重复调用忽略）
func (c *GameController) GameOver() {
	if c.isTerminal() {
		return
	}
	c.countdown.Stop()
	c.state.Transition(game.StateGameOver)
	c.session.IsRestart = true
	c.audio.PlaySound(game.SoundGameOver)
	logger.Info("[GameController] Game over at level %d", c.session.CurrentLevel)
}

// PassLevel 过关（终态，重复调用忽略）
func (c *GameController) PassLevel() {
	if c.isTerminal() {
		return
	}
	c.countdown.Stop()
	c.state.Transition(game.StatePassLevel)
	c.session.IsRestart = true
	c.audio.PlaySound(game.SoundPassLevel)
	logger.Info("[GameController] Level %d passed", c.session.CurrentLevel)
}

// PauseGame 暂停（只在 Playing 时有效），延迟后暂停背景音乐
func (c *GameController) PauseGame() {
	if !c.state.Is(game.StatePlaying) {
		return
	}
	c.state.Transition(game.StatePause)
	StartTimer(c.entityManager, "pause_music", c.gameplay.MusicDelay, 0, func() {
		if c.audio.HasClip(game.SoundBackground) {
			c.audio.PauseMusic()
		}
	})
}

// UnPauseGame 取消暂停（只在 Pause 时有效），延迟后恢复背景音乐
func (c *GameController) UnPauseGame() {
	if !c.state.Is(game.StatePause) {
		return
	}
	c.state.Transition(game.StatePlaying)
	StartTimer(c.entityManager, "resume_music", c.gameplay.MusicDelay, 0, func() {
		if c.audio.HasClip(game.SoundBackground) {
			c.audio.ResumeMusic()
		}
	})
}

// IncreaseCurrentLevel 进入下一关
func (c *GameController) IncreaseCurrentLevel() {
	c.session.CurrentLevel++
}

// DecreaseCurrentLevel 回到上一关（当前关卡大于 2 时有效）
func (c *GameController) DecreaseCurrentLevel() {
	if c.session.CurrentLevel > 2 {
		c.session.CurrentLevel--
	}
}

// OnSessionFinish 会话结束，清理跨场景状态
func (c *GameController) OnSessionFinish() {
	c.session.Reset()
}

// Update 每帧推进：预涂色、倒计时、失败后清场
func (c *GameController) Update(dt float64) {
	c.rings.Update(dt)
	c.countdown.Update(dt)

	if c.state.Is(game.StateGameOver) && !c.session.TimedOut {
		c.sweepBalls()
	}
}

// State 状态机（用于订阅状态变更）
func (c *GameController) State() *game.StateMachine { return c.state }

// GameState 当前状态
func (c *GameController) GameState() game.GameState { return c.state.Current() }

// CurrentLevelData 当前关卡配置
func (c *GameController) CurrentLevelData() *config.LevelData { return c.levelData }

// RingNumber 本关需要完成的环数
func (c *GameController) RingNumber() int { return c.ringNumber }

// RingCount 当前是第几个环（从 1 开始）
func (c *GameController) RingCount() int { return c.ringCount }

// RingColor 当前环颜色
func (c *GameController) RingColor() colorful.Color { return c.ringColor }

// ColorIndex 当前环颜色在关卡配色表中的下标
func (c *GameController) ColorIndex() int { return c.previousColorIndex }

// ActiveRing 当前目标环
func (c *GameController) ActiveRing() ecs.EntityID { return c.activeRing }

// IsOutOfPaintedBall 发射队列是否已空
func (c *GameController) IsOutOfPaintedBall() bool { return c.isOutOfPaintedBall }

// TouchEnabled 输入门是否打开
func (c *GameController) TouchEnabled() bool { return !c.disableTouch }

// QueuedBalls 发射队列（队首在前）
func (c *GameController) QueuedBalls() []ecs.EntityID {
	out := make([]ecs.EntityID, len(c.queue))
	copy(out, c.queue)
	return out
}

// StuckBalls 发射时射线未命中而停住的彩球
func (c *GameController) StuckBalls() []ecs.EntityID {
	out := make([]ecs.EntityID, len(c.stuckBalls))
	copy(out, c.stuckBalls)
	return out
}

// Rotator 转台系统
func (c *GameController) Rotator() *RotatorSystem { return c.rotator }

// Rings 环系统
func (c *GameController) Rings() *RingSystem { return c.rings }

// Effects 效果系统
func (c *GameController) Effects() *EffectSystem { return c.effects }

// Countdown 倒计时系统
func (c *GameController) Countdown() *CountdownSystem { return c.countdown }
