package systems

import (
	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/entities"
	"github.com/gonewx/paintrings/pkg/game"
	"github.com/gonewx/paintrings/pkg/logger"
	"github.com/gonewx/paintrings/pkg/utils"
)

// pickRingColor 随机选择环颜色，颜色多于一种时不与上一个环重复
func (c *GameController) pickRingColor() {
	colors := c.levelData.Colors()
	index := utils.RangeInt(c.rng, 0, len(colors))
	for len(colors) > 1 && index == c.previousColorIndex {
		index = utils.RangeInt(c.rng, 0, len(colors))
	}
	c.previousColorIndex = index
	c.ringColor = colors[index]
	c.rings.SetPaintColor(c.ringColor)
}

// createNextRing 在转台上方生成下一个环并让它落下
// 下落期间关闭输入，落下后（再等一帧）打开
func (c *GameController) createNextRing() {
	if prev, ok := ecs.GetComponent[*components.RingComponent](c.entityManager, c.activeRing); ok {
		prev.Retired = true
	}

	base := utils.Vec3Zero
	if tr, ok := ecs.GetComponent[*components.TransformComponent](c.entityManager, c.rotator.Rotator()); ok {
		base = tr.Position
	}
	pos := base.Add(utils.Vec3Up.Scale(c.gameplay.RingYPosition))

	ringID := entities.NewRing(c.entityManager, pos, c.gameplay.PiecesPerRing)
	if ring, ok := ecs.GetComponent[*components.RingComponent](c.entityManager, ringID); ok {
		ring.ColorIndex = c.previousColorIndex
	}
	c.activeRing = ringID

	painted := utils.RangeInt(c.rng, c.levelData.MinPaintedPiece, c.levelData.MaxPaintedPiece)
	c.rings.Spawn(ringID, c.gameplay.RingMoveDownTime, painted)
	logger.Debug("[GameController] Ring %d/%d spawned with %d painted pieces", c.ringCount, c.ringNumber, painted)

	c.disableTouch = true
	c.waitAndEnableTouch(c.gameplay.RingMoveDownTime)
}

// waitAndEnableTouch delay 秒后再等一帧打开输入
func (c *GameController) waitAndEnableTouch(delay float64) {
	StartTimer(c.entityManager, "enable_touch", delay, 1, func() {
		c.disableTouch = false
	})
}

// createPaintedBalls 生成本环的彩球，从发射位向后排队
func (c *GameController) createPaintedBalls() {
	count := utils.RangeInt(c.rng, c.levelData.MinPaintedBall, c.levelData.MaxPaintedBall)
	pos := utils.Vec3{Z: c.gameplay.PaintedBallZPosition}
	for i := 0; i < count; i++ {
		id := entities.NewPaintedBall(c.entityManager, pos, c.ringColor, c.gameplay.PaintedBallScale)
		c.queue = append(c.queue, id)
		pos = pos.Add(utils.Vec3Back.Scale(c.gameplay.PaintedBallSpace))
	}
}

// waitAndRunCountdown 等环落下后启动新的涂色倒计时
// 尚未触发的旧启动计时器会被丢弃
func (c *GameController) waitAndRunCountdown() {
	if c.countdownTimer != ecs.NoEntity {
		c.entityManager.DestroyEntity(c.countdownTimer)
	}
	c.countdownTimer = StartTimer(c.entityManager, "start_countdown", c.gameplay.RingMoveDownTime, 0, func() {
		c.countdownTimer = ecs.NoEntity
		duration := utils.RangeFloat(c.rng, c.levelData.MinTimeToPaintOneRing, c.levelData.MaxTimeToPaintOneRing)
		c.countdown.Start(duration, c.hud.SetTimebarFraction, c.onCountdownExpired)
		logger.Debug("[GameController] Countdown started: %.2fs", duration)
	})
}

func (c *GameController) onCountdownExpired() {
	logger.Info("[GameController] Time to paint ring %d ran out", c.ringCount)
	c.GameOver()
}

// HandleHitNormalRingPiece 彩球命中未涂色的环段
//
//  1. 队列非空：下一帧所有排队彩球前移一格，随后恢复输入
//  2. 队列已空且已是最后一个环：过关
//  3. 否则进入下一个环：换色、生成环与彩球、重启倒计时
func (c *GameController) HandleHitNormalRingPiece() {
	if c.isTerminal() {
		return
	}

	if len(c.queue) > 0 {
		StartTimer(c.entityManager, "advance_queue", 0, 0, c.moveForwardAllPaintedBalls)
		return
	}

	if c.ringCount == c.ringNumber {
		c.PassLevel()
		return
	}

	c.audio.PlaySound(game.SoundFinishedRing)
	c.ringCount++
	c.pickRingColor()

	c.createNextRing()
	c.createPaintedBalls()
	c.hud.SetRingCountText(c.ringCount, c.ringNumber)
	c.countdown.Stop()
	c.waitAndRunCountdown()
}

// HandleHitPaintedRingPiece 彩球命中已涂色的环段
func (c *GameController) HandleHitPaintedRingPiece() {
	c.GameOver()
}

// moveForwardAllPaintedBalls 排队彩球前移一格并在前移结束后恢复输入
func (c *GameController) moveForwardAllPaintedBalls() {
	step := utils.Vec3Forward.Scale(c.gameplay.PaintedBallSpace)
	for _, id := range c.queue {
		tr, ok := ecs.GetComponent[*components.TransformComponent](c.entityManager, id)
		if !ok {
			continue
		}
		MoveTo(c.entityManager, id, tr.Position.Add(step), c.gameplay.TouchDelayTime, utils.EaseTypeLinear, nil)
	}
	c.waitAndEnableTouch(c.gameplay.TouchDelayTime)
}

// sweepBalls 失败后引爆并清除所有彩球
func (c *GameController) sweepBalls() {
	for _, id := range ecs.GetEntitiesWith1[*components.PaintedBallComponent](c.entityManager) {
		c.effects.PlayExplosion(WorldPosition(c.entityManager, id), c.ballColor(id))
		c.entityManager.DestroyEntity(id)
	}
	c.queue = c.queue[:0]
}
