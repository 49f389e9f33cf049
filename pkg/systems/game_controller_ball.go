package systems

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/game"
	"github.com/gonewx/paintrings/pkg/logger"
	"github.com/gonewx/paintrings/pkg/utils"
)

const (
	// shootRayDistance 发射射线长度
	shootRayDistance = 100.0
	// resolveRayDistance 结算射线长度
	resolveRayDistance = 1.0
	// explosionBackOffset 爆裂粒子相对命中点的后移距离
	explosionBackOffset = 0.05
)

// HandlePrimaryInput 处理一次点击
//
// 会话超时、非 Playing、输入门关闭、点在界面元素上或队列为空时忽略。
// 否则发射队首彩球并关闭输入门。返回是否发射。
func (c *GameController) HandlePrimaryInput(overUI bool) bool {
	if c.session.TimedOut {
		return false
	}
	if !c.state.Is(game.StatePlaying) || c.disableTouch || overUI {
		return false
	}
	if len(c.queue) == 0 {
		return false
	}

	c.audio.PlaySound(game.SoundThrowBall)
	c.disableTouch = true

	ball := c.queue[0]
	c.queue = c.queue[1:]
	c.isOutOfPaintedBall = len(c.queue) == 0

	c.shoot(ball)
	return true
}

// shoot 沿 +Z 发射彩球
// 射线未命中时彩球永久停住（记录为 stuck）
func (c *GameController) shoot(ball ecs.EntityID) {
	pb, ok := ecs.GetComponent[*components.PaintedBallComponent](c.entityManager, ball)
	if !ok {
		return
	}
	tr, ok := ecs.GetComponent[*components.TransformComponent](c.entityManager, ball)
	if !ok {
		return
	}

	hit, found := c.raycaster.Raycast(tr.Position, utils.Vec3Forward, shootRayDistance)
	if !found {
		c.markStuck(ball, pb, "shoot ray missed")
		return
	}

	speed := c.gameplay.PaintedBallShootingSpeed
	pb.State = components.BallFlying
	pb.Speed = speed
	pb.HitPoint = hit.Point

	StartTween(c.entityManager, components.TweenComponent{
		Target: ball,
		Tracks: []components.TweenTrack{{
			Property: components.TweenPosition,
			From:     tr.Position,
			To:       hit.Point,
		}},
		Duration: tr.Position.Distance(hit.Point) / speed,
		Ease:     utils.EaseTypeLinear,
		Hold: func() bool {
			return c.state.Is(game.StatePause)
		},
		OnComplete: func() {
			c.resolveBall(ball)
		},
	})
}

// resolveBall 彩球到达命中点后的结算
func (c *GameController) resolveBall(ball ecs.EntityID) {
	pb, ok := ecs.GetComponent[*components.PaintedBallComponent](c.entityManager, ball)
	if !ok {
		return
	}
	tr, ok := ecs.GetComponent[*components.TransformComponent](c.entityManager, ball)
	if !ok {
		return
	}

	c.audio.PlaySound(game.SoundPaintRingPiece)

	origin := tr.Position.Add(utils.Vec3Back.Scale(tr.Scale.Z / 2))
	hit, found := c.raycaster.Raycast(origin, utils.Vec3Forward, resolveRayDistance)
	if !found {
		c.markStuck(ball, pb, "resolve ray missed")
		return
	}
	pb.State = components.BallResolved

	if hit.Tag == components.PieceTagFinish {
		c.HandleHitPaintedRingPiece()
	} else {
		if !c.isOutOfPaintedBall {
			c.rings.Paint(hit.Piece)
		} else {
			c.rings.PaintAll(hit.Ring)
			c.effects.CreateFadingRing(WorldPosition(c.entityManager, hit.Ring), c.ringColor)
		}
		c.HandleHitNormalRingPiece()
	}

	c.rotator.Shake()
	c.effects.PlayExplosion(tr.Position.Add(utils.Vec3Back.Scale(explosionBackOffset)), c.ballColor(ball))
	c.entityManager.DestroyEntity(ball)
}

func (c *GameController) markStuck(ball ecs.EntityID, pb *components.PaintedBallComponent, reason string) {
	pb.State = components.BallStuck
	c.stuckBalls = append(c.stuckBalls, ball)
	logger.Warn("[GameController] Painted ball %d is stuck: %s", ball, reason)
}

func (c *GameController) ballColor(ball ecs.EntityID) colorful.Color {
	if r, ok := ecs.GetComponent[*components.RenderComponent](c.entityManager, ball); ok {
		return r.Color
	}
	return c.ringColor
}
