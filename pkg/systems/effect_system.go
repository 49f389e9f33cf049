package systems

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/config"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/entities"
	"github.com/gonewx/paintrings/pkg/utils"
)

// EffectSystem 扩散圆、扩散环与爆裂粒子
//
// 三类效果都来自只增不减的对象池；每个效果在结束时自行失活，回到池中等待复用。
type EffectSystem struct {
	entityManager *ecs.EntityManager
	cfg           config.GameplayConfig

	circles    *entities.Pool
	rings      *entities.Pool
	explosions *entities.Pool
}

// NewEffectSystem 创建效果系统
func NewEffectSystem(em *ecs.EntityManager, cfg config.GameplayConfig) *EffectSystem {
	return &EffectSystem{
		entityManager: em,
		cfg:           cfg,
		circles:       entities.NewPool(em, entities.PoolFadingCircle, entities.NewFadingCircle),
		rings:         entities.NewPool(em, entities.PoolFadingRing, entities.NewFadingRing),
		explosions:    entities.NewPool(em, entities.PoolExplosion, entities.NewExplosion),
	}
}

// CirclePool 扩散圆对象池
func (s *EffectSystem) CirclePool() *entities.Pool { return s.circles }

// RingPool 扩散环对象池
func (s *EffectSystem) RingPool() *entities.Pool { return s.rings }

// ExplosionPool 爆裂粒子对象池
func (s *EffectSystem) ExplosionPool() *entities.Pool { return s.explosions }

// CreateFadingCircle 在 pos（世界坐标）生成扩散圆并挂到 parent 下
func (s *EffectSystem) CreateFadingCircle(pos utils.Vec3, parent ecs.EntityID) ecs.EntityID {
	id := s.circles.Acquire()
	fading, _ := ecs.GetComponent[*components.FadingEffectComponent](s.entityManager, id)

	s.place(id, pos)
	SetParent(s.entityManager, id, parent)
	s.activate(id, fading.OriginalColor, fading.OriginalAlpha)
	s.fade(id, s.cfg.FadingCircleScale, s.cfg.CircleFadingTime)
	return id
}

// CreateFadingRing 在 pos（世界坐标）生成颜色为 c 的扩散环
func (s *EffectSystem) CreateFadingRing(pos utils.Vec3, c colorful.Color) ecs.EntityID {
	id := s.rings.Acquire()
	fading, _ := ecs.GetComponent[*components.FadingEffectComponent](s.entityManager, id)

	s.place(id, pos)
	s.activate(id, c, fading.OriginalAlpha)
	s.fade(id, s.cfg.FadingRingScale, s.cfg.RingFadingTime)
	return id
}

// PlayExplosion 在 pos 播放颜色为 c 的爆裂粒子
// 寿命到期后由 LifetimeSystem 使其失活
func (s *EffectSystem) PlayExplosion(pos utils.Vec3, c colorful.Color) ecs.EntityID {
	id := s.explosions.Acquire()
	s.place(id, pos)
	s.activate(id, c, 1)
	if lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id); ok {
		lifetime.MaxLifetime = s.cfg.ExplosionLifetime
		lifetime.CurrentLifetime = 0
		lifetime.IsExpired = false
	}
	return id
}

// place 把池成员放到世界坐标 pos（挂回根节点）
func (s *EffectSystem) place(id ecs.EntityID, pos utils.Vec3) {
	if tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id); ok {
		tr.Parent = ecs.NoEntity
		tr.Position = pos
		tr.Scale = utils.Vec3One
	}
}

func (s *EffectSystem) activate(id ecs.EntityID, c colorful.Color, alpha float64) {
	if pc, ok := ecs.GetComponent[*components.PoolableComponent](s.entityManager, id); ok {
		pc.Active = true
	}
	if r, ok := ecs.GetComponent[*components.RenderComponent](s.entityManager, id); ok {
		r.Color = c
		r.Alpha = alpha
		r.Visible = true
	}
}

// fade 放大到 scale 并淡出，结束后恢复原状、脱离父节点并失活
func (s *EffectSystem) fade(id ecs.EntityID, scale, duration float64) {
	alpha := 1.0
	if r, ok := ecs.GetComponent[*components.RenderComponent](s.entityManager, id); ok {
		alpha = r.Alpha
	}
	StartTween(s.entityManager, components.TweenComponent{
		Target: id,
		Tracks: []components.TweenTrack{
			{Property: components.TweenScale, From: utils.Vec3One, To: utils.Vec3One.Scale(scale)},
			{Property: components.TweenAlpha, From: utils.Vec3{X: alpha}, To: utils.Vec3Zero},
		},
		Duration: duration,
		Ease:     utils.EaseTypeLinear,
		OnComplete: func() {
			s.release(id)
		},
	})
}

// release 恢复池成员原状并失活
func (s *EffectSystem) release(id ecs.EntityID) {
	SetParent(s.entityManager, id, ecs.NoEntity)
	if tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id); ok {
		tr.Scale = utils.Vec3One
	}
	if r, ok := ecs.GetComponent[*components.RenderComponent](s.entityManager, id); ok {
		if fading, ok := ecs.GetComponent[*components.FadingEffectComponent](s.entityManager, id); ok {
			r.Color = fading.OriginalColor
			r.Alpha = fading.OriginalAlpha
		}
		r.Visible = false
	}
	if pc, ok := ecs.GetComponent[*components.PoolableComponent](s.entityManager, id); ok {
		pc.Active = false
	}
}
