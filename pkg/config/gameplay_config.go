package config

import "fmt"

// GameplayConfig 玩法调参（对应关卡表中的 gameplay 段）
type GameplayConfig struct {
	// TestingLevel 非 0 时强制进入该关卡（调试用）
	TestingLevel int `yaml:"testingLevel"`

	RingMoveDownTime float64 `yaml:"ringMoveDownTime"` // 新环下落时长（秒）
	RingYPosition    float64 `yaml:"ringYPosition"`    // 新环生成高度（相对转台）
	TouchDelayTime   float64 `yaml:"touchDelayTime"`   // 发射后恢复触摸的延迟（秒）

	PaintedBallShootingSpeed float64 `yaml:"paintedBallShootingSpeed"`
	PaintedBallZPosition     float64 `yaml:"paintedBallZPosition"` // 队首彩球的 Z 坐标
	PaintedBallSpace         float64 `yaml:"paintedBallSpace"`     // 队列中相邻彩球间距
	PaintedBallScale         float64 `yaml:"paintedBallScale"`     // 彩球直径

	FadingCircleScale float64 `yaml:"fadingCircleScale"`
	FadingRingScale   float64 `yaml:"fadingRingScale"`
	CircleFadingTime  float64 `yaml:"circleFadingTime"`
	RingFadingTime    float64 `yaml:"ringFadingTime"`

	PiecesPerRing   int     `yaml:"piecesPerRing"`   // 每个环的环段数
	RingRadius      float64 `yaml:"ringRadius"`      // 环外半径
	RingPieceHeight float64 `yaml:"ringPieceHeight"` // 环段高度（转台每次下沉的距离）

	ExplosionLifetime float64 `yaml:"explosionLifetime"` // 爆裂粒子寿命（秒）
	MusicDelay        float64 `yaml:"musicDelay"`        // 播放/暂停/恢复音乐前的延迟（秒）
	ResultUIDelay     float64 `yaml:"resultUIDelay"`     // 过关/失败后弹出结算界面的延迟（秒）
	SceneReloadDelay  float64 `yaml:"sceneReloadDelay"`  // 重开/下一关时的场景加载延迟（秒）
}

// DefaultGameplayConfig 默认玩法参数
func DefaultGameplayConfig() GameplayConfig {
	return GameplayConfig{
		RingMoveDownTime:         0.25,
		RingYPosition:            12,
		TouchDelayTime:           0.1,
		PaintedBallShootingSpeed: 60,
		PaintedBallZPosition:     -11,
		PaintedBallSpace:         1,
		PaintedBallScale:         0.5,
		FadingCircleScale:        3,
		FadingRingScale:          15,
		CircleFadingTime:         0.5,
		RingFadingTime:           1,
		PiecesPerRing:            16,
		RingRadius:               3,
		RingPieceHeight:          0.5,
		ExplosionLifetime:        0.5,
		MusicDelay:               0.5,
		ResultUIDelay:            0.5,
		SceneReloadDelay:         0.1,
	}
}

// applyGameplayDefaults 为未配置（零值）的字段填充默认值
func applyGameplayDefaults(g *GameplayConfig) {
	d := DefaultGameplayConfig()
	setDefault := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	setDefault(&g.RingMoveDownTime, d.RingMoveDownTime)
	setDefault(&g.RingYPosition, d.RingYPosition)
	setDefault(&g.TouchDelayTime, d.TouchDelayTime)
	setDefault(&g.PaintedBallShootingSpeed, d.PaintedBallShootingSpeed)
	setDefault(&g.PaintedBallZPosition, d.PaintedBallZPosition)
	setDefault(&g.PaintedBallSpace, d.PaintedBallSpace)
	setDefault(&g.PaintedBallScale, d.PaintedBallScale)
	setDefault(&g.FadingCircleScale, d.FadingCircleScale)
	setDefault(&g.FadingRingScale, d.FadingRingScale)
	setDefault(&g.CircleFadingTime, d.CircleFadingTime)
	setDefault(&g.RingFadingTime, d.RingFadingTime)
	setDefault(&g.RingRadius, d.RingRadius)
	setDefault(&g.RingPieceHeight, d.RingPieceHeight)
	setDefault(&g.ExplosionLifetime, d.ExplosionLifetime)
	setDefault(&g.MusicDelay, d.MusicDelay)
	setDefault(&g.ResultUIDelay, d.ResultUIDelay)
	setDefault(&g.SceneReloadDelay, d.SceneReloadDelay)
	if g.PiecesPerRing == 0 {
		g.PiecesPerRing = d.PiecesPerRing
	}
}

func (g *GameplayConfig) validate() error {
	if g.TestingLevel < 0 {
		return fmt.Errorf("gameplay.testingLevel cannot be negative")
	}
	if g.PaintedBallShootingSpeed <= 0 {
		return fmt.Errorf("gameplay.paintedBallShootingSpeed must be positive")
	}
	if g.PaintedBallZPosition >= -g.RingRadius {
		return fmt.Errorf("gameplay.paintedBallZPosition (%v) must be in front of the ring (< %v)",
			g.PaintedBallZPosition, -g.RingRadius)
	}
	if g.RingPieceHeight <= 0 || g.RingRadius <= 0 {
		return fmt.Errorf("gameplay ring geometry must be positive")
	}
	return nil
}
