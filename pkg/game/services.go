package game

// 声音资源ID
const (
	SoundBackground     = "background"
	SoundButton         = "button"
	SoundThrowBall      = "throwBall"
	SoundPaintRingPiece = "paintRingPiece"
	SoundFinishedRing   = "finishedRing"
	SoundPassLevel      = "passLevel"
	SoundGameOver       = "gameOver"

	// 会话层音效
	SoundSessionStart = "sessionStart"
	SoundTimerWarning = "timerWarning"
)

// AudioPlayer 玩法核心使用的音频接口
// 播放失败（缺少资源等）由实现方静默处理
type AudioPlayer interface {
	PlaySound(soundID string)
	PlayMusic(trackID string, loop bool)
	PauseMusic()
	ResumeMusic()
	StopMusic()
	HasClip(id string) bool
}

// HUD 局内界面显示接口
type HUD interface {
	SetLevelText(level int)
	SetRingCountText(current, max int)
	SetTimebarFraction(f float64)
}

// SceneLoader 场景加载接口
type SceneLoader interface {
	// LoadScene 在 delay 秒后加载指定场景
	LoadScene(name string, delay float64)
}
