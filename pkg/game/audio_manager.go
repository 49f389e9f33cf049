package game

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/gonewx/paintrings/pkg/logger"
)

// 同一音效同时播放的上限
const maxSimultaneousSounds = 7

// 音效占用槽位的时长占片段长度的比例
const soundSlotRatio = 0.7

// soundLimiter 同名音效并发限制器
//
// 同一音效最多同时占用 maxSimultaneousSounds 个槽位，
// 每个槽位在片段长度的 70% 之后释放；新播放的音量按当前占用数均分。
type soundLimiter struct {
	slots map[string][]float64 // 音效ID -> 各槽位剩余时间
}

func newSoundLimiter() *soundLimiter {
	return &soundLimiter{slots: make(map[string][]float64)}
}

// acquire 尝试占用一个槽位
// 返回音量系数（1/占用数）和是否允许播放
func (l *soundLimiter) acquire(id string, clipLength float64) (float64, bool) {
	active := l.slots[id]
	if len(active) >= maxSimultaneousSounds {
		return 0, false
	}
	active = append(active, clipLength*soundSlotRatio)
	l.slots[id] = active
	return 1.0 / float64(len(active)), true
}

// count 当前占用数
func (l *soundLimiter) count(id string) int {
	return len(l.slots[id])
}

// update 推进时间并释放到期槽位
func (l *soundLimiter) update(dt float64) {
	for id, active := range l.slots {
		kept := active[:0]
		for _, remaining := range active {
			remaining -= dt
			if remaining > 0 {
				kept = append(kept, remaining)
			}
		}
		if len(kept) == 0 {
			delete(l.slots, id)
		} else {
			l.slots[id] = kept
		}
	}
}

// AudioManager 音频管理器
// 职责：
//   - 统一管理所有音效和背景音乐的播放
//   - 从 SettingsManager 读取音量与开关，静音/音乐开关变化时同步暂停或恢复音乐
//   - 限制同一音效的并发播放数
//
// 音频上下文为 nil 时进入静默模式：接口照常工作，但不发声（无头模拟和测试使用）。
// 播放失败只记录日志，不影响游戏流程。
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager // 可为 nil
	clips           map[string]*SoundClip
	limiter         *soundLimiter

	activeSounds   []*audio.Player // 正在播放的音效（播放完后回收）
	currentMusic   *audio.Player
	currentMusicID string
	musicPaused    bool
	gamePaused     bool // 由游戏暂停，设置变化不会恢复
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，nil 表示静默模式
//   - sm: SettingsManager 实例（可为 nil，使用默认音量）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		clips:           BuildSoundBank(),
		limiter:         newSoundLimiter(),
	}

	if sm != nil {
		sm.OnMuteStatusChanged(func(bool) { am.syncMusic() })
		sm.OnMusicStatusChanged(func(bool) { am.syncMusic() })
	}

	logger.Debug("[AudioManager] %d clips synthesized (silent=%v)", len(am.clips), ctx == nil)
	return am
}

// HasClip 是否存在指定ID的音频片段
func (am *AudioManager) HasClip(id string) bool {
	_, ok := am.clips[id]
	return ok
}

// PlaySound 播放音效
// 音效已禁用、静音、缺少片段或超出并发上限时忽略
func (am *AudioManager) PlaySound(soundID string) {
	if !am.soundAllowed() {
		return
	}

	clip, ok := am.clips[soundID]
	if !ok {
		logger.Warn("[AudioManager] Sound not found: %s", soundID)
		return
	}

	scale, ok := am.limiter.acquire(soundID, clip.Length)
	if !ok {
		return
	}

	if am.context == nil {
		return
	}

	player := am.context.NewPlayerFromBytes(clip.PCM)
	player.SetVolume(am.getSoundVolume() * scale)
	player.Play()
	am.activeSounds = append(am.activeSounds, player)
}

// PlayMusic 播放背景音乐
// 同一时间只播放一首；已在播放同一首时不重复播放
func (am *AudioManager) PlayMusic(trackID string, loop bool) {
	if am.currentMusicID == trackID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return
	}

	am.StopMusic()

	clip, ok := am.clips[trackID]
	if !ok {
		logger.Warn("[AudioManager] Music not found: %s", trackID)
		return
	}

	am.currentMusicID = trackID
	am.musicPaused = false
	am.gamePaused = false

	if am.context == nil {
		return
	}

	var player *audio.Player
	if loop {
		stream := audio.NewInfiniteLoop(bytes.NewReader(clip.PCM), int64(len(clip.PCM)))
		p, err := am.context.NewPlayer(stream)
		if err != nil {
			logger.Warn("[AudioManager] Failed to create music player %s: %v", trackID, err)
			return
		}
		player = p
	} else {
		player = am.context.NewPlayerFromBytes(clip.PCM)
	}

	player.SetVolume(am.getMusicVolume())
	am.currentMusic = player
	if am.musicAllowed() {
		player.Play()
		logger.Info("[AudioManager] Playing music: %s (volume: %.2f)", trackID, am.getMusicVolume())
	}
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		if err := am.currentMusic.Close(); err != nil {
			logger.Warn("[AudioManager] Failed to close music player: %v", err)
		}
		am.currentMusic = nil
	}
	am.currentMusicID = ""
	am.musicPaused = false
	am.gamePaused = false
}

// PauseMusic 暂停当前背景音乐
// 在 ResumeMusic 之前，静音或音乐开关的变化都不会恢复播放
func (am *AudioManager) PauseMusic() {
	if am.currentMusicID == "" {
		return
	}
	am.gamePaused = true
	am.syncMusic()
}

// ResumeMusic 恢复当前背景音乐
// 设置不允许播放音乐时保持暂停
func (am *AudioManager) ResumeMusic() {
	if am.currentMusicID == "" {
		return
	}
	am.gamePaused = false
	am.syncMusic()
}

// syncMusic 按游戏暂停状态与音乐设置决定当前音乐是否播放
func (am *AudioManager) syncMusic() {
	if am.currentMusicID == "" {
		return
	}
	if am.gamePaused || !am.musicAllowed() {
		am.musicPaused = true
		if am.currentMusic != nil {
			am.currentMusic.Pause()
		}
		return
	}
	am.musicPaused = false
	if am.currentMusic != nil {
		am.currentMusic.Play()
	}
}

// CurrentMusic 当前音乐ID（未播放时为空）
func (am *AudioManager) CurrentMusic() string {
	return am.currentMusicID
}

// IsMusicPaused 音乐是否处于暂停
func (am *AudioManager) IsMusicPaused() bool {
	return am.musicPaused
}

// Update 推进并发限制计时并回收播放完毕的音效播放器
func (am *AudioManager) Update(deltaTime float64) {
	am.limiter.update(deltaTime)

	kept := am.activeSounds[:0]
	for _, p := range am.activeSounds {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		if err := p.Close(); err != nil {
			logger.Debug("[AudioManager] Failed to close sound player: %v", err)
		}
	}
	am.activeSounds = kept
}

func (am *AudioManager) soundAllowed() bool {
	if am.settingsManager == nil {
		return true
	}
	s := am.settingsManager.GetSettings()
	return s.SoundEnabled && !s.Muted
}

func (am *AudioManager) musicAllowed() bool {
	if am.settingsManager == nil {
		return true
	}
	s := am.settingsManager.GetSettings()
	return s.MusicEnabled && !s.Muted
}

// getMusicVolume 获取音乐音量设置
func (am *AudioManager) getMusicVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().MusicVolume
	}
	return 0.7
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8
}
