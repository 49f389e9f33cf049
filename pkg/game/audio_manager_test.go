package game

import (
	"math"
	"testing"
)

// TestSoundBankClips 所有音效ID都有合成片段
func TestSoundBankClips(t *testing.T) {
	am := NewAudioManager(nil, nil)
	ids := []string{
		SoundBackground, SoundButton, SoundThrowBall, SoundPaintRingPiece,
		SoundFinishedRing, SoundPassLevel, SoundGameOver,
		SoundSessionStart, SoundTimerWarning,
	}
	for _, id := range ids {
		if !am.HasClip(id) {
			t.Errorf("缺少音效片段 %s", id)
		}
	}
	if am.HasClip("missing") {
		t.Error("未知ID不应存在")
	}
}

// TestSynthesizeLength PCM 长度与音符时长一致
func TestSynthesizeLength(t *testing.T) {
	pcm := synthesize([]toneNote{{Freq: 440, Duration: 0.5, Volume: 1}, {Duration: 0.25}})
	wantFrames := int(0.5*SampleRate) + int(0.25*SampleRate)
	if len(pcm) != wantFrames*bytesPerFrame {
		t.Errorf("PCM 长度 = %d, 期望 %d", len(pcm), wantFrames*bytesPerFrame)
	}

	clip := BuildSoundBank()[SoundBackground]
	if math.Abs(clip.Length-4.0) > 0.01 {
		t.Errorf("背景音乐长度 = %v, 期望约 4 秒", clip.Length)
	}
}

// TestSoundLimiter 同一音效最多 7 个槽位，音量按占用数均分，到期释放
func TestSoundLimiter(t *testing.T) {
	l := newSoundLimiter()
	const length = 1.0

	for i := 1; i <= maxSimultaneousSounds; i++ {
		scale, ok := l.acquire("hit", length)
		if !ok {
			t.Fatalf("第 %d 次 acquire 应成功", i)
		}
		if want := 1.0 / float64(i); math.Abs(scale-want) > 1e-9 {
			t.Errorf("第 %d 次音量系数 = %v, 期望 %v", i, scale, want)
		}
	}
	if _, ok := l.acquire("hit", length); ok {
		t.Error("超过上限的 acquire 应失败")
	}
	if _, ok := l.acquire("other", length); !ok {
		t.Error("不同音效互不影响")
	}

	l.update(0.69)
	if l.count("hit") != maxSimultaneousSounds {
		t.Errorf("70%% 之前不应释放, 占用 %d", l.count("hit"))
	}
	l.update(0.02)
	if l.count("hit") != 0 {
		t.Errorf("70%% 之后应全部释放, 占用 %d", l.count("hit"))
	}
}

// TestAudioManagerSilentMusic 静默模式下音乐状态照常跟踪
func TestAudioManagerSilentMusic(t *testing.T) {
	am := NewAudioManager(nil, nil)

	am.PlayMusic(SoundBackground, true)
	if am.CurrentMusic() != SoundBackground {
		t.Errorf("CurrentMusic = %q, 期望 %q", am.CurrentMusic(), SoundBackground)
	}
	am.PauseMusic()
	if !am.IsMusicPaused() {
		t.Error("PauseMusic 后应处于暂停")
	}
	am.ResumeMusic()
	if am.IsMusicPaused() {
		t.Error("ResumeMusic 后不应暂停")
	}
	am.StopMusic()
	if am.CurrentMusic() != "" {
		t.Error("StopMusic 后不应有当前音乐")
	}

	am.PlayMusic("missing", true)
	if am.CurrentMusic() != "" {
		t.Error("缺失的音乐应被静默忽略")
	}
}

// TestAudioManagerMuteFollowsSettings 静音时暂停音乐，取消静音后恢复
func TestAudioManagerMuteFollowsSettings(t *testing.T) {
	sm := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)
	am.PlayMusic(SoundBackground, true)

	sm.SetMuted(true)
	if !am.IsMusicPaused() {
		t.Error("静音后音乐应暂停")
	}
	sm.SetMuted(false)
	if am.IsMusicPaused() {
		t.Error("取消静音后音乐应恢复")
	}
}

// TestAudioManagerSettingsKeepGamePause 游戏暂停期间切换静音或音乐开关不会恢复音乐
func TestAudioManagerSettingsKeepGamePause(t *testing.T) {
	tests := []struct {
		name   string
		toggle func(sm *SettingsManager)
	}{
		{
			name: "静音后取消静音",
			toggle: func(sm *SettingsManager) {
				sm.SetMuted(true)
				sm.SetMuted(false)
			},
		},
		{
			name: "关闭后重新开启音乐",
			toggle: func(sm *SettingsManager) {
				sm.SetMusicEnabled(false)
				sm.SetMusicEnabled(true)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSettingsManager(nil)
			am := NewAudioManager(nil, sm)
			am.PlayMusic(SoundBackground, true)
			am.PauseMusic()

			tt.toggle(sm)
			if !am.IsMusicPaused() {
				t.Fatal("游戏暂停期间切换设置后音乐不应恢复")
			}

			am.ResumeMusic()
			if am.IsMusicPaused() {
				t.Error("游戏恢复后音乐应继续播放")
			}
		})
	}
}

// TestAudioManagerResumeWhileMuted 静音时恢复游戏，音乐保持暂停直到取消静音
func TestAudioManagerResumeWhileMuted(t *testing.T) {
	sm := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)
	am.PlayMusic(SoundBackground, true)
	am.PauseMusic()

	sm.SetMuted(true)
	am.ResumeMusic()
	if !am.IsMusicPaused() {
		t.Error("静音时恢复游戏，音乐应保持暂停")
	}

	sm.SetMuted(false)
	if am.IsMusicPaused() {
		t.Error("取消静音后音乐应恢复")
	}
}

// TestAudioManagerSoundDisabled 音效关闭时不占用槽位
func TestAudioManagerSoundDisabled(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetSoundEnabled(false)
	am := NewAudioManager(nil, sm)

	am.PlaySound(SoundButton)
	if am.limiter.count(SoundButton) != 0 {
		t.Error("音效关闭时不应播放")
	}

	sm.SetSoundEnabled(true)
	am.PlaySound(SoundButton)
	if am.limiter.count(SoundButton) != 1 {
		t.Error("音效开启后应占用一个槽位")
	}
	am.Update(1.0)
	if am.limiter.count(SoundButton) != 0 {
		t.Error("Update 应释放到期槽位")
	}
}
