package game

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 创建测试专用的 gdata manager，测试结束后删除目录
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	appName := fmt.Sprintf("paintrings_test_%s_%d", testName, time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil
	}

	t.Cleanup(func() {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			os.RemoveAll(filepath.Join(homeDir, ".local", "share", appName))
		}
	})

	return manager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.MusicVolume != 0.7 {
		t.Errorf("MusicVolume: got %v, want 0.7", settings.MusicVolume)
	}
	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if !settings.MusicEnabled || !settings.SoundEnabled {
		t.Error("音乐和音效默认应开启")
	}
	if settings.Muted {
		t.Error("默认不应静音")
	}
}

// TestSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.GetSettings().MusicVolume != 0.7 {
		t.Errorf("降级模式应使用默认设置, MusicVolume = %v", sm.GetSettings().MusicVolume)
	}
	if err := sm.Save(); err != nil {
		t.Errorf("降级模式 Save 不应报错: %v", err)
	}
}

// TestSettingsManagerVolumeClamp 音量限制在 0~1
func TestSettingsManagerVolumeClamp(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"正常值", 0.5, 0.5},
		{"下溢", -0.3, 0.0},
		{"上溢", 1.7, 1.0},
		{"边界0", 0.0, 0.0},
		{"边界1", 1.0, 1.0},
	}

	sm := NewSettingsManager(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm.SetMusicVolume(tt.input)
			sm.SetSoundVolume(tt.input)
			if got := sm.GetSettings().MusicVolume; got != tt.expected {
				t.Errorf("MusicVolume = %v, 期望 %v", got, tt.expected)
			}
			if got := sm.GetSettings().SoundVolume; got != tt.expected {
				t.Errorf("SoundVolume = %v, 期望 %v", got, tt.expected)
			}
		})
	}
}

// TestSettingsManagerStatusListeners 静音与音乐开关只在变化时通知
func TestSettingsManagerStatusListeners(t *testing.T) {
	sm := NewSettingsManager(nil)
	var muteEvents, musicEvents []bool
	sm.OnMuteStatusChanged(func(v bool) { muteEvents = append(muteEvents, v) })
	sm.OnMusicStatusChanged(func(v bool) { musicEvents = append(musicEvents, v) })

	sm.SetMuted(true)
	sm.SetMuted(true)
	sm.SetMuted(false)
	sm.SetMusicEnabled(true)
	sm.SetMusicEnabled(false)

	if len(muteEvents) != 2 || muteEvents[0] != true || muteEvents[1] != false {
		t.Errorf("静音通知 = %v, 期望 [true false]", muteEvents)
	}
	if len(musicEvents) != 1 || musicEvents[0] != false {
		t.Errorf("音乐开关通知 = %v, 期望 [false]", musicEvents)
	}
}

// TestSettingsManagerPersistence 保存后重新加载
func TestSettingsManagerPersistence(t *testing.T) {
	manager := createTestGdataManager(t, "settings")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	sm := NewSettingsManager(manager)
	sm.SetMusicVolume(0.25)
	sm.SetMuted(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save 失败: %v", err)
	}

	reloaded := NewSettingsManager(manager)
	s := reloaded.GetSettings()
	if s.MusicVolume != 0.25 {
		t.Errorf("重新加载 MusicVolume = %v, 期望 0.25", s.MusicVolume)
	}
	if !s.Muted {
		t.Error("重新加载后应保持静音")
	}
}
