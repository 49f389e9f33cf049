package game

import (
	"fmt"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/paintrings/pkg/logger"
)

// SaveData 保存数据结构
//
// 保存内容：
//   - 最高通过关卡
//   - 已保存（解锁）的关卡列表，玩法核心只读
//   - 单次会话最多通过的关卡数（奖励游戏的最好成绩）
type SaveData struct {
	MaxPassedLevel    int   `yaml:"maxPassedLevel"`
	SavedLevels       []int `yaml:"savedLevels"`
	BestLevelsCleared int   `yaml:"bestLevelsCleared"`
}

// SaveManager 保存管理器
//
// 数据通过 gdata 持久化（YAML 格式，与设置一致）。
// gdataManager 为 nil 时为降级模式：数据只保存在内存中。
type SaveManager struct {
	gdataManager *gdata.Manager
	data         *SaveData
}

// 存储路径常量
const (
	saveObject   = "progress"
	saveProperty = "data"
)

// NewSaveManager 创建保存管理器并加载已有存档
//
// 参数：
//   - gdataManager: 可为 nil（降级模式）
//   - defaultLevels: 没有存档时使用的已保存关卡列表（来自关卡表）
func NewSaveManager(gdataManager *gdata.Manager, defaultLevels []int) *SaveManager {
	sm := &SaveManager{
		gdataManager: gdataManager,
		data:         &SaveData{SavedLevels: normalizeLevels(defaultLevels)},
	}

	if err := sm.Load(); err != nil {
		logger.Warn("[SaveManager] Failed to load save data: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载存档；不存在时保留当前数据
func (sm *SaveManager) Load() error {
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(saveObject, saveProperty) {
		return nil
	}

	raw, err := sm.gdataManager.LoadObjectProp(saveObject, saveProperty)
	if err != nil {
		return fmt.Errorf("failed to load save data: %w", err)
	}

	var loaded SaveData
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal save data: %w", err)
	}
	loaded.SavedLevels = normalizeLevels(append(loaded.SavedLevels, sm.data.SavedLevels...))

	sm.data = &loaded
	logger.Debug("[SaveManager] Loaded: maxPassed=%d saved=%v best=%d",
		loaded.MaxPassedLevel, loaded.SavedLevels, loaded.BestLevelsCleared)
	return nil
}

// Save 写入 gdata；降级模式下直接返回 nil
func (sm *SaveManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	raw, err := yaml.Marshal(sm.data)
	if err != nil {
		return fmt.Errorf("failed to marshal save data: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(saveObject, saveProperty, raw); err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}
	return nil
}

// GetData 当前存档数据
func (sm *SaveManager) GetData() *SaveData {
	return sm.data
}

// SavedLevels 已保存关卡列表的副本
func (sm *SaveManager) SavedLevels() []int {
	out := make([]int, len(sm.data.SavedLevels))
	copy(out, sm.data.SavedLevels)
	return out
}

// RecordLevelPassed 记录通过的关卡，并把下一关加入已保存列表
func (sm *SaveManager) RecordLevelPassed(level int) {
	if level > sm.data.MaxPassedLevel {
		sm.data.MaxPassedLevel = level
	}
	sm.data.SavedLevels = normalizeLevels(append(sm.data.SavedLevels, level+1))
}

// RecordSessionScore 记录一次会话的成绩，返回是否刷新了最好成绩
func (sm *SaveManager) RecordSessionScore(levelsCleared int) bool {
	if levelsCleared <= sm.data.BestLevelsCleared {
		return false
	}
	sm.data.BestLevelsCleared = levelsCleared
	return true
}

// normalizeLevels 去重、去掉非正数并升序排列
func normalizeLevels(levels []int) []int {
	seen := make(map[int]struct{}, len(levels))
	out := make([]int, 0, len(levels))
	for _, l := range levels {
		if l <= 0 {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}
