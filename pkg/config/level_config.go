package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/paintrings/pkg/utils"
)

// LevelData 单个关卡区间的配置（加载后不可变）
// 关卡号 level 满足 MinLevel <= level < MaxLevel 时使用本配置
// 整数随机区间为 [min, max)，浮点随机区间为 [min, max]
type LevelData struct {
	MinLevel int `yaml:"minLevel"`
	MaxLevel int `yaml:"maxLevel"`

	MinRingNumber int `yaml:"minRingNumber"` // 本关需要完成的环数
	MaxRingNumber int `yaml:"maxRingNumber"`

	MinPaintedPiece int `yaml:"minPaintedPiece"` // 每个环预涂色的环段数
	MaxPaintedPiece int `yaml:"maxPaintedPiece"`

	MinPaintedBall int `yaml:"minPaintedBall"` // 每个环配发的彩球数
	MaxPaintedBall int `yaml:"maxPaintedBall"`

	MinRotatingDegrees float64 `yaml:"minRotatingDegrees"` // 单段旋转角度
	MaxRotatingDegrees float64 `yaml:"maxRotatingDegrees"`

	MinRotatingSpeed float64 `yaml:"minRotatingSpeed"` // 旋转速度（度/秒）
	MaxRotatingSpeed float64 `yaml:"maxRotatingSpeed"`

	MinTimeToPaintOneRing float64 `yaml:"minTimeToPaintOneRing"` // 单环涂色限时（秒）
	MaxTimeToPaintOneRing float64 `yaml:"maxTimeToPaintOneRing"`

	RotatingTypes []utils.EaseType `yaml:"rotatingTypes"` // 旋转缓动曲线候选
	RingColors    []string         `yaml:"ringColors"`    // 环颜色候选（十六进制，如 "#ff5a5f"）

	colors []colorful.Color
}

// Contains 关卡号是否落在本区间
func (l *LevelData) Contains(level int) bool {
	return level >= l.MinLevel && level < l.MaxLevel
}

// Colors 解析后的环颜色
func (l *LevelData) Colors() []colorful.Color {
	return l.colors
}

// LevelTable 关卡表
type LevelTable struct {
	Levels      []LevelData    `yaml:"levels"`
	SavedLevels []int          `yaml:"savedLevels"`
	Gameplay    GameplayConfig `yaml:"gameplay"`
}

// LoadLevelTable 从YAML文件加载关卡表
// 参数：
//
//	filepath - 关卡表文件路径
//
// 返回：
//
//	*LevelTable - 已应用默认值并通过校验的关卡表
//	error - 读取、解析或校验失败
func LoadLevelTable(filepath string) (*LevelTable, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level table %s: %w", filepath, err)
	}
	return ParseLevelTable(data, filepath)
}

// ParseLevelTable 解析关卡表数据
// source 仅用于错误信息
func ParseLevelTable(data []byte, source string) (*LevelTable, error) {
	var table LevelTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse level table YAML from %s: %w", source, err)
	}

	applyGameplayDefaults(&table.Gameplay)

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level table in %s: %w", source, err)
	}
	return &table, nil
}

// FindLevel 查找包含 level 的关卡配置
func (t *LevelTable) FindLevel(level int) (*LevelData, error) {
	for i := range t.Levels {
		if t.Levels[i].Contains(level) {
			return &t.Levels[i], nil
		}
	}
	return nil, fmt.Errorf("no level data covers level %d", level)
}

// MaxPlayableLevel 关卡表覆盖的最大关卡号
func (t *LevelTable) MaxPlayableLevel() int {
	max := 0
	for _, l := range t.Levels {
		if l.MaxLevel-1 > max {
			max = l.MaxLevel - 1
		}
	}
	return max
}

// Validate 校验关卡表
// 关卡数据缺失属于配置错误，必须在加载时发现而不是在运行时
func (t *LevelTable) Validate() error {
	if len(t.Levels) == 0 {
		return fmt.Errorf("at least one level entry is required")
	}

	pieces := t.Gameplay.PiecesPerRing
	if pieces < 2 {
		return fmt.Errorf("gameplay.piecesPerRing must be at least 2, got %d", pieces)
	}

	for i := range t.Levels {
		if err := validateLevelData(&t.Levels[i], pieces); err != nil {
			return fmt.Errorf("levels[%d]: %w", i, err)
		}
	}

	// 区间覆盖：从 1 开始连续，无空隙、无重叠
	sorted := make([]LevelData, len(t.Levels))
	copy(sorted, t.Levels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinLevel < sorted[j].MinLevel })
	if sorted[0].MinLevel != 1 {
		return fmt.Errorf("level ranges must start at 1, got %d", sorted[0].MinLevel)
	}
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.MinLevel < prev.MaxLevel {
			return fmt.Errorf("level ranges [%d,%d) and [%d,%d) overlap",
				prev.MinLevel, prev.MaxLevel, cur.MinLevel, cur.MaxLevel)
		}
		if cur.MinLevel > prev.MaxLevel {
			return fmt.Errorf("gap between level ranges: levels [%d,%d) are not covered",
				prev.MaxLevel, cur.MinLevel)
		}
	}

	return t.Gameplay.validate()
}

// validateLevelData 校验单个区间并解析颜色
func validateLevelData(l *LevelData, piecesPerRing int) error {
	if l.MinLevel >= l.MaxLevel {
		return fmt.Errorf("minLevel (%d) must be less than maxLevel (%d)", l.MinLevel, l.MaxLevel)
	}
	if l.MinRingNumber < 1 || l.MinRingNumber > l.MaxRingNumber {
		return fmt.Errorf("ring number range [%d,%d) is invalid", l.MinRingNumber, l.MaxRingNumber)
	}
	if l.MinPaintedPiece < 0 || l.MinPaintedPiece > l.MaxPaintedPiece {
		return fmt.Errorf("painted piece range [%d,%d) is invalid", l.MinPaintedPiece, l.MaxPaintedPiece)
	}
	if l.MaxPaintedPiece >= piecesPerRing {
		return fmt.Errorf("maxPaintedPiece (%d) must be less than piecesPerRing (%d)", l.MaxPaintedPiece, piecesPerRing)
	}
	if l.MinPaintedBall < 1 || l.MinPaintedBall > l.MaxPaintedBall {
		return fmt.Errorf("painted ball range [%d,%d) is invalid", l.MinPaintedBall, l.MaxPaintedBall)
	}
	if l.MinRotatingDegrees < 0 || l.MaxRotatingDegrees > 360 || l.MinRotatingDegrees > l.MaxRotatingDegrees {
		return fmt.Errorf("rotating degrees range [%v,%v] is invalid", l.MinRotatingDegrees, l.MaxRotatingDegrees)
	}
	if l.MinRotatingSpeed <= 0 || l.MinRotatingSpeed > l.MaxRotatingSpeed {
		return fmt.Errorf("rotating speed range [%v,%v] is invalid", l.MinRotatingSpeed, l.MaxRotatingSpeed)
	}
	if l.MinTimeToPaintOneRing <= 0 || l.MinTimeToPaintOneRing > l.MaxTimeToPaintOneRing {
		return fmt.Errorf("time to paint range [%v,%v] is invalid", l.MinTimeToPaintOneRing, l.MaxTimeToPaintOneRing)
	}
	if len(l.RotatingTypes) == 0 {
		return fmt.Errorf("at least one rotating type is required")
	}
	for i, e := range l.RotatingTypes {
		if !e.Valid() {
			return fmt.Errorf("rotatingTypes[%d] is invalid", i)
		}
	}
	if len(l.RingColors) == 0 {
		return fmt.Errorf("at least one ring color is required")
	}

	l.colors = make([]colorful.Color, 0, len(l.RingColors))
	for i, hex := range l.RingColors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return fmt.Errorf("ringColors[%d]: %w", i, err)
		}
		l.colors = append(l.colors, c)
	}
	return nil
}
