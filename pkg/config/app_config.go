package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig 应用启动配置
// 来源优先级：环境变量 PAINTRINGS_* > 配置文件 > 默认值
type AppConfig struct {
	Window     WindowConf  `mapstructure:"window"`
	TPS        int         `mapstructure:"tps"`
	Log        LogConf     `mapstructure:"log"`
	LevelsFile string      `mapstructure:"levelsFile"` // 为空则使用内嵌的 data/levels.yaml
	Storage    StorageConf `mapstructure:"storage"`
	Session    SessionConf `mapstructure:"session"`
	Seed       uint64      `mapstructure:"seed"` // 0 表示按时间取种子
}

type WindowConf struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

type StorageConf struct {
	// AppName gdata 存储目录名，为空则不持久化
	AppName string `mapstructure:"appName"`
}

type SessionConf struct {
	TimeLimitMinutes   float64 `mapstructure:"timeLimitMinutes"`
	WarningTime        float64 `mapstructure:"warningTime"`        // 剩余多少秒时开始警告
	TimeoutAnimSeconds float64 `mapstructure:"timeoutAnimSeconds"` // 超时动画时长
}

// 窗口逻辑尺寸
const (
	GameWindowWidth  = 480
	GameWindowHeight = 800
)

func setAppDefaults(v *viper.Viper) {
	v.SetDefault("window.width", GameWindowWidth)
	v.SetDefault("window.height", GameWindowHeight)
	v.SetDefault("window.title", "Paint the Rings")
	v.SetDefault("tps", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("levelsFile", "")
	v.SetDefault("storage.appName", "paintrings")
	v.SetDefault("session.timeLimitMinutes", 3)
	v.SetDefault("session.warningTime", 30)
	v.SetDefault("session.timeoutAnimSeconds", 1.5)
	v.SetDefault("seed", 0)
}

func newAppViper() *viper.Viper {
	v := viper.New()
	setAppDefaults(v)

	v.SetEnvPrefix("PAINTRINGS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshalAppConfig(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode app config: %w", err)
	}
	return &cfg, nil
}

// LoadAppConfig 加载应用配置
// configFile 为空时只使用默认值与环境变量
func LoadAppConfig(configFile string) (*AppConfig, error) {
	v := newAppViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read app config %s: %w", configFile, err)
		}
	}
	return unmarshalAppConfig(v)
}

// ParseAppConfig 从 YAML 数据加载应用配置（内嵌的 data/app.yaml）
func ParseAppConfig(data []byte) (*AppConfig, error) {
	v := newAppViper()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}
	return unmarshalAppConfig(v)
}

// SessionTimeLimit 会话总时长（秒）
func (c *AppConfig) SessionTimeLimit() float64 {
	return c.Session.TimeLimitMinutes * 60
}
