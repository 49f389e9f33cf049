package app

import (
	"fmt"

	"github.com/gonewx/paintrings/pkg/config"
	"github.com/gonewx/paintrings/pkg/embedded"
)

// 内嵌的默认配置
const (
	embeddedAppConfig  = "data/app.yaml"
	embeddedLevelTable = "data/levels.yaml"
)

// LoadConfigs 加载应用配置与关卡表
//
// configFile 为空时使用内嵌的 data/app.yaml；
// 应用配置的 levelsFile 为空时使用内嵌的 data/levels.yaml。
// 调用前必须先调用 embedded.Init()。
func LoadConfigs(configFile string) (*config.AppConfig, *config.LevelTable, error) {
	var (
		appCfg *config.AppConfig
		err    error
	)
	if configFile != "" {
		appCfg, err = config.LoadAppConfig(configFile)
	} else {
		var data []byte
		data, err = embedded.ReadFile(embeddedAppConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read embedded app config: %w", err)
		}
		appCfg, err = config.ParseAppConfig(data)
	}
	if err != nil {
		return nil, nil, err
	}

	var levels *config.LevelTable
	if appCfg.LevelsFile != "" {
		levels, err = config.LoadLevelTable(appCfg.LevelsFile)
	} else {
		var data []byte
		data, err = embedded.ReadFile(embeddedLevelTable)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read embedded level table: %w", err)
		}
		levels, err = config.ParseLevelTable(data, embeddedLevelTable)
	}
	if err != nil {
		return nil, nil, err
	}
	return appCfg, levels, nil
}
