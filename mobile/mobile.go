//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.paintrings -o build/android/paintrings.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/PaintRings.xcframework -v ./mobile
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/paintrings/pkg/app"
	"github.com/gonewx/paintrings/pkg/embedded"
	"github.com/gonewx/paintrings/pkg/logger"
)

func init() {
	embedded.Init(dataFS)

	appCfg, levels, err := app.LoadConfigs("")
	if err != nil {
		logger.Fatal("[Mobile] 配置加载失败: %v", err)
	}
	logger.Init("paintrings", appCfg.Log.Level)

	gameApp, err := app.NewApp(app.Config{App: appCfg, Levels: levels})
	if err != nil {
		logger.Fatal("[Mobile] 游戏初始化失败: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
