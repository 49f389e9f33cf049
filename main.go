package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/gonewx/paintrings/pkg/app"
	"github.com/gonewx/paintrings/pkg/embedded"
	"github.com/gonewx/paintrings/pkg/logger"
)

var (
	configFile string
	startLevel int
	verbose    bool
	seed       uint64
)

var rootCmd = &cobra.Command{
	Use:   "paintrings",
	Short: "Paint the Rings 小游戏",
	Long:  `Paint the Rings：向旋转的环发射彩球，涂满每一个环段。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		embedded.Init(dataFS)

		appCfg, levels, err := app.LoadConfigs(configFile)
		if err != nil {
			return err
		}

		level := appCfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger.Init("paintrings", level)

		if cmd.Flags().Changed("seed") {
			appCfg.Seed = seed
		}
		if startLevel > 0 {
			if _, err := levels.FindLevel(startLevel); err != nil {
				return err
			}
			levels.Gameplay.TestingLevel = startLevel
			logger.Info("[Main] Forcing level %d", startLevel)
		}

		game, err := app.NewApp(app.Config{App: appCfg, Levels: levels})
		if err != nil {
			return err
		}
		defer game.Close()

		ebiten.SetWindowSize(appCfg.Window.Width, appCfg.Window.Height)
		ebiten.SetWindowTitle(appCfg.Window.Title)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		ebiten.SetTPS(appCfg.TPS)
		ebiten.SetFullscreen(game.FullscreenOnStart())

		return ebiten.RunGame(game)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "应用配置文件（YAML），为空则使用内置配置")
	rootCmd.Flags().IntVar(&startLevel, "level", 0, "强制从指定关卡开始（调试用）")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "随机种子（默认按时间取种子）")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("[Main] %v", err)
		os.Exit(1)
	}
}
