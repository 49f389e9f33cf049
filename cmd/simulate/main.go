// simulate 无窗口运行一局完整会话并打印状态切换
//
//	go run ./cmd/simulate --seed 7 --interval 0.4 --max-seconds 120
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gonewx/paintrings/pkg/config"
	"github.com/gonewx/paintrings/pkg/logger"
)

var (
	levelsFile string
	opts       Options
	verbose    bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "simulate",
	Short: "无窗口模拟自动发射",
	RunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.Init("simulate", level)

		levels, err := config.LoadLevelTable(levelsFile)
		if err != nil {
			return err
		}

		var out io.Writer = os.Stdout
		if quiet {
			out = nil
		}
		sim, err := NewSimulator(levels, opts, out)
		if err != nil {
			return err
		}
		r := sim.Run()

		fmt.Printf("ticks=%d elapsed=%.2fs shots=%d cleared=%d failures=%d stuck=%d timedOut=%v\n",
			r.Ticks, r.Elapsed, r.Shots, r.LevelsCleared, r.Failures, r.StuckBalls, r.TimedOut)
		if r.StuckBalls > 0 {
			return fmt.Errorf("%d ball(s) got stuck", r.StuckBalls)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&levelsFile, "levels", "data/levels.yaml", "关卡表路径")
	rootCmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "随机种子")
	rootCmd.Flags().IntVar(&opts.TPS, "tps", 60, "每秒模拟帧数")
	rootCmd.Flags().Float64Var(&opts.FireInterval, "interval", 0.5, "自动发射间隔（秒）")
	rootCmd.Flags().Float64Var(&opts.MaxSeconds, "max-seconds", 300, "最长模拟时间（秒）")
	rootCmd.Flags().Float64Var(&opts.SessionTime, "session", 180, "会话时长（秒）")
	rootCmd.Flags().BoolVar(&opts.RetryOnFail, "retry", true, "失败后自动重开")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "只输出汇总")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("[Simulate] %v", err)
		os.Exit(1)
	}
}
