// validate_levels 校验关卡表并打印各区间概要
//
//	go run ./cmd/validate_levels data/levels.yaml
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gonewx/paintrings/pkg/config"
)

var quiet bool

var rootCmd = &cobra.Command{
	Use:           "validate_levels [file...]",
	Short:         "校验关卡表",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"data/levels.yaml"}
		}
		out := cmd.OutOrStdout()
		if quiet {
			out = io.Discard
		}

		failed := 0
		for _, path := range args {
			if err := validateFile(path, out); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "❌ %v\n", err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d level file(s) invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "只输出错误")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// validateFile 加载并校验一个关卡表，成功时打印区间概要
func validateFile(path string, out io.Writer) error {
	table, err := config.LoadLevelTable(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✅ %s: %d range(s), levels 1-%d, %d pieces per ring\n",
		path, len(table.Levels), table.MaxPlayableLevel(), table.Gameplay.PiecesPerRing)
	for _, l := range table.Levels {
		fmt.Fprintln(out, "   "+summarize(&l))
	}
	if len(table.SavedLevels) > 0 {
		fmt.Fprintf(out, "   checkpoints: %v\n", table.SavedLevels)
	}
	return nil
}

func summarize(l *config.LevelData) string {
	types := make([]string, len(l.RotatingTypes))
	for i, e := range l.RotatingTypes {
		types[i] = e.String()
	}
	return fmt.Sprintf("[%d,%d) rings [%d,%d) painted [%d,%d) balls [%d,%d) rotate %.0f-%.0f° @ %.0f-%.0f°/s, time %.1f-%.1fs, ease %s, colors %d",
		l.MinLevel, l.MaxLevel,
		l.MinRingNumber, l.MaxRingNumber,
		l.MinPaintedPiece, l.MaxPaintedPiece,
		l.MinPaintedBall, l.MaxPaintedBall,
		l.MinRotatingDegrees, l.MaxRotatingDegrees,
		l.MinRotatingSpeed, l.MaxRotatingSpeed,
		l.MinTimeToPaintOneRing, l.MaxTimeToPaintOneRing,
		strings.Join(types, "/"), len(l.RingColors))
}
