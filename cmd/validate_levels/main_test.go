package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateFileShippedTable(t *testing.T) {
	var out bytes.Buffer
	if err := validateFile("../../data/levels.yaml", &out); err != nil {
		t.Fatalf("内置关卡表校验失败: %v", err)
	}
	if !strings.Contains(out.String(), "[1,4)") {
		t.Errorf("概要中缺少第一个区间:\n%s", out.String())
	}
}

func TestValidateFileErrors(t *testing.T) {
	dir := t.TempDir()
	gap := filepath.Join(dir, "gap.yaml")
	content := `
levels:
  - minLevel: 2
    maxLevel: 5
    minRingNumber: 1
    maxRingNumber: 2
    minPaintedPiece: 0
    maxPaintedPiece: 1
    minPaintedBall: 1
    maxPaintedBall: 2
    minRotatingDegrees: 0
    maxRotatingDegrees: 90
    minRotatingSpeed: 60
    maxRotatingSpeed: 90
    minTimeToPaintOneRing: 5
    maxTimeToPaintOneRing: 8
    rotatingTypes: [linear]
    ringColors: ["#ffffff"]
`
	if err := os.WriteFile(gap, []byte(content), 0o644); err != nil {
		t.Fatalf("写入临时文件失败: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"区间不从 1 开始", gap},
		{"文件不存在", filepath.Join(dir, "missing.yaml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := validateFile(tt.path, &out); err == nil {
				t.Error("期望返回错误")
			}
			if out.Len() != 0 {
				t.Errorf("失败时不应输出概要, 实际 %q", out.String())
			}
		})
	}
}
