// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerInput 本帧的指针输入
// 同时支持鼠标点击和触摸输入，优先检测触摸
type PointerInput struct {
	// 是否有点击/触摸事件刚刚发生
	JustPressed bool
	// 点击/触摸位置
	X, Y int
	// 是否来自触摸
	IsTouch bool
}

// ReadPointerInput 读取本帧的指针输入
func ReadPointerInput() PointerInput {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerInput{JustPressed: true, X: x, Y: y, IsTouch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerInput{
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		X:           x,
		Y:           y,
	}
}

// IsPauseKeyJustPressed 暂停快捷键（Esc / P）
func IsPauseKeyJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)
}

// IsFireKeyJustPressed 发射快捷键（空格）
func IsFireKeyJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace)
}
