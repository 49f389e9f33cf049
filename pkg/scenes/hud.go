package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/gonewx/paintrings/pkg/config"
	"github.com/gonewx/paintrings/pkg/utils"
)

// HUD Layout Constants
const (
	HUDMarginX     = 24
	HUDTextY       = 24
	TimebarY       = 56
	TimebarHeight  = 10
	HUDTextScale   = 2.0
	TimebarPadding = 2
)

var (
	hudTextColor       = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	timebarBackColor   = color.RGBA{R: 40, G: 44, B: 60, A: 220}
	timebarFillColor   = color.RGBA{R: 120, G: 210, B: 140, A: 255}
	timebarDangerColor = color.RGBA{R: 235, G: 90, B: 80, A: 255}
)

// HUD 局内界面：已过关数、环进度与涂色倒计时条
type HUD struct {
	face text.Face

	levelText string
	ringText  string
	timebar   float64
	visible   bool
}

// NewHUD 创建局内界面（使用内置位图字体，不依赖资源文件）
func NewHUD() *HUD {
	return &HUD{
		face:    text.NewGoXFace(basicfont.Face7x13),
		timebar: 1,
		visible: true,
	}
}

// SetLevelText 显示已通过的关卡数（当前关卡 - 1）
func (h *HUD) SetLevelText(level int) {
	h.SetClearedCount(level - 1)
}

// SetClearedCount 直接设置已过关数（过关时刷新）
func (h *HUD) SetClearedCount(n int) {
	if n < 0 {
		n = 0
	}
	h.levelText = fmt.Sprintf("%d", n)
}

// SetRingCountText 环进度 "当前 / 总数"
func (h *HUD) SetRingCountText(current, max int) {
	h.ringText = fmt.Sprintf("%d / %d", current, max)
}

// SetTimebarFraction 倒计时条填充比例，限制在 [0, 1]
func (h *HUD) SetTimebarFraction(f float64) {
	h.timebar = utils.Clamp01(f)
}

// SetVisible 显示/隐藏局内界面
func (h *HUD) SetVisible(v bool) { h.visible = v }

// Visible 局内界面是否显示
func (h *HUD) Visible() bool { return h.visible }

// LevelText 已过关数文本
func (h *HUD) LevelText() string { return h.levelText }

// RingText 环进度文本
func (h *HUD) RingText() string { return h.ringText }

// Timebar 倒计时条填充比例
func (h *HUD) Timebar() float64 { return h.timebar }

// Draw 绘制局内界面
func (h *HUD) Draw(screen *ebiten.Image) {
	if !h.visible {
		return
	}

	h.drawText(screen, h.levelText, HUDMarginX, HUDTextY)
	if h.ringText != "" {
		w, _ := text.Measure(h.ringText, h.face, 0)
		h.drawText(screen, h.ringText, config.GameWindowWidth-HUDMarginX-w*HUDTextScale, HUDTextY)
	}

	barW := float32(config.GameWindowWidth - 2*HUDMarginX)
	vector.DrawFilledRect(screen, HUDMarginX, TimebarY, barW, TimebarHeight, timebarBackColor, false)

	fill := timebarFillColor
	if h.timebar < 0.25 {
		fill = timebarDangerColor
	}
	inner := (barW - 2*TimebarPadding) * float32(h.timebar)
	if inner > 0 {
		vector.DrawFilledRect(screen, HUDMarginX+TimebarPadding, TimebarY+TimebarPadding,
			inner, TimebarHeight-2*TimebarPadding, fill, false)
	}
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(HUDTextScale, HUDTextScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(hudTextColor)
	text.Draw(screen, s, h.face, op)
}
