package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/gonewx/paintrings/pkg/config"
	"github.com/gonewx/paintrings/pkg/game"
	"github.com/gonewx/paintrings/pkg/session"
	"github.com/gonewx/paintrings/pkg/utils"
)

// ButtonID 会话界面按钮
type ButtonID int

const (
	ButtonNone ButtonID = iota
	ButtonPlay
	ButtonRestart
	ButtonNextLevel
	ButtonFinish
	ButtonPause
)

func (b ButtonID) String() string {
	switch b {
	case ButtonPlay:
		return "Play"
	case ButtonRestart:
		return "Restart"
	case ButtonNextLevel:
		return "Next Level"
	case ButtonFinish:
		return "Finish"
	case ButtonPause:
		return "Pause"
	default:
		return "None"
	}
}

// Overlay Layout Constants
const (
	ButtonWidth       = 220
	ButtonHeight      = 56
	ButtonSpacing     = 20
	PauseButtonSize   = 44
	MobilePauseScale  = 1.5 // 移动端放大暂停按钮的触控区域
	PauseButtonY      = 80
	OverlayTitleY     = 220
	OverlayTextScale  = 3.0
	OverlaySmallScale = 2.0
	SessionBarHeight  = 8
)

var (
	dimColor          = color.RGBA{R: 0, G: 0, B: 0, A: 150}
	buttonColor       = color.RGBA{R: 255, G: 196, B: 61, A: 255}
	buttonTextColor   = color.RGBA{R: 40, G: 30, B: 20, A: 255}
	titleColor        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	sessionBarColor   = color.RGBA{R: 110, G: 170, B: 255, A: 255}
	sessionWarnColor  = color.RGBA{R: 255, G: 110, B: 90, A: 255}
	sessionTrackColor = color.RGBA{R: 30, G: 30, B: 40, A: 200}
)

// rect 屏幕矩形（像素）
type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Overlay 会话界面：开始/重开/过关/结束界面、暂停按钮与会话计时条
//
// 点击按钮转发给 RewardGameManager，由它广播会话事件。
type Overlay struct {
	reward *session.RewardGameManager
	audio  game.AudioPlayer  // 可为 nil
	save   *game.SaveManager // 可为 nil
	face   text.Face

	pauseSize float64
}

// NewOverlay 创建会话界面
func NewOverlay(reward *session.RewardGameManager, audio game.AudioPlayer, save *game.SaveManager) *Overlay {
	return &Overlay{
		reward: reward,
		audio:  audio,
		save:   save,
		face:   text.NewGoXFace(basicfont.Face7x13),

		pauseSize: pauseButtonSize(utils.IsMobile()),
	}
}

func pauseButtonSize(mobile bool) float64 {
	if mobile {
		return PauseButtonSize * MobilePauseScale
	}
	return PauseButtonSize
}

// Buttons 当前界面可点击的按钮
func (o *Overlay) Buttons() []ButtonID {
	switch o.reward.Canvas() {
	case session.CanvasStart:
		return []ButtonID{ButtonPlay}
	case session.CanvasRestart:
		return []ButtonID{ButtonRestart, ButtonFinish}
	case session.CanvasLevelCleared:
		return []ButtonID{ButtonNextLevel, ButtonFinish}
	case session.CanvasGameOver:
		return []ButtonID{ButtonFinish}
	case session.CanvasPlaying:
		var buttons []ButtonID
		if o.reward.PauseButtonVisible() {
			buttons = append(buttons, ButtonPause)
		}
		if o.reward.IsPaused() && !o.reward.IsTimedOut() {
			buttons = append(buttons, ButtonFinish)
		}
		return buttons
	}
	return nil
}

// ButtonRect 按钮在屏幕上的位置
func (o *Overlay) ButtonRect(id ButtonID) rect {
	if id == ButtonPause {
		return rect{
			X: config.GameWindowWidth - HUDMarginX - o.pauseSize,
			Y: PauseButtonY,
			W: o.pauseSize,
			H: o.pauseSize,
		}
	}

	buttons := o.Buttons()
	index := 0
	for _, b := range buttons {
		if b == ButtonPause {
			continue
		}
		if b == id {
			break
		}
		index++
	}
	return rect{
		X: (config.GameWindowWidth - ButtonWidth) / 2,
		Y: config.GameWindowHeight/2 + float64(index)*(ButtonHeight+ButtonSpacing),
		W: ButtonWidth,
		H: ButtonHeight,
	}
}

// HitTest 返回坐标处的按钮
func (o *Overlay) HitTest(x, y float64) ButtonID {
	for _, b := range o.Buttons() {
		if o.ButtonRect(b).contains(x, y) {
			return b
		}
	}
	return ButtonNone
}

// Blocking 会话界面是否遮挡玩法输入
func (o *Overlay) Blocking() bool {
	return o.reward.Canvas() != session.CanvasPlaying || o.reward.IsPaused()
}

// Click 处理点击，返回是否点中了按钮
func (o *Overlay) Click(x, y float64) bool {
	b := o.HitTest(x, y)
	if b == ButtonNone {
		return false
	}
	o.Press(b)
	return true
}

// Press 触发按钮
func (o *Overlay) Press(b ButtonID) {
	if o.audio != nil {
		o.audio.PlaySound(game.SoundButton)
	}
	switch b {
	case ButtonPlay:
		o.reward.OnPlay()
	case ButtonRestart:
		o.reward.OnRestart()
	case ButtonNextLevel:
		o.reward.OnPlayNextLevel()
	case ButtonFinish:
		o.reward.OnFinish()
	case ButtonPause:
		o.reward.Pause()
	}
}

// Draw 绘制会话界面
func (o *Overlay) Draw(screen *ebiten.Image) {
	o.drawSessionBar(screen)

	canvas := o.reward.Canvas()
	if canvas == session.CanvasPlaying && !o.reward.IsPaused() {
		if o.reward.PauseButtonVisible() {
			o.drawButton(screen, ButtonPause, "II")
		}
		return
	}

	vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight, dimColor, false)

	title, subtitle := o.captions()
	y := float64(OverlayTitleY)
	for _, line := range utils.WrapText(title, o.face, config.GameWindowWidth/OverlayTextScale-8) {
		o.drawCentered(screen, line, y, OverlayTextScale, titleColor)
		y += 16 * OverlayTextScale
	}
	if subtitle != "" {
		o.drawCentered(screen, subtitle, y+8, OverlaySmallScale, titleColor)
	}

	for _, b := range o.Buttons() {
		label := b.String()
		if b == ButtonPause {
			label = ">"
		}
		o.drawButton(screen, b, label)
	}
}

// captions 各界面的标题与副标题
func (o *Overlay) captions() (title, subtitle string) {
	cfg := o.reward.Config()
	switch o.reward.Canvas() {
	case session.CanvasStart:
		return cfg.GameName, cfg.Message
	case session.CanvasRestart:
		return "Try Again", o.scoreText()
	case session.CanvasLevelCleared:
		return "Level Cleared!", o.scoreText()
	case session.CanvasGameOver:
		return "Time's Up!", o.scoreText()
	}
	if o.reward.IsTimedOut() {
		return "Time's Up!", ""
	}
	return "Paused", ""
}

func (o *Overlay) scoreText() string {
	score := o.reward.Score()
	if score == session.NoScore {
		return ""
	}
	s := fmt.Sprintf("Levels cleared: %d", score)
	if o.save != nil {
		s += fmt.Sprintf("  Best: %d", o.save.GetData().BestLevelsCleared)
	}
	return s
}

func (o *Overlay) drawSessionBar(screen *ebiten.Image) {
	if !o.reward.IsTimerRunning() && !o.reward.IsTimedOut() {
		return
	}
	y := float32(config.GameWindowHeight - SessionBarHeight)
	vector.DrawFilledRect(screen, 0, y, config.GameWindowWidth, SessionBarHeight, sessionTrackColor, false)

	clr := sessionBarColor
	if o.reward.IsWarning() {
		clr = sessionWarnColor
	}
	w := float32(config.GameWindowWidth * utils.Clamp01(o.reward.TimerFraction()))
	if w > 0 {
		vector.DrawFilledRect(screen, 0, y, w, SessionBarHeight, clr, false)
	}
}

func (o *Overlay) drawButton(screen *ebiten.Image, b ButtonID, label string) {
	r := o.ButtonRect(b)
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), buttonColor, true)

	w, h := text.Measure(label, o.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Scale(OverlaySmallScale, OverlaySmallScale)
	op.GeoM.Translate(r.X+(r.W-w*OverlaySmallScale)/2, r.Y+(r.H-h*OverlaySmallScale)/2)
	op.ColorScale.ScaleWithColor(buttonTextColor)
	text.Draw(screen, label, o.face, op)
}

func (o *Overlay) drawCentered(screen *ebiten.Image, s string, y, scale float64, clr color.Color) {
	w, _ := text.Measure(s, o.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((config.GameWindowWidth-w*scale)/2, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, o.face, op)
}
