package systems

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/entities"
	"github.com/gonewx/paintrings/pkg/utils"
)

const (
	// arcSegments 每个环段圆弧的细分数
	arcSegments = 4
	// ringWallThickness 环顶面的径向厚度（世界单位）
	ringWallThickness = 0.6
	// explosionSparks 爆裂粒子的火花数量
	explosionSparks = 8
	// ellipseSegments 扩散圆/环的细分数
	ellipseSegments = 48
)

// Camera 斜俯视投影参数
//
// 相机位于 -Z 方向、略微俯视：世界 Y 向上对应屏幕向上，
// 世界 Z 越大（越远）在屏幕上越靠上并按 DepthFactor 压缩。
type Camera struct {
	CenterX       float64 // 世界原点的屏幕 X
	BaseY         float64 // 世界原点的屏幕 Y
	PixelsPerUnit float64
	DepthFactor   float64 // 深度方向压缩比例（0~1）
}

// DefaultCamera 适配 480x800 竖屏的相机
func DefaultCamera() Camera {
	return Camera{CenterX: 240, BaseY: 320, PixelsPerUnit: 40, DepthFactor: 0.35}
}

// Project 世界坐标 -> 屏幕坐标
func (c Camera) Project(p utils.Vec3) (x, y float64) {
	x = c.CenterX + p.X*c.PixelsPerUnit
	y = c.BaseY - p.Y*c.PixelsPerUnit - p.Z*c.PixelsPerUnit*c.DepthFactor
	return x, y
}

// drawItem 一次绘制调用
type drawItem struct {
	entity ecs.EntityID
	depth  float64 // 世界 Z，越大越先画
	height float64 // 世界 Y，同深度时低处先画
	draw   func(screen *ebiten.Image)
}

// RenderSystem 绘制环、彩球与效果
//
// 所有可见实体按深度从远到近排序后绘制，因此环的后半圈总在前半圈之前。
// 游戏逻辑不直接调用本系统，只修改 RenderComponent。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	camera        Camera
	ringRadius    float64
	pieceHeight   float64

	whiteImage *ebiten.Image
	vertices   []ebiten.Vertex
	indices    []uint16
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, camera Camera, ringRadius, pieceHeight float64) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		camera:        camera,
		ringRadius:    ringRadius,
		pieceHeight:   pieceHeight,
	}
}

// Camera 当前相机
func (s *RenderSystem) Camera() Camera {
	return s.camera
}

// Draw 绘制所有可见实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, item := range s.collect() {
		item.draw(screen)
	}
}

// collect 收集并排序本帧的绘制调用
func (s *RenderSystem) collect() []drawItem {
	ids := ecs.GetEntitiesWith2[*components.RenderComponent, *components.TransformComponent](s.entityManager)
	items := make([]drawItem, 0, len(ids))

	for _, id := range ids {
		rc, _ := ecs.GetComponent[*components.RenderComponent](s.entityManager, id)
		if !rc.Visible || rc.Alpha <= 0 {
			continue
		}
		if item, ok := s.itemFor(id, rc); ok {
			items = append(items, item)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].depth != items[j].depth {
			return items[i].depth > items[j].depth
		}
		return items[i].height < items[j].height
	})
	return items
}

func (s *RenderSystem) itemFor(id ecs.EntityID, rc *components.RenderComponent) (drawItem, bool) {
	em := s.entityManager
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	pos := WorldPosition(em, id)
	clr := withAlpha(rc.Color, rc.Alpha)

	switch rc.Shape {
	case components.ShapeRingPiece:
		start, end, ok := s.pieceArc(id)
		if !ok {
			return drawItem{}, false
		}
		mid := (start + end) / 2
		painted := rc.MaterialID == entities.MaterialRingPainted
		return drawItem{
			entity: id,
			depth:  pos.Z + s.ringRadius*math.Sin(mid*math.Pi/180),
			height: pos.Y,
			draw: func(screen *ebiten.Image) {
				s.drawPiece(screen, pos, start, end, clr, painted)
			},
		}, true

	case components.ShapeCrossMarker:
		piece := tr.Parent
		start, end, ok := s.pieceArc(piece)
		if !ok {
			return drawItem{}, false
		}
		mid := (start + end) / 2 * math.Pi / 180
		center := pos.Add(utils.Vec3{X: s.ringRadius * math.Cos(mid), Z: s.ringRadius * math.Sin(mid)})
		size := tr.Scale.X * s.pieceHeight * s.camera.PixelsPerUnit / 2
		return drawItem{
			entity: id,
			depth:  center.Z - 0.01,
			height: pos.Y,
			draw: func(screen *ebiten.Image) {
				x, y := s.camera.Project(center)
				drawCross(screen, float32(x), float32(y), float32(size), clr)
			},
		}, true

	case components.ShapeBall:
		radius := tr.Scale.X / 2 * s.camera.PixelsPerUnit
		return drawItem{
			entity: id,
			depth:  pos.Z,
			height: pos.Y,
			draw: func(screen *ebiten.Image) {
				x, y := s.camera.Project(pos)
				vector.DrawFilledCircle(screen, float32(x), float32(y), float32(radius), clr, true)
			},
		}, true

	case components.ShapeFadingCircle:
		radius := tr.Scale.X * s.ringRadius * 0.6
		return drawItem{
			entity: id,
			depth:  pos.Z + radius,
			height: pos.Y,
			draw: func(screen *ebiten.Image) {
				s.fillPolygon(screen, s.ellipse(pos, radius), clr)
			},
		}, true

	case components.ShapeFadingRing:
		radius := tr.Scale.X * s.ringRadius * 0.25
		return drawItem{
			entity: id,
			depth:  pos.Z - radius,
			height: pos.Y,
			draw: func(screen *ebiten.Image) {
				s.strokePolygon(screen, s.ellipse(pos, radius), 4, clr)
			},
		}, true

	case components.ShapeExplosion:
		progress := 1.0
		if lt, ok := ecs.GetComponent[*components.LifetimeComponent](em, id); ok && lt.MaxLifetime > 0 {
			progress = utils.Clamp01(lt.CurrentLifetime / lt.MaxLifetime)
		}
		return drawItem{
			entity: id,
			depth:  pos.Z,
			height: pos.Y,
			draw: func(screen *ebiten.Image) {
				s.drawExplosion(screen, pos, progress, rc.Color)
			},
		}, true
	}
	return drawItem{}, false
}

// pieceArc 环段的世界角度范围（度）
func (s *RenderSystem) pieceArc(piece ecs.EntityID) (start, end float64, ok bool) {
	em := s.entityManager
	p, ok := ecs.GetComponent[*components.RingPieceComponent](em, piece)
	if !ok {
		return 0, 0, false
	}
	ring, ok := ecs.GetComponent[*components.RingComponent](em, p.Ring)
	if !ok || len(ring.Pieces) == 0 {
		return 0, 0, false
	}
	step := 360.0 / float64(len(ring.Pieces))
	start = WorldRotationY(em, piece) + float64(p.Index)*step
	return start, start + step, true
}

// drawPiece 绘制环段：顶面扇环 + 外侧壁
func (s *RenderSystem) drawPiece(screen *ebiten.Image, center utils.Vec3, start, end float64, clr color.RGBA, painted bool) {
	h := s.pieceHeight / 2
	outer := s.ringRadius
	inner := s.ringRadius - ringWallThickness

	wall := make([][2]float64, 0, 2*(arcSegments+1))
	for i := 0; i <= arcSegments; i++ {
		wall = append(wall, s.arcPoint(center, outer, start, end, i, h))
	}
	for i := arcSegments; i >= 0; i-- {
		wall = append(wall, s.arcPoint(center, outer, start, end, i, -h))
	}

	top := make([][2]float64, 0, 2*(arcSegments+1))
	for i := 0; i <= arcSegments; i++ {
		top = append(top, s.arcPoint(center, outer, start, end, i, h))
	}
	for i := arcSegments; i >= 0; i-- {
		top = append(top, s.arcPoint(center, inner, start, end, i, h))
	}

	s.fillPolygon(screen, wall, shade(clr, 0.8))
	topColor := clr
	if painted {
		topColor = shade(clr, 1.15)
	}
	s.fillPolygon(screen, top, topColor)
}

func (s *RenderSystem) arcPoint(center utils.Vec3, radius, start, end float64, i int, dy float64) [2]float64 {
	a := (start + (end-start)*float64(i)/arcSegments) * math.Pi / 180
	x, y := s.camera.Project(center.Add(utils.Vec3{X: radius * math.Cos(a), Y: dy, Z: radius * math.Sin(a)}))
	return [2]float64{x, y}
}

// ellipse 水平圆在屏幕上的投影
func (s *RenderSystem) ellipse(center utils.Vec3, radius float64) [][2]float64 {
	pts := make([][2]float64, 0, ellipseSegments)
	for i := 0; i < ellipseSegments; i++ {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		x, y := s.camera.Project(center.Add(utils.Vec3{X: radius * math.Cos(a), Z: radius * math.Sin(a)}))
		pts = append(pts, [2]float64{x, y})
	}
	return pts
}

// drawExplosion 向外扩散并淡出的火花
func (s *RenderSystem) drawExplosion(screen *ebiten.Image, pos utils.Vec3, progress float64, c colorful.Color) {
	x, y := s.camera.Project(pos)
	spread := 4 + progress*s.camera.PixelsPerUnit*0.8
	size := float32(4 * (1 - progress*0.7))
	clr := withAlpha(c, 1-progress)
	for i := 0; i < explosionSparks; i++ {
		a := 2 * math.Pi * float64(i) / explosionSparks
		sx := x + spread*math.Cos(a)
		sy := y + spread*math.Sin(a)*0.6
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), size, clr, true)
	}
}

func drawCross(screen *ebiten.Image, x, y, size float32, clr color.RGBA) {
	vector.StrokeLine(screen, x-size, y-size, x+size, y+size, 2, clr, true)
	vector.StrokeLine(screen, x-size, y+size, x+size, y-size, 2, clr, true)
}

func (s *RenderSystem) polygonPath(pts [][2]float64) *vector.Path {
	var path vector.Path
	for i, p := range pts {
		if i == 0 {
			path.MoveTo(float32(p[0]), float32(p[1]))
		} else {
			path.LineTo(float32(p[0]), float32(p[1]))
		}
	}
	path.Close()
	return &path
}

func (s *RenderSystem) fillPolygon(screen *ebiten.Image, pts [][2]float64, clr color.RGBA) {
	if len(pts) < 3 {
		return
	}
	s.vertices, s.indices = s.polygonPath(pts).AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	s.drawTriangles(screen, clr, &ebiten.DrawTrianglesOptions{FillRule: ebiten.FillRuleNonZero, AntiAlias: true})
}

func (s *RenderSystem) strokePolygon(screen *ebiten.Image, pts [][2]float64, width float32, clr color.RGBA) {
	if len(pts) < 2 {
		return
	}
	op := &vector.StrokeOptions{Width: width, LineJoin: vector.LineJoinRound}
	s.vertices, s.indices = s.polygonPath(pts).AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], op)
	s.drawTriangles(screen, clr, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (s *RenderSystem) drawTriangles(screen *ebiten.Image, clr color.RGBA, op *ebiten.DrawTrianglesOptions) {
	if s.whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}
	screen.DrawTriangles(s.vertices, s.indices, s.whiteImage, op)
}

// withAlpha colorful.Color + 透明度 -> 预乘 RGBA
func withAlpha(c colorful.Color, alpha float64) color.RGBA {
	alpha = utils.Clamp01(alpha)
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{
		R: uint8(float64(r) * alpha),
		G: uint8(float64(g) * alpha),
		B: uint8(float64(b) * alpha),
		A: uint8(255 * alpha),
	}
}

// shade 按比例调整亮度（预乘颜色，不超过 alpha）
func shade(c color.RGBA, k float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Min(float64(c.A), float64(v)*k))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
