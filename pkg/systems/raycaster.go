package systems

import (
	"math"

	"github.com/gonewx/paintrings/pkg/components"
	"github.com/gonewx/paintrings/pkg/ecs"
	"github.com/gonewx/paintrings/pkg/utils"
)

// RaycastHit 射线命中结果
type RaycastHit struct {
	Point    utils.Vec3
	Distance float64
	Piece    ecs.EntityID
	Ring     ecs.EntityID
	Tag      components.PieceTag
}

// Raycaster 射线检测接口
type Raycaster interface {
	// Raycast 返回 maxDistance 内最近的命中
	Raycast(origin, direction utils.Vec3, maxDistance float64) (RaycastHit, bool)
}

// RingRaycaster 解析式射线检测
//
// 每个环视为竖直圆柱面：中心为环的世界坐标，半径 radius，
// 高度区间 [cy - h/2, cy + h/2)。命中点在环局部坐标系下的角度决定命中的环段：
// 第 i 段覆盖 [i*w, (i+1)*w)，w = 360 / 段数。
type RingRaycaster struct {
	entityManager *ecs.EntityManager
	radius        float64
	pieceHeight   float64
}

// NewRingRaycaster 创建环射线检测器
func NewRingRaycaster(em *ecs.EntityManager, radius, pieceHeight float64) *RingRaycaster {
	return &RingRaycaster{
		entityManager: em,
		radius:        radius,
		pieceHeight:   pieceHeight,
	}
}

// Raycast 实现 Raycaster
// 距离相同时后创建的环优先
func (r *RingRaycaster) Raycast(origin, direction utils.Vec3, maxDistance float64) (RaycastHit, bool) {
	length := direction.Length()
	if length == 0 {
		return RaycastHit{}, false
	}
	dir := direction.Scale(1 / length)

	var best RaycastHit
	found := false
	for _, ringID := range ecs.GetEntitiesWith1[*components.RingComponent](r.entityManager) {
		ring, _ := ecs.GetComponent[*components.RingComponent](r.entityManager, ringID)
		if len(ring.Pieces) == 0 {
			continue
		}
		t, ok := r.intersect(origin, dir, WorldPosition(r.entityManager, ringID), maxDistance)
		if !ok {
			continue
		}
		if found && t > best.Distance {
			continue
		}

		point := origin.Add(dir.Scale(t))
		pieceID := r.pieceAt(ringID, ring, point)
		tag := components.PieceTagUntagged
		if piece, ok := ecs.GetComponent[*components.RingPieceComponent](r.entityManager, pieceID); ok {
			tag = piece.Tag
		}
		best = RaycastHit{
			Point:    point,
			Distance: t,
			Piece:    pieceID,
			Ring:     ringID,
			Tag:      tag,
		}
		found = true
	}
	return best, found
}

// intersect 射线与圆柱面的最近交点参数 t（0 <= t <= maxDistance）
func (r *RingRaycaster) intersect(origin, dir, center utils.Vec3, maxDistance float64) (float64, bool) {
	ox := origin.X - center.X
	oz := origin.Z - center.Z

	a := dir.X*dir.X + dir.Z*dir.Z
	if a == 0 {
		return 0, false
	}
	b := 2 * (ox*dir.X + oz*dir.Z)
	c := ox*ox + oz*oz - r.radius*r.radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)

	halfHeight := r.pieceHeight / 2
	for _, t := range [2]float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
		if t < 0 || t > maxDistance {
			continue
		}
		y := origin.Y + dir.Y*t
		if y >= center.Y-halfHeight && y < center.Y+halfHeight {
			return t, true
		}
	}
	return 0, false
}

// pieceAt 命中点对应的环段
func (r *RingRaycaster) pieceAt(ringID ecs.EntityID, ring *components.RingComponent, point utils.Vec3) ecs.EntityID {
	center := WorldPosition(r.entityManager, ringID)
	worldAngle := math.Atan2(point.Z-center.Z, point.X-center.X) * 180 / math.Pi
	return ring.Pieces[PieceIndex(worldAngle, WorldRotationY(r.entityManager, ringID), len(ring.Pieces))]
}

// PieceIndex 世界角度 worldAngle 处的环段编号
// ringRotation 为环的世界旋转角，count 为环段数
func PieceIndex(worldAngle, ringRotation float64, count int) int {
	local := utils.WrapDegrees(worldAngle - ringRotation)
	index := int(local / (360 / float64(count)))
	if index >= count {
		index = count - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}
