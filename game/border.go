package game

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Border is a square world border centred on Center on the X/Z plane.
type Border struct {
	Center mgl64.Vec2
	Size   float64
}

// MinX returns the western edge of the border.
func (b Border) MinX() float64 { return b.Center[0] - b.Size/2 }

// MaxX returns the eastern edge of the border.
func (b Border) MaxX() float64 { return b.Center[0] + b.Size/2 }

// MinZ returns the northern edge of the border.
func (b Border) MinZ() float64 { return b.Center[1] - b.Size/2 }

// MaxZ returns the southern edge of the border.
func (b Border) MaxZ() float64 { return b.Center[1] + b.Size/2 }

// Distance returns the distance from the horizontal position of pos to the closest border edge. The value is
// negative if the position lies outside the border.
func (b Border) Distance(pos mgl64.Vec3) float64 {
	return math.Min(
		math.Min(pos[0]-b.MinX(), b.MaxX()-pos[0]),
		math.Min(pos[2]-b.MinZ(), b.MaxZ()-pos[2]),
	)
}

// CloseTo returns true if the actor with the box passed is inside the border and near enough to one of its edges
// for the border to take part in collisions.
func (b Border) CloseTo(bb cube.BBox) bool {
	min, max := bb.Min(), bb.Max()
	size := math.Max(math.Max(max[0]-min[0], max[2]-min[2]), 1)
	centre := mgl64.Vec3{(min[0] + max[0]) / 2, min[1], (min[2] + max[2]) / 2}

	inside := centre[0] > b.MinX()-size && centre[0] < b.MaxX()+size &&
		centre[2] > b.MinZ()-size && centre[2] < b.MaxZ()+size
	return inside && b.Distance(centre) < size*2
}

// Shape returns the solid region outside the border, limited to the surroundings of query.
func (b Border) Shape(query cube.BBox) VoxelShape {
	q := query.Grow(1)
	min, max := q.Min(), q.Max()

	var boxes []cube.BBox
	if min[0] < b.MinX() {
		boxes = append(boxes, cube.Box(min[0], min[1], min[2], b.MinX(), max[1], max[2]))
	}
	if max[0] > b.MaxX() {
		boxes = append(boxes, cube.Box(b.MaxX(), min[1], min[2], max[0], max[1], max[2]))
	}
	if min[2] < b.MinZ() {
		boxes = append(boxes, cube.Box(min[0], min[1], min[2], max[0], max[1], b.MinZ()))
	}
	if max[2] > b.MaxZ() {
		boxes = append(boxes, cube.Box(min[0], min[1], b.MaxZ(), max[0], max[1], max[2]))
	}
	return NewVoxelShape(boxes...)
}
