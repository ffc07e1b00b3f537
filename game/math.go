package game

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Axis is an index into a mgl64.Vec3. Unlike cube.Axis, the values line up with the vector components.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes is every Axis in vector order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "z"
	}
}

// ClampFloat clamps num between min and max.
func ClampFloat(num, min, max float64) float64 {
	if num < min {
		return min
	} else if num > max {
		return max
	}
	return num
}

// HzDistSqr returns the squared length of the horizontal components of vec.
func HzDistSqr(vec mgl64.Vec3) float64 {
	return vec[0]*vec[0] + vec[2]*vec[2]
}

// Finite returns true if none of the components of vec are NaN or infinite.
func Finite(vec mgl64.Vec3) bool {
	for _, v := range vec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// HasVolume returns true if the box has a positive extent on every axis.
func HasVolume(bb cube.BBox) bool {
	min, max := bb.Min(), bb.Max()
	return max[0] > min[0] && max[1] > min[1] && max[2] > min[2]
}

// Intersects returns true if the two boxes strictly overlap on every axis. Boxes that only share a face do not
// intersect. cube.BBox.IntersectsWith allows a small tolerance, which is not wanted when probing for support.
func Intersects(a, b cube.BBox) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	return aMin[0] < bMax[0] && aMax[0] > bMin[0] &&
		aMin[1] < bMax[1] && aMax[1] > bMin[1] &&
		aMin[2] < bMax[2] && aMax[2] > bMin[2]
}

// BoxFromDimensions returns a box of the given width and height with its bottom centre at pos.
func BoxFromDimensions(pos mgl64.Vec3, width, height float64) cube.BBox {
	h := width / 2
	return cube.Box(
		pos[0]-h, pos[1], pos[2]-h,
		pos[0]+h, pos[1]+height, pos[2]+h,
	)
}

// BlocksIn calls f for every block position overlapping bb. The range on each axis is floor(min) up to, but not
// including, ceil(max). Iteration stops early if f returns false.
func BlocksIn(bb cube.BBox, f func(pos cube.Pos) bool) {
	min, max := bb.Min(), bb.Max()
	minX, minY, minZ := int(math.Floor(min[0])), int(math.Floor(min[1])), int(math.Floor(min[2]))
	maxX, maxY, maxZ := int(math.Ceil(max[0])), int(math.Ceil(max[1])), int(math.Ceil(max[2]))

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			for z := minZ; z < maxZ; z++ {
				if !f(cube.Pos{x, y, z}) {
					return
				}
			}
		}
	}
}

// ComparePos orders block positions by Y, then Z, then X.
func ComparePos(a, b cube.Pos) int {
	for _, i := range [3]int{1, 2, 0} {
		if a[i] < b[i] {
			return -1
		} else if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

// Normalize returns vec scaled to a length of 1. Vectors shorter than 1e-4 normalise to the zero vector.
func Normalize(vec mgl64.Vec3) mgl64.Vec3 {
	l := vec.Len()
	if l < 1e-4 {
		return mgl64.Vec3{}
	}
	return vec.Mul(1 / l)
}
