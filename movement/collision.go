package movement

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesim/game"
)

// Resolve clips displacement against every collider in set so that box, moved by the result, does not pass
// through any of them. The vertical axis is resolved first, then the horizontal axis with the smaller
// displacement and finally the dominant horizontal axis. The box is moved by each partial result before the next
// axis is resolved. No component of the result is larger in magnitude than the requested one or has the
// opposite sign.
func Resolve(displacement mgl64.Vec3, box cube.BBox, set CandidateSet) mgl64.Vec3 {
	if displacement == (mgl64.Vec3{}) || set.Empty() {
		return displacement
	}

	var resolved mgl64.Vec3
	for _, axis := range axisOrder(displacement) {
		resolved[axis] = clipAxis(axis, displacement[axis], box, set)
		if resolved[axis] != 0 {
			var offset mgl64.Vec3
			offset[axis] = resolved[axis]
			box = box.Translate(offset)
		}
	}
	return resolved
}

// axisOrder returns the order in which the axes of displacement are resolved. If both horizontal components are
// equal in magnitude, X is treated as the dominant one.
func axisOrder(displacement mgl64.Vec3) [3]game.Axis {
	if math.Abs(displacement[0]) < math.Abs(displacement[2]) {
		return [3]game.Axis{game.AxisY, game.AxisX, game.AxisZ}
	}
	return [3]game.Axis{game.AxisY, game.AxisZ, game.AxisX}
}

// clipAxis shrinks the displacement d on a single axis so that box does not pass through any collider in the set.
// Colliders that box already overlaps on the axis are ignored, so that actors stuck inside geometry can move out.
func clipAxis(axis game.Axis, d float64, box cube.BBox, set CandidateSet) float64 {
	if math.Abs(d) < game.Epsilon {
		return 0
	}

	positive := d > 0
	boxMin, boxMax := box.Min(), box.Max()
	set.each(func(bb cube.BBox) {
		bbMin, bbMax := bb.Min(), bb.Max()
		for _, other := range game.Axes {
			if other == axis {
				continue
			}
			if math.Min(boxMax[other], bbMax[other])-math.Max(boxMin[other], bbMin[other]) <= game.Epsilon {
				return
			}
		}

		if positive {
			gap := bbMin[axis] - boxMax[axis]
			if gap >= -game.Epsilon && gap < d {
				d = math.Max(gap, 0)
			}
		} else {
			gap := bbMax[axis] - boxMin[axis]
			if gap <= game.Epsilon && gap > d {
				d = math.Min(gap, 0)
			}
		}
	})

	if math.Abs(d) < game.Epsilon {
		return 0
	}
	return d
}
