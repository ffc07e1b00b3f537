package movement

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesim/game"
	"github.com/sirupsen/logrus"
)

// FluidQuery describes a fluid sample for one fluid tag.
type FluidQuery struct {
	// Tag is the fluid to sample, game.FluidWater or game.FluidLava.
	Tag string
	// FlowScale scales the averaged flow into a velocity delta.
	FlowScale float64
	// Pushable is false for actors that flowing fluid does not push.
	Pushable bool
	// Heavy actors receive the averaged flow without normalisation.
	Heavy bool
	// Velocity is the current velocity of the actor.
	Velocity mgl64.Vec3
}

// FluidResult is the outcome of sampling a single fluid tag around an actor.
type FluidResult struct {
	Tag string
	// SubmersionDepth is how far the fluid surface reaches above the bottom of the actor.
	SubmersionDepth float64
	// Touching is true if any block of the fluid overlaps the actor.
	Touching bool
	// PushVelocityDelta is the velocity the flow adds to the actor.
	PushVelocityDelta mgl64.Vec3
	// Samples is the number of fluid blocks that contributed flow.
	Samples int
}

// FluidSampler computes how deep an actor is in a fluid and how the fluid pushes it.
type FluidSampler struct {
	World GeometryProvider
	Log   logrus.FieldLogger
}

// Sample samples the fluid q.Tag around box. If any of the geometry is unavailable, the actor is reported as not
// touching the fluid.
func (s *FluidSampler) Sample(box cube.BBox, q FluidQuery) FluidResult {
	result := FluidResult{Tag: q.Tag}
	if s.World == nil {
		return result
	}
	if !s.World.Loaded(box) {
		s.debugf("fluid sample %s: region %v not loaded", q.Tag, box)
		return result
	}

	bb := box.Grow(-game.FluidBoxDeflation)
	minY := bb.Min()[1]

	var (
		flow   mgl64.Vec3
		failed error
	)
	game.BlocksIn(bb, func(pos cube.Pos) bool {
		fluid, ok, err := s.World.FluidAt(pos)
		if err != nil {
			failed = err
			return false
		}
		if !ok || fluid.Type != q.Tag {
			return true
		}

		diff := float64(pos[1]) + s.height(pos, fluid) - minY
		if diff <= 0 {
			return true
		}
		result.Touching = true
		result.SubmersionDepth = math.Max(result.SubmersionDepth, diff)
		if !q.Pushable {
			return true
		}

		f := s.flow(pos, fluid)
		// The running depth is used here, so blocks scanned early contribute less.
		if result.SubmersionDepth < game.FluidFlowDepthCutoff {
			f = f.Mul(result.SubmersionDepth)
		}
		flow = flow.Add(f)
		result.Samples++
		return true
	})
	if failed != nil {
		s.debugf("fluid sample %s: %v", q.Tag, failed)
		return FluidResult{Tag: q.Tag}
	}

	if flow.Len() > 0 && result.Samples > 0 {
		flow = flow.Mul(1 / float64(result.Samples))
		if !q.Heavy {
			flow = game.Normalize(flow)
		}
		push := flow.Mul(q.FlowScale)
		if math.Abs(q.Velocity[0]) < game.MinFluidPushHorizontal && math.Abs(q.Velocity[2]) < game.MinFluidPushHorizontal && push.Len() < game.MinFluidPush {
			push = game.Normalize(push).Mul(game.MinFluidPush)
		}
		result.PushVelocityDelta = push
	}
	return result
}

// height returns the height of the fluid surface within the block at pos. Fluid with the same fluid above fills
// its block completely.
func (s *FluidSampler) height(pos cube.Pos, fluid game.FluidState) float64 {
	if above, ok := s.fluidAt(pos.Side(cube.FaceUp)); ok && above.Type == fluid.Type {
		return 1
	}
	return fluid.Height()
}

// flow returns the normalised direction fluid at pos flows in.
func (s *FluidSampler) flow(pos cube.Pos, fluid game.FluidState) mgl64.Vec3 {
	own := fluid.Height()

	var vec mgl64.Vec3
	for _, face := range cube.HorizontalFaces() {
		side := pos.Side(face)
		neighbour, ok := s.fluidAt(side)
		if ok && neighbour.Type != fluid.Type {
			continue
		}

		var diff float64
		if h := heightOf(neighbour, ok); h == 0 {
			if !s.solid(side) {
				below, ok := s.fluidAt(side.Side(cube.FaceDown))
				if ok && below.Type != fluid.Type {
					continue
				}
				if bh := heightOf(below, ok); bh > 0 {
					diff = own - (bh - game.FluidBelowHeightOffset)
				}
			}
		} else {
			diff = own - h
		}

		if diff != 0 {
			dir := cube.Pos{}.Side(face).Vec3()
			vec[0] += dir[0] * diff
			vec[2] += dir[2] * diff
		}
	}

	if fluid.Falling {
		for _, face := range cube.HorizontalFaces() {
			side := pos.Side(face)
			if s.solidFace(side, fluid) || s.solidFace(side.Side(cube.FaceUp), fluid) {
				vec = game.Normalize(vec).Add(mgl64.Vec3{0, game.FallingFluidDrop})
				break
			}
		}
	}
	return game.Normalize(vec)
}

func heightOf(f game.FluidState, ok bool) float64 {
	if !ok {
		return 0
	}
	return f.Height()
}

// fluidAt looks up the fluid at pos, treating unavailable geometry as empty.
func (s *FluidSampler) fluidAt(pos cube.Pos) (game.FluidState, bool) {
	f, ok, err := s.World.FluidAt(pos)
	if err != nil || !ok || f.Empty() {
		return game.FluidState{}, false
	}
	return f, true
}

// solid returns true if the block at pos has collision and so blocks fluid from flowing into it.
func (s *FluidSampler) solid(pos cube.Pos) bool {
	shapes, _ := s.World.ShapesIn(cube.Box(0, 0, 0, 1, 1, 1).Translate(pos.Vec3()))
	for _, shape := range shapes {
		if origin, ok := shape.Block(); ok && origin == pos && !shape.Empty() {
			return true
		}
	}
	return false
}

// solidFace returns true if the block at pos is solid and does not hold the fluid passed.
func (s *FluidSampler) solidFace(pos cube.Pos, fluid game.FluidState) bool {
	if f, ok := s.fluidAt(pos); ok && f.Type == fluid.Type {
		return false
	}
	return s.solid(pos)
}

func (s *FluidSampler) debugf(format string, args ...any) {
	if s.Log != nil {
		s.Log.Debugf(format, args...)
	}
}
