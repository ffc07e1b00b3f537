package movement

import (
	"math"
	"math/rand"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesim/assert"
	"github.com/oomph-ac/movesim/game"
	"github.com/sirupsen/logrus"
)

// Integrator moves actors through the world. It resolves collisions, steps actors up ledges and keeps the
// grounded state and supporting block of every actor it moves up to date. An Integrator is safe for concurrent
// use as long as every State is moved by a single goroutine at a time.
type Integrator struct {
	Collider
	Fluids  FluidSampler
	Options Options
	// Report receives a report for every move that failed internally. If nil, reports are only logged.
	Report func(DiagnosticReport)
}

// NewIntegrator creates an Integrator moving actors through world, colliding with the actors in actors.
func NewIntegrator(world GeometryProvider, actors ActorIndex, opts Options, log logrus.FieldLogger) *Integrator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Integrator{
		Collider: Collider{World: world, Actors: actors, Log: log},
		Fluids:   FluidSampler{World: world, Log: log},
		Options:  opts,
		Report:   SentryReporter,
	}
}

// Move moves the actor with state s by displacement and returns the result. No handlers are called.
func (in *Integrator) Move(s *State, displacement mgl64.Vec3, class MoverClass) MoveResult {
	return in.move(s, displacement, class, NopHandler{}, nil)
}

func (in *Integrator) move(s *State, displacement mgl64.Vec3, class MoverClass, h Handler, r *rand.Rand) (result MoveResult) {
	var (
		owned bool
		snap  stateSnapshot
	)
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		if !owned {
			// The state belongs to another goroutine and must not be read or restored here.
			in.emit(DiagnosticReport{ActorID: s.ID, Kind: s.Kind.Name, Class: class, Displacement: displacement, Cause: causeOf(v)})
			result = MoveResult{Requested: displacement, Outcome: OutcomeSkipped}
			return
		}
		s.restore(snap)
		in.report(s, displacement, class, causeOf(v))
		result = resultFromState(s, displacement, mgl64.Vec3{}, false, OutcomeSkipped)
	}()

	assert.IsTrue(s.busy.CompareAndSwap(false, true), "actor %d moved from two goroutines at once", s.ID)
	owned = true
	defer s.busy.Store(false)
	snap = s.snapshot()

	if !game.Finite(displacement) {
		in.rejectDisplacement(s, displacement)
		return resultFromState(s, displacement, mgl64.Vec3{}, false, OutcomeRejected)
	}

	ctx := newCtx(s, class, r)
	defer putCtx(ctx)

	requested := displacement
	h.HandleMove(ctx, &displacement)
	if ctx.Cancelled() {
		return resultFromState(s, requested, mgl64.Vec3{}, false, OutcomeCancelled)
	}
	if !game.Finite(displacement) {
		in.rejectDisplacement(s, displacement)
		return resultFromState(s, requested, mgl64.Vec3{}, false, OutcomeRejected)
	}

	resolved, stepped := in.moveState(s, displacement, class)
	result = resultFromState(s, requested, resolved, stepped, OutcomeNormal)
	h.HandleMoved(ctx, result)
	return result
}

// moveState applies displacement to the state and returns the resolved displacement.
func (in *Integrator) moveState(s *State, displacement mgl64.Vec3, class MoverClass) (mgl64.Vec3, bool) {
	if stuck := s.stuckSpeedMultiplier; stuck.LenSqr() > game.StuckMultiplierThreshold {
		displacement = mgl64.Vec3{displacement[0] * stuck[0], displacement[1] * stuck[1], displacement[2] * stuck[2]}
		s.stuckSpeedMultiplier = mgl64.Vec3{}
		s.Vel = mgl64.Vec3{}
	}
	if class == MoverPiston {
		for i := range displacement {
			displacement[i] = game.ClampFloat(displacement[i], -game.PistonMovementLimit, game.PistonMovementLimit)
		}
	}
	if in.Options.EdgeBackOff && (class == MoverSelf || class == MoverPlayer) {
		displacement = in.backOffFromEdge(s, displacement)
	}

	box := s.BBox()
	resolved, stepped := displacement, false
	if displacement != (mgl64.Vec3{}) {
		set := in.Gather(box.Extend(displacement), box, s.ID)
		resolved = Resolve(displacement, box, set)

		req := StepRequest{
			Displacement: displacement,
			Box:          box,
			Flat:         resolved,
			StepHeight:   s.StepHeight,
			OnGround:     s.OnGround(),
			Self:         s.ID,
		}
		if req.CanStep() {
			stepResult := in.PlanStep(req)
			stepped = stepResult != resolved
			resolved = stepResult
		}
	}
	s.SetPos(s.Pos.Add(resolved))

	s.CollideX = math.Abs(displacement[0]-resolved[0]) >= game.CollisionThreshold
	s.CollideZ = math.Abs(displacement[2]-resolved[2]) >= game.CollisionThreshold
	s.HorizontalCollision = s.CollideX || s.CollideZ
	s.VerticalCollision = displacement[1] != resolved[1]
	s.VerticalCollisionBelow = s.VerticalCollision && displacement[1] < 0
	s.MinorHorizontalCollision = s.HorizontalCollision && minorHorizontalCollision(displacement, resolved)

	if s.CollideX {
		s.Vel[0] = 0
	}
	if s.CollideZ {
		s.Vel[2] = 0
	}
	if s.VerticalCollision {
		s.Vel[1] = 0
	}

	in.updateGround(s, resolved)
	in.Options.debugf("move %d: requested=%v resolved=%v stepped=%t ground=%v", s.ID, displacement, resolved, stepped, s.Ground)
	return resolved, stepped
}

// minorHorizontalCollision returns true if the resolved horizontal movement points in nearly the same direction
// as the requested one, such as when sliding along a wall at a shallow angle.
func minorHorizontalCollision(requested, resolved mgl64.Vec3) bool {
	reqLen := game.HzDistSqr(requested)
	resLen := game.HzDistSqr(resolved)
	if reqLen < game.CollisionThreshold || resLen < game.CollisionThreshold {
		return false
	}
	dot := requested[0]*resolved[0] + requested[2]*resolved[2]
	cos := game.ClampFloat(dot/math.Sqrt(reqLen*resLen), -1, 1)
	return math.Acos(cos) < game.MinorCollisionAngle
}

// updateGround updates the grounded state and the supporting block after a move.
func (in *Integrator) updateGround(s *State, resolved mgl64.Vec3) {
	box := s.BBox()
	min, max := box.Min(), box.Max()
	probe := cube.Box(min[0], min[1]-game.SupportProbeDepth, min[2], max[0], min[1], max[2])
	set := in.Gather(probe, box, s.ID)

	switch {
	case s.VerticalCollisionBelow:
		s.Ground = Grounded
	case s.Ground == Grounded && !supports(set, probe):
		s.Ground = Airborne
	}

	if s.Ground != Grounded {
		s.SupportingBlockPos = nil
		return
	}

	pos, ok := supportingBlock(set, probe, s.Pos)
	if !ok && s.SupportingBlockPos == nil {
		shifted := probe.Translate(mgl64.Vec3{-resolved[0], 0, -resolved[2]})
		pos, ok = supportingBlock(in.Gather(shifted, box, s.ID), shifted, s.Pos)
	}
	if ok {
		s.SupportingBlockPos = &pos
		return
	}
	s.SupportingBlockPos = nil
}

// supports returns true if any collider in the set intersects the probe.
func supports(set CandidateSet, probe cube.BBox) (found bool) {
	set.each(func(bb cube.BBox) {
		if !found && game.Intersects(bb, probe) {
			found = true
		}
	})
	return found
}

// supportingBlock returns the block in set whose shape intersects probe and is closest to pos. Ties are broken
// by the lowest block position.
func supportingBlock(set CandidateSet, probe cube.BBox, pos mgl64.Vec3) (cube.Pos, bool) {
	var (
		best    cube.Pos
		found   bool
		minDist = math.MaxFloat64
	)
	for _, shape := range set.Shapes {
		blockPos, ok := shape.Block()
		if !ok || !shape.Intersects(probe) {
			continue
		}
		dist := blockPos.Vec3Centre().Sub(pos).LenSqr()
		if dist < minDist || (dist == minDist && game.ComparePos(blockPos, best) < 0) {
			best, minDist, found = blockPos, dist, true
		}
	}
	return best, found
}

// backOffFromEdge shortens the horizontal displacement of a sneaking, grounded actor so that it does not walk off
// a ledge higher than it can step down.
func (in *Integrator) backOffFromEdge(s *State, displacement mgl64.Vec3) mgl64.Vec3 {
	if !s.Sneaking || !s.OnGround() || displacement[1] > 0 {
		return displacement
	}

	bb := s.BBox().GrowVec3(mgl64.Vec3{-game.SneakEdgeBoundary, 0, -game.SneakEdgeBoundary})
	drop := -math.Max(s.StepHeight, game.DefaultStepHeight) * 1.01
	x, z := displacement[0], displacement[2]

	for x != 0 && !in.collides(bb.Translate(mgl64.Vec3{x, drop, 0}), s) {
		x = backOff(x)
	}
	for z != 0 && !in.collides(bb.Translate(mgl64.Vec3{0, drop, z}), s) {
		z = backOff(z)
	}
	for x != 0 && z != 0 && !in.collides(bb.Translate(mgl64.Vec3{x, drop, z}), s) {
		x, z = backOff(x), backOff(z)
	}
	return mgl64.Vec3{x, displacement[1], z}
}

func backOff(v float64) float64 {
	switch {
	case v < game.SneakEdgeOffset && v >= -game.SneakEdgeOffset:
		return 0
	case v > 0:
		return v - game.SneakEdgeOffset
	default:
		return v + game.SneakEdgeOffset
	}
}

// collides returns true if bb intersects any collider.
func (in *Integrator) collides(bb cube.BBox, s *State) bool {
	return supports(in.Gather(bb, s.BBox(), s.ID), bb)
}

// UpdateFluids samples the water and lava around the actor, records how deep it is in each and applies the push
// of flowing fluid to its velocity.
func (in *Integrator) UpdateFluids(s *State) {
	for _, q := range []FluidQuery{
		{Tag: game.FluidWater, FlowScale: in.Options.WaterFlowScale},
		{Tag: game.FluidLava, FlowScale: in.Options.lavaFlowScale()},
	} {
		q.Pushable, q.Heavy, q.Velocity = s.Kind.FluidPushable, s.Kind.Heavy, s.Vel
		res := in.Fluids.Sample(s.BBox(), q)

		s.FluidHeight[q.Tag] = res.SubmersionDepth
		s.TouchingFluid[q.Tag] = res.Touching
		s.Vel = s.Vel.Add(res.PushVelocityDelta)
		in.Options.debugf("fluid %d: tag=%s touching=%t depth=%.3f push=%v", s.ID, q.Tag, res.Touching, res.SubmersionDepth, res.PushVelocityDelta)
	}
}

func (in *Integrator) rejectDisplacement(s *State, displacement mgl64.Vec3) {
	in.log().WithFields(logrus.Fields{
		"actor":        s.ID,
		"kind":         s.Kind.Name,
		"position":     s.Pos,
		"displacement": displacement,
	}).Warn("rejected non-finite displacement")
}

func (in *Integrator) report(s *State, displacement mgl64.Vec3, class MoverClass, cause error) {
	in.emit(DiagnosticReport{
		ActorID:      s.ID,
		Kind:         s.Kind.Name,
		Class:        class,
		Position:     s.Pos,
		Velocity:     s.Vel,
		Displacement: displacement,
		NearbyBlocks: in.nearbyBlocks(s.BBox()),
		Cause:        cause,
	})
}

func (in *Integrator) emit(r DiagnosticReport) {
	in.log().WithField("actor", r.ActorID).Errorf("move skipped: %s", r)
	if in.Report != nil {
		in.Report(r)
	}
}

// nearbyBlocks returns the positions of the solid blocks around bb for a diagnostic report. Panics from the
// world are swallowed since the report is usually built while handling one.
func (in *Integrator) nearbyBlocks(bb cube.BBox) (positions []cube.Pos) {
	if in.World == nil {
		return nil
	}
	defer func() {
		_ = recover()
	}()
	shapes, _ := in.World.ShapesIn(bb.Grow(1))
	for _, shape := range shapes {
		if pos, ok := shape.Block(); ok && len(positions) < maxReportBlocks {
			positions = append(positions, pos)
		}
	}
	return positions
}

func (in *Integrator) log() logrus.FieldLogger {
	if in.Log == nil {
		return logrus.StandardLogger()
	}
	return in.Log
}
