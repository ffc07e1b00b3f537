package movement

import (
	"slices"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesim/game"
	"github.com/oomph-ac/movesim/internal"
)

// StepRequest holds the inputs of a step-up attempt.
type StepRequest struct {
	// Displacement is the displacement requested for the move.
	Displacement mgl64.Vec3
	// Box is the bounding box of the actor before the move.
	Box cube.BBox
	// Flat is the displacement resolved without stepping.
	Flat mgl64.Vec3
	// StepHeight is the highest ledge the actor can step onto.
	StepHeight float64
	// OnGround is true if the actor was grounded before the move.
	OnGround bool
	// Self is the runtime ID of the actor, excluded from actor collisions.
	Self uint64
}

// landing returns true if the flat resolution stopped the actor while it was falling.
func (r StepRequest) landing() bool {
	return r.Displacement[1] < 0 && r.Flat[1] != r.Displacement[1]
}

// blockedHorizontally returns true if the flat resolution shortened the displacement on X or Z.
func (r StepRequest) blockedHorizontally() bool {
	return r.Flat[0] != r.Displacement[0] || r.Flat[2] != r.Displacement[2]
}

// CanStep returns true if a step-up should be attempted for the request.
func (r StepRequest) CanStep() bool {
	return r.StepHeight > 0 && (r.landing() || r.OnGround) && r.blockedHorizontally()
}

// PlanStep tries to lift the actor onto a ledge that blocked its horizontal movement. Candidate heights are taken
// from the colliders around the actor and tried in ascending order; the first height that lets the actor move
// further horizontally than the flat result wins. If no height helps, or stepping does not apply, the flat result
// is returned unchanged.
func (c *Collider) PlanStep(req StepRequest) mgl64.Vec3 {
	if !req.CanStep() {
		return req.Flat
	}

	base := req.Box
	if req.landing() {
		base = base.Translate(mgl64.Vec3{0, req.Flat[1]})
	}
	query := base.ExtendTowards(cube.FaceUp, req.StepHeight).Extend(mgl64.Vec3{req.Displacement[0], 0, req.Displacement[2]})
	if !req.landing() {
		query = query.ExtendTowards(cube.FaceDown, game.StepDownProbe)
	}
	set := c.Gather(query, req.Box, req.Self)

	heights := internal.FloatSlicePool.Get().(*[]float64)
	defer func() {
		*heights = (*heights)[:0]
		internal.FloatSlicePool.Put(heights)
	}()
	*heights = stepHeights(set, base.Min()[1], req.StepHeight, req.Flat[1], (*heights)[:0])

	flatDist := game.HzDistSqr(req.Flat)
	for _, h := range *heights {
		stepped := Resolve(mgl64.Vec3{req.Displacement[0], h, req.Displacement[2]}, base, set)
		if game.HzDistSqr(stepped) > flatDist {
			stepped[1] += base.Min()[1] - req.Box.Min()[1]
			return stepped
		}
	}
	return req.Flat
}

// stepHeights appends to dst every candidate step height in set: the Y boundaries of all colliders relative to
// bottom, limited to (0, maxHeight] and excluding flatY. The result is sorted ascending without duplicates.
func stepHeights(set CandidateSet, bottom, maxHeight, flatY float64, dst []float64) []float64 {
	add := func(y float64) {
		h := y - bottom
		if h > 0 && h <= maxHeight && h != flatY {
			dst = append(dst, h)
		}
	}
	for _, shape := range set.Shapes {
		for _, y := range shape.Coords(game.AxisY) {
			add(y)
		}
	}
	for _, bb := range set.Colliders {
		add(bb.Min()[1])
		add(bb.Max()[1])
	}
	for _, y := range set.Border.Coords(game.AxisY) {
		add(y)
	}

	slices.Sort(dst)
	return slices.Compact(dst)
}
