package movement

import (
	"sync/atomic"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesim/entity"
	"github.com/oomph-ac/movesim/game"
)

// GroundState is the grounded state of an actor.
type GroundState uint8

const (
	Airborne GroundState = iota
	Grounded
)

func (g GroundState) String() string {
	if g == Grounded {
		return "grounded"
	}
	return "airborne"
}

// MoverClass describes what is moving an actor. Some classes change how a displacement is applied.
type MoverClass uint8

const (
	// MoverSelf is an actor moving on its own.
	MoverSelf MoverClass = iota
	// MoverPlayer is a player moving from input.
	MoverPlayer
	// MoverPiston is a piston pushing the actor. Every axis of the displacement is limited.
	MoverPiston
	MoverShulkerBox
	MoverShulker
)

func (c MoverClass) String() string {
	switch c {
	case MoverSelf:
		return "self"
	case MoverPlayer:
		return "player"
	case MoverPiston:
		return "piston"
	case MoverShulkerBox:
		return "shulker_box"
	default:
		return "shulker"
	}
}

// State holds the kinematic state of a single actor. A State has exactly one owner at a time: it must not be
// moved from more than one goroutine at once. The fields are plain values; the integrator updates them in place.
type State struct {
	// ID is the runtime ID of the actor, used to exclude it and its vehicle from actor collisions.
	ID   uint64
	Kind entity.Kind

	Pos, LastPos mgl64.Vec3
	Vel          mgl64.Vec3

	StepHeight float64
	Sneaking   bool

	Ground GroundState

	HorizontalCollision      bool
	VerticalCollision        bool
	VerticalCollisionBelow   bool
	MinorHorizontalCollision bool
	CollideX, CollideZ       bool

	// SupportingBlockPos is the block the actor is standing on. It is only set while grounded.
	SupportingBlockPos *cube.Pos

	// FluidHeight is the submersion depth of the actor per fluid tag, updated by Integrator.UpdateFluids.
	FluidHeight map[string]float64
	// TouchingFluid is true for every fluid tag the actor overlaps.
	TouchingFluid map[string]bool

	stuckSpeedMultiplier mgl64.Vec3

	bbox cube.BBox
	busy atomic.Bool
}

// NewState creates the state of an actor of the kind passed, standing at pos. Actors start airborne.
func NewState(id uint64, kind entity.Kind, pos mgl64.Vec3) *State {
	s := &State{
		ID:            id,
		Kind:          kind,
		StepHeight:    kind.StepHeight,
		FluidHeight:   make(map[string]float64),
		TouchingFluid: make(map[string]bool),
	}
	s.SetPos(pos)
	s.LastPos = pos
	return s
}

// SetPos sets the position of the actor and recomputes its bounding box.
func (s *State) SetPos(pos mgl64.Vec3) {
	s.LastPos = s.Pos
	s.Pos = pos
	s.bbox = game.BoxFromDimensions(pos, s.Kind.Width, s.Kind.Height)
}

// BBox returns the bounding box of the actor at its current position.
func (s *State) BBox() cube.BBox {
	return s.bbox
}

// OnGround returns true if the actor is grounded.
func (s *State) OnGround() bool {
	return s.Ground == Grounded
}

// MakeStuckInBlock sets the multiplier applied to the next displacement, for blocks such as cobwebs that slow
// actors down. The multiplier is consumed by the next move.
func (s *State) MakeStuckInBlock(mul mgl64.Vec3) {
	s.stuckSpeedMultiplier = mul
}

// StuckSpeedMultiplier returns the pending stuck multiplier, or a zero vector if there is none.
func (s *State) StuckSpeedMultiplier() mgl64.Vec3 {
	return s.stuckSpeedMultiplier
}

// snapshot returns a copy of the fields that can be restored if a move is abandoned.
func (s *State) snapshot() stateSnapshot {
	snap := stateSnapshot{
		pos: s.Pos, lastPos: s.LastPos, vel: s.Vel,
		ground: s.Ground, hz: s.HorizontalCollision, vt: s.VerticalCollision,
		below: s.VerticalCollisionBelow, minor: s.MinorHorizontalCollision,
		collideX: s.CollideX, collideZ: s.CollideZ,
		stuck: s.stuckSpeedMultiplier,
	}
	if s.SupportingBlockPos != nil {
		pos := *s.SupportingBlockPos
		snap.supporting = &pos
	}
	return snap
}

type stateSnapshot struct {
	pos, lastPos, vel mgl64.Vec3
	ground            GroundState
	hz, vt, below     bool
	minor             bool
	collideX          bool
	collideZ          bool
	supporting        *cube.Pos
	stuck             mgl64.Vec3
}

func (s *State) restore(snap stateSnapshot) {
	s.Pos, s.LastPos, s.Vel = snap.pos, snap.lastPos, snap.vel
	s.bbox = game.BoxFromDimensions(s.Pos, s.Kind.Width, s.Kind.Height)
	s.Ground = snap.ground
	s.HorizontalCollision, s.VerticalCollision = snap.hz, snap.vt
	s.VerticalCollisionBelow, s.MinorHorizontalCollision = snap.below, snap.minor
	s.CollideX, s.CollideZ = snap.collideX, snap.collideZ
	s.SupportingBlockPos = snap.supporting
	s.stuckSpeedMultiplier = snap.stuck
}
