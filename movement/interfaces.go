package movement

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/movesim/game"
)

// GeometryProvider bridges the world for collision and fluid lookups. Implementations must give concurrent
// readers a stable view of the world for the duration of a query.
type GeometryProvider interface {
	// ShapesIn returns the collision shapes of the blocks intersecting bb. If part of bb is not loaded, the
	// returned error has kind oerror.KindGeometryUnavailable and the shapes of the loaded part are still returned.
	ShapesIn(bb cube.BBox) ([]game.VoxelShape, error)
	// FluidAt returns the fluid held by the block at pos.
	FluidAt(pos cube.Pos) (game.FluidState, bool, error)
	// Loaded returns true if all geometry overlapping bb is available.
	Loaded(bb cube.BBox) bool
	// Border returns the world border, if any.
	Border() (game.Border, bool)
}

// ActorIndex bridges the entity tracking system for collisions between actors.
type ActorIndex interface {
	// HardCollidersIn returns the bounding boxes of actors intersecting bb that others collide with like blocks,
	// excluding self and actors riding together with self.
	HardCollidersIn(bb cube.BBox, self uint64) []cube.BBox
}
