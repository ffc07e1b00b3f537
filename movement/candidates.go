package movement

import (
	"errors"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/movesim/game"
	"github.com/oomph-ac/movesim/oerror"
	"github.com/sirupsen/logrus"
)

// CandidateSet is every collider that may obstruct a single move: block shapes, hard actor hitboxes and the
// world border. A set is gathered for one query and never reused.
type CandidateSet struct {
	Shapes    []game.VoxelShape
	Colliders []cube.BBox
	Border    game.VoxelShape
}

// Empty returns true if the set holds no colliders.
func (c CandidateSet) Empty() bool {
	return len(c.Shapes) == 0 && len(c.Colliders) == 0 && c.Border.Empty()
}

// each calls f for every box in the set with a non-zero volume.
func (c CandidateSet) each(f func(bb cube.BBox)) {
	for _, shape := range c.Shapes {
		for _, bb := range shape.Boxes() {
			f(bb)
		}
	}
	for _, bb := range c.Colliders {
		if game.HasVolume(bb) {
			f(bb)
		}
	}
	for _, bb := range c.Border.Boxes() {
		f(bb)
	}
}

// Collider gathers candidate sets from the world and the actors in it, and plans step-ups.
type Collider struct {
	World  GeometryProvider
	Actors ActorIndex
	Log    logrus.FieldLogger
}

// Gather collects the candidate set for query. box is the current bounding box of the actor self, used to decide
// whether the world border takes part. Missing geometry is treated as empty space.
func (c *Collider) Gather(query, box cube.BBox, self uint64) CandidateSet {
	var set CandidateSet
	if c.World != nil {
		shapes, err := c.World.ShapesIn(query)
		if err != nil {
			c.logGeometryError(err, query)
		}
		set.Shapes = shapes

		if border, ok := c.World.Border(); ok && border.CloseTo(box) {
			set.Border = border.Shape(query)
		}
	}
	if c.Actors != nil {
		set.Colliders = c.Actors.HardCollidersIn(query, self)
	}
	return set
}

func (c *Collider) logGeometryError(err error, query cube.BBox) {
	if c.Log == nil {
		return
	}
	if errors.Is(err, oerror.ErrGeometryUnavailable) {
		c.Log.WithField("query", query).Debugf("gather: %v", err)
		return
	}
	c.Log.WithField("query", query).Warnf("gather: %v", err)
}
