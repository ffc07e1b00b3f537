package game

import (
	"github.com/df-mc/dragonfly/server/world"
)

const (
	FluidWater = "water"
	FluidLava  = "lava"
)

// FluidState is the fluid held by a single block.
type FluidState struct {
	// Type is the fluid tag, FluidWater or FluidLava.
	Type string
	// Depth is the fluid level from 1 to 8, where 8 is a source block.
	Depth int
	// Falling is true if the fluid is flowing downwards.
	Falling bool
}

// FluidStateOf returns the FluidState of a dragonfly liquid block.
func FluidStateOf(l world.Liquid) FluidState {
	return FluidState{
		Type:    l.LiquidType(),
		Depth:   l.LiquidDepth(),
		Falling: l.LiquidFalling(),
	}
}

// Height returns the height of the fluid within its block, ignoring the block above.
func (f FluidState) Height() float64 {
	return float64(f.Depth) / FluidHeightDivisor
}

// Empty returns true if the state holds no fluid.
func (f FluidState) Empty() bool {
	return f.Type == "" || f.Depth <= 0
}
