package world

import (
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/model"
	"github.com/df-mc/dragonfly/server/world"
)

// collisionOverrides holds blocks whose collision differs from the dragonfly model. A nil entry means the
// block has no collision at all.
var collisionOverrides = map[string][]cube.BBox{
	"minecraft:portal":               nil,
	"minecraft:end_portal":           nil,
	"minecraft:redstone_wire":        nil,
	"minecraft:lever":                nil,
	"minecraft:redstone_torch":       nil,
	"minecraft:unlit_redstone_torch": nil,
	"minecraft:golden_rail":          nil,
	"minecraft:detector_rail":        nil,
	"minecraft:activator_rail":       nil,
	"minecraft:rail":                 nil,
	"minecraft:vine":                 nil,
	"minecraft:cave_vines":           nil,
	"minecraft:twisting_vines":       nil,
	"minecraft:weeping_vines":        nil,
	"minecraft:tallgrass":            nil,
	"minecraft:fern":                 nil,
	"minecraft:red_mushroom":         nil,
	"minecraft:brown_mushroom":       nil,

	"minecraft:web":                {cube.Box(0, 0, 0, 1, 1, 1)},
	"minecraft:bed":                {cube.Box(0, 0, 0, 1, 9.0/16.0, 1)},
	"minecraft:waterlily":          {cube.Box(0, 0, 0, 1, 1.0/64.0, 1)},
	"minecraft:soul_sand":          {cube.Box(0, 0, 0, 1, 7.0/8.0, 1)},
	"minecraft:unpowered_repeater": {cube.Box(0, 0, 0, 1, 1.0/8.0, 1)},
	"minecraft:powered_repeater":   {cube.Box(0, 0, 0, 1, 1.0/8.0, 1)},
	"minecraft:daylight_detector":  {cube.Box(0, 0, 0, 1, 3.0/8.0, 1)},
	"minecraft:end_portal_frame":   {cube.Box(0, 0, 0, 1, 13.0/16.0, 1)},
	"minecraft:flower_pot":         {cube.Box(5/16.0, 0, 5/16.0, 11/16.0, 3/8.0, 11/16.0)},
}

// BlockName returns the name the block is encoded with.
func BlockName(b world.Block) string {
	n, _ := b.EncodeBlock()
	return n
}

// BlockCollisions returns the block-relative collision boxes of the block at pos.
func BlockCollisions(b world.Block, pos cube.Pos, src world.BlockSource) []cube.BBox {
	if boxes, ok := collisionOverrides[BlockName(b)]; ok {
		return boxes
	}

	switch m := b.Model().(type) {
	case model.Wall:
		return wallModel{
			north: m.NorthConnection > 0,
			east:  m.EastConnection > 0,
			south: m.SouthConnection > 0,
			west:  m.WestConnection > 0,
			post:  m.Post,
		}.boxes()
	case model.Fence:
		return fenceModel{wood: m.Wood}.boxes(pos, src)
	}
	if _, ok := b.(block.IronBars); ok {
		return ironBarsModel{}.boxes(pos, src)
	}
	return b.Model().BBox(pos, src)
}
