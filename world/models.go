package world

import (
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/model"
	"github.com/df-mc/dragonfly/server/world"
)

// wallModel is the collision of a wall. Unlike the visual model, a wall always collides one and a half blocks
// high.
type wallModel struct {
	north, east, south, west bool
	post                     bool
}

func (m wallModel) boxes() []cube.BBox {
	inset := 0.25
	// Straight walls without a post are thinner.
	if !m.post && ((m.north && m.south && !m.west && !m.east) || (!m.north && !m.south && m.west && m.east)) {
		inset = 0.3125
	}

	bb := cube.Box(0, 0, 0, 1, 1.5, 1)
	for face, connected := range map[cube.Face]bool{
		cube.FaceNorth: m.north,
		cube.FaceSouth: m.south,
		cube.FaceWest:  m.west,
		cube.FaceEast:  m.east,
	} {
		if !connected {
			bb = bb.ExtendTowards(face, -inset)
		}
	}
	return []cube.BBox{bb}
}

// fenceModel is the collision of a fence. A fence connects to fences of the same material, fence gates and
// solid faces, and collides one and a half blocks high.
type fenceModel struct {
	wood bool
}

func (m fenceModel) boxes(pos cube.Pos, src world.BlockSource) []cube.BBox {
	const inset = 0.375
	post := cube.Box(inset, 0, inset, 1-inset, 1.5, 1-inset)

	boxes := []cube.BBox{post}
	for _, face := range cube.HorizontalFaces() {
		side := pos.Side(face)
		switch other := src.Block(side).Model().(type) {
		case model.Fence:
			if other.Wood != m.wood {
				continue
			}
		case model.FenceGate:
		default:
			if !other.FaceSolid(side, face.Opposite(), src) {
				continue
			}
		}
		boxes = append(boxes, post.ExtendTowards(face, inset))
	}
	return boxes
}

// ironBarsModel is the collision of iron bars, which connect to each other, walls and solid faces.
type ironBarsModel struct{}

func (ironBarsModel) boxes(pos cube.Pos, src world.BlockSource) []cube.BBox {
	const (
		thin = 7.0 / 16.0
		half = 8.0 / 16.0
	)
	var boxes []cube.BBox

	for _, pair := range [2][2]cube.Face{{cube.FaceWest, cube.FaceEast}, {cube.FaceNorth, cube.FaceSouth}} {
		a, b := connects(pos, pair[0], src), connects(pos, pair[1], src)
		if !a && !b {
			continue
		}
		// Bars running west to east are thin on Z, bars running north to south are thin on X.
		bb := cube.Box(0, 0, 0, 1, 1, 1).Stretch(cube.Z, -thin)
		if pair[0] == cube.FaceNorth {
			bb = cube.Box(0, 0, 0, 1, 1, 1).Stretch(cube.X, -thin)
		}
		if !a {
			bb = bb.ExtendTowards(pair[0], -half)
		} else if !b {
			bb = bb.ExtendTowards(pair[1], -half)
		}
		boxes = append(boxes, bb)
	}

	if len(boxes) == 0 {
		boxes = append(boxes, cube.Box(0, 0, 0, 1, 1, 1).Stretch(cube.X, -thin).Stretch(cube.Z, -thin))
	}
	return boxes
}

func connects(pos cube.Pos, f cube.Face, src world.BlockSource) bool {
	side := pos.Side(f)
	switch b := src.Block(side).(type) {
	case block.IronBars, block.Wall:
		return true
	default:
		return b.Model().FaceSolid(side, f.Opposite(), src)
	}
}
