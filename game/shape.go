package game

import (
	"cmp"
	"slices"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// VoxelShape is an ordered, deduplicated set of world-space boxes, usually the collision boxes of a single block.
// The per-axis coordinate projections are computed once on construction and are sorted ascending.
type VoxelShape struct {
	boxes  []cube.BBox
	coords [3][]float64

	origin cube.Pos
	block  bool
}

// NewVoxelShape creates a VoxelShape from the boxes passed. Boxes without volume are dropped, the rest are sorted
// and deduplicated.
func NewVoxelShape(boxes ...cube.BBox) VoxelShape {
	s := VoxelShape{boxes: make([]cube.BBox, 0, len(boxes))}
	for _, bb := range boxes {
		if HasVolume(bb) {
			s.boxes = append(s.boxes, bb)
		}
	}
	slices.SortFunc(s.boxes, compareBoxes)
	s.boxes = slices.CompactFunc(s.boxes, func(a, b cube.BBox) bool {
		return compareBoxes(a, b) == 0
	})

	for _, axis := range Axes {
		coords := make([]float64, 0, len(s.boxes)*2)
		for _, bb := range s.boxes {
			coords = append(coords, bb.Min()[axis], bb.Max()[axis])
		}
		slices.Sort(coords)
		s.coords[axis] = slices.Compact(coords)
	}
	return s
}

// NewBlockShape creates a VoxelShape from the block-relative boxes of the block at pos, translating them into
// world space.
func NewBlockShape(pos cube.Pos, boxes ...cube.BBox) VoxelShape {
	offset := pos.Vec3()
	translated := make([]cube.BBox, len(boxes))
	for i, bb := range boxes {
		translated[i] = bb.Translate(offset)
	}
	s := NewVoxelShape(translated...)
	s.origin, s.block = pos, true
	return s
}

// Boxes returns the boxes of the shape in their sorted order. The slice must not be modified.
func (s VoxelShape) Boxes() []cube.BBox {
	return s.boxes
}

// Coords returns the sorted, deduplicated projections of every box boundary on the axis passed.
func (s VoxelShape) Coords(axis Axis) []float64 {
	return s.coords[axis]
}

// Empty returns true if the shape has no boxes.
func (s VoxelShape) Empty() bool {
	return len(s.boxes) == 0
}

// Block returns the position of the block the shape belongs to, if it was created with NewBlockShape.
func (s VoxelShape) Block() (cube.Pos, bool) {
	return s.origin, s.block
}

// Intersects returns true if any box of the shape strictly intersects bb.
func (s VoxelShape) Intersects(bb cube.BBox) bool {
	for _, box := range s.boxes {
		if Intersects(box, bb) {
			return true
		}
	}
	return false
}

// Bounds returns the smallest box containing every box of the shape, or a zero box if the shape is empty.
func (s VoxelShape) Bounds() cube.BBox {
	if s.Empty() {
		return cube.BBox{}
	}
	return cube.Box(
		s.coords[AxisX][0], s.coords[AxisY][0], s.coords[AxisZ][0],
		s.coords[AxisX][len(s.coords[AxisX])-1], s.coords[AxisY][len(s.coords[AxisY])-1], s.coords[AxisZ][len(s.coords[AxisZ])-1],
	)
}

// Translate returns a copy of the shape moved by vec. The block origin, if any, is kept.
func (s VoxelShape) Translate(vec mgl64.Vec3) VoxelShape {
	boxes := make([]cube.BBox, len(s.boxes))
	for i, bb := range s.boxes {
		boxes[i] = bb.Translate(vec)
	}
	t := NewVoxelShape(boxes...)
	t.origin, t.block = s.origin, s.block
	return t
}

func compareBoxes(a, b cube.BBox) int {
	aMin, bMin := a.Min(), b.Min()
	for i := range 3 {
		if c := cmp.Compare(aMin[i], bMin[i]); c != 0 {
			return c
		}
	}
	aMax, bMax := a.Max(), b.Max()
	for i := range 3 {
		if c := cmp.Compare(aMax[i], bMax[i]); c != 0 {
			return c
		}
	}
	return 0
}
