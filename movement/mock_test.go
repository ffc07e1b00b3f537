package movement

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesim/entity"
	"github.com/oomph-ac/movesim/game"
	"github.com/oomph-ac/movesim/oerror"
)

var fullBlock = cube.Box(0, 0, 0, 1, 1, 1)

type mockWorld struct {
	blocks   map[cube.Pos][]cube.BBox
	fluids   map[cube.Pos]game.FluidState
	border   *game.Border
	unloaded bool
	panics   bool
}

func newMockWorld() *mockWorld {
	return &mockWorld{
		blocks: make(map[cube.Pos][]cube.BBox),
		fluids: make(map[cube.Pos]game.FluidState),
	}
}

func (m *mockWorld) set(pos cube.Pos, boxes ...cube.BBox) {
	m.blocks[pos] = boxes
}

func (m *mockWorld) fill(a, b cube.Pos) {
	for x := a[0]; x <= b[0]; x++ {
		for y := a[1]; y <= b[1]; y++ {
			for z := a[2]; z <= b[2]; z++ {
				m.set(cube.Pos{x, y, z}, fullBlock)
			}
		}
	}
}

func (m *mockWorld) ShapesIn(bb cube.BBox) ([]game.VoxelShape, error) {
	if m.panics {
		panic("corrupt chunk")
	}
	if m.unloaded {
		return nil, oerror.Newf(oerror.KindGeometryUnavailable, "unloaded")
	}
	var shapes []game.VoxelShape
	for pos, boxes := range m.blocks {
		shape := game.NewBlockShape(pos, boxes...)
		if shape.Intersects(bb) {
			shapes = append(shapes, shape)
		}
	}
	return shapes, nil
}

func (m *mockWorld) FluidAt(pos cube.Pos) (game.FluidState, bool, error) {
	if m.unloaded {
		return game.FluidState{}, false, oerror.Newf(oerror.KindGeometryUnavailable, "unloaded")
	}
	f, ok := m.fluids[pos]
	return f, ok, nil
}

func (m *mockWorld) Loaded(cube.BBox) bool {
	return !m.unloaded
}

func (m *mockWorld) Border() (game.Border, bool) {
	if m.border == nil {
		return game.Border{}, false
	}
	return *m.border, true
}

func newTestIntegrator(w GeometryProvider, actors ActorIndex) *Integrator {
	in := NewIntegrator(w, actors, DefaultOptions(), nil)
	in.Report = nil
	return in
}

func newGroundedState(id uint64, pos mgl64.Vec3) *State {
	s := NewState(id, entity.Player, pos)
	s.Ground = Grounded
	return s
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
