package world

import (
	"errors"
	"testing"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesim/game"
	"github.com/oomph-ac/movesim/oerror"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

func TestShapesInFloor(t *testing.T) {
	w := New(nil)
	w.Fill(cube.Pos{0, 0, 0}, cube.Pos{3, 0, 3}, block.Stone{})

	shapes, err := w.ShapesIn(cube.Box(1.2, 0.9, 1.2, 1.8, 2.7, 1.8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	pos, ok := shapes[0].Block()
	if !ok || pos != (cube.Pos{1, 0, 1}) {
		t.Fatalf("expected shape of block 1,0,1, got %v", pos)
	}

	// A box resting on the floor only touches it.
	shapes, _ = w.ShapesIn(cube.Box(1.2, 1, 1.2, 1.8, 2.8, 1.8))
	if len(shapes) != 0 {
		t.Fatalf("touching blocks must not be returned, got %d", len(shapes))
	}
}

func TestShapesInSlab(t *testing.T) {
	w := New(nil)
	w.LoadChunk(protocol.ChunkPos{0, 0})
	w.SetBlock(cube.Pos{2, 1, 2}, block.Slab{Block: block.Stone{}})

	shapes, err := w.ShapesIn(cube.Box(2, 1, 2, 3, 2, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	if top := shapes[0].Bounds().Max()[1]; top != 1.5 {
		t.Fatalf("expected slab top at 1.5, got %v", top)
	}
}

func TestShapesInSkipsLiquids(t *testing.T) {
	w := New(nil)
	w.SetBlock(cube.Pos{0, 0, 0}, block.Water{Still: true, Depth: 8})

	shapes, err := w.ShapesIn(cube.Box(0, 0, 0, 1, 1, 1))
	if err != nil || len(shapes) != 0 {
		t.Fatalf("expected no shapes for water, got %d (%v)", len(shapes), err)
	}
	fluid, ok, err := w.FluidAt(cube.Pos{0, 0, 0})
	if err != nil || !ok {
		t.Fatalf("expected fluid, got %v (%v)", ok, err)
	}
	if fluid.Type != game.FluidWater || fluid.Depth != 8 {
		t.Fatalf("unexpected fluid state %+v", fluid)
	}
	if _, ok, _ := w.FluidAt(cube.Pos{1, 0, 0}); ok {
		t.Fatal("air must not hold fluid")
	}
}

func TestUnloadedGeometry(t *testing.T) {
	w := New(nil)
	w.SetBlock(cube.Pos{0, 0, 0}, block.Stone{})

	if w.Loaded(cube.Box(-1, 0, 0, 1, 1, 1)) {
		t.Fatal("box crossing into chunk -1,0 must not be loaded")
	}
	if !w.Loaded(cube.Box(0, 0, 0, 15, 1, 15)) {
		t.Fatal("box inside chunk 0,0 must be loaded")
	}
	shapes, err := w.ShapesIn(cube.Box(-1, 0.5, 0.2, 0.5, 1.5, 0.8))
	if !errors.Is(err, oerror.ErrGeometryUnavailable) {
		t.Fatalf("expected geometry unavailable, got %v", err)
	}
	if len(shapes) != 1 {
		t.Fatalf("shapes of the loaded part must still be returned, got %d", len(shapes))
	}
	if _, _, err := w.FluidAt(cube.Pos{-5, 0, 0}); !errors.Is(err, oerror.ErrGeometryUnavailable) {
		t.Fatalf("expected geometry unavailable, got %v", err)
	}
}

func TestBorder(t *testing.T) {
	w := New(nil)
	if _, ok := w.Border(); ok {
		t.Fatal("new world must not have a border")
	}
	w.SetBorder(&game.Border{Center: mgl64.Vec2{0, 0}, Size: 32})
	b, ok := w.Border()
	if !ok || b.MaxX() != 16 {
		t.Fatalf("unexpected border %+v", b)
	}
}

func TestShapesInFence(t *testing.T) {
	w := New(nil)
	w.SetBlock(cube.Pos{0, 1, 0}, block.WoodFence{Wood: block.OakWood()})
	w.SetBlock(cube.Pos{1, 1, 0}, block.WoodFence{Wood: block.OakWood()})

	shapes, err := w.ShapesIn(cube.Box(0, 1, 0, 1, 2, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, shape := range shapes {
		if pos, _ := shape.Block(); pos != (cube.Pos{0, 1, 0}) {
			continue
		}
		bounds := shape.Bounds()
		if bounds.Max()[1] != 2.5 {
			t.Fatalf("expected the fence to collide 1.5 blocks high, got %v", bounds.Max()[1])
		}
		if bounds.Max()[0] != 1 || bounds.Min()[0] != 0.375 {
			t.Fatalf("expected the fence to connect east only, got %v", bounds)
		}
		return
	}
	t.Fatal("expected a shape for the fence at 0,1,0")
}

func TestNewChunksHoldAir(t *testing.T) {
	w := New(nil)
	w.LoadChunk(protocol.ChunkPos{0, 0})
	if _, ok := w.Block(cube.Pos{3, 4, 5}).(block.Air); !ok {
		t.Fatalf("expected a loaded chunk to hold air, got %T", w.Block(cube.Pos{3, 4, 5}))
	}

	// Setting a block in an unloaded chunk creates it filled with air.
	w.SetBlock(cube.Pos{20, 1, 20}, block.Stone{})
	if _, ok := w.Block(cube.Pos{21, 1, 20}).(block.Air); !ok {
		t.Fatalf("expected the rest of a created chunk to hold air, got %T", w.Block(cube.Pos{21, 1, 20}))
	}
	shapes, err := w.ShapesIn(cube.Box(20, 0.5, 20, 22, 2, 21))
	if err != nil || len(shapes) != 1 {
		t.Fatalf("expected only the stone to collide, got %d shapes, %v", len(shapes), err)
	}
}
