package world

import (
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/df-mc/dragonfly/server/world/chunk"
	"github.com/oomph-ac/movesim/game"
	"github.com/oomph-ac/movesim/oerror"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// World is an in-memory, chunked block store. It provides the static geometry and fluid state actors collide
// with. All methods are safe for concurrent use; writers block readers for the duration of the write.
type World struct {
	chunks map[protocol.ChunkPos]*chunk.Chunk
	border *game.Border
	log    logrus.FieldLogger

	deadlock.RWMutex
}

// New creates an empty World. No chunks are loaded.
func New(log logrus.FieldLogger) *World {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &World{
		chunks: make(map[protocol.ChunkPos]*chunk.Chunk),
		log:    log,
	}
}

// Range returns the vertical range of the world.
func (w *World) Range() cube.Range {
	return world.Overworld.Range()
}

// ChunkPosOf returns the position of the chunk holding the block position passed.
func ChunkPosOf(pos cube.Pos) protocol.ChunkPos {
	return protocol.ChunkPos{int32(pos[0]) >> 4, int32(pos[2]) >> 4}
}

// AddChunk adds a chunk to the world, replacing any chunk previously at the position.
func (w *World) AddChunk(pos protocol.ChunkPos, c *chunk.Chunk) {
	w.Lock()
	defer w.Unlock()

	w.chunks[pos] = c
}

// LoadChunk loads an empty chunk at the position passed if no chunk is loaded there yet.
func (w *World) LoadChunk(pos protocol.ChunkPos) {
	w.Lock()
	defer w.Unlock()

	if _, ok := w.chunks[pos]; !ok {
		w.chunks[pos] = chunk.New(AirRuntimeID, w.Range())
	}
}

// LoadArea loads empty chunks covering every block between a and b.
func (w *World) LoadArea(a, b cube.Pos) {
	minC, maxC := ChunkPosOf(a), ChunkPosOf(b)
	for x := min(minC[0], maxC[0]); x <= max(minC[0], maxC[0]); x++ {
		for z := min(minC[1], maxC[1]); z <= max(minC[1], maxC[1]); z++ {
			w.LoadChunk(protocol.ChunkPos{x, z})
		}
	}
}

// UnloadChunk removes the chunk at the position passed.
func (w *World) UnloadChunk(pos protocol.ChunkPos) {
	w.Lock()
	defer w.Unlock()

	delete(w.chunks, pos)
}

// ChunkLoaded returns true if the chunk at the position passed is loaded.
func (w *World) ChunkLoaded(pos protocol.ChunkPos) bool {
	w.RLock()
	defer w.RUnlock()

	_, ok := w.chunks[pos]
	return ok
}

// Loaded returns true if every chunk overlapping the horizontal extent of bb is loaded.
func (w *World) Loaded(bb cube.BBox) bool {
	min, max := cube.PosFromVec3(bb.Min()), cube.PosFromVec3(bb.Max())
	minC, maxC := ChunkPosOf(min), ChunkPosOf(max)

	w.RLock()
	defer w.RUnlock()

	for x := minC[0]; x <= maxC[0]; x++ {
		for z := minC[1]; z <= maxC[1]; z++ {
			if _, ok := w.chunks[protocol.ChunkPos{x, z}]; !ok {
				return false
			}
		}
	}
	return true
}

// Block returns the block at the position passed. Positions outside the world or in unloaded chunks hold air.
func (w *World) Block(pos cube.Pos) world.Block {
	b, _ := w.block(pos)
	return b
}

// block returns the block at pos and whether the chunk holding it is loaded.
func (w *World) block(pos cube.Pos) (world.Block, bool) {
	if pos.OutOfBounds(w.Range()) {
		return block.Air{}, true
	}

	w.RLock()
	c, ok := w.chunks[ChunkPosOf(pos)]
	w.RUnlock()
	if !ok {
		return block.Air{}, false
	}

	rid := c.Block(uint8(pos[0]), int16(pos[1]), uint8(pos[2]), 0)
	if b, ok := world.BlockByRuntimeID(rid); ok {
		return b, true
	}
	return block.Air{}, true
}

// SetBlock sets the block at the position passed, loading an empty chunk first if needed.
func (w *World) SetBlock(pos cube.Pos, b world.Block) {
	if pos.OutOfBounds(w.Range()) {
		return
	}
	chunkPos := ChunkPosOf(pos)

	w.Lock()
	defer w.Unlock()

	c, ok := w.chunks[chunkPos]
	if !ok {
		c = chunk.New(AirRuntimeID, w.Range())
		w.chunks[chunkPos] = c
	}
	c.SetBlock(uint8(pos[0]), int16(pos[1]), uint8(pos[2]), 0, world.BlockRuntimeID(b))
}

// Fill sets every block between a and b (inclusive) to b.
func (w *World) Fill(a, b cube.Pos, bl world.Block) {
	for x := min(a[0], b[0]); x <= max(a[0], b[0]); x++ {
		for y := min(a[1], b[1]); y <= max(a[1], b[1]); y++ {
			for z := min(a[2], b[2]); z <= max(a[2], b[2]); z++ {
				w.SetBlock(cube.Pos{x, y, z}, bl)
			}
		}
	}
}

// SetBorder sets the world border. A nil border removes it.
func (w *World) SetBorder(b *game.Border) {
	w.Lock()
	defer w.Unlock()

	w.border = b
}

// Border returns the world border, if one is set.
func (w *World) Border() (game.Border, bool) {
	w.RLock()
	defer w.RUnlock()

	if w.border == nil {
		return game.Border{}, false
	}
	return *w.border, true
}

// ShapesIn returns the collision shapes of every block intersecting bb. Liquids and blocks without collision
// are skipped. If part of bb lies in unloaded chunks, the shapes of the loaded part are returned together with
// an error of kind oerror.KindGeometryUnavailable.
func (w *World) ShapesIn(bb cube.BBox) ([]game.VoxelShape, error) {
	var (
		shapes   []game.VoxelShape
		unloaded bool
	)

	// Blocks such as walls and fences extend above their own cell, so the search starts one block lower.
	search := bb.ExtendTowards(cube.FaceDown, 1)
	game.BlocksIn(search, func(pos cube.Pos) bool {
		b, loaded := w.block(pos)
		if !loaded {
			unloaded = true
			return true
		}
		if _, isLiquid := b.(world.Liquid); isLiquid {
			return true
		}
		boxes := BlockCollisions(b, pos, w)
		if len(boxes) == 0 {
			return true
		}

		shape := game.NewBlockShape(pos, boxes...)
		if shape.Intersects(bb) {
			shapes = append(shapes, shape)
		}
		return true
	})

	if unloaded {
		w.log.WithField("bbox", bb).Debug("shape query overlaps unloaded chunks")
		return shapes, oerror.Newf(oerror.KindGeometryUnavailable, "shape query %v overlaps unloaded chunks", bb)
	}
	return shapes, nil
}

// FluidAt returns the fluid held by the block at pos. The boolean is false if the block holds no fluid.
func (w *World) FluidAt(pos cube.Pos) (game.FluidState, bool, error) {
	b, loaded := w.block(pos)
	if !loaded {
		return game.FluidState{}, false, oerror.Newf(oerror.KindGeometryUnavailable, "fluid query at %v in unloaded chunk", pos)
	}
	l, ok := b.(world.Liquid)
	if !ok {
		return game.FluidState{}, false, nil
	}
	return game.FluidStateOf(l), true, nil
}
