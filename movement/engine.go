package movement

import (
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

// regionShift is the number of block coordinate bits dropped to find the region of an actor. A region spans
// 4x4 chunks.
const regionShift = 6

// MoveRequest is a single move for Engine.MoveAll.
type MoveRequest struct {
	Body         *Body
	Displacement mgl64.Vec3
	Class        MoverClass
}

// Engine moves many bodies at once. Bodies in different regions are moved concurrently, bodies in the same region
// are moved one after another in request order.
type Engine struct {
	submit func(func())
}

// NewEngine creates an Engine that runs region batches through submit, usually (*worker.Pool).Submit. If submit
// is nil, every region is run on its own goroutine.
func NewEngine(submit func(func())) *Engine {
	if submit == nil {
		submit = func(f func()) { go f() }
	}
	return &Engine{submit: submit}
}

// RegionOf returns the region an actor at pos belongs to.
func RegionOf(pos mgl64.Vec3) protocol.ChunkPos {
	blockPos := cube.PosFromVec3(pos)
	return protocol.ChunkPos{int32(blockPos[0]) >> regionShift, int32(blockPos[2]) >> regionShift}
}

// MoveAll runs every request and returns the results in request order.
func (e *Engine) MoveAll(reqs []MoveRequest) []MoveResult {
	results := make([]MoveResult, len(reqs))

	regions := make(map[protocol.ChunkPos][]int)
	var order []protocol.ChunkPos
	for i, req := range reqs {
		region := RegionOf(req.Body.State().Pos)
		if _, ok := regions[region]; !ok {
			order = append(order, region)
		}
		regions[region] = append(regions[region], i)
	}

	var wg sync.WaitGroup
	wg.Add(len(order))
	for _, region := range order {
		indices := regions[region]
		e.submit(func() {
			defer wg.Done()
			for _, i := range indices {
				results[i] = reqs[i].Body.Move(reqs[i].Displacement, reqs[i].Class)
			}
		})
	}
	wg.Wait()
	return results
}
