package movement

import (
	"encoding/binary"
	"math/rand"
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesim/game"
	"github.com/zeebo/xxh3"
)

// Body is a single actor moved by an Integrator. Move, SampleFluid and UpdateFluids must only be called by the
// goroutine that owns the body.
type Body struct {
	in    *Integrator
	state *State
	rand  *rand.Rand

	h      Handler
	hMutex sync.Mutex
}

// NewBody creates a body for the state passed. The random source handed to handlers is seeded from seed and the
// runtime ID of the actor, so that two bodies never share a sequence.
func NewBody(in *Integrator, s *State, seed int64) *Body {
	return &Body{
		in:    in,
		state: s,
		rand:  rand.New(rand.NewSource(SeedFor(seed, s.ID))),
		h:     NopHandler{},
	}
}

// SeedFor derives the random seed of an actor from a world seed and its runtime ID.
func SeedFor(seed int64, id uint64) int64 {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], uint64(seed))
	binary.LittleEndian.PutUint64(b[8:], id)
	return int64(xxh3.Hash(b[:]))
}

// State returns the kinematic state of the body.
func (b *Body) State() *State {
	return b.state
}

// Handle sets the handler of the body. A nil handler resets it to a NopHandler.
func (b *Body) Handle(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	b.hMutex.Lock()
	b.h = h
	b.hMutex.Unlock()
}

func (b *Body) handler() Handler {
	b.hMutex.Lock()
	defer b.hMutex.Unlock()
	return b.h
}

// Move moves the body by displacement.
func (b *Body) Move(displacement mgl64.Vec3, class MoverClass) MoveResult {
	return b.in.move(b.state, displacement, class, b.handler(), b.rand)
}

// SampleFluid samples the fluid with the tag passed around the body without changing its state.
func (b *Body) SampleFluid(tag string) FluidResult {
	scale := b.in.Options.WaterFlowScale
	if tag == game.FluidLava {
		scale = b.in.Options.lavaFlowScale()
	}
	return b.in.Fluids.Sample(b.state.BBox(), FluidQuery{
		Tag:       tag,
		FlowScale: scale,
		Pushable:  b.state.Kind.FluidPushable,
		Heavy:     b.state.Kind.Heavy,
		Velocity:  b.state.Vel,
	})
}

// UpdateFluids updates the fluid heights of the body and applies fluid push to its velocity.
func (b *Body) UpdateFluids() {
	b.in.UpdateFluids(b.state)
}

// SupportingBlock returns the block the body is standing on.
func (b *Body) SupportingBlock() (cube.Pos, bool) {
	if b.state.SupportingBlockPos == nil {
		return cube.Pos{}, false
	}
	return *b.state.SupportingBlockPos, true
}
