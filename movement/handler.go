package movement

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Handler handles movement of a single actor. Implementations run on the goroutine that owns the actor and must
// not move it themselves.
type Handler interface {
	// HandleMove is called before a displacement is resolved. The displacement may be modified, or the move
	// cancelled with ctx.Cancel.
	HandleMove(ctx *Context, displacement *mgl64.Vec3)
	// HandleMoved is called after a move with the final result. The state in ctx already reflects the move.
	HandleMoved(ctx *Context, result MoveResult)
}

// NopHandler implements Handler and does nothing.
type NopHandler struct{}

func (NopHandler) HandleMove(*Context, *mgl64.Vec3) {}
func (NopHandler) HandleMoved(*Context, MoveResult) {}

// Context is passed to a Handler for a single move.
type Context struct {
	// State is the state of the actor being moved.
	State *State
	// Class is what is moving the actor.
	Class MoverClass
	// Rand is the random source of the actor. It is seeded per actor so that moves are reproducible.
	Rand *rand.Rand

	cancel bool
}

// Cancel cancels the move. HandleMoved is not called for cancelled moves.
func (ctx *Context) Cancel() {
	ctx.cancel = true
}

// Cancelled returns true if the move was cancelled.
func (ctx *Context) Cancelled() bool {
	return ctx.cancel
}
