package movement

import (
	"math/rand"
	"sync"
)

var ctxPool = sync.Pool{
	New: func() any {
		return &Context{}
	},
}

func newCtx(s *State, class MoverClass, r *rand.Rand) *Context {
	ctx := ctxPool.Get().(*Context)
	ctx.State = s
	ctx.Class = class
	ctx.Rand = r
	return ctx
}

func putCtx(ctx *Context) {
	ctx.reset()
	ctxPool.Put(ctx)
}

func (ctx *Context) reset() {
	ctx.State = nil
	ctx.Class = MoverSelf
	ctx.Rand = nil
	ctx.cancel = false
}
