package world

import (
	_ "unsafe"

	"github.com/df-mc/dragonfly/server/world/chunk"
	"github.com/oomph-ac/movesim/oerror"
)

// AirRuntimeID is the runtime ID of air. Chunks loaded or created by the block store are filled with it.
var AirRuntimeID uint32

// finaliseBlockRegistry sorts dragonfly's registered block states so that runtime IDs can be looked up before a
// dragonfly server is started.
//
//go:linkname finaliseBlockRegistry github.com/df-mc/dragonfly/server/world.finaliseBlockRegistry
func finaliseBlockRegistry()

func init() {
	finaliseBlockRegistry()
	rid, ok := chunk.StateToRuntimeID("minecraft:air", nil)
	if !ok {
		panic(oerror.Newf(oerror.KindInternal, "block store: air is not a registered block state"))
	}
	AirRuntimeID = rid
}
