package movement

import "github.com/oomph-ac/movesim/game"

// Options define integrator behaviour.
type Options struct {
	// WaterFlowScale and LavaFlowScale scale the push applied by flowing fluids.
	WaterFlowScale float64
	LavaFlowScale  float64
	// UltraWarm makes lava flow faster, as it does in the nether.
	UltraWarm bool

	// EdgeBackOff stops sneaking players and local actors from walking off ledges.
	EdgeBackOff bool

	// Debugf receives internal trace logs for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}

// DefaultOptions ...
func DefaultOptions() Options {
	return Options{
		WaterFlowScale: game.WaterFlowScale,
		LavaFlowScale:  game.LavaFlowScale,
		EdgeBackOff:    true,
	}
}

func (o Options) debugf(format string, args ...any) {
	if o.Debugf != nil {
		o.Debugf(format, args...)
	}
}

// lavaFlowScale returns the lava flow scale for the dimension the options describe.
func (o Options) lavaFlowScale() float64 {
	if o.UltraWarm {
		return game.UltraWarmLavaFlowScale
	}
	return o.LavaFlowScale
}
