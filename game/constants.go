package game

const (
	// Epsilon is the tolerance used when clipping a displacement against a collider. Gaps smaller than this are
	// treated as touching.
	Epsilon = 1e-7
	// CollisionThreshold is the minimum per-axis difference between a requested and resolved displacement for the
	// axis to be flagged as collided.
	CollisionThreshold = 1e-5

	DefaultStepHeight   = 0.6
	StepDownProbe       = 1e-5
	SupportProbeDepth   = 1e-6
	MinorCollisionAngle = 0.13962634

	StuckMultiplierThreshold = 1e-7
	PistonMovementLimit      = 0.51

	SneakEdgeBoundary = 0.025
	SneakEdgeOffset   = 0.05

	FluidBoxDeflation      = 0.001
	FluidFlowDepthCutoff   = 0.4
	FluidSourceDepth       = 8
	FluidHeightDivisor     = 9.0
	FluidBelowHeightOffset = 0.8888889
	FallingFluidDrop       = -6.0

	WaterFlowScale         = 0.014
	LavaFlowScale          = 0.0023333333333333335
	UltraWarmLavaFlowScale = 0.007

	MinFluidPushHorizontal = 0.003
	MinFluidPush           = 0.0045000000000000005
)
