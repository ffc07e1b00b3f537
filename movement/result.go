package movement

import "github.com/go-gl/mathgl/mgl64"

// Outcome describes which path a move took.
type Outcome uint8

const (
	OutcomeNormal Outcome = iota
	// OutcomeRejected is returned for displacements with NaN or infinite components. The state is untouched.
	OutcomeRejected
	// OutcomeCancelled is returned when a handler cancelled the move.
	OutcomeCancelled
	// OutcomeSkipped is returned when the move failed internally. The state is restored and a diagnostic report
	// is emitted.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNormal:
		return "normal"
	case OutcomeRejected:
		return "rejected"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "skipped"
	}
}

// MoveResult captures the outcome of a single move.
type MoveResult struct {
	// Requested is the displacement passed to the move.
	Requested mgl64.Vec3
	// Resolved is the displacement that was applied to the position.
	Resolved mgl64.Vec3
	// Stepped is true if the actor was lifted onto a ledge.
	Stepped bool

	Position mgl64.Vec3
	Velocity mgl64.Vec3

	OnGround                 bool
	HorizontalCollision      bool
	VerticalCollision        bool
	VerticalCollisionBelow   bool
	MinorHorizontalCollision bool

	Outcome Outcome
}

func resultFromState(s *State, requested, resolved mgl64.Vec3, stepped bool, outcome Outcome) MoveResult {
	return MoveResult{
		Requested:                requested,
		Resolved:                 resolved,
		Stepped:                  stepped,
		Position:                 s.Pos,
		Velocity:                 s.Vel,
		OnGround:                 s.OnGround(),
		HorizontalCollision:      s.HorizontalCollision,
		VerticalCollision:        s.VerticalCollision,
		VerticalCollisionBelow:   s.VerticalCollisionBelow,
		MinorHorizontalCollision: s.MinorHorizontalCollision,
		Outcome:                  outcome,
	}
}
