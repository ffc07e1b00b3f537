package oerror

import "fmt"

// Kind classifies an Error.
type Kind uint8

const (
	KindInternal Kind = iota
	// KindGeometryUnavailable is returned when a region of the world is not loaded. Callers fail open.
	KindGeometryUnavailable
	// KindInvalidDisplacement is returned for displacements with NaN or infinite components.
	KindInvalidDisplacement
	// KindDegenerateShape marks shapes without volume. They are filtered out rather than reported.
	KindDegenerateShape
)

func (k Kind) String() string {
	switch k {
	case KindGeometryUnavailable:
		return "geometry unavailable"
	case KindInvalidDisplacement:
		return "invalid displacement"
	case KindDegenerateShape:
		return "degenerate shape"
	default:
		return "internal"
	}
}

var (
	ErrInternal            = &Error{Kind: KindInternal, Err: KindInternal.String()}
	ErrGeometryUnavailable = &Error{Kind: KindGeometryUnavailable, Err: KindGeometryUnavailable.String()}
	ErrInvalidDisplacement = &Error{Kind: KindInvalidDisplacement, Err: KindInvalidDisplacement.String()}
	ErrDegenerateShape     = &Error{Kind: KindDegenerateShape, Err: KindDegenerateShape.String()}
)

type Error struct {
	Kind Kind
	Err  string
}

// New returns an internal error with a formatted message.
func New(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Err: fmt.Sprintf(format, args...)}
}

// Newf returns an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so that errors.Is(err, ErrGeometryUnavailable) matches
// any geometry error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
