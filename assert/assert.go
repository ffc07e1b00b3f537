package assert

import "github.com/oomph-ac/movesim/oerror"

// IsTrue panics with an internal error if ok is false.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
