package oerror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindMatching(t *testing.T) {
	err := fmt.Errorf("shapes in region: %w", Newf(KindGeometryUnavailable, "chunk %d,%d not loaded", 1, 2))
	if !errors.Is(err, ErrGeometryUnavailable) {
		t.Fatalf("expected %v to match ErrGeometryUnavailable", err)
	}
	if errors.Is(err, ErrInvalidDisplacement) {
		t.Fatalf("%v must not match ErrInvalidDisplacement", err)
	}
	if !errors.Is(New("boom"), ErrInternal) {
		t.Fatal("New must produce internal errors")
	}
}
