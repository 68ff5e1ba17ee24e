// Package testutil provides shared test helpers and fixtures for the
// optics packages.
package testutil

import (
	"math"

	"github.com/banshee-data/polarization.train/internal/optics/l1geom"
	"github.com/banshee-data/polarization.train/internal/optics/l2jones"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

// AssertStateApprox checks that got equals want up to a global phase.
func AssertStateApprox(t TB, got, want l2jones.State, tol float64) {
	t.Helper()
	if !got.EqualUpToPhase(want, tol) {
		t.Errorf("state = %v, want %v (up to phase, tol %g)", got, want, tol)
	}
}

// AssertGridAligned checks that both coordinates of gp are multiples of grid.
func AssertGridAligned(t TB, gp l1geom.GridPoint, grid float64) {
	t.Helper()
	if math.Mod(gp.X, grid) != 0 || math.Mod(gp.Y, grid) != 0 {
		t.Errorf("grid point %v is not aligned to %g", gp, grid)
	}
}
