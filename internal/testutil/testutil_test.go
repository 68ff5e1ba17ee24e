package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/banshee-data/polarization.train/internal/optics/l1geom"
	"github.com/banshee-data/polarization.train/internal/optics/l2jones"
)

// recorder captures failures instead of failing the enclosing test.
type recorder struct {
	errors []string
	fatal  bool
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) Fatalf(format string, args ...interface{}) {
	r.Errorf(format, args...)
	r.fatal = true
}

func (r *recorder) failed() bool { return len(r.errors) > 0 }

func TestAssertNoError(t *testing.T) {
	t.Parallel()

	r := &recorder{}
	AssertNoError(r, nil)
	if r.failed() {
		t.Errorf("nil error recorded a failure: %v", r.errors)
	}

	r = &recorder{}
	AssertNoError(r, errors.New("boom"))
	if !r.fatal {
		t.Error("expected a fatal failure for a non-nil error")
	}
}

func TestAssertError(t *testing.T) {
	t.Parallel()

	r := &recorder{}
	AssertError(r, errors.New("test error"))
	if r.failed() {
		t.Errorf("non-nil error recorded a failure: %v", r.errors)
	}

	r = &recorder{}
	AssertError(r, nil)
	if !r.fatal {
		t.Error("expected a fatal failure for a nil error")
	}
}

func TestAssertStateApprox(t *testing.T) {
	t.Parallel()

	r := &recorder{}
	AssertStateApprox(r, l2jones.State{X: -1i}, l2jones.LinearHorizontal(), 1e-12)
	if r.failed() {
		t.Errorf("phase-shifted state recorded a failure: %v", r.errors)
	}

	r = &recorder{}
	AssertStateApprox(r, l2jones.LinearVertical(), l2jones.LinearHorizontal(), 1e-12)
	if !r.failed() || r.fatal {
		t.Errorf("expected a non-fatal failure, got %v (fatal=%v)", r.errors, r.fatal)
	}
}

func TestAssertGridAligned(t *testing.T) {
	t.Parallel()

	r := &recorder{}
	AssertGridAligned(r, l1geom.GridPoint{X: 120, Y: 0}, 10)
	if r.failed() {
		t.Errorf("aligned point recorded a failure: %v", r.errors)
	}

	r = &recorder{}
	AssertGridAligned(r, l1geom.GridPoint{X: 125, Y: 10}, 10)
	if !r.failed() {
		t.Error("expected failure for unaligned point")
	}
}
