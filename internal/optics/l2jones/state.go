package l2jones

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/cmplxs/cscalar"
	"gonum.org/v1/gonum/floats/scalar"
)

// ErrUnknownState is returned by ParseState for unrecognised names.
var ErrUnknownState = errors.New("unknown polarization state")

// State is a Jones vector. Its norm is not constrained; polarizers reduce it.
type State struct {
	X, Y complex128
}

// Apply returns m·s.
func (s State) Apply(m Matrix) State {
	return m.Apply(s)
}

// Intensity returns |X|² + |Y|².
func (s State) Intensity() float64 {
	return real(s.X)*real(s.X) + imag(s.X)*imag(s.X) +
		real(s.Y)*real(s.Y) + imag(s.Y)*imag(s.Y)
}

// Amplitude returns the Euclidean norm of the vector.
func (s State) Amplitude() float64 {
	return cmplxs.Norm([]complex128{s.X, s.Y}, 2)
}

// Extinguished reports whether the intensity is within tol of zero.
func (s State) Extinguished(tol float64) bool {
	return scalar.EqualWithinAbs(s.Intensity(), 0, tol)
}

// Normalize returns s scaled to unit amplitude. The zero vector is
// returned unchanged.
func (s State) Normalize() State {
	a := s.Amplitude()
	if a == 0 {
		return s
	}
	k := complex(1/a, 0)
	return State{X: k * s.X, Y: k * s.Y}
}

// Scale returns s multiplied by c.
func (s State) Scale(c complex128) State {
	return State{X: c * s.X, Y: c * s.Y}
}

// ApproxEqual reports whether both components of s and t differ by at most tol.
func (s State) ApproxEqual(t State, tol float64) bool {
	return cscalar.EqualWithinAbs(s.X, t.X, tol) && cscalar.EqualWithinAbs(s.Y, t.Y, tol)
}

// EqualUpToPhase reports whether s = e^{iφ}·t for some φ, within tol.
func (s State) EqualUpToPhase(t State, tol float64) bool {
	inner := cmplx.Conj(t.X)*s.X + cmplx.Conj(t.Y)*s.Y
	if cmplx.Abs(inner) <= tol {
		// Orthogonal or at least one side is (nearly) zero.
		return s.Extinguished(tol) && t.Extinguished(tol)
	}
	phase := inner / complex(cmplx.Abs(inner), 0)
	return s.ApproxEqual(t.Scale(phase), tol)
}

func (s State) String() string {
	return fmt.Sprintf("(%v, %v)", s.X, s.Y)
}

// Stokes holds the Stokes parameters of a fully polarized state.
// S3 > 0 is right-handed circular.
type Stokes struct {
	S0, S1, S2, S3 float64
}

// Stokes returns the Stokes parameters of s.
func (s State) Stokes() Stokes {
	xx := real(s.X)*real(s.X) + imag(s.X)*imag(s.X)
	yy := real(s.Y)*real(s.Y) + imag(s.Y)*imag(s.Y)
	xy := cmplx.Conj(s.X) * s.Y
	return Stokes{
		S0: xx + yy,
		S1: xx - yy,
		S2: 2 * real(xy),
		S3: -2 * imag(xy),
	}
}

// Poincare returns the point on the unit Poincaré sphere for the state.
// A state with zero intensity maps to the origin.
func (st Stokes) Poincare() (x, y, z float64) {
	if st.S0 == 0 {
		return 0, 0, 0
	}
	return st.S1 / st.S0, st.S2 / st.S0, st.S3 / st.S0
}

// ApproxEqual reports whether every parameter differs by at most tol.
func (st Stokes) ApproxEqual(o Stokes, tol float64) bool {
	return scalar.EqualWithinAbs(st.S0, o.S0, tol) &&
		scalar.EqualWithinAbs(st.S1, o.S1, tol) &&
		scalar.EqualWithinAbs(st.S2, o.S2, tol) &&
		scalar.EqualWithinAbs(st.S3, o.S3, tol)
}

// Ellipse returns the orientation angle ψ and ellipticity angle χ of the
// polarization ellipse, in degrees.
func (st Stokes) Ellipse() (orientationDeg, ellipticityDeg float64) {
	if st.S0 == 0 {
		return 0, 0
	}
	psi := 0.5 * math.Atan2(st.S2, st.S1)
	chi := 0.5 * math.Asin(math.Max(-1, math.Min(1, st.S3/st.S0)))
	return psi * 180 / math.Pi, chi * 180 / math.Pi
}

// Linear returns the unit linear state at thetaDeg from the horizontal.
func Linear(thetaDeg float64) State {
	s, c := SinCosDegrees(thetaDeg)
	return State{X: complex(c, 0), Y: complex(s, 0)}
}

// LinearHorizontal returns (1, 0).
func LinearHorizontal() State { return State{X: 1, Y: 0} }

// LinearVertical returns (0, 1).
func LinearVertical() State { return State{X: 0, Y: 1} }

// LinearDiagonal returns (1, 1)/√2.
func LinearDiagonal() State { return Linear(45) }

// LinearAntidiagonal returns (1, -1)/√2.
func LinearAntidiagonal() State { return Linear(-45) }

// RightCircular returns (1, -i)/√2.
func RightCircular() State {
	return State{X: complex(math.Sqrt2/2, 0), Y: complex(0, -math.Sqrt2/2)}
}

// LeftCircular returns (1, i)/√2.
func LeftCircular() State {
	return State{X: complex(math.Sqrt2/2, 0), Y: complex(0, math.Sqrt2/2)}
}

var namedStates = map[string]func() State{
	"horizontal":   LinearHorizontal,
	"h":            LinearHorizontal,
	"vertical":     LinearVertical,
	"v":            LinearVertical,
	"diagonal":     LinearDiagonal,
	"d":            LinearDiagonal,
	"antidiagonal": LinearAntidiagonal,
	"a":            LinearAntidiagonal,
	"right":        RightCircular,
	"rcp":          RightCircular,
	"left":         LeftCircular,
	"lcp":          LeftCircular,
}

// StateNames lists the canonical names accepted by ParseState.
var StateNames = []string{"horizontal", "vertical", "diagonal", "antidiagonal", "right", "left"}

// ParseState returns the named state. Matching is case-insensitive.
func ParseState(name string) (State, error) {
	f, ok := namedStates[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return State{}, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownState, name, strings.Join(StateNames, ", "))
	}
	return f(), nil
}
