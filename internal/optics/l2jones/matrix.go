package l2jones

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/cmplxs"
)

// Matrix is a 2x2 complex Jones matrix in row-major order.
type Matrix [2][2]complex128

// Identity returns the identity operator.
func Identity() Matrix {
	return Matrix{{1, 0}, {0, 1}}
}

// Mul returns m·n. Applying the result to a state is the same as applying
// n first and then m.
func (m Matrix) Mul(n Matrix) Matrix {
	var r Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j]
		}
	}
	return r
}

// Apply returns m·s.
func (m Matrix) Apply(s State) State {
	return State{
		X: m[0][0]*s.X + m[0][1]*s.Y,
		Y: m[1][0]*s.X + m[1][1]*s.Y,
	}
}

// Scale returns m with every entry multiplied by c.
func (m Matrix) Scale(c complex128) Matrix {
	return Matrix{{c * m[0][0], c * m[0][1]}, {c * m[1][0], c * m[1][1]}}
}

func (m Matrix) flat() []complex128 {
	return []complex128{m[0][0], m[0][1], m[1][0], m[1][1]}
}

// ApproxEqual reports whether every entry of m and n differs by at most tol.
func (m Matrix) ApproxEqual(n Matrix, tol float64) bool {
	return cmplxs.EqualApprox(m.flat(), n.flat(), tol)
}

// Commutes reports whether m·n and n·m agree within tol.
func (m Matrix) Commutes(n Matrix, tol float64) bool {
	return m.Mul(n).ApproxEqual(n.Mul(m), tol)
}

func (m Matrix) String() string {
	return fmt.Sprintf("[[%v %v] [%v %v]]", m[0][0], m[0][1], m[1][0], m[1][1])
}

// SinCosDegrees returns sin and cos of deg. Multiples of 90° produce exact
// 0 and ±1 so axis-aligned operators come out in canonical form.
func SinCosDegrees(deg float64) (sin, cos float64) {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	switch r {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(r * math.Pi / 180)
}

// Retarder returns the Jones matrix of a linear retarder with retardance
// etaRad and fast axis at thetaDeg, including the symmetric global phase:
//
//	e^{-iη/2} [[c² + e^{iη}s², (1-e^{iη})cs], [(1-e^{iη})cs, s² + e^{iη}c²]]
func Retarder(etaRad, thetaDeg float64) Matrix {
	sin, cos := math.Sincos(etaRad)
	hs, hc := math.Sincos(etaRad / 2)
	return retarder(complex(cos, sin), complex(hc, -hs), thetaDeg)
}

// retarder builds the general form from an exact phase factor e^{iη} and
// global phase e^{-iη/2}.
func retarder(phase, global complex128, thetaDeg float64) Matrix {
	s, c := SinCosDegrees(thetaDeg)
	cc, ss, cs := complex(c*c, 0), complex(s*s, 0), complex(c*s, 0)
	return Matrix{
		{cc + phase*ss, (1 - phase) * cs},
		{(1 - phase) * cs, ss + phase*cc},
	}.Scale(global)
}

// HalfWavePlate returns the Jones matrix of a half-wave plate with its fast
// axis at thetaDeg:
//
//	-i [[c²-s², 2cs], [2cs, s²-c²]]
func HalfWavePlate(thetaDeg float64) Matrix {
	return retarder(-1, -1i, thetaDeg)
}

// QuarterWavePlate returns the Jones matrix of a quarter-wave plate with
// its fast axis at thetaDeg:
//
//	e^{-iπ/4} [[c²+i·s², (1-i)cs], [(1-i)cs, s²+i·c²]]
func QuarterWavePlate(thetaDeg float64) Matrix {
	return retarder(1i, complex(math.Sqrt2/2, -math.Sqrt2/2), thetaDeg)
}

// LinearPolarizer returns the ideal polarizer with its transmission axis at
// thetaDeg. Zero degrees transmits the horizontal component.
//
//	[[c², cs], [cs, s²]]
func LinearPolarizer(thetaDeg float64) Matrix {
	s, c := SinCosDegrees(thetaDeg)
	return Matrix{
		{complex(c*c, 0), complex(c*s, 0)},
		{complex(c*s, 0), complex(s*s, 0)},
	}
}
