package l3elements

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/banshee-data/polarization.train/internal/optics/l2jones"
)

var (
	// ErrInvalidKind is returned for a kind with no defined Jones matrix.
	ErrInvalidKind = errors.New("invalid element kind")
	// ErrInvalidAngle is returned for a NaN or infinite orientation.
	ErrInvalidAngle = errors.New("invalid element angle")
)

// Kind identifies an optical element type.
type Kind int

const (
	KindUnknown Kind = iota
	HalfWavePlate
	QuarterWavePlate
	LinearPolarizer
)

// Kinds lists every constructible kind.
var Kinds = []Kind{HalfWavePlate, QuarterWavePlate, LinearPolarizer}

var kindNames = map[Kind]string{
	HalfWavePlate:    "half-wave-plate",
	QuarterWavePlate: "quarter-wave-plate",
	LinearPolarizer:  "linear-polarizer",
}

var kindAliases = map[string]Kind{
	"half-wave-plate":    HalfWavePlate,
	"hwp":                HalfWavePlate,
	"l2":                 HalfWavePlate,
	"quarter-wave-plate": QuarterWavePlate,
	"qwp":                QuarterWavePlate,
	"l4":                 QuarterWavePlate,
	"linear-polarizer":   LinearPolarizer,
	"polarizer":          LinearPolarizer,
	"pol":                LinearPolarizer,
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k has a Jones matrix.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind maps a name or short alias (hwp, qwp, pol) to a Kind.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Matrix returns the Jones matrix for k oriented at angleDeg.
func (k Kind) Matrix(angleDeg float64) (l2jones.Matrix, error) {
	switch k {
	case HalfWavePlate:
		return l2jones.HalfWavePlate(angleDeg), nil
	case QuarterWavePlate:
		return l2jones.QuarterWavePlate(angleDeg), nil
	case LinearPolarizer:
		return l2jones.LinearPolarizer(angleDeg), nil
	}
	return l2jones.Matrix{}, fmt.Errorf("%w: %v", ErrInvalidKind, k)
}

// Model describes an optical element. It is immutable; changing the angle
// means building a new Model.
type Model struct {
	id     string
	kind   Kind
	angle  float64
	matrix l2jones.Matrix
}

// NewModel builds a Model with a fresh ID.
func NewModel(kind Kind, angleDeg float64) (*Model, error) {
	return NewModelWithID(fmt.Sprintf("elm_%s", uuid.NewString()), kind, angleDeg)
}

// NewModelWithID builds a Model with a caller-chosen ID.
func NewModelWithID(id string, kind Kind, angleDeg float64) (*Model, error) {
	if math.IsNaN(angleDeg) || math.IsInf(angleDeg, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAngle, angleDeg)
	}
	m, err := kind.Matrix(angleDeg)
	if err != nil {
		return nil, err
	}
	return &Model{id: id, kind: kind, angle: angleDeg, matrix: m}, nil
}

// WithAngle returns a new Model of the same kind at angleDeg.
func (m *Model) WithAngle(angleDeg float64) (*Model, error) {
	return NewModel(m.kind, angleDeg)
}

func (m *Model) ID() string             { return m.id }
func (m *Model) Kind() Kind             { return m.kind }
func (m *Model) Angle() float64         { return m.angle }
func (m *Model) Matrix() l2jones.Matrix { return m.matrix }

func (m *Model) String() string {
	return fmt.Sprintf("%s(%g°)", m.kind, m.angle)
}
