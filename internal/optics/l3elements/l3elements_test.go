package l3elements

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/polarization.train/internal/optics/l1geom"
	"github.com/banshee-data/polarization.train/internal/optics/l2jones"
)

func TestNewModel_DerivesMatrixFromKindAndAngle(t *testing.T) {
	tests := []struct {
		kind  Kind
		angle float64
		want  l2jones.Matrix
	}{
		{HalfWavePlate, 45, l2jones.HalfWavePlate(45)},
		{QuarterWavePlate, 30, l2jones.QuarterWavePlate(30)},
		{LinearPolarizer, 0, l2jones.LinearPolarizer(0)},
		{LinearPolarizer, 90, l2jones.LinearPolarizer(90)},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			m, err := NewModel(tt.kind, tt.angle)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Matrix())
			assert.Equal(t, tt.kind, m.Kind())
			assert.Equal(t, tt.angle, m.Angle())
			assert.True(t, strings.HasPrefix(m.ID(), "elm_"))
		})
	}
}

func TestNewModel_SameKindAndAngleAreInterchangeable(t *testing.T) {
	a, err := NewModel(QuarterWavePlate, 45)
	require.NoError(t, err)
	b, err := NewModel(QuarterWavePlate, 45)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, a.Matrix(), b.Matrix())
}

func TestNewModel_FailsFast(t *testing.T) {
	_, err := NewModel(KindUnknown, 0)
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = NewModel(Kind(42), 0)
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = NewModel(HalfWavePlate, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidAngle)

	_, err = NewModelWithID("x", LinearPolarizer, math.Inf(-1))
	assert.ErrorIs(t, err, ErrInvalidAngle)
}

func TestModel_WithAngleReturnsNewInstance(t *testing.T) {
	m, err := NewModelWithID("hwp-1", HalfWavePlate, 0)
	require.NoError(t, err)

	rotated, err := m.WithAngle(45)
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.Angle())
	assert.Equal(t, l2jones.HalfWavePlate(0), m.Matrix())
	assert.Equal(t, 45.0, rotated.Angle())
	assert.NotEqual(t, m.ID(), rotated.ID())
	assert.Equal(t, "half-wave-plate(45°)", rotated.String())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"hwp", HalfWavePlate},
		{"Half-Wave-Plate", HalfWavePlate},
		{"l2", HalfWavePlate},
		{"qwp", QuarterWavePlate},
		{" l4 ", QuarterWavePlate},
		{"pol", LinearPolarizer},
		{"linear-polarizer", LinearPolarizer},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseKind("mirror")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestKind_String(t *testing.T) {
	for _, k := range Kinds {
		assert.True(t, k.Valid())
		back, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, back)
	}
	assert.False(t, KindUnknown.Valid())
	assert.Equal(t, "kind(0)", KindUnknown.String())
}

func TestPlaced_Geometry(t *testing.T) {
	m, err := NewModelWithID("p", LinearPolarizer, 0)
	require.NoError(t, err)

	p := NewPlaced(m, l1geom.GridPoint{X: 100, Y: 210}, l1geom.Size{Width: 30, Height: 60}, 3)
	assert.Equal(t, "p", p.ID())
	assert.Equal(t, l1geom.BoundingBox{Left: 85, Top: 180, Right: 115, Bottom: 240}, p.BoundingBox())
	assert.Equal(t, l1geom.Position{X: 85, Y: 180}, p.TopLeft())

	p.MoveTo(l1geom.GridPoint{X: 40, Y: 50})
	assert.Equal(t, l1geom.Position{X: 40, Y: 50}, p.BoundingBox().Center())
	assert.Equal(t, uint64(3), p.Seq)
}
