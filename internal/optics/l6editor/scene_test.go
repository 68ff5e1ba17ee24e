package l6editor

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/polarization.train/internal/config"
	"github.com/banshee-data/polarization.train/internal/monitoring"
	"github.com/banshee-data/polarization.train/internal/optics/l1geom"
	"github.com/banshee-data/polarization.train/internal/optics/l2jones"
	"github.com/banshee-data/polarization.train/internal/optics/l3elements"
	"github.com/banshee-data/polarization.train/internal/optics/l5compose"
	"github.com/banshee-data/polarization.train/internal/testutil"
)

const tol = 1e-9

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	os.Exit(m.Run())
}

func f64(v float64) *float64 { return &v }

// testConfig uses 30x60 elements so boxes land on whole numbers.
func testConfig() *config.EditorConfig {
	cfg := config.DefaultEditorConfig()
	cfg.ElementScale = f64(1)
	cfg.ElementWidth = f64(30)
	cfg.ElementHeight = f64(60)
	return cfg
}

func newScene(t *testing.T, opts ...Option) *Scene {
	t.Helper()
	s, err := NewScene(testConfig(), opts...)
	require.NoError(t, err)
	return s
}

func model(t *testing.T, id string, kind l3elements.Kind, angle float64) *l3elements.Model {
	t.Helper()
	m, err := l3elements.NewModelWithID(id, kind, angle)
	require.NoError(t, err)
	return m
}

func trainIDs(r Result) []string {
	out := make([]string, len(r.Train))
	for i, p := range r.Train {
		out[i] = p.ID()
	}
	return out
}

func TestScene_EditPipeline(t *testing.T) {
	var got []Result
	s := newScene(t, WithListener(func(r Result) { got = append(got, r) }))

	hwp, r, err := s.Add(model(t, "hwp", l3elements.HalfWavePlate, 45), l1geom.Position{X: 83, Y: 178})
	require.NoError(t, err)
	assert.Equal(t, l1geom.GridPoint{X: 100, Y: 210}, hwp.Center)
	assert.Equal(t, []string{"hwp"}, trainIDs(r))
	testutil.AssertStateApprox(t, r.Output, l2jones.LinearHorizontal(), tol)

	pol, r, err := s.Add(model(t, "pol", l3elements.LinearPolarizer, 0), l1geom.Position{X: 185, Y: 180})
	require.NoError(t, err)
	assert.Equal(t, l1geom.GridPoint{X: 200, Y: 210}, pol.Center)
	assert.Equal(t, []string{"hwp", "pol"}, trainIDs(r))
	assert.InDelta(t, 1.0, r.Stokes.S0, tol)

	// Dragging the polarizer in front of the wave plate blocks the vertical input.
	r, err = s.Move("pol", l1geom.Position{X: 35, Y: 180})
	require.NoError(t, err)
	assert.Equal(t, []string{"pol", "hwp"}, trainIDs(r))
	assert.True(t, r.Output.Extinguished(tol))

	// Take the wave plate off the beam.
	r, err = s.Move("hwp", l1geom.Position{X: 85, Y: 370})
	require.NoError(t, err)
	assert.Equal(t, l1geom.GridPoint{X: 100, Y: 400}, hwp.Center)
	assert.Equal(t, []string{"pol"}, trainIDs(r))
	assert.True(t, r.Output.Extinguished(tol))

	r, err = s.Remove("pol")
	require.NoError(t, err)
	assert.Empty(t, r.Train)
	assert.Equal(t, l2jones.LinearVertical(), r.Output)
	assert.Len(t, s.Elements(), 1)

	require.Len(t, got, 5)
	triggers := make([]Trigger, len(got))
	for i, res := range got {
		triggers[i] = res.Trigger
	}
	assert.Equal(t, []Trigger{TriggerAdd, TriggerAdd, TriggerMove, TriggerMove, TriggerRemove}, triggers)
	assert.Equal(t, s.Last(), got[4])
}

func TestNewScene_Defaults(t *testing.T) {
	called := false
	s, err := NewScene(nil, WithListener(func(Result) { called = true }))
	require.NoError(t, err)

	assert.False(t, called, "construction must not notify listeners")
	assert.Equal(t, 10.0, s.Snapper().GridSize())
	assert.Equal(t, l1geom.BoundingBox{Left: 0, Top: 200, Right: 600, Bottom: 220}, s.BeamRegion())
	assert.Equal(t, l1geom.BoundingBox{Right: 500, Bottom: 500}, s.Bounds())
	assert.Equal(t, l2jones.LinearVertical(), s.Input())
	assert.Equal(t, s.Input(), s.Last().Output)
	assert.InDelta(t, 30.0, s.ElementSize().Width, tol)
	assert.InDelta(t, 60.0, s.ElementSize().Height, tol)
}

func TestNewScene_FailsFastOnBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.GridSize = f64(0)
	_, err := NewScene(cfg)
	assert.ErrorIs(t, err, l1geom.ErrInvalidGridSize)

	cfg = testConfig()
	cfg.BeamTop = f64(220)
	_, err = NewScene(cfg)
	assert.ErrorIs(t, err, l1geom.ErrDegenerateRegion)
}

func TestScene_Errors(t *testing.T) {
	s := newScene(t)
	_, _, err := s.Add(model(t, "a", l3elements.HalfWavePlate, 0), l1geom.Position{X: 10, Y: 180})
	require.NoError(t, err)
	before := s.Last()

	_, _, err = s.Add(model(t, "a", l3elements.QuarterWavePlate, 0), l1geom.Position{})
	assert.ErrorIs(t, err, ErrDuplicateElement)

	_, _, err = s.Add(nil, l1geom.Position{})
	assert.ErrorIs(t, err, ErrNilModel)

	_, _, err = s.AddSized(model(t, "flat", l3elements.HalfWavePlate, 0), l1geom.Position{}, l1geom.Size{Width: 10})
	assert.ErrorIs(t, err, l1geom.ErrDegenerateRegion)

	_, err = s.Move("missing", l1geom.Position{})
	assert.ErrorIs(t, err, ErrUnknownElement)

	_, err = s.Remove("missing")
	assert.ErrorIs(t, err, ErrUnknownElement)

	_, err = s.Replace("missing", model(t, "b", l3elements.HalfWavePlate, 0))
	assert.ErrorIs(t, err, ErrUnknownElement)

	_, err = s.Replace("a", nil)
	assert.ErrorIs(t, err, ErrNilModel)

	assert.Len(t, s.Elements(), 1)
	assert.Equal(t, before, s.Last())
}

func TestScene_SetInput(t *testing.T) {
	s := newScene(t)
	_, _, err := s.Add(model(t, "pol", l3elements.LinearPolarizer, 0), l1geom.Position{X: 85, Y: 180})
	require.NoError(t, err)

	r := s.SetInput(l2jones.RightCircular())
	assert.Equal(t, TriggerInput, r.Trigger)
	assert.Equal(t, l2jones.RightCircular(), r.Input)
	assert.InDelta(t, 0.5, r.Stokes.S0, tol)
	assert.InDelta(t, 0.5, r.Stokes.S1, tol)
}

func TestScene_WithInputState(t *testing.T) {
	s := newScene(t, WithInputState(l2jones.LinearHorizontal()))
	_, r, err := s.Add(model(t, "pol", l3elements.LinearPolarizer, 90), l1geom.Position{X: 85, Y: 180})
	require.NoError(t, err)
	assert.True(t, r.Output.Extinguished(tol))
}

func TestScene_ReplaceRotatesInPlace(t *testing.T) {
	s := newScene(t)
	_, _, err := s.Add(model(t, "first", l3elements.QuarterWavePlate, 0), l1geom.Position{X: 35, Y: 180})
	require.NoError(t, err)
	_, r, err := s.Add(model(t, "hwp", l3elements.HalfWavePlate, 0), l1geom.Position{X: 85, Y: 180})
	require.NoError(t, err)
	assert.True(t, r.Output.EqualUpToPhase(l2jones.LinearVertical(), tol))

	old, ok := s.Element("hwp")
	require.True(t, ok)
	rotated, err := old.Model.WithAngle(45)
	require.NoError(t, err)

	r, err = s.Replace("hwp", rotated)
	require.NoError(t, err)
	assert.Equal(t, TriggerReplace, r.Trigger)
	assert.Equal(t, []string{"first", rotated.ID()}, trainIDs(r))
	assert.True(t, r.Output.EqualUpToPhase(l2jones.LinearHorizontal(), tol))

	p, ok := s.Element(rotated.ID())
	require.True(t, ok)
	assert.Equal(t, old.Center, p.Center)
	assert.Equal(t, old.Seq, p.Seq)
	_, ok = s.Element("hwp")
	assert.False(t, ok)
}

func TestScene_TiesFollowInsertionOrder(t *testing.T) {
	s := newScene(t)
	_, _, err := s.Add(model(t, "a", l3elements.HalfWavePlate, 45), l1geom.Position{X: 85, Y: 170})
	require.NoError(t, err)
	_, r, err := s.Add(model(t, "b", l3elements.LinearPolarizer, 0), l1geom.Position{X: 85, Y: 190})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, trainIDs(r))

	// Re-committing the first element does not move it behind the second.
	r, err = s.Move("a", l1geom.Position{X: 85, Y: 170})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, trainIDs(r))
	assert.InDelta(t, 1.0, r.Stokes.S0, tol)
}

func TestScene_SnapClampsToContainer(t *testing.T) {
	s := newScene(t)
	p, _, err := s.Add(model(t, "far", l3elements.HalfWavePlate, 0), l1geom.Position{X: 900, Y: 180})
	testutil.AssertNoError(t, err)
	testutil.AssertGridAligned(t, p.Center, s.Snapper().GridSize())
	assert.Equal(t, l1geom.GridPoint{X: 490, Y: 210}, p.Center)
}

func TestScene_ElementsIsACopy(t *testing.T) {
	s := newScene(t)
	_, _, err := s.Add(model(t, "a", l3elements.HalfWavePlate, 0), l1geom.Position{X: 85, Y: 180})
	require.NoError(t, err)

	els := s.Elements()
	els[0] = nil
	_, ok := s.Element("a")
	assert.True(t, ok)
	assert.NotNil(t, s.Elements()[0])
}

func TestScene_OutputMatchesComposition(t *testing.T) {
	s := newScene(t)
	_, _, err := s.Add(model(t, "q", l3elements.QuarterWavePlate, 30), l1geom.Position{X: 35, Y: 180})
	require.NoError(t, err)
	_, r, err := s.Add(model(t, "h", l3elements.HalfWavePlate, 10), l1geom.Position{X: 85, Y: 180})
	require.NoError(t, err)

	require.Len(t, r.Trace, 2)
	assert.Equal(t, l5compose.Evaluate(s.Input(), r.Train), r.Output)
	assert.Equal(t, r.Trace[1].Output, r.Output)
	assert.Equal(t, r.Output.Stokes(), r.Stokes)
}

func TestScene_EvaluateIsRepeatable(t *testing.T) {
	s := newScene(t)
	_, _, err := s.Add(model(t, "q", l3elements.QuarterWavePlate, 45), l1geom.Position{X: 85, Y: 180})
	require.NoError(t, err)

	first := s.Evaluate()
	second := s.Evaluate()
	assert.Equal(t, TriggerEvaluate, first.Trigger)
	assert.Equal(t, first.Output, second.Output)
	assert.Equal(t, trainIDs(first), trainIDs(second))
	require.Len(t, first.Trace, 1)
	assert.Equal(t, first.Output, first.Trace[0].Output)
}
