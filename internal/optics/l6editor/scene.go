package l6editor

import (
	"errors"
	"fmt"

	"github.com/banshee-data/polarization.train/internal/config"
	"github.com/banshee-data/polarization.train/internal/monitoring"
	"github.com/banshee-data/polarization.train/internal/optics/l1geom"
	"github.com/banshee-data/polarization.train/internal/optics/l2jones"
	"github.com/banshee-data/polarization.train/internal/optics/l3elements"
	"github.com/banshee-data/polarization.train/internal/optics/l4train"
	"github.com/banshee-data/polarization.train/internal/optics/l5compose"
)

var (
	// ErrUnknownElement is returned when an ID is not on the scene.
	ErrUnknownElement = errors.New("unknown element")
	// ErrDuplicateElement is returned when adding an ID already on the scene.
	ErrDuplicateElement = errors.New("duplicate element")
	// ErrNilModel is returned when adding an element without a model.
	ErrNilModel = errors.New("nil element model")
)

// Trigger names the edit that caused a recomputation.
type Trigger string

const (
	TriggerAdd      Trigger = "add"
	TriggerMove     Trigger = "move"
	TriggerReplace  Trigger = "replace"
	TriggerRemove   Trigger = "remove"
	TriggerInput    Trigger = "input"
	TriggerEvaluate Trigger = "evaluate"
)

// Result is the outcome of one recomputation.
type Result struct {
	Trigger Trigger
	Train   []*l3elements.Placed // beam members in propagation order
	Trace   []l5compose.Step
	Input   l2jones.State
	Output  l2jones.State
	Stokes  l2jones.Stokes // of Output
}

// Listener receives every Result, in trigger order.
type Listener func(Result)

// Option configures a Scene.
type Option func(*Scene)

// WithListener registers l to receive results.
func WithListener(l Listener) Option {
	return func(s *Scene) {
		if l != nil {
			s.listeners = append(s.listeners, l)
		}
	}
}

// WithInputState overrides the configured input state.
func WithInputState(st l2jones.State) Option {
	return func(s *Scene) { s.input = st }
}

// Scene owns the placed elements and recomputes the beam train on edits.
type Scene struct {
	snapper     *l1geom.Snapper
	bounds      l1geom.BoundingBox
	train       *l4train.BeamTrain
	elementSize l1geom.Size
	input       l2jones.State

	elements  []*l3elements.Placed // insertion order
	nextSeq   uint64
	listeners []Listener
	last      Result
	logf      func(format string, v ...interface{})
}

// NewScene builds a Scene from cfg. A nil cfg uses the built-in defaults.
// Invalid geometry fails here rather than on the first edit.
func NewScene(cfg *config.EditorConfig, opts ...Option) (*Scene, error) {
	if cfg == nil {
		cfg = config.DefaultEditorConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene config: %w", err)
	}
	snapper, err := l1geom.NewSnapper(cfg.GetGridSize())
	if err != nil {
		return nil, err
	}
	train, err := l4train.NewBeamTrain(cfg.GetBeamRegion())
	if err != nil {
		return nil, err
	}

	s := &Scene{
		snapper:     snapper,
		bounds:      cfg.GetSceneBounds(),
		train:       train,
		elementSize: cfg.GetElementSize(),
		input:       cfg.GetInputState(),
		logf:        monitoring.Prefixed("[scene] "),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.last = s.recompute(TriggerEvaluate, false)
	return s, nil
}

// Snapper returns the scene's lattice snapper.
func (s *Scene) Snapper() *l1geom.Snapper { return s.snapper }

// Bounds returns the container rectangle.
func (s *Scene) Bounds() l1geom.BoundingBox { return s.bounds }

// BeamRegion returns the beam band.
func (s *Scene) BeamRegion() l1geom.BoundingBox { return s.train.Region() }

// ElementSize returns the default bounding-box size for new elements.
func (s *Scene) ElementSize() l1geom.Size { return s.elementSize }

// Input returns the current input state.
func (s *Scene) Input() l2jones.State { return s.input }

// Last returns the most recent Result.
func (s *Scene) Last() Result { return s.last }

// Elements returns every placed element in insertion order.
func (s *Scene) Elements() []*l3elements.Placed {
	out := make([]*l3elements.Placed, len(s.elements))
	copy(out, s.elements)
	return out
}

// Element looks up a placed element by ID.
func (s *Scene) Element(id string) (*l3elements.Placed, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.elements[i], true
}

// Add places model with its top-left corner near topLeft using the default
// element size.
func (s *Scene) Add(model *l3elements.Model, topLeft l1geom.Position) (*l3elements.Placed, Result, error) {
	return s.AddSized(model, topLeft, s.elementSize)
}

// AddSized is Add with an explicit bounding-box size.
func (s *Scene) AddSized(model *l3elements.Model, topLeft l1geom.Position, size l1geom.Size) (*l3elements.Placed, Result, error) {
	if model == nil {
		return nil, s.last, ErrNilModel
	}
	if s.indexOf(model.ID()) >= 0 {
		return nil, s.last, fmt.Errorf("%w: %s", ErrDuplicateElement, model.ID())
	}
	if !(size.Width > 0 && size.Height > 0) {
		return nil, s.last, fmt.Errorf("%w: element size %gx%g", l1geom.ErrDegenerateRegion, size.Width, size.Height)
	}

	center := s.snapper.Snap(topLeft, size.HalfExtent(), s.bounds)
	p := l3elements.NewPlaced(model, center, size, s.nextSeq)
	s.nextSeq++
	s.elements = append(s.elements, p)
	return p, s.recompute(TriggerAdd, true), nil
}

// Move commits a drag release: the element is snapped from its raw
// top-left position and the train is recomputed.
func (s *Scene) Move(id string, topLeft l1geom.Position) (Result, error) {
	i := s.indexOf(id)
	if i < 0 {
		return s.last, fmt.Errorf("%w: %s", ErrUnknownElement, id)
	}
	p := s.elements[i]
	p.MoveTo(s.snapper.Snap(topLeft, p.Size.HalfExtent(), s.bounds))
	return s.recompute(TriggerMove, true), nil
}

// Replace swaps the model of a placed element, keeping its position and
// insertion order. Used when an element is rotated.
func (s *Scene) Replace(id string, model *l3elements.Model) (Result, error) {
	if model == nil {
		return s.last, ErrNilModel
	}
	i := s.indexOf(id)
	if i < 0 {
		return s.last, fmt.Errorf("%w: %s", ErrUnknownElement, id)
	}
	if j := s.indexOf(model.ID()); j >= 0 && j != i {
		return s.last, fmt.Errorf("%w: %s", ErrDuplicateElement, model.ID())
	}
	old := s.elements[i]
	s.elements[i] = l3elements.NewPlaced(model, old.Center, old.Size, old.Seq)
	return s.recompute(TriggerReplace, true), nil
}

// Remove deletes an element from the scene.
func (s *Scene) Remove(id string) (Result, error) {
	i := s.indexOf(id)
	if i < 0 {
		return s.last, fmt.Errorf("%w: %s", ErrUnknownElement, id)
	}
	s.elements = append(s.elements[:i], s.elements[i+1:]...)
	return s.recompute(TriggerRemove, true), nil
}

// SetInput changes the input state and recomputes.
func (s *Scene) SetInput(st l2jones.State) Result {
	s.input = st
	return s.recompute(TriggerInput, true)
}

// Evaluate recomputes without an edit.
func (s *Scene) Evaluate() Result {
	return s.recompute(TriggerEvaluate, true)
}

func (s *Scene) indexOf(id string) int {
	for i, p := range s.elements {
		if p.ID() == id {
			return i
		}
	}
	return -1
}

// recompute runs membership, ordering and composition over the current
// element set. notify is false only for the initial evaluation.
func (s *Scene) recompute(trigger Trigger, notify bool) Result {
	members := s.train.Recompute(s.elements)
	trace := l5compose.Trace(s.input, members)
	out := s.input
	if len(trace) > 0 {
		out = trace[len(trace)-1].Output
	}

	r := Result{
		Trigger: trigger,
		Train:   members,
		Trace:   trace,
		Input:   s.input,
		Output:  out,
		Stokes:  out.Stokes(),
	}
	s.last = r

	s.logf("trigger=%s elements=%d members=%d intensity=%.4f", trigger, len(s.elements), len(members), r.Stokes.S0)
	if notify {
		for _, l := range s.listeners {
			l(r)
		}
	}
	return r
}
