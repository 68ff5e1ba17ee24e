package l5compose

import (
	"github.com/banshee-data/polarization.train/internal/optics/l2jones"
	"github.com/banshee-data/polarization.train/internal/optics/l3elements"
)

// Evaluate propagates input through ordered. The first element is applied
// first, so the result is M(en)·…·M(e1)·input. An empty train returns
// input unchanged. A zero-amplitude result is a valid outcome.
func Evaluate(input l2jones.State, ordered []*l3elements.Placed) l2jones.State {
	out := input
	for _, p := range ordered {
		out = out.Apply(p.Model.Matrix())
	}
	return out
}

// Step records the state on either side of one element.
type Step struct {
	Element *l3elements.Placed
	Input   l2jones.State
	Output  l2jones.State
}

// Trace is Evaluate with every intermediate state kept, in train order.
func Trace(input l2jones.State, ordered []*l3elements.Placed) []Step {
	steps := make([]Step, 0, len(ordered))
	cur := input
	for _, p := range ordered {
		next := cur.Apply(p.Model.Matrix())
		steps = append(steps, Step{Element: p, Input: cur, Output: next})
		cur = next
	}
	return steps
}

// Operator returns the single matrix equivalent to the whole train.
func Operator(ordered []*l3elements.Placed) l2jones.Matrix {
	m := l2jones.Identity()
	for _, p := range ordered {
		m = p.Model.Matrix().Mul(m)
	}
	return m
}
