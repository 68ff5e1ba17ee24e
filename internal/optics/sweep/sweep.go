// Package sweep rotates one element of a beam train through a range of
// angles and records the output polarization at each step.
//
// Rotation never changes an element's bounding box, so the train's
// membership and order are fixed for the whole sweep and only the
// composition is re-run.
package sweep

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/banshee-data/polarization.train/internal/optics/l2jones"
	"github.com/banshee-data/polarization.train/internal/optics/l3elements"
	"github.com/banshee-data/polarization.train/internal/optics/l5compose"
)

var (
	// ErrNotInTrain is returned when the swept element is not a beam member.
	ErrNotInTrain = errors.New("element not in beam train")
	// ErrInvalidRange is returned for an empty or non-finite angle range.
	ErrInvalidRange = errors.New("invalid sweep range")
)

// maxSteps bounds the number of samples in one sweep.
const maxSteps = 100000

// Sample is the train output with the swept element at AngleDeg.
type Sample struct {
	AngleDeg float64
	Output   l2jones.State
	Stokes   l2jones.Stokes
}

// Angles returns from, from+step, ... up to and including to.
func Angles(from, to, step float64) ([]float64, error) {
	for _, v := range []float64{from, to, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite bound", ErrInvalidRange)
		}
	}
	if step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %g", ErrInvalidRange, step)
	}
	if to < from {
		return nil, fmt.Errorf("%w: to (%g) is before from (%g)", ErrInvalidRange, to, from)
	}
	// Small slack so that e.g. 0..180 step 0.1 still ends on 180.
	span := math.Floor((to-from)/step + 1e-9)
	if math.IsInf(span, 0) || span+1 > maxSteps {
		return nil, fmt.Errorf("%w: %g steps exceeds %d", ErrInvalidRange, span+1, maxSteps)
	}
	n := int(span) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out, nil
}

// Rotate evaluates input through train once per angle, with the element id
// replaced by the same kind at that angle. train must already be in
// propagation order and is not modified.
func Rotate(input l2jones.State, train []*l3elements.Placed, id string, angles []float64) ([]Sample, error) {
	idx := -1
	for i, p := range train {
		if p != nil && p.ID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotInTrain, id)
	}

	target := train[idx]
	work := make([]*l3elements.Placed, len(train))
	copy(work, train)

	samples := make([]Sample, 0, len(angles))
	for _, a := range angles {
		m, err := l3elements.NewModelWithID(target.ID(), target.Model.Kind(), a)
		if err != nil {
			return nil, err
		}
		work[idx] = l3elements.NewPlaced(m, target.Center, target.Size, target.Seq)
		out := l5compose.Evaluate(input, work)
		samples = append(samples, Sample{AngleDeg: a, Output: out, Stokes: out.Stokes()})
	}
	return samples, nil
}

// WriteCSV writes one row per sample: angle and the four Stokes parameters.
func WriteCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"angle_deg", "s0", "s1", "s2", "s3"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			formatFloat(s.AngleDeg),
			formatFloat(s.Stokes.S0),
			formatFloat(s.Stokes.S1),
			formatFloat(s.Stokes.S2),
			formatFloat(s.Stokes.S3),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	if math.Abs(v) < 1e-12 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
