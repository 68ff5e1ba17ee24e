package l1geom

import (
	"errors"
	"fmt"
	"math"
)

// DefaultGridSize is the lattice spacing used when none is configured.
const DefaultGridSize = 10.0

// ErrInvalidGridSize is returned for a non-positive or non-finite spacing.
var ErrInvalidGridSize = errors.New("invalid grid size")

// ErrLatticeTooLarge is returned when a container holds more candidate
// points than Snap will scan.
var ErrLatticeTooLarge = errors.New("lattice too large")

// MaxLatticePoints bounds the candidates Snap examines per call.
const MaxLatticePoints = 1_000_000

// Snapper maps free positions onto the placement lattice restricted to a
// container rectangle whose origin is (0,0).
type Snapper struct {
	gridSize float64
}

// NewSnapper returns a Snapper for the given spacing.
func NewSnapper(gridSize float64) (*Snapper, error) {
	if !(gridSize > 0) || math.IsInf(gridSize, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGridSize, gridSize)
	}
	return &Snapper{gridSize: gridSize}, nil
}

// GridSize returns the lattice spacing.
func (s *Snapper) GridSize() float64 { return s.gridSize }

// Snap returns the lattice point closest to the center of an element whose
// top-left corner is at free and whose center lies offset away from it.
//
// Candidates are x = i*g in [0, bounds.Right) and y = j*g in
// [0, bounds.Bottom). The scan runs x-major, y-minor and only replaces the
// current best on a strictly smaller squared distance, so ties resolve to
// the lowest x and then the lowest y. When no candidate exists the origin
// is returned.
func (s *Snapper) Snap(free Position, offset Offset, bounds BoundingBox) GridPoint {
	c := free.Add(offset)
	nx, ny := s.latticeCount(bounds.Right), s.latticeCount(bounds.Bottom)

	best := GridPoint{}
	bestDist := math.Inf(1)
	for i := 0; i < nx; i++ {
		x := float64(i) * s.gridSize
		dx := x - c.X
		for j := 0; j < ny; j++ {
			y := float64(j) * s.gridSize
			dy := y - c.Y
			if d := dx*dx + dy*dy; d < bestDist {
				bestDist = d
				best = GridPoint{X: x, Y: y}
			}
		}
	}
	return best
}

// SnapBox snaps the center of box and returns the box moved so its center
// sits on the chosen lattice point.
func (s *Snapper) SnapBox(box, bounds BoundingBox) (GridPoint, BoundingBox) {
	half := box.Size().HalfExtent()
	gp := s.Snap(box.TopLeft(), half, bounds)
	return gp, NewBoundingBox(gp.Position(), box.Size())
}

// TopLeft returns the top-left corner that puts an element's center on gp.
func TopLeft(gp GridPoint, offset Offset) Position {
	return Position{X: gp.X - offset.DX, Y: gp.Y - offset.DY}
}

// LatticePoints returns how many candidates Snap scans inside bounds. It is
// a float so unbounded containers report +Inf instead of overflowing.
func (s *Snapper) LatticePoints(bounds BoundingBox) float64 {
	span := func(limit float64) float64 {
		if !(limit > 0) {
			return 0
		}
		return math.Ceil(limit / s.gridSize)
	}
	nx, ny := span(bounds.Right), span(bounds.Bottom)
	if nx == 0 || ny == 0 {
		return 0
	}
	return nx * ny
}

// CheckLattice returns ErrLatticeTooLarge when bounds exceed MaxLatticePoints.
func (s *Snapper) CheckLattice(bounds BoundingBox) error {
	if n := s.LatticePoints(bounds); n > MaxLatticePoints {
		return fmt.Errorf("%w: %g points at spacing %g (max %d)", ErrLatticeTooLarge, n, s.gridSize, MaxLatticePoints)
	}
	return nil
}

// latticeCount returns how many non-negative multiples of the spacing lie
// strictly below limit.
func (s *Snapper) latticeCount(limit float64) int {
	if !(limit > 0) || math.IsInf(limit, 0) {
		return 0
	}
	n := int(math.Ceil(limit / s.gridSize))
	// Guard the boundary against rounding in the division.
	for n > 0 && float64(n-1)*s.gridSize >= limit {
		n--
	}
	for float64(n)*s.gridSize < limit {
		n++
	}
	return n
}
