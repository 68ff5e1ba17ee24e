package l1geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateRegion is returned when a rectangle that must enclose
// something has zero or negative area.
var ErrDegenerateRegion = errors.New("degenerate region")

// Position is a point in the editor plane. It carries no constraints.
type Position struct {
	X, Y float64
}

// Add returns p translated by o.
func (p Position) Add(o Offset) Position {
	return Position{X: p.X + o.DX, Y: p.Y + o.DY}
}

// Offset is a displacement, typically from an element's top-left corner
// to its bounding-box center.
type Offset struct {
	DX, DY float64
}

// GridPoint is a Position whose coordinates are integer multiples of the
// grid spacing. Only a Snapper produces them.
type GridPoint struct {
	X, Y float64
}

// Position returns the grid point as a plain Position.
func (g GridPoint) Position() Position {
	return Position{X: g.X, Y: g.Y}
}

// Size is the extent of an element's rendered box.
type Size struct {
	Width, Height float64
}

// HalfExtent returns the offset from the top-left corner to the center.
func (s Size) HalfExtent() Offset {
	return Offset{DX: s.Width / 2, DY: s.Height / 2}
}

// Scale returns s multiplied by f.
func (s Size) Scale(f float64) Size {
	return Size{Width: s.Width * f, Height: s.Height * f}
}

// BoundingBox is an axis-aligned rectangle. Y grows downward, so Top <= Bottom.
type BoundingBox struct {
	Left, Top, Right, Bottom float64
}

// NewBoundingBox builds the box centred on c with the given size.
func NewBoundingBox(c Position, s Size) BoundingBox {
	hw, hh := s.Width/2, s.Height/2
	return BoundingBox{Left: c.X - hw, Top: c.Y - hh, Right: c.X + hw, Bottom: c.Y + hh}
}

// BoxAt builds the box whose top-left corner is at p.
func BoxAt(p Position, s Size) BoundingBox {
	return BoundingBox{Left: p.X, Top: p.Y, Right: p.X + s.Width, Bottom: p.Y + s.Height}
}

func (b BoundingBox) Width() float64  { return b.Right - b.Left }
func (b BoundingBox) Height() float64 { return b.Bottom - b.Top }

// Area returns the box area, or 0 for inverted boxes.
func (b BoundingBox) Area() float64 {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Position {
	return Position{X: (b.Left + b.Right) / 2, Y: (b.Top + b.Bottom) / 2}
}

// TopLeft returns the top-left corner.
func (b BoundingBox) TopLeft() Position {
	return Position{X: b.Left, Y: b.Top}
}

// Size returns the box extent.
func (b BoundingBox) Size() Size {
	return Size{Width: b.Width(), Height: b.Height()}
}

// Translate returns the box shifted by o.
func (b BoundingBox) Translate(o Offset) BoundingBox {
	return BoundingBox{Left: b.Left + o.DX, Top: b.Top + o.DY, Right: b.Right + o.DX, Bottom: b.Bottom + o.DY}
}

// Intersects reports whether b and o share a region of non-zero area.
// Boxes that only touch along an edge do not intersect.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Left < o.Right && b.Right > o.Left &&
		b.Top < o.Bottom && b.Bottom > o.Top
}

// Validate returns ErrDegenerateRegion unless the box has finite
// coordinates and positive area.
func (b BoundingBox) Validate() error {
	for _, v := range [...]float64{b.Left, b.Top, b.Right, b.Bottom} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate in %v", ErrDegenerateRegion, b)
		}
	}
	if b.Area() == 0 {
		return fmt.Errorf("%w: %v has zero area", ErrDegenerateRegion, b)
	}
	return nil
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", b.Left, b.Top, b.Right, b.Bottom)
}
