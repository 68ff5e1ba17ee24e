package l3elements

import (
	"github.com/banshee-data/polarization.train/internal/optics/l1geom"
)

// Placed is a Model positioned on the scene. Center is always a lattice
// point. Seq records scene insertion order and breaks ordering ties.
type Placed struct {
	Model  *Model
	Center l1geom.GridPoint
	Size   l1geom.Size
	Seq    uint64
}

// NewPlaced returns a placed element centred on center.
func NewPlaced(model *Model, center l1geom.GridPoint, size l1geom.Size, seq uint64) *Placed {
	return &Placed{Model: model, Center: center, Size: size, Seq: seq}
}

// ID returns the model ID.
func (p *Placed) ID() string { return p.Model.ID() }

// BoundingBox returns the element's extent at its current position.
func (p *Placed) BoundingBox() l1geom.BoundingBox {
	return l1geom.NewBoundingBox(p.Center.Position(), p.Size)
}

// TopLeft returns the top-left corner of the bounding box.
func (p *Placed) TopLeft() l1geom.Position {
	return l1geom.TopLeft(p.Center, p.Size.HalfExtent())
}

// MoveTo commits a new lattice position.
func (p *Placed) MoveTo(center l1geom.GridPoint) {
	p.Center = center
}
