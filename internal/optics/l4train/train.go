package l4train

import (
	"fmt"
	"sort"

	"github.com/banshee-data/polarization.train/internal/optics/l1geom"
	"github.com/banshee-data/polarization.train/internal/optics/l3elements"
)

// Recompute returns the elements of all whose bounding box overlaps region,
// sorted by bounding-box center X. Equal centers keep scene insertion order
// (Seq), so any permutation of the same input yields the same sequence.
// The input slice is not modified.
func Recompute(all []*l3elements.Placed, region l1geom.BoundingBox) []*l3elements.Placed {
	members := make([]*l3elements.Placed, 0, len(all))
	for _, p := range all {
		if p == nil {
			continue
		}
		if p.BoundingBox().Intersects(region) {
			members = append(members, p)
		}
	}

	sort.SliceStable(members, func(i, j int) bool {
		xi, xj := members[i].BoundingBox().Center().X, members[j].BoundingBox().Center().X
		if xi != xj {
			return xi < xj
		}
		return members[i].Seq < members[j].Seq
	})
	return members
}

// BeamTrain binds a beam region to its latest membership.
type BeamTrain struct {
	region  l1geom.BoundingBox
	members []*l3elements.Placed
}

// NewBeamTrain returns an empty train over region. A zero-area region is
// rejected.
func NewBeamTrain(region l1geom.BoundingBox) (*BeamTrain, error) {
	if err := region.Validate(); err != nil {
		return nil, fmt.Errorf("beam region: %w", err)
	}
	return &BeamTrain{region: region}, nil
}

// Region returns the beam's bounding box.
func (b *BeamTrain) Region() l1geom.BoundingBox { return b.region }

// Recompute replaces the membership with a full recomputation over all.
func (b *BeamTrain) Recompute(all []*l3elements.Placed) []*l3elements.Placed {
	b.members = Recompute(all, b.region)
	return b.Members()
}

// Members returns a copy of the current ordered membership.
func (b *BeamTrain) Members() []*l3elements.Placed {
	out := make([]*l3elements.Placed, len(b.members))
	copy(out, b.members)
	return out
}

// Len returns the number of elements on the beam.
func (b *BeamTrain) Len() int { return len(b.members) }
