// Package tessellation describes raw per-site cell boundaries and computes
// them from seed points.
package tessellation

import (
	"errors"

	"github.com/Faultbox/midgard-mapgen/pkg/math"
)

// Tessellation errors.
var (
	ErrNoSeeds     = errors.New("no seed points inside the bounding rectangle")
	ErrInvalidRect = errors.New("bounding rectangle has no area")
)

// Segment is one unordered piece of a cell boundary.
type Segment struct {
	P0, P1 math.Vec2
}

// Site is a seed point with the raw, unordered boundary of its cell.
type Site struct {
	Position math.Vec2
	Segments []Segment
	// Neighbors holds, per segment, the seed on the other side, when known.
	Neighbors []math.Vec2
}

// Diagram is a raw tessellation of a rectangle. Cells touching the
// rectangle may be open: their segments need not include the border.
type Diagram struct {
	Rect  math.Rect
	Sites []Site
	// CornerSites holds the seed nearest to each rectangle corner,
	// indexed by math.Corner.
	CornerSites [4]math.Vec2
}

// Provider computes raw tessellations.
type Provider interface {
	Tessellate(seeds []math.Vec2, rect math.Rect) (*Diagram, error)
}

// NewDiagram assembles a diagram and resolves its corner sites.
func NewDiagram(rect math.Rect, sites []Site) (*Diagram, error) {
	if rect.IsEmpty() {
		return nil, ErrInvalidRect
	}
	if len(sites) == 0 {
		return nil, ErrNoSeeds
	}

	d := &Diagram{Rect: rect, Sites: sites}
	for c := math.TopLeft; c <= math.BottomLeft; c++ {
		d.CornerSites[c] = nearestSite(sites, rect.Corner(c))
	}
	return d, nil
}

// IsCornerSite reports whether seed is the site nearest to corner c.
func (d *Diagram) IsCornerSite(seed math.Vec2, c math.Corner) bool {
	return d.CornerSites[c] == seed
}

func nearestSite(sites []Site, p math.Vec2) math.Vec2 {
	best := sites[0].Position
	bestDist := best.Distance(p)
	for _, s := range sites[1:] {
		if d := s.Position.Distance(p); d < bestDist {
			best, bestDist = s.Position, d
		}
	}
	return best
}
