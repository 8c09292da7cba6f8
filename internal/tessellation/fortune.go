package tessellation

import (
	stdmath "math"

	"github.com/pzsz/voronoi"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mapgen/internal/logger"
	"github.com/Faultbox/midgard-mapgen/pkg/math"
)

// Fortune computes Voronoi tessellations with Fortune's sweep line.
//
// Cells are clipped to the rectangle but not closed against it, so cells on
// the border come back open and the mesh builder closes them.
type Fortune struct{}

// Tessellate implements Provider.
func (Fortune) Tessellate(seeds []math.Vec2, rect math.Rect) (*Diagram, error) {
	if rect.IsEmpty() {
		return nil, ErrInvalidRect
	}

	sites := make([]voronoi.Vertex, 0, len(seeds))
	seen := make(map[math.Vec2]bool, len(seeds))
	for _, s := range seeds {
		if !rect.Contains(s) || seen[s] {
			continue
		}
		seen[s] = true
		sites = append(sites, voronoi.Vertex{X: s.X, Y: s.Y})
	}
	if len(sites) == 0 {
		return nil, ErrNoSeeds
	}
	if dropped := len(seeds) - len(sites); dropped > 0 {
		logger.Named("tessellation").Debug("dropped seeds", zap.Int("count", dropped))
	}

	// The sweep treats Yt as the smaller Y.
	bbox := voronoi.BBox{Xl: rect.Min.X, Xr: rect.Max.X, Yt: rect.Min.Y, Yb: rect.Max.Y}
	diagram := voronoi.ComputeDiagram(sites, bbox, false)

	out := make([]Site, 0, len(diagram.Cells))
	for _, cell := range diagram.Cells {
		site := Site{Position: toVec2(cell.Site)}
		for _, he := range cell.Halfedges {
			edge := he.Edge
			if unset(edge.Va.Vertex) || unset(edge.Vb.Vertex) {
				continue
			}
			site.Segments = append(site.Segments, Segment{
				P0: toVec2(edge.Va.Vertex),
				P1: toVec2(edge.Vb.Vertex),
			})
			site.Neighbors = append(site.Neighbors, neighborOf(edge, cell, site.Position))
		}
		out = append(out, site)
	}

	logger.Named("tessellation").Debug("computed diagram",
		zap.Int("sites", len(out)),
		zap.Int("edges", len(diagram.Edges)))

	return NewDiagram(rect, out)
}

// neighborOf returns the seed across edge from cell. Border edges have no
// neighbor; the cell's own seed is returned in that case.
func neighborOf(edge *voronoi.Edge, cell *voronoi.Cell, self math.Vec2) math.Vec2 {
	var other *voronoi.Cell
	switch cell {
	case edge.LeftCell:
		other = edge.RightCell
	case edge.RightCell:
		other = edge.LeftCell
	}
	if other == nil {
		return self
	}
	return toVec2(other.Site)
}

// unset reports whether v is the sweep's placeholder for an open edge end.
func unset(v voronoi.Vertex) bool {
	return stdmath.IsInf(v.X, 0) || stdmath.IsInf(v.Y, 0)
}

func toVec2(v voronoi.Vertex) math.Vec2 {
	return math.Vec2{X: v.X, Y: v.Y}
}
