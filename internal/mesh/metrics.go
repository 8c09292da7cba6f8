package mesh

import (
	stdmath "math"

	"github.com/Faultbox/midgard-mapgen/pkg/math"
)

// Elevation returns the elevation of f's center.
func (m *Mesh) Elevation(f FaceID) float64 {
	return m.faces[f].Center.Elevation()
}

// VertexElevation returns the elevation of v.
func (m *Mesh) VertexElevation(v VertexID) float64 {
	return m.vertices[v].Position.Elevation()
}

// HeightDifference returns the spread between f's highest and lowest corner.
// Computed on first call.
func (m *Mesh) HeightDifference(f FaceID) float64 {
	c := m.faces[f].cache
	c.reliefOnce.Do(func() {
		lo, hi := stdmath.Inf(1), stdmath.Inf(-1)
		for _, v := range m.FaceCorners(f) {
			y := m.VertexElevation(v)
			lo = stdmath.Min(lo, y)
			hi = stdmath.Max(hi, y)
		}
		if hi >= lo {
			c.relief = hi - lo
		}
	})
	return c.relief
}

// Bounds returns the horizontal bounding rectangle of f's corners.
// Computed on first call.
func (m *Mesh) Bounds(f FaceID) math.Rect {
	c := m.faces[f].cache
	c.boundsOnce.Do(func() {
		r := math.EmptyRect()
		for _, v := range m.FaceCorners(f) {
			r = r.Extend(m.position(v))
		}
		c.bounds = r
	})
	return c.bounds
}

// LowestCorner returns f's corner with the smallest elevation, the first in
// ring order on ties.
func (m *Mesh) LowestCorner(f FaceID) VertexID {
	e := m.LowestEdge(f)
	if e == NoEdge {
		return NoVertex
	}
	return m.edges[e].Dest
}

// LowestEdge returns f's edge whose destination has the smallest elevation,
// the first in ring order on ties.
func (m *Mesh) LowestEdge(f FaceID) EdgeID {
	best := NoEdge
	bestY := stdmath.Inf(1)
	for _, e := range m.FaceEdges(f) {
		if y := m.VertexElevation(m.edges[e].Dest); y < bestY {
			best, bestY = e, y
		}
	}
	return best
}

// DownslopeEdge returns the edge leaving v toward its lowest neighbor that is
// not above v, or NoEdge if every neighbor is higher.
func (m *Mesh) DownslopeEdge(v VertexID) EdgeID {
	own := m.VertexElevation(v)
	best := NoEdge
	bestY := stdmath.Inf(1)
	for _, e := range m.VertexFan(v) {
		y := m.VertexElevation(m.edges[e].Dest)
		if y <= own && y < bestY {
			best, bestY = e, y
		}
	}
	return best
}

// LowestFace returns the lowest face around v, the first in fan order on ties.
func (m *Mesh) LowestFace(v VertexID) FaceID {
	best := NoFace
	bestY := stdmath.Inf(1)
	for _, f := range m.VertexFaces(v) {
		if y := m.Elevation(f); y < bestY {
			best, bestY = f, y
		}
	}
	return best
}
