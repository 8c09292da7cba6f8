package mesh

import "fmt"

// FaceEdges returns the half-edges bounding f, in ring order from its start
// edge. A ring that never closes is a construction bug and panics.
func (m *Mesh) FaceEdges(f FaceID) []EdgeID {
	start := m.faces[f].Start
	if start == NoEdge {
		return nil
	}

	var ring []EdgeID
	for e := start; ; {
		ring = append(ring, e)
		e = m.edges[e].Next
		if e == start {
			return ring
		}
		if len(ring) > len(m.edges) {
			panic(fmt.Sprintf("mesh: ring of face %d does not close", f))
		}
	}
}

// FaceCorners returns the destination vertices of f's ring, in ring order.
func (m *Mesh) FaceCorners(f FaceID) []VertexID {
	edges := m.FaceEdges(f)
	corners := make([]VertexID, len(edges))
	for i, e := range edges {
		corners[i] = m.edges[e].Dest
	}
	return corners
}

// EdgeCount returns the number of half-edges bounding f.
func (m *Mesh) EdgeCount(f FaceID) int {
	return len(m.FaceEdges(f))
}

// VertexFan returns the half-edges leaving v, rotating through
// Opposite.Next from v's leaving edge. The walk stops at the first edge
// without an opposite, and after Options.MaxFanIterations steps.
func (m *Mesh) VertexFan(v VertexID) []EdgeID {
	fan, _ := m.walkFan(v)
	return fan
}

// walkFan is VertexFan that also reports whether the walk returned to its
// first edge.
func (m *Mesh) walkFan(v VertexID) (fan []EdgeID, closed bool) {
	start := m.vertices[v].Leaving
	if start == NoEdge || m.vertices[v].removed {
		return nil, false
	}

	e := start
	for i := 0; i < m.opts.MaxFanIterations; i++ {
		fan = append(fan, e)
		o := m.edges[e].Opposite
		if o == NoEdge {
			return fan, false
		}
		e = m.edges[o].Next
		if e == start {
			return fan, true
		}
	}
	return fan, false
}

// NeighborFaces returns the face across each edge of f that has an
// opposite, in ring order.
func (m *Mesh) NeighborFaces(f FaceID) []FaceID {
	var out []FaceID
	for _, e := range m.FaceEdges(f) {
		if o := m.edges[e].Opposite; o != NoEdge {
			out = append(out, m.edges[o].Face)
		}
	}
	return out
}

// VertexFaces returns the faces of v's fan.
func (m *Mesh) VertexFaces(v VertexID) []FaceID {
	fan := m.VertexFan(v)
	out := make([]FaceID, len(fan))
	for i, e := range fan {
		out[i] = m.edges[e].Face
	}
	return out
}

// IsBoundary reports whether f has an edge on the outer border.
func (m *Mesh) IsBoundary(f FaceID) bool {
	for _, e := range m.FaceEdges(f) {
		if m.edges[e].Opposite == NoEdge {
			return true
		}
	}
	return false
}
