package mesh

import "go.uber.org/zap"

// snapVertices collapses short interior edges whose endpoints are duplicates
// of one topological vertex. Each vertex is considered once; the vertex
// being visited is the one merged away.
func (m *Mesh) snapVertices() int {
	visited := make(map[VertexID]bool, len(m.vertices))
	merged := 0
	for i := range m.vertices {
		v := VertexID(i)
		if m.vertices[v].removed || visited[v] {
			continue
		}
		visited[v] = true

		e := m.findSnapEdge(v)
		if e == NoEdge {
			continue
		}
		u := m.Origin(e)
		m.log.Debug("snapping vertex",
			zap.Int("vertex", int(v)), zap.Int("into", int(u)),
			zap.Float64("distance", m.position(u).Distance(m.position(v))))
		m.collapse(e)
		visited[u] = true
		merged++
	}
	return merged
}

// findSnapEdge returns an edge ending at v that can be collapsed into its
// origin, or NoEdge.
func (m *Mesh) findSnapEdge(v VertexID) EdgeID {
	fan, closed := m.walkFan(v)
	if !closed {
		return NoEdge
	}
	for _, f := range fan {
		if e := m.edges[f].Opposite; m.canSnap(e, fan) {
			return e
		}
	}
	return NoEdge
}

// canSnap checks e against the collapse rules. fan is the closed fan of
// e's destination.
func (m *Mesh) canSnap(e EdgeID, fan []EdgeID) bool {
	o := m.edges[e].Opposite
	if o == NoEdge {
		return false
	}
	u, v := m.Origin(e), m.edges[e].Dest
	if u == v || m.position(u).Distance(m.position(v)) > m.opts.SnapDistance {
		return false
	}

	left, right := m.edges[e].Face, m.edges[o].Face
	if left == right || m.faces[left].Type == NodeError || m.faces[right].Type == NodeError {
		return false
	}
	if m.EdgeCount(left) <= 3 || m.EdgeCount(right) <= 3 {
		return false
	}

	// A third face holding both ends would end up with u twice in its ring.
	for _, f := range fan {
		face := m.edges[f].Face
		if face == left || face == right {
			continue
		}
		for _, c := range m.FaceCorners(face) {
			if c == u {
				return false
			}
		}
	}
	return true
}

// collapse removes e, its opposite and e's destination, moving every edge
// that ended at the destination onto e's origin.
func (m *Mesh) collapse(e EdgeID) {
	o := m.edges[e].Opposite
	u, v := m.Origin(e), m.edges[e].Dest

	for _, f := range m.VertexFan(v) {
		if f == o {
			continue
		}
		m.edges[m.edges[f].Opposite].Dest = u
	}

	after := m.edges[o].Next
	m.unlinkEdge(e)
	m.unlinkEdge(o)
	if m.vertices[u].Leaving == e {
		m.vertices[u].Leaving = after
	}

	delete(m.vertexIndex, m.key(m.position(v)))
	m.vertices[v].removed = true
	m.vertices[v].Leaving = NoEdge
}

// unlinkEdge bridges e's neighbors in its ring and marks it removed.
func (m *Mesh) unlinkEdge(e EdgeID) {
	prev, next := m.edges[e].Prev, m.edges[e].Next
	m.edges[prev].Next = next
	m.edges[next].Prev = prev

	f := m.edges[e].Face
	if m.faces[f].Start == e {
		m.faces[f].Start = next
	}
	m.edges[e].removed = true
}
