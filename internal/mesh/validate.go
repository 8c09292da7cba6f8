package mesh

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate checks the mesh invariants and returns every violation found.
// Faces tagged NodeError are skipped.
func (m *Mesh) Validate() error {
	var err error
	for i := range m.faces {
		err = multierr.Append(err, m.validateFace(FaceID(i)))
	}
	for i := range m.edges {
		err = multierr.Append(err, m.validateEdge(EdgeID(i)))
	}
	for i := range m.vertices {
		err = multierr.Append(err, m.validateVertex(VertexID(i)))
	}
	return err
}

func (m *Mesh) validateFace(f FaceID) (err error) {
	if m.faces[f].Type == NodeError {
		return nil
	}
	start := m.faces[f].Start
	if start == NoEdge || m.edges[start].removed {
		return fmt.Errorf("face %d: start edge %d is not live", f, start)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("face %d: %v", f, r)
		}
	}()

	ring := m.FaceEdges(f)
	if len(ring) < 3 {
		err = multierr.Append(err, fmt.Errorf("face %d: %d edges", f, len(ring)))
	}
	for _, e := range ring {
		if m.edges[e].Face != f {
			err = multierr.Append(err, fmt.Errorf("face %d: edge %d belongs to face %d", f, e, m.edges[e].Face))
		}
		if m.edges[e].removed {
			err = multierr.Append(err, fmt.Errorf("face %d: removed edge %d in ring", f, e))
		}
	}
	return err
}

func (m *Mesh) validateEdge(e EdgeID) error {
	edge := m.edges[e]
	if edge.removed || m.faces[edge.Face].Type == NodeError {
		return nil
	}

	var err error
	if m.vertices[edge.Dest].removed {
		err = multierr.Append(err, fmt.Errorf("edge %d: destination %d was removed", e, edge.Dest))
	}
	if m.edges[edge.Next].Prev != e || m.edges[edge.Prev].Next != e {
		err = multierr.Append(err, fmt.Errorf("edge %d: next/prev links disagree", e))
	}

	o := edge.Opposite
	if o == NoEdge {
		return err
	}
	if m.edges[o].removed {
		return multierr.Append(err, fmt.Errorf("edge %d: opposite %d was removed", e, o))
	}
	if m.edges[o].Opposite != e {
		err = multierr.Append(err, fmt.Errorf("edge %d: opposite %d points at %d", e, o, m.edges[o].Opposite))
	}
	tol := m.opts.OppositeTolerance
	if d := m.position(m.edges[o].Dest).Distance(m.position(m.Origin(e))); d > tol {
		err = multierr.Append(err, fmt.Errorf("edge %d: opposite ends %.4f from its origin", e, d))
	}
	return err
}

func (m *Mesh) validateVertex(v VertexID) error {
	vert := m.vertices[v]
	if vert.removed || vert.Leaving == NoEdge {
		return nil
	}
	if m.edges[vert.Leaving].removed {
		return fmt.Errorf("vertex %d: leaving edge %d was removed", v, vert.Leaving)
	}
	if m.Origin(vert.Leaving) != v {
		return fmt.Errorf("vertex %d: leaving edge %d starts at %d", v, vert.Leaving, m.Origin(vert.Leaving))
	}

	fan, closed := m.walkFan(v)
	if closed {
		return nil
	}
	for _, e := range fan {
		if m.edges[e].Opposite == NoEdge {
			return nil
		}
	}
	return fmt.Errorf("vertex %d: interior fan did not close in %d steps", v, len(fan))
}
