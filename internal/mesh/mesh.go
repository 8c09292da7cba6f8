package mesh

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mapgen/pkg/math"
)

// Mesh is a half-edge mesh over a rectangle. It owns all vertices,
// half-edges and faces.
//
// A Mesh is built and repaired on one goroutine. Once Build returns it may
// be read concurrently; SetNodeType, AddWater and ApplyHeights are the only
// writers and must not race with readers.
type Mesh struct {
	rect math.Rect
	opts Options

	vertices []Vertex
	edges    []HalfEdge
	faces    []Face

	vertexIndex map[math.Key]VertexID
	faceIndex   map[math.Key]FaceID

	snapped int
	closest closestIndex
	log     *zap.Logger
}

func newMesh(rect math.Rect, opts Options, log *zap.Logger) *Mesh {
	return &Mesh{
		rect:        rect,
		opts:        opts,
		vertexIndex: make(map[math.Key]VertexID),
		faceIndex:   make(map[math.Key]FaceID),
		log:         log,
	}
}

// Rect returns the bounding rectangle of the tessellation.
func (m *Mesh) Rect() math.Rect {
	return m.rect
}

// Options returns the options the mesh was built with.
func (m *Mesh) Options() Options {
	return m.opts
}

// Vertex returns a copy of vertex v.
func (m *Mesh) Vertex(v VertexID) Vertex {
	return m.vertices[v]
}

// Edge returns a copy of half-edge e.
func (m *Mesh) Edge(e EdgeID) HalfEdge {
	return m.edges[e]
}

// Face returns a copy of face f.
func (m *Mesh) Face(f FaceID) Face {
	return m.faces[f]
}

// Vertices returns the IDs of all live vertices.
func (m *Mesh) Vertices() []VertexID {
	ids := make([]VertexID, 0, len(m.vertices))
	for i, v := range m.vertices {
		if !v.removed {
			ids = append(ids, VertexID(i))
		}
	}
	return ids
}

// Edges returns the IDs of all live half-edges.
func (m *Mesh) Edges() []EdgeID {
	ids := make([]EdgeID, 0, len(m.edges))
	for i, e := range m.edges {
		if !e.removed {
			ids = append(ids, EdgeID(i))
		}
	}
	return ids
}

// Faces returns the IDs of all faces.
func (m *Mesh) Faces() []FaceID {
	ids := make([]FaceID, len(m.faces))
	for i := range m.faces {
		ids[i] = FaceID(i)
	}
	return ids
}

// VertexAt looks a vertex up by horizontal position.
func (m *Mesh) VertexAt(p math.Vec2) (VertexID, bool) {
	id, ok := m.vertexIndex[m.key(p)]
	return id, ok
}

// FaceAt looks a face up by its seed position.
func (m *Mesh) FaceAt(center math.Vec2) (FaceID, bool) {
	id, ok := m.faceIndex[m.key(center)]
	return id, ok
}

// Origin returns the vertex half-edge e starts at.
func (m *Mesh) Origin(e EdgeID) VertexID {
	return m.edges[m.edges[e].Prev].Dest
}

// SetNodeType reclassifies face f.
func (m *Mesh) SetNodeType(f FaceID, t NodeType) {
	m.faces[f].Type = t
}

// AddWater adds flow to half-edge e.
func (m *Mesh) AddWater(e EdgeID, amount float64) {
	m.edges[e].Water += amount
}

// Stats counts the live parts of the mesh.
func (m *Mesh) Stats() Stats {
	s := Stats{Faces: len(m.faces), Snapped: m.snapped}
	for _, v := range m.vertices {
		if !v.removed {
			s.Vertices++
		}
	}
	for _, e := range m.edges {
		if e.removed {
			continue
		}
		s.Edges++
		if e.Opposite == NoEdge {
			s.BoundaryEdges++
		}
	}
	for _, f := range m.faces {
		if f.Type == NodeError {
			s.ErrorFaces++
		}
	}
	return s
}

func (m *Mesh) key(p math.Vec2) math.Key {
	return math.KeyOf(p, m.opts.KeyPrecision)
}

func (m *Mesh) position(v VertexID) math.Vec2 {
	return m.vertices[v].Position.XZ()
}

// coincide reports whether a and b are the same vertex position.
func (m *Mesh) coincide(a, b math.Vec2) bool {
	return m.key(a) == m.key(b) || a.Distance(b) <= m.opts.DegenerateTolerance
}
