package mesh

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mapgen/internal/logger"
	"github.com/Faultbox/midgard-mapgen/internal/tessellation"
	"github.com/Faultbox/midgard-mapgen/pkg/math"
)

// Build errors.
var (
	ErrEmptyDiagram = errors.New("diagram has no sites")
	ErrInvalidRect  = errors.New("diagram rectangle has no area")
)

// Build turns a raw tessellation into a half-edge mesh: one face per site,
// rings closed against the rectangle, twins linked, and near-duplicate
// vertices collapsed when opts.Snap is set.
//
// Faces whose edges cannot be matched are tagged NodeError and reported in
// the log; they do not fail the build.
func Build(d *tessellation.Diagram, opts Options) (*Mesh, error) {
	if d == nil || len(d.Sites) == 0 {
		return nil, ErrEmptyDiagram
	}
	if d.Rect.IsEmpty() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRect, d.Rect)
	}

	m := newMesh(d.Rect, opts.withDefaults(), logger.Named("mesh"))

	for _, site := range d.Sites {
		key := m.key(site.Position)
		if _, dup := m.faceIndex[key]; dup {
			m.log.Warn("duplicate site skipped", zap.Float64("x", site.Position.X), zap.Float64("y", site.Position.Y))
			continue
		}

		ring := m.traceRing(d, site)
		if len(ring) < 3 {
			m.log.Warn("site ring too small",
				zap.Float64("x", site.Position.X),
				zap.Float64("y", site.Position.Y),
				zap.Int("points", len(ring)))
			continue
		}
		m.addFace(site.Position, ring)
	}
	if len(m.faces) == 0 {
		return nil, ErrEmptyDiagram
	}
	m.log.Debug("rings built", zap.Int("faces", len(m.faces)), zap.Int("edges", len(m.edges)), zap.Int("vertices", len(m.vertices)))

	boundary, defects := m.linkOpposites()
	m.log.Debug("opposites linked", zap.Int("boundary", boundary), zap.Int("defects", defects))

	if n := m.checkAdjacency(d); n > 0 {
		m.log.Debug("linked neighbors missing from raw adjacency", zap.Int("count", n))
	}

	if m.opts.Snap {
		m.snapped = m.snapVertices()
	}

	stats := m.Stats()
	m.log.Info("mesh built",
		zap.Int("faces", stats.Faces),
		zap.Int("vertices", stats.Vertices),
		zap.Int("edges", stats.Edges),
		zap.Int("boundaryEdges", stats.BoundaryEdges),
		zap.Int("errorFaces", stats.ErrorFaces),
		zap.Int("snapped", stats.Snapped))

	return m, nil
}

// addFace registers a face around center and emits one half-edge per ring
// side, threaded into a cycle.
func (m *Mesh) addFace(center math.Vec2, ring []math.Vec2) FaceID {
	f := FaceID(len(m.faces))
	m.faces = append(m.faces, Face{
		Center: center.Lift(0),
		Start:  NoEdge,
		Type:   NodeGrassland,
		cache:  &faceCache{},
	})
	m.faceIndex[m.key(center)] = f

	n := len(ring)
	first := EdgeID(len(m.edges))
	from := m.vertexFor(ring[0])
	for i := 0; i < n; i++ {
		to := m.vertexFor(ring[(i+1)%n])
		m.emitEdge(f, from, to)
		from = to
	}

	for i := 0; i < n; i++ {
		e := first + EdgeID(i)
		m.edges[e].Next = first + EdgeID((i+1)%n)
		m.edges[e].Prev = first + EdgeID((i+n-1)%n)
	}
	for i := 0; i < n; i++ {
		e := first + EdgeID(i)
		if origin := m.Origin(e); m.vertices[origin].Leaving == NoEdge {
			m.vertices[origin].Leaving = e
		}
	}

	m.faces[f].Start = first
	return f
}

// emitEdge appends an unthreaded half-edge from -> to. A zero-length edge
// means ring tracing let a degenerate segment through.
func (m *Mesh) emitEdge(f FaceID, from, to VertexID) EdgeID {
	if from == to {
		panic(fmt.Sprintf("mesh: degenerate half-edge at %v in face %d", m.position(from), f))
	}
	e := EdgeID(len(m.edges))
	m.edges = append(m.edges, HalfEdge{
		Dest:     to,
		Next:     NoEdge,
		Prev:     NoEdge,
		Opposite: NoEdge,
		Face:     f,
	})
	return e
}

// vertexFor returns the vertex at p, creating it on first sight.
func (m *Mesh) vertexFor(p math.Vec2) VertexID {
	key := m.key(p)
	if id, ok := m.vertexIndex[key]; ok {
		return id
	}
	id := VertexID(len(m.vertices))
	m.vertices = append(m.vertices, Vertex{Position: p.Lift(0), Leaving: NoEdge})
	m.vertexIndex[key] = id
	return id
}

// checkAdjacency counts linked neighbor faces the raw tessellation did not
// list as neighbors of the site.
func (m *Mesh) checkAdjacency(d *tessellation.Diagram) int {
	missing := 0
	for _, site := range d.Sites {
		f, ok := m.FaceAt(site.Position)
		if !ok || len(site.Neighbors) == 0 {
			continue
		}
		listed := make(map[math.Key]bool, len(site.Neighbors))
		for _, n := range site.Neighbors {
			listed[m.key(n)] = true
		}
		for _, nf := range m.NeighborFaces(f) {
			if !listed[m.key(m.faces[nf].Center.XZ())] {
				missing++
			}
		}
	}
	return missing
}
