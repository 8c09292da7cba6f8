package mesh

import (
	stdmath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mapgen/pkg/math"
)

// cell is a square of side OppositeTolerance in the edge start index. Any
// point within tolerance of p lies in the 3x3 block around p's cell.
type cell struct {
	x, y int64
}

func (m *Mesh) cellOf(p math.Vec2) cell {
	tol := m.opts.OppositeTolerance
	return cell{int64(stdmath.Floor(p.X / tol)), int64(stdmath.Floor(p.Y / tol))}
}

// linkOpposites pairs every half-edge with the half-edge running the other
// way between the same two points, both ends matched within
// OppositeTolerance. Edges still unpaired once all pairs are linked are
// boundary edges when they touch the border; otherwise their face is
// tagged NodeError.
func (m *Mesh) linkOpposites() (boundary, defects int) {
	byStart := make(map[cell][]EdgeID, len(m.edges))
	for i := range m.edges {
		e := EdgeID(i)
		c := m.cellOf(m.position(m.Origin(e)))
		byStart[c] = append(byStart[c], e)
	}

	for i := range m.edges {
		e := EdgeID(i)
		if m.edges[e].Opposite != NoEdge {
			continue
		}
		if twin := m.findTwin(byStart, e); twin != NoEdge {
			m.edges[e].Opposite = twin
			m.edges[twin].Opposite = e
		}
	}

	if n := m.weldTwins(); n > 0 {
		m.log.Debug("welded near-duplicate vertices", zap.Int("count", n))
	}

	tol := m.opts.OppositeTolerance
	for i := range m.edges {
		e := EdgeID(i)
		if m.edges[e].Opposite != NoEdge {
			continue
		}

		start := m.position(m.Origin(e))
		end := m.position(m.edges[e].Dest)
		if m.rect.OnBorder(start, tol) || m.rect.OnBorder(end, tol) {
			boundary++
			continue
		}

		defects++
		f := m.edges[e].Face
		m.faces[f].Type = NodeError
		center := m.faces[f].Center.XZ()
		m.log.Warn("half-edge has no opposite",
			zap.Int("face", int(f)),
			zap.Float64("centerX", center.X), zap.Float64("centerY", center.Y),
			zap.Float64("fromX", start.X), zap.Float64("fromY", start.Y),
			zap.Float64("toX", end.X), zap.Float64("toY", end.Y))
	}
	return boundary, defects
}

// findTwin returns the closest unpaired edge on another face that starts
// near e's end and ends near e's start, or NoEdge.
func (m *Mesh) findTwin(byStart map[cell][]EdgeID, e EdgeID) EdgeID {
	tol := m.opts.OppositeTolerance
	start := m.position(m.Origin(e))
	end := m.position(m.edges[e].Dest)
	face := m.edges[e].Face

	best := NoEdge
	bestDist := stdmath.Inf(1)
	home := m.cellOf(end)
	for dy := int64(-1); dy <= 1; dy++ {
		for dx := int64(-1); dx <= 1; dx++ {
			for _, c := range byStart[cell{home.x + dx, home.y + dy}] {
				if c == e || m.edges[c].Opposite != NoEdge || m.edges[c].Face == face {
					continue
				}
				d0 := m.position(m.Origin(c)).Distance(end)
				d1 := m.position(m.edges[c].Dest).Distance(start)
				if d0 > tol || d1 > tol {
					continue
				}
				if d := d0 + d1; d < bestDist {
					best, bestDist = c, d
				}
			}
		}
	}
	return best
}

// weldTwins merges the distinct vertices that linked twins disagree on, so
// that e's origin is its opposite's destination by identity. The lowest ID
// survives; the others are removed along with their index keys.
func (m *Mesh) weldTwins() int {
	parent := make([]VertexID, len(m.vertices))
	for i := range parent {
		parent[i] = VertexID(i)
	}
	var find func(v VertexID) VertexID
	find = func(v VertexID) VertexID {
		if parent[v] != v {
			parent[v] = find(parent[v])
		}
		return parent[v]
	}
	union := func(a, b VertexID) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if rb < ra {
			ra, rb = rb, ra
		}
		parent[rb] = ra
	}

	for i := range m.edges {
		e := EdgeID(i)
		if o := m.edges[e].Opposite; o != NoEdge {
			union(m.Origin(e), m.edges[o].Dest)
		}
	}

	welded := 0
	for i := range m.vertices {
		v := VertexID(i)
		if find(v) == v {
			continue
		}
		delete(m.vertexIndex, m.key(m.position(v)))
		m.vertices[v].removed = true
		m.vertices[v].Leaving = NoEdge
		welded++
	}
	if welded == 0 {
		return 0
	}

	for i := range m.edges {
		m.edges[i].Dest = find(m.edges[i].Dest)
	}
	return welded
}
