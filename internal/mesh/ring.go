package mesh

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mapgen/internal/tessellation"
	"github.com/Faultbox/midgard-mapgen/pkg/math"
)

// traceRing orders a site's raw segments into a clockwise ring of corner
// positions, closing any gaps along the rectangle border.
func (m *Mesh) traceRing(d *tessellation.Diagram, site tessellation.Site) []math.Vec2 {
	segs := orientClockwise(site.Position, site.Segments)
	sortClockwise(site.Position, segs)
	segs = m.dropDegenerate(segs)

	if len(segs) == 0 {
		return m.cornerRing(d, site.Position)
	}

	ring := make([]math.Vec2, 0, 2*len(segs)+4)
	for i, s := range segs {
		ring = m.appendPoint(ring, s.P0)
		ring = m.appendPoint(ring, s.P1)

		next := segs[(i+1)%len(segs)]
		if !m.coincide(s.P1, next.P0) {
			ring = m.closeGap(ring, d, site.Position, s.P1, next.P0)
		}
	}

	if len(ring) > 1 && m.coincide(ring[0], ring[len(ring)-1]) {
		ring = ring[:len(ring)-1]
	}
	return ring
}

// orientClockwise returns a copy of segs with every segment running
// clockwise around site.
func orientClockwise(site math.Vec2, segs []tessellation.Segment) []tessellation.Segment {
	out := make([]tessellation.Segment, len(segs))
	for i, s := range segs {
		if s.P0.Sub(site).Cross(s.P1.Sub(site)) > 0 {
			s.P0, s.P1 = s.P1, s.P0
		}
		out[i] = s
	}
	return out
}

// sortClockwise orders segments by decreasing angle of their first endpoint.
func sortClockwise(site math.Vec2, segs []tessellation.Segment) {
	sort.SliceStable(segs, func(i, j int) bool {
		return site.Angle(segs[i].P0) > site.Angle(segs[j].P0)
	})
}

// dropDegenerate removes point-like segments and splices the neighbors of
// each removed segment onto a shared endpoint.
func (m *Mesh) dropDegenerate(segs []tessellation.Segment) []tessellation.Segment {
	out := segs[:0]
	for _, s := range segs {
		if m.coincide(s.P0, s.P1) {
			continue
		}
		out = append(out, s)
	}

	for i := range out {
		next := &out[(i+1)%len(out)]
		if m.coincide(out[i].P1, next.P0) {
			next.P0 = out[i].P1
		}
	}
	return out
}

func (m *Mesh) appendPoint(ring []math.Vec2, p math.Vec2) []math.Vec2 {
	if len(ring) > 0 && m.coincide(ring[len(ring)-1], p) {
		return ring
	}
	return append(ring, p)
}

// closeGap walks the rectangle border clockwise from -> to and appends the
// corners in between that belong to site.
func (m *Mesh) closeGap(ring []math.Vec2, d *tessellation.Diagram, site, from, to math.Vec2) []math.Vec2 {
	tol := m.opts.OppositeTolerance
	fromOff, okFrom := d.Rect.PerimeterOffset(from, tol)
	toOff, okTo := d.Rect.PerimeterOffset(to, tol)
	if !okFrom || !okTo {
		m.log.Warn("ring gap away from border",
			zap.Float64("siteX", site.X), zap.Float64("siteY", site.Y),
			zap.Float64("fromX", from.X), zap.Float64("fromY", from.Y),
			zap.Float64("toX", to.X), zap.Float64("toY", to.Y))
		return ring
	}

	perimeter := d.Rect.Perimeter()
	span := toOff - fromOff
	if span <= 0 {
		span += perimeter
	}

	type pending struct {
		corner math.Corner
		offset float64
	}
	var corners []pending
	for c := math.TopLeft; c <= math.BottomLeft; c++ {
		off := d.Rect.CornerOffset(c) - fromOff
		if off < 0 {
			off += perimeter
		}
		if off > tol && off < span-tol {
			corners = append(corners, pending{c, off})
		}
	}
	sort.Slice(corners, func(i, j int) bool { return corners[i].offset < corners[j].offset })

	for _, p := range corners {
		pos := d.Rect.Corner(p.corner)
		if !d.IsCornerSite(site, p.corner) {
			m.log.Debug("corner belongs to another site",
				zap.Int("corner", int(p.corner)),
				zap.Float64("siteX", site.X), zap.Float64("siteY", site.Y))
			continue
		}
		if m.coincide(from, pos) {
			continue
		}
		ring = m.appendPoint(ring, pos)
	}
	return ring
}

// cornerRing is the ring of a site without segments: the corners it owns,
// which for a lone site is the whole rectangle.
func (m *Mesh) cornerRing(d *tessellation.Diagram, site math.Vec2) []math.Vec2 {
	var ring []math.Vec2
	for c := math.TopLeft; c <= math.BottomLeft; c++ {
		if d.IsCornerSite(site, c) {
			ring = append(ring, d.Rect.Corner(c))
		}
	}
	return ring
}
