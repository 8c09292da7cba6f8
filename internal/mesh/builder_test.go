package mesh

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Faultbox/midgard-mapgen/internal/sampling"
	"github.com/Faultbox/midgard-mapgen/internal/tessellation"
	"github.com/Faultbox/midgard-mapgen/pkg/math"
)

func seg(x0, y0, x1, y1 float64) tessellation.Segment {
	return tessellation.Segment{P0: math.Vec2{X: x0, Y: y0}, P1: math.Vec2{X: x1, Y: y1}}
}

func site(x, y float64, segs ...tessellation.Segment) tessellation.Site {
	return tessellation.Site{Position: math.Vec2{X: x, Y: y}, Segments: segs}
}

func mustDiagram(t *testing.T, rect math.Rect, sites ...tessellation.Site) *tessellation.Diagram {
	t.Helper()
	d, err := tessellation.NewDiagram(rect, sites)
	if err != nil {
		t.Fatalf("NewDiagram failed: %v", err)
	}
	return d
}

func mustBuild(t *testing.T, d *tessellation.Diagram, opts Options) *Mesh {
	t.Helper()
	m, err := Build(d, opts)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return m
}

func noSnap() Options {
	opts := DefaultOptions()
	opts.Snap = false
	return opts
}

// quadrantDiagram splits a 10x10 square into four cells along x=5 and y=5.
func quadrantDiagram(t *testing.T) *tessellation.Diagram {
	return mustDiagram(t, math.NewRect(0, 0, 10, 10),
		site(2.5, 2.5, seg(0, 5, 5, 5), seg(5, 5, 5, 0)),
		site(7.5, 2.5, seg(5, 0, 5, 5), seg(5, 5, 10, 5)),
		site(2.5, 7.5, seg(0, 5, 5, 5), seg(5, 5, 5, 10)),
		site(7.5, 7.5, seg(5, 10, 5, 5), seg(10, 5, 5, 5)),
	)
}

// fortuneMesh builds a mesh from Poisson seeds and Fortune's algorithm.
func fortuneMesh(t *testing.T, seed int64, opts Options) *Mesh {
	t.Helper()
	rect := math.NewRect(0, 0, 200, 200)
	seeds := sampling.Poisson(rand.New(rand.NewSource(seed)), rect, sampling.DefaultConfig(12))
	d, err := tessellation.Fortune{}.Tessellate(seeds, rect)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	return mustBuild(t, d, opts)
}

func cornerPositions(m *Mesh, f FaceID) []math.Vec2 {
	var out []math.Vec2
	for _, v := range m.FaceCorners(f) {
		out = append(out, m.Vertex(v).Position.XZ())
	}
	return out
}

func faceAt(t *testing.T, m *Mesh, x, y float64) FaceID {
	t.Helper()
	f, ok := m.FaceAt(math.Vec2{X: x, Y: y})
	if !ok {
		t.Fatalf("no face at (%v, %v)", x, y)
	}
	return f
}

func TestBuildQuadrants(t *testing.T) {
	m := mustBuild(t, quadrantDiagram(t), noSnap())

	stats := m.Stats()
	if stats.Faces != 4 {
		t.Fatalf("expected 4 faces, got %d", stats.Faces)
	}
	if stats.Vertices != 9 {
		t.Errorf("expected 9 vertices, got %d", stats.Vertices)
	}
	if stats.Edges != 16 {
		t.Errorf("expected 16 edges, got %d", stats.Edges)
	}
	if stats.BoundaryEdges != 8 {
		t.Errorf("expected 8 boundary edges, got %d", stats.BoundaryEdges)
	}
	if stats.ErrorFaces != 0 {
		t.Errorf("expected no error faces, got %d", stats.ErrorFaces)
	}

	for _, f := range m.Faces() {
		edges := m.FaceEdges(f)
		if len(edges) != 4 {
			t.Errorf("face %d: expected 4 edges, got %d", f, len(edges))
		}
		linked, boundary := 0, 0
		for _, e := range edges {
			if m.Edge(e).Opposite == NoEdge {
				boundary++
			} else {
				linked++
			}
		}
		if linked != 2 || boundary != 2 {
			t.Errorf("face %d: expected 2 linked and 2 boundary edges, got %d and %d", f, linked, boundary)
		}
		if n := len(m.NeighborFaces(f)); n != 2 {
			t.Errorf("face %d: expected 2 neighbors, got %d", f, n)
		}
		if !m.IsBoundary(f) {
			t.Errorf("face %d: expected boundary face", f)
		}
	}

	if err := m.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestRingInsertsMissingCorner(t *testing.T) {
	m := mustBuild(t, quadrantDiagram(t), noSnap())

	f := faceAt(t, m, 2.5, 2.5)
	want := []math.Vec2{{X: 5, Y: 5}, {X: 5, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 5}}
	got := cornerPositions(m, f)
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("ring mismatch (-want +got):\n%s", diff)
	}

	corner := 0
	for _, p := range got {
		if p == (math.Vec2{}) {
			corner++
		}
	}
	if corner != 1 {
		t.Errorf("expected corner once in ring, got %d", corner)
	}
}

func TestRingSkipsCornerAtGapStart(t *testing.T) {
	// The bisector runs corner to corner, so the gaps start exactly on the
	// corners both sites are tied for.
	m := mustBuild(t, mustDiagram(t, math.NewRect(0, 0, 10, 10),
		site(2.5, 7.5, seg(0, 0, 10, 10)),
		site(7.5, 2.5, seg(0, 0, 10, 10)),
	), noSnap())

	tests := []struct {
		name string
		x, y float64
		want []math.Vec2
	}{
		{"upper", 2.5, 7.5, []math.Vec2{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}}},
		{"lower", 7.5, 2.5, []math.Vec2{{X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cornerPositions(m, faceAt(t, m, tt.x, tt.y))
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("ring mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if err := m.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestRingDropsDegenerateSegments(t *testing.T) {
	m := mustBuild(t, mustDiagram(t, math.NewRect(0, 0, 10, 10),
		site(2.5, 2.5, seg(0, 5, 5, 5), seg(5, 5, 5.0001, 5.0001), seg(5, 5, 5, 0)),
		site(7.5, 2.5, seg(5, 0, 5, 5), seg(5, 5, 10, 5)),
		site(2.5, 7.5, seg(0, 5, 5, 5), seg(5, 5, 5, 10)),
		site(7.5, 7.5, seg(5, 10, 5, 5), seg(10, 5, 5, 5)),
	), noSnap())

	if n := len(m.FaceEdges(faceAt(t, m, 2.5, 2.5))); n != 4 {
		t.Errorf("expected 4 edges, got %d", n)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestLoneSiteCoversRect(t *testing.T) {
	m := mustBuild(t, mustDiagram(t, math.NewRect(0, 0, 4, 3), site(1, 1)), noSnap())

	want := []math.Vec2{{X: 4, Y: 3}, {X: 4, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 3}}
	got := cornerPositions(m, 0)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ring mismatch (-want +got):\n%s", diff)
	}
	if s := m.Stats(); s.BoundaryEdges != 4 {
		t.Errorf("expected 4 boundary edges, got %d", s.BoundaryEdges)
	}
}

func TestUnmatchedEdgeTagsFaceError(t *testing.T) {
	u, v, w := 4.95, 5.05, 5.5
	m := mustBuild(t, mustDiagram(t, math.NewRect(0, 0, 10, 10),
		site(2.5, 2.5, seg(0, 5, u, 5), seg(u, 5, 5, 0)),
		site(7.5, 2.5, seg(5, 0, u, 5), seg(u, 5, v, 5), seg(v, 5, 10, 5)),
		site(2.5, 7.5, seg(0, 5, u, 5), seg(u, 5, w, 5), seg(w, 5, 5, 10)),
		site(7.5, 7.5, seg(v, 5, 10, 5), seg(v, 5, 5, 10)),
	), DefaultOptions())

	for _, tt := range []struct {
		x, y float64
		want NodeType
	}{
		{2.5, 2.5, NodeGrassland},
		{7.5, 2.5, NodeError},
		{2.5, 7.5, NodeError},
		{7.5, 7.5, NodeGrassland},
	} {
		if got := m.Face(faceAt(t, m, tt.x, tt.y)).Type; got != tt.want {
			t.Errorf("face (%v, %v): expected %v, got %v", tt.x, tt.y, tt.want, got)
		}
	}

	stats := m.Stats()
	if stats.ErrorFaces != 2 {
		t.Errorf("expected 2 error faces, got %d", stats.ErrorFaces)
	}
	if stats.Snapped != 0 {
		t.Errorf("expected no snapping across error faces, got %d", stats.Snapped)
	}
}

func TestOppositesAcrossRoundingBoundary(t *testing.T) {
	// The right end of the short edge rounds to 5.05 in the lower-right
	// cell and to 5.051 in the two upper cells. The lower-right cell comes
	// first, so its copy of the edge is matched before its twin.
	u, v1, v2 := 4.95, 5.0504, 5.0506
	m := mustBuild(t, mustDiagram(t, math.NewRect(0, 0, 10, 10),
		site(2.5, 2.5, seg(0, 5, u, 5), seg(u, 5, 5, 0)),
		site(7.5, 2.5, seg(5, 0, u, 5), seg(u, 5, v1, 5), seg(v1, 5, 10, 5)),
		site(2.5, 7.5, seg(0, 5, u, 5), seg(u, 5, v2, 5), seg(v2, 5, 5, 10)),
		site(7.5, 7.5, seg(v2, 5, 10, 5), seg(v2, 5, 5, 10)),
	), noSnap())

	_, has1 := m.VertexAt(math.Vec2{X: v1, Y: 5})
	_, has2 := m.VertexAt(math.Vec2{X: v2, Y: 5})
	if has1 == has2 {
		t.Errorf("expected the two copies to be welded into one vertex, got %v and %v", has1, has2)
	}

	if s := m.Stats(); s.ErrorFaces != 0 {
		t.Errorf("expected no error faces, got %d", s.ErrorFaces)
	}
	for _, f := range m.Faces() {
		if m.Face(f).Type == NodeError {
			t.Errorf("face %d tagged Error", f)
		}
	}

	lowerRight := faceAt(t, m, 7.5, 2.5)
	linked := 0
	for _, e := range m.FaceEdges(lowerRight) {
		if m.Edge(e).Opposite != NoEdge {
			linked++
		}
	}
	if linked != 3 {
		t.Errorf("expected 3 linked edges on the lower-right face, got %d", linked)
	}

	for _, e := range m.Edges() {
		if o := m.Edge(e).Opposite; o != NoEdge && m.Edge(o).Dest != m.Origin(e) {
			t.Errorf("edge %d: opposite ends at vertex %d, expected %d", e, m.Edge(o).Dest, m.Origin(e))
		}
	}

	if err := m.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(nil, DefaultOptions()); !errors.Is(err, ErrEmptyDiagram) {
		t.Errorf("expected ErrEmptyDiagram, got %v", err)
	}
	if _, err := Build(&tessellation.Diagram{Rect: math.NewRect(0, 0, 10, 10)}, DefaultOptions()); !errors.Is(err, ErrEmptyDiagram) {
		t.Errorf("expected ErrEmptyDiagram, got %v", err)
	}
	d := &tessellation.Diagram{Rect: math.NewRect(0, 0, 0, 10), Sites: []tessellation.Site{site(0, 5)}}
	if _, err := Build(d, DefaultOptions()); !errors.Is(err, ErrInvalidRect) {
		t.Errorf("expected ErrInvalidRect, got %v", err)
	}
}

func TestEmitDegenerateEdgePanics(t *testing.T) {
	m := mustBuild(t, quadrantDiagram(t), noSnap())

	defer func() {
		if recover() == nil {
			t.Error("expected panic on zero-length edge")
		}
	}()
	m.emitEdge(0, 0, 0)
}

func TestDuplicateSiteSkipped(t *testing.T) {
	d := quadrantDiagram(t)
	d.Sites = append(d.Sites, d.Sites[0])

	m := mustBuild(t, d, noSnap())
	if n := len(m.Faces()); n != 4 {
		t.Errorf("expected 4 faces, got %d", n)
	}
}

func TestFortuneMeshInvariants(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		for _, snap := range []bool{false, true} {
			checkFortuneMesh(t, seed, snap)
		}
	}
}

func checkFortuneMesh(t *testing.T, seed int64, snap bool) {
	t.Helper()
	opts := DefaultOptions()
	opts.Snap = snap
	m := fortuneMesh(t, seed, opts)

	if err := m.Validate(); err != nil {
		t.Fatalf("seed %d, snap=%v: Validate failed: %v", seed, snap, err)
	}
	if s := m.Stats(); s.ErrorFaces != 0 {
		t.Errorf("seed %d, snap=%v: expected no error faces, got %d", seed, snap, s.ErrorFaces)
	}

	for _, e := range m.Edges() {
		o := m.Edge(e).Opposite
		if o == NoEdge {
			continue
		}
		if m.Edge(o).Opposite != e {
			t.Fatalf("seed %d, snap=%v: edge %d: opposite %d is not symmetric", seed, snap, e, o)
		}
		from := m.Vertex(m.Origin(e)).Position.XZ()
		to := m.Vertex(m.Edge(o).Dest).Position.XZ()
		if !math.NearlyEqual(from, to, opts.OppositeTolerance) {
			t.Fatalf("seed %d, snap=%v: edge %d: opposite ends at %v, expected %v", seed, snap, e, to, from)
		}
	}

	for _, f := range m.Faces() {
		ring := m.FaceEdges(f)
		if len(ring) < 3 {
			t.Errorf("seed %d, snap=%v: face %d has %d edges", seed, snap, f, len(ring))
		}
		for _, e := range ring {
			if m.Edge(e).Face != f {
				t.Errorf("seed %d, snap=%v: edge %d in ring of face %d belongs to %d", seed, snap, e, f, m.Edge(e).Face)
			}
		}
	}
}
