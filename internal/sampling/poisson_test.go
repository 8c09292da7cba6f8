package sampling

import (
	"math/rand"
	"testing"

	"github.com/Faultbox/midgard-mapgen/pkg/math"
)

func TestPoissonSpacing(t *testing.T) {
	rect := math.NewRect(0, 0, 200, 120)
	cfg := DefaultConfig(10)

	points := Poisson(rand.New(rand.NewSource(1)), rect, cfg)
	if len(points) < 50 {
		t.Fatalf("expected a dense sample, got %d points", len(points))
	}

	for i, p := range points {
		if !rect.Contains(p) {
			t.Errorf("point %v outside %v", p, rect)
		}
		for _, q := range points[i+1:] {
			if d := p.Distance(q); d < cfg.MinDistance {
				t.Fatalf("points %v and %v only %v apart", p, q, d)
			}
		}
	}
}

func TestPoissonDeterministic(t *testing.T) {
	rect := math.NewRect(-50, -50, 50, 50)
	a := Poisson(rand.New(rand.NewSource(7)), rect, DefaultConfig(8))
	b := Poisson(rand.New(rand.NewSource(7)), rect, DefaultConfig(8))

	if len(a) != len(b) {
		t.Fatalf("expected equal counts, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestPoissonInvalidInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if pts := Poisson(rng, math.NewRect(0, 0, 10, 10), Config{MinDistance: 0}); pts != nil {
		t.Errorf("expected nil for zero spacing, got %d points", len(pts))
	}
	if pts := Poisson(rng, math.NewRect(0, 0, 0, 10), DefaultConfig(1)); pts != nil {
		t.Errorf("expected nil for empty rect, got %d points", len(pts))
	}
}
