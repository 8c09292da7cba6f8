// Package sampling generates well-spaced seed points for the tessellation.
package sampling

import (
	stdmath "math"
	"math/rand"

	"github.com/Faultbox/midgard-mapgen/pkg/math"
)

// Config configures Poisson disk sampling.
type Config struct {
	MinDistance float64 // Minimum distance between points
	MaxTries    int     // Attempts per active point before retiring it
}

// DefaultConfig returns the usual Bridson settings for the given spacing.
func DefaultConfig(minDistance float64) Config {
	return Config{
		MinDistance: minDistance,
		MaxTries:    30,
	}
}

// Poisson generates points inside rect, no two closer than cfg.MinDistance,
// using Bridson's algorithm. The result is deterministic for a given rng state.
func Poisson(rng *rand.Rand, rect math.Rect, cfg Config) []math.Vec2 {
	if cfg.MinDistance <= 0 || rect.IsEmpty() {
		return nil
	}
	if cfg.MaxTries <= 0 {
		cfg.MaxTries = 30
	}

	// r/sqrt(2) cells hold at most one point each
	cellSize := cfg.MinDistance / stdmath.Sqrt2
	gridW := int(stdmath.Ceil(rect.Width() / cellSize))
	gridH := int(stdmath.Ceil(rect.Height() / cellSize))

	grid := make([]int, gridW*gridH)
	for i := range grid {
		grid[i] = -1
	}

	var points []math.Vec2
	var active []int

	cellOf := func(p math.Vec2) (int, int) {
		gx := min(max(int((p.X-rect.Min.X)/cellSize), 0), gridW-1)
		gy := min(max(int((p.Y-rect.Min.Y)/cellSize), 0), gridH-1)
		return gx, gy
	}

	fits := func(p math.Vec2) bool {
		if p.X < rect.Min.X || p.X >= rect.Max.X || p.Y < rect.Min.Y || p.Y >= rect.Max.Y {
			return false
		}
		gx, gy := cellOf(p)
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				nx, ny := gx+dx, gy+dy
				if nx < 0 || nx >= gridW || ny < 0 || ny >= gridH {
					continue
				}
				if idx := grid[ny*gridW+nx]; idx != -1 && points[idx].Distance(p) < cfg.MinDistance {
					return false
				}
			}
		}
		return true
	}

	insert := func(p math.Vec2) {
		idx := len(points)
		points = append(points, p)
		active = append(active, idx)
		gx, gy := cellOf(p)
		grid[gy*gridW+gx] = idx
	}

	insert(math.Vec2{
		X: rect.Min.X + rng.Float64()*rect.Width(),
		Y: rect.Min.Y + rng.Float64()*rect.Height(),
	})

	for len(active) > 0 {
		i := rng.Intn(len(active))
		center := points[active[i]]

		placed := false
		for try := 0; try < cfg.MaxTries; try++ {
			angle := rng.Float64() * 2 * stdmath.Pi
			radius := cfg.MinDistance * (1 + rng.Float64())
			candidate := center.Add(math.Vec2{X: stdmath.Cos(angle), Y: stdmath.Sin(angle)}.Scale(radius))
			if fits(candidate) {
				insert(candidate)
				placed = true
				break
			}
		}

		if !placed {
			active[i] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}

	return points
}
