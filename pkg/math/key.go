package math

import "github.com/go-gl/mathgl/mgl64"

// DefaultKeyPrecision is the number of decimal digits kept by KeyOf.
const DefaultKeyPrecision = 3

// Key is a horizontal position rounded to a fixed decimal precision.
// Two positions that round to the same Key are the same map vertex.
type Key struct {
	X, Y float64
}

// KeyOf quantizes p to the given number of decimal digits.
func KeyOf(p Vec2, precision int) Key {
	return Key{X: round(p.X, precision), Y: round(p.Y, precision)}
}

// Vec2 returns the quantized position.
func (k Key) Vec2() Vec2 {
	return Vec2{k.X, k.Y}
}

func round(v float64, precision int) float64 {
	r := mgl64.Round(v, precision)
	if r == 0 {
		// fold -0 into 0
		return 0
	}
	return r
}

// NearlyEqual reports whether a and b differ by at most tolerance on both axes.
func NearlyEqual(a, b Vec2, tolerance float64) bool {
	return mgl64.FloatEqualThreshold(a.X, b.X, tolerance) &&
		mgl64.FloatEqualThreshold(a.Y, b.Y, tolerance)
}
