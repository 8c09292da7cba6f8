package math

import "math"

// Corner indexes the corners of a Rect in clockwise order, starting at the
// top-left corner. "Top" is the side with the largest Y.
type Corner int

// Rectangle corners, clockwise.
const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

// Rect is an axis-aligned rectangle on the horizontal plane.
type Rect struct {
	Min, Max Vec2
}

// NewRect returns the rectangle spanning [x0,x1] x [y0,y1].
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{
		Min: Vec2{math.Min(x0, x1), math.Min(y0, y1)},
		Max: Vec2{math.Max(x0, x1), math.Max(y0, y1)},
	}
}

// EmptyRect returns an inverted rectangle that any Extend call will replace.
func EmptyRect() Rect {
	return Rect{
		Min: Vec2{math.Inf(1), math.Inf(1)},
		Max: Vec2{math.Inf(-1), math.Inf(-1)},
	}
}

// Width returns the extent along X.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the extent along Y.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// IsEmpty reports whether r encloses no area.
func (r Rect) IsEmpty() bool {
	return !(r.Max.X > r.Min.X && r.Max.Y > r.Min.Y)
}

// Extend returns the smallest rectangle containing r and p.
func (r Rect) Extend(p Vec2) Rect {
	return Rect{
		Min: Vec2{math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)},
		Max: Vec2{math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)},
	}
}

// Contains reports whether p lies inside r or on its border.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Corner returns the position of corner c.
func (r Rect) Corner(c Corner) Vec2 {
	switch c {
	case TopLeft:
		return Vec2{r.Min.X, r.Max.Y}
	case TopRight:
		return r.Max
	case BottomRight:
		return Vec2{r.Max.X, r.Min.Y}
	default:
		return r.Min
	}
}

// Corners returns all four corners in clockwise order.
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{r.Corner(TopLeft), r.Corner(TopRight), r.Corner(BottomRight), r.Corner(BottomLeft)}
}

// OnBorder reports whether either coordinate of p equals a rectangle extreme
// within tolerance.
func (r Rect) OnBorder(p Vec2, tolerance float64) bool {
	return math.Abs(p.X-r.Min.X) <= tolerance || math.Abs(p.X-r.Max.X) <= tolerance ||
		math.Abs(p.Y-r.Min.Y) <= tolerance || math.Abs(p.Y-r.Max.Y) <= tolerance
}

// Perimeter returns the length of the border.
func (r Rect) Perimeter() float64 {
	return 2 * (r.Width() + r.Height())
}

// PerimeterOffset returns the clockwise distance along the border from the
// top-left corner to p. ok is false when p is not on the border.
func (r Rect) PerimeterOffset(p Vec2, tolerance float64) (offset float64, ok bool) {
	w, h := r.Width(), r.Height()
	switch {
	case math.Abs(p.Y-r.Max.Y) <= tolerance:
		return clamp(p.X-r.Min.X, 0, w), true
	case math.Abs(p.X-r.Max.X) <= tolerance:
		return w + clamp(r.Max.Y-p.Y, 0, h), true
	case math.Abs(p.Y-r.Min.Y) <= tolerance:
		return w + h + clamp(r.Max.X-p.X, 0, w), true
	case math.Abs(p.X-r.Min.X) <= tolerance:
		return 2*w + h + clamp(p.Y-r.Min.Y, 0, h), true
	}
	return 0, false
}

// CornerOffset returns the clockwise border distance of corner c from the top-left corner.
func (r Rect) CornerOffset(c Corner) float64 {
	w, h := r.Width(), r.Height()
	switch c {
	case TopRight:
		return w
	case BottomRight:
		return w + h
	case BottomLeft:
		return 2*w + h
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
