package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := 5.0
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec2Cross(t *testing.T) {
	x := Vec2{1, 0}
	y := Vec2{0, 1}
	if got := x.Cross(y); got != 1 {
		t.Errorf("Vec2.Cross() = %v, want 1", got)
	}
	if got := y.Cross(x); got != -1 {
		t.Errorf("Vec2.Cross() = %v, want -1", got)
	}
}

func TestVec2Lift(t *testing.T) {
	got := Vec2{1, 2}.Lift(7)
	want := Vec3{1, 7, 2}
	if got != want {
		t.Errorf("Vec2.Lift() = %v, want %v", got, want)
	}
	if got.XZ() != (Vec2{1, 2}) {
		t.Errorf("Vec3.XZ() = %v, want {1 2}", got.XZ())
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2
		same bool
	}{
		{"identical", Vec2{1.5, 2.5}, Vec2{1.5, 2.5}, true},
		{"float noise", Vec2{0.1 + 0.2, 1}, Vec2{0.3, 1}, true},
		{"below precision", Vec2{5.0001, 5}, Vec2{5.0002, 5}, true},
		{"above precision", Vec2{5.001, 5}, Vec2{5.002, 5}, false},
		{"negative zero", Vec2{math.Copysign(0, -1), 0}, Vec2{0, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka := KeyOf(tt.a, DefaultKeyPrecision)
			kb := KeyOf(tt.b, DefaultKeyPrecision)
			if (ka == kb) != tt.same {
				t.Errorf("KeyOf(%v) == KeyOf(%v) is %v, expected %v", tt.a, tt.b, ka == kb, tt.same)
			}
		})
	}
}

func TestRectPerimeterOffset(t *testing.T) {
	r := NewRect(0, 0, 10, 20)

	tests := []struct {
		p    Vec2
		want float64
	}{
		{r.Corner(TopLeft), 0},
		{Vec2{4, 20}, 4},
		{r.Corner(TopRight), 10},
		{Vec2{10, 15}, 15},
		{r.Corner(BottomRight), 30},
		{Vec2{3, 0}, 37},
		{r.Corner(BottomLeft), 40},
		{Vec2{0, 5}, 45},
	}

	for _, tt := range tests {
		got, ok := r.PerimeterOffset(tt.p, 1e-9)
		if !ok {
			t.Errorf("PerimeterOffset(%v) reported point off border", tt.p)
			continue
		}
		if got != tt.want {
			t.Errorf("PerimeterOffset(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if _, ok := r.PerimeterOffset(Vec2{5, 5}, 1e-9); ok {
		t.Error("expected interior point to be off border")
	}
	for c := TopLeft; c <= BottomLeft; c++ {
		off, _ := r.PerimeterOffset(r.Corner(c), 1e-9)
		if off != r.CornerOffset(c) {
			t.Errorf("corner %d offset %v, CornerOffset %v", c, off, r.CornerOffset(c))
		}
	}
}

func TestRectExtend(t *testing.T) {
	r := EmptyRect()
	if !r.IsEmpty() {
		t.Error("expected EmptyRect to be empty")
	}
	r = r.Extend(Vec2{1, 5}).Extend(Vec2{-2, 3})
	if r.Min != (Vec2{-2, 3}) || r.Max != (Vec2{1, 5}) {
		t.Errorf("unexpected extent %v", r)
	}
	if !r.Contains(Vec2{0, 4}) {
		t.Error("expected rect to contain {0 4}")
	}
}
