package model

import (
	"math"
	"testing"
)

// ============================================================================
// Point Tests
// ============================================================================

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64
	}{
		{"same point", Point{0, 0}, Point{0, 0}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"vertical", Point{0, 0}, Point{0, 4}, 4},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p1.Distance(tt.p2)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Distance() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// ============================================================================
// BBox Tests
// ============================================================================

func TestNewBBox(t *testing.T) {
	bbox := NewBBox(10, 20, 100, 50)
	if bbox.X != 10 || bbox.Y != 20 || bbox.Width != 100 || bbox.Height != 50 {
		t.Errorf("NewBBox() = %+v, want {10, 20, 100, 50}", bbox)
	}
}

func TestNewBBoxFromPoints(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		want   BBox
	}{
		{"normal", Point{10, 20}, Point{50, 70}, BBox{10, 20, 40, 50}},
		{"reversed", Point{50, 70}, Point{10, 20}, BBox{10, 20, 40, 50}},
		{"same point", Point{10, 10}, Point{10, 10}, BBox{10, 10, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBBoxFromPoints(tt.p1, tt.p2)
			if got != tt.want {
				t.Errorf("NewBBoxFromPoints() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBBoxEdges(t *testing.T) {
	bbox := NewBBox(10, 20, 100, 50)

	if bbox.Left() != 10 {
		t.Errorf("Left() = %v, want 10", bbox.Left())
	}
	if bbox.Right() != 110 {
		t.Errorf("Right() = %v, want 110", bbox.Right())
	}
	if bbox.Bottom() != 20 {
		t.Errorf("Bottom() = %v, want 20", bbox.Bottom())
	}
	if bbox.Top() != 70 {
		t.Errorf("Top() = %v, want 70", bbox.Top())
	}
}

func TestBBoxCenter(t *testing.T) {
	bbox := NewBBox(0, 0, 100, 50)
	center := bbox.Center()

	if center.X != 50 || center.Y != 25 {
		t.Errorf("Center() = %+v, want {50, 25}", center)
	}
}

func TestBBoxContains(t *testing.T) {
	bbox := NewBBox(0, 0, 100, 100)

	tests := []struct {
		name     string
		point    Point
		expected bool
	}{
		{"inside", Point{50, 50}, true},
		{"on left edge", Point{0, 50}, true},
		{"on right edge", Point{100, 50}, true},
		{"outside left", Point{-1, 50}, false},
		{"outside right", Point{101, 50}, false},
		{"outside top", Point{50, 101}, false},
		{"outside bottom", Point{50, -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := bbox.Contains(tt.point)
			if result != tt.expected {
				t.Errorf("Contains(%+v) = %v, want %v", tt.point, result, tt.expected)
			}
		})
	}
}


func TestBBoxUnion(t *testing.T) {
	bbox1 := NewBBox(0, 0, 50, 50)
	bbox2 := NewBBox(25, 25, 75, 75)

	result := bbox1.Union(bbox2)

	if result.X != 0 || result.Y != 0 || result.Width != 100 || result.Height != 100 {
		t.Errorf("Union() = %+v, want {0, 0, 100, 100}", result)
	}
}


func TestBBoxIsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		bbox     BBox
		expected bool
	}{
		{"valid box", NewBBox(0, 0, 10, 10), false},
		{"zero width", NewBBox(0, 0, 0, 10), true},
		{"zero height", NewBBox(0, 0, 10, 0), true},
		{"negative width", NewBBox(0, 0, -10, 10), true},
		{"negative height", NewBBox(0, 0, 10, -10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.bbox.IsEmpty() != tt.expected {
				t.Errorf("IsEmpty() = %v, want %v", tt.bbox.IsEmpty(), tt.expected)
			}
		})
	}
}


func TestPointAdd(t *testing.T) {
	p := Point{X: 1, Y: 2}.Add(3, -4)
	if p.X != 4 || p.Y != -2 {
		t.Errorf("Add() = %+v, want {4, -2}", p)
	}
}

func TestBBoxUnionWithZero(t *testing.T) {
	b := NewBBox(5, 5, 10, 10)
	if got := (BBox{}).Union(b); got != b {
		t.Errorf("zero.Union(b) = %+v, want %+v", got, b)
	}
	if got := b.Union(BBox{}); got != b {
		t.Errorf("b.Union(zero) = %+v, want %+v", got, b)
	}
}

func TestBBoxTranslate(t *testing.T) {
	got := NewBBox(1, 2, 3, 4).Translate(10, -2)
	want := NewBBox(11, 0, 3, 4)
	if got != want {
		t.Errorf("Translate() = %+v, want %+v", got, want)
	}
}

// ============================================================================
// Justification Tests
// ============================================================================

func TestJustificationString(t *testing.T) {
	tests := []struct {
		j    Justification
		want string
	}{
		{JustifyStart, "start"},
		{JustifyCenter, "center"},
		{JustifyEnd, "end"},
	}
	for _, tt := range tests {
		if got := tt.j.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.j, got, tt.want)
		}
	}
}

func TestParseJustification(t *testing.T) {
	tests := []struct {
		in      string
		want    Justification
		wantErr bool
	}{
		{"", JustifyStart, false},
		{"start", JustifyStart, false},
		{"middle", JustifyCenter, false},
		{"center", JustifyCenter, false},
		{"end", JustifyEnd, false},
		{"right", JustifyEnd, false},
		{"justify", JustifyStart, true},
	}
	for _, tt := range tests {
		got, err := ParseJustification(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseJustification(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseJustification(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJustificationRowLeftAndReference(t *testing.T) {
	tests := []struct {
		j        Justification
		wantLeft float64
		wantRef  float64
	}{
		{JustifyStart, 100, 100},
		{JustifyCenter, 80, 120},
		{JustifyEnd, 60, 140},
	}
	for _, tt := range tests {
		if got := tt.j.RowLeft(100, 40); math.Abs(got-tt.wantLeft) > 1e-9 {
			t.Errorf("%v.RowLeft(100, 40) = %v, want %v", tt.j, got, tt.wantLeft)
		}
		if got := tt.j.Reference(100, 40); math.Abs(got-tt.wantRef) > 1e-9 {
			t.Errorf("%v.Reference(100, 40) = %v, want %v", tt.j, got, tt.wantRef)
		}
	}
}
