package geom

import "testing"

func TestRectContains(t *testing.T) {
	r := R(10, 10, 20, 10)

	cases := []struct {
		x, y     float64
		expected bool
	}{
		{10, 10, true},   // Top-left corner
		{29, 19, true},   // Inside bottom-right
		{15, 15, true},   // Center
		{9.9, 10, false}, // Just left
		{30, 10, false},  // Right edge is exclusive
		{10, 20, false},  // Bottom edge is exclusive
	}

	for _, tc := range cases {
		got := r.Contains(Point{X: tc.x, Y: tc.y})
		if got != tc.expected {
			t.Errorf("%v.Contains(%g, %g) = %v, want %v", r, tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	a := R(0, 0, 10, 10)
	if !a.Intersects(R(5, 5, 10, 10)) {
		t.Error("overlapping rects should intersect")
	}
	if a.Intersects(R(0, 10, 10, 10)) {
		t.Error("rects sharing an edge should not intersect")
	}
}

func TestRectScaled(t *testing.T) {
	r := R(0, 0, 100, 50).Scaled(0.5)
	want := R(25, 12.5, 50, 25)
	if r != want {
		t.Errorf("Scaled(0.5) = %v, want %v", r, want)
	}
}

func TestRectInsetNeverNegative(t *testing.T) {
	r := R(0, 0, 10, 10).Inset(8, 8)
	if r.Size.W != 0 || r.Size.H != 0 {
		t.Errorf("Inset past zero = %v, want zero size", r)
	}
}

func TestSnap(t *testing.T) {
	tests := []struct {
		name  string
		in    Rect
		scale float64
		want  Rect
	}{
		{"integral untouched", R(16, 32, 268, 56), 1, R(16, 32, 268, 56)},
		{"origin floors size ceils", R(16.4, 32.6, 267.2, 55.1), 1, R(16, 32, 268, 56)},
		{"retina half points", R(16.3, 32.6, 267.2, 55.1), 2, R(16, 32.5, 267.5, 55.5)},
		{"zero scale treated as one", R(1.5, 1.5, 1.5, 1.5), 0, R(1, 1, 2, 2)},
		{"float noise absorbed", R(0, 0, 32.0000000000001, 0), 1, R(0, 0, 32, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Snap(tt.in, tt.scale); got != tt.want {
				t.Errorf("Snap(%v, %g) = %v, want %v", tt.in, tt.scale, got, tt.want)
			}
		})
	}
}

func TestLerpRect(t *testing.T) {
	got := LerpRect(R(0, 0, 0, 0), R(10, 20, 30, 40), 0.5)
	want := R(5, 10, 15, 20)
	if got != want {
		t.Errorf("LerpRect half = %v, want %v", got, want)
	}
}
