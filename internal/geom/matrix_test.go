package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMultiply(t *testing.T) {
	tests := []struct {
		name   string
		parent Matrix
		child  Matrix
		want   Matrix
	}{
		{
			name:   "identity_times_identity",
			parent: Identity,
			child:  Identity,
			want:   Identity,
		},
		{
			name:   "translation_composes",
			parent: Translation(10, 20),
			child:  Translation(5, 5),
			want:   Matrix{1, 0, 0, 1, 15, 25},
		},
		{
			name:   "identity_is_neutral_on_right",
			parent: Matrix{2, 0, 0, 2, 1, 1},
			child:  Identity,
			want:   Matrix{2, 0, 0, 2, 1, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Multiply(tt.parent, tt.child)
			for i := range got {
				if !almostEqual(got[i], tt.want[i]) {
					t.Fatalf("Multiply()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestInvert(t *testing.T) {
	m := Matrix{2, 0, 0, 2, 10, 20}
	inv := Invert(m)
	roundTrip := Multiply(m, inv)
	for i := range roundTrip {
		if !almostEqual(roundTrip[i], Identity[i]) {
			t.Fatalf("Invert() round trip[%d] = %v, want %v", i, roundTrip[i], Identity[i])
		}
	}
}

func TestInvert_Singular(t *testing.T) {
	singular := Matrix{0, 0, 0, 0, 5, 5}
	got := Invert(singular)
	if got != Identity {
		t.Fatalf("Invert(singular) = %v, want Identity", got)
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translation(10, 20)
	p := TransformPoint(m, 1, 1)
	if !almostEqual(p.X, 11) || !almostEqual(p.Y, 21) {
		t.Fatalf("TransformPoint() = %v, want {11 21}", p)
	}
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want Decomposed
	}{
		{
			name: "identity",
			m:    Identity,
			want: Decomposed{ScaleX: 1, ScaleY: 1, RotationRad: 0, TX: 0, TY: 0},
		},
		{
			name: "scale_and_translate",
			m:    Matrix{2, 0, 0, 3, 5, 7},
			want: Decomposed{ScaleX: 2, ScaleY: 3, RotationRad: 0, TX: 5, TY: 7},
		},
		{
			name: "rotation_90deg",
			m:    Matrix{0, 1, -1, 0, 0, 0},
			want: Decomposed{ScaleX: 1, ScaleY: 1, RotationRad: math.Pi / 2, TX: 0, TY: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decompose(tt.m)
			if !almostEqual(got.ScaleX, tt.want.ScaleX) ||
				!almostEqual(got.ScaleY, tt.want.ScaleY) ||
				!almostEqual(got.RotationRad, tt.want.RotationRad) ||
				!almostEqual(got.TX, tt.want.TX) ||
				!almostEqual(got.TY, tt.want.TY) {
				t.Fatalf("Decompose() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWorldBounds(t *testing.T) {
	bounds := WorldBounds(Translation(10, 10), 50, 30)
	want := Rect{X: 10, Y: 10, Width: 50, Height: 30}
	if bounds != want {
		t.Fatalf("WorldBounds() = %+v, want %+v", bounds, want)
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{50, 50}, true},
		{"on_edge", Point{100, 100}, true},
		{"outside", Point{150, 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Fatalf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRect_Intersects(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", Rect{50, 50, 100, 100}, true},
		{"disjoint", Rect{200, 200, 10, 10}, false},
		{"touching_edge", Rect{100, 0, 10, 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Intersects(tt.other); got != tt.want {
				t.Fatalf("Intersects(%v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestRect_Round(t *testing.T) {
	r := Rect{X: 1.4, Y: 1.6, Width: 10.5, Height: 10.4}
	got := r.Round()
	want := Rect{X: 1, Y: 2, Width: 11, Height: 10}
	if got != want {
		t.Fatalf("Round() = %+v, want %+v", got, want)
	}
}
