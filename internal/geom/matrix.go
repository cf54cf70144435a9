// Package geom implements 2-D affine matrix and rect/point primitives.
//
// A transform is the six numbers [a,b,c,d,tx,ty] of a 2x2 linear map plus
// translation, the same layout used throughout the corpus's rendering code:
//
//	| a c tx |
//	| b d ty |
//	| 0 0  1 |
package geom

import "math"

// Matrix is an affine transform [a,b,c,d,tx,ty]. Identity is [1,0,0,1,0,0].
type Matrix [6]float64

// Identity is the neutral affine transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Point is a 2-D coordinate.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in some coordinate space.
type Rect struct {
	X, Y, Width, Height float64
}

// Multiply composes parent and child so that Multiply(parent, child) applied
// to a point equals applying child then parent: result = parent · child.
func Multiply(parent, child Matrix) Matrix {
	return Matrix{
		parent[0]*child[0] + parent[2]*child[1],
		parent[1]*child[0] + parent[3]*child[1],
		parent[0]*child[2] + parent[2]*child[3],
		parent[1]*child[2] + parent[3]*child[3],
		parent[0]*child[4] + parent[2]*child[5] + parent[4],
		parent[1]*child[4] + parent[3]*child[5] + parent[5],
	}
}

// Invert returns the inverse of m, or Identity if m is singular.
func Invert(m Matrix) Matrix {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-12 {
		return Identity
	}
	invDet := 1 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	tx := -(a*m[4] + c*m[5])
	ty := -(b*m[4] + d*m[5])
	return Matrix{a, b, c, d, tx, ty}
}

// TransformPoint applies m to (x, y).
func TransformPoint(m Matrix, x, y float64) Point {
	return Point{
		X: m[0]*x + m[2]*y + m[4],
		Y: m[1]*x + m[3]*y + m[5],
	}
}

// Decomposed holds the decomposition of an affine matrix into scale,
// rotation, and translation. Shear is not modelled.
type Decomposed struct {
	ScaleX, ScaleY float64
	RotationRad    float64
	TX, TY         float64
}

// Decompose extracts scale/rotation/translation from m. A sheared matrix is
// approximated via the column-vector norms and the first column's angle;
// shear itself is treated as absent, per the documented simplification.
func Decompose(m Matrix) Decomposed {
	return Decomposed{
		ScaleX:      math.Hypot(m[0], m[1]),
		ScaleY:      math.Hypot(m[2], m[3]),
		RotationRad: math.Atan2(m[1], m[0]),
		TX:          m[4],
		TY:          m[5],
	}
}

// Translation returns a pure-translation matrix.
func Translation(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Corners returns the four corners of the w x h rectangle at the local
// origin, transformed by m: top-left, top-right, bottom-right, bottom-left.
func Corners(m Matrix, w, h float64) [4]Point {
	return [4]Point{
		TransformPoint(m, 0, 0),
		TransformPoint(m, w, 0),
		TransformPoint(m, w, h),
		TransformPoint(m, 0, h),
	}
}

// BoundsFromCorners returns the axis-aligned bounding box of the given
// corners.
func BoundsFromCorners(corners [4]Point) Rect {
	minX, maxX := corners[0].X, corners[0].X
	minY, maxY := corners[0].Y, corners[0].Y
	for _, c := range corners[1:] {
		minX = math.Min(minX, c.X)
		maxX = math.Max(maxX, c.X)
		minY = math.Min(minY, c.Y)
		maxY = math.Max(maxY, c.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// WorldBounds computes the AABB of the w x h rectangle transformed by m.
func WorldBounds(m Matrix, w, h float64) Rect {
	return BoundsFromCorners(Corners(m, w, h))
}

// Contains reports whether r contains point p.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width && r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height && r.Y+r.Height >= other.Y
}

// ContainsRect reports whether r fully contains other.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width && other.Y+other.Height <= r.Y+r.Height
}

// Round rounds x, y, width, height to the nearest integer.
func (r Rect) Round() Rect {
	return Rect{
		X:      math.Round(r.X),
		Y:      math.Round(r.Y),
		Width:  math.Round(r.Width),
		Height: math.Round(r.Height),
	}
}
