package magnify

import "math"

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Size is a width and height pair.
type Size struct {
	W, H float64
}

// Sz is a convenience function to create a Size.
func Sz(w, h float64) Size {
	return Size{W: w, H: h}
}

// Mul returns the size scaled by s.
func (s Size) Mul(k float64) Size {
	return Size{W: s.W * k, H: s.H * k}
}

// Pixels returns the size rounded to whole pixels.
func (s Size) Pixels() (w, h int) {
	return int(math.Round(s.W)), int(math.Round(s.H))
}

// Inv returns the reciprocal size (1/W, 1/H). Zero components stay zero.
func (s Size) Inv() Size {
	var r Size
	if s.W != 0 {
		r.W = 1 / s.W
	}
	if s.H != 0 {
		r.H = 1 / s.H
	}
	return r
}
