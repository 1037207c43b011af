package beamer

import "math"

// Point represents a 2D point or vector in sample or instrument coordinates.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
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

// Rotate returns the point rotated by deg degrees counter-clockwise
// around the origin.
func (p Point) Rotate(deg float64) Point {
	sin, cos := math.Sincos(Radians(deg))
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// PointSequence is an ordered run of points. Order is meaningful: consecutive
// points are joined when the sequence is drawn as a polyline or outline.
type PointSequence []Point

// Clone returns an independent copy of the sequence.
func (s PointSequence) Clone() PointSequence {
	if s == nil {
		return nil
	}
	out := make(PointSequence, len(s))
	copy(out, s)
	return out
}

// XY splits the sequence into parallel x and y slices.
func (s PointSequence) XY() (xs, ys []float64) {
	xs = make([]float64, len(s))
	ys = make([]float64, len(s))
	for i, p := range s {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

// Bounds returns the axis-aligned bounding box of the sequence.
// An empty sequence yields the zero Rect.
func (s PointSequence) Bounds() Rect {
	if len(s) == 0 {
		return Rect{}
	}
	r := Rect{Min: s[0], Max: s[0]}
	for _, p := range s[1:] {
		r = r.Extend(p)
	}
	return r
}

// Closed reports whether the last point repeats the first.
func (s PointSequence) Closed() bool {
	return len(s) > 1 && s[0] == s[len(s)-1]
}

// Rect is an axis-aligned rectangle given by its minimum and maximum corners.
type Rect struct {
	Min, Max Point
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// IsEmpty reports whether r has zero area and sits at the origin.
func (r Rect) IsEmpty() bool {
	return r == Rect{}
}

// Extend grows r to include p.
func (r Rect) Extend(p Point) Rect {
	r.Min.X = math.Min(r.Min.X, p.X)
	r.Min.Y = math.Min(r.Min.Y, p.Y)
	r.Max.X = math.Max(r.Max.X, p.X)
	r.Max.Y = math.Max(r.Max.Y, p.Y)
	return r
}

// Union returns the smallest rectangle containing both r and o.
// The empty Rect acts as the identity.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return r.Extend(o.Min).Extend(o.Max)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
