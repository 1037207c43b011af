package beamer

import (
	"fmt"
	"math"
)

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Rotate creates a counter-clockwise rotation matrix about the origin.
// The angle is in degrees.
func Rotate(deg float64) Matrix {
	sin, cos := math.Sincos(Radians(deg))
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// RigidTransform returns the matrix that first rotates by deg degrees about
// the origin and then translates by offset.
func RigidTransform(deg float64, offset Point) Matrix {
	return Translate(offset.X, offset.Y).Multiply(Rotate(deg))
}

// Multiply multiplies two matrices (m * other).
// The result applies other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformPoints applies the transformation to every point and returns a
// new sequence. The input is not modified.
func (m Matrix) TransformPoints(ps PointSequence) PointSequence {
	if ps == nil {
		return nil
	}
	out := make(PointSequence, len(ps))
	for i, p := range ps {
		out[i] = m.TransformPoint(p)
	}
	return out
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// RotatePoints rotates every point deg degrees about the origin.
func RotatePoints(ps PointSequence, deg float64) PointSequence {
	return Rotate(deg).TransformPoints(ps)
}

// TranslatePoints adds offset to every point.
func TranslatePoints(ps PointSequence, offset Point) PointSequence {
	return Translate(offset.X, offset.Y).TransformPoints(ps)
}

// RotateCoords rotates a 2xN coordinate batch deg degrees about the origin.
// Row 0 holds x values and row 1 holds y values. The batch must have exactly
// two rows of equal length; otherwise ErrInvalidDimension is returned.
func RotateCoords(xy [][]float64, deg float64) ([][]float64, error) {
	ps, err := coordsToPoints(xy)
	if err != nil {
		return nil, err
	}
	return pointsToCoords(RotatePoints(ps, deg)), nil
}

// TranslateCoords adds offset to every column of a 2xN coordinate batch.
func TranslateCoords(xy [][]float64, offset Point) ([][]float64, error) {
	ps, err := coordsToPoints(xy)
	if err != nil {
		return nil, err
	}
	return pointsToCoords(TranslatePoints(ps, offset)), nil
}

func coordsToPoints(xy [][]float64) (PointSequence, error) {
	if len(xy) != 2 {
		return nil, fmt.Errorf("%w: want 2 rows, got %d", ErrInvalidDimension, len(xy))
	}
	if len(xy[0]) != len(xy[1]) {
		return nil, fmt.Errorf("%w: x row has %d values, y row has %d",
			ErrInvalidDimension, len(xy[0]), len(xy[1]))
	}
	ps := make(PointSequence, len(xy[0]))
	for i := range ps {
		ps[i] = Point{X: xy[0][i], Y: xy[1][i]}
	}
	return ps, nil
}

func pointsToCoords(ps PointSequence) [][]float64 {
	xs, ys := ps.XY()
	return [][]float64{xs, ys}
}
