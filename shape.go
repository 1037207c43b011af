package beamer

import "math"

// Shape is a planar primitive with a closed-form area and a sampled outline.
//
// The set of shapes is closed: Circle, Ellipse, Rectangle and Sector.
// Shapes are immutable values; Rotate and Translate on the concrete types
// return a new value with the accumulated placement.
//
// Outlines are generated in the shape's local frame, rotated by the
// accumulated angle about the local origin, and only then translated to the
// accumulated center. Rotating a shape therefore never moves its center.
type Shape interface {
	// Area returns the exact area of the shape.
	Area() float64

	// Outline returns a closed polyline approximating the boundary in
	// world coordinates.
	Outline(opts ...OutlineOption) PointSequence

	// Patch describes the shape as a drawing primitive.
	Patch() Patch

	// Placement returns the accumulated center and rotation.
	Placement() Placement

	// Bounds returns the axis-aligned bounding box in world coordinates.
	Bounds() Rect

	isShape()
}

// Placement is the accumulated rigid transform of a shape.
// Angle is in degrees and is not normalized.
type Placement struct {
	Center Point
	Angle  float64
}

// Matrix returns the transform that maps local shape coordinates to world
// coordinates: rotate by Angle about the origin, then translate to Center.
func (p Placement) Matrix() Matrix {
	return RigidTransform(p.Angle, p.Center)
}

func (p Placement) place(local PointSequence) PointSequence {
	return p.Matrix().TransformPoints(local)
}

// PatchKind identifies the drawing primitive described by a Patch.
type PatchKind int

// Patch kinds.
const (
	PatchCircle PatchKind = iota
	PatchEllipse
	PatchRectangle
	PatchWedge
)

// String returns the primitive name.
func (k PatchKind) String() string {
	switch k {
	case PatchCircle:
		return "circle"
	case PatchEllipse:
		return "ellipse"
	case PatchRectangle:
		return "rectangle"
	case PatchWedge:
		return "wedge"
	default:
		return "unknown"
	}
}

// Patch is a backend-neutral description of a shape for renderers that draw
// primitives natively instead of polylines.
//
// Anchor is the circle/ellipse center, the wedge vertex, or the rectangle
// corner that was at the local origin before rotation. Angle is the rotation
// in degrees. Theta1 and Theta2 bound the wedge arc in degrees.
type Patch struct {
	Kind          PatchKind
	Anchor        Point
	Width, Height float64
	Radius        float64
	Angle         float64
	Theta1        float64
	Theta2        float64
}

// Transform rotates s by deg degrees and then translates it by (dx, dy),
// returning a shape of the same concrete type.
func Transform(s Shape, deg, dx, dy float64) Shape {
	switch v := s.(type) {
	case Circle:
		return v.Rotate(deg).Translate(dx, dy)
	case Ellipse:
		return v.Rotate(deg).Translate(dx, dy)
	case Rectangle:
		return v.Rotate(deg).Translate(dx, dy)
	case Sector:
		return v.Rotate(deg).Translate(dx, dy)
	default:
		return s
	}
}

// loop samples n points evenly over a full turn with the endpoint repeated,
// scaling the unit circle by (rx, ry).
func loop(n int, rx, ry float64) PointSequence {
	pts := make(PointSequence, n)
	step := 2 * math.Pi / float64(n-1)
	for i := range pts {
		sin, cos := math.Sincos(step * float64(i))
		pts[i] = Point{X: rx * cos, Y: ry * sin}
	}
	pts[n-1] = pts[0]
	return pts
}

func checkLength(field string, v float64) error {
	if !isFinite(v) || v < 0 {
		return domainError(field, v, "must be a finite non-negative number")
	}
	return nil
}
