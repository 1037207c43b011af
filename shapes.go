package beamer

import "math"

// Circle is a disk of the given radius centered on Center.
type Circle struct {
	Radius float64
	Center Point
	Angle  float64
}

// NewCircle creates a circle centered at the origin.
func NewCircle(radius float64) (Circle, error) {
	if err := checkLength("radius", radius); err != nil {
		return Circle{}, err
	}
	return Circle{Radius: radius}, nil
}

// Area returns πr².
func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

// Outline samples the circle boundary.
func (c Circle) Outline(opts ...OutlineOption) PointSequence {
	o := resolveOutlineOptions(opts)
	return c.Placement().place(loop(o.segments, c.Radius, c.Radius))
}

// Patch describes the circle.
func (c Circle) Patch() Patch {
	return Patch{Kind: PatchCircle, Anchor: c.Center, Radius: c.Radius, Angle: c.Angle}
}

// Placement returns the accumulated center and rotation.
func (c Circle) Placement() Placement {
	return Placement{Center: c.Center, Angle: c.Angle}
}

// Bounds returns the exact bounding box.
func (c Circle) Bounds() Rect {
	r := Point{X: c.Radius, Y: c.Radius}
	return Rect{Min: c.Center.Sub(r), Max: c.Center.Add(r)}
}

// Rotate returns the circle rotated deg degrees about its own center.
func (c Circle) Rotate(deg float64) Circle {
	c.Angle += deg
	return c
}

// Translate returns the circle moved by (dx, dy).
func (c Circle) Translate(dx, dy float64) Circle {
	c.Center = c.Center.Add(Point{X: dx, Y: dy})
	return c
}

func (Circle) isShape() {}

// Ellipse is an ellipse with full axis lengths Width (local x) and
// Height (local y).
type Ellipse struct {
	Width, Height float64
	Center        Point
	Angle         float64
}

// NewEllipse creates an axis-aligned ellipse centered at the origin.
// width and height are full axis lengths, not semi-axes.
func NewEllipse(width, height float64) (Ellipse, error) {
	if err := checkLength("width", width); err != nil {
		return Ellipse{}, err
	}
	if err := checkLength("height", height); err != nil {
		return Ellipse{}, err
	}
	return Ellipse{Width: width, Height: height}, nil
}

// Area returns π·w·h/4.
func (e Ellipse) Area() float64 {
	return math.Pi * e.Width * e.Height / 4
}

// Outline samples the ellipse boundary.
func (e Ellipse) Outline(opts ...OutlineOption) PointSequence {
	o := resolveOutlineOptions(opts)
	return e.Placement().place(loop(o.segments, e.Width/2, e.Height/2))
}

// Patch describes the ellipse.
func (e Ellipse) Patch() Patch {
	return Patch{Kind: PatchEllipse, Anchor: e.Center, Width: e.Width, Height: e.Height, Angle: e.Angle}
}

// Placement returns the accumulated center and rotation.
func (e Ellipse) Placement() Placement {
	return Placement{Center: e.Center, Angle: e.Angle}
}

// Bounds returns the exact bounding box of the rotated ellipse.
func (e Ellipse) Bounds() Rect {
	a, b := e.Width/2, e.Height/2
	sin, cos := math.Sincos(Radians(e.Angle))
	half := Point{
		X: math.Hypot(a*cos, b*sin),
		Y: math.Hypot(a*sin, b*cos),
	}
	return Rect{Min: e.Center.Sub(half), Max: e.Center.Add(half)}
}

// Rotate returns the ellipse rotated deg degrees about its own center.
func (e Ellipse) Rotate(deg float64) Ellipse {
	e.Angle += deg
	return e
}

// Translate returns the ellipse moved by (dx, dy).
func (e Ellipse) Translate(dx, dy float64) Ellipse {
	e.Center = e.Center.Add(Point{X: dx, Y: dy})
	return e
}

func (Ellipse) isShape() {}

// Rectangle is a width x height rectangle. When Centered is false the
// lower-left corner sits at the local origin; when true the geometric
// center does.
type Rectangle struct {
	Width, Height float64
	Centered      bool
	Center        Point
	Angle         float64
}

// NewRectangle creates a rectangle anchored at the origin.
func NewRectangle(width, height float64, centered bool) (Rectangle, error) {
	if err := checkLength("width", width); err != nil {
		return Rectangle{}, err
	}
	if err := checkLength("height", height); err != nil {
		return Rectangle{}, err
	}
	return Rectangle{Width: width, Height: height, Centered: centered}, nil
}

// Area returns w·h.
func (r Rectangle) Area() float64 {
	return r.Width * r.Height
}

// corners returns the closed corner loop in the local frame.
func (r Rectangle) corners() PointSequence {
	pts := PointSequence{
		{X: 0, Y: 0},
		{X: r.Width, Y: 0},
		{X: r.Width, Y: r.Height},
		{X: 0, Y: r.Height},
		{X: 0, Y: 0},
	}
	if r.Centered {
		pts = TranslatePoints(pts, Point{X: -r.Width / 2, Y: -r.Height / 2})
	}
	return pts
}

// Outline returns the five-point closed corner loop. Outline options do
// not apply to rectangles.
func (r Rectangle) Outline(...OutlineOption) PointSequence {
	return r.Placement().place(r.corners())
}

// Patch describes the rectangle. Anchor is the world position of the
// corner that starts at (0, 0) in an uncentered rectangle.
func (r Rectangle) Patch() Patch {
	return Patch{
		Kind:   PatchRectangle,
		Anchor: r.Outline()[0],
		Width:  r.Width,
		Height: r.Height,
		Angle:  r.Angle,
	}
}

// Placement returns the accumulated center and rotation.
func (r Rectangle) Placement() Placement {
	return Placement{Center: r.Center, Angle: r.Angle}
}

// Bounds returns the bounding box of the rotated corners.
func (r Rectangle) Bounds() Rect {
	return r.Outline().Bounds()
}

// Rotate returns the rectangle rotated deg degrees about its local origin.
func (r Rectangle) Rotate(deg float64) Rectangle {
	r.Angle += deg
	return r
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rectangle) Translate(dx, dy float64) Rectangle {
	r.Center = r.Center.Add(Point{X: dx, Y: dy})
	return r
}

func (Rectangle) isShape() {}

// Sector is a circular wedge with its vertex at Center. The arc runs
// counter-clockwise from Angle to Angle+Sweep degrees.
type Sector struct {
	Radius float64
	Sweep  float64
	Center Point
	Angle  float64
}

// NewSector creates a sector with its vertex at the origin starting at 0°.
// sweep must lie in [0, 360].
func NewSector(radius, sweep float64) (Sector, error) {
	if err := checkLength("radius", radius); err != nil {
		return Sector{}, err
	}
	if !isFinite(sweep) || sweep < 0 || sweep > 360 {
		return Sector{}, domainError("sweep angle", sweep, "must lie in [0, 360] degrees")
	}
	return Sector{Radius: radius, Sweep: sweep}, nil
}

// Area returns (sweep/360)·πr².
func (s Sector) Area() float64 {
	return s.Sweep / 360 * math.Pi * s.Radius * s.Radius
}

// Outline returns the vertex, the sampled arc, and the vertex again.
func (s Sector) Outline(opts ...OutlineOption) PointSequence {
	o := resolveOutlineOptions(opts)
	n := o.arcSegments
	pts := make(PointSequence, 0, n+2)
	pts = append(pts, s.Center)
	start := Radians(s.Angle)
	step := Radians(s.Sweep) / float64(n-1)
	for i := range n {
		sin, cos := math.Sincos(start + step*float64(i))
		pts = append(pts, Point{
			X: s.Center.X + s.Radius*cos,
			Y: s.Center.Y + s.Radius*sin,
		})
	}
	return append(pts, s.Center)
}

// Patch describes the sector as a wedge.
func (s Sector) Patch() Patch {
	return Patch{
		Kind:   PatchWedge,
		Anchor: s.Center,
		Radius: s.Radius,
		Angle:  s.Angle,
		Theta1: s.Angle,
		Theta2: s.Angle + s.Sweep,
	}
}

// Placement returns the accumulated center and rotation.
func (s Sector) Placement() Placement {
	return Placement{Center: s.Center, Angle: s.Angle}
}

// Bounds returns the bounding box of the sampled outline.
func (s Sector) Bounds() Rect {
	return s.Outline(WithSegments(361)).Bounds()
}

// Rotate returns the sector with its arc turned deg degrees about the vertex.
func (s Sector) Rotate(deg float64) Sector {
	s.Angle += deg
	return s
}

// Translate returns the sector moved by (dx, dy).
func (s Sector) Translate(dx, dy float64) Sector {
	s.Center = s.Center.Add(Point{X: dx, Y: dy})
	return s
}

func (Sector) isShape() {}
