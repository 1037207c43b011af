// Package cad reads stage drawings from ASCII DXF files so they can be
// drawn underneath footprint maps.
//
// Only the ENTITIES section is read. ARC, CIRCLE, LINE and LWPOLYLINE
// entities are decoded; every other entity type is counted in
// Drawing.Unsupported and skipped.
package cad

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/beamer"
)

// Sentinel errors for cad package.
var (
	// ErrFormat is returned for content that is not valid ASCII DXF.
	ErrFormat = errors.New("cad: malformed DXF")

	// ErrUnsupported is returned for files without a .dxf extension.
	ErrUnsupported = errors.New("cad: unsupported file type")
)

// arcStep is the angular spacing, in degrees, of sampled arc outlines.
const arcStep = 15.0

// Entity is a decoded drawing primitive.
type Entity interface {
	// Type returns the DXF entity name.
	Type() string

	// Outline returns the primitive as a polyline in drawing units.
	Outline() beamer.PointSequence

	// Closed reports whether the outline encloses an area.
	Closed() bool
}

// Arc is a counter-clockwise circular arc. Angles are in degrees.
type Arc struct {
	Layer  string
	Center beamer.Point
	Radius float64
	Start  float64
	End    float64
}

// Type implements Entity.
func (Arc) Type() string { return "ARC" }

// Closed implements Entity.
func (Arc) Closed() bool { return false }

// Sweep returns the counter-clockwise angle from Start to End in (0, 360].
func (a Arc) Sweep() float64 {
	sweep := math.Mod(a.End-a.Start, 360)
	if sweep <= 0 {
		sweep += 360
	}
	return sweep
}

// Outline samples the arc from Start to End, both endpoints included.
func (a Arc) Outline() beamer.PointSequence {
	sweep := a.Sweep()
	n := max(2, int(math.Ceil(sweep/arcStep))) + 1
	pts := make(beamer.PointSequence, n)
	for i := range pts {
		t := beamer.Radians(a.Start + sweep*float64(i)/float64(n-1))
		pts[i] = beamer.Pt(a.Center.X+a.Radius*math.Cos(t), a.Center.Y+a.Radius*math.Sin(t))
	}
	return pts
}

// Circle is a full circle.
type Circle struct {
	Layer  string
	Center beamer.Point
	Radius float64
}

// Type implements Entity.
func (Circle) Type() string { return "CIRCLE" }

// Closed implements Entity.
func (Circle) Closed() bool { return true }

// Outline returns the circle sampled like a beamer.Circle.
func (c Circle) Outline() beamer.PointSequence {
	return beamer.Circle{Radius: c.Radius}.Translate(c.Center.X, c.Center.Y).Outline()
}

// Line is a straight segment.
type Line struct {
	Layer string
	Start beamer.Point
	End   beamer.Point
}

// Type implements Entity.
func (Line) Type() string { return "LINE" }

// Closed implements Entity.
func (Line) Closed() bool { return false }

// Outline returns the two end points.
func (l Line) Outline() beamer.PointSequence {
	return beamer.PointSequence{l.Start, l.End}
}

// Polyline is a lightweight polyline. Bulges are ignored.
type Polyline struct {
	Layer    string
	Vertices beamer.PointSequence
	IsClosed bool
}

// Type implements Entity.
func (Polyline) Type() string { return "LWPOLYLINE" }

// Closed implements Entity.
func (p Polyline) Closed() bool { return p.IsClosed }

// Outline returns the vertices, with the first vertex repeated at the end
// when the polyline is closed.
func (p Polyline) Outline() beamer.PointSequence {
	out := p.Vertices.Clone()
	if p.IsClosed && len(out) > 1 && !out.Closed() {
		out = append(out, out[0])
	}
	return out
}

// Drawing is the decoded content of a DXF file.
type Drawing struct {
	Entities []Entity

	// Unsupported counts skipped entities by type.
	Unsupported map[string]int
}

// Outlines returns the outline of every entity in file order.
func (d *Drawing) Outlines() []beamer.PointSequence {
	out := make([]beamer.PointSequence, len(d.Entities))
	for i, e := range d.Entities {
		out[i] = e.Outline()
	}
	return out
}

// Bounds returns the bounding box of all entity outlines.
func (d *Drawing) Bounds() beamer.Rect {
	var r beamer.Rect
	for _, e := range d.Entities {
		r = r.Union(e.Outline().Bounds())
	}
	return r
}

// ReadFile reads a DXF file from disk.
func ReadFile(path string) (*Drawing, error) {
	if !strings.EqualFold(filepath.Ext(path), ".dxf") {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(path))
	}
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("cad: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Parse(f)
}

// group is one DXF group code / value pair.
type group struct {
	code  int
	value string
	line  int
}

// Parse decodes ASCII DXF content.
func Parse(r io.Reader) (*Drawing, error) {
	groups, err := readGroups(r)
	if err != nil {
		return nil, err
	}

	d := &Drawing{Unsupported: make(map[string]int)}
	inEntities := false

loop:
	for i := 0; i < len(groups); i++ {
		g := groups[i]
		if g.code != 0 {
			continue
		}
		switch g.value {
		case "SECTION":
			inEntities = i+1 < len(groups) && groups[i+1].code == 2 && groups[i+1].value == "ENTITIES"
			continue
		case "ENDSEC":
			inEntities = false
			continue
		case "EOF":
			break loop
		}
		if !inEntities {
			continue
		}

		j := i + 1
		for j < len(groups) && groups[j].code != 0 {
			j++
		}
		e, err := decodeEntity(g, groups[i+1:j])
		if err != nil {
			return nil, err
		}
		if e == nil {
			d.Unsupported[g.value]++
		} else {
			d.Entities = append(d.Entities, e)
		}
		i = j - 1
	}

	if len(d.Unsupported) > 0 {
		types := make([]string, 0, len(d.Unsupported))
		for t := range d.Unsupported {
			types = append(types, t)
		}
		slices.Sort(types)
		for _, t := range types {
			beamer.Logger().Warn("cad: skipping unsupported entities", "type", t, "count", d.Unsupported[t])
		}
	}
	return d, nil
}

func readGroups(r io.Reader) ([]group, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var groups []group
	line := 0
	for sc.Scan() {
		line++
		codeText := strings.TrimSpace(sc.Text())
		if codeText == "" {
			continue
		}
		code, err := strconv.Atoi(codeText)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: group code %q", ErrFormat, line, codeText)
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("cad: read: %w", err)
			}
			return nil, fmt.Errorf("%w: line %d: group code without value", ErrFormat, line)
		}
		line++
		groups = append(groups, group{code: code, value: strings.TrimSpace(sc.Text()), line: line - 1})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cad: read: %w", err)
	}
	return groups, nil
}

// entityReader extracts numeric group values and keeps the first error.
type entityReader struct {
	head group
	body []group
	err  error
}

func (r *entityReader) fail(g group, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s at line %d: %v", ErrFormat, r.head.value, g.line, err)
	}
}

func (r *entityReader) parse(g group) float64 {
	v, err := strconv.ParseFloat(g.value, 64)
	if err != nil {
		r.fail(g, fmt.Errorf("group %d: %w", g.code, err))
	}
	return v
}

func (r *entityReader) float(code int) float64 {
	for _, g := range r.body {
		if g.code == code {
			return r.parse(g)
		}
	}
	return 0
}

func (r *entityReader) layer() string {
	for _, g := range r.body {
		if g.code == 8 {
			return g.value
		}
	}
	return ""
}

func (r *entityReader) radius() float64 {
	v := r.float(40)
	if r.err == nil && !(v > 0) {
		r.fail(r.head, fmt.Errorf("radius %g must be positive", v))
	}
	return v
}

// decodeEntity returns nil for unsupported entity types.
func decodeEntity(head group, body []group) (Entity, error) {
	r := &entityReader{head: head, body: body}
	var e Entity
	switch head.value {
	case "ARC":
		e = Arc{
			Layer:  r.layer(),
			Center: beamer.Pt(r.float(10), r.float(20)),
			Radius: r.radius(),
			Start:  r.float(50),
			End:    r.float(51),
		}
	case "CIRCLE":
		e = Circle{
			Layer:  r.layer(),
			Center: beamer.Pt(r.float(10), r.float(20)),
			Radius: r.radius(),
		}
	case "LINE":
		e = Line{
			Layer: r.layer(),
			Start: beamer.Pt(r.float(10), r.float(20)),
			End:   beamer.Pt(r.float(11), r.float(21)),
		}
	case "LWPOLYLINE":
		p := Polyline{Layer: r.layer()}
		for _, g := range body {
			switch g.code {
			case 10:
				p.Vertices = append(p.Vertices, beamer.Pt(r.parse(g), 0))
			case 20:
				if len(p.Vertices) == 0 {
					r.fail(g, errors.New("y coordinate before x"))
					continue
				}
				p.Vertices[len(p.Vertices)-1].Y = r.parse(g)
			case 70:
				flags, err := strconv.Atoi(g.value)
				if err != nil {
					r.fail(g, fmt.Errorf("group 70: %w", err))
				}
				p.IsClosed = flags&1 != 0
			}
		}
		e = p
	default:
		return nil, nil
	}
	if r.err != nil {
		return nil, r.err
	}
	return e, nil
}
