package cad

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/beamer"
)

// dxf joins group code / value pairs into DXF text.
func dxf(pairs ...string) string {
	return strings.Join(pairs, "\n") + "\n"
}

var sampleDXF = dxf(
	"0", "SECTION",
	"2", "HEADER",
	"9", "$EXTMIN",
	"10", "-99",
	"20", "-99",
	"0", "ENDSEC",
	"0", "SECTION",
	"2", "ENTITIES",
	"0", "LINE",
	"8", "stage",
	"10", "0",
	"20", "0",
	"11", "10",
	"21", "0",
	"0", "CIRCLE",
	"8", "stage",
	"10", "5",
	"20", "5",
	"40", "2",
	"0", "ARC",
	"10", "0",
	"20", "0",
	"40", "1",
	"50", "0",
	"51", "90",
	"0", "TEXT",
	"10", "1",
	"20", "1",
	"1", "label",
	"0", "LWPOLYLINE",
	"90", "3",
	"70", "1",
	"10", "0",
	"20", "0",
	"10", "1",
	"20", "0",
	"10", "1",
	"20", "1",
	"0", "TEXT",
	"1", "other",
	"0", "ENDSEC",
	"0", "EOF",
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestParse(t *testing.T) {
	d, err := Parse(strings.NewReader(sampleDXF))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantTypes := []string{"LINE", "CIRCLE", "ARC", "LWPOLYLINE"}
	if len(d.Entities) != len(wantTypes) {
		t.Fatalf("len(Entities) = %d, want %d", len(d.Entities), len(wantTypes))
	}
	for i, want := range wantTypes {
		if got := d.Entities[i].Type(); got != want {
			t.Errorf("Entities[%d].Type() = %q, want %q", i, got, want)
		}
	}
	if d.Unsupported["TEXT"] != 2 {
		t.Errorf("Unsupported[TEXT] = %d, want 2", d.Unsupported["TEXT"])
	}

	line := d.Entities[0].(Line)
	if line.Layer != "stage" || line.End != beamer.Pt(10, 0) {
		t.Errorf("line = %+v", line)
	}
	circle := d.Entities[1].(Circle)
	if circle.Center != beamer.Pt(5, 5) || circle.Radius != 2 {
		t.Errorf("circle = %+v", circle)
	}
	poly := d.Entities[3].(Polyline)
	if !poly.IsClosed || len(poly.Vertices) != 3 {
		t.Errorf("polyline = %+v", poly)
	}
}

func TestEntityOutlines(t *testing.T) {
	t.Run("arc", func(t *testing.T) {
		arc := Arc{Radius: 1, Start: 0, End: 90}
		pts := arc.Outline()
		if len(pts) != 7 {
			t.Fatalf("len = %d, want 7", len(pts))
		}
		first, last := pts[0], pts[len(pts)-1]
		if !approx(first.X, 1) || !approx(first.Y, 0) || !approx(last.X, 0) || !approx(last.Y, 1) {
			t.Errorf("endpoints = %v, %v", first, last)
		}
		for i, p := range pts {
			if !approx(p.Length(), 1) {
				t.Errorf("point %d off the arc: %v", i, p)
			}
		}
		if arc.Closed() {
			t.Error("arc should be open")
		}
	})

	t.Run("arc through zero", func(t *testing.T) {
		arc := Arc{Radius: 1, Start: 270, End: 90}
		if arc.Sweep() != 180 {
			t.Errorf("Sweep() = %v, want 180", arc.Sweep())
		}
		if (Arc{Start: 10, End: 10}).Sweep() != 360 {
			t.Error("equal angles should sweep a full turn")
		}
	})

	t.Run("circle", func(t *testing.T) {
		c := Circle{Center: beamer.Pt(5, 5), Radius: 2}
		pts := c.Outline()
		if len(pts) != beamer.DefaultCurveSegments || !pts.Closed() {
			t.Fatalf("outline len %d closed %v", len(pts), pts.Closed())
		}
		for i, p := range pts {
			if !approx(p.Distance(c.Center), 2) {
				t.Errorf("point %d off the circle: %v", i, p)
			}
		}
	})

	t.Run("polyline", func(t *testing.T) {
		p := Polyline{Vertices: beamer.PointSequence{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, IsClosed: true}
		pts := p.Outline()
		if len(pts) != 4 || pts[3] != pts[0] {
			t.Errorf("closed outline = %v", pts)
		}
		if len(p.Vertices) != 3 {
			t.Error("Outline modified the vertices")
		}
		p.IsClosed = false
		if len(p.Outline()) != 3 {
			t.Error("open polyline should not repeat the first vertex")
		}
	})
}

func TestDrawingBounds(t *testing.T) {
	d, err := Parse(strings.NewReader(sampleDXF))
	if err != nil {
		t.Fatal(err)
	}
	b := d.Bounds()
	// The sampled circle tops out just below its exact extent.
	if !approx(b.Min.X, 0) || !approx(b.Min.Y, 0) || !approx(b.Max.X, 10) || math.Abs(b.Max.Y-7) > 0.01 {
		t.Errorf("Bounds() = %+v", b)
	}
	if got := len(d.Outlines()); got != 4 {
		t.Errorf("len(Outlines()) = %d, want 4", got)
	}
}

func TestParseErrors(t *testing.T) {
	entities := func(pairs ...string) string {
		all := append([]string{"0", "SECTION", "2", "ENTITIES"}, pairs...)
		return dxf(append(all, "0", "ENDSEC", "0", "EOF")...)
	}
	tests := []struct {
		name  string
		input string
	}{
		{"bad group code", "zero\nSECTION\n"},
		{"dangling code", "0\n"},
		{"bad number", entities("0", "LINE", "10", "x", "20", "0")},
		{"zero radius", entities("0", "CIRCLE", "10", "0", "20", "0", "40", "0")},
		{"missing radius", entities("0", "ARC", "10", "0", "20", "0")},
		{"y before x", entities("0", "LWPOLYLINE", "20", "1", "10", "0")},
		{"bad flags", entities("0", "LWPOLYLINE", "70", "closed", "10", "0", "20", "0")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); !errors.Is(err, ErrFormat) {
				t.Errorf("error = %v, want ErrFormat", err)
			}
		})
	}
}

func TestParseIgnoresEntitiesOutsideSection(t *testing.T) {
	input := dxf(
		"0", "SECTION",
		"2", "BLOCKS",
		"0", "CIRCLE",
		"10", "0",
		"20", "0",
		"40", "1",
		"0", "ENDSEC",
		"0", "EOF",
		"0", "LINE",
	)
	d, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Entities) != 0 || len(d.Unsupported) != 0 {
		t.Errorf("entities = %v, unsupported = %v", d.Entities, d.Unsupported)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stage.DXF")
	if err := os.WriteFile(path, []byte(sampleDXF), 0o600); err != nil {
		t.Fatal(err)
	}
	d, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(d.Entities) != 4 {
		t.Errorf("len(Entities) = %d, want 4", len(d.Entities))
	}

	if _, err := ReadFile(filepath.Join(dir, "stage.dwg")); !errors.Is(err, ErrUnsupported) {
		t.Errorf("wrong extension error = %v, want ErrUnsupported", err)
	}
	if _, err := ReadFile(filepath.Join(dir, "missing.dxf")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}
}
