package beamer

import (
	"math"
	"testing"
)

func gridPattern(t *testing.T, n int, offset Point, rot float64) *ScanPattern {
	t.Helper()
	var xs, ys []float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			xs = append(xs, float64(i)*0.5)
			ys = append(ys, float64(j)*0.5)
		}
	}
	p, err := NewScanPattern(xs, ys, offset, rot)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestFieldOutlines(t *testing.T) {
	spot := mustSpot(t, 0.3, 65)
	pattern := gridPattern(t, 3, Pt(0.5, 2.5), 41)
	field := NewField(pattern, spot)

	outlines := field.Outlines()
	if len(outlines) != pattern.Count() {
		t.Fatalf("len(Outlines()) = %d, want %d", len(outlines), pattern.Count())
	}
	centers := pattern.Instrument()
	for i, e := range outlines {
		if e.Center != centers[i] {
			t.Errorf("outline %d center = %v, want %v", i, e.Center, centers[i])
		}
		if e.Width != spot.Elongation() || e.Height != spot.Diameter() {
			t.Errorf("outline %d size = %vx%v", i, e.Width, e.Height)
		}
		if e.Angle != 0 {
			t.Errorf("outline %d rotated by %v; footprints follow the beam, not the scan", i, e.Angle)
		}
	}
}

func TestFieldCoverage(t *testing.T) {
	spot := mustSpot(t, 0.3, 65)
	pattern := gridPattern(t, 4, Pt(0, 0), 0)
	field := NewField(pattern, spot)
	if got, want := field.Coverage(), 16*spot.Area(); !approx(got, want) {
		t.Errorf("Coverage() = %v, want %v", got, want)
	}
}

// Coverage ignores overlap: stacking every scan point on the same spot still
// counts each footprint in full.
func TestFieldCoverageIgnoresOverlap(t *testing.T) {
	spot := mustSpot(t, 1, 0)
	p, _ := NewScanPattern([]float64{0, 0, 0}, []float64{0, 0, 0}, Pt(0, 0), 0)
	if got, want := NewField(p, spot).Coverage(), 3*math.Pi/4; !approx(got, want) {
		t.Errorf("Coverage() = %v, want %v", got, want)
	}
}

func TestFieldEmpty(t *testing.T) {
	spot := mustSpot(t, 0.3, 65)
	p, _ := NewScanPattern([]float64{}, []float64{}, Pt(0, 0), 0)
	for name, f := range map[string]*Field{
		"empty pattern": NewField(p, spot),
		"nil pattern":   NewField(nil, spot),
	} {
		t.Run(name, func(t *testing.T) {
			if f.Count() != 0 {
				t.Errorf("Count() = %d, want 0", f.Count())
			}
			if f.Coverage() != 0 {
				t.Errorf("Coverage() = %v, want 0", f.Coverage())
			}
			if got := f.Outlines(); len(got) != 0 {
				t.Errorf("Outlines() = %v, want empty", got)
			}
			if !f.Bounds().IsEmpty() {
				t.Errorf("Bounds() = %v, want empty", f.Bounds())
			}
		})
	}
}

func TestFieldParallelMatchesSerial(t *testing.T) {
	spot := mustSpot(t, 0.03, 70)
	pattern := gridPattern(t, 25, Pt(-1, 2), 225)

	serial := NewField(pattern, spot).OutlinePoints()
	for _, workers := range []int{2, 7, -1} {
		par := NewField(pattern, spot, WithWorkers(workers)).OutlinePoints()
		if len(par) != len(serial) {
			t.Fatalf("workers=%d: len = %d, want %d", workers, len(par), len(serial))
		}
		for i := range serial {
			for j := range serial[i] {
				if par[i][j] != serial[i][j] {
					t.Fatalf("workers=%d: outline %d point %d = %v, want %v",
						workers, i, j, par[i][j], serial[i][j])
				}
			}
		}
	}
}

func TestFieldOutlinePointsOptions(t *testing.T) {
	spot := mustSpot(t, 0.3, 30)
	pattern := gridPattern(t, 2, Pt(0, 0), 0)
	pts := NewField(pattern, spot, WithOutlineOptions(WithSegments(64))).OutlinePoints()
	for i, outline := range pts {
		if len(outline) != 64 {
			t.Errorf("outline %d has %d points, want 64", i, len(outline))
		}
	}
}

func TestFieldBounds(t *testing.T) {
	spot := mustSpot(t, 1, 60)
	p, _ := NewScanPattern([]float64{0, 10}, []float64{0, 0}, Pt(0, 0), 0)
	b := NewField(p, spot).Bounds()
	want := Rect{Min: Pt(-1, -0.5), Max: Pt(11, 0.5)}
	if !approxPoint(b.Min, want.Min) || !approxPoint(b.Max, want.Max) {
		t.Errorf("Bounds() = %v, want %v", b, want)
	}
}
