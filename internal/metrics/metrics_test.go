package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/gogpu/beamer"
	"github.com/gogpu/beamer/cad"
	"github.com/gogpu/beamer/scan"
)

func newTestCollector(t *testing.T) (*Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	return c, reg
}

func testField(t *testing.T) *beamer.Field {
	t.Helper()
	p, err := beamer.NewScanPattern([]float64{0, 1, 2, 3}, []float64{0, 0, 0, 0}, beamer.Point{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	spot, err := beamer.NewSpot(0.3, 65)
	if err != nil {
		t.Fatal(err)
	}
	return beamer.NewField(p, spot)
}

func TestObserveRun(t *testing.T) {
	c, _ := newTestCollector(t)
	f := testField(t)

	c.ObserveRun(f, 20*time.Millisecond)
	c.ObserveRun(f, 30*time.Millisecond)
	c.ObserveOutlines(4)

	if got := testutil.ToFloat64(c.Runs); got != 2 {
		t.Errorf("beamer_runs_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.ScanPoints); got != 8 {
		t.Errorf("beamer_scan_points_total = %v, want 8", got)
	}
	if got := testutil.ToFloat64(c.Outlines); got != 4 {
		t.Errorf("beamer_outlines_generated_total = %v, want 4", got)
	}
	if got := testutil.ToFloat64(c.LastCoverage); got != f.Coverage() {
		t.Errorf("beamer_last_coverage = %v, want %v", got, f.Coverage())
	}
	if got := testutil.ToFloat64(c.LastElongation); got != f.Spot().Elongation() {
		t.Errorf("beamer_last_elongation = %v", got)
	}
}

func TestErrorKind(t *testing.T) {
	_, domainErr := beamer.NewSpot(0.3, 95)
	_, dimErr := beamer.NewScanPattern([]float64{1}, nil, beamer.Point{}, 0)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"domain", domainErr, KindDomain},
		{"dimension", dimErr, KindDimension},
		{"scan data", fmt.Errorf("read: %w", scan.ErrData), KindData},
		{"dxf", cad.ErrFormat, KindFormat},
		{"other", errors.New("boom"), KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorKind(tt.err); got != tt.want {
				t.Errorf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestObserveError(t *testing.T) {
	c, _ := newTestCollector(t)
	_, err := beamer.NewSpot(-1, 0)
	c.ObserveError(err)
	c.ObserveError(err)
	c.ObserveError(nil)
	c.ObserveError(errors.New("boom"))

	if got := testutil.ToFloat64(c.Errors.WithLabelValues(KindDomain)); got != 2 {
		t.Errorf("errors{kind=domain} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Errors.WithLabelValues(KindOther)); got != 1 {
		t.Errorf("errors{kind=other} = %v, want 1", got)
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.ObserveRun(testField(t), time.Second)
	c.ObserveOutlines(1)
	c.ObserveError(errors.New("boom"))
}

func TestNewCollectorReusesRegistered(t *testing.T) {
	c1, reg := newTestCollector(t)
	c2, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}
	c1.Runs.Inc()
	if got := testutil.ToFloat64(c2.Runs); got != 1 {
		t.Errorf("second collector does not share counters: %v", got)
	}
}

func TestNewCollectorIncompatible(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "beamer_runs_total",
		Help: "Total number of completed footprint analyses.",
	}))
	if _, err := NewCollector(reg); err == nil {
		t.Error("NewCollector should fail on an incompatible collector")
	}
}

func TestWriteTextfile(t *testing.T) {
	c, _ := newTestCollector(t)
	c.ObserveRun(testField(t), 10*time.Millisecond)

	path := filepath.Join(t.TempDir(), "beamer.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"beamer_runs_total 1", "beamer_scan_points_total 4", "beamer_run_duration_seconds_count 1"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	}

	if err := c.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")); err == nil {
		t.Error("WriteTextfile into a missing directory should fail")
	}
}
