// Package metrics exposes Prometheus metrics for footprint analysis runs.
//
// The CLI is short-lived, so metrics are not served over HTTP; they are
// written to a node-exporter textfile when a run completes.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/beamer"
	"github.com/gogpu/beamer/cad"
	"github.com/gogpu/beamer/scan"
)

// Error kinds used as the "kind" label of beamer_errors_total.
const (
	KindDomain    = "domain"
	KindDimension = "dimension"
	KindData      = "data"
	KindFormat    = "format"
	KindOther     = "other"
)

// Collector bundles the analysis metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	Runs           prometheus.Counter
	ScanPoints     prometheus.Counter
	Outlines       prometheus.Counter
	LastCoverage   prometheus.Gauge
	LastElongation prometheus.Gauge
	RunDuration    prometheus.Histogram
	Errors         *prometheus.CounterVec
}

// NewCollector registers the analysis metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
// Registering twice against the same registry returns the existing metrics.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beamer_runs_total",
		Help: "Total number of completed footprint analyses.",
	}), "beamer_runs_total")
	if err != nil {
		return nil, err
	}
	points, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beamer_scan_points_total",
		Help: "Total number of scan points analysed.",
	}), "beamer_scan_points_total")
	if err != nil {
		return nil, err
	}
	outlines, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beamer_outlines_generated_total",
		Help: "Total number of footprint outlines generated.",
	}), "beamer_outlines_generated_total")
	if err != nil {
		return nil, err
	}
	coverage, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "beamer_last_coverage",
		Help: "Coverage of the most recent analysis in squared sample units.",
	}), "beamer_last_coverage")
	if err != nil {
		return nil, err
	}
	elongation, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "beamer_last_elongation",
		Help: "Footprint major axis of the most recent analysis.",
	}), "beamer_last_elongation")
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "beamer_run_duration_seconds",
		Help:    "Wall time of a footprint analysis in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}), "beamer_run_duration_seconds")
	if err != nil {
		return nil, err
	}
	errs, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "beamer_errors_total",
		Help: "Total number of rejected inputs, labeled by error kind.",
	}, []string{"kind"}), "beamer_errors_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:       gatherer,
		Runs:           runs,
		ScanPoints:     points,
		Outlines:       outlines,
		LastCoverage:   coverage,
		LastElongation: elongation,
		RunDuration:    duration,
		Errors:         errs,
	}, nil
}

// ObserveRun records a completed analysis of a field.
func (c *Collector) ObserveRun(f *beamer.Field, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Runs.Inc()
	c.ScanPoints.Add(float64(f.Count()))
	c.LastCoverage.Set(f.Coverage())
	c.LastElongation.Set(f.Spot().Elongation())
	c.RunDuration.Observe(elapsed.Seconds())
}

// ObserveOutlines records generated outlines.
func (c *Collector) ObserveOutlines(n int) {
	if c == nil {
		return
	}
	c.Outlines.Add(float64(n))
}

// ObserveError counts err under its kind. Nil errors are ignored.
func (c *Collector) ObserveError(err error) {
	if c == nil || err == nil {
		return
	}
	c.Errors.WithLabelValues(ErrorKind(err)).Inc()
}

// WriteTextfile writes every gathered metric to path in the Prometheus
// text format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}

// ErrorKind classifies an error for the errors_total label.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, beamer.ErrDomain):
		return KindDomain
	case errors.Is(err, beamer.ErrInvalidDimension):
		return KindDimension
	case errors.Is(err, scan.ErrData):
		return KindData
	case errors.Is(err, cad.ErrFormat):
		return KindFormat
	default:
		return KindOther
	}
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return c, nil
}
