package beamer

import "github.com/gogpu/beamer/internal/parallel"

// Field places one spot footprint at every position of a scan pattern.
//
// A Field reads its pattern and spot but never modifies them. Mutating the
// pattern after building a Field is not supported; build a new Field
// instead. The Spot is held by value and cannot change.
type Field struct {
	pattern *ScanPattern
	spot    Spot
	opts    fieldOptions
}

// NewField composes a scan pattern and a spot. A nil pattern is treated as
// an empty one.
func NewField(pattern *ScanPattern, spot Spot, opts ...FieldOption) *Field {
	if pattern == nil {
		pattern = &ScanPattern{nominal: PointSequence{}}
	}
	f := &Field{pattern: pattern, spot: spot}
	for _, opt := range opts {
		opt(&f.opts)
	}
	return f
}

// Pattern returns the scan pattern.
func (f *Field) Pattern() *ScanPattern { return f.pattern }

// Spot returns the spot.
func (f *Field) Spot() Spot { return f.spot }

// Count returns the number of footprints.
func (f *Field) Count() int { return f.pattern.Count() }

// Coverage returns Count·Spot.Area.
//
// This is an upper bound that assumes no two footprints overlap; it
// overestimates the illuminated area whenever they do.
func (f *Field) Coverage() float64 {
	return float64(f.pattern.Count()) * f.spot.Area()
}

// Centers returns the footprint centers in the instrument frame.
func (f *Field) Centers() PointSequence {
	return f.pattern.Instrument()
}

// Outlines returns one footprint ellipse per scan position, in scan order.
// Each ellipse has width Spot.Elongation and height Spot.Diameter and is
// translated, not rotated, to its instrument position.
func (f *Field) Outlines() []Ellipse {
	centers := f.pattern.instrumentView()
	out := make([]Ellipse, len(centers))
	base := f.spot.Ellipse()
	f.each(len(centers), func(i int) {
		out[i] = base.Translate(centers[i].X, centers[i].Y)
	})
	Logger().Debug("footprint outlines generated", "count", len(out))
	return out
}

// OutlinePoints returns the sampled boundary of every footprint in scan
// order, using the outline options configured on the field.
func (f *Field) OutlinePoints() []PointSequence {
	ellipses := f.Outlines()
	out := make([]PointSequence, len(ellipses))
	f.each(len(ellipses), func(i int) {
		out[i] = ellipses[i].Outline(f.opts.outline...)
	})
	return out
}

// Bounds returns the bounding box of all footprints. An empty field has an
// empty bounding box.
func (f *Field) Bounds() Rect {
	var r Rect
	for _, e := range f.Outlines() {
		r = r.Union(e.Bounds())
	}
	return r
}

// each runs fn for every index, fanning out to a worker pool when the
// field was built with more than one worker.
func (f *Field) each(n int, fn func(i int)) {
	if f.opts.workers == 0 || f.opts.workers == 1 || n < 2 {
		for i := range n {
			fn(i)
		}
		return
	}
	pool := parallel.NewWorkerPool(f.opts.workers)
	defer pool.Close()
	pool.Range(n, fn)
}
