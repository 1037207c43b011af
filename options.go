package beamer

// Default sample counts for outline generation.
const (
	// DefaultCurveSegments is the number of samples taken around a full
	// circle or ellipse, endpoint included: 360/15 samples, so the actual
	// step is slightly wider than 15 degrees.
	DefaultCurveSegments = 24

	// DefaultArcSegments is the number of samples along a sector arc.
	DefaultArcSegments = 9
)

// OutlineOption configures outline generation.
//
// Example:
//
//	// Default resolution
//	pts := beamer.NewEllipse(2, 1).Outline()
//
//	// Finer resolution for large shapes
//	pts := beamer.NewCircle(10).Outline(beamer.WithSegments(180))
type OutlineOption func(*outlineOptions)

type outlineOptions struct {
	segments    int
	arcSegments int
}

func defaultOutlineOptions() outlineOptions {
	return outlineOptions{
		segments:    DefaultCurveSegments,
		arcSegments: DefaultArcSegments,
	}
}

func resolveOutlineOptions(opts []OutlineOption) outlineOptions {
	o := defaultOutlineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSegments sets the number of samples used for curved outlines.
// Circles and ellipses use n samples for the closed loop; sectors use n
// samples along the arc. Values below 3 are ignored.
func WithSegments(n int) OutlineOption {
	return func(o *outlineOptions) {
		if n < 3 {
			return
		}
		o.segments = n
		o.arcSegments = n
	}
}

// SpotOption configures Spot construction.
type SpotOption func(*spotOptions)

type spotOptions struct {
	wrapIncidence bool
}

// WithIncidenceWrap restores the legacy behavior of reducing incidence
// angles at or above 90 degrees modulo 90 instead of rejecting them.
// Every wrap is reported as a warning through Logger.
func WithIncidenceWrap() SpotOption {
	return func(o *spotOptions) {
		o.wrapIncidence = true
	}
}

// FieldOption configures a Field.
type FieldOption func(*fieldOptions)

type fieldOptions struct {
	workers int
	outline []OutlineOption
}

// WithWorkers spreads outline generation across n goroutines.
// Values of 0 or 1 keep generation on the calling goroutine; a negative
// value uses GOMAXPROCS.
func WithWorkers(n int) FieldOption {
	return func(o *fieldOptions) {
		o.workers = n
	}
}

// WithOutlineOptions sets the outline options used by Field.OutlinePoints.
func WithOutlineOptions(opts ...OutlineOption) FieldOption {
	return func(o *fieldOptions) {
		o.outline = append(o.outline, opts...)
	}
}
