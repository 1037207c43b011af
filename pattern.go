package beamer

import (
	"fmt"
	"sync"
)

// ScanPattern is a sequence of nominal measurement positions in the sample
// frame together with the rigid offset that maps them into the instrument
// frame.
//
// The nominal positions are copied on construction and never modified.
// Instrument coordinates are computed once on first use and cached.
type ScanPattern struct {
	nominal  PointSequence
	offset   Point
	rotation float64

	once       sync.Once
	instrument PointSequence
}

// NewScanPattern creates a pattern from parallel x and y coordinates.
//
// offset and rotation (degrees) describe the instrument alignment: nominal
// points are rotated about the origin first and translated second.
// Mismatched lengths return ErrInvalidDimension; non-finite values return a
// *DomainError. Empty coordinates are valid and produce an empty pattern.
func NewScanPattern(x, y []float64, offset Point, rotation float64) (*ScanPattern, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d x values, %d y values", ErrInvalidDimension, len(x), len(y))
	}
	pts := make(PointSequence, len(x))
	for i := range x {
		pts[i] = Point{X: x[i], Y: y[i]}
	}
	return NewScanPatternPoints(pts, offset, rotation)
}

// NewScanPatternPoints creates a pattern from a point sequence.
// The sequence is copied.
func NewScanPatternPoints(nominal PointSequence, offset Point, rotation float64) (*ScanPattern, error) {
	for i, p := range nominal {
		if !p.IsFinite() {
			return nil, fmt.Errorf("scan point %d: %w", i,
				domainError("coordinate", firstNonFinite(p), "must be finite"))
		}
	}
	if !offset.IsFinite() {
		return nil, domainError("offset", firstNonFinite(offset), "must be finite")
	}
	if !isFinite(rotation) {
		return nil, domainError("rotation offset", rotation, "must be finite")
	}
	pts := nominal.Clone()
	if pts == nil {
		pts = PointSequence{}
	}
	return &ScanPattern{nominal: pts, offset: offset, rotation: rotation}, nil
}

// Count returns the number of scan positions.
func (p *ScanPattern) Count() int {
	return len(p.nominal)
}

// Nominal returns a copy of the sample-frame positions.
func (p *ScanPattern) Nominal() PointSequence {
	return p.nominal.Clone()
}

// Offset returns the instrument translation offset.
func (p *ScanPattern) Offset() Point { return p.offset }

// Rotation returns the instrument rotation offset in degrees.
func (p *ScanPattern) Rotation() float64 { return p.rotation }

// Transform returns the sample-to-instrument matrix.
func (p *ScanPattern) Transform() Matrix {
	return RigidTransform(p.rotation, p.offset)
}

// Instrument returns the positions in the instrument frame: each nominal
// point rotated by the rotation offset about the origin, then translated by
// the offset. The result is a fresh copy on every call.
func (p *ScanPattern) Instrument() PointSequence {
	return p.instrumentView().Clone()
}

// instrumentView returns the cached instrument coordinates without copying.
// Callers must not modify the result.
func (p *ScanPattern) instrumentView() PointSequence {
	p.once.Do(func() {
		p.instrument = TranslatePoints(RotatePoints(p.nominal, p.rotation), p.offset)
	})
	return p.instrument
}

// Within returns a new pattern holding only the nominal points whose
// distance from the origin does not exceed radius. The offsets carry over.
func (p *ScanPattern) Within(radius float64) *ScanPattern {
	kept := make(PointSequence, 0, len(p.nominal))
	for _, pt := range p.nominal {
		if pt.Length() <= radius {
			kept = append(kept, pt)
		}
	}
	return &ScanPattern{nominal: kept, offset: p.offset, rotation: p.rotation}
}

// WithOffset returns a copy of the pattern with a different alignment.
func (p *ScanPattern) WithOffset(offset Point, rotation float64) (*ScanPattern, error) {
	return NewScanPatternPoints(p.nominal, offset, rotation)
}

func firstNonFinite(p Point) float64 {
	if !isFinite(p.X) {
		return p.X
	}
	return p.Y
}
