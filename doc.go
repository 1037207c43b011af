// Package beamer models the footprint of a beam striking a sample at an
// oblique angle across a set of scan positions.
//
// # Overview
//
// A circular beam of diameter d hitting a sample tilted θ degrees from
// normal incidence illuminates an ellipse with minor axis d and major axis
// d/cos(θ). beamer places that ellipse at every position of a scan pattern
// after applying the instrument's alignment offset, and reports per-point
// outlines and an aggregate coverage estimate for planning and plotting.
//
// # Quick Start
//
//	spot, err := beamer.NewSpot(0.3, 65)
//	if err != nil {
//	    return err
//	}
//	pattern, err := beamer.NewScanPattern(
//	    []float64{0, 1, 1, 0},
//	    []float64{0, 0, 1, 1},
//	    beamer.Pt(-0.5, -0.5), 30,
//	)
//	if err != nil {
//	    return err
//	}
//	field := beamer.NewField(pattern, spot)
//	for _, e := range field.Outlines() {
//	    draw(e.Outline())
//	}
//
// # Architecture
//
// The library is organized into:
//   - Geometry: Point, PointSequence, Matrix, RotatePoints, TranslatePoints
//   - Shapes: Circle, Ellipse, Rectangle, Sector behind the sealed Shape interface
//   - Footprints: Spot, ScanPattern, Field
//   - Collaborators: scan (Woollam files), cad (DXF overlays), style, render, store
//
// # Coordinate System
//
// Sample coordinates with y up. Angles are in degrees and increase
// counter-clockwise. Shape placement is always "rotate about the local
// origin, then translate to the center"; the scan pattern offset follows the
// same order.
//
// # Errors
//
// Validation happens at construction. Constructors return *DomainError
// (matching ErrDomain) for out-of-range physical inputs and
// ErrInvalidDimension for malformed coordinate batches. Once built, Spot,
// ScanPattern and Field methods do not fail.
package beamer

// Version is the current version of the library.
const Version = "0.1.0"
