// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"math"

	"github.com/gogpu/beamer"
)

// Viewport maps scene coordinates (y up) to pixel coordinates (y down).
type Viewport struct {
	// Scale is the number of pixels per scene unit.
	Scale float64

	m beamer.Matrix
}

// Fit returns the viewport that centers bounds on a width x height canvas,
// scaled uniformly to leave margin pixels on the tighter side. A degenerate
// extent is widened to the other extent, or to one unit when both are zero.
func Fit(bounds beamer.Rect, width, height, margin int) Viewport {
	bw, bh := bounds.Width(), bounds.Height()
	switch {
	case bw <= 0 && bh <= 0:
		bw, bh = 1, 1
	case bw <= 0:
		bw = bh
	case bh <= 0:
		bh = bw
	}

	aw := math.Max(float64(width-2*margin), 1)
	ah := math.Max(float64(height-2*margin), 1)
	scale := math.Min(aw/bw, ah/bh)

	c := bounds.Center()
	return Viewport{
		Scale: scale,
		m: beamer.Matrix{
			A: scale, B: 0, C: float64(width)/2 - scale*c.X,
			D: 0, E: -scale, F: float64(height)/2 + scale*c.Y,
		},
	}
}

// Matrix returns the scene-to-pixel transform.
func (v Viewport) Matrix() beamer.Matrix { return v.m }

// Map converts a scene point to pixel coordinates.
func (v Viewport) Map(p beamer.Point) beamer.Point {
	return v.m.TransformPoint(p)
}

// MapAll converts a sequence of scene points to pixel coordinates.
func (v Viewport) MapAll(ps beamer.PointSequence) beamer.PointSequence {
	return v.m.TransformPoints(ps)
}
