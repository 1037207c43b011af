// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/beamer"
	"github.com/gogpu/beamer/style"
)

// Default canvas settings.
const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultMargin     = 24
	DefaultMarkerSize = 3.0
)

// ErrInvalidSize is returned when a scene has a non-positive canvas size.
var ErrInvalidSize = errors.New("render: invalid canvas size")

// Layer is one group of outlines drawn with a single style.
type Layer struct {
	Name  string
	Style style.Style

	// Outlines are polylines in scene coordinates.
	Outlines []beamer.PointSequence

	// Closed outlines are filled when the style asks for it. Open outlines
	// are only stroked.
	Closed bool

	// Markers are drawn as dots of MarkerSize pixels radius.
	Markers    beamer.PointSequence
	MarkerSize float64
}

// Bounds returns the bounding box of the layer's outlines and markers.
func (l Layer) Bounds() beamer.Rect {
	var r beamer.Rect
	for _, o := range l.Outlines {
		r = r.Union(o.Bounds())
	}
	return r.Union(l.Markers.Bounds())
}

// MarkerRadius returns the marker radius in pixels.
func (l Layer) MarkerRadius() float64 {
	if l.MarkerSize > 0 {
		return l.MarkerSize
	}
	return DefaultMarkerSize
}

// Scene is everything a backend needs to produce one image.
type Scene struct {
	Width, Height int
	Margin        int
	Background    style.RGBA
	Caption       string

	layers []Layer
}

// NewScene creates an empty scene with a white background.
func NewScene(width, height int) *Scene {
	return &Scene{
		Width:      width,
		Height:     height,
		Margin:     DefaultMargin,
		Background: style.White,
	}
}

// Add appends a layer and returns the scene for chaining.
func (s *Scene) Add(l Layer) *Scene {
	s.layers = append(s.layers, l)
	return s
}

// Len returns the number of layers.
func (s *Scene) Len() int { return len(s.layers) }

// Layers returns the layers in drawing order: ascending Z, ties kept in
// insertion order.
func (s *Scene) Layers() []Layer {
	out := slices.Clone(s.layers)
	slices.SortStableFunc(out, func(a, b Layer) int {
		return a.Style.Z - b.Style.Z
	})
	return out
}

// Bounds returns the union of all layer bounds.
func (s *Scene) Bounds() beamer.Rect {
	var r beamer.Rect
	for _, l := range s.layers {
		r = r.Union(l.Bounds())
	}
	return r
}

// Viewport returns the mapping from scene to pixel coordinates.
func (s *Scene) Viewport() Viewport {
	return Fit(s.Bounds(), s.Width, s.Height, s.Margin)
}

// Validate checks the canvas size.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, s.Width, s.Height)
	}
	return nil
}
