// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster provides the PNG backend for render scenes.
//
// Polygons are scan converted with golang.org/x/image/vector. Strokes are
// drawn as one quad per segment plus a square at every vertex, which is
// adequate for the thin outlines of footprint maps. Captions use the Go
// Regular font.
//
// Importing the package registers the backend under the name "png":
//
//	import _ "github.com/gogpu/beamer/render/raster"
package raster

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/beamer"
	"github.com/gogpu/beamer/render"
	"github.com/gogpu/beamer/style"
)

// Name is the registry name of the backend.
const Name = "png"

// DefaultFontSize is the caption size in points at 72 DPI.
const DefaultFontSize = 12.0

func init() {
	render.Register(Name, func() render.Backend {
		return New()
	})
}

var (
	fontOnce sync.Once
	fontErr  error
	regular  *opentype.Font
)

func captionFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		regular, fontErr = opentype.Parse(goregular.TTF)
	})
	return regular, fontErr
}

// Backend rasterizes scenes to PNG.
type Backend struct {
	// FontSize is the caption size. Zero selects DefaultFontSize.
	FontSize float64

	// CaptionColor is the caption text color.
	CaptionColor style.RGBA
}

var _ render.Backend = (*Backend)(nil)

// New creates a raster backend with default settings.
func New() *Backend {
	return &Backend{FontSize: DefaultFontSize, CaptionColor: style.Black}
}

// Extension implements render.Backend.
func (b *Backend) Extension() string { return ".png" }

// Render implements render.Backend.
func (b *Backend) Render(s *render.Scene, w io.Writer) error {
	img, err := b.Draw(s)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("raster: encode: %w", err)
	}
	return nil
}

// Draw rasterizes the scene into a new image.
func (b *Backend) Draw(s *render.Scene) (*image.RGBA, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(s.Background.NRGBA()), image.Point{}, draw.Src)

	vp := s.Viewport()
	z := vector.NewRasterizer(s.Width, s.Height)
	for _, l := range s.Layers() {
		drawLayer(img, z, vp, l)
	}

	if s.Caption != "" {
		if err := b.drawCaption(img, s.Caption); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func drawLayer(img *image.RGBA, z *vector.Rasterizer, vp render.Viewport, l render.Layer) {
	outlines := make([]beamer.PointSequence, len(l.Outlines))
	for i, o := range l.Outlines {
		outlines[i] = vp.MapAll(o)
	}

	if l.Closed && l.Style.Fill {
		fill(img, z, l.Style.FaceColor(), outlines...)
	}
	if l.Style.LineWidth > 0 {
		var quads []beamer.PointSequence
		for _, o := range outlines {
			quads = appendStroke(quads, o, l.Style.LineWidth/2)
		}
		fill(img, z, l.Style.EdgeColor(), quads...)
	}

	if len(l.Markers) > 0 {
		c := l.Style.EdgeColor()
		if l.Style.Fill {
			c = l.Style.FaceColor()
		}
		r := l.MarkerRadius()
		dots := make([]beamer.PointSequence, len(l.Markers))
		for i, p := range vp.MapAll(l.Markers) {
			dots[i] = beamer.Circle{Radius: r}.Translate(p.X, p.Y).Outline(beamer.WithSegments(13))
		}
		fill(img, z, c, dots...)
	}
}

// fill paints the union of the polygons in one pass.
func fill(img *image.RGBA, z *vector.Rasterizer, c style.RGBA, polys ...beamer.PointSequence) {
	if c.A <= 0 || len(polys) == 0 {
		return
	}
	b := img.Bounds()
	z.Reset(b.Dx(), b.Dy())
	for _, p := range polys {
		if len(p) < 3 {
			continue
		}
		z.MoveTo(float32(p[0].X), float32(p[0].Y))
		for _, q := range p[1:] {
			z.LineTo(float32(q.X), float32(q.Y))
		}
		z.ClosePath()
	}
	z.Draw(img, b, image.NewUniform(c.NRGBA()), image.Point{})
}

// appendStroke appends the quads covering a polyline of half width h.
// Every quad winds the same way so overlaps never cancel.
func appendStroke(dst []beamer.PointSequence, line beamer.PointSequence, h float64) []beamer.PointSequence {
	for i, p := range line {
		dst = append(dst, beamer.PointSequence{
			{X: p.X - h, Y: p.Y + h},
			{X: p.X + h, Y: p.Y + h},
			{X: p.X + h, Y: p.Y - h},
			{X: p.X - h, Y: p.Y - h},
		})
		if i == 0 {
			continue
		}
		q := line[i-1]
		d := p.Sub(q)
		length := d.Length()
		if length == 0 {
			continue
		}
		n := beamer.Pt(-d.Y, d.X).Mul(h / length)
		dst = append(dst, beamer.PointSequence{q.Add(n), p.Add(n), p.Sub(n), q.Sub(n)})
	}
	return dst
}

func (b *Backend) drawCaption(img *image.RGBA, caption string) error {
	f, err := captionFont()
	if err != nil {
		return fmt.Errorf("raster: caption font: %w", err)
	}
	size := b.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("raster: caption face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	pad := int(math.Ceil(size / 2))
	descent := face.Metrics().Descent.Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(b.CaptionColor.NRGBA()),
		Face: face,
		Dot:  fixed.P(pad, img.Bounds().Dy()-pad-descent),
	}
	d.DrawString(caption)
	return nil
}
