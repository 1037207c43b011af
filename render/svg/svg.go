// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package svg provides the SVG backend for render scenes.
//
// Each layer becomes a <g> element holding one <path> per outline and one
// <circle> per marker. Coordinates are written in pixels after the scene
// viewport has been applied, so the output matches the PNG backend.
//
// Importing the package registers the backend under the name "svg":
//
//	import _ "github.com/gogpu/beamer/render/svg"
package svg

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/beamer"
	"github.com/gogpu/beamer/render"
	"github.com/gogpu/beamer/style"
)

// Name is the registry name of the backend.
const Name = "svg"

func init() {
	render.Register(Name, func() render.Backend {
		return New()
	})
}

// Backend writes scenes as SVG documents.
type Backend struct {
	// Precision is the number of decimals written for coordinates.
	Precision int
}

var _ render.Backend = (*Backend)(nil)

// New creates an SVG backend writing two decimals.
func New() *Backend {
	return &Backend{Precision: 2}
}

// Extension implements render.Backend.
func (b *Backend) Extension() string { return ".svg" }

// Render implements render.Backend.
func (b *Backend) Render(s *render.Scene, w io.Writer) error {
	if err := s.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	e := &encoder{w: bw, prec: b.Precision}

	e.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	e.printf(`<rect width="100%%" height="100%%" fill="%s"%s/>`+"\n",
		s.Background.Hex()[:7], opacity("fill-opacity", s.Background.A))

	vp := s.Viewport()
	for _, l := range s.Layers() {
		e.layer(vp, l)
	}

	if s.Caption != "" {
		e.printf(`<text x="6" y="%d" font-family="sans-serif" font-size="12" fill="#000000">`, s.Height-6)
		e.escape(s.Caption)
		e.printf("</text>\n")
	}
	e.printf("</svg>\n")

	if e.err != nil {
		return fmt.Errorf("svg: write: %w", e.err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("svg: write: %w", err)
	}
	return nil
}

// encoder keeps the first write error.
type encoder struct {
	w    *bufio.Writer
	prec int
	err  error
}

func (e *encoder) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *encoder) escape(s string) {
	if e.err != nil {
		return
	}
	e.err = xml.EscapeText(e.w, []byte(s))
}

func (e *encoder) num(v float64) string {
	return strconv.FormatFloat(v, 'f', e.prec, 64)
}

func (e *encoder) layer(vp render.Viewport, l render.Layer) {
	e.printf(`<g id="`)
	e.escape(l.Name)
	e.printf(`"%s>`+"\n", paint(l.Style, l.Closed))

	for _, o := range l.Outlines {
		if len(o) < 2 {
			continue
		}
		e.printf(`<path d="%s"/>`+"\n", e.pathData(vp.MapAll(o), l.Closed))
	}

	if len(l.Markers) > 0 {
		c := l.Style.EdgeColor()
		if l.Style.Fill {
			c = l.Style.FaceColor()
		}
		r := e.num(l.MarkerRadius())
		for _, p := range vp.MapAll(l.Markers) {
			e.printf(`<circle cx="%s" cy="%s" r="%s" fill="%s"%s stroke="none"/>`+"\n",
				e.num(p.X), e.num(p.Y), r, c.Hex()[:7], opacity("fill-opacity", c.A))
		}
	}
	e.printf("</g>\n")
}

func (e *encoder) pathData(ps beamer.PointSequence, closed bool) string {
	var sb strings.Builder
	for i, p := range ps {
		if i == 0 {
			sb.WriteString("M")
		} else {
			sb.WriteString(" L")
		}
		sb.WriteString(e.num(p.X))
		sb.WriteByte(',')
		sb.WriteString(e.num(p.Y))
	}
	if closed {
		sb.WriteString(" Z")
	}
	return sb.String()
}

// paint returns the fill and stroke attributes of a layer group.
func paint(s style.Style, closed bool) string {
	var sb strings.Builder
	if closed && s.Fill {
		face := s.FaceColor()
		fmt.Fprintf(&sb, ` fill="%s"%s`, face.Hex()[:7], opacity("fill-opacity", face.A))
	} else {
		sb.WriteString(` fill="none"`)
	}
	if s.LineWidth > 0 {
		edge := s.EdgeColor()
		fmt.Fprintf(&sb, ` stroke="%s" stroke-width="%s"%s stroke-linejoin="round"`,
			edge.Hex()[:7], strconv.FormatFloat(s.LineWidth, 'g', -1, 64), opacity("stroke-opacity", edge.A))
	} else {
		sb.WriteString(` stroke="none"`)
	}
	return sb.String()
}

// opacity returns an opacity attribute, or nothing for opaque colors.
func opacity(attr string, a float64) string {
	if a >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%s"`, attr, strconv.FormatFloat(a, 'g', 4, 64))
}
