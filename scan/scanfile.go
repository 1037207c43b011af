// Package scan reads ellipsometer map files into numeric records that the
// beamer package can turn into scan patterns.
//
// Two formats are supported: the .SCAN recipe file, which carries the
// sample outline, the instrument offsets and the nominal scan points, and
// the tab-separated text export of fitted results, which carries one row of
// measured quantities per scan point.
package scan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/beamer"
)

// Section names in a .SCAN file.
const (
	SectionSubstrate = "Substrate Dimensions"
	SectionAlignment = "Alignment"
	SectionOffsets   = "Offsets"
	SectionPoints    = "Scan Points"
	SectionBaseline  = "Transmission Baseline"
)

// SubstrateShape selects the sample outline.
type SubstrateShape int

// Substrate shapes as encoded in .SCAN files.
const (
	SubstrateCircle SubstrateShape = iota
	SubstrateRectangle
	SubstrateRectangleCorner
)

// String returns the description used by the instrument software.
func (s SubstrateShape) String() string {
	switch s {
	case SubstrateCircle:
		return "Circle"
	case SubstrateRectangle:
		return "Rectangle"
	case SubstrateRectangleCorner:
		return "Rectangle, (0,0) at corner"
	default:
		return fmt.Sprintf("SubstrateShape(%d)", int(s))
	}
}

// SubstrateDimensions describes the sample. Diameter applies to circular
// samples, X and Y to rectangular ones.
type SubstrateDimensions struct {
	Shape     SubstrateShape
	Diameter  float64
	DrawNotch bool
	X, Y      float64
}

// Outline returns the sample as a beamer shape in sample coordinates.
func (d SubstrateDimensions) Outline() (beamer.Shape, error) {
	switch d.Shape {
	case SubstrateCircle:
		return beamer.NewCircle(d.Diameter / 2)
	case SubstrateRectangle:
		return beamer.NewRectangle(d.X, d.Y, true)
	case SubstrateRectangleCorner:
		return beamer.NewRectangle(d.X, d.Y, false)
	default:
		return nil, fmt.Errorf("%w: unknown substrate shape %d", ErrData, int(d.Shape))
	}
}

// Alignment is the alignment position and mode.
type Alignment struct {
	Option int
	X, Y   float64
}

// Offsets is the rigid sample-to-instrument offset. Theta is in degrees.
type Offsets struct {
	X, Y               float64
	Theta              float64
	UseInitialPosition bool
}

// Points holds the nominal scan positions and their z heights.
type Points struct {
	X, Y, Z []float64
}

// Len returns the number of scan points.
func (p Points) Len() int { return len(p.X) }

// TransmissionBaseline is the position used for the transmission baseline.
type TransmissionBaseline struct {
	UsePoint bool
	X, Y     float64
}

// File is a parsed .SCAN recipe.
type File struct {
	Substrate SubstrateDimensions
	Alignment Alignment
	Offsets   Offsets
	Points    Points
	Baseline  TransmissionBaseline

	// Skipped counts scan point lines that could not be interpreted.
	Skipped int
}

// Pattern builds the scan pattern with the file's offsets applied.
func (f *File) Pattern() (*beamer.ScanPattern, error) {
	return beamer.NewScanPattern(f.Points.X, f.Points.Y,
		beamer.Pt(f.Offsets.X, f.Offsets.Y), f.Offsets.Theta)
}

// numberPattern matches signed decimals with an optional exponent.
var numberPattern = regexp.MustCompile(`[+-]?\d*\.?\d+(?:[eE][+-]?\d+)?`)

type sectionLine struct {
	text string
	line int
}

// ReadScanFile reads a .SCAN file from disk.
func ReadScanFile(path string) (*File, error) {
	if err := checkFile(path, ".scan"); err != nil {
		return nil, err
	}
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return ParseScan(f)
}

// ParseScan parses .SCAN content.
func ParseScan(r io.Reader) (*File, error) {
	sections, err := splitSections(r)
	if err != nil {
		return nil, err
	}

	var out File
	var fields []string
	var line int

	if fields, line, err = firstFields(sections, SectionSubstrate, 5); err != nil {
		return nil, err
	}
	p := fieldParser{section: SectionSubstrate, line: line}
	out.Substrate = SubstrateDimensions{
		Shape:     SubstrateShape(p.int(fields[0])),
		Diameter:  p.float(fields[1]),
		DrawNotch: p.bool(fields[2]),
		X:         p.float(fields[3]),
		Y:         p.float(fields[4]),
	}
	if p.err != nil {
		return nil, p.err
	}

	if fields, line, err = firstFields(sections, SectionAlignment, 3); err != nil {
		return nil, err
	}
	p = fieldParser{section: SectionAlignment, line: line}
	out.Alignment = Alignment{
		Option: p.int(fields[0]),
		X:      p.float(fields[1]),
		Y:      p.float(fields[2]),
	}
	if p.err != nil {
		return nil, p.err
	}

	if fields, line, err = firstFields(sections, SectionOffsets, 4); err != nil {
		return nil, err
	}
	p = fieldParser{section: SectionOffsets, line: line}
	out.Offsets = Offsets{
		X:                  p.float(fields[0]),
		Y:                  p.float(fields[1]),
		Theta:              p.float(fields[2]),
		UseInitialPosition: p.bool(fields[3]),
	}
	if p.err != nil {
		return nil, p.err
	}

	if fields, line, err = firstFields(sections, SectionBaseline, 3); err != nil {
		return nil, err
	}
	p = fieldParser{section: SectionBaseline, line: line}
	out.Baseline = TransmissionBaseline{
		UsePoint: p.bool(fields[0]),
		X:        p.float(fields[1]),
		Y:        p.float(fields[2]),
	}
	if p.err != nil {
		return nil, p.err
	}

	points, ok := sections[SectionPoints]
	if !ok {
		return nil, &SectionError{Section: SectionPoints, Err: errors.New("missing section")}
	}
	// The first line of the section is a column header.
	if len(points) > 0 {
		points = points[1:]
	}
	for _, l := range points {
		text := strings.TrimSpace(l.text)
		if text == "" {
			continue
		}
		nums := numberPattern.FindAllString(text, -1)
		if len(nums) != 3 {
			out.Skipped++
			beamer.Logger().Warn("scan: skipping unreadable scan point", "line", l.line, "text", text)
			continue
		}
		p = fieldParser{section: SectionPoints, line: l.line}
		x, y, z := p.float(nums[0]), p.float(nums[1]), p.float(nums[2])
		if p.err != nil {
			return nil, p.err
		}
		out.Points.X = append(out.Points.X, x)
		out.Points.Y = append(out.Points.Y, y)
		out.Points.Z = append(out.Points.Z, z)
	}

	return &out, nil
}

// splitSections groups lines between start_<Name> and end_<Name> markers.
func splitSections(r io.Reader) (map[string][]sectionLine, error) {
	sections := make(map[string][]sectionLine)
	sc := bufio.NewScanner(r)
	key := ""
	n := 0
	for sc.Scan() {
		n++
		text := sc.Text()
		switch {
		case key == "" && strings.Contains(text, "start_"):
			key = strings.TrimSpace(strings.Replace(text, "start_", "", 1))
			sections[key] = nil
		case key != "" && strings.Contains(text, "end_") && strings.Contains(text, key):
			key = ""
		case key != "":
			sections[key] = append(sections[key], sectionLine{text: text, line: n})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: read: %w", err)
	}
	return sections, nil
}

// firstFields returns the tab-separated fields of a section's first line.
func firstFields(sections map[string][]sectionLine, name string, want int) ([]string, int, error) {
	lines, ok := sections[name]
	if !ok || len(lines) == 0 {
		return nil, 0, &SectionError{Section: name, Err: errors.New("missing section")}
	}
	l := lines[0]
	fields := strings.Split(strings.TrimSpace(l.text), "\t")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < want {
		return nil, l.line, &SectionError{
			Section: name,
			Line:    l.line,
			Err:     fmt.Errorf("want %d fields, got %d", want, len(fields)),
		}
	}
	return fields, l.line, nil
}

// fieldParser converts fields and keeps the first error.
type fieldParser struct {
	section string
	line    int
	err     error
}

func (p *fieldParser) fail(err error) {
	if p.err == nil {
		p.err = &SectionError{Section: p.section, Line: p.line, Err: err}
	}
}

func (p *fieldParser) float(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(err)
	}
	return v
}

func (p *fieldParser) int(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		p.fail(err)
	}
	return v
}

func (p *fieldParser) bool(s string) bool {
	switch strings.ToLower(s) {
	case "t":
		return true
	case "f":
		return false
	}
	p.fail(fmt.Errorf("want T or F, got %q", s))
	return false
}
