package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/beamer"
)

var printer = message.NewPrinter(language.English)

// caption is the one-line description drawn under the map.
func caption(f *beamer.Field) string {
	s := f.Spot()
	return printer.Sprintf("%d points, %.2f mm spot at %.1f°, coverage %.3f mm²",
		f.Count(), s.Diameter(), s.Incidence(), f.Coverage())
}

func printSummary(w io.Writer, res *result) error {
	f, s := res.Field, res.Field.Spot()
	_, err := printer.Fprintf(w, `source:      %s
points:      %d
incidence:   %.2f°
diameter:    %.4f mm
elongation:  %.4f mm
spot area:   %.4f mm²
coverage:    %.4f mm²
`, res.Source, f.Count(), s.Incidence(), s.Diameter(), s.Elongation(), s.Area(), f.Coverage())
	if err != nil {
		return err
	}
	if res.Skipped > 0 {
		if _, err := printer.Fprintf(w, "skipped:     %d lines\n", res.Skipped); err != nil {
			return err
		}
	}
	if res.RunID != "" {
		if _, err := fmt.Fprintf(w, "run:         %s\n", res.RunID); err != nil {
			return err
		}
	}
	for _, path := range res.Written {
		if _, err := fmt.Fprintf(w, "wrote:       %s\n", path); err != nil {
			return err
		}
	}
	return nil
}

// writeCenters writes one row per footprint: index, center, and the axes
// of the footprint ellipse.
func writeCenters(w io.Writer, f *beamer.Field) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"n", "x", "y", "width", "height"}); err != nil {
		return err
	}
	spot := f.Spot()
	width := strconv.FormatFloat(spot.Elongation(), 'g', -1, 64)
	height := strconv.FormatFloat(spot.Diameter(), 'g', -1, 64)
	for i, c := range f.Centers() {
		rec := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(c.X, 'g', -1, 64),
			strconv.FormatFloat(c.Y, 'g', -1, 64),
			width,
			height,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeCentersFile(path string, f *beamer.Field) (err error) {
	out, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("csv: %w", cerr)
		}
	}()
	if err := writeCenters(out, f); err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	beamer.Logger().Debug("centers exported", "path", path, "rows", f.Count())
	return nil
}
