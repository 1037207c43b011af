package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/beamer"
	"github.com/gogpu/beamer/cad"
	"github.com/gogpu/beamer/internal/config"
	"github.com/gogpu/beamer/internal/metrics"
	"github.com/gogpu/beamer/render"
	_ "github.com/gogpu/beamer/render/raster" // registers "png"
	_ "github.com/gogpu/beamer/render/svg"    // registers "svg"
	"github.com/gogpu/beamer/scan"
	"github.com/gogpu/beamer/store"
	"github.com/gogpu/beamer/style"
)

// result is what one analysis produced.
type result struct {
	Source  string
	Field   *beamer.Field
	Skipped int
	RunID   string
	Written []string
}

// source is the scan pattern plus the optional sample outline that came
// with it.
type source struct {
	name    string
	pattern *beamer.ScanPattern
	sample  beamer.Shape
	skipped int
}

func analyze(ctx context.Context, cfg config.Config, collector *metrics.Collector) (*result, error) {
	start := time.Now()

	src, err := loadPattern(cfg.Pattern)
	if err != nil {
		return nil, err
	}

	var spotOpts []beamer.SpotOption
	if cfg.Spot.Wrap {
		spotOpts = append(spotOpts, beamer.WithIncidenceWrap())
	}
	spot, err := beamer.NewSpot(cfg.Spot.Diameter, cfg.Spot.Incidence, spotOpts...)
	if err != nil {
		return nil, err
	}

	field := beamer.NewField(src.pattern, spot,
		beamer.WithWorkers(cfg.Workers),
		beamer.WithOutlineOptions(beamer.WithSegments(cfg.Output.Segments)))

	res := &result{Source: src.name, Field: field, Skipped: src.skipped}

	if cfg.Output.PNG != "" || cfg.Output.SVG != "" {
		scene, err := buildScene(cfg, src, field)
		if err != nil {
			return nil, err
		}
		collector.ObserveOutlines(field.Count())
		for _, out := range []struct{ backend, path string }{
			{"png", cfg.Output.PNG},
			{"svg", cfg.Output.SVG},
		} {
			if out.path == "" {
				continue
			}
			if err := render.RenderFile(out.backend, scene, out.path); err != nil {
				return nil, err
			}
			res.Written = append(res.Written, out.path)
		}
	}

	if cfg.Output.CSV != "" {
		if err := writeCentersFile(cfg.Output.CSV, field); err != nil {
			return nil, err
		}
		res.Written = append(res.Written, cfg.Output.CSV)
	}

	if cfg.Database != "" {
		if res.RunID, err = saveRun(ctx, cfg.Database, src.name, field); err != nil {
			return nil, err
		}
	}

	collector.ObserveRun(field, time.Since(start))
	return res, nil
}

// loadPattern reads the scan pattern named by the configuration, or builds
// it from inline coordinates.
func loadPattern(pc config.PatternConfig) (source, error) {
	offset := beamer.Pt(pc.OffsetX, pc.OffsetY)
	var (
		src source
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(pc.ScanFile)); {
	case pc.ScanFile == "":
		src.name = "inline"
		src.pattern, err = beamer.NewScanPattern(pc.X, pc.Y, offset, pc.Theta)
	case ext == ".scan":
		var f *scan.File
		if f, err = scan.ReadScanFile(pc.ScanFile); err != nil {
			return source{}, err
		}
		src.name, src.skipped = filepath.Base(pc.ScanFile), f.Skipped
		if src.sample, err = f.Substrate.Outline(); err != nil {
			return source{}, err
		}
		src.pattern, err = f.Pattern()
		if err == nil && pc.OverrideOffsets {
			src.pattern, err = src.pattern.WithOffset(offset, pc.Theta)
		}
	case ext == ".txt":
		var t *scan.Table
		if t, err = scan.ReadTextFile(pc.ScanFile); err != nil {
			return source{}, err
		}
		src.name = filepath.Base(pc.ScanFile)
		src.pattern, err = t.Pattern(offset, pc.Theta)
	default:
		return source{}, fmt.Errorf("%w: %q", scan.ErrUnsupported, pc.ScanFile)
	}
	if err != nil {
		return source{}, err
	}
	if pc.SampleRadius > 0 {
		src.pattern = src.pattern.Within(pc.SampleRadius)
	}
	return src, nil
}

// buildScene assembles the map: stage overlay, sample outline, footprints
// and scan point markers.
func buildScene(cfg config.Config, src source, field *beamer.Field) (*render.Scene, error) {
	templates := style.Defaults()
	if cfg.StyleFile != "" {
		var err error
		if templates, err = style.LoadTemplates(cfg.StyleFile); err != nil {
			return nil, err
		}
	}

	scene := render.NewScene(cfg.Output.Width, cfg.Output.Height)
	scene.Caption = caption(field)

	if cfg.Overlay.StageFile != "" {
		d, err := cad.ReadFile(cfg.Overlay.StageFile)
		if err != nil {
			return nil, err
		}
		scene.Add(render.Layer{Name: "stage", Style: templates.Stage, Outlines: d.Outlines()})
	}
	if src.sample != nil {
		scene.Add(render.Layer{
			Name:     "sample",
			Style:    templates.Sample,
			Outlines: []beamer.PointSequence{src.sample.Outline(beamer.WithSegments(cfg.Output.Segments))},
			Closed:   true,
		})
	}
	scene.Add(render.Layer{
		Name:     "spot",
		Style:    templates.Spot,
		Outlines: field.OutlinePoints(),
		Closed:   true,
	})
	scene.Add(render.Layer{
		Name:    "points",
		Style:   templates.Points,
		Markers: field.Centers(),
	})
	return scene, nil
}

func saveRun(ctx context.Context, path, name string, field *beamer.Field) (string, error) {
	db, err := store.Open(ctx, path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = db.Close()
	}()
	run, err := db.SaveRun(ctx, store.NewRun(name, field))
	if err != nil {
		return "", err
	}
	return run.ID, nil
}
