// Command beamer computes the footprint of an ellipsometer beam over a scan
// pattern, prints a summary, and optionally renders and records the run.
//
// Usage:
//
//	beamer -scan wafer.SCAN -diameter 0.3 -incidence 65 -png map.png
//	beamer -config run.yaml -svg map.svg -db runs.db
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/beamer"
	"github.com/gogpu/beamer/internal/config"
	"github.com/gogpu/beamer/internal/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "beamer:", err)
		os.Exit(1)
	}
}

// run is main without process exit, so it can be driven from tests.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, verbose, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	beamer.SetLogger(logger)
	defer beamer.SetLogger(nil)

	var collector *metrics.Collector
	if cfg.Metrics != "" {
		if collector, err = metrics.NewCollector(nil); err != nil {
			return err
		}
	}

	res, err := analyze(ctx, cfg, collector)
	collector.ObserveError(err)
	if cfg.Metrics != "" {
		if werr := collector.WriteTextfile(cfg.Metrics); werr != nil {
			logger.Error("metrics not written", "path", cfg.Metrics, "error", werr)
		}
	}
	if err != nil {
		return err
	}

	return printSummary(stdout, res)
}

// parseFlags loads the configuration file named by -config, if any, and
// applies every flag given explicitly on top of it.
func parseFlags(args []string, stderr io.Writer) (config.Config, bool, error) {
	fs := flag.NewFlagSet("beamer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := config.Default()
	var (
		configPath = fs.String("config", "", "YAML run configuration")
		scanFile   = fs.String("scan", "", "scan pattern file (.SCAN or text export .txt)")
		diameter   = fs.Float64("diameter", def.Spot.Diameter, "beam diameter in mm")
		incidence  = fs.Float64("incidence", def.Spot.Incidence, "angle of incidence in degrees")
		wrap       = fs.Bool("wrap", false, "wrap incidence angles modulo 90 instead of rejecting them")
		dx         = fs.Float64("dx", 0, "x offset of the sample in the instrument frame")
		dy         = fs.Float64("dy", 0, "y offset of the sample in the instrument frame")
		theta      = fs.Float64("theta", 0, "rotation of the sample in degrees")
		radius     = fs.Float64("radius", 0, "keep only scan points within this radius")
		dxfFile    = fs.String("dxf", "", "stage drawing (.dxf) to overlay")
		styleFile  = fs.String("styles", "", "YAML style templates")
		pngFile    = fs.String("png", "", "write a PNG map to this path")
		svgFile    = fs.String("svg", "", "write an SVG map to this path")
		csvFile    = fs.String("csv", "", "write footprint centers to this CSV path")
		width      = fs.Int("width", def.Output.Width, "map width in pixels")
		height     = fs.Int("height", def.Output.Height, "map height in pixels")
		segments   = fs.Int("segments", def.Output.Segments, "samples per footprint outline")
		dbPath     = fs.String("db", "", "SQLite database recording each run")
		metricsOut = fs.String("metrics", "", "write Prometheus metrics to this textfile")
		workers    = fs.Int("workers", def.Workers, "outline workers (negative: one per CPU)")
		verbose    = fs.Bool("v", false, "verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		return config.Config{}, false, err
	}
	if fs.NArg() > 0 {
		return config.Config{}, false, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return config.Config{}, false, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scan":
			cfg.Pattern.ScanFile = *scanFile
			cfg.Pattern.X, cfg.Pattern.Y = nil, nil
		case "diameter":
			cfg.Spot.Diameter = *diameter
		case "incidence":
			cfg.Spot.Incidence = *incidence
		case "wrap":
			cfg.Spot.Wrap = *wrap
		case "dx":
			cfg.Pattern.OffsetX = *dx
			cfg.Pattern.OverrideOffsets = true
		case "dy":
			cfg.Pattern.OffsetY = *dy
			cfg.Pattern.OverrideOffsets = true
		case "theta":
			cfg.Pattern.Theta = *theta
			cfg.Pattern.OverrideOffsets = true
		case "radius":
			cfg.Pattern.SampleRadius = *radius
		case "dxf":
			cfg.Overlay.StageFile = *dxfFile
		case "styles":
			cfg.StyleFile = *styleFile
		case "png":
			cfg.Output.PNG = *pngFile
		case "svg":
			cfg.Output.SVG = *svgFile
		case "csv":
			cfg.Output.CSV = *csvFile
		case "width":
			cfg.Output.Width = *width
		case "height":
			cfg.Output.Height = *height
		case "segments":
			cfg.Output.Segments = *segments
		case "db":
			cfg.Database = *dbPath
		case "metrics":
			cfg.Metrics = *metricsOut
		case "workers":
			cfg.Workers = *workers
		}
	})
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return config.Config{}, false, err
	}
	return cfg, *verbose, nil
}
