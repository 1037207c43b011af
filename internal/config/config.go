// Package config loads the YAML run configuration used by the beamer CLI.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StageFileEnv names the environment variable consulted for the stage DXF
// overlay when the configuration does not set one.
const StageFileEnv = "STAGE_FILE"

// ErrInvalid is returned by Validate for unusable configurations.
var ErrInvalid = errors.New("config: invalid run configuration")

// SpotConfig describes the beam.
type SpotConfig struct {
	Diameter  float64 `yaml:"diameter"`
	Incidence float64 `yaml:"incidence"`
	Wrap      bool    `yaml:"wrap"`
}

// PatternConfig selects the scan positions: either a .SCAN or text export
// file, or inline coordinates. Offsets given here override those of a
// .SCAN file when OverrideOffsets is set.
type PatternConfig struct {
	ScanFile        string    `yaml:"scan_file"`
	X               []float64 `yaml:"x"`
	Y               []float64 `yaml:"y"`
	OffsetX         float64   `yaml:"offset_x"`
	OffsetY         float64   `yaml:"offset_y"`
	Theta           float64   `yaml:"theta"`
	OverrideOffsets bool      `yaml:"override_offsets"`
	// SampleRadius drops scan points outside this radius when positive.
	SampleRadius float64 `yaml:"sample_radius"`
}

// OverlayConfig lists the background drawings.
type OverlayConfig struct {
	StageFile string `yaml:"stage_file"`
}

// OutputConfig lists the artifacts written by a run.
type OutputConfig struct {
	PNG      string `yaml:"png"`
	SVG      string `yaml:"svg"`
	CSV      string `yaml:"csv"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Segments int    `yaml:"segments"`
}

// Config is a complete run configuration.
type Config struct {
	Spot      SpotConfig    `yaml:"spot"`
	Pattern   PatternConfig `yaml:"pattern"`
	Overlay   OverlayConfig `yaml:"overlay"`
	StyleFile string        `yaml:"style_file"`
	Output    OutputConfig  `yaml:"output"`
	Database  string        `yaml:"database"`
	Metrics   string        `yaml:"metrics_file"`
	// Workers is passed to beamer.WithWorkers; negative means GOMAXPROCS.
	Workers   int           `yaml:"workers"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Spot: SpotConfig{
			Diameter:  0.3,
			Incidence: 65,
		},
		Output: OutputConfig{
			Width:    800,
			Height:   600,
			Segments: 24,
		},
		Workers: 1,
	}
}

// Load reads a YAML run configuration. Keys absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read run config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse run config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv fills unset fields from the environment.
func (c *Config) ApplyEnv() {
	if c.Overlay.StageFile == "" {
		c.Overlay.StageFile = os.Getenv(StageFileEnv)
	}
}

// Validate checks the parts of the configuration that are not checked by
// the geometry constructors themselves.
func (c Config) Validate() error {
	if c.Pattern.ScanFile != "" && len(c.Pattern.X) > 0 {
		return fmt.Errorf("%w: pattern has both scan_file and inline points", ErrInvalid)
	}
	if len(c.Pattern.X) != len(c.Pattern.Y) {
		return fmt.Errorf("%w: pattern x has %d values, y has %d", ErrInvalid, len(c.Pattern.X), len(c.Pattern.Y))
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("%w: output size %dx%d", ErrInvalid, c.Output.Width, c.Output.Height)
	}
	if c.Output.Segments < 3 {
		return fmt.Errorf("%w: outline segments %d, need at least 3", ErrInvalid, c.Output.Segments)
	}
	if c.Pattern.SampleRadius < 0 {
		return fmt.Errorf("%w: negative sample radius %g", ErrInvalid, c.Pattern.SampleRadius)
	}
	return nil
}
