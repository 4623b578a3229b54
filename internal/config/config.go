// Package config loads pdfxlsx settings from a yaml file, PDFXLSX_*
// environment variables and command-line flags through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/tsawler/pdfxlsx/extract"
	"github.com/tsawler/pdfxlsx/internal/logging"
	"github.com/tsawler/pdfxlsx/xlsx"
)

// Name is the config file base name and EnvPrefix the environment prefix:
// log.level is read from PDFXLSX_LOG_LEVEL.
const (
	Name      = "pdfxlsx"
	EnvPrefix = "PDFXLSX"
)

// Config is the full set of settings.
type Config struct {
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Detection DetectionConfig `yaml:"detection" mapstructure:"detection"`
	Export    ExportConfig    `yaml:"export" mapstructure:"export"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// OutputConfig selects the sheet policy.
type OutputConfig struct {
	SheetPerGroup bool   `yaml:"sheet_per_group" mapstructure:"sheet_per_group"`
	SheetName     string `yaml:"sheet_name" mapstructure:"sheet_name"`
}

// DetectionConfig tunes table detection.
type DetectionConfig struct {
	Strategy           string  `yaml:"strategy" mapstructure:"strategy"`
	MinRows            int     `yaml:"min_rows" mapstructure:"min_rows"`
	MinCols            int     `yaml:"min_cols" mapstructure:"min_cols"`
	MinConfidence      float64 `yaml:"min_confidence" mapstructure:"min_confidence"`
	AlignmentTolerance float64 `yaml:"alignment_tolerance" mapstructure:"alignment_tolerance"`
	LineTolerance      float64 `yaml:"line_tolerance" mapstructure:"line_tolerance"`
	MinGridConfidence  float64 `yaml:"min_grid_confidence" mapstructure:"min_grid_confidence"`
}

// ExportConfig tunes the worksheet layout.
type ExportConfig struct {
	ColumnPadding float64 `yaml:"column_padding" mapstructure:"column_padding"`
	LineHeight    float64 `yaml:"line_height" mapstructure:"line_height"`
}

// LogConfig configures the command's logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	ec := extract.DefaultConfig()
	xo := xlsx.DefaultOptions()
	return Config{
		Output: OutputConfig{
			SheetPerGroup: false,
			SheetName:     "Combined_Table",
		},
		Detection: DetectionConfig{
			Strategy:           string(ec.Strategy),
			MinRows:            ec.Detector.MinRows,
			MinCols:            ec.Detector.MinCols,
			MinConfidence:      ec.Detector.MinConfidence,
			AlignmentTolerance: ec.Detector.AlignmentTolerance,
			LineTolerance:      ec.LineTolerance,
			MinGridConfidence:  ec.MinGridConfidence,
		},
		Export: ExportConfig{
			ColumnPadding: xo.ColumnPadding,
			LineHeight:    xo.LineHeight,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}

// SetDefaults registers every key with its default value, so that
// environment variables are seen for keys absent from the config file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("output.sheet_per_group", d.Output.SheetPerGroup)
	v.SetDefault("output.sheet_name", d.Output.SheetName)
	v.SetDefault("detection.strategy", d.Detection.Strategy)
	v.SetDefault("detection.min_rows", d.Detection.MinRows)
	v.SetDefault("detection.min_cols", d.Detection.MinCols)
	v.SetDefault("detection.min_confidence", d.Detection.MinConfidence)
	v.SetDefault("detection.alignment_tolerance", d.Detection.AlignmentTolerance)
	v.SetDefault("detection.line_tolerance", d.Detection.LineTolerance)
	v.SetDefault("detection.min_grid_confidence", d.Detection.MinGridConfidence)
	v.SetDefault("export.column_padding", d.Export.ColumnPadding)
	v.SetDefault("export.line_height", d.Export.LineHeight)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads the settings held by v, with PDFXLSX_* environment variables
// taking precedence over the config file, and validates them.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := extract.ParseStrategy(c.Detection.Strategy); err != nil {
		return fmt.Errorf("detection.strategy: %w", err)
	}
	if c.Detection.MinRows < 1 {
		return fmt.Errorf("detection.min_rows must be at least 1, got %d", c.Detection.MinRows)
	}
	if c.Detection.MinCols < 1 {
		return fmt.Errorf("detection.min_cols must be at least 1, got %d", c.Detection.MinCols)
	}
	if c.Detection.MinConfidence < 0 || c.Detection.MinConfidence > 1 {
		return fmt.Errorf("detection.min_confidence must be between 0 and 1, got %v", c.Detection.MinConfidence)
	}
	if c.Detection.MinGridConfidence < 0 || c.Detection.MinGridConfidence > 1 {
		return fmt.Errorf("detection.min_grid_confidence must be between 0 and 1, got %v", c.Detection.MinGridConfidence)
	}
	if c.Export.ColumnPadding < 0 {
		return fmt.Errorf("export.column_padding must not be negative, got %v", c.Export.ColumnPadding)
	}
	if c.Export.LineHeight <= 0 {
		return fmt.Errorf("export.line_height must be positive, got %v", c.Export.LineHeight)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logging.Formatter(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}

// ExtractConfig converts the detection section to extraction settings.
func (c Config) ExtractConfig() (extract.Config, error) {
	strategy, err := extract.ParseStrategy(c.Detection.Strategy)
	if err != nil {
		return extract.Config{}, err
	}
	cfg := extract.DefaultConfig()
	cfg.Strategy = strategy
	cfg.Detector.MinRows = c.Detection.MinRows
	cfg.Detector.MinCols = c.Detection.MinCols
	cfg.Detector.MinConfidence = c.Detection.MinConfidence
	cfg.Detector.AlignmentTolerance = c.Detection.AlignmentTolerance
	cfg.LineTolerance = c.Detection.LineTolerance
	cfg.MinGridConfidence = c.Detection.MinGridConfidence
	return cfg, nil
}

// ExportOptions converts the export section to worksheet layout options.
func (c Config) ExportOptions() xlsx.Options {
	return xlsx.Options{
		ColumnPadding: c.Export.ColumnPadding,
		LineHeight:    c.Export.LineHeight,
	}
}

// Marshal renders the settings as yaml.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// ErrExists is returned by WriteFile when the target already exists.
var ErrExists = errors.New("config file already exists")

// WriteFile writes c as yaml to path. It refuses to replace an existing
// file.
func WriteFile(path string, c Config) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return fmt.Errorf("failed to create config file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return f.Close()
}
