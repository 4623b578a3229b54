package extract

import (
	"fmt"
	"strings"

	"github.com/tsawler/tabula/tables"
)

// Strategy selects which detection passes run on a page.
type Strategy string

const (
	// StrategyAuto finds ruled grids first and runs text-alignment detection
	// on whatever text the grids did not claim.
	StrategyAuto Strategy = "auto"
	// StrategyLines only accepts tables outlined by ruling lines.
	StrategyLines Strategy = "lines"
	// StrategyText ignores ruling lines and detects tables from text
	// alignment alone.
	StrategyText Strategy = "text"
)

// ParseStrategy converts a strategy name to a Strategy. Matching is
// case-insensitive and an empty name means StrategyAuto.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(name))); s {
	case "":
		return StrategyAuto, nil
	case StrategyAuto, StrategyLines, StrategyText:
		return s, nil
	default:
		return "", fmt.Errorf("unknown detection strategy %q (want auto, lines or text)", name)
	}
}

func (s Strategy) useLines() bool { return s != StrategyText }
func (s Strategy) useText() bool  { return s != StrategyLines }

// Config controls table detection.
type Config struct {
	Strategy Strategy

	// Detector configures the text-alignment pass.
	Detector tables.Config

	// LineTolerance is the vertical distance, in points, within which
	// fragments of a ruled cell are treated as one visual line.
	LineTolerance float64

	// MinGridConfidence is the lowest grid detector confidence (0-1) for a
	// ruled grid to be accepted as a table.
	MinGridConfidence float64
}

// DefaultConfig returns the default detection settings.
func DefaultConfig() Config {
	return Config{
		Strategy:          StrategyAuto,
		Detector:          tables.DefaultConfig(),
		LineTolerance:     2.0,
		MinGridConfidence: 0.3,
	}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if _, err := ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}
	if c.LineTolerance < 0 {
		return fmt.Errorf("line tolerance must not be negative, got %v", c.LineTolerance)
	}
	if c.MinGridConfidence < 0 || c.MinGridConfidence > 1 {
		return fmt.Errorf("minimum grid confidence must be between 0 and 1, got %v", c.MinGridConfidence)
	}
	if c.Detector.MinRows < 1 || c.Detector.MinCols < 1 {
		return fmt.Errorf("minimum rows and columns must be at least 1")
	}
	return nil
}
