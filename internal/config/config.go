// Package config provides YAML-based configuration loading for the
// falling-block game: well size, fall cadence and the piece table.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// BlocksConfig contains all configuration for the falling-block game.
type BlocksConfig struct {
	Grid   GridConfig    `yaml:"grid"`
	Timing TimingConfig  `yaml:"timing"`
	Pieces []PieceConfig `yaml:"pieces"`
}

// GridConfig defines the well dimensions in cells.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// TimingConfig defines the gravity cadence.
type TimingConfig struct {
	FallIntervalMS int `yaml:"fall_interval_ms"` // Time between automatic fall steps
}

// PieceConfig describes one entry of the piece table.
// Shape rows use 'X' or '#' for filled cells and '.' or ' ' for empty ones.
type PieceConfig struct {
	Name  string   `yaml:"name"`
	Color string   `yaml:"color"`
	Shape []string `yaml:"shape,flow"`
}

// FallInterval returns the gravity period as a duration.
func (c BlocksConfig) FallInterval() time.Duration {
	return time.Duration(c.Timing.FallIntervalMS) * time.Millisecond
}

// Variants converts the piece table to engine variants.
// Pieces receive ids 1..n in table order.
func (c BlocksConfig) Variants() ([]engine.Variant, error) {
	if len(c.Pieces) == 0 {
		return nil, errors.New("config: piece table is empty")
	}
	if len(c.Pieces) > math.MaxUint8 {
		return nil, fmt.Errorf("config: too many pieces (%d > %d)", len(c.Pieces), math.MaxUint8)
	}

	variants := make([]engine.Variant, 0, len(c.Pieces))
	for i, p := range c.Pieces {
		id := engine.Cell(i + 1)
		shape, err := engine.ParseShape(p.Shape, id)
		if err != nil {
			return nil, fmt.Errorf("config: piece %d (%s): %w", i, p.Name, err)
		}
		variants = append(variants, engine.Variant{ID: id, Name: p.Name, Shape: shape})
	}
	return variants, nil
}

// Palette maps each piece id to its configured color.
func (c BlocksConfig) Palette() (map[engine.Cell]core.Color, error) {
	palette := make(map[engine.Cell]core.Color, len(c.Pieces))
	for i, p := range c.Pieces {
		color, ok := core.ParseColor(p.Color)
		if !ok {
			return nil, fmt.Errorf("config: piece %d (%s): unknown color %q", i, p.Name, p.Color)
		}
		palette[engine.Cell(i+1)] = color
	}
	return palette, nil
}

// Validate checks that the configuration can build a game.
func (c BlocksConfig) Validate() error {
	if c.Grid.Rows < 1 || c.Grid.Cols < 1 {
		return fmt.Errorf("config: invalid grid size %dx%d", c.Grid.Rows, c.Grid.Cols)
	}
	if c.Timing.FallIntervalMS <= 0 {
		return fmt.Errorf("config: fall_interval_ms must be positive, got %d", c.Timing.FallIntervalMS)
	}

	variants, err := c.Variants()
	if err != nil {
		return err
	}
	if err := engine.ValidateVariants(variants, c.Grid.Cols); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for _, v := range variants {
		if v.Shape.Height() > c.Grid.Rows {
			return fmt.Errorf("config: piece %s is taller than the grid (%d > %d)", v.Name, v.Shape.Height(), c.Grid.Rows)
		}
	}

	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// Options builds engine controller options seeded with the given source.
func (c BlocksConfig) Options(src engine.Source) (engine.Options, error) {
	if err := c.Validate(); err != nil {
		return engine.Options{}, err
	}
	variants, err := c.Variants()
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		Rows:     c.Grid.Rows,
		Cols:     c.Grid.Cols,
		Variants: variants,
		Source:   src,
	}, nil
}
