// Package config provides YAML-based configuration loading and difficulty
// presets for quadfall.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/quadfall/internal/games/quadfall/field"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config contains all configuration for quadfall.
type Config struct {
	Board      BoardConfig      `yaml:"board"`
	Pacing     PacingConfig     `yaml:"pacing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Scores     ScoresConfig     `yaml:"scores"`
	Audio      AudioConfig      `yaml:"audio"`
	Catalog    CatalogConfig    `yaml:"catalog"`
}

// BoardConfig defines the board size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PacingConfig defines the tick interval curve.
type PacingConfig struct {
	Initial time.Duration `yaml:"initial"`
	Step    time.Duration `yaml:"step"`
	Floor   time.Duration `yaml:"floor"`
}

// DifficultyConfig selects a named pacing preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// Score backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ScoresConfig defines where the ranking and round history are kept.
type ScoresConfig struct {
	Backend string `yaml:"backend"` // "file" or "sqlite"
	File    string `yaml:"file"`    // ranking line for the file backend
	DB      string `yaml:"db"`      // SQLite database, also used for round history
	History bool   `yaml:"history"` // record finished rounds in the database
}

// AudioConfig defines sound output. Volumes are relative, base 2:
// 0 is unchanged, -1 is half as loud.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Muted        bool    `yaml:"muted"`
	MusicVolume  float64 `yaml:"music_volume"`
	EffectVolume float64 `yaml:"effect_volume"`
}

// CatalogConfig selects a registered catalog, or defines a custom one when
// Shapes is not empty.
type CatalogConfig struct {
	Name   string        `yaml:"name"`
	Shapes []ShapeConfig `yaml:"shapes"`
}

// ShapeConfig is one custom shape, drawn as rows of '#' and '.'.
type ShapeConfig struct {
	Name string   `yaml:"name"`
	Tag  int      `yaml:"tag"` // 1..7 picks a palette color; 0 cycles
	Rows []string `yaml:"rows"`
}

// Custom builds the custom catalog. It returns nil when no shapes are
// configured.
func (c CatalogConfig) Custom() (*field.Catalog, error) {
	if len(c.Shapes) == 0 {
		return nil, nil
	}

	name := c.Name
	if name == "" {
		name = "custom"
	}

	templates := make([]field.Template, 0, len(c.Shapes))
	for i, s := range c.Shapes {
		tag := s.Tag
		if tag <= 0 || tag > int(field.TagZ) {
			tag = i%int(field.TagZ) + 1
		}
		shapeName := s.Name
		if shapeName == "" {
			shapeName = fmt.Sprintf("shape%d", i+1)
		}
		t, err := field.ParseTemplate(shapeName, field.Cell(tag), s.Rows...)
		if err != nil {
			return nil, fmt.Errorf("config: catalog %s: %w", name, err)
		}
		templates = append(templates, t)
	}
	return field.NewCatalog(name, templates...)
}

// Validate reports the first unusable value.
func (c Config) Validate() error {
	switch {
	case c.Board.Width <= 0 || c.Board.Height <= 0:
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	case c.Pacing.Floor <= 0:
		return fmt.Errorf("%w: pacing floor %v must be positive", ErrInvalidConfig, c.Pacing.Floor)
	case c.Pacing.Initial < c.Pacing.Floor:
		return fmt.Errorf("%w: pacing initial %v below floor %v", ErrInvalidConfig, c.Pacing.Initial, c.Pacing.Floor)
	case c.Pacing.Step < 0:
		return fmt.Errorf("%w: pacing step %v is negative", ErrInvalidConfig, c.Pacing.Step)
	case c.Scores.Backend != BackendFile && c.Scores.Backend != BackendSQLite:
		return fmt.Errorf("%w: scores backend %q", ErrInvalidConfig, c.Scores.Backend)
	case c.Audio.MusicVolume < -10 || c.Audio.MusicVolume > 2:
		return fmt.Errorf("%w: music volume %v", ErrInvalidConfig, c.Audio.MusicVolume)
	case c.Audio.EffectVolume < -10 || c.Audio.EffectVolume > 2:
		return fmt.Errorf("%w: effect volume %v", ErrInvalidConfig, c.Audio.EffectVolume)
	}
	if c.Difficulty.Preset != "" {
		if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
			return err
		}
	}
	if _, err := c.Catalog.Custom(); err != nil {
		return err
	}
	return nil
}
