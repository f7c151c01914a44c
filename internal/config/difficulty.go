package config

import (
	"fmt"
	"strings"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, s)
}

// InitialLevelForPreset returns where on the pacing curve a preset starts,
// from 0 (initial interval) to 1 (floor).
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.5
	default:
		return 0.0
	}
}

// StepScaleForPreset returns how fast a preset tightens the interval
// relative to the configured step.
func StepScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.5
	case DifficultyHard:
		return 2.0
	case DifficultyFixed:
		return 0.0
	default:
		return 1.0
	}
}

// ApplyPreset modifies the pacing based on a difficulty preset.
// Normal keeps the configured curve; fixed never speeds up.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset

	p := &cfg.Pacing
	span := p.Initial - p.Floor
	p.Initial -= time.Duration(InitialLevelForPreset(preset) * float64(span))
	p.Step = time.Duration(StepScaleForPreset(preset) * float64(p.Step))
}
