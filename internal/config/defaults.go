package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/quadfall.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:  30,
			Height: 30,
		},
		Pacing: PacingConfig{
			Initial: 50 * time.Millisecond,
			Step:    10 * time.Microsecond,
			Floor:   16 * time.Millisecond,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
		Scores: ScoresConfig{
			Backend: BackendFile,
			File:    "~/.quadfall/highscores.txt",
			DB:      "~/.quadfall/quadfall.db",
			History: true,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MusicVolume:  -1.5,
			EffectVolume: 0,
		},
		Catalog: CatalogConfig{
			Name: "classic",
		},
	}
}
