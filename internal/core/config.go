package core

// RuntimeConfig contains configuration passed to a round at initialization.
type RuntimeConfig struct {
	Width  int   // Board width in cells
	Height int   // Board height in cells
	Seed   int64 // RNG seed for deterministic piece sequences
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Width:  30,
		Height: 30,
		Seed:   0, // 0 means use current time in platform layer
	}
}

// GameState represents the externally visible status of a round.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the round has ended
	Paused   bool // Whether the round is paused
}
