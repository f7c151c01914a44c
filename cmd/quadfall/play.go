package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/quadfall/internal/audio"
	"github.com/vovakirdan/quadfall/internal/config"
	"github.com/vovakirdan/quadfall/internal/core"
	"github.com/vovakirdan/quadfall/internal/games/quadfall"
	"github.com/vovakirdan/quadfall/internal/games/quadfall/field"
	"github.com/vovakirdan/quadfall/internal/platform/tui"
	"github.com/vovakirdan/quadfall/internal/registry"
)

var (
	flagDifficulty string
	flagCatalog    string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round of quadfall.

Controls:
  Arrows      - Steer the piece across its fall direction
  W/A/S/D     - Push the piece along its fall direction
  Space       - Rotate
  F           - Drop one step
  M           - Mute
  Enter/P/Esc - Start, pause and resume
  R           - Restart
  Ctrl+S      - Screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Speeds up at half the normal rate
  normal - The configured pacing
  hard   - Starts halfway to top speed and speeds up twice as fast
  fixed  - Never speeds up

Examples:
  quadfall play
  quadfall play --difficulty hard
  quadfall play --catalog mini --mute
  quadfall play --seed 42 --config ./my-quadfall.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagCatalog, "catalog", "", "Shape catalog (see 'quadfall catalogs')")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound muted")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		cfg.Difficulty.Preset = preset
	}
	if cfg.Difficulty.Preset != "" {
		config.ApplyPreset(&cfg, cfg.Difficulty.Preset)
	}
	if flagMute {
		cfg.Audio.Muted = true
	}

	catalog, err := resolveCatalog(cfg)
	if err != nil {
		return err
	}

	// Logs go to a file while the alternate screen is active.
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger, err := newLogger(logFile)
	if err != nil {
		return err
	}

	// Warn early, before the alternate screen hides it.
	needW, needH := tui.FrameSize(cfg.Board.Width, cfg.Board.Height)
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && (w < needW || h < needH+1) {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, a %dx%d board needs %dx%d\n",
			w, h, cfg.Board.Width, cfg.Board.Height, needW, needH+1)
	}

	store, err := openPersistence(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	sound := newAudio(cfg.Audio, flagSeed, logger)
	if c, ok := sound.(interface{ Close() }); ok {
		defer c.Close()
	}

	logger.Info("starting round", "catalog", catalog.Name(), "board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"difficulty", cfg.Difficulty.Preset, "seed", flagSeed)

	result, err := tui.Run(tui.Options{
		Round: quadfall.Config{
			RuntimeConfig: core.RuntimeConfig{
				Width:  cfg.Board.Width,
				Height: cfg.Board.Height,
				Seed:   flagSeed,
			},
			Catalog: catalog,
			Pacing: quadfall.Pacing{
				Initial: cfg.Pacing.Initial,
				Step:    cfg.Pacing.Step,
				Floor:   cfg.Pacing.Floor,
			},
		},
		Audio:         sound,
		Ranking:       store.ranking,
		History:       store.history,
		Logger:        logger,
		ScreenshotDir: filepath.Join(config.Dir(), "screenshots"),
	})
	if err != nil {
		return fmt.Errorf("running round: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Score %d · %d pieces · %s\n", result.Score, result.Pieces, result.Duration.Round(100*time.Millisecond))
	return nil
}

// resolveCatalog picks the custom catalog from the config, then the
// --catalog flag, then the configured name.
func resolveCatalog(cfg config.Config) (*field.Catalog, error) {
	if flagCatalog == "" {
		custom, err := cfg.Catalog.Custom()
		if err != nil {
			return nil, err
		}
		if custom != nil {
			return custom, nil
		}
	}

	name := flagCatalog
	if name == "" {
		name = cfg.Catalog.Name
	}
	if name == "" {
		name = quadfall.DefaultCatalog
	}
	if !registry.Exists(name) {
		return nil, fmt.Errorf("unknown catalog %q, run 'quadfall catalogs' to list them", name)
	}
	return registry.Create(name)
}

// openLogFile opens ~/.quadfall/quadfall.log for appending.
func openLogFile() (*os.File, error) {
	dir := config.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, "quadfall.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// newAudio starts the speaker, falling back to silence when audio is
// disabled or no output device is available.
func newAudio(cfg config.AudioConfig, seed int64, logger *log.Logger) quadfall.Audio {
	silent := func() quadfall.Audio {
		s := &audio.Silent{}
		if cfg.Muted {
			s.ToggleMute()
		}
		return s
	}
	if !cfg.Enabled {
		return silent()
	}

	p := audio.NewPlayer(audio.Options{
		MusicVolume:  cfg.MusicVolume,
		EffectVolume: cfg.EffectVolume,
		Muted:        cfg.Muted,
		Seed:         seed,
		Logger:       logger,
	})
	if err := p.Init(); err != nil {
		logger.Warn("audio unavailable, playing silently", "error", err)
		return silent()
	}
	return p
}
