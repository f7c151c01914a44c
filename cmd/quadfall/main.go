// quadfall is a falling-block puzzle for the terminal where pieces drop
// towards the centre from all four edges.
//
// Usage:
//
//	quadfall play            - Play a round
//	quadfall scores          - Show the ranking and round history
//	quadfall catalogs        - List available shape catalogs
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible rounds
//	--config <path>       - Use a specific config file
//	--db <path>           - Set database path (default: ~/.quadfall/quadfall.db)
//	--scores-file <path>  - Set ranking file path (default: ~/.quadfall/highscores.txt)
//	--backend <name>      - Ranking backend: file or sqlite
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/quadfall/internal/config"
	"github.com/vovakirdan/quadfall/internal/scores"
	"github.com/vovakirdan/quadfall/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagConfig     string
	flagDBPath     string
	flagScoresFile string
	flagBackend    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quadfall",
	Short: "Quadfall - falling blocks from every edge",
	Long: `Quadfall is a terminal falling-block puzzle. Pieces enter from all
four edges and fall towards the centre. A piece that comes to rest
outside the playfield window ends the round.

Available commands:
  play      - Play a round
  scores    - View the ranking and round history
  catalogs  - Show available shape catalogs

Examples:
  quadfall play
  quadfall play --difficulty hard --catalog mini
  quadfall scores
  quadfall --backend sqlite play`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to SQLite database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagScoresFile, "scores-file", "", "Path to ranking file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Ranking backend: file, sqlite (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(catalogsCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "quadfall",
		Level:           level,
	}), nil
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Scores.DB = flagDBPath
	}
	if flagScoresFile != "" {
		cfg.Scores.File = flagScoresFile
	}
	if flagBackend != "" {
		cfg.Scores.Backend = flagBackend
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// persistence is the ranking plus the optional round history.
type persistence struct {
	ranking *scores.Ranking
	history *storage.Store
	store   *storage.Store
}

// Close releases the database, if one was opened.
func (p *persistence) Close() {
	if p.store != nil {
		p.store.Close()
	}
}

// openPersistence opens the ranking backend and, when the config asks for
// it, the round history. A history database that cannot be opened is only
// fatal when it also backs the ranking.
func openPersistence(cfg config.Config, logger *log.Logger) (*persistence, error) {
	p := &persistence{}

	if cfg.Scores.Backend == config.BackendSQLite || cfg.Scores.History {
		store, err := storage.Open(cfg.Scores.DB)
		switch {
		case err == nil:
			p.store = store
		case cfg.Scores.Backend == config.BackendSQLite:
			return nil, err
		default:
			logger.Warn("could not open history database", "path", cfg.Scores.DB, "error", err)
		}
	}
	if cfg.Scores.History {
		p.history = p.store
	}

	var backend scores.Backend
	if cfg.Scores.Backend == config.BackendSQLite {
		backend = p.store
	} else {
		backend = scores.NewFileBackend(config.ExpandHome(cfg.Scores.File))
	}

	ranking, err := scores.NewRanking(backend, logger)
	if err != nil {
		p.Close()
		return nil, err
	}
	p.ranking = ranking
	return p, nil
}

var errNoTerminal = errors.New("stdout is not a terminal")
