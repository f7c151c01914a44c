package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/quadfall/internal/platform/tui"
	"github.com/vovakirdan/quadfall/internal/scores"
	"github.com/vovakirdan/quadfall/internal/storage"
)

var (
	flagPlain        bool
	flagClearHistory bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the ranking and round history",
	Long: `Display the top 10 ranking and, when round history is enabled,
aggregate statistics and recent rounds.

In a terminal this opens an interactive scoreboard; use --plain for
text output.

Examples:
  quadfall scores
  quadfall scores --plain
  quadfall --backend sqlite scores
  quadfall scores --clear-history`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain text instead of the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClearHistory, "clear-history", false, "Delete all recorded rounds")
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	store, err := openPersistence(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClearHistory {
		if store.history == nil {
			return fmt.Errorf("round history is not enabled")
		}
		if err := store.history.ClearRounds(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Round history cleared.")
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store.ranking, store.history, width, height)
	}

	return printScores(cmd.OutOrStdout(), store.ranking, store.history)
}

// printScores writes the ranking, the history stats and the most recent
// rounds as plain text.
func printScores(w io.Writer, ranking *scores.Ranking, history *storage.Store) error {
	fmt.Fprintln(w, "Ranking")
	fmt.Fprintln(w)

	list := ranking.Read()
	if list[0] == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'quadfall play' to set the first high score!")
	} else {
		fmt.Fprintf(w, "  %-4s  %s\n", "Rank", "Score")
		fmt.Fprintf(w, "  %-4s  %s\n", "----", "-----")
		for i, s := range list {
			fmt.Fprintf(w, "  %-4d  %d\n", i+1, s)
		}
	}

	if history == nil {
		return nil
	}

	stats, err := history.Stats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if stats.Rounds == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Rounds: %d  Best: %d  Average: %.1f  Pieces: %d  Time: %s\n",
		stats.Rounds, stats.HighScore, stats.AvgScore, stats.TotalPieces, stats.TotalTime.Round(time.Second))
	fmt.Fprintf(w, "Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))

	rounds, err := history.RecentRounds(10)
	if err != nil {
		return fmt.Errorf("retrieving rounds: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent rounds")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-16s  %-6s  %-6s  %-8s  %s\n", "Date", "Score", "Pieces", "Time", "Shapes")
	fmt.Fprintf(w, "  %-16s  %-6s  %-6s  %-8s  %s\n", "----", "-----", "------", "----", "------")
	for _, r := range rounds {
		fmt.Fprintf(w, "  %-16s  %-6d  %-6d  %-8s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Score, r.Pieces, r.Duration.Round(100*time.Millisecond), r.Catalog)
	}
	return nil
}
