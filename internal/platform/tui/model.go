package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/quadfall/internal/audio"
	"github.com/vovakirdan/quadfall/internal/core"
	"github.com/vovakirdan/quadfall/internal/games/quadfall"
	"github.com/vovakirdan/quadfall/internal/scores"
	"github.com/vovakirdan/quadfall/internal/storage"
)

// ErrNoRanking is returned when a session is started without a ranking.
var ErrNoRanking = errors.New("tui: ranking is required")

// Options configures a play session.
type Options struct {
	Round   quadfall.Config
	Audio   quadfall.Audio  // nil plays nothing
	Ranking *scores.Ranking // required
	History *storage.Store  // nil disables round history
	Logger  *log.Logger
	// ScreenshotDir is where ctrl+s dumps the frame. Empty means
	// ~/.quadfall/screenshots.
	ScreenshotDir string
}

// muter is implemented by audio sinks that can report their mute state.
type muter interface {
	Muted() bool
}

// lossRecorder is the round's Controller. It only notes the loss; the model
// persists the result with a command so Update never blocks on I/O.
type lossRecorder struct {
	lost  bool
	score int
}

func (l *lossRecorder) RoundLost(score int) {
	l.lost = true
	l.score = score
}

func (l *lossRecorder) reset() {
	l.lost = false
	l.score = 0
}

// resultMsg carries the ranking after a lost round was recorded.
type resultMsg struct {
	round   int
	ranking []int
	rank    int
}

// Model is the Bubble Tea model for a quadfall session.
type Model struct {
	round  *quadfall.Round
	clock  *clock
	loss   *lossRecorder
	opts   Options
	logger *log.Logger

	screen *core.Screen
	keys   KeyMap
	help   help.Model

	rounds   int // bumped on every restart
	saving   bool
	result   *resultMsg
	status   string
	width    int
	height   int
	tooSmall bool
	quitting bool
}

// NewModel creates a session model with a round waiting to be started.
func NewModel(opts Options) (Model, error) {
	if opts.Ranking == nil {
		return Model{}, ErrNoRanking
	}
	if opts.Audio == nil {
		opts.Audio = &audio.Silent{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Round.Width == 0 && opts.Round.Height == 0 {
		def := core.DefaultConfig()
		opts.Round.Width, opts.Round.Height = def.Width, def.Height
	}
	// Use time-based seed if not specified
	if opts.Round.Seed == 0 {
		opts.Round.Seed = time.Now().UnixNano()
	}

	clk := &clock{}
	loss := &lossRecorder{}
	round, err := quadfall.NewRound(opts.Round, quadfall.Deps{
		Audio:      opts.Audio,
		Controller: loss,
		Clock:      clk,
		Logger:     opts.Logger,
	})
	if err != nil {
		return Model{}, err
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		round:  round,
		clock:  clk,
		loss:   loss,
		opts:   opts,
		logger: opts.Logger,
		screen: core.NewScreen(FrameSize(opts.Round.Width, opts.Round.Height)),
		keys:   DefaultKeyMap(),
		help:   h,
	}, nil
}

// Round returns the round driven by the model.
func (m Model) Round() *quadfall.Round {
	return m.round
}

// Init waits for the player to start the round.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)

	case resultMsg:
		if msg.round == m.rounds {
			m.result = &msg
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		m.round.Stop()
		return m, tea.Quit
	case core.ActionScreenshot:
		m.saveScreenshot()
		return m, nil
	}

	if m.tooSmall {
		return m, nil
	}
	if action == core.ActionRestart {
		m.loss.reset()
		m.rounds++
		m.saving = false
		m.result = nil
	}

	m.round.Apply(action)
	return m, m.clock.kick(m.round.Interval())
}

// handleResize pauses the round while the terminal cannot show the board.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	w, h := FrameSize(m.opts.Round.Width, m.opts.Round.Height)
	m.tooSmall = msg.Width < w || msg.Height < h+1
	if m.tooSmall && m.round.State() == quadfall.Running {
		m.logger.Info("terminal too small, pausing", "width", msg.Width, "height", msg.Height)
		m.round.Stop()
	}
	return m, nil
}

// handleTick advances the round and schedules the next tick.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.clock.accepts(msg) {
		return m, nil
	}

	m.round.Tick()
	cmd := m.clock.next(m.round.Interval())

	if m.loss.lost && !m.saving {
		m.saving = true
		return m, tea.Batch(cmd, m.recordCmd(m.round.Result()))
	}
	return m, cmd
}

// recordCmd persists a lost round off the update loop.
func (m Model) recordCmd(res quadfall.Result) tea.Cmd {
	ranking, history, logger, round := m.opts.Ranking, m.opts.History, m.logger, m.rounds
	return func() tea.Msg {
		list, rank := recordResult(ranking, history, logger, res)
		return resultMsg{round: round, ranking: list, rank: rank}
	}
}

// recordResult writes a positive score to the ranking and the round to the
// history. It returns the ranking to show and the 1-based rank of the score,
// 0 when the score is not listed.
func recordResult(ranking *scores.Ranking, history *storage.Store, logger *log.Logger, res quadfall.Result) ([]int, int) {
	if res.Score > 0 {
		if _, err := ranking.Write(res.Score); err != nil {
			logger.Error("cannot record score", "score", res.Score, "err", err)
		}
	}

	if history != nil {
		_, err := history.SaveRound(storage.RoundRecord{
			Catalog:  res.Catalog,
			Seed:     res.Seed,
			Score:    res.Score,
			Pieces:   res.Pieces,
			Ticks:    res.Ticks,
			Duration: res.Duration,
		})
		if err != nil {
			logger.Warn("cannot record round", "err", err)
		}
	}

	list := ranking.Read()
	rank := 0
	if res.Score > 0 {
		rank = scores.Rank(res.Score, list)
	}
	return list, rank
}

// saveScreenshot saves the current frame to a text file.
func (m *Model) saveScreenshot() {
	DrawRound(m.screen, m.round, m.muted())

	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".quadfall", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot dir", "dir", dir, "err", err)
		m.status = "screenshot failed"
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("quadfall_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		m.status = "screenshot failed"
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.status = "saved " + path
}

func (m Model) muted() bool {
	if mu, ok := m.opts.Audio.(muter); ok {
		return mu.Muted()
	}
	return false
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.tooSmall {
		w, h := FrameSize(m.opts.Round.Width, m.opts.Round.Height)
		return fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d.\nResize the window or press q to quit.",
			w, h+1, m.width, m.height)
	}

	if m.round.State() == quadfall.Lost && m.result != nil {
		return m.lossView()
	}

	DrawRound(m.screen, m.round, m.muted())

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.status
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(footer)
}

// lossView shows the final score and the ranking with the new entry
// highlighted.
func (m Model) lossView() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	summary := fmt.Sprintf("Score %d", m.round.Score())
	if m.result.rank > 0 {
		summary += fmt.Sprintf("  ·  #%d in the top %d", m.result.rank, scores.Capacity)
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("GAME OVER"),
		summary,
		"",
		tableStyle.Render(rankingTable(m.result.ranking, m.result.rank).View()),
		"",
		helpStyle.Render("r restart · q quit"),
	)

	w, h := FrameSize(m.opts.Round.Width, m.opts.Round.Height)
	return lipgloss.Place(max(w, m.width), max(h, m.height)-1, lipgloss.Center, lipgloss.Center, body)
}

// Run starts the Bubble Tea program for one play session and returns the
// final round result.
func Run(opts Options) (quadfall.Result, error) {
	model, err := NewModel(opts)
	if err != nil {
		return quadfall.Result{}, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return quadfall.Result{}, err
	}
	if fm, ok := final.(Model); ok {
		return fm.round.Result(), nil
	}
	return model.round.Result(), nil
}
