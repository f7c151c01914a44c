// Package quadfall runs a single round of quadfall: the tick-driven state
// machine that drops pieces from all four edges onto a shared board, lets
// them rest for a short grace period, and ends the round once a piece lands
// outside the playfield window.
//
// The round is pure game logic. Time, sound, drawing and what happens after a
// loss are injected collaborators so the platform layer decides how they work.
package quadfall

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/quadfall/internal/core"
	"github.com/vovakirdan/quadfall/internal/games/quadfall/field"
)

// BufferMax is the number of consecutive resting ticks after which a piece
// is committed to the board.
const BufferMax = 8

// ErrNilCollaborator is returned when a required collaborator is missing.
var ErrNilCollaborator = errors.New("quadfall: nil collaborator")

// State is the lifecycle state of a round.
type State int

const (
	NotStarted State = iota
	Running
	Paused
	Lost
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Audio plays round sounds. Calls are fire-and-forget.
type Audio interface {
	PlayLandingEffect()
	PlayMusic()
	PauseMusic()
	StopMusic()
	ToggleMute()
}

// Clock is the tick source driving Tick.
type Clock interface {
	Start()
	Stop()
}

// Controller is told when a round is lost.
type Controller interface {
	RoundLost(score int)
}

// Renderer receives the merged board after every tick.
type Renderer interface {
	Redraw(view field.Grid)
}

// Config describes a round.
type Config struct {
	core.RuntimeConfig
	Catalog *field.Catalog
	Pacing  Pacing
}

// Deps are the collaborators of a round. Audio and Controller are required;
// the rest may be nil.
type Deps struct {
	Audio      Audio
	Controller Controller
	Clock      Clock
	Renderer   Renderer
	Logger     *log.Logger
}

type nopClock struct{}

func (nopClock) Start() {}
func (nopClock) Stop()  {}

// Round is one game of quadfall.
// It is not safe for concurrent use; the caller serializes Tick and commands.
type Round struct {
	cfg    Config
	deps   Deps
	logger *log.Logger
	rng    *rand.Rand

	board *field.Board
	piece field.Piece
	pacer *Pacer

	state   State
	grace   int
	ticks   uint64
	landed  int
	elapsed time.Duration
	score   int
}

// NewRound validates the configuration and builds a round in the NotStarted
// state with its first piece spawned.
func NewRound(cfg Config, deps Deps) (*Round, error) {
	if deps.Audio == nil {
		return nil, fmt.Errorf("%w: audio", ErrNilCollaborator)
	}
	if deps.Controller == nil {
		return nil, fmt.Errorf("%w: controller", ErrNilCollaborator)
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("quadfall: %w", field.ErrEmptyCatalog)
	}
	board, err := field.NewBoard(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("quadfall: %w", err)
	}

	if deps.Clock == nil {
		deps.Clock = nopClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := &Round{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		board:  board,
		pacer:  NewPacer(cfg.Pacing),
	}
	r.piece = r.spawn()
	return r, nil
}

func (r *Round) spawn() field.Piece {
	p := field.Spawn(r.rng, r.cfg.Catalog, r.cfg.Width, r.cfg.Height)
	x, y := p.Position()
	r.logger.Debug("piece spawned", "shape", p.Name(), "x", x, "y", y, "axis", p.Axis(), "positive", p.Positive())
	return p
}

// Start begins or resumes the round. It is a no-op on a running or lost round.
func (r *Round) Start() {
	if r.state != NotStarted && r.state != Paused {
		return
	}
	r.state = Running
	r.deps.Clock.Start()
	r.deps.Audio.PlayMusic()
	r.logger.Debug("round running", "tick", r.ticks)
}

// Stop pauses a running round.
func (r *Round) Stop() {
	if r.state != Running {
		return
	}
	r.state = Paused
	r.deps.Clock.Stop()
	r.deps.Audio.PauseMusic()
	r.logger.Debug("round paused", "tick", r.ticks)
}

// TogglePause stops a running round or starts a paused one.
func (r *Round) TogglePause() {
	if r.state == Running {
		r.Stop()
		return
	}
	r.Start()
}

// Restart throws the board away and begins a fresh round immediately.
// The piece sequence continues from the same random source.
func (r *Round) Restart() {
	board, _ := field.NewBoard(r.cfg.Width, r.cfg.Height)
	r.board = board
	r.piece = r.spawn()
	r.grace = 0
	r.ticks = 0
	r.landed = 0
	r.elapsed = 0
	r.score = 0
	r.pacer.Reset()

	r.deps.Audio.StopMusic()
	r.deps.Audio.PlayMusic()
	r.state = Running
	r.deps.Clock.Start()
	r.logger.Info("round restarted")
}

// Tick advances a running round by one step. Other states ignore it.
func (r *Round) Tick() {
	if r.state != Running {
		return
	}
	r.ticks++
	r.elapsed += r.pacer.Interval()
	r.pacer.Advance()

	next, moved := r.piece.Fall(r.board, false)
	switch {
	case !moved:
		if r.grace == 0 {
			r.deps.Audio.PlayLandingEffect()
		}
		r.grace++
		if r.grace >= BufferMax {
			if r.piece.OutOfBounds(r.cfg.Width, r.cfg.Height) {
				r.loss()
				break
			}
			r.board.Commit(r.piece)
			r.landed++
			r.logger.Debug("piece landed", "shape", r.piece.Name(), "score", r.board.Score())
			r.piece = r.spawn()
			r.grace = 0
		}
	case next.LossMarker():
		r.piece = next
		r.loss()
	default:
		r.piece = next
		r.grace = 0
	}

	if r.deps.Renderer != nil {
		r.deps.Renderer.Redraw(r.board.MergeView(r.piece))
	}
}

// loss ends the round and reports the final score.
func (r *Round) loss() {
	r.state = Lost
	r.deps.Clock.Stop()
	r.deps.Audio.StopMusic()
	r.score = r.board.Score()
	r.logger.Info("round lost", "score", r.score, "pieces", r.landed, "ticks", r.ticks)
	r.deps.Controller.RoundLost(r.score)
}

// Move pushes the current piece along its fall axis.
func (r *Round) Move(d field.Direction) {
	if r.state != Running {
		return
	}
	r.piece = r.piece.Move(d, r.board)
}

// Shift steers the current piece across its fall axis.
func (r *Round) Shift(d field.Direction) {
	if r.state != Running {
		return
	}
	r.piece = r.piece.Shift(d, r.board)
}

// Rotate turns the current piece a quarter turn.
func (r *Round) Rotate() {
	if r.state != Running {
		return
	}
	r.piece = r.piece.Rotate(r.board)
}

// Drop makes one immediate fall attempt. The grace counter is left alone.
func (r *Round) Drop() {
	if r.state != Running {
		return
	}
	r.piece, _ = r.piece.Fall(r.board, false)
}

// ToggleMute mutes or unmutes the audio.
func (r *Round) ToggleMute() {
	if r.state != Running {
		return
	}
	r.deps.Audio.ToggleMute()
}

// Apply dispatches a platform action to the matching command.
// Actions the round does not own (quit, screenshot) are ignored.
func (r *Round) Apply(a core.Action) {
	switch a {
	case core.ActionShiftUp:
		r.Shift(field.Up)
	case core.ActionShiftDown:
		r.Shift(field.Down)
	case core.ActionShiftLeft:
		r.Shift(field.Left)
	case core.ActionShiftRight:
		r.Shift(field.Right)
	case core.ActionMoveUp:
		r.Move(field.Up)
	case core.ActionMoveDown:
		r.Move(field.Down)
	case core.ActionMoveLeft:
		r.Move(field.Left)
	case core.ActionMoveRight:
		r.Move(field.Right)
	case core.ActionRotate:
		r.Rotate()
	case core.ActionDrop:
		r.Drop()
	case core.ActionMute:
		r.ToggleMute()
	case core.ActionPause:
		r.TogglePause()
	case core.ActionRestart:
		r.Restart()
	}
}

// State returns the lifecycle state.
func (r *Round) State() State {
	return r.state
}

// Status returns the externally visible round status.
func (r *Round) Status() core.GameState {
	return core.GameState{
		Score:    r.Score(),
		GameOver: r.state == Lost,
		Paused:   r.state == Paused || r.state == NotStarted,
	}
}

// Score returns the final score of a lost round, or the live board score.
func (r *Round) Score() int {
	if r.state == Lost {
		return r.score
	}
	return r.board.Score()
}

// View returns the board with the current piece merged in.
func (r *Round) View() field.Grid {
	return r.board.MergeView(r.piece)
}

// Board returns the round's board.
func (r *Round) Board() *field.Board {
	return r.board
}

// Piece returns the current piece.
func (r *Round) Piece() field.Piece {
	return r.piece
}

// Interval returns the delay the clock should wait before the next tick.
func (r *Round) Interval() time.Duration {
	return r.pacer.Interval()
}

// Result summarizes the round for the history store.
func (r *Round) Result() Result {
	return Result{
		Score:    r.Score(),
		Pieces:   r.landed,
		Ticks:    r.ticks,
		Duration: r.elapsed,
		Catalog:  r.cfg.Catalog.Name(),
		Seed:     r.cfg.Seed,
	}
}

// Result is the summary of a finished round.
type Result struct {
	Score    int
	Pieces   int
	Ticks    uint64
	Duration time.Duration
	Catalog  string
	Seed     int64
}
