package quadfall

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/quadfall/internal/core"
	"github.com/vovakirdan/quadfall/internal/games/quadfall/field"
)

type fakeAudio struct {
	landings, plays, pauses, stops, mutes int
}

func (a *fakeAudio) PlayLandingEffect() { a.landings++ }
func (a *fakeAudio) PlayMusic()         { a.plays++ }
func (a *fakeAudio) PauseMusic()        { a.pauses++ }
func (a *fakeAudio) StopMusic()         { a.stops++ }
func (a *fakeAudio) ToggleMute()        { a.mutes++ }

type fakeClock struct {
	running bool
	starts  int
}

func (c *fakeClock) Start() {
	c.running = true
	c.starts++
}

func (c *fakeClock) Stop() { c.running = false }

type fakeController struct {
	losses []int
}

func (c *fakeController) RoundLost(score int) { c.losses = append(c.losses, score) }

type fakeRenderer struct {
	frames int
	last   field.Grid
}

func (r *fakeRenderer) Redraw(view field.Grid) {
	r.frames++
	r.last = view
}

type harness struct {
	round      *Round
	audio      *fakeAudio
	clock      *fakeClock
	controller *fakeController
	renderer   *fakeRenderer
}

var (
	square = field.MustTemplate("O", field.TagO, "##", "##")
	dot    = field.MustTemplate("dot", field.TagZ, "#")
)

func testConfig(seed int64) Config {
	return Config{
		RuntimeConfig: core.RuntimeConfig{Width: 30, Height: 30, Seed: seed},
		Catalog:       field.Classic(),
		Pacing:        Pacing{Initial: 10 * time.Millisecond, Step: 0, Floor: 10 * time.Millisecond},
	}
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{
		audio:      &fakeAudio{},
		clock:      &fakeClock{},
		controller: &fakeController{},
		renderer:   &fakeRenderer{},
	}
	r, err := NewRound(cfg, Deps{
		Audio:      h.audio,
		Controller: h.controller,
		Clock:      h.clock,
		Renderer:   h.renderer,
	})
	if err != nil {
		t.Fatalf("NewRound failed: %v", err)
	}
	h.round = r
	return h
}

// place swaps in a known piece.
func (h *harness) place(t field.Template, x, y int, axis field.Axis, positive bool) {
	h.round.piece = field.NewPiece(t, x, y, axis, positive)
}

func (h *harness) ticks(n int) {
	for i := 0; i < n; i++ {
		h.round.Tick()
	}
}

func TestNewRoundValidation(t *testing.T) {
	audio := &fakeAudio{}
	ctrl := &fakeController{}

	tests := []struct {
		name string
		cfg  Config
		deps Deps
		want error
	}{
		{"nil audio", testConfig(1), Deps{Controller: ctrl}, ErrNilCollaborator},
		{"nil controller", testConfig(1), Deps{Audio: audio}, ErrNilCollaborator},
		{"nil catalog", Config{RuntimeConfig: core.RuntimeConfig{Width: 30, Height: 30}}, Deps{Audio: audio, Controller: ctrl}, field.ErrEmptyCatalog},
		{"bad width", Config{RuntimeConfig: core.RuntimeConfig{Width: -1, Height: 30}, Catalog: field.Classic()}, Deps{Audio: audio, Controller: ctrl}, field.ErrInvalidDimension},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRound(tc.cfg, tc.deps)
			if !errors.Is(err, tc.want) {
				t.Errorf("error = %v, expected %v", err, tc.want)
			}
			if r != nil {
				t.Error("NewRound should not return a partial round")
			}
		})
	}
}

func TestNewRoundOptionalCollaborators(t *testing.T) {
	r, err := NewRound(testConfig(1), Deps{Audio: &fakeAudio{}, Controller: &fakeController{}})
	if err != nil {
		t.Fatalf("NewRound failed: %v", err)
	}
	r.Start()
	r.Tick()
	r.Stop()
	if r.State() != Paused {
		t.Errorf("State() = %v, expected paused", r.State())
	}
}

func TestTickIgnoredUntilStarted(t *testing.T) {
	h := newHarness(t, testConfig(1))

	h.ticks(5)
	if s := h.round.Snapshot(); s.Tick != 0 || s.State != NotStarted {
		t.Errorf("unstarted round ticked: %+v", s)
	}
	if h.renderer.frames != 0 {
		t.Error("unstarted round should not redraw")
	}
	if !h.round.Status().Paused {
		t.Error("unstarted round should report paused")
	}
}

func TestStartStopToggle(t *testing.T) {
	h := newHarness(t, testConfig(1))

	h.round.Start()
	if h.round.State() != Running || !h.clock.running || h.audio.plays != 1 {
		t.Fatalf("Start: state=%v clock=%v plays=%d", h.round.State(), h.clock.running, h.audio.plays)
	}

	h.round.Start()
	if h.audio.plays != 1 {
		t.Error("Start on a running round should be a no-op")
	}

	h.round.Stop()
	if h.round.State() != Paused || h.clock.running || h.audio.pauses != 1 {
		t.Fatalf("Stop: state=%v clock=%v pauses=%d", h.round.State(), h.clock.running, h.audio.pauses)
	}

	h.round.TogglePause()
	if h.round.State() != Running {
		t.Errorf("TogglePause from paused = %v, expected running", h.round.State())
	}
	h.round.TogglePause()
	if h.round.State() != Paused {
		t.Errorf("TogglePause from running = %v, expected paused", h.round.State())
	}
}

func TestCommandsIgnoredUnlessRunning(t *testing.T) {
	h := newHarness(t, testConfig(1))
	h.place(square, 5, 5, field.Vertical, true)

	check := func(label string) {
		t.Helper()
		h.round.Move(field.Down)
		h.round.Shift(field.Left)
		h.round.Rotate()
		h.round.Drop()
		h.round.ToggleMute()
		if x, y := h.round.Piece().Position(); x != 5 || y != 5 {
			t.Errorf("%s: piece moved to (%d, %d)", label, x, y)
		}
		if h.audio.mutes != 0 {
			t.Errorf("%s: mute toggled", label)
		}
	}

	check("not started")

	h.round.Start()
	h.round.Stop()
	check("paused")
}

func TestCommandsWhileRunning(t *testing.T) {
	h := newHarness(t, testConfig(1))
	h.round.Start()
	h.place(square, 5, 5, field.Vertical, true)

	h.round.Apply(core.ActionMoveDown)
	h.round.Apply(core.ActionShiftLeft)
	h.round.Apply(core.ActionMoveLeft) // wrong axis for a vertical piece
	h.round.Apply(core.ActionShiftUp)  // wrong axis for a vertical piece
	h.round.Apply(core.ActionDrop)
	h.round.Apply(core.ActionMute)

	if x, y := h.round.Piece().Position(); x != 4 || y != 7 {
		t.Errorf("piece at (%d, %d), expected (4, 7)", x, y)
	}
	if h.audio.mutes != 1 {
		t.Errorf("mutes = %d, expected 1", h.audio.mutes)
	}
	if h.round.Snapshot().Grace != 0 {
		t.Error("commands should not touch the grace counter")
	}

	h.round.Apply(core.ActionPause)
	if h.round.State() != Paused {
		t.Errorf("ActionPause -> %v, expected paused", h.round.State())
	}
}

func TestGracePeriodCommitsOnEighthRestingTick(t *testing.T) {
	h := newHarness(t, testConfig(1))
	h.round.Start()

	// Resting on the seeded centre cell from the first tick.
	h.place(square, 14, 13, field.Vertical, true)

	h.ticks(BufferMax - 1)
	if h.round.Board().Score() != 0 {
		t.Fatalf("piece committed early, score %d", h.round.Board().Score())
	}
	if g := h.round.Snapshot().Grace; g != BufferMax-1 {
		t.Fatalf("grace = %d, expected %d", g, BufferMax-1)
	}

	h.round.Tick()
	if h.round.Board().Score() != 4 {
		t.Errorf("score after commit = %d, expected 4", h.round.Board().Score())
	}
	if h.audio.landings != 1 {
		t.Errorf("landing effect played %d times, expected 1", h.audio.landings)
	}

	s := h.round.Snapshot()
	if s.Grace != 0 || s.Pieces != 1 {
		t.Errorf("after commit grace=%d pieces=%d, expected 0 and 1", s.Grace, s.Pieces)
	}
	if h.round.State() != Running {
		t.Errorf("State() = %v, expected running", h.round.State())
	}
}

func TestGraceResetsWhenPieceFallsAgain(t *testing.T) {
	h := newHarness(t, testConfig(1))
	h.round.Start()
	h.place(square, 14, 13, field.Vertical, true)

	h.ticks(3)
	if h.round.Snapshot().Grace != 3 {
		t.Fatalf("grace = %d, expected 3", h.round.Snapshot().Grace)
	}

	// Steer clear of the obstacle so the next fall succeeds.
	h.round.Shift(field.Left)
	h.round.Shift(field.Left)
	h.round.Tick()
	if h.round.Snapshot().Grace != 0 {
		t.Errorf("grace = %d after a successful fall, expected 0", h.round.Snapshot().Grace)
	}

	// A new resting streak plays the landing effect again.
	h.place(square, 14, 13, field.Vertical, true)
	h.round.Tick()
	if h.audio.landings != 2 {
		t.Errorf("landing effect played %d times, expected 2", h.audio.landings)
	}
}

func TestLossWhenRestingOutsideWindow(t *testing.T) {
	h := newHarness(t, testConfig(1))
	h.round.Start()

	h.round.board.Commit(field.NewPiece(dot, 0, 15, field.Vertical, true))
	h.place(square, 0, 13, field.Vertical, true)

	h.ticks(BufferMax - 1)
	if h.round.State() != Running {
		t.Fatalf("lost before the grace period ran out")
	}
	h.round.Tick()

	if h.round.State() != Lost {
		t.Fatalf("State() = %v, expected lost", h.round.State())
	}
	if len(h.controller.losses) != 1 || h.controller.losses[0] != 1 {
		t.Errorf("controller losses = %v, expected [1]", h.controller.losses)
	}
	if h.clock.running || h.audio.stops != 1 {
		t.Errorf("loss should stop clock and music: clock=%v stops=%d", h.clock.running, h.audio.stops)
	}
	if st := h.round.Status(); !st.GameOver || st.Score != 1 {
		t.Errorf("Status() = %+v", st)
	}
}

func TestLossWhenFallingOffGrid(t *testing.T) {
	h := newHarness(t, testConfig(1))
	h.round.Start()
	h.place(square, 14, 0, field.Vertical, false)

	h.round.Tick()

	if h.round.State() != Lost {
		t.Fatalf("State() = %v, expected lost", h.round.State())
	}
	if len(h.controller.losses) != 1 || h.controller.losses[0] != 0 {
		t.Errorf("controller losses = %v, expected [0]", h.controller.losses)
	}
}

func TestLostRoundIsTerminal(t *testing.T) {
	h := newHarness(t, testConfig(1))
	h.round.Start()
	h.place(square, 14, 0, field.Vertical, false)
	h.round.Tick()

	before := h.round.Snapshot()
	h.round.Start()
	h.ticks(10)
	h.round.Rotate()

	if after := h.round.Snapshot(); after != before {
		t.Errorf("lost round changed: %+v -> %+v", before, after)
	}
	if h.clock.starts != 1 {
		t.Errorf("Start on a lost round restarted the clock")
	}
}

func TestRestart(t *testing.T) {
	cfg := testConfig(7)
	cfg.Pacing = Pacing{Initial: 20 * time.Millisecond, Step: time.Millisecond, Floor: 5 * time.Millisecond}
	h := newHarness(t, cfg)
	h.round.Start()
	h.place(square, 14, 0, field.Vertical, false)
	h.round.Tick()
	if h.round.State() != Lost {
		t.Fatal("setup: round should be lost")
	}

	h.round.Restart()

	s := h.round.Snapshot()
	if s.State != Running || s.Tick != 0 || s.Score != 0 || s.Grace != 0 || s.Pieces != 0 {
		t.Errorf("restart left stale state: %+v", s)
	}
	if s.Interval != 20*time.Millisecond {
		t.Errorf("Interval = %v, expected reset to 20ms", s.Interval)
	}
	if h.round.Board().Cells().Count() != 1 {
		t.Error("restart should build a fresh board")
	}
	if !h.clock.running || h.audio.stops != 2 || h.audio.plays != 2 {
		t.Errorf("restart audio/clock: clock=%v stops=%d plays=%d", h.clock.running, h.audio.stops, h.audio.plays)
	}
}

func TestRendererGetsMergedView(t *testing.T) {
	h := newHarness(t, testConfig(1))
	h.round.Start()
	h.place(square, 3, 3, field.Vertical, true)

	h.ticks(2)

	if h.renderer.frames != 2 {
		t.Fatalf("frames = %d, expected 2", h.renderer.frames)
	}
	if h.renderer.last.At(3, 5) != field.TagO || h.renderer.last.At(15, 15) != field.Sentinel {
		t.Error("redraw should carry the board merged with the piece")
	}
}

func TestPacingShrinksToFloor(t *testing.T) {
	cfg := testConfig(3)
	cfg.Pacing = Pacing{Initial: 20 * time.Millisecond, Step: 2 * time.Millisecond, Floor: 15 * time.Millisecond}
	h := newHarness(t, cfg)
	h.round.Start()
	h.place(square, 3, 3, field.Vertical, true)

	want := []time.Duration{18, 16, 15, 15}
	for i, w := range want {
		h.round.Tick()
		if got := h.round.Interval(); got != w*time.Millisecond {
			t.Errorf("tick %d: Interval() = %v, expected %v", i+1, got, w*time.Millisecond)
		}
	}
}

func TestResult(t *testing.T) {
	h := newHarness(t, testConfig(1))
	h.round.Start()
	h.place(square, 14, 13, field.Vertical, true)
	h.ticks(BufferMax)

	res := h.round.Result()
	if res.Score != 4 || res.Pieces != 1 || res.Ticks != BufferMax {
		t.Errorf("Result() = %+v", res)
	}
	if res.Duration != BufferMax*10*time.Millisecond {
		t.Errorf("Duration = %v, expected %v", res.Duration, BufferMax*10*time.Millisecond)
	}
	if res.Catalog != "classic" || res.Seed != 1 {
		t.Errorf("Result() catalog/seed = %q/%d", res.Catalog, res.Seed)
	}
}

func TestDeterminism(t *testing.T) {
	// Two rounds with the same seed and inputs should produce identical snapshots
	cfg := testConfig(12345)

	h1 := newHarness(t, cfg)
	h2 := newHarness(t, cfg)
	h1.round.Start()
	h2.round.Start()

	inputs := map[int]core.Action{
		10:  core.ActionShiftLeft,
		25:  core.ActionRotate,
		40:  core.ActionShiftUp,
		90:  core.ActionDrop,
		150: core.ActionMoveDown,
	}

	for i := 0; i < 600; i++ {
		if a, ok := inputs[i%200]; ok {
			h1.round.Apply(a)
			h2.round.Apply(a)
		}
		h1.round.Tick()
		h2.round.Tick()

		if s1, s2 := h1.round.Snapshot(), h2.round.Snapshot(); s1 != s2 {
			t.Fatalf("tick %d: snapshots differ\n%+v\n%+v", i, s1, s2)
		}
	}
}

func TestScoreInvariantHoldsDuringPlay(t *testing.T) {
	h := newHarness(t, testConfig(99))
	h.round.Start()

	for i := 0; i < 2000 && h.round.State() == Running; i++ {
		if i%7 == 0 {
			h.round.Apply(core.ActionRotate)
		}
		h.round.Tick()
		b := h.round.Board()
		if b.Score() != b.Cells().Count()-1 {
			t.Fatalf("tick %d: score %d, cells %d", i, b.Score(), b.Cells().Count())
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{NotStarted, "not_started"},
		{Running, "running"},
		{Paused, "paused"},
		{Lost, "lost"},
		{State(42), "unknown"},
	}
	for _, tc := range tests {
		if tc.s.String() != tc.want {
			t.Errorf("State(%d).String() = %q, expected %q", tc.s, tc.s.String(), tc.want)
		}
	}
}
