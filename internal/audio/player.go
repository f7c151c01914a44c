// Package audio plays quadfall's synthesized sounds through the system
// speaker: a looping background tune and short landing effects.
package audio

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/quadfall/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Options configures a Player.
type Options struct {
	MusicVolume  float64 // base-2 relative volume, 0 is unchanged
	EffectVolume float64
	Muted        bool
	Seed         int64 // picks landing variants
	Logger       *log.Logger
}

// speakerLock guards streamers that the speaker goroutine is reading.
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// Player mixes music and effects into the speaker.
// Every method is fire-and-forget and safe to call before Init, in which
// case it only tracks state.
type Player struct {
	mu     sync.Mutex  // guards Player fields
	locker sync.Locker // guards streamers shared with the speaker

	opts   Options
	logger *log.Logger
	rng    *rand.Rand
	ready  bool
	muted  bool

	mixer    *beep.Mixer
	music    *beep.Ctrl
	musicVol *effects.Volume
}

// Volumes outside [minVolume, maxVolume] are clamped.
const (
	minVolume = -10
	maxVolume = 2
)

// NewPlayer creates a player. Call Init to attach it to the speaker.
func NewPlayer(opts Options) *Player {
	opts.MusicVolume = core.ClampF(opts.MusicVolume, minVolume, maxVolume)
	opts.EffectVolume = core.ClampF(opts.EffectVolume, minVolume, maxVolume)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		locker: &sync.Mutex{},
		opts:   opts,
		logger: logger,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		muted:  opts.Muted,
		mixer:  &beep.Mixer{},
	}
}

// Init opens the speaker and starts streaming the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.locker = speakerLock{}
	p.ready = true
	p.logger.Debug("speaker ready", "rate", int(sampleRate))
	return nil
}

// Close silences everything and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	p.locker.Lock()
	p.mixer.Clear()
	p.locker.Unlock()
	p.music = nil
	p.musicVol = nil

	speaker.Close()
	p.locker = &sync.Mutex{}
	p.ready = false
}

// PlayLandingEffect plays one of the landing variants at random.
func (p *Player) PlayLandingEffect() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || p.muted {
		return
	}

	l := landings[p.rng.Intn(len(landings))]
	s := newVolume(l.streamer(sampleRate), p.opts.EffectVolume, false)

	p.locker.Lock()
	p.mixer.Add(s)
	p.locker.Unlock()
}

// PlayMusic starts the tune, or resumes it where it was paused.
func (p *Player) PlayMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}

	p.locker.Lock()
	defer p.locker.Unlock()

	if p.music != nil {
		p.music.Paused = false
		return
	}

	p.musicVol = newVolume(newMelody(theme, themeNote, sampleRate), p.opts.MusicVolume, p.muted)
	p.music = &beep.Ctrl{Streamer: p.musicVol}
	p.mixer.Add(p.music)
}

// PauseMusic holds the tune at its current position.
func (p *Player) PauseMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.music == nil {
		return
	}
	p.locker.Lock()
	p.music.Paused = true
	p.locker.Unlock()
}

// StopMusic ends the tune; the next PlayMusic starts from the top.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.music == nil {
		return
	}
	// A Ctrl without a streamer drains, so the mixer drops it.
	p.locker.Lock()
	p.music.Streamer = nil
	p.locker.Unlock()
	p.music = nil
	p.musicVol = nil
}

// ToggleMute silences or restores all sound.
func (p *Player) ToggleMute() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.musicVol != nil {
		p.locker.Lock()
		p.musicVol.Silent = p.muted
		p.locker.Unlock()
	}
	p.logger.Debug("audio mute toggled", "muted", p.muted)
}

// Muted reports whether sound is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Silent is an audio sink that plays nothing. It still tracks mute state
// so the HUD can show it.
type Silent struct {
	muted bool
}

func (s *Silent) PlayLandingEffect() {}
func (s *Silent) PlayMusic()         {}
func (s *Silent) PauseMusic()        {}
func (s *Silent) StopMusic()         {}
func (s *Silent) ToggleMute()        { s.muted = !s.muted }

// Muted reports whether sound is muted.
func (s *Silent) Muted() bool { return s.muted }
