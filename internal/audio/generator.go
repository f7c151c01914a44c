package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// sample returns the wave value at phase in [0, 1).
func (w WaveType) sample(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case WaveSaw:
		return 2.0 * (phase - 0.5)
	case WaveTriangle:
		return 1.0 - 4.0*math.Abs(phase-0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// oscillator generates a finite wave, optionally sweeping its frequency
// linearly from freq to freq*sweep.
type oscillator struct {
	freq     float64
	sweep    float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, 1, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from freq to freq*sweep.
func NewSweep(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := o.wave.sample(o.phase)
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq * (1 + (o.sweep-1)*progress)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := envelopeGain(e.position, e.attackSamples, e.sustainSamples, e.releaseSamples, e.totalSamples)
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

func envelopeGain(pos, attack, sustain, release, total int) float64 {
	if pos < attack && attack > 0 {
		return float64(pos) / float64(attack)
	}
	if pos >= attack+sustain && release > 0 {
		return max(float64(total-pos)/float64(release), 0)
	}
	return 1.0
}

// melody loops a note sequence forever. Each note is a short enveloped
// triangle tone; zero frequencies are rests.
type melody struct {
	notes    []float64
	noteLen  int
	attack   int
	release  int
	position int
	phase    float64
	rate     beep.SampleRate
}

func newMelody(notes []float64, noteLen time.Duration, rate beep.SampleRate) *melody {
	n := rate.N(noteLen)
	return &melody{
		notes:   notes,
		noteLen: n,
		attack:  rate.N(5 * time.Millisecond),
		release: n / 2,
		rate:    rate,
	}
}

func (m *melody) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		idx := (m.position / m.noteLen) % len(m.notes)
		inNote := m.position % m.noteLen
		if inNote == 0 {
			m.phase = 0
		}

		var val float64
		if freq := m.notes[idx]; freq > 0 {
			gain := envelopeGain(inNote, m.attack, m.noteLen-m.attack-m.release, m.release, m.noteLen)
			val = 0.3 * gain * WaveTriangle.sample(m.phase)
			m.phase += freq / float64(m.rate)
			m.phase -= math.Floor(m.phase)
		}

		samples[i][0] = val
		samples[i][1] = val
		m.position++
	}
	return len(samples), true
}

func (m *melody) Err() error { return nil }

// newVolume wraps s in a base-2 volume control.
func newVolume(s beep.Streamer, volume float64, silent bool) *effects.Volume {
	return &effects.Volume{Streamer: s, Base: 2, Volume: volume, Silent: silent}
}
