package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// landing describes one landing-effect variant.
type landing struct {
	freq     float64
	sweep    float64
	wave     WaveType
	duration time.Duration
}

// landings are the effect variants picked at random when a piece comes to rest.
var landings = []landing{
	{freq: 220, sweep: 0.5, wave: WaveSine, duration: 120 * time.Millisecond},
	{freq: 196, sweep: 0.6, wave: WaveTriangle, duration: 110 * time.Millisecond},
	{freq: 262, sweep: 0.5, wave: WaveSquare, duration: 70 * time.Millisecond},
	{freq: 174, sweep: 0.7, wave: WaveSine, duration: 140 * time.Millisecond},
	{freq: 330, sweep: 0.4, wave: WaveTriangle, duration: 90 * time.Millisecond},
	{freq: 147, sweep: 0.8, wave: WaveSaw, duration: 80 * time.Millisecond},
	{freq: 294, sweep: 0.5, wave: WaveSine, duration: 100 * time.Millisecond},
	{freq: 110, sweep: 1.0, wave: WaveNoise, duration: 60 * time.Millisecond},
}

// LandingVariants is the number of landing effects.
func LandingVariants() int {
	return len(landings)
}

func (l landing) streamer(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(l.freq, l.sweep, l.duration, l.wave, rate)
	return NewEnvelope(osc, l.duration, 3*time.Millisecond, l.duration/2, rate)
}

// theme is the looping background tune, A minor arpeggios with rests.
var theme = []float64{
	220.00, 261.63, 329.63, 261.63,
	196.00, 246.94, 293.66, 0,
	174.61, 220.00, 261.63, 220.00,
	164.81, 207.65, 246.94, 0,
}

const themeNote = 180 * time.Millisecond
