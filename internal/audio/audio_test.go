package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = sampleRate

// drain streams s to completion and returns every sample.
func drain(t *testing.T, s interface {
	Stream([][2]float64) (int, bool)
}) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("stream never ended")
	return nil
}

// attached returns a player that believes it owns the speaker, so its mixer
// can be inspected without audio hardware.
func attached(opts Options) *Player {
	p := NewPlayer(opts)
	p.ready = true
	return p
}

func TestOscillatorLength(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveTriangle, WaveNoise} {
		osc := NewOscillator(440, 50*time.Millisecond, wave, testRate)
		samples := drain(t, osc)

		assert.Len(t, samples, testRate.N(50*time.Millisecond))
		for _, s := range samples {
			require.LessOrEqual(t, s[0], 1.0)
			require.GreaterOrEqual(t, s[0], -1.0)
			require.Equal(t, s[0], s[1], "mono signal on both channels")
		}
	}
}

func TestEnvelopeShape(t *testing.T) {
	dur := 40 * time.Millisecond
	osc := NewOscillator(0, dur, WaveSquare, testRate) // constant +1
	env := NewEnvelope(osc, dur, 10*time.Millisecond, 10*time.Millisecond, testRate)
	samples := drain(t, env)

	require.Len(t, samples, testRate.N(dur))
	assert.InDelta(t, 0.0, samples[0][0], 1e-9, "attack starts silent")
	assert.InDelta(t, 1.0, samples[len(samples)/2][0], 1e-9, "sustain at full level")
	assert.Less(t, samples[len(samples)-1][0], 0.01, "release fades out")
}

func TestMelodyNeverEnds(t *testing.T) {
	m := newMelody(theme, themeNote, testRate)
	buf := make([][2]float64, 4096)

	// Well past one full loop of the theme.
	total := 0
	for total < testRate.N(themeNote)*len(theme)*2 {
		n, ok := m.Stream(buf)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
		total += n
	}
}

func TestLandingVariants(t *testing.T) {
	assert.Equal(t, 8, LandingVariants())
	for i, l := range landings {
		samples := drain(t, l.streamer(testRate))
		assert.Len(t, samples, testRate.N(l.duration), "variant %d", i)
	}
}

func TestPlayerBeforeInitIsQuiet(t *testing.T) {
	p := NewPlayer(Options{})

	p.PlayLandingEffect()
	p.PlayMusic()
	p.PauseMusic()
	p.StopMusic()
	p.Close()

	assert.Equal(t, 0, p.mixer.Len())
	p.ToggleMute()
	assert.True(t, p.Muted(), "mute state is tracked before Init")
}

func TestPlayerLandingEffect(t *testing.T) {
	p := attached(Options{Seed: 1})

	p.PlayLandingEffect()
	p.PlayLandingEffect()
	assert.Equal(t, 2, p.mixer.Len())

	p.ToggleMute()
	p.PlayLandingEffect()
	assert.Equal(t, 2, p.mixer.Len(), "muted player adds no effects")

	// Effects are finite; streaming long enough drains them from the mixer.
	buf := make([][2]float64, testRate.N(time.Second))
	p.mixer.Stream(buf)
	p.mixer.Stream(buf)
	assert.Equal(t, 0, p.mixer.Len())
}

func TestPlayerMusicLifecycle(t *testing.T) {
	p := attached(Options{})

	p.PlayMusic()
	p.PlayMusic()
	require.NotNil(t, p.music)
	assert.Equal(t, 1, p.mixer.Len(), "music is only added once")

	p.PauseMusic()
	assert.True(t, p.music.Paused)

	p.PlayMusic()
	assert.False(t, p.music.Paused, "PlayMusic resumes")

	p.StopMusic()
	assert.Nil(t, p.music)

	// The stopped Ctrl drains on the next mix and a new tune starts.
	buf := make([][2]float64, 256)
	p.mixer.Stream(buf)
	assert.Equal(t, 0, p.mixer.Len())

	p.PlayMusic()
	assert.Equal(t, 1, p.mixer.Len())
}

func TestPlayerMuteSilencesMusic(t *testing.T) {
	p := attached(Options{Muted: true})
	p.PlayMusic()
	require.NotNil(t, p.musicVol)
	assert.True(t, p.musicVol.Silent)

	p.ToggleMute()
	assert.False(t, p.musicVol.Silent)
	assert.False(t, p.Muted())
}

func TestSilent(t *testing.T) {
	s := &Silent{}
	s.PlayLandingEffect()
	s.PlayMusic()
	s.PauseMusic()
	s.StopMusic()
	assert.False(t, s.Muted())
	s.ToggleMute()
	assert.True(t, s.Muted())
}

func TestNewPlayerClampsVolume(t *testing.T) {
	p := NewPlayer(Options{MusicVolume: 50, EffectVolume: -50})
	assert.Equal(t, float64(maxVolume), p.opts.MusicVolume)
	assert.Equal(t, float64(minVolume), p.opts.EffectVolume)
}
