package game

import (
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSink plays named effect cues. Calls are fire-and-forget; the
// simulation never waits on playback and unknown cues are ignored.
type AudioSink interface {
	PlayEffect(name string)
}

// NopAudio discards every cue (tests, headless runs, or an audio
// context that failed to open).
type NopAudio struct{}

// PlayEffect does nothing.
func (NopAudio) PlayEffect(name string) {}

// ToneAudio synthesizes short PCM cues once at startup and plays them
// through the ebiten audio context. Decode/playback faults degrade to
// silence, never into the simulation.
type ToneAudio struct {
	ctx    *audio.Context
	sounds map[string][]byte
}

// NewToneAudio builds the cue cache. ctx may be nil, in which case
// every cue is silently dropped.
func NewToneAudio(ctx *audio.Context, sampleRate int) *ToneAudio {
	a := &ToneAudio{ctx: ctx, sounds: make(map[string][]byte)}
	rng := rand.New(rand.NewSource(1))

	a.sounds["shoot"] = synthTone(sampleRate, 0.08, 900, 300, 0.5, rng)
	a.sounds["jump"] = synthTone(sampleRate, 0.12, 250, 600, 0.0, rng)
	a.sounds["hit"] = synthTone(sampleRate, 0.10, 500, 200, 0.8, rng)
	a.sounds["death"] = synthTone(sampleRate, 0.40, 400, 60, 0.3, rng)
	return a
}

// PlayEffect starts the named cue if it exists.
func (a *ToneAudio) PlayEffect(name string) {
	if a.ctx == nil {
		return
	}
	buf, ok := a.sounds[name]
	if !ok {
		log.Printf("audio: unknown cue %q", name)
		return
	}
	a.ctx.NewPlayerFromBytes(buf).Play()
}

// newHostAudio opens (or reuses) the process-wide ebiten audio
// context and wraps it in a ToneAudio sink.
func newHostAudio(sampleRate int) AudioSink {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return NewToneAudio(ctx, sampleRate)
}

// synthTone renders a frequency sweep with a linear decay envelope and
// an optional noise mix, as 16-bit little-endian stereo PCM.
func synthTone(sampleRate int, duration, freqFrom, freqTo, noise float64, rng *rand.Rand) []byte {
	samples := int(float64(sampleRate) * duration)
	buf := make([]byte, samples*4)
	phase := 0.0
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		freq := freqFrom + (freqTo-freqFrom)*t
		phase += 2 * math.Pi * freq / float64(sampleRate)

		v := math.Sin(phase)*(1-noise) + (rng.Float64()*2-1)*noise
		v *= (1 - t) * 0.3 // decay envelope, modest volume

		s := int16(v * math.MaxInt16)
		buf[i*4] = byte(s)
		buf[i*4+1] = byte(s >> 8)
		buf[i*4+2] = byte(s)
		buf[i*4+3] = byte(s >> 8)
	}
	return buf
}
