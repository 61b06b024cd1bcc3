// Package synth turns the engine's note and chord effects into sound. It
// renders Karplus-Strong plucked strings into a shared audio device; when
// the device cannot be opened the host falls back to a silent output and
// the installation keeps running visual-only.
package synth

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Output is the audio collaborator the frame loop dispatches effects to.
// Calls are fire-and-forget; implementations must not block the loop.
type Output interface {
	PlayNote(freq, velocity float64)
	PlayChord(freqs []float64, spacing time.Duration)
	Close() error
}

// Config holds the synthesizer parameters.
type Config struct {
	SampleRate int
	MaxVoices  int     // polyphony cap; the oldest voice is stolen beyond it
	Feedback   float64 // per-loop energy kept by a string, just under 1
	Gain       float64 // master gain applied to the mix
}

// DefaultConfig returns the tuned synthesizer parameters.
func DefaultConfig() Config {
	return Config{
		SampleRate: 44100,
		MaxVoices:  24,
		Feedback:   0.996,
		Gain:       0.35,
	}
}

// The audio device context is process-wide and cannot be reopened, so it
// is shared across Synth instances.
var (
	otoCtx  *oto.Context
	otoOnce sync.Once
	otoErr  error
)

func initContext(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(op)
		if otoErr == nil {
			<-ready
		}
	})
	return otoCtx, otoErr
}

// Synth mixes plucked-string voices into the audio device. It implements
// io.Reader; the device driver pulls samples from it on its own goroutine
// while the frame loop adds voices.
type Synth struct {
	cfg    Config
	player *oto.Player

	mu     sync.Mutex
	voices []*voice
	rng    *rand.Rand
}

// New opens the audio device and starts the output stream.
func New(cfg Config) (*Synth, error) {
	ctx, err := initContext(cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	s := &Synth{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

// PlayNote starts one plucked string.
func (s *Synth) PlayNote(freq, velocity float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addVoice(freq, velocity, 0)
}

// strumVelocity is the per-string velocity of a strummed chord.
const strumVelocity = 0.85

// PlayChord starts one string per chord note, each delayed a little more
// than the last so the chord rolls bass to treble.
func (s *Synth) PlayChord(freqs []float64, spacing time.Duration) {
	delaySamples := int(spacing.Seconds() * float64(s.cfg.SampleRate))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range freqs {
		s.addVoice(f, strumVelocity, i*delaySamples)
	}
}

// addVoice appends a voice, stealing the oldest when the cap is reached.
// Caller holds mu.
func (s *Synth) addVoice(freq, velocity float64, strumDelay int) {
	if s.cfg.MaxVoices > 0 && len(s.voices) >= s.cfg.MaxVoices {
		s.voices = s.voices[1:]
	}
	s.voices = append(s.voices, newVoice(s.cfg.SampleRate, freq, velocity, s.cfg.Feedback, strumDelay, s.rng))
}

// Read renders the voice mix as signed 16-bit little-endian stereo. Called
// by the audio driver.
func (s *Synth) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frames := len(p) / 4
	for i := 0; i < frames; i++ {
		var sum float64
		for _, v := range s.voices {
			sum += v.next()
		}
		sum *= s.cfg.Gain
		if sum > 1 {
			sum = 1
		} else if sum < -1 {
			sum = -1
		}

		sample := int16(sum * 32767)
		lo, hi := byte(sample), byte(sample>>8)
		p[i*4] = lo
		p[i*4+1] = hi
		p[i*4+2] = lo
		p[i*4+3] = hi
	}

	s.dropDead()
	return frames * 4, nil
}

// dropDead removes voices that rang out. Caller holds mu.
func (s *Synth) dropDead() {
	kept := s.voices[:0]
	for _, v := range s.voices {
		if !v.dead {
			kept = append(kept, v)
		}
	}
	for i := len(kept); i < len(s.voices); i++ {
		s.voices[i] = nil
	}
	s.voices = kept
}

// Close stops the output stream. The shared device context stays open.
func (s *Synth) Close() error {
	if s.player != nil {
		s.player.Pause()
	}
	return nil
}
