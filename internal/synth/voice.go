package synth

import "math/rand"

// silenceFloor is the buffer peak below which a voice retires.
const silenceFloor = 1e-3

// voice is one Karplus-Strong plucked string: a velocity-scaled noise
// burst circulating through a delay line sized to the pitch period, damped
// by a two-tap averaging lowpass and a feedback factor.
type voice struct {
	buf      []float64
	pos      int
	feedback float64
	strum    int // samples to hold before sounding, for strummed chords
	dead     bool
}

func newVoice(sampleRate int, freq, velocity, feedback float64, strumDelay int, rng *rand.Rand) *voice {
	n := 2
	if freq > 0 {
		n = int(float64(sampleRate) / freq)
		if n < 2 {
			n = 2
		}
	}
	v := &voice{
		buf:      make([]float64, n),
		feedback: feedback,
		strum:    strumDelay,
	}
	for i := range v.buf {
		v.buf[i] = (rng.Float64()*2 - 1) * velocity
	}
	return v
}

// next renders one sample and advances the string.
func (v *voice) next() float64 {
	if v.dead {
		return 0
	}
	if v.strum > 0 {
		v.strum--
		return 0
	}

	out := v.buf[v.pos]
	nxt := v.pos + 1
	if nxt == len(v.buf) {
		nxt = 0
	}
	v.buf[v.pos] = (out + v.buf[nxt]) / 2 * v.feedback
	v.pos = nxt

	// Once per period, check whether the string has rung out.
	if v.pos == 0 {
		peak := 0.0
		for _, s := range v.buf {
			if s > peak {
				peak = s
			} else if -s > peak {
				peak = -s
			}
		}
		if peak < silenceFloor {
			v.dead = true
		}
	}
	return out
}
