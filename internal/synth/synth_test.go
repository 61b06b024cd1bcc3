package synth

import (
	"math/rand"
	"testing"
	"time"
)

// Tests construct Synth directly instead of calling New so they never open
// an audio device.

func testSynth(cfg Config, seed int64) *Synth {
	return &Synth{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

func TestVoiceDecaysAndRetires(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	v := newVoice(44100, 441, 1.0, 0.5, 0, rng)
	if len(v.buf) != 100 {
		t.Fatalf("delay line length = %d, want 100", len(v.buf))
	}

	periodPeak := func() float64 {
		peak := 0.0
		for i := 0; i < len(v.buf); i++ {
			s := v.next()
			if s > peak {
				peak = s
			} else if -s > peak {
				peak = -s
			}
		}
		return peak
	}

	first := periodPeak()
	if first == 0 {
		t.Fatal("voice produced no signal in its first period")
	}
	for i := 0; i < 3; i++ {
		periodPeak()
	}
	fifth := periodPeak()
	if fifth >= first {
		t.Errorf("peak after five periods = %v, want below first period peak %v", fifth, first)
	}

	for i := 0; !v.dead && i < 100*len(v.buf); i++ {
		v.next()
	}
	if !v.dead {
		t.Fatal("voice never retired")
	}
	if got := v.next(); got != 0 {
		t.Errorf("retired voice output = %v, want 0", got)
	}
}

func TestVoiceStrumDelay(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	v := newVoice(44100, 441, 1.0, 0.9, 50, rng)

	for i := 0; i < 50; i++ {
		if s := v.next(); s != 0 {
			t.Fatalf("sample %d = %v during strum delay, want silence", i, s)
		}
	}
	sounded := false
	for i := 0; i < len(v.buf); i++ {
		if v.next() != 0 {
			sounded = true
			break
		}
	}
	if !sounded {
		t.Error("voice still silent after strum delay elapsed")
	}
}

func TestVoiceMinimumDelayLine(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, freq := range []float64{0, 100000} {
		v := newVoice(44100, freq, 1.0, 0.9, 0, rng)
		if len(v.buf) != 2 {
			t.Errorf("freq %v: delay line length = %d, want floor of 2", freq, len(v.buf))
		}
	}
}

func TestSynthReadMixesStereo(t *testing.T) {
	s := testSynth(DefaultConfig(), 4)
	s.PlayNote(220, 1.0)

	buf := make([]byte, 4096)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("Read returned %d bytes, want %d", n, len(buf))
	}

	nonZero := false
	for i := 0; i < n; i += 4 {
		if buf[i] != 0 || buf[i+1] != 0 {
			nonZero = true
		}
		if buf[i] != buf[i+2] || buf[i+1] != buf[i+3] {
			t.Fatalf("frame %d: left and right channels differ", i/4)
		}
	}
	if !nonZero {
		t.Error("mix is silent after PlayNote")
	}
}

func TestSynthReadSilenceWithoutVoices(t *testing.T) {
	s := testSynth(DefaultConfig(), 5)
	buf := make([]byte, 64)
	if _, err := s.Read(buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, b)
		}
	}
}

func TestPlayChordStaggersVoices(t *testing.T) {
	s := testSynth(DefaultConfig(), 6)
	s.PlayChord([]float64{110, 220, 440}, 10*time.Millisecond)

	if len(s.voices) != 3 {
		t.Fatalf("voices = %d, want 3", len(s.voices))
	}
	perString := 441 // 10ms at 44100Hz
	for i, v := range s.voices {
		if v.strum != i*perString {
			t.Errorf("voice %d strum delay = %d samples, want %d", i, v.strum, i*perString)
		}
	}
}

func TestVoiceStealingAtCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxVoices = 4
	s := testSynth(cfg, 7)
	for i := 0; i < 6; i++ {
		s.PlayNote(110+float64(i), 1.0)
	}

	if len(s.voices) != 4 {
		t.Fatalf("voices = %d, want cap of 4", len(s.voices))
	}
	// The oldest two voices were stolen; the survivors carry the delay
	// line lengths of the last four frequencies.
	wantLens := []int{393, 390, 386, 383}
	for i, v := range s.voices {
		if len(v.buf) != wantLens[i] {
			t.Errorf("voice %d delay line = %d, want %d", i, len(v.buf), wantLens[i])
		}
	}
}

func TestReadRetiresSpentVoices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Feedback = 0.1
	s := testSynth(cfg, 8)
	s.PlayNote(441, 1.0)

	buf := make([]byte, 8192)
	for i := 0; i < 5; i++ {
		if _, err := s.Read(buf); err != nil {
			t.Fatalf("Read: %v", err)
		}
	}
	if len(s.voices) != 0 {
		t.Errorf("spent voice still held, voices = %d", len(s.voices))
	}
}

func TestMockRecordsCalls(t *testing.T) {
	m := NewMock()

	var _ Output = m

	m.PlayNote(220, 0.8)
	m.PlayChord([]float64{110, 165, 220}, 45*time.Millisecond)

	notes := m.Notes()
	if len(notes) != 1 || notes[0].Frequency != 220 || notes[0].Velocity != 0.8 {
		t.Errorf("recorded notes = %+v, want one note 220Hz at 0.8", notes)
	}
	chords := m.Chords()
	if len(chords) != 1 || len(chords[0].Frequencies) != 3 || chords[0].Spacing != 45*time.Millisecond {
		t.Errorf("recorded chords = %+v, want one three-note chord spaced 45ms", chords)
	}
	if m.Closed() {
		t.Error("mock reports closed before Close")
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !m.Closed() {
		t.Error("mock does not report closed after Close")
	}
}
