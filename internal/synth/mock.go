package synth

import (
	"sync"
	"time"
)

// PlayedNote records one PlayNote call on the mock.
type PlayedNote struct {
	Frequency float64
	Velocity  float64
}

// PlayedChord records one PlayChord call on the mock.
type PlayedChord struct {
	Frequencies []float64
	Spacing     time.Duration
}

// Mock is a test implementation of the Output interface that records every
// call. It also serves as the silent fallback when no audio device exists.
type Mock struct {
	mu     sync.Mutex
	notes  []PlayedNote
	chords []PlayedChord
	closed bool
}

// NewMock creates a new Mock output.
func NewMock() *Mock {
	return &Mock{}
}

// PlayNote records the note.
func (m *Mock) PlayNote(freq, velocity float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = append(m.notes, PlayedNote{Frequency: freq, Velocity: velocity})
}

// PlayChord records the chord.
func (m *Mock) PlayChord(freqs []float64, spacing time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chords = append(m.chords, PlayedChord{Frequencies: freqs, Spacing: spacing})
}

// Close marks the mock closed.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Notes returns the recorded notes.
func (m *Mock) Notes() []PlayedNote {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PlayedNote(nil), m.notes...)
}

// Chords returns the recorded chords.
func (m *Mock) Chords() []PlayedChord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PlayedChord(nil), m.chords...)
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
