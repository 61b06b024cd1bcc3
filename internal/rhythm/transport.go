package rhythm

import (
	"sync"
	"time"
)

// Transport is the playback clock for a recital. It advances monotonically
// while playing and holds its position while paused. Safe for concurrent
// use; the API goroutine starts and stops it while the frame loop reads it.
type Transport struct {
	mu       sync.Mutex
	playing  bool
	start    time.Time // wall time when the current play segment began
	position int64     // ms accumulated before the current play segment
	duration int64     // ms; 0 means open-ended
	now      func() time.Time
}

// NewTransport creates a stopped transport for a song of the given
// duration in milliseconds.
func NewTransport(durationMs int64) *Transport {
	return &Transport{duration: durationMs, now: time.Now}
}

// Play starts or resumes playback.
func (t *Transport) Play() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.playing {
		return
	}
	t.start = t.now()
	t.playing = true
}

// Pause stops the clock without losing the position.
func (t *Transport) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.playing {
		return
	}
	t.position += t.now().Sub(t.start).Milliseconds()
	t.playing = false
}

// Stop halts playback and rewinds to zero.
func (t *Transport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.playing = false
	t.position = 0
}

// NowMs returns the current song position in milliseconds.
func (t *Transport) NowMs() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.playing {
		return t.position
	}
	return t.position + t.now().Sub(t.start).Milliseconds()
}

// Playing reports whether the clock is running.
func (t *Transport) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

// Done reports whether playback has passed the song's duration.
func (t *Transport) Done() bool {
	t.mu.Lock()
	duration := t.duration
	t.mu.Unlock()
	if duration <= 0 {
		return false
	}
	return t.NowMs() >= duration
}
