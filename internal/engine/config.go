// Package engine implements the per-frame interaction core of the
// installation: the summon/lock state machine, the virtual string field
// between the visitor's hands, pluck detection, and note judging for the
// recital variant. The engine is pure with respect to the outside world:
// Update mutates internal state and returns effect requests; it never
// draws, plays audio, or touches a socket.
package engine

import (
	"time"

	"github.com/ayusman/veena/internal/geom"
	"github.com/ayusman/veena/internal/gesture"
	"github.com/ayusman/veena/internal/music"
	"github.com/ayusman/veena/internal/rhythm"
)

// FixedLayout pins the string field to a fixed axis instead of the
// visitor's hands. Used by the guitar experience.
type FixedLayout struct {
	Left  geom.Point
	Right geom.Point
}

// Config holds every tuned parameter of one experience. The three
// experiences are presets over the same engine.
type Config struct {
	// Canvas size in pixels. Landmark coordinates arrive normalized and
	// are mapped onto this canvas.
	Width  float64
	Height float64

	// SpawnDistance is the normalized two-hand distance below which the
	// summon gesture counts, held for SpawnHoldFrames frames to toggle
	// the string field. After a toggle the gesture is spent until the
	// hands separate past SpawnDistance*RearmFactor.
	SpawnDistance   float64
	SpawnHoldFrames int
	RearmFactor     float64

	// HoldDecay is how many frames of hold progress drain per frame
	// while a gesture condition lapses but both hands remain tracked.
	HoldDecay int

	// Lock freezes the string field in place so one hand can play alone.
	// Stretching past LockDistance for LockHoldFrames locks; bringing
	// the hands inside UnlockDistance releases immediately.
	LockEnabled    bool
	LockDistance   float64
	LockHoldFrames int
	UnlockDistance float64

	// String field shape.
	StringCount int
	StringGap   float64 // pixel offset between adjacent strings
	Smoothing   float64 // per-frame lerp factor toward raw anchors
	Layout      *FixedLayout

	// Plucking.
	Cooldown         time.Duration
	PluckStrength    float64
	NeighborStrength float64
	VibrationDecay   float64

	// Pose thresholds and the gestures layered on top of them.
	Gestures    gesture.Thresholds
	PinchCycle  bool // pinch-hold advances the chord progression preset
	PinchHold   time.Duration
	ExitEnabled bool // open-palm-hold requests leaving the experience
	ExitHold    time.Duration

	// Voicing. Scale drives per-string notes; Progressions, when
	// non-empty, switch plucks to strummed chords picked by horizontal
	// position.
	Scale        music.Scale
	Progressions []music.Progression

	// Judging windows for the recital variant. Armed by SetChart.
	Windows rhythm.Windows
}

// HarpConfig returns the landing experience: three strings strung between
// the visitor's hands, lockable, tuned to A minor pentatonic.
func HarpConfig() Config {
	return Config{
		Width:  1280,
		Height: 720,

		SpawnDistance:   0.08,
		SpawnHoldFrames: 60,
		RearmFactor:     1.5,
		HoldDecay:       5,

		LockEnabled:    true,
		LockDistance:   0.55,
		LockHoldFrames: 30,
		UnlockDistance: 0.25,

		StringCount: 3,
		StringGap:   28,
		Smoothing:   0.2,

		Cooldown:         150 * time.Millisecond,
		PluckStrength:    25,
		NeighborStrength: 10,
		VibrationDecay:   0.86,

		Gestures: gesture.DefaultThresholds(),

		Scale:   music.MinorPentatonic(57),
		Windows: rhythm.DefaultWindows(),
	}
}

// GuitarConfig returns the guitar experience: six strings fixed across the
// canvas, strummed chords from a cyclable progression, pinch-hold to change
// progression, open palm to leave.
func GuitarConfig() Config {
	cfg := HarpConfig()

	cfg.LockEnabled = false
	cfg.StringCount = 6
	cfg.StringGap = 46
	cfg.Layout = &FixedLayout{
		Left:  geom.Point{X: 160, Y: 360},
		Right: geom.Point{X: 1120, Y: 360},
	}

	cfg.Cooldown = 1100 * time.Millisecond
	cfg.Progressions = music.Progressions()
	cfg.PinchCycle = true
	cfg.PinchHold = 2 * time.Second
	cfg.ExitEnabled = true
	cfg.ExitHold = 2 * time.Second

	return cfg
}

// RecitalConfig returns the rhythm experience: the harp layout with note
// judging against a song chart. Arm the chart with SetChart before
// starting the transport.
func RecitalConfig() Config {
	cfg := HarpConfig()
	cfg.ExitEnabled = true
	cfg.ExitHold = 2 * time.Second
	return cfg
}
