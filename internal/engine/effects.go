package engine

import (
	"time"

	"github.com/ayusman/veena/internal/geom"
	"github.com/ayusman/veena/internal/rhythm"
)

// Effect is a side-effect request produced by Update. The host dispatches
// effects to the synthesizer, the stage, and any installed plugins; the
// engine itself performs none of them.
type Effect interface {
	isEffect()
}

// SpawnEffect reports the string field appearing or vanishing.
type SpawnEffect struct {
	Spawned bool
}

// LockEffect reports the string field freezing in place or releasing.
type LockEffect struct {
	Locked bool
}

// PluckEffect reports a fingertip crossing a string.
type PluckEffect struct {
	String int        // string slot that was struck
	Pos    geom.Point // fingertip position at the crossing, in pixels
	Hand   int        // tracker hand index
	Finger int        // fingertip landmark index
}

// NoteEffect asks the synthesizer for a single plucked note.
type NoteEffect struct {
	Frequency float64
	Velocity  float64 // 0..1
}

// ChordEffect asks the synthesizer for a strummed chord, notes ordered
// bass to treble.
type ChordEffect struct {
	Name        string
	Frequencies []float64
	Spacing     time.Duration // delay between successive strings
}

// SwirlEffect asks the stage for a particle swirl.
type SwirlEffect struct {
	Pos       geom.Point
	Intensity float64
	Decay     float64
}

// BeamEffect asks the stage for a transient light beam.
type BeamEffect struct {
	From  geom.Point
	To    geom.Point
	Color string
}

// PresetEffect reports the chord progression preset changing.
type PresetEffect struct {
	Index int
	Name  string
}

// JudgmentEffect reports a judged strike in the recital variant. Strikes
// with no approaching note judge as a miss with String set to the struck
// slot.
type JudgmentEffect struct {
	Verdict  rhythm.Verdict
	String   int
	Progress float64
}

// ExitEffect reports the visitor asking to leave the experience.
type ExitEffect struct{}

func (SpawnEffect) isEffect()    {}
func (LockEffect) isEffect()     {}
func (PluckEffect) isEffect()    {}
func (NoteEffect) isEffect()     {}
func (ChordEffect) isEffect()    {}
func (SwirlEffect) isEffect()    {}
func (BeamEffect) isEffect()     {}
func (PresetEffect) isEffect()   {}
func (JudgmentEffect) isEffect() {}
func (ExitEffect) isEffect()     {}
