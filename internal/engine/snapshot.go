package engine

import (
	"time"

	"github.com/ayusman/veena/internal/geom"
	"github.com/ayusman/veena/internal/rhythm"
)

// StringState is one string's renderable state for a frame.
type StringState struct {
	Index     int
	Seg       geom.Segment
	Amplitude float64
}

// Snapshot is everything the render path reads from the engine for one
// frame. It is plain data; composing the actual stage frame happens
// outside the engine.
type Snapshot struct {
	Mode          Mode
	SpawnProgress float64 // 0..1 toward a summon toggle
	LockProgress  float64 // 0..1 toward a lock
	Preset        int
	PresetName    string
	PresetFlash   bool
	Strings       []StringState
	Notes         []rhythm.ActiveNote
}

// Snapshot captures the renderable state at the given frame time.
func (e *Engine) Snapshot(now time.Time) Snapshot {
	snap := Snapshot{
		Mode:          e.mode,
		SpawnProgress: holdProgress(e.spawnHold, e.cfg.SpawnHoldFrames),
		LockProgress:  holdProgress(e.lockHold, e.cfg.LockHoldFrames),
		Preset:        e.presetIdx,
		PresetFlash:   now.Before(e.flashUntil),
	}
	if len(e.cfg.Progressions) > 0 {
		snap.PresetName = e.cfg.Progressions[e.presetIdx].Name
	}

	if e.mode != ModeDormant {
		segs := e.field.segments(&e.cfg, e.mode == ModeLocked)
		snap.Strings = make([]StringState, len(segs))
		for i, seg := range segs {
			snap.Strings[i] = StringState{Index: i, Seg: seg, Amplitude: e.field.amps[i]}
		}
	}

	if e.judge != nil {
		active := e.judge.Active()
		snap.Notes = make([]rhythm.ActiveNote, len(active))
		for i, an := range active {
			snap.Notes[i] = *an
		}
	}

	return snap
}

// NotePosition maps an active note onto the canvas: it slides along its
// string slot's segment from the left anchor toward the right as progress
// runs 0 to 1. Returns false when the slot has no string this frame.
func (s Snapshot) NotePosition(n rhythm.ActiveNote) (geom.Point, bool) {
	if n.Note.String < 0 || n.Note.String >= len(s.Strings) {
		return geom.Point{}, false
	}
	seg := s.Strings[n.Note.String].Seg
	p := n.Progress
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return geom.Lerp(seg.P1, seg.P2, p), true
}

func holdProgress(hold, target int) float64 {
	if target <= 0 {
		return 0
	}
	p := float64(hold) / float64(target)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
