package engine

import (
	"time"

	"github.com/ayusman/veena/internal/detector"
	"github.com/ayusman/veena/internal/geom"
	"github.com/ayusman/veena/internal/gesture"
	"github.com/ayusman/veena/internal/rhythm"
)

// Mode is the interaction state of the string field.
type Mode string

const (
	// ModeDormant means no strings exist; the summon gesture creates them.
	ModeDormant Mode = "dormant"
	// ModeActive means the strings hang between the visitor's hands.
	ModeActive Mode = "active"
	// ModeLocked means the strings are frozen in place for one-handed play.
	ModeLocked Mode = "locked"
)

// Clock is the playback position the judge reads. Satisfied by
// rhythm.Transport.
type Clock interface {
	NowMs() int64
	Playing() bool
}

const (
	presetFlashDuration = 600 * time.Millisecond
	strumSpacing        = 45 * time.Millisecond

	beamColorSpawn   = "#7de0ff"
	beamColorPerfect = "#ffd700"

	swirlDecay = 0.9

	// Vibration strength scaling for judged strikes.
	strengthFactorGood = 0.8
	strengthFactorMiss = 0.48
)

// Engine runs the interaction core for one experience. It is driven by a
// single goroutine: the host calls Update once per camera frame and reads
// Snapshot afterward. The engine performs no I/O.
type Engine struct {
	cfg Config

	mode       Mode
	spawnHold  int
	spawnLatch bool
	lockHold   int

	pinchStart time.Time
	pinchLatch bool
	exitStart  time.Time
	exitLatch  bool

	presetIdx  int
	flashUntil time.Time

	field   *stringField
	tracker *pluckTracker
	lastHit time.Time

	judge *rhythm.Judge
	clock Clock
}

// New creates a dormant engine for the given experience configuration.
func New(cfg Config) *Engine {
	return &Engine{
		cfg:     cfg,
		mode:    ModeDormant,
		field:   newStringField(cfg.StringCount),
		tracker: newPluckTracker(),
	}
}

// Mode returns the current interaction mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetChart arms note judging against a song chart and its playback clock.
// Judging only takes effect while the clock reports playing; otherwise the
// engine behaves as free play.
func (e *Engine) SetChart(song *rhythm.Song, clock Clock) {
	e.judge = rhythm.NewJudge(song, e.cfg.Windows)
	e.clock = clock
}

// ClearChart disarms judging.
func (e *Engine) ClearChart() {
	e.judge = nil
	e.clock = nil
}

// ChartDone reports whether an armed chart has spawned and resolved every
// note.
func (e *Engine) ChartDone() bool {
	return e.judge != nil && e.judge.Done()
}

// Reset returns the engine to dormant and clears every gesture in
// progress. Called when the installation switches experiences.
func (e *Engine) Reset() {
	e.mode = ModeDormant
	e.spawnHold = 0
	e.spawnLatch = false
	e.lockHold = 0
	e.pinchStart = time.Time{}
	e.pinchLatch = false
	e.exitStart = time.Time{}
	e.exitLatch = false
	e.presetIdx = 0
	e.flashUntil = time.Time{}
	e.field.reset()
	e.tracker.reset()
	e.lastHit = time.Time{}
	e.ClearChart()
}

// Update advances the engine by one camera frame. hands is the tracker
// output for the frame, possibly empty; now is the frame timestamp.
// Returns the side effects the host should dispatch.
func (e *Engine) Update(hands []detector.HandLandmarks, now time.Time) []Effect {
	var effects []Effect

	signals := make([]gesture.Signals, len(hands))
	for i := range hands {
		signals[i] = gesture.Classify(&hands[i], e.cfg.Gestures)
	}

	effects = e.updateExit(signals, now, effects)
	effects = e.updatePreset(signals, now, effects)
	effects = e.updateSummon(hands, effects)
	effects = e.updateLock(hands, effects)

	e.updateGeometry(hands)

	effects = e.advanceChart(effects)
	effects = e.updatePlucks(hands, now, effects)

	e.field.decay(e.cfg.VibrationDecay)

	return effects
}

// anchorPoint maps a hand's index fingertip onto the canvas.
func (e *Engine) anchorPoint(hand *detector.HandLandmarks) geom.Point {
	p := hand.Points[detector.IndexTip]
	return geom.Point{X: p.X * e.cfg.Width, Y: p.Y * e.cfg.Height}
}

// updateExit watches the first tracked hand for a held open palm.
func (e *Engine) updateExit(signals []gesture.Signals, now time.Time, effects []Effect) []Effect {
	if !e.cfg.ExitEnabled {
		return effects
	}
	if len(signals) == 0 || !signals[0].OpenPalm {
		e.exitStart = time.Time{}
		e.exitLatch = false
		return effects
	}
	if e.exitLatch {
		return effects
	}
	if e.exitStart.IsZero() {
		e.exitStart = now
		return effects
	}
	if now.Sub(e.exitStart) >= e.cfg.ExitHold {
		e.exitLatch = true
		effects = append(effects, ExitEffect{})
	}
	return effects
}

// updatePreset watches for a held pinch on any hand and cycles the chord
// progression when it completes. The pinch must release before it can
// cycle again.
func (e *Engine) updatePreset(signals []gesture.Signals, now time.Time, effects []Effect) []Effect {
	if !e.cfg.PinchCycle || len(e.cfg.Progressions) == 0 {
		return effects
	}

	pinched := false
	for _, s := range signals {
		if s.Pinched {
			pinched = true
			break
		}
	}
	if !pinched {
		e.pinchStart = time.Time{}
		e.pinchLatch = false
		return effects
	}
	if e.pinchLatch {
		return effects
	}
	if e.pinchStart.IsZero() {
		e.pinchStart = now
		return effects
	}
	if now.Sub(e.pinchStart) >= e.cfg.PinchHold {
		e.pinchLatch = true
		e.presetIdx = (e.presetIdx + 1) % len(e.cfg.Progressions)
		e.flashUntil = now.Add(presetFlashDuration)
		effects = append(effects, PresetEffect{
			Index: e.presetIdx,
			Name:  e.cfg.Progressions[e.presetIdx].Name,
		})
	}
	return effects
}

// updateSummon runs the two-hand summon: holding the index fingertips
// together toggles the string field. Hold progress drains while the hands
// separate and resets outright when a hand drops out of tracking.
func (e *Engine) updateSummon(hands []detector.HandLandmarks, effects []Effect) []Effect {
	if len(hands) < 2 {
		e.spawnHold = 0
		return effects
	}
	dist := gesture.TwoHandDistance(&hands[0], &hands[1])
	if dist < 0 {
		e.spawnHold = 0
		return effects
	}

	if e.spawnLatch {
		if dist > e.cfg.SpawnDistance*e.cfg.RearmFactor {
			e.spawnLatch = false
		}
		return effects
	}

	if dist < e.cfg.SpawnDistance {
		e.spawnHold++
		if e.spawnHold >= e.cfg.SpawnHoldFrames {
			e.spawnHold = 0
			e.spawnLatch = true
			effects = e.toggleField(hands, effects)
		}
		return effects
	}

	e.spawnHold -= e.cfg.HoldDecay
	if e.spawnHold < 0 {
		e.spawnHold = 0
	}
	return effects
}

// toggleField flips between dormant and active.
func (e *Engine) toggleField(hands []detector.HandLandmarks, effects []Effect) []Effect {
	e.field.reset()
	e.lockHold = 0

	if e.mode == ModeDormant {
		e.mode = ModeActive
		effects = append(effects, SpawnEffect{Spawned: true})
		effects = append(effects, BeamEffect{
			From:  e.anchorPoint(&hands[0]),
			To:    e.anchorPoint(&hands[1]),
			Color: beamColorSpawn,
		})
		return effects
	}

	e.mode = ModeDormant
	return append(effects, SpawnEffect{Spawned: false})
}

// updateLock runs the stretch-to-lock machine. Locking needs a long hold;
// unlocking is immediate once the hands come back together.
func (e *Engine) updateLock(hands []detector.HandLandmarks, effects []Effect) []Effect {
	if !e.cfg.LockEnabled || e.mode == ModeDormant {
		e.lockHold = 0
		return effects
	}
	if len(hands) < 2 {
		e.lockHold = 0
		return effects
	}
	dist := gesture.TwoHandDistance(&hands[0], &hands[1])
	if dist < 0 {
		e.lockHold = 0
		return effects
	}

	switch e.mode {
	case ModeActive:
		if dist > e.cfg.LockDistance {
			e.lockHold++
			if e.lockHold >= e.cfg.LockHoldFrames {
				e.lockHold = 0
				e.mode = ModeLocked
				e.field.freeze()
				effects = append(effects, LockEffect{Locked: true})
			}
		} else {
			e.lockHold -= e.cfg.HoldDecay
			if e.lockHold < 0 {
				e.lockHold = 0
			}
		}
	case ModeLocked:
		if dist < e.cfg.UnlockDistance {
			e.mode = ModeActive
			effects = append(effects, LockEffect{Locked: false})
		}
	}
	return effects
}

// updateGeometry eases the live anchors toward the index fingertips. With
// a fixed layout or a frozen field there is nothing to follow; with one
// hand missing the strings hold their last position.
func (e *Engine) updateGeometry(hands []detector.HandLandmarks) {
	if e.cfg.Layout != nil || e.mode != ModeActive {
		return
	}
	if len(hands) < 2 {
		return
	}
	e.field.observe(e.anchorPoint(&hands[0]), e.anchorPoint(&hands[1]), e.cfg.Smoothing)
}

// advanceChart moves the judge to the current playback position and
// reports notes that slipped past unhit.
func (e *Engine) advanceChart(effects []Effect) []Effect {
	if !e.judging() {
		return effects
	}
	for _, missed := range e.judge.Advance(e.clock.NowMs()) {
		effects = append(effects, JudgmentEffect{
			Verdict:  rhythm.VerdictMiss,
			String:   missed.Note.String,
			Progress: missed.Progress,
		})
	}
	return effects
}

func (e *Engine) judging() bool {
	return e.judge != nil && e.clock != nil && e.clock.Playing()
}

// updatePlucks tracks fingertip motion and tests it against the strings.
// Fingertip positions refresh every frame regardless of mode so that the
// first frame after a spawn starts from known positions.
func (e *Engine) updatePlucks(hands []detector.HandLandmarks, now time.Time, effects []Effect) []Effect {
	motions := e.tracker.advance(hands, e.cfg.Width, e.cfg.Height)
	if e.mode == ModeDormant {
		return effects
	}
	segs := e.field.segments(&e.cfg, e.mode == ModeLocked)
	if len(segs) == 0 {
		return effects
	}

	for _, m := range motions {
		if now.Sub(e.lastHit) < e.cfg.Cooldown {
			break
		}
		for slot, seg := range segs {
			if !geom.SegmentsIntersect(m.seg, seg) {
				continue
			}
			e.lastHit = now
			effects = e.acceptHit(slot, seg, m, effects)
			break
		}
	}
	return effects
}

// acceptHit emits the effects for one accepted string crossing: the pluck
// itself, its judgment when a chart is playing, its sound, and its stage
// dressing.
func (e *Engine) acceptHit(slot int, seg geom.Segment, m fingerMotion, effects []Effect) []Effect {
	pos := m.seg.P2
	effects = append(effects, PluckEffect{
		String: slot,
		Pos:    pos,
		Hand:   m.key.hand,
		Finger: m.key.finger,
	})

	strength := e.cfg.PluckStrength
	if e.judging() {
		j := e.judge.JudgeHit(slot, e.clock.NowMs())
		effects = append(effects, JudgmentEffect{
			Verdict:  j.Verdict,
			String:   slot,
			Progress: j.Progress,
		})
		switch j.Verdict {
		case rhythm.VerdictGood:
			strength *= strengthFactorGood
		case rhythm.VerdictMiss:
			strength *= strengthFactorMiss
		default:
			effects = append(effects, BeamEffect{From: seg.P1, To: seg.P2, Color: beamColorPerfect})
		}
	}
	e.field.excite(slot, strength, e.cfg.NeighborStrength)

	frac := pos.X / e.cfg.Width
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	if len(e.cfg.Progressions) > 0 {
		chord := e.cfg.Progressions[e.presetIdx].ChordAt(frac)
		effects = append(effects, ChordEffect{
			Name:        chord.Name,
			Frequencies: chord.Frequencies(),
			Spacing:     strumSpacing,
		})
	} else {
		effects = append(effects, NoteEffect{
			Frequency: e.cfg.Scale.NoteFrequency(slot, frac),
			Velocity:  pluckVelocity(m.seg.Length()),
		})
	}

	return append(effects, SwirlEffect{Pos: pos, Intensity: strength, Decay: swirlDecay})
}

// pluckVelocity maps fingertip travel in pixels to a 0.4..1 velocity so a
// lazy crossing sounds softer than a flick.
func pluckVelocity(travel float64) float64 {
	v := 0.4 + travel/200
	if v > 1 {
		v = 1
	}
	return v
}
