package app

import (
	"log"
	"time"

	"github.com/ayusman/veena/internal/detector"
	"github.com/ayusman/veena/internal/engine"
	"github.com/ayusman/veena/internal/plugin"
)

// runPipeline is the frame loop. Every tick it reads a camera frame, feeds
// the detected hands through the engine, dispatches the resulting effects,
// and publishes the composed stage frame.
//
// Frame rate gating:
// 1. Start at the idle rate (5 FPS)
// 2. Motion or a live string field switches to the active rate (30 FPS)
// 3. Dormant field plus 2 s without motion drops back to idle
func (a *App) runPipeline(stop <-chan struct{}) {
	activeMode := false
	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// Skip processing if tracking is disabled
			if !a.IsEnabled() {
				continue
			}

			now := time.Now()
			hands := a.readHands()

			a.mu.Lock()
			effects := a.engine.Update(hands, now)
			a.applyEffectsLocked(effects, now)
			if a.song != nil && (a.engine.ChartDone() || a.transport.Done()) {
				a.finishSongLocked()
			}
			snap := a.engine.Snapshot(now)
			frame := a.stage.Compose(snap, now)
			a.mu.Unlock()

			if a.config.Publisher != nil {
				a.config.Publisher.Publish(frame)
			}

			// A live string field keeps the loop at the active rate even
			// while the visitor holds still. Without a camera there is
			// nothing to chase; stay idle.
			wantActive := snap.Mode != engine.ModeDormant ||
				(a.camera.IsOpen() && a.motion.StillFor() < time.Duration(IdleTimeoutMs)*time.Millisecond)

			if wantActive && !activeMode {
				activeMode = true
				a.camera.SetFPS(ActiveFPS)
				frameInterval = time.Second / time.Duration(ActiveFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to active frame rate")
			} else if !wantActive && activeMode {
				activeMode = false
				a.camera.SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to idle frame rate")
			}
		}
	}
}

// readHands reads one camera frame and returns the hands found in it. A
// missing camera or a failed read yields an empty frame, never an error:
// the engine treats that as all hands leaving.
func (a *App) readHands() []detector.HandLandmarks {
	if !a.camera.IsOpen() {
		return nil
	}

	frame, err := a.camera.ReadFrame()
	if err != nil {
		log.Printf("Error reading frame: %v", err)
		return nil
	}
	defer frame.Close()

	a.motion.Detect(frame)

	d := a.Detector()
	if d == nil {
		return nil
	}

	hands, err := d.Detect(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		return nil
	}
	return hands
}

// applyEffectsLocked dispatches engine effects to the synthesizer, the
// stage, the tally, and subscribed plugins. Caller holds a.mu.
func (a *App) applyEffectsLocked(effects []engine.Effect, now time.Time) {
	for _, eff := range effects {
		switch ef := eff.(type) {
		case engine.NoteEffect:
			a.output.PlayNote(ef.Frequency, ef.Velocity)
		case engine.ChordEffect:
			a.output.PlayChord(ef.Frequencies, ef.Spacing)
		case engine.SwirlEffect:
			a.stage.AddSwirl(ef.Pos, ef.Intensity, ef.Decay)
		case engine.BeamEffect:
			a.stage.AddBeam(ef.From, ef.To, ef.Color)
		case engine.PluckEffect:
			a.queueEvent(plugin.EventPluck, now, pluckPayload{
				String: ef.String,
				Hand:   ef.Hand,
				Finger: ef.Finger,
			})
		case engine.SpawnEffect:
			a.queueEvent(plugin.EventSpawn, now, spawnPayload{Spawned: ef.Spawned})
		case engine.PresetEffect:
			a.queueEvent(plugin.EventPreset, now, presetPayload{
				Index: ef.Index,
				Name:  ef.Name,
			})
		case engine.JudgmentEffect:
			a.tally.Record(ef.Verdict)
			a.queueEvent(plugin.EventJudgment, now, judgmentPayload{
				Verdict: string(ef.Verdict),
				String:  ef.String,
			})
		case engine.ExitEffect:
			log.Println("Exit gesture, returning to harp")
			a.setExperienceLocked(ExperienceHarp, engine.HarpConfig())
		}
	}
}
