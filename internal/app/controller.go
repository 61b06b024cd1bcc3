package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ayusman/veena/internal/engine"
	"github.com/ayusman/veena/internal/rhythm"
	"github.com/ayusman/veena/internal/server/api"
	"github.com/ayusman/veena/internal/store"
)

// experienceConfig maps an experience name to its engine configuration.
func experienceConfig(name string) (engine.Config, error) {
	switch name {
	case ExperienceHarp:
		return engine.HarpConfig(), nil
	case ExperienceGuitar:
		return engine.GuitarConfig(), nil
	case ExperienceRecital:
		return engine.RecitalConfig(), nil
	default:
		return engine.Config{}, fmt.Errorf("unknown experience: %s", name)
	}
}

// SetExperience switches the installation to the named experience and
// persists the choice. Any running recital is abandoned.
func (a *App) SetExperience(name string) error {
	cfg, err := experienceConfig(name)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.setExperienceLocked(name, cfg)
	a.mu.Unlock()

	if a.config.Store != nil {
		if err := a.config.Store.Settings().Set("experience", name); err != nil {
			log.Printf("Failed to save experience setting: %v", err)
		}
	}
	return nil
}

// setExperienceLocked swaps in a fresh engine for the named experience.
// Caller holds a.mu.
func (a *App) setExperienceLocked(name string, cfg engine.Config) {
	if a.transport != nil {
		a.transport.Stop()
	}
	a.engine = engine.New(cfg)
	a.stage.Reset()
	a.tally = &rhythm.Tally{}
	a.song = nil
	a.transport = nil
	a.experience = name
	log.Printf("Experience switched to %s", name)
}

// PlaySong loads a song from the library, switches to the recital
// experience, and starts the playback clock. The string field stays
// dormant until the visitor summons it; the song's lead time covers that.
func (a *App) PlaySong(id string) error {
	if a.config.Store == nil {
		return errors.New("no song library")
	}

	song, err := a.config.Store.Songs().GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to load song: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.setExperienceLocked(ExperienceRecital, engine.RecitalConfig())
	a.song = song
	a.transport = rhythm.NewTransport(song.Duration)
	a.engine.SetChart(song, a.transport)
	a.transport.Play()

	log.Printf("Recital started: %s", song.Title)
	return nil
}

// StopSong abandons the current recital without recording a performance.
// The installation stays in the recital experience as free play.
func (a *App) StopSong() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.transport == nil {
		return
	}
	a.transport.Stop()
	a.engine.ClearChart()
	a.song = nil
	a.transport = nil
	log.Println("Recital stopped")
}

// Status reports the current experience, mode, and recital state.
func (a *App) Status() api.Status {
	a.mu.RLock()
	defer a.mu.RUnlock()

	st := api.Status{
		Experience: a.experience,
		Mode:       string(a.engine.Mode()),
		Score:      a.tally.Score,
		Combo:      a.tally.Combo,
	}
	if a.song != nil {
		st.SongID = a.song.ID
		st.SongTitle = a.song.Title
		st.Playing = a.transport.Playing()
	}
	return st
}

// finishSongLocked records the performance for a completed recital and
// disarms the chart. Caller holds a.mu.
func (a *App) finishSongLocked() {
	log.Printf("Recital finished: %s (score %d)", a.song.Title, a.tally.Score)

	if a.config.Store != nil {
		perf := &store.Performance{
			ID:       uuid.New().String(),
			SongID:   a.song.ID,
			Perfect:  a.tally.Perfect,
			Good:     a.tally.Good,
			Miss:     a.tally.Miss,
			Score:    a.tally.Score,
			MaxCombo: a.tally.MaxCombo,
		}
		if err := a.config.Store.Performances().Create(perf); err != nil {
			log.Printf("Failed to record performance: %v", err)
		}
	}

	a.transport.Stop()
	a.engine.ClearChart()
	a.song = nil
	a.transport = nil
}
