// Package rhythm implements the recital variant's timing layer: songs as
// timed note charts, falling-note judging with perfect/good/miss windows,
// a playback transport, and per-performance score tallying.
package rhythm

import (
	"fmt"
	"sort"
)

// SongNote is one note in a chart: when it should be struck and on which
// string slot.
type SongNote struct {
	Time   int64 `json:"time"`   // target strike time in ms from song start
	String int   `json:"string"` // string slot index
}

// Song is a playable note chart. Times are milliseconds.
type Song struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	BPM      float64    `json:"bpm"`
	LeadTime int64      `json:"lead_time"` // ms a note is visible before its target time
	Duration int64      `json:"duration"`  // total song length in ms
	Notes    []SongNote `json:"notes"`
}

// Validate checks that the song can be judged.
func (s *Song) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("song has no title")
	}
	if s.BPM <= 0 {
		return fmt.Errorf("song %q: bpm must be positive, got %v", s.Title, s.BPM)
	}
	if s.LeadTime <= 0 {
		return fmt.Errorf("song %q: lead time must be positive, got %d", s.Title, s.LeadTime)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("song %q: duration must be positive, got %d", s.Title, s.Duration)
	}
	for i, n := range s.Notes {
		if n.Time < 0 {
			return fmt.Errorf("song %q: note %d has negative time %d", s.Title, i, n.Time)
		}
		if n.String < 0 {
			return fmt.Errorf("song %q: note %d has negative string %d", s.Title, i, n.String)
		}
	}
	return nil
}

// SortNotes orders the chart by note time, preserving the relative order of
// simultaneous notes.
func (s *Song) SortNotes() {
	sort.SliceStable(s.Notes, func(i, j int) bool {
		return s.Notes[i].Time < s.Notes[j].Time
	})
}
