package rhythm

import "math"

// Verdict classifies one judged strike.
type Verdict string

const (
	VerdictPerfect Verdict = "perfect"
	VerdictGood    Verdict = "good"
	VerdictMiss    Verdict = "miss"
)

// Windows holds the judging tolerances, expressed in note progress where
// 1.0 is the exact target time.
type Windows struct {
	// Perfect is the half-width of the perfect window around progress 1.
	Perfect float64
	// Good is the half-width of the hittable window around progress 1.
	// A note past 1+Good without a hit counts as missed.
	Good float64
	// Gone is the progress at which a note is purged outright.
	Gone float64
}

// DefaultWindows returns the tuned judging windows.
func DefaultWindows() Windows {
	return Windows{Perfect: 0.08, Good: 0.15, Gone: 1.3}
}

// ActiveNote is a chart note inside its approach window. Progress runs from
// 0 when the note appears to 1 at its target time.
type ActiveNote struct {
	Note     SongNote `json:"note"`
	Progress float64  `json:"progress"`
	Hit      bool     `json:"hit"`
	Missed   bool     `json:"missed"`
}

// Judgment is the outcome of one strike. Note is nil when the strike hit
// no approaching note.
type Judgment struct {
	Verdict  Verdict
	Note     *ActiveNote
	Progress float64
}

// Judge tracks a song's approaching notes against a playback clock and
// scores strikes. It is single-threaded like the engine that drives it.
type Judge struct {
	song    *Song
	windows Windows
	active  []*ActiveNote
	next    int // index into song.Notes of the next note to spawn
}

// NewJudge creates a judge for a song. The chart is re-sorted so spawn
// order matches time order.
func NewJudge(song *Song, windows Windows) *Judge {
	song.SortNotes()
	return &Judge{song: song, windows: windows}
}

// Active returns the notes currently in flight, oldest first. The slice is
// reused across frames; callers must not retain it.
func (j *Judge) Active() []*ActiveNote {
	return j.active
}

// Advance moves the judge to the given song time: notes entering their lead
// window spawn, progress updates, and overdue notes are marked missed.
// Returns the notes that became missed on this call. Hit notes and notes
// past the gone threshold are dropped.
func (j *Judge) Advance(nowMs int64) []*ActiveNote {
	if j.song == nil || j.song.LeadTime <= 0 {
		return nil
	}
	lead := float64(j.song.LeadTime)

	for j.next < len(j.song.Notes) {
		note := j.song.Notes[j.next]
		if nowMs < note.Time-j.song.LeadTime {
			break
		}
		j.active = append(j.active, &ActiveNote{Note: note})
		j.next++
	}

	var missed []*ActiveNote
	kept := j.active[:0]
	for _, an := range j.active {
		appear := an.Note.Time - j.song.LeadTime
		an.Progress = float64(nowMs-appear) / lead

		if !an.Hit && !an.Missed && an.Progress > 1+j.windows.Good {
			an.Missed = true
			missed = append(missed, an)
		}

		// Hit notes leave the board immediately; missed notes linger
		// until the gone threshold so the renderer can fade them.
		if an.Hit || an.Progress >= j.windows.Gone {
			continue
		}
		kept = append(kept, an)
	}
	for i := len(kept); i < len(j.active); i++ {
		j.active[i] = nil
	}
	j.active = kept

	return missed
}

// JudgeHit scores a strike on a string slot at the given song time. The
// hittable candidate closest to its target time wins. A strike with no
// candidate in the window is a plain miss with no note attached.
func (j *Judge) JudgeHit(slot int, nowMs int64) Judgment {
	if j.song == nil || j.song.LeadTime <= 0 {
		return Judgment{Verdict: VerdictMiss}
	}
	lead := float64(j.song.LeadTime)

	var best *ActiveNote
	bestDist := math.MaxFloat64
	for _, an := range j.active {
		if an.Hit || an.Missed || an.Note.String != slot {
			continue
		}
		p := float64(nowMs-(an.Note.Time-j.song.LeadTime)) / lead
		if p < 1-j.windows.Good || p > 1+j.windows.Good {
			continue
		}
		if d := math.Abs(p - 1); d < bestDist {
			bestDist = d
			best = an
			best.Progress = p
		}
	}

	if best == nil {
		return Judgment{Verdict: VerdictMiss}
	}

	best.Hit = true
	verdict := VerdictMiss
	switch {
	case bestDist <= j.windows.Perfect:
		verdict = VerdictPerfect
	case bestDist <= j.windows.Good:
		verdict = VerdictGood
	}
	return Judgment{Verdict: verdict, Note: best, Progress: best.Progress}
}

// Done reports whether every chart note has spawned and left the board.
func (j *Judge) Done() bool {
	return j.next >= len(j.song.Notes) && len(j.active) == 0
}
