package rhythm

import (
	"testing"
	"time"
)

func testSong() *Song {
	return &Song{
		ID:       "test-song",
		Title:    "Test Song",
		BPM:      120,
		LeadTime: 2000,
		Duration: 30000,
		Notes: []SongNote{
			{Time: 10000, String: 0},
		},
	}
}

func TestJudgeSpawnsAtLeadTime(t *testing.T) {
	j := NewJudge(testSong(), DefaultWindows())

	j.Advance(7999)
	if len(j.Active()) != 0 {
		t.Fatalf("note spawned before lead window: %d active", len(j.Active()))
	}

	j.Advance(8000)
	if len(j.Active()) != 1 {
		t.Fatalf("note did not spawn at lead window: %d active", len(j.Active()))
	}
	if p := j.Active()[0].Progress; p != 0 {
		t.Errorf("progress at spawn = %v, want 0", p)
	}

	j.Advance(9000)
	if p := j.Active()[0].Progress; p != 0.5 {
		t.Errorf("progress at halfway = %v, want 0.5", p)
	}

	j.Advance(10000)
	if p := j.Active()[0].Progress; p != 1 {
		t.Errorf("progress at target time = %v, want 1", p)
	}
}

func TestJudgeHitWindows(t *testing.T) {
	tests := []struct {
		name     string
		nowMs    int64
		progress float64
		want     Verdict
		wantNote bool
	}{
		{"well early is unhittable", 9680, 0.84, VerdictMiss, false},
		{"early good", 9720, 0.86, VerdictGood, true},
		{"early perfect", 9860, 0.93, VerdictPerfect, true},
		{"exact", 10000, 1.0, VerdictPerfect, true},
		{"late perfect", 10060, 1.03, VerdictPerfect, true},
		{"late good", 10240, 1.12, VerdictGood, true},
		{"too late", 10320, 1.16, VerdictMiss, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := NewJudge(testSong(), DefaultWindows())
			j.Advance(tt.nowMs)

			got := j.JudgeHit(0, tt.nowMs)
			if got.Verdict != tt.want {
				t.Errorf("JudgeHit at progress %v = %v, want %v", tt.progress, got.Verdict, tt.want)
			}
			if (got.Note != nil) != tt.wantNote {
				t.Errorf("JudgeHit at progress %v note attached = %v, want %v", tt.progress, got.Note != nil, tt.wantNote)
			}
		})
	}
}

func TestJudgeHitWrongString(t *testing.T) {
	j := NewJudge(testSong(), DefaultWindows())
	j.Advance(10000)

	got := j.JudgeHit(2, 10000)
	if got.Verdict != VerdictMiss || got.Note != nil {
		t.Errorf("strike on empty string = %v with note %v, want plain miss", got.Verdict, got.Note)
	}

	// The note on string 0 is still hittable afterward.
	if got := j.JudgeHit(0, 10000); got.Verdict != VerdictPerfect {
		t.Errorf("note on correct string = %v, want perfect", got.Verdict)
	}
}

func TestJudgeNoteJudgesOnce(t *testing.T) {
	j := NewJudge(testSong(), DefaultWindows())
	j.Advance(10000)

	if got := j.JudgeHit(0, 10000); got.Verdict != VerdictPerfect {
		t.Fatalf("first strike = %v, want perfect", got.Verdict)
	}
	if got := j.JudgeHit(0, 10020); got.Verdict != VerdictMiss || got.Note != nil {
		t.Errorf("second strike on hit note = %v, want plain miss", got.Verdict)
	}
}

func TestJudgeClosestNoteWins(t *testing.T) {
	song := testSong()
	song.Notes = []SongNote{
		{Time: 10000, String: 0},
		{Time: 10150, String: 0},
	}
	j := NewJudge(song, DefaultWindows())
	j.Advance(10100)

	got := j.JudgeHit(0, 10100)
	if got.Verdict != VerdictPerfect {
		t.Fatalf("strike = %v, want perfect", got.Verdict)
	}
	if got.Note.Note.Time != 10150 {
		t.Errorf("judged note at time %d, want the closer 10150", got.Note.Note.Time)
	}
}

func TestJudgeMarksMissed(t *testing.T) {
	j := NewJudge(testSong(), DefaultWindows())
	j.Advance(10000)

	missed := j.Advance(10310) // progress 1.155, past the good window
	if len(missed) != 1 {
		t.Fatalf("Advance returned %d missed notes, want 1", len(missed))
	}
	if !missed[0].Missed {
		t.Error("missed note not flagged")
	}

	// Only reported once.
	if missed := j.Advance(10400); len(missed) != 0 {
		t.Errorf("second Advance reported %d missed notes, want 0", len(missed))
	}

	// A missed note cannot be struck.
	if got := j.JudgeHit(0, 10200); got.Verdict != VerdictMiss || got.Note != nil {
		t.Errorf("strike on missed note = %v, want plain miss", got.Verdict)
	}
}

func TestJudgePurges(t *testing.T) {
	t.Run("hit note leaves on next advance", func(t *testing.T) {
		j := NewJudge(testSong(), DefaultWindows())
		j.Advance(10000)
		j.JudgeHit(0, 10000)
		j.Advance(10033)
		if len(j.Active()) != 0 {
			t.Errorf("%d active notes after hit, want 0", len(j.Active()))
		}
	})

	t.Run("missed note lingers until gone", func(t *testing.T) {
		j := NewJudge(testSong(), DefaultWindows())
		j.Advance(10000)
		j.Advance(10400) // progress 1.2: missed but still visible
		if len(j.Active()) != 1 {
			t.Fatalf("%d active notes at progress 1.2, want 1", len(j.Active()))
		}
		j.Advance(10600) // progress 1.3: gone
		if len(j.Active()) != 0 {
			t.Errorf("%d active notes at progress 1.3, want 0", len(j.Active()))
		}
	})
}

func TestJudgeDone(t *testing.T) {
	j := NewJudge(testSong(), DefaultWindows())
	if j.Done() {
		t.Error("judge done before the chart spawned")
	}
	j.Advance(10000)
	j.JudgeHit(0, 10000)
	if j.Done() {
		t.Error("judge done while a hit note is still on the board")
	}
	j.Advance(10033)
	if !j.Done() {
		t.Error("judge not done after the last note resolved")
	}
}

func TestJudgeUnsortedChart(t *testing.T) {
	song := testSong()
	song.Notes = []SongNote{
		{Time: 12000, String: 1},
		{Time: 10000, String: 0},
	}
	j := NewJudge(song, DefaultWindows())

	j.Advance(8000)
	if len(j.Active()) != 1 {
		t.Fatalf("%d active notes, want 1: earlier note must spawn first", len(j.Active()))
	}
	if j.Active()[0].Note.Time != 10000 {
		t.Errorf("first spawned note at %d, want 10000", j.Active()[0].Note.Time)
	}
}

func TestTallyRecord(t *testing.T) {
	var tally Tally
	for _, v := range []Verdict{VerdictPerfect, VerdictPerfect, VerdictGood, VerdictMiss, VerdictPerfect} {
		tally.Record(v)
	}

	if tally.Perfect != 3 || tally.Good != 1 || tally.Miss != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/1/1", tally.Perfect, tally.Good, tally.Miss)
	}
	if tally.Score != 360 {
		t.Errorf("score = %d, want 360", tally.Score)
	}
	if tally.Combo != 1 {
		t.Errorf("combo = %d, want 1", tally.Combo)
	}
	if tally.MaxCombo != 3 {
		t.Errorf("max combo = %d, want 3", tally.MaxCombo)
	}
	if tally.Strikes() != 5 {
		t.Errorf("strikes = %d, want 5", tally.Strikes())
	}
}

func TestTransport(t *testing.T) {
	clock := time.Unix(1000, 0)
	tr := NewTransport(5000)
	tr.now = func() time.Time { return clock }

	if tr.Playing() {
		t.Error("new transport should be stopped")
	}
	if got := tr.NowMs(); got != 0 {
		t.Errorf("stopped position = %d, want 0", got)
	}

	tr.Play()
	clock = clock.Add(1500 * time.Millisecond)
	if got := tr.NowMs(); got != 1500 {
		t.Errorf("position after 1.5s = %d, want 1500", got)
	}

	tr.Pause()
	clock = clock.Add(10 * time.Second)
	if got := tr.NowMs(); got != 1500 {
		t.Errorf("paused position = %d, want 1500", got)
	}
	if tr.Done() {
		t.Error("transport done at 1500ms of 5000ms")
	}

	tr.Play()
	clock = clock.Add(4 * time.Second)
	if got := tr.NowMs(); got != 5500 {
		t.Errorf("resumed position = %d, want 5500", got)
	}
	if !tr.Done() {
		t.Error("transport not done past its duration")
	}

	tr.Stop()
	if got := tr.NowMs(); got != 0 {
		t.Errorf("position after stop = %d, want 0", got)
	}
	if tr.Playing() {
		t.Error("transport playing after stop")
	}
}

func TestSongValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Song)
		wantErr bool
	}{
		{"valid", func(s *Song) {}, false},
		{"missing title", func(s *Song) { s.Title = "" }, true},
		{"zero bpm", func(s *Song) { s.BPM = 0 }, true},
		{"zero lead time", func(s *Song) { s.LeadTime = 0 }, true},
		{"zero duration", func(s *Song) { s.Duration = 0 }, true},
		{"negative note time", func(s *Song) { s.Notes[0].Time = -1 }, true},
		{"negative string", func(s *Song) { s.Notes[0].String = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSong()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
