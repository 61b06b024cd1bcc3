package rhythm

// Score values per verdict.
const (
	scorePerfect = 100
	scoreGood    = 60
)

// Tally accumulates the score of one performance. It is mutated from the
// frame loop only.
type Tally struct {
	Perfect  int `json:"perfect"`
	Good     int `json:"good"`
	Miss     int `json:"miss"`
	Combo    int `json:"combo"`
	MaxCombo int `json:"max_combo"`
	Score    int `json:"score"`
}

// Record applies one judged strike to the tally. Perfect and good extend
// the combo; a miss breaks it.
func (t *Tally) Record(v Verdict) {
	switch v {
	case VerdictPerfect:
		t.Perfect++
		t.Combo++
		t.Score += scorePerfect
	case VerdictGood:
		t.Good++
		t.Combo++
		t.Score += scoreGood
	case VerdictMiss:
		t.Miss++
		t.Combo = 0
	}
	if t.Combo > t.MaxCombo {
		t.MaxCombo = t.Combo
	}
}

// Strikes returns the total number of judged strikes.
func (t *Tally) Strikes() int {
	return t.Perfect + t.Good + t.Miss
}
