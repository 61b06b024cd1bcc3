package engine

import "github.com/ayusman/veena/internal/geom"

// vibrationFloor is the amplitude below which a string counts as still.
const vibrationFloor = 0.01

// stringField models the playable strings: an anchor axis (the visitor's
// index fingertips, a frozen copy, or a fixed layout) with StringCount
// parallel segments offset along the axis normal, and a vibration
// amplitude per string.
type stringField struct {
	anchors [2]geom.Point // smoothed live anchors, pixels
	frozen  [2]geom.Point // anchors captured at lock time
	seeded  bool          // anchors hold real positions
	amps    []float64
}

func newStringField(count int) *stringField {
	return &stringField{amps: make([]float64, count)}
}

// reset clears anchors and stills every string.
func (f *stringField) reset() {
	f.seeded = false
	f.frozen = [2]geom.Point{}
	for i := range f.amps {
		f.amps[i] = 0
	}
}

// observe feeds the raw anchor positions for this frame. The first
// observation snaps; later ones ease toward the target so tracker jitter
// does not shake the strings.
func (f *stringField) observe(a, b geom.Point, smoothing float64) {
	if !f.seeded {
		f.anchors = [2]geom.Point{a, b}
		f.seeded = true
		return
	}
	f.anchors[0] = geom.Lerp(f.anchors[0], a, smoothing)
	f.anchors[1] = geom.Lerp(f.anchors[1], b, smoothing)
}

// freeze captures the current anchors for the locked mode.
func (f *stringField) freeze() {
	f.frozen = f.anchors
}

// axis returns the anchor pair the segments hang from, or false when no
// geometry exists yet.
func (f *stringField) axis(cfg *Config, locked bool) (geom.Point, geom.Point, bool) {
	if cfg.Layout != nil {
		return cfg.Layout.Left, cfg.Layout.Right, true
	}
	if !f.seeded {
		return geom.Point{}, geom.Point{}, false
	}
	if locked {
		return f.frozen[0], f.frozen[1], true
	}
	return f.anchors[0], f.anchors[1], true
}

// segments returns the string segments for this frame, slot order. Nil
// when the field has no geometry yet.
func (f *stringField) segments(cfg *Config, locked bool) []geom.Segment {
	a, b, ok := f.axis(cfg, locked)
	if !ok || cfg.StringCount <= 0 {
		return nil
	}

	n := geom.Normal(a, b)
	segs := make([]geom.Segment, cfg.StringCount)
	center := float64(cfg.StringCount-1) / 2
	for i := 0; i < cfg.StringCount; i++ {
		off := n.Scale((float64(i) - center) * cfg.StringGap)
		segs[i] = geom.Segment{P1: a.Add(off), P2: b.Add(off)}
	}
	return segs
}

// excite raises a string's amplitude and spills a weaker excitation onto
// its neighbors. Excitation never lowers an amplitude already above the
// new value.
func (f *stringField) excite(slot int, strength, neighbor float64) {
	raise := func(i int, v float64) {
		if i < 0 || i >= len(f.amps) {
			return
		}
		if v > f.amps[i] {
			f.amps[i] = v
		}
	}
	raise(slot, strength)
	raise(slot-1, neighbor)
	raise(slot+1, neighbor)
}

// decay damps every string by the per-frame factor, flooring tiny
// amplitudes to zero.
func (f *stringField) decay(rate float64) {
	for i, a := range f.amps {
		a *= rate
		if a < vibrationFloor {
			a = 0
		}
		f.amps[i] = a
	}
}
