package engine

import (
	"github.com/ayusman/veena/internal/detector"
	"github.com/ayusman/veena/internal/geom"
)

// pluckTips are the fingertips tested against the strings. The thumb is
// excluded: it carries the pinch gesture and rests too close to the palm
// to pluck deliberately.
var pluckTips = [4]int{detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}

// fingerKey identifies one fingertip across frames. Identity is positional:
// if the tracker reorders hands between frames the motion for that frame is
// wrong, which the cooldown absorbs in practice.
type fingerKey struct {
	hand   int
	finger int
}

// fingerMotion is one fingertip's travel between consecutive frames.
type fingerMotion struct {
	key fingerKey
	seg geom.Segment // previous -> current position, pixels
}

// pluckTracker remembers each fingertip's previous pixel position so every
// frame yields one motion segment per continuously tracked fingertip.
type pluckTracker struct {
	prev map[fingerKey]geom.Point
}

func newPluckTracker() *pluckTracker {
	return &pluckTracker{prev: make(map[fingerKey]geom.Point)}
}

// advance records this frame's fingertip positions and returns motion
// segments for fingertips seen on consecutive frames. A fingertip's first
// appearance only seeds its position; fingertips absent this frame are
// forgotten so a hand leaving and re-entering the frame cannot produce a
// teleport motion.
func (t *pluckTracker) advance(hands []detector.HandLandmarks, width, height float64) []fingerMotion {
	seen := make(map[fingerKey]bool, len(hands)*len(pluckTips))
	var motions []fingerMotion

	for hi := range hands {
		for _, tip := range pluckTips {
			key := fingerKey{hand: hi, finger: tip}
			cur := geom.Point{
				X: hands[hi].Points[tip].X * width,
				Y: hands[hi].Points[tip].Y * height,
			}
			if prev, ok := t.prev[key]; ok {
				motions = append(motions, fingerMotion{key: key, seg: geom.Segment{P1: prev, P2: cur}})
			}
			t.prev[key] = cur
			seen[key] = true
		}
	}

	for key := range t.prev {
		if !seen[key] {
			delete(t.prev, key)
		}
	}
	return motions
}

// reset forgets every tracked fingertip.
func (t *pluckTracker) reset() {
	for key := range t.prev {
		delete(t.prev, key)
	}
}
