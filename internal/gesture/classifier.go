// Package gesture classifies single-frame hand poses from raw landmarks.
// Classification is stateless and scale-invariant: every measure is a ratio
// against the palm size, so a hand close to the camera and a hand far away
// produce the same signals. Debouncing and hold logic live in the engine,
// not here.
package gesture

import (
	"math"

	"github.com/ayusman/veena/internal/detector"
)

// minPalmSize guards against degenerate landmark frames where the wrist and
// middle MCP coincide. Below this, every classifier reports false.
const minPalmSize = 1e-6

// fingertips are the four non-thumb fingertip landmark indices. The thumb is
// excluded from pose ratios: its resting position sits too close to the palm
// to separate open from closed poses.
var fingertips = [4]int{detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}

// Thresholds holds the tuned ratio cutoffs for pose classification.
type Thresholds struct {
	// OpenPalmAvgRatio is the minimum average fingertip-to-wrist ratio for
	// an open palm.
	OpenPalmAvgRatio float64
	// OpenPalmSpread is the minimum index-tip-to-pinky-tip ratio for an
	// open palm, rejecting closed hands held far from the body.
	OpenPalmSpread float64
	// OpenPalmMinRatio is the minimum per-finger ratio for an open palm,
	// rejecting poses with one curled finger.
	OpenPalmMinRatio float64
	// FistMaxRatio is the maximum fingertip-to-wrist ratio below which all
	// four fingers count as curled.
	FistMaxRatio float64
	// PinchRatio is the maximum thumb-tip-to-index-tip ratio for a pinch.
	PinchRatio float64
}

// DefaultThresholds returns the tuned classification thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		OpenPalmAvgRatio: 2.15,
		OpenPalmSpread:   1.1,
		OpenPalmMinRatio: 1.9,
		FistMaxRatio:     1.6,
		PinchRatio:       0.55,
	}
}

// Signals is the per-frame classification of one hand.
type Signals struct {
	OpenPalm bool
	Fist     bool
	Pinched  bool
}

// dist2D is the planar distance between two landmarks. Depth from the
// tracker is too noisy for pose ratios, so z is ignored throughout.
func dist2D(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// palmSize returns the wrist to middle-MCP distance, the scale reference
// for every ratio.
func palmSize(hand *detector.HandLandmarks) float64 {
	return dist2D(hand.Points[detector.Wrist], hand.Points[detector.MiddleMCP])
}

// Classify runs all pose classifiers on one hand.
func Classify(hand *detector.HandLandmarks, th Thresholds) Signals {
	return Signals{
		OpenPalm: IsOpenPalm(hand, th),
		Fist:     IsFist(hand, th),
		Pinched:  IsPinched(hand, th),
	}
}

// IsOpenPalm reports whether the hand is held open with fingers extended
// and spread. All three conditions must hold: high average extension, high
// minimum extension, and wide index-to-pinky spread.
func IsOpenPalm(hand *detector.HandLandmarks, th Thresholds) bool {
	if hand == nil {
		return false
	}
	palm := palmSize(hand)
	if palm < minPalmSize {
		return false
	}

	wrist := hand.Points[detector.Wrist]
	sum := 0.0
	min := math.MaxFloat64
	for _, tip := range fingertips {
		r := dist2D(hand.Points[tip], wrist) / palm
		sum += r
		if r < min {
			min = r
		}
	}
	avg := sum / float64(len(fingertips))
	spread := dist2D(hand.Points[detector.IndexTip], hand.Points[detector.PinkyTip]) / palm

	return avg > th.OpenPalmAvgRatio && min > th.OpenPalmMinRatio && spread > th.OpenPalmSpread
}

// IsFist reports whether all four non-thumb fingers are curled.
func IsFist(hand *detector.HandLandmarks, th Thresholds) bool {
	if hand == nil {
		return false
	}
	palm := palmSize(hand)
	if palm < minPalmSize {
		return false
	}

	wrist := hand.Points[detector.Wrist]
	for _, tip := range fingertips {
		if dist2D(hand.Points[tip], wrist)/palm >= th.FistMaxRatio {
			return false
		}
	}
	return true
}

// IsPinched reports whether the thumb tip and index tip are touching.
func IsPinched(hand *detector.HandLandmarks, th Thresholds) bool {
	if hand == nil {
		return false
	}
	palm := palmSize(hand)
	if palm < minPalmSize {
		return false
	}
	return dist2D(hand.Points[detector.ThumbTip], hand.Points[detector.IndexTip])/palm < th.PinchRatio
}

// TwoHandDistance returns the distance between the index fingertips of two
// hands in normalized screen coordinates. Returns -1 when either hand is
// missing.
func TwoHandDistance(a, b *detector.HandLandmarks) float64 {
	if a == nil || b == nil {
		return -1
	}
	return dist2D(a.Points[detector.IndexTip], b.Points[detector.IndexTip])
}
