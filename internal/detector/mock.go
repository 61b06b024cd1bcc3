package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// ThumbsUpLandmarks returns a preset HandLandmarks representing a thumbs up gesture.
// The thumb is extended upward while other fingers are curled.
func ThumbsUpLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	// Wrist at origin
	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended upward (pointing up, Y decreases going up)
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.50, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Index finger curled (knuckles close together, tip near palm)
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}
	landmarks.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.68, Z: -0.05}
	landmarks.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.70, Z: -0.04}
	landmarks.Points[IndexTip] = Point3D{X: 0.50, Y: 0.72, Z: -0.02}

	// Middle finger curled
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: -0.02}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.66, Z: -0.05}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.68, Z: -0.04}
	landmarks.Points[MiddleTip] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}

	// Ring finger curled
	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}
	landmarks.Points[RingPIP] = Point3D{X: 0.45, Y: 0.68, Z: -0.05}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.70, Z: -0.04}
	landmarks.Points[RingTip] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}

	// Pinky finger curled
	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.70, Z: -0.05}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.37, Y: 0.72, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.74, Z: -0.02}

	return landmarks
}

// FistLandmarks returns a preset HandLandmarks representing a closed fist.
// All four fingers are curled into the palm with the thumb wrapped across
// toward the ring knuckle, away from the index tip.
func FistLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb wrapped across the curled fingers
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.76, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.56, Y: 0.72, Z: 0.01}
	landmarks.Points[ThumbIP] = Point3D{X: 0.51, Y: 0.71, Z: 0.02}
	landmarks.Points[ThumbTip] = Point3D{X: 0.45, Y: 0.72, Z: 0.02}

	// Index finger curled
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.62, Z: -0.03}
	landmarks.Points[IndexDIP] = Point3D{X: 0.54, Y: 0.63, Z: -0.05}
	landmarks.Points[IndexTip] = Point3D{X: 0.53, Y: 0.66, Z: -0.04}

	// Middle finger curled
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.61, Z: -0.03}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.62, Z: -0.05}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.65, Z: -0.04}

	// Ring finger curled
	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.69, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.45, Y: 0.62, Z: -0.03}
	landmarks.Points[RingDIP] = Point3D{X: 0.46, Y: 0.63, Z: -0.05}
	landmarks.Points[RingTip] = Point3D{X: 0.47, Y: 0.66, Z: -0.04}

	// Pinky finger curled
	landmarks.Points[PinkyMCP] = Point3D{X: 0.41, Y: 0.71, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.41, Y: 0.65, Z: -0.03}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.42, Y: 0.66, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: 0.44, Y: 0.68, Z: -0.03}

	return landmarks
}

// PinchLandmarks returns a preset HandLandmarks with the thumb tip touching
// the index tip while the remaining fingers stay loosely extended.
func PinchLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb reaching up to meet the index tip
	landmarks.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.76, Z: 0.01}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.70, Z: 0.02}
	landmarks.Points[ThumbIP] = Point3D{X: 0.59, Y: 0.63, Z: 0.02}
	landmarks.Points[ThumbTip] = Point3D{X: 0.57, Y: 0.56, Z: 0.02}

	// Index finger dipping to meet the thumb
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.61, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.57, Y: 0.58, Z: 0.01}
	landmarks.Points[IndexTip] = Point3D{X: 0.56, Y: 0.55, Z: 0.01}

	// Middle finger extended
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.56, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.53, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.50, Z: 0.0}

	// Ring finger loosely extended
	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.69, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.44, Y: 0.60, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.44, Y: 0.57, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.44, Y: 0.54, Z: 0.0}

	// Pinky slightly curled
	landmarks.Points[PinkyMCP] = Point3D{X: 0.41, Y: 0.71, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.66, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.40, Y: 0.65, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.40, Y: 0.64, Z: 0.0}

	return landmarks
}

// HandAt returns a neutral relaxed hand with the index fingertip at the
// given normalized screen position. The pose classifies as neither open
// palm, fist, nor pinch, which makes it the building block for driving
// fingertip motion in interaction tests.
func HandAt(x, y float64) HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: x, Y: y + 0.16, Z: 0.0}

	// Thumb off to the side, well clear of the index tip
	landmarks.Points[ThumbCMC] = Point3D{X: x - 0.03, Y: y + 0.14, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: x - 0.06, Y: y + 0.12, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: x - 0.08, Y: y + 0.11, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: x - 0.09, Y: y + 0.10, Z: 0.0}

	// Index finger pointing, tip exactly at (x, y)
	landmarks.Points[IndexMCP] = Point3D{X: x + 0.01, Y: y + 0.09, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: x + 0.005, Y: y + 0.06, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: x, Y: y + 0.03, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: x, Y: y, Z: 0.0}

	// Middle, ring and pinky trail at decreasing extension
	landmarks.Points[MiddleMCP] = Point3D{X: x, Y: y + 0.08, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: x + 0.01, Y: y + 0.06, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: x + 0.012, Y: y + 0.04, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: x + 0.015, Y: y + 0.02, Z: 0.0}

	landmarks.Points[RingMCP] = Point3D{X: x + 0.02, Y: y + 0.09, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: x + 0.025, Y: y + 0.07, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: x + 0.028, Y: y + 0.05, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: x + 0.03, Y: y + 0.035, Z: 0.0}

	landmarks.Points[PinkyMCP] = Point3D{X: x + 0.035, Y: y + 0.1, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: x + 0.04, Y: y + 0.08, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: x + 0.042, Y: y + 0.065, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: x + 0.045, Y: y + 0.05, Z: 0.0}

	return landmarks
}

// OpenPalmLandmarks returns a preset HandLandmarks representing an open palm gesture.
// All fingers are extended outward.
func OpenPalmLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	// Wrist at base
	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended to the side
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	// Index finger extended upward
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Middle finger extended upward (slightly longer)
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	// Ring finger extended upward
	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	// Pinky finger extended upward
	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return landmarks
}
