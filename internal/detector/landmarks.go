// Package detector provides hand detection interfaces and landmark types
// for the gesture recognition pipeline.
package detector

// Hand landmark indices following the MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// FingertipIndices lists the five fingertip landmarks in anatomical order
// (thumb, index, middle, ring, pinky).
var FingertipIndices = [5]int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip}

// KnuckleIndices lists the wrist plus the four finger MCP joints that
// together define the palm region.
var KnuckleIndices = [5]int{Wrist, IndexMCP, MiddleMCP, RingMCP, PinkyMCP}

// Point3D represents a 3D point in normalized image space. X and Y are in
// [0,1] with Y growing downward; Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents one detected hand as the 21 MediaPipe landmarks.
// Landmarks are produced fresh for every frame; the pipeline never mutates
// them after detection.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// WristPosition returns the (x, y) image coordinates of the wrist landmark,
// the reference point used for movement analysis.
func (h *HandLandmarks) WristPosition() (x, y float64) {
	w := h.Points[Wrist]
	return w.X, w.Y
}
