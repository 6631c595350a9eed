// Package feature converts hand landmarks into the fixed-order numeric
// feature vector consumed by the trained gesture classifier.
//
// The vector layout is: 63 normalized landmark coordinates (21 points x,y,z),
// then 14 pairwise distances, then 6 joint angles, for 83 values total.
// Names() returns the matching name for every index; the classifier is
// trained against this exact ordering, so it must never change silently.
package feature

import (
	"errors"
	"fmt"
	"math"

	"github.com/PiotrUrb/gesture-recognition-system/internal/detector"
)

// NumFeatures is the fixed length of the extracted feature vector.
const NumFeatures = 63 + 14 + 6

// epsilon guards divisions against zero-length vectors. Degenerate poses
// (coincident points) degrade to a defined value instead of NaN.
const epsilon = 1e-10

// ErrInvalidLandmarkCount is returned when the input does not contain
// exactly 21 landmarks.
var ErrInvalidLandmarkCount = errors.New("expected 21 landmarks")

// NamedValue pairs a feature name with its value. Distances and angles are
// returned as ordered slices rather than maps so that name/value alignment
// is structural.
type NamedValue struct {
	Name  string
	Value float64
}

// fingerNames is the fixed finger order used for distance and angle naming.
var fingerNames = [5]string{"thumb", "index", "middle", "ring", "pinky"}

// landmarkNames follows the MediaPipe landmark order, used for coordinate
// feature naming.
var landmarkNames = [detector.NumLandmarks]string{
	"WRIST",
	"THUMB_CMC", "THUMB_MCP", "THUMB_IP", "THUMB_TIP",
	"INDEX_FINGER_MCP", "INDEX_FINGER_PIP", "INDEX_FINGER_DIP", "INDEX_FINGER_TIP",
	"MIDDLE_FINGER_MCP", "MIDDLE_FINGER_PIP", "MIDDLE_FINGER_DIP", "MIDDLE_FINGER_TIP",
	"RING_FINGER_MCP", "RING_FINGER_PIP", "RING_FINGER_DIP", "RING_FINGER_TIP",
	"PINKY_MCP", "PINKY_PIP", "PINKY_DIP", "PINKY_TIP",
}

// bendJoints lists, per finger, the three landmarks whose middle point is
// the joint the bend angle is measured at. The thumb bends at the IP joint,
// the other fingers at the PIP joint.
var bendJoints = [5][3]int{
	{detector.ThumbMCP, detector.ThumbIP, detector.ThumbTip},
	{detector.IndexMCP, detector.IndexPIP, detector.IndexDIP},
	{detector.MiddleMCP, detector.MiddlePIP, detector.MiddleDIP},
	{detector.RingMCP, detector.RingPIP, detector.RingDIP},
	{detector.PinkyMCP, detector.PinkyPIP, detector.PinkyDIP},
}

// bendAngleNames matches bendJoints entry for entry.
var bendAngleNames = [5]string{
	"thumb_angle", "index_pip_angle", "middle_pip_angle", "ring_pip_angle", "pinky_pip_angle",
}

// Normalize makes the landmark set translation and scale invariant: all
// points are translated so the wrist sits at the origin, then divided by
// the maximum distance of any point from the wrist. A degenerate hand with
// zero spread is returned translated but unscaled.
func Normalize(points []detector.Point3D) ([]detector.Point3D, error) {
	if len(points) != detector.NumLandmarks {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidLandmarkCount, len(points))
	}

	wrist := points[detector.Wrist]

	normalized := make([]detector.Point3D, len(points))
	scale := 0.0
	for i, p := range points {
		q := detector.Point3D{
			X: p.X - wrist.X,
			Y: p.Y - wrist.Y,
			Z: p.Z - wrist.Z,
		}
		normalized[i] = q
		if n := norm(q); n > scale {
			scale = n
		}
	}

	if scale > 0 {
		for i := range normalized {
			normalized[i].X /= scale
			normalized[i].Y /= scale
			normalized[i].Z /= scale
		}
	}

	return normalized, nil
}

// Distances computes the fixed set of pairwise distances over normalized
// landmarks: each fingertip to the wrist, each fingertip to the palm
// center, and each pair of adjacent fingertips.
func Distances(normalized []detector.Point3D) []NamedValue {
	out := make([]NamedValue, 0, 14)

	wrist := normalized[detector.Wrist]
	for i, tip := range detector.FingertipIndices {
		out = append(out, NamedValue{
			Name:  fingerNames[i] + "_tip_to_wrist",
			Value: dist(normalized[tip], wrist),
		})
	}

	// Palm center: mean of the wrist and the four finger MCP joints.
	var palm detector.Point3D
	for _, k := range detector.KnuckleIndices {
		palm.X += normalized[k].X
		palm.Y += normalized[k].Y
		palm.Z += normalized[k].Z
	}
	n := float64(len(detector.KnuckleIndices))
	palm.X /= n
	palm.Y /= n
	palm.Z /= n

	for i, tip := range detector.FingertipIndices {
		out = append(out, NamedValue{
			Name:  fingerNames[i] + "_tip_to_palm",
			Value: dist(normalized[tip], palm),
		})
	}

	for i := 0; i < len(detector.FingertipIndices)-1; i++ {
		a := detector.FingertipIndices[i]
		b := detector.FingertipIndices[i+1]
		out = append(out, NamedValue{
			Name:  fingerNames[i] + "_to_" + fingerNames[i+1] + "_tip",
			Value: dist(normalized[a], normalized[b]),
		})
	}

	return out
}

// Angles computes the per-finger bend angles and the palm orientation
// angle, all in degrees within [0, 180].
func Angles(normalized []detector.Point3D) []NamedValue {
	out := make([]NamedValue, 0, 6)

	for i, joints := range bendJoints {
		out = append(out, NamedValue{
			Name: bendAngleNames[i],
			Value: angleAt(
				normalized[joints[0]],
				normalized[joints[1]],
				normalized[joints[2]],
			),
		})
	}

	thumbBase := normalized[detector.ThumbMCP]
	pinkyBase := normalized[detector.PinkyMCP]
	wrist := normalized[detector.Wrist]

	palmVec := sub(pinkyBase, thumbBase)
	wristVec := sub(wrist, thumbBase)

	out = append(out, NamedValue{
		Name:  "palm_orientation",
		Value: angleBetween(palmVec, wristVec),
	})

	return out
}

// Extract builds the complete feature vector for one hand. The input must
// be exactly 21 landmarks; anything else is a precondition failure rather
// than a silently defaulted vector.
func Extract(points []detector.Point3D) ([]float64, error) {
	normalized, err := Normalize(points)
	if err != nil {
		return nil, err
	}

	features := make([]float64, 0, NumFeatures)
	for _, p := range normalized {
		features = append(features, p.X, p.Y, p.Z)
	}
	for _, d := range Distances(normalized) {
		features = append(features, d.Value)
	}
	for _, a := range Angles(normalized) {
		features = append(features, a.Value)
	}

	return features, nil
}

// Names returns the feature names in the exact order Extract emits values.
func Names() []string {
	names := make([]string, 0, NumFeatures)

	for _, lm := range landmarkNames {
		names = append(names, lm+"_x", lm+"_y", lm+"_z")
	}

	for _, f := range fingerNames {
		names = append(names, f+"_tip_to_wrist")
	}
	for _, f := range fingerNames {
		names = append(names, f+"_tip_to_palm")
	}
	for i := 0; i < len(fingerNames)-1; i++ {
		names = append(names, fingerNames[i]+"_to_"+fingerNames[i+1]+"_tip")
	}

	names = append(names, bendAngleNames[:]...)
	names = append(names, "palm_orientation")

	return names
}

// angleAt returns the angle in degrees at b formed by the segments b->a
// and b->c.
func angleAt(a, b, c detector.Point3D) float64 {
	return angleBetween(sub(a, b), sub(c, b))
}

// angleBetween returns the angle in degrees between two vectors. The
// cosine is clamped to [-1, 1] before arccos so floating point drift
// cannot push it out of the domain.
func angleBetween(v1, v2 detector.Point3D) float64 {
	n1 := norm(v1) + epsilon
	n2 := norm(v2) + epsilon

	dot := (v1.X*v2.X + v1.Y*v2.Y + v1.Z*v2.Z) / (n1 * n2)
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}

	return math.Acos(dot) * 180 / math.Pi
}

func sub(a, b detector.Point3D) detector.Point3D {
	return detector.Point3D{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

func norm(p detector.Point3D) float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

func dist(a, b detector.Point3D) float64 {
	return norm(sub(a, b))
}
