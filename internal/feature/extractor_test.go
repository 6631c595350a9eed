package feature

import (
	"errors"
	"math"
	"testing"

	"github.com/PiotrUrb/gesture-recognition-system/internal/detector"
)

const tolerance = 1e-9

func TestExtract_VectorLengthAndNames(t *testing.T) {
	hand := detector.OpenPalmLandmarks()

	features, err := Extract(hand.Points[:])
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(features) != NumFeatures {
		t.Errorf("feature vector length = %d, want %d", len(features), NumFeatures)
	}

	names := Names()
	if len(names) != len(features) {
		t.Fatalf("Names() length = %d, want %d", len(names), len(features))
	}

	// Names must be unique, otherwise the classifier cannot tell features apart.
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate feature name %q", n)
		}
		seen[n] = true
	}

	// Spot check the fixed layout: coordinates, then distances, then angles.
	if names[0] != "WRIST_x" {
		t.Errorf("names[0] = %q, want WRIST_x", names[0])
	}
	if names[63] != "thumb_tip_to_wrist" {
		t.Errorf("names[63] = %q, want thumb_tip_to_wrist", names[63])
	}
	if names[NumFeatures-1] != "palm_orientation" {
		t.Errorf("last name = %q, want palm_orientation", names[NumFeatures-1])
	}
}

func TestExtract_InvalidLandmarkCount(t *testing.T) {
	hand := detector.OpenPalmLandmarks()

	_, err := Extract(hand.Points[:10])
	if !errors.Is(err, ErrInvalidLandmarkCount) {
		t.Errorf("expected ErrInvalidLandmarkCount, got %v", err)
	}

	_, err = Extract(nil)
	if !errors.Is(err, ErrInvalidLandmarkCount) {
		t.Errorf("expected ErrInvalidLandmarkCount for nil input, got %v", err)
	}
}

func TestExtract_TranslationScaleInvariance(t *testing.T) {
	hand := detector.OpenPalmLandmarks()

	base, err := Extract(hand.Points[:])
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	// Translate by an arbitrary offset and scale by a positive factor.
	moved := make([]detector.Point3D, detector.NumLandmarks)
	for i, p := range hand.Points {
		moved[i] = detector.Point3D{
			X: p.X*3.7 + 12.5,
			Y: p.Y*3.7 - 4.25,
			Z: p.Z*3.7 + 0.75,
		}
	}

	transformed, err := Extract(moved)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	for i := range base {
		if math.Abs(base[i]-transformed[i]) > 1e-6 {
			t.Fatalf("feature %d changed under translation+scaling: %f vs %f",
				i, base[i], transformed[i])
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Run("wrist at origin and unit spread", func(t *testing.T) {
		hand := detector.OpenPalmLandmarks()

		normalized, err := Normalize(hand.Points[:])
		if err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}

		wrist := normalized[detector.Wrist]
		if math.Abs(wrist.X) > tolerance || math.Abs(wrist.Y) > tolerance || math.Abs(wrist.Z) > tolerance {
			t.Errorf("wrist not at origin: %+v", wrist)
		}

		// The farthest point from the wrist defines the scale, so the
		// maximum norm must be exactly 1.
		maxNorm := 0.0
		for _, p := range normalized {
			if n := norm(p); n > maxNorm {
				maxNorm = n
			}
		}
		if math.Abs(maxNorm-1.0) > tolerance {
			t.Errorf("max norm = %f, want 1.0", maxNorm)
		}
	})

	t.Run("degenerate hand stays translated but unscaled", func(t *testing.T) {
		points := make([]detector.Point3D, detector.NumLandmarks)
		for i := range points {
			points[i] = detector.Point3D{X: 0.4, Y: 0.6, Z: 0.1}
		}

		normalized, err := Normalize(points)
		if err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}

		for i, p := range normalized {
			if p.X != 0 || p.Y != 0 || p.Z != 0 {
				t.Fatalf("point %d = %+v, want origin", i, p)
			}
		}
	})
}

func TestAngles_RangeAndNaN(t *testing.T) {
	t.Run("fixture hands stay within [0,180]", func(t *testing.T) {
		for _, hand := range []detector.HandLandmarks{
			detector.OpenPalmLandmarks(),
			detector.FistLandmarks(),
		} {
			normalized, err := Normalize(hand.Points[:])
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}

			for _, a := range Angles(normalized) {
				if math.IsNaN(a.Value) {
					t.Errorf("angle %s is NaN", a.Name)
				}
				if a.Value < 0 || a.Value > 180 {
					t.Errorf("angle %s = %f out of [0,180]", a.Name, a.Value)
				}
			}
		}
	})

	t.Run("coincident points never produce NaN", func(t *testing.T) {
		// All landmarks on one spot makes every angle vector zero length.
		points := make([]detector.Point3D, detector.NumLandmarks)
		normalized, err := Normalize(points)
		if err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}

		for _, a := range Angles(normalized) {
			if math.IsNaN(a.Value) {
				t.Errorf("angle %s is NaN for degenerate hand", a.Name)
			}
		}
	})
}

func TestDistances_OpenPalmVersusFist(t *testing.T) {
	openNorm, err := Normalize(detector.OpenPalmLandmarks().Points[:])
	if err != nil {
		t.Fatalf("Normalize(open palm) error = %v", err)
	}
	fistNorm, err := Normalize(detector.FistLandmarks().Points[:])
	if err != nil {
		t.Fatalf("Normalize(fist) error = %v", err)
	}

	openDist := Distances(openNorm)
	fistDist := Distances(fistNorm)

	if len(openDist) != 14 || len(fistDist) != 14 {
		t.Fatalf("distance count = %d/%d, want 14", len(openDist), len(fistDist))
	}

	// Every fingertip-to-wrist distance should be larger for the open palm
	// than for the fist, whatever the exact values.
	for i := 0; i < 5; i++ {
		if openDist[i].Name != fistDist[i].Name {
			t.Fatalf("distance order mismatch: %s vs %s", openDist[i].Name, fistDist[i].Name)
		}
		if openDist[i].Value <= fistDist[i].Value {
			t.Errorf("%s: open palm %f not greater than fist %f",
				openDist[i].Name, openDist[i].Value, fistDist[i].Value)
		}
	}
}

func TestDistances_NameOrderMatchesNames(t *testing.T) {
	normalized, err := Normalize(detector.OpenPalmLandmarks().Points[:])
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	names := Names()
	idx := 63 // distances start right after the 21*3 coordinates

	for _, d := range Distances(normalized) {
		if names[idx] != d.Name {
			t.Errorf("names[%d] = %q, want %q", idx, names[idx], d.Name)
		}
		idx++
	}
	for _, a := range Angles(normalized) {
		if names[idx] != a.Name {
			t.Errorf("names[%d] = %q, want %q", idx, names[idx], a.Name)
		}
		idx++
	}
	if idx != NumFeatures {
		t.Errorf("walked %d names, want %d", idx, NumFeatures)
	}
}
