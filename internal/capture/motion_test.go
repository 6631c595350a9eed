package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestMotionDetector_StaticScene(t *testing.T) {
	if testing.Short() {
		t.Skip("requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	a := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer a.Close()
	b := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer b.Close()

	// First frame only primes the baseline.
	if detected, percent := md.Detect(&a); detected || percent != 0 {
		t.Errorf("priming frame reported motion: %v %f", detected, percent)
	}

	// An identical follow-up frame is a static scene.
	if detected, percent := md.Detect(&b); detected {
		t.Errorf("identical frames reported motion, percent = %f", percent)
	}
}

func TestMotionDetector_SceneChange(t *testing.T) {
	if testing.Short() {
		t.Skip("requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	black := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer black.Close()
	white := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	md.Detect(&black)
	detected, percent := md.Detect(&white)
	if !detected {
		t.Errorf("black to white not detected, percent = %f", percent)
	}
	if percent < 50.0 {
		t.Errorf("percent = %f, want > 50 for a full scene change", percent)
	}
}

func TestMotionDetector_Reset(t *testing.T) {
	if testing.Short() {
		t.Skip("requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	black := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer black.Close()
	white := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	md.Detect(&black)
	md.Reset()

	// After a reset the next frame primes again, even a very different one.
	if detected, percent := md.Detect(&white); detected || percent != 0 {
		t.Errorf("post-reset frame reported motion: %v %f", detected, percent)
	}
}

func TestMotionDetector_InvalidInput(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	if detected, percent := md.Detect(nil); detected || percent != 0 {
		t.Errorf("nil frame reported motion: %v %f", detected, percent)
	}
}

func TestMotionDetector_SetThreshold(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	md.SetThreshold(5.0)
	if md.threshold != 5.0 {
		t.Errorf("threshold = %f, want 5.0", md.threshold)
	}

	md.SetThreshold(-1)
	if md.threshold != 5.0 {
		t.Errorf("threshold = %f, negative values should be ignored", md.threshold)
	}
}
