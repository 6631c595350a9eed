package app

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/PiotrUrb/gesture-recognition-system/internal/capture"
	"github.com/PiotrUrb/gesture-recognition-system/internal/classifier"
	"github.com/PiotrUrb/gesture-recognition-system/internal/control"
	"github.com/PiotrUrb/gesture-recognition-system/internal/detector"
	"github.com/PiotrUrb/gesture-recognition-system/internal/store"
)

// alternatingFrames builds a black/white frame pair so every frame
// registers as motion.
func alternatingFrames(t *testing.T) []*gocv.Mat {
	t.Helper()

	black := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	white := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))
	t.Cleanup(func() {
		black.Close()
		white.Close()
	})

	return []*gocv.Mat{&black, &white}
}

func TestApp_EndToEndTrigger(t *testing.T) {
	if testing.Short() {
		t.Skip("requires GoCV Mat creation")
	}

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	mockDetector := detector.NewMockDetector()
	mockDetector.SetHands([]detector.HandLandmarks{detector.OpenPalmLandmarks()})

	var (
		mu      sync.Mutex
		actions []string
	)

	a := New(Config{
		Store:      s,
		Camera:     capture.NewMockCamera(alternatingFrames(t), true),
		Detector:   mockDetector,
		Classifier: classifier.NewMockClassifier("open_hand", 0.95),
		Control: control.Config{
			AllModeThrottle: time.Millisecond,
		},
		IdleFPS:          30,
		ActiveFPS:        30,
		ClassifyInterval: time.Millisecond,
		OnAction: func(gesture string, confidence float64, mode control.Mode, message string) {
			mu.Lock()
			actions = append(actions, gesture)
			mu.Unlock()
		},
	})

	if err := a.Start(); err != nil {
		t.Fatal(err)
	}
	defer a.Stop()

	if err := a.SetMode(control.ModeAll); err != nil {
		t.Fatal(err)
	}
	a.SetEnabled(true)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(actions)
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(actions) == 0 {
		t.Fatal("pipeline never triggered an action")
	}
	if actions[0] != "open_hand" {
		t.Errorf("gesture = %q, want open_hand", actions[0])
	}

	// The trigger is also in the audit trail and the in-memory history.
	logs, err := s.ActionLogs().List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) == 0 {
		t.Fatal("no audit log entries")
	}
	if logs[0].Gesture != "open_hand" || logs[0].Mode != "all" {
		t.Errorf("log entry = %+v", logs[0])
	}

	if len(a.History()) == 0 {
		t.Error("controller history is empty")
	}
}

func TestApp_DisabledPipelineDoesNothing(t *testing.T) {
	if testing.Short() {
		t.Skip("requires GoCV Mat creation")
	}

	mockDetector := detector.NewMockDetector()
	mockDetector.SetHands([]detector.HandLandmarks{detector.OpenPalmLandmarks()})

	triggered := make(chan struct{}, 1)
	a := New(Config{
		Camera:     capture.NewMockCamera(alternatingFrames(t), true),
		Detector:   mockDetector,
		Classifier: classifier.NewMockClassifier("open_hand", 0.95),
		IdleFPS:    30,
		ActiveFPS:  30,
		OnAction: func(string, float64, control.Mode, string) {
			select {
			case triggered <- struct{}{}:
			default:
			}
		},
	})

	if err := a.Start(); err != nil {
		t.Fatal(err)
	}
	defer a.Stop()
	// Detection left disabled.

	select {
	case <-triggered:
		t.Fatal("disabled pipeline triggered an action")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestApp_StartIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("requires GoCV Mat creation")
	}

	a := New(Config{
		Camera:     capture.NewMockCamera(alternatingFrames(t), true),
		Detector:   detector.NewMockDetector(),
		Classifier: classifier.NewMockClassifier("", 0),
	})

	if err := a.Start(); err != nil {
		t.Fatal(err)
	}
	if err := a.Start(); err != nil {
		t.Errorf("second Start: %v", err)
	}
	a.Stop()
}
