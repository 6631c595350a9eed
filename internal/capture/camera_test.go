package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestDeviceCamera_ReadWhileClosed(t *testing.T) {
	cam := NewCamera(0)

	if cam.IsOpen() {
		t.Error("camera should start closed")
	}
	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraClosed) {
		t.Errorf("err = %v, want ErrCameraClosed", err)
	}
}

func TestDeviceCamera_FPS(t *testing.T) {
	cam := NewCamera(0)

	if cam.FPS() != DefaultFPS {
		t.Errorf("FPS = %d, want %d", cam.FPS(), DefaultFPS)
	}

	cam.SetFPS(15)
	if cam.FPS() != 15 {
		t.Errorf("FPS = %d, want 15", cam.FPS())
	}

	cam.SetFPS(0)
	if cam.FPS() != 15 {
		t.Errorf("FPS = %d, non-positive values should be ignored", cam.FPS())
	}
}

func TestDeviceCamera_CloseWithoutOpen(t *testing.T) {
	cam := NewCamera(0)
	if err := cam.Close(); err != nil {
		t.Errorf("Close on a never-opened camera: %v", err)
	}
}

func testFrames(t *testing.T, n int) []*gocv.Mat {
	t.Helper()
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		m := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
		frames[i] = &m
		t.Cleanup(func() { m.Close() })
	}
	return frames
}

func TestMockCamera_Playback(t *testing.T) {
	if testing.Short() {
		t.Skip("requires GoCV Mat creation")
	}

	cam := NewMockCamera(testFrames(t, 3), false)
	if err := cam.Open(); err != nil {
		t.Fatal(err)
	}
	defer cam.Close()

	for i := 0; i < 3; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		frame.Close()
	}

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("err after last frame = %v, want ErrEmptyFrame", err)
	}

	cam.Rewind()
	frame, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("after rewind: %v", err)
	}
	frame.Close()
}

func TestMockCamera_Loop(t *testing.T) {
	if testing.Short() {
		t.Skip("requires GoCV Mat creation")
	}

	cam := NewMockCamera(testFrames(t, 2), true)
	if err := cam.Open(); err != nil {
		t.Fatal(err)
	}
	defer cam.Close()

	// Looping playback never runs dry.
	for i := 0; i < 7; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		frame.Close()
	}
}

func TestMockCamera_ClosedAndEmpty(t *testing.T) {
	cam := NewMockCamera(nil, false)

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraClosed) {
		t.Errorf("err = %v, want ErrCameraClosed", err)
	}

	if err := cam.Open(); err != nil {
		t.Fatal(err)
	}
	if _, err := cam.ReadFrame(); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("err = %v, want ErrEmptyFrame", err)
	}
}
