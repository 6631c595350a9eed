// Package app wires the capture, detection, classification, and
// control stages into the daemon's processing pipeline.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/PiotrUrb/gesture-recognition-system/internal/capture"
	"github.com/PiotrUrb/gesture-recognition-system/internal/classifier"
	"github.com/PiotrUrb/gesture-recognition-system/internal/control"
	"github.com/PiotrUrb/gesture-recognition-system/internal/detector"
	"github.com/PiotrUrb/gesture-recognition-system/internal/machine"
	"github.com/PiotrUrb/gesture-recognition-system/internal/store"
)

// Pipeline timing defaults.
const (
	// DefaultIdleFPS is the frame rate while the scene is static.
	DefaultIdleFPS = 5
	// DefaultActiveFPS is the frame rate while motion keeps the
	// pipeline busy.
	DefaultActiveFPS = 15
	// DefaultIdleTimeout is how long without motion before dropping
	// back to the idle rate.
	DefaultIdleTimeout = 2 * time.Second
	// DefaultClassifyInterval throttles classifier sidecar calls.
	// Landmark positions are still fed to the movement analyzer on
	// every detected frame.
	DefaultClassifyInterval = 200 * time.Millisecond
)

// ActionFunc receives every triggered action, after it is logged and
// dispatched. The server's event hub hangs off this.
type ActionFunc func(gesture string, confidence float64, mode control.Mode, message string)

// Config holds the pipeline dependencies and tuning.
type Config struct {
	Store      *store.Store
	Camera     capture.Source // optional; defaults to the device camera
	CameraID   int
	Detector   detector.Detector
	Classifier classifier.Classifier
	Dispatcher *machine.Dispatcher
	Control    control.Config
	OnAction   ActionFunc

	IdleFPS          int
	ActiveFPS        int
	MotionThreshold  float64
	IdleTimeout      time.Duration
	ClassifyInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.IdleFPS <= 0 {
		c.IdleFPS = DefaultIdleFPS
	}
	if c.ActiveFPS <= 0 {
		c.ActiveFPS = DefaultActiveFPS
	}
	if c.MotionThreshold <= 0 {
		c.MotionThreshold = 1.0
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	if c.ClassifyInterval <= 0 {
		c.ClassifyInterval = DefaultClassifyInterval
	}
	return c
}

// App orchestrates the frame pipeline and owns the gesture controller.
type App struct {
	config     Config
	camera     capture.Source
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier classifier.Classifier
	controller *control.Controller
	gate       *IntervalGate

	mu      sync.RWMutex
	enabled bool
	stopCh  chan struct{}
}

// New creates an App. The detector and classifier fall back to mocks
// when unset, which keeps the pipeline runnable without the Python
// sidecars installed.
func New(config Config) *App {
	config = config.withDefaults()

	camera := config.Camera
	if camera == nil {
		camera = capture.NewCamera(config.CameraID)
	}

	a := &App{
		config:     config,
		camera:     camera,
		motion:     capture.NewMotionDetector(config.MotionThreshold),
		detector:   config.Detector,
		classifier: config.Classifier,
		controller: control.NewController(config.Control),
		gate:       NewIntervalGate(config.ClassifyInterval),
	}

	if a.detector == nil {
		if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
			a.detector = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			a.detector = detector.NewMockDetector()
		}
	}
	if a.classifier == nil {
		log.Println("No classifier configured, using mock")
		a.classifier = classifier.NewMockClassifier("", 0)
	}

	return a
}

// SetEnabled turns frame processing on or off without stopping the
// capture loop.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled reports whether frames are being processed.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Mode returns the controller's operating mode.
func (a *App) Mode() control.Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.controller.Mode()
}

// SetMode switches the operating mode. Invalid modes are rejected and
// leave the pipeline untouched.
func (a *App) SetMode(mode control.Mode) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.controller.SetMode(mode)
}

// History returns the controller's recent trigger history.
func (a *App) History() []control.HistoryEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.controller.History()
}

// Camera returns the frame source, for the preview stream.
func (a *App) Camera() capture.Source {
	return a.camera
}

// Start opens the camera and launches the pipeline goroutine.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(a.config.IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Processing pipeline started")
	return nil
}

// Stop halts the pipeline and releases the camera, detector, and
// classifier.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}
	if a.classifier != nil {
		if err := a.classifier.Close(); err != nil {
			log.Printf("Error closing classifier: %v", err)
		}
	}

	log.Println("Processing pipeline stopped")
}
