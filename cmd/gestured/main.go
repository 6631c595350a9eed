package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/PiotrUrb/gesture-recognition-system/internal/app"
	"github.com/PiotrUrb/gesture-recognition-system/internal/classifier"
	"github.com/PiotrUrb/gesture-recognition-system/internal/config"
	"github.com/PiotrUrb/gesture-recognition-system/internal/control"
	"github.com/PiotrUrb/gesture-recognition-system/internal/detector"
	"github.com/PiotrUrb/gesture-recognition-system/internal/machine"
	"github.com/PiotrUrb/gesture-recognition-system/internal/server"
	"github.com/PiotrUrb/gesture-recognition-system/internal/store"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the TOML configuration file")
	flag.Parse()

	fmt.Println("gestured - camera gesture control for industrial machines")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".gestured")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "gestured.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(detector.Config{
		MaxHands:      cfg.Detector.MaxHands,
		MinConfidence: cfg.Detector.MinConfidence,
		ScriptPath:    cfg.Detector.ScriptPath,
	}); err == nil {
		det = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		det = detector.NewMockDetector()
	}

	var cls classifier.Classifier
	if cfg.Classifier.ModelDir != "" {
		pc, err := classifier.NewProcessClassifier(cfg.Classifier.ScriptPath, cfg.Classifier.ModelDir)
		if err != nil {
			log.Printf("Classifier sidecar unavailable (%v), using mock", err)
			cls = classifier.NewMockClassifier("", 0)
		} else {
			cls = pc
		}
	} else {
		log.Println("No classifier model configured, using mock")
		cls = classifier.NewMockClassifier("", 0)
	}

	var runner machine.Runner
	if cfg.Machine.PluginPath != "" {
		runner = machine.NewExecutor(cfg.Machine.PluginPath, cfg.MachineTimeout())
	}
	dispatcher := machine.NewDispatcher(st.Gestures(), runner)

	hub := server.NewEventHub()

	a := app.New(app.Config{
		Store:           st,
		CameraID:        cfg.Camera.DeviceID,
		Detector:        det,
		Classifier:      cls,
		Dispatcher:      dispatcher,
		Control:         cfg.Controller(),
		IdleFPS:         cfg.Camera.IdleFPS,
		ActiveFPS:       cfg.Camera.ActiveFPS,
		MotionThreshold: cfg.Camera.MotionThreshold,
		OnAction: func(gesture string, confidence float64, mode control.Mode, message string) {
			hub.Publish(server.ActionEvent{
				Gesture:    gesture,
				Confidence: confidence,
				Mode:       string(mode),
				Message:    message,
				Timestamp:  time.Now(),
			})
		},
	})

	restoreMode(a, st)

	if err := a.Start(); err != nil {
		log.Printf("Pipeline not started: %v (API remains available)", err)
	} else {
		a.SetEnabled(true)
		defer a.Stop()
	}

	srv := server.New(server.Config{
		Store:  st,
		Camera: a.Camera(),
		Modes:  a,
		Events: hub,
	})

	log.Printf("Listening on %s", cfg.Server.Addr)
	if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// restoreMode puts the controller back into the mode persisted by the
// last run.
func restoreMode(a *app.App, st *store.Store) {
	value, err := st.Settings().Get(store.SettingMode)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("Failed to read persisted mode: %v", err)
		return
	}

	if err := a.SetMode(control.Mode(value)); err != nil {
		log.Printf("Ignoring persisted mode %q: %v", value, err)
	}
}
