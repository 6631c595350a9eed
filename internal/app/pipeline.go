package app

import (
	"context"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/PiotrUrb/gesture-recognition-system/internal/control"
	"github.com/PiotrUrb/gesture-recognition-system/internal/feature"
	"github.com/PiotrUrb/gesture-recognition-system/internal/store"
)

// runPipeline is the frame loop. It idles at the low capture rate
// until motion wakes it, then detects hands, classifies poses at the
// gated rate, and feeds everything through the controller.
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotion := time.Now()

	frameInterval := time.Second / time.Duration(a.config.IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)
			if motionDetected {
				lastMotion = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(a.config.ActiveFPS)
					frameInterval = time.Second / time.Duration(a.config.ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastMotion) > a.config.IdleTimeout {
				activeMode = false
				a.camera.SetFPS(a.config.IdleFPS)
				frameInterval = time.Second / time.Duration(a.config.IdleFPS)
				ticker.Reset(frameInterval)
				a.gate.Reset()
				log.Println("Switched to idle mode")
			}

			if !activeMode {
				frame.Close()
				continue
			}

			a.processFrame(frame)
			frame.Close()
		}
	}
}

// processFrame runs detection on one frame and routes the first hand
// through classification and the controller.
func (a *App) processFrame(frame *gocv.Mat) {
	hands, err := a.detector.Detect(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		return
	}
	if len(hands) == 0 {
		return
	}
	hand := &hands[0]

	// Between classification ticks only the wrist trajectory advances,
	// so a swipe spanning several frames is not undersampled.
	if !a.gate.Allow() {
		a.mu.Lock()
		a.controller.Movement().AddPosition(hand)
		a.mu.Unlock()
		return
	}

	features, err := feature.Extract(hand.Points[:])
	if err != nil {
		log.Printf("Error extracting features: %v", err)
		return
	}

	pred, err := a.classifier.Classify(features)
	if err != nil {
		log.Printf("Error classifying gesture: %v", err)
		return
	}

	a.mu.Lock()
	result := a.controller.ProcessGesture(pred.Label, pred.Confidence, hand)
	mode := a.controller.Mode()
	a.mu.Unlock()

	if result.ActionTriggered {
		a.recordAction(result, mode)
	}
}

// recordAction persists, dispatches, and publishes one trigger.
func (a *App) recordAction(result control.Result, mode control.Mode) {
	log.Printf("%s (gesture %s, confidence %.2f, mode %s)",
		result.Message, result.Gesture, result.Confidence, mode)

	if a.config.Store != nil {
		err := a.config.Store.ActionLogs().Create(&store.ActionLog{
			Gesture:    result.Gesture,
			Confidence: result.Confidence,
			Mode:       string(mode),
		})
		if err != nil {
			log.Printf("Error logging action: %v", err)
		}
	}

	if a.config.Dispatcher != nil {
		err := a.config.Dispatcher.Dispatch(context.Background(), result.Gesture, result.Confidence, string(mode))
		if err != nil {
			log.Printf("Error dispatching action: %v", err)
		}
	}

	if a.config.OnAction != nil {
		a.config.OnAction(result.Gesture, result.Confidence, mode, result.Message)
	}
}
