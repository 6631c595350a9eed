package machine

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/PiotrUrb/gesture-recognition-system/internal/store"
)

// Runner executes a machine command. Satisfied by *Executor; tests
// substitute their own.
type Runner interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// Dispatcher resolves a recognized gesture against the catalog and
// forwards the bound command to the machine.
type Dispatcher struct {
	gestures *store.GestureRepository
	runner   Runner
}

// NewDispatcher creates a Dispatcher. A nil runner means log-only
// operation: actions are resolved but not sent anywhere.
func NewDispatcher(gestures *store.GestureRepository, runner Runner) *Dispatcher {
	return &Dispatcher{gestures: gestures, runner: runner}
}

// Dispatch looks up the gesture in the catalog and executes its bound
// command. Gestures that are unknown, disabled, or unbound are skipped
// silently; that is normal operation, not an error.
func (d *Dispatcher) Dispatch(ctx context.Context, gesture string, confidence float64, mode string) error {
	entry, err := d.gestures.GetByName(gesture)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("catalog lookup for %q: %w", gesture, err)
	}
	if !entry.Enabled || entry.Action == "" {
		return nil
	}

	if d.runner == nil {
		log.Printf("machine: action %s (gesture %s) resolved, no executor configured", entry.Action, gesture)
		return nil
	}

	resp, err := d.runner.Execute(ctx, &Request{
		Action:     entry.Action,
		Gesture:    gesture,
		Confidence: confidence,
		Mode:       mode,
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("machine rejected %s: %s", entry.Action, resp.Error)
	}

	log.Printf("machine: executed %s (gesture %s, confidence %.2f)", entry.Action, gesture, confidence)
	return nil
}
