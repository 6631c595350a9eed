package control

import (
	"errors"
	"strings"
	"time"

	"github.com/PiotrUrb/gesture-recognition-system/internal/detector"
)

// Mode is the controller's trigger policy for static gestures.
type Mode string

const (
	// ModeStandard fires whenever the action cooldown has elapsed,
	// regardless of whether the label changed.
	ModeStandard Mode = "standard"
	// ModeSafe fires only after the same gesture has been held
	// continuously for the hold duration.
	ModeSafe Mode = "safe"
	// ModeAll fires on every qualifying frame, lightly throttled.
	ModeAll Mode = "all"
)

// ErrInvalidMode is returned by SetMode for an unrecognized mode. The
// controller state is left unchanged.
var ErrInvalidMode = errors.New("invalid mode")

// ValidMode reports whether m is one of the recognized modes.
func ValidMode(m Mode) bool {
	switch m {
	case ModeStandard, ModeSafe, ModeAll:
		return true
	}
	return false
}

// HistoryEntry is one triggered action. Entries are immutable once
// appended.
type HistoryEntry struct {
	Seq        uint64    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Gesture    string    `json:"gesture"`
	Confidence float64   `json:"confidence"`
	Mode       Mode      `json:"mode"`
}

// Result is the outcome of processing one frame's classification.
// Gesture and Confidence are filled only when an action triggered; for
// dynamic gestures they carry the synthesized swipe label, not the
// classifier input.
type Result struct {
	ActionTriggered bool    `json:"action_triggered"`
	Progress        float64 `json:"progress"`
	Message         string  `json:"message"`
	Gesture         string  `json:"gesture,omitempty"`
	Confidence      float64 `json:"confidence,omitempty"`
}

// Controller is the gesture-to-action state machine. It receives one
// classified (label, confidence) pair per frame, delegates motion to its
// movement analyzer, applies the active mode's trigger policy, and keeps
// a bounded most-recent-first history of triggered actions.
//
// A Controller is owned by a single session's processing loop and is not
// safe for concurrent use.
type Controller struct {
	cfg         Config
	mode        Mode
	heldGesture string
	holdStart   time.Time
	lastAction  time.Time
	history     []HistoryEntry
	seq         uint64
	movement    *MovementAnalyzer
	now         func() time.Time
}

// NewController creates a controller in standard mode with its own
// movement analyzer. Zero config fields fall back to defaults.
func NewController(cfg Config) *Controller {
	cfg = cfg.withDefaults()
	return &Controller{
		cfg:      cfg,
		mode:     ModeStandard,
		movement: NewMovementAnalyzer(cfg),
		now:      time.Now,
	}
}

// Mode returns the active trigger policy.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Movement returns the controller's movement analyzer. Callers may feed
// positions directly on frames that skip classification.
func (c *Controller) Movement() *MovementAnalyzer {
	return c.movement
}

// SetMode switches the trigger policy. An unrecognized mode returns
// ErrInvalidMode without mutating any state. On an accepted switch the
// held-gesture state and the movement buffer are cleared so no partial
// progress leaks across modes; the history log is kept.
func (c *Controller) SetMode(mode Mode) error {
	if !ValidMode(mode) {
		return ErrInvalidMode
	}
	c.mode = mode
	c.resetHold()
	c.movement.Reset()
	return nil
}

// Reset clears the held-gesture state and the movement buffer.
func (c *Controller) Reset() {
	c.resetHold()
	c.movement.Reset()
}

// History returns a copy of the action log, most recent first.
func (c *Controller) History() []HistoryEntry {
	out := make([]HistoryEntry, len(c.history))
	copy(out, c.history)
	return out
}

// ProcessGesture processes one frame's classification, plus the raw hand
// for movement analysis when available.
//
// A detected swipe short-circuits: it triggers immediately with
// confidence 1.0 and no static-gesture policy runs this frame. Otherwise
// a classification below the confidence floor clears the held gesture
// and triggers nothing; low confidence is an expected steady-state input,
// not an error. Qualifying classifications are then dispatched through
// the active mode's policy.
func (c *Controller) ProcessGesture(label string, confidence float64, hand *detector.HandLandmarks) Result {
	current := c.now()
	result := Result{}

	if hand != nil {
		c.movement.AddPosition(hand)
		if dir, ok := c.movement.Analyze(); ok {
			result.ActionTriggered = true
			result.Message = "DYNAMIC: " + strings.ToUpper(string(dir))
			result.Gesture = string(dir)
			result.Confidence = 1.0
			c.logAction(string(dir), 1.0, current)
			return result
		}
	}

	if confidence < c.cfg.ConfidenceFloor {
		c.resetHold()
		return result
	}

	switch c.mode {
	case ModeAll:
		if current.Sub(c.lastAction) > c.cfg.AllModeThrottle {
			result.ActionTriggered = true
			result.Message = "Detected: " + label
			result.Gesture = label
			result.Confidence = confidence
			c.logAction(label, confidence, current)
			c.lastAction = current
		}

	case ModeSafe:
		if c.heldGesture != label {
			// New hold starts from zero, whatever was building before.
			c.heldGesture = label
			c.holdStart = current
		} else {
			elapsed := current.Sub(c.holdStart)
			progress := float64(elapsed) / float64(c.cfg.HoldDuration)
			if progress > 1.0 {
				progress = 1.0
			}
			result.Progress = progress

			if progress >= 1.0 && current.Sub(c.lastAction) > c.cfg.ActionCooldown {
				result.ActionTriggered = true
				result.Message = "ACTION EXECUTED: " + label
				result.Gesture = label
				result.Confidence = confidence
				c.logAction(label, confidence, current)
				c.lastAction = current
				// The same gesture must build up a fresh hold to fire again.
				c.resetHold()
			}
		}

	case ModeStandard:
		if current.Sub(c.lastAction) > c.cfg.ActionCooldown {
			result.ActionTriggered = true
			result.Message = "Quick Action: " + label
			result.Gesture = label
			result.Confidence = confidence
			c.logAction(label, confidence, current)
			c.lastAction = current
		}
	}

	return result
}

// resetHold clears the held-gesture state. The movement buffer is left
// alone; a low-confidence frame must not interrupt an in-flight swipe.
func (c *Controller) resetHold() {
	c.heldGesture = ""
	c.holdStart = time.Time{}
}

// logAction prepends a history entry, dropping the oldest past the cap.
// Sequence ids are monotonic for the controller's lifetime so entries
// stay identifiable after the log wraps.
func (c *Controller) logAction(gesture string, confidence float64, at time.Time) {
	c.seq++
	entry := HistoryEntry{
		Seq:        c.seq,
		Timestamp:  at,
		Gesture:    gesture,
		Confidence: confidence,
		Mode:       c.mode,
	}

	c.history = append([]HistoryEntry{entry}, c.history...)
	if len(c.history) > c.cfg.HistoryLimit {
		c.history = c.history[:c.cfg.HistoryLimit]
	}
}
