// Package control implements the gesture-to-action state machine: swipe
// detection over wrist trajectories and the mode-driven trigger policy
// for static gestures.
//
// Controller and MovementAnalyzer instances are owned by a single
// session's processing loop. Calls are not synchronized internally;
// callers running multiple sessions construct one instance per session.
package control

import "time"

// Default tuning values. These are deliberately configuration, not
// literals in the control flow, so deployments can adjust them.
const (
	// DefaultConfidenceFloor is the global minimum classifier confidence
	// for a static gesture to be considered at all, in any mode.
	DefaultConfidenceFloor = 0.7

	// DefaultHoldDuration is how long a gesture must be held in safe mode.
	DefaultHoldDuration = 2 * time.Second

	// DefaultActionCooldown is the minimum time between triggers in
	// standard and safe mode.
	DefaultActionCooldown = time.Second

	// DefaultAllModeThrottle is the minimum time between triggers in all
	// mode, which otherwise fires on every qualifying frame.
	DefaultAllModeThrottle = 500 * time.Millisecond

	// DefaultSwipeThreshold is the minimum displacement for a swipe, as a
	// fraction of the normalized screen size.
	DefaultSwipeThreshold = 0.10

	// DefaultSwipeCooldown suppresses swipe analysis after a detection so
	// one continuous motion cannot trigger twice.
	DefaultSwipeCooldown = 800 * time.Millisecond

	// DefaultBufferSize is the wrist position history capacity.
	DefaultBufferSize = 15

	// DefaultHistoryLimit caps the in-memory action history log.
	DefaultHistoryLimit = 100
)

// Config holds the tuning values for a controller and its movement
// analyzer. Zero fields are replaced with defaults at construction.
type Config struct {
	ConfidenceFloor float64
	HoldDuration    time.Duration
	ActionCooldown  time.Duration
	AllModeThrottle time.Duration
	SwipeThreshold  float64
	SwipeCooldown   time.Duration
	BufferSize      int
	HistoryLimit    int

	// MirrorHorizontal flips left/right swipe directions. Set it when the
	// camera feed is mirrored before landmarks are computed; the default
	// assumes the unmirrored image convention (x grows rightward).
	MirrorHorizontal bool
}

// DefaultConfig returns a Config with the documented default values.
func DefaultConfig() Config {
	return Config{
		ConfidenceFloor: DefaultConfidenceFloor,
		HoldDuration:    DefaultHoldDuration,
		ActionCooldown:  DefaultActionCooldown,
		AllModeThrottle: DefaultAllModeThrottle,
		SwipeThreshold:  DefaultSwipeThreshold,
		SwipeCooldown:   DefaultSwipeCooldown,
		BufferSize:      DefaultBufferSize,
		HistoryLimit:    DefaultHistoryLimit,
	}
}

// withDefaults fills in zero fields.
func (c Config) withDefaults() Config {
	if c.ConfidenceFloor <= 0 {
		c.ConfidenceFloor = DefaultConfidenceFloor
	}
	if c.HoldDuration <= 0 {
		c.HoldDuration = DefaultHoldDuration
	}
	if c.ActionCooldown <= 0 {
		c.ActionCooldown = DefaultActionCooldown
	}
	if c.AllModeThrottle <= 0 {
		c.AllModeThrottle = DefaultAllModeThrottle
	}
	if c.SwipeThreshold <= 0 {
		c.SwipeThreshold = DefaultSwipeThreshold
	}
	if c.SwipeCooldown <= 0 {
		c.SwipeCooldown = DefaultSwipeCooldown
	}
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultBufferSize
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = DefaultHistoryLimit
	}
	return c
}
