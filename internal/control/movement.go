package control

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/PiotrUrb/gesture-recognition-system/internal/detector"
)

// SwipeDirection is a dynamic gesture label synthesized from hand motion.
type SwipeDirection string

const (
	SwipeLeft  SwipeDirection = "swipe_left"
	SwipeRight SwipeDirection = "swipe_right"
	SwipeUp    SwipeDirection = "swipe_up"
	SwipeDown  SwipeDirection = "swipe_down"
)

// Movement analysis constants.
const (
	// minSwipeSamples is the minimum number of buffered positions before
	// any determination is attempted.
	minSwipeSamples = 5

	// endpointWindow is how many positions at each end of the buffer are
	// averaged to smooth out per-frame jitter.
	endpointWindow = 3

	// axisDominance is how much larger the dominant axis displacement
	// must be than the other axis for a swipe to count.
	axisDominance = 1.5
)

type position struct {
	x, y float64
}

// MovementAnalyzer keeps a short rolling history of wrist positions for
// one tracked hand and detects directional swipes from the trajectory.
// One analyzer belongs to one tracking session; sharing an instance
// across sessions corrupts the buffer.
type MovementAnalyzer struct {
	buffer    []position
	capacity  int
	threshold float64
	cooldown  time.Duration
	mirror    bool
	lastSwipe time.Time
	now       func() time.Time
}

// NewMovementAnalyzer creates an analyzer with the given tuning. Zero
// config fields fall back to the documented defaults.
func NewMovementAnalyzer(cfg Config) *MovementAnalyzer {
	cfg = cfg.withDefaults()
	return &MovementAnalyzer{
		buffer:    make([]position, 0, cfg.BufferSize),
		capacity:  cfg.BufferSize,
		threshold: cfg.SwipeThreshold,
		cooldown:  cfg.SwipeCooldown,
		mirror:    cfg.MirrorHorizontal,
		now:       time.Now,
	}
}

// AddPosition appends the hand's wrist position to the buffer, evicting
// the oldest entry when the buffer is full. A nil hand is a no-op.
func (m *MovementAnalyzer) AddPosition(hand *detector.HandLandmarks) {
	if hand == nil {
		return
	}

	x, y := hand.WristPosition()
	if len(m.buffer) >= m.capacity {
		copy(m.buffer, m.buffer[1:])
		m.buffer = m.buffer[:len(m.buffer)-1]
	}
	m.buffer = append(m.buffer, position{x: x, y: y})
}

// Analyze checks the buffered trajectory for a swipe. On detection it
// clears the buffer, arms the cooldown, and returns the direction.
//
// Coordinate convention: x grows rightward and y grows downward, as in
// image coordinates. With a mirrored camera feed, construct the analyzer
// with MirrorHorizontal set so left/right come out the way the user moved.
func (m *MovementAnalyzer) Analyze() (SwipeDirection, bool) {
	current := m.now()
	if current.Sub(m.lastSwipe) < m.cooldown {
		return "", false
	}

	if len(m.buffer) < minSwipeSamples {
		return "", false
	}

	// Endpoints are means of the first/last few positions, not raw
	// samples, so one noisy frame cannot fake a swipe.
	head := m.buffer[:endpointWindow]
	tail := m.buffer[len(m.buffer)-endpointWindow:]

	dx := meanX(tail) - meanX(head)
	dy := meanY(tail) - meanY(head)

	absDX := math.Abs(dx)
	absDY := math.Abs(dy)

	if absDX > m.threshold && absDX > absDY*axisDominance {
		m.lastSwipe = current
		m.buffer = m.buffer[:0]

		right := dx > 0
		if m.mirror {
			right = !right
		}
		if right {
			return SwipeRight, true
		}
		return SwipeLeft, true
	}

	if absDY > m.threshold && absDY > absDX*axisDominance {
		m.lastSwipe = current
		m.buffer = m.buffer[:0]

		if dy < 0 {
			return SwipeUp, true
		}
		return SwipeDown, true
	}

	return "", false
}

// Reset discards the buffered trajectory. The swipe cooldown is left
// armed.
func (m *MovementAnalyzer) Reset() {
	m.buffer = m.buffer[:0]
}

// BufferLen returns the number of buffered positions.
func (m *MovementAnalyzer) BufferLen() int {
	return len(m.buffer)
}

func meanX(ps []position) float64 {
	xs := make([]float64, len(ps))
	for i, p := range ps {
		xs[i] = p.x
	}
	return stat.Mean(xs, nil)
}

func meanY(ps []position) float64 {
	ys := make([]float64, len(ps))
	for i, p := range ps {
		ys[i] = p.y
	}
	return stat.Mean(ys, nil)
}
