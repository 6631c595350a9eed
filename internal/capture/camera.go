// Package capture reads video frames from a camera device via GoCV
// and gates the downstream pipeline on inter-frame motion.
package capture

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Capture defaults. The resolution is kept low so landmark detection
// keeps up with the frame rate on embedded hardware.
const (
	DefaultFrameWidth  = 640
	DefaultFrameHeight = 480
	DefaultFPS         = 5
)

var (
	// ErrCameraClosed is returned when reading from a source that has
	// not been opened or has already been closed.
	ErrCameraClosed = errors.New("capture: camera is closed")

	// ErrEmptyFrame is returned when the device delivers an empty Mat.
	ErrEmptyFrame = errors.New("capture: empty frame")
)

// Source is a stream of video frames. Implementations must be safe
// for use from a single reader goroutine alongside FPS adjustments.
type Source interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// deviceCamera captures from a physical camera through OpenCV.
type deviceCamera struct {
	deviceID int
	width    int
	height   int

	mu   sync.Mutex
	cap  *gocv.VideoCapture
	fps  int
	open bool
}

// NewCamera returns a Source for the given V4L2/DirectShow device ID
// at the default resolution.
func NewCamera(deviceID int) Source {
	return &deviceCamera{
		deviceID: deviceID,
		width:    DefaultFrameWidth,
		height:   DefaultFrameHeight,
		fps:      DefaultFPS,
	}
}

func (c *deviceCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open {
		return nil
	}

	cap, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		return fmt.Errorf("capture: open device %d: %w", c.deviceID, err)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(c.width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(c.height))
	cap.Set(gocv.VideoCaptureFPS, float64(c.fps))

	c.cap = cap
	c.open = true
	return nil
}

func (c *deviceCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open || c.cap == nil {
		c.open = false
		return nil
	}

	err := c.cap.Close()
	c.cap = nil
	c.open = false
	return err
}

// ReadFrame grabs the next frame. The caller owns the returned Mat
// and must Close it.
func (c *deviceCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open || c.cap == nil {
		return nil, ErrCameraClosed
	}

	mat := gocv.NewMat()
	if ok := c.cap.Read(&mat); !ok {
		mat.Close()
		return nil, fmt.Errorf("capture: read from device %d failed", c.deviceID)
	}
	if mat.Empty() {
		mat.Close()
		return nil, ErrEmptyFrame
	}
	return &mat, nil
}

// SetFPS changes the requested capture rate. Non-positive values are
// ignored; not every driver honors the setting.
func (c *deviceCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fps = fps
	if c.cap != nil {
		c.cap.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

func (c *deviceCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *deviceCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}
