// Single-frame camera capture
package capture

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-transform-studio/internal/imageio"
)

var (
	ErrDeviceUnavailable = errors.New("camera device unavailable")
	ErrNoFrame           = errors.New("camera returned no frame")
)

// FrameSource yields BGR frames, as gocv.VideoCapture does
type FrameSource interface {
	Read(m *gocv.Mat) bool
	Close() error
}

// Opener opens a frame source for a device
type Opener func(deviceID int) (FrameSource, error)

// OpenVideoCapture opens a camera through OpenCV
func OpenVideoCapture(deviceID int) (FrameSource, error) {
	vc, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, err
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("device %d did not open", deviceID)
	}
	return vc, nil
}

// Camera grabs still frames from a capture device
type Camera struct {
	deviceID     int
	warmupFrames int
	open         Opener
	logger       logrus.FieldLogger
}

// NewCamera creates a camera for deviceID. Warm-up frames are read and
// discarded before the returned frame so auto exposure can settle.
func NewCamera(deviceID, warmupFrames int, logger logrus.FieldLogger) *Camera {
	return &Camera{
		deviceID:     deviceID,
		warmupFrames: max(0, warmupFrames),
		open:         OpenVideoCapture,
		logger:       logger,
	}
}

// WithOpener replaces the device opener, used by tests
func (c *Camera) WithOpener(open Opener) *Camera {
	c.open = open
	return c
}

// Capture opens the device, reads one frame and returns it as an RGB Mat
func (c *Camera) Capture(ctx context.Context) (gocv.Mat, error) {
	log := c.logger.WithField("device_id", c.deviceID)
	log.Debug("Opening camera")

	src, err := c.open(c.deviceID)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	defer src.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	for i := 0; i <= c.warmupFrames; i++ {
		if err := ctx.Err(); err != nil {
			return gocv.NewMat(), err
		}
		if !src.Read(&frame) || frame.Empty() {
			return gocv.NewMat(), fmt.Errorf("%w: read %d of %d failed", ErrNoFrame, i+1, c.warmupFrames+1)
		}
	}

	rgb, err := imageio.BGRToRGB(frame)
	if err != nil {
		return gocv.NewMat(), err
	}

	log.WithFields(logrus.Fields{
		"width":  rgb.Cols(),
		"height": rgb.Rows(),
	}).Info("Camera frame captured")
	return rgb, nil
}
