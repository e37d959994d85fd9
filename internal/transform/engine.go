// Image transform engine: one stateless function per transform kind
package transform

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Parameter limits enforced by Validate
const (
	MinAngle      = -180.0
	MaxAngle      = 180.0
	MinScale      = 0.1
	MaxScale      = 3.0
	MinBrightness = -100.0
	MaxBrightness = 100.0
	MinContrast   = 0.1
	MaxContrast   = 3.0

	// MinCropSize is the smallest width and height an image may have to be cropped
	MinCropSize = 2
)

// Apply computes a new image from src according to req. src is never
// modified and the returned Mat is owned by the caller. On error the
// returned Mat is empty and needs no Close.
func Apply(src gocv.Mat, req Request) (gocv.Mat, error) {
	if err := ValidateImage(src); err != nil {
		return gocv.NewMat(), err
	}
	if err := Validate(req, src.Cols(), src.Rows()); err != nil {
		return gocv.NewMat(), err
	}

	switch req.Kind {
	case KindNone:
		return src.Clone(), nil
	case KindRotate:
		return rotate(src, req.Angle)
	case KindScale:
		return scale(src, req.Factor)
	case KindCrop:
		return crop(src, req.Crop)
	case KindAffineSample:
		return affineSample(src, req.Sample)
	case KindPerspectiveSample:
		return perspectiveSample(src, req.Sample)
	case KindBrightness:
		return brightness(src, req.Delta)
	case KindContrast:
		return contrast(src, req.Factor)
	case KindFlip:
		return flip(src, req.Axis)
	case KindGrayscale:
		return grayscale(src)
	}
	return gocv.NewMat(), fmt.Errorf("%w: %s", ErrUnknownTransform, req.Kind)
}

// ValidateImage checks that mat is a non-empty 3-channel 8-bit image
func ValidateImage(mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("%w: image is empty", ErrInvalidImage)
	}
	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrInvalidImage, mat.Cols(), mat.Rows())
	}
	if mat.Type() != gocv.MatTypeCV8UC3 {
		return fmt.Errorf("%w: expected 8-bit 3-channel image, got %d channels of type %v",
			ErrInvalidImage, mat.Channels(), mat.Type())
	}
	return nil
}

// Validate checks req against the parameter limits for an image of the given
// width and height. Values are rejected, never clamped.
func Validate(req Request, width, height int) error {
	switch req.Kind {
	case KindNone, KindGrayscale:
		return nil
	case KindRotate:
		return checkRange("angle", req.Angle, MinAngle, MaxAngle)
	case KindScale:
		return checkRange("scale factor", req.Factor, MinScale, MaxScale)
	case KindBrightness:
		return checkRange("brightness delta", req.Delta, MinBrightness, MaxBrightness)
	case KindContrast:
		return checkRange("contrast factor", req.Factor, MinContrast, MaxContrast)
	case KindCrop:
		return validateCrop(req.Crop, width, height)
	case KindFlip:
		if req.Axis != FlipHorizontal && req.Axis != FlipVertical {
			return fmt.Errorf("%w: flip axis %d", ErrOutOfRange, int(req.Axis))
		}
		return nil
	case KindAffineSample, KindPerspectiveSample:
		if req.Sample != SampleProportional && req.Sample != SampleLiteral {
			return fmt.Errorf("%w: sample mode %d", ErrOutOfRange, int(req.Sample))
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownTransform, req.Kind)
}

func checkRange(name string, v, lo, hi float64) error {
	// NaN fails both comparisons, so test the accepted range instead
	if !(v >= lo && v <= hi) {
		return fmt.Errorf("%w: %s %g must be between %g and %g", ErrOutOfRange, name, v, lo, hi)
	}
	return nil
}

func validateCrop(b Bounds, width, height int) error {
	if width < MinCropSize || height < MinCropSize {
		return fmt.Errorf("%w: %dx%d (minimum %dx%d)", ErrTooSmall, width, height, MinCropSize, MinCropSize)
	}
	if b.X2 <= b.X1 || b.Y2 <= b.Y1 {
		return fmt.Errorf("%w: x [%d,%d) y [%d,%d) is empty", ErrInvalidBounds, b.X1, b.X2, b.Y1, b.Y2)
	}
	if b.X1 < 0 || b.Y1 < 0 || b.X2 > width || b.Y2 > height {
		return fmt.Errorf("%w: x [%d,%d) y [%d,%d) exceeds %dx%d image",
			ErrInvalidBounds, b.X1, b.X2, b.Y1, b.Y2, width, height)
	}
	return nil
}
