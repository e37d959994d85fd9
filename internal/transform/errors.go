package transform

import "errors"

var (
	// ErrInvalidBounds is returned when crop bounds are inverted or exceed the image
	ErrInvalidBounds = errors.New("invalid crop bounds")

	// ErrTooSmall is returned when the image is below the minimum size for cropping
	ErrTooSmall = errors.New("image too small to crop")

	// ErrOutOfRange is returned when a numeric parameter is outside its allowed range
	ErrOutOfRange = errors.New("parameter out of range")

	// ErrUnknownTransform is returned for a Kind the engine does not implement
	ErrUnknownTransform = errors.New("unknown transform")

	// ErrInvalidImage is returned when the input is empty or not 8-bit RGB
	ErrInvalidImage = errors.New("invalid input image")
)
