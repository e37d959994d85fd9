// Transform requests: the tagged choice of operation plus its parameters
package transform

import (
	"fmt"
	"image"
)

// Kind identifies one of the fixed transformations
type Kind int

const (
	KindNone Kind = iota
	KindRotate
	KindScale
	KindCrop
	KindAffineSample
	KindPerspectiveSample
	KindBrightness
	KindContrast
	KindFlip
	KindGrayscale
)

var kindNames = map[Kind]string{
	KindNone:              "none",
	KindRotate:            "rotate",
	KindScale:             "scale",
	KindCrop:              "crop",
	KindAffineSample:      "affine_sample",
	KindPerspectiveSample: "perspective_sample",
	KindBrightness:        "brightness",
	KindContrast:          "contrast",
	KindFlip:              "flip",
	KindGrayscale:         "grayscale",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// FlipAxis selects the mirror direction
type FlipAxis int

const (
	// FlipHorizontal mirrors left and right
	FlipHorizontal FlipAxis = iota
	// FlipVertical mirrors top and bottom
	FlipVertical
)

func (a FlipAxis) String() string {
	if a == FlipVertical {
		return "vertical"
	}
	return "horizontal"
}

// SampleMode controls how the demonstration warps place their control points
type SampleMode int

const (
	// SampleProportional expresses every control point as a fraction of W,H
	SampleProportional SampleMode = iota
	// SampleLiteral uses the fixed pixel offsets of the classic demo
	SampleLiteral
)

func (m SampleMode) String() string {
	if m == SampleLiteral {
		return "literal"
	}
	return "proportional"
}

// ParseSampleMode accepts "proportional" or "literal"
func ParseSampleMode(s string) (SampleMode, error) {
	switch s {
	case "", "proportional":
		return SampleProportional, nil
	case "literal":
		return SampleLiteral, nil
	default:
		return SampleProportional, fmt.Errorf("unknown sample mode %q (want proportional or literal)", s)
	}
}

// Bounds is a half-open crop rectangle [X1,X2) x [Y1,Y2)
type Bounds struct {
	X1, X2 int
	Y1, Y2 int
}

// Rect returns the bounds as an image.Rectangle
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// Request describes a single transformation. Only the fields relevant to Kind
// are read.
type Request struct {
	Kind   Kind
	Angle  float64 // degrees, counter-clockwise
	Factor float64 // scale or contrast factor
	Delta  float64 // brightness offset
	Crop   Bounds
	Axis   FlipAxis
	Sample SampleMode
}

func None() Request {
	return Request{Kind: KindNone}
}

func Rotate(angle float64) Request {
	return Request{Kind: KindRotate, Angle: angle}
}

func Scale(factor float64) Request {
	return Request{Kind: KindScale, Factor: factor}
}

func Crop(x1, x2, y1, y2 int) Request {
	return Request{Kind: KindCrop, Crop: Bounds{X1: x1, X2: x2, Y1: y1, Y2: y2}}
}

func AffineSample(mode SampleMode) Request {
	return Request{Kind: KindAffineSample, Sample: mode}
}

func PerspectiveSample(mode SampleMode) Request {
	return Request{Kind: KindPerspectiveSample, Sample: mode}
}

func Brightness(delta float64) Request {
	return Request{Kind: KindBrightness, Delta: delta}
}

func Contrast(factor float64) Request {
	return Request{Kind: KindContrast, Factor: factor}
}

func Flip(axis FlipAxis) Request {
	return Request{Kind: KindFlip, Axis: axis}
}

func Grayscale() Request {
	return Request{Kind: KindGrayscale}
}

// IsIdentity reports whether the request leaves the image unchanged by
// definition. Only None qualifies; a zero-degree rotation is still a
// transform the user selected.
func (r Request) IsIdentity() bool {
	return r.Kind == KindNone
}
