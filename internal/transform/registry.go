// Transform registry: labels and parameter metadata used to build controls
package transform

import (
	"fmt"
	"math"
)

// ParameterInfo describes a parameter for UI generation
type ParameterInfo struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"` // "int", "float", "enum"
	Min         float64  `json:"min,omitempty"`
	Max         float64  `json:"max,omitempty"`
	Step        float64  `json:"step,omitempty"`
	Default     float64  `json:"default"`
	Description string   `json:"description"`
	Options     []string `json:"options,omitempty"` // For enum type, Default is the option index
}

// Descriptor names a transform kind and lists its parameters. Crop bounds
// depend on the image and are not listed here.
type Descriptor struct {
	Kind        Kind
	Label       string
	Description string
	Parameters  []ParameterInfo
}

// Parameter names accepted by FromParams
const (
	ParamAngle      = "angle"
	ParamScale      = "scale"
	ParamBrightness = "brightness"
	ParamContrast   = "contrast"
	ParamAxis       = "axis"
	ParamSample     = "control_points"
	ParamX1         = "x1"
	ParamX2         = "x2"
	ParamY1         = "y1"
	ParamY2         = "y2"
)

var (
	flipOptions   = []string{"➡️ Horizontal", "⬇️ Vertical"}
	sampleOptions = []string{"Proportional", "Literal"}
)

var descriptors = []Descriptor{
	{
		Kind:        KindNone,
		Label:       "None",
		Description: "Show the original image unchanged",
	},
	{
		Kind:        KindRotate,
		Label:       "Rotate 🔄",
		Description: "Rotate about the image center, keeping the canvas size",
		Parameters: []ParameterInfo{{
			Name: ParamAngle, Type: "int", Min: MinAngle, Max: MaxAngle, Step: 1, Default: 0,
			Description: "Rotation Angle",
		}},
	},
	{
		Kind:        KindScale,
		Label:       "Scale 🔍",
		Description: "Resize both dimensions with linear interpolation",
		Parameters: []ParameterInfo{{
			Name: ParamScale, Type: "float", Min: MinScale, Max: MaxScale, Step: 0.01, Default: 1.0,
			Description: "Scale Factor",
		}},
	},
	{
		Kind:        KindCrop,
		Label:       "Crop ✂️",
		Description: "Keep a rectangular region of the image",
	},
	{
		Kind:        KindAffineSample,
		Label:       "Affine Transform 🎯",
		Description: "Using sample affine transformation.",
		Parameters: []ParameterInfo{{
			Name: ParamSample, Type: "enum", Default: 0, Options: sampleOptions,
			Description: "Control points",
		}},
	},
	{
		Kind:        KindPerspectiveSample,
		Label:       "Perspective Transform 🧊",
		Description: "Using sample perspective transformation.",
		Parameters: []ParameterInfo{{
			Name: ParamSample, Type: "enum", Default: 0, Options: sampleOptions,
			Description: "Control points",
		}},
	},
	{
		Kind:        KindBrightness,
		Label:       "Brightness Adjustment 💡",
		Description: "Add a constant to every channel",
		Parameters: []ParameterInfo{{
			Name: ParamBrightness, Type: "int", Min: MinBrightness, Max: MaxBrightness, Step: 1, Default: 0,
			Description: "Brightness",
		}},
	},
	{
		Kind:        KindContrast,
		Label:       "Contrast Adjustment ⚡",
		Description: "Multiply every channel by a factor",
		Parameters: []ParameterInfo{{
			Name: ParamContrast, Type: "float", Min: MinContrast, Max: MaxContrast, Step: 0.01, Default: 1.0,
			Description: "Contrast",
		}},
	},
	{
		Kind:        KindFlip,
		Label:       "Flip 🔄",
		Description: "Flip image horizontally or vertically.",
		Parameters: []ParameterInfo{{
			Name: ParamAxis, Type: "enum", Default: 0, Options: flipOptions,
			Description: "Flip Mode:",
		}},
	},
	{
		Kind:        KindGrayscale,
		Label:       "Grayscale Conversion",
		Description: "Luminance-weighted gray, kept as three channels",
	},
}

// Descriptors returns every transform in display order
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Labels returns the display labels in order
func Labels() []string {
	labels := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		labels = append(labels, d.Label)
	}
	return labels
}

func Lookup(kind Kind) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Kind == kind {
			return d, true
		}
	}
	return Descriptor{}, false
}

func KindFromLabel(label string) (Kind, bool) {
	for _, d := range descriptors {
		if d.Label == label {
			return d.Kind, true
		}
	}
	return KindNone, false
}

// DefaultParams returns the default value of every listed parameter of kind
func DefaultParams(kind Kind) map[string]float64 {
	params := make(map[string]float64)
	if d, ok := Lookup(kind); ok {
		for _, p := range d.Parameters {
			params[p.Name] = p.Default
		}
	}
	return params
}

// CropDefaults returns bounds covering the whole image
func CropDefaults(width, height int) map[string]float64 {
	return map[string]float64{
		ParamX1: 0,
		ParamX2: float64(width),
		ParamY1: 0,
		ParamY2: float64(height),
	}
}

// FromParams builds a Request from control values keyed by parameter name.
// Missing values take their defaults.
func FromParams(kind Kind, params map[string]float64) (Request, error) {
	get := func(name string) float64 {
		if v, ok := params[name]; ok {
			return v
		}
		return DefaultParams(kind)[name]
	}

	switch kind {
	case KindNone:
		return None(), nil
	case KindRotate:
		return Rotate(get(ParamAngle)), nil
	case KindScale:
		return Scale(get(ParamScale)), nil
	case KindBrightness:
		return Brightness(get(ParamBrightness)), nil
	case KindContrast:
		return Contrast(get(ParamContrast)), nil
	case KindGrayscale:
		return Grayscale(), nil
	case KindFlip:
		axis, err := optionIndex(ParamAxis, get(ParamAxis), len(flipOptions))
		if err != nil {
			return Request{}, err
		}
		return Flip(FlipAxis(axis)), nil
	case KindAffineSample, KindPerspectiveSample:
		mode, err := optionIndex(ParamSample, get(ParamSample), len(sampleOptions))
		if err != nil {
			return Request{}, err
		}
		return Request{Kind: kind, Sample: SampleMode(mode)}, nil
	case KindCrop:
		for _, name := range []string{ParamX1, ParamX2, ParamY1, ParamY2} {
			if _, ok := params[name]; !ok {
				return Request{}, fmt.Errorf("%w: missing crop bound %s", ErrInvalidBounds, name)
			}
		}
		return Crop(
			int(math.Round(params[ParamX1])),
			int(math.Round(params[ParamX2])),
			int(math.Round(params[ParamY1])),
			int(math.Round(params[ParamY2])),
		), nil
	}
	return Request{}, fmt.Errorf("%w: %s", ErrUnknownTransform, kind)
}

func optionIndex(name string, v float64, n int) (int, error) {
	i := int(math.Round(v))
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %s option %d not in [0,%d)", ErrOutOfRange, name, i, n)
	}
	return i, nil
}
