package gui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-transform-studio/internal/transform"
)

func TestParameterFormSliderRanges(t *testing.T) {
	test.NewTempApp(t)

	form := NewParameterForm(transform.KindRotate, 50, 50, transform.SampleProportional, nil)
	slider := form.sliders[transform.ParamAngle]
	require.NotNil(t, slider)
	assert.Equal(t, -180.0, slider.Min)
	assert.Equal(t, 180.0, slider.Max)

	form = NewParameterForm(transform.KindContrast, 50, 50, transform.SampleProportional, nil)
	slider = form.sliders[transform.ParamContrast]
	assert.Equal(t, 0.1, slider.Min)
	assert.Equal(t, 3.0, slider.Max)
	assert.Equal(t, 1.0, slider.Value)
}

func TestParameterFormCropBounds(t *testing.T) {
	test.NewTempApp(t)

	form := NewParameterForm(transform.KindCrop, 40, 30, transform.SampleProportional, nil)
	assert.Equal(t, 38.0, form.sliders[transform.ParamX1].Max)
	assert.Equal(t, 40.0, form.sliders[transform.ParamX2].Max)
	assert.Equal(t, 28.0, form.sliders[transform.ParamY1].Max)
	assert.Equal(t, 30.0, form.sliders[transform.ParamY2].Max)

	req, err := form.Request()
	require.NoError(t, err)
	assert.Equal(t, transform.Crop(0, 40, 0, 30), req)

	form.sliders[transform.ParamY1].SetValue(10)
	assert.Equal(t, 11.0, form.sliders[transform.ParamY2].Min)
}

func TestParameterFormEnums(t *testing.T) {
	test.NewTempApp(t)

	changes := 0
	form := NewParameterForm(transform.KindFlip, 10, 10, transform.SampleProportional, func() { changes++ })
	sel := form.selects[transform.ParamAxis]
	require.NotNil(t, sel)
	assert.Equal(t, "➡️ Horizontal", sel.Selected)

	sel.SetSelected("⬇️ Vertical")
	req, err := form.Request()
	require.NoError(t, err)
	assert.Equal(t, transform.Flip(transform.FlipVertical), req)
	assert.Equal(t, 1, changes)

	form = NewParameterForm(transform.KindAffineSample, 10, 10, transform.SampleLiteral, nil)
	assert.Equal(t, "Literal", form.selects[transform.ParamSample].Selected)
	req, err = form.Request()
	require.NoError(t, err)
	assert.Equal(t, transform.AffineSample(transform.SampleLiteral), req)
}

func TestResultTitle(t *testing.T) {
	assert.Equal(t, "🌀 Rotated 45°", resultTitle(transform.Rotate(45)))
	assert.Equal(t, "🔍 Scaled 1.50x", resultTitle(transform.Scale(1.5)))
	// snapped slider values carry float noise
	assert.Equal(t, "🔍 Scaled 1.13x", resultTitle(transform.Scale(1.1300000000000001)))
	assert.Equal(t, "⚡ Contrast adjusted by 0.70", resultTitle(transform.Contrast(0.7000000000000001)))
	assert.Equal(t, "🔄 Flipped ⬇️ Vertical", resultTitle(transform.Flip(transform.FlipVertical)))
	assert.Equal(t, "", resultTitle(transform.None()))
}
