// Parameter controls generated from transform descriptors
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"image-transform-studio/internal/transform"
)

const tooSmallMessage = "Image too small to crop."

// ParameterForm holds the controls for one transform kind and the values
// they currently produce
type ParameterForm struct {
	kind     transform.Kind
	values   map[string]float64
	sliders  map[string]*widget.Slider
	selects  map[string]*widget.Select
	box      *fyne.Container
	tooSmall bool

	onChanged func()
}

// NewParameterForm builds the controls for kind on a width x height image.
// onChanged runs after any control changes value.
func NewParameterForm(kind transform.Kind, width, height int, sample transform.SampleMode, onChanged func()) *ParameterForm {
	form := &ParameterForm{
		kind:      kind,
		values:    transform.DefaultParams(kind),
		sliders:   make(map[string]*widget.Slider),
		selects:   make(map[string]*widget.Select),
		box:       container.NewVBox(),
		onChanged: onChanged,
	}

	if kind == transform.KindAffineSample || kind == transform.KindPerspectiveSample {
		form.values[transform.ParamSample] = float64(sample)
	}

	if kind == transform.KindCrop {
		form.buildCrop(width, height)
		return form
	}

	desc, ok := transform.Lookup(kind)
	if !ok {
		return form
	}
	if desc.Description != "" && len(desc.Parameters) == 0 {
		form.box.Add(widget.NewLabel(desc.Description))
	}
	for _, p := range desc.Parameters {
		switch p.Type {
		case "enum":
			form.box.Add(form.enumControl(p))
		default:
			form.box.Add(form.sliderControl(p, p.Min, p.Max))
		}
	}
	return form
}

func (f *ParameterForm) Container() fyne.CanvasObject {
	return f.box
}

// TooSmall reports whether crop controls were withheld for a tiny image
func (f *ParameterForm) TooSmall() bool {
	return f.tooSmall
}

// Values returns a copy of the current control values
func (f *ParameterForm) Values() map[string]float64 {
	out := make(map[string]float64, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Request builds the transform request for the current values
func (f *ParameterForm) Request() (transform.Request, error) {
	if f.tooSmall {
		return transform.Request{}, transform.ErrTooSmall
	}
	return transform.FromParams(f.kind, f.values)
}

func (f *ParameterForm) sliderControl(p transform.ParameterInfo, lo, hi float64) fyne.CanvasObject {
	label := widget.NewLabel(formatParam(p, f.values[p.Name]))

	slider := widget.NewSlider(lo, hi)
	slider.Step = p.Step
	slider.Value = f.values[p.Name]
	slider.OnChanged = func(v float64) {
		f.values[p.Name] = v
		label.SetText(formatParam(p, v))
		f.changed()
	}
	f.sliders[p.Name] = slider

	return container.NewVBox(label, slider)
}

func (f *ParameterForm) enumControl(p transform.ParameterInfo) fyne.CanvasObject {
	sel := widget.NewSelect(p.Options, nil)
	idx := int(f.values[p.Name])
	if idx >= 0 && idx < len(p.Options) {
		sel.SetSelected(p.Options[idx])
	}
	sel.OnChanged = func(choice string) {
		for i, opt := range p.Options {
			if opt == choice {
				f.values[p.Name] = float64(i)
				f.changed()
				return
			}
		}
	}
	f.selects[p.Name] = sel

	return container.NewVBox(widget.NewLabel(p.Description), sel)
}

func (f *ParameterForm) buildCrop(width, height int) {
	if width < transform.MinCropSize || height < transform.MinCropSize {
		f.tooSmall = true
		msg := widget.NewLabel(tooSmallMessage)
		msg.Importance = widget.DangerImportance
		f.box.Add(msg)
		return
	}

	f.values = transform.CropDefaults(width, height)
	w, h := float64(width), float64(height)

	x1 := f.sliderControl(cropParam(transform.ParamX1, "X Start"), 0, w-2)
	x2 := f.sliderControl(cropParam(transform.ParamX2, "X End"), 1, w)
	y1 := f.sliderControl(cropParam(transform.ParamY1, "Y Start"), 0, h-2)
	y2 := f.sliderControl(cropParam(transform.ParamY2, "Y End"), 1, h)

	// End sliders start one past the matching start slider
	f.linkEnd(transform.ParamX1, transform.ParamX2)
	f.linkEnd(transform.ParamY1, transform.ParamY2)

	options := widget.NewAccordion(widget.NewAccordionItem("Crop Options",
		container.NewVBox(x1, x2, y1, y2)))
	options.Open(0)
	f.box.Add(options)
}

func (f *ParameterForm) linkEnd(startName, endName string) {
	start, end := f.sliders[startName], f.sliders[endName]
	startChanged := start.OnChanged
	start.OnChanged = func(v float64) {
		f.values[startName] = v
		end.Min = v + 1
		if end.Value < end.Min {
			// SetValue fires the end slider's own OnChanged which records it
			end.SetValue(end.Min)
		} else {
			end.Refresh()
		}
		startChanged(v)
	}
}

func (f *ParameterForm) changed() {
	if f.onChanged != nil {
		f.onChanged()
	}
}

func cropParam(name, description string) transform.ParameterInfo {
	return transform.ParameterInfo{Name: name, Type: "int", Step: 1, Description: description}
}

func formatParam(p transform.ParameterInfo, v float64) string {
	if p.Type == "int" {
		return fmt.Sprintf("%s: %d", p.Description, int(v))
	}
	return fmt.Sprintf("%s: %.2f", p.Description, v)
}
