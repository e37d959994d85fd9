// Control panel: image source, transform selection, parameters and download
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"image-transform-studio/internal/transform"
)

const (
	sourceUpload = "Upload Image"
	sourceCamera = "Use Camera"
)

// ControlPanel builds the left column of the window
type ControlPanel struct {
	logger logrus.FieldLogger
	sample transform.SampleMode

	vbox            *fyne.Container
	sourceRadio     *widget.RadioGroup
	sourceButton    *widget.Button
	statusLabel     *widget.Label
	transformSelect *widget.Select
	paramHolder     *fyne.Container
	messageLabel    *widget.Label
	downloadButton  *widget.Button

	form          *ParameterForm
	kind          transform.Kind
	width, height int

	onOpen     func()
	onCapture  func()
	onChanged  func()
	onDownload func()
}

func NewControlPanel(sample transform.SampleMode, logger logrus.FieldLogger) *ControlPanel {
	cp := &ControlPanel{
		logger: logger,
		sample: sample,
		kind:   transform.KindNone,
	}
	cp.initializeUI()
	return cp
}

func (cp *ControlPanel) initializeUI() {
	cp.sourceButton = widget.NewButtonWithIcon("Browse Files...", theme.FolderOpenIcon(), func() {
		if cp.sourceRadio.Selected == sourceCamera {
			cp.call(cp.onCapture)
		} else {
			cp.call(cp.onOpen)
		}
	})
	cp.sourceButton.Importance = widget.HighImportance

	cp.sourceRadio = widget.NewRadioGroup([]string{sourceUpload, sourceCamera}, nil)
	cp.sourceRadio.SetSelected(sourceUpload)
	cp.sourceRadio.Required = true
	cp.sourceRadio.OnChanged = cp.onSourceChanged

	cp.statusLabel = widget.NewLabel("")
	cp.statusLabel.Hide()

	cp.transformSelect = widget.NewSelect(transform.Labels(), nil)
	cp.transformSelect.SetSelected(transform.Labels()[0])
	cp.transformSelect.OnChanged = cp.onTransformSelected
	cp.transformSelect.Disable()

	cp.paramHolder = container.NewVBox()

	cp.messageLabel = widget.NewLabel("")
	cp.messageLabel.Importance = widget.DangerImportance
	cp.messageLabel.Wrapping = fyne.TextWrapWord
	cp.messageLabel.Hide()

	cp.downloadButton = widget.NewButtonWithIcon("📥 Download Transformed Image", theme.DownloadIcon(), func() {
		cp.call(cp.onDownload)
	})
	cp.downloadButton.Disable()

	sourceCard := widget.NewCard("📸 Image Source", "",
		container.NewVBox(
			widget.NewLabel("Choose image source:"),
			cp.sourceRadio,
			cp.sourceButton,
			cp.statusLabel,
		))

	transformCard := widget.NewCard("🛠️ Transformations", "",
		container.NewVBox(
			widget.NewLabel("What would you like to do?"),
			cp.transformSelect,
			widget.NewSeparator(),
			cp.paramHolder,
			cp.messageLabel,
		))

	cp.vbox = container.NewVBox(
		sourceCard,
		widget.NewSeparator(),
		transformCard,
		widget.NewSeparator(),
		cp.downloadButton,
	)
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.vbox
}

// SetCallbacks wires the panel to the application
func (cp *ControlPanel) SetCallbacks(onOpen, onCapture, onChanged, onDownload func()) {
	cp.onOpen = onOpen
	cp.onCapture = onCapture
	cp.onChanged = onChanged
	cp.onDownload = onDownload
}

func (cp *ControlPanel) onSourceChanged(source string) {
	if source == sourceCamera {
		cp.sourceButton.SetText("📷 Take a picture")
		cp.sourceButton.SetIcon(theme.MediaPhotoIcon())
	} else {
		cp.sourceButton.SetText("Browse Files...")
		cp.sourceButton.SetIcon(theme.FolderOpenIcon())
	}
	cp.logger.WithField("source", source).Debug("Image source changed")
}

func (cp *ControlPanel) onTransformSelected(label string) {
	kind, ok := transform.KindFromLabel(label)
	if !ok {
		return
	}
	cp.kind = kind
	cp.logger.WithField("transform", kind.String()).Info("Transform selected")
	cp.rebuildForm()
	cp.call(cp.onChanged)
}

// SetImageLoaded enables the controls and records the image size used by
// the crop sliders
func (cp *ControlPanel) SetImageLoaded(width, height int) {
	cp.width, cp.height = width, height
	cp.statusLabel.SetText("Current image loaded ✅")
	cp.statusLabel.Show()
	cp.transformSelect.Enable()
	cp.rebuildForm()
}

// SetImageCleared disables everything that needs an image
func (cp *ControlPanel) SetImageCleared() {
	cp.width, cp.height = 0, 0
	cp.statusLabel.Hide()
	cp.transformSelect.Disable()
	cp.paramHolder.RemoveAll()
	cp.form = nil
	cp.ClearMessage()
	cp.SetDownloadEnabled(false)
}

func (cp *ControlPanel) rebuildForm() {
	cp.ClearMessage()
	cp.paramHolder.RemoveAll()
	cp.form = NewParameterForm(cp.kind, cp.width, cp.height, cp.sample, func() {
		cp.call(cp.onChanged)
	})
	cp.paramHolder.Add(cp.form.Container())
	cp.paramHolder.Refresh()
}

// CurrentRequest returns the request described by the controls
func (cp *ControlPanel) CurrentRequest() (transform.Request, error) {
	if cp.form == nil {
		return transform.None(), nil
	}
	return cp.form.Request()
}

// Form exposes the active parameter form
func (cp *ControlPanel) Form() *ParameterForm {
	return cp.form
}

// SelectTransform selects kind as if the user picked it
func (cp *ControlPanel) SelectTransform(kind transform.Kind) {
	if d, ok := transform.Lookup(kind); ok {
		cp.transformSelect.SetSelected(d.Label)
	}
}

func (cp *ControlPanel) ShowMessage(msg string) {
	cp.messageLabel.SetText(msg)
	cp.messageLabel.Show()
}

func (cp *ControlPanel) ClearMessage() {
	cp.messageLabel.SetText("")
	cp.messageLabel.Hide()
}

// Message returns the visible error text, empty when hidden
func (cp *ControlPanel) Message() string {
	if !cp.messageLabel.Visible() {
		return ""
	}
	return cp.messageLabel.Text
}

func (cp *ControlPanel) SetDownloadEnabled(enabled bool) {
	if enabled {
		cp.downloadButton.Enable()
	} else {
		cp.downloadButton.Disable()
	}
}

func (cp *ControlPanel) DownloadEnabled() bool {
	return !cp.downloadButton.Disabled()
}

// SetBusy blocks the source button while a capture runs
func (cp *ControlPanel) SetBusy(busy bool) {
	if busy {
		cp.sourceButton.Disable()
	} else {
		cp.sourceButton.Enable()
	}
}

func (cp *ControlPanel) call(fn func()) {
	if fn != nil {
		fn()
	}
}
