// Before/after image views
package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const placeholderMessage = "Please upload or capture an image to begin."

// ImageCanvas shows the original and the transformed image
type ImageCanvas struct {
	vbox            *container.Split
	placeholder     *widget.Label
	originalView    *widget.Card
	transformedView *widget.Card
	originalImage   *canvas.Image
	previewImage    *canvas.Image
}

func NewImageCanvas() *ImageCanvas {
	ic := &ImageCanvas{}
	ic.initializeUI()
	return ic
}

func (ic *ImageCanvas) initializeUI() {
	ic.placeholder = widget.NewLabel("ℹ️ " + placeholderMessage)
	ic.placeholder.Wrapping = fyne.TextWrapWord

	ic.originalImage = newDisplayImage()
	ic.originalView = widget.NewCard("📌 Original Image", "",
		container.NewStack(ic.originalImage, container.NewCenter(ic.placeholder)))

	ic.previewImage = newDisplayImage()
	ic.transformedView = widget.NewCard("", "", ic.previewImage)
	ic.transformedView.Hide()

	ic.vbox = container.NewVSplit(ic.originalView, ic.transformedView)
	ic.vbox.SetOffset(0.5)
}

func newDisplayImage() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScalePixels
	img.SetMinSize(fyne.NewSize(200, 150))
	return img
}

func (ic *ImageCanvas) GetContainer() fyne.CanvasObject {
	return ic.vbox
}

// ShowOriginal displays a newly loaded original and clears any result
func (ic *ImageCanvas) ShowOriginal(img image.Image) {
	ic.placeholder.Hide()
	ic.originalImage.File = ""
	ic.originalImage.Resource = nil
	ic.originalImage.Image = img
	ic.originalImage.Refresh()
	ic.HideTransformed()
}

// ShowTransformed displays a result under title
func (ic *ImageCanvas) ShowTransformed(title string, img image.Image) {
	ic.previewImage.File = ""
	ic.previewImage.Resource = nil
	ic.previewImage.Image = img
	ic.previewImage.Refresh()

	ic.transformedView.SetTitle(title)
	ic.transformedView.Show()
	ic.vbox.Refresh()
}

func (ic *ImageCanvas) HideTransformed() {
	ic.transformedView.Hide()
	ic.vbox.Refresh()
}

// TransformedVisible reports whether a result is on screen
func (ic *ImageCanvas) TransformedVisible() bool {
	return ic.transformedView.Visible()
}

// TransformedTitle returns the caption of the result view
func (ic *ImageCanvas) TransformedTitle() string {
	return ic.transformedView.Title
}

// Reset returns to the empty state
func (ic *ImageCanvas) Reset() {
	ic.originalImage.Image = nil
	ic.originalImage.Refresh()
	ic.placeholder.Show()
	ic.HideTransformed()
}
