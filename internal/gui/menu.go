// Menu handler for application actions
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// MenuHandler builds the main menu
type MenuHandler struct {
	window fyne.Window

	onOpen     func()
	onCapture  func()
	onDownload func()
	onClear    func()
	onExit     func()
}

func NewMenuHandler(window fyne.Window) *MenuHandler {
	return &MenuHandler{window: window}
}

func (mh *MenuHandler) SetCallbacks(onOpen, onCapture, onDownload, onClear, onExit func()) {
	mh.onOpen = onOpen
	mh.onCapture = onCapture
	mh.onDownload = onDownload
	mh.onClear = onClear
	mh.onExit = onExit
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	// Marked as the quit item so fyne does not append its own
	exitItem := fyne.NewMenuItem("Exit", mh.call(&mh.onExit))
	exitItem.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mh.call(&mh.onOpen)),
		fyne.NewMenuItem("Capture From Camera", mh.call(&mh.onCapture)),
		fyne.NewMenuItem("Save Transformed Image...", mh.call(&mh.onDownload)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Close Image", mh.call(&mh.onClear)),
		exitItem,
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, helpMenu)
}

// call resolves the callback when the item is clicked so SetCallbacks may
// run after the menu is built
func (mh *MenuHandler) call(fn *func()) func() {
	return func() {
		if *fn != nil {
			(*fn)()
		}
	}
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("🖼️ Image Transformation Tool"),
		widget.NewSeparator(),
		widget.NewLabel("Upload or capture an image, apply transformations,"),
		widget.NewLabel("and download the result."),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne v2.6, and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(400, 240))
	aboutDialog.Show()
}
