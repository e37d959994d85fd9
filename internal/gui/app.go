// Main application window wiring the session to the controls
package gui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-transform-studio/internal/capture"
	"image-transform-studio/internal/config"
	"image-transform-studio/internal/core"
	"image-transform-studio/internal/imageio"
	"image-transform-studio/internal/transform"
)

const captureTimeout = 10 * time.Second

// Application represents the main window
type Application struct {
	app    fyne.App
	window fyne.Window
	logger logrus.FieldLogger
	cfg    config.Config

	// Core components
	session *core.Session
	decoder *imageio.Decoder
	camera  *capture.Camera

	// GUI components
	canvas      *ImageCanvas
	controls    *ControlPanel
	menuHandler *MenuHandler

	mainContent *container.Split
}

func NewApplication(app fyne.App, cfg config.Config, logger logrus.FieldLogger) *Application {
	window := app.NewWindow("🖼️ Image Transformation Tool")
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()

	a := &Application{
		app:    app,
		window: window,
		logger: logger,
		cfg:    cfg,
	}

	a.initializeCore()
	a.initializeGUI()
	a.setupLayout()
	a.setupCallbacks()

	return a
}

func (a *Application) initializeCore() {
	a.session = core.NewSession(a.cfg.Download.FileName, a.logger.WithField("component", "session"))
	a.decoder = imageio.NewDecoder(a.cfg.Upload.MaxBytes)
	a.camera = capture.NewCamera(a.cfg.Camera.DeviceID, a.cfg.Camera.WarmupFrames,
		a.logger.WithField("component", "camera"))
}

func (a *Application) initializeGUI() {
	a.canvas = NewImageCanvas()
	a.controls = NewControlPanel(a.cfg.SampleMode(), a.logger.WithField("component", "controls"))
	a.menuHandler = NewMenuHandler(a.window)
}

func (a *Application) setupLayout() {
	a.mainContent = container.NewHSplit(
		container.NewVScroll(a.controls.GetContainer()),
		container.NewPadded(a.canvas.GetContainer()),
	)
	a.mainContent.SetOffset(0.3)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(a.mainContent)
}

func (a *Application) setupCallbacks() {
	a.controls.SetCallbacks(a.openImage, a.captureImage, a.Recompute, a.saveArtifact)
	a.menuHandler.SetCallbacks(a.openImage, a.captureImage, a.saveArtifact, a.clearImage, a.exit)
	a.window.SetOnDropped(a.onDropped)
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(a.exit)

	a.window.ShowAndRun()
}

func (a *Application) exit() {
	a.cleanup()
	a.app.Quit()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.session.Close()
}

// LoadImage makes mat the session original. The caller keeps ownership of mat.
func (a *Application) LoadImage(mat gocv.Mat, source string) error {
	changed, err := a.session.Load(mat, source)
	if err != nil {
		return fmt.Errorf("failed to set image: %w", err)
	}
	if !changed {
		return nil
	}

	img, err := imageio.ToImage(mat)
	if err != nil {
		return err
	}
	info := a.session.Info()
	a.canvas.ShowOriginal(img)
	a.controls.SetImageLoaded(info.Width, info.Height)
	a.Recompute()
	return nil
}

// Recompute applies the current controls to the original and refreshes the
// transformed view
func (a *Application) Recompute() {
	if !a.session.HasImage() {
		return
	}
	a.controls.ClearMessage()

	req, err := a.controls.CurrentRequest()
	if err == nil && req.IsIdentity() {
		a.session.Reset()
		a.canvas.HideTransformed()
		a.controls.SetDownloadEnabled(false)
		return
	}

	var result gocv.Mat
	if err == nil {
		result, err = a.session.Apply(req)
	}
	if err != nil {
		a.handleTransformError(err)
		return
	}
	defer result.Close()

	img, err := imageio.ToImage(result)
	if err != nil {
		a.showError("Display Error", err)
		return
	}
	a.canvas.ShowTransformed(resultTitle(req), img)
	a.controls.SetDownloadEnabled(true)
}

func (a *Application) handleTransformError(err error) {
	switch {
	case errors.Is(err, transform.ErrTooSmall):
		// the form already shows the blocking message in place of crop controls
		a.logger.WithField("error", err).Warn("Image too small to crop")
		a.session.Reset()
		a.canvas.HideTransformed()
		a.controls.SetDownloadEnabled(false)
	case errors.Is(err, transform.ErrInvalidBounds):
		// prior display is retained
		a.logger.WithField("error", err).Warn("Invalid crop bounds")
		a.controls.ShowMessage(err.Error())
	default:
		a.showError("Processing Error", err)
	}
}

// OpenFile loads the PNG or JPEG at path as the new original
func (a *Application) OpenFile(path string) error {
	a.logger.WithField("filepath", path).Info("Loading image file")

	mat, err := a.decoder.LoadFile(path)
	if err != nil {
		return err
	}
	defer mat.Close()

	return a.LoadImage(mat, path)
}

// onDropped opens the first supported file dropped on the window
func (a *Application) onDropped(_ fyne.Position, uris []fyne.URI) {
	for _, uri := range uris {
		if !imageio.IsSupportedFile(uri.Path()) {
			continue
		}
		if err := a.OpenFile(uri.Path()); err != nil {
			a.showError("Failed to Load Image", err)
		}
		return
	}
	a.showError("Unsupported File", fmt.Errorf("%w: drop a PNG or JPEG image", imageio.ErrUnsupportedFormat))
}

func (a *Application) openImage() {
	a.logger.Info("Opening file dialog for image selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		a.logger.WithField("filepath", path).Info("Loading selected image")

		mat, err := a.decoder.DecodeReader(reader)
		if err != nil {
			a.showError("Failed to Load Image", err)
			return
		}
		defer mat.Close()

		if err := a.LoadImage(mat, path); err != nil {
			a.showError("Failed to Load Image", err)
		}
	}, a.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(imageio.SupportedExtensions()))
	fileDialog.Show()
}

func (a *Application) captureImage() {
	a.logger.Info("Capturing image from camera")
	a.controls.SetBusy(true)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), captureTimeout)
		defer cancel()

		mat, err := a.camera.Capture(ctx)
		fyne.Do(func() {
			defer mat.Close()
			a.controls.SetBusy(false)

			if err != nil {
				a.showError("Camera Error", err)
				return
			}
			if err := a.LoadImage(mat, "camera"); err != nil {
				a.showError("Failed to Load Image", err)
			}
		})
	}()
}

func (a *Application) saveArtifact() {
	artifact, ok, err := a.session.Artifact()
	if err != nil {
		a.showError("Failed to Encode Image", err)
		return
	}
	if !ok {
		a.showError("Nothing to Save", fmt.Errorf("select a transformation first"))
		return
	}

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if _, err := writer.Write(artifact.Data); err != nil {
			a.showError("Failed to Save Image", err)
			return
		}
		a.logger.WithFields(logrus.Fields{
			"filepath": writer.URI().Path(),
			"bytes":    len(artifact.Data),
		}).Info("Transformed image saved")
	}, a.window)

	fileDialog.SetFileName(artifact.Name)
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	fileDialog.Show()
}

func (a *Application) clearImage() {
	a.session.Clear()
	a.canvas.Reset()
	a.controls.SetImageCleared()
	a.logger.Info("Image closed")
}

func (a *Application) showError(title string, err error) {
	a.logger.WithField("error", err).Error(title)
	dialog.ShowError(err, a.window)
}
