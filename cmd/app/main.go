// Image Transformation Tool
// Upload or capture an image, apply a transformation, download the result.

package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"image-transform-studio/internal/config"
	"image-transform-studio/internal/gui"
)

const (
	AppName    = "Image Transformation Tool"
	AppID      = "com.imagetransform.studio"
	AppVersion = "1.0.0"
)

func main() {
	// Parse command line flags
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flag.String("config", "", "Path to an optional YAML settings file")
	imagePath := flag.String("image", "", "PNG or JPEG image to open at startup")
	flag.Parse()

	// Initialize logger
	logger := initLogger(*debugMode)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode,
	}).Info("Starting " + AppName)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Error("Invalid configuration")
		os.Exit(1)
	}
	logger.WithFields(logrus.Fields{
		"config_path":  *configPath,
		"sample_mode":  cfg.Samples.Mode,
		"max_upload":   cfg.Upload.MaxBytes,
		"camera_index": cfg.Camera.DeviceID,
	}).Debug("Configuration loaded")

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.FileImageIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	mainApp := gui.NewApplication(myApp, cfg, logger)
	if *imagePath != "" {
		if err := mainApp.OpenFile(*imagePath); err != nil {
			logger.WithError(err).WithField("filepath", *imagePath).Error("Failed to open startup image")
		}
	}
	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
	os.Exit(0)
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
