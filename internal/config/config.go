// Application settings loaded from an optional YAML file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"image-transform-studio/internal/imageio"
	"image-transform-studio/internal/transform"
)

type WindowCfg struct {
	Width  float32 `koanf:"width"`
	Height float32 `koanf:"height"`
}

type UploadCfg struct {
	MaxBytes int64 `koanf:"max_bytes"`
}

type CameraCfg struct {
	DeviceID     int `koanf:"device_id"`
	WarmupFrames int `koanf:"warmup_frames"`
}

type DownloadCfg struct {
	FileName string `koanf:"file_name"`
}

type SamplesCfg struct {
	Mode string `koanf:"mode"` // proportional|literal
}

type Config struct {
	Window   WindowCfg   `koanf:"window"`
	Upload   UploadCfg   `koanf:"upload"`
	Camera   CameraCfg   `koanf:"camera"`
	Download DownloadCfg `koanf:"download"`
	Samples  SamplesCfg  `koanf:"samples"`
}

// Default returns the settings used when no file is given
func Default() Config {
	return Config{
		Window:   WindowCfg{Width: 1400, Height: 900},
		Upload:   UploadCfg{MaxBytes: imageio.DefaultMaxBytes},
		Camera:   CameraCfg{DeviceID: 0, WarmupFrames: 5},
		Download: DownloadCfg{FileName: "transformed_image.png"},
		Samples:  SamplesCfg{Mode: transform.SampleProportional.String()},
	}
}

// Load merges the YAML file at path (if present) over the defaults. An empty
// path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(c *Config) {
	def := Default()
	if c.Window.Width == 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height == 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Upload.MaxBytes == 0 {
		c.Upload.MaxBytes = def.Upload.MaxBytes
	}
	if strings.TrimSpace(c.Download.FileName) == "" {
		c.Download.FileName = def.Download.FileName
	}
	c.Samples.Mode = strings.ToLower(strings.TrimSpace(c.Samples.Mode))
	if c.Samples.Mode == "" {
		c.Samples.Mode = def.Samples.Mode
	}
}

// Validate rejects settings the application cannot run with
func (c Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size %gx%g must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Upload.MaxBytes < 0 {
		return fmt.Errorf("upload.max_bytes %d must be positive", c.Upload.MaxBytes)
	}
	if c.Camera.DeviceID < 0 {
		return fmt.Errorf("camera.device_id %d must not be negative", c.Camera.DeviceID)
	}
	if c.Camera.WarmupFrames < 0 {
		return fmt.Errorf("camera.warmup_frames %d must not be negative", c.Camera.WarmupFrames)
	}
	if filepath.Ext(c.Download.FileName) != ".png" {
		return fmt.Errorf("download.file_name %q must end in .png", c.Download.FileName)
	}
	if _, err := transform.ParseSampleMode(c.Samples.Mode); err != nil {
		return fmt.Errorf("samples.mode: %w", err)
	}
	return nil
}

// SampleMode returns the parsed default control-point mode
func (c Config) SampleMode() transform.SampleMode {
	mode, _ := transform.ParseSampleMode(c.Samples.Mode)
	return mode
}
