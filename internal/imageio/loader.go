// Image decoding and encoding between upload bytes and RGB Mats
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
)

// DefaultMaxBytes is the largest upload accepted, 200MB
const DefaultMaxBytes int64 = 200 << 20

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooLarge          = errors.New("image exceeds size limit")
	ErrCorrupt           = errors.New("invalid or corrupted image data")
)

var supportedExtensions = []string{".jpg", ".jpeg", ".png"}

// Decoder turns PNG or JPEG bytes into 8-bit RGB Mats
type Decoder struct {
	maxBytes int64
}

// NewDecoder creates a decoder rejecting inputs larger than maxBytes. A
// non-positive limit selects DefaultMaxBytes.
func NewDecoder(maxBytes int64) *Decoder {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Decoder{maxBytes: maxBytes}
}

func (d *Decoder) MaxBytes() int64 {
	return d.maxBytes
}

// Decode sniffs and decodes data. Alpha is dropped and grayscale expanded so
// the result is always a 3-channel RGB image.
func (d *Decoder) Decode(data []byte) (gocv.Mat, error) {
	if int64(len(data)) > d.maxBytes {
		return gocv.NewMat(), fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), d.maxBytes)
	}
	if len(data) == 0 {
		return gocv.NewMat(), fmt.Errorf("%w: no data", ErrCorrupt)
	}

	contentType := http.DetectContentType(data)
	if contentType != "image/png" && contentType != "image/jpeg" {
		return gocv.NewMat(), fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}

	bgr, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err == nil {
		defer bgr.Close()
		if !bgr.Empty() {
			return BGRToRGB(bgr)
		}
	}

	// OpenCV may be built without a codec; retry with the Go decoders
	img, _, decErr := image.Decode(bytes.NewReader(data))
	if decErr != nil {
		if err == nil {
			err = decErr
		}
		return gocv.NewMat(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return FromImage(img)
}

// DecodeReader reads at most the size limit plus one byte from r and decodes it
func (d *Decoder) DecodeReader(r io.Reader) (gocv.Mat, error) {
	data, err := io.ReadAll(io.LimitReader(r, d.maxBytes+1))
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("read image: %w", err)
	}
	return d.Decode(data)
}

// LoadFile decodes the image at path
func (d *Decoder) LoadFile(path string) (gocv.Mat, error) {
	if !IsSupportedFile(path) {
		return gocv.NewMat(), fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("stat image: %w", err)
	}
	if info.Size() > d.maxBytes {
		return gocv.NewMat(), fmt.Errorf("%w: %s is %d bytes (max %d)", ErrTooLarge, path, info.Size(), d.maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("read image: %w", err)
	}
	return d.Decode(data)
}

// IsSupportedFile reports whether path has a PNG or JPEG extension
func IsSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedExtensions {
		if ext == format {
			return true
		}
	}
	return false
}

// SupportedExtensions lists the accepted file extensions
func SupportedExtensions() []string {
	return append([]string(nil), supportedExtensions...)
}

// EncodePNG encodes an RGB Mat as PNG bytes
func EncodePNG(rgb gocv.Mat) ([]byte, error) {
	if rgb.Empty() {
		return nil, fmt.Errorf("cannot encode empty image")
	}

	bgr, err := RGBToBGR(rgb)
	if err != nil {
		return nil, err
	}
	defer bgr.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, bgr)
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	defer buf.Close()

	// GetBytes aliases native memory released by Close
	return bytes.Clone(buf.GetBytes()), nil
}

// ToImage converts an RGB Mat to an image.Image for display
func ToImage(rgb gocv.Mat) (image.Image, error) {
	bgr, err := RGBToBGR(rgb)
	if err != nil {
		return nil, err
	}
	defer bgr.Close()

	img, err := bgr.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert mat to image: %w", err)
	}
	return img, nil
}

// FromImage builds an RGB Mat from any Go image
func FromImage(img image.Image) (gocv.Mat, error) {
	if img == nil || img.Bounds().Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: empty image", ErrCorrupt)
	}

	// ImageToMatRGB lays channels out in BGR order
	bgr, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("convert image to mat: %w", err)
	}
	defer bgr.Close()

	return BGRToRGB(bgr)
}

// BGRToRGB converts OpenCV's native channel order to RGB, expanding
// single-channel and dropping alpha as needed
func BGRToRGB(src gocv.Mat) (gocv.Mat, error) {
	code := gocv.ColorBGRToRGB
	switch src.Channels() {
	case 1:
		code = gocv.ColorGrayToRGB
	case 4:
		code = gocv.ColorBGRAToRGB
	}

	dst := gocv.NewMat()
	if err := gocv.CvtColor(src, &dst, code); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("convert to rgb: %w", err)
	}
	return dst, nil
}

func RGBToBGR(src gocv.Mat) (gocv.Mat, error) {
	dst := gocv.NewMat()
	if err := gocv.CvtColor(src, &dst, gocv.ColorRGBToBGR); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("convert to bgr: %w", err)
	}
	return dst, nil
}

// Equal reports whether a and b have the same size, type and pixels
func Equal(a, b gocv.Mat) bool {
	if a.Empty() || b.Empty() {
		return a.Empty() == b.Empty()
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() || a.Type() != b.Type() {
		return false
	}
	return bytes.Equal(a.ToBytes(), b.ToBytes())
}
