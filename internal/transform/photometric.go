// Photometric transforms: brightness, contrast and grayscale
package transform

import (
	"fmt"

	"gocv.io/x/gocv"
)

// brightness adds delta to every channel. ConvertTo saturates to [0,255]
// rather than wrapping.
func brightness(src gocv.Mat, delta float64) (gocv.Mat, error) {
	dst := gocv.NewMat()
	if err := src.ConvertToWithParams(&dst, gocv.MatTypeCV8UC3, 1.0, float32(delta)); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("brightness %+g: %w", delta, err)
	}
	return dst, nil
}

// contrast scales every channel by factor, saturating to [0,255]
func contrast(src gocv.Mat, factor float64) (gocv.Mat, error) {
	dst := gocv.NewMat()
	if err := src.ConvertToWithParams(&dst, gocv.MatTypeCV8UC3, float32(factor), 0); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("contrast %gx: %w", factor, err)
	}
	return dst, nil
}

func grayscale(src gocv.Mat) (gocv.Mat, error) {
	gray := gocv.NewMat()
	defer gray.Close()

	if err := gocv.CvtColor(src, &gray, gocv.ColorRGBToGray); err != nil {
		return gocv.NewMat(), fmt.Errorf("grayscale: %w", err)
	}

	// Replicate luminance so the result stays a 3-channel image
	dst := gocv.NewMat()
	if err := gocv.CvtColor(gray, &dst, gocv.ColorGrayToRGB); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("grayscale: %w", err)
	}
	return dst, nil
}
