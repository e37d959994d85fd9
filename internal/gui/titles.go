package gui

import (
	"fmt"

	"image-transform-studio/internal/transform"
)

// resultTitle captions the transformed view
func resultTitle(req transform.Request) string {
	switch req.Kind {
	case transform.KindRotate:
		return fmt.Sprintf("🌀 Rotated %g°", req.Angle)
	case transform.KindScale:
		return fmt.Sprintf("🔍 Scaled %.2fx", req.Factor)
	case transform.KindCrop:
		return "✂️ Cropped Image"
	case transform.KindAffineSample:
		return "🎯 Affine Transform Applied"
	case transform.KindPerspectiveSample:
		return "🧊 Perspective Transform Applied"
	case transform.KindBrightness:
		return fmt.Sprintf("💡 Brightness adjusted by %g", req.Delta)
	case transform.KindContrast:
		return fmt.Sprintf("⚡ Contrast adjusted by %.2f", req.Factor)
	case transform.KindFlip:
		if req.Axis == transform.FlipVertical {
			return "🔄 Flipped ⬇️ Vertical"
		}
		return "🔄 Flipped ➡️ Horizontal"
	case transform.KindGrayscale:
		return "Grayscale Image"
	}
	return ""
}
