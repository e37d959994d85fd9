// Geometric transforms: rotation, scaling, cropping, flips and sample warps
package transform

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

func rotate(src gocv.Mat, angle float64) (gocv.Mat, error) {
	w, h := src.Cols(), src.Rows()
	center := image.Pt(w/2, h/2)

	m := gocv.GetRotationMatrix2D(center, angle, 1.0)
	defer m.Close()

	dst := gocv.NewMat()
	if err := gocv.WarpAffine(src, &dst, m, image.Pt(w, h)); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("rotate %g°: %w", angle, err)
	}
	return dst, nil
}

// ScaledSize returns the output size of Scale(factor) for a w x h image
func ScaledSize(w, h int, factor float64) image.Point {
	return image.Pt(
		max(1, int(math.Round(float64(w)*factor))),
		max(1, int(math.Round(float64(h)*factor))),
	)
}

func scale(src gocv.Mat, factor float64) (gocv.Mat, error) {
	if factor == 1.0 {
		return src.Clone(), nil
	}

	size := ScaledSize(src.Cols(), src.Rows(), factor)
	dst := gocv.NewMat()
	if err := gocv.Resize(src, &dst, size, 0, 0, gocv.InterpolationLinear); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("scale %gx: %w", factor, err)
	}
	return dst, nil
}

func crop(src gocv.Mat, b Bounds) (gocv.Mat, error) {
	region := src.Region(b.Rect())
	defer region.Close()

	// Region shares memory with src; clone so the result owns its pixels
	return region.Clone(), nil
}

func flip(src gocv.Mat, axis FlipAxis) (gocv.Mat, error) {
	code := 1
	if axis == FlipVertical {
		code = 0
	}

	dst := gocv.NewMat()
	if err := gocv.Flip(src, &dst, code); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("flip %s: %w", axis, err)
	}
	return dst, nil
}

// AffinePoints returns the source and destination triangles used by the
// affine sample for a w x h image.
func AffinePoints(w, h int, mode SampleMode) (src, dst []gocv.Point2f) {
	if mode == SampleLiteral {
		return []gocv.Point2f{{X: 50, Y: 50}, {X: 200, Y: 50}, {X: 50, Y: 200}},
			[]gocv.Point2f{{X: 10, Y: 100}, {X: 200, Y: 50}, {X: 100, Y: 250}}
	}

	// Literal points divided by a 250x250 reference canvas
	fw, fh := float32(w), float32(h)
	return []gocv.Point2f{{X: 0.2 * fw, Y: 0.2 * fh}, {X: 0.8 * fw, Y: 0.2 * fh}, {X: 0.2 * fw, Y: 0.8 * fh}},
		[]gocv.Point2f{{X: 0.04 * fw, Y: 0.4 * fh}, {X: 0.8 * fw, Y: 0.2 * fh}, {X: 0.4 * fw, Y: 1.0 * fh}}
}

// PerspectivePoints returns the source and destination quadrilaterals used by
// the perspective sample for a w x h image.
func PerspectivePoints(w, h int, mode SampleMode) (src, dst []gocv.Point2f) {
	fw, fh := float32(w), float32(h)
	src = []gocv.Point2f{{X: 0, Y: 0}, {X: fw - 1, Y: 0}, {X: 0, Y: fh - 1}, {X: fw - 1, Y: fh - 1}}

	if mode == SampleLiteral {
		return src, []gocv.Point2f{{X: 0, Y: 0}, {X: fw - 100, Y: 50}, {X: 50, Y: fh - 100}, {X: fw - 50, Y: fh - 50}}
	}

	// Literal offsets divided by a 500x500 reference canvas
	return src, []gocv.Point2f{{X: 0, Y: 0}, {X: 0.8 * fw, Y: 0.1 * fh}, {X: 0.1 * fw, Y: 0.8 * fh}, {X: 0.9 * fw, Y: 0.9 * fh}}
}

func affineSample(src gocv.Mat, mode SampleMode) (gocv.Mat, error) {
	w, h := src.Cols(), src.Rows()
	from, to := AffinePoints(w, h, mode)

	fromVec := gocv.NewPoint2fVectorFromPoints(from)
	defer fromVec.Close()
	toVec := gocv.NewPoint2fVectorFromPoints(to)
	defer toVec.Close()

	m := gocv.GetAffineTransform2f(fromVec, toVec)
	defer m.Close()

	dst := gocv.NewMat()
	if err := gocv.WarpAffine(src, &dst, m, image.Pt(w, h)); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("affine sample (%s): %w", mode, err)
	}
	return dst, nil
}

func perspectiveSample(src gocv.Mat, mode SampleMode) (gocv.Mat, error) {
	w, h := src.Cols(), src.Rows()
	from, to := PerspectivePoints(w, h, mode)

	fromVec := gocv.NewPoint2fVectorFromPoints(from)
	defer fromVec.Close()
	toVec := gocv.NewPoint2fVectorFromPoints(to)
	defer toVec.Close()

	m := gocv.GetPerspectiveTransform2f(fromVec, toVec)
	defer m.Close()

	dst := gocv.NewMat()
	if err := gocv.WarpPerspective(src, &dst, m, image.Pt(w, h)); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("perspective sample (%s): %w", mode, err)
	}
	return dst, nil
}
