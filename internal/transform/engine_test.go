package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// patternMat builds a w x h RGB image whose pixels are all distinct enough
// to detect any permutation.
func patternMat(t *testing.T, w, h int) gocv.Mat {
	t.Helper()
	data := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			data[i] = byte(x * 17 % 256)
			data[i+1] = byte(y * 29 % 256)
			data[i+2] = byte((x*7 + y*13) % 256)
		}
	}
	mat, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC3, data)
	require.NoError(t, err)
	t.Cleanup(func() { mat.Close() })
	return mat
}

// solidMat builds a w x h image with every channel set to v
func solidMat(t *testing.T, w, h int, v byte) gocv.Mat {
	t.Helper()
	data := make([]byte, w*h*3)
	for i := range data {
		data[i] = v
	}
	mat, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC3, data)
	require.NoError(t, err)
	t.Cleanup(func() { mat.Close() })
	return mat
}

func apply(t *testing.T, src gocv.Mat, req Request) gocv.Mat {
	t.Helper()
	out, err := Apply(src, req)
	require.NoError(t, err)
	t.Cleanup(func() { out.Close() })
	return out
}

func assertSameImage(t *testing.T, want, got gocv.Mat) {
	t.Helper()
	require.Equal(t, want.Cols(), got.Cols(), "width")
	require.Equal(t, want.Rows(), got.Rows(), "height")
	require.Equal(t, want.Type(), got.Type(), "type")
	assert.Equal(t, want.ToBytes(), got.ToBytes(), "pixels")
}

func TestApplyNoneIsIdentity(t *testing.T) {
	src := patternMat(t, 13, 7)
	out := apply(t, src, None())
	assertSameImage(t, src, out)
}

func TestApplyDoesNotModifySource(t *testing.T) {
	src := patternMat(t, 12, 9)
	before := src.ToBytes()

	for _, req := range []Request{
		Rotate(30), Scale(2), Crop(1, 5, 2, 8), AffineSample(SampleProportional),
		PerspectiveSample(SampleProportional), Brightness(50), Contrast(2),
		Flip(FlipVertical), Grayscale(),
	} {
		apply(t, src, req)
	}
	assert.Equal(t, before, src.ToBytes())
}

func TestFlipInvolution(t *testing.T) {
	src := patternMat(t, 11, 6)
	for _, axis := range []FlipAxis{FlipHorizontal, FlipVertical} {
		t.Run(axis.String(), func(t *testing.T) {
			once := apply(t, src, Flip(axis))
			assert.NotEqual(t, src.ToBytes(), once.ToBytes())
			twice := apply(t, once, Flip(axis))
			assertSameImage(t, src, twice)
		})
	}
}

func TestFlipHorizontalMirrorsColumns(t *testing.T) {
	src := patternMat(t, 5, 3)
	out := apply(t, src, Flip(FlipHorizontal))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			assert.Equal(t, src.GetVecbAt(y, x), out.GetVecbAt(y, 4-x))
		}
	}
}

func TestFlipVerticalMirrorsRows(t *testing.T) {
	src := patternMat(t, 5, 3)
	out := apply(t, src, Flip(FlipVertical))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			assert.Equal(t, src.GetVecbAt(y, x), out.GetVecbAt(2-y, x))
		}
	}
}

func TestBrightnessSaturates(t *testing.T) {
	t.Run("upper", func(t *testing.T) {
		for _, v := range []byte{156, 200, 255} {
			out := apply(t, solidMat(t, 4, 4, v), Brightness(100))
			for _, b := range out.ToBytes() {
				require.Equal(t, byte(255), b, "input %d", v)
			}
		}
	})
	t.Run("lower", func(t *testing.T) {
		for _, v := range []byte{0, 50, 99} {
			out := apply(t, solidMat(t, 4, 4, v), Brightness(-100))
			for _, b := range out.ToBytes() {
				require.Equal(t, byte(0), b, "input %d", v)
			}
		}
	})
	t.Run("in range", func(t *testing.T) {
		out := apply(t, solidMat(t, 2, 2, 100), Brightness(-30))
		assert.Equal(t, byte(70), out.ToBytes()[0])
	})
}

func TestContrastClamps(t *testing.T) {
	out := apply(t, solidMat(t, 3, 3, 100), Contrast(3.0))
	for _, b := range out.ToBytes() {
		require.Equal(t, byte(255), b)
	}

	out = apply(t, solidMat(t, 3, 3, 100), Contrast(2.0))
	assert.Equal(t, byte(200), out.ToBytes()[0])
}

func TestCropSize(t *testing.T) {
	src := patternMat(t, 10, 10)
	out := apply(t, src, Crop(2, 8, 3, 9))
	assert.Equal(t, 6, out.Cols())
	assert.Equal(t, 6, out.Rows())
	assert.Equal(t, src.GetVecbAt(3, 2), out.GetVecbAt(0, 0))
	assert.Equal(t, src.GetVecbAt(8, 7), out.GetVecbAt(5, 5))
}

func TestCropErrors(t *testing.T) {
	src := patternMat(t, 10, 10)

	cases := []struct {
		name string
		req  Request
	}{
		{"empty width", Crop(5, 5, 0, 10)},
		{"inverted height", Crop(0, 10, 6, 2)},
		{"negative start", Crop(-1, 4, 0, 4)},
		{"past right edge", Crop(0, 11, 0, 10)},
		{"past bottom edge", Crop(0, 10, 0, 11)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Apply(src, tc.req)
			require.ErrorIs(t, err, ErrInvalidBounds)
			assert.True(t, out.Empty())
		})
	}

	t.Run("too small", func(t *testing.T) {
		_, err := Apply(patternMat(t, 1, 5), Crop(0, 1, 0, 5))
		require.ErrorIs(t, err, ErrTooSmall)
	})
}

func TestRotateZeroIsIdentity(t *testing.T) {
	src := patternMat(t, 9, 14)
	out := apply(t, src, Rotate(0))
	assertSameImage(t, src, out)
}

func TestRotateKeepsCanvas(t *testing.T) {
	src := patternMat(t, 20, 10)
	out := apply(t, src, Rotate(45))
	assert.Equal(t, 20, out.Cols())
	assert.Equal(t, 10, out.Rows())
	// corners fall outside the rotated content
	assert.Equal(t, gocv.Vecb{0, 0, 0}, out.GetVecbAt(0, 0))
}

func TestRotate180MatchesDoubleFlip(t *testing.T) {
	// Odd sizes put the integer center exactly on a pixel
	src := patternMat(t, 9, 7)
	rotated := apply(t, src, Rotate(180))
	flipped := apply(t, apply(t, src, Flip(FlipHorizontal)), Flip(FlipVertical))
	assertSameImage(t, flipped, rotated)
}

func TestScale(t *testing.T) {
	src := patternMat(t, 10, 7)

	t.Run("identity", func(t *testing.T) {
		assertSameImage(t, src, apply(t, src, Scale(1.0)))
	})
	t.Run("rounded size", func(t *testing.T) {
		out := apply(t, src, Scale(1.5))
		assert.Equal(t, 15, out.Cols())
		assert.Equal(t, 11, out.Rows()) // 10.5 rounds half away from zero
	})
	t.Run("minimum one pixel", func(t *testing.T) {
		out := apply(t, patternMat(t, 3, 3), Scale(0.1))
		assert.Equal(t, 1, out.Cols())
		assert.Equal(t, 1, out.Rows())
	})
}

func TestGrayscaleIdempotent(t *testing.T) {
	src := patternMat(t, 8, 8)
	once := apply(t, src, Grayscale())
	twice := apply(t, once, Grayscale())
	assertSameImage(t, once, twice)

	px := once.GetVecbAt(3, 5)
	assert.Equal(t, px[0], px[1])
	assert.Equal(t, px[1], px[2])
}

func TestGrayscaleWeights(t *testing.T) {
	// pure red: 0.299 * 255 rounds to 76
	red, err := gocv.NewMatFromBytes(1, 1, gocv.MatTypeCV8UC3, []byte{255, 0, 0})
	require.NoError(t, err)
	defer red.Close()

	out := apply(t, red, Grayscale())
	assert.Equal(t, []byte{76, 76, 76}, out.ToBytes())
}

func TestSampleWarpsKeepCanvas(t *testing.T) {
	for _, mode := range []SampleMode{SampleProportional, SampleLiteral} {
		for _, req := range []Request{AffineSample(mode), PerspectiveSample(mode)} {
			t.Run(req.Kind.String()+"/"+mode.String(), func(t *testing.T) {
				src := patternMat(t, 320, 240)
				out := apply(t, src, req)
				assert.Equal(t, 320, out.Cols())
				assert.Equal(t, 240, out.Rows())
				assert.Equal(t, gocv.MatTypeCV8UC3, out.Type())
			})
		}
	}
}

func TestSamplePointsProportional(t *testing.T) {
	// On the 250x250 reference canvas proportional points equal the literal ones
	litSrc, litDst := AffinePoints(250, 250, SampleLiteral)
	propSrc, propDst := AffinePoints(250, 250, SampleProportional)
	for i := range litSrc {
		assert.InDelta(t, litSrc[i].X, propSrc[i].X, 1e-3)
		assert.InDelta(t, litSrc[i].Y, propSrc[i].Y, 1e-3)
		assert.InDelta(t, litDst[i].X, propDst[i].X, 1e-3)
		assert.InDelta(t, litDst[i].Y, propDst[i].Y, 1e-3)
	}

	_, litQuad := PerspectivePoints(500, 500, SampleLiteral)
	_, propQuad := PerspectivePoints(500, 500, SampleProportional)
	for i := range litQuad {
		assert.InDelta(t, litQuad[i].X, propQuad[i].X, 1e-3)
		assert.InDelta(t, litQuad[i].Y, propQuad[i].Y, 1e-3)
	}

	// and scale with the image
	_, small := PerspectivePoints(50, 40, SampleProportional)
	assert.InDelta(t, 45, small[3].X, 1e-3)
	assert.InDelta(t, 36, small[3].Y, 1e-3)
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	cases := []Request{
		Rotate(180.5),
		Rotate(-181),
		Scale(0.05),
		Scale(3.1),
		Brightness(101),
		Brightness(-100.5),
		Contrast(0),
		Contrast(3.5),
		Flip(FlipAxis(7)),
		AffineSample(SampleMode(3)),
	}
	for _, req := range cases {
		t.Run(req.Kind.String(), func(t *testing.T) {
			err := Validate(req, 10, 10)
			require.ErrorIs(t, err, ErrOutOfRange)
		})
	}

	assert.NoError(t, Validate(Rotate(-180), 10, 10))
	assert.NoError(t, Validate(Scale(3.0), 10, 10))
	assert.NoError(t, Validate(Brightness(100), 10, 10))
}

func TestApplyRejectsBadInput(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()
	_, err := Apply(empty, None())
	require.ErrorIs(t, err, ErrInvalidImage)

	gray := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8U)
	defer gray.Close()
	_, err = Apply(gray, None())
	require.ErrorIs(t, err, ErrInvalidImage)

	_, err = Apply(patternMat(t, 4, 4), Request{Kind: Kind(99)})
	require.ErrorIs(t, err, ErrUnknownTransform)
}
