package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustExposure_Brightens(t *testing.T) {
	src := solidImage(4, 4, color.RGBA{R: 100, G: 100, B: 100, A: 255})

	out := imaging.Clone(AdjustExposure(src, 0.5))
	px := out.NRGBAAt(1, 1)
	assert.Equal(t, uint8(150), px.R)
	assert.Equal(t, uint8(150), px.G)
	assert.Equal(t, uint8(150), px.B)
}

func TestAdjustExposure_ClampsAtWhite(t *testing.T) {
	src := solidImage(2, 2, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	out := imaging.Clone(AdjustExposure(src, 2))
	px := out.NRGBAAt(0, 0)
	assert.Equal(t, uint8(255), px.R)
}

func TestAdjustHighlights_LeavesShadowsAlone(t *testing.T) {
	src := solidImage(2, 2, color.RGBA{R: 50, G: 50, B: 50, A: 255})

	out := imaging.Clone(AdjustHighlights(src, 0.5))
	px := out.NRGBAAt(0, 0)
	assert.Equal(t, uint8(50), px.R)
}

func TestAdjustShadows_LeavesHighlightsAlone(t *testing.T) {
	src := solidImage(2, 2, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	out := imaging.Clone(AdjustShadows(src, 0.5))
	px := out.NRGBAAt(0, 0)
	assert.Equal(t, uint8(200), px.R)
}

func TestRotate_QuarterTurnSwapsDimensions(t *testing.T) {
	src := solidImage(10, 4, color.White)

	out := Rotate(src, 90)
	b := out.Bounds()
	assert.Equal(t, 4, b.Dx())
	assert.Equal(t, 10, b.Dy())
}

func TestFlip_Horizontal(t *testing.T) {
	src := solidImage(4, 1, color.Black)
	src.Set(0, 0, color.RGBA{R: 255, A: 255})

	out := imaging.Clone(Flip(src, true, false))
	assert.Equal(t, uint8(255), out.NRGBAAt(3, 0).R)
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).R)
}

func TestFlattenWhite_FillsTransparency(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4)) // fully transparent

	out := imaging.Clone(FlattenWhite(src))
	px := out.NRGBAAt(2, 2)
	assert.Equal(t, uint8(255), px.R)
	assert.Equal(t, uint8(255), px.G)
	assert.Equal(t, uint8(255), px.B)
	assert.Equal(t, uint8(255), px.A)
}

func TestRemoveBackground_KeysOutCornerColor(t *testing.T) {
	src := solidImage(9, 9, color.RGBA{R: 255, A: 255})
	src.Set(4, 4, color.RGBA{B: 255, A: 255})

	out := imaging.Clone(RemoveBackground(src, 30))
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).A, "background corner should be cleared")
	assert.Equal(t, uint8(255), out.NRGBAAt(4, 4).A, "subject pixel should stay opaque")
}

func TestScale_ExactDimensions(t *testing.T) {
	src := solidImage(10, 10, color.White)

	out, err := Scale(src, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Bounds().Dx())
	assert.Equal(t, 7, out.Bounds().Dy())

	_, err = Scale(src, 0, 7)
	assert.ErrorIs(t, err, ErrRasterize)
}

func TestCrop(t *testing.T) {
	src := solidImage(10, 10, color.White)

	out, err := Crop(src, 2, 2, 5, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Bounds().Dx())
	assert.Equal(t, 4, out.Bounds().Dy())

	_, err = Crop(src, 0, 0, 0, 4)
	assert.ErrorIs(t, err, ErrRasterize)
}

func TestEncodePNGDecodeRoundTrip(t *testing.T) {
	src := solidImage(6, 5, color.RGBA{G: 255, A: 255})

	data, err := EncodePNG(src)
	require.NoError(t, err)

	img, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, 5, img.Bounds().Dy())

	_, err = Decode([]byte("nope"))
	assert.ErrorIs(t, err, ErrDecode)
}
