package imaging

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterize_ExactTargetDimensions(t *testing.T) {
	src := encodePNG(t, solidImage(10, 8, color.White))

	out, err := Rasterize(src, 5, 4)
	require.NoError(t, err)

	w, h, format := decodeDims(t, out)
	assert.Equal(t, 5, w)
	assert.Equal(t, 4, h)
	assert.Equal(t, "png", format)
}

func TestRasterize_PreservesFormatFamily(t *testing.T) {
	cases := []struct {
		name   string
		data   []byte
		format string
	}{
		{"jpeg", encodeJPEG(t, solidImage(20, 20, color.White), 90), "jpeg"},
		{"png", encodePNG(t, solidImage(20, 20, color.White)), "png"},
		{"gif", encodeGIF(t, solidImage(20, 20, color.White)), "gif"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Rasterize(tc.data, 11, 7)
			require.NoError(t, err)

			w, h, format := decodeDims(t, out)
			assert.Equal(t, 11, w)
			assert.Equal(t, 7, h)
			assert.Equal(t, tc.format, format)
		})
	}
}

func TestRasterize_Upscale(t *testing.T) {
	src := encodePNG(t, solidImage(4, 4, color.Black))

	out, err := Rasterize(src, 16, 16)
	require.NoError(t, err)

	w, h, _ := decodeDims(t, out)
	assert.Equal(t, 16, w)
	assert.Equal(t, 16, h)
}

func TestRasterize_RejectsNonPositiveTargets(t *testing.T) {
	src := encodePNG(t, solidImage(10, 10, color.White))

	for _, tc := range [][2]int{{0, 10}, {10, 0}, {-5, 10}, {10, -5}, {0, 0}} {
		_, err := Rasterize(src, tc[0], tc[1])
		assert.ErrorIs(t, err, ErrRasterize, "target %dx%d", tc[0], tc[1])
	}
}

func TestRasterize_RejectsUndecodableBytes(t *testing.T) {
	_, err := Rasterize([]byte("definitely not an image"), 10, 10)
	assert.ErrorIs(t, err, ErrRasterize)
}

func TestRasterize_DimensionStableUnderRepeat(t *testing.T) {
	src := encodeJPEG(t, noiseImage(30, 20), 90)

	once, err := Rasterize(src, 17, 13)
	require.NoError(t, err)
	twice, err := Rasterize(once, 17, 13)
	require.NoError(t, err)

	w, h, _ := decodeDims(t, twice)
	assert.Equal(t, 17, w)
	assert.Equal(t, 13, h)
}
