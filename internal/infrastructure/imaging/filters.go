package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// Visual adjustment filters backing the remote process-image contract.
// Each filter returns a new image; inputs are never mutated.

// AdjustExposure multiplies every channel by (1 + value).
// value 0 is a no-op, negative values darken.
func AdjustExposure(img image.Image, value float64) image.Image {
	factor := 1 + value
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.R = clampChannel(float64(c.R) * factor)
		c.G = clampChannel(float64(c.G) * factor)
		c.B = clampChannel(float64(c.B) * factor)
		return c
	})
}

// AdjustHighlights scales pixels whose brightness exceeds the midpoint.
func AdjustHighlights(img image.Image, value float64) image.Image {
	return adjustRange(img, value, func(v uint8) bool { return v > 127 })
}

// AdjustShadows scales pixels at or below the midpoint.
func AdjustShadows(img image.Image, value float64) image.Image {
	return adjustRange(img, value, func(v uint8) bool { return v <= 127 })
}

func adjustRange(img image.Image, value float64, in func(uint8) bool) image.Image {
	factor := 1 + value
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		v := c.R
		if c.G > v {
			v = c.G
		}
		if c.B > v {
			v = c.B
		}
		if !in(v) {
			return c
		}
		c.R = clampChannel(float64(c.R) * factor)
		c.G = clampChannel(float64(c.G) * factor)
		c.B = clampChannel(float64(c.B) * factor)
		return c
	})
}

// Sharpen applies an unsharp mask scaled by value; value <= 0 is a no-op.
func Sharpen(img image.Image, value float64) image.Image {
	if value <= 0 {
		return imaging.Clone(img)
	}
	return imaging.Sharpen(img, value)
}

// Rotate rotates counter-clockwise by angle degrees, growing the canvas
// to fit and filling the corners with transparency.
func Rotate(img image.Image, angle float64) image.Image {
	return imaging.Rotate(img, angle, color.Transparent)
}

// Flip mirrors the image horizontally and/or vertically.
func Flip(img image.Image, flipX, flipY bool) image.Image {
	out := imaging.Clone(img)
	if flipX {
		out = imaging.FlipH(out)
	}
	if flipY {
		out = imaging.FlipV(out)
	}
	return out
}

// FlattenWhite composites the image over an opaque white background.
func FlattenWhite(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// RemoveBackground keys out the background by sampling the four corner
// pixels and clearing every pixel within tolerance of any sample.
// A crude stand-in for a segmentation model, adequate for product shots
// on a flat backdrop.
func RemoveBackground(img image.Image, tolerance float64) image.Image {
	src := imaging.Clone(img)
	b := src.Bounds()

	samples := []color.NRGBA{
		src.NRGBAAt(b.Min.X, b.Min.Y),
		src.NRGBAAt(b.Max.X-1, b.Min.Y),
		src.NRGBAAt(b.Min.X, b.Max.Y-1),
		src.NRGBAAt(b.Max.X-1, b.Max.Y-1),
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := src.NRGBAAt(x, y)
			for _, s := range samples {
				if colorDistance(px, s) <= tolerance {
					px.A = 0
					src.SetNRGBA(x, y, px)
					break
				}
			}
		}
	}
	return src
}

// Scale resamples to exactly width x height with Catmull-Rom interpolation.
func Scale(img image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target %dx%d", ErrRasterize, width, height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst, nil
}

// Crop extracts the rectangle anchored at (x, y).
func Crop(img image.Image, x, y, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: crop %dx%d", ErrRasterize, width, height)
	}
	return imaging.Crop(img, image.Rect(x, y, x+width, y+height)), nil
}

// EncodePNG renders any processed image back to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses encoded bytes for the filter pipeline.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func colorDistance(a, b color.NRGBA) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	// Euclidean distance in RGB is enough for flat backdrops.
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
