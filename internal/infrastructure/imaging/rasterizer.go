package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
)

// Rasterize decodes, resamples with Lanczos and re-encodes at maximum
// quality, returning new bytes at exactly width x height in the input's
// format family. Fails (never silently clamps) for non-positive targets
// or undecodable input.
func Rasterize(data []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target %dx%d", ErrRasterize, width, height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}

	resized := imaging.Resize(img, width, height, imaging.Lanczos)

	buf := new(bytes.Buffer)
	switch format {
	case "jpeg":
		err = jpeg.Encode(buf, resized, &jpeg.Options{Quality: 100})
	case "gif":
		// Animated inputs are flattened to the current frame.
		err = gif.Encode(buf, resized, &gif.Options{NumColors: 256})
	default:
		err = png.Encode(buf, resized)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: re-encode %s: %v", ErrRasterize, format, err)
	}

	return buf.Bytes(), nil
}
