package imaging

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
)

// Compressor produces a size-reduced version of an uploaded image at
// ingestion time. Compression is a best-effort optimization, never a
// correctness requirement: any internal failure returns the original
// bytes unchanged.
type Compressor struct {
	MaxSizeBytes int64 // output size ceiling (default 1MB)
	MaxDimension int   // longest-side bound when caller passes none (default 3500)
}

func NewCompressor() *Compressor {
	return &Compressor{
		MaxSizeBytes: 1 * 1024 * 1024,
		MaxDimension: 3500,
	}
}

// Compress re-encodes data so that it stays under the size ceiling and
// within max(maxWidth, maxHeight) on its longest side, preserving the
// format family. Pass 0 for an unset bound; it defaults to MaxDimension.
func (c *Compressor) Compress(data []byte, maxWidth, maxHeight int) []byte {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	if maxWidth <= 0 {
		maxWidth = c.MaxDimension
	}
	if maxHeight <= 0 {
		maxHeight = c.MaxDimension
	}
	bound := maxWidth
	if maxHeight > bound {
		bound = maxHeight
	}

	resized := false
	b := img.Bounds()
	if b.Dx() > bound || b.Dy() > bound {
		img = imaging.Fit(img, bound, bound, imaging.Lanczos)
		resized = true
	}

	buf := new(bytes.Buffer)
	switch format {
	case "jpeg":
		// Walk quality down until the ceiling is met or the floor is
		// reached; past the floor the ceiling is best-effort only.
		for q := 85; ; q -= 10 {
			buf.Reset()
			if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: q}); err != nil {
				return data
			}
			if int64(buf.Len()) <= c.MaxSizeBytes || q <= 35 {
				break
			}
		}
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(buf, img); err != nil {
			return data
		}
	case "gif":
		if !resized {
			return data
		}
		if err := gif.Encode(buf, img, &gif.Options{NumColors: 256}); err != nil {
			return data
		}
	default:
		return data
	}

	// Keep the original when re-encoding alone made things worse.
	if !resized && int64(buf.Len()) >= int64(len(data)) {
		return data
	}
	return buf.Bytes()
}
