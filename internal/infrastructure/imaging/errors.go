package imaging

import "errors"

// Sentinel errors for the image pipeline. Callers match with errors.Is().
var (
	// ErrDecode: bytes are not a supported image (jpg/png/gif)
	ErrDecode = errors.New("unreadable or unsupported image bytes")

	// ErrRasterize: invalid target dimensions or decode failure during resize
	ErrRasterize = errors.New("cannot rasterize image")

	// ErrInvalidDimension: non-positive original dimensions in aspect calculation
	ErrInvalidDimension = errors.New("original dimensions must be positive")
)
