package imaging

import (
	"fmt"
	"math"
)

// DeriveDimensions maps (original WxH, one new dimension) to a new WxH
// preserving the original ratio. Pass 0 for a dimension that is not set.
//
// Rules:
//   - only newW set:  height = round(newW * origH / origW)
//   - only newH set:  width  = round(newH * origW / origH)
//   - both or neither set: original dimensions returned unchanged (no-op)
//
// A derived dimension that rounds down to zero is clamped to 1 so the
// width/height > 0 invariant holds for extreme ratios.
func DeriveDimensions(origW, origH, newW, newH int) (int, int, error) {
	if origW <= 0 || origH <= 0 {
		return 0, 0, fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, origW, origH)
	}

	switch {
	case newW > 0 && newH <= 0:
		h := int(math.Round(float64(newW) * float64(origH) / float64(origW)))
		return newW, atLeastOne(h), nil
	case newH > 0 && newW <= 0:
		w := int(math.Round(float64(newH) * float64(origW) / float64(origH)))
		return atLeastOne(w), newH, nil
	default:
		return origW, origH, nil
	}
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
