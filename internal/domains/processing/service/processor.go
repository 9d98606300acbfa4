package service

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	goimage "image"
	"time"

	"image-resizer-backend/internal/domains/processing"
	"image-resizer-backend/internal/infrastructure/imaging"
	"image-resizer-backend/pkg/cache"
	"image-resizer-backend/pkg/logger"
)

// backgroundTolerance is the corner-keying threshold for background
// removal; backgroundCacheTTL bounds how long a removal result is reused
// for identical input bytes.
const (
	backgroundTolerance = 30.0
	backgroundCacheTTL  = 24 * time.Hour
)

type processor struct {
	cache cache.Cache // nil disables result caching
}

func NewProcessor(resultCache cache.Cache) processing.Service {
	return &processor{cache: resultCache}
}

func (p *processor) Process(ctx context.Context, data []byte, operation string, params map[string]interface{}) (string, error) {
	if operation == processing.OpRemoveBackground {
		if cached, ok := p.cachedResult(ctx, data); ok {
			return cached, nil
		}
	}

	img, err := imaging.Decode(data)
	if err != nil {
		return "", err
	}

	var out goimage.Image
	switch operation {
	case processing.OpExposure:
		out = imaging.AdjustExposure(img, floatParam(params, "value", 0))
	case processing.OpHighlights:
		out = imaging.AdjustHighlights(img, floatParam(params, "value", 0))
	case processing.OpShadows:
		out = imaging.AdjustShadows(img, floatParam(params, "value", 0))
	case processing.OpSharpness:
		out = imaging.Sharpen(img, floatParam(params, "value", 0))
	case processing.OpRotate:
		out = imaging.Rotate(img, floatParam(params, "angle", 0))
	case processing.OpFlip:
		out = imaging.Flip(img, boolParam(params, "flipX"), boolParam(params, "flipY"))
	case processing.OpRemoveBackground:
		out = imaging.RemoveBackground(img, backgroundTolerance)
	case processing.OpWhiteBackground:
		out = imaging.FlattenWhite(img)
	case processing.OpResize:
		width := intParam(params, "width")
		height := intParam(params, "height")
		if width <= 0 || height <= 0 {
			return "", fmt.Errorf("%w: resize needs positive width and height", processing.ErrInvalidParams)
		}
		out, err = imaging.Scale(img, width, height)
		if err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: %s", processing.ErrUnsupportedOperation, operation)
	}

	encoded, err := encodeResult(out)
	if err != nil {
		return "", err
	}

	if operation == processing.OpRemoveBackground {
		p.storeResult(ctx, data, encoded)
	}
	return encoded, nil
}

func (p *processor) Crop(ctx context.Context, data []byte, x, y, width, height int) (string, error) {
	img, err := imaging.Decode(data)
	if err != nil {
		return "", err
	}

	cropped, err := imaging.Crop(img, x, y, width, height)
	if err != nil {
		return "", err
	}
	return encodeResult(cropped)
}

func encodeResult(img goimage.Image) (string, error) {
	raw, err := imaging.EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Background removal dominates processing cost, so identical inputs are
// served from cache keyed by content hash.

func (p *processor) cachedResult(ctx context.Context, data []byte) (string, bool) {
	if p.cache == nil {
		return "", false
	}
	var cached string
	found, err := p.cache.Get(ctx, cacheKey(data), &cached)
	if err != nil {
		logger.Warn("Background cache lookup failed", map[string]interface{}{"error": err.Error()})
		return "", false
	}
	return cached, found
}

func (p *processor) storeResult(ctx context.Context, data []byte, encoded string) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Set(ctx, cacheKey(data), encoded, backgroundCacheTTL); err != nil {
		logger.Warn("Background cache store failed", map[string]interface{}{"error": err.Error()})
	}
}

func cacheKey(data []byte) string {
	sum := md5.Sum(data)
	return "bgremoval:" + hex.EncodeToString(sum[:])
}

// Header params arrive as a loose JSON object; numbers decode as float64.

func floatParam(params map[string]interface{}, key string, fallback float64) float64 {
	if v, ok := params[key].(float64); ok {
		return v
	}
	return fallback
}

func intParam(params map[string]interface{}, key string) int {
	return int(floatParam(params, key, 0))
}

func boolParam(params map[string]interface{}, key string) bool {
	v, _ := params[key].(bool)
	return v
}
