package processing

import "context"

// Service applies one visual adjustment to uploaded image bytes and
// returns the result as base64-encoded PNG.
type Service interface {
	Process(ctx context.Context, data []byte, operation string, params map[string]interface{}) (string, error)
	Crop(ctx context.Context, data []byte, x, y, width, height int) (string, error)
}
