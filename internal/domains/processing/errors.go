package processing

import (
	"errors"
	"net/http"

	"image-resizer-backend/internal/infrastructure/imaging"
)

var (
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrInvalidParams        = errors.New("invalid operation params")
)

// GetHTTPStatusCode maps processing errors to HTTP status codes.
// Any non-2xx is terminal for the caller; there is no retry.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedOperation),
		errors.Is(err, ErrInvalidParams),
		errors.Is(err, imaging.ErrDecode),
		errors.Is(err, imaging.ErrRasterize):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
