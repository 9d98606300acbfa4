package image

import (
	"errors"
	"net/http"

	"image-resizer-backend/internal/infrastructure/imaging"
)

// Store-level errors
var (
	// ErrImageNotFound: operation references an unknown record id
	ErrImageNotFound = errors.New("image not found")

	// ErrSuperseded: a newer update on the same record was dispatched
	// while this one was rasterizing; its result was discarded
	ErrSuperseded = errors.New("update superseded by a newer one")
)

// Service-level errors
var (
	ErrNoImagesIngested = errors.New("no decodable images in upload batch")
	ErrInvalidCategory  = errors.New("invalid image category")
	ErrEmptyStore       = errors.New("no images to export")

	// ErrStorageUnavailable: export-to-storage requested without an
	// object store configured
	ErrStorageUnavailable = errors.New("object storage not configured")
)

// GetHTTPStatusCode maps domain errors to HTTP status codes.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrImageNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrNoImagesIngested),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrEmptyStore),
		errors.Is(err, imaging.ErrDecode),
		errors.Is(err, imaging.ErrRasterize),
		errors.Is(err, imaging.ErrInvalidDimension):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
