package image

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ========================================
// REQUEST DTOs
// ========================================

// UpdateImageReq is the PATCH /images/:id body. All fields optional;
// nil means "leave unchanged". When aspect lock is in effect and exactly
// one of width/height is given, the other is derived from the original
// dimensions.
type UpdateImageReq struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Width        *int    `json:"width"`
	Height       *int    `json:"height"`
	AspectLocked *bool   `json:"aspectLocked"`
}

func (r UpdateImageReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Length(1, 255).Error("name must be 1-255 characters"),
		),
		validation.Field(&r.Category,
			validation.In("MAIN", "PT01", "PT02", "PT03", "PT04", "PT05", "PT06", "PT07", "OTHER").
				Error("category must be one of MAIN, PT01..PT07, OTHER"),
		),
		validation.Field(&r.Width,
			validation.Min(1).Error("width must be positive"),
			validation.Max(3500).Error("width must not exceed 3500"),
		),
		validation.Field(&r.Height,
			validation.Min(1).Error("height must be positive"),
			validation.Max(3500).Error("height must not exceed 3500"),
		),
	)
}

// HasDimensionChange reports whether the patch asks for a resize.
func (r UpdateImageReq) HasDimensionChange() bool {
	return r.Width != nil || r.Height != nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type ImageResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     Category   `json:"category"`
	Extension    Extension  `json:"extension"`
	PreviewURL   string     `json:"preview"`
	Dimensions   Dimensions `json:"dimensions"`
	AspectLocked bool       `json:"aspectLocked"`
	SizeBytes    int        `json:"sizeBytes"`
}

func (r *Record) ToResponse() ImageResponse {
	resp := ImageResponse{
		ID:           r.ID,
		Name:         r.DisplayName,
		Category:     r.Category,
		Extension:    r.Extension,
		Dimensions:   r.Dimensions,
		AspectLocked: r.AspectLocked,
		SizeBytes:    len(r.Data),
	}
	if r.Preview != nil {
		resp.PreviewURL = r.Preview.URL()
	}
	return resp
}

// UploadResponse reports what one ingest batch produced. Skipped lists
// the filenames that were dropped (undecodable or not an image).
type UploadResponse struct {
	Created []ImageResponse `json:"created"`
	Skipped []string        `json:"skipped,omitempty"`
}

// ExportUploadResponse is returned when an archive is pushed to object storage.
type ExportUploadResponse struct {
	URL     string `json:"url"`
	Entries int    `json:"entries"`
}
