package image

import (
	"fmt"
	"strings"

	"image-resizer-backend/internal/infrastructure/preview"
)

// Category is the fixed set of slots an image can be filed under.
type Category string

const (
	CategoryMain  Category = "MAIN"
	CategoryPT01  Category = "PT01"
	CategoryPT02  Category = "PT02"
	CategoryPT03  Category = "PT03"
	CategoryPT04  Category = "PT04"
	CategoryPT05  Category = "PT05"
	CategoryPT06  Category = "PT06"
	CategoryPT07  Category = "PT07"
	CategoryOther Category = "OTHER"
)

var validCategories = map[Category]bool{
	CategoryMain: true, CategoryPT01: true, CategoryPT02: true,
	CategoryPT03: true, CategoryPT04: true, CategoryPT05: true,
	CategoryPT06: true, CategoryPT07: true, CategoryOther: true,
}

func (c Category) Valid() bool {
	return validCategories[c]
}

// Extension is the format family derived once at ingestion. It is
// never re-derived, even when the encoded bytes change.
type Extension string

const (
	ExtJPG Extension = "jpg"
	ExtPNG Extension = "png"
	ExtGIF Extension = "gif"
)

// DetectExtension maps the lowercased filename suffix into the
// supported set. When the suffix is missing or unrecognized the
// sniffed MIME type decides, defaulting to jpg.
func DetectExtension(filename, mimeType string) Extension {
	if idx := strings.LastIndex(filename, "."); idx >= 0 && idx < len(filename)-1 {
		switch strings.ToLower(filename[idx+1:]) {
		case "png":
			return ExtPNG
		case "gif":
			return ExtGIF
		case "jpg", "jpeg":
			return ExtJPG
		}
	}
	switch mimeType {
	case "image/png":
		return ExtPNG
	case "image/gif":
		return ExtGIF
	}
	return ExtJPG
}

// BaseName strips the extension from an uploaded filename; everything
// after the last dot is dropped.
func BaseName(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx <= 0 {
		return filename
	}
	return filename[:idx]
}

// Dimensions tracks the current target size next to the immutable
// ingestion-time snapshot.
type Dimensions struct {
	Width          int `json:"width"`
	Height         int `json:"height"`
	OriginalWidth  int `json:"originalWidth"`
	OriginalHeight int `json:"originalHeight"`
}

// Record is one tracked image plus its editable metadata. Data is
// exclusively owned by the record and replaced wholesale on resize,
// never mutated in place.
type Record struct {
	ID           string
	Data         []byte
	MimeType     string
	Preview      *preview.Handle
	DisplayName  string
	Category     Category
	Extension    Extension
	Dimensions   Dimensions
	AspectLocked bool

	// Revision is bumped on every dispatched resize; a rasterize result
	// stamped with an older value is discarded on arrival.
	Revision int64
}

// ExportName is the download filename: {name}.{category}.{extension},
// where name is the display name truncated at its first dot so the
// category and extension stay the only dotted segments.
func (r *Record) ExportName() string {
	name := r.DisplayName
	if idx := strings.Index(name, "."); idx > 0 {
		name = name[:idx]
	}
	return fmt.Sprintf("%s.%s.%s", name, r.Category, r.Extension)
}
