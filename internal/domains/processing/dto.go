package processing

// Operation names accepted by POST /process-image.
const (
	OpExposure         = "exposure"
	OpHighlights       = "highlights"
	OpShadows          = "shadows"
	OpSharpness        = "sharpness"
	OpRotate           = "rotate"
	OpFlip             = "flip"
	OpRemoveBackground = "remove_background"
	OpWhiteBackground  = "white_background"
	OpResize           = "resize"
)

// ProcessResponse carries the processed image as base64-encoded PNG,
// matching the wire contract of the processing endpoint.
type ProcessResponse struct {
	Image string `json:"image"`
}
