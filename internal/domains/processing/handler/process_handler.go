package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"image-resizer-backend/internal/domains/processing"
	"image-resizer-backend/internal/shared/response"
	"image-resizer-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ProcessHandler struct {
	service processing.Service
}

func NewProcessHandler(svc processing.Service) *ProcessHandler {
	return &ProcessHandler{service: svc}
}

// Process handles POST /process-image. The image travels as a multipart
// field; operation and params ride out-of-band in headers, with form
// fields accepted as a fallback.
func (h *ProcessHandler) Process(c *gin.Context) {
	data, err := readImagePart(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	operation := c.GetHeader("Operation")
	if operation == "" {
		operation = c.PostForm("operation")
	}
	rawParams := c.GetHeader("Params")
	if rawParams == "" {
		rawParams = c.PostForm("params")
	}

	params := map[string]interface{}{}
	if rawParams != "" {
		if err := json.Unmarshal([]byte(rawParams), &params); err != nil {
			response.BadRequest(c, fmt.Sprintf("invalid params JSON: %v", err))
			return
		}
	}

	logger.Info("Processing image", map[string]interface{}{
		"operation": operation,
		"size":      len(data),
	})

	result, err := h.service.Process(c.Request.Context(), data, operation, params)
	if err != nil {
		response.ErrorResponse(c, processing.GetHTTPStatusCode(err), "PROCESSING_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, processing.ProcessResponse{Image: result})
}

// CropImage handles POST /crop with x/y/width/height query params.
func (h *ProcessHandler) CropImage(c *gin.Context) {
	data, err := readImagePart(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	x := queryInt(c, "x", 0)
	y := queryInt(c, "y", 0)
	width := queryInt(c, "width", 100)
	height := queryInt(c, "height", 100)

	result, err := h.service.Crop(c.Request.Context(), data, x, y, width, height)
	if err != nil {
		response.ErrorResponse(c, processing.GetHTTPStatusCode(err), "CROP_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, processing.ProcessResponse{Image: result})
}

func readImagePart(c *gin.Context) ([]byte, error) {
	part, err := c.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("multipart field 'image' is required")
	}
	f, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("cannot open uploaded image")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read uploaded image")
	}
	return data, nil
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
