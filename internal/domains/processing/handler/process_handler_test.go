package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	goimage "image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-resizer-backend/internal/domains/processing"
	"image-resizer-backend/internal/domains/processing/service"
)

func newProcessRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProcessHandler(service.NewProcessor(nil))

	r := gin.New()
	r.POST("/process-image", h.Process)
	r.POST("/crop", h.CropImage)
	return r
}

func imageForm(t *testing.T, width, height int) (*bytes.Buffer, string) {
	t.Helper()
	img := goimage.NewRGBA(goimage.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 80, G: 80, B: 80, A: 255})
		}
	}
	encoded := new(bytes.Buffer)
	require.NoError(t, png.Encode(encoded, img))

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("image", "input.png")
	require.NoError(t, err)
	_, err = fw.Write(encoded.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func resultDims(t *testing.T, body []byte) (int, int) {
	t.Helper()
	var resp processing.ProcessResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	raw, err := base64.StdEncoding.DecodeString(resp.Image)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestProcess_OperationAndParamsHeaders(t *testing.T) {
	r := newProcessRouter()
	body, contentType := imageForm(t, 10, 5)

	req := httptest.NewRequest(http.MethodPost, "/process-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Operation", "resize")
	req.Header.Set("Params", `{"width":20,"height":8}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	width, height := resultDims(t, w.Body.Bytes())
	assert.Equal(t, 20, width)
	assert.Equal(t, 8, height)
}

func TestProcess_MissingImagePart(t *testing.T) {
	r := newProcessRouter()

	req := httptest.NewRequest(http.MethodPost, "/process-image", bytes.NewReader(nil))
	req.Header.Set("Operation", "resize")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcess_MalformedParams(t *testing.T) {
	r := newProcessRouter()
	body, contentType := imageForm(t, 4, 4)

	req := httptest.NewRequest(http.MethodPost, "/process-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Operation", "exposure")
	req.Header.Set("Params", `{not json`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcess_UnknownOperation(t *testing.T) {
	r := newProcessRouter()
	body, contentType := imageForm(t, 4, 4)

	req := httptest.NewRequest(http.MethodPost, "/process-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Operation", "vignette")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCrop_QueryParams(t *testing.T) {
	r := newProcessRouter()
	body, contentType := imageForm(t, 10, 10)

	req := httptest.NewRequest(http.MethodPost, "/crop?x=1&y=1&width=6&height=4", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	width, height := resultDims(t, w.Body.Bytes())
	assert.Equal(t, 6, width)
	assert.Equal(t, 4, height)
}

func TestCrop_DefaultsTo100Square(t *testing.T) {
	r := newProcessRouter()
	body, contentType := imageForm(t, 200, 200)

	req := httptest.NewRequest(http.MethodPost, "/crop", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	width, height := resultDims(t, w.Body.Bytes())
	assert.Equal(t, 100, width)
	assert.Equal(t, 100, height)
}
