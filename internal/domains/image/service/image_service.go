package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"image-resizer-backend/internal/domains/image"
	"image-resizer-backend/internal/domains/image/store"
	"image-resizer-backend/internal/infrastructure/archive"
	"image-resizer-backend/internal/infrastructure/imaging"
	"image-resizer-backend/internal/infrastructure/preview"
	"image-resizer-backend/internal/infrastructure/storage"
	"image-resizer-backend/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type imageService struct {
	store      *store.Store
	previews   *preview.Registry
	compressor *imaging.Compressor
	storage    *storage.MinIOStorage // nil when no object store is configured

	// rasterize is swapped out in tests to control resize timing.
	rasterize func(data []byte, width, height int) ([]byte, error)
}

func NewImageService(
	st *store.Store,
	previews *preview.Registry,
	compressor *imaging.Compressor,
	objectStorage *storage.MinIOStorage,
) image.Service {
	return &imageService{
		store:      st,
		previews:   previews,
		compressor: compressor,
		storage:    objectStorage,
		rasterize:  imaging.Rasterize,
	}
}

// Ingest runs each file through compress -> extract dimensions -> insert.
// Files that are not images or cannot be decoded are skipped; one bad
// file never aborts its siblings, and the valid files keep their order.
func (s *imageService) Ingest(ctx context.Context, files []image.UploadFile) (*image.UploadResponse, error) {
	if len(files) == 0 {
		return nil, image.ErrNoImagesIngested
	}

	resp := &image.UploadResponse{Created: []image.ImageResponse{}}

	for _, f := range files {
		if !strings.HasPrefix(mimetype.Detect(f.Data).String(), "image/") {
			resp.Skipped = append(resp.Skipped, f.Filename)
			continue
		}

		compressed := s.compressor.Compress(f.Data, 0, 0)

		width, height, err := imaging.ExtractDimensions(compressed)
		if err != nil {
			logger.Warn("Skipping undecodable upload", map[string]interface{}{
				"filename": f.Filename,
				"error":    err.Error(),
			})
			resp.Skipped = append(resp.Skipped, f.Filename)
			continue
		}

		mime := mimetype.Detect(compressed).String()
		rec := &image.Record{
			ID:          uuid.NewString(),
			Data:        compressed,
			MimeType:    mime,
			Preview:     s.previews.Register(compressed, mime),
			DisplayName: image.BaseName(f.Filename),
			Category:    image.CategoryMain,
			Extension:   image.DetectExtension(f.Filename, mime),
			Dimensions: image.Dimensions{
				Width:          width,
				Height:         height,
				OriginalWidth:  width,
				OriginalHeight: height,
			},
		}
		s.store.Insert(rec)
		resp.Created = append(resp.Created, rec.ToResponse())
	}

	return resp, nil
}

func (s *imageService) List(ctx context.Context) []image.ImageResponse {
	recs := s.store.List()
	out := make([]image.ImageResponse, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].ToResponse())
	}
	return out
}

func (s *imageService) Get(ctx context.Context, id string) (image.ImageResponse, error) {
	rec, err := s.store.Get(id)
	if err != nil {
		return image.ImageResponse{}, err
	}
	return rec.ToResponse(), nil
}

func (s *imageService) Update(ctx context.Context, id string, req *image.UpdateImageReq) (image.ImageResponse, error) {
	applyMeta := func(rec *image.Record) {
		if req.Name != nil {
			rec.DisplayName = *req.Name
		}
		if req.Category != nil {
			rec.Category = image.Category(*req.Category)
		}
		if req.AspectLocked != nil {
			rec.AspectLocked = *req.AspectLocked
		}
	}

	if !req.HasDimensionChange() {
		rec, err := s.store.ApplyMeta(id, applyMeta)
		if err != nil {
			return image.ImageResponse{}, err
		}
		return rec.ToResponse(), nil
	}

	cur, err := s.store.Get(id)
	if err != nil {
		return image.ImageResponse{}, err
	}

	locked := cur.AspectLocked
	if req.AspectLocked != nil {
		locked = *req.AspectLocked
	}

	var reqW, reqH int
	if req.Width != nil {
		reqW = *req.Width
	}
	if req.Height != nil {
		reqH = *req.Height
	}

	var width, height int
	if locked && (reqW == 0) != (reqH == 0) {
		// One dimension given under aspect lock: derive the other from
		// the ingestion-time snapshot, not the current display size.
		width, height, err = imaging.DeriveDimensions(
			cur.Dimensions.OriginalWidth, cur.Dimensions.OriginalHeight, reqW, reqH)
		if err != nil {
			return image.ImageResponse{}, err
		}
	} else {
		width, height = reqW, reqH
		if width == 0 {
			width = cur.Dimensions.Width
		}
		if height == 0 {
			height = cur.Dimensions.Height
		}
	}

	return s.resize(id, width, height, applyMeta)
}

func (s *imageService) ResetDimensions(ctx context.Context, id string) (image.ImageResponse, error) {
	cur, err := s.store.Get(id)
	if err != nil {
		return image.ImageResponse{}, err
	}
	return s.resize(id, cur.Dimensions.OriginalWidth, cur.Dimensions.OriginalHeight, nil)
}

// resize rasterizes against the bytes current at dispatch time and
// commits the result only if no newer update has been stamped since.
// A rasterize failure rejects the whole update: nothing is committed,
// not even the metadata fields.
func (s *imageService) resize(id string, width, height int, applyMeta func(*image.Record)) (image.ImageResponse, error) {
	stamp, data, err := s.store.StampResize(id)
	if err != nil {
		return image.ImageResponse{}, err
	}

	out, err := s.rasterize(data, width, height)
	if err != nil {
		return image.ImageResponse{}, err
	}

	handle := s.previews.Register(out, mimetype.Detect(out).String())
	rec, err := s.store.CommitResize(id, stamp, out, width, height, handle, applyMeta)
	if err != nil {
		return image.ImageResponse{}, err
	}
	return rec.ToResponse(), nil
}

func (s *imageService) Remove(ctx context.Context, id string) error {
	return s.store.Remove(id)
}

func (s *imageService) ExportOne(ctx context.Context, id string) (string, []byte, string, error) {
	rec, err := s.store.Get(id)
	if err != nil {
		return "", nil, "", err
	}
	return rec.ExportName(), rec.Data, rec.MimeType, nil
}

func (s *imageService) ExportAll(ctx context.Context) ([]byte, error) {
	recs := s.store.List()
	if len(recs) == 0 {
		return nil, image.ErrEmptyStore
	}

	entries := make([]archive.Entry, 0, len(recs))
	for i := range recs {
		entries = append(entries, archive.Entry{
			Name: recs[i].ExportName(),
			Data: recs[i].Data,
		})
	}
	return archive.Build(entries)
}

func (s *imageService) ExportToStorage(ctx context.Context) (*image.ExportUploadResponse, error) {
	if s.storage == nil {
		return nil, image.ErrStorageUnavailable
	}

	data, err := s.ExportAll(ctx)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/%s-images.zip", time.Now().UTC().Format("20060102-150405"))
	url, err := s.storage.Upload(ctx, key, data, "application/zip")
	if err != nil {
		return nil, fmt.Errorf("upload archive: %w", err)
	}

	return &image.ExportUploadResponse{URL: url, Entries: s.store.Len()}, nil
}

func (s *imageService) TeardownAll() {
	s.store.TeardownAll()
}
