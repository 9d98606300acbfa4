package image

import "context"

// UploadFile is one file from a multipart ingest batch.
type UploadFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service is the business surface over the record store. Every mutation
// is atomic from the caller's perspective: a failed resize leaves the
// record exactly as it was.
type Service interface {
	// Ingest compresses and measures each file, creating one record per
	// decodable image. A bad file is skipped, never aborting its siblings.
	Ingest(ctx context.Context, files []UploadFile) (*UploadResponse, error)

	List(ctx context.Context) []ImageResponse
	Get(ctx context.Context, id string) (ImageResponse, error)

	// Update applies a partial change. Dimension changes rasterize against
	// the current bytes, replace them wholesale and mint a fresh preview
	// handle; a result superseded by a newer update is discarded.
	Update(ctx context.Context, id string, req *UpdateImageReq) (ImageResponse, error)

	// ResetDimensions restores the ingestion-time dimensions and
	// regenerates raster and preview accordingly.
	ResetDimensions(ctx context.Context, id string) (ImageResponse, error)

	// Remove revokes the record's preview handle and drops the record.
	Remove(ctx context.Context, id string) error

	// ExportOne returns the download filename, bytes and content type
	// for a single record.
	ExportOne(ctx context.Context, id string) (string, []byte, string, error)

	// ExportAll bundles every current record into one zip archive.
	ExportAll(ctx context.Context) ([]byte, error)

	// ExportToStorage pushes the archive to the configured object store.
	ExportToStorage(ctx context.Context) (*ExportUploadResponse, error)

	// TeardownAll revokes every live preview handle; called once when
	// the store is discarded on shutdown.
	TeardownAll()
}
