package container

import (
	"context"
	"fmt"

	"image-resizer-backend/internal/config"
	"image-resizer-backend/internal/domains/auth"
	authHandler "image-resizer-backend/internal/domains/auth/handler"
	authService "image-resizer-backend/internal/domains/auth/service"
	"image-resizer-backend/internal/domains/image"
	imageHandler "image-resizer-backend/internal/domains/image/handler"
	imageService "image-resizer-backend/internal/domains/image/service"
	"image-resizer-backend/internal/domains/image/store"
	processingHandler "image-resizer-backend/internal/domains/processing/handler"
	processingService "image-resizer-backend/internal/domains/processing/service"
	infraCache "image-resizer-backend/internal/infrastructure/cache"
	"image-resizer-backend/internal/infrastructure/imaging"
	"image-resizer-backend/internal/infrastructure/preview"
	"image-resizer-backend/internal/infrastructure/storage"
	"image-resizer-backend/pkg/cache"
	"image-resizer-backend/pkg/jwt"
	"image-resizer-backend/pkg/logger"
)

// Container holds every dependency of the application; the root of the
// dependency graph, built once at startup.
type Container struct {
	Config     *config.Config
	JWTManager *jwt.Manager
	Cache      cache.Cache // nil when Redis is not configured
	Previews   *preview.Registry
	Store      *store.Store
	Storage    *storage.MinIOStorage // nil when MinIO is not configured

	ImageService   image.Service
	AuthService    auth.Service
	ImageHandler   *imageHandler.ImageHandler
	AuthHandler    *authHandler.AuthHandler
	ProcessHandler *processingHandler.ProcessHandler

	redisCache *infraCache.RedisCache
}

// NewContainer initializes the whole dependency graph in order:
// config, infrastructure, store, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	c.JWTManager = jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	c.Previews = preview.NewRegistry()
	c.Store = store.New()

	// Redis is optional: without it the processing endpoint simply
	// recomputes background removals.
	if cfg.Redis.Host != "" {
		rc := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Ping(context.Background()); err != nil {
			return nil, fmt.Errorf("redis unavailable: %w", err)
		}
		c.redisCache = rc
		c.Cache = rc
		logger.Info("Redis cache connected", map[string]interface{}{"host": cfg.Redis.Host})
	}

	// MinIO is optional: without it the export-to-storage action is off.
	if cfg.MinIO.Endpoint != "" {
		st, err := storage.NewMinIOStorage(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("minio unavailable: %w", err)
		}
		c.Storage = st
		logger.Info("Object storage connected", map[string]interface{}{"endpoint": cfg.MinIO.Endpoint})
	}

	compressor := imaging.NewCompressor()
	compressor.MaxSizeBytes = cfg.Upload.MaxSizeBytes
	compressor.MaxDimension = cfg.Upload.MaxDimension

	c.ImageService = imageService.NewImageService(c.Store, c.Previews, compressor, c.Storage)
	c.AuthService = authService.NewAuthService(cfg.Auth.Users, c.JWTManager)

	c.ImageHandler = imageHandler.NewImageHandler(c.ImageService, c.Previews, cfg.Upload.MaxFileSize)
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService)
	c.ProcessHandler = processingHandler.NewProcessHandler(processingService.NewProcessor(c.Cache))

	return c, nil
}

// Cleanup releases every live preview handle and closes connections.
func (c *Container) Cleanup() {
	if c.ImageService != nil {
		c.ImageService.TeardownAll()
	}
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			logger.Error("Failed to close redis", err)
		}
	}
}
