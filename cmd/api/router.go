package main

import (
	"net/http"

	"image-resizer-backend/internal/shared/middleware"
	"image-resizer-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Preview handles are dereferenced without auth: tokens are opaque,
	// unguessable and revoked with their record.
	router.GET("/previews/:token", c.ImageHandler.Preview)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
		v1.POST("/login", c.AuthHandler.Login)
		v1.POST("/process-image", c.ProcessHandler.Process)
		v1.POST("/crop", c.ProcessHandler.CropImage)

		images := v1.Group("/images")
		images.Use(middleware.AuthMiddleware(c.JWTManager))
		{
			images.POST("", c.ImageHandler.Upload)
			images.GET("", c.ImageHandler.List)
			images.GET("/export", c.ImageHandler.ExportAll)
			images.POST("/export/upload", c.ImageHandler.ExportUpload)
			images.GET("/:id", c.ImageHandler.GetByID)
			images.PATCH("/:id", c.ImageHandler.Update)
			images.POST("/:id/reset", c.ImageHandler.Reset)
			images.DELETE("/:id", c.ImageHandler.Delete)
			images.GET("/:id/download", c.ImageHandler.Download)
		}
	}

	return router
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"name":    c.Config.App.Name,
			"version": c.Config.App.Version,
			"env":     c.Config.App.Environment,
		})
	}
}
