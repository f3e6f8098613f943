package router

import (
	imagehandler "stored-image-server/internal/modules/image/handler"

	"github.com/gin-gonic/gin"
)

func registerImageRoutes(r *gin.Engine, h *imagehandler.Handler, uploadBodyLimit, uploadLimiter gin.HandlerFunc) {
	images := r.Group("/stored_images")
	images.GET("", h.ListImages)
	images.POST("", uploadBodyLimit, uploadLimiter, h.CreateImage)
	images.GET("/:id", h.GetImage)
	images.GET("/:id/content", h.GetImageContent)
	images.PATCH("/:id", uploadBodyLimit, uploadLimiter, h.UpdateImage)
	images.PUT("/:id", uploadBodyLimit, uploadLimiter, h.UpdateImage)
	images.DELETE("/:id", h.DeleteImage)
}
