package router

import (
	imagehandler "stored-image-server/internal/modules/image/handler"
	userhandler "stored-image-server/internal/modules/user/handler"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(r *gin.Engine, h *userhandler.Handler, ih *imagehandler.Handler, uploadBodyLimit, uploadLimiter gin.HandlerFunc) {
	users := r.Group("/users")
	users.GET("", h.ListUsers)
	users.GET("/:id", h.GetUser)
	users.PATCH("/:id", h.UpdateUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)

	// 某个用户名下的图片；成员路由在图片不属于该用户时返回 404
	owned := users.Group("/:id/stored_images", ih.ScopeToUser)
	owned.GET("", ih.ListImages)
	owned.POST("", uploadBodyLimit, uploadLimiter, ih.CreateImage)
	owned.GET("/:image_id", ih.GetImage)
	owned.GET("/:image_id/content", ih.GetImageContent)
	owned.PATCH("/:image_id", uploadBodyLimit, uploadLimiter, ih.UpdateImage)
	owned.PUT("/:image_id", uploadBodyLimit, uploadLimiter, ih.UpdateImage)
	owned.DELETE("/:image_id", ih.DeleteImage)
}
