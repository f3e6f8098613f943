package router

import (
	authhandler "stored-image-server/internal/modules/auth/handler"

	"github.com/gin-gonic/gin"
)

func registerAuthRoutes(r *gin.Engine, authLimiter gin.HandlerFunc, h *authhandler.Handler) {
	r.POST("/signup", authLimiter, h.Signup)
	r.POST("/login", authLimiter, h.Login)
}
