package httpx

import (
	"net/http"

	"stored-image-server/internal/logger"
	"stored-image-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// WriteServiceError 将服务层错误渲染为 {"errors": [...]}。
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := service.AsServiceError(err); ok {
		status := ServiceErrorStatus(serviceErr.Code)
		if status >= http.StatusInternalServerError {
			logger.Log.Errorw("❌ 请求处理失败", "path", c.FullPath(), "error", err)
		}
		c.JSON(status, gin.H{"errors": serviceErr.Messages})
		return
	}
	logger.Log.Errorw("❌ 请求处理失败", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{fallbackMessage}})
}

// WriteErrors 直接输出一组错误信息。
func WriteErrors(c *gin.Context, status int, messages ...string) {
	c.JSON(status, gin.H{"errors": messages})
}

// ServiceErrorStatus 错误码到 HTTP 状态码的映射。
func ServiceErrorStatus(code service.ErrorCode) int {
	switch code {
	case service.ErrorCodeValidation, service.ErrorCodeConflict, service.ErrorCodeAuthentication:
		return http.StatusUnprocessableEntity
	case service.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case service.ErrorCodeForbidden:
		return http.StatusForbidden
	case service.ErrorCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
