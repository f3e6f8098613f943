package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"stored-image-server/internal/modules/common/httpx"

	"github.com/gin-gonic/gin"
)

// BodyLimitMiddleware 限制普通请求体大小，multipart 上传交给 UploadBodyLimitMiddleware
func BodyLimitMiddleware(maxSizeMB int) gin.HandlerFunc {
	if maxSizeMB <= 0 {
		// 未设置时默认 2MB
		maxSizeMB = 2
	}
	maxBytes := int64(maxSizeMB) * 1024 * 1024

	return func(c *gin.Context) {
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			c.Next()
			return
		}

		// 使用 MaxBytesReader 限制读取的字节数
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// UploadBodyLimitMiddleware 限制图片上传接口的请求体大小
func UploadBodyLimitMiddleware(maxSizeMB int) gin.HandlerFunc {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	maxBytes := int64(maxSizeMB) * 1024 * 1024

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			httpx.WriteErrors(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("Image must be smaller than %dMB", maxSizeMB))
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
