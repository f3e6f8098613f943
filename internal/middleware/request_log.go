package middleware

import (
	"strings"
	"time"

	"stored-image-server/internal/logger"
	"stored-image-server/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestLogger 为每个请求分配 request id，记录访问日志并采集请求指标。
func RequestLogger(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(HeaderRequestID, requestID)

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		m.ObserveRequest(route, c.Request.Method, status, elapsed)

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", elapsed,
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			logger.Log.Warnw("请求处理出错", append(fields, "errors", c.Errors.String())...)
			return
		}
		logger.Log.Infow("请求完成", fields...)
	}
}

// RequestID 返回当前请求的 request id，未经过 RequestLogger 时为空。
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
