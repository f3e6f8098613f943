package middleware

import "github.com/gin-gonic/gin"

// StaticCacheMiddleware 为本地附件添加 Cache-Control 头。
// 附件键每次上传随机生成，替换图片会换新键。
func StaticCacheMiddleware(cacheControl string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cacheControl != "" {
			c.Header("Cache-Control", cacheControl)
		}
		c.Next()
	}
}
