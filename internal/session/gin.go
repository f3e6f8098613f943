package session

import "github.com/gin-gonic/gin"

const contextKey = "session.identity"

// Attach 把身份写入 gin 上下文。
func Attach(c *gin.Context, identity Identity) {
	c.Set(contextKey, identity)
}

// FromGin 读取当前请求的身份，未设置时为匿名。
func FromGin(c *gin.Context) Identity {
	if v, ok := c.Get(contextKey); ok {
		if identity, ok := v.(Identity); ok {
			return identity
		}
	}
	return Anonymous()
}
