package middleware

import (
	"errors"

	"stored-image-server/internal/logger"
	"stored-image-server/internal/session"
	"stored-image-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// ResolveIdentity 解析 Authorization 头并把调用方身份挂到上下文。
// 凭证缺失或无效都按匿名处理，是否需要登录由各业务操作自行判断。
func ResolveIdentity(signer *utils.TokenSigner, resolver *session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := signer.Verify(c.GetHeader("Authorization"))
		if err != nil {
			if !errors.Is(err, utils.ErrMissingCredential) {
				logger.Log.Debugw("忽略无效凭证", "path", c.Request.URL.Path, "error", err)
			}
			session.Attach(c, session.Anonymous())
			c.Next()
			return
		}

		session.Attach(c, resolver.Resolve(c.Request.Context(), claims))
		c.Next()
	}
}
