package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stored-image-server/internal/model"
	"stored-image-server/internal/session"
	"stored-image-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubFinder map[uint]*model.User

func (f stubFinder) FindByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func identityRouter(signer *utils.TokenSigner, users stubFinder) (*gin.Engine, *session.Identity) {
	gin.SetMode(gin.TestMode)

	var seen session.Identity
	r := gin.New()
	r.Use(ResolveIdentity(signer, session.NewResolver(users)))
	r.GET("/x", func(c *gin.Context) {
		seen = session.FromGin(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

// 测试内容：验证合法 Bearer 凭证解析为对应用户，管理员标记生效。
func TestResolveIdentity_ValidToken(t *testing.T) {
	signer := utils.NewTokenSigner("test-secret", time.Hour)
	users := stubFinder{7: {ID: 7, Username: "root", IsAdmin: true}}
	r, seen := identityRouter(signer, users)

	token, err := signer.Issue(7)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, seen.IsAdmin())
	assert.Equal(t, uint(7), seen.UserID())
}

// 测试内容：验证缺失、格式错误、签名错误以及用户已删除的凭证都按匿名处理且不拦截请求。
func TestResolveIdentity_FallsBackToAnonymous(t *testing.T) {
	signer := utils.NewTokenSigner("test-secret", time.Hour)
	other := utils.NewTokenSigner("other-secret", time.Hour)
	users := stubFinder{1: {ID: 1, Username: "alice"}}

	forged, err := other.Issue(1)
	require.NoError(t, err)
	orphan, err := signer.Issue(99)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{name: "缺失", header: ""},
		{name: "非 Bearer", header: "Token abc"},
		{name: "签名错误", header: "Bearer " + forged},
		{name: "用户不存在", header: "Bearer " + orphan},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, seen := identityRouter(signer, users)
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.True(t, seen.IsAnonymous())
		})
	}
}
