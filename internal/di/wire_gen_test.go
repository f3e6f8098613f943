package di

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"stored-image-server/internal/cache"
	"stored-image-server/internal/config"
	"stored-image-server/internal/storage"
	"stored-image-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// 测试内容：验证依赖装配完成后本地存储的附件目录被挂载，路由可以处理请求。
func TestInitializeApplication_LocalStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := testutils.SetupDB(t)

	store, err := storage.NewLocalStore(t.TempDir(), "/attachments/")
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	cfg := config.Config{
		JWT:    config.JWTConfig{Secret: "di-test-secret", ExpirationHours: 1},
		Upload: config.UploadConfig{URLPrefix: "/attachments/"},
	}

	app, err := InitializeApplication(gdb, cfg, store, storage.NewHTTPFetcher(0, 0), cache.NewRedisClient(config.RedisConfig{}), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("InitializeApplication: %v", err)
	}
	if app.Modules == nil || app.Modules.Image == nil {
		t.Fatalf("期望模块已装配")
	}

	r := gin.New()
	app.Router.Init(r)

	mounted := false
	for _, route := range r.Routes() {
		if route.Path == "/attachments/*filepath" {
			mounted = true
		}
	}
	if !mounted {
		t.Fatalf("期望挂载本地附件目录")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
}
