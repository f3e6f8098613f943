package router

import (
	"net/http"
	"strings"

	"stored-image-server/internal/cache"
	"stored-image-server/internal/config"
	"stored-image-server/internal/logger"
	"stored-image-server/internal/metrics"
	"stored-image-server/internal/middleware"
	"stored-image-server/internal/modules"
	"stored-image-server/internal/modules/common/httpx"
	"stored-image-server/internal/session"
	"stored-image-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options 路由层依赖的横切组件。
type Options struct {
	Config   config.Config
	Signer   *utils.TokenSigner
	Resolver *session.Resolver
	Redis    *cache.RedisClient
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// LocalRoot 本地附件目录，为空时不挂载静态文件（例如使用 S3 时）
	LocalRoot string
}

type Router struct {
	modules *modules.AppModules
	opts    Options
}

func NewRouter(appModules *modules.AppModules, opts Options) *Router {
	return &Router{
		modules: appModules,
		opts:    opts,
	}
}

func (rt *Router) Init(r *gin.Engine) {
	cfg := rt.opts.Config

	r.Use(middleware.RequestLogger(rt.opts.Metrics))
	// 注册全局安全标头中间件
	r.Use(middleware.SecurityHeaders())
	// 应用请求体大小限制中间件
	r.Use(middleware.BodyLimitMiddleware(cfg.Server.MaxRequestBodyMB))
	r.Use(middleware.ResolveIdentity(rt.opts.Signer, rt.opts.Resolver))

	// 认证限流在 signup 与 login 之间共用同一个实例
	authLimiter := middleware.RateLimitMiddleware(middleware.RateLimitPolicy{
		Name:    "auth",
		Enabled: cfg.RateLimit.Enabled,
		RPS:     cfg.RateLimit.AuthRPS,
		Burst:   cfg.RateLimit.AuthBurst,
	}, rt.opts.Redis)
	uploadLimiter := middleware.RateLimitMiddleware(middleware.RateLimitPolicy{
		Name:    "upload",
		Enabled: cfg.RateLimit.Enabled,
		RPS:     cfg.RateLimit.UploadRPS,
		Burst:   cfg.RateLimit.UploadBurst,
	}, rt.opts.Redis)
	uploadBodyLimit := middleware.UploadBodyLimitMiddleware(cfg.Server.MaxUploadBodyMB)

	registerSystemRoutes(r, rt.opts.Gatherer)
	registerAuthRoutes(r, authLimiter, rt.modules.Auth.Handler)
	registerUserRoutes(r, rt.modules.User.Handler, rt.modules.Image.Handler, uploadBodyLimit, uploadLimiter)
	registerImageRoutes(r, rt.modules.Image.Handler, uploadBodyLimit, uploadLimiter)

	if rt.opts.LocalRoot != "" {
		prefix := "/" + strings.Trim(cfg.Upload.URLPrefix, "/")
		if prefix == "/" {
			// 挂在根路径会与全部 API 路由冲突
			logger.Log.Warnw("⚠️ upload.url_prefix 为空，本地附件不会对外提供", "root", rt.opts.LocalRoot)
		} else {
			// 使用带缓存控制的静态文件服务
			r.Group(prefix, middleware.StaticCacheMiddleware(cfg.Upload.CacheControl)).
				StaticFS("", gin.Dir(rt.opts.LocalRoot, false))
		}
	}

	r.NoRoute(func(c *gin.Context) {
		httpx.WriteErrors(c, http.StatusNotFound, "Not found")
	})
}

func registerSystemRoutes(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}
