package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"stored-image-server/internal/cache"
	"stored-image-server/internal/config"
	"stored-image-server/internal/consts"
	"stored-image-server/internal/db"
	"stored-image-server/internal/di"
	"stored-image-server/internal/logger"
	"stored-image-server/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	configDir := flag.String("config", "config", "配置文件目录")
	exportRoutes := flag.Bool("export", false, "导出路由到 routes.json 并退出")
	flag.Parse()

	if err := config.InitConfig(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "❌ 配置加载失败: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()

	if err := logger.Initialize(cfg.Log.Level, cfg.Log.Format); err != nil {
		fmt.Fprintf(os.Stderr, "❌ 日志初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	gdb, err := db.InitDB()
	if err != nil {
		logger.Log.Fatalw("❌ 数据库初始化失败", "error", err)
	}
	defer func() { _ = db.Close() }()

	if cfg.Upload.Driver == "" || cfg.Upload.Driver == "local" {
		checkSecurePath(cfg.Upload.Path)
	}
	store, err := storage.NewStore(context.Background(), cfg)
	if err != nil {
		logger.Log.Fatalw("❌ 附件存储初始化失败", "driver", cfg.Upload.Driver, "error", err)
	}
	fetcher := storage.NewHTTPFetcher(
		time.Duration(cfg.Upload.FetchTimeoutSec)*time.Second,
		int64(cfg.Upload.MaxRemoteSizeMB)*1024*1024,
	)

	redisClient := cache.NewRedisClient(cfg.Redis)
	defer func() { _ = redisClient.Close() }()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app, err := di.InitializeApplication(gdb, cfg, store, fetcher, redisClient, registry)
	if err != nil {
		logger.Log.Fatalw("❌ 依赖装配失败", "error", err)
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	applyTrustedProxies(r, cfg.Server.TrustedProxies)
	app.Router.Init(r)

	// 导出模式
	if *exportRoutes {
		exportAPI(r)
		return // 导出后直接退出程序，不启动 Web 服务
	}

	printWelcomeMessage()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Infow("🚀 服务启动成功", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalw("❌ 服务启动失败", "error", err)
		}
	}()

	// 等待中断信号关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("🛑 正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg.Server.ShutdownTimeoutMS))
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorw("❌ 服务强制关闭", "error", err)
		return
	}
	logger.Log.Info("✅ 服务已退出")
}

func shutdownTimeout(ms int) time.Duration {
	if ms <= 0 {
		return 5 * time.Second
	}
	return time.Duration(ms) * time.Millisecond
}

func printWelcomeMessage() {
	cfg := config.Get()

	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🚀  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  版本     : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   🗄️  存储驱动 : %s\n", cfg.Upload.Driver)
	fmt.Printf(" │   🔥  服务端口 : %s\n", cfg.Server.Port)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}

// splitTrustedProxyList 支持逗号、分号与空白分隔。
func splitTrustedProxyList(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
	})
}

// applyTrustedProxies 空值或存在无效项时不信任任何代理，ClientIP 直接取 RemoteAddr。
func applyTrustedProxies(r *gin.Engine, raw string) {
	proxies := splitTrustedProxyList(raw)
	for _, p := range proxies {
		if net.ParseIP(p) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(p); err != nil {
			logger.Log.Warnw("⚠️ 可信代理配置无效，已禁用代理信任", "value", p)
			proxies = nil
			break
		}
	}

	if len(proxies) == 0 {
		_ = r.SetTrustedProxies(nil)
		return
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		logger.Log.Warnw("⚠️ 设置可信代理失败，已禁用代理信任", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
}

func exportAPI(r *gin.Engine) {
	routes := r.Routes()

	// 简单的结构体，只留关键信息
	type RouteInfo struct {
		Method  string `json:"method"`
		Path    string `json:"path"`
		Handler string `json:"handler"`
	}

	var exportList []RouteInfo
	for _, route := range routes {
		exportList = append(exportList, RouteInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	file, _ := json.MarshalIndent(exportList, "", "  ")
	_ = os.WriteFile("routes.json", file, 0644)

	println("✅ 路由已成功导出到 routes.json")
}

func checkSecurePath(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		logger.Log.Fatalf("❌ 路径解析失败: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		logger.Log.Fatalf("❌ 无法获取当前工作目录: %v", err)
	}

	if err := validateSecurePath(path, absPath, cwd); err != nil {
		logger.Log.Fatal(err)
	}
}

// validateSecurePath 附件目录不能是项目根目录，位于项目内时必须在允许的子目录中。
func validateSecurePath(path, absPath, cwd string) error {
	if absPath == cwd {
		return fmt.Errorf("❌ 安全配置错误: 附件目录 '%s' 不能设置为项目根目录！这会导致源代码泄露。", path)
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil
	}

	// 统一路径分隔符为 / 方便匹配
	relSlash := filepath.ToSlash(rel)

	// 只有位于这些目录下的路径才被允许作为附件目录
	allowedDirs := []string{
		"uploads",
		"public",
		"assets",
		"static",
		"tmp",
	}

	firstComponent := strings.Split(relSlash, "/")[0]
	for _, allowed := range allowedDirs {
		if strings.EqualFold(firstComponent, allowed) {
			return nil
		}
	}
	return fmt.Errorf("❌ 安全配置错误: 附件目录 '%s' (解析为: '%s') 必须位于项目根目录下的安全子目录中 (如 %v)。", path, relSlash, allowedDirs)
}
