package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stored-image-server/internal/config"
	"stored-image-server/internal/logger"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "stored_image"

// RedisClient 可选的 Redis 连接；未启用或不可用时 Client 为 nil，调用方降级为内存实现。
type RedisClient struct {
	Client *redis.Client
	prefix string
}

// NewRedisClient 按配置连接 Redis，连接失败只记录警告。
func NewRedisClient(cfg config.RedisConfig) *RedisClient {
	rc := &RedisClient{prefix: strings.TrimSpace(cfg.Prefix)}
	if rc.prefix == "" {
		rc.prefix = defaultPrefix
	}
	if !cfg.Enabled {
		return rc
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		logger.Log.Warnw("⚠️ Redis 不可用，降级为内存模式", "addr", cfg.Addr, "error", err)
		return rc
	}

	rc.Client = client
	logger.Log.Infow("✅ Redis 已连接", "addr", cfg.Addr, "db", cfg.DB)
	return rc
}

// Available 是否有可用连接。
func (r *RedisClient) Available() bool {
	return r != nil && r.Client != nil
}

// Key 基于前缀拼接键名，例如 stored_image:rate:login:1.2.3.4
func (r *RedisClient) Key(parts ...string) string {
	prefix := defaultPrefix
	if r != nil && r.prefix != "" {
		prefix = r.prefix
	}
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(parts, ":")
}

func (r *RedisClient) Close() error {
	if !r.Available() {
		return nil
	}
	if err := r.Client.Close(); err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}
