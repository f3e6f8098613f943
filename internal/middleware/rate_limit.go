package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"stored-image-server/internal/cache"
	"stored-image-server/internal/logger"
	"stored-image-server/internal/modules/common/httpx"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const msgTooManyRequests = "Too many requests, please try again later"

type IPRateLimiter struct {
	ips sync.Map
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		r: r,
		b: b,
	}

	go i.cleanupLoop()

	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double check
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	i.ips.Store(ip, &client{limiter: limiter, lastSeen: time.Now()})

	return limiter
}

func (i *IPRateLimiter) cleanupLoop() {
	for {
		time.Sleep(1 * time.Minute)
		i.ips.Range(func(key, value interface{}) bool {
			client := value.(*client)
			if time.Since(client.lastSeen) > 3*time.Minute {
				i.ips.Delete(key)
			}
			return true
		})
	}
}

// RateLimitPolicy 一组路由共用的限流参数。
type RateLimitPolicy struct {
	Name    string
	Enabled bool
	RPS     float64
	Burst   int
}

// RateLimitMiddleware 按客户端 IP 限流。
// Redis 可用时多实例共享计数，Redis 出错时退回进程内令牌桶。
func RateLimitMiddleware(policy RateLimitPolicy, redisClient *cache.RedisClient) gin.HandlerFunc {
	// 同一策略下的路由共用一个 IPRateLimiter 实例
	limiter := NewIPRateLimiter(rate.Limit(policy.RPS), policy.Burst)
	rpsKey := strconv.FormatFloat(policy.RPS, 'f', -1, 64)
	burstKey := strconv.Itoa(policy.Burst)

	return func(c *gin.Context) {
		if !policy.Enabled {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if redisClient.Available() {
			ok, err := allowByRedisRateLimit(redisClient.Client, redisClient.Key("rate", policy.Name), rpsKey, burstKey, ip, policy.RPS, policy.Burst)
			if err == nil {
				if !ok {
					rejectTooManyRequests(c)
					return
				}
				c.Next()
				return
			}
			logger.Log.Warnw("⚠️ Redis 限流失败，回退到本地限流", "policy", policy.Name, "error", err)
		}

		if !limiter.getLimiter(ip).Allow() {
			rejectTooManyRequests(c)
			return
		}
		c.Next()
	}
}

func rejectTooManyRequests(c *gin.Context) {
	httpx.WriteErrors(c, http.StatusTooManyRequests, msgTooManyRequests)
	c.Abort()
}

// allowByRedisRateLimit 固定窗口计数：每个窗口最多 burst 次，窗口长度为 burst/rps 秒。
// rps 或 burst 不大于 0 时视为未启用。
func allowByRedisRateLimit(client *redis.Client, prefix, rpsKey, burstKey, ip string, rps float64, burst int) (bool, error) {
	if rps <= 0 || burst <= 0 {
		return true, nil
	}
	if client == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	window := time.Duration(math.Ceil(float64(burst) / rps * float64(time.Second)))
	if window < time.Millisecond {
		window = time.Millisecond
	}
	key := fmt.Sprintf("%s:%s:%s:%s", prefix, rpsKey, burstKey, ip)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	pipe := client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.PExpire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(burst), nil
}
