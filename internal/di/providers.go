package di

import (
	"time"

	"stored-image-server/internal/cache"
	"stored-image-server/internal/config"
	"stored-image-server/internal/metrics"
	userrepo "stored-image-server/internal/modules/user/repo"
	"stored-image-server/internal/router"
	"stored-image-server/internal/session"
	"stored-image-server/internal/storage"
	"stored-image-server/internal/utils"

	"github.com/prometheus/client_golang/prometheus"
)

func provideTokenSigner(cfg config.Config) *utils.TokenSigner {
	return utils.NewTokenSigner(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpirationHours)*time.Hour)
}

func provideMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New(reg)
}

func provideResolver(users userrepo.UserStore) *session.Resolver {
	return session.NewResolver(users)
}

// provideRouterOptions 只有本地存储需要挂载静态附件目录。
func provideRouterOptions(
	cfg config.Config,
	signer *utils.TokenSigner,
	resolver *session.Resolver,
	redisClient *cache.RedisClient,
	m *metrics.Metrics,
	reg *prometheus.Registry,
	store storage.Store,
) router.Options {
	opts := router.Options{
		Config:   cfg,
		Signer:   signer,
		Resolver: resolver,
		Redis:    redisClient,
		Metrics:  m,
		Gatherer: reg,
	}
	if local, ok := store.(*storage.LocalStore); ok {
		opts.LocalRoot = local.Root()
	}
	return opts
}
