//go:build wireinject
// +build wireinject

package di

import (
	"stored-image-server/internal/cache"
	"stored-image-server/internal/config"
	"stored-image-server/internal/modules"
	imagerepo "stored-image-server/internal/modules/image/repo"
	userrepo "stored-image-server/internal/modules/user/repo"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/router"
	"stored-image-server/internal/storage"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

func InitializeApplication(
	gormDB *gorm.DB,
	cfg config.Config,
	store storage.Store,
	fetcher storage.Fetcher,
	redisClient *cache.RedisClient,
	registry *prometheus.Registry,
) (*Application, error) {
	wire.Build(
		userrepo.NewUserRepository,
		imagerepo.NewImageRepository,
		platformservice.NewAppService,
		storage.NewAttachments,
		provideTokenSigner,
		provideMetrics,
		provideResolver,
		modules.New,
		provideRouterOptions,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil
}
