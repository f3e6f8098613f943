package modules

import (
	"stored-image-server/internal/metrics"
	"stored-image-server/internal/modules/auth"
	"stored-image-server/internal/modules/image"
	imagerepo "stored-image-server/internal/modules/image/repo"
	"stored-image-server/internal/modules/user"
	userrepo "stored-image-server/internal/modules/user/repo"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/storage"
	"stored-image-server/internal/utils"
)

type AppModules struct {
	Auth  *auth.Module
	User  *user.Module
	Image *image.Module
}

func New(
	appService *platformservice.AppService,
	userStore userrepo.UserStore,
	imageStore imagerepo.ImageStore,
	attachments *storage.Attachments,
	fetcher storage.Fetcher,
	signer *utils.TokenSigner,
	m *metrics.Metrics,
) *AppModules {
	userModule := user.New(appService, userStore, m)

	return &AppModules{
		Auth:  auth.New(appService, userModule.Service, signer, m),
		User:  userModule,
		Image: image.New(appService, imageStore, attachments, fetcher, m),
	}
}
