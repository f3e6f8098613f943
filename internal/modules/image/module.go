package image

import (
	"stored-image-server/internal/metrics"
	"stored-image-server/internal/modules/image/handler"
	"stored-image-server/internal/modules/image/repo"
	"stored-image-server/internal/modules/image/service"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/storage"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(
	appService *platformservice.AppService,
	imageStore repo.ImageStore,
	attachments *storage.Attachments,
	fetcher storage.Fetcher,
	m *metrics.Metrics,
) *Module {
	moduleService := service.New(appService, imageStore, attachments, fetcher, m)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
