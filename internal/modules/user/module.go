package user

import (
	"stored-image-server/internal/metrics"
	"stored-image-server/internal/modules/user/handler"
	"stored-image-server/internal/modules/user/repo"
	"stored-image-server/internal/modules/user/service"
	platformservice "stored-image-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, userStore repo.UserStore, m *metrics.Metrics) *Module {
	moduleService := service.New(appService, userStore, m)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
