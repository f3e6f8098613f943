package auth

import (
	"stored-image-server/internal/metrics"
	"stored-image-server/internal/modules/auth/handler"
	"stored-image-server/internal/modules/auth/service"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/utils"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, userService service.UserService, signer *utils.TokenSigner, m *metrics.Metrics) *Module {
	moduleService := service.New(appService, userService, signer, m)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
