package handler

import authservice "stored-image-server/internal/modules/auth/service"

// Handler 注册与登录接口，两者都不要求调用方已登录。
type Handler struct {
	authService *authservice.Service
}

func New(authService *authservice.Service) *Handler {
	return &Handler{authService: authService}
}
