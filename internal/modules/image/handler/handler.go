package handler

import imageservice "stored-image-server/internal/modules/image/service"

// Handler 平铺与按用户嵌套的 stored_images 路由共用同一组处理函数。
type Handler struct {
	imageService *imageservice.Service
}

func New(imageService *imageservice.Service) *Handler {
	return &Handler{imageService: imageService}
}
