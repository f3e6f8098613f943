package handler

import (
	"fmt"
	"net/http"

	"stored-image-server/internal/modules/common/httpx"
	"stored-image-server/internal/projection"
	"stored-image-server/internal/session"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// ListImages 管理员看到 verified 与 unverified 两组，其他人只有 verified。
func (h *Handler) ListImages(c *gin.Context) {
	viewer := session.FromGin(c)
	images, err := h.imageService.Index(c.Request.Context(), ownerScope(c))
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to list images")
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": projection.Images(images, viewer)})
}

func (h *Handler) GetImage(c *gin.Context) {
	id, ok := requireImageID(c)
	if !ok {
		return
	}
	viewer := session.FromGin(c)
	img, err := h.imageService.Show(c.Request.Context(), viewer, id, ownerScope(c))
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to load image")
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": projection.Image(img, viewer)})
}

// GetImageContent 通过 API 输出附件字节，适用于 S3 等不经本地静态目录的存储。
func (h *Handler) GetImageContent(c *gin.Context) {
	id, ok := requireImageID(c)
	if !ok {
		return
	}
	img, data, err := h.imageService.Content(c.Request.Context(), session.FromGin(c), id, ownerScope(c))
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to load image content")
		return
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}
	// 可见性依赖当前身份，不允许共享缓存
	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, contentType, data)
}

func (h *Handler) CreateImage(c *gin.Context) {
	in, err := bindImageInput(c)
	if err != nil {
		httpx.WriteErrors(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	viewer := session.FromGin(c)
	img, err := h.imageService.Create(c.Request.Context(), viewer, in)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to create image")
		return
	}
	c.Header("Location", fmt.Sprintf("/stored_images/%d", img.ID))
	c.JSON(http.StatusCreated, gin.H{"image": projection.Image(img, viewer)})
}

func (h *Handler) UpdateImage(c *gin.Context) {
	id, ok := requireImageID(c)
	if !ok {
		return
	}
	in, err := bindImageInput(c)
	if err != nil {
		httpx.WriteErrors(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	viewer := session.FromGin(c)
	img, err := h.imageService.Update(c.Request.Context(), viewer, id, ownerScope(c), in)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to update image")
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": projection.Image(img, viewer)})
}

func (h *Handler) DeleteImage(c *gin.Context) {
	id, ok := requireImageID(c)
	if !ok {
		return
	}
	if err := h.imageService.Destroy(c.Request.Context(), session.FromGin(c), id, ownerScope(c)); err != nil {
		httpx.WriteServiceError(c, err, "Failed to delete image")
		return
	}
	c.Status(http.StatusNoContent)
}
