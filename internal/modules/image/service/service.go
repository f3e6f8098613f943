package service

import (
	"context"
	"errors"
	"fmt"

	"stored-image-server/internal/logger"
	"stored-image-server/internal/metrics"
	"stored-image-server/internal/model"
	"stored-image-server/internal/modules/image/repo"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/storage"

	"gorm.io/gorm"
)

const (
	MsgImageNotFound        = "Image not found"
	MsgUpdateForbidden      = "Update action forbidden"
	MsgDeleteForbidden      = "Delete action forbidden"
	MsgViewOwnUnverified    = "May only view own unverified image"
	MsgURLUnsupportedType   = "Url does not point to an accepted image type"
	MsgURLTooLarge          = "Url image is too large"
	MsgURLUnreachable       = "Url could not be downloaded"
	MsgImageUnsupportedType = "Image is not an accepted image type"
	MsgImageBlank           = "Image can't be blank"
	MsgAttachmentNotFound   = "Image has no stored attachment"
)

type Service struct {
	*platformservice.AppService
	imageStore  repo.ImageStore
	attachments *storage.Attachments
	fetcher     storage.Fetcher
	metrics     *metrics.Metrics
}

func New(
	appService *platformservice.AppService,
	imageStore repo.ImageStore,
	attachments *storage.Attachments,
	fetcher storage.Fetcher,
	m *metrics.Metrics,
) *Service {
	return &Service{
		AppService:  appService,
		imageStore:  imageStore,
		attachments: attachments,
		fetcher:     fetcher,
		metrics:     m,
	}
}

// loadImage ownerScope 非空时（嵌套路由）不属于该用户的图片视为不存在。
func (s *Service) loadImage(ctx context.Context, id uint, ownerScope *uint) (*model.StoredImage, error) {
	img, err := s.imageStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError(MsgImageNotFound)
		}
		return nil, fmt.Errorf("load image %d: %w", id, err)
	}
	if ownerScope != nil && !img.OwnedBy(*ownerScope) {
		return nil, platformservice.NewNotFoundError(MsgImageNotFound)
	}
	return img, nil
}

// purgeQuietly 附件清理失败只记录日志，不影响已经完成的数据库操作。
func (s *Service) purgeQuietly(ctx context.Context, key string) {
	if err := s.attachments.Purge(ctx, key); err != nil {
		logger.Log.Warnw("⚠️ 附件清理失败", "key", key, "error", err)
	}
}
