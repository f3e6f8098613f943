package service

import (
	"context"
	"errors"
	"fmt"

	"stored-image-server/internal/model"
	moduledto "stored-image-server/internal/modules/image/dto"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/session"
	"stored-image-server/internal/storage"
)

// Index 按存储顺序返回图片，可见性由投影层按调用方分区。
func (s *Service) Index(ctx context.Context, ownerScope *uint) ([]model.StoredImage, error) {
	images, err := s.imageStore.List(ctx, ownerScope)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return images, nil
}

// Show 需要登录。管理员可看任意图片，其他人只能看已审核或自己的图片。
func (s *Service) Show(ctx context.Context, viewer session.Identity, id uint, ownerScope *uint) (*model.StoredImage, error) {
	if err := viewer.RequireLogin(); err != nil {
		return nil, err
	}
	img, err := s.loadImage(ctx, id, ownerScope)
	if err != nil {
		return nil, err
	}
	if viewer.IsAdmin() || img.Verified || img.OwnedBy(viewer.UserID()) {
		return img, nil
	}
	return nil, platformservice.NewForbiddenError(MsgViewOwnUnverified)
}

// Content 读取附件原始字节，可见性与 Show 相同。没有内容的占位图片返回 not_found。
func (s *Service) Content(ctx context.Context, viewer session.Identity, id uint, ownerScope *uint) (*model.StoredImage, []byte, error) {
	img, err := s.Show(ctx, viewer, id, ownerScope)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.attachments.Download(ctx, img.AttachmentKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, platformservice.NewNotFoundError(MsgAttachmentNotFound)
		}
		return nil, nil, fmt.Errorf("download attachment %q: %w", img.AttachmentKey, err)
	}
	return img, data, nil
}

// Create 所有者总是当前登录用户，新图片未审核。
func (s *Service) Create(ctx context.Context, viewer session.Identity, in moduledto.ImageInput) (*model.StoredImage, error) {
	if err := viewer.RequireLogin(); err != nil {
		return nil, err
	}
	ownerID := viewer.UserID()
	img := &model.StoredImage{UserID: &ownerID}

	if in.ChangesContent() {
		content, err := s.prepareContent(ctx, in)
		if err != nil {
			return nil, err
		}
		content.applyTo(img)
	}

	if err := s.imageStore.Create(ctx, img); err != nil {
		s.purgeQuietly(ctx, img.AttachmentKey)
		return nil, fmt.Errorf("create image: %w", err)
	}
	img.User = viewer.User()
	s.metrics.ImageAction("create")
	return img, nil
}

// Update 修改内容只允许所有者，修改 verified 只允许管理员。
// 新内容在写入记录之前准备好，任何失败都保持原状态；内容变化总会把 verified 置为 false。
func (s *Service) Update(ctx context.Context, viewer session.Identity, id uint, ownerScope *uint, in moduledto.ImageInput) (*model.StoredImage, error) {
	if err := viewer.RequireLogin(); err != nil {
		return nil, err
	}
	img, err := s.loadImage(ctx, id, ownerScope)
	if err != nil {
		return nil, err
	}

	contentChange := in.ChangesContent()
	if contentChange && !img.OwnedBy(viewer.UserID()) {
		return nil, platformservice.NewForbiddenError(MsgUpdateForbidden)
	}
	if in.Verified != nil && !viewer.IsAdmin() {
		return nil, platformservice.NewForbiddenError(MsgUpdateForbidden)
	}
	if !contentChange && in.Verified == nil {
		return img, nil
	}

	updated := *img
	var content *preparedContent
	if contentChange {
		content, err = s.prepareContent(ctx, in)
		if err != nil {
			return nil, err
		}
		content.applyTo(&updated)
	} else {
		updated.Verified = *in.Verified
	}

	if err := s.imageStore.Save(ctx, &updated); err != nil {
		if content != nil {
			s.purgeQuietly(ctx, content.attachment.Key)
		}
		return nil, fmt.Errorf("save image %d: %w", img.ID, err)
	}

	if contentChange {
		if img.AttachmentKey != "" && img.AttachmentKey != updated.AttachmentKey {
			s.purgeQuietly(ctx, img.AttachmentKey)
		}
		s.metrics.ImageAction("replace")
	} else if updated.Verified {
		s.metrics.ImageAction("verify")
	} else {
		s.metrics.ImageAction("unverify")
	}
	return &updated, nil
}

// Destroy 所有者或管理员可以删除，记录删除后清理附件。
func (s *Service) Destroy(ctx context.Context, viewer session.Identity, id uint, ownerScope *uint) error {
	if err := viewer.RequireLogin(); err != nil {
		return err
	}
	img, err := s.loadImage(ctx, id, ownerScope)
	if err != nil {
		return err
	}
	if !viewer.IsAdmin() && !img.OwnedBy(viewer.UserID()) {
		return platformservice.NewForbiddenError(MsgDeleteForbidden)
	}

	if err := s.imageStore.Delete(ctx, img.ID); err != nil {
		return fmt.Errorf("delete image %d: %w", img.ID, err)
	}
	s.purgeQuietly(ctx, img.AttachmentKey)
	s.metrics.ImageAction("destroy")
	return nil
}
