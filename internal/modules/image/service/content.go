package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stored-image-server/internal/logger"
	"stored-image-server/internal/model"
	moduledto "stored-image-server/internal/modules/image/dto"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/storage"
	"stored-image-server/internal/utils"
)

type urlField struct {
	URL string `json:"url" validate:"required,http_url,clean_url"`
}

// preparedContent 已保存但尚未写入记录的新内容。
type preparedContent struct {
	url        string
	attachment *storage.Attachment
}

func (p *preparedContent) applyTo(img *model.StoredImage) {
	url := p.url
	img.URL = &url
	img.AttachmentKey = p.attachment.Key
	img.ContentType = p.attachment.ContentType
	img.Filename = p.attachment.Filename
	img.Verified = false
}

// prepareContent 保存上传内容，或校验并下载外部 URL。
// 上传时 url 为本地附件路径，外部 URL 时保留原 URL。
func (s *Service) prepareContent(ctx context.Context, in moduledto.ImageInput) (*preparedContent, error) {
	if in.Upload != nil {
		attachment, err := s.attachments.Attach(ctx, in.Upload.Filename, in.Upload.Content)
		if err != nil {
			return nil, attachError(err, MsgImageUnsupportedType)
		}
		return &preparedContent{url: attachment.URL, attachment: attachment}, nil
	}

	raw := strings.TrimSpace(*in.URL)
	if messages := utils.ValidateStruct(urlField{URL: raw}); len(messages) > 0 {
		return nil, platformservice.NewValidationError(messages...)
	}

	remote, err := s.fetcher.Fetch(ctx, raw)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, platformservice.NewValidationError(MsgURLTooLarge)
		}
		logger.Log.Infow("远程图片下载失败", "url", raw, "error", err)
		return nil, platformservice.NewValidationError(MsgURLUnreachable)
	}

	attachment, err := s.attachments.Attach(ctx, remote.Filename, remote.Content)
	if err != nil {
		return nil, attachError(err, MsgURLUnsupportedType)
	}
	return &preparedContent{url: raw, attachment: attachment}, nil
}

func attachError(err error, unsupported string) error {
	switch {
	case errors.Is(err, storage.ErrUnsupportedType):
		return platformservice.NewValidationError(unsupported)
	case errors.Is(err, storage.ErrEmptyContent):
		return platformservice.NewValidationError(MsgImageBlank)
	default:
		return fmt.Errorf("attach image: %w", err)
	}
}
