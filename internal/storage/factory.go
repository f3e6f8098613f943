package storage

import (
	"context"
	"fmt"

	"stored-image-server/internal/config"
)

// NewStore 按 upload.driver 选择存储后端。
func NewStore(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.Upload.Driver {
	case "", "local":
		return NewLocalStore(cfg.Upload.Path, cfg.Upload.URLPrefix)
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("不支持的存储驱动: %s", cfg.Upload.Driver)
	}
}
