package repo

import (
	"context"

	"stored-image-server/internal/model"

	"gorm.io/gorm"
)

type ImageStore interface {
	Create(ctx context.Context, image *model.StoredImage) error
	Save(ctx context.Context, image *model.StoredImage) error
	FindByID(ctx context.Context, id uint) (*model.StoredImage, error)
	List(ctx context.Context, ownerID *uint) ([]model.StoredImage, error)
	Delete(ctx context.Context, id uint) error
}

func NewImageRepository(db *gorm.DB) ImageStore {
	return &ImageRepository{db: db}
}
