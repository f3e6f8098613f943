package repo

import (
	"context"

	"stored-image-server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ImageRepository struct {
	db *gorm.DB
}

func (r *ImageRepository) Create(ctx context.Context, image *model.StoredImage) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(image).Error
}

func (r *ImageRepository) Save(ctx context.Context, image *model.StoredImage) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(image).Error
}

// FindByID 同时预加载所有者。
func (r *ImageRepository) FindByID(ctx context.Context, id uint) (*model.StoredImage, error) {
	var image model.StoredImage
	if err := r.db.WithContext(ctx).Preload("User").First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// List 按存储顺序返回图片，ownerID 非空时只返回该用户的图片。
func (r *ImageRepository) List(ctx context.Context, ownerID *uint) ([]model.StoredImage, error) {
	query := r.db.WithContext(ctx).Preload("User").Order("id asc")
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}
	var images []model.StoredImage
	if err := query.Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.StoredImage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
