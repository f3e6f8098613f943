package repo

import (
	"context"
	"fmt"

	"stored-image-server/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FieldExists excludeUserID 非空时排除该用户自身。
func (r *UserRepository) FieldExists(ctx context.Context, field UserField, value string, excludeUserID *uint) (bool, error) {
	if !field.Valid() {
		return false, fmt.Errorf("unsupported user field %q", field)
	}
	query := r.db.WithContext(ctx).Model(&model.User{})
	if excludeUserID != nil {
		query = query.Where("id <> ?", *excludeUserID)
	}

	var count int64
	if err := query.Where(string(field)+" = ?", value).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 按 id 升序返回全部用户。
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Save 一次写入整条记录。
func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// UpdateFlags 只写 flags 列，不触发钩子也不更新 updated_at。
func (r *UserRepository) UpdateFlags(ctx context.Context, userID uint, flags model.Flags) error {
	tx := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).UpdateColumn("flags", flags)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteDetachingImages 删除用户，其图片保留并变为无主。
func (r *UserRepository) DeleteDetachingImages(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.StoredImage{}).Where("user_id = ?", userID).
			UpdateColumn("user_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.User{}, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
