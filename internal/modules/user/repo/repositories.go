package repo

import (
	"context"

	"stored-image-server/internal/consts"
	"stored-image-server/internal/model"

	"gorm.io/gorm"
)

type UserField = consts.UserField

type UserStore interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FieldExists(ctx context.Context, field UserField, value string, excludeUserID *uint) (bool, error)
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	UpdateFlags(ctx context.Context, userID uint, flags model.Flags) error
	DeleteDetachingImages(ctx context.Context, userID uint) error
}

func NewUserRepository(db *gorm.DB) UserStore {
	return &UserRepository{db: db}
}
