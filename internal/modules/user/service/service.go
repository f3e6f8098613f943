package service

import (
	"context"
	"errors"
	"fmt"

	"stored-image-server/internal/metrics"
	"stored-image-server/internal/model"
	"stored-image-server/internal/modules/user/repo"
	platformservice "stored-image-server/internal/platform/service"

	"gorm.io/gorm"
)

const (
	MsgUserNotFound      = "User not found"
	MsgUpdateForbidden   = "Update action forbidden"
	MsgFlagsRequireAdmin = "Must be logged in as admin to update flags"
	MsgDeleteForbidden   = "Delete action forbidden"
	MsgShowForbidden     = "Must be logged in as admin to view other's profile"
)

type Service struct {
	*platformservice.AppService
	userStore repo.UserStore
	metrics   *metrics.Metrics
}

func New(appService *platformservice.AppService, userStore repo.UserStore, m *metrics.Metrics) *Service {
	return &Service{
		AppService: appService,
		userStore:  userStore,
		metrics:    m,
	}
}

// loadUser 把 ErrRecordNotFound 转为 404。
func (s *Service) loadUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError(MsgUserNotFound)
		}
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return user, nil
}
