package service

import (
	"context"

	"stored-image-server/internal/metrics"
	"stored-image-server/internal/model"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/utils"
)

const (
	MsgUserNotFound  = "User not found"
	MsgUserBanned    = "User is BANNED"
	MsgUserSuspended = "User is SUSPENDED"
)

// UserService 由用户模块提供的查询、校验与标记能力。
type UserService interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ValidateProfile(ctx context.Context, user *model.User, password *string) ([]string, error)
	Create(ctx context.Context, user *model.User) error
	SetFlag(ctx context.Context, user *model.User, name string, value any) error
	ClearFlag(ctx context.Context, user *model.User, name string) error
}

type Service struct {
	*platformservice.AppService
	userService UserService
	signer      *utils.TokenSigner
	metrics     *metrics.Metrics
}

func New(appService *platformservice.AppService, userService UserService, signer *utils.TokenSigner, m *metrics.Metrics) *Service {
	return &Service{
		AppService:  appService,
		userService: userService,
		signer:      signer,
		metrics:     m,
	}
}
