package service

import (
	"context"

	"stored-image-server/internal/model"
)

// FindByID 提供跨模块用户查询能力，供会话解析使用。
func (s *Service) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return s.userStore.FindByID(ctx, id)
}

// FindByUsername 提供按用户名查询能力。
func (s *Service) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userStore.FindByUsername(ctx, username)
}

// FindByEmail 提供按邮箱查询能力。
func (s *Service) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userStore.FindByEmail(ctx, email)
}

// Create 提供用户创建能力，调用方负责先校验。
func (s *Service) Create(ctx context.Context, user *model.User) error {
	return s.userStore.Create(ctx, user)
}
