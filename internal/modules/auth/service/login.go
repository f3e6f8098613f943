package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stored-image-server/internal/consts"
	"stored-image-server/internal/model"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/utils"

	"gorm.io/gorm"
)

// Login 先按用户名、再按邮箱查找用户。
// 用户不存在与密码错误返回同一条信息。
func (s *Service) Login(ctx context.Context, usernameOrEmail, password string) (*model.User, string, error) {
	user, err := s.findByUsernameOrEmail(ctx, strings.TrimSpace(usernameOrEmail))
	if err != nil {
		s.metrics.Login("error")
		return nil, "", err
	}
	if user == nil || !utils.CheckPassword(user.PasswordDigest, password) {
		s.metrics.Login("not_found")
		return nil, "", platformservice.NewAuthenticationError(MsgUserNotFound)
	}

	if user.Flags.Enabled(consts.FlagBanned) {
		s.metrics.Login("banned")
		return nil, "", platformservice.NewForbiddenError(MsgUserBanned)
	}
	if user.Flags.Enabled(consts.FlagSuspended) {
		// 解封时间缺失或无法解析时视为仍在封禁期
		clearAt, ok := user.Flags.Time(consts.FlagSuspensionClearDate)
		if !ok || s.Now().Before(clearAt) {
			s.metrics.Login("suspended")
			return nil, "", platformservice.NewForbiddenError(MsgUserSuspended)
		}
		if err := s.userService.ClearFlag(ctx, user, consts.FlagSuspended); err != nil {
			return nil, "", err
		}
		if err := s.userService.ClearFlag(ctx, user, consts.FlagSuspensionClearDate); err != nil {
			return nil, "", err
		}
	}

	token, err := s.signer.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	if err := s.userService.SetFlag(ctx, user, consts.FlagLastLogin, s.Now()); err != nil {
		return nil, "", err
	}
	if err := s.userService.ClearFlag(ctx, user, consts.FlagLastLogin); err != nil {
		return nil, "", err
	}

	s.metrics.Login("success")
	return user, token, nil
}

// findByUsernameOrEmail 找不到时返回 nil, nil。
func (s *Service) findByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	if identifier == "" {
		return nil, nil
	}
	user, err := s.userService.FindByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user by username: %w", err)
	}

	user, err = s.userService.FindByEmail(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return nil, nil
}
