package service

import (
	"context"
	"fmt"

	"stored-image-server/internal/consts"
	"stored-image-server/internal/model"
	moduledto "stored-image-server/internal/modules/auth/dto"
	userservice "stored-image-server/internal/modules/user/service"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/utils"
)

// Signup 校验并创建用户，签发凭证。
// 新账号创建时即带有一条 LAST_LOGIN 历史记录，当前值已清除。
func (s *Service) Signup(ctx context.Context, req moduledto.SignupRequest) (*model.User, string, error) {
	user := &model.User{Username: req.Username, Email: req.Email}
	userservice.NormalizeProfile(user)

	password := req.Password
	messages, err := s.userService.ValidateProfile(ctx, user, &password)
	if err != nil {
		return nil, "", err
	}
	if len(messages) > 0 {
		return nil, "", platformservice.NewValidationError(messages...)
	}

	digest, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user.PasswordDigest = digest

	now := s.Now()
	user.Flags.Set(consts.FlagLastLogin, now, now)
	user.Flags.Clear(consts.FlagLastLogin)

	if err := s.userService.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.signer.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}
