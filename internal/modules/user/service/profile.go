package service

import (
	"context"
	"fmt"
	"strings"

	"stored-image-server/internal/consts"
	"stored-image-server/internal/model"
	"stored-image-server/internal/utils"
)

type profileFields struct {
	Username string `json:"username" validate:"required,min=2,clean"`
	Email    string `json:"email" validate:"required,email,clean"`
}

type passwordField struct {
	Password string `json:"password" validate:"required,min=3"`
}

// NormalizeProfile 去掉用户名与邮箱两端空白。
func NormalizeProfile(user *model.User) {
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.TrimSpace(user.Email)
}

// ValidateProfile 校验用户名、邮箱与（可选的）新密码，并检查唯一性。
// user.ID 非零时唯一性检查排除自身。返回的错误信息按字段顺序排列。
func (s *Service) ValidateProfile(ctx context.Context, user *model.User, password *string) ([]string, error) {
	messages := utils.ValidateStruct(profileFields{Username: user.Username, Email: user.Email})
	if password != nil {
		messages = append(messages, utils.ValidateStruct(passwordField{Password: *password})...)
	}

	var exclude *uint
	if user.ID != 0 {
		id := user.ID
		exclude = &id
	}
	checks := []struct {
		field consts.UserField
		value string
		msg   string
	}{
		{consts.UserFieldUsername, user.Username, "Username has already been taken"},
		{consts.UserFieldEmail, user.Email, "Email has already been taken"},
	}
	for _, check := range checks {
		if check.value == "" {
			continue
		}
		taken, err := s.userStore.FieldExists(ctx, check.field, check.value, exclude)
		if err != nil {
			return nil, fmt.Errorf("check %s uniqueness: %w", check.field, err)
		}
		if taken {
			messages = append(messages, check.msg)
		}
	}
	return messages, nil
}
