package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stored-image-server/internal/consts"
	"stored-image-server/internal/model"
	moduledto "stored-image-server/internal/modules/user/dto"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/session"
	"stored-image-server/internal/utils"

	"gorm.io/gorm"
)

// List 返回全部用户，按 id 升序。
func (s *Service) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Show 需要登录；只有管理员或本人可以查看完整资料。
func (s *Service) Show(ctx context.Context, viewer session.Identity, id uint) (*model.User, error) {
	if err := viewer.RequireLogin(); err != nil {
		return nil, err
	}
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.IsAdmin() && !viewer.IsUser(user.ID) {
		return nil, platformservice.NewForbiddenError(MsgShowForbidden)
	}
	return user, nil
}

// Update 资料更新。
//
// 先完成全部授权检查，再校验合并后的记录（仅当请求包含普通字段），最后一次 Save 写入普通字段与标记批次。
// 任一检查失败时记录保持原样，返回值中的用户为尝试之后（即未改变）的状态。
func (s *Service) Update(ctx context.Context, viewer session.Identity, id uint, req moduledto.UpdateUserRequest) (*model.User, error) {
	target, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	var forbidden []string
	if req.HasOrdinaryFields() && !viewer.IsUser(target.ID) {
		forbidden = append(forbidden, MsgUpdateForbidden)
	}
	if req.HasFlagBatch() {
		if _, err := viewer.RequireAdmin(); err != nil {
			forbidden = append(forbidden, MsgFlagsRequireAdmin)
		}
	}
	if len(forbidden) > 0 {
		return target, platformservice.NewForbiddenError(forbidden...)
	}
	if !req.HasOrdinaryFields() && !req.HasFlagBatch() {
		return target, nil
	}

	if messages := validateFlagBatch(req); len(messages) > 0 {
		return target, platformservice.NewValidationError(messages...)
	}

	updated := *target
	updated.Flags = target.Flags.Clone()
	// 只改标记时不重新校验未改动的资料字段
	if req.HasOrdinaryFields() {
		if req.Username != nil {
			updated.Username = *req.Username
		}
		if req.Email != nil {
			updated.Email = *req.Email
		}
		NormalizeProfile(&updated)

		messages, err := s.ValidateProfile(ctx, &updated, req.Password)
		if err != nil {
			return target, err
		}
		if len(messages) > 0 {
			return target, platformservice.NewValidationError(messages...)
		}
	}

	if req.Password != nil {
		digest, err := utils.HashPassword(*req.Password)
		if err != nil {
			return target, fmt.Errorf("hash password: %w", err)
		}
		updated.PasswordDigest = digest
	}

	now := s.Now()
	for _, assignment := range req.SetFlags {
		updated.Flags.Set(strings.TrimSpace(assignment.Name), assignment.Value, now)
	}
	for _, name := range req.ClearFlags {
		updated.Flags.Clear(strings.TrimSpace(name))
	}

	if err := s.userStore.Save(ctx, &updated); err != nil {
		return target, fmt.Errorf("save user %d: %w", target.ID, err)
	}
	for _, assignment := range req.SetFlags {
		s.metrics.FlagChanged(strings.TrimSpace(assignment.Name), "set")
	}
	for _, name := range req.ClearFlags {
		s.metrics.FlagChanged(strings.TrimSpace(name), "clear")
	}
	return &updated, nil
}

func validateFlagBatch(req moduledto.UpdateUserRequest) []string {
	var messages []string
	names := make([]string, 0, len(req.SetFlags)+len(req.ClearFlags))
	for _, assignment := range req.SetFlags {
		names = append(names, assignment.Name)
	}
	names = append(names, req.ClearFlags...)

	blank, reserved := false, false
	for _, name := range names {
		name = strings.TrimSpace(name)
		switch {
		case name == "" && !blank:
			blank = true
			messages = append(messages, "Flag name can't be blank")
		case name == consts.FlagHistory && !reserved:
			reserved = true
			messages = append(messages, "Flag HISTORY is reserved")
		}
	}
	return messages
}

// DeleteResult 两阶段删除的结果：Destroyed 为 false 时账号只是被标记。
type DeleteResult struct {
	User      *model.User
	Destroyed bool
}

// Delete 两阶段删除。第一次调用把 DELETE 标记设为操作者用户名，
// 标记已存在时才真正删除账号，账号名下图片保留为无主图片。
func (s *Service) Delete(ctx context.Context, viewer session.Identity, id uint) (*DeleteResult, error) {
	target, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.IsAdmin() && !viewer.IsUser(target.ID) {
		return nil, platformservice.NewForbiddenError(MsgDeleteForbidden)
	}

	if !target.Flags.Has(consts.FlagDelete) {
		if err := s.SetFlag(ctx, target, consts.FlagDelete, viewer.Username()); err != nil {
			return nil, err
		}
		return &DeleteResult{User: target}, nil
	}

	if err := s.userStore.DeleteDetachingImages(ctx, target.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError(MsgUserNotFound)
		}
		return nil, fmt.Errorf("delete user %d: %w", target.ID, err)
	}
	return &DeleteResult{User: target, Destroyed: true}, nil
}
