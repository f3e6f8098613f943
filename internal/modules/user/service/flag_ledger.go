package service

import (
	"context"
	"fmt"

	"stored-image-server/internal/model"
)

// SetFlag 设置标记并追加一条 HISTORY，随即只持久化 flags 列。
// 成功后 user.Flags 更新为新状态，失败时保持不变。
func (s *Service) SetFlag(ctx context.Context, user *model.User, name string, value any) error {
	flags := user.Flags.Clone()
	flags.Set(name, value, s.Now())
	if err := s.userStore.UpdateFlags(ctx, user.ID, flags); err != nil {
		return fmt.Errorf("set flag %s: %w", name, err)
	}
	user.Flags = flags
	s.metrics.FlagChanged(name, "set")
	return nil
}

// ClearFlag 清除标记的当前值，不写 HISTORY；标记不存在时什么也不做。
func (s *Service) ClearFlag(ctx context.Context, user *model.User, name string) error {
	if !user.Flags.Has(name) {
		return nil
	}
	flags := user.Flags.Clone()
	flags.Clear(name)
	if err := s.userStore.UpdateFlags(ctx, user.ID, flags); err != nil {
		return fmt.Errorf("clear flag %s: %w", name, err)
	}
	user.Flags = flags
	s.metrics.FlagChanged(name, "clear")
	return nil
}
