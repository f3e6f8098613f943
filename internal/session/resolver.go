package session

import (
	"context"
	"errors"

	"stored-image-server/internal/logger"
	"stored-image-server/internal/model"
	"stored-image-server/internal/utils"

	"gorm.io/gorm"
)

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// Resolver 把已校验的凭证载荷解析为 Identity。
type Resolver struct {
	users UserFinder
}

func NewResolver(users UserFinder) *Resolver {
	return &Resolver{users: users}
}

// Resolve 凭证缺失或用户不存在时返回匿名身份。
func (r *Resolver) Resolve(ctx context.Context, claims *utils.LoginClaims) Identity {
	if claims == nil || claims.UserID == 0 {
		return Anonymous()
	}
	user, err := r.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Warnw("⚠️ 解析调用方身份失败", "user_id", claims.UserID, "error", err)
		}
		return Anonymous()
	}
	return ForUser(user)
}
