package session

import (
	"stored-image-server/internal/model"
	platformservice "stored-image-server/internal/platform/service"
)

type Role int

const (
	RoleAnonymous Role = iota
	RoleRegular
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleRegular:
		return "regular"
	default:
		return "anonymous"
	}
}

const (
	MsgMustBeLoggedIn = "Must be logged in"
	MsgMustBeAdmin    = "Must be logged in as admin"
)

// Identity 单次请求的调用方：匿名、普通用户或管理员。
type Identity struct {
	role Role
	user *model.User
}

func Anonymous() Identity {
	return Identity{role: RoleAnonymous}
}

// ForUser 根据用户的 IsAdmin 决定身份；nil 视为匿名。
func ForUser(user *model.User) Identity {
	if user == nil {
		return Anonymous()
	}
	if user.IsAdmin {
		return Identity{role: RoleAdmin, user: user}
	}
	return Identity{role: RoleRegular, user: user}
}

func (i Identity) Role() Role {
	return i.role
}

// User 匿名时返回 nil。
func (i Identity) User() *model.User {
	return i.user
}

func (i Identity) UserID() uint {
	if i.user == nil {
		return 0
	}
	return i.user.ID
}

func (i Identity) Username() string {
	if i.user == nil {
		return ""
	}
	return i.user.Username
}

func (i Identity) IsAnonymous() bool {
	return i.role == RoleAnonymous || i.user == nil
}

func (i Identity) IsAdmin() bool {
	return i.role == RoleAdmin && i.user != nil
}

// IsUser 调用方是否就是指定账号。
func (i Identity) IsUser(id uint) bool {
	return !i.IsAnonymous() && id != 0 && i.user.ID == id
}

func (i Identity) RequireLogin() error {
	if i.IsAnonymous() {
		return platformservice.NewUnauthorizedError(MsgMustBeLoggedIn)
	}
	return nil
}

func (i Identity) RequireAdmin() (*model.User, error) {
	if !i.IsAdmin() {
		return nil, platformservice.NewForbiddenError(MsgMustBeAdmin)
	}
	return i.user, nil
}
