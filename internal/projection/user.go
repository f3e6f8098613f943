package projection

import (
	"stored-image-server/internal/model"
	"stored-image-server/internal/session"
)

// UserView 用户对外的 JSON 形状。id、时间戳与密码摘要永不输出。
type UserView struct {
	Username string       `json:"username"`
	Email    *string      `json:"email,omitempty"`
	IsAdmin  *bool        `json:"is_admin,omitempty"`
	Flags    *model.Flags `json:"flags,omitempty"`
}

// User 管理员或本人可以看到完整资料，其他人只看到用户名。
func User(u *model.User, viewer session.Identity) UserView {
	view := UserView{Username: u.Username}
	if viewer.IsAdmin() || viewer.IsUser(u.ID) {
		email := u.Email
		isAdmin := u.IsAdmin
		flags := u.Flags.Clone()
		view.Email = &email
		view.IsAdmin = &isAdmin
		view.Flags = &flags
	}
	return view
}

// Users 保持传入顺序，调用方负责按 id 升序查询。
func Users(users []model.User, viewer session.Identity) []UserView {
	out := make([]UserView, 0, len(users))
	for i := range users {
		out = append(out, User(&users[i], viewer))
	}
	return out
}
