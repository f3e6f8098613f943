package consts

// UserField 需要做唯一性检查的用户列。
type UserField string

const (
	UserFieldUsername UserField = "username"
	UserFieldEmail    UserField = "email"
)

// Valid 列名会直接拼进 SQL，只接受上面列出的值。
func (f UserField) Valid() bool {
	switch f {
	case UserFieldUsername, UserFieldEmail:
		return true
	default:
		return false
	}
}
