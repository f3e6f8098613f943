package dto

// FlagAssignment setFlags 中的一项。
type FlagAssignment struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// UpdateUserRequest 只接受这些字段，id、created_at、updated_at、is_admin 等其余字段在解码时被丢弃。
type UpdateUserRequest struct {
	Username   *string          `json:"username"`
	Email      *string          `json:"email"`
	Password   *string          `json:"password"`
	SetFlags   []FlagAssignment `json:"setFlags"`
	ClearFlags []string         `json:"clearFlags"`
}

// HasOrdinaryFields 是否包含仅本人可改的字段。
func (r UpdateUserRequest) HasOrdinaryFields() bool {
	return r.Username != nil || r.Email != nil || r.Password != nil
}

func (r UpdateUserRequest) HasFlagBatch() bool {
	return len(r.SetFlags) > 0 || len(r.ClearFlags) > 0
}

// UpdateUserEnvelope {"user": {...}}
type UpdateUserEnvelope struct {
	User UpdateUserRequest `json:"user"`
}
