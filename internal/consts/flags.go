package consts

// 保留的账号标记名称
const (
	FlagBanned              = "BANNED"
	FlagSuspended           = "SUSPENDED"
	FlagSuspensionClearDate = "SUSPENSION_CLEAR_DATE"
	FlagLastLogin           = "LAST_LOGIN"
	FlagDelete              = "DELETE"
	FlagHistory             = "HISTORY"
)
