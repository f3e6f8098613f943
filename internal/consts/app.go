package consts

const (
	ApplicationName    = "Stored Image Server"
	ApplicationVersion = "v1.0.0"
)
