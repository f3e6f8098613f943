package dto

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupEnvelope {"user": {...}}
type SignupEnvelope struct {
	User SignupRequest `json:"user"`
}

type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type LoginEnvelope struct {
	User LoginRequest `json:"user"`
}
