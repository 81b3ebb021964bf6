package dto

// ── auth responses ──

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  AuthUserInfo `json:"user"`
}

// AuthUserInfo is the user summary embedded in AuthResponse.
type AuthUserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
