package dto

// ── auth requests ──

// RegisterRequest POST /api/Auth/register
type RegisterRequest struct {
	Name     string `json:"name"     binding:"required,notblank,max=100"`
	Email    string `json:"email"    binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role"     binding:"required,oneof=Student Instructor"`
}

// LoginRequest POST /api/Auth/login
type LoginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}
