package dto

// CreateUserRequest POST /api/Users. Instructors add accounts for others;
// unlike register, no token is issued.
type CreateUserRequest struct {
	Name     string `json:"name"     binding:"required,notblank,max=100"`
	Email    string `json:"email"    binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role"     binding:"required,oneof=Student Instructor"`
}

// UpdateUserRequest PUT /api/Users/:id. Password is optional; when set the
// stored hash is replaced.
type UpdateUserRequest struct {
	UserID   string `json:"userId"   binding:"required,uuid"`
	Name     string `json:"name"     binding:"required,notblank,max=100"`
	Email    string `json:"email"    binding:"required,email,max=255"`
	Role     string `json:"role"     binding:"required,oneof=Student Instructor"`
	Password string `json:"password" binding:"omitempty,min=6,max=72"`
}

// UserResponse user DTO. The password hash is never exposed.
type UserResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
