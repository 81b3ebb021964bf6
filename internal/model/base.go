package model

import "time"

// Role values stored in users.role.
const (
	RoleStudent    = "Student"
	RoleInstructor = "Instructor"
)

// BaseModel audit timestamps embedded by every table.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
