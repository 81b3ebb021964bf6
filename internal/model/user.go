package model

// User maps the users table.
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey"                          json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                    json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"        json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                    json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'Student'"   json:"role"`
	BaseModel
}

// TableName users
func (User) TableName() string { return "users" }
