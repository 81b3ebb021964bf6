package model

// Course maps the courses table. Deleting a course removes its assessments and their
// results; an instructor who still owns courses cannot be deleted.
type Course struct {
	CourseID     string `gorm:"type:uuid;primaryKey"                   json:"course_id"`
	Title        string `gorm:"type:varchar(200);not null"             json:"title"`
	Description  string `gorm:"type:text;not null;default:''"          json:"description"`
	InstructorID string `gorm:"type:uuid;not null;index"               json:"instructor_id"`
	MediaURL     string `gorm:"type:varchar(1024);not null;default:''" json:"media_url"`
	BaseModel

	Instructor *User `gorm:"foreignKey:InstructorID;references:UserID;constraint:OnDelete:RESTRICT" json:"instructor,omitempty"`
}

// TableName courses
func (Course) TableName() string { return "courses" }
