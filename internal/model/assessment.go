package model

// Assessment maps the assessments table. Questions is stored verbatim; the frontend
// sends a JSON document.
type Assessment struct {
	AssessmentID string `gorm:"type:uuid;primaryKey"           json:"assessment_id"`
	CourseID     string `gorm:"type:uuid;not null;index"       json:"course_id"`
	Title        string `gorm:"type:varchar(200);not null"     json:"title"`
	Questions    string `gorm:"type:text;not null"             json:"questions"`
	MaxScore     int    `gorm:"not null;default:100"           json:"max_score"`
	BaseModel

	Course *Course `gorm:"foreignKey:CourseID;references:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}

// TableName assessments
func (Assessment) TableName() string { return "assessments" }
