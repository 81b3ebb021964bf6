package model

import "time"

// Result maps the results table: one attempt by a student at an assessment.
type Result struct {
	ResultID     string    `gorm:"type:uuid;primaryKey"                      json:"result_id"`
	AssessmentID string    `gorm:"type:uuid;not null;index"                  json:"assessment_id"`
	UserID       string    `gorm:"type:uuid;not null;index"                  json:"user_id"`
	Score        int       `gorm:"not null"                                  json:"score"`
	AttemptDate  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"        json:"attempt_date"`
	BaseModel

	Assessment *Assessment `gorm:"foreignKey:AssessmentID;references:AssessmentID;constraint:OnDelete:CASCADE" json:"assessment,omitempty"`
	User       *User       `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"             json:"user,omitempty"`
}

// TableName results
func (Result) TableName() string { return "results" }
