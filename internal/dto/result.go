package dto

import "time"

// CreateResultRequest POST /api/Results. The student is taken from the token.
type CreateResultRequest struct {
	AssessmentID string     `json:"assessmentId" binding:"required,uuid"`
	Score        *int       `json:"score"        binding:"required,min=0"`
	AttemptDate  *time.Time `json:"attemptDate"  binding:"required"`
}

// UpdateResultRequest PUT /api/Results/:id
type UpdateResultRequest struct {
	ResultID    string     `json:"resultId"    binding:"required,uuid"`
	Score       *int       `json:"score"       binding:"required,min=0"`
	AttemptDate *time.Time `json:"attemptDate" binding:"required"`
}

// ResultListRequest GET /api/Results
type ResultListRequest struct {
	AssessmentID string `form:"assessmentId" binding:"omitempty,uuid"`
}

// ResultResponse result DTO.
type ResultResponse struct {
	ResultID     string    `json:"resultId"`
	AssessmentID string    `json:"assessmentId"`
	UserID       string    `json:"userId"`
	Score        int       `json:"score"`
	AttemptDate  time.Time `json:"attemptDate"`
}
