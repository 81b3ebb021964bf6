package dto

// CreateAssessmentRequest POST /api/Assessments
type CreateAssessmentRequest struct {
	CourseID  string `json:"courseId"  binding:"required,uuid"`
	Title     string `json:"title"     binding:"required,notblank,max=200"`
	Questions string `json:"questions" binding:"required"`
	MaxScore  int    `json:"maxScore"  binding:"required,min=1"`
}

// UpdateAssessmentRequest PUT /api/Assessments/:id
type UpdateAssessmentRequest struct {
	AssessmentID string `json:"assessmentId" binding:"required,uuid"`
	CourseID     string `json:"courseId"     binding:"required,uuid"`
	Title        string `json:"title"        binding:"required,notblank,max=200"`
	Questions    string `json:"questions"    binding:"required"`
	MaxScore     int    `json:"maxScore"     binding:"required,min=1"`
}

// AssessmentListRequest GET /api/Assessments
type AssessmentListRequest struct {
	CourseID string `form:"courseId" binding:"omitempty,uuid"`
}

// AssessmentResponse assessment DTO.
type AssessmentResponse struct {
	AssessmentID string `json:"assessmentId"`
	CourseID     string `json:"courseId"`
	Title        string `json:"title"`
	Questions    string `json:"questions"`
	MaxScore     int    `json:"maxScore"`
}
