package dto

// CreateCourseRequest POST /api/Courses
type CreateCourseRequest struct {
	Title        string `json:"title"        binding:"required,notblank,max=200"`
	Description  string `json:"description"  binding:"max=4000"`
	InstructorID string `json:"instructorId" binding:"required,uuid"`
	MediaURL     string `json:"mediaUrl"     binding:"omitempty,url,max=1024"`
}

// UpdateCourseRequest PUT /api/Courses/:id
type UpdateCourseRequest struct {
	CourseID     string `json:"courseId"     binding:"required,uuid"`
	Title        string `json:"title"        binding:"required,notblank,max=200"`
	Description  string `json:"description"  binding:"max=4000"`
	InstructorID string `json:"instructorId" binding:"required,uuid"`
	MediaURL     string `json:"mediaUrl"     binding:"omitempty,url,max=1024"`
}

// CourseResponse course DTO.
type CourseResponse struct {
	CourseID     string `json:"courseId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	InstructorID string `json:"instructorId"`
	MediaURL     string `json:"mediaUrl"`
}
