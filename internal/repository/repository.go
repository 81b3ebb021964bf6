package repository

import "gorm.io/gorm"

// Repository aggregates every data access interface.
type Repository struct {
	User       UserRepository
	Course     CourseRepository
	Assessment AssessmentRepository
	Result     ResultRepository
}

// NewRepository wires the gorm implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Course:     NewCourseRepo(db),
		Assessment: NewAssessmentRepo(db),
		Result:     NewResultRepo(db),
	}
}
