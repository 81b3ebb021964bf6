package repository

import (
	"context"

	"gorm.io/gorm"

	"edusync/backend/internal/model"
)

// CourseRepository course data access.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	// Delete removes the course, its assessments and their results.
	Delete(ctx context.Context, id string) error
	CountByInstructor(ctx context.Context, instructorID string) (int64, error)
	CountByMediaURL(ctx context.Context, mediaURL string) (int64, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo creates the gorm CourseRepository.
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Order("title ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assessments := tx.Model(&model.Assessment{}).
			Select("assessment_id").
			Where("course_id = ?", id)

		if err := tx.Where("assessment_id IN (?)", assessments).Delete(&model.Result{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Assessment{}).Error; err != nil {
			return err
		}
		return tx.Where("course_id = ?", id).Delete(&model.Course{}).Error
	})
}

func (r *courseRepo) CountByInstructor(ctx context.Context, instructorID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("instructor_id = ?", instructorID).
		Count(&n).Error
	return n, err
}

func (r *courseRepo) CountByMediaURL(ctx context.Context, mediaURL string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("media_url = ?", mediaURL).
		Count(&n).Error
	return n, err
}
