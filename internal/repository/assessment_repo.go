package repository

import (
	"context"

	"gorm.io/gorm"

	"edusync/backend/internal/model"
)

// AssessmentRepository assessment data access.
type AssessmentRepository interface {
	Create(ctx context.Context, a *model.Assessment) error
	GetByID(ctx context.Context, id string) (*model.Assessment, error)
	// List returns every assessment, or only those of courseID when set.
	List(ctx context.Context, courseID string) ([]model.Assessment, error)
	Update(ctx context.Context, a *model.Assessment) error
	// Delete removes the assessment and its results.
	Delete(ctx context.Context, id string) error
}

type assessmentRepo struct {
	db *gorm.DB
}

// NewAssessmentRepo creates the gorm AssessmentRepository.
func NewAssessmentRepo(db *gorm.DB) AssessmentRepository {
	return &assessmentRepo{db: db}
}

func (r *assessmentRepo) Create(ctx context.Context, a *model.Assessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assessmentRepo) GetByID(ctx context.Context, id string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.db.WithContext(ctx).
		Where("assessment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assessmentRepo) List(ctx context.Context, courseID string) ([]model.Assessment, error) {
	var list []model.Assessment
	db := r.db.WithContext(ctx)

	if courseID != "" {
		db = db.Where("course_id = ?", courseID)
	}

	err := db.Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *assessmentRepo) Update(ctx context.Context, a *model.Assessment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *assessmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", id).Delete(&model.Result{}).Error; err != nil {
			return err
		}
		return tx.Where("assessment_id = ?", id).Delete(&model.Assessment{}).Error
	})
}
