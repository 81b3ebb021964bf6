package repository

import (
	"context"

	"gorm.io/gorm"

	"edusync/backend/internal/model"
)

// ResultFilter narrows List. Empty fields are ignored.
type ResultFilter struct {
	UserID       string
	AssessmentID string
}

// ResultRepository result data access.
type ResultRepository interface {
	Create(ctx context.Context, res *model.Result) error
	GetByID(ctx context.Context, id string) (*model.Result, error)
	List(ctx context.Context, filter ResultFilter) ([]model.Result, error)
	// ListByCourse returns the course's results with Assessment and User loaded.
	ListByCourse(ctx context.Context, courseID string) ([]model.Result, error)
	// HighestScore returns the best recorded score, or 0 without results.
	HighestScore(ctx context.Context, assessmentID string) (int, error)
	Update(ctx context.Context, res *model.Result) error
	Delete(ctx context.Context, id string) error
}

type resultRepo struct {
	db *gorm.DB
}

// NewResultRepo creates the gorm ResultRepository.
func NewResultRepo(db *gorm.DB) ResultRepository {
	return &resultRepo{db: db}
}

func (r *resultRepo) Create(ctx context.Context, res *model.Result) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *resultRepo) GetByID(ctx context.Context, id string) (*model.Result, error) {
	var res model.Result
	err := r.db.WithContext(ctx).
		Where("result_id = ?", id).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resultRepo) List(ctx context.Context, filter ResultFilter) ([]model.Result, error) {
	var list []model.Result
	db := r.db.WithContext(ctx)

	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.AssessmentID != "" {
		db = db.Where("assessment_id = ?", filter.AssessmentID)
	}

	err := db.Order("attempt_date DESC").Find(&list).Error
	return list, err
}

func (r *resultRepo) ListByCourse(ctx context.Context, courseID string) ([]model.Result, error) {
	var list []model.Result
	err := r.db.WithContext(ctx).
		Joins("Assessment").
		Preload("User").
		Where(`"Assessment".course_id = ?`, courseID).
		Order(`"Assessment".title ASC, results.attempt_date ASC`).
		Find(&list).Error
	return list, err
}

func (r *resultRepo) Update(ctx context.Context, res *model.Result) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *resultRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("result_id = ?", id).
		Delete(&model.Result{}).Error
}

func (r *resultRepo) HighestScore(ctx context.Context, assessmentID string) (int, error) {
	var highest int
	err := r.db.WithContext(ctx).
		Model(&model.Result{}).
		Where("assessment_id = ?", assessmentID).
		Select("COALESCE(MAX(score), 0)").
		Scan(&highest).Error
	return highest, err
}
