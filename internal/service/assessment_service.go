package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"edusync/backend/internal/dto"
	"edusync/backend/internal/model"
	"edusync/backend/internal/policy"
	"edusync/backend/internal/repository"
	apperrors "edusync/backend/pkg/errors"
)

var ErrAssessmentNotFound = errors.New("assessment not found")

// AssessmentService assessments belong to a course and are managed by that
// course's instructor.
type AssessmentService interface {
	List(ctx context.Context, courseID string) ([]dto.AssessmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AssessmentResponse, error)
	Create(ctx context.Context, req *dto.CreateAssessmentRequest, caller policy.Identity) (*dto.AssessmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAssessmentRequest, caller policy.Identity) error
	Delete(ctx context.Context, id string, caller policy.Identity) error
}

type assessmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssessmentService creates an AssessmentService.
func NewAssessmentService(repo *repository.Repository, logger *zap.Logger) AssessmentService {
	return &assessmentService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *assessmentService) List(ctx context.Context, courseID string) ([]dto.AssessmentResponse, error) {
	list, err := s.repo.Assessment.List(ctx, strings.ToLower(courseID))
	if err != nil {
		s.logger.Error("list assessments failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssessmentResponse, 0, len(list))
	for i := range list {
		result = append(result, *toAssessmentResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *assessmentService) GetByID(ctx context.Context, id string) (*dto.AssessmentResponse, error) {
	a, err := s.getAssessment(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAssessmentResponse(a), nil
}

// ────────────────────── Create ──────────────────────

func (s *assessmentService) Create(ctx context.Context, req *dto.CreateAssessmentRequest, caller policy.Identity) (*dto.AssessmentResponse, error) {
	title, err := requireText("title", req.Title)
	if err != nil {
		return nil, err
	}

	course, err := s.parentCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(caller, course); err != nil {
		return nil, err
	}

	a := &model.Assessment{
		AssessmentID: uuid.NewString(),
		CourseID:     course.CourseID,
		Title:        title,
		Questions:    req.Questions,
		MaxScore:     req.MaxScore,
	}

	if err := s.repo.Assessment.Create(ctx, a); err != nil {
		s.logger.Error("create assessment failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("assessment created", zap.String("assessment_id", a.AssessmentID), zap.String("course_id", a.CourseID))
	return toAssessmentResponse(a), nil
}

// ────────────────────── Update ──────────────────────

func (s *assessmentService) Update(ctx context.Context, id string, req *dto.UpdateAssessmentRequest, caller policy.Identity) error {
	if !strings.EqualFold(id, req.AssessmentID) {
		return ErrIDMismatch
	}
	title, err := requireText("title", req.Title)
	if err != nil {
		return err
	}

	a, err := s.getAssessment(ctx, id)
	if err != nil {
		return err
	}

	current, err := s.ownerCourse(ctx, a)
	if err != nil {
		return err
	}
	if err := s.authorize(caller, current); err != nil {
		return err
	}

	// Moving an assessment requires owning the target course too.
	if !strings.EqualFold(req.CourseID, a.CourseID) {
		target, err := s.parentCourse(ctx, req.CourseID)
		if err != nil {
			return err
		}
		if err := s.authorize(caller, target); err != nil {
			return err
		}
		a.CourseID = target.CourseID
	}

	if req.MaxScore < a.MaxScore {
		if err := s.checkRecordedScores(ctx, a.AssessmentID, req.MaxScore); err != nil {
			return err
		}
	}

	a.Title = title
	a.Questions = req.Questions
	a.MaxScore = req.MaxScore

	if err := s.repo.Assessment.Update(ctx, a); err != nil {
		s.logger.Error("update assessment failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *assessmentService) Delete(ctx context.Context, id string, caller policy.Identity) error {
	a, err := s.getAssessment(ctx, id)
	if err != nil {
		return err
	}

	course, err := s.ownerCourse(ctx, a)
	if err != nil {
		return err
	}
	if err := s.authorize(caller, course); err != nil {
		return err
	}

	if err := s.repo.Assessment.Delete(ctx, id); err != nil {
		s.logger.Error("delete assessment failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("assessment deleted", zap.String("id", id))
	return nil
}

// ── helpers ──

func (s *assessmentService) getAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	a, err := s.repo.Assessment.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get assessment failed", zap.String("id", id), zap.Error(err))
		}
		return nil, notFoundAs(err, ErrAssessmentNotFound)
	}
	return a, nil
}

// parentCourse resolves a course referenced from a request body. A missing
// course is a validation failure, not a 404.
func (s *assessmentService) parentCourse(ctx context.Context, courseID string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, strings.ToLower(courseID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewValidationError("courseId", "courseId must reference an existing course")
		}
		s.logger.Error("get course failed", zap.String("id", courseID), zap.Error(err))
		return nil, err
	}
	return course, nil
}

// ownerCourse loads the course an existing assessment belongs to.
func (s *assessmentService) ownerCourse(ctx context.Context, a *model.Assessment) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, a.CourseID)
	if err != nil {
		s.logger.Error("get parent course failed",
			zap.String("assessment_id", a.AssessmentID),
			zap.String("course_id", a.CourseID),
			zap.Error(err),
		)
		return nil, err
	}
	return course, nil
}

// checkRecordedScores keeps every stored result within a lowered maxScore.
func (s *assessmentService) checkRecordedScores(ctx context.Context, assessmentID string, maxScore int) error {
	highest, err := s.repo.Result.HighestScore(ctx, assessmentID)
	if err != nil {
		s.logger.Error("get highest score failed", zap.String("assessment_id", assessmentID), zap.Error(err))
		return err
	}
	if highest > maxScore {
		return apperrors.NewValidationError("maxScore",
			fmt.Sprintf("maxScore cannot be lower than a recorded score (%d)", highest))
	}
	return nil
}

func (s *assessmentService) authorize(caller policy.Identity, course *model.Course) error {
	return policy.Authorize(policy.Request{
		Caller:       caller,
		RequiredRole: model.RoleInstructor,
		OwnerID:      course.InstructorID,
	})
}

func toAssessmentResponse(a *model.Assessment) *dto.AssessmentResponse {
	return &dto.AssessmentResponse{
		AssessmentID: a.AssessmentID,
		CourseID:     a.CourseID,
		Title:        a.Title,
		Questions:    a.Questions,
		MaxScore:     a.MaxScore,
	}
}
