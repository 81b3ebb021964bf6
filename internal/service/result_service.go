package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"edusync/backend/internal/dto"
	"edusync/backend/internal/model"
	"edusync/backend/internal/policy"
	"edusync/backend/internal/repository"
	apperrors "edusync/backend/pkg/errors"
)

var ErrResultNotFound = errors.New("result not found")

// ResultService assessment attempts. Students record and read their own
// results; the instructor owning the course may correct or remove them.
type ResultService interface {
	List(ctx context.Context, req *dto.ResultListRequest, caller policy.Identity) ([]dto.ResultResponse, error)
	GetByID(ctx context.Context, id string, caller policy.Identity) (*dto.ResultResponse, error)
	Create(ctx context.Context, req *dto.CreateResultRequest, caller policy.Identity) (*dto.ResultResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateResultRequest, caller policy.Identity) error
	Delete(ctx context.Context, id string, caller policy.Identity) error
}

type resultService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewResultService creates a ResultService.
func NewResultService(repo *repository.Repository, logger *zap.Logger) ResultService {
	return &resultService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *resultService) List(ctx context.Context, req *dto.ResultListRequest, caller policy.Identity) ([]dto.ResultResponse, error) {
	if err := policy.Authorize(policy.Request{Caller: caller}); err != nil {
		return nil, err
	}

	filter := repository.ResultFilter{AssessmentID: strings.ToLower(req.AssessmentID)}
	if caller.Role != model.RoleInstructor {
		filter.UserID = caller.UserID
	}

	list, err := s.repo.Result.List(ctx, filter)
	if err != nil {
		s.logger.Error("list results failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ResultResponse, 0, len(list))
	for i := range list {
		result = append(result, *toResultResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *resultService) GetByID(ctx context.Context, id string, caller policy.Identity) (*dto.ResultResponse, error) {
	res, err := s.getResult(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller.Role != model.RoleInstructor {
		if err := policy.Authorize(policy.Request{Caller: caller, OwnerID: res.UserID}); err != nil {
			return nil, err
		}
	}

	return toResultResponse(res), nil
}

// ────────────────────── Create ──────────────────────

func (s *resultService) Create(ctx context.Context, req *dto.CreateResultRequest, caller policy.Identity) (*dto.ResultResponse, error) {
	if err := policy.Authorize(policy.Request{Caller: caller, RequiredRole: model.RoleStudent}); err != nil {
		return nil, err
	}

	a, err := s.repo.Assessment.GetByID(ctx, strings.ToLower(req.AssessmentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewValidationError("assessmentId", "assessmentId must reference an existing assessment")
		}
		s.logger.Error("get assessment failed", zap.String("id", req.AssessmentID), zap.Error(err))
		return nil, err
	}

	if err := checkScore(*req.Score, a.MaxScore); err != nil {
		return nil, err
	}

	res := &model.Result{
		ResultID:     uuid.NewString(),
		AssessmentID: a.AssessmentID,
		UserID:       caller.UserID,
		Score:        *req.Score,
		AttemptDate:  attemptDate(req.AttemptDate),
	}

	if err := s.repo.Result.Create(ctx, res); err != nil {
		s.logger.Error("create result failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("result recorded",
		zap.String("result_id", res.ResultID),
		zap.String("assessment_id", res.AssessmentID),
		zap.String("user_id", res.UserID),
	)
	return toResultResponse(res), nil
}

// ────────────────────── Update ──────────────────────

func (s *resultService) Update(ctx context.Context, id string, req *dto.UpdateResultRequest, caller policy.Identity) error {
	if !strings.EqualFold(id, req.ResultID) {
		return ErrIDMismatch
	}

	res, err := s.getResult(ctx, id)
	if err != nil {
		return err
	}

	a, err := s.authorizeCorrection(ctx, res, caller)
	if err != nil {
		return err
	}

	if err := checkScore(*req.Score, a.MaxScore); err != nil {
		return err
	}

	res.Score = *req.Score
	res.AttemptDate = attemptDate(req.AttemptDate)

	if err := s.repo.Result.Update(ctx, res); err != nil {
		s.logger.Error("update result failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("result corrected", zap.String("id", id), zap.String("by", caller.UserID))
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *resultService) Delete(ctx context.Context, id string, caller policy.Identity) error {
	res, err := s.getResult(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.authorizeCorrection(ctx, res, caller); err != nil {
		return err
	}

	if err := s.repo.Result.Delete(ctx, id); err != nil {
		s.logger.Error("delete result failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("result deleted", zap.String("id", id), zap.String("by", caller.UserID))
	return nil
}

// ── helpers ──

func (s *resultService) getResult(ctx context.Context, id string) (*model.Result, error) {
	res, err := s.repo.Result.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get result failed", zap.String("id", id), zap.Error(err))
		}
		return nil, notFoundAs(err, ErrResultNotFound)
	}
	return res, nil
}

// authorizeCorrection allows only the instructor owning the result's course.
// It returns the result's assessment.
func (s *resultService) authorizeCorrection(ctx context.Context, res *model.Result, caller policy.Identity) (*model.Assessment, error) {
	a, err := s.repo.Assessment.GetByID(ctx, res.AssessmentID)
	if err != nil {
		s.logger.Error("get assessment failed", zap.String("id", res.AssessmentID), zap.Error(err))
		return nil, err
	}
	course, err := s.repo.Course.GetByID(ctx, a.CourseID)
	if err != nil {
		s.logger.Error("get course failed", zap.String("id", a.CourseID), zap.Error(err))
		return nil, err
	}

	err = policy.Authorize(policy.Request{
		Caller:       caller,
		RequiredRole: model.RoleInstructor,
		OwnerID:      course.InstructorID,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func checkScore(score, maxScore int) error {
	if score > maxScore {
		return apperrors.NewValidationError("score", fmt.Sprintf("score must not exceed maxScore (%d)", maxScore))
	}
	return nil
}

func attemptDate(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

func toResultResponse(r *model.Result) *dto.ResultResponse {
	return &dto.ResultResponse{
		ResultID:     r.ResultID,
		AssessmentID: r.AssessmentID,
		UserID:       r.UserID,
		Score:        r.Score,
		AttemptDate:  r.AttemptDate,
	}
}
