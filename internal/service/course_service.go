package service

import (
	"context"
	"errors"
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

var ErrCourseNotFound = errors.New("course not found")

// CourseService course catalogue. Mutations are restricted to the owning
// instructor.
type CourseService interface {
	List(ctx context.Context) ([]dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	Create(ctx context.Context, req *dto.CreateCourseRequest, caller policy.Identity) (*dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, caller policy.Identity) error
	Delete(ctx context.Context, id string, caller policy.Identity) error
}

// mediaRemover deletes blobs that are no longer referenced by a course.
type mediaRemover interface {
	Remove(ctx context.Context, mediaURL string) error
}

type courseService struct {
	repo   *repository.Repository
	media  mediaRemover
	logger *zap.Logger
}

// NewCourseService creates a CourseService. media may be nil.
func NewCourseService(repo *repository.Repository, media mediaRemover, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, media: media, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("list courses failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCourseResponse(course), nil
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, caller policy.Identity) (*dto.CourseResponse, error) {
	title, err := requireText("title", req.Title)
	if err != nil {
		return nil, err
	}

	instructorID := strings.ToLower(req.InstructorID)
	err = policy.Authorize(policy.Request{
		Caller:       caller,
		RequiredRole: model.RoleInstructor,
		OwnerID:      instructorID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.checkInstructor(ctx, instructorID); err != nil {
		return nil, err
	}

	course := &model.Course{
		CourseID:     uuid.NewString(),
		Title:        title,
		Description:  req.Description,
		InstructorID: instructorID,
		MediaURL:     req.MediaURL,
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("create course failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("course created", zap.String("course_id", course.CourseID), zap.String("instructor_id", course.InstructorID))
	return toCourseResponse(course), nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, caller policy.Identity) error {
	if !strings.EqualFold(id, req.CourseID) {
		return ErrIDMismatch
	}
	title, err := requireText("title", req.Title)
	if err != nil {
		return err
	}

	course, err := s.getCourse(ctx, id)
	if err != nil {
		return err
	}

	err = policy.Authorize(policy.Request{
		Caller:       caller,
		RequiredRole: model.RoleInstructor,
		OwnerID:      course.InstructorID,
	})
	if err != nil {
		return err
	}

	newInstructor := strings.ToLower(req.InstructorID)
	if newInstructor != course.InstructorID {
		if err := s.checkInstructor(ctx, newInstructor); err != nil {
			return err
		}
	}

	oldMedia := course.MediaURL
	course.Title = title
	course.Description = req.Description
	course.InstructorID = newInstructor
	course.MediaURL = req.MediaURL

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("update course failed", zap.String("id", id), zap.Error(err))
		return err
	}

	if oldMedia != "" && oldMedia != course.MediaURL {
		s.removeMedia(ctx, oldMedia)
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id string, caller policy.Identity) error {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return err
	}

	err = policy.Authorize(policy.Request{
		Caller:       caller,
		RequiredRole: model.RoleInstructor,
		OwnerID:      course.InstructorID,
	})
	if err != nil {
		return err
	}

	if err := s.repo.Course.Delete(ctx, id); err != nil {
		s.logger.Error("delete course failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("course deleted", zap.String("id", id))
	s.removeMedia(ctx, course.MediaURL)
	return nil
}

// ── helpers ──

func (s *courseService) getCourse(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get course failed", zap.String("id", id), zap.Error(err))
		}
		return nil, notFoundAs(err, ErrCourseNotFound)
	}
	return course, nil
}

// checkInstructor requires instructorID to reference a user with the
// Instructor role.
func (s *courseService) checkInstructor(ctx context.Context, instructorID string) error {
	user, err := s.repo.User.GetByID(ctx, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewValidationError("instructorId", "instructorId must reference an existing user")
		}
		s.logger.Error("get instructor failed", zap.String("id", instructorID), zap.Error(err))
		return err
	}
	if user.Role != model.RoleInstructor {
		return apperrors.NewValidationError("instructorId", "instructorId must reference a user with the Instructor role")
	}
	return nil
}

// removeMedia deletes a blob once no course references its URL. Failures are
// logged only.
func (s *courseService) removeMedia(ctx context.Context, mediaURL string) {
	if s.media == nil || mediaURL == "" {
		return
	}

	ctx = context.WithoutCancel(ctx)
	n, err := s.repo.Course.CountByMediaURL(ctx, mediaURL)
	if err != nil {
		s.logger.Warn("count media references failed", zap.String("url", mediaURL), zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Debug("course media still referenced", zap.String("url", mediaURL), zap.Int64("courses", n))
		return
	}

	if err := s.media.Remove(ctx, mediaURL); err != nil {
		s.logger.Warn("remove course media failed", zap.String("url", mediaURL), zap.Error(err))
	}
}

func toCourseResponse(c *model.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		CourseID:     c.CourseID,
		Title:        c.Title,
		Description:  c.Description,
		InstructorID: c.InstructorID,
		MediaURL:     c.MediaURL,
	}
}
