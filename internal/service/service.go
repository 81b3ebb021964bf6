package service

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"edusync/backend/config"
	"edusync/backend/internal/repository"
	apperrors "edusync/backend/pkg/errors"
	"edusync/backend/pkg/jwt"
	"edusync/backend/pkg/password"
	"edusync/backend/pkg/storage"
)

// ErrIDMismatch is returned by updates whose path id differs from the body id.
var ErrIDMismatch = errors.New("id in path does not match id in body")

// Service aggregates every business service.
type Service struct {
	Auth       AuthService
	User       UserService
	Course     CourseService
	Assessment AssessmentService
	Result     ResultService
	Media      MediaService
	Export     ExportService
}

// NewService wires services to their dependencies. store may be nil when no
// blob backend is configured; media endpoints then fail with
// ErrStorageUnavailable.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	hasher *password.Hasher,
	store storage.BlobStore,
	logger *zap.Logger,
) *Service {
	media := NewMediaService(&cfg.Storage, store, logger)
	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, hasher, logger),
		User:       NewUserService(repo, hasher, logger),
		Course:     NewCourseService(repo, media, logger),
		Assessment: NewAssessmentService(repo, logger),
		Result:     NewResultService(repo, logger),
		Media:      media,
		Export:     NewExportService(repo, logger),
	}
}

// notFoundAs maps gorm's missing-row error onto a module sentinel.
func notFoundAs(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// requireText trims value and reports field as missing when nothing is left.
func requireText(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", apperrors.NewValidationError(field, field+" is required")
	}
	return v, nil
}
