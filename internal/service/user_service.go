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
	"edusync/backend/pkg/password"
)

// ErrUserOwnsCourses blocks deleting an instructor who still has courses.
var ErrUserOwnsCourses = errors.New("user still owns courses")

// UserService user management. Users may only modify themselves.
type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	// Create adds an account on behalf of an instructor.
	Create(ctx context.Context, req *dto.CreateUserRequest, caller policy.Identity) (*dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, caller policy.Identity) error
	Delete(ctx context.Context, id string, caller policy.Identity) error
}

type userService struct {
	repo   *repository.Repository
	hasher *password.Hasher
	logger *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo *repository.Repository, hasher *password.Hasher, logger *zap.Logger) UserService {
	return &userService{repo: repo, hasher: hasher, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get user failed", zap.String("id", id), zap.Error(err))
		}
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	return toUserResponse(user), nil
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, caller policy.Identity) (*dto.UserResponse, error) {
	if err := policy.Authorize(policy.Request{Caller: caller, RequiredRole: model.RoleInstructor}); err != nil {
		return nil, err
	}

	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup user by email failed", zap.Error(err))
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		UserID:       uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		s.logger.Error("create user failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role),
		zap.String("by", caller.UserID),
	)
	return toUserResponse(user), nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, caller policy.Identity) error {
	if !strings.EqualFold(id, req.UserID) {
		return ErrIDMismatch
	}
	name, err := requireText("name", req.Name)
	if err != nil {
		return err
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get user failed", zap.String("id", id), zap.Error(err))
		}
		return notFoundAs(err, ErrUserNotFound)
	}

	if err := policy.Authorize(policy.Request{Caller: caller, OwnerID: user.UserID}); err != nil {
		return err
	}

	email := normalizeEmail(req.Email)
	if email != user.Email {
		other, err := s.repo.User.GetByEmail(ctx, email)
		switch {
		case err == nil && other.UserID != user.UserID:
			return ErrEmailExists
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			s.logger.Error("lookup user by email failed", zap.Error(err))
			return err
		}
	}

	if user.Role == model.RoleInstructor && req.Role != model.RoleInstructor {
		n, err := s.repo.Course.CountByInstructor(ctx, user.UserID)
		if err != nil {
			s.logger.Error("count instructor courses failed", zap.String("id", id), zap.Error(err))
			return err
		}
		if n > 0 {
			return apperrors.NewValidationError("role", "role cannot change while the user still owns courses")
		}
	}

	user.Name = name
	user.Email = email
	user.Role = req.Role

	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			s.logger.Error("hash password failed", zap.Error(err))
			return err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailExists
		}
		s.logger.Error("update user failed", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id string, caller policy.Identity) error {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get user failed", zap.String("id", id), zap.Error(err))
		}
		return notFoundAs(err, ErrUserNotFound)
	}

	if err := policy.Authorize(policy.Request{Caller: caller, OwnerID: user.UserID}); err != nil {
		return err
	}

	n, err := s.repo.Course.CountByInstructor(ctx, user.UserID)
	if err != nil {
		s.logger.Error("count instructor courses failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if n > 0 {
		return ErrUserOwnsCourses
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Error("delete user failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("user deleted", zap.String("id", id))
	return nil
}

// ── helpers ──

func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		UserID: u.UserID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
	}
}
