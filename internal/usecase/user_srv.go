package usecase

import (
	"context"
	"time"

	"queue-booking/internal/data/entity"
	"queue-booking/internal/data/repository"
	"queue-booking/internal/dto/response"
	"queue-booking/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	BecomeOrganization(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type userService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		users: users,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperrors.Internal("failed to find user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// BecomeOrganization promotes a regular user. The promotion happens at most
// once; a second call is a Conflict, not a no-op.
func (s *userService) BecomeOrganization(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperrors.Internal("failed to find user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}

	if user.IsOrganization {
		return nil, apperrors.Conflict("user is already an organization")
	}

	user.IsOrganization = true
	user.Role = entity.RoleOrganization
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		s.log.Error("Failed to promote user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperrors.Internal("failed to promote user", err)
	}

	s.log.Info("User became organization", zap.String("user_id", userID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}
