package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"queue-booking/internal/data/entity"
	"queue-booking/internal/data/repository"
	"queue-booking/internal/dto/request"
	"queue-booking/internal/dto/response"
	"queue-booking/pkg/apperrors"
	"queue-booking/pkg/mailer"
	"queue-booking/pkg/token"
	"queue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error)
	VerifyEmail(ctx context.Context, tokenString string) (string, error)
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	tokens *token.JWTService
	mail   mailer.Mailer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	tokens *token.JWTService,
	mail mailer.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		tokens: tokens,
		mail:   mail,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Check email is not taken yet. The unique constraint on users.email
	// is the real guard; this read only produces the friendly message.
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, apperrors.Internal("failed to check email", err)
	}
	if existingUser != nil {
		return nil, apperrors.Conflict("email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperrors.Internal("failed to process password", err)
	}

	role := entity.RoleUser
	if req.IsOrganization {
		role = entity.RoleOrganization
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:          req.Email,
		PasswordHash:   hashedPassword,
		FullName:       req.FullName,
		IsVerified:     false,
		IsOrganization: req.IsOrganization,
		Role:           role,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("email already registered")
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, apperrors.Internal("failed to create account", err)
	}

	// Send verification email (async)
	go s.sendVerificationEmail(user.ID, user.Email)

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, apperrors.Internal("failed to find user", err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, apperrors.Unauthorized("incorrect email or password")
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, apperrors.Unauthorized("incorrect email or password")
	}

	accessToken, err := s.tokens.GenerateAccess(user.ID, user.Email, string(user.Role))
	if err != nil {
		s.log.Error("Failed to generate access token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperrors.Internal("failed to create token", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &response.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

func (s *authService) VerifyEmail(ctx context.Context, tokenString string) (string, error) {
	claims, err := s.tokens.Validate(tokenString, token.PurposeVerify)
	if err != nil {
		return "", apperrors.Validation("invalid or expired token")
	}

	user, err := s.repo.User.FindByEmail(ctx, claims.Email)
	if err != nil {
		s.log.Error("Failed to find user for verification", zap.Error(err), zap.String("email", claims.Email))
		return "", apperrors.Internal("failed to find user", err)
	}
	if user == nil {
		return "", apperrors.NotFound("user not found")
	}

	if user.IsVerified {
		return "Email already verified", nil
	}

	user.IsVerified = true
	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to mark email verified", zap.Error(err), zap.String("user_id", user.ID.String()))
		return "", apperrors.Internal("failed to verify email", err)
	}

	s.log.Info("Email verified", zap.String("user_id", user.ID.String()))
	return "Email successfully verified!", nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user for reset", zap.Error(err), zap.String("email", req.Email))
		return apperrors.Internal("failed to find user", err)
	}
	if user == nil {
		return apperrors.NotFound("user not found")
	}

	resetToken, err := s.tokens.GenerateReset(user.ID, user.Email)
	if err != nil {
		s.log.Error("Failed to generate reset token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return apperrors.Internal("failed to create reset token", err)
	}

	go s.sendPasswordResetEmail(user.Email, resetToken)

	s.log.Info("Password reset requested", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	claims, err := s.tokens.Validate(req.Token, token.PurposeReset)
	if err != nil {
		return apperrors.Validation("invalid or expired token")
	}

	user, err := s.repo.User.FindByEmail(ctx, claims.Email)
	if err != nil {
		s.log.Error("Failed to find user for reset", zap.Error(err), zap.String("email", claims.Email))
		return apperrors.Internal("failed to find user", err)
	}
	if user == nil {
		return apperrors.NotFound("user not found")
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return apperrors.Internal("failed to process password", err)
	}

	user.PasswordHash = hashedPassword
	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", user.ID.String()))
		return apperrors.Internal("failed to update password", err)
	}

	s.log.Info("Password updated", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) sendVerificationEmail(userID uuid.UUID, email string) {
	verifyToken, err := s.tokens.GenerateVerify(userID, email)
	if err != nil {
		s.log.Error("Failed to generate verification token", zap.Error(err), zap.String("email", email))
		return
	}

	link := fmt.Sprintf("%s/api/verify-email?token=%s", s.config.App.BaseURL, verifyToken)
	body := fmt.Sprintf("Hello! Please confirm your email by following the link:\n%s", link)

	if err := s.mail.Send(email, "Email verification", body); err != nil {
		s.log.Error("Failed to send verification email", zap.Error(err), zap.String("email", email))
	}
}

func (s *authService) sendPasswordResetEmail(email, resetToken string) {
	link := fmt.Sprintf("%s/api/reset-password?token=%s", s.config.App.BaseURL, resetToken)
	body := fmt.Sprintf("You requested a password reset. Follow the link: %s", link)

	if err := s.mail.Send(email, "Password reset", body); err != nil {
		s.log.Error("Failed to send reset email", zap.Error(err), zap.String("email", email))
	}
}
