package usecase

import (
	"context"
	"testing"

	"queue-booking/internal/data/entity"
	"queue-booking/internal/dto/request"
	"queue-booking/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	fullName := "Jane Roe"
	user, err := env.service.Auth.Register(ctx, &request.RegisterRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
		FullName: &fullName,
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, string(entity.RoleUser), user.Role)
	assert.False(t, user.IsVerified)
	assert.False(t, user.IsOrganization)
}

func TestRegisterOrganizationFlag(t *testing.T) {
	env := newTestEnv()

	user, err := env.service.Auth.Register(context.Background(), &request.RegisterRequest{
		Email:          "clinic@example.com",
		Password:       "s3cret-pass",
		IsOrganization: true,
	})
	require.NoError(t, err)

	assert.True(t, user.IsOrganization)
	assert.Equal(t, string(entity.RoleOrganization), user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	req := &request.RegisterRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	}

	_, err := env.service.Auth.Register(ctx, req)
	require.NoError(t, err)

	_, err = env.service.Auth.Register(ctx, req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.Auth.Register(context.Background(), &request.RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestLogin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.service.Auth.Register(ctx, &request.RegisterRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	tokens, err := env.service.Auth.Login(ctx, &request.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, "bearer", tokens.TokenType)
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.service.Auth.Register(ctx, &request.RegisterRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  *request.LoginRequest
	}{
		{"wrong password", &request.LoginRequest{Email: "jane@example.com", Password: "wrong-pass-1"}},
		{"unknown email", &request.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.service.Auth.Login(ctx, tt.req)
			assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
		})
	}
}

func TestResetPasswordChangesCredential(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.service.Auth.Register(ctx, &request.RegisterRequest{
		Email:    "jane@example.com",
		Password: "old-password1",
	})
	require.NoError(t, err)

	user, err := env.users.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)

	resetToken, err := env.tokens.GenerateReset(user.ID, user.Email)
	require.NoError(t, err)

	err = env.service.Auth.ResetPassword(ctx, &request.ResetPasswordRequest{
		Token:       resetToken,
		NewPassword: "new-password1",
	})
	require.NoError(t, err)

	_, err = env.service.Auth.Login(ctx, &request.LoginRequest{Email: "jane@example.com", Password: "old-password1"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))

	_, err = env.service.Auth.Login(ctx, &request.LoginRequest{Email: "jane@example.com", Password: "new-password1"})
	assert.NoError(t, err)
}

func TestVerifyEmailIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.service.Auth.Register(ctx, &request.RegisterRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	user, err := env.users.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)

	verifyToken, err := env.tokens.GenerateVerify(user.ID, user.Email)
	require.NoError(t, err)

	msg, err := env.service.Auth.VerifyEmail(ctx, verifyToken)
	require.NoError(t, err)
	assert.Equal(t, "Email successfully verified!", msg)

	msg, err = env.service.Auth.VerifyEmail(ctx, verifyToken)
	require.NoError(t, err)
	assert.Equal(t, "Email already verified", msg)
}

func TestVerifyEmailRejectsAccessToken(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	user := env.seedUser(entity.RoleUser, false)
	accessToken, err := env.tokens.GenerateAccess(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)

	_, err = env.service.Auth.VerifyEmail(ctx, accessToken)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
