package token

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 1)
	userID := uuid.New()

	tokenString, err := svc.GenerateAccess(userID, "user@example.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := svc.Validate(tokenString, PurposeAccess)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, PurposeAccess, claims.Purpose)
}

func TestPurposeMismatchRejected(t *testing.T) {
	svc := NewJWTService("test-secret", 1)
	userID := uuid.New()

	verifyToken, err := svc.GenerateVerify(userID, "user@example.com")
	require.NoError(t, err)

	_, err = svc.Validate(verifyToken, PurposeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	resetToken, err := svc.GenerateReset(userID, "user@example.com")
	require.NoError(t, err)

	_, err = svc.Validate(resetToken, PurposeVerify)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	svc := NewJWTService("secret-a", 1)
	other := NewJWTService("secret-b", 1)

	tokenString, err := svc.GenerateAccess(uuid.New(), "user@example.com", "user")
	require.NoError(t, err)

	_, err = other.Validate(tokenString, PurposeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := NewJWTService("test-secret", 1)

	_, err := svc.Validate("not-a-jwt", PurposeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
