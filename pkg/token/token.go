package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Purpose scopes a token to a single use. A verify token cannot be used
// as an access token and vice versa.
type Purpose string

const (
	PurposeAccess Purpose = "access"
	PurposeVerify Purpose = "verify"
	PurposeReset  Purpose = "reset"
)

// Claims holds JWT claims including user ID and role.
type Claims struct {
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	Role    string    `json:"role"`
	Purpose Purpose   `json:"purpose"`
	jwt.RegisteredClaims
}

// JWTService handles token generation and validation.
type JWTService struct {
	secret      []byte
	expiryHours int
}

// NewJWTService creates a JWT service.
func NewJWTService(secret string, expiryHours int) *JWTService {
	return &JWTService{
		secret:      []byte(secret),
		expiryHours: expiryHours,
	}
}

// GenerateAccess creates an access token for the user.
func (s *JWTService) GenerateAccess(userID uuid.UUID, email, role string) (string, error) {
	return s.generate(userID, email, role, PurposeAccess, time.Duration(s.expiryHours)*time.Hour)
}

// GenerateVerify creates an email-verification token valid for 24 hours.
func (s *JWTService) GenerateVerify(userID uuid.UUID, email string) (string, error) {
	return s.generate(userID, email, "", PurposeVerify, 24*time.Hour)
}

// GenerateReset creates a password-reset token valid for 30 minutes.
func (s *JWTService) GenerateReset(userID uuid.UUID, email string) (string, error) {
	return s.generate(userID, email, "", PurposeReset, 30*time.Minute)
}

func (s *JWTService) generate(userID uuid.UUID, email, role string, purpose Purpose, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:  userID,
		Email:   email,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.New().String(),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Validate parses a JWT and checks its purpose, returning claims or error.
func (s *JWTService) Validate(tokenString string, purpose Purpose) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
