package response

import (
	"time"

	"queue-booking/internal/data/entity"
)

type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       *string   `json:"full_name,omitempty"`
	IsVerified     bool      `json:"is_verified"`
	IsOrganization bool      `json:"is_organization"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:             user.ID.String(),
		Email:          user.Email,
		FullName:       user.FullName,
		IsVerified:     user.IsVerified,
		IsOrganization: user.IsOrganization,
		Role:           string(user.Role),
		CreatedAt:      user.CreatedAt,
	}
}
