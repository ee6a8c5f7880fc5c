package response

import (
	"time"

	"queue-booking/internal/data/entity"
)

type OrganizationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description *string   `json:"description,omitempty"`
	Address     *string   `json:"address,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func OrganizationToResponse(org *entity.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:          org.ID.String(),
		Name:        org.Name,
		Category:    org.Category,
		Description: org.Description,
		Address:     org.Address,
		OwnerID:     org.OwnerID.String(),
		CreatedAt:   org.CreatedAt,
	}
}
