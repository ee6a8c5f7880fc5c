package response

import (
	"time"

	"queue-booking/internal/data/entity"
)

type BranchResponse struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organization_id"`
	Name           string         `json:"name"`
	Address        string         `json:"address"`
	Schedule       map[string]any `json:"schedule,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

func BranchToResponse(branch *entity.Branch) BranchResponse {
	return BranchResponse{
		ID:             branch.ID.String(),
		OrganizationID: branch.OrganizationID.String(),
		Name:           branch.Name,
		Address:        branch.Address,
		Schedule:       branch.Schedule,
		CreatedAt:      branch.CreatedAt,
	}
}
