package request

type CreateBranchRequest struct {
	OrganizationID string         `json:"organization_id" validate:"required,uuid4"`
	Name           string         `json:"name" validate:"required,min=2,max=100"`
	Address        string         `json:"address" validate:"required,max=255"`
	Schedule       map[string]any `json:"schedule,omitempty"`
}

type UpdateBranchRequest struct {
	Name     *string        `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Address  *string        `json:"address,omitempty" validate:"omitempty,max=255"`
	Schedule map[string]any `json:"schedule,omitempty"`
}
