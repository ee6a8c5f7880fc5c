package request

type CreateOrganizationRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Category    string  `json:"category" validate:"required,min=2,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

type UpdateOrganizationRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Category    *string `json:"category,omitempty" validate:"omitempty,min=2,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=255"`
}
