package request

type BookSlotRequest struct {
	BranchID string `json:"branch_id" validate:"required,uuid4"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
}

type UpdateSlotStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=cancelled confirmed"`
}

// OrganizationBookingsFilter comes from query parameters, not a JSON body.
type OrganizationBookingsFilter struct {
	Status    *string `validate:"omitempty,oneof=booked cancelled confirmed"`
	BranchID  *string `validate:"omitempty,uuid4"`
	StartDate *string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `validate:"omitempty,datetime=2006-01-02"`
}
