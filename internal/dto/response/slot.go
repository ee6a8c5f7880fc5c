package response

import (
	"time"

	"queue-booking/internal/data/entity"
)

type SlotResponse struct {
	ID         string    `json:"id"`
	BranchID   string    `json:"branch_id"`
	UserID     string    `json:"user_id"`
	BranchName string    `json:"branch_name,omitempty"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func SlotToResponse(slot *entity.QueueSlot) SlotResponse {
	return SlotResponse{
		ID:        slot.ID.String(),
		BranchID:  slot.BranchID.String(),
		UserID:    slot.UserID.String(),
		Date:      slot.Date,
		Time:      slot.Time,
		Status:    string(slot.Status),
		CreatedAt: slot.CreatedAt,
	}
}
