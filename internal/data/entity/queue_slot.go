package entity

import (
	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusCancelled SlotStatus = "cancelled"
	SlotStatusConfirmed SlotStatus = "confirmed"
)

// QueueSlot is one reservation of a (branch, date, time) triple. Date and
// time stay strings ("2006-01-02", "15:04"); the triple is the unit of
// conflict, not a wall-clock instant.
type QueueSlot struct {
	BaseSimple
	BranchID uuid.UUID  `db:"branch_id"`
	UserID   uuid.UUID  `db:"user_id"`
	Date     string     `db:"date"`
	Time     string     `db:"time"`
	Status   SlotStatus `db:"status"`
}
