package entity

import (
	"github.com/google/uuid"
)

type Organization struct {
	Base
	Name        string    `db:"name"`
	Category    string    `db:"category"`
	Description *string   `db:"description"`
	Address     *string   `db:"address"`
	OwnerID     uuid.UUID `db:"owner_id"`
}
