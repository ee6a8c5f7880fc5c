package entity

import (
	"github.com/google/uuid"
)

type Branch struct {
	Base
	OrganizationID uuid.UUID      `db:"organization_id"`
	Name           string         `db:"name"`
	Address        string         `db:"address"`
	Schedule       map[string]any `db:"schedule"` // opaque open-hours JSON
}
