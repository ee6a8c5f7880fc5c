package repository

import (
	"queue-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Organization OrganizationRepository
	Branch       BranchRepository
	QueueSlot    QueueSlotRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Organization: NewOrganizationRepository(db, log),
		Branch:       NewBranchRepository(db, log),
		QueueSlot:    NewQueueSlotRepository(db, log),
	}
}
