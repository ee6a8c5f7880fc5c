package usecase

import (
	"queue-booking/internal/data/repository"
	"queue-booking/internal/notify"
	"queue-booking/pkg/mailer"
	"queue-booking/pkg/token"
	"queue-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Organization OrganizationService
	Branch       BranchService
	Slot         SlotService
	Stats        StatsService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	tokens *token.JWTService,
	mail mailer.Mailer,
	gateway notify.Gateway,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, tokens, mail, log),
		User:         NewUserService(repo.User, log),
		Organization: NewOrganizationService(repo, log),
		Branch:       NewBranchService(repo, log),
		Slot:         NewSlotService(repo, gateway, log),
		Stats:        NewStatsService(repo, log),
	}
}
