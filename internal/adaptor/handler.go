package adaptor

import (
	"net/http"

	"queue-booking/internal/usecase"
	"queue-booking/pkg/apperrors"
	"queue-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Organization *OrganizationHandler
	Branch       *BranchHandler
	Slot         *SlotHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Organization: NewOrganizationHandler(service.Organization, service.Branch, service.Slot, service.Stats, log),
		Branch:       NewBranchHandler(service.Branch, log),
		Slot:         NewSlotHandler(service.Slot, log),
	}
}

// writeServiceError maps a service error to an HTTP response by its kind.
// The kind carries the classification, so handlers never inspect message
// text.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	msg := apperrors.MessageOf(err)

	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, msg)

	case apperrors.KindConflict:
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, msg)

	case apperrors.KindValidation:
		log.Warn(operation+" failed - validation", zap.Error(err))
		utils.ResponseBadRequest(w, msg, nil)

	case apperrors.KindUnauthorized:
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, msg)

	case apperrors.KindForbidden:
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, msg)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
