package usecase

import (
	"context"
	"errors"
	"time"

	"queue-booking/internal/authz"
	"queue-booking/internal/data/entity"
	"queue-booking/internal/data/repository"
	"queue-booking/internal/dto/request"
	"queue-booking/internal/dto/response"
	"queue-booking/internal/notify"
	"queue-booking/pkg/apperrors"
	"queue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SlotService interface {
	Book(ctx context.Context, actorID uuid.UUID, req *request.BookSlotRequest) (*response.SlotResponse, error)
	UpdateStatus(ctx context.Context, actorID, slotID uuid.UUID, req *request.UpdateSlotStatusRequest) (*response.SlotResponse, error)
	ListMine(ctx context.Context, actorID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.SlotResponse], error)
	OrganizationBookings(ctx context.Context, actorID, orgID uuid.UUID, filter *request.OrganizationBookingsFilter) ([]response.SlotResponse, error)
}

type slotService struct {
	repo    *repository.Repository
	gateway notify.Gateway
	log     *zap.Logger
}

func NewSlotService(repo *repository.Repository, gateway notify.Gateway, log *zap.Logger) SlotService {
	return &slotService{
		repo:    repo,
		gateway: gateway,
		log:     log.With(zap.String("service", "slot")),
	}
}

func (s *slotService) Book(ctx context.Context, actorID uuid.UUID, req *request.BookSlotRequest) (*response.SlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Book slot validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, apperrors.Validation("invalid branch_id")
	}

	actor, err := s.requireActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	branch, err := s.repo.Branch.FindByID(ctx, branchID)
	if err != nil {
		s.log.Error("Failed to find branch", zap.Error(err), zap.String("branch_id", branchID.String()))
		return nil, apperrors.Internal("failed to find branch", err)
	}
	if branch == nil {
		return nil, apperrors.NotFound("branch not found")
	}

	// Advisory read for the common case. The unique index on the booked
	// triple is what actually serializes concurrent bookings.
	existing, err := s.repo.QueueSlot.FindActiveByTriple(ctx, branchID, req.Date, req.Time)
	if err != nil {
		s.log.Error("Failed to check slot availability", zap.Error(err))
		return nil, apperrors.Internal("failed to check slot availability", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("time slot is already booked")
	}

	slot := &entity.QueueSlot{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BranchID: branchID,
		UserID:   actor.ID,
		Date:     req.Date,
		Time:     req.Time,
		Status:   entity.SlotStatusBooked,
	}

	if err := s.repo.QueueSlot.Create(ctx, slot); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperrors.Conflict("time slot is already booked")
		}
		s.log.Error("Failed to create queue slot", zap.Error(err))
		return nil, apperrors.Internal("failed to book slot", err)
	}

	s.log.Info("Slot booked",
		zap.String("slot_id", slot.ID.String()),
		zap.String("branch_id", branchID.String()),
		zap.String("date", slot.Date),
		zap.String("time", slot.Time))

	// Hand off to the notification gateway without blocking the booking
	// response. Failures are logged here and retried by the worker.
	go s.dispatchBookingCreated(slot, actor, branch)

	resp := response.SlotToResponse(slot)
	resp.BranchName = branch.Name
	return &resp, nil
}

func (s *slotService) UpdateStatus(ctx context.Context, actorID, slotID uuid.UUID, req *request.UpdateSlotStatusRequest) (*response.SlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update slot status validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	actor, err := s.requireActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	slot, err := s.repo.QueueSlot.FindByID(ctx, slotID)
	if err != nil {
		s.log.Error("Failed to find queue slot", zap.Error(err), zap.String("slot_id", slotID.String()))
		return nil, apperrors.Internal("failed to find booking", err)
	}
	if slot == nil {
		return nil, apperrors.NotFound("booking not found")
	}

	branch, err := s.repo.Branch.FindByID(ctx, slot.BranchID)
	if err != nil {
		s.log.Error("Failed to find branch", zap.Error(err), zap.String("branch_id", slot.BranchID.String()))
		return nil, apperrors.Internal("failed to find branch", err)
	}
	if branch == nil {
		return nil, apperrors.NotFound("branch not found")
	}

	org, err := s.repo.Organization.FindByID(ctx, branch.OrganizationID)
	if err != nil {
		s.log.Error("Failed to find organization", zap.Error(err), zap.String("organization_id", branch.OrganizationID.String()))
		return nil, apperrors.Internal("failed to find organization", err)
	}
	if org == nil {
		return nil, apperrors.NotFound("organization not found")
	}

	newStatus := entity.SlotStatus(req.Status)
	switch newStatus {
	case entity.SlotStatusCancelled:
		if err := authz.CanCancelSlot(actor, slot, org); err != nil {
			return nil, err
		}
	case entity.SlotStatusConfirmed:
		if err := authz.CanConfirmSlot(actor, org); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.Validation("unsupported status %q", req.Status)
	}

	if slot.Status != entity.SlotStatusBooked {
		return nil, apperrors.Conflict("booking is already %s", string(slot.Status))
	}

	if err := s.repo.QueueSlot.UpdateStatus(ctx, slot.ID, newStatus); err != nil {
		s.log.Error("Failed to update slot status", zap.Error(err), zap.String("slot_id", slot.ID.String()))
		return nil, apperrors.Internal("failed to update booking", err)
	}
	slot.Status = newStatus

	s.log.Info("Slot status updated",
		zap.String("slot_id", slot.ID.String()),
		zap.String("status", string(newStatus)))

	resp := response.SlotToResponse(slot)
	resp.BranchName = branch.Name
	return &resp, nil
}

func (s *slotService) ListMine(ctx context.Context, actorID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.SlotResponse], error) {
	slots, err := s.repo.QueueSlot.FindByUserID(ctx, actorID, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err), zap.String("user_id", actorID.String()))
		return nil, apperrors.Internal("failed to list bookings", err)
	}

	total, err := s.repo.QueueSlot.CountByUserID(ctx, actorID)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err), zap.String("user_id", actorID.String()))
		return nil, apperrors.Internal("failed to count bookings", err)
	}

	items := make([]response.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		items = append(items, response.SlotToResponse(slot))
	}

	currentPage := page.Page
	if currentPage < 1 {
		currentPage = 1
	}
	return response.NewPaginatedResponse(items, currentPage, page.Limit(), total), nil
}

func (s *slotService) OrganizationBookings(ctx context.Context, actorID, orgID uuid.UUID, filter *request.OrganizationBookingsFilter) ([]response.SlotResponse, error) {
	if errs := utils.ValidateStruct(filter); len(errs) > 0 {
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	actor, err := s.requireActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	org, err := s.repo.Organization.FindByID(ctx, orgID)
	if err != nil {
		s.log.Error("Failed to find organization", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, apperrors.Internal("failed to find organization", err)
	}
	if org == nil {
		return nil, apperrors.NotFound("organization not found")
	}

	if err := authz.CanManageOrganization(actor, org); err != nil {
		return nil, err
	}

	slotFilter := repository.SlotFilter{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
	}
	if filter.Status != nil {
		status := entity.SlotStatus(*filter.Status)
		slotFilter.Status = &status
	}
	if filter.BranchID != nil {
		branchID, err := uuid.Parse(*filter.BranchID)
		if err != nil {
			return nil, apperrors.Validation("invalid branch_id")
		}
		slotFilter.BranchID = &branchID
	}

	slots, err := s.repo.QueueSlot.FindByOrganization(ctx, orgID, slotFilter)
	if err != nil {
		s.log.Error("Failed to list organization bookings", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, apperrors.Internal("failed to list bookings", err)
	}

	items := make([]response.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		items = append(items, response.SlotToResponse(slot))
	}
	return items, nil
}

func (s *slotService) dispatchBookingCreated(slot *entity.QueueSlot, user *entity.User, branch *entity.Branch) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	org, err := s.repo.Organization.FindByID(ctx, branch.OrganizationID)
	if err != nil || org == nil {
		s.log.Error("Failed to resolve organization for notification",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()))
		return
	}

	if err := s.gateway.BookingCreated(ctx, slot, user, branch, org); err != nil {
		s.log.Error("Failed to dispatch booking notification",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()))
	}
}

func (s *slotService) requireActor(ctx context.Context, actorID uuid.UUID) (*entity.User, error) {
	actor, err := s.repo.User.FindByID(ctx, actorID)
	if err != nil {
		s.log.Error("Failed to find acting user", zap.Error(err), zap.String("user_id", actorID.String()))
		return nil, apperrors.Internal("failed to find user", err)
	}
	if actor == nil {
		return nil, apperrors.Unauthorized("user no longer exists")
	}
	return actor, nil
}
