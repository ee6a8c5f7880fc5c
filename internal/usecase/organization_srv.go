package usecase

import (
	"context"
	"time"

	"queue-booking/internal/authz"
	"queue-booking/internal/data/entity"
	"queue-booking/internal/data/repository"
	"queue-booking/internal/dto/request"
	"queue-booking/internal/dto/response"
	"queue-booking/pkg/apperrors"
	"queue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrganizationService interface {
	Create(ctx context.Context, actorID uuid.UUID, req *request.CreateOrganizationRequest) (*response.OrganizationResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.OrganizationResponse, error)
	List(ctx context.Context, category *string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.OrganizationResponse], error)
	Update(ctx context.Context, actorID, orgID uuid.UUID, req *request.UpdateOrganizationRequest) (*response.OrganizationResponse, error)
}

type organizationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOrganizationService(repo *repository.Repository, log *zap.Logger) OrganizationService {
	return &organizationService{
		repo: repo,
		log:  log.With(zap.String("service", "organization")),
	}
}

func (s *organizationService) Create(ctx context.Context, actorID uuid.UUID, req *request.CreateOrganizationRequest) (*response.OrganizationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create organization validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	actor, err := s.requireActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanCreateOrganization(actor); err != nil {
		return nil, err
	}

	now := time.Now()
	org := &entity.Organization{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Address:     req.Address,
		OwnerID:     actor.ID,
	}

	if err := s.repo.Organization.Create(ctx, org); err != nil {
		s.log.Error("Failed to create organization", zap.Error(err), zap.String("name", req.Name))
		return nil, apperrors.Internal("failed to create organization", err)
	}

	s.log.Info("Organization created",
		zap.String("organization_id", org.ID.String()),
		zap.String("owner_id", actor.ID.String()))

	resp := response.OrganizationToResponse(org)
	return &resp, nil
}

func (s *organizationService) GetByID(ctx context.Context, id uuid.UUID) (*response.OrganizationResponse, error) {
	org, err := s.repo.Organization.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find organization", zap.Error(err), zap.String("organization_id", id.String()))
		return nil, apperrors.Internal("failed to find organization", err)
	}
	if org == nil {
		return nil, apperrors.NotFound("organization not found")
	}

	resp := response.OrganizationToResponse(org)
	return &resp, nil
}

func (s *organizationService) List(ctx context.Context, category *string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.OrganizationResponse], error) {
	orgs, err := s.repo.Organization.FindAll(ctx, category, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list organizations", zap.Error(err))
		return nil, apperrors.Internal("failed to list organizations", err)
	}

	total, err := s.repo.Organization.CountAll(ctx, category)
	if err != nil {
		s.log.Error("Failed to count organizations", zap.Error(err))
		return nil, apperrors.Internal("failed to count organizations", err)
	}

	items := make([]response.OrganizationResponse, 0, len(orgs))
	for _, org := range orgs {
		items = append(items, response.OrganizationToResponse(org))
	}

	currentPage := page.Page
	if currentPage < 1 {
		currentPage = 1
	}
	return response.NewPaginatedResponse(items, currentPage, page.Limit(), total), nil
}

func (s *organizationService) Update(ctx context.Context, actorID, orgID uuid.UUID, req *request.UpdateOrganizationRequest) (*response.OrganizationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update organization validation failed", zap.Any("errors", errs))
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

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Category != nil {
		org.Category = *req.Category
	}
	if req.Description != nil {
		org.Description = req.Description
	}
	if req.Address != nil {
		org.Address = req.Address
	}
	org.UpdatedAt = time.Now()

	if err := s.repo.Organization.Update(ctx, org); err != nil {
		s.log.Error("Failed to update organization", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, apperrors.Internal("failed to update organization", err)
	}

	s.log.Info("Organization updated", zap.String("organization_id", org.ID.String()))

	resp := response.OrganizationToResponse(org)
	return &resp, nil
}

func (s *organizationService) requireActor(ctx context.Context, actorID uuid.UUID) (*entity.User, error) {
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
