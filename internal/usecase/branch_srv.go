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

type BranchService interface {
	Create(ctx context.Context, actorID uuid.UUID, req *request.CreateBranchRequest) (*response.BranchResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.BranchResponse, error)
	List(ctx context.Context, organizationID *uuid.UUID, page *request.PaginatedRequest) ([]response.BranchResponse, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]response.BranchResponse, error)
	Update(ctx context.Context, actorID, branchID uuid.UUID, req *request.UpdateBranchRequest) (*response.BranchResponse, error)
	Delete(ctx context.Context, actorID, branchID uuid.UUID) error
}

type branchService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBranchService(repo *repository.Repository, log *zap.Logger) BranchService {
	return &branchService{
		repo: repo,
		log:  log.With(zap.String("service", "branch")),
	}
}

func (s *branchService) Create(ctx context.Context, actorID uuid.UUID, req *request.CreateBranchRequest) (*response.BranchResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create branch validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	orgID, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		return nil, apperrors.Validation("invalid organization_id")
	}

	actor, org, err := s.requireActorAndOrg(ctx, actorID, orgID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanManageBranch(actor, org); err != nil {
		return nil, err
	}

	now := time.Now()
	branch := &entity.Branch{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrganizationID: org.ID,
		Name:           req.Name,
		Address:        req.Address,
		Schedule:       req.Schedule,
	}

	if err := s.repo.Branch.Create(ctx, branch); err != nil {
		s.log.Error("Failed to create branch", zap.Error(err), zap.String("name", req.Name))
		return nil, apperrors.Internal("failed to create branch", err)
	}

	s.log.Info("Branch created",
		zap.String("branch_id", branch.ID.String()),
		zap.String("organization_id", org.ID.String()))

	resp := response.BranchToResponse(branch)
	return &resp, nil
}

func (s *branchService) GetByID(ctx context.Context, id uuid.UUID) (*response.BranchResponse, error) {
	branch, err := s.repo.Branch.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find branch", zap.Error(err), zap.String("branch_id", id.String()))
		return nil, apperrors.Internal("failed to find branch", err)
	}
	if branch == nil {
		return nil, apperrors.NotFound("branch not found")
	}

	resp := response.BranchToResponse(branch)
	return &resp, nil
}

func (s *branchService) List(ctx context.Context, organizationID *uuid.UUID, page *request.PaginatedRequest) ([]response.BranchResponse, error) {
	branches, err := s.repo.Branch.FindAll(ctx, organizationID, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list branches", zap.Error(err))
		return nil, apperrors.Internal("failed to list branches", err)
	}

	items := make([]response.BranchResponse, 0, len(branches))
	for _, branch := range branches {
		items = append(items, response.BranchToResponse(branch))
	}
	return items, nil
}

func (s *branchService) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]response.BranchResponse, error) {
	org, err := s.repo.Organization.FindByID(ctx, organizationID)
	if err != nil {
		s.log.Error("Failed to find organization", zap.Error(err), zap.String("organization_id", organizationID.String()))
		return nil, apperrors.Internal("failed to find organization", err)
	}
	if org == nil {
		return nil, apperrors.NotFound("organization not found")
	}

	branches, err := s.repo.Branch.FindByOrganizationID(ctx, organizationID)
	if err != nil {
		s.log.Error("Failed to list branches", zap.Error(err), zap.String("organization_id", organizationID.String()))
		return nil, apperrors.Internal("failed to list branches", err)
	}

	items := make([]response.BranchResponse, 0, len(branches))
	for _, branch := range branches {
		items = append(items, response.BranchToResponse(branch))
	}
	return items, nil
}

func (s *branchService) Update(ctx context.Context, actorID, branchID uuid.UUID, req *request.UpdateBranchRequest) (*response.BranchResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update branch validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	branch, err := s.repo.Branch.FindByID(ctx, branchID)
	if err != nil {
		s.log.Error("Failed to find branch", zap.Error(err), zap.String("branch_id", branchID.String()))
		return nil, apperrors.Internal("failed to find branch", err)
	}
	if branch == nil {
		return nil, apperrors.NotFound("branch not found")
	}

	actor, org, err := s.requireActorAndOrg(ctx, actorID, branch.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanManageBranch(actor, org); err != nil {
		return nil, err
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Schedule != nil {
		branch.Schedule = req.Schedule
	}
	branch.UpdatedAt = time.Now()

	if err := s.repo.Branch.Update(ctx, branch); err != nil {
		s.log.Error("Failed to update branch", zap.Error(err), zap.String("branch_id", branchID.String()))
		return nil, apperrors.Internal("failed to update branch", err)
	}

	s.log.Info("Branch updated", zap.String("branch_id", branch.ID.String()))

	resp := response.BranchToResponse(branch)
	return &resp, nil
}

func (s *branchService) Delete(ctx context.Context, actorID, branchID uuid.UUID) error {
	branch, err := s.repo.Branch.FindByID(ctx, branchID)
	if err != nil {
		s.log.Error("Failed to find branch", zap.Error(err), zap.String("branch_id", branchID.String()))
		return apperrors.Internal("failed to find branch", err)
	}
	if branch == nil {
		return apperrors.NotFound("branch not found")
	}

	actor, org, err := s.requireActorAndOrg(ctx, actorID, branch.OrganizationID)
	if err != nil {
		return err
	}
	if err := authz.CanManageBranch(actor, org); err != nil {
		return err
	}

	if err := s.repo.Branch.DeleteWithSlots(ctx, branchID); err != nil {
		s.log.Error("Failed to delete branch", zap.Error(err), zap.String("branch_id", branchID.String()))
		return apperrors.Internal("failed to delete branch", err)
	}

	return nil
}

// requireActorAndOrg resolves the acting user and the owning organization
// in one place; every write on a branch needs both to authorize.
func (s *branchService) requireActorAndOrg(ctx context.Context, actorID, orgID uuid.UUID) (*entity.User, *entity.Organization, error) {
	actor, err := s.repo.User.FindByID(ctx, actorID)
	if err != nil {
		s.log.Error("Failed to find acting user", zap.Error(err), zap.String("user_id", actorID.String()))
		return nil, nil, apperrors.Internal("failed to find user", err)
	}
	if actor == nil {
		return nil, nil, apperrors.Unauthorized("user no longer exists")
	}

	org, err := s.repo.Organization.FindByID(ctx, orgID)
	if err != nil {
		s.log.Error("Failed to find organization", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, nil, apperrors.Internal("failed to find organization", err)
	}
	if org == nil {
		return nil, nil, apperrors.NotFound("organization not found")
	}

	return actor, org, nil
}
