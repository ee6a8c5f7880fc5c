package usecase

import (
	"context"
	"testing"

	"queue-booking/internal/data/entity"
	"queue-booking/internal/dto/request"
	"queue-booking/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrganization(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := env.seedUser(entity.RoleOrganization, true)

	org, err := env.service.Organization.Create(ctx, owner.ID, &request.CreateOrganizationRequest{
		Name:     "Acme Clinics",
		Category: "healthcare",
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Clinics", org.Name)
	assert.Equal(t, owner.ID.String(), org.OwnerID)
}

func TestCreateOrganizationRequiresPromotion(t *testing.T) {
	env := newTestEnv()
	regular := env.seedUser(entity.RoleUser, false)

	_, err := env.service.Organization.Create(context.Background(), regular.ID, &request.CreateOrganizationRequest{
		Name:     "Acme Clinics",
		Category: "healthcare",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
}

func TestListOrganizationsByCategory(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.seedUser(entity.RoleOrganization, true)
	clinic := env.seedOrganization(owner.ID)

	barber := env.seedOrganization(owner.ID)
	barber.Category = "beauty"
	require.NoError(t, env.orgs.Update(ctx, barber))

	category := "healthcare"
	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	result, err := env.service.Organization.List(ctx, &category, page)
	require.NoError(t, err)

	require.Len(t, result.Data, 1)
	assert.Equal(t, clinic.ID.String(), result.Data[0].ID)
	assert.Equal(t, int64(1), result.Pagination.Total)

	all, err := env.service.Organization.List(ctx, nil, page)
	require.NoError(t, err)
	assert.Len(t, all.Data, 2)
}

func TestUpdateOrganization(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.seedUser(entity.RoleOrganization, true)
	stranger := env.seedUser(entity.RoleOrganization, true)
	admin := env.seedUser(entity.RoleAdmin, false)
	org := env.seedOrganization(owner.ID)

	newName := "Acme Health"
	_, err := env.service.Organization.Update(ctx, stranger.ID, org.ID, &request.UpdateOrganizationRequest{Name: &newName})
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	updated, err := env.service.Organization.Update(ctx, owner.ID, org.ID, &request.UpdateOrganizationRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Acme Health", updated.Name)

	adminName := "Acme Health Group"
	updated, err = env.service.Organization.Update(ctx, admin.ID, org.ID, &request.UpdateOrganizationRequest{Name: &adminName})
	require.NoError(t, err)
	assert.Equal(t, "Acme Health Group", updated.Name)
}

func TestBranchLifecycle(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.seedUser(entity.RoleOrganization, true)
	stranger := env.seedUser(entity.RoleUser, false)
	org := env.seedOrganization(owner.ID)

	branch, err := env.service.Branch.Create(ctx, owner.ID, &request.CreateBranchRequest{
		OrganizationID: org.ID.String(),
		Name:           "Central",
		Address:        "1 Main St",
		Schedule:       map[string]any{"mon": "09:00-17:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, org.ID.String(), branch.OrganizationID)

	// Strangers cannot create, update or delete branches.
	_, err = env.service.Branch.Create(ctx, stranger.ID, &request.CreateBranchRequest{
		OrganizationID: org.ID.String(),
		Name:           "West",
		Address:        "2 Side St",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	branchID := mustParseUUID(t, branch.ID)

	newName := "Central Plaza"
	updated, err := env.service.Branch.Update(ctx, owner.ID, branchID, &request.UpdateBranchRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Central Plaza", updated.Name)

	err = env.service.Branch.Delete(ctx, stranger.ID, branchID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	require.NoError(t, env.service.Branch.Delete(ctx, owner.ID, branchID))

	_, err = env.service.Branch.GetByID(ctx, branchID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListBranchesByOrganization(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.seedUser(entity.RoleOrganization, true)
	org := env.seedOrganization(owner.ID)
	other := env.seedOrganization(owner.ID)

	env.seedBranch(org.ID, "Central")
	env.seedBranch(org.ID, "North")
	env.seedBranch(other.ID, "Elsewhere")

	branches, err := env.service.Branch.ListByOrganization(ctx, org.ID)
	require.NoError(t, err)
	assert.Len(t, branches, 2)
}
