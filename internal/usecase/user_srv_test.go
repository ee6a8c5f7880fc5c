package usecase

import (
	"context"
	"testing"

	"queue-booking/internal/data/entity"
	"queue-booking/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	env := newTestEnv()
	user := env.seedUser(entity.RoleUser, false)

	profile, err := env.service.User.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), profile.ID)
	assert.Equal(t, user.Email, profile.Email)
}

func TestGetProfileUnknownUser(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.User.GetProfile(context.Background(), uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestBecomeOrganization(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	user := env.seedUser(entity.RoleUser, false)

	promoted, err := env.service.User.BecomeOrganization(ctx, user.ID)
	require.NoError(t, err)

	assert.True(t, promoted.IsOrganization)
	assert.Equal(t, string(entity.RoleOrganization), promoted.Role)

	stored, err := env.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsOrganization)
	assert.Equal(t, entity.RoleOrganization, stored.Role)
}

func TestBecomeOrganizationTwiceConflicts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	user := env.seedUser(entity.RoleUser, false)

	_, err := env.service.User.BecomeOrganization(ctx, user.ID)
	require.NoError(t, err)

	_, err = env.service.User.BecomeOrganization(ctx, user.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}
