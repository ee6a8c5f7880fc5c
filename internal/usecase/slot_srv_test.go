package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"queue-booking/internal/data/entity"
	"queue-booking/internal/dto/request"
	"queue-booking/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookSlot(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.seedUser(entity.RoleOrganization, true)
	org := env.seedOrganization(owner.ID)
	branch := env.seedBranch(org.ID, "Central")
	booker := env.seedUser(entity.RoleUser, false)

	slot, err := env.service.Slot.Book(ctx, booker.ID, &request.BookSlotRequest{
		BranchID: branch.ID.String(),
		Date:     "2026-09-01",
		Time:     "14:30",
	})
	require.NoError(t, err)

	assert.Equal(t, branch.ID.String(), slot.BranchID)
	assert.Equal(t, booker.ID.String(), slot.UserID)
	assert.Equal(t, "booked", slot.Status)
	assert.Equal(t, "Central", slot.BranchName)
}

func TestBookSlotUnknownBranch(t *testing.T) {
	env := newTestEnv()
	booker := env.seedUser(entity.RoleUser, false)

	_, err := env.service.Slot.Book(context.Background(), booker.ID, &request.BookSlotRequest{
		BranchID: "8d0c6a46-0f3b-4a57-9c06-90b59a1b61a4",
		Date:     "2026-09-01",
		Time:     "14:30",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestBookSlotConflict(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.seedUser(entity.RoleOrganization, true)
	org := env.seedOrganization(owner.ID)
	branch := env.seedBranch(org.ID, "Central")

	first := env.seedUser(entity.RoleUser, false)
	second := env.seedUser(entity.RoleUser, false)

	req := &request.BookSlotRequest{
		BranchID: branch.ID.String(),
		Date:     "2026-09-01",
		Time:     "14:30",
	}

	_, err := env.service.Slot.Book(ctx, first.ID, req)
	require.NoError(t, err)

	_, err = env.service.Slot.Book(ctx, second.ID, req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestBookSlotAfterCancellation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.seedUser(entity.RoleOrganization, true)
	org := env.seedOrganization(owner.ID)
	branch := env.seedBranch(org.ID, "Central")

	first := env.seedUser(entity.RoleUser, false)
	second := env.seedUser(entity.RoleUser, false)

	// A cancelled slot frees the triple for rebooking.
	env.seedSlot(branch.ID, first.ID, "2026-09-01", "14:30", entity.SlotStatusCancelled, time.Now())

	slot, err := env.service.Slot.Book(ctx, second.ID, &request.BookSlotRequest{
		BranchID: branch.ID.String(),
		Date:     "2026-09-01",
		Time:     "14:30",
	})
	require.NoError(t, err)
	assert.Equal(t, second.ID.String(), slot.UserID)
}

func TestBookSlotConcurrentSingleWinner(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.seedUser(entity.RoleOrganization, true)
	org := env.seedOrganization(owner.ID)
	branch := env.seedBranch(org.ID, "Central")

	const bookers = 16
	users := make([]*entity.User, bookers)
	for i := range users {
		users[i] = env.seedUser(entity.RoleUser, false)
	}

	var wg sync.WaitGroup
	errs := make([]error, bookers)
	for i := 0; i < bookers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.service.Slot.Book(ctx, users[i].ID, &request.BookSlotRequest{
				BranchID: branch.ID.String(),
				Date:     "2026-09-01",
				Time:     "09:00",
			})
		}(i)
	}
	wg.Wait()

	var won, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case apperrors.IsKind(err, apperrors.KindConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, bookers-1, conflicted)
}

func TestUpdateStatusCancel(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.seedUser(entity.RoleOrganization, true)
	org := env.seedOrganization(owner.ID)
	branch := env.seedBranch(org.ID, "Central")
	booker := env.seedUser(entity.RoleUser, false)
	stranger := env.seedUser(entity.RoleUser, false)

	slot := env.seedSlot(branch.ID, booker.ID, "2026-09-01", "14:30", entity.SlotStatusBooked, time.Now())

	// A stranger may not cancel someone else's booking.
	_, err := env.service.Slot.UpdateStatus(ctx, stranger.ID, slot.ID, &request.UpdateSlotStatusRequest{Status: "cancelled"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	// The booker may.
	updated, err := env.service.Slot.UpdateStatus(ctx, booker.ID, slot.ID, &request.UpdateSlotStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", updated.Status)

	// A settled booking cannot change again.
	_, err = env.service.Slot.UpdateStatus(ctx, booker.ID, slot.ID, &request.UpdateSlotStatusRequest{Status: "confirmed"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestUpdateStatusConfirm(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.seedUser(entity.RoleOrganization, true)
	admin := env.seedUser(entity.RoleAdmin, false)
	org := env.seedOrganization(owner.ID)
	branch := env.seedBranch(org.ID, "Central")
	booker := env.seedUser(entity.RoleUser, false)

	first := env.seedSlot(branch.ID, booker.ID, "2026-09-01", "14:30", entity.SlotStatusBooked, time.Now())
	second := env.seedSlot(branch.ID, booker.ID, "2026-09-01", "15:00", entity.SlotStatusBooked, time.Now())

	// The booker cannot confirm their own slot.
	_, err := env.service.Slot.UpdateStatus(ctx, booker.ID, first.ID, &request.UpdateSlotStatusRequest{Status: "confirmed"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	updated, err := env.service.Slot.UpdateStatus(ctx, owner.ID, first.ID, &request.UpdateSlotStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)

	updated, err = env.service.Slot.UpdateStatus(ctx, admin.ID, second.ID, &request.UpdateSlotStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)
}

func TestListMine(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.seedUser(entity.RoleOrganization, true)
	org := env.seedOrganization(owner.ID)
	branch := env.seedBranch(org.ID, "Central")

	booker := env.seedUser(entity.RoleUser, false)
	other := env.seedUser(entity.RoleUser, false)

	now := time.Now()
	env.seedSlot(branch.ID, booker.ID, "2026-09-01", "10:00", entity.SlotStatusBooked, now.Add(-2*time.Minute))
	env.seedSlot(branch.ID, booker.ID, "2026-09-02", "11:00", entity.SlotStatusCancelled, now.Add(-time.Minute))
	env.seedSlot(branch.ID, other.ID, "2026-09-03", "12:00", entity.SlotStatusBooked, now)

	result, err := env.service.Slot.ListMine(ctx, booker.ID, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)

	assert.Len(t, result.Data, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)
	for _, slot := range result.Data {
		assert.Equal(t, booker.ID.String(), slot.UserID)
	}
}

func TestOrganizationBookings(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner := env.seedUser(entity.RoleOrganization, true)
	org := env.seedOrganization(owner.ID)
	central := env.seedBranch(org.ID, "Central")
	north := env.seedBranch(org.ID, "North")
	booker := env.seedUser(entity.RoleUser, false)

	now := time.Now()
	env.seedSlot(central.ID, booker.ID, "2026-09-02", "10:00", entity.SlotStatusBooked, now)
	env.seedSlot(central.ID, booker.ID, "2026-09-01", "09:00", entity.SlotStatusCancelled, now)
	env.seedSlot(north.ID, booker.ID, "2026-09-01", "12:00", entity.SlotStatusBooked, now)

	// Unfiltered, ordered by date then time.
	all, err := env.service.Slot.OrganizationBookings(ctx, owner.ID, org.ID, &request.OrganizationBookingsFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2026-09-01", all[0].Date)
	assert.Equal(t, "09:00", all[0].Time)
	assert.Equal(t, "2026-09-02", all[2].Date)

	// Status filter.
	status := "booked"
	booked, err := env.service.Slot.OrganizationBookings(ctx, owner.ID, org.ID, &request.OrganizationBookingsFilter{Status: &status})
	require.NoError(t, err)
	assert.Len(t, booked, 2)

	// Branch filter.
	branchID := north.ID.String()
	northOnly, err := env.service.Slot.OrganizationBookings(ctx, owner.ID, org.ID, &request.OrganizationBookingsFilter{BranchID: &branchID})
	require.NoError(t, err)
	require.Len(t, northOnly, 1)
	assert.Equal(t, north.ID.String(), northOnly[0].BranchID)

	// Date range filter.
	start, end := "2026-09-02", "2026-09-02"
	ranged, err := env.service.Slot.OrganizationBookings(ctx, owner.ID, org.ID, &request.OrganizationBookingsFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, ranged, 1)

	// Only the owner or an admin may read the listing.
	_, err = env.service.Slot.OrganizationBookings(ctx, booker.ID, org.ID, &request.OrganizationBookingsFilter{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
}
