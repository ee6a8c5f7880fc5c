package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"queue-booking/internal/data/entity"
	"queue-booking/internal/data/repository"
	"queue-booking/pkg/token"
	"queue-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// In-memory repository fakes. The slot fake enforces the same active-triple
// uniqueness the database index does, so booking races are testable without
// Postgres.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

type fakeOrganizationRepo struct {
	mu   sync.Mutex
	orgs map[uuid.UUID]*entity.Organization
}

func newFakeOrganizationRepo() *fakeOrganizationRepo {
	return &fakeOrganizationRepo{orgs: make(map[uuid.UUID]*entity.Organization)}
}

func (f *fakeOrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *org
	f.orgs[org.ID] = &clone
	return nil
}

func (f *fakeOrganizationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	org, ok := f.orgs[id]
	if !ok {
		return nil, nil
	}
	clone := *org
	return &clone, nil
}

func (f *fakeOrganizationRepo) FindAll(ctx context.Context, category *string, limit, offset int) ([]*entity.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*entity.Organization
	for _, org := range f.orgs {
		if category != nil && org.Category != *category {
			continue
		}
		clone := *org
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, limit, offset), nil
}

func (f *fakeOrganizationRepo) CountAll(ctx context.Context, category *string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, org := range f.orgs {
		if category != nil && org.Category != *category {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeOrganizationRepo) Update(ctx context.Context, org *entity.Organization) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *org
	f.orgs[org.ID] = &clone
	return nil
}

type fakeBranchRepo struct {
	mu       sync.Mutex
	branches map[uuid.UUID]*entity.Branch
	deleted  []uuid.UUID
}

func newFakeBranchRepo() *fakeBranchRepo {
	return &fakeBranchRepo{branches: make(map[uuid.UUID]*entity.Branch)}
}

func (f *fakeBranchRepo) Create(ctx context.Context, branch *entity.Branch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *branch
	f.branches[branch.ID] = &clone
	return nil
}

func (f *fakeBranchRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	branch, ok := f.branches[id]
	if !ok {
		return nil, nil
	}
	clone := *branch
	return &clone, nil
}

func (f *fakeBranchRepo) FindAll(ctx context.Context, organizationID *uuid.UUID, limit, offset int) ([]*entity.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*entity.Branch
	for _, branch := range f.branches {
		if organizationID != nil && branch.OrganizationID != *organizationID {
			continue
		}
		clone := *branch
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, limit, offset), nil
}

func (f *fakeBranchRepo) FindByOrganizationID(ctx context.Context, organizationID uuid.UUID) ([]*entity.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*entity.Branch
	for _, branch := range f.branches {
		if branch.OrganizationID != organizationID {
			continue
		}
		clone := *branch
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}

func (f *fakeBranchRepo) Update(ctx context.Context, branch *entity.Branch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *branch
	f.branches[branch.ID] = &clone
	return nil
}

func (f *fakeBranchRepo) DeleteWithSlots(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.branches, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSlotRepo struct {
	mu       sync.Mutex
	slots    map[uuid.UUID]*entity.QueueSlot
	branches *fakeBranchRepo
}

func newFakeSlotRepo(branches *fakeBranchRepo) *fakeSlotRepo {
	return &fakeSlotRepo{
		slots:    make(map[uuid.UUID]*entity.QueueSlot),
		branches: branches,
	}
}

func (f *fakeSlotRepo) Create(ctx context.Context, slot *entity.QueueSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.slots {
		if existing.Status == entity.SlotStatusBooked &&
			existing.BranchID == slot.BranchID &&
			existing.Date == slot.Date &&
			existing.Time == slot.Time {
			return repository.ErrSlotTaken
		}
	}
	clone := *slot
	f.slots[slot.ID] = &clone
	return nil
}

func (f *fakeSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.QueueSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot, ok := f.slots[id]
	if !ok {
		return nil, nil
	}
	clone := *slot
	return &clone, nil
}

func (f *fakeSlotRepo) FindActiveByTriple(ctx context.Context, branchID uuid.UUID, date, timeOfDay string) (*entity.QueueSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, slot := range f.slots {
		if slot.Status == entity.SlotStatusBooked &&
			slot.BranchID == branchID &&
			slot.Date == date &&
			slot.Time == timeOfDay {
			clone := *slot
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeSlotRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.QueueSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*entity.QueueSlot
	for _, slot := range f.slots {
		if slot.UserID != userID {
			continue
		}
		clone := *slot
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, limit, offset), nil
}

func (f *fakeSlotRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, slot := range f.slots {
		if slot.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSlotRepo) UpdateStatus(ctx context.Context, slotID uuid.UUID, status entity.SlotStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot, ok := f.slots[slotID]
	if !ok {
		return fmt.Errorf("queue slot %s not found", slotID.String())
	}
	slot.Status = status
	return nil
}

func (f *fakeSlotRepo) FindByOrganization(ctx context.Context, organizationID uuid.UUID, filter repository.SlotFilter) ([]*entity.QueueSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*entity.QueueSlot
	for _, slot := range f.slots {
		if !f.belongsTo(slot, organizationID) {
			continue
		}
		if filter.Status != nil && slot.Status != *filter.Status {
			continue
		}
		if filter.BranchID != nil && slot.BranchID != *filter.BranchID {
			continue
		}
		if filter.StartDate != nil && slot.Date < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && slot.Date > *filter.EndDate {
			continue
		}
		clone := *slot
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Date != matched[j].Date {
			return matched[i].Date < matched[j].Date
		}
		return matched[i].Time < matched[j].Time
	})
	return matched, nil
}

func (f *fakeSlotRepo) FindByOrganizationSince(ctx context.Context, organizationID uuid.UUID, since *time.Time) ([]*entity.QueueSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*entity.QueueSlot
	for _, slot := range f.slots {
		if !f.belongsTo(slot, organizationID) {
			continue
		}
		if since != nil && slot.CreatedAt.Before(*since) {
			continue
		}
		clone := *slot
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}

func (f *fakeSlotRepo) belongsTo(slot *entity.QueueSlot, organizationID uuid.UUID) bool {
	branch, ok := f.branches.branches[slot.BranchID]
	return ok && branch.OrganizationID == organizationID
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// fakeMailer records sent mail.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// fakeGateway records booking notifications.
type fakeGateway struct {
	mu      sync.Mutex
	created []uuid.UUID
}

func (f *fakeGateway) BookingCreated(ctx context.Context, slot *entity.QueueSlot, user *entity.User, branch *entity.Branch, org *entity.Organization) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, slot.ID)
	return nil
}

func (f *fakeGateway) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

// testEnv wires every service against the in-memory fakes.
type testEnv struct {
	repo    *repository.Repository
	users   *fakeUserRepo
	orgs    *fakeOrganizationRepo
	brs     *fakeBranchRepo
	slots   *fakeSlotRepo
	mail    *fakeMailer
	gateway *fakeGateway
	tokens  *token.JWTService
	service *Service
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	orgs := newFakeOrganizationRepo()
	brs := newFakeBranchRepo()
	slots := newFakeSlotRepo(brs)

	repo := &repository.Repository{
		User:         users,
		Organization: orgs,
		Branch:       brs,
		QueueSlot:    slots,
	}

	config := &utils.Config{}
	config.App.BaseURL = "http://localhost:8080"

	mail := &fakeMailer{}
	gateway := &fakeGateway{}
	tokens := token.NewJWTService("test-secret", 1)

	return &testEnv{
		repo:    repo,
		users:   users,
		orgs:    orgs,
		brs:     brs,
		slots:   slots,
		mail:    mail,
		gateway: gateway,
		tokens:  tokens,
		service: NewService(repo, config, tokens, mail, gateway, zap.NewNop()),
	}
}

func (e *testEnv) seedUser(role entity.UserRole, isOrg bool) *entity.User {
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:          uuid.New().String() + "@example.com",
		PasswordHash:   "x",
		IsVerified:     true,
		IsOrganization: isOrg,
		Role:           role,
	}
	e.users.Create(context.Background(), user)
	return user
}

func (e *testEnv) seedOrganization(ownerID uuid.UUID) *entity.Organization {
	now := time.Now()
	org := &entity.Organization{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     "Acme Clinics",
		Category: "healthcare",
		OwnerID:  ownerID,
	}
	e.orgs.Create(context.Background(), org)
	return org
}

func (e *testEnv) seedBranch(orgID uuid.UUID, name string) *entity.Branch {
	now := time.Now()
	branch := &entity.Branch{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrganizationID: orgID,
		Name:           name,
		Address:        "1 Main St",
	}
	e.brs.Create(context.Background(), branch)
	return branch
}

func (e *testEnv) seedSlot(branchID, userID uuid.UUID, date, timeOfDay string, status entity.SlotStatus, createdAt time.Time) *entity.QueueSlot {
	slot := &entity.QueueSlot{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: createdAt,
		},
		BranchID: branchID,
		UserID:   userID,
		Date:     date,
		Time:     timeOfDay,
		Status:   status,
	}
	e.slots.mu.Lock()
	e.slots.slots[slot.ID] = slot
	e.slots.mu.Unlock()
	return slot
}

func mustParseUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}
