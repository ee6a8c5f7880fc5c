package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"queue-booking/internal/authz"
	"queue-booking/internal/data/entity"
	"queue-booking/internal/data/repository"
	"queue-booking/internal/dto/response"
	"queue-booking/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StatsService interface {
	Get(ctx context.Context, actorID, orgID uuid.UUID, period string) (*response.StatsResponse, error)
}

type statsService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStatsService(repo *repository.Repository, log *zap.Logger) StatsService {
	return &statsService{
		repo: repo,
		log:  log.With(zap.String("service", "stats")),
	}
}

func (s *statsService) Get(ctx context.Context, actorID, orgID uuid.UUID, period string) (*response.StatsResponse, error) {
	actor, err := s.repo.User.FindByID(ctx, actorID)
	if err != nil {
		s.log.Error("Failed to find acting user", zap.Error(err), zap.String("user_id", actorID.String()))
		return nil, apperrors.Internal("failed to find user", err)
	}
	if actor == nil {
		return nil, apperrors.Unauthorized("user no longer exists")
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

	branches, err := s.repo.Branch.FindByOrganizationID(ctx, orgID)
	if err != nil {
		s.log.Error("Failed to list branches", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, apperrors.Internal("failed to list branches", err)
	}

	now := time.Now()
	since := periodCutoff(period, now)

	slots, err := s.repo.QueueSlot.FindByOrganizationSince(ctx, orgID, since)
	if err != nil {
		s.log.Error("Failed to list bookings for stats", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, apperrors.Internal("failed to load bookings", err)
	}

	stats := &response.StatsResponse{
		TotalBranches:   len(branches),
		PopularBranches: popularBranches(branches, slots),
		BookingTrends:   buildTrends(period, now, slots),
	}
	for _, slot := range slots {
		switch slot.Status {
		case entity.SlotStatusBooked:
			stats.ActiveBookings++
		case entity.SlotStatusCancelled:
			stats.CancelledBookings++
		case entity.SlotStatusConfirmed:
			stats.ConfirmedBookings++
		}
	}

	return stats, nil
}

// periodCutoff returns the start of the reporting window, or nil for the
// unbounded "all" period. Unknown periods fall back to unbounded.
func periodCutoff(period string, now time.Time) *time.Time {
	var cutoff time.Time
	switch period {
	case "day":
		cutoff = now.Add(-24 * time.Hour)
	case "week":
		cutoff = now.AddDate(0, 0, -7)
	case "month":
		cutoff = now.AddDate(0, 0, -30)
	case "year":
		cutoff = now.AddDate(0, 0, -365)
	default:
		return nil
	}
	return &cutoff
}

// popularBranches ranks every branch of the organization by booking count
// over the window, keeping zero-count branches so a new branch still shows
// up in the dashboard.
func popularBranches(branches []*entity.Branch, slots []*entity.QueueSlot) []response.BranchPopularity {
	counts := make(map[uuid.UUID]int, len(branches))
	for _, slot := range slots {
		counts[slot.BranchID]++
	}

	ranked := make([]response.BranchPopularity, 0, len(branches))
	for _, branch := range branches {
		ranked = append(ranked, response.BranchPopularity{
			BranchName:    branch.Name,
			BookingsCount: counts[branch.ID],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].BookingsCount > ranked[j].BookingsCount
	})
	return ranked
}

// buildTrends buckets bookings by creation time. For "day" the series is 24
// hourly buckets covering the last 24 hours; every other period uses daily
// buckets covering the window. The buckets tile the window exactly, so the
// per-bucket counts sum to the windowed totals.
func buildTrends(period string, now time.Time, slots []*entity.QueueSlot) []response.TrendBucket {
	if period == "day" {
		return hourlyTrends(now, slots)
	}

	days := 365
	switch period {
	case "week":
		days = 7
	case "month":
		days = 30
	}
	return dailyTrends(now, days, slots)
}

func hourlyTrends(now time.Time, slots []*entity.QueueSlot) []response.TrendBucket {
	start := now.Add(-24 * time.Hour)

	counts := make([]int, 24)
	for _, slot := range slots {
		if slot.CreatedAt.Before(start) || !slot.CreatedAt.Before(now) {
			continue
		}
		idx := int(slot.CreatedAt.Sub(start) / time.Hour)
		if idx >= 0 && idx < 24 {
			counts[idx]++
		}
	}

	buckets := make([]response.TrendBucket, 24)
	for i := range buckets {
		bucketStart := start.Add(time.Duration(i) * time.Hour)
		buckets[i] = response.TrendBucket{
			Period:        fmt.Sprintf("%02d:00", bucketStart.Truncate(time.Hour).Hour()),
			BookingsCount: counts[i],
		}
	}
	return buckets
}

func dailyTrends(now time.Time, days int, slots []*entity.QueueSlot) []response.TrendBucket {
	start := now.AddDate(0, 0, -days)

	counts := make([]int, days)
	for _, slot := range slots {
		if slot.CreatedAt.Before(start) || !slot.CreatedAt.Before(now) {
			continue
		}
		idx := int(slot.CreatedAt.Sub(start).Hours() / 24)
		if idx >= 0 && idx < days {
			counts[idx]++
		}
	}

	buckets := make([]response.TrendBucket, days)
	for i := range buckets {
		bucketStart := start.AddDate(0, 0, i)
		buckets[i] = response.TrendBucket{
			Period:        bucketStart.Format("2006-01-02"),
			BookingsCount: counts[i],
		}
	}
	return buckets
}
