package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"queue-booking/internal/data/entity"
	"queue-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrSlotTaken indicates the partial unique index on
// (branch_id, date, time) WHERE status = 'booked' fired. The index, not the
// advisory pre-check, is what makes concurrent bookings of one triple safe.
var ErrSlotTaken = errors.New("time slot is already booked")

// SlotFilter narrows organization-wide booking listings.
type SlotFilter struct {
	Status    *entity.SlotStatus
	BranchID  *uuid.UUID
	StartDate *string
	EndDate   *string
}

type QueueSlotRepository interface {
	Create(ctx context.Context, slot *entity.QueueSlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.QueueSlot, error)
	FindActiveByTriple(ctx context.Context, branchID uuid.UUID, date, timeOfDay string) (*entity.QueueSlot, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.QueueSlot, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, slotID uuid.UUID, status entity.SlotStatus) error

	// Business queries
	FindByOrganization(ctx context.Context, organizationID uuid.UUID, filter SlotFilter) ([]*entity.QueueSlot, error)
	FindByOrganizationSince(ctx context.Context, organizationID uuid.UUID, since *time.Time) ([]*entity.QueueSlot, error)
}

type queueSlotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewQueueSlotRepository(db database.PgxIface, log *zap.Logger) QueueSlotRepository {
	return &queueSlotRepository{
		db:  db,
		log: log.With(zap.String("repository", "queue_slot")),
	}
}

func (r *queueSlotRepository) Create(ctx context.Context, slot *entity.QueueSlot) error {
	query := `
		INSERT INTO queue_slots (id, branch_id, user_id, date, time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.BranchID,
		slot.UserID,
		slot.Date,
		slot.Time,
		slot.Status,
		slot.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrSlotTaken
		}
		r.log.Error("Failed to create queue slot",
			zap.Error(err),
			zap.String("branch_id", slot.BranchID.String()),
			zap.String("date", slot.Date),
			zap.String("time", slot.Time),
		)
		return fmt.Errorf("create queue slot at %s %s: %w", slot.Date, slot.Time, err)
	}

	return nil
}

func (r *queueSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.QueueSlot, error) {
	query := `
		SELECT id, branch_id, user_id, date, time, status, created_at
		FROM queue_slots
		WHERE id = $1
	`

	var slot entity.QueueSlot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.BranchID,
		&slot.UserID,
		&slot.Date,
		&slot.Time,
		&slot.Status,
		&slot.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find queue slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find queue slot by ID %s: %w", id.String(), err)
	}

	return &slot, nil
}

func (r *queueSlotRepository) FindActiveByTriple(ctx context.Context, branchID uuid.UUID, date, timeOfDay string) (*entity.QueueSlot, error) {
	query := `
		SELECT id, branch_id, user_id, date, time, status, created_at
		FROM queue_slots
		WHERE branch_id = $1 AND date = $2 AND time = $3 AND status = 'booked'
	`

	var slot entity.QueueSlot
	err := r.db.QueryRow(ctx, query, branchID, date, timeOfDay).Scan(
		&slot.ID,
		&slot.BranchID,
		&slot.UserID,
		&slot.Date,
		&slot.Time,
		&slot.Status,
		&slot.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active slot by triple",
			zap.Error(err),
			zap.String("branch_id", branchID.String()),
			zap.String("date", date),
			zap.String("time", timeOfDay),
		)
		return nil, fmt.Errorf("find active slot at %s %s: %w", date, timeOfDay, err)
	}

	return &slot, nil
}

func (r *queueSlotRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.QueueSlot, error) {
	query := `
		SELECT id, branch_id, user_id, date, time, status, created_at
		FROM queue_slots
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find slots by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find slots by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanSlots(rows, r.log)
}

func (r *queueSlotRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM queue_slots WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count slots by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count slots by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *queueSlotRepository) UpdateStatus(ctx context.Context, slotID uuid.UUID, status entity.SlotStatus) error {
	query := `UPDATE queue_slots SET status = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, slotID, status)
	if err != nil {
		r.log.Error("Failed to update slot status",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update slot %s status to %s: %w", slotID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("queue slot %s not found", slotID.String())
	}

	return nil
}

func (r *queueSlotRepository) FindByOrganization(ctx context.Context, organizationID uuid.UUID, filter SlotFilter) ([]*entity.QueueSlot, error) {
	query := `
		SELECT qs.id, qs.branch_id, qs.user_id, qs.date, qs.time, qs.status, qs.created_at
		FROM queue_slots qs
		JOIN branches b ON b.id = qs.branch_id
		WHERE b.organization_id = $1
		  AND ($2::text IS NULL OR qs.status = $2)
		  AND ($3::uuid IS NULL OR qs.branch_id = $3)
		  AND ($4::text IS NULL OR qs.date >= $4)
		  AND ($5::text IS NULL OR qs.date <= $5)
		ORDER BY qs.date, qs.time
	`

	rows, err := r.db.Query(ctx, query,
		organizationID,
		filter.Status,
		filter.BranchID,
		filter.StartDate,
		filter.EndDate,
	)
	if err != nil {
		r.log.Error("Failed to find slots by organization",
			zap.Error(err),
			zap.String("organization_id", organizationID.String()),
		)
		return nil, fmt.Errorf("find slots by organization %s: %w", organizationID.String(), err)
	}
	defer rows.Close()

	return scanSlots(rows, r.log)
}

func (r *queueSlotRepository) FindByOrganizationSince(ctx context.Context, organizationID uuid.UUID, since *time.Time) ([]*entity.QueueSlot, error) {
	query := `
		SELECT qs.id, qs.branch_id, qs.user_id, qs.date, qs.time, qs.status, qs.created_at
		FROM queue_slots qs
		JOIN branches b ON b.id = qs.branch_id
		WHERE b.organization_id = $1
		  AND ($2::timestamptz IS NULL OR qs.created_at >= $2)
		ORDER BY qs.created_at
	`

	rows, err := r.db.Query(ctx, query, organizationID, since)
	if err != nil {
		r.log.Error("Failed to find slots by organization since",
			zap.Error(err),
			zap.String("organization_id", organizationID.String()),
		)
		return nil, fmt.Errorf("find slots by organization %s since: %w", organizationID.String(), err)
	}
	defer rows.Close()

	return scanSlots(rows, r.log)
}

func scanSlots(rows pgx.Rows, log *zap.Logger) ([]*entity.QueueSlot, error) {
	var slots []*entity.QueueSlot
	for rows.Next() {
		var slot entity.QueueSlot
		err := rows.Scan(
			&slot.ID,
			&slot.BranchID,
			&slot.UserID,
			&slot.Date,
			&slot.Time,
			&slot.Status,
			&slot.CreatedAt,
		)
		if err != nil {
			log.Error("Failed to scan queue slot row", zap.Error(err))
			return nil, fmt.Errorf("scan queue slot row: %w", err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate queue slot rows: %w", err)
	}

	return slots, nil
}
