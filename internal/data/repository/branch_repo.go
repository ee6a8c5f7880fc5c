package repository

import (
	"context"
	"fmt"

	"queue-booking/internal/data/entity"
	"queue-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error)
	FindAll(ctx context.Context, organizationID *uuid.UUID, limit, offset int) ([]*entity.Branch, error)
	FindByOrganizationID(ctx context.Context, organizationID uuid.UUID) ([]*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	DeleteWithSlots(ctx context.Context, id uuid.UUID) error
}

type branchRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBranchRepository(db database.PgxIface, log *zap.Logger) BranchRepository {
	return &branchRepository{
		db:  db,
		log: log.With(zap.String("repository", "branch")),
	}
}

func (r *branchRepository) Create(ctx context.Context, branch *entity.Branch) error {
	query := `
		INSERT INTO branches (id, organization_id, name, address, schedule, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		branch.ID,
		branch.OrganizationID,
		branch.Name,
		branch.Address,
		branch.Schedule,
		branch.CreatedAt,
		branch.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create branch",
			zap.Error(err),
			zap.String("name", branch.Name),
			zap.String("organization_id", branch.OrganizationID.String()),
		)
		return fmt.Errorf("create branch %s: %w", branch.Name, err)
	}

	return nil
}

func (r *branchRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	query := `
		SELECT id, organization_id, name, address, schedule, created_at, updated_at
		FROM branches
		WHERE id = $1
	`

	var branch entity.Branch
	err := r.db.QueryRow(ctx, query, id).Scan(
		&branch.ID,
		&branch.OrganizationID,
		&branch.Name,
		&branch.Address,
		&branch.Schedule,
		&branch.CreatedAt,
		&branch.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find branch by ID",
			zap.Error(err),
			zap.String("branch_id", id.String()),
		)
		return nil, fmt.Errorf("find branch by ID %s: %w", id.String(), err)
	}

	return &branch, nil
}

func (r *branchRepository) FindAll(ctx context.Context, organizationID *uuid.UUID, limit, offset int) ([]*entity.Branch, error) {
	query := `
		SELECT id, organization_id, name, address, schedule, created_at, updated_at
		FROM branches
		WHERE ($1::uuid IS NULL OR organization_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find branches",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find branches limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return scanBranches(rows, r.log)
}

func (r *branchRepository) FindByOrganizationID(ctx context.Context, organizationID uuid.UUID) ([]*entity.Branch, error) {
	query := `
		SELECT id, organization_id, name, address, schedule, created_at, updated_at
		FROM branches
		WHERE organization_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		r.log.Error("Failed to find branches by organization ID",
			zap.Error(err),
			zap.String("organization_id", organizationID.String()),
		)
		return nil, fmt.Errorf("find branches by organization ID %s: %w", organizationID.String(), err)
	}
	defer rows.Close()

	return scanBranches(rows, r.log)
}

func scanBranches(rows pgx.Rows, log *zap.Logger) ([]*entity.Branch, error) {
	var branches []*entity.Branch
	for rows.Next() {
		var branch entity.Branch
		err := rows.Scan(
			&branch.ID,
			&branch.OrganizationID,
			&branch.Name,
			&branch.Address,
			&branch.Schedule,
			&branch.CreatedAt,
			&branch.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan branch row", zap.Error(err))
			return nil, fmt.Errorf("scan branch row: %w", err)
		}
		branches = append(branches, &branch)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate branch rows: %w", err)
	}

	return branches, nil
}

func (r *branchRepository) Update(ctx context.Context, branch *entity.Branch) error {
	query := `
		UPDATE branches
		SET name = $2, address = $3, schedule = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		branch.ID,
		branch.Name,
		branch.Address,
		branch.Schedule,
		branch.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update branch",
			zap.Error(err),
			zap.String("branch_id", branch.ID.String()),
		)
		return fmt.Errorf("update branch %s: %w", branch.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("branch %s not found", branch.ID.String())
	}

	return nil
}

// DeleteWithSlots removes the branch and every queue slot booked at it in
// one transaction, so a half-deleted branch never becomes observable.
func (r *branchRepository) DeleteWithSlots(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete branch %s: %w", id.String(), err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM queue_slots WHERE branch_id = $1`, id); err != nil {
		r.log.Error("Failed to delete branch slots",
			zap.Error(err),
			zap.String("branch_id", id.String()),
		)
		return fmt.Errorf("delete slots of branch %s: %w", id.String(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete branch",
			zap.Error(err),
			zap.String("branch_id", id.String()),
		)
		return fmt.Errorf("delete branch %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("branch %s not found", id.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete branch %s: %w", id.String(), err)
	}

	r.log.Info("Branch deleted", zap.String("branch_id", id.String()))
	return nil
}
