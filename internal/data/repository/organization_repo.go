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

type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error)
	FindAll(ctx context.Context, category *string, limit, offset int) ([]*entity.Organization, error)
	CountAll(ctx context.Context, category *string) (int64, error)
	Update(ctx context.Context, org *entity.Organization) error
}

type organizationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrganizationRepository(db database.PgxIface, log *zap.Logger) OrganizationRepository {
	return &organizationRepository{
		db:  db,
		log: log.With(zap.String("repository", "organization")),
	}
}

func (r *organizationRepository) Create(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, name, category, description, address, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		org.ID,
		org.Name,
		org.Category,
		org.Description,
		org.Address,
		org.OwnerID,
		org.CreatedAt,
		org.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create organization",
			zap.Error(err),
			zap.String("name", org.Name),
			zap.String("owner_id", org.OwnerID.String()),
		)
		return fmt.Errorf("create organization %s: %w", org.Name, err)
	}

	return nil
}

func (r *organizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error) {
	query := `
		SELECT id, name, category, description, address, owner_id, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`

	var org entity.Organization
	err := r.db.QueryRow(ctx, query, id).Scan(
		&org.ID,
		&org.Name,
		&org.Category,
		&org.Description,
		&org.Address,
		&org.OwnerID,
		&org.CreatedAt,
		&org.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find organization by ID",
			zap.Error(err),
			zap.String("organization_id", id.String()),
		)
		return nil, fmt.Errorf("find organization by ID %s: %w", id.String(), err)
	}

	return &org, nil
}

func (r *organizationRepository) FindAll(ctx context.Context, category *string, limit, offset int) ([]*entity.Organization, error) {
	query := `
		SELECT id, name, category, description, address, owner_id, created_at, updated_at
		FROM organizations
		WHERE ($1::text IS NULL OR category = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, category, limit, offset)
	if err != nil {
		r.log.Error("Failed to find organizations",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find organizations limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var orgs []*entity.Organization
	for rows.Next() {
		var org entity.Organization
		err := rows.Scan(
			&org.ID,
			&org.Name,
			&org.Category,
			&org.Description,
			&org.Address,
			&org.OwnerID,
			&org.CreatedAt,
			&org.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan organization row", zap.Error(err))
			return nil, fmt.Errorf("scan organization row: %w", err)
		}
		orgs = append(orgs, &org)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate organization rows: %w", err)
	}

	return orgs, nil
}

func (r *organizationRepository) CountAll(ctx context.Context, category *string) (int64, error) {
	query := `SELECT COUNT(*) FROM organizations WHERE ($1::text IS NULL OR category = $1)`

	var count int64
	err := r.db.QueryRow(ctx, query, category).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count organizations", zap.Error(err))
		return 0, fmt.Errorf("count organizations: %w", err)
	}

	return count, nil
}

func (r *organizationRepository) Update(ctx context.Context, org *entity.Organization) error {
	query := `
		UPDATE organizations
		SET name = $2, category = $3, description = $4, address = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		org.ID,
		org.Name,
		org.Category,
		org.Description,
		org.Address,
		org.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update organization",
			zap.Error(err),
			zap.String("organization_id", org.ID.String()),
		)
		return fmt.Errorf("update organization %s: %w", org.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("organization %s not found", org.ID.String())
	}

	return nil
}
