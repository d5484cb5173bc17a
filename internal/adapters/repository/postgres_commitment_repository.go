package repository

import (
	"context"
	"fmt"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.CommitmentRepository = (*PostgresCommitmentRepository)(nil)

const commitmentColumns = `id, brand_id, department, owner_id, description, due_day, completed,
	power_move_id, victory_target_id, week_start, created_at, updated_at, deleted_at`

type PostgresCommitmentRepository struct {
	db *sqlx.DB
}

func NewPostgresCommitmentRepository(db *sqlx.DB) *PostgresCommitmentRepository {
	return &PostgresCommitmentRepository{db: db}
}

func (r *PostgresCommitmentRepository) Create(ctx context.Context, c *domain.Commitment) error {
	query := `
        INSERT INTO commitments (
            id, brand_id, department, owner_id, description, due_day, completed,
            power_move_id, victory_target_id, week_start, created_at, updated_at
        ) VALUES (
            :id, :brand_id, :department, :owner_id, :description, :due_day, :completed,
            :power_move_id, :victory_target_id, :week_start, :created_at, :updated_at
        )`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return fmt.Errorf("failed to insert commitment: %w", err)
	}
	return nil
}

func (r *PostgresCommitmentRepository) GetByID(ctx context.Context, id string) (*domain.Commitment, error) {
	var c domain.Commitment
	query := `SELECT ` + commitmentColumns + ` FROM commitments WHERE id = $1 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		return nil, notFoundOr(err, domain.ErrCommitmentNotFound, "get commitment")
	}
	return &c, nil
}

func (r *PostgresCommitmentRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Commitment, error) {
	list := []*domain.Commitment{}
	if _, err := selectScoped(ctx, r.db, &list, commitmentColumns, "commitments", filter, true); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PostgresCommitmentRepository) Update(ctx context.Context, c *domain.Commitment) error {
	query := `
        UPDATE commitments SET
            owner_id=:owner_id, description=:description, due_day=:due_day, completed=:completed,
            power_move_id=:power_move_id, victory_target_id=:victory_target_id, updated_at=:updated_at
        WHERE id=:id AND deleted_at IS NULL`

	res, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCommitmentNotFound
	}
	return nil
}

func (r *PostgresCommitmentRepository) Delete(ctx context.Context, id string) error {
	return softDelete(ctx, r.db, "commitments", id, domain.ErrCommitmentNotFound)
}
