package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.SnapshotRepository = (*PostgresSnapshotRepository)(nil)

type PostgresSnapshotRepository struct {
	db *sqlx.DB
}

func NewPostgresSnapshotRepository(db *sqlx.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

func (r *PostgresSnapshotRepository) Upsert(ctx context.Context, s *domain.WeeklySnapshot) error {
	query := `
        INSERT INTO weekly_snapshots (
            brand_id, department, week_start, average_score, green_count, total_targets, status, updated_at
        ) VALUES (
            :brand_id, :department, :week_start, :average_score, :green_count, :total_targets, :status, :updated_at
        )
        ON CONFLICT (brand_id, department, week_start) DO UPDATE SET
            average_score = EXCLUDED.average_score,
            green_count = EXCLUDED.green_count,
            total_targets = EXCLUDED.total_targets,
            status = EXCLUDED.status,
            updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("failed to upsert weekly snapshot: %w", err)
	}
	return nil
}

func (r *PostgresSnapshotRepository) ListRange(ctx context.Context, brandID, department string, from, to time.Time) ([]*domain.WeeklySnapshot, error) {
	query := `
        SELECT brand_id, department, week_start, average_score, green_count, total_targets, status, updated_at
        FROM weekly_snapshots
        WHERE brand_id = $1 AND department = $2 AND week_start >= $3 AND week_start < $4
        ORDER BY week_start ASC`

	list := []*domain.WeeklySnapshot{}
	if err := r.db.SelectContext(ctx, &list, query, brandID, department, from, to); err != nil {
		return nil, fmt.Errorf("list weekly snapshots: %w", err)
	}
	return list, nil
}
