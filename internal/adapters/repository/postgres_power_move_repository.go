package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.PowerMoveRepository = (*PostgresPowerMoveRepository)(nil)

const powerMoveColumns = `id, brand_id, department, name, frequency, target_per_cycle, progress,
	owner_id, victory_target_id, last_reset_at, version, created_at, updated_at, deleted_at`

type PostgresPowerMoveRepository struct {
	db *sqlx.DB
}

func NewPostgresPowerMoveRepository(db *sqlx.DB) *PostgresPowerMoveRepository {
	return &PostgresPowerMoveRepository{db: db}
}

func (r *PostgresPowerMoveRepository) Create(ctx context.Context, m *domain.PowerMove) error {
	query := `
        INSERT INTO power_moves (
            id, brand_id, department, name, frequency, target_per_cycle, progress,
            owner_id, victory_target_id, last_reset_at, version, created_at, updated_at
        ) VALUES (
            :id, :brand_id, :department, :name, :frequency, :target_per_cycle, :progress,
            :owner_id, :victory_target_id, :last_reset_at, 1, :created_at, :updated_at
        )`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrBrandNotFound
		}
		return fmt.Errorf("failed to insert power move: %w", err)
	}

	m.Version = 1
	return nil
}

func (r *PostgresPowerMoveRepository) GetByID(ctx context.Context, id string) (*domain.PowerMove, error) {
	var m domain.PowerMove
	query := `SELECT ` + powerMoveColumns + ` FROM power_moves WHERE id = $1 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		return nil, notFoundOr(err, domain.ErrPowerMoveNotFound, "get power move")
	}
	return &m, nil
}

func (r *PostgresPowerMoveRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.PowerMove, error) {
	moves := []*domain.PowerMove{}
	if _, err := selectScoped(ctx, r.db, &moves, powerMoveColumns, "power_moves", filter, true); err != nil {
		return nil, err
	}
	return moves, nil
}

func (r *PostgresPowerMoveRepository) Update(ctx context.Context, m *domain.PowerMove) error {
	query := `
        UPDATE power_moves SET
            name=$1, frequency=$2, target_per_cycle=$3, progress=$4, owner_id=$5,
            victory_target_id=$6, last_reset_at=$7,
            updated_at=NOW(), version = version + 1
        WHERE id=$8 AND version=$9 AND deleted_at IS NULL
        RETURNING version, updated_at`

	var newVersion int
	var newUpdatedAt time.Time

	err := r.db.QueryRowContext(ctx, query,
		m.Name, m.Frequency, m.TargetPerCycle, m.Progress, m.OwnerID,
		m.VictoryTargetID, m.LastResetAt,
		m.ID, m.Version,
	).Scan(&newVersion, &newUpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			found, checkErr := exists(ctx, r.db, "power_moves", m.ID)
			if checkErr != nil {
				return checkErr
			}
			if !found {
				return domain.ErrPowerMoveNotFound
			}
			return domain.ErrPowerMoveConflict
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	m.Version = newVersion
	m.UpdatedAt = newUpdatedAt
	return nil
}

func (r *PostgresPowerMoveRepository) Delete(ctx context.Context, id string) error {
	return softDelete(ctx, r.db, "power_moves", id, domain.ErrPowerMoveNotFound)
}
