package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.VictoryTargetRepository = (*PostgresVictoryTargetRepository)(nil)

const victoryTargetColumns = `id, brand_id, department, title, target, achieved, unit, owner_id,
	quarters, version, created_at, updated_at, deleted_at`

type PostgresVictoryTargetRepository struct {
	db *sqlx.DB
}

func NewPostgresVictoryTargetRepository(db *sqlx.DB) *PostgresVictoryTargetRepository {
	return &PostgresVictoryTargetRepository{db: db}
}

// victoryTargetRow carries the quarter breakdown as the raw JSONB column.
type victoryTargetRow struct {
	domain.VictoryTarget
	QuartersJSON []byte `db:"quarters"`
}

func (row *victoryTargetRow) toDomain() (*domain.VictoryTarget, error) {
	t := row.VictoryTarget
	if len(row.QuartersJSON) > 0 {
		if err := json.Unmarshal(row.QuartersJSON, &t.Quarters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quarters: %w", err)
		}
	}
	return &t, nil
}

func marshalQuarters(q []domain.QuarterTarget) ([]byte, error) {
	if q == nil {
		q = []domain.QuarterTarget{}
	}
	data, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quarters: %w", err)
	}
	return data, nil
}

func (r *PostgresVictoryTargetRepository) Create(ctx context.Context, t *domain.VictoryTarget) error {
	quarters, err := marshalQuarters(t.Quarters)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO victory_targets (
            id, brand_id, department, title, target, achieved, unit, owner_id,
            quarters, version, created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8,
            $9, 1, $10, $11
        )`

	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.BrandID, t.Department, t.Title, t.Target, t.Achieved, t.Unit, t.OwnerID,
		quarters, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrBrandNotFound
		}
		return fmt.Errorf("failed to insert victory target: %w", err)
	}

	t.Version = 1
	return nil
}

func (r *PostgresVictoryTargetRepository) GetByID(ctx context.Context, id string) (*domain.VictoryTarget, error) {
	var row victoryTargetRow
	query := `SELECT ` + victoryTargetColumns + ` FROM victory_targets WHERE id = $1 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, notFoundOr(err, domain.ErrVictoryTargetNotFound, "get victory target")
	}
	return row.toDomain()
}

func (r *PostgresVictoryTargetRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.VictoryTarget, error) {
	var rows []victoryTargetRow
	if _, err := selectScoped(ctx, r.db, &rows, victoryTargetColumns, "victory_targets", filter, true); err != nil {
		return nil, err
	}

	targets := make([]*domain.VictoryTarget, 0, len(rows))
	for i := range rows {
		t, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func (r *PostgresVictoryTargetRepository) Update(ctx context.Context, t *domain.VictoryTarget) error {
	quarters, err := marshalQuarters(t.Quarters)
	if err != nil {
		return err
	}

	query := `
        UPDATE victory_targets SET
            title=$1, target=$2, achieved=$3, unit=$4, owner_id=$5, quarters=$6,
            updated_at=NOW(), version = version + 1
        WHERE id=$7 AND version=$8 AND deleted_at IS NULL
        RETURNING version, updated_at`

	var newVersion int
	var newUpdatedAt time.Time

	err = r.db.QueryRowContext(ctx, query,
		t.Title, t.Target, t.Achieved, t.Unit, t.OwnerID, quarters,
		t.ID, t.Version,
	).Scan(&newVersion, &newUpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			found, checkErr := exists(ctx, r.db, "victory_targets", t.ID)
			if checkErr != nil {
				return checkErr
			}
			if !found {
				return domain.ErrVictoryTargetNotFound
			}
			return domain.ErrVictoryTargetConflict
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	t.Version = newVersion
	t.UpdatedAt = newUpdatedAt
	return nil
}

func (r *PostgresVictoryTargetRepository) Delete(ctx context.Context, id string) error {
	return softDelete(ctx, r.db, "victory_targets", id, domain.ErrVictoryTargetNotFound)
}
