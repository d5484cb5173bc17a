package repository

import (
	"context"
	"fmt"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.TaskRepository = (*PostgresTaskRepository)(nil)

const taskColumns = `id, brand_id, department, title, owner_id, due_date, status,
	created_at, updated_at, deleted_at`

type PostgresTaskRepository struct {
	db *sqlx.DB
}

func NewPostgresTaskRepository(db *sqlx.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

func (r *PostgresTaskRepository) Create(ctx context.Context, t *domain.Task) error {
	query := `
        INSERT INTO tasks (id, brand_id, department, title, owner_id, due_date, status, created_at, updated_at)
        VALUES (:id, :brand_id, :department, :title, :owner_id, :due_date, :status, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		return nil, notFoundOr(err, domain.ErrTaskNotFound, "get task")
	}
	return &t, nil
}

func (r *PostgresTaskRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Task, error) {
	tasks := []*domain.Task{}
	if _, err := selectScoped(ctx, r.db, &tasks, taskColumns, "tasks", filter, true); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *PostgresTaskRepository) Update(ctx context.Context, t *domain.Task) error {
	query := `
        UPDATE tasks SET
            title=:title, owner_id=:owner_id, due_date=:due_date, status=:status, updated_at=:updated_at
        WHERE id=:id AND deleted_at IS NULL`

	res, err := r.db.NamedExecContext(ctx, query, t)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, id string) error {
	return softDelete(ctx, r.db, "tasks", id, domain.ErrTaskNotFound)
}
