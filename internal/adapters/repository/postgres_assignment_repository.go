package repository

import (
	"context"
	"fmt"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.AssignmentRepository = (*PostgresAssignmentRepository)(nil)

const assignmentColumns = `id, user_id, brand_id, department, permission, created_at, updated_at`

type PostgresAssignmentRepository struct {
	db *sqlx.DB
}

func NewPostgresAssignmentRepository(db *sqlx.DB) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{db: db}
}

func (r *PostgresAssignmentRepository) Create(ctx context.Context, a *domain.DepartmentAssignment) error {
	query := `
        INSERT INTO department_assignments (id, user_id, brand_id, department, permission, created_at, updated_at)
        VALUES (:id, :user_id, :brand_id, :department, :permission, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrAssignmentExists
		case isForeignKeyViolation(err):
			return domain.ErrBrandNotFound
		}
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

func (r *PostgresAssignmentRepository) GetByID(ctx context.Context, id string) (*domain.DepartmentAssignment, error) {
	var a domain.DepartmentAssignment
	query := `SELECT ` + assignmentColumns + ` FROM department_assignments WHERE id = $1`

	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		return nil, notFoundOr(err, domain.ErrAssignmentNotFound, "get assignment")
	}
	return &a, nil
}

func (r *PostgresAssignmentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.DepartmentAssignment, error) {
	list := []*domain.DepartmentAssignment{}
	query := `SELECT ` + assignmentColumns + ` FROM department_assignments WHERE user_id = $1 ORDER BY brand_id, department`

	if err := r.db.SelectContext(ctx, &list, query, userID); err != nil {
		return nil, fmt.Errorf("list assignments by user: %w", err)
	}
	return list, nil
}

func (r *PostgresAssignmentRepository) ListByBrand(ctx context.Context, brandID string) ([]*domain.DepartmentAssignment, error) {
	list := []*domain.DepartmentAssignment{}
	query := `SELECT ` + assignmentColumns + ` FROM department_assignments WHERE brand_id = $1 ORDER BY department, user_id`

	if err := r.db.SelectContext(ctx, &list, query, brandID); err != nil {
		return nil, fmt.Errorf("list assignments by brand: %w", err)
	}
	return list, nil
}

func (r *PostgresAssignmentRepository) Update(ctx context.Context, a *domain.DepartmentAssignment) error {
	query := `UPDATE department_assignments SET permission=:permission, updated_at=:updated_at WHERE id=:id`

	res, err := r.db.NamedExecContext(ctx, query, a)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

func (r *PostgresAssignmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM department_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}
