package repository

import (
	"context"
	"fmt"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.ClientRepository = (*PostgresClientRepository)(nil)

const clientColumns = `id, brand_id, name, email, phone, company, notes, owner_id,
	created_at, updated_at, deleted_at`

type PostgresClientRepository struct {
	db *sqlx.DB
}

func NewPostgresClientRepository(db *sqlx.DB) *PostgresClientRepository {
	return &PostgresClientRepository{db: db}
}

func (r *PostgresClientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `
        INSERT INTO clients (id, brand_id, name, email, phone, company, notes, owner_id, created_at, updated_at)
        VALUES (:id, :brand_id, :name, :email, :phone, :company, :notes, :owner_id, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrBrandNotFound
		}
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

func (r *PostgresClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	var c domain.Client
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		return nil, notFoundOr(err, domain.ErrClientNotFound, "get client")
	}
	return &c, nil
}

func (r *PostgresClientRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Client, error) {
	list := []*domain.Client{}
	if _, err := selectScoped(ctx, r.db, &list, clientColumns, "clients", filter, false); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PostgresClientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `
        UPDATE clients SET
            name=:name, email=:email, phone=:phone, company=:company, notes=:notes,
            owner_id=:owner_id, updated_at=:updated_at
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
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *PostgresClientRepository) Delete(ctx context.Context, id string) error {
	return softDelete(ctx, r.db, "clients", id, domain.ErrClientNotFound)
}
