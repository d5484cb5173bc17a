package repository

import (
	"context"
	"fmt"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.BrandRepository = (*PostgresBrandRepository)(nil)

const brandColumns = `id, name, slug, created_at, updated_at, deleted_at`

type PostgresBrandRepository struct {
	db *sqlx.DB
}

func NewPostgresBrandRepository(db *sqlx.DB) *PostgresBrandRepository {
	return &PostgresBrandRepository{db: db}
}

func (r *PostgresBrandRepository) Create(ctx context.Context, b *domain.Brand) error {
	query := `
        INSERT INTO brands (id, name, slug, created_at, updated_at)
        VALUES (:id, :name, :slug, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, b); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrBrandSlugDuplicate
		}
		return fmt.Errorf("failed to insert brand: %w", err)
	}
	return nil
}

func (r *PostgresBrandRepository) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	var b domain.Brand
	query := `SELECT ` + brandColumns + ` FROM brands WHERE id = $1 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		return nil, notFoundOr(err, domain.ErrBrandNotFound, "get brand")
	}
	return &b, nil
}

func (r *PostgresBrandRepository) List(ctx context.Context) ([]*domain.Brand, error) {
	brands := []*domain.Brand{}
	query := `SELECT ` + brandColumns + ` FROM brands WHERE deleted_at IS NULL ORDER BY name ASC`

	if err := r.db.SelectContext(ctx, &brands, query); err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

func (r *PostgresBrandRepository) Update(ctx context.Context, b *domain.Brand) error {
	query := `
        UPDATE brands SET name=:name, slug=:slug, updated_at=:updated_at
        WHERE id=:id AND deleted_at IS NULL`

	res, err := r.db.NamedExecContext(ctx, query, b)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrBrandSlugDuplicate
		}
		return fmt.Errorf("update query failed: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrBrandNotFound
	}
	return nil
}

func (r *PostgresBrandRepository) Delete(ctx context.Context, id string) error {
	return softDelete(ctx, r.db, "brands", id, domain.ErrBrandNotFound)
}
