package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	queryTimeout = 3 * time.Second
)

// pgCode extracts the SQLSTATE from either driver's error type.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

// scopeClause renders a ListFilter as a WHERE clause with ? placeholders for
// sqlx.In. ok is false when the filter cannot match any row.
func scopeClause(f domain.ListFilter, departments bool) (where string, args []interface{}, ok bool) {
	conds := []string{"deleted_at IS NULL"}

	if f.BrandID != "" {
		conds = append(conds, "brand_id = ?")
		args = append(args, f.BrandID)
	}
	if f.OwnerID != "" {
		conds = append(conds, "owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if departments {
		if f.Department != "" {
			conds = append(conds, "department = ?")
			args = append(args, f.Department)
		}
		if f.Departments != nil {
			if len(f.Departments) == 0 {
				return "", nil, false
			}
			conds = append(conds, "department IN (?)")
			args = append(args, f.Departments)
		}
	}

	return strings.Join(conds, " AND "), args, true
}

// selectScoped runs a filtered SELECT into dest, expanding IN lists.
func selectScoped(ctx context.Context, db *sqlx.DB, dest interface{}, columns, table string, f domain.ListFilter, departments bool) (bool, error) {
	where, args, ok := scopeClause(f, departments)
	if !ok {
		return false, nil
	}

	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY created_at ASC, id ASC", columns, table, where),
		args...,
	)
	if err != nil {
		return false, fmt.Errorf("build %s query: %w", table, err)
	}

	if err := db.SelectContext(ctx, dest, db.Rebind(query), args...); err != nil {
		return false, fmt.Errorf("list %s: %w", table, err)
	}
	return true, nil
}

// softDelete marks a live row deleted and reports notFound when none matched.
func softDelete(ctx context.Context, db *sqlx.DB, table, id string, notFound error) error {
	query := fmt.Sprintf(`UPDATE %s SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, table)

	res, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete from %s failed: %w", table, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

// exists reports whether a live (not soft-deleted) row with id is present. It
// separates a version conflict from a missing row after a guarded UPDATE.
func exists(ctx context.Context, db *sqlx.DB, table, id string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, fmt.Sprintf(`SELECT count(*) FROM %s WHERE id = $1 AND deleted_at IS NULL`, table), id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("existence check failed: %w", err)
	}
	return count > 0, nil
}

func notFoundOr(err error, notFound error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
