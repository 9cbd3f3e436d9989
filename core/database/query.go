package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	coreEntity "trainhub-api/core/entity"
	"trainhub-api/core/logger"
	"trainhub-api/core/params"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Conditions accumulates the WHERE clause of a dynamic listing.
type Conditions struct {
	parts []string
	args  []any
}

// Add appends cond, whose single %d is replaced by the placeholder of v.
func (c *Conditions) Add(cond string, v any) {
	c.args = append(c.args, v)
	c.parts = append(c.parts, fmt.Sprintf(cond, len(c.args)))
}

func (c *Conditions) Search(column, term string) {
	if term != "" {
		c.Add(column+" ILIKE $%d", "%"+term+"%")
	}
}

func (c *Conditions) Args() []any {
	return c.args
}

func (c *Conditions) Where() string {
	if len(c.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.parts, " AND ")
}

// Insert runs a named INSERT ... RETURNING id, created_at, updated_at into base.
func Insert(ctx context.Context, db Querier, op, query string, arg any, base *coreEntity.BaseEntity) error {
	query, args, err := sqlx.Named(query, arg)
	if err != nil {
		return err
	}
	if err := db.QueryRowxContext(ctx, db.Rebind(query), args...).Scan(&base.ID, &base.CreatedAt, &base.UpdatedAt); err != nil {
		logger.Error(op, err)
		return err
	}
	return nil
}

// Update runs a named UPDATE ... RETURNING updated_at. A missing row yields
// sql.ErrNoRows.
func Update(ctx context.Context, db Querier, op, query string, arg any, updatedAt *time.Time) error {
	query, args, err := sqlx.Named(query, arg)
	if err != nil {
		return err
	}
	if err := db.QueryRowxContext(ctx, db.Rebind(query), args...).Scan(updatedAt); err != nil {
		if !IsNoRows(err) {
			logger.Error(op, err)
		}
		return err
	}
	return nil
}

func Remove(ctx context.Context, db Querier, op, table string, id uuid.UUID) error {
	result, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		logger.Error(op, err)
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logger.Error(op+":RowsAffected", err)
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetOne returns nil, nil when the query matches no row.
func GetOne[T any](ctx context.Context, db Querier, op, query string, args ...any) (*T, error) {
	var out T
	if err := db.GetContext(ctx, &out, query, args...); err != nil {
		if IsNoRows(err) {
			return nil, nil
		}
		logger.Error(op, err)
		return nil, err
	}
	return &out, nil
}

func Paginate[T any](ctx context.Context, db Querier, op, from string, cond *Conditions, columns, orderBy string, p params.QueryParams) (*coreEntity.Pagination[T], error) {
	baseQuery := ` FROM ` + from + cond.Where()

	var totalItems int
	if err := db.GetContext(ctx, &totalItems, "SELECT COUNT(*)"+baseQuery, cond.args...); err != nil {
		logger.Error(op+":Count", err)
		return nil, err
	}

	dataQuery := `SELECT ` + columns + baseQuery +
		fmt.Sprintf(` ORDER BY %s LIMIT $%d OFFSET $%d`, orderBy, len(cond.args)+1, len(cond.args)+2)
	args := append(append([]any{}, cond.args...), p.PageSize, p.Offset())

	items := []T{}
	if err := db.SelectContext(ctx, &items, dataQuery, args...); err != nil {
		logger.Error(op+":Select", err)
		return nil, err
	}
	return coreEntity.NewPagination(items, totalItems, p.PageNumber, p.PageSize), nil
}
