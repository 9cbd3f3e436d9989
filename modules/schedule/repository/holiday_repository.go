package repository

import (
	"context"
	"trainhub-api/core/database"
	"trainhub-api/core/logger"
	"trainhub-api/modules/schedule/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type HolidayRepository struct {
	db database.Querier
}

func NewHolidayRepository(db database.Querier) *HolidayRepository {
	return &HolidayRepository{db: db}
}

func (r *HolidayRepository) Create(ctx context.Context, h *entity.Holiday) error {
	query := `
		INSERT INTO holidays (center_id, name, description, start_date, end_date, is_recurring)
		VALUES (:center_id, :name, :description, :start_date, :end_date, :is_recurring)
		RETURNING id, created_at, updated_at
	`
	query, args, err := sqlx.Named(query, h)
	if err != nil {
		return err
	}
	err = r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		logger.Error("HolidayRepository:Create", err)
		return err
	}
	return nil
}

func (r *HolidayRepository) Update(ctx context.Context, h *entity.Holiday) error {
	query := `
		UPDATE holidays
		SET name = $1, description = $2, start_date = $3, end_date = $4, is_recurring = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, h.Name, h.Description, h.StartDate, h.EndDate, h.IsRecurring, h.ID).Scan(&h.UpdatedAt)
	if err != nil {
		logger.Error("HolidayRepository:Update", err)
		return err
	}
	return nil
}

func (r *HolidayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = $1`, id); err != nil {
		logger.Error("HolidayRepository:Delete", err)
		return err
	}
	return nil
}

func (r *HolidayRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Holiday, error) {
	var h entity.Holiday
	query := `
		SELECT id, center_id, name, description, start_date, end_date, is_recurring, created_at, updated_at
		FROM holidays
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &h, query, id); err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		logger.Error("HolidayRepository:GetByID", err)
		return nil, err
	}
	return &h, nil
}

func (r *HolidayRepository) ListByCenter(ctx context.Context, centerID uuid.UUID) ([]entity.Holiday, error) {
	query := `
		SELECT id, center_id, name, description, start_date, end_date, is_recurring, created_at, updated_at
		FROM holidays
		WHERE center_id = $1
		ORDER BY start_date
	`
	items := []entity.Holiday{}
	if err := r.db.SelectContext(ctx, &items, query, centerID); err != nil {
		logger.Error("HolidayRepository:ListByCenter", err)
		return nil, err
	}
	return items, nil
}
