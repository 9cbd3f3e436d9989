package repository

import (
	"context"
	"trainhub-api/core/database"
	"trainhub-api/core/logger"
	"trainhub-api/modules/schedule/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type AvailabilityRepository struct {
	db database.Querier
}

func NewAvailabilityRepository(db database.Querier) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) Create(ctx context.Context, a *entity.TeacherAvailability) error {
	query := `
		INSERT INTO teacher_availabilities (teacher_id, day_of_week, start_time, end_time, is_available)
		VALUES (:teacher_id, :day_of_week, :start_time, :end_time, :is_available)
		RETURNING id, created_at, updated_at
	`
	query, args, err := sqlx.Named(query, a)
	if err != nil {
		return err
	}
	err = r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		logger.Error("AvailabilityRepository:Create", err)
		return err
	}
	return nil
}

func (r *AvailabilityRepository) Update(ctx context.Context, a *entity.TeacherAvailability) error {
	query := `
		UPDATE teacher_availabilities
		SET day_of_week = $1, start_time = $2, end_time = $3, is_available = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, a.DayOfWeek, a.StartTime, a.EndTime, a.IsAvailable, a.ID).Scan(&a.UpdatedAt)
	if err != nil {
		logger.Error("AvailabilityRepository:Update", err)
		return err
	}
	return nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teacher_availabilities WHERE id = $1`, id); err != nil {
		logger.Error("AvailabilityRepository:Delete", err)
		return err
	}
	return nil
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TeacherAvailability, error) {
	var a entity.TeacherAvailability
	query := `
		SELECT id, teacher_id, day_of_week, start_time, end_time, is_available, created_at, updated_at
		FROM teacher_availabilities
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetByID", err)
		return nil, err
	}
	return &a, nil
}

func (r *AvailabilityRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]entity.TeacherAvailability, error) {
	query := `
		SELECT id, teacher_id, day_of_week, start_time, end_time, is_available, created_at, updated_at
		FROM teacher_availabilities
		WHERE teacher_id = $1
		ORDER BY array_position(ARRAY['MON','TUE','WED','THU','FRI','SAT','SUN'], day_of_week), start_time
	`
	items := []entity.TeacherAvailability{}
	if err := r.db.SelectContext(ctx, &items, query, teacherID); err != nil {
		logger.Error("AvailabilityRepository:ListByTeacher", err)
		return nil, err
	}
	return items, nil
}

// GetTeacherScope returns the center and association of teacherID, or nil
// when no teacher has that id.
func (r *AvailabilityRepository) GetTeacherScope(ctx context.Context, teacherID uuid.UUID) (*entity.TeacherScope, error) {
	var scope entity.TeacherScope
	query := `
		SELECT u.center_id, COALESCE(c.association_id, u.association_id) AS association_id
		FROM users u
		LEFT JOIN centers c ON c.id = u.center_id
		WHERE u.id = $1 AND u.role = 'teacher'
	`
	if err := r.db.GetContext(ctx, &scope, query, teacherID); err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetTeacherScope", err)
		return nil, err
	}
	return &scope, nil
}
