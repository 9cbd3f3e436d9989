package repository

import (
	"context"
	"fmt"
	"strings"
	"trainhub-api/core/database"
	coreEntity "trainhub-api/core/entity"
	"trainhub-api/core/logger"
	"trainhub-api/core/params"
	"trainhub-api/modules/schedule/entity"
	"trainhub-api/modules/schedule/service"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const scheduleColumns = `
	id, training_id, center_id, group_id, teacher_id, room_id, subject,
	day_of_week, start_time, end_time, is_active, is_recurring, recurrence_type,
	start_date, recurrence_end_date, is_exception, parent_id, exception_date,
	created_by, created_at, updated_at`

type ScheduleRepository struct {
	db database.Querier
}

func NewScheduleRepository(db database.Querier) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// WithTx returns a repository whose statements run inside tx.
func (r *ScheduleRepository) WithTx(tx *sqlx.Tx) *ScheduleRepository {
	return &ScheduleRepository{db: tx}
}

func (r *ScheduleRepository) Create(ctx context.Context, e *entity.ScheduleEntry) error {
	query := `
		INSERT INTO schedule_entries (
			training_id, center_id, group_id, teacher_id, room_id, subject,
			day_of_week, start_time, end_time, is_active, is_recurring, recurrence_type,
			start_date, recurrence_end_date, is_exception, parent_id, exception_date, created_by
		) VALUES (
			:training_id, :center_id, :group_id, :teacher_id, :room_id, :subject,
			:day_of_week, :start_time, :end_time, :is_active, :is_recurring, :recurrence_type,
			:start_date, :recurrence_end_date, :is_exception, :parent_id, :exception_date, :created_by
		)
		RETURNING id, created_at, updated_at
	`
	query, args, err := sqlx.Named(query, e)
	if err != nil {
		return err
	}
	err = r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		logger.Error("ScheduleRepository:Create", err)
		return err
	}
	return nil
}

func (r *ScheduleRepository) Update(ctx context.Context, e *entity.ScheduleEntry) error {
	query := `
		UPDATE schedule_entries SET
			training_id = :training_id, center_id = :center_id, group_id = :group_id,
			teacher_id = :teacher_id, room_id = :room_id, subject = :subject,
			day_of_week = :day_of_week, start_time = :start_time, end_time = :end_time,
			is_active = :is_active, is_recurring = :is_recurring, recurrence_type = :recurrence_type,
			start_date = :start_date, recurrence_end_date = :recurrence_end_date,
			updated_at = now()
		WHERE id = :id
		RETURNING updated_at
	`
	query, args, err := sqlx.Named(query, e)
	if err != nil {
		return err
	}
	err = r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).Scan(&e.UpdatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return fmt.Errorf("schedule entry %s not found", e.ID)
		}
		logger.Error("ScheduleRepository:Update", err)
		return err
	}
	return nil
}

// Deactivate soft-deletes an entry together with its exceptions.
func (r *ScheduleRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE schedule_entries
		SET is_active = false, updated_at = now()
		WHERE id = $1 OR parent_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		logger.Error("ScheduleRepository:Deactivate", err)
		return err
	}
	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ScheduleEntry, error) {
	var e entity.ScheduleEntry
	query := `SELECT ` + scheduleColumns + ` FROM schedule_entries WHERE id = $1`
	if err := r.db.GetContext(ctx, &e, query, id); err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		logger.Error("ScheduleRepository:GetByID", err)
		return nil, err
	}
	return &e, nil
}

func (r *ScheduleRepository) ListActiveByDimension(ctx context.Context, dim service.Dimension, id uuid.UUID, day entity.Weekday) ([]entity.ScheduleEntry, error) {
	var column string
	switch dim {
	case service.DimensionTeacher:
		column = "teacher_id"
	case service.DimensionRoom:
		column = "room_id"
	case service.DimensionGroup:
		column = "group_id"
	default:
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}

	query := `SELECT ` + scheduleColumns + `
		FROM schedule_entries
		WHERE ` + column + ` = $1 AND day_of_week = $2 AND is_active AND NOT is_exception
		ORDER BY start_time`

	entries := []entity.ScheduleEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, id, day); err != nil {
		logger.Error("ScheduleRepository:ListActiveByDimension", err)
		return nil, err
	}
	return entries, nil
}

func (r *ScheduleRepository) ListExceptions(ctx context.Context, parentID uuid.UUID) ([]entity.ScheduleEntry, error) {
	query := `SELECT ` + scheduleColumns + `
		FROM schedule_entries
		WHERE parent_id = $1 AND is_exception
		ORDER BY exception_date`

	entries := []entity.ScheduleEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, parentID); err != nil {
		logger.Error("ScheduleRepository:ListExceptions", err)
		return nil, err
	}
	return entries, nil
}

func (r *ScheduleRepository) List(ctx context.Context, filter entity.ScheduleFilter, params params.QueryParams) (*entity.PaginatedScheduleEntries, error) {
	conditions := []string{"NOT s.is_exception"}
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if !filter.IncludeInactive {
		conditions = append(conditions, "s.is_active")
	}
	if filter.TrainingID != nil {
		add("s.training_id = $%d", *filter.TrainingID)
	}
	if filter.CenterID != nil {
		add("s.center_id = $%d", *filter.CenterID)
	}
	if filter.AssociationID != nil {
		add("c.association_id = $%d", *filter.AssociationID)
	}
	if filter.GroupID != nil {
		add("s.group_id = $%d", *filter.GroupID)
	}
	if filter.TeacherID != nil {
		add("s.teacher_id = $%d", *filter.TeacherID)
	}
	if filter.RoomID != nil {
		add("s.room_id = $%d", *filter.RoomID)
	}
	if filter.DayOfWeek != nil {
		add("s.day_of_week = $%d", *filter.DayOfWeek)
	}
	if params.Search != "" {
		add("s.subject ILIKE $%d", "%"+params.Search+"%")
	}

	baseQuery := ` FROM schedule_entries s JOIN centers c ON c.id = s.center_id WHERE ` + strings.Join(conditions, " AND ")

	var totalItems int
	if err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*)"+baseQuery, args...); err != nil {
		logger.Error("ScheduleRepository:List:Count", err)
		return nil, err
	}

	dataQuery := `SELECT ` + prefixed("s", scheduleColumns) + baseQuery +
		fmt.Sprintf(`
		ORDER BY array_position(ARRAY['MON','TUE','WED','THU','FRI','SAT','SUN'], s.day_of_week), s.start_time
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	entries := []entity.ScheduleEntry{}
	if err := r.db.SelectContext(ctx, &entries, dataQuery, args...); err != nil {
		logger.Error("ScheduleRepository:List:Select", err)
		return nil, err
	}
	return coreEntity.NewPagination(entries, totalItems, params.PageNumber, params.PageSize), nil
}

// GetRoomCenter returns the center owning roomID, or nil when there is no
// such room.
func (r *ScheduleRepository) GetRoomCenter(ctx context.Context, roomID uuid.UUID) (*uuid.UUID, error) {
	return r.lookup(ctx, "ScheduleRepository:GetRoomCenter", `SELECT center_id FROM rooms WHERE id = $1`, roomID)
}

func (r *ScheduleRepository) GetGroupTraining(ctx context.Context, groupID uuid.UUID) (*uuid.UUID, error) {
	return r.lookup(ctx, "ScheduleRepository:GetGroupTraining", `SELECT training_id FROM training_groups WHERE id = $1`, groupID)
}

func (r *ScheduleRepository) GetCenterAssociation(ctx context.Context, centerID uuid.UUID) (*uuid.UUID, error) {
	return r.lookup(ctx, "ScheduleRepository:GetCenterAssociation", `SELECT association_id FROM centers WHERE id = $1`, centerID)
}

func (r *ScheduleRepository) lookup(ctx context.Context, op, query string, id uuid.UUID) (*uuid.UUID, error) {
	var out uuid.UUID
	if err := r.db.GetContext(ctx, &out, query, id); err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		logger.Error(op, err)
		return nil, err
	}
	return &out, nil
}

func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
