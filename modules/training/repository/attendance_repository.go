package repository

import (
	"context"
	"trainhub-api/core/database"
	"trainhub-api/core/logger"
	"trainhub-api/core/params"
	"trainhub-api/modules/training/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const attendanceColumns = `a.id, a.schedule_id, a.student_id, a.session_date, a.status, a.note, a.recorded_by, a.created_at, a.updated_at`

func (r *TrainingRepository) GetSession(ctx context.Context, scheduleID uuid.UUID) (*entity.Session, error) {
	query := `
		SELECT se.id, se.center_id, c.association_id, se.training_id, se.group_id, se.teacher_id
		FROM schedule_entries se
		JOIN centers c ON c.id = se.center_id
		WHERE se.id = $1`
	return database.GetOne[entity.Session](ctx, r.db, "TrainingRepository:GetSession", query, scheduleID)
}

// StudentsOutside returns the ids in studentIDs that are not active students,
// or not in groupID when it is set.
func (r *TrainingRepository) StudentsOutside(ctx context.Context, groupID *uuid.UUID, studentIDs []uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]string, len(studentIDs))
	for i, id := range studentIDs {
		ids[i] = id.String()
	}
	query := `
		SELECT s.student_id FROM unnest($1::uuid[]) AS s(student_id)
		WHERE NOT EXISTS (
			SELECT 1 FROM users u
			WHERE u.id = s.student_id AND u.role = 'student' AND u.is_active
			  AND ($2::uuid IS NULL OR u.group_id = $2)
		)`
	var outside []uuid.UUID
	if err := r.db.SelectContext(ctx, &outside, query, pq.Array(ids), groupID); err != nil {
		logger.Error("TrainingRepository:StudentsOutside", err)
		return nil, err
	}
	return outside, nil
}

// UpsertAttendance records one student for one session date; recording again
// overwrites the status.
func (r *TrainingRepository) UpsertAttendance(ctx context.Context, a *entity.Attendance) error {
	query := `
		INSERT INTO attendance (schedule_id, student_id, session_date, status, note, recorded_by)
		VALUES (:schedule_id, :student_id, :session_date, :status, :note, :recorded_by)
		ON CONFLICT (schedule_id, student_id, session_date) DO UPDATE
		SET status = EXCLUDED.status, note = EXCLUDED.note, recorded_by = EXCLUDED.recorded_by, updated_at = NOW()
		RETURNING id, created_at, updated_at`
	return database.Insert(ctx, r.db, "TrainingRepository:UpsertAttendance", query, a, &a.BaseEntity)
}

func (r *TrainingRepository) ListAttendance(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedAttendance, error) {
	cond := &database.Conditions{}
	if filter.ScheduleID != nil {
		cond.Add("a.schedule_id = $%d", *filter.ScheduleID)
	}
	if filter.StudentID != nil {
		cond.Add("a.student_id = $%d", *filter.StudentID)
	}
	if filter.TeacherID != nil {
		cond.Add("se.teacher_id = $%d", *filter.TeacherID)
	}
	if filter.GroupID != nil {
		cond.Add("se.group_id = $%d", *filter.GroupID)
	}
	if filter.TrainingID != nil {
		cond.Add("se.training_id = $%d", *filter.TrainingID)
	}
	if filter.CenterID != nil {
		cond.Add("se.center_id = $%d", *filter.CenterID)
	}
	if filter.AssociationID != nil {
		cond.Add("c.association_id = $%d", *filter.AssociationID)
	}
	if filter.Status != "" {
		cond.Add("a.status = $%d", filter.Status)
	}
	if filter.From != nil {
		cond.Add("a.session_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		cond.Add("a.session_date <= $%d", *filter.To)
	}
	from := `attendance a
		JOIN schedule_entries se ON se.id = a.schedule_id
		JOIN centers c ON c.id = se.center_id`
	return database.Paginate[entity.Attendance](ctx, r.db, "TrainingRepository:ListAttendance", from, cond, attendanceColumns, "a.session_date DESC, a.student_id", p)
}
