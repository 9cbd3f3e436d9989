package repository

import (
	"context"
	"trainhub-api/core/database"
	"trainhub-api/core/params"
	"trainhub-api/modules/training/entity"

	"github.com/google/uuid"
)

const (
	submissionColumns  = `s.id, s.exercise_id, s.student_id, s.content, s.status, s.feedback, s.reviewed_by, s.reviewed_at, s.created_at, s.updated_at`
	markColumns        = `m.id, m.exercise_id, m.student_id, m.value, m.feedback, m.graded_by, m.created_at, m.updated_at`
	progressLogColumns = `p.id, p.teacher_id, p.training_id, p.group_id, p.distribution_id, p.session_date, p.session_time, p.topics_covered, p.feedback, p.created_at, p.updated_at`
)

// studentScope adds the filters shared by listings keyed on a student,
// joined as u with the student's center as c.
func studentScope(cond *database.Conditions, filter entity.Filter, alias string) {
	if filter.ExerciseID != nil {
		cond.Add(alias+".exercise_id = $%d", *filter.ExerciseID)
	}
	if filter.StudentID != nil {
		cond.Add(alias+".student_id = $%d", *filter.StudentID)
	}
	if filter.GroupID != nil {
		cond.Add("u.group_id = $%d", *filter.GroupID)
	}
	if filter.CenterID != nil {
		cond.Add("u.center_id = $%d", *filter.CenterID)
	}
	if filter.AssociationID != nil {
		cond.Add("c.association_id = $%d", *filter.AssociationID)
	}
}

// UpsertSubmission stores a student's answer. Resubmitting resets the review.
func (r *TrainingRepository) UpsertSubmission(ctx context.Context, s *entity.Submission) error {
	query := `
		INSERT INTO submissions (exercise_id, student_id, content, status)
		VALUES (:exercise_id, :student_id, :content, :status)
		ON CONFLICT (exercise_id, student_id) DO UPDATE
		SET content = EXCLUDED.content, status = EXCLUDED.status, feedback = '',
		    reviewed_by = NULL, reviewed_at = NULL, updated_at = NOW()
		RETURNING id, created_at, updated_at`
	return database.Insert(ctx, r.db, "TrainingRepository:UpsertSubmission", query, s, &s.BaseEntity)
}

func (r *TrainingRepository) ReviewSubmission(ctx context.Context, s *entity.Submission) error {
	query := `
		UPDATE submissions
		SET status = :status, feedback = :feedback, reviewed_by = :reviewed_by, reviewed_at = :reviewed_at, updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`
	return database.Update(ctx, r.db, "TrainingRepository:ReviewSubmission", query, s, &s.UpdatedAt)
}

func (r *TrainingRepository) GetSubmission(ctx context.Context, id uuid.UUID) (*entity.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions s WHERE s.id = $1`
	return database.GetOne[entity.Submission](ctx, r.db, "TrainingRepository:GetSubmission", query, id)
}

func (r *TrainingRepository) ListSubmissions(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedSubmissions, error) {
	cond := &database.Conditions{}
	studentScope(cond, filter, "s")
	if filter.Status != "" {
		cond.Add("s.status = $%d", filter.Status)
	}
	from := `submissions s
		JOIN users u ON u.id = s.student_id
		LEFT JOIN centers c ON c.id = u.center_id`
	return database.Paginate[entity.Submission](ctx, r.db, "TrainingRepository:ListSubmissions", from, cond, submissionColumns, "s.updated_at DESC", p)
}

// UpsertMark grades a student once per exercise; grading again overwrites.
func (r *TrainingRepository) UpsertMark(ctx context.Context, m *entity.Mark) error {
	query := `
		INSERT INTO marks (exercise_id, student_id, value, feedback, graded_by)
		VALUES (:exercise_id, :student_id, :value, :feedback, :graded_by)
		ON CONFLICT (exercise_id, student_id) DO UPDATE
		SET value = EXCLUDED.value, feedback = EXCLUDED.feedback, graded_by = EXCLUDED.graded_by, updated_at = NOW()
		RETURNING id, created_at, updated_at`
	return database.Insert(ctx, r.db, "TrainingRepository:UpsertMark", query, m, &m.BaseEntity)
}

func (r *TrainingRepository) GetMark(ctx context.Context, id uuid.UUID) (*entity.Mark, error) {
	query := `SELECT ` + markColumns + ` FROM marks m WHERE m.id = $1`
	return database.GetOne[entity.Mark](ctx, r.db, "TrainingRepository:GetMark", query, id)
}

func (r *TrainingRepository) DeleteMark(ctx context.Context, id uuid.UUID) error {
	return database.Remove(ctx, r.db, "TrainingRepository:DeleteMark", "marks", id)
}

func (r *TrainingRepository) ListMarks(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedMarks, error) {
	cond := &database.Conditions{}
	studentScope(cond, filter, "m")
	from := `marks m
		JOIN users u ON u.id = m.student_id
		LEFT JOIN centers c ON c.id = u.center_id`
	return database.Paginate[entity.Mark](ctx, r.db, "TrainingRepository:ListMarks", from, cond, markColumns, "m.updated_at DESC", p)
}

func (r *TrainingRepository) CreateProgressLog(ctx context.Context, l *entity.ProgressLog) error {
	query := `
		INSERT INTO progress_logs (teacher_id, training_id, group_id, distribution_id, session_date, session_time, topics_covered, feedback)
		VALUES (:teacher_id, :training_id, :group_id, :distribution_id, :session_date, :session_time, :topics_covered, :feedback)
		RETURNING id, created_at, updated_at`
	return database.Insert(ctx, r.db, "TrainingRepository:CreateProgressLog", query, l, &l.BaseEntity)
}

func (r *TrainingRepository) GetProgressLog(ctx context.Context, id uuid.UUID) (*entity.ProgressLog, error) {
	query := `SELECT ` + progressLogColumns + ` FROM progress_logs p WHERE p.id = $1`
	return database.GetOne[entity.ProgressLog](ctx, r.db, "TrainingRepository:GetProgressLog", query, id)
}

func (r *TrainingRepository) DeleteProgressLog(ctx context.Context, id uuid.UUID) error {
	return database.Remove(ctx, r.db, "TrainingRepository:DeleteProgressLog", "progress_logs", id)
}

func (r *TrainingRepository) ListProgressLogs(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedProgressLogs, error) {
	cond := &database.Conditions{}
	if filter.TeacherID != nil {
		cond.Add("p.teacher_id = $%d", *filter.TeacherID)
	}
	if filter.TrainingID != nil {
		cond.Add("p.training_id = $%d", *filter.TrainingID)
	}
	if filter.GroupID != nil {
		cond.Add("p.group_id = $%d", *filter.GroupID)
	}
	if filter.DistributionID != nil {
		cond.Add("p.distribution_id = $%d", *filter.DistributionID)
	}
	if filter.From != nil {
		cond.Add("p.session_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		cond.Add("p.session_date <= $%d", *filter.To)
	}
	if filter.CenterID != nil {
		cond.Add("u.center_id = $%d", *filter.CenterID)
	}
	if filter.AssociationID != nil {
		cond.Add("c.association_id = $%d", *filter.AssociationID)
	}
	from := `progress_logs p
		JOIN users u ON u.id = p.teacher_id
		LEFT JOIN centers c ON c.id = u.center_id`
	return database.Paginate[entity.ProgressLog](ctx, r.db, "TrainingRepository:ListProgressLogs", from, cond, progressLogColumns, "p.session_date DESC, p.session_time DESC", p)
}
