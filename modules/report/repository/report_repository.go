package repository

import (
	"context"
	"time"
	"trainhub-api/core/database"
	"trainhub-api/core/logger"
	"trainhub-api/core/params"
	"trainhub-api/modules/report/entity"

	"github.com/google/uuid"
)

const (
	reportColumns = `r.id, r.reference_code, r.report_type, r.period, r.start_date, r.end_date, r.student_id, r.teacher_id,
		r.group_id, r.center_id, r.training_id, r.total_sessions, r.attended_sessions, r.late_sessions,
		r.excused_absences, r.unexcused_absences, r.attendance_rate, r.data, r.notes, r.generated_by,
		r.generated_at, r.export_status, r.export_key, r.exported_at, r.created_at, r.updated_at`

	// reportFrom resolves the center each report belongs to, whatever its type.
	reportFrom = `attendance_reports r
		LEFT JOIN users su ON su.id = r.student_id
		LEFT JOIN users tu ON tu.id = r.teacher_id
		LEFT JOIN training_groups g ON g.id = r.group_id
		LEFT JOIN centers c ON c.id = COALESCE(r.center_id, su.center_id, tu.center_id, g.center_id)`
)

type ReportRepository struct {
	db database.Querier
}

func NewReportRepository(db database.Querier) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO attendance_reports (
			reference_code, report_type, period, start_date, end_date, student_id, teacher_id, group_id,
			center_id, training_id, total_sessions, attended_sessions, late_sessions, excused_absences,
			unexcused_absences, attendance_rate, data, notes, generated_by, generated_at, export_status
		) VALUES (
			:reference_code, :report_type, :period, :start_date, :end_date, :student_id, :teacher_id, :group_id,
			:center_id, :training_id, :total_sessions, :attended_sessions, :late_sessions, :excused_absences,
			:unexcused_absences, :attendance_rate, :data, :notes, :generated_by, :generated_at, :export_status
		)
		RETURNING id, created_at, updated_at`
	return database.Insert(ctx, r.db, "ReportRepository:Create", query, report, &report.BaseEntity)
}

// UpdateStats overwrites the figures of a report after recalculation.
func (r *ReportRepository) UpdateStats(ctx context.Context, report *entity.Report) error {
	query := `
		UPDATE attendance_reports
		SET total_sessions = :total_sessions, attended_sessions = :attended_sessions, late_sessions = :late_sessions,
		    excused_absences = :excused_absences, unexcused_absences = :unexcused_absences,
		    attendance_rate = :attendance_rate, data = :data, generated_by = :generated_by,
		    generated_at = :generated_at, export_status = :export_status, export_key = :export_key,
		    exported_at = :exported_at, updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`
	return database.Update(ctx, r.db, "ReportRepository:UpdateStats", query, report, &report.UpdatedAt)
}

// SetExport records the progress of an export. exported_at is stamped when
// the export becomes ready.
func (r *ReportRepository) SetExport(ctx context.Context, id uuid.UUID, status entity.ExportStatus, key *string) error {
	query := `
		UPDATE attendance_reports
		SET export_status = $2,
		    export_key = COALESCE($3, export_key),
		    exported_at = CASE WHEN $2 = 'ready' THEN NOW() ELSE exported_at END,
		    updated_at = NOW()
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, key); err != nil {
		logger.Error("ReportRepository:SetExport", err)
		return err
	}
	return nil
}

func (r *ReportRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM attendance_reports r WHERE r.id = $1`
	return database.GetOne[entity.Report](ctx, r.db, "ReportRepository:Get", query, id)
}

// CenterOf returns the center and association a report belongs to.
func (r *ReportRepository) CenterOf(ctx context.Context, id uuid.UUID) (*entity.Target, error) {
	query := `SELECT r.id, '' AS role, c.id AS center_id, c.association_id FROM ` + reportFrom + ` WHERE r.id = $1`
	return database.GetOne[entity.Target](ctx, r.db, "ReportRepository:CenterOf", query, id)
}

func visibility(cond *database.Conditions, v entity.Visibility) {
	if v.CenterID != nil {
		cond.Add("c.id = $%d", *v.CenterID)
	}
	if v.AssociationID != nil {
		cond.Add("c.association_id = $%d", *v.AssociationID)
	}
	if v.TeacherID != nil {
		cond.Add("r.report_type = 'teacher' AND r.teacher_id = $%d", *v.TeacherID)
	}
	if v.StudentID != nil {
		cond.Add("r.report_type = 'student' AND r.student_id = $%d", *v.StudentID)
	}
}

func (r *ReportRepository) List(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedReports, error) {
	cond := &database.Conditions{}
	visibility(cond, filter.Visibility)
	if filter.Type != "" {
		cond.Add("r.report_type = $%d", filter.Type)
	}
	if filter.Period != "" {
		cond.Add("r.period = $%d", filter.Period)
	}
	if filter.TrainingID != nil {
		cond.Add("r.training_id = $%d", *filter.TrainingID)
	}
	if filter.From != nil {
		cond.Add("r.start_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		cond.Add("r.end_date <= $%d", *filter.To)
	}
	cond.Search("r.notes", p.Search)
	return database.Paginate[entity.Report](ctx, r.db, "ReportRepository:List", reportFrom, cond, reportColumns, "r.generated_at DESC", p)
}

// QuickStats sums the visible reports lying within [from, to].
func (r *ReportRepository) QuickStats(ctx context.Context, v entity.Visibility, from, to time.Time) (*entity.QuickStats, error) {
	cond := &database.Conditions{}
	visibility(cond, v)
	cond.Add("r.start_date >= $%d", from)
	cond.Add("r.end_date <= $%d", to)
	query := `
		SELECT COUNT(*) AS total_reports,
		       COALESCE(ROUND(AVG(r.attendance_rate), 2), 0)::float8 AS average_rate,
		       COALESCE(SUM(r.total_sessions), 0) AS total_sessions,
		       COALESCE(SUM(r.attended_sessions), 0) AS attended_sessions
		FROM ` + reportFrom + cond.Where()
	var stats entity.QuickStats
	if err := r.db.GetContext(ctx, &stats, query, cond.Args()...); err != nil {
		logger.Error("ReportRepository:QuickStats", err)
		return nil, err
	}
	return &stats, nil
}

// AttendanceRows loads the attendance a report scope covers. Group and
// center scopes follow the students' current group and center.
func (r *ReportRepository) AttendanceRows(ctx context.Context, scope entity.Scope) ([]entity.AttendanceRow, error) {
	cond := &database.Conditions{}
	switch scope.Type {
	case entity.ReportStudent:
		cond.Add("a.student_id = $%d", scope.TargetID)
	case entity.ReportTeacher:
		cond.Add("se.teacher_id = $%d", scope.TargetID)
	case entity.ReportGroup:
		cond.Add("u.group_id = $%d", scope.TargetID)
	case entity.ReportCenter:
		cond.Add("u.center_id = $%d", scope.TargetID)
	}
	if scope.TrainingID != nil {
		cond.Add("se.training_id = $%d", *scope.TrainingID)
	}
	cond.Add("a.session_date >= $%d", scope.From)
	cond.Add("a.session_date <= $%d", scope.To)

	query := `
		SELECT a.student_id, u.email AS student_email, se.subject, COALESCE(g.name, '') AS group_name,
		       t.name AS training_name, a.session_date, a.status
		FROM attendance a
		JOIN users u ON u.id = a.student_id
		JOIN schedule_entries se ON se.id = a.schedule_id
		JOIN trainings t ON t.id = se.training_id
		LEFT JOIN training_groups g ON g.id = u.group_id` + cond.Where() + `
		ORDER BY a.session_date, u.email`
	rows := []entity.AttendanceRow{}
	if err := r.db.SelectContext(ctx, &rows, query, cond.Args()...); err != nil {
		logger.Error("ReportRepository:AttendanceRows", err)
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) GetUserTarget(ctx context.Context, id uuid.UUID) (*entity.Target, error) {
	query := `
		SELECT u.id, u.role, u.center_id, c.association_id
		FROM users u
		LEFT JOIN centers c ON c.id = u.center_id
		WHERE u.id = $1`
	return database.GetOne[entity.Target](ctx, r.db, "ReportRepository:GetUserTarget", query, id)
}

func (r *ReportRepository) GetGroupTarget(ctx context.Context, id uuid.UUID) (*entity.Target, error) {
	query := `
		SELECT g.id, '' AS role, g.center_id, c.association_id
		FROM training_groups g
		JOIN centers c ON c.id = g.center_id
		WHERE g.id = $1`
	return database.GetOne[entity.Target](ctx, r.db, "ReportRepository:GetGroupTarget", query, id)
}

func (r *ReportRepository) GetCenterTarget(ctx context.Context, id uuid.UUID) (*entity.Target, error) {
	query := `SELECT c.id, '' AS role, c.id AS center_id, c.association_id FROM centers c WHERE c.id = $1`
	return database.GetOne[entity.Target](ctx, r.db, "ReportRepository:GetCenterTarget", query, id)
}
