package service

import (
	"context"
	"time"
	"trainhub-api/core/authz"
	"trainhub-api/core/constants"
	"trainhub-api/core/database"
	"trainhub-api/core/errors"
	"trainhub-api/core/params"
	"trainhub-api/core/queue"
	"trainhub-api/core/storage"
	"trainhub-api/core/utils"
	"trainhub-api/modules/report/dto"
	"trainhub-api/modules/report/entity"
	"trainhub-api/modules/report/mapper"

	"github.com/google/uuid"
)

const quickStatsWindow = 30

type ReportStore interface {
	Create(ctx context.Context, report *entity.Report) error
	UpdateStats(ctx context.Context, report *entity.Report) error
	SetExport(ctx context.Context, id uuid.UUID, status entity.ExportStatus, key *string) error
	Get(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	CenterOf(ctx context.Context, id uuid.UUID) (*entity.Target, error)
	List(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedReports, error)
	QuickStats(ctx context.Context, v entity.Visibility, from, to time.Time) (*entity.QuickStats, error)
	AttendanceRows(ctx context.Context, scope entity.Scope) ([]entity.AttendanceRow, error)
	GetUserTarget(ctx context.Context, id uuid.UUID) (*entity.Target, error)
	GetGroupTarget(ctx context.Context, id uuid.UUID) (*entity.Target, error)
	GetCenterTarget(ctx context.Context, id uuid.UUID) (*entity.Target, error)
}

// Notifier delivers in-app notifications.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message, kind string, data map[string]any) error
}

type ReportService struct {
	repo     ReportStore
	queue    queue.Enqueuer
	storage  storage.Storage
	notifier Notifier
	now      func() time.Time
}

func NewReportService(repo ReportStore, enqueuer queue.Enqueuer, store storage.Storage, notifier Notifier) *ReportService {
	return &ReportService{repo: repo, queue: enqueuer, storage: store, notifier: notifier, now: time.Now}
}

func forbidden(message string) *errors.AppError {
	return errors.NewAppError(errors.ErrForbidden, message, nil)
}

func invalidScope(message string) *errors.AppError {
	return errors.NewAppError(errors.ErrInvalidReportScope, message, nil)
}

func writeError(code errors.ErrorCode, message string, err error) *errors.AppError {
	switch {
	case database.IsNoRows(err):
		return errors.NewAppError(errors.ErrNotFound, "report not found", err)
	case database.IsForeignKeyViolation(err):
		return errors.NewAppError(errors.ErrNotFound, "referenced record not found", err)
	case database.IsCheckViolation(err):
		return errors.NewAppError(errors.ErrInvalidInput, "value out of range", err)
	}
	return errors.NewAppError(code, message, err)
}

// resolvePeriod returns the covered dates. Custom periods need an explicit
// end. Otherwise a missing end is the start itself, six days later or the
// end of the start's month.
func resolvePeriod(period entity.Period, startDate, endDate string) (time.Time, time.Time, *errors.AppError) {
	start, err := utils.ParseDate(startDate)
	if err != nil || start == nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "start_date must be YYYY-MM-DD", err)
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "end_date must be YYYY-MM-DD", err)
	}
	if end == nil {
		switch period {
		case entity.PeriodDaily:
			end = start
		case entity.PeriodWeekly:
			end = utils.Ptr(start.AddDate(0, 0, 6))
		case entity.PeriodMonthly:
			end = utils.Ptr(time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, time.UTC))
		default:
			return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "end_date is required for a custom period", nil)
		}
	}
	if end.Before(*start) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "start_date must not be after end_date", nil)
	}
	return *start, *end, nil
}

// keepTarget clears every target field but the one matching the report type.
func keepTarget(r *entity.Report) {
	target := r.TargetID()
	r.StudentID, r.TeacherID, r.GroupID, r.CenterID = nil, nil, nil, nil
	switch r.Type {
	case entity.ReportStudent:
		r.StudentID = target
	case entity.ReportTeacher:
		r.TeacherID = target
	case entity.ReportGroup:
		r.GroupID = target
	case entity.ReportCenter:
		r.CenterID = target
	}
}

func (s *ReportService) loadTarget(ctx context.Context, reportType entity.ReportType, targetID uuid.UUID) (*entity.Target, *errors.AppError) {
	var (
		target *entity.Target
		err    error
	)
	switch reportType {
	case entity.ReportStudent, entity.ReportTeacher:
		target, err = s.repo.GetUserTarget(ctx, targetID)
	case entity.ReportGroup:
		target, err = s.repo.GetGroupTarget(ctx, targetID)
	case entity.ReportCenter:
		target, err = s.repo.GetCenterTarget(ctx, targetID)
	default:
		return nil, invalidScope("unknown report type")
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get report target failed", err)
	}
	if target == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, string(reportType)+" not found", nil)
	}
	if (reportType == entity.ReportStudent || reportType == entity.ReportTeacher) && target.Role != string(reportType) {
		return nil, invalidScope("user is not a " + string(reportType))
	}
	return target, nil
}

// canGenerate decides who may build a report about target. Teachers report on
// themselves and on the students and groups of their center.
func canGenerate(id authz.Identity, reportType entity.ReportType, target *entity.Target) *errors.AppError {
	switch {
	case id.Is(authz.RoleAdmin):
		return nil
	case id.Is(authz.RoleAssociationStaff):
		if id.AssociationID == nil || target.AssociationID == nil || *id.AssociationID != *target.AssociationID {
			return forbidden("target belongs to another association")
		}
		return nil
	case id.Is(authz.RoleTeacher):
		switch reportType {
		case entity.ReportTeacher:
			if target.ID != id.UserID {
				return forbidden("teachers only report on themselves")
			}
			return nil
		case entity.ReportCenter:
			return forbidden("teachers cannot generate center reports")
		}
	case id.Is(authz.RoleCenterStaff):
	default:
		return forbidden("not allowed to generate reports")
	}
	if target.CenterID == nil || !id.InCenter(*target.CenterID) {
		return forbidden("target belongs to another center")
	}
	return nil
}

// visibilityFor narrows report listings to what id may see.
func visibilityFor(id authz.Identity) (entity.Visibility, *errors.AppError) {
	var v entity.Visibility
	switch {
	case id.Is(authz.RoleAdmin):
	case id.Is(authz.RoleAssociationStaff):
		if id.AssociationID == nil {
			return v, forbidden("no association assigned")
		}
		v.AssociationID = id.AssociationID
	case id.Is(authz.RoleCenterStaff):
		if id.CenterID == nil {
			return v, forbidden("no center assigned")
		}
		v.CenterID = id.CenterID
	case id.Is(authz.RoleTeacher):
		v.TeacherID = &id.UserID
	case id.Is(authz.RoleStudent):
		v.StudentID = &id.UserID
	default:
		return v, forbidden("not allowed to view reports")
	}
	return v, nil
}

// canSee applies visibilityFor to a single report.
func (s *ReportService) canSee(ctx context.Context, id authz.Identity, r *entity.Report) *errors.AppError {
	v, appErr := visibilityFor(id)
	if appErr != nil {
		return appErr
	}
	switch {
	case v.TeacherID != nil:
		if r.Type != entity.ReportTeacher || r.TeacherID == nil || *r.TeacherID != id.UserID {
			return forbidden("not allowed to view this report")
		}
		return nil
	case v.StudentID != nil:
		if r.Type != entity.ReportStudent || r.StudentID == nil || *r.StudentID != id.UserID {
			return forbidden("not allowed to view this report")
		}
		return nil
	case v.CenterID == nil && v.AssociationID == nil:
		return nil
	}

	owner, err := s.repo.CenterOf(ctx, r.ID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get report center failed", err)
	}
	if owner == nil || owner.CenterID == nil {
		return forbidden("not allowed to view this report")
	}
	if v.CenterID != nil && *owner.CenterID != *v.CenterID {
		return forbidden("report belongs to another center")
	}
	if v.AssociationID != nil && (owner.AssociationID == nil || *owner.AssociationID != *v.AssociationID) {
		return forbidden("report belongs to another association")
	}
	return nil
}

func (s *ReportService) load(ctx context.Context, id authz.Identity, reportID uuid.UUID) (*entity.Report, *errors.AppError) {
	report, err := s.repo.Get(ctx, reportID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get report failed", err)
	}
	if report == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "report not found", nil)
	}
	if appErr := s.canSee(ctx, id, report); appErr != nil {
		return nil, appErr
	}
	return report, nil
}

func (s *ReportService) calculate(ctx context.Context, report *entity.Report) *errors.AppError {
	scope := entity.Scope{
		Type:       report.Type,
		TargetID:   *report.TargetID(),
		TrainingID: report.TrainingID,
		From:       report.StartDate,
		To:         report.EndDate,
	}
	rows, err := s.repo.AttendanceRows(ctx, scope)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get attendance failed", err)
	}
	report.Stats = Aggregate(report.Type, rows)
	return nil
}

// Generate builds and stores a snapshot of the attendance of one target.
func (s *ReportService) Generate(ctx context.Context, id authz.Identity, req *dto.GenerateReportRequest) (*dto.ReportResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	report := mapper.ToReportEntity(req)
	start, end, appErr := resolvePeriod(report.Period, req.StartDate, req.EndDate)
	if appErr != nil {
		return nil, appErr
	}
	report.StartDate, report.EndDate = start, end

	targetID := report.TargetID()
	if targetID == nil {
		return nil, invalidScope("a " + string(report.Type) + " report needs " + string(report.Type) + "_id")
	}
	keepTarget(report)
	target, appErr := s.loadTarget(ctx, report.Type, *targetID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := canGenerate(id, report.Type, target); appErr != nil {
		return nil, appErr
	}
	if appErr := s.calculate(ctx, report); appErr != nil {
		return nil, appErr
	}

	report.ReferenceCode = utils.GenerateReferenceCode("RPT")
	report.GeneratedBy = &id.UserID
	report.GeneratedAt = s.now()
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, writeError(errors.ErrCreateFailed, "create report failed", err)
	}
	result := mapper.ToReportResponse(report)
	return &result, nil
}

// Recalculate refreshes a report from the attendance recorded since. A
// previous export no longer matches and is dropped.
func (s *ReportService) Recalculate(ctx context.Context, id authz.Identity, reportID uuid.UUID) (*dto.ReportResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	report, appErr := s.load(ctx, id, reportID)
	if appErr != nil {
		return nil, appErr
	}
	if report.TargetID() == nil {
		return nil, invalidScope("report target no longer exists")
	}
	if appErr := s.calculate(ctx, report); appErr != nil {
		return nil, appErr
	}
	report.GeneratedBy = &id.UserID
	report.GeneratedAt = s.now()
	report.ExportStatus = entity.ExportNone
	report.ExportKey = nil
	report.ExportedAt = nil
	if err := s.repo.UpdateStats(ctx, report); err != nil {
		return nil, writeError(errors.ErrUpdateFailed, "recalculate report failed", err)
	}
	result := mapper.ToReportResponse(report)
	return &result, nil
}

func (s *ReportService) Get(ctx context.Context, id authz.Identity, reportID uuid.UUID) (*dto.ReportResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	report, appErr := s.load(ctx, id, reportID)
	if appErr != nil {
		return nil, appErr
	}
	result := mapper.ToReportResponse(report)
	return &result, nil
}

func (s *ReportService) List(ctx context.Context, id authz.Identity, filter entity.Filter, p params.QueryParams) (*dto.PaginatedReportResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	v, appErr := visibilityFor(id)
	if appErr != nil {
		return nil, appErr
	}
	filter.Visibility = v
	reports, err := s.repo.List(ctx, filter, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get reports failed", err)
	}
	return mapper.ToPage(reports, mapper.ToReportResponse), nil
}

// Mine lists the reports about the acting teacher or student.
func (s *ReportService) Mine(ctx context.Context, id authz.Identity, p params.QueryParams) (*dto.PaginatedReportResponse, *errors.AppError) {
	var filter entity.Filter
	switch {
	case id.Is(authz.RoleTeacher):
		filter.Type = entity.ReportTeacher
	case id.Is(authz.RoleStudent):
		filter.Type = entity.ReportStudent
	default:
		return nil, forbidden("only teachers and students have reports of their own")
	}
	return s.List(ctx, id, filter, p)
}

// QuickStats summarizes the visible reports of a window, the last 30 days
// unless both bounds are given.
func (s *ReportService) QuickStats(ctx context.Context, id authz.Identity, q *dto.QuickStatsQuery) (*dto.QuickStatsResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	v, appErr := visibilityFor(id)
	if appErr != nil {
		return nil, appErr
	}
	to := utils.DateOnly(s.now())
	from := to.AddDate(0, 0, -quickStatsWindow)
	if d, _ := utils.ParseDate(q.StartDate); d != nil {
		from = *d
	}
	if d, _ := utils.ParseDate(q.EndDate); d != nil {
		to = *d
	}
	if to.Before(from) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start_date must not be after end_date", nil)
	}

	stats, err := s.repo.QuickStats(ctx, v, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get report stats failed", err)
	}
	return &dto.QuickStatsResponse{
		StartDate:             from.Format(constants.DateLayout),
		EndDate:               to.Format(constants.DateLayout),
		TotalReports:          stats.TotalReports,
		AverageAttendanceRate: stats.AverageRate,
		TotalSessions:         stats.TotalSessions,
		AttendedSessions:      stats.AttendedSessions,
	}, nil
}
