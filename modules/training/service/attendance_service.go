package service

import (
	"context"
	"trainhub-api/core/authz"
	"trainhub-api/core/constants"
	"trainhub-api/core/errors"
	"trainhub-api/core/logger"
	"trainhub-api/core/params"
	"trainhub-api/core/utils"
	"trainhub-api/modules/training/dto"
	"trainhub-api/modules/training/entity"
	"trainhub-api/modules/training/mapper"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// RecordAttendance stores the whole roll call of one session occurrence in a
// single transaction. Either every record is written or none is.
func (s *TrainingService) RecordAttendance(ctx context.Context, id authz.Identity, req *dto.BulkAttendanceRequest) ([]dto.AttendanceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	day, err := utils.ParseDate(req.SessionDate)
	if err != nil || day == nil {
		return nil, invalid("session_date must be YYYY-MM-DD")
	}
	if day.After(utils.DateOnly(s.now())) {
		return nil, invalid("attendance cannot be recorded for a future date")
	}

	session, err := s.repo.GetSession(ctx, req.ScheduleID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get schedule entry failed", err)
	}
	if session == nil {
		return nil, notFound("schedule entry")
	}
	if appErr := canRecord(id, session); appErr != nil {
		return nil, appErr
	}
	occurs, err := s.timetable.OccursOn(ctx, session.ID, *day)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get session occurrences failed", err)
	}
	if !occurs {
		return nil, invalid("the session does not take place on " + req.SessionDate).
			WithDetails([]errors.Violation{{Field: "session_date", Code: errors.ErrInvalidInput, Message: "not an occurrence of the session"}})
	}

	studentIDs, appErr := uniqueStudents(req.Records)
	if appErr != nil {
		return nil, appErr
	}
	outside, err := s.repo.StudentsOutside(ctx, session.GroupID, studentIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "check students failed", err)
	}
	if len(outside) > 0 {
		violations := make([]errors.Violation, len(outside))
		for i, studentID := range outside {
			violations[i] = errors.Violation{Field: "records", Code: errors.ErrInvalidInput, Message: "student " + studentID.String() + " does not attend this session"}
		}
		return nil, invalid("some students do not attend this session").WithDetails(violations)
	}

	rows := mapper.ToAttendanceEntities(req, *day, id.UserID)
	err = s.tx.RunInTx(ctx, nil, func(tx *sqlx.Tx) error {
		store := s.withTx(tx)
		for i := range rows {
			if err := store.UpsertAttendance(ctx, &rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, writeError(errors.ErrCreateFailed, "record attendance failed", err)
	}
	logger.Info("TrainingService:RecordAttendance", "schedule_id", session.ID, "session_date", req.SessionDate, "records", len(rows), "recorded_by", id.UserID)
	return mapper.ToAttendanceResponses(rows), nil
}

// canRecord lets the session's teacher, staff of its center and admins take
// the roll.
func canRecord(id authz.Identity, session *entity.Session) *errors.AppError {
	switch {
	case id.Is(authz.RoleAdmin):
		return nil
	case id.Is(authz.RoleTeacher):
		if session.TeacherID == nil || *session.TeacherID != id.UserID {
			return forbidden("only the session's teacher records its attendance")
		}
		return nil
	case id.Is(authz.RoleCenterStaff):
		if !id.InCenter(session.CenterID) {
			return forbidden("session belongs to another center")
		}
		return nil
	}
	return forbidden("not allowed to record attendance")
}

func uniqueStudents(records []dto.AttendanceRecord) ([]uuid.UUID, *errors.AppError) {
	seen := make(map[uuid.UUID]struct{}, len(records))
	ids := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.StudentID]; ok {
			return nil, invalid("student " + r.StudentID.String() + " is listed twice")
		}
		seen[r.StudentID] = struct{}{}
		ids = append(ids, r.StudentID)
	}
	return ids, nil
}

func (s *TrainingService) ListAttendance(ctx context.Context, id authz.Identity, filter entity.Filter, p params.QueryParams) (*dto.PaginatedAttendanceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := narrow(id, &filter, true); appErr != nil {
		return nil, appErr
	}
	rows, err := s.repo.ListAttendance(ctx, filter, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get attendance failed", err)
	}
	return mapper.ToPage(rows, mapper.ToAttendanceResponse), nil
}
