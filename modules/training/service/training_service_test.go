package service

import (
	"context"
	"testing"
	"time"
	"trainhub-api/core/authz"
	"trainhub-api/core/errors"
	"trainhub-api/core/params"
	scheduleEntity "trainhub-api/modules/schedule/entity"
	"trainhub-api/modules/training/dto"
	"trainhub-api/modules/training/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday.
var today = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

type trainingFixture struct {
	store       *memTraining
	svc         *TrainingService
	tx          *directTx
	center      uuid.UUID
	otherCenter uuid.UUID
	association uuid.UUID
	training    uuid.UUID
	group       uuid.UUID
	student     uuid.UUID
	exercise    uuid.UUID
	session     uuid.UUID
	teacher     authz.Identity
	admin       authz.Identity
}

func newTrainingFixture() trainingFixture {
	f := trainingFixture{
		store:       newMemTraining(),
		center:      uuid.New(),
		otherCenter: uuid.New(),
		association: uuid.New(),
		training:    uuid.New(),
		group:       uuid.New(),
		student:     uuid.New(),
		exercise:    uuid.New(),
		session:     uuid.New(),
	}
	f.svc, f.tx = newTestService(f.store, today)
	f.teacher = authz.Identity{UserID: uuid.New(), Role: authz.RoleTeacher, CenterID: idPtr(f.center)}
	f.admin = authz.Identity{UserID: uuid.New(), Role: authz.RoleAdmin}

	f.store.groups[f.group] = f.training
	f.store.users[f.teacher.UserID] = &entity.UserRef{ID: f.teacher.UserID, Role: authz.RoleTeacher, CenterID: idPtr(f.center), AssociationID: idPtr(f.association)}
	f.store.users[f.student] = &entity.UserRef{ID: f.student, Role: authz.RoleStudent, CenterID: idPtr(f.center), AssociationID: idPtr(f.association), GroupID: idPtr(f.group)}
	f.store.exercises[f.exercise] = &entity.Exercise{TrainingID: f.training, Title: "Fractions", MaxPoints: 20}
	f.store.sessions[f.session] = &entity.Session{
		ID:            f.session,
		CenterID:      f.center,
		AssociationID: f.association,
		TrainingID:    f.training,
		GroupID:       idPtr(f.group),
		TeacherID:     idPtr(f.teacher.UserID),
	}
	entry := &scheduleEntity.ScheduleEntry{
		TrainingID:        f.training,
		CenterID:          f.center,
		GroupID:           idPtr(f.group),
		TeacherID:         idPtr(f.teacher.UserID),
		Subject:           "Maths",
		DayOfWeek:         scheduleEntity.Monday,
		IsActive:          true,
		IsRecurring:       true,
		RecurrenceType:    scheduleEntity.RecurrenceWeekly,
		StartDate:         datePtr("2026-09-07"),
		RecurrenceEndDate: datePtr("2026-12-21"),
	}
	entry.ID = f.session
	f.store.timetable.entries[f.session] = entry
	return f
}

// entry is the schedule entry behind the fixture session.
func (f trainingFixture) entry() *scheduleEntity.ScheduleEntry {
	return f.store.timetable.entries[f.session]
}

func datePtr(s string) *time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &d
}

func (f trainingFixture) studentIdentity() authz.Identity {
	return authz.Identity{UserID: f.student, Role: authz.RoleStudent, CenterID: idPtr(f.center), GroupID: idPtr(f.group)}
}

func (f trainingFixture) roll(day string, students ...uuid.UUID) *dto.BulkAttendanceRequest {
	req := &dto.BulkAttendanceRequest{ScheduleID: f.session, SessionDate: day}
	for _, s := range students {
		req.Records = append(req.Records, dto.AttendanceRecord{StudentID: s, Status: "present"})
	}
	return req
}

func TestTrainingService_CreateDistribution(t *testing.T) {
	ctx := context.Background()

	t.Run("a teacher always plans for themselves", func(t *testing.T) {
		f := newTrainingFixture()
		someoneElse := uuid.New()
		resp, appErr := f.svc.CreateDistribution(ctx, f.teacher, &dto.DistributionRequest{
			TrainingID: f.training,
			GroupID:    idPtr(f.group),
			TeacherID:  &someoneElse,
			Month:      9,
			Week:       1,
			Title:      "Intro",
		})
		require.Nil(t, appErr)
		assert.Equal(t, f.teacher.UserID, resp.TeacherID)
	})

	t.Run("admin must name a teacher", func(t *testing.T) {
		f := newTrainingFixture()
		_, appErr := f.svc.CreateDistribution(ctx, f.admin, &dto.DistributionRequest{TrainingID: f.training, Month: 9, Week: 1, Title: "Intro"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})

	t.Run("admin cannot assign a student as teacher", func(t *testing.T) {
		f := newTrainingFixture()
		_, appErr := f.svc.CreateDistribution(ctx, f.admin, &dto.DistributionRequest{TrainingID: f.training, TeacherID: idPtr(f.student), Month: 9, Week: 1, Title: "Intro"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})

	t.Run("group must follow the training", func(t *testing.T) {
		f := newTrainingFixture()
		other := uuid.New()
		f.store.groups[other] = uuid.New()
		_, appErr := f.svc.CreateDistribution(ctx, f.teacher, &dto.DistributionRequest{TrainingID: f.training, GroupID: &other, Month: 9, Week: 1, Title: "Intro"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrGroupTrainingMismatch, appErr.Code)
	})
}

func TestTrainingService_Submissions(t *testing.T) {
	ctx := context.Background()

	t.Run("only students submit", func(t *testing.T) {
		f := newTrainingFixture()
		_, appErr := f.svc.Submit(ctx, f.teacher, &dto.SubmissionRequest{ExerciseID: f.exercise, Content: "42"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})

	t.Run("review stamps the reviewer", func(t *testing.T) {
		f := newTrainingFixture()
		sub, appErr := f.svc.Submit(ctx, f.studentIdentity(), &dto.SubmissionRequest{ExerciseID: f.exercise, Content: "42"})
		require.Nil(t, appErr)
		assert.Equal(t, "submitted", sub.Status)

		reviewed, appErr := f.svc.ReviewSubmission(ctx, f.teacher, sub.ID, &dto.ReviewRequest{Status: "reviewed", Feedback: "good"})
		require.Nil(t, appErr)
		assert.Equal(t, "reviewed", reviewed.Status)
		assert.Equal(t, &f.teacher.UserID, reviewed.ReviewedBy)
		require.NotNil(t, reviewed.ReviewedAt)
		assert.True(t, reviewed.ReviewedAt.Equal(today))
	})

	t.Run("another student cannot read it", func(t *testing.T) {
		f := newTrainingFixture()
		sub, appErr := f.svc.Submit(ctx, f.studentIdentity(), &dto.SubmissionRequest{ExerciseID: f.exercise, Content: "42"})
		require.Nil(t, appErr)

		other := authz.Identity{UserID: uuid.New(), Role: authz.RoleStudent}
		_, appErr = f.svc.GetSubmission(ctx, other, sub.ID)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)
	})
}

func TestTrainingService_GradeExercise(t *testing.T) {
	ctx := context.Background()

	t.Run("mark within max points", func(t *testing.T) {
		f := newTrainingFixture()
		resp, appErr := f.svc.GradeExercise(ctx, f.teacher, &dto.MarkRequest{ExerciseID: f.exercise, StudentID: f.student, Value: 20})
		require.Nil(t, appErr)
		assert.Equal(t, 20.0, resp.Value)
		assert.Equal(t, &f.teacher.UserID, resp.GradedBy)
		assert.Len(t, f.store.marks, 1)
	})

	t.Run("mark above max points is rejected", func(t *testing.T) {
		f := newTrainingFixture()
		_, appErr := f.svc.GradeExercise(ctx, f.teacher, &dto.MarkRequest{ExerciseID: f.exercise, StudentID: f.student, Value: 20.5})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
		assert.Empty(t, f.store.marks)
	})

	t.Run("teacher of another center is forbidden", func(t *testing.T) {
		f := newTrainingFixture()
		outsider := authz.Identity{UserID: uuid.New(), Role: authz.RoleTeacher, CenterID: idPtr(f.otherCenter)}
		_, appErr := f.svc.GradeExercise(ctx, outsider, &dto.MarkRequest{ExerciseID: f.exercise, StudentID: f.student, Value: 10})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)
	})

	t.Run("only students are graded", func(t *testing.T) {
		f := newTrainingFixture()
		_, appErr := f.svc.GradeExercise(ctx, f.admin, &dto.MarkRequest{ExerciseID: f.exercise, StudentID: f.teacher.UserID, Value: 10})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})
}

func TestTrainingService_LogProgress(t *testing.T) {
	ctx := context.Background()
	f := newTrainingFixture()

	resp, appErr := f.svc.LogProgress(ctx, f.teacher, &dto.ProgressLogRequest{
		TrainingID:    f.training,
		GroupID:       idPtr(f.group),
		SessionDate:   "2026-10-12",
		SessionTime:   "09:30",
		TopicsCovered: "Fractions",
	})
	require.Nil(t, appErr)
	assert.Equal(t, f.teacher.UserID, resp.TeacherID)
	assert.Equal(t, "2026-10-12", resp.SessionDate)

	_, appErr = f.svc.LogProgress(ctx, f.admin, &dto.ProgressLogRequest{TrainingID: f.training, SessionDate: "2026-10-12", SessionTime: "09:30", TopicsCovered: "x"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestTrainingService_RecordAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("records every student in one transaction", func(t *testing.T) {
		f := newTrainingFixture()
		other := uuid.New()
		rows, appErr := f.svc.RecordAttendance(ctx, f.teacher, f.roll("2026-10-12", f.student, other))
		require.Nil(t, appErr)
		assert.Len(t, rows, 2)
		assert.Len(t, f.store.attendance, 2)
		assert.Equal(t, 1, f.tx.calls)
		assert.Equal(t, &f.teacher.UserID, rows[0].RecordedBy)
	})

	t.Run("future dates are rejected", func(t *testing.T) {
		f := newTrainingFixture()
		_, appErr := f.svc.RecordAttendance(ctx, f.teacher, f.roll("2026-10-19", f.student))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})

	t.Run("the session must take place that day", func(t *testing.T) {
		f := newTrainingFixture()
		_, appErr := f.svc.RecordAttendance(ctx, f.teacher, f.roll("2026-10-13", f.student))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})

	t.Run("cancelled occurrences are rejected", func(t *testing.T) {
		f := newTrainingFixture()
		cancelled := &scheduleEntity.ScheduleEntry{IsException: true, ParentID: idPtr(f.session), ExceptionDate: datePtr("2026-10-12")}
		cancelled.ID = uuid.New()
		f.store.timetable.entries[cancelled.ID] = cancelled
		_, appErr := f.svc.RecordAttendance(ctx, f.teacher, f.roll("2026-10-12", f.student))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})

	t.Run("holidays of the center are rejected", func(t *testing.T) {
		f := newTrainingFixture()
		f.store.timetable.holidays = []scheduleEntity.Holiday{{CenterID: f.center, Name: "Autumn break", StartDate: *datePtr("2026-10-12"), EndDate: *datePtr("2026-10-16")}}
		_, appErr := f.svc.RecordAttendance(ctx, f.teacher, f.roll("2026-10-12", f.student))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
		assert.Empty(t, f.store.attendance)

		_, appErr = f.svc.RecordAttendance(ctx, f.teacher, f.roll("2026-10-05", f.student))
		require.Nil(t, appErr)
	})

	t.Run("a holiday of another center does not matter", func(t *testing.T) {
		f := newTrainingFixture()
		f.store.timetable.holidays = []scheduleEntity.Holiday{{CenterID: f.otherCenter, StartDate: *datePtr("2026-10-12"), EndDate: *datePtr("2026-10-12")}}
		_, appErr := f.svc.RecordAttendance(ctx, f.teacher, f.roll("2026-10-12", f.student))
		require.Nil(t, appErr)
	})

	t.Run("daily sessions take place on every day", func(t *testing.T) {
		f := newTrainingFixture()
		f.entry().RecurrenceType = scheduleEntity.RecurrenceDaily
		for _, day := range []string{"2026-10-13", "2026-10-14", "2026-10-15"} {
			_, appErr := f.svc.RecordAttendance(ctx, f.teacher, f.roll(day, f.student))
			require.Nil(t, appErr, day)
		}
		assert.Len(t, f.store.attendance, 3)
	})

	t.Run("monthly sessions follow the day of month", func(t *testing.T) {
		f := newTrainingFixture()
		f.entry().RecurrenceType = scheduleEntity.RecurrenceMonthly

		_, appErr := f.svc.RecordAttendance(ctx, f.teacher, f.roll("2026-10-07", f.student))
		require.Nil(t, appErr)

		_, appErr = f.svc.RecordAttendance(ctx, f.teacher, f.roll("2026-10-12", f.student))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})

	t.Run("an exception takes the roll of the date it replaces", func(t *testing.T) {
		f := newTrainingFixture()
		moved := &scheduleEntity.ScheduleEntry{CenterID: f.center, DayOfWeek: scheduleEntity.Monday, IsActive: true, IsException: true, ParentID: idPtr(f.session), ExceptionDate: datePtr("2026-10-12")}
		moved.ID = uuid.New()
		f.store.timetable.entries[moved.ID] = moved
		session := *f.store.sessions[f.session]
		session.ID = moved.ID
		f.store.sessions[moved.ID] = &session

		req := f.roll("2026-10-12", f.student)
		req.ScheduleID = moved.ID
		_, appErr := f.svc.RecordAttendance(ctx, f.teacher, req)
		require.Nil(t, appErr)

		_, appErr = f.svc.RecordAttendance(ctx, f.teacher, f.roll("2026-10-12", f.student))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})

	t.Run("unknown schedule entry", func(t *testing.T) {
		f := newTrainingFixture()
		req := f.roll("2026-10-12", f.student)
		req.ScheduleID = uuid.New()
		_, appErr := f.svc.RecordAttendance(ctx, f.teacher, req)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrNotFound, appErr.Code)
	})

	t.Run("only the session's teacher", func(t *testing.T) {
		f := newTrainingFixture()
		other := authz.Identity{UserID: uuid.New(), Role: authz.RoleTeacher, CenterID: idPtr(f.center)}
		_, appErr := f.svc.RecordAttendance(ctx, other, f.roll("2026-10-12", f.student))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)
	})

	t.Run("center staff of the session's center", func(t *testing.T) {
		f := newTrainingFixture()
		staff := authz.Identity{UserID: uuid.New(), Role: authz.RoleCenterStaff, CenterID: idPtr(f.center)}
		_, appErr := f.svc.RecordAttendance(ctx, staff, f.roll("2026-10-12", f.student))
		require.Nil(t, appErr)

		staff.CenterID = idPtr(f.otherCenter)
		_, appErr = f.svc.RecordAttendance(ctx, staff, f.roll("2026-10-12", f.student))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)
	})

	t.Run("duplicate students are rejected", func(t *testing.T) {
		f := newTrainingFixture()
		_, appErr := f.svc.RecordAttendance(ctx, f.teacher, f.roll("2026-10-12", f.student, f.student))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
		assert.Zero(t, f.tx.calls)
	})

	t.Run("students outside the group are listed", func(t *testing.T) {
		f := newTrainingFixture()
		stranger := uuid.New()
		f.store.outside = []uuid.UUID{stranger}
		_, appErr := f.svc.RecordAttendance(ctx, f.teacher, f.roll("2026-10-12", f.student, stranger))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
		violations, ok := appErr.Details.([]errors.Violation)
		require.True(t, ok)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Message, stranger.String())
		assert.Empty(t, f.store.attendance)
	})
}

func TestTrainingService_ListAttendanceNarrowsByRole(t *testing.T) {
	ctx := context.Background()
	f := newTrainingFixture()
	p := params.QueryParams{PageNumber: 1, PageSize: 10}

	_, appErr := f.svc.ListAttendance(ctx, f.teacher, entity.Filter{}, p)
	require.Nil(t, appErr)
	assert.Equal(t, &f.teacher.UserID, f.store.lastFilter.TeacherID)

	_, appErr = f.svc.ListAttendance(ctx, f.studentIdentity(), entity.Filter{}, p)
	require.Nil(t, appErr)
	assert.Equal(t, &f.student, f.store.lastFilter.StudentID)

	staff := authz.Identity{UserID: uuid.New(), Role: authz.RoleAssociationStaff, AssociationID: idPtr(f.association)}
	_, appErr = f.svc.ListAttendance(ctx, staff, entity.Filter{}, p)
	require.Nil(t, appErr)
	assert.Equal(t, &f.association, f.store.lastFilter.AssociationID)

	_, appErr = f.svc.ListAttendance(ctx, authz.Identity{UserID: uuid.New(), Role: authz.RoleCenterStaff}, entity.Filter{}, p)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}
