package service

import (
	"context"
	"database/sql"
	"time"
	"trainhub-api/core/database"
	coreEntity "trainhub-api/core/entity"
	"trainhub-api/core/params"
	scheduleEntity "trainhub-api/modules/schedule/entity"
	scheduleService "trainhub-api/modules/schedule/service"
	"trainhub-api/modules/training/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// memTraining keeps just enough state for the service rules. Methods a test
// never reaches are left to the embedded nil interface.
type memTraining struct {
	TrainingStore
	users         map[uuid.UUID]*entity.UserRef
	groups        map[uuid.UUID]uuid.UUID
	distributions map[uuid.UUID]*entity.Distribution
	exercises     map[uuid.UUID]*entity.Exercise
	submissions   map[uuid.UUID]*entity.Submission
	marks         []entity.Mark
	sessions      map[uuid.UUID]*entity.Session
	timetable     *memTimetable
	outside       []uuid.UUID
	attendance    []entity.Attendance
	upsertErr     error
	lastFilter    entity.Filter
}

func newMemTraining() *memTraining {
	return &memTraining{
		users:         map[uuid.UUID]*entity.UserRef{},
		groups:        map[uuid.UUID]uuid.UUID{},
		distributions: map[uuid.UUID]*entity.Distribution{},
		exercises:     map[uuid.UUID]*entity.Exercise{},
		submissions:   map[uuid.UUID]*entity.Submission{},
		sessions:      map[uuid.UUID]*entity.Session{},
		timetable:     &memTimetable{entries: map[uuid.UUID]*scheduleEntity.ScheduleEntry{}},
	}
}

func (m *memTraining) GetUser(_ context.Context, id uuid.UUID) (*entity.UserRef, error) {
	return m.users[id], nil
}

func (m *memTraining) GetGroupTraining(_ context.Context, groupID uuid.UUID) (*uuid.UUID, error) {
	training, ok := m.groups[groupID]
	if !ok {
		return nil, nil
	}
	return &training, nil
}

func (m *memTraining) CreateDistribution(_ context.Context, d *entity.Distribution) error {
	d.ID = uuid.New()
	m.distributions[d.ID] = d
	return nil
}

func (m *memTraining) GetDistribution(_ context.Context, id uuid.UUID) (*entity.Distribution, error) {
	return m.distributions[id], nil
}

func (m *memTraining) GetExercise(_ context.Context, id uuid.UUID) (*entity.Exercise, error) {
	return m.exercises[id], nil
}

func (m *memTraining) UpsertSubmission(_ context.Context, s *entity.Submission) error {
	s.ID = uuid.New()
	m.submissions[s.ID] = s
	return nil
}

func (m *memTraining) ReviewSubmission(_ context.Context, s *entity.Submission) error {
	m.submissions[s.ID] = s
	return nil
}

func (m *memTraining) GetSubmission(_ context.Context, id uuid.UUID) (*entity.Submission, error) {
	s, ok := m.submissions[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (m *memTraining) UpsertMark(_ context.Context, mark *entity.Mark) error {
	mark.ID = uuid.New()
	m.marks = append(m.marks, *mark)
	return nil
}

func (m *memTraining) CreateProgressLog(_ context.Context, l *entity.ProgressLog) error {
	l.ID = uuid.New()
	return nil
}

func (m *memTraining) GetSession(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	return m.sessions[id], nil
}


func (m *memTraining) StudentsOutside(_ context.Context, _ *uuid.UUID, _ []uuid.UUID) ([]uuid.UUID, error) {
	return m.outside, nil
}

func (m *memTraining) UpsertAttendance(_ context.Context, a *entity.Attendance) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	a.ID = uuid.New()
	m.attendance = append(m.attendance, *a)
	return nil
}

func (m *memTraining) ListAttendance(_ context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedAttendance, error) {
	m.lastFilter = filter
	return coreEntity.NewPagination(m.attendance, len(m.attendance), p.PageNumber, p.PageSize), nil
}

// memTimetable answers OccursOn with the schedule module's expansion rules
// over in-memory entries and holidays.
type memTimetable struct {
	entries  map[uuid.UUID]*scheduleEntity.ScheduleEntry
	holidays []scheduleEntity.Holiday
}

func (m *memTimetable) OccursOn(_ context.Context, entryID uuid.UUID, day time.Time) (bool, error) {
	entry, ok := m.entries[entryID]
	if !ok {
		return false, nil
	}
	parent := entry
	if entry.IsException && entry.ParentID != nil {
		parent = m.entries[*entry.ParentID]
	}
	var exceptions []scheduleEntity.ScheduleEntry
	for _, e := range m.entries {
		if parent != nil && e.IsException && e.ParentID != nil && *e.ParentID == parent.ID {
			exceptions = append(exceptions, *e)
		}
	}
	return scheduleService.OccursOn(entry, parent, exceptions, m.holidays, day), nil
}

// directTx runs fn once without a real transaction.
type directTx struct {
	calls int
}

func (d *directTx) RunInTx(_ context.Context, _ *sql.TxOptions, fn database.TxFunc) error {
	d.calls++
	return fn(nil)
}

func newTestService(store *memTraining, now time.Time) (*TrainingService, *directTx) {
	tx := &directTx{}
	svc := NewTrainingService(store, tx, func(*sqlx.Tx) TrainingStore { return store }, store.timetable)
	svc.now = func() time.Time { return now }
	return svc, tx
}

func idPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
