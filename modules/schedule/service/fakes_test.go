package service

import (
	"context"
	"trainhub-api/core/database"
	"trainhub-api/core/params"
	"trainhub-api/core/timeofday"
	"trainhub-api/modules/schedule/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type memStore struct {
	entries     map[uuid.UUID]*entity.ScheduleEntry
	roomCenter  map[uuid.UUID]uuid.UUID
	groupTrain  map[uuid.UUID]uuid.UUID
	centerAssoc map[uuid.UUID]uuid.UUID
	createErr   error
	created     int
	deactivated []uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		entries:     map[uuid.UUID]*entity.ScheduleEntry{},
		roomCenter:  map[uuid.UUID]uuid.UUID{},
		groupTrain:  map[uuid.UUID]uuid.UUID{},
		centerAssoc: map[uuid.UUID]uuid.UUID{},
	}
}

func (m *memStore) put(e entity.ScheduleEntry) *entity.ScheduleEntry {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	m.entries[e.ID] = &e
	return &e
}

func (m *memStore) ListActiveByDimension(_ context.Context, dim Dimension, id uuid.UUID, day entity.Weekday) ([]entity.ScheduleEntry, error) {
	var out []entity.ScheduleEntry
	for _, e := range m.entries {
		if !e.IsActive || e.IsException || e.DayOfWeek != day {
			continue
		}
		var v *uuid.UUID
		switch dim {
		case DimensionTeacher:
			v = e.TeacherID
		case DimensionRoom:
			v = e.RoomID
		case DimensionGroup:
			v = e.GroupID
		}
		if v != nil && *v == id {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *memStore) GetRoomCenter(_ context.Context, roomID uuid.UUID) (*uuid.UUID, error) {
	if c, ok := m.roomCenter[roomID]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *memStore) GetGroupTraining(_ context.Context, groupID uuid.UUID) (*uuid.UUID, error) {
	if t, ok := m.groupTrain[groupID]; ok {
		return &t, nil
	}
	return nil, nil
}

func (m *memStore) GetCenterAssociation(_ context.Context, centerID uuid.UUID) (*uuid.UUID, error) {
	if a, ok := m.centerAssoc[centerID]; ok {
		return &a, nil
	}
	return nil, nil
}

func (m *memStore) GetByID(_ context.Context, id uuid.UUID) (*entity.ScheduleEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *memStore) Create(_ context.Context, e *entity.ScheduleEntry) error {
	if m.createErr != nil {
		return m.createErr
	}
	e.ID = uuid.New()
	m.put(*e)
	m.created++
	return nil
}

func (m *memStore) Update(_ context.Context, e *entity.ScheduleEntry) error {
	m.put(*e)
	return nil
}

func (m *memStore) Deactivate(_ context.Context, id uuid.UUID) error {
	for _, e := range m.entries {
		if e.ID == id || (e.ParentID != nil && *e.ParentID == id) {
			e.IsActive = false
		}
	}
	m.deactivated = append(m.deactivated, id)
	return nil
}

func (m *memStore) List(_ context.Context, filter entity.ScheduleFilter, p params.QueryParams) (*entity.PaginatedScheduleEntries, error) {
	var out []entity.ScheduleEntry
	for _, e := range m.entries {
		if filter.TeacherID != nil && (e.TeacherID == nil || *e.TeacherID != *filter.TeacherID) {
			continue
		}
		if filter.GroupID != nil && (e.GroupID == nil || *e.GroupID != *filter.GroupID) {
			continue
		}
		if filter.CenterID != nil && e.CenterID != *filter.CenterID {
			continue
		}
		out = append(out, *e)
	}
	return &entity.PaginatedScheduleEntries{Items: out, TotalItems: len(out), PageNumber: p.PageNumber, PageSize: p.PageSize}, nil
}

func (m *memStore) ListExceptions(_ context.Context, parentID uuid.UUID) ([]entity.ScheduleEntry, error) {
	var out []entity.ScheduleEntry
	for _, e := range m.entries {
		if e.IsException && e.ParentID != nil && *e.ParentID == parentID {
			out = append(out, *e)
		}
	}
	return out, nil
}

// directTx runs fn once without a real transaction.
type directTx struct {
	err   error
	calls int
}

func (d *directTx) RunSerializable(_ context.Context, fn database.TxFunc) error {
	d.calls++
	if d.err != nil {
		return d.err
	}
	return fn(nil)
}

type memHolidays struct {
	items []entity.Holiday
}

func (m *memHolidays) ListByCenter(_ context.Context, centerID uuid.UUID) ([]entity.Holiday, error) {
	var out []entity.Holiday
	for _, h := range m.items {
		if h.CenterID == centerID {
			out = append(out, h)
		}
	}
	return out, nil
}

type sentNotification struct {
	userID uuid.UUID
	title  string
}

type recordingNotifier struct {
	sent []sentNotification
}

func (r *recordingNotifier) Notify(_ context.Context, userID uuid.UUID, title, _, _ string, _ map[string]any) error {
	r.sent = append(r.sent, sentNotification{userID: userID, title: title})
	return nil
}

func newTestService(store *memStore, holidays *memHolidays, notifier *recordingNotifier) (*ScheduleService, *directTx) {
	tx := &directTx{}
	svc := NewScheduleService(store, tx, func(*sqlx.Tx) ScheduleStore { return store }, holidays, notifier)
	return svc, tx
}

func tod(s string) timeofday.Time {
	return timeofday.MustParse(s)
}

func idPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
