package service

import (
	"context"
	"testing"
	"trainhub-api/core/authz"
	"trainhub-api/core/errors"
	"trainhub-api/modules/schedule/dto"
	"trainhub-api/modules/schedule/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memAvailability struct {
	items    map[uuid.UUID]*entity.TeacherAvailability
	teachers map[uuid.UUID]entity.TeacherScope
}

func newMemAvailability() *memAvailability {
	return &memAvailability{
		items:    map[uuid.UUID]*entity.TeacherAvailability{},
		teachers: map[uuid.UUID]entity.TeacherScope{},
	}
}

func (m *memAvailability) Create(_ context.Context, a *entity.TeacherAvailability) error {
	a.ID = uuid.New()
	cp := *a
	m.items[a.ID] = &cp
	return nil
}

func (m *memAvailability) Update(_ context.Context, a *entity.TeacherAvailability) error {
	cp := *a
	m.items[a.ID] = &cp
	return nil
}

func (m *memAvailability) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *memAvailability) GetByID(_ context.Context, id uuid.UUID) (*entity.TeacherAvailability, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *memAvailability) ListByTeacher(_ context.Context, teacherID uuid.UUID) ([]entity.TeacherAvailability, error) {
	out := []entity.TeacherAvailability{}
	for _, a := range m.items {
		if a.TeacherID == teacherID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memAvailability) GetTeacherScope(_ context.Context, teacherID uuid.UUID) (*entity.TeacherScope, error) {
	scope, ok := m.teachers[teacherID]
	if !ok {
		return nil, nil
	}
	return &scope, nil
}

type availabilityFixture struct {
	store       *memAvailability
	svc         *AvailabilityService
	center      uuid.UUID
	otherCenter uuid.UUID
	association uuid.UUID
	teacher     uuid.UUID
	foreign     uuid.UUID
}

func newAvailabilityFixture() availabilityFixture {
	f := availabilityFixture{
		store:       newMemAvailability(),
		center:      uuid.New(),
		otherCenter: uuid.New(),
		association: uuid.New(),
		teacher:     uuid.New(),
		foreign:     uuid.New(),
	}
	f.svc = NewAvailabilityService(f.store)
	f.store.teachers[f.teacher] = entity.TeacherScope{CenterID: idPtr(f.center), AssociationID: idPtr(f.association)}
	f.store.teachers[f.foreign] = entity.TeacherScope{CenterID: idPtr(f.otherCenter), AssociationID: idPtr(uuid.New())}
	return f
}

func (f availabilityFixture) window(teacher uuid.UUID, start, end string) *dto.AvailabilityRequest {
	return &dto.AvailabilityRequest{TeacherID: idPtr(teacher), DayOfWeek: "MON", StartTime: start, EndTime: end}
}

func TestAvailabilityService_Scope(t *testing.T) {
	ctx := context.Background()
	f := newAvailabilityFixture()
	staff := authz.Identity{UserID: uuid.New(), Role: authz.RoleCenterStaff, CenterID: idPtr(f.center)}
	assocStaff := authz.Identity{UserID: uuid.New(), Role: authz.RoleAssociationStaff, AssociationID: idPtr(f.association)}
	admin := authz.Identity{UserID: uuid.New(), Role: authz.RoleAdmin}
	teacher := authz.Identity{UserID: f.teacher, Role: authz.RoleTeacher, CenterID: idPtr(f.center)}

	tests := []struct {
		name    string
		id      authz.Identity
		teacher uuid.UUID
		want    errors.ErrorCode
	}{
		{"center staff for a teacher of their center", staff, f.teacher, ""},
		{"center staff for a teacher of another center", staff, f.foreign, errors.ErrForbidden},
		{"association staff inside their association", assocStaff, f.teacher, ""},
		{"association staff outside their association", assocStaff, f.foreign, errors.ErrForbidden},
		{"admin anywhere", admin, f.foreign, ""},
		{"teacher for themselves", teacher, f.teacher, ""},
		{"teacher for someone else", teacher, f.foreign, errors.ErrForbidden},
		{"unknown teacher", staff, uuid.New(), errors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for id := range f.store.items {
				delete(f.store.items, id)
			}
			_, appErr := f.svc.Create(ctx, tt.id, f.window(tt.teacher, "08:00", "10:00"))
			if tt.want == "" {
				require.Nil(t, appErr)
				return
			}
			require.NotNil(t, appErr)
			assert.Equal(t, tt.want, appErr.Code)
			assert.Empty(t, f.store.items)
		})
	}
}

func TestAvailabilityService_CrossCenterWindows(t *testing.T) {
	ctx := context.Background()
	f := newAvailabilityFixture()
	admin := authz.Identity{UserID: uuid.New(), Role: authz.RoleAdmin}
	staff := authz.Identity{UserID: uuid.New(), Role: authz.RoleCenterStaff, CenterID: idPtr(f.center)}

	foreign, appErr := f.svc.Create(ctx, admin, f.window(f.foreign, "08:00", "10:00"))
	require.Nil(t, appErr)

	_, appErr = f.svc.Update(ctx, staff, foreign.ID, f.window(f.foreign, "09:00", "11:00"))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	appErr = f.svc.Delete(ctx, staff, foreign.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
	assert.Contains(t, f.store.items, foreign.ID)

	_, appErr = f.svc.List(ctx, staff, idPtr(f.foreign))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	own, appErr := f.svc.Create(ctx, staff, f.window(f.teacher, "08:00", "10:00"))
	require.Nil(t, appErr)
	_, appErr = f.svc.Update(ctx, staff, own.ID, f.window(f.teacher, "09:00", "11:00"))
	require.Nil(t, appErr)
	items, appErr := f.svc.List(ctx, staff, idPtr(f.teacher))
	require.Nil(t, appErr)
	require.Len(t, items, 1)
	require.Nil(t, f.svc.Delete(ctx, staff, own.ID))
}

func TestAvailabilityService_Overlap(t *testing.T) {
	ctx := context.Background()
	f := newAvailabilityFixture()
	staff := authz.Identity{UserID: uuid.New(), Role: authz.RoleCenterStaff, CenterID: idPtr(f.center)}

	_, appErr := f.svc.Create(ctx, staff, f.window(f.teacher, "08:00", "10:00"))
	require.Nil(t, appErr)

	_, appErr = f.svc.Create(ctx, staff, f.window(f.teacher, "09:00", "11:00"))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAvailabilityOverlap, appErr.Code)

	_, appErr = f.svc.Create(ctx, staff, f.window(f.teacher, "10:00", "11:00"))
	require.Nil(t, appErr)

	_, appErr = f.svc.Create(ctx, staff, f.window(f.teacher, "12:00", "11:00"))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrMalformedInterval, appErr.Code)
}
