package service

import (
	"context"
	"testing"
	"trainhub-api/core/authz"
	coreEntity "trainhub-api/core/entity"
	"trainhub-api/core/errors"
	"trainhub-api/core/params"
	"trainhub-api/modules/org/dto"
	"trainhub-api/modules/org/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memOrg implements the parts of OrgStore the service tests reach; the
// embedded interface panics on anything else.
type memOrg struct {
	OrgStore
	cities       map[uuid.UUID]*entity.City
	associations map[uuid.UUID]*entity.Association
	centers      map[uuid.UUID]*entity.Center
	rooms        map[uuid.UUID]*entity.Room
	materials    map[uuid.UUID]*entity.Material
	slugs        map[string]bool
	lastFilter   entity.Filter
}

func newMemOrg() *memOrg {
	return &memOrg{
		cities:       map[uuid.UUID]*entity.City{},
		associations: map[uuid.UUID]*entity.Association{},
		centers:      map[uuid.UUID]*entity.Center{},
		rooms:        map[uuid.UUID]*entity.Room{},
		materials:    map[uuid.UUID]*entity.Material{},
		slugs:        map[string]bool{},
	}
}

func (m *memOrg) CreateCity(_ context.Context, c *entity.City) error {
	for _, existing := range m.cities {
		if existing.Name == c.Name {
			return &pq.Error{Code: "23505"}
		}
	}
	c.ID = uuid.New()
	m.cities[c.ID] = c
	return nil
}

func (m *memOrg) CreateAssociation(_ context.Context, a *entity.Association) error {
	a.ID = uuid.New()
	m.associations[a.ID] = a
	m.slugs["associations/"+a.Slug] = true
	return nil
}

func (m *memOrg) GetAssociation(_ context.Context, id uuid.UUID) (*entity.Association, error) {
	return m.associations[id], nil
}

func (m *memOrg) UpdateAssociation(_ context.Context, a *entity.Association) error {
	m.associations[a.ID] = a
	return nil
}

func (m *memOrg) CreateCenter(_ context.Context, c *entity.Center) error {
	c.ID = uuid.New()
	m.centers[c.ID] = c
	m.slugs["centers/"+c.Slug] = true
	return nil
}

func (m *memOrg) GetCenter(_ context.Context, id uuid.UUID) (*entity.Center, error) {
	return m.centers[id], nil
}

func (m *memOrg) ListCenters(_ context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedCenters, error) {
	m.lastFilter = filter
	var items []entity.Center
	for _, c := range m.centers {
		if filter.AssociationID != nil && c.AssociationID != *filter.AssociationID {
			continue
		}
		if filter.CenterID != nil && c.ID != *filter.CenterID {
			continue
		}
		items = append(items, *c)
	}
	return coreEntity.NewPagination(items, len(items), p.PageNumber, p.PageSize), nil
}

func (m *memOrg) CreateRoom(_ context.Context, r *entity.Room) error {
	r.ID = uuid.New()
	m.rooms[r.ID] = r
	return nil
}

func (m *memOrg) GetRoom(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	return m.rooms[id], nil
}

func (m *memOrg) CreateMaterial(_ context.Context, mat *entity.Material) error {
	mat.ID = uuid.New()
	m.materials[mat.ID] = mat
	return nil
}

func (m *memOrg) SlugExists(_ context.Context, table, slug string) (bool, error) {
	return m.slugs[table+"/"+slug], nil
}

type orgFixture struct {
	store       *memOrg
	svc         *OrgService
	association uuid.UUID
	center      uuid.UUID
	otherCenter uuid.UUID
	admin       authz.Identity
}

func newOrgFixture() orgFixture {
	store := newMemOrg()
	f := orgFixture{
		store:       store,
		svc:         NewOrgService(store),
		association: uuid.New(),
		center:      uuid.New(),
		otherCenter: uuid.New(),
		admin:       authz.Identity{UserID: uuid.New(), Role: authz.RoleAdmin},
	}
	store.associations[f.association] = &entity.Association{Name: "North", Slug: "north"}
	store.associations[f.association].ID = f.association
	for _, id := range []uuid.UUID{f.center, f.otherCenter} {
		c := &entity.Center{AssociationID: f.association, Name: "Center", Slug: id.String()}
		c.ID = id
		store.centers[id] = c
	}
	return f
}

func (f orgFixture) staff(role authz.Role) authz.Identity {
	return authz.Identity{UserID: uuid.New(), Role: role, CenterID: &f.center, AssociationID: &f.association}
}

func (f orgFixture) associationStaff() authz.Identity {
	return authz.Identity{UserID: uuid.New(), Role: authz.RoleAssociationStaff, AssociationID: &f.association}
}

func (f orgFixture) room(center uuid.UUID) uuid.UUID {
	r := &entity.Room{CenterID: center, Name: "R1", Capacity: 20}
	r.ID = uuid.New()
	f.store.rooms[r.ID] = r
	return r.ID
}

func TestOrgService_AdminOnlyWrites(t *testing.T) {
	ctx := context.Background()
	f := newOrgFixture()

	_, appErr := f.svc.CreateCity(ctx, f.staff(authz.RoleCenterStaff), &dto.CityRequest{Name: "Lyon"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	_, appErr = f.svc.CreateTraining(ctx, f.associationStaff(), &dto.TrainingRequest{Name: "Math"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	city, appErr := f.svc.CreateCity(ctx, f.admin, &dto.CityRequest{Name: "Lyon"})
	require.Nil(t, appErr)
	assert.True(t, city.IsActive)

	_, appErr = f.svc.CreateCity(ctx, f.admin, &dto.CityRequest{Name: "Lyon"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
}

func TestOrgService_Slugs(t *testing.T) {
	ctx := context.Background()

	t.Run("association slug comes from the name", func(t *testing.T) {
		f := newOrgFixture()
		resp, appErr := f.svc.CreateAssociation(ctx, f.admin, &dto.AssociationRequest{Name: "Sud Ouest Formation"})
		require.Nil(t, appErr)
		assert.Equal(t, "sud-ouest-formation", resp.Slug)
	})

	t.Run("taken slug gets a suffix", func(t *testing.T) {
		f := newOrgFixture()
		first, appErr := f.svc.CreateCenter(ctx, f.admin, &dto.CenterRequest{AssociationID: f.association.String(), Name: "Main Campus"})
		require.Nil(t, appErr)
		second, appErr := f.svc.CreateCenter(ctx, f.admin, &dto.CenterRequest{AssociationID: f.association.String(), Name: "Main Campus"})
		require.Nil(t, appErr)

		assert.Equal(t, "main-campus", first.Slug)
		assert.NotEqual(t, first.Slug, second.Slug)
		assert.Contains(t, second.Slug, "main-campus-")
	})

	t.Run("update keeps the slug", func(t *testing.T) {
		f := newOrgFixture()
		resp, appErr := f.svc.UpdateAssociation(ctx, f.associationStaff(), f.association, &dto.AssociationRequest{Name: "Renamed"})
		require.Nil(t, appErr)
		assert.Equal(t, "Renamed", resp.Name)
		assert.Equal(t, "north", resp.Slug)
	})
}

func TestOrgService_CenterAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("association staff create centers only in their association", func(t *testing.T) {
		f := newOrgFixture()
		_, appErr := f.svc.CreateCenter(ctx, f.associationStaff(), &dto.CenterRequest{AssociationID: uuid.NewString(), Name: "Elsewhere"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)

		_, appErr = f.svc.CreateCenter(ctx, f.associationStaff(), &dto.CenterRequest{AssociationID: f.association.String(), Name: "Annex"})
		assert.Nil(t, appErr)
	})

	t.Run("center staff cannot see another center", func(t *testing.T) {
		f := newOrgFixture()
		_, appErr := f.svc.GetCenter(ctx, f.staff(authz.RoleCenterStaff), f.otherCenter)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)

		resp, appErr := f.svc.GetCenter(ctx, f.staff(authz.RoleCenterStaff), f.center)
		require.Nil(t, appErr)
		assert.Equal(t, f.center, resp.ID)
	})

	t.Run("listing is narrowed to the caller's center", func(t *testing.T) {
		f := newOrgFixture()
		page, appErr := f.svc.ListCenters(ctx, f.staff(authz.RoleTeacher), entity.Filter{}, params.QueryParams{PageNumber: 1, PageSize: 10})
		require.Nil(t, appErr)
		require.NotNil(t, f.store.lastFilter.CenterID)
		assert.Equal(t, f.center, *f.store.lastFilter.CenterID)
		assert.Equal(t, 1, page.TotalItems)
	})

	t.Run("association staff list their association", func(t *testing.T) {
		f := newOrgFixture()
		page, appErr := f.svc.ListCenters(ctx, f.associationStaff(), entity.Filter{}, params.QueryParams{PageNumber: 1, PageSize: 10})
		require.Nil(t, appErr)
		assert.Equal(t, 2, page.TotalItems)
		assert.Nil(t, f.store.lastFilter.CenterID)
	})

	t.Run("unknown center", func(t *testing.T) {
		f := newOrgFixture()
		_, appErr := f.svc.GetCenter(ctx, f.admin, uuid.New())
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrNotFound, appErr.Code)
	})
}

func TestOrgService_Facilities(t *testing.T) {
	ctx := context.Background()

	t.Run("teachers cannot add rooms", func(t *testing.T) {
		f := newOrgFixture()
		_, appErr := f.svc.CreateRoom(ctx, f.staff(authz.RoleTeacher), &dto.RoomRequest{CenterID: f.center.String(), Name: "B12"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)
	})

	t.Run("center staff add rooms to their center", func(t *testing.T) {
		f := newOrgFixture()
		resp, appErr := f.svc.CreateRoom(ctx, f.staff(authz.RoleCenterStaff), &dto.RoomRequest{CenterID: f.center.String(), Name: "B12", Capacity: 30})
		require.Nil(t, appErr)
		assert.Equal(t, f.center, resp.CenterID)
		assert.True(t, resp.IsActive)
	})

	t.Run("material room must share the center", func(t *testing.T) {
		f := newOrgFixture()
		foreign := f.room(f.otherCenter)
		_, appErr := f.svc.CreateMaterial(ctx, f.admin, &dto.MaterialRequest{
			CenterID: f.center.String(),
			RoomID:   foreign.String(),
			Name:     "Projector",
			Quantity: 1,
		})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrRoomCenterMismatch, appErr.Code)
	})

	t.Run("material defaults to good condition", func(t *testing.T) {
		f := newOrgFixture()
		local := f.room(f.center)
		resp, appErr := f.svc.CreateMaterial(ctx, f.admin, &dto.MaterialRequest{
			CenterID: f.center.String(),
			RoomID:   local.String(),
			Name:     "Projector",
			Quantity: 2,
		})
		require.Nil(t, appErr)
		assert.Equal(t, "good", resp.Condition)
		assert.Equal(t, &local, resp.RoomID)
	})
}

func TestOrgService_MyTrainings(t *testing.T) {
	f := newOrgFixture()
	_, appErr := f.svc.MyTrainings(context.Background(), f.staff(authz.RoleStudent))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}
