package repository

import (
	"context"
	"trainhub-api/core/database"
	"trainhub-api/core/params"
	"trainhub-api/modules/org/entity"

	"github.com/google/uuid"
)

const (
	roomColumns     = `r.id, r.center_id, r.name, r.capacity, r.is_active, r.created_at, r.updated_at`
	materialColumns = `m.id, m.center_id, m.room_id, m.name, m.quantity, m.condition, m.created_at, m.updated_at`
)

func (r *OrgRepository) CreateRoom(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (center_id, name, capacity, is_active)
		VALUES (:center_id, :name, :capacity, :is_active)
		RETURNING id, created_at, updated_at
	`
	return database.Insert(ctx, r.db, "OrgRepository:CreateRoom", query, room, &room.BaseEntity)
}

func (r *OrgRepository) UpdateRoom(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms SET name = :name, capacity = :capacity, is_active = :is_active, updated_at = now()
		WHERE id = :id
		RETURNING updated_at
	`
	return database.Update(ctx, r.db, "OrgRepository:UpdateRoom", query, room, &room.UpdatedAt)
}

func (r *OrgRepository) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return database.Remove(ctx, r.db, "OrgRepository:DeleteRoom", "rooms", id)
}

func (r *OrgRepository) GetRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return database.GetOne[entity.Room](ctx, r.db, "OrgRepository:GetRoom", `SELECT `+roomColumns+` FROM rooms r WHERE r.id = $1`, id)
}

func (r *OrgRepository) ListRooms(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedRooms, error) {
	cond := &database.Conditions{}
	if filter.CenterID != nil {
		cond.Add("r.center_id = $%d", *filter.CenterID)
	}
	if filter.AssociationID != nil {
		cond.Add("c.association_id = $%d", *filter.AssociationID)
	}
	cond.Search("r.name", filter.Search)
	from := "rooms r JOIN centers c ON c.id = r.center_id"
	return database.Paginate[entity.Room](ctx, r.db, "OrgRepository:ListRooms", from, cond, roomColumns, "r.name", p)
}

func (r *OrgRepository) CreateMaterial(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (center_id, room_id, name, quantity, condition)
		VALUES (:center_id, :room_id, :name, :quantity, :condition)
		RETURNING id, created_at, updated_at
	`
	return database.Insert(ctx, r.db, "OrgRepository:CreateMaterial", query, m, &m.BaseEntity)
}

func (r *OrgRepository) UpdateMaterial(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials
		SET room_id = :room_id, name = :name, quantity = :quantity, condition = :condition, updated_at = now()
		WHERE id = :id
		RETURNING updated_at
	`
	return database.Update(ctx, r.db, "OrgRepository:UpdateMaterial", query, m, &m.UpdatedAt)
}

func (r *OrgRepository) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	return database.Remove(ctx, r.db, "OrgRepository:DeleteMaterial", "materials", id)
}

func (r *OrgRepository) GetMaterial(ctx context.Context, id uuid.UUID) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials m WHERE m.id = $1`
	return database.GetOne[entity.Material](ctx, r.db, "OrgRepository:GetMaterial", query, id)
}

func (r *OrgRepository) ListMaterials(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedMaterials, error) {
	cond := &database.Conditions{}
	if filter.CenterID != nil {
		cond.Add("m.center_id = $%d", *filter.CenterID)
	}
	if filter.AssociationID != nil {
		cond.Add("c.association_id = $%d", *filter.AssociationID)
	}
	if filter.RoomID != nil {
		cond.Add("m.room_id = $%d", *filter.RoomID)
	}
	cond.Search("m.name", filter.Search)
	from := "materials m JOIN centers c ON c.id = m.center_id"
	return database.Paginate[entity.Material](ctx, r.db, "OrgRepository:ListMaterials", from, cond, materialColumns, "m.name", p)
}
