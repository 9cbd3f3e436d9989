package repository

import (
	"context"
	"trainhub-api/core/database"
	"trainhub-api/core/params"
	"trainhub-api/modules/org/entity"

	"github.com/google/uuid"
)

const (
	cityColumns        = `id, name, is_active, created_at, updated_at`
	associationColumns = `id, name, slug, address, city_id, phone_number, email, is_active, created_at, updated_at`
	centerColumns      = `id, association_id, city_id, name, slug, address, phone_number, email, is_active, created_at, updated_at`
)

func (r *OrgRepository) CreateCity(ctx context.Context, c *entity.City) error {
	query := `
		INSERT INTO cities (name, is_active)
		VALUES (:name, :is_active)
		RETURNING id, created_at, updated_at
	`
	return database.Insert(ctx, r.db, "OrgRepository:CreateCity", query, c, &c.BaseEntity)
}

func (r *OrgRepository) UpdateCity(ctx context.Context, c *entity.City) error {
	query := `
		UPDATE cities SET name = :name, is_active = :is_active, updated_at = now()
		WHERE id = :id
		RETURNING updated_at
	`
	return database.Update(ctx, r.db, "OrgRepository:UpdateCity", query, c, &c.UpdatedAt)
}

func (r *OrgRepository) DeleteCity(ctx context.Context, id uuid.UUID) error {
	return database.Remove(ctx, r.db, "OrgRepository:DeleteCity", "cities", id)
}

func (r *OrgRepository) GetCity(ctx context.Context, id uuid.UUID) (*entity.City, error) {
	return database.GetOne[entity.City](ctx, r.db, "OrgRepository:GetCity", `SELECT `+cityColumns+` FROM cities WHERE id = $1`, id)
}

func (r *OrgRepository) ListCities(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedCities, error) {
	cond := &database.Conditions{}
	cond.Search("name", filter.Search)
	return database.Paginate[entity.City](ctx, r.db, "OrgRepository:ListCities", "cities", cond, cityColumns, "name", p)
}

func (r *OrgRepository) CreateAssociation(ctx context.Context, a *entity.Association) error {
	query := `
		INSERT INTO associations (name, slug, address, city_id, phone_number, email, is_active)
		VALUES (:name, :slug, :address, :city_id, :phone_number, :email, :is_active)
		RETURNING id, created_at, updated_at
	`
	return database.Insert(ctx, r.db, "OrgRepository:CreateAssociation", query, a, &a.BaseEntity)
}

func (r *OrgRepository) UpdateAssociation(ctx context.Context, a *entity.Association) error {
	query := `
		UPDATE associations
		SET name = :name, address = :address, city_id = :city_id, phone_number = :phone_number,
			email = :email, is_active = :is_active, updated_at = now()
		WHERE id = :id
		RETURNING updated_at
	`
	return database.Update(ctx, r.db, "OrgRepository:UpdateAssociation", query, a, &a.UpdatedAt)
}

func (r *OrgRepository) DeleteAssociation(ctx context.Context, id uuid.UUID) error {
	return database.Remove(ctx, r.db, "OrgRepository:DeleteAssociation", "associations", id)
}

func (r *OrgRepository) GetAssociation(ctx context.Context, id uuid.UUID) (*entity.Association, error) {
	query := `SELECT ` + associationColumns + ` FROM associations WHERE id = $1`
	return database.GetOne[entity.Association](ctx, r.db, "OrgRepository:GetAssociation", query, id)
}

func (r *OrgRepository) ListAssociations(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedAssociations, error) {
	cond := &database.Conditions{}
	if filter.CityID != nil {
		cond.Add("city_id = $%d", *filter.CityID)
	}
	if filter.AssociationID != nil {
		cond.Add("id = $%d", *filter.AssociationID)
	}
	cond.Search("name", filter.Search)
	return database.Paginate[entity.Association](ctx, r.db, "OrgRepository:ListAssociations", "associations", cond, associationColumns, "name", p)
}

func (r *OrgRepository) CreateCenter(ctx context.Context, c *entity.Center) error {
	query := `
		INSERT INTO centers (association_id, city_id, name, slug, address, phone_number, email, is_active)
		VALUES (:association_id, :city_id, :name, :slug, :address, :phone_number, :email, :is_active)
		RETURNING id, created_at, updated_at
	`
	return database.Insert(ctx, r.db, "OrgRepository:CreateCenter", query, c, &c.BaseEntity)
}

func (r *OrgRepository) UpdateCenter(ctx context.Context, c *entity.Center) error {
	query := `
		UPDATE centers
		SET city_id = :city_id, name = :name, address = :address, phone_number = :phone_number,
			email = :email, is_active = :is_active, updated_at = now()
		WHERE id = :id
		RETURNING updated_at
	`
	return database.Update(ctx, r.db, "OrgRepository:UpdateCenter", query, c, &c.UpdatedAt)
}

func (r *OrgRepository) DeleteCenter(ctx context.Context, id uuid.UUID) error {
	return database.Remove(ctx, r.db, "OrgRepository:DeleteCenter", "centers", id)
}

func (r *OrgRepository) GetCenter(ctx context.Context, id uuid.UUID) (*entity.Center, error) {
	return database.GetOne[entity.Center](ctx, r.db, "OrgRepository:GetCenter", `SELECT `+centerColumns+` FROM centers WHERE id = $1`, id)
}

func (r *OrgRepository) ListCenters(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedCenters, error) {
	cond := &database.Conditions{}
	if filter.AssociationID != nil {
		cond.Add("association_id = $%d", *filter.AssociationID)
	}
	if filter.CenterID != nil {
		cond.Add("id = $%d", *filter.CenterID)
	}
	if filter.CityID != nil {
		cond.Add("city_id = $%d", *filter.CityID)
	}
	cond.Search("name", filter.Search)
	return database.Paginate[entity.Center](ctx, r.db, "OrgRepository:ListCenters", "centers", cond, centerColumns, "name", p)
}
