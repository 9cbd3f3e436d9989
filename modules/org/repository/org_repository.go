package repository

import (
	"context"
	"trainhub-api/core/database"
	"trainhub-api/core/logger"
)

// OrgRepository stores the org hierarchy: cities, associations, centers,
// rooms, materials, trainings and training groups.
type OrgRepository struct {
	db database.Querier
}

func NewOrgRepository(db database.Querier) *OrgRepository {
	return &OrgRepository{db: db}
}

// SlugExists reports whether slug is taken in table.
func (r *OrgRepository) SlugExists(ctx context.Context, table, slug string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE slug = $1)`, slug); err != nil {
		logger.Error("OrgRepository:SlugExists", err)
		return false, err
	}
	return exists, nil
}
