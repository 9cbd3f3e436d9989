package repository

import (
	"context"
	"trainhub-api/core/database"
	"trainhub-api/core/logger"
	"trainhub-api/core/params"
	"trainhub-api/modules/org/entity"

	"github.com/google/uuid"
)

const (
	trainingColumns = `t.id, t.name, t.description, t.is_active, t.created_at, t.updated_at`
	groupColumns    = `g.id, g.center_id, g.training_id, g.name, g.capacity, g.is_active, g.created_at, g.updated_at`
)

func (r *OrgRepository) CreateTraining(ctx context.Context, t *entity.Training) error {
	query := `
		INSERT INTO trainings (name, description, is_active)
		VALUES (:name, :description, :is_active)
		RETURNING id, created_at, updated_at
	`
	return database.Insert(ctx, r.db, "OrgRepository:CreateTraining", query, t, &t.BaseEntity)
}

func (r *OrgRepository) UpdateTraining(ctx context.Context, t *entity.Training) error {
	query := `
		UPDATE trainings SET name = :name, description = :description, is_active = :is_active, updated_at = now()
		WHERE id = :id
		RETURNING updated_at
	`
	return database.Update(ctx, r.db, "OrgRepository:UpdateTraining", query, t, &t.UpdatedAt)
}

func (r *OrgRepository) DeleteTraining(ctx context.Context, id uuid.UUID) error {
	return database.Remove(ctx, r.db, "OrgRepository:DeleteTraining", "trainings", id)
}

func (r *OrgRepository) GetTraining(ctx context.Context, id uuid.UUID) (*entity.Training, error) {
	query := `SELECT ` + trainingColumns + ` FROM trainings t WHERE t.id = $1`
	return database.GetOne[entity.Training](ctx, r.db, "OrgRepository:GetTraining", query, id)
}

func (r *OrgRepository) ListTrainings(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedTrainings, error) {
	cond := &database.Conditions{}
	cond.Search("t.name", filter.Search)
	return database.Paginate[entity.Training](ctx, r.db, "OrgRepository:ListTrainings", "trainings t", cond, trainingColumns, "t.name", p)
}

// ListTeacherTrainings returns the trainings teacherID has active schedule
// entries in.
func (r *OrgRepository) ListTeacherTrainings(ctx context.Context, teacherID uuid.UUID) ([]entity.Training, error) {
	query := `
		SELECT ` + trainingColumns + `
		FROM trainings t
		WHERE EXISTS (
			SELECT 1 FROM schedule_entries s
			WHERE s.training_id = t.id AND s.teacher_id = $1 AND s.is_active
		)
		ORDER BY t.name
	`
	trainings := []entity.Training{}
	if err := r.db.SelectContext(ctx, &trainings, query, teacherID); err != nil {
		logger.Error("OrgRepository:ListTeacherTrainings", err)
		return nil, err
	}
	return trainings, nil
}

func (r *OrgRepository) CreateGroup(ctx context.Context, g *entity.TrainingGroup) error {
	query := `
		INSERT INTO training_groups (center_id, training_id, name, capacity, is_active)
		VALUES (:center_id, :training_id, :name, :capacity, :is_active)
		RETURNING id, created_at, updated_at
	`
	return database.Insert(ctx, r.db, "OrgRepository:CreateGroup", query, g, &g.BaseEntity)
}

func (r *OrgRepository) UpdateGroup(ctx context.Context, g *entity.TrainingGroup) error {
	query := `
		UPDATE training_groups
		SET training_id = :training_id, name = :name, capacity = :capacity, is_active = :is_active, updated_at = now()
		WHERE id = :id
		RETURNING updated_at
	`
	return database.Update(ctx, r.db, "OrgRepository:UpdateGroup", query, g, &g.UpdatedAt)
}

func (r *OrgRepository) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return database.Remove(ctx, r.db, "OrgRepository:DeleteGroup", "training_groups", id)
}

func (r *OrgRepository) GetGroup(ctx context.Context, id uuid.UUID) (*entity.TrainingGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM training_groups g WHERE g.id = $1`
	return database.GetOne[entity.TrainingGroup](ctx, r.db, "OrgRepository:GetGroup", query, id)
}

func (r *OrgRepository) ListGroups(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedGroups, error) {
	cond := &database.Conditions{}
	if filter.CenterID != nil {
		cond.Add("g.center_id = $%d", *filter.CenterID)
	}
	if filter.AssociationID != nil {
		cond.Add("c.association_id = $%d", *filter.AssociationID)
	}
	if filter.TrainingID != nil {
		cond.Add("g.training_id = $%d", *filter.TrainingID)
	}
	cond.Search("g.name", filter.Search)
	from := "training_groups g JOIN centers c ON c.id = g.center_id"
	return database.Paginate[entity.TrainingGroup](ctx, r.db, "OrgRepository:ListGroups", from, cond, groupColumns, "g.name", p)
}
