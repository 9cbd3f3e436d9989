package repository

import (
	"context"
	"trainhub-api/core/database"
	"trainhub-api/core/params"
	"trainhub-api/modules/training/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	distributionColumns = `d.id, d.training_id, d.group_id, d.teacher_id, d.month, d.week, d.title, d.objectives, d.created_at, d.updated_at`
	controlColumns      = `id, training_id, group_id, distribution_id, title, control_date, total_points, created_by, created_at, updated_at`
	exerciseColumns     = `id, training_id, distribution_id, control_id, title, description, due_date, max_points, created_by, created_at, updated_at`
)

type TrainingRepository struct {
	db database.Querier
}

func NewTrainingRepository(db database.Querier) *TrainingRepository {
	return &TrainingRepository{db: db}
}

// WithTx returns a repository whose statements run inside tx.
func (r *TrainingRepository) WithTx(tx *sqlx.Tx) *TrainingRepository {
	return &TrainingRepository{db: tx}
}

func (r *TrainingRepository) GetUser(ctx context.Context, id uuid.UUID) (*entity.UserRef, error) {
	query := `
		SELECT u.id, u.role, u.center_id, c.association_id, u.group_id
		FROM users u
		LEFT JOIN centers c ON c.id = u.center_id
		WHERE u.id = $1`
	return database.GetOne[entity.UserRef](ctx, r.db, "TrainingRepository:GetUser", query, id)
}

// GetGroupTraining returns the training a group follows, or nil.
func (r *TrainingRepository) GetGroupTraining(ctx context.Context, groupID uuid.UUID) (*uuid.UUID, error) {
	return database.GetOne[uuid.UUID](ctx, r.db, "TrainingRepository:GetGroupTraining", `SELECT training_id FROM training_groups WHERE id = $1`, groupID)
}

func (r *TrainingRepository) CreateDistribution(ctx context.Context, d *entity.Distribution) error {
	query := `
		INSERT INTO annual_distributions (training_id, group_id, teacher_id, month, week, title, objectives)
		VALUES (:training_id, :group_id, :teacher_id, :month, :week, :title, :objectives)
		RETURNING id, created_at, updated_at`
	return database.Insert(ctx, r.db, "TrainingRepository:CreateDistribution", query, d, &d.BaseEntity)
}

func (r *TrainingRepository) UpdateDistribution(ctx context.Context, d *entity.Distribution) error {
	query := `
		UPDATE annual_distributions
		SET training_id = :training_id, group_id = :group_id, month = :month, week = :week,
		    title = :title, objectives = :objectives, updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`
	return database.Update(ctx, r.db, "TrainingRepository:UpdateDistribution", query, d, &d.UpdatedAt)
}

func (r *TrainingRepository) DeleteDistribution(ctx context.Context, id uuid.UUID) error {
	return database.Remove(ctx, r.db, "TrainingRepository:DeleteDistribution", "annual_distributions", id)
}

func (r *TrainingRepository) GetDistribution(ctx context.Context, id uuid.UUID) (*entity.Distribution, error) {
	query := `SELECT ` + distributionColumns + ` FROM annual_distributions d WHERE d.id = $1`
	return database.GetOne[entity.Distribution](ctx, r.db, "TrainingRepository:GetDistribution", query, id)
}

func (r *TrainingRepository) ListDistributions(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedDistributions, error) {
	cond := &database.Conditions{}
	if filter.TrainingID != nil {
		cond.Add("d.training_id = $%d", *filter.TrainingID)
	}
	if filter.GroupID != nil {
		cond.Add("d.group_id = $%d", *filter.GroupID)
	}
	if filter.TeacherID != nil {
		cond.Add("d.teacher_id = $%d", *filter.TeacherID)
	}
	if filter.Month != nil {
		cond.Add("d.month = $%d", *filter.Month)
	}
	if filter.CenterID != nil {
		cond.Add("u.center_id = $%d", *filter.CenterID)
	}
	if filter.AssociationID != nil {
		cond.Add("c.association_id = $%d", *filter.AssociationID)
	}
	cond.Search("d.title", p.Search)
	from := `annual_distributions d
		JOIN users u ON u.id = d.teacher_id
		LEFT JOIN centers c ON c.id = u.center_id`
	return database.Paginate[entity.Distribution](ctx, r.db, "TrainingRepository:ListDistributions", from, cond, distributionColumns, "d.month, d.week, d.title", p)
}

func (r *TrainingRepository) CreateControl(ctx context.Context, c *entity.Control) error {
	query := `
		INSERT INTO controls (training_id, group_id, distribution_id, title, control_date, total_points, created_by)
		VALUES (:training_id, :group_id, :distribution_id, :title, :control_date, :total_points, :created_by)
		RETURNING id, created_at, updated_at`
	return database.Insert(ctx, r.db, "TrainingRepository:CreateControl", query, c, &c.BaseEntity)
}

func (r *TrainingRepository) UpdateControl(ctx context.Context, c *entity.Control) error {
	query := `
		UPDATE controls
		SET training_id = :training_id, group_id = :group_id, distribution_id = :distribution_id, title = :title,
		    control_date = :control_date, total_points = :total_points, updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`
	return database.Update(ctx, r.db, "TrainingRepository:UpdateControl", query, c, &c.UpdatedAt)
}

func (r *TrainingRepository) DeleteControl(ctx context.Context, id uuid.UUID) error {
	return database.Remove(ctx, r.db, "TrainingRepository:DeleteControl", "controls", id)
}

func (r *TrainingRepository) GetControl(ctx context.Context, id uuid.UUID) (*entity.Control, error) {
	return database.GetOne[entity.Control](ctx, r.db, "TrainingRepository:GetControl", `SELECT `+controlColumns+` FROM controls WHERE id = $1`, id)
}

func (r *TrainingRepository) ListControls(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedControls, error) {
	cond := &database.Conditions{}
	if filter.TrainingID != nil {
		cond.Add("training_id = $%d", *filter.TrainingID)
	}
	if filter.GroupID != nil {
		cond.Add("group_id = $%d", *filter.GroupID)
	}
	if filter.DistributionID != nil {
		cond.Add("distribution_id = $%d", *filter.DistributionID)
	}
	if filter.From != nil {
		cond.Add("control_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		cond.Add("control_date <= $%d", *filter.To)
	}
	cond.Search("title", p.Search)
	return database.Paginate[entity.Control](ctx, r.db, "TrainingRepository:ListControls", "controls", cond, controlColumns, "control_date DESC", p)
}

func (r *TrainingRepository) CreateExercise(ctx context.Context, e *entity.Exercise) error {
	query := `
		INSERT INTO exercises (training_id, distribution_id, control_id, title, description, due_date, max_points, created_by)
		VALUES (:training_id, :distribution_id, :control_id, :title, :description, :due_date, :max_points, :created_by)
		RETURNING id, created_at, updated_at`
	return database.Insert(ctx, r.db, "TrainingRepository:CreateExercise", query, e, &e.BaseEntity)
}

func (r *TrainingRepository) UpdateExercise(ctx context.Context, e *entity.Exercise) error {
	query := `
		UPDATE exercises
		SET training_id = :training_id, distribution_id = :distribution_id, control_id = :control_id, title = :title,
		    description = :description, due_date = :due_date, max_points = :max_points, updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`
	return database.Update(ctx, r.db, "TrainingRepository:UpdateExercise", query, e, &e.UpdatedAt)
}

func (r *TrainingRepository) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	return database.Remove(ctx, r.db, "TrainingRepository:DeleteExercise", "exercises", id)
}

func (r *TrainingRepository) GetExercise(ctx context.Context, id uuid.UUID) (*entity.Exercise, error) {
	return database.GetOne[entity.Exercise](ctx, r.db, "TrainingRepository:GetExercise", `SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id)
}

func (r *TrainingRepository) ListExercises(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedExercises, error) {
	cond := &database.Conditions{}
	if filter.TrainingID != nil {
		cond.Add("training_id = $%d", *filter.TrainingID)
	}
	if filter.ControlID != nil {
		cond.Add("control_id = $%d", *filter.ControlID)
	}
	if filter.DistributionID != nil {
		cond.Add("distribution_id = $%d", *filter.DistributionID)
	}
	cond.Search("title", p.Search)
	return database.Paginate[entity.Exercise](ctx, r.db, "TrainingRepository:ListExercises", "exercises", cond, exerciseColumns, "created_at DESC", p)
}
