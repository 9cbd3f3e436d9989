package repository

import (
	"context"
	"fmt"
	"strings"
	"trainhub-api/core/database"
	coreEntity "trainhub-api/core/entity"
	"trainhub-api/core/logger"
	"trainhub-api/core/params"
	"trainhub-api/modules/auth/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const userColumns = `
	id, email, phone_number, password, first_name, last_name, role,
	association_id, center_id, group_id, is_active, created_at, updated_at`

// UserRepository handles the users table.
type UserRepository struct {
	db database.Querier
}

func NewUserRepository(db database.Querier) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (
			email, phone_number, password, first_name, last_name, role,
			association_id, center_id, group_id, is_active
		) VALUES (
			:email, :phone_number, :password, :first_name, :last_name, :role,
			:association_id, :center_id, :group_id, :is_active
		)
		RETURNING id, created_at, updated_at
	`
	query, args, err := sqlx.Named(query, u)
	if err != nil {
		return err
	}
	err = r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		logger.Error("UserRepository:Create", err)
		return err
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users
		SET phone_number = $1, first_name = $2, last_name = $3, role = $4,
			association_id = $5, center_id = $6, group_id = $7, is_active = $8, updated_at = now()
		WHERE id = $9
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		u.PhoneNumber, u.FirstName, u.LastName, u.Role,
		u.AssociationID, u.CenterID, u.GroupID, u.IsActive, u.ID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		logger.Error("UserRepository:Update", err)
		return err
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	query := `UPDATE users SET password = $1, updated_at = now() WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, hashed, id); err != nil {
		logger.Error("UserRepository:UpdatePassword", err)
		return err
	}
	return nil
}

func (r *UserRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET is_active = false, updated_at = now() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		logger.Error("UserRepository:Deactivate", err)
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.getOne(ctx, "UserRepository:GetByID", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByIdentifier finds a user by email (case-insensitive) or phone number.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) OR phone_number = $1 LIMIT 1`
	return r.getOne(ctx, "UserRepository:GetByIdentifier", query, identifier)
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	var u entity.User
	if err := r.db.GetContext(ctx, &u, query, arg); err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		logger.Error(op, err)
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, filter entity.UserFilter, params params.QueryParams) (*entity.PaginatedUsers, error) {
	conditions := []string{"TRUE"}
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conditions = append(conditions, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(args))))
	}

	if filter.Role != nil {
		add("role = ?", string(*filter.Role))
	}
	if filter.CenterID != nil {
		add("center_id = ?", *filter.CenterID)
	}
	if filter.AssociationID != nil {
		add("association_id = ?", *filter.AssociationID)
	}
	if filter.GroupID != nil {
		add("group_id = ?", *filter.GroupID)
	}
	if filter.Search != "" {
		add("(email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?)", "%"+filter.Search+"%")
	}

	baseQuery := ` FROM users WHERE ` + strings.Join(conditions, " AND ")

	var totalItems int
	if err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*)"+baseQuery, args...); err != nil {
		logger.Error("UserRepository:List:Count", err)
		return nil, err
	}

	dataQuery := `SELECT ` + userColumns + baseQuery +
		fmt.Sprintf(` ORDER BY last_name, first_name, email LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	users := []entity.User{}
	if err := r.db.SelectContext(ctx, &users, dataQuery, args...); err != nil {
		logger.Error("UserRepository:List:Select", err)
		return nil, err
	}
	return coreEntity.NewPagination(users, totalItems, params.PageNumber, params.PageSize), nil
}

// GetCenterAssociation returns the association owning centerID, or nil when
// there is no such center.
func (r *UserRepository) GetCenterAssociation(ctx context.Context, centerID uuid.UUID) (*uuid.UUID, error) {
	return r.lookup(ctx, "UserRepository:GetCenterAssociation", `SELECT association_id FROM centers WHERE id = $1`, centerID)
}

func (r *UserRepository) GetGroupCenter(ctx context.Context, groupID uuid.UUID) (*uuid.UUID, error) {
	return r.lookup(ctx, "UserRepository:GetGroupCenter", `SELECT center_id FROM training_groups WHERE id = $1`, groupID)
}

func (r *UserRepository) lookup(ctx context.Context, op, query string, id uuid.UUID) (*uuid.UUID, error) {
	var out uuid.UUID
	if err := r.db.GetContext(ctx, &out, query, id); err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		logger.Error(op, err)
		return nil, err
	}
	return &out, nil
}
