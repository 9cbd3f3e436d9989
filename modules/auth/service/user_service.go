package service

import (
	"context"
	"strings"
	"trainhub-api/core/authz"
	"trainhub-api/core/constants"
	"trainhub-api/core/database"
	"trainhub-api/core/errors"
	"trainhub-api/core/logger"
	"trainhub-api/core/params"
	"trainhub-api/core/utils"
	"trainhub-api/modules/auth/dto"
	"trainhub-api/modules/auth/entity"
	"trainhub-api/modules/auth/mapper"

	"github.com/google/uuid"
)

// UserService is the admin-facing user management. Accounts are created by
// an admin; there is no self registration.
type UserService struct {
	repo UserStore
}

func NewUserService(repo UserStore) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, err := mapper.ToUserEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if appErr := s.resolveScope(ctx, user); appErr != nil {
		return nil, appErr
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}
	user.Password = hashed

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, userWriteError(errors.ErrCreateFailed, "create user failed", err)
	}
	result := mapper.ToUserResponse(user)
	return &result, nil
}

func (s *UserService) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, appErr := s.get(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}
	if err := mapper.ApplyUpdate(user, req); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if appErr := s.resolveScope(ctx, user); appErr != nil {
		return nil, appErr
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, userWriteError(errors.ErrUpdateFailed, "update user failed", err)
	}
	if req.Password != "" {
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
		}
		if err := s.repo.UpdatePassword(ctx, user.ID, hashed); err != nil {
			return nil, errors.NewAppError(errors.ErrUpdateFailed, "update password failed", err)
		}
	}
	result := mapper.ToUserResponse(user)
	return &result, nil
}

// Deactivate disables the account. Rows referencing the user (schedule
// entries, attendance, reports) are kept.
func (s *UserService) Deactivate(ctx context.Context, actor authz.Identity, userID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if actor.UserID == userID {
		return errors.NewAppError(errors.ErrInvalidInput, "cannot deactivate your own account", nil)
	}
	if _, appErr := s.get(ctx, userID); appErr != nil {
		return appErr
	}
	if err := s.repo.Deactivate(ctx, userID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "deactivate user failed", err)
	}
	return nil
}

func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	user, appErr := s.get(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}
	result := mapper.ToUserResponse(user)
	return &result, nil
}

func (s *UserService) List(ctx context.Context, filter entity.UserFilter, params params.QueryParams) (*dto.PaginatedUserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	filter.Search = params.Search
	users, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get users failed", err)
	}
	return mapper.ToUserPaginationResponse(users), nil
}

// SeedAdmin creates the configured admin account unless a user with that
// email already exists. An empty email disables seeding.
func (s *UserService) SeedAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}
	existing, err := s.repo.GetByIdentifier(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &entity.User{
		Email:     email,
		Password:  hashed,
		FirstName: "Admin",
		Role:      authz.RoleAdmin,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("UserService:SeedAdmin:Created", "email", email)
	return nil
}

func (s *UserService) get(ctx context.Context, userID uuid.UUID) (*entity.User, *errors.AppError) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	return user, nil
}

// resolveScope checks the org ids a role requires and fills the association
// of center-bound users from their center.
func (s *UserService) resolveScope(ctx context.Context, user *entity.User) *errors.AppError {
	switch user.Role {
	case authz.RoleAdmin:
		user.AssociationID, user.CenterID, user.GroupID = nil, nil, nil
		return nil
	case authz.RoleAssociationStaff:
		if user.AssociationID == nil {
			return errors.NewAppError(errors.ErrInvalidInput, "association_id is required for association staff", nil)
		}
		user.CenterID, user.GroupID = nil, nil
		return nil
	}

	if user.CenterID == nil {
		return errors.NewAppError(errors.ErrInvalidInput, "center_id is required for role "+string(user.Role), nil)
	}
	associationID, err := s.repo.GetCenterAssociation(ctx, *user.CenterID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to get center", err)
	}
	if associationID == nil {
		return errors.NewAppError(errors.ErrNotFound, "center not found", nil)
	}
	user.AssociationID = associationID

	if user.Role != authz.RoleStudent {
		user.GroupID = nil
		return nil
	}
	if user.GroupID != nil {
		centerID, err := s.repo.GetGroupCenter(ctx, *user.GroupID)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "failed to get group", err)
		}
		if centerID == nil {
			return errors.NewAppError(errors.ErrNotFound, "group not found", nil)
		}
		if *centerID != *user.CenterID {
			return errors.NewAppError(errors.ErrInvalidInput, "group does not belong to the user's center", nil)
		}
	}
	return nil
}

func userWriteError(code errors.ErrorCode, message string, err error) *errors.AppError {
	switch {
	case database.IsUniqueViolation(err):
		return errors.NewAppError(errors.ErrAlreadyExists, "email or phone number already in use", err)
	case database.IsForeignKeyViolation(err):
		return errors.NewAppError(errors.ErrNotFound, "referenced org unit not found", err)
	}
	return errors.NewAppError(code, message, err)
}
