package service

import (
	"context"
	"strings"
	"trainhub-api/core/authz"
	"trainhub-api/core/constants"
	"trainhub-api/core/database"
	"trainhub-api/core/errors"
	"trainhub-api/core/params"
	"trainhub-api/core/utils"
	"trainhub-api/modules/org/dto"
	"trainhub-api/modules/org/entity"
	"trainhub-api/modules/org/mapper"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type OrgStore interface {
	CreateCity(ctx context.Context, c *entity.City) error
	UpdateCity(ctx context.Context, c *entity.City) error
	DeleteCity(ctx context.Context, id uuid.UUID) error
	GetCity(ctx context.Context, id uuid.UUID) (*entity.City, error)
	ListCities(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedCities, error)

	CreateAssociation(ctx context.Context, a *entity.Association) error
	UpdateAssociation(ctx context.Context, a *entity.Association) error
	DeleteAssociation(ctx context.Context, id uuid.UUID) error
	GetAssociation(ctx context.Context, id uuid.UUID) (*entity.Association, error)
	ListAssociations(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedAssociations, error)

	CreateCenter(ctx context.Context, c *entity.Center) error
	UpdateCenter(ctx context.Context, c *entity.Center) error
	DeleteCenter(ctx context.Context, id uuid.UUID) error
	GetCenter(ctx context.Context, id uuid.UUID) (*entity.Center, error)
	ListCenters(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedCenters, error)

	CreateRoom(ctx context.Context, r *entity.Room) error
	UpdateRoom(ctx context.Context, r *entity.Room) error
	DeleteRoom(ctx context.Context, id uuid.UUID) error
	GetRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	ListRooms(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedRooms, error)

	CreateMaterial(ctx context.Context, m *entity.Material) error
	UpdateMaterial(ctx context.Context, m *entity.Material) error
	DeleteMaterial(ctx context.Context, id uuid.UUID) error
	GetMaterial(ctx context.Context, id uuid.UUID) (*entity.Material, error)
	ListMaterials(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedMaterials, error)

	CreateTraining(ctx context.Context, t *entity.Training) error
	UpdateTraining(ctx context.Context, t *entity.Training) error
	DeleteTraining(ctx context.Context, id uuid.UUID) error
	GetTraining(ctx context.Context, id uuid.UUID) (*entity.Training, error)
	ListTrainings(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedTrainings, error)
	ListTeacherTrainings(ctx context.Context, teacherID uuid.UUID) ([]entity.Training, error)

	CreateGroup(ctx context.Context, g *entity.TrainingGroup) error
	UpdateGroup(ctx context.Context, g *entity.TrainingGroup) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	GetGroup(ctx context.Context, id uuid.UUID) (*entity.TrainingGroup, error)
	ListGroups(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedGroups, error)

	SlugExists(ctx context.Context, table, slug string) (bool, error)
}

type OrgService struct {
	repo OrgStore
}

func NewOrgService(repo OrgStore) *OrgService {
	return &OrgService{repo: repo}
}

func forbidden(message string) *errors.AppError {
	return errors.NewAppError(errors.ErrForbidden, message, nil)
}

func notFound(what string) *errors.AppError {
	return errors.NewAppError(errors.ErrNotFound, what+" not found", nil)
}

func writeError(code errors.ErrorCode, message string, err error) *errors.AppError {
	switch {
	case database.IsNoRows(err):
		return errors.NewAppError(errors.ErrNotFound, "record not found", err)
	case database.IsUniqueViolation(err):
		return errors.NewAppError(errors.ErrAlreadyExists, "a record with the same name, email or phone already exists", err)
	case database.IsForeignKeyViolation(err):
		return errors.NewAppError(errors.ErrNotFound, "referenced record not found", err)
	case database.IsCheckViolation(err):
		return errors.NewAppError(errors.ErrInvalidInput, "value out of range", err)
	}
	return errors.NewAppError(code, message, err)
}

func requireAdmin(id authz.Identity) *errors.AppError {
	if !id.Is(authz.RoleAdmin) {
		return forbidden("only admins manage this resource")
	}
	return nil
}

// scope narrows a listing of center-bound records to what id may see.
func scope(id authz.Identity, filter *entity.Filter) *errors.AppError {
	switch {
	case id.Is(authz.RoleAdmin):
	case id.Is(authz.RoleAssociationStaff):
		if id.AssociationID == nil {
			return forbidden("no association assigned")
		}
		filter.AssociationID = id.AssociationID
	default:
		if id.CenterID == nil {
			return forbidden("no center assigned")
		}
		filter.CenterID = id.CenterID
	}
	return nil
}

func canSee(id authz.Identity, center *entity.Center) bool {
	switch {
	case id.Is(authz.RoleAdmin):
		return true
	case id.Is(authz.RoleAssociationStaff):
		return id.AssociationID != nil && *id.AssociationID == center.AssociationID
	default:
		return id.InCenter(center.ID)
	}
}

func (s *OrgService) loadCenter(ctx context.Context, centerID uuid.UUID) (*entity.Center, *errors.AppError) {
	center, err := s.repo.GetCenter(ctx, centerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get center failed", err)
	}
	if center == nil {
		return nil, notFound("center")
	}
	return center, nil
}

// authorizeCenter allows admins, staff of the owning association and staff
// of the center itself to change records of centerID.
func (s *OrgService) authorizeCenter(ctx context.Context, id authz.Identity, centerID uuid.UUID) *errors.AppError {
	center, appErr := s.loadCenter(ctx, centerID)
	if appErr != nil {
		return appErr
	}
	if !canSee(id, center) || id.Is(authz.RoleTeacher, authz.RoleStudent) {
		return forbidden("not allowed to manage this center")
	}
	return nil
}

func (s *OrgService) viewCenter(ctx context.Context, id authz.Identity, centerID uuid.UUID) *errors.AppError {
	center, appErr := s.loadCenter(ctx, centerID)
	if appErr != nil {
		return appErr
	}
	if !canSee(id, center) {
		return forbidden("not allowed to view this center")
	}
	return nil
}

// uniqueSlug derives a slug from name, suffixing a short random id while the
// slug is taken.
func (s *OrgService) uniqueSlug(ctx context.Context, table, name string) (string, *errors.AppError) {
	base := slug.Make(name)
	if base == "" {
		base = strings.ToLower(utils.GenerateID())
	}
	candidate := base
	for i := 0; i < 5; i++ {
		exists, err := s.repo.SlugExists(ctx, table, candidate)
		if err != nil {
			return "", errors.NewAppError(errors.ErrInternalServer, "check slug failed", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strings.ToLower(utils.GenerateID())
	}
	return "", errors.NewAppError(errors.ErrAlreadyExists, "could not allocate a unique slug", nil)
}

func (s *OrgService) CreateCity(ctx context.Context, id authz.Identity, req *dto.CityRequest) (*dto.CityResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := requireAdmin(id); appErr != nil {
		return nil, appErr
	}
	city := mapper.ToCityEntity(req)
	if err := s.repo.CreateCity(ctx, city); err != nil {
		return nil, writeError(errors.ErrCreateFailed, "create city failed", err)
	}
	result := mapper.ToCityResponse(city)
	return &result, nil
}

func (s *OrgService) UpdateCity(ctx context.Context, id authz.Identity, cityID uuid.UUID, req *dto.CityRequest) (*dto.CityResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := requireAdmin(id); appErr != nil {
		return nil, appErr
	}
	city := mapper.ToCityEntity(req)
	city.ID = cityID
	if err := s.repo.UpdateCity(ctx, city); err != nil {
		return nil, writeError(errors.ErrUpdateFailed, "update city failed", err)
	}
	return s.GetCity(ctx, cityID)
}

func (s *OrgService) DeleteCity(ctx context.Context, id authz.Identity, cityID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := requireAdmin(id); appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteCity(ctx, cityID); err != nil {
		return writeError(errors.ErrDeleteFailed, "delete city failed", err)
	}
	return nil
}

func (s *OrgService) GetCity(ctx context.Context, cityID uuid.UUID) (*dto.CityResponse, *errors.AppError) {
	city, err := s.repo.GetCity(ctx, cityID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get city failed", err)
	}
	if city == nil {
		return nil, notFound("city")
	}
	result := mapper.ToCityResponse(city)
	return &result, nil
}

func (s *OrgService) ListCities(ctx context.Context, p params.QueryParams) (*dto.PaginatedCityResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	cities, err := s.repo.ListCities(ctx, entity.Filter{Search: p.Search}, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get cities failed", err)
	}
	return mapper.ToPage(cities, mapper.ToCityResponse), nil
}

func (s *OrgService) CreateTraining(ctx context.Context, id authz.Identity, req *dto.TrainingRequest) (*dto.TrainingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := requireAdmin(id); appErr != nil {
		return nil, appErr
	}
	training := mapper.ToTrainingEntity(req)
	if err := s.repo.CreateTraining(ctx, training); err != nil {
		return nil, writeError(errors.ErrCreateFailed, "create training failed", err)
	}
	result := mapper.ToTrainingResponse(training)
	return &result, nil
}

func (s *OrgService) UpdateTraining(ctx context.Context, id authz.Identity, trainingID uuid.UUID, req *dto.TrainingRequest) (*dto.TrainingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := requireAdmin(id); appErr != nil {
		return nil, appErr
	}
	training := mapper.ToTrainingEntity(req)
	training.ID = trainingID
	if err := s.repo.UpdateTraining(ctx, training); err != nil {
		return nil, writeError(errors.ErrUpdateFailed, "update training failed", err)
	}
	return s.GetTraining(ctx, trainingID)
}

func (s *OrgService) DeleteTraining(ctx context.Context, id authz.Identity, trainingID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := requireAdmin(id); appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteTraining(ctx, trainingID); err != nil {
		return writeError(errors.ErrDeleteFailed, "delete training failed", err)
	}
	return nil
}

func (s *OrgService) GetTraining(ctx context.Context, trainingID uuid.UUID) (*dto.TrainingResponse, *errors.AppError) {
	training, err := s.repo.GetTraining(ctx, trainingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get training failed", err)
	}
	if training == nil {
		return nil, notFound("training")
	}
	result := mapper.ToTrainingResponse(training)
	return &result, nil
}

func (s *OrgService) ListTrainings(ctx context.Context, p params.QueryParams) (*dto.PaginatedTrainingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	trainings, err := s.repo.ListTrainings(ctx, entity.Filter{Search: p.Search}, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get trainings failed", err)
	}
	return mapper.ToPage(trainings, mapper.ToTrainingResponse), nil
}

// MyTrainings lists the trainings the acting teacher is scheduled to teach.
func (s *OrgService) MyTrainings(ctx context.Context, id authz.Identity) ([]dto.TrainingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if !id.Is(authz.RoleTeacher) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "only teachers have assigned trainings", nil)
	}
	trainings, err := s.repo.ListTeacherTrainings(ctx, id.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get trainings failed", err)
	}
	return mapper.ToTrainingResponses(trainings), nil
}
