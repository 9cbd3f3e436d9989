package service

import (
	"context"
	"database/sql"
	"time"
	"trainhub-api/core/authz"
	"trainhub-api/core/constants"
	"trainhub-api/core/database"
	"trainhub-api/core/errors"
	"trainhub-api/core/params"
	"trainhub-api/modules/training/dto"
	"trainhub-api/modules/training/entity"
	"trainhub-api/modules/training/mapper"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TrainingStore is the persistence the training services need.
type TrainingStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*entity.UserRef, error)
	GetGroupTraining(ctx context.Context, groupID uuid.UUID) (*uuid.UUID, error)

	CreateDistribution(ctx context.Context, d *entity.Distribution) error
	UpdateDistribution(ctx context.Context, d *entity.Distribution) error
	DeleteDistribution(ctx context.Context, id uuid.UUID) error
	GetDistribution(ctx context.Context, id uuid.UUID) (*entity.Distribution, error)
	ListDistributions(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedDistributions, error)

	CreateControl(ctx context.Context, c *entity.Control) error
	UpdateControl(ctx context.Context, c *entity.Control) error
	DeleteControl(ctx context.Context, id uuid.UUID) error
	GetControl(ctx context.Context, id uuid.UUID) (*entity.Control, error)
	ListControls(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedControls, error)

	CreateExercise(ctx context.Context, e *entity.Exercise) error
	UpdateExercise(ctx context.Context, e *entity.Exercise) error
	DeleteExercise(ctx context.Context, id uuid.UUID) error
	GetExercise(ctx context.Context, id uuid.UUID) (*entity.Exercise, error)
	ListExercises(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedExercises, error)

	UpsertSubmission(ctx context.Context, s *entity.Submission) error
	ReviewSubmission(ctx context.Context, s *entity.Submission) error
	GetSubmission(ctx context.Context, id uuid.UUID) (*entity.Submission, error)
	ListSubmissions(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedSubmissions, error)

	UpsertMark(ctx context.Context, m *entity.Mark) error
	GetMark(ctx context.Context, id uuid.UUID) (*entity.Mark, error)
	DeleteMark(ctx context.Context, id uuid.UUID) error
	ListMarks(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedMarks, error)

	CreateProgressLog(ctx context.Context, l *entity.ProgressLog) error
	GetProgressLog(ctx context.Context, id uuid.UUID) (*entity.ProgressLog, error)
	DeleteProgressLog(ctx context.Context, id uuid.UUID) error
	ListProgressLogs(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedProgressLogs, error)

	GetSession(ctx context.Context, scheduleID uuid.UUID) (*entity.Session, error)
	StudentsOutside(ctx context.Context, groupID *uuid.UUID, studentIDs []uuid.UUID) ([]uuid.UUID, error)
	UpsertAttendance(ctx context.Context, a *entity.Attendance) error
	ListAttendance(ctx context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedAttendance, error)
}

// TxRunner commits fn as one transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn database.TxFunc) error
}

// Timetable decides whether a schedule entry takes place on a date, holidays
// and exceptions included.
type Timetable interface {
	OccursOn(ctx context.Context, entryID uuid.UUID, day time.Time) (bool, error)
}

type TrainingService struct {
	repo      TrainingStore
	tx        TxRunner
	withTx    func(tx *sqlx.Tx) TrainingStore
	timetable Timetable
	now       func() time.Time
}

func NewTrainingService(repo TrainingStore, tx TxRunner, withTx func(tx *sqlx.Tx) TrainingStore, timetable Timetable) *TrainingService {
	return &TrainingService{repo: repo, tx: tx, withTx: withTx, timetable: timetable, now: time.Now}
}

func forbidden(message string) *errors.AppError {
	return errors.NewAppError(errors.ErrForbidden, message, nil)
}

func notFound(what string) *errors.AppError {
	return errors.NewAppError(errors.ErrNotFound, what+" not found", nil)
}

func invalid(message string) *errors.AppError {
	return errors.NewAppError(errors.ErrInvalidInput, message, nil)
}

func writeError(code errors.ErrorCode, message string, err error) *errors.AppError {
	switch {
	case database.IsNoRows(err):
		return errors.NewAppError(errors.ErrNotFound, "record not found", err)
	case database.IsForeignKeyViolation(err):
		return errors.NewAppError(errors.ErrNotFound, "referenced record not found", err)
	case database.IsCheckViolation(err):
		return errors.NewAppError(errors.ErrInvalidInput, "value out of range", err)
	case database.IsUniqueViolation(err):
		return errors.NewAppError(errors.ErrAlreadyExists, "record already exists", err)
	}
	return errors.NewAppError(code, message, err)
}

// narrow restricts a listing to what id may see. Teachers see their own rows
// when ownedByTeacher is set and their center's rows otherwise.
func narrow(id authz.Identity, filter *entity.Filter, ownedByTeacher bool) *errors.AppError {
	switch {
	case id.Is(authz.RoleAdmin):
	case id.Is(authz.RoleAssociationStaff):
		if id.AssociationID == nil {
			return forbidden("no association assigned")
		}
		filter.AssociationID = id.AssociationID
	case id.Is(authz.RoleStudent):
		filter.StudentID = &id.UserID
	case id.Is(authz.RoleTeacher) && ownedByTeacher:
		filter.TeacherID = &id.UserID
	default:
		if id.CenterID == nil {
			return forbidden("no center assigned")
		}
		filter.CenterID = id.CenterID
	}
	return nil
}

// narrowToGroup is narrow for teacher-owned plans, which students see
// through their group.
func narrowToGroup(id authz.Identity, filter *entity.Filter) *errors.AppError {
	if id.Is(authz.RoleStudent) {
		if id.GroupID == nil {
			return forbidden("no group assigned")
		}
		filter.GroupID = id.GroupID
		return nil
	}
	return narrow(id, filter, true)
}

func ownsOrAdmin(id authz.Identity, owner *uuid.UUID) bool {
	return id.Is(authz.RoleAdmin) || (owner != nil && *owner == id.UserID)
}

func (s *TrainingService) loadUser(ctx context.Context, userID uuid.UUID, role authz.Role) (*entity.UserRef, *errors.AppError) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	if user == nil {
		return nil, notFound("user")
	}
	if user.Role != role {
		return nil, invalid("user is not a " + string(role))
	}
	return user, nil
}

// checkGroup requires groupID, when set, to follow trainingID.
func (s *TrainingService) checkGroup(ctx context.Context, groupID *uuid.UUID, trainingID uuid.UUID) *errors.AppError {
	if groupID == nil {
		return nil
	}
	training, err := s.repo.GetGroupTraining(ctx, *groupID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	if training == nil {
		return notFound("group")
	}
	if *training != trainingID {
		return errors.NewAppError(errors.ErrGroupTrainingMismatch, "group does not follow this training", nil)
	}
	return nil
}

// checkDistribution requires distributionID, when set, to plan trainingID.
func (s *TrainingService) checkDistribution(ctx context.Context, distributionID *uuid.UUID, trainingID uuid.UUID) *errors.AppError {
	if distributionID == nil {
		return nil
	}
	d, appErr := s.getDistribution(ctx, *distributionID)
	if appErr != nil {
		return appErr
	}
	if d.TrainingID != trainingID {
		return invalid("distribution belongs to another training")
	}
	return nil
}

func (s *TrainingService) CreateDistribution(ctx context.Context, id authz.Identity, req *dto.DistributionRequest) (*dto.DistributionResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	teacherID := id.UserID
	if !id.Is(authz.RoleTeacher) {
		if req.TeacherID == nil {
			return nil, invalid("teacher_id is required")
		}
		if _, appErr := s.loadUser(ctx, *req.TeacherID, authz.RoleTeacher); appErr != nil {
			return nil, appErr
		}
		teacherID = *req.TeacherID
	}
	if appErr := s.checkGroup(ctx, req.GroupID, req.TrainingID); appErr != nil {
		return nil, appErr
	}

	d := mapper.ToDistributionEntity(req, teacherID)
	if err := s.repo.CreateDistribution(ctx, d); err != nil {
		return nil, writeError(errors.ErrCreateFailed, "create distribution failed", err)
	}
	result := mapper.ToDistributionResponse(d)
	return &result, nil
}

// UpdateDistribution keeps the plan with its teacher.
func (s *TrainingService) UpdateDistribution(ctx context.Context, id authz.Identity, distributionID uuid.UUID, req *dto.DistributionRequest) (*dto.DistributionResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.getDistribution(ctx, distributionID)
	if appErr != nil {
		return nil, appErr
	}
	if !ownsOrAdmin(id, &existing.TeacherID) {
		return nil, forbidden("not allowed to change this distribution")
	}
	if appErr := s.checkGroup(ctx, req.GroupID, req.TrainingID); appErr != nil {
		return nil, appErr
	}

	d := mapper.ToDistributionEntity(req, existing.TeacherID)
	d.BaseEntity = existing.BaseEntity
	if err := s.repo.UpdateDistribution(ctx, d); err != nil {
		return nil, writeError(errors.ErrUpdateFailed, "update distribution failed", err)
	}
	result := mapper.ToDistributionResponse(d)
	return &result, nil
}

func (s *TrainingService) DeleteDistribution(ctx context.Context, id authz.Identity, distributionID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.getDistribution(ctx, distributionID)
	if appErr != nil {
		return appErr
	}
	if !ownsOrAdmin(id, &existing.TeacherID) {
		return forbidden("not allowed to delete this distribution")
	}
	if err := s.repo.DeleteDistribution(ctx, distributionID); err != nil {
		return writeError(errors.ErrDeleteFailed, "delete distribution failed", err)
	}
	return nil
}

func (s *TrainingService) GetDistribution(ctx context.Context, distributionID uuid.UUID) (*dto.DistributionResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	d, appErr := s.getDistribution(ctx, distributionID)
	if appErr != nil {
		return nil, appErr
	}
	result := mapper.ToDistributionResponse(d)
	return &result, nil
}

func (s *TrainingService) getDistribution(ctx context.Context, distributionID uuid.UUID) (*entity.Distribution, *errors.AppError) {
	d, err := s.repo.GetDistribution(ctx, distributionID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get distribution failed", err)
	}
	if d == nil {
		return nil, notFound("distribution")
	}
	return d, nil
}

func (s *TrainingService) ListDistributions(ctx context.Context, id authz.Identity, filter entity.Filter, p params.QueryParams) (*dto.PaginatedDistributionResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := narrowToGroup(id, &filter); appErr != nil {
		return nil, appErr
	}
	distributions, err := s.repo.ListDistributions(ctx, filter, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get distributions failed", err)
	}
	return mapper.ToPage(distributions, mapper.ToDistributionResponse), nil
}

func (s *TrainingService) CreateControl(ctx context.Context, id authz.Identity, req *dto.ControlRequest) (*dto.ControlResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	c, err := mapper.ToControlEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if appErr := s.checkGroup(ctx, c.GroupID, c.TrainingID); appErr != nil {
		return nil, appErr
	}
	if appErr := s.checkDistribution(ctx, c.DistributionID, c.TrainingID); appErr != nil {
		return nil, appErr
	}
	c.CreatedBy = &id.UserID
	if err := s.repo.CreateControl(ctx, c); err != nil {
		return nil, writeError(errors.ErrCreateFailed, "create control failed", err)
	}
	result := mapper.ToControlResponse(c)
	return &result, nil
}

func (s *TrainingService) UpdateControl(ctx context.Context, id authz.Identity, controlID uuid.UUID, req *dto.ControlRequest) (*dto.ControlResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.getControl(ctx, controlID)
	if appErr != nil {
		return nil, appErr
	}
	if !ownsOrAdmin(id, existing.CreatedBy) {
		return nil, forbidden("not allowed to change this control")
	}
	c, err := mapper.ToControlEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if appErr := s.checkGroup(ctx, c.GroupID, c.TrainingID); appErr != nil {
		return nil, appErr
	}
	if appErr := s.checkDistribution(ctx, c.DistributionID, c.TrainingID); appErr != nil {
		return nil, appErr
	}
	c.BaseEntity = existing.BaseEntity
	c.CreatedBy = existing.CreatedBy
	if err := s.repo.UpdateControl(ctx, c); err != nil {
		return nil, writeError(errors.ErrUpdateFailed, "update control failed", err)
	}
	result := mapper.ToControlResponse(c)
	return &result, nil
}

func (s *TrainingService) DeleteControl(ctx context.Context, id authz.Identity, controlID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.getControl(ctx, controlID)
	if appErr != nil {
		return appErr
	}
	if !ownsOrAdmin(id, existing.CreatedBy) {
		return forbidden("not allowed to delete this control")
	}
	if err := s.repo.DeleteControl(ctx, controlID); err != nil {
		return writeError(errors.ErrDeleteFailed, "delete control failed", err)
	}
	return nil
}

func (s *TrainingService) GetControl(ctx context.Context, controlID uuid.UUID) (*dto.ControlResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	c, appErr := s.getControl(ctx, controlID)
	if appErr != nil {
		return nil, appErr
	}
	result := mapper.ToControlResponse(c)
	return &result, nil
}

func (s *TrainingService) getControl(ctx context.Context, controlID uuid.UUID) (*entity.Control, *errors.AppError) {
	c, err := s.repo.GetControl(ctx, controlID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get control failed", err)
	}
	if c == nil {
		return nil, notFound("control")
	}
	return c, nil
}

func (s *TrainingService) ListControls(ctx context.Context, filter entity.Filter, p params.QueryParams) (*dto.PaginatedControlResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	controls, err := s.repo.ListControls(ctx, filter, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get controls failed", err)
	}
	return mapper.ToPage(controls, mapper.ToControlResponse), nil
}

// checkControl requires controlID, when set, to examine trainingID.
func (s *TrainingService) checkControl(ctx context.Context, controlID *uuid.UUID, trainingID uuid.UUID) *errors.AppError {
	if controlID == nil {
		return nil
	}
	c, appErr := s.getControl(ctx, *controlID)
	if appErr != nil {
		return appErr
	}
	if c.TrainingID != trainingID {
		return invalid("control belongs to another training")
	}
	return nil
}

func (s *TrainingService) CreateExercise(ctx context.Context, id authz.Identity, req *dto.ExerciseRequest) (*dto.ExerciseResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	e, err := mapper.ToExerciseEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if appErr := s.checkDistribution(ctx, e.DistributionID, e.TrainingID); appErr != nil {
		return nil, appErr
	}
	if appErr := s.checkControl(ctx, e.ControlID, e.TrainingID); appErr != nil {
		return nil, appErr
	}
	e.CreatedBy = &id.UserID
	if err := s.repo.CreateExercise(ctx, e); err != nil {
		return nil, writeError(errors.ErrCreateFailed, "create exercise failed", err)
	}
	result := mapper.ToExerciseResponse(e)
	return &result, nil
}

func (s *TrainingService) UpdateExercise(ctx context.Context, id authz.Identity, exerciseID uuid.UUID, req *dto.ExerciseRequest) (*dto.ExerciseResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.getExercise(ctx, exerciseID)
	if appErr != nil {
		return nil, appErr
	}
	if !ownsOrAdmin(id, existing.CreatedBy) {
		return nil, forbidden("not allowed to change this exercise")
	}
	e, err := mapper.ToExerciseEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if appErr := s.checkDistribution(ctx, e.DistributionID, e.TrainingID); appErr != nil {
		return nil, appErr
	}
	if appErr := s.checkControl(ctx, e.ControlID, e.TrainingID); appErr != nil {
		return nil, appErr
	}
	e.BaseEntity = existing.BaseEntity
	e.CreatedBy = existing.CreatedBy
	if err := s.repo.UpdateExercise(ctx, e); err != nil {
		return nil, writeError(errors.ErrUpdateFailed, "update exercise failed", err)
	}
	result := mapper.ToExerciseResponse(e)
	return &result, nil
}

func (s *TrainingService) DeleteExercise(ctx context.Context, id authz.Identity, exerciseID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.getExercise(ctx, exerciseID)
	if appErr != nil {
		return appErr
	}
	if !ownsOrAdmin(id, existing.CreatedBy) {
		return forbidden("not allowed to delete this exercise")
	}
	if err := s.repo.DeleteExercise(ctx, exerciseID); err != nil {
		return writeError(errors.ErrDeleteFailed, "delete exercise failed", err)
	}
	return nil
}

func (s *TrainingService) GetExercise(ctx context.Context, exerciseID uuid.UUID) (*dto.ExerciseResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	e, appErr := s.getExercise(ctx, exerciseID)
	if appErr != nil {
		return nil, appErr
	}
	result := mapper.ToExerciseResponse(e)
	return &result, nil
}

func (s *TrainingService) getExercise(ctx context.Context, exerciseID uuid.UUID) (*entity.Exercise, *errors.AppError) {
	e, err := s.repo.GetExercise(ctx, exerciseID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get exercise failed", err)
	}
	if e == nil {
		return nil, notFound("exercise")
	}
	return e, nil
}

func (s *TrainingService) ListExercises(ctx context.Context, filter entity.Filter, p params.QueryParams) (*dto.PaginatedExerciseResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	exercises, err := s.repo.ListExercises(ctx, filter, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get exercises failed", err)
	}
	return mapper.ToPage(exercises, mapper.ToExerciseResponse), nil
}
