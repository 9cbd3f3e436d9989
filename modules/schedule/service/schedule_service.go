package service

import (
	"context"
	"fmt"
	"time"
	"trainhub-api/core/authz"
	"trainhub-api/core/constants"
	"trainhub-api/core/database"
	"trainhub-api/core/errors"
	"trainhub-api/core/logger"
	"trainhub-api/core/params"
	"trainhub-api/core/timeofday"
	"trainhub-api/core/utils"
	"trainhub-api/modules/schedule/dto"
	"trainhub-api/modules/schedule/entity"
	"trainhub-api/modules/schedule/mapper"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ScheduleStore is the persistence the schedule service needs.
type ScheduleStore interface {
	ValidationStore
	Create(ctx context.Context, e *entity.ScheduleEntry) error
	Update(ctx context.Context, e *entity.ScheduleEntry) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter entity.ScheduleFilter, params params.QueryParams) (*entity.PaginatedScheduleEntries, error)
	ListExceptions(ctx context.Context, parentID uuid.UUID) ([]entity.ScheduleEntry, error)
	GetCenterAssociation(ctx context.Context, centerID uuid.UUID) (*uuid.UUID, error)
}

// TxRunner runs fn in a SERIALIZABLE transaction, retrying serialization
// failures.
type TxRunner interface {
	RunSerializable(ctx context.Context, fn database.TxFunc) error
}

type HolidaySource interface {
	ListByCenter(ctx context.Context, centerID uuid.UUID) ([]entity.Holiday, error)
}

// Notifier delivers in-app notifications.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message, kind string, data map[string]any) error
}

type ScheduleServiceInterface interface {
	Create(ctx context.Context, id authz.Identity, req *dto.ScheduleEntryRequest) (*dto.ScheduleEntryResponse, *errors.AppError)
	Update(ctx context.Context, id authz.Identity, entryID uuid.UUID, req *dto.ScheduleEntryRequest) (*dto.ScheduleEntryResponse, *errors.AppError)
	Deactivate(ctx context.Context, id authz.Identity, entryID uuid.UUID) *errors.AppError
	Get(ctx context.Context, id authz.Identity, entryID uuid.UUID) (*dto.ScheduleEntryResponse, *errors.AppError)
	List(ctx context.Context, id authz.Identity, filter entity.ScheduleFilter, params params.QueryParams) (*dto.PaginatedScheduleEntryResponse, *errors.AppError)
	Me(ctx context.Context, id authz.Identity, params params.QueryParams) (*dto.PaginatedScheduleEntryResponse, *errors.AppError)
	CreateException(ctx context.Context, id authz.Identity, parentID uuid.UUID, req *dto.ExceptionRequest) (*dto.ScheduleEntryResponse, *errors.AppError)
	Occurrences(ctx context.Context, id authz.Identity, entryID uuid.UUID, from, to time.Time) ([]Occurrence, *errors.AppError)
	CheckAvailability(ctx context.Context, q *dto.CheckAvailabilityQuery) (*AvailabilityReport, *errors.AppError)
	ValidateEntry(ctx context.Context, id authz.Identity, entryID *uuid.UUID, req *dto.ScheduleEntryRequest) (*dto.ValidateEntryResponse, *errors.AppError)
}

// AvailabilityReport is the check-availability payload.
type AvailabilityReport struct {
	IsAvailable bool `json:"is_available"`
	Availability
}

// maxOccurrenceWindow bounds a single expansion request.
const maxOccurrenceWindow = 366 * 24 * time.Hour

type ScheduleService struct {
	repo      ScheduleStore
	tx        TxRunner
	withTx    func(tx *sqlx.Tx) ScheduleStore
	holidays  HolidaySource
	notifier  Notifier
	validator *Validator
	checker   *ConflictChecker
}

func NewScheduleService(repo ScheduleStore, tx TxRunner, withTx func(tx *sqlx.Tx) ScheduleStore, holidays HolidaySource, notifier Notifier) *ScheduleService {
	checker := NewConflictChecker()
	return &ScheduleService{
		repo:      repo,
		tx:        tx,
		withTx:    withTx,
		holidays:  holidays,
		notifier:  notifier,
		validator: NewValidator(checker),
		checker:   checker,
	}
}

func (s *ScheduleService) Create(ctx context.Context, id authz.Identity, req *dto.ScheduleEntryRequest) (*dto.ScheduleEntryResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	e, _, appErr := s.prepare(ctx, id, nil, req)
	if appErr != nil {
		return nil, appErr
	}

	appErr = s.write(ctx, errors.ErrCreateFailed, func(store ScheduleStore) *errors.AppError {
		if appErr := s.validator.Validate(ctx, store, e); appErr != nil {
			return appErr
		}
		if err := store.Create(ctx, e); err != nil {
			return writeError(errors.ErrCreateFailed, err)
		}
		return nil
	})
	if appErr != nil {
		return nil, appErr
	}

	logger.Info("ScheduleService:Create", "entry_id", e.ID, "center_id", e.CenterID, "created_by", id.UserID)
	s.notifyTeacher(ctx, e.TeacherID, e, "Class scheduled", "scheduled")
	return mapper.ToScheduleEntryResponse(e), nil
}

func (s *ScheduleService) Update(ctx context.Context, id authz.Identity, entryID uuid.UUID, req *dto.ScheduleEntryRequest) (*dto.ScheduleEntryResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	e, existing, appErr := s.prepare(ctx, id, &entryID, req)
	if appErr != nil {
		return nil, appErr
	}

	appErr = s.write(ctx, errors.ErrUpdateFailed, func(store ScheduleStore) *errors.AppError {
		if appErr := s.validator.Validate(ctx, store, e); appErr != nil {
			return appErr
		}
		if err := store.Update(ctx, e); err != nil {
			return writeError(errors.ErrUpdateFailed, err)
		}
		return nil
	})
	if appErr != nil {
		return nil, appErr
	}

	s.notifyTeacher(ctx, e.TeacherID, e, "Class changed", "changed")
	if existing.TeacherID != nil && (e.TeacherID == nil || *e.TeacherID != *existing.TeacherID) {
		s.notifyTeacher(ctx, existing.TeacherID, existing, "Class reassigned", "cancelled")
	}
	return mapper.ToScheduleEntryResponse(e), nil
}

// Deactivate soft-deletes an entry; its exceptions go with it.
func (s *ScheduleService) Deactivate(ctx context.Context, id authz.Identity, entryID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.load(ctx, entryID)
	if appErr != nil {
		return appErr
	}
	if appErr := s.authorizeCenter(ctx, id, existing.CenterID); appErr != nil {
		return appErr
	}
	if err := s.repo.Deactivate(ctx, entryID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "deactivate schedule entry failed", err)
	}

	s.notifyTeacher(ctx, existing.TeacherID, existing, "Class cancelled", "cancelled")
	return nil
}

func (s *ScheduleService) Get(ctx context.Context, id authz.Identity, entryID uuid.UUID) (*dto.ScheduleEntryResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	e, appErr := s.load(ctx, entryID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.authorizeCenter(ctx, id, e.CenterID); appErr != nil {
		return nil, appErr
	}
	return mapper.ToScheduleEntryResponse(e), nil
}

// List returns the timetable, narrowed to what the identity may see.
func (s *ScheduleService) List(ctx context.Context, id authz.Identity, filter entity.ScheduleFilter, params params.QueryParams) (*dto.PaginatedScheduleEntryResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	switch {
	case id.Is(authz.RoleAdmin):
	case id.Is(authz.RoleAssociationStaff):
		if id.AssociationID == nil {
			return nil, errors.NewAppError(errors.ErrForbidden, "no association assigned", nil)
		}
		filter.AssociationID = id.AssociationID
	default:
		if id.CenterID == nil {
			return nil, errors.NewAppError(errors.ErrForbidden, "no center assigned", nil)
		}
		filter.CenterID = id.CenterID
	}

	entries, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get schedule failed", err)
	}
	return mapper.ToSchedulePaginationResponse(entries), nil
}

// Me returns the acting teacher's entries, or the acting student's group
// timetable.
func (s *ScheduleService) Me(ctx context.Context, id authz.Identity, params params.QueryParams) (*dto.PaginatedScheduleEntryResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var filter entity.ScheduleFilter
	switch id.Role {
	case authz.RoleTeacher:
		filter.TeacherID = &id.UserID
	case authz.RoleStudent:
		if id.GroupID == nil {
			return mapper.ToSchedulePaginationResponse(nil), nil
		}
		filter.GroupID = id.GroupID
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "only teachers and students have a personal timetable", nil)
	}

	entries, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get schedule failed", err)
	}
	return mapper.ToSchedulePaginationResponse(entries), nil
}

// CreateException overrides or cancels one occurrence of a recurring entry.
func (s *ScheduleService) CreateException(ctx context.Context, id authz.Identity, parentID uuid.UUID, req *dto.ExceptionRequest) (*dto.ScheduleEntryResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	parent, appErr := s.load(ctx, parentID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.authorizeCenter(ctx, id, parent.CenterID); appErr != nil {
		return nil, appErr
	}

	ex, err := mapper.ToExceptionEntity(parent, req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	ex.CreatedBy = &id.UserID

	if parent.IsRecurring && !parent.IsException {
		occ, err := Expand(parent, nil, nil, *ex.ExceptionDate, *ex.ExceptionDate)
		if err == nil && len(occ) == 0 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "exception_date is not an occurrence of the entry", nil).
				WithDetails([]errors.Violation{{Field: "exception_date", Code: errors.ErrInvalidInput, Message: "not an occurrence of the entry"}})
		}
	}

	appErr = s.write(ctx, errors.ErrCreateFailed, func(store ScheduleStore) *errors.AppError {
		if appErr := s.validator.Validate(ctx, store, ex); appErr != nil {
			return appErr
		}
		if err := store.Create(ctx, ex); err != nil {
			return writeError(errors.ErrCreateFailed, err)
		}
		return nil
	})
	if appErr != nil {
		return nil, appErr
	}

	title := "Class changed"
	if !ex.IsActive {
		title = "Class cancelled"
	}
	s.notifyTeacher(ctx, ex.TeacherID, ex, title, "exception")
	return mapper.ToScheduleEntryResponse(ex), nil
}

// Occurrences expands a recurring entry over [from, to].
func (s *ScheduleService) Occurrences(ctx context.Context, id authz.Identity, entryID uuid.UUID, from, to time.Time) ([]Occurrence, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if to.Before(from) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "to must not be before from", nil)
	}
	if to.Sub(from) > maxOccurrenceWindow {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "the window may span at most one year", nil)
	}

	parent, appErr := s.load(ctx, entryID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.authorizeCenter(ctx, id, parent.CenterID); appErr != nil {
		return nil, appErr
	}
	if !parent.IsRecurring {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "entry is not recurring", nil)
	}

	exceptions, err := s.repo.ListExceptions(ctx, parent.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get exceptions failed", err)
	}
	holidays, err := s.holidays.ListByCenter(ctx, parent.CenterID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get holidays failed", err)
	}

	occurrences, err := Expand(parent, exceptions, holidays, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	return occurrences, nil
}

// OccursOn reports whether entry entryID takes place on day, expanding it
// with its exceptions and its center's holidays. Unknown entries never do.
func (s *ScheduleService) OccursOn(ctx context.Context, entryID uuid.UUID, day time.Time) (bool, error) {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil || entry == nil {
		return false, err
	}
	pattern := entry
	if entry.IsException {
		if entry.ParentID == nil {
			return false, nil
		}
		if pattern, err = s.repo.GetByID(ctx, *entry.ParentID); err != nil || pattern == nil {
			return false, err
		}
	}

	exceptions, err := s.repo.ListExceptions(ctx, pattern.ID)
	if err != nil {
		return false, err
	}
	holidays, err := s.holidays.ListByCenter(ctx, pattern.CenterID)
	if err != nil {
		return false, err
	}
	return OccursOn(entry, pattern, exceptions, holidays, day), nil
}

func (s *ScheduleService) CheckAvailability(ctx context.Context, q *dto.CheckAvailabilityQuery) (*AvailabilityReport, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	c, appErr := candidateFromQuery(q)
	if appErr != nil {
		return nil, appErr
	}
	if !c.StartTime.Before(c.EndTime) {
		return nil, violation(errors.ErrMalformedInterval, "end_time", "start_time must be before end_time")
	}

	avail, err := s.checker.Check(ctx, s.repo, c)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "check availability failed", err)
	}
	return &AvailabilityReport{IsAvailable: avail.IsAvailable(), Availability: avail}, nil
}

// ValidateEntry runs the write-path validation without writing. With an
// entryID the payload is checked as an update of that entry. A rejected
// entry is a successful call carrying the violations.
func (s *ScheduleService) ValidateEntry(ctx context.Context, id authz.Identity, entryID *uuid.UUID, req *dto.ScheduleEntryRequest) (*dto.ValidateEntryResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	e, _, appErr := s.prepare(ctx, id, entryID, req)
	if appErr != nil {
		return nil, appErr
	}

	appErr = s.validator.Validate(ctx, s.repo, e)
	if appErr == nil {
		return &dto.ValidateEntryResponse{IsValid: true, Violations: []errors.Violation{}}, nil
	}
	if appErr.Code == errors.ErrInternalServer {
		return nil, appErr
	}
	violations, _ := appErr.Details.([]errors.Violation)
	if violations == nil {
		violations = []errors.Violation{}
	}
	return &dto.ValidateEntryResponse{
		IsValid:    false,
		Code:       appErr.Code,
		Message:    appErr.Message,
		Violations: violations,
	}, nil
}

// prepare builds the entry Create or Update would write from req. Given an
// entryID the candidate takes over that entry's identity, so validation
// leaves the stored row out of its own conflict scan.
func (s *ScheduleService) prepare(ctx context.Context, id authz.Identity, entryID *uuid.UUID, req *dto.ScheduleEntryRequest) (*entity.ScheduleEntry, *entity.ScheduleEntry, *errors.AppError) {
	var existing *entity.ScheduleEntry
	if entryID != nil {
		var appErr *errors.AppError
		if existing, appErr = s.load(ctx, *entryID); appErr != nil {
			return nil, nil, appErr
		}
		if existing.IsException {
			return nil, nil, errors.NewAppError(errors.ErrInvalidInput, "exceptions cannot be edited, create a new exception for the date", nil)
		}
		if appErr := s.authorizeCenter(ctx, id, existing.CenterID); appErr != nil {
			return nil, nil, appErr
		}
	}

	e, err := mapper.ToScheduleEntryEntity(req)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if existing == nil || e.CenterID != existing.CenterID {
		if appErr := s.authorizeCenter(ctx, id, e.CenterID); appErr != nil {
			return nil, nil, appErr
		}
	}
	if existing == nil {
		e.CreatedBy = &id.UserID
		return e, nil, nil
	}
	e.BaseEntity = existing.BaseEntity
	e.CreatedBy = existing.CreatedBy
	return e, existing, nil
}

func (s *ScheduleService) load(ctx context.Context, entryID uuid.UUID) (*entity.ScheduleEntry, *errors.AppError) {
	e, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get schedule entry failed", err)
	}
	if e == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "schedule entry not found", nil)
	}
	return e, nil
}

// write runs fn against a transaction-bound store and maps what the database
// rejected onto domain errors.
func (s *ScheduleService) write(ctx context.Context, failCode errors.ErrorCode, fn func(store ScheduleStore) *errors.AppError) *errors.AppError {
	var appErr *errors.AppError
	err := s.tx.RunSerializable(ctx, func(tx *sqlx.Tx) error {
		appErr = fn(s.withTx(tx))
		if appErr != nil {
			return appErr
		}
		return nil
	})
	if err != nil && database.IsSerializationFailure(err) {
		return writeError(failCode, err)
	}
	if appErr != nil {
		return appErr
	}
	if err != nil {
		return writeError(failCode, err)
	}
	return nil
}

var overlapConstraints = map[string]Dimension{
	"schedule_entries_teacher_no_overlap": DimensionTeacher,
	"schedule_entries_room_no_overlap":    DimensionRoom,
	"schedule_entries_group_no_overlap":   DimensionGroup,
}

var checkConstraints = map[string]*errors.Violation{
	"schedule_entries_interval":   {Field: "end_time", Code: errors.ErrMalformedInterval, Message: "start_time must be before end_time"},
	"schedule_entries_recurrence": {Field: "recurrence_end_date", Code: errors.ErrIncompleteRecurrence, Message: "a recurring entry needs a recurrence type and end date"},
	"schedule_entries_exception":  {Field: "exception_date", Code: errors.ErrIncompleteException, Message: "an exception needs a parent and a date"},
}

func writeError(failCode errors.ErrorCode, err error) *errors.AppError {
	switch {
	case database.IsExclusionViolation(err):
		dim, ok := overlapConstraints[database.Constraint(err)]
		if !ok {
			dim = DimensionTeacher
		}
		msg := fmt.Sprintf("%s is already booked in this slot", dimensionLabel(dim))
		return errors.NewAppError(errors.ErrScheduleConflict, msg, err).
			WithDetails([]errors.Violation{{Field: dim.Field(), Code: errors.ErrScheduleConflict, Message: msg}})
	case database.IsSerializationFailure(err):
		return errors.NewAppError(errors.ErrScheduleConflict, "the slot was booked concurrently, please retry", err)
	case database.IsCheckViolation(err):
		if v, ok := checkConstraints[database.Constraint(err)]; ok {
			return errors.NewAppError(v.Code, v.Message, err).WithDetails([]errors.Violation{*v})
		}
		return errors.NewAppError(errors.ErrInvalidInput, "schedule entry violates a constraint", err)
	case database.IsUniqueViolation(err):
		return errors.NewAppError(errors.ErrAlreadyExists, "an exception already exists for that date", err)
	case database.IsForeignKeyViolation(err):
		return errors.NewAppError(errors.ErrNotFound, "referenced record not found", err)
	}
	if appErr, ok := errors.As(err); ok {
		return appErr
	}
	return errors.NewAppError(failCode, "save schedule entry failed", err)
}

// authorizeCenter checks centerID is inside the identity's scope: any center
// for admins, the association's centers for association staff, otherwise the
// identity's own center.
func (s *ScheduleService) authorizeCenter(ctx context.Context, id authz.Identity, centerID uuid.UUID) *errors.AppError {
	switch id.Role {
	case authz.RoleAdmin:
		return nil
	case authz.RoleAssociationStaff:
		assoc, err := s.repo.GetCenterAssociation(ctx, centerID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get center failed", err)
		}
		if assoc == nil {
			return violation(errors.ErrNotFound, "center_id", "center not found")
		}
		if id.AssociationID == nil || *id.AssociationID != *assoc {
			return errors.NewAppError(errors.ErrForbidden, "center belongs to another association", nil)
		}
		return nil
	default:
		if !id.InCenter(centerID) {
			return errors.NewAppError(errors.ErrForbidden, "entry belongs to another center", nil)
		}
		return nil
	}
}

func (s *ScheduleService) notifyTeacher(ctx context.Context, teacherID *uuid.UUID, e *entity.ScheduleEntry, title, kind string) {
	if s.notifier == nil || teacherID == nil {
		return
	}
	msg := fmt.Sprintf("%s on %s, %s-%s", e.Subject, e.DayOfWeek, e.StartTime, e.EndTime)
	if e.ExceptionDate != nil {
		msg = fmt.Sprintf("%s on %s, %s-%s", e.Subject, e.ExceptionDate.Format(constants.DateLayout), e.StartTime, e.EndTime)
	}
	data := map[string]any{"schedule_id": e.ID.String(), "event": kind}
	if err := s.notifier.Notify(ctx, *teacherID, title, msg, "schedule", data); err != nil {
		logger.Warn("ScheduleService:notifyTeacher", "teacher_id", teacherID.String(), "error", err)
	}
}

func candidateFromQuery(q *dto.CheckAvailabilityQuery) (Candidate, *errors.AppError) {
	day, err := entity.ParseWeekday(q.Day)
	if err != nil {
		return Candidate{}, violation(errors.ErrInvalidInput, "day", err.Error())
	}
	start, err := timeofday.Parse(q.StartTime)
	if err != nil {
		return Candidate{}, violation(errors.ErrInvalidInput, "start_time", err.Error())
	}
	end, err := timeofday.Parse(q.EndTime)
	if err != nil {
		return Candidate{}, violation(errors.ErrInvalidInput, "end_time", err.Error())
	}

	c := Candidate{DayOfWeek: day, StartTime: start, EndTime: end}
	ids := []struct {
		field string
		raw   string
		dst   **uuid.UUID
	}{
		{"teacher", q.Teacher, &c.TeacherID},
		{"room", q.Room, &c.RoomID},
		{"group", q.Group, &c.GroupID},
		{"exclude", q.Exclude, &c.ID},
	}
	for _, f := range ids {
		v, err := utils.ToUUIDPtr(f.raw)
		if err != nil {
			return Candidate{}, violation(errors.ErrInvalidInput, f.field, "must be a uuid")
		}
		*f.dst = v
	}
	return c, nil
}
