package controller

import (
	"trainhub-api/core/errors"
	"trainhub-api/core/params"
	"trainhub-api/core/utils"
	"trainhub-api/core/validator"
	"trainhub-api/modules/schedule/dto"
	"trainhub-api/modules/schedule/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CreateEntry creates a schedule entry
// @Summary Create schedule entry
// @Description Validates and books a class slot. Rejected slots return every conflict.
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ScheduleEntryRequest true "Schedule entry"
// @Success 201 {object} controller.SuccessResponse
// @Failure 409 {object} controller.ErrorResponse
// @Failure 422 {object} controller.ErrorResponse
// @Router /schedules [post]
func (controller *ScheduleController) CreateEntry(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}

	requestData := new(dto.ScheduleEntryRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}

	entry, errCreate := controller.ScheduleService.Create(ctx, id, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, entry, "create schedule entry success")
}

// UpdateEntry replaces a schedule entry
// @Summary Update schedule entry
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param request body dto.ScheduleEntryRequest true "Schedule entry"
// @Success 200 {object} controller.SuccessResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /schedules/{id} [put]
func (controller *ScheduleController) UpdateEntry(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	entryID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	requestData := new(dto.ScheduleEntryRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}

	entry, errUpdate := controller.ScheduleService.Update(ctx, id, entryID, requestData)
	if errUpdate != nil {
		return controller.ErrorResponse(c, errUpdate)
	}
	return controller.SuccessResponse(c, entry, "update schedule entry success")
}

// DeleteEntry deactivates a schedule entry
// @Summary Deactivate schedule entry
// @Tags Schedule
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /schedules/{id} [delete]
func (controller *ScheduleController) DeleteEntry(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	entryID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.ScheduleService.Deactivate(ctx, id, entryID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "deactivate schedule entry success")
}

// GetEntry
// @Summary Get schedule entry
// @Tags Schedule
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /schedules/{id} [get]
func (controller *ScheduleController) GetEntry(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	entryID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	entry, errGet := controller.ScheduleService.Get(ctx, id, entryID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, entry, "get schedule entry success")
}

// ListEntries
// @Summary List timetable
// @Description Filters by training, center, group, teacher, room and weekday.
// @Tags Schedule
// @Security BearerAuth
// @Param training_id query string false "Training"
// @Param center_id query string false "Center"
// @Param group_id query string false "Group"
// @Param teacher_id query string false "Teacher"
// @Param room_id query string false "Room"
// @Param day_of_week query string false "MON..SUN"
// @Param page_number query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} controller.SuccessResponse
// @Router /schedules [get]
func (controller *ScheduleController) ListEntries(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}

	query := new(dto.ScheduleListQuery)
	if err := c.Bind(query); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid query", nil)
	}
	validationResult := validator.Validate(query)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid query", validationResult.Errors)
	}

	filter := entity.ScheduleFilter{IncludeInactive: query.Inactive}
	filter.TrainingID, _ = utils.ToUUIDPtr(query.TrainingID)
	filter.CenterID, _ = utils.ToUUIDPtr(query.CenterID)
	filter.GroupID, _ = utils.ToUUIDPtr(query.GroupID)
	filter.TeacherID, _ = utils.ToUUIDPtr(query.TeacherID)
	filter.RoomID, _ = utils.ToUUIDPtr(query.RoomID)
	if query.DayOfWeek != "" {
		day := entity.Weekday(query.DayOfWeek)
		filter.DayOfWeek = &day
	}

	queryParams := params.NewQueryParams(c)
	entries, errList := controller.ScheduleService.List(ctx, id, filter, *queryParams)
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, entries, "get schedule success")
}

// MySchedule
// @Summary Personal timetable
// @Description A teacher's own entries or a student's group timetable.
// @Tags Schedule
// @Security BearerAuth
// @Success 200 {object} controller.SuccessResponse
// @Router /schedules/me [get]
func (controller *ScheduleController) MySchedule(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}

	entries, errList := controller.ScheduleService.Me(ctx, id, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, entries, "get my schedule success")
}

// CreateException
// @Summary Override one occurrence
// @Description Replaces or, with is_active=false, cancels one date of a recurring entry.
// @Tags Schedule
// @Security BearerAuth
// @Param id path string true "Recurring entry ID"
// @Param request body dto.ExceptionRequest true "Exception"
// @Success 201 {object} controller.SuccessResponse
// @Router /schedules/{id}/exceptions [post]
func (controller *ScheduleController) CreateException(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	parentID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	requestData := new(dto.ExceptionRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}

	entry, errCreate := controller.ScheduleService.CreateException(ctx, id, parentID, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, entry, "create exception success")
}

// Occurrences
// @Summary Expand a recurring entry
// @Tags Schedule
// @Security BearerAuth
// @Param id path string true "Recurring entry ID"
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {object} controller.SuccessResponse
// @Router /schedules/{id}/occurrences [get]
func (controller *ScheduleController) Occurrences(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	entryID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	query := new(dto.OccurrenceQuery)
	if err := c.Bind(query); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid query", nil)
	}
	validationResult := validator.Validate(query)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid query", validationResult.Errors)
	}
	from, _ := utils.ParseDate(query.From)
	to, _ := utils.ParseDate(query.To)

	occurrences, errExpand := controller.ScheduleService.Occurrences(ctx, id, entryID, *from, *to)
	if errExpand != nil {
		return controller.ErrorResponse(c, errExpand)
	}
	return controller.SuccessResponse(c, occurrences, "get occurrences success")
}

// CheckAvailability
// @Summary Check a slot
// @Description Reports per-dimension availability and every conflict.
// @Tags Schedule
// @Security BearerAuth
// @Param day query string true "MON..SUN"
// @Param start_time query string true "HH:MM"
// @Param end_time query string true "HH:MM"
// @Param teacher query string false "Teacher ID"
// @Param room query string false "Room ID"
// @Param group query string false "Group ID"
// @Param exclude query string false "Entry ID to ignore"
// @Success 200 {object} controller.SuccessResponse
// @Router /schedules/check-availability [get]
func (controller *ScheduleController) CheckAvailability(c echo.Context) error {
	ctx := c.Request().Context()

	query := new(dto.CheckAvailabilityQuery)
	if err := c.Bind(query); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid query", nil)
	}
	validationResult := validator.Validate(query)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid query", validationResult.Errors)
	}

	report, errCheck := controller.ScheduleService.CheckAvailability(ctx, query)
	if errCheck != nil {
		return controller.ErrorResponse(c, errCheck)
	}
	return controller.SuccessResponse(c, report, "check availability success")
}

// ValidateEntry
// @Summary Dry-run validation
// @Description Runs the same checks as create without writing.
// @Tags Schedule
// @Security BearerAuth
// @Param id query string false "Entry being updated"
// @Param request body dto.ScheduleEntryRequest true "Schedule entry"
// @Success 200 {object} controller.SuccessResponse
// @Router /schedules/validate [post]
func (controller *ScheduleController) ValidateEntry(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}

	requestData := new(dto.ScheduleEntryRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}

	var entryID *uuid.UUID
	if raw := c.QueryParam("id"); raw != "" {
		parsed, err := utils.ToUUID(raw)
		if err != nil {
			return controller.BadRequest(errors.ErrInvalidInput, "Invalid id")
		}
		entryID = &parsed
	}

	result, errValidate := controller.ScheduleService.ValidateEntry(ctx, id, entryID, requestData)
	if errValidate != nil {
		return controller.ErrorResponse(c, errValidate)
	}
	return controller.SuccessResponse(c, result, "validate schedule entry success")
}
