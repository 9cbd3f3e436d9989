package controller

import (
	"trainhub-api/core/errors"
	"trainhub-api/core/utils"
	"trainhub-api/core/validator"
	"trainhub-api/modules/schedule/dto"

	"github.com/labstack/echo/v4"
)

// ListAvailability
// @Summary List teacher availability
// @Tags Availability
// @Security BearerAuth
// @Param teacher_id query string false "Teacher ID, defaults to the caller"
// @Success 200 {object} controller.SuccessResponse
// @Router /availability [get]
func (controller *ScheduleController) ListAvailability(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	teacherID, err := utils.ToUUIDPtr(c.QueryParam("teacher_id"))
	if err != nil {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid teacher_id")
	}

	items, errList := controller.AvailabilityService.List(ctx, id, teacherID)
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, items, "get availability success")
}

// CreateAvailability
// @Summary Add an availability window
// @Tags Availability
// @Security BearerAuth
// @Param request body dto.AvailabilityRequest true "Window"
// @Success 201 {object} controller.SuccessResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /availability [post]
func (controller *ScheduleController) CreateAvailability(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}

	requestData := new(dto.AvailabilityRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}

	item, errCreate := controller.AvailabilityService.Create(ctx, id, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, item, "create availability success")
}

// UpdateAvailability
// @Summary Update an availability window
// @Tags Availability
// @Security BearerAuth
// @Param id path string true "Availability ID"
// @Param request body dto.AvailabilityRequest true "Window"
// @Success 200 {object} controller.SuccessResponse
// @Router /availability/{id} [put]
func (controller *ScheduleController) UpdateAvailability(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	availabilityID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	requestData := new(dto.AvailabilityRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}

	item, errUpdate := controller.AvailabilityService.Update(ctx, id, availabilityID, requestData)
	if errUpdate != nil {
		return controller.ErrorResponse(c, errUpdate)
	}
	return controller.SuccessResponse(c, item, "update availability success")
}

// DeleteAvailability
// @Summary Remove an availability window
// @Tags Availability
// @Security BearerAuth
// @Param id path string true "Availability ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /availability/{id} [delete]
func (controller *ScheduleController) DeleteAvailability(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	availabilityID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.AvailabilityService.Delete(ctx, id, availabilityID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "delete availability success")
}
