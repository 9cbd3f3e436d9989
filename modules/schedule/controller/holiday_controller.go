package controller

import (
	"trainhub-api/core/errors"
	"trainhub-api/core/utils"
	"trainhub-api/core/validator"
	"trainhub-api/modules/schedule/dto"

	"github.com/labstack/echo/v4"
)

// ListHolidays
// @Summary List a center's holidays
// @Tags Holiday
// @Security BearerAuth
// @Param center_id query string true "Center ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /holidays [get]
func (controller *ScheduleController) ListHolidays(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}

	centerID, err := utils.ToUUID(c.QueryParam("center_id"))
	if err != nil {
		if id.CenterID == nil {
			return controller.BadRequest(errors.ErrInvalidInput, "center_id is required")
		}
		centerID = *id.CenterID
	}

	items, errList := controller.HolidayService.List(ctx, id, centerID)
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, items, "get holidays success")
}

// CreateHoliday
// @Summary Create holiday
// @Tags Holiday
// @Security BearerAuth
// @Param request body dto.HolidayRequest true "Holiday"
// @Success 201 {object} controller.SuccessResponse
// @Router /holidays [post]
func (controller *ScheduleController) CreateHoliday(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}

	requestData := new(dto.HolidayRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}

	item, errCreate := controller.HolidayService.Create(ctx, id, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, item, "create holiday success")
}

// UpdateHoliday
// @Summary Update holiday
// @Tags Holiday
// @Security BearerAuth
// @Param id path string true "Holiday ID"
// @Param request body dto.HolidayRequest true "Holiday"
// @Success 200 {object} controller.SuccessResponse
// @Router /holidays/{id} [put]
func (controller *ScheduleController) UpdateHoliday(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	holidayID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	requestData := new(dto.HolidayRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}

	item, errUpdate := controller.HolidayService.Update(ctx, id, holidayID, requestData)
	if errUpdate != nil {
		return controller.ErrorResponse(c, errUpdate)
	}
	return controller.SuccessResponse(c, item, "update holiday success")
}

// DeleteHoliday
// @Summary Delete holiday
// @Tags Holiday
// @Security BearerAuth
// @Param id path string true "Holiday ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /holidays/{id} [delete]
func (controller *ScheduleController) DeleteHoliday(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	holidayID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.HolidayService.Delete(ctx, id, holidayID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "delete holiday success")
}
