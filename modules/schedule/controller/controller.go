package controller

import (
	"trainhub-api/core/authz"
	"trainhub-api/core/controller"
	"trainhub-api/core/errors"
	"trainhub-api/core/middleware"
	"trainhub-api/core/utils"
	"trainhub-api/modules/schedule/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ScheduleController struct {
	controller.BaseController
	ScheduleService     service.ScheduleServiceInterface
	AvailabilityService *service.AvailabilityService
	HolidayService      *service.HolidayService
}

func NewScheduleController(schedules service.ScheduleServiceInterface, availability *service.AvailabilityService, holidays *service.HolidayService) *ScheduleController {
	return &ScheduleController{
		BaseController:      controller.NewBaseController(),
		ScheduleService:     schedules,
		AvailabilityService: availability,
		HolidayService:      holidays,
	}
}

func (controller *ScheduleController) identity(c echo.Context) (authz.Identity, error) {
	id, ok := middleware.Identity(c)
	if !ok {
		return authz.Identity{}, controller.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	return id, nil
}

func (controller *ScheduleController) pathID(c echo.Context) (uuid.UUID, error) {
	id, err := utils.ToUUID(c.Param("id"))
	if err != nil {
		return uuid.Nil, controller.BadRequest(errors.ErrInvalidInput, "Invalid id")
	}
	return id, nil
}
