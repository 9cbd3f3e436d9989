package controller

import (
	"trainhub-api/core/authz"
	"trainhub-api/core/controller"
	"trainhub-api/core/errors"
	"trainhub-api/core/middleware"
	"trainhub-api/core/utils"
	"trainhub-api/core/validator"
	"trainhub-api/modules/training/dto"
	"trainhub-api/modules/training/entity"
	"trainhub-api/modules/training/mapper"
	"trainhub-api/modules/training/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TrainingController struct {
	controller.BaseController
	TrainingService *service.TrainingService
}

func NewTrainingController(service *service.TrainingService) *TrainingController {
	return &TrainingController{
		BaseController:  controller.NewBaseController(),
		TrainingService: service,
	}
}

func (controller *TrainingController) identity(c echo.Context) (authz.Identity, error) {
	id, ok := middleware.Identity(c)
	if !ok {
		return authz.Identity{}, controller.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	return id, nil
}

func (controller *TrainingController) pathID(c echo.Context) (uuid.UUID, error) {
	id, err := utils.ToUUID(c.Param("id"))
	if err != nil {
		return uuid.Nil, controller.BadRequest(errors.ErrInvalidInput, "Invalid id")
	}
	return id, nil
}

func (controller *TrainingController) bind(c echo.Context, requestData any) error {
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}
	return nil
}

func (controller *TrainingController) listFilter(c echo.Context) (entity.Filter, error) {
	query := new(dto.TrainingListQuery)
	if err := controller.bind(c, query); err != nil {
		return entity.Filter{}, err
	}
	return mapper.ToFilter(query), nil
}
