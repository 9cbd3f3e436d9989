package controller

import (
	"trainhub-api/core/authz"
	"trainhub-api/core/controller"
	"trainhub-api/core/errors"
	"trainhub-api/core/middleware"
	"trainhub-api/core/utils"
	"trainhub-api/core/validator"
	"trainhub-api/modules/org/dto"
	"trainhub-api/modules/org/entity"
	"trainhub-api/modules/org/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type OrgController struct {
	controller.BaseController
	OrgService *service.OrgService
}

func NewOrgController(service *service.OrgService) *OrgController {
	return &OrgController{
		BaseController: controller.NewBaseController(),
		OrgService:     service,
	}
}

func (controller *OrgController) identity(c echo.Context) (authz.Identity, error) {
	id, ok := middleware.Identity(c)
	if !ok {
		return authz.Identity{}, controller.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	return id, nil
}

func (controller *OrgController) pathID(c echo.Context) (uuid.UUID, error) {
	id, err := utils.ToUUID(c.Param("id"))
	if err != nil {
		return uuid.Nil, controller.BadRequest(errors.ErrInvalidInput, "Invalid id")
	}
	return id, nil
}

func (controller *OrgController) bind(c echo.Context, requestData any) error {
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}
	return nil
}

func (controller *OrgController) listFilter(c echo.Context) (entity.Filter, error) {
	query := new(dto.OrgListQuery)
	if err := controller.bind(c, query); err != nil {
		return entity.Filter{}, err
	}
	var filter entity.Filter
	filter.CityID, _ = utils.ToUUIDPtr(query.CityID)
	filter.AssociationID, _ = utils.ToUUIDPtr(query.AssociationID)
	filter.CenterID, _ = utils.ToUUIDPtr(query.CenterID)
	filter.RoomID, _ = utils.ToUUIDPtr(query.RoomID)
	filter.TrainingID, _ = utils.ToUUIDPtr(query.TrainingID)
	return filter, nil
}
