package controller

import (
	"trainhub-api/core/authz"
	"trainhub-api/core/errors"
	"trainhub-api/core/middleware"
	"trainhub-api/core/params"
	"trainhub-api/core/utils"
	"trainhub-api/core/validator"
	"trainhub-api/modules/auth/dto"
	"trainhub-api/modules/auth/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (controller *AuthController) userID(c echo.Context) (uuid.UUID, error) {
	id, err := utils.ToUUID(c.Param("id"))
	if err != nil {
		return uuid.Nil, controller.BadRequest(errors.ErrInvalidInput, "Invalid id")
	}
	return id, nil
}

// CreateUser
// @Summary Create user
// @Description Admin creates an account with its role and org scope
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User"
// @Success 201 {object} controller.SuccessResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /users [post]
func (controller *AuthController) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.CreateUserRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}

	user, errCreate := controller.UserService.Create(ctx, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, user, "create user success")
}

// UpdateUser
// @Summary Update user
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "User"
// @Success 200 {object} controller.SuccessResponse
// @Router /users/{id} [put]
func (controller *AuthController) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := controller.userID(c)
	if err != nil {
		return err
	}

	requestData := new(dto.UpdateUserRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}

	user, errUpdate := controller.UserService.Update(ctx, userID, requestData)
	if errUpdate != nil {
		return controller.ErrorResponse(c, errUpdate)
	}
	return controller.SuccessResponse(c, user, "update user success")
}

// DeleteUser
// @Summary Deactivate user
// @Tags Users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /users/{id} [delete]
func (controller *AuthController) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	actor, ok := middleware.Identity(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	userID, err := controller.userID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.UserService.Deactivate(ctx, actor, userID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "deactivate user success")
}

// GetUser
// @Summary Get user
// @Tags Users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /users/{id} [get]
func (controller *AuthController) GetUser(c echo.Context) error {
	userID, err := controller.userID(c)
	if err != nil {
		return err
	}

	user, errGet := controller.UserService.Get(c.Request().Context(), userID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, user, "get user success")
}

// ListUsers
// @Summary List users
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param role query string false "Role"
// @Param center_id query string false "Center ID"
// @Param association_id query string false "Association ID"
// @Param group_id query string false "Group ID"
// @Param search query string false "Email or name"
// @Param page_number query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} controller.SuccessResponse
// @Router /users [get]
func (controller *AuthController) ListUsers(c echo.Context) error {
	query := new(dto.UserListQuery)
	if err := c.Bind(query); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid query", nil)
	}
	validationResult := validator.Validate(query)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid query", validationResult.Errors)
	}

	var filter entity.UserFilter
	if query.Role != "" {
		role := authz.Role(query.Role)
		filter.Role = &role
	}
	filter.CenterID, _ = utils.ToUUIDPtr(query.CenterID)
	filter.AssociationID, _ = utils.ToUUIDPtr(query.AssociationID)
	filter.GroupID, _ = utils.ToUUIDPtr(query.GroupID)

	users, errList := controller.UserService.List(c.Request().Context(), filter, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, users, "get users success")
}
