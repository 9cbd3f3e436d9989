package controller

import (
	"trainhub-api/core/controller"
	"trainhub-api/core/errors"
	"trainhub-api/core/middleware"
	"trainhub-api/core/utils"
	"trainhub-api/core/validator"
	"trainhub-api/modules/auth/dto"
	"trainhub-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
	UserService *service.UserService
}

func NewAuthController(authService service.AuthServiceInterface, userService *service.UserService) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    authService,
		UserService:    userService,
	}
}

// Login
// @Summary Login
// @Description Authenticates with email or phone number and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} controller.SuccessResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /auth/login [post]
func (controller *AuthController) Login(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.LoginRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}

	tokens, errLogin := controller.AuthService.Login(ctx, requestData)
	if errLogin != nil {
		return controller.ErrorResponse(c, errLogin)
	}
	return controller.SuccessResponse(c, tokens, "Login success")
}

// RefreshToken
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} controller.SuccessResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /auth/refresh [post]
func (controller *AuthController) RefreshToken(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.RefreshTokenRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}

	tokens, errRefresh := controller.AuthService.RefreshToken(ctx, requestData.RefreshToken)
	if errRefresh != nil {
		return controller.ErrorResponse(c, errRefresh)
	}
	return controller.SuccessResponse(c, tokens, "Refresh token success")
}

// Logout
// @Summary Logout
// @Description Revokes the access token and, when given, the refresh token
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Param request body dto.LogoutRequest false "Refresh token"
// @Success 200 {object} controller.SuccessResponse
// @Router /auth/logout [post]
func (controller *AuthController) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	token, err := utils.GetTokenFromHeader(c)
	if err != nil {
		return controller.Unauthorized(errors.ErrMissingAuthorizationHeader, err.Error())
	}
	requestData := new(dto.LogoutRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	if errLogout := controller.AuthService.Logout(ctx, token, requestData.RefreshToken); errLogout != nil {
		return controller.ErrorResponse(c, errLogout)
	}
	return controller.SuccessResponse(c, nil, "Logout success")
}

// Me
// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /auth/me [get]
func (controller *AuthController) Me(c echo.Context) error {
	id, ok := middleware.Identity(c)
	if !ok {
		return controller.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	user, errGet := controller.AuthService.Me(c.Request().Context(), id.UserID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, user, "Get profile success")
}
