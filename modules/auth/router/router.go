package router

import (
	"trainhub-api/core/authz"
	"trainhub-api/core/middleware"
	"trainhub-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: controller}
}

func (r *AuthRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	auth := e.Group("/auth")
	auth.POST("/login", r.controller.Login)
	auth.POST("/refresh", r.controller.RefreshToken)
	auth.POST("/logout", r.controller.Logout, mw.AuthMiddleware())
	auth.GET("/me", r.controller.Me, mw.AuthMiddleware())

	users := e.Group("/users", mw.AuthMiddleware(), mw.Require(authz.ManageUsers))
	users.POST("", r.controller.CreateUser)
	users.GET("", r.controller.ListUsers)
	users.GET("/:id", r.controller.GetUser)
	users.PUT("/:id", r.controller.UpdateUser)
	users.DELETE("/:id", r.controller.DeleteUser)
}
