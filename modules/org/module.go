package org

import (
	"trainhub-api/core/database"
	"trainhub-api/core/middleware"
	"trainhub-api/modules/org/controller"
	"trainhub-api/modules/org/repository"
	"trainhub-api/modules/org/router"
	"trainhub-api/modules/org/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.IDatabase, mw *middleware.Middleware) {
	repo := repository.NewOrgRepository(db.SQLx())
	svc := service.NewOrgService(repo)
	ctrl := controller.NewOrgController(svc)

	router.NewOrgRouter(ctrl).Register(e, mw)
}
