package notification

import (
	"trainhub-api/core/database"
	"trainhub-api/core/middleware"
	"trainhub-api/modules/notification/controller"
	"trainhub-api/modules/notification/repository"
	"trainhub-api/modules/notification/router"
	"trainhub-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.IDatabase, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db.SQLx())
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(e, mw)

	return svc
}
