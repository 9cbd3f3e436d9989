package report

import (
	"trainhub-api/core/database"
	"trainhub-api/core/middleware"
	"trainhub-api/core/queue"
	"trainhub-api/core/storage"
	"trainhub-api/modules/report/controller"
	"trainhub-api/modules/report/repository"
	"trainhub-api/modules/report/router"
	"trainhub-api/modules/report/service"

	"github.com/labstack/echo/v4"
)

// Init wires the report endpoints and returns the service so the queue worker
// can run its export handler.
func Init(e *echo.Group, db database.IDatabase, mw *middleware.Middleware, enqueuer queue.Enqueuer, store storage.Storage, notifier service.Notifier) *service.ReportService {
	repo := repository.NewReportRepository(db.SQLx())
	reportSvc := service.NewReportService(repo, enqueuer, store, notifier)

	ctrl := controller.NewReportController(reportSvc)
	router.NewReportRouter(ctrl).Register(e, mw)

	return reportSvc
}
