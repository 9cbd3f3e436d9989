package schedule

import (
	"trainhub-api/core/database"
	"trainhub-api/core/middleware"
	"trainhub-api/modules/schedule/controller"
	"trainhub-api/modules/schedule/repository"
	"trainhub-api/modules/schedule/router"
	"trainhub-api/modules/schedule/service"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.IDatabase, mw *middleware.Middleware, notifier service.Notifier) *service.ScheduleService {
	repo := repository.NewScheduleRepository(db.SQLx())
	holidayRepo := repository.NewHolidayRepository(db.SQLx())
	availabilityRepo := repository.NewAvailabilityRepository(db.SQLx())

	withTx := func(tx *sqlx.Tx) service.ScheduleStore {
		return repo.WithTx(tx)
	}
	scheduleSvc := service.NewScheduleService(repo, db, withTx, holidayRepo, notifier)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo)
	holidaySvc := service.NewHolidayService(holidayRepo, repo)

	ctrl := controller.NewScheduleController(scheduleSvc, availabilitySvc, holidaySvc)
	router.NewScheduleRouter(ctrl).Register(e, mw)

	return scheduleSvc
}
