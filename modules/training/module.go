package training

import (
	"trainhub-api/core/database"
	"trainhub-api/core/middleware"
	"trainhub-api/modules/training/controller"
	"trainhub-api/modules/training/repository"
	"trainhub-api/modules/training/router"
	"trainhub-api/modules/training/service"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

// Init wires the training module. timetable decides which dates a schedule
// entry takes place on when attendance is recorded.
func Init(e *echo.Group, db database.IDatabase, mw *middleware.Middleware, timetable service.Timetable) {
	repo := repository.NewTrainingRepository(db.SQLx())
	withTx := func(tx *sqlx.Tx) service.TrainingStore {
		return repo.WithTx(tx)
	}
	trainingSvc := service.NewTrainingService(repo, db, withTx, timetable)

	ctrl := controller.NewTrainingController(trainingSvc)
	router.NewTrainingRouter(ctrl).Register(e, mw)
}
