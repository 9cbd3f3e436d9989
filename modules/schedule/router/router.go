package router

import (
	"trainhub-api/core/authz"
	"trainhub-api/core/middleware"
	"trainhub-api/modules/schedule/controller"

	"github.com/labstack/echo/v4"
)

type ScheduleRouter struct {
	controller *controller.ScheduleController
}

func NewScheduleRouter(controller *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{controller: controller}
}

func (r *ScheduleRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	view := mw.Require(authz.ViewSchedule)
	manage := mw.Require(authz.ManageSchedule)

	schedules := e.Group("/schedules", mw.AuthMiddleware())
	schedules.GET("", r.controller.ListEntries, view)
	schedules.GET("/me", r.controller.MySchedule, mw.Require(authz.ViewOwnSchedule))
	schedules.GET("/check-availability", r.controller.CheckAvailability, view)
	schedules.POST("/validate", r.controller.ValidateEntry, view)
	schedules.POST("", r.controller.CreateEntry, manage)
	schedules.GET("/:id", r.controller.GetEntry, view)
	schedules.PUT("/:id", r.controller.UpdateEntry, manage)
	schedules.DELETE("/:id", r.controller.DeleteEntry, manage)
	schedules.POST("/:id/exceptions", r.controller.CreateException, manage)
	schedules.GET("/:id/occurrences", r.controller.Occurrences, view)

	availability := e.Group("/availability", mw.AuthMiddleware())
	availability.GET("", r.controller.ListAvailability, view)
	availability.POST("", r.controller.CreateAvailability, mw.Require(authz.ManageAvailability))
	availability.PUT("/:id", r.controller.UpdateAvailability, mw.Require(authz.ManageAvailability))
	availability.DELETE("/:id", r.controller.DeleteAvailability, mw.Require(authz.ManageAvailability))

	holidays := e.Group("/holidays", mw.AuthMiddleware())
	holidays.GET("", r.controller.ListHolidays, view)
	holidays.POST("", r.controller.CreateHoliday, mw.Require(authz.ManageHolidays))
	holidays.PUT("/:id", r.controller.UpdateHoliday, mw.Require(authz.ManageHolidays))
	holidays.DELETE("/:id", r.controller.DeleteHoliday, mw.Require(authz.ManageHolidays))
}
