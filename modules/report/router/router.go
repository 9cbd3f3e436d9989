package router

import (
	"trainhub-api/core/authz"
	"trainhub-api/core/middleware"
	"trainhub-api/modules/report/controller"

	"github.com/labstack/echo/v4"
)

type ReportRouter struct {
	controller *controller.ReportController
}

func NewReportRouter(controller *controller.ReportController) *ReportRouter {
	return &ReportRouter{controller: controller}
}

func (r *ReportRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	view := mw.Require(authz.ViewReport)
	generate := mw.Require(authz.GenerateReport)
	export := mw.Require(authz.ExportReport)

	reports := e.Group("/reports", mw.AuthMiddleware())
	reports.GET("", r.controller.List, view)
	reports.GET("/me", r.controller.Mine, view)
	reports.GET("/quick-stats", r.controller.QuickStats, view)
	reports.POST("/generate", r.controller.Generate, generate)
	reports.GET("/:id", r.controller.Get, view)
	reports.POST("/:id/recalculate", r.controller.Recalculate, generate)
	reports.POST("/:id/export", r.controller.RequestExport, export)
	reports.GET("/:id/export", r.controller.GetExport, export)
}
