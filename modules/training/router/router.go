package router

import (
	"trainhub-api/core/authz"
	"trainhub-api/core/middleware"
	"trainhub-api/modules/training/controller"

	"github.com/labstack/echo/v4"
)

type TrainingRouter struct {
	controller *controller.TrainingController
}

func NewTrainingRouter(controller *controller.TrainingController) *TrainingRouter {
	return &TrainingRouter{controller: controller}
}

func (r *TrainingRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	view := mw.Require(authz.ViewTraining)
	manage := mw.Require(authz.ManageTraining)
	grade := mw.Require(authz.GradeSubmission)

	distributions := e.Group("/distributions", mw.AuthMiddleware())
	distributions.GET("", r.controller.ListDistributions, view)
	distributions.GET("/:id", r.controller.GetDistribution, view)
	distributions.POST("", r.controller.CreateDistribution, manage)
	distributions.PUT("/:id", r.controller.UpdateDistribution, manage)
	distributions.DELETE("/:id", r.controller.DeleteDistribution, manage)

	controls := e.Group("/controls", mw.AuthMiddleware())
	controls.GET("", r.controller.ListControls, view)
	controls.GET("/:id", r.controller.GetControl, view)
	controls.POST("", r.controller.CreateControl, manage)
	controls.PUT("/:id", r.controller.UpdateControl, manage)
	controls.DELETE("/:id", r.controller.DeleteControl, manage)

	exercises := e.Group("/exercises", mw.AuthMiddleware())
	exercises.GET("", r.controller.ListExercises, view)
	exercises.GET("/:id", r.controller.GetExercise, view)
	exercises.POST("", r.controller.CreateExercise, manage)
	exercises.PUT("/:id", r.controller.UpdateExercise, manage)
	exercises.DELETE("/:id", r.controller.DeleteExercise, manage)

	submissions := e.Group("/submissions", mw.AuthMiddleware())
	submissions.GET("", r.controller.ListSubmissions, view)
	submissions.GET("/:id", r.controller.GetSubmission, view)
	submissions.POST("", r.controller.Submit, mw.Require(authz.SubmitExercise))
	submissions.PUT("/:id/review", r.controller.ReviewSubmission, grade)

	marks := e.Group("/marks", mw.AuthMiddleware())
	marks.GET("", r.controller.ListMarks, view)
	marks.POST("", r.controller.GradeExercise, grade)
	marks.DELETE("/:id", r.controller.DeleteMark, grade)

	progress := e.Group("/progress", mw.AuthMiddleware())
	progress.GET("", r.controller.ListProgressLogs, view)
	progress.POST("", r.controller.LogProgress, mw.Require(authz.LogProgress))
	progress.DELETE("/:id", r.controller.DeleteProgressLog, mw.Require(authz.LogProgress))

	attendance := e.Group("/attendance", mw.AuthMiddleware())
	attendance.GET("", r.controller.ListAttendance, mw.Require(authz.ViewAttendance))
	attendance.POST("/bulk", r.controller.RecordAttendance, mw.Require(authz.RecordAttendance))
}
