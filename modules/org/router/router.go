package router

import (
	"trainhub-api/core/authz"
	"trainhub-api/core/middleware"
	"trainhub-api/modules/org/controller"

	"github.com/labstack/echo/v4"
)

type OrgRouter struct {
	controller *controller.OrgController
}

func NewOrgRouter(controller *controller.OrgController) *OrgRouter {
	return &OrgRouter{controller: controller}
}

func (r *OrgRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	view := mw.Require(authz.ViewOrg)
	manage := mw.Require(authz.ManageOrg)

	cities := e.Group("/cities", mw.AuthMiddleware())
	cities.GET("", r.controller.ListCities, view)
	cities.GET("/:id", r.controller.GetCity, view)
	cities.POST("", r.controller.CreateCity, manage)
	cities.PUT("/:id", r.controller.UpdateCity, manage)
	cities.DELETE("/:id", r.controller.DeleteCity, manage)

	associations := e.Group("/associations", mw.AuthMiddleware())
	associations.GET("", r.controller.ListAssociations, view)
	associations.GET("/:id", r.controller.GetAssociation, view)
	associations.POST("", r.controller.CreateAssociation, manage)
	associations.PUT("/:id", r.controller.UpdateAssociation, manage)
	associations.DELETE("/:id", r.controller.DeleteAssociation, manage)

	centers := e.Group("/centers", mw.AuthMiddleware())
	centers.GET("", r.controller.ListCenters, view)
	centers.GET("/:id", r.controller.GetCenter, view)
	centers.POST("", r.controller.CreateCenter, manage)
	centers.PUT("/:id", r.controller.UpdateCenter, manage)
	centers.DELETE("/:id", r.controller.DeleteCenter, manage)

	rooms := e.Group("/rooms", mw.AuthMiddleware())
	rooms.GET("", r.controller.ListRooms, view)
	rooms.GET("/:id", r.controller.GetRoom, view)
	rooms.POST("", r.controller.CreateRoom, manage)
	rooms.PUT("/:id", r.controller.UpdateRoom, manage)
	rooms.DELETE("/:id", r.controller.DeleteRoom, manage)

	materials := e.Group("/materials", mw.AuthMiddleware())
	materials.GET("", r.controller.ListMaterials, view)
	materials.GET("/:id", r.controller.GetMaterial, view)
	materials.POST("", r.controller.CreateMaterial, manage)
	materials.PUT("/:id", r.controller.UpdateMaterial, manage)
	materials.DELETE("/:id", r.controller.DeleteMaterial, manage)

	trainings := e.Group("/trainings", mw.AuthMiddleware())
	trainings.GET("", r.controller.ListTrainings, view)
	trainings.GET("/me", r.controller.MyTrainings, mw.Require(authz.ViewOwnSchedule))
	trainings.GET("/:id", r.controller.GetTraining, view)
	trainings.POST("", r.controller.CreateTraining, manage)
	trainings.PUT("/:id", r.controller.UpdateTraining, manage)
	trainings.DELETE("/:id", r.controller.DeleteTraining, manage)

	groups := e.Group("/groups", mw.AuthMiddleware())
	groups.GET("", r.controller.ListGroups, view)
	groups.GET("/:id", r.controller.GetGroup, view)
	groups.POST("", r.controller.CreateGroup, manage)
	groups.PUT("/:id", r.controller.UpdateGroup, manage)
	groups.DELETE("/:id", r.controller.DeleteGroup, manage)
}
