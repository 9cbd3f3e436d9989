package controller

import (
	"trainhub-api/core/authz"
	"trainhub-api/core/controller"
	"trainhub-api/core/errors"
	"trainhub-api/core/middleware"
	"trainhub-api/core/params"
	"trainhub-api/core/utils"
	"trainhub-api/core/validator"
	"trainhub-api/modules/report/dto"
	"trainhub-api/modules/report/mapper"
	"trainhub-api/modules/report/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ReportController struct {
	controller.BaseController
	ReportService *service.ReportService
}

func NewReportController(service *service.ReportService) *ReportController {
	return &ReportController{
		BaseController: controller.NewBaseController(),
		ReportService:  service,
	}
}

func (controller *ReportController) identity(c echo.Context) (authz.Identity, error) {
	id, ok := middleware.Identity(c)
	if !ok {
		return authz.Identity{}, controller.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	return id, nil
}

func (controller *ReportController) pathID(c echo.Context) (uuid.UUID, error) {
	id, err := utils.ToUUID(c.Param("id"))
	if err != nil {
		return uuid.Nil, controller.BadRequest(errors.ErrInvalidInput, "Invalid id")
	}
	return id, nil
}

func (controller *ReportController) bind(c echo.Context, requestData any) error {
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	validationResult := validator.Validate(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult.Errors)
	}
	return nil
}

// Generate godoc
// @Summary Generate an attendance report
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateReportRequest true "Report scope"
// @Success 201 {object} dto.ReportResponse
// @Router /reports/generate [post]
func (controller *ReportController) Generate(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.GenerateReportRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	report, errGenerate := controller.ReportService.Generate(c.Request().Context(), id, requestData)
	if errGenerate != nil {
		return controller.ErrorResponse(c, errGenerate)
	}
	return controller.CreatedResponse(c, report, "generate report success")
}

func (controller *ReportController) Recalculate(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	reportID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	report, errRecalculate := controller.ReportService.Recalculate(c.Request().Context(), id, reportID)
	if errRecalculate != nil {
		return controller.ErrorResponse(c, errRecalculate)
	}
	return controller.SuccessResponse(c, report, "recalculate report success")
}

func (controller *ReportController) Get(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	reportID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	report, errGet := controller.ReportService.Get(c.Request().Context(), id, reportID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, report, "get report success")
}

func (controller *ReportController) List(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	query := new(dto.ReportListQuery)
	if err := controller.bind(c, query); err != nil {
		return err
	}

	reports, errList := controller.ReportService.List(c.Request().Context(), id, mapper.ToFilter(query), *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, reports, "get reports success")
}

func (controller *ReportController) Mine(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}

	reports, errList := controller.ReportService.Mine(c.Request().Context(), id, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, reports, "get my reports success")
}

func (controller *ReportController) QuickStats(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	query := new(dto.QuickStatsQuery)
	if err := controller.bind(c, query); err != nil {
		return err
	}

	stats, errStats := controller.ReportService.QuickStats(c.Request().Context(), id, query)
	if errStats != nil {
		return controller.ErrorResponse(c, errStats)
	}
	return controller.SuccessResponse(c, stats, "get report stats success")
}

func (controller *ReportController) RequestExport(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	reportID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	export, errExport := controller.ReportService.RequestExport(c.Request().Context(), id, reportID)
	if errExport != nil {
		return controller.ErrorResponse(c, errExport)
	}
	return controller.SuccessResponse(c, export, "export requested")
}

func (controller *ReportController) GetExport(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	reportID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	export, errExport := controller.ReportService.GetExport(c.Request().Context(), id, reportID)
	if errExport != nil {
		return controller.ErrorResponse(c, errExport)
	}
	return controller.SuccessResponse(c, export, "get export success")
}
