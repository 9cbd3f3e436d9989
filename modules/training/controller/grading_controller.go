package controller

import (
	"trainhub-api/core/params"
	"trainhub-api/modules/training/dto"

	"github.com/labstack/echo/v4"
)

func (controller *TrainingController) Submit(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.SubmissionRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	submission, errSubmit := controller.TrainingService.Submit(c.Request().Context(), id, requestData)
	if errSubmit != nil {
		return controller.ErrorResponse(c, errSubmit)
	}
	return controller.CreatedResponse(c, submission, "submit exercise success")
}

func (controller *TrainingController) ReviewSubmission(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	submissionID, err := controller.pathID(c)
	if err != nil {
		return err
	}
	requestData := new(dto.ReviewRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	submission, errReview := controller.TrainingService.ReviewSubmission(c.Request().Context(), id, submissionID, requestData)
	if errReview != nil {
		return controller.ErrorResponse(c, errReview)
	}
	return controller.SuccessResponse(c, submission, "review submission success")
}

func (controller *TrainingController) GetSubmission(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	submissionID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	submission, errGet := controller.TrainingService.GetSubmission(c.Request().Context(), id, submissionID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, submission, "get submission success")
}

func (controller *TrainingController) ListSubmissions(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	filter, err := controller.listFilter(c)
	if err != nil {
		return err
	}

	submissions, errList := controller.TrainingService.ListSubmissions(c.Request().Context(), id, filter, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, submissions, "get submissions success")
}

func (controller *TrainingController) GradeExercise(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.MarkRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	mark, errGrade := controller.TrainingService.GradeExercise(c.Request().Context(), id, requestData)
	if errGrade != nil {
		return controller.ErrorResponse(c, errGrade)
	}
	return controller.CreatedResponse(c, mark, "grade exercise success")
}

func (controller *TrainingController) DeleteMark(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	markID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.TrainingService.DeleteMark(c.Request().Context(), id, markID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "delete mark success")
}

func (controller *TrainingController) ListMarks(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	filter, err := controller.listFilter(c)
	if err != nil {
		return err
	}

	marks, errList := controller.TrainingService.ListMarks(c.Request().Context(), id, filter, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, marks, "get marks success")
}

func (controller *TrainingController) LogProgress(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.ProgressLogRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	progress, errLog := controller.TrainingService.LogProgress(c.Request().Context(), id, requestData)
	if errLog != nil {
		return controller.ErrorResponse(c, errLog)
	}
	return controller.CreatedResponse(c, progress, "log progress success")
}

func (controller *TrainingController) DeleteProgressLog(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	logID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.TrainingService.DeleteProgressLog(c.Request().Context(), id, logID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "delete progress log success")
}

func (controller *TrainingController) ListProgressLogs(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	filter, err := controller.listFilter(c)
	if err != nil {
		return err
	}

	logs, errList := controller.TrainingService.ListProgressLogs(c.Request().Context(), id, filter, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, logs, "get progress logs success")
}

// RecordAttendance godoc
// @Summary Record the attendance of one session occurrence
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkAttendanceRequest true "Roll call"
// @Success 201 {array} dto.AttendanceResponse
// @Router /attendance/bulk [post]
func (controller *TrainingController) RecordAttendance(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.BulkAttendanceRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	rows, errRecord := controller.TrainingService.RecordAttendance(c.Request().Context(), id, requestData)
	if errRecord != nil {
		return controller.ErrorResponse(c, errRecord)
	}
	return controller.CreatedResponse(c, rows, "record attendance success")
}

func (controller *TrainingController) ListAttendance(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	filter, err := controller.listFilter(c)
	if err != nil {
		return err
	}

	rows, errList := controller.TrainingService.ListAttendance(c.Request().Context(), id, filter, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, rows, "get attendance success")
}
