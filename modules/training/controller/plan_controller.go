package controller

import (
	"trainhub-api/core/params"
	"trainhub-api/modules/training/dto"

	"github.com/labstack/echo/v4"
)

func (controller *TrainingController) CreateDistribution(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.DistributionRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	distribution, errCreate := controller.TrainingService.CreateDistribution(c.Request().Context(), id, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, distribution, "create distribution success")
}

func (controller *TrainingController) UpdateDistribution(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	distributionID, err := controller.pathID(c)
	if err != nil {
		return err
	}
	requestData := new(dto.DistributionRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	distribution, errUpdate := controller.TrainingService.UpdateDistribution(c.Request().Context(), id, distributionID, requestData)
	if errUpdate != nil {
		return controller.ErrorResponse(c, errUpdate)
	}
	return controller.SuccessResponse(c, distribution, "update distribution success")
}

func (controller *TrainingController) DeleteDistribution(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	distributionID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.TrainingService.DeleteDistribution(c.Request().Context(), id, distributionID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "delete distribution success")
}

func (controller *TrainingController) GetDistribution(c echo.Context) error {
	distributionID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	distribution, errGet := controller.TrainingService.GetDistribution(c.Request().Context(), distributionID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, distribution, "get distribution success")
}

func (controller *TrainingController) ListDistributions(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	filter, err := controller.listFilter(c)
	if err != nil {
		return err
	}

	distributions, errList := controller.TrainingService.ListDistributions(c.Request().Context(), id, filter, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, distributions, "get distributions success")
}

func (controller *TrainingController) CreateControl(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.ControlRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	control, errCreate := controller.TrainingService.CreateControl(c.Request().Context(), id, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, control, "create control success")
}

func (controller *TrainingController) UpdateControl(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	controlID, err := controller.pathID(c)
	if err != nil {
		return err
	}
	requestData := new(dto.ControlRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	control, errUpdate := controller.TrainingService.UpdateControl(c.Request().Context(), id, controlID, requestData)
	if errUpdate != nil {
		return controller.ErrorResponse(c, errUpdate)
	}
	return controller.SuccessResponse(c, control, "update control success")
}

func (controller *TrainingController) DeleteControl(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	controlID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.TrainingService.DeleteControl(c.Request().Context(), id, controlID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "delete control success")
}

func (controller *TrainingController) GetControl(c echo.Context) error {
	controlID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	control, errGet := controller.TrainingService.GetControl(c.Request().Context(), controlID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, control, "get control success")
}

func (controller *TrainingController) ListControls(c echo.Context) error {
	filter, err := controller.listFilter(c)
	if err != nil {
		return err
	}

	controls, errList := controller.TrainingService.ListControls(c.Request().Context(), filter, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, controls, "get controls success")
}

func (controller *TrainingController) CreateExercise(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.ExerciseRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	exercise, errCreate := controller.TrainingService.CreateExercise(c.Request().Context(), id, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, exercise, "create exercise success")
}

func (controller *TrainingController) UpdateExercise(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	exerciseID, err := controller.pathID(c)
	if err != nil {
		return err
	}
	requestData := new(dto.ExerciseRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	exercise, errUpdate := controller.TrainingService.UpdateExercise(c.Request().Context(), id, exerciseID, requestData)
	if errUpdate != nil {
		return controller.ErrorResponse(c, errUpdate)
	}
	return controller.SuccessResponse(c, exercise, "update exercise success")
}

func (controller *TrainingController) DeleteExercise(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	exerciseID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.TrainingService.DeleteExercise(c.Request().Context(), id, exerciseID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "delete exercise success")
}

func (controller *TrainingController) GetExercise(c echo.Context) error {
	exerciseID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	exercise, errGet := controller.TrainingService.GetExercise(c.Request().Context(), exerciseID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, exercise, "get exercise success")
}

func (controller *TrainingController) ListExercises(c echo.Context) error {
	filter, err := controller.listFilter(c)
	if err != nil {
		return err
	}

	exercises, errList := controller.TrainingService.ListExercises(c.Request().Context(), filter, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, exercises, "get exercises success")
}
