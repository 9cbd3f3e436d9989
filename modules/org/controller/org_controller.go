package controller

import (
	"trainhub-api/core/params"
	"trainhub-api/modules/org/dto"

	"github.com/labstack/echo/v4"
)

func (controller *OrgController) CreateCity(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.CityRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	city, errCreate := controller.OrgService.CreateCity(c.Request().Context(), id, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, city, "create city success")
}

func (controller *OrgController) UpdateCity(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	cityID, err := controller.pathID(c)
	if err != nil {
		return err
	}
	requestData := new(dto.CityRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	city, errUpdate := controller.OrgService.UpdateCity(c.Request().Context(), id, cityID, requestData)
	if errUpdate != nil {
		return controller.ErrorResponse(c, errUpdate)
	}
	return controller.SuccessResponse(c, city, "update city success")
}

func (controller *OrgController) DeleteCity(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	cityID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.OrgService.DeleteCity(c.Request().Context(), id, cityID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "delete city success")
}

func (controller *OrgController) GetCity(c echo.Context) error {
	cityID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	city, errGet := controller.OrgService.GetCity(c.Request().Context(), cityID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, city, "get city success")
}

func (controller *OrgController) ListCities(c echo.Context) error {
	cities, errList := controller.OrgService.ListCities(c.Request().Context(), *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, cities, "get cities success")
}

func (controller *OrgController) CreateAssociation(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.AssociationRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	association, errCreate := controller.OrgService.CreateAssociation(c.Request().Context(), id, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, association, "create association success")
}

func (controller *OrgController) UpdateAssociation(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	associationID, err := controller.pathID(c)
	if err != nil {
		return err
	}
	requestData := new(dto.AssociationRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	association, errUpdate := controller.OrgService.UpdateAssociation(c.Request().Context(), id, associationID, requestData)
	if errUpdate != nil {
		return controller.ErrorResponse(c, errUpdate)
	}
	return controller.SuccessResponse(c, association, "update association success")
}

func (controller *OrgController) DeleteAssociation(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	associationID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.OrgService.DeleteAssociation(c.Request().Context(), id, associationID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "delete association success")
}

func (controller *OrgController) GetAssociation(c echo.Context) error {
	associationID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	association, errGet := controller.OrgService.GetAssociation(c.Request().Context(), associationID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, association, "get association success")
}

func (controller *OrgController) ListAssociations(c echo.Context) error {
	filter, err := controller.listFilter(c)
	if err != nil {
		return err
	}

	associations, errList := controller.OrgService.ListAssociations(c.Request().Context(), filter, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, associations, "get associations success")
}

func (controller *OrgController) CreateCenter(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.CenterRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	center, errCreate := controller.OrgService.CreateCenter(c.Request().Context(), id, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, center, "create center success")
}

func (controller *OrgController) UpdateCenter(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	centerID, err := controller.pathID(c)
	if err != nil {
		return err
	}
	requestData := new(dto.CenterRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	center, errUpdate := controller.OrgService.UpdateCenter(c.Request().Context(), id, centerID, requestData)
	if errUpdate != nil {
		return controller.ErrorResponse(c, errUpdate)
	}
	return controller.SuccessResponse(c, center, "update center success")
}

func (controller *OrgController) DeleteCenter(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	centerID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.OrgService.DeleteCenter(c.Request().Context(), id, centerID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "delete center success")
}

func (controller *OrgController) GetCenter(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	centerID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	center, errGet := controller.OrgService.GetCenter(c.Request().Context(), id, centerID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, center, "get center success")
}

func (controller *OrgController) ListCenters(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	filter, err := controller.listFilter(c)
	if err != nil {
		return err
	}

	centers, errList := controller.OrgService.ListCenters(c.Request().Context(), id, filter, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, centers, "get centers success")
}

func (controller *OrgController) CreateTraining(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.TrainingRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	training, errCreate := controller.OrgService.CreateTraining(c.Request().Context(), id, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, training, "create training success")
}

func (controller *OrgController) UpdateTraining(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	trainingID, err := controller.pathID(c)
	if err != nil {
		return err
	}
	requestData := new(dto.TrainingRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	training, errUpdate := controller.OrgService.UpdateTraining(c.Request().Context(), id, trainingID, requestData)
	if errUpdate != nil {
		return controller.ErrorResponse(c, errUpdate)
	}
	return controller.SuccessResponse(c, training, "update training success")
}

func (controller *OrgController) DeleteTraining(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	trainingID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.OrgService.DeleteTraining(c.Request().Context(), id, trainingID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "delete training success")
}

func (controller *OrgController) GetTraining(c echo.Context) error {
	trainingID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	training, errGet := controller.OrgService.GetTraining(c.Request().Context(), trainingID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, training, "get training success")
}

func (controller *OrgController) ListTrainings(c echo.Context) error {
	trainings, errList := controller.OrgService.ListTrainings(c.Request().Context(), *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, trainings, "get trainings success")
}

// MyTrainings
// @Summary Trainings of the current teacher
// @Tags Org
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /trainings/me [get]
func (controller *OrgController) MyTrainings(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}

	trainings, errList := controller.OrgService.MyTrainings(c.Request().Context(), id)
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, trainings, "get trainings success")
}
