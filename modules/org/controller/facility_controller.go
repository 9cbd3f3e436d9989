package controller

import (
	"trainhub-api/core/params"
	"trainhub-api/modules/org/dto"

	"github.com/labstack/echo/v4"
)

func (controller *OrgController) CreateRoom(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.RoomRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	room, errCreate := controller.OrgService.CreateRoom(c.Request().Context(), id, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, room, "create room success")
}

func (controller *OrgController) UpdateRoom(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	roomID, err := controller.pathID(c)
	if err != nil {
		return err
	}
	requestData := new(dto.RoomRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	room, errUpdate := controller.OrgService.UpdateRoom(c.Request().Context(), id, roomID, requestData)
	if errUpdate != nil {
		return controller.ErrorResponse(c, errUpdate)
	}
	return controller.SuccessResponse(c, room, "update room success")
}

func (controller *OrgController) DeleteRoom(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	roomID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.OrgService.DeleteRoom(c.Request().Context(), id, roomID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "delete room success")
}

func (controller *OrgController) GetRoom(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	roomID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	room, errGet := controller.OrgService.GetRoom(c.Request().Context(), id, roomID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, room, "get room success")
}

func (controller *OrgController) ListRooms(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	filter, err := controller.listFilter(c)
	if err != nil {
		return err
	}

	rooms, errList := controller.OrgService.ListRooms(c.Request().Context(), id, filter, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, rooms, "get rooms success")
}

func (controller *OrgController) CreateMaterial(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.MaterialRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	material, errCreate := controller.OrgService.CreateMaterial(c.Request().Context(), id, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, material, "create material success")
}

func (controller *OrgController) UpdateMaterial(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	materialID, err := controller.pathID(c)
	if err != nil {
		return err
	}
	requestData := new(dto.MaterialRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	material, errUpdate := controller.OrgService.UpdateMaterial(c.Request().Context(), id, materialID, requestData)
	if errUpdate != nil {
		return controller.ErrorResponse(c, errUpdate)
	}
	return controller.SuccessResponse(c, material, "update material success")
}

func (controller *OrgController) DeleteMaterial(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	materialID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.OrgService.DeleteMaterial(c.Request().Context(), id, materialID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "delete material success")
}

func (controller *OrgController) GetMaterial(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	materialID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	material, errGet := controller.OrgService.GetMaterial(c.Request().Context(), id, materialID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, material, "get material success")
}

func (controller *OrgController) ListMaterials(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	filter, err := controller.listFilter(c)
	if err != nil {
		return err
	}

	materials, errList := controller.OrgService.ListMaterials(c.Request().Context(), id, filter, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, materials, "get materials success")
}

func (controller *OrgController) CreateGroup(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	requestData := new(dto.GroupRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	group, errCreate := controller.OrgService.CreateGroup(c.Request().Context(), id, requestData)
	if errCreate != nil {
		return controller.ErrorResponse(c, errCreate)
	}
	return controller.CreatedResponse(c, group, "create group success")
}

func (controller *OrgController) UpdateGroup(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	groupID, err := controller.pathID(c)
	if err != nil {
		return err
	}
	requestData := new(dto.GroupRequest)
	if err := controller.bind(c, requestData); err != nil {
		return err
	}

	group, errUpdate := controller.OrgService.UpdateGroup(c.Request().Context(), id, groupID, requestData)
	if errUpdate != nil {
		return controller.ErrorResponse(c, errUpdate)
	}
	return controller.SuccessResponse(c, group, "update group success")
}

func (controller *OrgController) DeleteGroup(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	groupID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	if errDelete := controller.OrgService.DeleteGroup(c.Request().Context(), id, groupID); errDelete != nil {
		return controller.ErrorResponse(c, errDelete)
	}
	return controller.SuccessResponse(c, nil, "delete group success")
}

func (controller *OrgController) GetGroup(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	groupID, err := controller.pathID(c)
	if err != nil {
		return err
	}

	group, errGet := controller.OrgService.GetGroup(c.Request().Context(), id, groupID)
	if errGet != nil {
		return controller.ErrorResponse(c, errGet)
	}
	return controller.SuccessResponse(c, group, "get group success")
}

func (controller *OrgController) ListGroups(c echo.Context) error {
	id, err := controller.identity(c)
	if err != nil {
		return err
	}
	filter, err := controller.listFilter(c)
	if err != nil {
		return err
	}

	groups, errList := controller.OrgService.ListGroups(c.Request().Context(), id, filter, *params.NewQueryParams(c))
	if errList != nil {
		return controller.ErrorResponse(c, errList)
	}
	return controller.SuccessResponse(c, groups, "get groups success")
}
