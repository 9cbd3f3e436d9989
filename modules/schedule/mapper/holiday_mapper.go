package mapper

import (
	"time"
	"trainhub-api/core/constants"
	"trainhub-api/modules/schedule/dto"
	"trainhub-api/modules/schedule/entity"
)

func ToHolidayEntity(req *dto.HolidayRequest) (*entity.Holiday, error) {
	start, err := time.Parse(constants.DateLayout, req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(constants.DateLayout, req.EndDate)
	if err != nil {
		return nil, err
	}
	return &entity.Holiday{
		CenterID:    req.CenterID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		IsRecurring: req.IsRecurring,
	}, nil
}

func ToHolidayResponse(h *entity.Holiday) *dto.HolidayResponse {
	return &dto.HolidayResponse{
		ID:          h.ID,
		CenterID:    h.CenterID,
		Name:        h.Name,
		Description: h.Description,
		StartDate:   h.StartDate.Format(constants.DateLayout),
		EndDate:     h.EndDate.Format(constants.DateLayout),
		IsRecurring: h.IsRecurring,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func ToHolidayResponses(items []entity.Holiday) []dto.HolidayResponse {
	out := make([]dto.HolidayResponse, len(items))
	for i := range items {
		out[i] = *ToHolidayResponse(&items[i])
	}
	return out
}
