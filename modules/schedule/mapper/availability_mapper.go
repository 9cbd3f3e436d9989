package mapper

import (
	"trainhub-api/core/timeofday"
	"trainhub-api/modules/schedule/dto"
	"trainhub-api/modules/schedule/entity"

	"github.com/google/uuid"
)

func ToAvailabilityEntity(req *dto.AvailabilityRequest, teacherID uuid.UUID) (*entity.TeacherAvailability, error) {
	day, err := entity.ParseWeekday(req.DayOfWeek)
	if err != nil {
		return nil, err
	}
	start, err := timeofday.Parse(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := timeofday.Parse(req.EndTime)
	if err != nil {
		return nil, err
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	return &entity.TeacherAvailability{
		TeacherID:   teacherID,
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: available,
	}, nil
}

func ToAvailabilityResponse(a *entity.TeacherAvailability) *dto.AvailabilityResponse {
	return &dto.AvailabilityResponse{
		ID:          a.ID,
		TeacherID:   a.TeacherID,
		DayOfWeek:   string(a.DayOfWeek),
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		IsAvailable: a.IsAvailable,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func ToAvailabilityResponses(items []entity.TeacherAvailability) []dto.AvailabilityResponse {
	out := make([]dto.AvailabilityResponse, len(items))
	for i := range items {
		out[i] = *ToAvailabilityResponse(&items[i])
	}
	return out
}
