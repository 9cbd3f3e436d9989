package dto

import (
	"time"
	"trainhub-api/core/timeofday"

	"github.com/google/uuid"
)

type AvailabilityRequest struct {
	// TeacherID defaults to the caller when a teacher manages their own windows.
	TeacherID   *uuid.UUID `json:"teacher_id"`
	DayOfWeek   string     `json:"day_of_week" validate:"required,weekday"`
	StartTime   string     `json:"start_time" validate:"required,hhmm"`
	EndTime     string     `json:"end_time" validate:"required,hhmm"`
	IsAvailable *bool      `json:"is_available"`
}

type AvailabilityResponse struct {
	ID          uuid.UUID      `json:"id"`
	TeacherID   uuid.UUID      `json:"teacher_id"`
	DayOfWeek   string         `json:"day_of_week"`
	StartTime   timeofday.Time `json:"start_time"`
	EndTime     timeofday.Time `json:"end_time"`
	IsAvailable bool           `json:"is_available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
