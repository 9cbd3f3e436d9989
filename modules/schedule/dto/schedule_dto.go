package dto

import (
	"time"
	"trainhub-api/core/dto"
	"trainhub-api/core/errors"
	"trainhub-api/core/timeofday"

	"github.com/google/uuid"
)

type ScheduleEntryRequest struct {
	TrainingID        uuid.UUID  `json:"training_id" validate:"required"`
	CenterID          uuid.UUID  `json:"center_id" validate:"required"`
	GroupID           *uuid.UUID `json:"group_id"`
	TeacherID         *uuid.UUID `json:"teacher_id"`
	RoomID            *uuid.UUID `json:"room_id"`
	Subject           string     `json:"subject" validate:"required,notblank,max=255"`
	DayOfWeek         string     `json:"day_of_week" validate:"required,weekday"`
	StartTime         string     `json:"start_time" validate:"required,hhmm"`
	EndTime           string     `json:"end_time" validate:"required,hhmm"`
	IsActive          *bool      `json:"is_active"`
	IsRecurring       bool       `json:"is_recurring"`
	RecurrenceType    string     `json:"recurrence_type" validate:"omitempty,recurrence"`
	StartDate         string     `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	RecurrenceEndDate string     `json:"recurrence_end_date" validate:"omitempty,datetime=2006-01-02"`
}

// ExceptionRequest overrides one occurrence of a recurring entry. Unset
// fields are copied from the parent; is_active=false cancels the occurrence.
type ExceptionRequest struct {
	ExceptionDate string     `json:"exception_date" validate:"required,datetime=2006-01-02"`
	IsActive      *bool      `json:"is_active"`
	Subject       *string    `json:"subject" validate:"omitempty,notblank,max=255"`
	TeacherID     *uuid.UUID `json:"teacher_id"`
	RoomID        *uuid.UUID `json:"room_id"`
	StartTime     *string    `json:"start_time" validate:"omitempty,hhmm"`
	EndTime       *string    `json:"end_time" validate:"omitempty,hhmm"`
}

type ScheduleEntryResponse struct {
	ID                uuid.UUID      `json:"id"`
	TrainingID        uuid.UUID      `json:"training_id"`
	CenterID          uuid.UUID      `json:"center_id"`
	GroupID           *uuid.UUID     `json:"group_id"`
	TeacherID         *uuid.UUID     `json:"teacher_id"`
	RoomID            *uuid.UUID     `json:"room_id"`
	Subject           string         `json:"subject"`
	DayOfWeek         string         `json:"day_of_week"`
	StartTime         timeofday.Time `json:"start_time"`
	EndTime           timeofday.Time `json:"end_time"`
	IsActive          bool           `json:"is_active"`
	IsRecurring       bool           `json:"is_recurring"`
	RecurrenceType    string         `json:"recurrence_type"`
	StartDate         *string        `json:"start_date"`
	RecurrenceEndDate *string        `json:"recurrence_end_date"`
	IsException       bool           `json:"is_exception"`
	ParentID          *uuid.UUID     `json:"parent_id,omitempty"`
	ExceptionDate     *string        `json:"exception_date,omitempty"`
	CreatedBy         *uuid.UUID     `json:"created_by"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type PaginatedScheduleEntryResponse = dto.Pagination[ScheduleEntryResponse]

// ScheduleListQuery is bound from the query string of GET /schedules.
type ScheduleListQuery struct {
	TrainingID string `query:"training_id" json:"training_id" validate:"omitempty,uuid"`
	CenterID   string `query:"center_id" json:"center_id" validate:"omitempty,uuid"`
	GroupID    string `query:"group_id" json:"group_id" validate:"omitempty,uuid"`
	TeacherID  string `query:"teacher_id" json:"teacher_id" validate:"omitempty,uuid"`
	RoomID     string `query:"room_id" json:"room_id" validate:"omitempty,uuid"`
	DayOfWeek  string `query:"day_of_week" json:"day_of_week" validate:"omitempty,weekday"`
	Inactive   bool   `query:"include_inactive" json:"include_inactive"`
}

type CheckAvailabilityQuery struct {
	Day       string `query:"day" json:"day" validate:"required,weekday"`
	StartTime string `query:"start_time" json:"start_time" validate:"required,hhmm"`
	EndTime   string `query:"end_time" json:"end_time" validate:"required,hhmm"`
	Teacher   string `query:"teacher" json:"teacher" validate:"omitempty,uuid"`
	Room      string `query:"room" json:"room" validate:"omitempty,uuid"`
	Group     string `query:"group" json:"group" validate:"omitempty,uuid"`
	Exclude   string `query:"exclude" json:"exclude" validate:"omitempty,uuid"`
}

type OccurrenceQuery struct {
	From string `query:"from" json:"from" validate:"required,datetime=2006-01-02"`
	To   string `query:"to" json:"to" validate:"required,datetime=2006-01-02"`
}

type ValidateEntryResponse struct {
	IsValid    bool               `json:"is_valid"`
	Code       errors.ErrorCode   `json:"code,omitempty"`
	Message    string             `json:"message,omitempty"`
	Violations []errors.Violation `json:"violations"`
}
