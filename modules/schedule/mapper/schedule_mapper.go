package mapper

import (
	"fmt"
	"time"
	"trainhub-api/core/constants"
	"trainhub-api/core/timeofday"
	"trainhub-api/core/utils"
	"trainhub-api/modules/schedule/dto"
	"trainhub-api/modules/schedule/entity"

	"github.com/google/uuid"
)

// ToScheduleEntryEntity converts a request into a new active entry. Requests
// are tag-validated first, so parse failures only come from hand-built input.
func ToScheduleEntryEntity(req *dto.ScheduleEntryRequest) (*entity.ScheduleEntry, error) {
	day, err := entity.ParseWeekday(req.DayOfWeek)
	if err != nil {
		return nil, err
	}
	start, err := timeofday.Parse(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	end, err := timeofday.Parse(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("end_time: %w", err)
	}
	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}
	endDate, err := utils.ParseDate(req.RecurrenceEndDate)
	if err != nil {
		return nil, fmt.Errorf("recurrence_end_date: %w", err)
	}

	recurrence := entity.RecurrenceType(req.RecurrenceType)
	if recurrence == "" {
		recurrence = entity.RecurrenceNone
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return &entity.ScheduleEntry{
		TrainingID:        req.TrainingID,
		CenterID:          req.CenterID,
		GroupID:           req.GroupID,
		TeacherID:         req.TeacherID,
		RoomID:            req.RoomID,
		Subject:           req.Subject,
		DayOfWeek:         day,
		StartTime:         start,
		EndTime:           end,
		IsActive:          active,
		IsRecurring:       req.IsRecurring,
		RecurrenceType:    recurrence,
		StartDate:         startDate,
		RecurrenceEndDate: endDate,
	}, nil
}

// ToExceptionEntity derives an exception of parent for one date.
func ToExceptionEntity(parent *entity.ScheduleEntry, req *dto.ExceptionRequest) (*entity.ScheduleEntry, error) {
	date, err := utils.ParseDate(req.ExceptionDate)
	if err != nil || date == nil {
		return nil, fmt.Errorf("exception_date: invalid date %q", req.ExceptionDate)
	}

	ex := *parent
	ex.ID = uuid.Nil
	ex.CreatedAt = time.Time{}
	ex.UpdatedAt = time.Time{}
	ex.IsRecurring = false
	ex.RecurrenceType = entity.RecurrenceNone
	ex.StartDate = nil
	ex.RecurrenceEndDate = nil
	ex.IsException = true
	ex.ParentID = &parent.ID
	ex.ExceptionDate = date
	ex.DayOfWeek = entity.WeekdayOf(*date)
	ex.IsActive = true

	if req.IsActive != nil {
		ex.IsActive = *req.IsActive
	}
	if req.Subject != nil {
		ex.Subject = *req.Subject
	}
	if req.TeacherID != nil {
		ex.TeacherID = req.TeacherID
	}
	if req.RoomID != nil {
		ex.RoomID = req.RoomID
	}
	if req.StartTime != nil {
		if ex.StartTime, err = timeofday.Parse(*req.StartTime); err != nil {
			return nil, fmt.Errorf("start_time: %w", err)
		}
	}
	if req.EndTime != nil {
		if ex.EndTime, err = timeofday.Parse(*req.EndTime); err != nil {
			return nil, fmt.Errorf("end_time: %w", err)
		}
	}
	return &ex, nil
}

func ToScheduleEntryResponse(e *entity.ScheduleEntry) *dto.ScheduleEntryResponse {
	return &dto.ScheduleEntryResponse{
		ID:                e.ID,
		TrainingID:        e.TrainingID,
		CenterID:          e.CenterID,
		GroupID:           e.GroupID,
		TeacherID:         e.TeacherID,
		RoomID:            e.RoomID,
		Subject:           e.Subject,
		DayOfWeek:         string(e.DayOfWeek),
		StartTime:         e.StartTime,
		EndTime:           e.EndTime,
		IsActive:          e.IsActive,
		IsRecurring:       e.IsRecurring,
		RecurrenceType:    string(e.RecurrenceType),
		StartDate:         formatDate(e.StartDate),
		RecurrenceEndDate: formatDate(e.RecurrenceEndDate),
		IsException:       e.IsException,
		ParentID:          e.ParentID,
		ExceptionDate:     formatDate(e.ExceptionDate),
		CreatedBy:         e.CreatedBy,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func ToScheduleEntryResponses(entries []entity.ScheduleEntry) []dto.ScheduleEntryResponse {
	out := make([]dto.ScheduleEntryResponse, len(entries))
	for i := range entries {
		out[i] = *ToScheduleEntryResponse(&entries[i])
	}
	return out
}

func ToSchedulePaginationResponse(p *entity.PaginatedScheduleEntries) *dto.PaginatedScheduleEntryResponse {
	if p == nil {
		return &dto.PaginatedScheduleEntryResponse{Items: []dto.ScheduleEntryResponse{}}
	}
	return &dto.PaginatedScheduleEntryResponse{
		Items:      ToScheduleEntryResponses(p.Items),
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}
}

func formatDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.Format(constants.DateLayout)
	return &s
}
