package dto

import (
	"time"
	"trainhub-api/core/dto"
	"trainhub-api/core/timeofday"

	"github.com/google/uuid"
)

type DistributionRequest struct {
	TrainingID uuid.UUID  `json:"training_id" validate:"required"`
	GroupID    *uuid.UUID `json:"group_id"`
	TeacherID  *uuid.UUID `json:"teacher_id"`
	Month      int        `json:"month" validate:"required,min=1,max=12"`
	Week       int        `json:"week" validate:"required,min=1,max=5"`
	Title      string     `json:"title" validate:"required,notblank,max=255"`
	Objectives string     `json:"objectives"`
}

type DistributionResponse struct {
	ID         uuid.UUID  `json:"id"`
	TrainingID uuid.UUID  `json:"training_id"`
	GroupID    *uuid.UUID `json:"group_id"`
	TeacherID  uuid.UUID  `json:"teacher_id"`
	Month      int        `json:"month"`
	Week       int        `json:"week"`
	Title      string     `json:"title"`
	Objectives string     `json:"objectives"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ControlRequest struct {
	TrainingID     uuid.UUID  `json:"training_id" validate:"required"`
	GroupID        *uuid.UUID `json:"group_id"`
	DistributionID *uuid.UUID `json:"distribution_id"`
	Title          string     `json:"title" validate:"required,notblank,max=255"`
	ControlDate    string     `json:"control_date" validate:"required,datetime=2006-01-02"`
	TotalPoints    float64    `json:"total_points" validate:"required,gt=0,lte=1000"`
}

type ControlResponse struct {
	ID             uuid.UUID  `json:"id"`
	TrainingID     uuid.UUID  `json:"training_id"`
	GroupID        *uuid.UUID `json:"group_id"`
	DistributionID *uuid.UUID `json:"distribution_id"`
	Title          string     `json:"title"`
	ControlDate    string     `json:"control_date"`
	TotalPoints    float64    `json:"total_points"`
	CreatedBy      *uuid.UUID `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type ExerciseRequest struct {
	TrainingID     uuid.UUID  `json:"training_id" validate:"required"`
	DistributionID *uuid.UUID `json:"distribution_id"`
	ControlID      *uuid.UUID `json:"control_id"`
	Title          string     `json:"title" validate:"required,notblank,max=255"`
	Description    string     `json:"description"`
	DueDate        string     `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	MaxPoints      float64    `json:"max_points" validate:"omitempty,gt=0,lte=1000"`
}

type ExerciseResponse struct {
	ID             uuid.UUID  `json:"id"`
	TrainingID     uuid.UUID  `json:"training_id"`
	DistributionID *uuid.UUID `json:"distribution_id"`
	ControlID      *uuid.UUID `json:"control_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	DueDate        *string    `json:"due_date"`
	MaxPoints      float64    `json:"max_points"`
	CreatedBy      *uuid.UUID `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type SubmissionRequest struct {
	ExerciseID uuid.UUID `json:"exercise_id" validate:"required"`
	Content    string    `json:"content" validate:"required,notblank"`
}

type ReviewRequest struct {
	Status   string `json:"status" validate:"required,oneof=reviewed returned"`
	Feedback string `json:"feedback"`
}

type SubmissionResponse struct {
	ID         uuid.UUID  `json:"id"`
	ExerciseID uuid.UUID  `json:"exercise_id"`
	StudentID  uuid.UUID  `json:"student_id"`
	Content    string     `json:"content"`
	Status     string     `json:"status"`
	Feedback   string     `json:"feedback"`
	ReviewedBy *uuid.UUID `json:"reviewed_by"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type MarkRequest struct {
	ExerciseID uuid.UUID `json:"exercise_id" validate:"required"`
	StudentID  uuid.UUID `json:"student_id" validate:"required"`
	Value      float64   `json:"value" validate:"gte=0"`
	Feedback   string    `json:"feedback"`
}

type MarkResponse struct {
	ID         uuid.UUID  `json:"id"`
	ExerciseID uuid.UUID  `json:"exercise_id"`
	StudentID  uuid.UUID  `json:"student_id"`
	Value      float64    `json:"value"`
	Feedback   string     `json:"feedback"`
	GradedBy   *uuid.UUID `json:"graded_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ProgressLogRequest struct {
	TrainingID     uuid.UUID  `json:"training_id" validate:"required"`
	GroupID        *uuid.UUID `json:"group_id"`
	DistributionID *uuid.UUID `json:"distribution_id"`
	SessionDate    string     `json:"session_date" validate:"required,datetime=2006-01-02"`
	SessionTime    string     `json:"session_time" validate:"required,hhmm"`
	TopicsCovered  string     `json:"topics_covered" validate:"required,notblank"`
	Feedback       string     `json:"feedback"`
}

type ProgressLogResponse struct {
	ID             uuid.UUID      `json:"id"`
	TeacherID      uuid.UUID      `json:"teacher_id"`
	TrainingID     uuid.UUID      `json:"training_id"`
	GroupID        *uuid.UUID     `json:"group_id"`
	DistributionID *uuid.UUID     `json:"distribution_id"`
	SessionDate    string         `json:"session_date"`
	SessionTime    timeofday.Time `json:"session_time"`
	TopicsCovered  string         `json:"topics_covered"`
	Feedback       string         `json:"feedback"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type AttendanceRecord struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present late excused absent"`
	Note      string    `json:"note" validate:"max=500"`
}

// BulkAttendanceRequest records every listed student for one session.
type BulkAttendanceRequest struct {
	ScheduleID  uuid.UUID          `json:"schedule_id" validate:"required"`
	SessionDate string             `json:"session_date" validate:"required,datetime=2006-01-02"`
	Records     []AttendanceRecord `json:"records" validate:"required,min=1,max=200,dive"`
}

type AttendanceResponse struct {
	ID          uuid.UUID  `json:"id"`
	ScheduleID  uuid.UUID  `json:"schedule_id"`
	StudentID   uuid.UUID  `json:"student_id"`
	SessionDate string     `json:"session_date"`
	Status      string     `json:"status"`
	Note        string     `json:"note"`
	RecordedBy  *uuid.UUID `json:"recorded_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TrainingListQuery is bound from the query string of the training listings.
type TrainingListQuery struct {
	TrainingID     string `query:"training_id" validate:"omitempty,uuid"`
	GroupID        string `query:"group_id" validate:"omitempty,uuid"`
	TeacherID      string `query:"teacher_id" validate:"omitempty,uuid"`
	StudentID      string `query:"student_id" validate:"omitempty,uuid"`
	ExerciseID     string `query:"exercise_id" validate:"omitempty,uuid"`
	ControlID      string `query:"control_id" validate:"omitempty,uuid"`
	DistributionID string `query:"distribution_id" validate:"omitempty,uuid"`
	ScheduleID     string `query:"schedule_id" validate:"omitempty,uuid"`
	CenterID       string `query:"center_id" validate:"omitempty,uuid"`
	Month          int    `query:"month" validate:"omitempty,min=1,max=12"`
	Status         string `query:"status" validate:"omitempty,max=20"`
	From           string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To             string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

type (
	PaginatedDistributionResponse = dto.Pagination[DistributionResponse]
	PaginatedControlResponse      = dto.Pagination[ControlResponse]
	PaginatedExerciseResponse     = dto.Pagination[ExerciseResponse]
	PaginatedSubmissionResponse   = dto.Pagination[SubmissionResponse]
	PaginatedMarkResponse         = dto.Pagination[MarkResponse]
	PaginatedProgressLogResponse  = dto.Pagination[ProgressLogResponse]
	PaginatedAttendanceResponse   = dto.Pagination[AttendanceResponse]
)
