package entity

import (
	"time"
	"trainhub-api/core/authz"
	"trainhub-api/core/entity"
	"trainhub-api/core/timeofday"

	"github.com/google/uuid"
)

// Distribution is one week of a teacher's annual plan for a training.
type Distribution struct {
	TrainingID uuid.UUID  `db:"training_id"`
	GroupID    *uuid.UUID `db:"group_id"`
	TeacherID  uuid.UUID  `db:"teacher_id"`
	Month      int        `db:"month"`
	Week       int        `db:"week"`
	Title      string     `db:"title"`
	Objectives string     `db:"objectives"`
	entity.BaseEntity
}

// Control is a graded exam; exercises may point at it.
type Control struct {
	TrainingID     uuid.UUID  `db:"training_id"`
	GroupID        *uuid.UUID `db:"group_id"`
	DistributionID *uuid.UUID `db:"distribution_id"`
	Title          string     `db:"title"`
	ControlDate    time.Time  `db:"control_date"`
	TotalPoints    float64    `db:"total_points"`
	CreatedBy      *uuid.UUID `db:"created_by"`
	entity.BaseEntity
}

type Exercise struct {
	TrainingID     uuid.UUID  `db:"training_id"`
	DistributionID *uuid.UUID `db:"distribution_id"`
	ControlID      *uuid.UUID `db:"control_id"`
	Title          string     `db:"title"`
	Description    string     `db:"description"`
	DueDate        *time.Time `db:"due_date"`
	MaxPoints      float64    `db:"max_points"`
	CreatedBy      *uuid.UUID `db:"created_by"`
	entity.BaseEntity
}

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionReviewed  SubmissionStatus = "reviewed"
	SubmissionReturned  SubmissionStatus = "returned"
)

type Submission struct {
	ExerciseID uuid.UUID        `db:"exercise_id"`
	StudentID  uuid.UUID        `db:"student_id"`
	Content    string           `db:"content"`
	Status     SubmissionStatus `db:"status"`
	Feedback   string           `db:"feedback"`
	ReviewedBy *uuid.UUID       `db:"reviewed_by"`
	ReviewedAt *time.Time       `db:"reviewed_at"`
	entity.BaseEntity
}

// Mark is a student's grade on an exercise, at most the exercise's max points.
type Mark struct {
	ExerciseID uuid.UUID  `db:"exercise_id"`
	StudentID  uuid.UUID  `db:"student_id"`
	Value      float64    `db:"value"`
	Feedback   string     `db:"feedback"`
	GradedBy   *uuid.UUID `db:"graded_by"`
	entity.BaseEntity
}

type ProgressLog struct {
	TeacherID      uuid.UUID      `db:"teacher_id"`
	TrainingID     uuid.UUID      `db:"training_id"`
	GroupID        *uuid.UUID     `db:"group_id"`
	DistributionID *uuid.UUID     `db:"distribution_id"`
	SessionDate    time.Time      `db:"session_date"`
	SessionTime    timeofday.Time `db:"session_time"`
	TopicsCovered  string         `db:"topics_covered"`
	Feedback       string         `db:"feedback"`
	entity.BaseEntity
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
	AttendanceAbsent  AttendanceStatus = "absent"
)

type Attendance struct {
	ScheduleID  uuid.UUID        `db:"schedule_id"`
	StudentID   uuid.UUID        `db:"student_id"`
	SessionDate time.Time        `db:"session_date"`
	Status      AttendanceStatus `db:"status"`
	Note        string           `db:"note"`
	RecordedBy  *uuid.UUID       `db:"recorded_by"`
	entity.BaseEntity
}

// UserRef is the part of a user row the training rules look at.
type UserRef struct {
	ID            uuid.UUID  `db:"id"`
	Role          authz.Role `db:"role"`
	CenterID      *uuid.UUID `db:"center_id"`
	AssociationID *uuid.UUID `db:"association_id"`
	GroupID       *uuid.UUID `db:"group_id"`
}

// Session is the schedule entry attendance is recorded against, reduced to
// what decides who may take its roll.
type Session struct {
	ID            uuid.UUID  `db:"id"`
	CenterID      uuid.UUID  `db:"center_id"`
	AssociationID uuid.UUID  `db:"association_id"`
	TrainingID    uuid.UUID  `db:"training_id"`
	GroupID       *uuid.UUID `db:"group_id"`
	TeacherID     *uuid.UUID `db:"teacher_id"`
}

// Filter narrows training listings. Nil fields do not filter.
type Filter struct {
	TrainingID     *uuid.UUID
	GroupID        *uuid.UUID
	TeacherID      *uuid.UUID
	StudentID      *uuid.UUID
	ExerciseID     *uuid.UUID
	ControlID      *uuid.UUID
	DistributionID *uuid.UUID
	ScheduleID     *uuid.UUID
	CenterID       *uuid.UUID
	AssociationID  *uuid.UUID
	Month          *int
	Status         string
	From           *time.Time
	To             *time.Time
}

type (
	PaginatedDistributions = entity.Pagination[Distribution]
	PaginatedControls      = entity.Pagination[Control]
	PaginatedExercises     = entity.Pagination[Exercise]
	PaginatedSubmissions   = entity.Pagination[Submission]
	PaginatedMarks         = entity.Pagination[Mark]
	PaginatedProgressLogs  = entity.Pagination[ProgressLog]
	PaginatedAttendance    = entity.Pagination[Attendance]
)
