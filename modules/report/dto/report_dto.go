package dto

import (
	"time"
	"trainhub-api/core/dto"

	"github.com/google/uuid"
)

// GenerateReportRequest names one target matching report_type. end_date may
// be left out for daily, weekly and monthly periods.
type GenerateReportRequest struct {
	ReportType string     `json:"report_type" validate:"required,oneof=student teacher group center"`
	Period     string     `json:"period" validate:"required,oneof=daily weekly monthly custom"`
	StartDate  string     `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string     `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	StudentID  *uuid.UUID `json:"student_id"`
	TeacherID  *uuid.UUID `json:"teacher_id"`
	GroupID    *uuid.UUID `json:"group_id"`
	CenterID   *uuid.UUID `json:"center_id"`
	TrainingID *uuid.UUID `json:"training_id"`
	Notes      string     `json:"notes" validate:"max=2000"`
}

type ReportResponse struct {
	ID                uuid.UUID                     `json:"id"`
	ReferenceCode     string                        `json:"reference_code"`
	ReportType        string                        `json:"report_type"`
	Period            string                        `json:"period"`
	StartDate         string                        `json:"start_date"`
	EndDate           string                        `json:"end_date"`
	StudentID         *uuid.UUID                    `json:"student_id"`
	TeacherID         *uuid.UUID                    `json:"teacher_id"`
	GroupID           *uuid.UUID                    `json:"group_id"`
	CenterID          *uuid.UUID                    `json:"center_id"`
	TrainingID        *uuid.UUID                    `json:"training_id"`
	TotalSessions     int                           `json:"total_sessions"`
	AttendedSessions  int                           `json:"attended_sessions"`
	LateSessions      int                           `json:"late_sessions"`
	ExcusedAbsences   int                           `json:"excused_absences"`
	UnexcusedAbsences int                           `json:"unexcused_absences"`
	AttendanceRate    float64                       `json:"attendance_rate"`
	Data              map[string]map[string]float64 `json:"data"`
	Notes             string                        `json:"notes"`
	GeneratedBy       *uuid.UUID                    `json:"generated_by"`
	GeneratedAt       time.Time                     `json:"generated_at"`
	ExportStatus      string                        `json:"export_status"`
}

type ReportListQuery struct {
	ReportType string `query:"report_type" validate:"omitempty,oneof=student teacher group center"`
	Period     string `query:"period" validate:"omitempty,oneof=daily weekly monthly custom"`
	TrainingID string `query:"training_id" validate:"omitempty,uuid"`
	From       string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To         string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

type QuickStatsQuery struct {
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type QuickStatsResponse struct {
	StartDate             string  `json:"start_date"`
	EndDate               string  `json:"end_date"`
	TotalReports          int     `json:"total_reports"`
	AverageAttendanceRate float64 `json:"average_attendance_rate"`
	TotalSessions         int     `json:"total_sessions"`
	AttendedSessions      int     `json:"attended_sessions"`
}

type ExportResponse struct {
	ReportID     uuid.UUID  `json:"report_id"`
	ExportStatus string     `json:"export_status"`
	URL          string     `json:"url,omitempty"`
	ExportedAt   *time.Time `json:"exported_at,omitempty"`
}

type PaginatedReportResponse = dto.Pagination[ReportResponse]
