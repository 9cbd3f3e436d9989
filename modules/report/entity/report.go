package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
	"trainhub-api/core/entity"

	"github.com/google/uuid"
)

type ReportType string

const (
	ReportStudent ReportType = "student"
	ReportTeacher ReportType = "teacher"
	ReportGroup   ReportType = "group"
	ReportCenter  ReportType = "center"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodCustom  Period = "custom"
)

type ExportStatus string

const (
	ExportNone    ExportStatus = "none"
	ExportPending ExportStatus = "pending"
	ExportReady   ExportStatus = "ready"
	ExportFailed  ExportStatus = "failed"
)

// Breakdown maps a table name such as "by_subject" to key → attendance rate.
type Breakdown map[string]map[string]float64

func (b Breakdown) Value() (driver.Value, error) {
	if b == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(b)
}

func (b *Breakdown) Scan(value any) error {
	if value == nil {
		*b = Breakdown{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(raw, b)
}

// Stats is the result of aggregating attendance rows.
type Stats struct {
	Total     int       `db:"total_sessions"`
	Present   int       `db:"attended_sessions"`
	Late      int       `db:"late_sessions"`
	Excused   int       `db:"excused_absences"`
	Unexcused int       `db:"unexcused_absences"`
	Rate      float64   `db:"attendance_rate"`
	Breakdown Breakdown `db:"data"`
}

type Report struct {
	ReferenceCode string       `db:"reference_code"`
	Type          ReportType   `db:"report_type"`
	Period        Period       `db:"period"`
	StartDate     time.Time    `db:"start_date"`
	EndDate       time.Time    `db:"end_date"`
	StudentID     *uuid.UUID   `db:"student_id"`
	TeacherID     *uuid.UUID   `db:"teacher_id"`
	GroupID       *uuid.UUID   `db:"group_id"`
	CenterID      *uuid.UUID   `db:"center_id"`
	TrainingID    *uuid.UUID   `db:"training_id"`
	Notes         string       `db:"notes"`
	GeneratedBy   *uuid.UUID   `db:"generated_by"`
	GeneratedAt   time.Time    `db:"generated_at"`
	ExportStatus  ExportStatus `db:"export_status"`
	ExportKey     *string      `db:"export_key"`
	ExportedAt    *time.Time   `db:"exported_at"`
	Stats
	entity.BaseEntity
}

// TargetID returns the id the report is about.
func (r *Report) TargetID() *uuid.UUID {
	switch r.Type {
	case ReportStudent:
		return r.StudentID
	case ReportTeacher:
		return r.TeacherID
	case ReportGroup:
		return r.GroupID
	case ReportCenter:
		return r.CenterID
	}
	return nil
}

// AttendanceRow is one recorded attendance with the labels breakdowns group by.
type AttendanceRow struct {
	StudentID    uuid.UUID `db:"student_id"`
	StudentEmail string    `db:"student_email"`
	Subject      string    `db:"subject"`
	GroupName    string    `db:"group_name"`
	TrainingName string    `db:"training_name"`
	SessionDate  time.Time `db:"session_date"`
	Status       string    `db:"status"`
}

// Scope selects the attendance rows a report covers.
type Scope struct {
	Type       ReportType
	TargetID   uuid.UUID
	TrainingID *uuid.UUID
	From       time.Time
	To         time.Time
}

// Visibility restricts report listings. Nil fields do not filter.
type Visibility struct {
	CenterID      *uuid.UUID
	AssociationID *uuid.UUID
	TeacherID     *uuid.UUID
	StudentID     *uuid.UUID
}

type Filter struct {
	Visibility
	Type       ReportType
	Period     Period
	TrainingID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// Target is the user, group or center a report is generated for, with the
// center and association it belongs to.
type Target struct {
	ID            uuid.UUID  `db:"id"`
	Role          string     `db:"role"`
	CenterID      *uuid.UUID `db:"center_id"`
	AssociationID *uuid.UUID `db:"association_id"`
}

type QuickStats struct {
	TotalReports     int     `db:"total_reports"`
	AverageRate      float64 `db:"average_rate"`
	TotalSessions    int     `db:"total_sessions"`
	AttendedSessions int     `db:"attended_sessions"`
}

type PaginatedReports = entity.Pagination[Report]
