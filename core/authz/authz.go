// Package authz holds the closed set of roles and the role × action policy
// table every private route is checked against.
package authz

import (
	"fmt"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin            Role = "admin"
	RoleAssociationStaff Role = "association_staff"
	RoleTeacher          Role = "teacher"
	RoleStudent          Role = "student"
	RoleCenterStaff      Role = "center_staff"
)

var Roles = []Role{RoleAdmin, RoleAssociationStaff, RoleTeacher, RoleStudent, RoleCenterStaff}

func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

type Action string

const (
	ManageUsers Action = "users:manage"

	ViewOrg   Action = "org:view"
	ManageOrg Action = "org:manage"

	ViewSchedule       Action = "schedule:view"
	ManageSchedule     Action = "schedule:manage"
	ViewOwnSchedule    Action = "schedule:view_own"
	ManageAvailability Action = "availability:manage"
	ManageHolidays     Action = "holiday:manage"

	ViewTraining     Action = "training:view"
	ManageTraining   Action = "training:manage"
	SubmitExercise   Action = "submission:create"
	GradeSubmission  Action = "submission:grade"
	RecordAttendance Action = "attendance:record"
	ViewAttendance   Action = "attendance:view"
	LogProgress      Action = "progress:log"

	ViewReport     Action = "report:view"
	GenerateReport Action = "report:generate"
	ExportReport   Action = "report:export"

	ViewNotifications Action = "notification:view"
)

type Policy map[Role]map[Action]bool

// DefaultPolicy is the access table served by the API. Admin is allowed
// everything and is not listed.
var DefaultPolicy = Policy{
	RoleAssociationStaff: allow(
		ViewOrg, ManageOrg,
		ViewSchedule, ManageSchedule, ManageHolidays,
		ViewTraining, ViewAttendance,
		ViewReport, GenerateReport, ExportReport,
		ViewNotifications,
	),
	RoleCenterStaff: allow(
		ViewOrg, ManageOrg,
		ViewSchedule, ManageSchedule, ManageAvailability, ManageHolidays,
		ViewTraining, RecordAttendance, ViewAttendance,
		ViewReport, GenerateReport, ExportReport,
		ViewNotifications,
	),
	RoleTeacher: allow(
		ViewOrg,
		ViewSchedule, ViewOwnSchedule, ManageAvailability,
		ViewTraining, ManageTraining, GradeSubmission, RecordAttendance, ViewAttendance, LogProgress,
		ViewReport, GenerateReport, ExportReport,
		ViewNotifications,
	),
	RoleStudent: allow(
		ViewOrg,
		ViewSchedule, ViewOwnSchedule,
		ViewTraining, SubmitExercise, ViewAttendance,
		ViewReport,
		ViewNotifications,
	),
}

func allow(actions ...Action) map[Action]bool {
	m := make(map[Action]bool, len(actions))
	for _, a := range actions {
		m[a] = true
	}
	return m
}

func (p Policy) Allows(role Role, action Action) bool {
	if role == RoleAdmin {
		return true
	}
	return p[role][action]
}

// Identity is the acting user, resolved once at the HTTP edge and handed to
// services explicitly.
type Identity struct {
	UserID        uuid.UUID
	Role          Role
	CenterID      *uuid.UUID
	AssociationID *uuid.UUID
	GroupID       *uuid.UUID
}

func (i Identity) Can(action Action) bool {
	return DefaultPolicy.Allows(i.Role, action)
}

func (i Identity) Is(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// InCenter reports whether a center-bound identity belongs to centerID.
func (i Identity) InCenter(centerID uuid.UUID) bool {
	return i.CenterID != nil && *i.CenterID == centerID
}
