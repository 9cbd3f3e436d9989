package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := ParseRole("association")
	assert.Error(t, err)
	assert.False(t, Role("root").Valid())
}

func TestPolicyAllows(t *testing.T) {
	tests := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleAdmin, ManageUsers, true},
		{RoleAdmin, ExportReport, true},
		{RoleAssociationStaff, ManageOrg, true},
		{RoleAssociationStaff, ManageUsers, false},
		{RoleCenterStaff, ManageSchedule, true},
		{RoleCenterStaff, GradeSubmission, false},
		{RoleTeacher, ManageSchedule, false},
		{RoleTeacher, RecordAttendance, true},
		{RoleTeacher, ViewOwnSchedule, true},
		{RoleStudent, SubmitExercise, true},
		{RoleStudent, GenerateReport, false},
		{RoleStudent, RecordAttendance, false},
		{Role("ghost"), ViewOrg, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultPolicy.Allows(tt.role, tt.action))
		})
	}
}

func TestIdentity(t *testing.T) {
	center := uuid.New()
	id := Identity{UserID: uuid.New(), Role: RoleCenterStaff, CenterID: &center}

	assert.True(t, id.Can(ManageHolidays))
	assert.True(t, id.Is(RoleAdmin, RoleCenterStaff))
	assert.False(t, id.Is(RoleTeacher))
	assert.True(t, id.InCenter(center))
	assert.False(t, id.InCenter(uuid.New()))
	assert.False(t, Identity{Role: RoleAdmin}.InCenter(center))
}
