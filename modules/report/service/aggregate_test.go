package service

import (
	"testing"
	"time"
	"trainhub-api/modules/report/entity"

	"github.com/stretchr/testify/assert"
)

func row(email, subject, date, status string) entity.AttendanceRow {
	d, _ := time.Parse("2006-01-02", date)
	return entity.AttendanceRow{StudentEmail: email, Subject: subject, SessionDate: d, Status: status, TrainingName: "Math", GroupName: "G1"}
}

func TestAggregate_Totals(t *testing.T) {
	rows := []entity.AttendanceRow{
		row("a@x.io", "Algebra", "2026-10-12", "present"),
		row("a@x.io", "Algebra", "2026-10-13", "late"),
		row("a@x.io", "Geometry", "2026-10-14", "excused"),
	}
	stats := Aggregate(entity.ReportStudent, rows)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Present)
	assert.Equal(t, 1, stats.Late)
	assert.Equal(t, 1, stats.Excused)
	assert.Equal(t, 0, stats.Unexcused)
	assert.Equal(t, 33.33, stats.Rate)
}

func TestAggregate_EmptyRowsRateZero(t *testing.T) {
	stats := Aggregate(entity.ReportCenter, nil)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.Rate)
	assert.Empty(t, stats.Breakdown["by_group"])
}

func TestAggregate_Breakdowns(t *testing.T) {
	rows := []entity.AttendanceRow{
		row("a@x.io", "Algebra", "2026-10-12", "present"),
		row("b@x.io", "Algebra", "2026-10-12", "absent"),
		row("a@x.io", "Geometry", "2026-11-02", "present"),
	}

	tests := []struct {
		scope entity.ReportType
		want  entity.Breakdown
	}{
		{entity.ReportStudent, entity.Breakdown{
			"by_subject": {"Algebra": 50, "Geometry": 100},
			"by_weekday": {"MON": 66.67},
			"by_month":   {"2026-10": 50, "2026-11": 100},
		}},
		{entity.ReportTeacher, entity.Breakdown{
			"by_subject": {"Algebra": 50, "Geometry": 100},
			"by_student": {"a@x.io": 100, "b@x.io": 0},
		}},
		{entity.ReportGroup, entity.Breakdown{
			"by_date":    {"2026-10-12": 50, "2026-11-02": 100},
			"by_student": {"a@x.io": 100, "b@x.io": 0},
		}},
		{entity.ReportCenter, entity.Breakdown{
			"by_group":    {"G1": 66.67},
			"by_training": {"Math": 66.67},
			"by_date":     {"2026-10-12": 50, "2026-11-02": 100},
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.scope, rows).Breakdown)
		})
	}
}

func TestAggregate_IsPure(t *testing.T) {
	rows := []entity.AttendanceRow{row("a@x.io", "Algebra", "2026-10-12", "present"), row("a@x.io", "Algebra", "2026-10-19", "absent")}
	assert.Equal(t, Aggregate(entity.ReportCenter, rows), Aggregate(entity.ReportCenter, rows))
}

func TestAggregate_UngroupedStudents(t *testing.T) {
	r := row("a@x.io", "Algebra", "2026-10-12", "present")
	r.GroupName = ""
	stats := Aggregate(entity.ReportCenter, []entity.AttendanceRow{r})
	assert.Equal(t, map[string]float64{noGroup: 100}, stats.Breakdown["by_group"])
}
