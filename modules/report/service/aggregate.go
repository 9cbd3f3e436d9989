package service

import (
	"math"
	"strings"
	"trainhub-api/core/constants"
	"trainhub-api/modules/report/entity"
)

const noGroup = "no group"

type keyFunc func(row *entity.AttendanceRow) string

var (
	bySubject  keyFunc = func(r *entity.AttendanceRow) string { return r.Subject }
	byWeekday  keyFunc = func(r *entity.AttendanceRow) string { return strings.ToUpper(r.SessionDate.Weekday().String()[:3]) }
	byMonth    keyFunc = func(r *entity.AttendanceRow) string { return r.SessionDate.Format("2006-01") }
	byDate     keyFunc = func(r *entity.AttendanceRow) string { return r.SessionDate.Format(constants.DateLayout) }
	byStudent  keyFunc = func(r *entity.AttendanceRow) string { return r.StudentEmail }
	byTraining keyFunc = func(r *entity.AttendanceRow) string { return r.TrainingName }
	byGroup    keyFunc = func(r *entity.AttendanceRow) string {
		if r.GroupName == "" {
			return noGroup
		}
		return r.GroupName
	}
)

var breakdowns = map[entity.ReportType]map[string]keyFunc{
	entity.ReportStudent: {"by_subject": bySubject, "by_weekday": byWeekday, "by_month": byMonth},
	entity.ReportTeacher: {"by_subject": bySubject, "by_student": byStudent},
	entity.ReportGroup:   {"by_date": byDate, "by_student": byStudent},
	entity.ReportCenter:  {"by_group": byGroup, "by_training": byTraining, "by_date": byDate},
}

// Aggregate computes the totals, rate and scope breakdowns of rows. Only
// "present" counts as attended; "late" is tallied apart.
func Aggregate(scope entity.ReportType, rows []entity.AttendanceRow) entity.Stats {
	var stats entity.Stats
	for i := range rows {
		stats.Total++
		switch rows[i].Status {
		case "present":
			stats.Present++
		case "late":
			stats.Late++
		case "excused":
			stats.Excused++
		case "absent":
			stats.Unexcused++
		}
	}
	stats.Rate = rate(stats.Present, stats.Total)

	stats.Breakdown = entity.Breakdown{}
	for name, key := range breakdowns[scope] {
		stats.Breakdown[name] = breakdown(rows, key)
	}
	return stats
}

func breakdown(rows []entity.AttendanceRow, key keyFunc) map[string]float64 {
	type tally struct{ present, total int }
	tallies := map[string]*tally{}
	for i := range rows {
		k := key(&rows[i])
		t, ok := tallies[k]
		if !ok {
			t = &tally{}
			tallies[k] = t
		}
		t.total++
		if rows[i].Status == "present" {
			t.present++
		}
	}
	out := make(map[string]float64, len(tallies))
	for k, t := range tallies {
		out[k] = rate(t.present, t.total)
	}
	return out
}

// rate is present/total as a percentage rounded to two decimals, 0 when
// there is nothing to divide by.
func rate(present, total int) float64 {
	if total <= 0 {
		return 0
	}
	r := math.Round(float64(present)/float64(total)*10000) / 100
	return math.Min(100, math.Max(0, r))
}
