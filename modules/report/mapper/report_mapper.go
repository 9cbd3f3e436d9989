package mapper

import (
	"strings"
	"trainhub-api/core/constants"
	coreDto "trainhub-api/core/dto"
	coreEntity "trainhub-api/core/entity"
	"trainhub-api/core/utils"
	"trainhub-api/modules/report/dto"
	"trainhub-api/modules/report/entity"
)

func ToPage[E any, R any](p *coreEntity.Pagination[E], fn func(*E) R) *coreDto.Pagination[R] {
	if p == nil {
		return &coreDto.Pagination[R]{Items: []R{}}
	}
	return coreDto.MapPagination(p.Items, p.TotalItems, p.TotalPages, p.PageNumber, p.PageSize, fn)
}

// ToReportEntity copies the request. Dates are left for the service to
// resolve against the period.
func ToReportEntity(req *dto.GenerateReportRequest) *entity.Report {
	return &entity.Report{
		Type:         entity.ReportType(req.ReportType),
		Period:       entity.Period(req.Period),
		StudentID:    req.StudentID,
		TeacherID:    req.TeacherID,
		GroupID:      req.GroupID,
		CenterID:     req.CenterID,
		TrainingID:   req.TrainingID,
		Notes:        strings.TrimSpace(req.Notes),
		ExportStatus: entity.ExportNone,
	}
}

func ToReportResponse(r *entity.Report) dto.ReportResponse {
	data := r.Breakdown
	if data == nil {
		data = entity.Breakdown{}
	}
	return dto.ReportResponse{
		ID:                r.ID,
		ReferenceCode:     r.ReferenceCode,
		ReportType:        string(r.Type),
		Period:            string(r.Period),
		StartDate:         r.StartDate.Format(constants.DateLayout),
		EndDate:           r.EndDate.Format(constants.DateLayout),
		StudentID:         r.StudentID,
		TeacherID:         r.TeacherID,
		GroupID:           r.GroupID,
		CenterID:          r.CenterID,
		TrainingID:        r.TrainingID,
		TotalSessions:     r.Total,
		AttendedSessions:  r.Present,
		LateSessions:      r.Late,
		ExcusedAbsences:   r.Excused,
		UnexcusedAbsences: r.Unexcused,
		AttendanceRate:    r.Rate,
		Data:              data,
		Notes:             r.Notes,
		GeneratedBy:       r.GeneratedBy,
		GeneratedAt:       r.GeneratedAt,
		ExportStatus:      string(r.ExportStatus),
	}
}

// ToFilter parses the listing query. Malformed values were already rejected
// by validation.
func ToFilter(q *dto.ReportListQuery) entity.Filter {
	var f entity.Filter
	f.Type = entity.ReportType(q.ReportType)
	f.Period = entity.Period(q.Period)
	f.TrainingID, _ = utils.ToUUIDPtr(q.TrainingID)
	f.From, _ = utils.ParseDate(q.From)
	f.To, _ = utils.ParseDate(q.To)
	return f
}
