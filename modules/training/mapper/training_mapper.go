package mapper

import (
	"strings"
	"time"
	"trainhub-api/core/constants"
	coreDto "trainhub-api/core/dto"
	coreEntity "trainhub-api/core/entity"
	"trainhub-api/core/timeofday"
	"trainhub-api/core/utils"
	"trainhub-api/modules/training/dto"
	"trainhub-api/modules/training/entity"

	"github.com/google/uuid"
)

const defaultMaxPoints = 20

func formatDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.Format(constants.DateLayout)
	return &s
}

func ToPage[E any, R any](p *coreEntity.Pagination[E], fn func(*E) R) *coreDto.Pagination[R] {
	if p == nil {
		return &coreDto.Pagination[R]{Items: []R{}}
	}
	return coreDto.MapPagination(p.Items, p.TotalItems, p.TotalPages, p.PageNumber, p.PageSize, fn)
}

// ToDistributionEntity assigns the plan to teacherID.
func ToDistributionEntity(req *dto.DistributionRequest, teacherID uuid.UUID) *entity.Distribution {
	return &entity.Distribution{
		TrainingID: req.TrainingID,
		GroupID:    req.GroupID,
		TeacherID:  teacherID,
		Month:      req.Month,
		Week:       req.Week,
		Title:      strings.TrimSpace(req.Title),
		Objectives: req.Objectives,
	}
}

func ToDistributionResponse(d *entity.Distribution) dto.DistributionResponse {
	return dto.DistributionResponse{
		ID:         d.ID,
		TrainingID: d.TrainingID,
		GroupID:    d.GroupID,
		TeacherID:  d.TeacherID,
		Month:      d.Month,
		Week:       d.Week,
		Title:      d.Title,
		Objectives: d.Objectives,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func ToControlEntity(req *dto.ControlRequest) (*entity.Control, error) {
	date, err := time.Parse(constants.DateLayout, req.ControlDate)
	if err != nil {
		return nil, err
	}
	return &entity.Control{
		TrainingID:     req.TrainingID,
		GroupID:        req.GroupID,
		DistributionID: req.DistributionID,
		Title:          strings.TrimSpace(req.Title),
		ControlDate:    date,
		TotalPoints:    req.TotalPoints,
	}, nil
}

func ToControlResponse(c *entity.Control) dto.ControlResponse {
	return dto.ControlResponse{
		ID:             c.ID,
		TrainingID:     c.TrainingID,
		GroupID:        c.GroupID,
		DistributionID: c.DistributionID,
		Title:          c.Title,
		ControlDate:    c.ControlDate.Format(constants.DateLayout),
		TotalPoints:    c.TotalPoints,
		CreatedBy:      c.CreatedBy,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func ToExerciseEntity(req *dto.ExerciseRequest) (*entity.Exercise, error) {
	due, err := utils.ParseDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	maxPoints := req.MaxPoints
	if maxPoints == 0 {
		maxPoints = defaultMaxPoints
	}
	return &entity.Exercise{
		TrainingID:     req.TrainingID,
		DistributionID: req.DistributionID,
		ControlID:      req.ControlID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		DueDate:        due,
		MaxPoints:      maxPoints,
	}, nil
}

func ToExerciseResponse(e *entity.Exercise) dto.ExerciseResponse {
	return dto.ExerciseResponse{
		ID:             e.ID,
		TrainingID:     e.TrainingID,
		DistributionID: e.DistributionID,
		ControlID:      e.ControlID,
		Title:          e.Title,
		Description:    e.Description,
		DueDate:        formatDate(e.DueDate),
		MaxPoints:      e.MaxPoints,
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func ToSubmissionResponse(s *entity.Submission) dto.SubmissionResponse {
	return dto.SubmissionResponse{
		ID:         s.ID,
		ExerciseID: s.ExerciseID,
		StudentID:  s.StudentID,
		Content:    s.Content,
		Status:     string(s.Status),
		Feedback:   s.Feedback,
		ReviewedBy: s.ReviewedBy,
		ReviewedAt: s.ReviewedAt,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func ToMarkResponse(m *entity.Mark) dto.MarkResponse {
	return dto.MarkResponse{
		ID:         m.ID,
		ExerciseID: m.ExerciseID,
		StudentID:  m.StudentID,
		Value:      m.Value,
		Feedback:   m.Feedback,
		GradedBy:   m.GradedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ToProgressLogEntity(req *dto.ProgressLogRequest, teacherID uuid.UUID) (*entity.ProgressLog, error) {
	date, err := time.Parse(constants.DateLayout, req.SessionDate)
	if err != nil {
		return nil, err
	}
	at, err := timeofday.Parse(req.SessionTime)
	if err != nil {
		return nil, err
	}
	return &entity.ProgressLog{
		TeacherID:      teacherID,
		TrainingID:     req.TrainingID,
		GroupID:        req.GroupID,
		DistributionID: req.DistributionID,
		SessionDate:    date,
		SessionTime:    at,
		TopicsCovered:  strings.TrimSpace(req.TopicsCovered),
		Feedback:       req.Feedback,
	}, nil
}

func ToProgressLogResponse(p *entity.ProgressLog) dto.ProgressLogResponse {
	return dto.ProgressLogResponse{
		ID:             p.ID,
		TeacherID:      p.TeacherID,
		TrainingID:     p.TrainingID,
		GroupID:        p.GroupID,
		DistributionID: p.DistributionID,
		SessionDate:    p.SessionDate.Format(constants.DateLayout),
		SessionTime:    p.SessionTime,
		TopicsCovered:  p.TopicsCovered,
		Feedback:       p.Feedback,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToAttendanceEntities expands a bulk request into one row per student.
func ToAttendanceEntities(req *dto.BulkAttendanceRequest, day time.Time, recordedBy uuid.UUID) []entity.Attendance {
	rows := make([]entity.Attendance, 0, len(req.Records))
	for _, r := range req.Records {
		rows = append(rows, entity.Attendance{
			ScheduleID:  req.ScheduleID,
			StudentID:   r.StudentID,
			SessionDate: day,
			Status:      entity.AttendanceStatus(r.Status),
			Note:        strings.TrimSpace(r.Note),
			RecordedBy:  &recordedBy,
		})
	}
	return rows
}

func ToAttendanceResponse(a *entity.Attendance) dto.AttendanceResponse {
	return dto.AttendanceResponse{
		ID:          a.ID,
		ScheduleID:  a.ScheduleID,
		StudentID:   a.StudentID,
		SessionDate: a.SessionDate.Format(constants.DateLayout),
		Status:      string(a.Status),
		Note:        a.Note,
		RecordedBy:  a.RecordedBy,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func ToAttendanceResponses(rows []entity.Attendance) []dto.AttendanceResponse {
	out := make([]dto.AttendanceResponse, len(rows))
	for i := range rows {
		out[i] = ToAttendanceResponse(&rows[i])
	}
	return out
}

// ToFilter parses the listing query. Invalid ids were already rejected by
// validation.
func ToFilter(q *dto.TrainingListQuery) entity.Filter {
	var f entity.Filter
	f.TrainingID, _ = utils.ToUUIDPtr(q.TrainingID)
	f.GroupID, _ = utils.ToUUIDPtr(q.GroupID)
	f.TeacherID, _ = utils.ToUUIDPtr(q.TeacherID)
	f.StudentID, _ = utils.ToUUIDPtr(q.StudentID)
	f.ExerciseID, _ = utils.ToUUIDPtr(q.ExerciseID)
	f.ControlID, _ = utils.ToUUIDPtr(q.ControlID)
	f.DistributionID, _ = utils.ToUUIDPtr(q.DistributionID)
	f.ScheduleID, _ = utils.ToUUIDPtr(q.ScheduleID)
	f.CenterID, _ = utils.ToUUIDPtr(q.CenterID)
	f.From, _ = utils.ParseDate(q.From)
	f.To, _ = utils.ParseDate(q.To)
	if q.Month != 0 {
		f.Month = &q.Month
	}
	f.Status = q.Status
	return f
}
