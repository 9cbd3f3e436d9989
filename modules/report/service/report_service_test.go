package service

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"
	"trainhub-api/core/authz"
	coreEntity "trainhub-api/core/entity"
	"trainhub-api/core/errors"
	"trainhub-api/core/params"
	"trainhub-api/core/queue"
	"trainhub-api/modules/report/dto"
	"trainhub-api/modules/report/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type memReports struct {
	reports     map[uuid.UUID]*entity.Report
	users       map[uuid.UUID]*entity.Target
	groups      map[uuid.UUID]*entity.Target
	centers     map[uuid.UUID]*entity.Target
	rows        []entity.AttendanceRow
	lastScope   entity.Scope
	lastFilter  entity.Filter
	statsWindow [2]time.Time
}

func newMemReports() *memReports {
	return &memReports{
		reports: map[uuid.UUID]*entity.Report{},
		users:   map[uuid.UUID]*entity.Target{},
		groups:  map[uuid.UUID]*entity.Target{},
		centers: map[uuid.UUID]*entity.Target{},
	}
}

func (m *memReports) Create(_ context.Context, r *entity.Report) error {
	r.ID = uuid.New()
	m.reports[r.ID] = r
	return nil
}

func (m *memReports) UpdateStats(_ context.Context, r *entity.Report) error {
	m.reports[r.ID] = r
	return nil
}

func (m *memReports) SetExport(_ context.Context, id uuid.UUID, status entity.ExportStatus, key *string) error {
	r := m.reports[id]
	r.ExportStatus = status
	if key != nil {
		r.ExportKey = key
	}
	return nil
}

func (m *memReports) Get(_ context.Context, id uuid.UUID) (*entity.Report, error) {
	r, ok := m.reports[id]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (m *memReports) CenterOf(_ context.Context, id uuid.UUID) (*entity.Target, error) {
	r := m.reports[id]
	var t *entity.Target
	switch r.Type {
	case entity.ReportStudent, entity.ReportTeacher:
		t = m.users[*r.TargetID()]
	case entity.ReportGroup:
		t = m.groups[*r.TargetID()]
	case entity.ReportCenter:
		t = m.centers[*r.TargetID()]
	}
	return t, nil
}

func (m *memReports) List(_ context.Context, filter entity.Filter, p params.QueryParams) (*entity.PaginatedReports, error) {
	m.lastFilter = filter
	return coreEntity.NewPagination([]entity.Report{}, 0, p.PageNumber, p.PageSize), nil
}

func (m *memReports) QuickStats(_ context.Context, _ entity.Visibility, from, to time.Time) (*entity.QuickStats, error) {
	m.statsWindow = [2]time.Time{from, to}
	return &entity.QuickStats{TotalReports: 2, AverageRate: 75.5, TotalSessions: 8, AttendedSessions: 6}, nil
}

func (m *memReports) AttendanceRows(_ context.Context, scope entity.Scope) ([]entity.AttendanceRow, error) {
	m.lastScope = scope
	return m.rows, nil
}

func (m *memReports) GetUserTarget(_ context.Context, id uuid.UUID) (*entity.Target, error) {
	return m.users[id], nil
}

func (m *memReports) GetGroupTarget(_ context.Context, id uuid.UUID) (*entity.Target, error) {
	return m.groups[id], nil
}

func (m *memReports) GetCenterTarget(_ context.Context, id uuid.UUID) (*entity.Target, error) {
	return m.centers[id], nil
}

type recordingQueue struct {
	payloads []queue.ReportExportPayload
	err      error
}

func (q *recordingQueue) EnqueueReportExport(_ context.Context, p queue.ReportExportPayload) error {
	if q.err != nil {
		return q.err
	}
	q.payloads = append(q.payloads, p)
	return nil
}

type memStorage struct {
	objects map[string][]byte
}

func (s *memStorage) Upload(_ context.Context, key, _ string, body []byte) error {
	s.objects[key] = body
	return nil
}

func (s *memStorage) PresignGet(_ context.Context, key string) (string, error) {
	return "https://files.example.com/" + key + "?sig=1", nil
}

type recordingNotifier struct {
	sent []uuid.UUID
}

func (n *recordingNotifier) Notify(_ context.Context, userID uuid.UUID, _, _, _ string, _ map[string]any) error {
	n.sent = append(n.sent, userID)
	return nil
}

var now = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

type reportFixture struct {
	store       *memReports
	queue       *recordingQueue
	storage     *memStorage
	notifier    *recordingNotifier
	svc         *ReportService
	center      uuid.UUID
	otherCenter uuid.UUID
	association uuid.UUID
	student     uuid.UUID
	teacher     authz.Identity
	staff       authz.Identity
	admin       authz.Identity
}

func newReportFixture() reportFixture {
	f := reportFixture{
		store:       newMemReports(),
		queue:       &recordingQueue{},
		storage:     &memStorage{objects: map[string][]byte{}},
		notifier:    &recordingNotifier{},
		center:      uuid.New(),
		otherCenter: uuid.New(),
		association: uuid.New(),
		student:     uuid.New(),
	}
	f.svc = NewReportService(f.store, f.queue, f.storage, f.notifier)
	f.svc.now = func() time.Time { return now }
	f.teacher = authz.Identity{UserID: uuid.New(), Role: authz.RoleTeacher, CenterID: &f.center}
	f.staff = authz.Identity{UserID: uuid.New(), Role: authz.RoleCenterStaff, CenterID: &f.center}
	f.admin = authz.Identity{UserID: uuid.New(), Role: authz.RoleAdmin}

	f.store.users[f.student] = &entity.Target{ID: f.student, Role: "student", CenterID: &f.center, AssociationID: &f.association}
	f.store.users[f.teacher.UserID] = &entity.Target{ID: f.teacher.UserID, Role: "teacher", CenterID: &f.center, AssociationID: &f.association}
	f.store.centers[f.center] = &entity.Target{ID: f.center, CenterID: &f.center, AssociationID: &f.association}
	f.store.rows = []entity.AttendanceRow{
		row("s@x.io", "Algebra", "2026-10-12", "present"),
		row("s@x.io", "Algebra", "2026-10-13", "absent"),
	}
	return f
}

func (f reportFixture) studentRequest() *dto.GenerateReportRequest {
	return &dto.GenerateReportRequest{ReportType: "student", Period: "weekly", StartDate: "2026-10-12", StudentID: &f.student}
}

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		period     entity.Period
		start, end string
		wantEnd    string
		wantErr    bool
	}{
		{entity.PeriodDaily, "2026-10-12", "", "2026-10-12", false},
		{entity.PeriodWeekly, "2026-10-12", "", "2026-10-18", false},
		{entity.PeriodMonthly, "2026-02-10", "", "2026-02-28", false},
		{entity.PeriodCustom, "2026-10-01", "2026-10-20", "2026-10-20", false},
		{entity.PeriodCustom, "2026-10-01", "", "", true},
		{entity.PeriodCustom, "2026-10-20", "2026-10-01", "", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.period)+" "+tt.start+" "+tt.end, func(t *testing.T) {
			_, end, appErr := resolvePeriod(tt.period, tt.start, tt.end)
			if tt.wantErr {
				require.NotNil(t, appErr)
				assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
				return
			}
			require.Nil(t, appErr)
			assert.Equal(t, tt.wantEnd, end.Format("2006-01-02"))
		})
	}
}

func TestReportService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a snapshot of the target's attendance", func(t *testing.T) {
		f := newReportFixture()
		resp, appErr := f.svc.Generate(ctx, f.teacher, f.studentRequest())
		require.Nil(t, appErr)

		assert.True(t, strings.HasPrefix(resp.ReferenceCode, "RPT-"))
		assert.Equal(t, "2026-10-18", resp.EndDate)
		assert.Equal(t, 2, resp.TotalSessions)
		assert.Equal(t, 1, resp.AttendedSessions)
		assert.Equal(t, 50.0, resp.AttendanceRate)
		assert.Contains(t, resp.Data, "by_weekday")
		assert.Equal(t, &f.teacher.UserID, resp.GeneratedBy)
		assert.Equal(t, "none", resp.ExportStatus)
		assert.Equal(t, f.student, f.store.lastScope.TargetID)
	})

	t.Run("target id must match the report type", func(t *testing.T) {
		f := newReportFixture()
		req := f.studentRequest()
		req.StudentID = nil
		req.CenterID = &f.center
		_, appErr := f.svc.Generate(ctx, f.admin, req)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidReportScope, appErr.Code)
	})

	t.Run("student report on a teacher is rejected", func(t *testing.T) {
		f := newReportFixture()
		req := f.studentRequest()
		req.StudentID = &f.teacher.UserID
		_, appErr := f.svc.Generate(ctx, f.admin, req)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidReportScope, appErr.Code)
	})

	t.Run("teachers report only on themselves", func(t *testing.T) {
		f := newReportFixture()
		other := uuid.New()
		f.store.users[other] = &entity.Target{ID: other, Role: "teacher", CenterID: &f.center}
		_, appErr := f.svc.Generate(ctx, f.teacher, &dto.GenerateReportRequest{ReportType: "teacher", Period: "daily", StartDate: "2026-10-12", TeacherID: &other})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)
	})

	t.Run("staff of another center is forbidden", func(t *testing.T) {
		f := newReportFixture()
		outsider := authz.Identity{UserID: uuid.New(), Role: authz.RoleCenterStaff, CenterID: &f.otherCenter}
		_, appErr := f.svc.Generate(ctx, outsider, f.studentRequest())
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)
	})

	t.Run("association staff reach every center of their association", func(t *testing.T) {
		f := newReportFixture()
		staff := authz.Identity{UserID: uuid.New(), Role: authz.RoleAssociationStaff, AssociationID: &f.association}
		_, appErr := f.svc.Generate(ctx, staff, &dto.GenerateReportRequest{ReportType: "center", Period: "monthly", StartDate: "2026-10-01", CenterID: &f.center})
		require.Nil(t, appErr)
	})
}

func TestReportService_Recalculate(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture()
	resp, appErr := f.svc.Generate(ctx, f.staff, f.studentRequest())
	require.Nil(t, appErr)
	f.store.reports[resp.ID].ExportStatus = entity.ExportReady

	f.store.rows = append(f.store.rows, row("s@x.io", "Algebra", "2026-10-14", "present"))
	updated, appErr := f.svc.Recalculate(ctx, f.staff, resp.ID)
	require.Nil(t, appErr)
	assert.Equal(t, 3, updated.TotalSessions)
	assert.Equal(t, 66.67, updated.AttendanceRate)
	assert.Equal(t, "none", updated.ExportStatus)
}

func TestReportService_Visibility(t *testing.T) {
	ctx := context.Background()
	p := params.QueryParams{PageNumber: 1, PageSize: 20}

	t.Run("listings are narrowed by role", func(t *testing.T) {
		f := newReportFixture()
		_, appErr := f.svc.List(ctx, f.staff, entity.Filter{}, p)
		require.Nil(t, appErr)
		assert.Equal(t, &f.center, f.store.lastFilter.CenterID)

		_, appErr = f.svc.List(ctx, f.teacher, entity.Filter{}, p)
		require.Nil(t, appErr)
		assert.Equal(t, &f.teacher.UserID, f.store.lastFilter.TeacherID)

		_, appErr = f.svc.List(ctx, f.admin, entity.Filter{}, p)
		require.Nil(t, appErr)
		assert.Equal(t, entity.Visibility{}, f.store.lastFilter.Visibility)
	})

	t.Run("my reports are for teachers and students", func(t *testing.T) {
		f := newReportFixture()
		_, appErr := f.svc.Mine(ctx, f.staff, p)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)

		student := authz.Identity{UserID: f.student, Role: authz.RoleStudent}
		_, appErr = f.svc.Mine(ctx, student, p)
		require.Nil(t, appErr)
		assert.Equal(t, entity.ReportStudent, f.store.lastFilter.Type)
		assert.Equal(t, &f.student, f.store.lastFilter.StudentID)
	})

	t.Run("a student sees only their own report", func(t *testing.T) {
		f := newReportFixture()
		resp, appErr := f.svc.Generate(ctx, f.staff, f.studentRequest())
		require.Nil(t, appErr)

		_, appErr = f.svc.Get(ctx, authz.Identity{UserID: f.student, Role: authz.RoleStudent}, resp.ID)
		require.Nil(t, appErr)
		_, appErr = f.svc.Get(ctx, authz.Identity{UserID: uuid.New(), Role: authz.RoleStudent}, resp.ID)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)

		outsider := authz.Identity{UserID: uuid.New(), Role: authz.RoleCenterStaff, CenterID: &f.otherCenter}
		_, appErr = f.svc.Get(ctx, outsider, resp.ID)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)
	})
}

func TestReportService_QuickStatsDefaultsToLast30Days(t *testing.T) {
	f := newReportFixture()
	resp, appErr := f.svc.QuickStats(context.Background(), f.admin, &dto.QuickStatsQuery{})
	require.Nil(t, appErr)
	assert.Equal(t, "2026-09-16", resp.StartDate)
	assert.Equal(t, "2026-10-16", resp.EndDate)
	assert.Equal(t, 75.5, resp.AverageAttendanceRate)
	assert.Equal(t, 2, resp.TotalReports)
}

func TestReportService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("request, process and download", func(t *testing.T) {
		f := newReportFixture()
		report, appErr := f.svc.Generate(ctx, f.staff, f.studentRequest())
		require.Nil(t, appErr)

		_, appErr = f.svc.GetExport(ctx, f.staff, report.ID)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrExportNotReady, appErr.Code)

		resp, appErr := f.svc.RequestExport(ctx, f.staff, report.ID)
		require.Nil(t, appErr)
		assert.Equal(t, "pending", resp.ExportStatus)
		require.Len(t, f.queue.payloads, 1)

		again, appErr := f.svc.RequestExport(ctx, f.staff, report.ID)
		require.Nil(t, appErr)
		assert.Equal(t, "pending", again.ExportStatus)
		assert.Len(t, f.queue.payloads, 1)

		task, err := queue.NewReportExportTask(f.queue.payloads[0])
		require.NoError(t, err)
		require.NoError(t, f.svc.HandleExportTask(ctx, task))
		assert.Len(t, f.storage.objects, 1)
		assert.Equal(t, []uuid.UUID{f.staff.UserID}, f.notifier.sent)

		link, appErr := f.svc.GetExport(ctx, f.staff, report.ID)
		require.Nil(t, appErr)
		assert.Equal(t, "ready", link.ExportStatus)
		assert.Contains(t, link.URL, "reports/"+report.ReferenceCode+"/")
		key := *f.store.reports[report.ID].ExportKey
		assert.Len(t, strings.TrimSuffix(strings.TrimPrefix(key, "reports/"+report.ReferenceCode+"/"), ".xlsx"), exportKeyLength)
	})

	t.Run("queue failure marks the export failed", func(t *testing.T) {
		f := newReportFixture()
		report, appErr := f.svc.Generate(ctx, f.staff, f.studentRequest())
		require.Nil(t, appErr)
		f.queue.err = stderrors.New("redis down")

		_, appErr = f.svc.RequestExport(ctx, f.staff, report.ID)
		require.NotNil(t, appErr)
		assert.Equal(t, entity.ExportFailed, f.store.reports[report.ID].ExportStatus)
	})
}

func TestBuildWorkbook(t *testing.T) {
	report := &entity.Report{ReferenceCode: "RPT-TEST0001", Type: entity.ReportStudent, Period: entity.PeriodDaily}
	report.Stats = Aggregate(entity.ReportStudent, []entity.AttendanceRow{row("s@x.io", "Algebra", "2026-10-12", "present")})

	body, err := BuildWorkbook(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "by_month", "by_subject", "by_weekday"}, f.GetSheetList())
	ref, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "RPT-TEST0001", ref)
	key, err := f.GetCellValue("by_subject", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Algebra", key)
}
