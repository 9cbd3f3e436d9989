package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"trainhub-api/core/authz"
	"trainhub-api/core/constants"
	"trainhub-api/core/errors"
	"trainhub-api/core/logger"
	"trainhub-api/core/queue"
	"trainhub-api/core/utils"
	"trainhub-api/modules/report/dto"
	"trainhub-api/modules/report/entity"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	summarySheet    = "Summary"
)

// RequestExport queues the XLSX export of a report. Asking again while an
// export is pending does not queue a second one.
func (s *ReportService) RequestExport(ctx context.Context, id authz.Identity, reportID uuid.UUID) (*dto.ExportResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	report, appErr := s.load(ctx, id, reportID)
	if appErr != nil {
		return nil, appErr
	}
	if report.ExportStatus == entity.ExportPending {
		return &dto.ExportResponse{ReportID: report.ID, ExportStatus: string(report.ExportStatus)}, nil
	}
	if s.queue == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "report export is disabled", nil)
	}

	if err := s.repo.SetExport(ctx, report.ID, entity.ExportPending, nil); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "request export failed", err)
	}
	if err := s.queue.EnqueueReportExport(ctx, queue.ReportExportPayload{ReportID: report.ID, RequestedBy: id.UserID}); err != nil {
		if err := s.repo.SetExport(ctx, report.ID, entity.ExportFailed, nil); err != nil {
			logger.Error("ReportService:RequestExport:SetFailed", "report_id", report.ID, "error", err)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "queue export failed", err)
	}
	return &dto.ExportResponse{ReportID: report.ID, ExportStatus: string(entity.ExportPending)}, nil
}

// GetExport returns a time-limited download link once the export is ready.
func (s *ReportService) GetExport(ctx context.Context, id authz.Identity, reportID uuid.UUID) (*dto.ExportResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	report, appErr := s.load(ctx, id, reportID)
	if appErr != nil {
		return nil, appErr
	}
	if report.ExportStatus != entity.ExportReady || report.ExportKey == nil {
		return nil, errors.NewAppError(errors.ErrExportNotReady, "report export is not ready", nil).
			WithDetails(map[string]string{"export_status": string(report.ExportStatus)})
	}
	url, err := s.storage.PresignGet(ctx, *report.ExportKey)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get export link failed", err)
	}
	return &dto.ExportResponse{
		ReportID:     report.ID,
		ExportStatus: string(report.ExportStatus),
		URL:          url,
		ExportedAt:   report.ExportedAt,
	}, nil
}

// HandleExportTask is the worker side of RequestExport: it renders the
// workbook, uploads it and tells the requester it is ready.
func (s *ReportService) HandleExportTask(ctx context.Context, t *asynq.Task) error {
	payload, err := queue.ParseReportExportPayload(t)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	report, err := s.repo.Get(ctx, payload.ReportID)
	if err != nil {
		return err
	}
	if report == nil {
		logger.Warn("ReportService:HandleExportTask:ReportGone", "report_id", payload.ReportID)
		return nil
	}

	if err := s.export(ctx, report); err != nil {
		if setErr := s.repo.SetExport(ctx, report.ID, entity.ExportFailed, nil); setErr != nil {
			logger.Error("ReportService:HandleExportTask:SetFailed", "report_id", report.ID, "error", setErr)
		}
		return err
	}

	if s.notifier != nil {
		message := fmt.Sprintf("Report %s is ready to download", report.ReferenceCode)
		data := map[string]any{"report_id": report.ID.String(), "reference_code": report.ReferenceCode}
		if err := s.notifier.Notify(ctx, payload.RequestedBy, "Report export ready", message, "report_export", data); err != nil {
			logger.Warn("ReportService:HandleExportTask:Notify", "report_id", report.ID, "error", err)
		}
	}
	logger.Info("ReportService:HandleExportTask:Done", "report_id", report.ID, "requested_by", payload.RequestedBy)
	return nil
}

// exportKeyLength keeps export object keys unguessable.
const exportKeyLength = 24

func (s *ReportService) export(ctx context.Context, report *entity.Report) error {
	body, err := BuildWorkbook(report)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	key := fmt.Sprintf("reports/%s/%s.xlsx", report.ReferenceCode, utils.GenerateRandomString(exportKeyLength))
	if err := s.storage.Upload(ctx, key, xlsxContentType, body); err != nil {
		return err
	}
	return s.repo.SetExport(ctx, report.ID, entity.ExportReady, &key)
}

// BuildWorkbook renders a report as XLSX: a summary sheet plus one sheet per
// breakdown table, keys sorted.
func BuildWorkbook(report *entity.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	summary := [][]any{
		{"Reference", report.ReferenceCode},
		{"Type", string(report.Type)},
		{"Period", string(report.Period)},
		{"From", report.StartDate.Format(constants.DateLayout)},
		{"To", report.EndDate.Format(constants.DateLayout)},
		{"Total sessions", report.Total},
		{"Present", report.Present},
		{"Late", report.Late},
		{"Excused", report.Excused},
		{"Unexcused", report.Unexcused},
		{"Attendance rate (%)", report.Rate},
		{"Notes", report.Notes},
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(report.Breakdown))
	for name := range report.Breakdown {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		if err := setRow(f, name, 1, []any{"Key", "Attendance rate (%)"}); err != nil {
			return nil, err
		}
		table := report.Breakdown[name]
		keys := make([]string, 0, len(table))
		for k := range table {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if err := setRow(f, name, i+2, []any{k, table[k]}); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
