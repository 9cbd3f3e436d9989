package queue

import (
	"testing"
	"trainhub-api/core/constants"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportExportTaskPayload(t *testing.T) {
	in := ReportExportPayload{ReportID: uuid.New(), RequestedBy: uuid.New()}

	task, err := NewReportExportTask(in)
	require.NoError(t, err)
	assert.Equal(t, constants.TaskReportExport, task.Type())

	out, err := ParseReportExportPayload(task)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = ParseReportExportPayload(asynq.NewTask(constants.TaskReportExport, []byte("{")))
	assert.Error(t, err)
}
