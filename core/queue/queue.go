// Package queue wraps asynq for background jobs that outlive a request.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"trainhub-api/core/config"
	"trainhub-api/core/constants"
	"trainhub-api/core/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Enqueuer is what request handlers need to schedule work.
type Enqueuer interface {
	EnqueueReportExport(ctx context.Context, payload ReportExportPayload) error
}

type ReportExportPayload struct {
	ReportID    uuid.UUID `json:"report_id"`
	RequestedBy uuid.UUID `json:"requested_by"`
}

func NewReportExportTask(payload ReportExportPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskReportExport, b, asynq.MaxRetry(constants.ReportExportMaxTry)), nil
}

func ParseReportExportPayload(t *asynq.Task) (ReportExportPayload, error) {
	var p ReportExportPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("decode %s payload: %w", t.Type(), err)
	}
	return p, nil
}

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
}

type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{client: asynq.NewClient(redisOpt(cfg))}
}

func (c *Client) EnqueueReportExport(ctx context.Context, payload ReportExportPayload) error {
	task, err := NewReportExportTask(payload)
	if err != nil {
		return err
	}
	info, err := c.client.EnqueueContext(ctx, task, asynq.Queue(constants.QueueDefault))
	if err != nil {
		logger.Error("Queue:EnqueueReportExport", "report_id", payload.ReportID, "error", err)
		return err
	}
	logger.Info("Queue:EnqueueReportExport", "task_id", info.ID, "report_id", payload.ReportID)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Worker runs registered handlers until Shutdown.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(redis config.RedisConfig, q config.QueueConfig) *Worker {
	concurrency := q.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(redisOpt(redis), asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{constants.QueueDefault: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue:Worker:TaskFailed", "type", task.Type(), "error", err)
		}),
	})
	return &Worker{server: srv, mux: asynq.NewServeMux()}
}

func (w *Worker) Handle(taskType string, h func(ctx context.Context, t *asynq.Task) error) {
	w.mux.HandleFunc(taskType, h)
}

// Run blocks while the worker processes tasks.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

func (w *Worker) Start() error {
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
