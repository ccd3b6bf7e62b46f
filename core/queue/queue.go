package queue

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"appointment-sync/core/config"
	"appointment-sync/core/constants"
	"appointment-sync/core/logger"
	"appointment-sync/core/storage"
)

// Client enqueues background work after mutating operations.
type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueExportUpload schedules a backup snapshot upload. Mutations call
// this fire-and-forget; a full queue or dead Redis only costs the backup.
func (c *Client) EnqueueExportUpload(ctx context.Context) error {
	task := asynq.NewTask(constants.TaskExportUpload, nil)
	_, err := c.client.EnqueueContext(ctx, task, asynq.MaxRetry(3), asynq.Timeout(time.Minute))
	if err != nil {
		logger.Warn("Queue:EnqueueExportUpload:Error:", err)
	}
	return err
}

// ExportFunc produces an encoded export snapshot and the time it was taken.
type ExportFunc func(ctx context.Context) ([]byte, time.Time, error)

// ScanFunc runs a conflict scan and reports how many conflict groups exist.
type ScanFunc func(ctx context.Context) (int, error)

// Worker processes queued tasks and runs the periodic conflict scan.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

func NewWorker(cfg config.RedisConfig, export ExportFunc, uploader storage.Uploader, scan ScanFunc) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	mux := asynq.NewServeMux()
	// Without an upload destination the export handler is not registered;
	// callers must also hold back the enqueuing client in that case.
	if uploader != nil {
		mux.HandleFunc(constants.TaskExportUpload, func(ctx context.Context, _ *asynq.Task) error {
			payload, takenAt, err := export(ctx)
			if err != nil {
				return err
			}
			key, err := uploader.UploadExport(ctx, takenAt, payload)
			if err != nil {
				return err
			}
			logger.Info("Queue:ExportUpload:Done", "key", key)
			return nil
		})
	}
	mux.HandleFunc(constants.TaskConflictScan, func(ctx context.Context, _ *asynq.Task) error {
		conflicts, err := scan(ctx)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			logger.Warn("Queue:ConflictScan:ConflictsFound", "conflicts", conflicts)
		}
		return nil
	})

	return &Worker{
		server: asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: 2,
		}),
		scheduler: asynq.NewScheduler(redisOpt, nil),
		mux:       mux,
	}
}

func (w *Worker) Start() error {
	if _, err := w.scheduler.Register(constants.ConflictScanCronSpec, asynq.NewTask(constants.TaskConflictScan, nil)); err != nil {
		return err
	}
	if err := w.scheduler.Start(); err != nil {
		return err
	}
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}
