package queue

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointment-sync/core/config"
	"appointment-sync/core/constants"
)

type fakeUploader struct{}

func (fakeUploader) UploadExport(context.Context, time.Time, []byte) (string, error) {
	return "exports/test.json", nil
}

func noopExport(context.Context) ([]byte, time.Time, error) { return nil, time.Time{}, nil }
func noopScan(context.Context) (int, error)                 { return 0, nil }

func TestNewWorkerRegistersExportOnlyWithUploader(t *testing.T) {
	cfg := config.RedisConfig{Addr: "localhost:6379"}

	with := NewWorker(cfg, noopExport, fakeUploader{}, noopScan)
	require.NotNil(t, with)
	_, pattern := with.mux.Handler(asynq.NewTask(constants.TaskExportUpload, nil))
	assert.Equal(t, constants.TaskExportUpload, pattern)

	without := NewWorker(cfg, noopExport, nil, noopScan)
	require.NotNil(t, without)
	_, pattern = without.mux.Handler(asynq.NewTask(constants.TaskExportUpload, nil))
	assert.Empty(t, pattern, "no export handler without an upload destination")

	_, pattern = without.mux.Handler(asynq.NewTask(constants.TaskConflictScan, nil))
	assert.Equal(t, constants.TaskConflictScan, pattern, "the conflict scan runs regardless")
}
