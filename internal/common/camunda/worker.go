// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"wedding-matching-workers/internal/common/config"
	"wedding-matching-workers/internal/common/logger"
	"wedding-matching-workers/internal/common/metrics"
	"wedding-matching-workers/internal/common/observability"
)

// HandlerFunc is the signature Zeebe job workers dispatch to.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// Instrument wraps a handler with the active-jobs gauge and duration metrics.
// Completion and failure counters are recorded by the handlers themselves.
func Instrument(taskType string, handler HandlerFunc, obs *observability.Observability) HandlerFunc {
	return func(client worker.JobClient, job entities.Job) {
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		start := time.Now()
		defer func() {
			active.Dec()
			elapsed := time.Since(start)
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
			obs.RecordJobDuration(context.Background(), taskType, elapsed)
		}()

		handler(client, job)
	}
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// StartWorker opens a job worker for taskType. It returns nil when the worker is disabled.
func StartWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler HandlerFunc,
	obs *observability.Observability,
	log logger.Logger,
) *CamundaWorker {
	fields := map[string]interface{}{"taskType": taskType}
	if !wcfg.Enabled {
		log.Info("worker disabled", fields)
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(Instrument(taskType, handler, obs))).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   log,
		taskType: taskType,
	}
}

// Stop closes the worker and waits for in-flight jobs to finish.
func (w *CamundaWorker) Stop() {
	if w == nil {
		return
	}
	w.logger.Info("stopping worker", map[string]interface{}{"taskType": w.taskType})
	w.worker.Close()
	w.worker.AwaitClose()
}

// RecordOutcome bumps the completion or failure counters for a finished job.
func RecordOutcome(ctx context.Context, obs *observability.Observability, taskType, errorCode string) {
	if errorCode == "" {
		metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		obs.RecordJobProcessed(ctx, taskType, "completed")
		return
	}
	metrics.WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
	obs.RecordJobProcessed(ctx, taskType, "failed")
}
