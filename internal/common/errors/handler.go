// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler handles job errors with standardized error handling
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Resolution is what HandleJobError will do with a failed job.
type Resolution struct {
	StdErr  *StandardError
	BPMN    *BPMNError
	Retry   bool
	Retries int32
}

// Resolve classifies err and decides between failing the job with retries and
// throwing a BPMN error. Retries never exceed what the job has left.
func Resolve(err error, jobRetries int32) Resolution {
	stdErr := FromMatchingError(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	res := Resolution{StdErr: stdErr, BPMN: bpmnErr}
	if bpmnErr.Retries > 0 && jobRetries > 0 {
		res.Retry = true
		res.Retries = int32(bpmnErr.Retries)
		if jobRetries < res.Retries {
			res.Retries = jobRetries
		}
		// Zeebe treats the value as remaining attempts after this one.
		res.Retries--
	}
	return res
}

// HandleJobError handles any error in a worker job
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	res := Resolve(err, job.Retries)
	h.logError(job, res)

	if res.Retry {
		h.failJobWithRetries(ctx, client, job, res.BPMN, res.Retries)
		return
	}
	h.throwBPMNError(ctx, client, job, res.BPMN)
}

func (h *ErrorHandler) failJobWithRetries(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int32) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(bpmnErr.Message)

	if vars, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(vars)); err == nil {
			h.send(ctx, job, func(ctx context.Context) error {
				_, err := withVars.Send(ctx)
				return err
			})
			return
		}
	}

	h.send(ctx, job, func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	})
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if vars, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(vars)); err == nil {
			h.send(ctx, job, func(ctx context.Context) error {
				_, err := withVars.Send(ctx)
				return err
			})
			return
		}
	}

	h.send(ctx, job, func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	})
}

func (h *ErrorHandler) send(ctx context.Context, job entities.Job, fn func(context.Context) error) {
	// The job context may already be expired; the command must still reach the broker.
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	if err := fn(ctx); err != nil {
		h.logger.Error("failed to report job failure", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
	}
}

func (h *ErrorHandler) logError(job entities.Job, res Resolution) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(res.StdErr.Code),
		"bpmnErrorCode":    res.BPMN.Code,
		"message":          res.BPMN.Message,
		"details":          res.StdErr.Details,
		"retryable":        res.StdErr.Retryable,
		"retry":            res.Retry,
		"retries":          res.Retries,
		"errorCategory":    GetErrorCategory(res.StdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
