// internal/workers/matching/allocate-wedding-budget/handler.go
package allocateweddingbudget

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"wedding-matching-workers/internal/common/camunda"
	"wedding-matching-workers/internal/common/errors"
	"wedding-matching-workers/internal/common/logger"
	"wedding-matching-workers/internal/common/observability"
	"wedding-matching-workers/internal/common/validation"
	"wedding-matching-workers/internal/matching"
)

const (
	TaskType = "allocate-wedding-budget"
)

// Allocator splits a total budget into per-category price bands.
type Allocator interface {
	Allocate(totalBudget float64, guestCount int) (*matching.BudgetAllocation, error)
}

type Handler struct {
	config    *Config
	allocator Allocator
	schema    *validation.Schema
	errors    *errors.ErrorHandler
	obs       *observability.Observability
	logger    logger.Logger
}

func NewHandler(config *Config, allocator Allocator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		allocator: allocator,
		schema:    validation.MustCompile(inputSchema),
		errors:    errors.NewErrorHandler(log),
		obs:       obs,
		logger:    log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	if result := h.schema.Validate(job.Variables); !result.Valid {
		h.failJob(ctx, client, job, errors.NewInvalidInputError(result.Error()))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, errors.NewParseError(err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	allocation, err := h.allocator.Allocate(input.TotalBudget, input.GuestCount)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"totalBudget":   input.TotalBudget,
		"guestCount":    input.GuestCount,
		"maxPlatePrice": allocation.MaxPlatePrice,
	}
	if venue, ok := allocation.Line(matching.LineVenue); ok && venue.Warning != "" {
		fields["warning"] = venue.Warning
		h.logger.Warn("budget allocated below plate floor", fields)
	} else {
		h.logger.Info("budget allocated", fields)
	}

	return &Output{
		TotalBudget:   allocation.TotalBudget,
		GuestCount:    allocation.GuestCount,
		VenueBudget:   allocation.VenueBudget,
		MaxPlatePrice: allocation.MaxPlatePrice,
		Breakdown:     allocation.Breakdown,
		Suggestions:   allocation.Suggestions,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		h.failJob(ctx, client, job, errors.NewInternalError(err))
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	camunda.RecordOutcome(ctx, h.obs, TaskType, "")
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := errors.FromMatchingError(err)
	camunda.RecordOutcome(ctx, h.obs, TaskType, string(stdErr.Code))
	h.errors.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
