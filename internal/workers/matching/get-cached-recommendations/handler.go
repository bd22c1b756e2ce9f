// internal/workers/matching/get-cached-recommendations/handler.go
package getcachedrecommendations

import (
	"context"
	"encoding/json"
	"strings"

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
	TaskType = "get-cached-recommendations"
)

type Reader interface {
	GetCached(ctx context.Context, weddingPlanID string, category matching.Category) ([]matching.VendorMatchResult, error)
}

type Handler struct {
	config *Config
	reader Reader
	schema *validation.Schema
	errors *errors.ErrorHandler
	obs    *observability.Observability
	logger logger.Logger
}

func NewHandler(config *Config, reader Reader, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		reader: reader,
		schema: validation.MustCompile(inputSchema),
		errors: errors.NewErrorHandler(log),
		obs:    obs,
		logger: log,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var category matching.Category
	if strings.TrimSpace(input.Category) != "" {
		parsed, err := matching.ParseCategory(input.Category)
		if err != nil {
			return nil, err
		}
		category = parsed
	}

	results, err := h.reader.GetCached(ctx, input.WeddingPlanID, category)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []matching.VendorMatchResult{}
	}

	h.logger.Debug("cached recommendations read", map[string]interface{}{
		"weddingPlanId": input.WeddingPlanID,
		"category":      category,
		"count":         len(results),
	})

	return &Output{Recommendations: results, Count: len(results)}, nil
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
