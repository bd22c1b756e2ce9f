// internal/workers/matching/find-vendor-matches/handler.go
package findvendormatches

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
	TaskType = "find-vendor-matches"
)

// Matcher runs one category pipeline for a stored wedding plan.
type Matcher interface {
	MatchCategory(ctx context.Context, weddingPlanID string, filters matching.Filters, opts matching.Options, useCache bool) (*matching.CategoryMatches, error)
}

type Handler struct {
	config  *Config
	matcher Matcher
	schema  *validation.Schema
	errors  *errors.ErrorHandler
	obs     *observability.Observability
	logger  logger.Logger
}

func NewHandler(config *Config, matcher Matcher, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		matcher: matcher,
		schema:  validation.MustCompile(inputSchema),
		errors:  errors.NewErrorHandler(log),
		obs:     obs,
		logger:  log,
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
	category, err := matching.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	filters := matching.Filters{Category: category}
	if input.Filters != nil {
		filters.CategoryBudget = input.Filters.CategoryBudget
	}

	var opts matching.Options
	useCache := h.config.UseCacheByDefault
	if input.Options != nil {
		opts = matching.Options{
			IncludeExcluded: input.Options.IncludeExcluded,
			MinScore:        input.Options.MinScore,
			Limit:           input.Options.Limit,
		}
		if input.Options.UseCache != nil {
			useCache = *input.Options.UseCache
		}
	}

	m, err := h.matcher.MatchCategory(ctx, input.WeddingPlanID, filters, opts, useCache)
	if err != nil {
		return nil, err
	}

	output := &Output{
		Category:           category,
		Matches:            m.Results,
		TopRecommendations: matching.TopRecommendations(m.Results),
		ExcludedCount:      len(matching.ExcludedResults(m.Results)),
		CategoryBudget:     m.CategoryBudget,
		FromCache:          m.FromCache,
	}
	if output.Matches == nil {
		output.Matches = []matching.VendorMatchResult{}
	}

	h.logger.Info("vendor matches found", map[string]interface{}{
		"weddingPlanId":  input.WeddingPlanID,
		"category":       category,
		"matches":        len(output.Matches),
		"top":            len(output.TopRecommendations),
		"excluded":       output.ExcludedCount,
		"categoryBudget": output.CategoryBudget,
		"fromCache":      output.FromCache,
	})

	return output, nil
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
