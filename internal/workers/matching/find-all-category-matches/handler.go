// internal/workers/matching/find-all-category-matches/handler.go
package findallcategorymatches

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"wedding-matching-workers/internal/common/camunda"
	"wedding-matching-workers/internal/common/errors"
	"wedding-matching-workers/internal/common/logger"
	"wedding-matching-workers/internal/common/observability"
	"wedding-matching-workers/internal/common/validation"
	"wedding-matching-workers/internal/matching"
)

const (
	TaskType = "find-all-category-matches"
)

type Matcher interface {
	FindAllCategoryMatches(ctx context.Context, weddingPlanID string) (*matching.AllCategoryMatches, error)
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, eventType string, payload interface{}) (string, error)
}

type Handler struct {
	config    *Config
	matcher   Matcher
	publisher EventPublisher
	schema    *validation.Schema
	errors    *errors.ErrorHandler
	obs       *observability.Observability
	logger    logger.Logger
	now       func() time.Time
}

// NewHandler wires the worker. publisher may be nil when events are disabled.
func NewHandler(config *Config, matcher Matcher, publisher EventPublisher, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		matcher:   matcher,
		publisher: publisher,
		schema:    validation.MustCompile(inputSchema),
		errors:    errors.NewErrorHandler(log),
		obs:       obs,
		logger:    log,
		now:       time.Now,
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
	all, err := h.matcher.FindAllCategoryMatches(ctx, input.WeddingPlanID)
	if err != nil {
		return nil, err
	}

	output := &Output{
		MatchesByCategory: all.Matches,
		FailedCategories:  all.Failed,
	}
	counts := make(map[matching.Category]int, len(all.Matches))
	for category, results := range all.Matches {
		counts[category] = len(results)
		output.TotalMatches += len(results)
	}

	if len(all.Failed) > 0 {
		h.logger.Warn("some categories failed and were returned empty", map[string]interface{}{
			"weddingPlanId":    input.WeddingPlanID,
			"failedCategories": all.Failed,
		})
	}

	if h.config.PublishEvents && h.publisher != nil {
		event := RecommendationsReadyEvent{
			EventID:          uuid.NewString(),
			WeddingPlanID:    input.WeddingPlanID,
			TotalMatches:     output.TotalMatches,
			CountByCategory:  counts,
			FailedCategories: all.Failed,
			OccurredAt:       h.now().UTC(),
		}
		// Matches are already cached, so a lost event is not worth recomputing them.
		if _, err := h.publisher.PublishJSON(ctx, EventRecommendationsReady, event); err != nil {
			h.logger.Warn("failed to publish recommendations event", map[string]interface{}{
				"weddingPlanId": input.WeddingPlanID,
				"error":         err,
			})
		} else {
			output.EventID = event.EventID
		}
	}

	h.logger.Info("all category matches found", map[string]interface{}{
		"weddingPlanId": input.WeddingPlanID,
		"totalMatches":  output.TotalMatches,
		"failed":        len(all.Failed),
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
