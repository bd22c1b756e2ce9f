// internal/workers/matching/send-vendor-enquiries/handler.go
package sendvendorenquiries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"wedding-matching-workers/internal/common/aws"
	"wedding-matching-workers/internal/common/camunda"
	"wedding-matching-workers/internal/common/errors"
	"wedding-matching-workers/internal/common/logger"
	"wedding-matching-workers/internal/common/observability"
	"wedding-matching-workers/internal/common/validation"
	"wedding-matching-workers/internal/matching"
)

const (
	TaskType = "send-vendor-enquiries"
)

type Matcher interface {
	MatchCategory(ctx context.Context, weddingPlanID string, filters matching.Filters, opts matching.Options, useCache bool) (*matching.CategoryMatches, error)
}

// VendorDirectory resolves contact details for matched vendors.
type VendorDirectory interface {
	GetVendorsByIDs(ctx context.Context, ids []string) ([]matching.VendorProfile, error)
}

type EmailSender interface {
	Send(ctx context.Context, email aws.Email) (string, error)
}

type Handler struct {
	config    *Config
	matcher   Matcher
	directory VendorDirectory
	sender    EmailSender
	schema    *validation.Schema
	errors    *errors.ErrorHandler
	obs       *observability.Observability
	logger    logger.Logger
}

func NewHandler(config *Config, matcher Matcher, directory VendorDirectory, sender EmailSender, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		matcher:   matcher,
		directory: directory,
		sender:    sender,
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

type plannedLine struct {
	category matching.Category
	amount   float64
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	date, err := time.Parse(dateLayout, input.WeddingDate)
	if err != nil {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("weddingDate must be YYYY-MM-DD: %q", input.WeddingDate))
	}

	// Reject the whole job before any mail goes out.
	lines := make([]plannedLine, 0, len(input.BudgetBreakdown))
	for _, line := range input.BudgetBreakdown {
		category, err := matching.ParseCategory(line.Category)
		if err != nil {
			return nil, err
		}
		lines = append(lines, plannedLine{category: category, amount: line.Amount})
	}

	perCategory := input.PerCategory
	if perCategory <= 0 {
		perCategory = h.config.DefaultPerCategory
	}

	output := &Output{Enquiries: []Enquiry{}, FailedCategories: []matching.Category{}}
	failed := 0
	var lastErr, lookupErr error

	for _, line := range lines {
		vendors, err := h.pickVendors(ctx, input.WeddingPlanID, line, perCategory)
		if err != nil {
			h.logger.Warn("failed to pick vendors for budget line", map[string]interface{}{
				"weddingPlanId": input.WeddingPlanID,
				"category":      line.category,
				"error":         err.Error(),
			})
			output.FailedCategories = append(output.FailedCategories, line.category)
			if lookupErr == nil {
				lookupErr = err
			}
			continue
		}

		for _, vendor := range vendors {
			enquiry := Enquiry{
				ID:       uuid.NewString(),
				VendorID: vendor.ID,
				Category: line.category,
			}
			if vendor.ContactEmail == "" {
				enquiry.Status = StatusNoContact
				output.Enquiries = append(output.Enquiries, enquiry)
				continue
			}

			messageID, err := h.sender.Send(ctx, aws.Email{
				To:      vendor.ContactEmail,
				ReplyTo: input.ReplyTo,
				Subject: fmt.Sprintf("Wedding enquiry: %s on %s", line.category, date.Format(dateLayout)),
				Body:    enquiryBody(vendor.BusinessName, line, date, enquiry.ID),
			})
			if err != nil {
				h.logger.Warn("failed to send vendor enquiry", map[string]interface{}{
					"vendorId": vendor.ID,
					"category": line.category,
					"error":    err,
				})
				enquiry.Status = StatusFailed
				failed++
				lastErr = err
			} else {
				enquiry.Status = StatusSent
				enquiry.MessageID = messageID
				output.SentCount++
			}
			output.Enquiries = append(output.Enquiries, enquiry)
		}
	}

	// Once any mail went out the job completes; a retry would resend it.
	if output.SentCount == 0 {
		if lookupErr != nil {
			return nil, lookupErr
		}
		if failed > 0 {
			return nil, errors.NewNotificationSendFailedError("email", lastErr)
		}
	}

	h.logger.Info("vendor enquiries sent", map[string]interface{}{
		"weddingPlanId": input.WeddingPlanID,
		"sent":          output.SentCount,
		"failed":        failed,
		"failedLines":   len(output.FailedCategories),
		"total":         len(output.Enquiries),
	})

	return output, nil
}

// pickVendors returns the profiles of the best admissible matches for one budget line.
func (h *Handler) pickVendors(ctx context.Context, weddingPlanID string, line plannedLine, n int) ([]matching.VendorProfile, error) {
	matches, err := h.matcher.MatchCategory(ctx, weddingPlanID,
		matching.Filters{Category: line.category, CategoryBudget: line.amount},
		matching.Options{}, true)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, n)
	for _, r := range matches.Results {
		if r.Excluded {
			continue
		}
		ids = append(ids, r.VendorID)
		if len(ids) == n {
			break
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	profiles, err := h.directory.GetVendorsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]matching.VendorProfile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	out := make([]matching.VendorProfile, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			p = matching.VendorProfile{ID: id}
		}
		out = append(out, p)
	}
	return out, nil
}

func enquiryBody(businessName string, line plannedLine, date time.Time, enquiryID string) string {
	greeting := "Hello"
	if businessName != "" {
		greeting = "Hello " + businessName
	}
	return fmt.Sprintf(
		"%s,\n\nA couple is looking for a %s with a budget of about %.0f for their wedding on %s.\n"+
			"Please reply to this email if you are available.\n\nReference: %s\n",
		greeting, line.category, line.amount, date.Format(dateLayout), enquiryID,
	)
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
