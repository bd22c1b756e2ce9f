// internal/common/errors/errors.go
// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"wedding-matching-workers/internal/matching"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput           ErrorCode = "INVALID_INPUT"
	ErrCodeUnknownCategory        ErrorCode = "UNKNOWN_CATEGORY"
	ErrCodeWeddingPlanNotFound    ErrorCode = "WEDDING_PLAN_NOT_FOUND"
	ErrCodeUpstreamUnavailable    ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamTimeout        ErrorCode = "UPSTREAM_TIMEOUT"
	ErrCodeCacheWriteFailed       ErrorCode = "CACHE_WRITE_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeParseError             ErrorCode = "PARSE_ERROR"
	ErrCodeInternalError          ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func newStandardError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewInvalidInputError(details string) *StandardError {
	return newStandardError(ErrCodeInvalidInput, "Invalid input", details, false)
}

func NewUnknownCategoryError(category string) *StandardError {
	return newStandardError(ErrCodeUnknownCategory, "Unknown vendor category", fmt.Sprintf("category: %s", category), false)
}

func NewWeddingPlanNotFoundError(planID string) *StandardError {
	return newStandardError(ErrCodeWeddingPlanNotFound, "Wedding plan not found", fmt.Sprintf("weddingPlanId: %s", planID), false)
}

// NewUpstreamUnavailableError creates a retryable error for catalog, availability or cache outages.
func NewUpstreamUnavailableError(err error) *StandardError {
	return newStandardError(ErrCodeUpstreamUnavailable, "Upstream dependency unavailable", err.Error(), true)
}

func NewUpstreamTimeoutError(operation string) *StandardError {
	return newStandardError(ErrCodeUpstreamTimeout, "Upstream call timed out", fmt.Sprintf("operation: %s", operation), true)
}

func NewCacheWriteFailedError(err error) *StandardError {
	return newStandardError(ErrCodeCacheWriteFailed, "Recommendation cache write failed", err.Error(), true)
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return newStandardError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()), true)
}

func NewParseError(err error) *StandardError {
	return newStandardError(ErrCodeParseError, "Failed to parse job variables", err.Error(), false)
}

func NewInternalError(err error) *StandardError {
	return newStandardError(ErrCodeInternalError, "Unexpected error", err.Error(), false)
}

// FromMatchingError classifies an error returned by the matching engine or its stores.
// Errors that are already a StandardError pass through untouched.
func FromMatchingError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}

	switch {
	case stderrors.Is(err, matching.ErrUnknownCategory):
		return newStandardError(ErrCodeUnknownCategory, "Unknown vendor category", err.Error(), false)
	case stderrors.Is(err, matching.ErrInvalidInput):
		return NewInvalidInputError(err.Error())
	case stderrors.Is(err, matching.ErrNotFound):
		return newStandardError(ErrCodeWeddingPlanNotFound, "Wedding plan not found", err.Error(), false)
	case stderrors.Is(err, context.DeadlineExceeded):
		return newStandardError(ErrCodeUpstreamTimeout, "Upstream call timed out", err.Error(), true)
	case stderrors.Is(err, matching.ErrCacheWrite):
		return NewCacheWriteFailedError(err)
	case stderrors.Is(err, matching.ErrUpstreamUnavailable):
		return NewUpstreamUnavailableError(err)
	default:
		return NewInternalError(err)
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the codes caught by BPMN boundary events.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:           "INVALID_INPUT",
	ErrCodeUnknownCategory:        "INVALID_INPUT",
	ErrCodeWeddingPlanNotFound:    "WEDDING_PLAN_NOT_FOUND",
	ErrCodeUpstreamUnavailable:    "UPSTREAM_UNAVAILABLE",
	ErrCodeUpstreamTimeout:        "UPSTREAM_UNAVAILABLE",
	ErrCodeCacheWriteFailed:       "UPSTREAM_UNAVAILABLE",
	ErrCodeNotificationSendFailed: "NOTIFICATION_SEND_FAILED",
	ErrCodeParseError:             "INVALID_INPUT",
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeUpstreamUnavailable,
		ErrCodeCacheWriteFailed,
		ErrCodeNotificationSendFailed:
		return 3

	case ErrCodeUpstreamTimeout:
		return 2

	default:
		return 0 // business errors
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "UPSTREAM") || strings.Contains(codeStr, "CACHE"):
		return "UPSTREAM"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "LOOKUP"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "PARSE") || strings.Contains(codeStr, "CATEGORY"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
