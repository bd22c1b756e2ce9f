// internal/matching/errors.go
package matching

import "errors"

var (
	ErrInvalidInput        = errors.New("INVALID_INPUT")
	ErrNotFound            = errors.New("WEDDING_PLAN_NOT_FOUND")
	ErrUpstreamUnavailable = errors.New("UPSTREAM_UNAVAILABLE")
	ErrCacheWrite          = errors.New("CACHE_WRITE_FAILED")
	ErrUnknownCategory     = errors.New("UNKNOWN_CATEGORY")
)
