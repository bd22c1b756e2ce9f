// internal/store/guard.go
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"wedding-matching-workers/internal/common/logger"
	"wedding-matching-workers/internal/common/metrics"
	"wedding-matching-workers/internal/matching"
)

// BreakerSettings configures the breakers in front of catalog and availability reads.
type BreakerSettings struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

func newBreaker[T any](name string, s BreakerSettings, log logger.Logger) *gobreaker.CircuitBreaker[T] {
	if s.FailureThreshold == 0 {
		s.FailureThreshold = DefaultBreakerSettings().FailureThreshold
	}
	metrics.UpstreamBreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.FailureThreshold
		},
		// Callers giving up is not an upstream fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.UpstreamBreakerState.WithLabelValues(name).Set(float64(to))
			log.Warn("circuit breaker state changed", map[string]interface{}{
				"upstream": name,
				"from":     from.String(),
				"to":       to.String(),
			})
		},
	})
}

func breakerError(name string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s breaker: %v", matching.ErrUpstreamUnavailable, name, err)
	}
	return err
}

// GuardedCatalog fails fast once the catalog has failed repeatedly.
type GuardedCatalog struct {
	next matching.VendorCatalog
	cb   *gobreaker.CircuitBreaker[[]matching.VendorProfile]
}

func NewGuardedCatalog(next matching.VendorCatalog, s BreakerSettings, log logger.Logger) *GuardedCatalog {
	return &GuardedCatalog{next: next, cb: newBreaker[[]matching.VendorProfile]("vendor-catalog", s, log)}
}

func (g *GuardedCatalog) ListVendors(ctx context.Context, category matching.Category) ([]matching.VendorProfile, error) {
	out, err := g.cb.Execute(func() ([]matching.VendorProfile, error) {
		return g.next.ListVendors(ctx, category)
	})
	if err != nil {
		return nil, breakerError(g.cb.Name(), err)
	}
	return out, nil
}

func (g *GuardedCatalog) GetVendorsByIDs(ctx context.Context, ids []string) ([]matching.VendorProfile, error) {
	out, err := g.cb.Execute(func() ([]matching.VendorProfile, error) {
		return g.next.GetVendorsByIDs(ctx, ids)
	})
	if err != nil {
		return nil, breakerError(g.cb.Name(), err)
	}
	return out, nil
}

func (g *GuardedCatalog) State() gobreaker.State {
	return g.cb.State()
}

// GuardedAvailability wraps availability lookups the same way.
type GuardedAvailability struct {
	next matching.AvailabilityReader
	cb   *gobreaker.CircuitBreaker[map[string]struct{}]
}

func NewGuardedAvailability(next matching.AvailabilityReader, s BreakerSettings, log logger.Logger) *GuardedAvailability {
	return &GuardedAvailability{next: next, cb: newBreaker[map[string]struct{}]("vendor-availability", s, log)}
}

func (g *GuardedAvailability) GetUnavailableVendorIDs(ctx context.Context, vendorIDs []string, date time.Time) (map[string]struct{}, error) {
	out, err := g.cb.Execute(func() (map[string]struct{}, error) {
		return g.next.GetUnavailableVendorIDs(ctx, vendorIDs, date)
	})
	if err != nil {
		return nil, breakerError(g.cb.Name(), err)
	}
	return out, nil
}

func (g *GuardedAvailability) State() gobreaker.State {
	return g.cb.State()
}
