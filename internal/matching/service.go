// internal/matching/service.go
package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"wedding-matching-workers/internal/common/logger"
	"wedding-matching-workers/internal/common/metrics"
)

const (
	defaultMinScore       = 30
	defaultLimit          = 20
	defaultCacheTopN      = 10
	defaultMaxConcurrency = 4
)

// VendorCatalog reads vendor profiles. It never pre-filters on price or location.
type VendorCatalog interface {
	ListVendors(ctx context.Context, category Category) ([]VendorProfile, error)
	GetVendorsByIDs(ctx context.Context, ids []string) ([]VendorProfile, error)
}

// AvailabilityReader resolves which vendors have an explicit unavailability record on a date.
type AvailabilityReader interface {
	GetUnavailableVendorIDs(ctx context.Context, vendorIDs []string, date time.Time) (map[string]struct{}, error)
}

// WeddingStore loads matching parameters. A nil result with a nil error means the plan does not exist.
type WeddingStore interface {
	GetWeddingParams(ctx context.Context, weddingPlanID string) (*WeddingMatchParams, error)
}

// RecommendationCache persists the top admissible matches per (wedding plan, category).
// Put replaces every entry for the key; GetCached with an empty category returns all
// fresh entries for the plan.
type RecommendationCache interface {
	GetCached(ctx context.Context, weddingPlanID string, category Category) ([]VendorMatchResult, error)
	Put(ctx context.Context, weddingPlanID string, category Category, results []VendorMatchResult) error
}

type Config struct {
	BudgetFlexibility float64
	MinScore          int
	Limit             int
	CacheTopN         int
	MaxConcurrency    int
	MinPlatePrice     float64
}

func DefaultConfig() Config {
	return Config{
		BudgetFlexibility: DefaultBudgetFlexibility,
		MinScore:          defaultMinScore,
		Limit:             defaultLimit,
		CacheTopN:         defaultCacheTopN,
		MaxConcurrency:    defaultMaxConcurrency,
		MinPlatePrice:     DefaultMinPlatePrice,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BudgetFlexibility < 0 {
		c.BudgetFlexibility = d.BudgetFlexibility
	}
	if c.MinScore < 0 {
		c.MinScore = 0
	}
	if c.Limit <= 0 {
		c.Limit = d.Limit
	}
	if c.CacheTopN <= 0 {
		c.CacheTopN = d.CacheTopN
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = d.MaxConcurrency
	}
	if c.MinPlatePrice <= 0 {
		c.MinPlatePrice = d.MinPlatePrice
	}
	return c
}

// Service runs the matching pipeline. It holds no per-request state.
type Service struct {
	config       Config
	catalog      VendorCatalog
	availability AvailabilityReader
	weddings     WeddingStore
	cache        RecommendationCache
	allocator    Allocator
	logger       logger.Logger
	tracer       trace.Tracer
}

// NewService wires the collaborators. cache may be nil to disable caching.
func NewService(
	cfg Config,
	catalog VendorCatalog,
	availability AvailabilityReader,
	weddings WeddingStore,
	cache RecommendationCache,
	log logger.Logger,
) *Service {
	cfg = cfg.withDefaults()
	return &Service{
		config:       cfg,
		catalog:      catalog,
		availability: availability,
		weddings:     weddings,
		cache:        cache,
		allocator:    NewAllocator(cfg.MinPlatePrice),
		logger:       log.WithFields(map[string]interface{}{"component": "matching"}),
		tracer:       otel.Tracer("wedding-matching-workers/matching"),
	}
}

func (s *Service) Config() Config {
	return s.config
}

// Allocate splits a total budget into per-line bands using the configured plate floor.
func (s *Service) Allocate(totalBudget float64, guestCount int) (*BudgetAllocation, error) {
	return s.allocator.Allocate(totalBudget, guestCount)
}

// CategoryBudget returns the caller's budget when given, else the category's share
// of the total scaled by the couple's priority for it.
func (s *Service) CategoryBudget(params *WeddingMatchParams, filters Filters) float64 {
	if filters.CategoryBudget > 0 {
		return filters.CategoryBudget
	}
	return params.Budget * BudgetShare(filters.Category) * params.Priorities[filters.Category].Multiplier()
}

// LoadWeddingParams surfaces a missing plan as ErrNotFound and store failures as ErrUpstreamUnavailable.
func (s *Service) LoadWeddingParams(ctx context.Context, weddingPlanID string) (*WeddingMatchParams, error) {
	if weddingPlanID == "" {
		return nil, fmt.Errorf("%w: weddingPlanId is required", ErrInvalidInput)
	}
	params, err := s.weddings.GetWeddingParams(ctx, weddingPlanID)
	if err != nil {
		return nil, fmt.Errorf("%w: load wedding plan %s: %w", ErrUpstreamUnavailable, weddingPlanID, err)
	}
	if params == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, weddingPlanID)
	}
	return params, nil
}

// FindMatches runs fetch, availability, hard filter, soft score, sort, truncate and
// cache replacement for one category. Results filtered against a caller budget or
// minimum score are not cached.
func (s *Service) FindMatches(ctx context.Context, params *WeddingMatchParams, filters Filters, opts Options) ([]VendorMatchResult, error) {
	ctx, span := s.tracer.Start(ctx, "matching.FindMatches", trace.WithAttributes(
		attribute.String("wedding_plan_id", params.WeddingPlanID),
		attribute.String("category", string(filters.Category)),
	))
	defer span.End()

	results, err := s.findMatches(ctx, params, filters, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("results", len(results)))
	return results, nil
}

func (s *Service) findMatches(ctx context.Context, params *WeddingMatchParams, filters Filters, opts Options) ([]VendorMatchResult, error) {
	if !filters.Category.Valid() {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidInput, ErrUnknownCategory, filters.Category)
	}
	if params.GuestCount <= 0 {
		return nil, fmt.Errorf("%w: guest count must be positive", ErrInvalidInput)
	}

	minScore := s.config.MinScore
	if opts.MinScore != nil {
		minScore = *opts.MinScore
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = s.config.Limit
	}

	categoryBudget := s.CategoryBudget(params, filters)

	vendors, err := s.catalog.ListVendors(ctx, filters.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s vendors: %w", ErrUpstreamUnavailable, filters.Category, err)
	}

	unavailable := map[string]struct{}{}
	if params.WeddingDate != nil && len(vendors) > 0 {
		ids := make([]string, len(vendors))
		for i, v := range vendors {
			ids[i] = v.ID
		}
		unavailable, err = s.availability.GetUnavailableVendorIDs(ctx, ids, *params.WeddingDate)
		if err != nil {
			return nil, fmt.Errorf("%w: availability lookup: %w", ErrUpstreamUnavailable, err)
		}
	}

	results := make([]VendorMatchResult, 0, len(vendors))
	for i := range vendors {
		vendor := &vendors[i]
		metrics.MatchingVendorsEvaluated.WithLabelValues(string(filters.Category)).Inc()

		_, isUnavailable := unavailable[vendor.ID]
		exclusion := ApplyHardFilters(vendor, params, categoryBudget, !isUnavailable, s.config.BudgetFlexibility)
		if exclusion != nil {
			metrics.MatchingVendorsExcluded.WithLabelValues(string(filters.Category), string(exclusion.Filter)).Inc()
			if !opts.IncludeExcluded {
				continue
			}
		}

		scored := Score(vendor, params, categoryBudget)
		if exclusion == nil && scored.Score < minScore {
			continue
		}

		result := VendorMatchResult{
			VendorID:        vendor.ID,
			VendorName:      vendor.BusinessName,
			Category:        filters.Category,
			MatchScore:      scored.Score,
			Reasons:         scored.Reasons,
			EstimatedPrice:  vendor.StartingPrice,
			AvailableOnDate: !isUnavailable,
			CategoryScores:  scored.CategoryScores,
		}
		if exclusion != nil {
			result.Excluded = true
			result.ExclusionReason = exclusion
			result.MatchScore = 0
		}
		result.Label = ScoreLabel(result.MatchScore)
		results = append(results, result)
	}

	SortResults(results)
	if len(results) > limit {
		results = results[:limit]
	}

	if s.cache != nil && params.WeddingPlanID != "" && usesDefaultBands(filters, opts) {
		if err := s.writeCache(ctx, params.WeddingPlanID, filters.Category, results); err != nil {
			metrics.MatchingCacheWriteFailures.WithLabelValues(string(filters.Category)).Inc()
			s.logger.Warn("recommendation cache write failed", map[string]interface{}{
				"weddingPlanId": params.WeddingPlanID,
				"category":      filters.Category,
				"error":         err.Error(),
			})
		}
	}

	return results, nil
}

func (s *Service) writeCache(ctx context.Context, weddingPlanID string, category Category, results []VendorMatchResult) error {
	top := make([]VendorMatchResult, 0, s.config.CacheTopN)
	for _, r := range results {
		if r.Excluded {
			continue
		}
		top = append(top, r)
		if len(top) == s.config.CacheTopN {
			break
		}
	}
	if err := s.cache.Put(ctx, weddingPlanID, category, top); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheWrite, err)
	}
	return nil
}

// SortResults orders admissible results before excluded ones, then by score descending.
// Ties keep catalog order.
func SortResults(results []VendorMatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Excluded != results[j].Excluded {
			return !results[i].Excluded
		}
		return results[i].MatchScore > results[j].MatchScore
	})
}

// FindMatchesForPlan loads the plan and runs FindMatches for one category.
func (s *Service) FindMatchesForPlan(ctx context.Context, weddingPlanID string, filters Filters, opts Options) ([]VendorMatchResult, error) {
	m, err := s.MatchCategory(ctx, weddingPlanID, filters, opts, false)
	if err != nil {
		return nil, err
	}
	return m.Results, nil
}

// GetOrComputeMatches serves fresh cached matches when present and recomputes otherwise.
// Requests that include excluded vendors or override the budget or minimum score always recompute.
func (s *Service) GetOrComputeMatches(ctx context.Context, weddingPlanID string, filters Filters, opts Options) ([]VendorMatchResult, bool, error) {
	m, err := s.MatchCategory(ctx, weddingPlanID, filters, opts, true)
	if err != nil {
		return nil, false, err
	}
	return m.Results, m.FromCache, nil
}

// CategoryMatches is one category's ranked results and the budget they were filtered against.
type CategoryMatches struct {
	Category       Category
	CategoryBudget float64
	Results        []VendorMatchResult
	FromCache      bool
}

// MatchCategory loads the plan, then serves the category from cache when useCache
// allows it and recomputes otherwise. A missing plan is reported even if stale
// cache rows still exist for it. Cached rows were filtered against the derived
// budget and the default minimum score, so requests overriding either recompute.
func (s *Service) MatchCategory(ctx context.Context, weddingPlanID string, filters Filters, opts Options, useCache bool) (*CategoryMatches, error) {
	if !filters.Category.Valid() {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidInput, ErrUnknownCategory, filters.Category)
	}
	params, err := s.LoadWeddingParams(ctx, weddingPlanID)
	if err != nil {
		return nil, err
	}
	out := &CategoryMatches{
		Category:       filters.Category,
		CategoryBudget: s.CategoryBudget(params, filters),
	}

	if useCache && s.cache != nil && servesFromCache(filters, opts) {
		cached, err := s.cache.GetCached(ctx, weddingPlanID, filters.Category)
		switch {
		case err != nil:
			metrics.MatchingCacheLookups.WithLabelValues("error").Inc()
			s.logger.Warn("recommendation cache read failed", map[string]interface{}{
				"weddingPlanId": weddingPlanID,
				"category":      filters.Category,
				"error":         err.Error(),
			})
		case len(cached) > 0:
			metrics.MatchingCacheLookups.WithLabelValues("hit").Inc()
			if opts.Limit > 0 && len(cached) > opts.Limit {
				cached = cached[:opts.Limit]
			}
			out.Results = cached
			out.FromCache = true
			return out, nil
		default:
			metrics.MatchingCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	out.Results, err = s.FindMatches(ctx, params, filters, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// usesDefaultBands reports whether the request filters against the derived category
// budget and the configured minimum score, the only bands the cache holds.
func usesDefaultBands(filters Filters, opts Options) bool {
	return filters.CategoryBudget <= 0 && opts.MinScore == nil
}

func servesFromCache(filters Filters, opts Options) bool {
	return !opts.IncludeExcluded && usesDefaultBands(filters, opts)
}

// GetCached returns fresh cached matches. An empty category returns every category for the plan.
func (s *Service) GetCached(ctx context.Context, weddingPlanID string, category Category) ([]VendorMatchResult, error) {
	if weddingPlanID == "" {
		return nil, fmt.Errorf("%w: weddingPlanId is required", ErrInvalidInput)
	}
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidInput, ErrUnknownCategory, category)
	}
	if s.cache == nil {
		return []VendorMatchResult{}, nil
	}
	results, err := s.cache.GetCached(ctx, weddingPlanID, category)
	if err != nil {
		return nil, fmt.Errorf("%w: read cached recommendations: %w", ErrUpstreamUnavailable, err)
	}
	return results, nil
}

// AllCategoryMatches maps every category to its ranked results. Failed lists the
// categories whose pipeline errored and were reported empty.
type AllCategoryMatches struct {
	Matches map[Category][]VendorMatchResult
	Failed  []Category
}

// FindAllCategoryMatches loads the plan once and runs every category pipeline with
// at most MaxConcurrency in flight. A failing category yields an empty result set.
func (s *Service) FindAllCategoryMatches(ctx context.Context, weddingPlanID string) (*AllCategoryMatches, error) {
	ctx, span := s.tracer.Start(ctx, "matching.FindAllCategoryMatches", trace.WithAttributes(
		attribute.String("wedding_plan_id", weddingPlanID),
	))
	defer span.End()

	params, err := s.LoadWeddingParams(ctx, weddingPlanID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	perCategory := make([][]VendorMatchResult, len(AllCategories))
	failed := make([]bool, len(AllCategories))

	var g errgroup.Group
	g.SetLimit(s.config.MaxConcurrency)

	for i, category := range AllCategories {
		g.Go(func() error {
			results, err := s.FindMatches(ctx, params, Filters{Category: category}, Options{})
			if err != nil {
				metrics.MatchingCategoryFailures.WithLabelValues(string(category)).Inc()
				s.logger.Warn("category matching failed", map[string]interface{}{
					"weddingPlanId": weddingPlanID,
					"category":      category,
					"error":         err.Error(),
				})
				perCategory[i] = []VendorMatchResult{}
				failed[i] = true
				return nil
			}
			perCategory[i] = results
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("find all category matches: %w", err)
	}

	out := &AllCategoryMatches{
		Matches: make(map[Category][]VendorMatchResult, len(AllCategories)),
		Failed:  []Category{},
	}
	for i, category := range AllCategories {
		out.Matches[category] = perCategory[i]
		if failed[i] {
			out.Failed = append(out.Failed, category)
		}
	}
	span.SetAttributes(attribute.Int("failed_categories", len(out.Failed)))
	return out, nil
}

// IsUpstream reports whether err came from a collaborator failure.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}
