// internal/matching/service_test.go
package matching

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-matching-workers/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeCatalog struct {
	mu      sync.Mutex
	vendors map[Category][]VendorProfile
	errs    map[Category]error
	calls   int
}

func (f *fakeCatalog) ListVendors(_ context.Context, category Category) ([]VendorProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.errs[category]; err != nil {
		return nil, err
	}
	out := make([]VendorProfile, len(f.vendors[category]))
	copy(out, f.vendors[category])
	return out, nil
}

func (f *fakeCatalog) GetVendorsByIDs(_ context.Context, ids []string) ([]VendorProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []VendorProfile
	for _, list := range f.vendors {
		for _, v := range list {
			for _, id := range ids {
				if v.ID == id {
					out = append(out, v)
				}
			}
		}
	}
	return out, nil
}

type fakeAvailability struct {
	mu          sync.Mutex
	unavailable map[string]struct{}
	err         error
	calls       int
	lastIDs     []string
}

func (f *fakeAvailability) GetUnavailableVendorIDs(_ context.Context, ids []string, _ time.Time) (map[string]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastIDs = ids
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]struct{}{}
	for _, id := range ids {
		if _, ok := f.unavailable[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

type fakeWeddings struct {
	plans map[string]*WeddingMatchParams
	err   error
}

func (f *fakeWeddings) GetWeddingParams(_ context.Context, id string) (*WeddingMatchParams, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.plans[id], nil
}

type fakeCache struct {
	mu     sync.Mutex
	data   map[string][]VendorMatchResult
	puts   int
	putErr error
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]VendorMatchResult{}}
}

func (f *fakeCache) GetCached(_ context.Context, planID string, category Category) ([]VendorMatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if category == "" {
		var out []VendorMatchResult
		for _, c := range AllCategories {
			out = append(out, f.data[planID+"/"+string(c)]...)
		}
		return out, nil
	}
	return f.data[planID+"/"+string(category)], nil
}

func (f *fakeCache) Put(_ context.Context, planID string, category Category, results []VendorMatchResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.data[planID+"/"+string(category)] = results
	return nil
}

func makeVendor(id string, category Category, price, rating float64) VendorProfile {
	return VendorProfile{
		ID:            id,
		BusinessName:  "Vendor " + id,
		Category:      category,
		StartingPrice: floatPtr(price),
		ServiceArea:   []string{"Tashkent"},
		Rating:        floatPtr(rating),
	}
}

func createServiceParams() *WeddingMatchParams {
	return &WeddingMatchParams{
		WeddingPlanID: "plan-1",
		Budget:        100000,
		GuestCount:    150,
		Location:      "Tashkent",
	}
}

func newTestService(t *testing.T, catalog *fakeCatalog, availability *fakeAvailability, weddings *fakeWeddings, cache RecommendationCache) *Service {
	t.Helper()
	if availability == nil {
		availability = &fakeAvailability{}
	}
	if weddings == nil {
		weddings = &fakeWeddings{plans: map[string]*WeddingMatchParams{"plan-1": createServiceParams()}}
	}
	return NewService(DefaultConfig(), catalog, availability, weddings, cache, logger.NewTestLogger(t))
}

// ==========================
// FindMatches Tests
// ==========================

func TestFindMatches_ExcludesAndSorts(t *testing.T) {
	small := makeVendor("small", CategoryVenue, 40000, 4)
	small.CapacityMax = intPtr(100)

	catalog := &fakeCatalog{vendors: map[Category][]VendorProfile{
		CategoryVenue: {
			makeVendor("low", CategoryVenue, 40000, 2),
			small,
			makeVendor("high", CategoryVenue, 40000, 5),
		},
	}}
	svc := newTestService(t, catalog, nil, nil, nil)

	results, err := svc.FindMatches(context.Background(), createServiceParams(), Filters{Category: CategoryVenue}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "high", results[0].VendorID)
	assert.Equal(t, "low", results[1].VendorID)
	for _, r := range results {
		assert.False(t, r.Excluded)
		assert.True(t, r.AvailableOnDate)
		assert.Equal(t, ScoreLabel(r.MatchScore), r.Label)
	}

	results, err = svc.FindMatches(context.Background(), createServiceParams(), Filters{Category: CategoryVenue}, Options{IncludeExcluded: true})
	require.NoError(t, err)
	require.Len(t, results, 3)
	last := results[2]
	assert.Equal(t, "small", last.VendorID)
	assert.True(t, last.Excluded)
	assert.Equal(t, 0, last.MatchScore)
	require.NotNil(t, last.ExclusionReason)
	assert.Equal(t, FilterCapacityExceeded, last.ExclusionReason.Filter)
	assert.Equal(t, 100, last.ExclusionReason.VendorValue)
	assert.Equal(t, 150, last.ExclusionReason.RequiredValue)
}

func TestFindMatches_MinScoreAndLimit(t *testing.T) {
	var vendors []VendorProfile
	for i := 0; i < 30; i++ {
		vendors = append(vendors, makeVendor(fmt.Sprintf("v%02d", i), CategoryPhotographer, 9000, 4))
	}
	weak := makeVendor("weak", CategoryPhotographer, 100000, 0)
	weak.ServiceArea = nil
	vendors = append(vendors, weak)

	catalog := &fakeCatalog{vendors: map[Category][]VendorProfile{CategoryPhotographer: vendors}}
	svc := newTestService(t, catalog, nil, nil, nil)
	params := createServiceParams()

	results, err := svc.FindMatches(context.Background(), params, Filters{Category: CategoryPhotographer, CategoryBudget: 200000}, Options{})
	require.NoError(t, err)
	assert.Len(t, results, 20)
	assert.Equal(t, "v00", results[0].VendorID, "ties keep catalog order")

	results, err = svc.FindMatches(context.Background(), params, Filters{Category: CategoryPhotographer, CategoryBudget: 200000}, Options{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, results, 30, "weak vendor scores below the default minimum")

	zero := 0
	results, err = svc.FindMatches(context.Background(), params, Filters{Category: CategoryPhotographer, CategoryBudget: 200000}, Options{Limit: 50, MinScore: &zero})
	require.NoError(t, err)
	assert.Len(t, results, 31)
}

func TestFindMatches_AvailabilityLookup(t *testing.T) {
	catalog := &fakeCatalog{vendors: map[Category][]VendorProfile{
		CategoryVenue: {
			makeVendor("free", CategoryVenue, 40000, 4),
			makeVendor("booked", CategoryVenue, 40000, 5),
		},
	}}
	availability := &fakeAvailability{unavailable: map[string]struct{}{"booked": {}}}
	svc := newTestService(t, catalog, availability, nil, nil)

	params := createServiceParams()
	results, err := svc.FindMatches(context.Background(), params, Filters{Category: CategoryVenue}, Options{})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 0, availability.calls, "no date means no availability lookup")

	params.WeddingDate = datePtr("2026-09-12")
	results, err = svc.FindMatches(context.Background(), params, Filters{Category: CategoryVenue}, Options{IncludeExcluded: true})
	require.NoError(t, err)
	assert.Equal(t, 1, availability.calls)
	assert.ElementsMatch(t, []string{"free", "booked"}, availability.lastIDs)
	require.Len(t, results, 2)
	assert.Equal(t, "free", results[0].VendorID)
	assert.Equal(t, "booked", results[1].VendorID)
	assert.False(t, results[1].AvailableOnDate)
	assert.Equal(t, FilterUnavailable, results[1].ExclusionReason.Filter)
}

func TestFindMatches_UpstreamFailures(t *testing.T) {
	catalog := &fakeCatalog{
		vendors: map[Category][]VendorProfile{CategoryVenue: {makeVendor("a", CategoryVenue, 1, 4)}},
		errs:    map[Category]error{CategoryCaterer: errors.New("connection refused")},
	}
	availability := &fakeAvailability{err: errors.New("timeout")}
	svc := newTestService(t, catalog, availability, nil, nil)

	_, err := svc.FindMatches(context.Background(), createServiceParams(), Filters{Category: CategoryCaterer}, Options{})
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))

	params := createServiceParams()
	params.WeddingDate = datePtr("2026-09-12")
	_, err = svc.FindMatches(context.Background(), params, Filters{Category: CategoryVenue}, Options{})
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))

	_, err = svc.FindMatches(context.Background(), params, Filters{Category: "balloons"}, Options{})
	assert.True(t, errors.Is(err, ErrUnknownCategory))

	catalog.errs[CategoryMusic] = fmt.Errorf("query vendors by category: %w", context.DeadlineExceeded)
	_, err = svc.FindMatches(context.Background(), createServiceParams(), Filters{Category: CategoryMusic}, Options{})
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "the cause stays in the chain")

	svc = newTestService(t, catalog, nil, &fakeWeddings{err: fmt.Errorf("query wedding plan: %w", context.DeadlineExceeded)}, nil)
	_, err = svc.LoadWeddingParams(context.Background(), "plan-1")
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestFindMatches_RepeatableRanking(t *testing.T) {
	tied := func(prefix string, n int) []VendorProfile {
		var out []VendorProfile
		for i := 0; i < n; i++ {
			out = append(out, makeVendor(fmt.Sprintf("%s%02d", prefix, i), CategoryVenue, 40000, 4))
		}
		return out
	}
	small := makeVendor("small", CategoryVenue, 40000, 5)
	small.CapacityMax = intPtr(80)
	pricey := makeVendor("pricey", CategoryVenue, 90000, 5)

	tests := []struct {
		name    string
		vendors []VendorProfile
		date    *time.Time
		opts    Options
	}{
		{
			name:    "tied scores",
			vendors: tied("t", 8),
		},
		{
			name:    "tied scores with excluded vendors",
			vendors: append([]VendorProfile{small, pricey}, tied("t", 5)...),
			opts:    Options{IncludeExcluded: true},
		},
		{
			name:    "mixed ratings truncated",
			vendors: append(tied("t", 25), makeVendor("top", CategoryVenue, 45000, 5)),
			opts:    Options{Limit: 7},
		},
		{
			name:    "unavailable vendors included",
			vendors: append([]VendorProfile{makeVendor("booked", CategoryVenue, 40000, 5)}, tied("t", 3)...),
			date:    datePtr("2026-09-12"),
			opts:    Options{IncludeExcluded: true},
		},
	}

	type rankedRow struct {
		VendorID string
		Score    int
		Excluded bool
	}
	ranked := func(results []VendorMatchResult) []rankedRow {
		out := make([]rankedRow, len(results))
		for i, r := range results {
			out[i] = rankedRow{r.VendorID, r.MatchScore, r.Excluded}
		}
		return out
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &fakeCatalog{vendors: map[Category][]VendorProfile{CategoryVenue: tt.vendors}}
			availability := &fakeAvailability{unavailable: map[string]struct{}{"booked": {}}}
			svc := newTestService(t, catalog, availability, nil, nil)
			params := createServiceParams()
			params.WeddingDate = tt.date

			first, err := svc.FindMatches(context.Background(), params, Filters{Category: CategoryVenue}, tt.opts)
			require.NoError(t, err)
			require.NotEmpty(t, first)

			second, err := svc.FindMatches(context.Background(), params, Filters{Category: CategoryVenue}, tt.opts)
			require.NoError(t, err)

			assert.Equal(t, ranked(first), ranked(second))
		})
	}
}

func TestFindMatches_CacheReplacement(t *testing.T) {
	var vendors []VendorProfile
	for i := 0; i < 12; i++ {
		vendors = append(vendors, makeVendor(fmt.Sprintf("v%02d", i), CategoryVenue, 40000, 4))
	}
	tooSmall := makeVendor("tiny", CategoryVenue, 40000, 5)
	tooSmall.CapacityMax = intPtr(10)
	vendors = append([]VendorProfile{tooSmall}, vendors...)

	catalog := &fakeCatalog{vendors: map[Category][]VendorProfile{CategoryVenue: vendors}}
	cache := newFakeCache()
	svc := newTestService(t, catalog, nil, nil, cache)

	_, err := svc.FindMatches(context.Background(), createServiceParams(), Filters{Category: CategoryVenue}, Options{IncludeExcluded: true})
	require.NoError(t, err)

	cached := cache.data["plan-1/venue"]
	assert.Len(t, cached, 10)
	for _, r := range cached {
		assert.False(t, r.Excluded)
	}

	catalog.vendors[CategoryVenue] = nil
	results, err := svc.FindMatches(context.Background(), createServiceParams(), Filters{Category: CategoryVenue}, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 2, cache.puts)
	assert.Empty(t, cache.data["plan-1/venue"], "stale rows are replaced even when nothing matches")
}

func TestFindMatches_CacheWriteFailureIsNonFatal(t *testing.T) {
	catalog := &fakeCatalog{vendors: map[Category][]VendorProfile{
		CategoryVenue: {makeVendor("a", CategoryVenue, 40000, 4)},
	}}
	cache := newFakeCache()
	cache.putErr = errors.New("disk full")
	svc := newTestService(t, catalog, nil, nil, cache)

	results, err := svc.FindMatches(context.Background(), createServiceParams(), Filters{Category: CategoryVenue}, Options{})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestCategoryBudget(t *testing.T) {
	svc := newTestService(t, &fakeCatalog{}, nil, nil, nil)
	params := createServiceParams()
	params.Priorities = map[Category]Priority{
		CategoryPhotographer: PriorityHigh,
		CategoryMusic:        PriorityLow,
	}

	assert.InDelta(t, 45000, svc.CategoryBudget(params, Filters{Category: CategoryVenue}), 0.001)
	assert.InDelta(t, 45000, svc.CategoryBudget(params, Filters{Category: CategoryCaterer}), 0.001)
	assert.InDelta(t, 15000, svc.CategoryBudget(params, Filters{Category: CategoryPhotographer}), 0.001)
	assert.InDelta(t, 3500, svc.CategoryBudget(params, Filters{Category: CategoryMusic}), 0.001)
	assert.InDelta(t, 12000, svc.CategoryBudget(params, Filters{Category: CategoryMakeup}), 0.001)
	assert.InDelta(t, 777, svc.CategoryBudget(params, Filters{Category: CategoryMusic, CategoryBudget: 777}), 0.001)
}

// ==========================
// Plan-level Tests
// ==========================

func TestFindMatchesForPlan_NotFound(t *testing.T) {
	svc := newTestService(t, &fakeCatalog{}, nil, &fakeWeddings{plans: map[string]*WeddingMatchParams{}}, nil)

	_, err := svc.FindMatchesForPlan(context.Background(), "missing", Filters{Category: CategoryVenue}, Options{})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.FindMatchesForPlan(context.Background(), "", Filters{Category: CategoryVenue}, Options{})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	svc = newTestService(t, &fakeCatalog{}, nil, &fakeWeddings{err: errors.New("db down")}, nil)
	_, err = svc.FindMatchesForPlan(context.Background(), "plan-1", Filters{Category: CategoryVenue}, Options{})
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
}

func TestGetOrComputeMatches(t *testing.T) {
	catalog := &fakeCatalog{vendors: map[Category][]VendorProfile{
		CategoryVenue: {makeVendor("a", CategoryVenue, 40000, 4)},
	}}
	cache := newFakeCache()
	svc := newTestService(t, catalog, nil, nil, cache)

	results, fromCache, err := svc.GetOrComputeMatches(context.Background(), "plan-1", Filters{Category: CategoryVenue}, Options{})
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, catalog.calls)

	results, fromCache, err = svc.GetOrComputeMatches(context.Background(), "plan-1", Filters{Category: CategoryVenue}, Options{})
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, catalog.calls)

	_, fromCache, err = svc.GetOrComputeMatches(context.Background(), "plan-1", Filters{Category: CategoryVenue}, Options{IncludeExcluded: true})
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, 2, catalog.calls)
}

func TestMatchCategory(t *testing.T) {
	catalog := &fakeCatalog{vendors: map[Category][]VendorProfile{
		CategoryVenue: {makeVendor("a", CategoryVenue, 40000, 4), makeVendor("b", CategoryVenue, 42000, 5)},
	}}
	cache := newFakeCache()
	svc := newTestService(t, catalog, nil, nil, cache)
	ctx := context.Background()

	m, err := svc.MatchCategory(ctx, "plan-1", Filters{Category: CategoryVenue}, Options{}, true)
	require.NoError(t, err)
	assert.InDelta(t, 45000, m.CategoryBudget, 0.001)
	assert.False(t, m.FromCache)
	assert.Len(t, m.Results, 2)

	m, err = svc.MatchCategory(ctx, "plan-1", Filters{Category: CategoryVenue}, Options{Limit: 1}, true)
	require.NoError(t, err)
	assert.True(t, m.FromCache)
	assert.InDelta(t, 45000, m.CategoryBudget, 0.001)
	assert.Len(t, m.Results, 1, "limit applies to cached rows")

	m, err = svc.MatchCategory(ctx, "plan-1", Filters{Category: CategoryVenue}, Options{}, false)
	require.NoError(t, err)
	assert.False(t, m.FromCache)
	assert.Equal(t, 2, catalog.calls)

	cache.data["gone/venue"] = []VendorMatchResult{{VendorID: "a"}}
	_, err = svc.MatchCategory(ctx, "gone", Filters{Category: CategoryVenue}, Options{}, true)
	assert.True(t, errors.Is(err, ErrNotFound), "cached rows do not hide a deleted plan")

	_, err = svc.MatchCategory(ctx, "plan-1", Filters{Category: "yacht"}, Options{}, true)
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestMatchCategory_OverridesSkipCache(t *testing.T) {
	catalog := &fakeCatalog{vendors: map[Category][]VendorProfile{
		CategoryVenue: {makeVendor("a", CategoryVenue, 20000, 2), makeVendor("b", CategoryVenue, 42000, 5)},
	}}
	cache := newFakeCache()
	svc := newTestService(t, catalog, nil, nil, cache)
	ctx := context.Background()

	m, err := svc.MatchCategory(ctx, "plan-1", Filters{Category: CategoryVenue}, Options{}, true)
	require.NoError(t, err)
	require.Len(t, m.Results, 2)
	assert.Equal(t, "b", m.Results[0].VendorID)
	assert.Equal(t, 1, cache.puts)

	m, err = svc.MatchCategory(ctx, "plan-1", Filters{Category: CategoryVenue, CategoryBudget: 30000}, Options{}, true)
	require.NoError(t, err)
	assert.False(t, m.FromCache, "caller budget recomputes")
	require.Len(t, m.Results, 1)
	assert.Equal(t, "a", m.Results[0].VendorID, "b is over the 36000 ceiling")

	high := 80
	m, err = svc.MatchCategory(ctx, "plan-1", Filters{Category: CategoryVenue}, Options{MinScore: &high}, true)
	require.NoError(t, err)
	assert.False(t, m.FromCache, "caller minimum score recomputes")
	for _, r := range m.Results {
		assert.GreaterOrEqual(t, r.MatchScore, high)
	}
	assert.Equal(t, 3, catalog.calls)
	assert.Equal(t, 1, cache.puts, "override runs leave the cached rows alone")

	m, err = svc.MatchCategory(ctx, "plan-1", Filters{Category: CategoryVenue}, Options{}, true)
	require.NoError(t, err)
	assert.True(t, m.FromCache)
	assert.Len(t, m.Results, 2)
	assert.Equal(t, 3, catalog.calls)
}

func TestMatchCategory_CacheReadFailureRecomputes(t *testing.T) {
	catalog := &fakeCatalog{vendors: map[Category][]VendorProfile{
		CategoryVenue: {makeVendor("a", CategoryVenue, 40000, 4)},
	}}
	cache := newFakeCache()
	cache.getErr = errors.New("redis timeout")
	svc := newTestService(t, catalog, nil, nil, cache)

	m, err := svc.MatchCategory(context.Background(), "plan-1", Filters{Category: CategoryVenue}, Options{}, true)
	require.NoError(t, err)
	assert.False(t, m.FromCache)
	assert.Len(t, m.Results, 1)
}

func TestGetCached(t *testing.T) {
	cache := newFakeCache()
	cache.data["plan-1/venue"] = []VendorMatchResult{{VendorID: "a", Category: CategoryVenue}}
	cache.data["plan-1/music"] = []VendorMatchResult{{VendorID: "b", Category: CategoryMusic}}
	svc := newTestService(t, &fakeCatalog{}, nil, nil, cache)

	all, err := svc.GetCached(context.Background(), "plan-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	venue, err := svc.GetCached(context.Background(), "plan-1", CategoryVenue)
	require.NoError(t, err)
	assert.Len(t, venue, 1)

	_, err = svc.GetCached(context.Background(), "plan-1", "balloons")
	assert.True(t, errors.Is(err, ErrUnknownCategory))

	cache.getErr = errors.New("redis down")
	_, err = svc.GetCached(context.Background(), "plan-1", CategoryVenue)
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
}

func TestFindAllCategoryMatches_IsolatesFailures(t *testing.T) {
	catalog := &fakeCatalog{
		vendors: map[Category][]VendorProfile{
			CategoryVenue:        {makeVendor("venue-1", CategoryVenue, 40000, 4)},
			CategoryPhotographer: {makeVendor("photo-1", CategoryPhotographer, 9000, 5)},
		},
		errs: map[Category]error{CategoryCaterer: errors.New("shard unavailable")},
	}
	svc := newTestService(t, catalog, nil, nil, newFakeCache())

	out, err := svc.FindAllCategoryMatches(context.Background(), "plan-1")
	require.NoError(t, err)

	assert.Len(t, out.Matches, len(AllCategories))
	assert.Equal(t, []Category{CategoryCaterer}, out.Failed)
	assert.Empty(t, out.Matches[CategoryCaterer])
	require.Len(t, out.Matches[CategoryVenue], 1)
	assert.Equal(t, "venue-1", out.Matches[CategoryVenue][0].VendorID)
	require.Len(t, out.Matches[CategoryPhotographer], 1)
	assert.Empty(t, out.Matches[CategoryMusic])
	assert.Equal(t, len(AllCategories), catalog.calls)
}

func TestFindAllCategoryMatches_PlanNotFound(t *testing.T) {
	svc := newTestService(t, &fakeCatalog{}, nil, &fakeWeddings{plans: map[string]*WeddingMatchParams{}}, nil)

	_, err := svc.FindAllCategoryMatches(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
