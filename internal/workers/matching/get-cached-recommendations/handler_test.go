// internal/workers/matching/get-cached-recommendations/handler_test.go
package getcachedrecommendations

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-matching-workers/internal/common/errors"
	"wedding-matching-workers/internal/common/logger"
	"wedding-matching-workers/internal/matching"
	"wedding-matching-workers/internal/store/rediscache"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeReader struct {
	results  []matching.VendorMatchResult
	err      error
	category matching.Category
}

func (f *fakeReader) GetCached(_ context.Context, _ string, category matching.Category) ([]matching.VendorMatchResult, error) {
	f.category = category
	return f.results, f.err
}

func createTestHandler(t *testing.T, reader Reader) *Handler {
	return NewHandler(LoadConfig(), reader, nil, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		reader         *fakeReader
		validateOutput func(t *testing.T, output *Output, reader *fakeReader)
	}{
		{
			name:  "all categories",
			input: &Input{WeddingPlanID: "plan-1"},
			reader: &fakeReader{results: []matching.VendorMatchResult{
				{VendorID: "hall", Category: matching.CategoryVenue, MatchScore: 80},
				{VendorID: "plov", Category: matching.CategoryCaterer, MatchScore: 70},
			}},
			validateOutput: func(t *testing.T, output *Output, reader *fakeReader) {
				assert.Equal(t, 2, output.Count)
				assert.Empty(t, reader.category)
			},
		},
		{
			name:   "single category normalised",
			input:  &Input{WeddingPlanID: "plan-1", Category: " Caterer"},
			reader: &fakeReader{results: []matching.VendorMatchResult{{VendorID: "plov", MatchScore: 70}}},
			validateOutput: func(t *testing.T, output *Output, reader *fakeReader) {
				assert.Equal(t, 1, output.Count)
				assert.Equal(t, matching.CategoryCaterer, reader.category)
			},
		},
		{
			name:   "nothing cached",
			input:  &Input{WeddingPlanID: "plan-1"},
			reader: &fakeReader{},
			validateOutput: func(t *testing.T, output *Output, _ *fakeReader) {
				assert.NotNil(t, output.Recommendations)
				assert.Zero(t, output.Count)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := createTestHandler(t, tt.reader).Execute(context.Background(), tt.input)
			require.NoError(t, err)
			tt.validateOutput(t, output, tt.reader)
		})
	}
}

func TestHandler_Execute_FromRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	cache := rediscache.NewRecommendationCache(client, time.Hour)
	require.NoError(t, cache.Put(ctx, "plan-1", matching.CategoryVenue, []matching.VendorMatchResult{
		{VendorID: "hall", Category: matching.CategoryVenue, MatchScore: 60},
	}))
	require.NoError(t, cache.Put(ctx, "plan-1", matching.CategoryCaterer, []matching.VendorMatchResult{
		{VendorID: "plov", Category: matching.CategoryCaterer, MatchScore: 90},
	}))

	svc := matching.NewService(matching.DefaultConfig(), nil, nil, nil, cache, logger.NewTestLogger(t))
	handler := createTestHandler(t, svc)

	output, err := handler.Execute(ctx, &Input{WeddingPlanID: "plan-1"})
	require.NoError(t, err)
	require.Equal(t, 2, output.Count)
	assert.Equal(t, "plov", output.Recommendations[0].VendorID)

	output, err = handler.Execute(ctx, &Input{WeddingPlanID: "plan-1", Category: "venue"})
	require.NoError(t, err)
	require.Equal(t, 1, output.Count)
	assert.Equal(t, "hall", output.Recommendations[0].VendorID)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  *Input
		reader *fakeReader
		code   errors.ErrorCode
	}{
		{
			name:   "unknown category",
			input:  &Input{WeddingPlanID: "plan-1", Category: "yacht"},
			reader: &fakeReader{},
			code:   errors.ErrCodeUnknownCategory,
		},
		{
			name:   "cache down",
			input:  &Input{WeddingPlanID: "plan-1"},
			reader: &fakeReader{err: fmt.Errorf("%w: redis: connection refused", matching.ErrUpstreamUnavailable)},
			code:   errors.ErrCodeUpstreamUnavailable,
		},
		{
			name:   "unexpected",
			input:  &Input{WeddingPlanID: "plan-1"},
			reader: &fakeReader{err: stderrors.New("boom")},
			code:   errors.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := createTestHandler(t, tt.reader).Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.FromMatchingError(err).Code)
		})
	}
}

func TestInputSchema(t *testing.T) {
	handler := createTestHandler(t, &fakeReader{})

	assert.True(t, handler.schema.Validate(`{"weddingPlanId": "plan-1", "category": "venue"}`).Valid)
	assert.False(t, handler.schema.Validate(`{"category": "venue"}`).Valid)
	assert.False(t, handler.schema.Validate(`{"weddingPlanId": 7}`).Valid)
}
