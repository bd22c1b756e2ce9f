// internal/matching/allocator_test.go
package matching

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate_HealthyPlateBudget(t *testing.T) {
	result, err := Allocate(20000000, 150)
	require.NoError(t, err)

	assert.InDelta(t, 9000000, result.VenueBudget, 0.001)
	assert.InDelta(t, 60000, result.MaxPlatePrice, 0.001)

	venue, ok := result.Line(LineVenue)
	require.True(t, ok)
	assert.Empty(t, venue.Warning)
	assert.InDelta(t, 7200000, venue.MinPrice, 0.001)
	assert.InDelta(t, 9000000, venue.MaxPrice, 0.001)
	assert.InDelta(t, 45, venue.Percentage, 0.001)

	assert.NotContains(t, result.Suggestions, "Consider cutting decor and entertainment budgets to support better catering.")
	assert.Contains(t, result.Suggestions, "Budget over 20,000: a live band is affordable instead of just a DJ.")
}

func TestAllocate_LowPlateBudgetWarns(t *testing.T) {
	result, err := Allocate(5000000, 500)
	require.NoError(t, err)

	assert.InDelta(t, 4500, result.MaxPlatePrice, 0.001)

	venue, ok := result.Line(LineVenue)
	require.True(t, ok)
	assert.NotEmpty(t, venue.Warning)
	assert.Contains(t, result.Suggestions, "Consider cutting decor and entertainment budgets to support better catering.")
	assert.Contains(t, result.Suggestions, "Guest count over 200: a dedicated wedding coordinator is highly recommended.")
}

func TestAllocate_LineBands(t *testing.T) {
	result, err := Allocate(100000, 100)
	require.NoError(t, err)

	tests := []struct {
		line  string
		share float64
	}{
		{LinePhotographer, 0.10},
		{LineVideographer, 0.08},
		{LineAttire, 0.10},
		{LineDecor, 0.10},
		{LineMusic, 0.05},
		{LineOther, 0.12},
	}

	require.Len(t, result.Breakdown, len(tests)+1)
	assert.Equal(t, LineVenue, result.Breakdown[0].Category)

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			b, ok := result.Line(tt.line)
			require.True(t, ok)
			estimate := 100000 * tt.share
			assert.InDelta(t, estimate*0.8, b.MinPrice, 0.001)
			assert.InDelta(t, estimate*1.1, b.MaxPrice, 0.001)
			assert.InDelta(t, tt.share*100, b.Percentage, 0.001)
			assert.LessOrEqual(t, b.MinPrice, b.MaxPrice)
			assert.NotEmpty(t, b.Reasoning)
		})
	}
}

func TestAllocate_MusicSuggestion(t *testing.T) {
	small, err := NewAllocator(10).Allocate(20000, 50)
	require.NoError(t, err)
	assert.Contains(t, small.Suggestions, "Budget up to 20,000: a DJ is the cost-effective choice for music.")
	assert.NotContains(t, small.Suggestions, "Guest count over 200: a dedicated wedding coordinator is highly recommended.")

	large, err := NewAllocator(10).Allocate(20001, 50)
	require.NoError(t, err)
	assert.Contains(t, large.Suggestions, "Budget over 20,000: a live band is affordable instead of just a DJ.")
}

func TestAllocate_ConfigurableFloor(t *testing.T) {
	result, err := NewAllocator(15).Allocate(10000, 100)
	require.NoError(t, err)

	venue, _ := result.Line(LineVenue)
	assert.Empty(t, venue.Warning, "45 per guest clears a floor of 15")

	result, err = NewAllocator(50).Allocate(10000, 100)
	require.NoError(t, err)
	venue, _ = result.Line(LineVenue)
	assert.NotEmpty(t, venue.Warning)

	assert.Equal(t, DefaultMinPlatePrice, NewAllocator(0).MinPlatePrice)
}

func TestAllocate_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		budget float64
		guests int
	}{
		{"zero budget", 0, 100},
		{"negative budget", -1, 100},
		{"zero guests", 1000, 0},
		{"negative guests", 1000, -5},
		{"NaN budget", math.NaN(), 100},
		{"infinite budget", math.Inf(1), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Allocate(tt.budget, tt.guests)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}
