// internal/matching/allocator.go
package matching

import (
	"fmt"
	"math"
)

const (
	// DefaultMinPlatePrice is the per-guest venue+catering floor in the platform's base currency.
	DefaultMinPlatePrice = 15000.0

	coordinatorGuestThreshold = 200
	liveBandBudgetThreshold   = 20000.0
)

// Allocator splits a total wedding budget into per-line price bands.
type Allocator struct {
	MinPlatePrice float64
}

func NewAllocator(minPlatePrice float64) Allocator {
	if minPlatePrice <= 0 {
		minPlatePrice = DefaultMinPlatePrice
	}
	return Allocator{MinPlatePrice: minPlatePrice}
}

// Allocate runs the default allocator.
func Allocate(totalBudget float64, guestCount int) (*BudgetAllocation, error) {
	return NewAllocator(DefaultMinPlatePrice).Allocate(totalBudget, guestCount)
}

func (a Allocator) Allocate(totalBudget float64, guestCount int) (*BudgetAllocation, error) {
	if totalBudget <= 0 || math.IsNaN(totalBudget) || math.IsInf(totalBudget, 0) {
		return nil, fmt.Errorf("%w: total budget must be positive, got %v", ErrInvalidInput, totalBudget)
	}
	if guestCount <= 0 {
		return nil, fmt.Errorf("%w: guest count must be positive, got %d", ErrInvalidInput, guestCount)
	}

	venueBudget := totalBudget * venueShare
	maxPlatePrice := venueBudget / float64(guestCount)

	result := &BudgetAllocation{
		TotalBudget:   totalBudget,
		GuestCount:    guestCount,
		VenueBudget:   venueBudget,
		MaxPlatePrice: maxPlatePrice,
		Breakdown:     make([]BudgetBreakdown, 0, len(lineShares)+1),
		Suggestions:   []string{},
	}

	venue := BudgetBreakdown{
		Category:   LineVenue,
		MinPrice:   venueBudget * 0.8,
		MaxPrice:   venueBudget,
		Percentage: venueShare * 100,
		Reasoning: []string{
			"Allocated 45% for venue and catering",
			fmt.Sprintf("Max plate price: %.2f per guest", maxPlatePrice),
		},
	}
	if maxPlatePrice < a.MinPlatePrice {
		venue.Warning = fmt.Sprintf(
			"Budget allows only %.2f per guest, below the recommended minimum of %.2f. Consider reducing the guest count or increasing the budget.",
			maxPlatePrice, a.MinPlatePrice,
		)
		result.Suggestions = append(result.Suggestions,
			"Consider cutting decor and entertainment budgets to support better catering.")
	}
	result.Breakdown = append(result.Breakdown, venue)

	for _, ls := range lineShares {
		estimate := totalBudget * ls.share
		result.Breakdown = append(result.Breakdown, BudgetBreakdown{
			Category:   ls.line,
			MinPrice:   estimate * 0.8,
			MaxPrice:   estimate * 1.1,
			Percentage: ls.share * 100,
			Reasoning:  []string{fmt.Sprintf("Estimated at %.0f%% of total budget", ls.share*100)},
		})
	}

	if guestCount > coordinatorGuestThreshold {
		result.Suggestions = append(result.Suggestions,
			"Guest count over 200: a dedicated wedding coordinator is highly recommended.")
	}
	if totalBudget > liveBandBudgetThreshold {
		result.Suggestions = append(result.Suggestions,
			"Budget over 20,000: a live band is affordable instead of just a DJ.")
	} else {
		result.Suggestions = append(result.Suggestions,
			"Budget up to 20,000: a DJ is the cost-effective choice for music.")
	}

	return result, nil
}
