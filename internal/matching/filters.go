// internal/matching/filters.go
package matching

import (
	"fmt"
	"strings"
)

// DefaultBudgetFlexibility is the tolerated overshoot above the category budget.
const DefaultBudgetFlexibility = 0.2

// ApplyHardFilters returns the first hard filter the vendor fails, or nil when the
// vendor is admissible. Rules run in a fixed order and the first hit wins.
func ApplyHardFilters(
	vendor *VendorProfile,
	params *WeddingMatchParams,
	categoryBudget float64,
	isAvailableOnDate bool,
	budgetFlexibility float64,
) *ExclusionReason {
	if !isAvailableOnDate && params.WeddingDate != nil {
		date := params.WeddingDate.Format("2006-01-02")
		return &ExclusionReason{
			Filter:        FilterUnavailable,
			Description:   fmt.Sprintf("Vendor is not available on %s", date),
			VendorValue:   "unavailable",
			RequiredValue: date,
		}
	}

	if maxCap := vendor.MaxGuestCapacity(); maxCap != nil && *maxCap < params.GuestCount {
		return &ExclusionReason{
			Filter:        FilterCapacityExceeded,
			Description:   fmt.Sprintf("Vendor serves at most %d guests, wedding has %d", *maxCap, params.GuestCount),
			VendorValue:   *maxCap,
			RequiredValue: params.GuestCount,
		}
	}

	if minGuests := vendor.MinGuestRequirement(); minGuests != nil && *minGuests > params.GuestCount {
		return &ExclusionReason{
			Filter:        FilterMinGuestsNotMet,
			Description:   fmt.Sprintf("Vendor requires at least %d guests, wedding has %d", *minGuests, params.GuestCount),
			VendorValue:   *minGuests,
			RequiredValue: params.GuestCount,
		}
	}

	if categoryBudget > 0 && vendor.StartingPrice != nil {
		ceiling := categoryBudget * (1 + budgetFlexibility)
		if *vendor.StartingPrice > ceiling {
			return &ExclusionReason{
				Filter:        FilterBudgetExceeded,
				Description:   fmt.Sprintf("Starting price %.2f exceeds the category budget ceiling %.2f", *vendor.StartingPrice, ceiling),
				VendorValue:   *vendor.StartingPrice,
				RequiredValue: ceiling,
			}
		}
	}

	if strings.TrimSpace(params.Location) != "" && len(vendor.ServiceArea) > 0 && !LocationMatches(params.Location, vendor) {
		return &ExclusionReason{
			Filter:        FilterLocationMismatch,
			Description:   fmt.Sprintf("Vendor does not serve %s", params.Location),
			VendorValue:   strings.Join(vendor.ServiceArea, ", "),
			RequiredValue: params.Location,
		}
	}

	return nil
}

// LocationMatches reports whether the wedding location and any of the vendor's
// service areas or its primary location contain one another, ignoring case.
func LocationMatches(location string, vendor *VendorProfile) bool {
	want := strings.ToLower(strings.TrimSpace(location))
	if want == "" {
		return false
	}

	candidates := make([]string, 0, len(vendor.ServiceArea)+1)
	candidates = append(candidates, vendor.ServiceArea...)
	candidates = append(candidates, vendor.Location)

	for _, c := range candidates {
		have := strings.ToLower(strings.TrimSpace(c))
		if have == "" {
			continue
		}
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return true
		}
	}
	return false
}
