// internal/matching/models.go
package matching

import (
	"encoding/json"
	"time"
)

// WeddingMatchParams is a read-only snapshot of a wedding plan for one matching run.
type WeddingMatchParams struct {
	WeddingPlanID string                `json:"weddingPlanId"`
	WeddingDate   *time.Time            `json:"weddingDate,omitempty"`
	Budget        float64               `json:"budget"`
	GuestCount    int                   `json:"guestCount"`
	Style         string                `json:"style,omitempty"`
	Styles        []string              `json:"styles,omitempty"`
	Location      string                `json:"location,omitempty"`
	Languages     []string              `json:"languages,omitempty"`
	Priorities    map[Category]Priority `json:"priorities,omitempty"`
	Preferences   Preferences           `json:"preferences"`
}

// Preferences holds the category-specific wishes used by the category rule table.
type Preferences struct {
	Cuisines         []string `json:"cuisines,omitempty"`
	Dietary          []string `json:"dietary,omitempty"`
	MusicGenres      []string `json:"musicGenres,omitempty"`
	MusicianType     string   `json:"musicianType,omitempty"`
	VenueType        string   `json:"venueType,omitempty"`
	OutdoorPreferred bool     `json:"outdoorPreferred"`
	ParkingNeeded    bool     `json:"parkingNeeded"`
	PhotoStyles      []string `json:"photoStyles,omitempty"`
	DroneRequested   bool     `json:"droneRequested"`
	SDERequested     bool     `json:"sdeRequested"`
}

// chosenStyles merges the single style tag with the style set.
func (p *WeddingMatchParams) chosenStyles() []string {
	if p.Style == "" {
		return p.Styles
	}
	out := make([]string, 0, len(p.Styles)+1)
	out = append(out, p.Style)
	return append(out, p.Styles...)
}

// VendorProfile is a catalog entry. Attributes holds the category-specific shape.
type VendorProfile struct {
	ID            string     `json:"id"`
	BusinessName  string     `json:"businessName"`
	Category      Category   `json:"category"`
	StartingPrice *float64   `json:"startingPrice,omitempty"`
	CapacityMin   *int       `json:"capacityMin,omitempty"`
	CapacityMax   *int       `json:"capacityMax,omitempty"`
	ServiceArea   []string   `json:"serviceArea,omitempty"`
	Location      string     `json:"location,omitempty"`
	Rating        *float64   `json:"rating,omitempty"`
	TotalReviews  int        `json:"totalReviews"`
	Verified      bool       `json:"verified"`
	Styles        []string   `json:"styles,omitempty"`
	Languages     []string   `json:"languages,omitempty"`
	ContactEmail  string     `json:"contactEmail,omitempty"`
	Attributes    Attributes `json:"attributes,omitempty"`
}

// UnmarshalJSON decodes the attribute blob according to the profile's category.
func (v *VendorProfile) UnmarshalJSON(data []byte) error {
	type alias VendorProfile
	aux := struct {
		*alias
		Attributes json.RawMessage `json:"attributes"`
	}{alias: (*alias)(v)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	attrs, err := DecodeAttributes(v.Category, aux.Attributes)
	if err != nil {
		return err
	}
	v.Attributes = attrs
	return nil
}

// BudgetBreakdown is one allocator line: a price band, its share of the total and the reasoning behind it.
type BudgetBreakdown struct {
	Category   string   `json:"category"`
	MinPrice   float64  `json:"minPrice"`
	MaxPrice   float64  `json:"maxPrice"`
	Percentage float64  `json:"percentage"`
	Reasoning  []string `json:"reasoning"`
	Warning    string   `json:"warning,omitempty"`
}

type BudgetAllocation struct {
	TotalBudget   float64           `json:"totalBudget"`
	GuestCount    int               `json:"guestCount"`
	VenueBudget   float64           `json:"venueBudget"`
	MaxPlatePrice float64           `json:"maxPlatePrice"`
	Breakdown     []BudgetBreakdown `json:"breakdown"`
	Suggestions   []string          `json:"suggestions"`
}

// Line returns the breakdown entry for an allocator line.
func (a *BudgetAllocation) Line(name string) (BudgetBreakdown, bool) {
	for _, b := range a.Breakdown {
		if b.Category == name {
			return b, true
		}
	}
	return BudgetBreakdown{}, false
}

type ReasonType string

const (
	ReasonStyle        ReasonType = "style"
	ReasonRating       ReasonType = "rating"
	ReasonBudget       ReasonType = "budget"
	ReasonLocation     ReasonType = "location"
	ReasonVerification ReasonType = "verification"
	ReasonLanguage     ReasonType = "language"
	ReasonFeature      ReasonType = "feature"
)

type MatchReason struct {
	Type        ReasonType `json:"type"`
	Score       int        `json:"score"`
	Description string     `json:"description"`
}

type ExclusionFilter string

const (
	FilterUnavailable      ExclusionFilter = "unavailable"
	FilterCapacityExceeded ExclusionFilter = "capacity_exceeded"
	FilterMinGuestsNotMet  ExclusionFilter = "min_guests_not_met"
	FilterBudgetExceeded   ExclusionFilter = "budget_exceeded"
	FilterLocationMismatch ExclusionFilter = "location_mismatch"
)

// ExclusionReason explains which hard filter rejected a vendor.
type ExclusionReason struct {
	Filter        ExclusionFilter `json:"filter"`
	Description   string          `json:"description"`
	VendorValue   interface{}     `json:"vendorValue,omitempty"`
	RequiredValue interface{}     `json:"requiredValue,omitempty"`
}

// CategoryScores breaks matchScore down per dimension before clamping.
type CategoryScores struct {
	Base             int `json:"base"`
	Style            int `json:"style"`
	Rating           int `json:"rating"`
	Budget           int `json:"budget"`
	Location         int `json:"location"`
	Verification     int `json:"verification"`
	Language         int `json:"language"`
	Experience       int `json:"experience"`
	CategorySpecific int `json:"categorySpecific"`
}

func (s CategoryScores) Total() int {
	return s.Base + s.Style + s.Rating + s.Budget + s.Location +
		s.Verification + s.Language + s.Experience + s.CategorySpecific
}

type VendorMatchResult struct {
	VendorID        string           `json:"vendorId"`
	VendorName      string           `json:"vendorName,omitempty"`
	Category        Category         `json:"category"`
	MatchScore      int              `json:"matchScore"`
	Label           string           `json:"label"`
	Reasons         []MatchReason    `json:"reasons"`
	EstimatedPrice  *float64         `json:"estimatedPrice,omitempty"`
	AvailableOnDate bool             `json:"availableOnDate"`
	Excluded        bool             `json:"excluded"`
	ExclusionReason *ExclusionReason `json:"exclusionReason,omitempty"`
	CategoryScores  CategoryScores   `json:"categoryScores"`
}

// Filters scopes one matching run to a category. CategoryBudget <= 0 means derive it.
type Filters struct {
	Category       Category `json:"category"`
	CategoryBudget float64  `json:"categoryBudget,omitempty"`
}

// Options tune a matching run. Nil MinScore and non-positive Limit fall back to service defaults.
type Options struct {
	IncludeExcluded bool `json:"includeExcluded"`
	MinScore        *int `json:"minScore,omitempty"`
	Limit           int  `json:"limit,omitempty"`
}
