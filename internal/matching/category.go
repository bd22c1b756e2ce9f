// internal/matching/category.go
package matching

import (
	"fmt"
	"strings"
)

// Category is the vendor_category enumeration shared by vendor profiles and cached recommendations.
type Category string

const (
	CategoryVenue        Category = "venue"
	CategoryCaterer      Category = "caterer"
	CategoryPhotographer Category = "photographer"
	CategoryVideographer Category = "videographer"
	CategoryFlorist      Category = "florist"
	CategoryDecorator    Category = "decorator"
	CategoryMusic        Category = "music"
	CategoryMakeup       Category = "makeup"
	CategoryClothing     Category = "clothing"
	CategoryTransport    Category = "transport"
	CategoryOther        Category = "other"
)

// AllCategories is the fixed iteration order used by FindAllCategoryMatches.
var AllCategories = []Category{
	CategoryVenue,
	CategoryCaterer,
	CategoryPhotographer,
	CategoryVideographer,
	CategoryFlorist,
	CategoryDecorator,
	CategoryMusic,
	CategoryMakeup,
	CategoryClothing,
	CategoryTransport,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory normalizes s and rejects values outside the enumeration.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %w: %q", ErrInvalidInput, ErrUnknownCategory, s)
	}
	return c, nil
}

// Priority is a couple's declared importance for a category.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Multiplier scales the derived category budget. Unknown values behave like medium.
func (p Priority) Multiplier() float64 {
	switch p {
	case PriorityHigh:
		return 1.5
	case PriorityLow:
		return 0.7
	default:
		return 1.0
	}
}

// Allocator lines. Venue and catering share one line.
const (
	LineVenue        = "venue"
	LinePhotographer = "photographer"
	LineVideographer = "videographer"
	LineAttire       = "attire"
	LineDecor        = "decor"
	LineMusic        = "music"
	LineOther        = "other"
)

const venueShare = 0.45

// lineShares is the percentage-of-total table for the discretionary lines, in report order.
var lineShares = []struct {
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

var categoryLines = map[Category]string{
	CategoryVenue:        LineVenue,
	CategoryCaterer:      LineVenue,
	CategoryPhotographer: LinePhotographer,
	CategoryVideographer: LineVideographer,
	CategoryClothing:     LineAttire,
	CategoryDecorator:    LineDecor,
	CategoryFlorist:      LineDecor,
	CategoryMusic:        LineMusic,
	CategoryMakeup:       LineOther,
	CategoryTransport:    LineOther,
	CategoryOther:        LineOther,
}

// BudgetLine returns the allocator line a vendor category draws from.
func BudgetLine(c Category) string {
	if line, ok := categoryLines[c]; ok {
		return line
	}
	return LineOther
}

// BudgetShare returns the fraction of total budget allocated to the category's line.
func BudgetShare(c Category) float64 {
	line := BudgetLine(c)
	if line == LineVenue {
		return venueShare
	}
	for _, ls := range lineShares {
		if ls.line == line {
			return ls.share
		}
	}
	return 0
}
