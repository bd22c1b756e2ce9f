// internal/matching/scoring.go
package matching

import (
	"fmt"
	"math"
	"strings"
)

const (
	baseScore           = 5
	styleExactScore     = 25
	stylePartialScore   = 10
	ratingMaxScore      = 20
	locationScore       = 10
	verificationScore   = 5
	languageScore       = 10
	maxReasons          = 5
	secondShooterGuests = 200
)

// ScoreResult is the soft score of one vendor.
type ScoreResult struct {
	Score          int
	Reasons        []MatchReason
	CategoryScores CategoryScores
}

// Score computes the additive soft score of a vendor for a wedding. Reasons keep
// their computation order and are cut to the first five.
func Score(vendor *VendorProfile, params *WeddingMatchParams, categoryBudget float64) ScoreResult {
	var (
		scores  CategoryScores
		reasons []MatchReason
	)
	add := func(t ReasonType, points int, desc string) {
		if points <= 0 {
			return
		}
		reasons = append(reasons, MatchReason{Type: t, Score: points, Description: desc})
	}

	scores.Base = baseScore

	stylePoints, styleDesc := styleScore(vendor, params)
	scores.Style = stylePoints
	add(ReasonStyle, stylePoints, styleDesc)

	if vendor.Rating != nil {
		scores.Rating = int(math.Round(*vendor.Rating / 5 * ratingMaxScore))
		add(ReasonRating, scores.Rating, fmt.Sprintf("Rated %.1f/5 across %d reviews", *vendor.Rating, vendor.TotalReviews))
	}

	if vendor.StartingPrice != nil && categoryBudget > 0 {
		var desc string
		scores.Budget, desc = budgetFitScore(*vendor.StartingPrice / categoryBudget)
		add(ReasonBudget, scores.Budget, desc)
	}

	if LocationMatches(params.Location, vendor) {
		scores.Location = locationScore
		add(ReasonLocation, scores.Location, fmt.Sprintf("Serves %s", params.Location))
	}

	if vendor.Verified {
		scores.Verification = verificationScore
		add(ReasonVerification, scores.Verification, "Verified vendor")
	}

	if overlap(params.Languages, vendor.Languages) > 0 {
		scores.Language = languageScore
		add(ReasonLanguage, scores.Language, "Speaks your preferred languages")
	}

	specific := categorySpecificScore(vendor, params)
	for _, r := range specific {
		scores.CategorySpecific += r.Score
	}
	reasons = append(reasons, specific...)

	total := scores.Total()
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}

	return ScoreResult{
		Score:          total,
		Reasons:        reasons,
		CategoryScores: scores,
	}
}

func styleScore(vendor *VendorProfile, params *WeddingMatchParams) (int, string) {
	wanted := params.chosenStyles()
	if len(wanted) == 0 {
		return 0, ""
	}
	for _, w := range wanted {
		if containsFold(vendor.Styles, w) {
			return styleExactScore, fmt.Sprintf("Style %q matches your preferences", w)
		}
	}
	if len(vendor.Styles) > 0 {
		return stylePartialScore, "Works in related styles"
	}
	return 0, ""
}

// budgetFitScore bands price/categoryBudget. At-budget pricing outranks well-under-budget pricing.
func budgetFitScore(priceFit float64) (int, string) {
	switch {
	case priceFit <= 0.8:
		return 15, "Priced below your budget"
	case priceFit <= 1.0:
		return 20, "Ideal fit for your budget"
	case priceFit <= 1.2:
		return 10, "Slightly above your budget"
	default:
		return 0, ""
	}
}

func categorySpecificScore(vendor *VendorProfile, params *WeddingMatchParams) []MatchReason {
	var out []MatchReason
	add := func(t ReasonType, points int, desc string) {
		out = append(out, MatchReason{Type: t, Score: points, Description: desc})
	}
	prefs := params.Preferences

	switch vendor.Category {
	case CategoryVenue:
		venue, _ := vendor.VenueAttrs()
		if withinCapacity(vendor, params.GuestCount) {
			add(ReasonFeature, 15, fmt.Sprintf("Comfortably hosts %d guests", params.GuestCount))
		}
		if venue == nil {
			break
		}
		if prefs.VenueType != "" && strings.EqualFold(venue.VenueType, prefs.VenueType) {
			add(ReasonFeature, 10, fmt.Sprintf("Venue type %q as requested", venue.VenueType))
		}
		if venue.HasParking && prefs.ParkingNeeded {
			add(ReasonFeature, 5, "On-site parking")
		}
		if venue.HasOutdoorSpace && prefs.OutdoorPreferred {
			add(ReasonFeature, 5, "Outdoor space available")
		}

	case CategoryCaterer:
		caterer, ok := vendor.CatererAttrs()
		if !ok {
			break
		}
		if n := overlap(prefs.Cuisines, caterer.CuisineTypes); n > 0 {
			add(ReasonFeature, min(n*5, 15), fmt.Sprintf("Cooks %d of your preferred cuisines", n))
		}
		if overlap(prefs.Dietary, caterer.DietaryOptions) > 0 {
			add(ReasonFeature, 10, "Covers your dietary requirements")
		}
		if caterer.MaxGuests != nil && *caterer.MaxGuests >= params.GuestCount {
			add(ReasonFeature, 10, "Can cater for your full guest list")
		}

	case CategoryPhotographer, CategoryVideographer:
		photo, ok := vendor.PhotographerAttrs()
		if !ok {
			break
		}
		wanted := prefs.PhotoStyles
		if len(wanted) == 0 {
			wanted = params.chosenStyles()
		}
		if overlap(wanted, photo.PhotoStyles) > 0 {
			add(ReasonFeature, 15, "Shooting style matches your taste")
		}
		if photo.HasDrone && prefs.DroneRequested {
			add(ReasonFeature, 10, "Aerial drone coverage")
		}
		if photo.ProvidesSDE && prefs.SDERequested {
			add(ReasonFeature, 10, "Same-day edit for the reception")
		}
		if photo.HasSecondShooter && params.GuestCount > secondShooterGuests {
			add(ReasonFeature, 10, "Second shooter for a large wedding")
		}

	case CategoryMusic:
		music, ok := vendor.MusicianAttrs()
		if !ok {
			break
		}
		if n := overlap(prefs.MusicGenres, music.Genres); n > 0 {
			add(ReasonFeature, min(n*5, 15), fmt.Sprintf("Plays %d of your preferred genres", n))
		}
		if prefs.MusicianType != "" && strings.EqualFold(music.MusicianType, prefs.MusicianType) {
			add(ReasonFeature, 10, fmt.Sprintf("Performs as %s", music.MusicianType))
		}
		if music.SoundEquipmentIncluded {
			add(ReasonFeature, 5, "Sound equipment included")
		}

	case CategoryDecorator, CategoryFlorist:
		decor, ok := vendor.DecoratorAttrs()
		if !ok {
			break
		}
		if decor.Provides3DVisualization {
			add(ReasonFeature, 10, "3D visualization of the design")
		}
		if decor.ReuseItems {
			add(ReasonBudget, 5, "Reuses decor items to save budget")
		}
	}

	return out
}

func withinCapacity(vendor *VendorProfile, guests int) bool {
	minCap, maxCap := vendor.MinGuestRequirement(), vendor.MaxGuestCapacity()
	if minCap == nil && maxCap == nil {
		return false
	}
	if minCap != nil && guests < *minCap {
		return false
	}
	if maxCap != nil && guests > *maxCap {
		return false
	}
	return true
}

// overlap counts the distinct wanted tags present in have, ignoring case.
func overlap(wanted, have []string) int {
	seen := make(map[string]struct{}, len(wanted))
	n := 0
	for _, w := range wanted {
		key := strings.ToLower(strings.TrimSpace(w))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if containsFold(have, key) {
			n++
		}
	}
	return n
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), s) {
			return true
		}
	}
	return false
}
