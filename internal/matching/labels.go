// internal/matching/labels.go
package matching

const topRecommendationScore = 50

// ScoreLabel buckets a match score for display.
func ScoreLabel(score int) string {
	switch {
	case score >= 90:
		return "ideal"
	case score >= 80:
		return "excellent"
	case score >= 70:
		return "good"
	case score >= 60:
		return "suitable"
	case score >= 40:
		return "consider"
	default:
		return "not_recommended"
	}
}

// TopRecommendations keeps admissible results scoring at least 50, preserving order.
func TopRecommendations(results []VendorMatchResult) []VendorMatchResult {
	out := make([]VendorMatchResult, 0, len(results))
	for _, r := range results {
		if !r.Excluded && r.MatchScore >= topRecommendationScore {
			out = append(out, r)
		}
	}
	return out
}

func ExcludedResults(results []VendorMatchResult) []VendorMatchResult {
	out := make([]VendorMatchResult, 0)
	for _, r := range results {
		if r.Excluded {
			out = append(out, r)
		}
	}
	return out
}
